package assets

import "errors"

var (
	// ErrAssetNameTooShort is returned when an asset name has fewer than
	// two trimmed characters.
	ErrAssetNameTooShort = errors.New("asset: name must be at least 2 characters")
	// ErrInvalidAssetType is returned when the asset type id is not positive.
	ErrInvalidAssetType = errors.New("asset: invalid asset type")
	// ErrEmptyProjectID is returned when the project id is missing.
	ErrEmptyProjectID = errors.New("project asset: empty project id")
	// ErrEmptyAssetID is returned when the asset id is missing.
	ErrEmptyAssetID = errors.New("project asset: empty asset id")
	// ErrEmptyProjectAssetName is returned when the placement name is missing.
	ErrEmptyProjectAssetName = errors.New("project asset: empty name")
	// ErrSelfPairing is returned when a placement pairs with itself.
	ErrSelfPairing = errors.New("project asset: cannot pair with itself")
	// ErrProjectAssetNotFound indicates a missing project asset record.
	ErrProjectAssetNotFound = errors.New("project asset: not found")
	// ErrEmptyProjectAssetID is returned when the project asset id is missing.
	ErrEmptyProjectAssetID = errors.New("detail: empty project asset id")
	// ErrEmptyProperty is returned when the detail property name is missing.
	ErrEmptyProperty = errors.New("detail: empty property")
)
