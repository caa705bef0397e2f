package assets

import "context"

// Detail property names written by the location step.
const (
	PropertyLatitude  = "Latitude"
	PropertyLongitude = "Longitude"
	PropertyElevation = "Elevation"
)

// Detail is one property/value row in the open-ended property bag scoped
// to a ProjectAsset. The store allows duplicate properties; callers keep
// one current value per property by checking presence before writing.
type Detail struct {
	ProjectAssetID int64
	Property       string
	Value          string
}

// Validate checks detail invariants.
func (d Detail) Validate() error {
	if d.ProjectAssetID <= 0 {
		return ErrEmptyProjectAssetID
	}
	if d.Property == "" {
		return ErrEmptyProperty
	}
	return nil
}

// DetailRepository provides the add/update primitives over detail rows.
// It does not enforce one-row-per-property; callers choose add vs update
// based on List.
type DetailRepository interface {
	List(ctx context.Context, projectAssetID int64) ([]Detail, error)
	Add(ctx context.Context, detail Detail) error
	Update(ctx context.Context, detail Detail) error
}
