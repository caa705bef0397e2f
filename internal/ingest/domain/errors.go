package ingest

import "errors"

var (
	// ErrEmptyProjectAssetID is returned when the project asset id is missing.
	ErrEmptyProjectAssetID = errors.New("ingest: empty project asset id")
	// ErrEmptySender is returned when the sender identifier is blank.
	ErrEmptySender = errors.New("ingest: empty sender")
	// ErrEmptyMapKey is returned when a file map key is blank.
	ErrEmptyMapKey = errors.New("ingest: empty map key")
	// ErrConfigNotFound indicates no config row exists for the project asset.
	ErrConfigNotFound = errors.New("ingest: config not found")
)
