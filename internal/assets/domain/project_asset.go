package assets

import "context"

// ProjectAsset is the placement of an Asset within a Project, the unit
// ingestion configuration and location details attach to. PairedWith links
// a lidar/sodar placement to a met-tower placement in the same project.
type ProjectAsset struct {
	ID         int64
	ProjectID  int64
	AssetID    int64
	Name       string
	TypeID     int
	PairedWith *int64
}

// Validate checks project asset invariants.
func (pa ProjectAsset) Validate() error {
	if pa.ProjectID <= 0 {
		return ErrEmptyProjectID
	}
	if pa.AssetID <= 0 {
		return ErrEmptyAssetID
	}
	if pa.Name == "" {
		return ErrEmptyProjectAssetName
	}
	if pa.TypeID <= 0 {
		return ErrInvalidAssetType
	}
	if pa.PairedWith != nil && *pa.PairedWith == pa.ID && pa.ID != 0 {
		return ErrSelfPairing
	}
	return nil
}

// LinkInput carries the fields for linking an asset into a project.
type LinkInput struct {
	ProjectID  int64
	AssetID    int64
	Name       string
	TypeID     int
	PairedWith *int64
}

// ProjectAssetRepository manages project asset persistence. Identifiers are
// database-generated.
type ProjectAssetRepository interface {
	LinkAssetToProject(ctx context.Context, input LinkInput) (int64, error)
	Get(ctx context.Context, id int64) (*ProjectAsset, error)
}
