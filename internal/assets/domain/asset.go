package assets

import (
	"context"
	"strings"
)

// Known asset type ids from the asset_types lookup table.
const (
	TypeMetTower = 1
	TypeLidar    = 2
	TypeSodar    = 3
)

// Asset is a physical sensor asset (met tower, lidar, sodar).
// Identity is database-generated and immutable once created.
type Asset struct {
	ID     int64
	Name   string
	TypeID int
}

// Validate checks asset invariants before creation.
func (a Asset) Validate() error {
	if len(strings.TrimSpace(a.Name)) < 2 {
		return ErrAssetNameTooShort
	}
	if a.TypeID <= 0 {
		return ErrInvalidAssetType
	}
	return nil
}

// IsRemoteSensing reports whether a type id is a lidar or sodar,
// the only types eligible for met-tower pairing.
func IsRemoteSensing(typeID int) bool {
	return typeID == TypeLidar || typeID == TypeSodar
}

// AssetRepository creates base asset records. Name uniqueness within a
// project is a wizard validator concern, not enforced at this layer.
type AssetRepository interface {
	CreateAsset(ctx context.Context, name string, typeID int) (int64, error)
}
