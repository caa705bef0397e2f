package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	assets "windasset-cloud/internal/assets/domain"
)

const defaultAssetsTable = "assets"

// AssetRepository is a Postgres implementation for base asset records.
type AssetRepository struct {
	db    DBTX
	table string
}

// NewAssetRepository constructs a repository.
func NewAssetRepository(db DBTX, opts ...AssetOption) *AssetRepository {
	repo := &AssetRepository{db: db, table: defaultAssetsTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// AssetOption configures the repository.
type AssetOption func(*AssetRepository)

// WithAssetsTable overrides the default table name.
func WithAssetsTable(table string) AssetOption {
	return func(repo *AssetRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// CreateAsset inserts a base asset record and returns the generated id.
// No uniqueness is enforced here; the wizard checks name uniqueness within
// the project before calling.
func (r *AssetRepository) CreateAsset(ctx context.Context, name string, typeID int) (int64, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("asset repo: nil db")
	}
	asset := assets.Asset{Name: strings.TrimSpace(name), TypeID: typeID}
	if err := asset.Validate(); err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
INSERT INTO %s (name, asset_type_id)
VALUES ($1, $2)
RETURNING asset_id`, r.table)

	var id int64
	if err := r.db.QueryRowContext(ctx, query, asset.Name, asset.TypeID).Scan(&id); err != nil {
		return 0, fmt.Errorf("asset repo: create: %w", err)
	}
	return id, nil
}
