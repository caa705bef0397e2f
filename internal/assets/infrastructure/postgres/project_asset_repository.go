package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	assets "windasset-cloud/internal/assets/domain"
)

const defaultProjectAssetsTable = "project_assets"

// ProjectAssetRepository is a Postgres implementation for project assets.
//
// The project asset id is a database identity column. The system this
// replaces computed it as MAX(id)+1 with a read-then-insert race; the
// identity column removes that window.
type ProjectAssetRepository struct {
	db    DBTX
	table string
}

// NewProjectAssetRepository constructs a repository.
func NewProjectAssetRepository(db DBTX, opts ...ProjectAssetOption) *ProjectAssetRepository {
	repo := &ProjectAssetRepository{db: db, table: defaultProjectAssetsTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// ProjectAssetOption configures the repository.
type ProjectAssetOption func(*ProjectAssetRepository)

// WithProjectAssetsTable overrides the default table name.
func WithProjectAssetsTable(table string) ProjectAssetOption {
	return func(repo *ProjectAssetRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// LinkAssetToProject inserts a project asset row and returns the generated
// id. PairedWith is stored verbatim when set, NULL otherwise.
func (r *ProjectAssetRepository) LinkAssetToProject(ctx context.Context, input assets.LinkInput) (int64, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("project asset repo: nil db")
	}
	pa := assets.ProjectAsset{
		ProjectID:  input.ProjectID,
		AssetID:    input.AssetID,
		Name:       input.Name,
		TypeID:     input.TypeID,
		PairedWith: input.PairedWith,
	}
	if err := pa.Validate(); err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
INSERT INTO %s (project_id, asset_id, name, asset_type_id, pair_project_asset_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING project_asset_id`, r.table)

	var paired sql.NullInt64
	if input.PairedWith != nil {
		paired = sql.NullInt64{Int64: *input.PairedWith, Valid: true}
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, input.ProjectID, input.AssetID, input.Name, input.TypeID, paired).Scan(&id); err != nil {
		return 0, fmt.Errorf("project asset repo: link: %w", err)
	}
	return id, nil
}

// Get loads a project asset by id.
func (r *ProjectAssetRepository) Get(ctx context.Context, id int64) (*assets.ProjectAsset, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("project asset repo: nil db")
	}
	if id <= 0 {
		return nil, assets.ErrEmptyProjectAssetID
	}

	query := fmt.Sprintf(`
SELECT project_asset_id, project_id, asset_id, name, asset_type_id, pair_project_asset_id
FROM %s
WHERE project_asset_id = $1
LIMIT 1`, r.table)

	var pa assets.ProjectAsset
	var paired sql.NullInt64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&pa.ID,
		&pa.ProjectID,
		&pa.AssetID,
		&pa.Name,
		&pa.TypeID,
		&paired,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, assets.ErrProjectAssetNotFound
		}
		return nil, fmt.Errorf("project asset repo: get: %w", err)
	}
	if paired.Valid {
		value := paired.Int64
		pa.PairedWith = &value
	}
	return &pa, nil
}
