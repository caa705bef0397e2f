package postgres

import (
	"context"
	"errors"
	"fmt"

	assets "windasset-cloud/internal/assets/domain"
)

const defaultDetailsTable = "project_asset_details"

// DetailRepository is a Postgres implementation for the project asset
// property bag. Add is a blind insert; the one-row-per-property invariant
// belongs to callers, which list before choosing add or update.
type DetailRepository struct {
	db    DBTX
	table string
}

// NewDetailRepository constructs a repository.
func NewDetailRepository(db DBTX, opts ...DetailOption) *DetailRepository {
	repo := &DetailRepository{db: db, table: defaultDetailsTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// DetailOption configures the repository.
type DetailOption func(*DetailRepository)

// WithDetailsTable overrides the default table name.
func WithDetailsTable(table string) DetailOption {
	return func(repo *DetailRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// List returns all detail rows for a project asset.
func (r *DetailRepository) List(ctx context.Context, projectAssetID int64) ([]assets.Detail, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("detail repo: nil db")
	}
	if projectAssetID <= 0 {
		return nil, assets.ErrEmptyProjectAssetID
	}

	query := fmt.Sprintf(`
SELECT project_asset_id, property, value
FROM %s
WHERE project_asset_id = $1
ORDER BY property`, r.table)

	rows, err := r.db.QueryContext(ctx, query, projectAssetID)
	if err != nil {
		return nil, fmt.Errorf("detail repo: list: %w", err)
	}
	defer rows.Close()

	var details []assets.Detail
	for rows.Next() {
		var d assets.Detail
		if err := rows.Scan(&d.ProjectAssetID, &d.Property, &d.Value); err != nil {
			return nil, fmt.Errorf("detail repo: scan: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("detail repo: rows: %w", err)
	}
	return details, nil
}

// Add inserts a new detail row.
func (r *DetailRepository) Add(ctx context.Context, detail assets.Detail) error {
	if r == nil || r.db == nil {
		return errors.New("detail repo: nil db")
	}
	if err := detail.Validate(); err != nil {
		return err
	}

	query := fmt.Sprintf(`
INSERT INTO %s (project_asset_id, property, value)
VALUES ($1, $2, $3)`, r.table)

	if _, err := r.db.ExecContext(ctx, query, detail.ProjectAssetID, detail.Property, detail.Value); err != nil {
		return fmt.Errorf("detail repo: add: %w", err)
	}
	return nil
}

// Update rewrites the value for an existing property.
func (r *DetailRepository) Update(ctx context.Context, detail assets.Detail) error {
	if r == nil || r.db == nil {
		return errors.New("detail repo: nil db")
	}
	if err := detail.Validate(); err != nil {
		return err
	}

	query := fmt.Sprintf(`
UPDATE %s
SET value = $1
WHERE project_asset_id = $2 AND property = $3`, r.table)

	if _, err := r.db.ExecContext(ctx, query, detail.Value, detail.ProjectAssetID, detail.Property); err != nil {
		return fmt.Errorf("detail repo: update: %w", err)
	}
	return nil
}
