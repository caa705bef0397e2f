package postgres

import (
	"context"
	"errors"
	"fmt"

	ingest "windasset-cloud/internal/ingest/domain"
)

const defaultFileMapTable = "project_asset_file_maps"

// FileMapRepository is a Postgres implementation for file map entries.
type FileMapRepository struct {
	db    DBTX
	table string
}

// NewFileMapRepository constructs a repository.
func NewFileMapRepository(db DBTX) *FileMapRepository {
	return &FileMapRepository{db: db, table: defaultFileMapTable}
}

// Add inserts a file map entry.
func (r *FileMapRepository) Add(ctx context.Context, entry ingest.FileMapEntry) error {
	if r == nil || r.db == nil {
		return errors.New("file map repo: nil db")
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	query := fmt.Sprintf(`
INSERT INTO %s (map_key, project_asset_id)
VALUES ($1, $2)`, r.table)

	if _, err := r.db.ExecContext(ctx, query, entry.MapKey, entry.ProjectAssetID); err != nil {
		return fmt.Errorf("file map repo: add: %w", err)
	}
	return nil
}

// ListByProjectAsset returns the file map entries for a project asset.
func (r *FileMapRepository) ListByProjectAsset(ctx context.Context, projectAssetID int64) ([]ingest.FileMapEntry, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("file map repo: nil db")
	}
	if projectAssetID <= 0 {
		return nil, ingest.ErrEmptyProjectAssetID
	}

	query := fmt.Sprintf(`
SELECT map_key, project_asset_id
FROM %s
WHERE project_asset_id = $1
ORDER BY map_key`, r.table)

	rows, err := r.db.QueryContext(ctx, query, projectAssetID)
	if err != nil {
		return nil, fmt.Errorf("file map repo: list: %w", err)
	}
	defer rows.Close()

	var entries []ingest.FileMapEntry
	for rows.Next() {
		var entry ingest.FileMapEntry
		if err := rows.Scan(&entry.MapKey, &entry.ProjectAssetID); err != nil {
			return nil, fmt.Errorf("file map repo: scan: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
