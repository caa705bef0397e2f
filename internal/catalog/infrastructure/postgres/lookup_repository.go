package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	assets "windasset-cloud/internal/assets/domain"
	catalog "windasset-cloud/internal/catalog/domain"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// LookupRepository is a Postgres implementation of the read-only lookup
// queries.
type LookupRepository struct {
	db DBTX
}

// NewLookupRepository constructs a repository.
func NewLookupRepository(db DBTX) *LookupRepository {
	return &LookupRepository{db: db}
}

// ListClients returns all clients ordered by name.
func (r *LookupRepository) ListClients(ctx context.Context) ([]catalog.Client, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("lookup repo: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT client_id, name
FROM clients
ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("lookup repo: list clients: %w", err)
	}
	defer rows.Close()

	var clients []catalog.Client
	for rows.Next() {
		var c catalog.Client
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("lookup repo: scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// ListProjects returns a client's projects ordered by name. A zero
// clientID lists all projects.
func (r *LookupRepository) ListProjects(ctx context.Context, clientID int64) ([]catalog.Project, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("lookup repo: nil db")
	}

	query := `
SELECT project_id, client_id, name
FROM projects
ORDER BY name`
	args := []any{}
	if clientID > 0 {
		query = `
SELECT project_id, client_id, name
FROM projects
WHERE client_id = $1
ORDER BY name`
		args = append(args, clientID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("lookup repo: list projects: %w", err)
	}
	defer rows.Close()

	var projects []catalog.Project
	for rows.Next() {
		var p catalog.Project
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Name); err != nil {
			return nil, fmt.Errorf("lookup repo: scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ListAssetTypes returns all asset types ordered by id.
func (r *LookupRepository) ListAssetTypes(ctx context.Context) ([]catalog.AssetType, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("lookup repo: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT asset_type_id, asset_type
FROM asset_types
ORDER BY asset_type_id`)
	if err != nil {
		return nil, fmt.Errorf("lookup repo: list asset types: %w", err)
	}
	defer rows.Close()

	var types []catalog.AssetType
	for rows.Next() {
		var t catalog.AssetType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("lookup repo: scan asset type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// ResolveProject maps (client name, project name) to a project id.
func (r *LookupRepository) ResolveProject(ctx context.Context, clientName, projectName string) (int64, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("lookup repo: nil db")
	}
	if clientName == "" || projectName == "" {
		return 0, catalog.ErrProjectNotFound
	}

	var id int64
	err := r.db.QueryRowContext(ctx, `
SELECT p.project_id
FROM projects p
JOIN clients c ON c.client_id = p.client_id
WHERE c.name = $1 AND p.name = $2
LIMIT 1`, clientName, projectName).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, catalog.ErrProjectNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("lookup repo: resolve project: %w", err)
	}
	return id, nil
}

// AssetNameExists reports whether the asset name is already placed in the
// project.
func (r *LookupRepository) AssetNameExists(ctx context.Context, projectID int64, assetName string) (bool, error) {
	if r == nil || r.db == nil {
		return false, errors.New("lookup repo: nil db")
	}

	var one int
	err := r.db.QueryRowContext(ctx, `
SELECT 1
FROM assets a
JOIN project_assets pa ON a.asset_id = pa.asset_id
WHERE a.name = $1 AND pa.project_id = $2
LIMIT 1`, assetName, projectID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup repo: asset name exists: %w", err)
	}
	return true, nil
}

// MetTowersByProject lists met-tower placements in the project.
func (r *LookupRepository) MetTowersByProject(ctx context.Context, projectID int64) ([]catalog.ProjectAssetRef, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("lookup repo: nil db")
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT pa.project_asset_id, pa.name
FROM project_assets pa
WHERE pa.project_id = $1 AND pa.asset_type_id = $2
ORDER BY pa.name`, projectID, assets.TypeMetTower)
	if err != nil {
		return nil, fmt.Errorf("lookup repo: met towers: %w", err)
	}
	defer rows.Close()

	var refs []catalog.ProjectAssetRef
	for rows.Next() {
		var ref catalog.ProjectAssetRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("lookup repo: scan met tower: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// DistinctBaseSenders lists distinct sender identifiers with the mailbox
// domain stripped.
func (r *LookupRepository) DistinctBaseSenders(ctx context.Context) ([]string, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("lookup repo: nil db")
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT DISTINCT split_part(sender, '@', 1) AS base_sender
FROM ingest_configs
WHERE sender <> ''
ORDER BY base_sender`)
	if err != nil {
		return nil, fmt.Errorf("lookup repo: base senders: %w", err)
	}
	defer rows.Close()

	var senders []string
	for rows.Next() {
		var sender string
		if err := rows.Scan(&sender); err != nil {
			return nil, fmt.Errorf("lookup repo: scan sender: %w", err)
		}
		senders = append(senders, sender)
	}
	return senders, rows.Err()
}
