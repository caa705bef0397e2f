package postgres

import (
	"context"
	"errors"
	"fmt"

	assets "windasset-cloud/internal/assets/domain"
	catalog "windasset-cloud/internal/catalog/domain"
)

// FleetRepository is a Postgres implementation of fleet-wide listings.
type FleetRepository struct {
	db DBTX
}

// NewFleetRepository constructs a repository.
func NewFleetRepository(db DBTX) *FleetRepository {
	return &FleetRepository{db: db}
}

// ListFleet returns the detailed client/project/asset listing, including
// the paired placement's name and the location detail properties.
func (r *FleetRepository) ListFleet(ctx context.Context) ([]catalog.FleetRow, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("fleet repo: nil db")
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT
	c.name,
	p.name,
	pa.project_asset_id,
	pa.name,
	COALESCE(at.asset_type, ''),
	COALESCE(paired.name, ''),
	COALESCE(lat.value, ''),
	COALESCE(lon.value, ''),
	COALESCE(elev.value, '')
FROM clients c
JOIN projects p ON p.client_id = c.client_id
JOIN project_assets pa ON pa.project_id = p.project_id
LEFT JOIN asset_types at ON at.asset_type_id = pa.asset_type_id
LEFT JOIN project_assets paired ON paired.project_asset_id = pa.pair_project_asset_id
LEFT JOIN project_asset_details lat ON lat.project_asset_id = pa.project_asset_id AND lat.property = 'Latitude'
LEFT JOIN project_asset_details lon ON lon.project_asset_id = pa.project_asset_id AND lon.property = 'Longitude'
LEFT JOIN project_asset_details elev ON elev.project_asset_id = pa.project_asset_id AND elev.property = 'Elevation'
ORDER BY c.name, p.name, pa.name`)
	if err != nil {
		return nil, fmt.Errorf("fleet repo: list: %w", err)
	}
	defer rows.Close()

	var fleet []catalog.FleetRow
	for rows.Next() {
		var row catalog.FleetRow
		if err := rows.Scan(
			&row.ClientName,
			&row.ProjectName,
			&row.ProjectAssetID,
			&row.AssetName,
			&row.AssetType,
			&row.PairedWithName,
			&row.Latitude,
			&row.Longitude,
			&row.Elevation,
		); err != nil {
			return nil, fmt.Errorf("fleet repo: scan: %w", err)
		}
		fleet = append(fleet, row)
	}
	return fleet, rows.Err()
}

// Counts returns the dashboard summary counts.
func (r *FleetRepository) Counts(ctx context.Context) (catalog.FleetCounts, error) {
	if r == nil || r.db == nil {
		return catalog.FleetCounts{}, errors.New("fleet repo: nil db")
	}

	var counts catalog.FleetCounts
	err := r.db.QueryRowContext(ctx, `
SELECT
	(SELECT COUNT(*) FROM clients),
	(SELECT COUNT(*) FROM projects),
	(SELECT COUNT(*) FROM assets),
	(SELECT COUNT(*) FROM assets WHERE asset_type_id = $1),
	(SELECT COUNT(*) FROM assets WHERE asset_type_id = $2),
	(SELECT COUNT(*) FROM assets WHERE asset_type_id = $3)`,
		assets.TypeMetTower, assets.TypeLidar, assets.TypeSodar).Scan(
		&counts.Clients,
		&counts.Projects,
		&counts.Assets,
		&counts.MetTowers,
		&counts.Lidars,
		&counts.Sodars,
	)
	if err != nil {
		return catalog.FleetCounts{}, fmt.Errorf("fleet repo: counts: %w", err)
	}
	return counts, nil
}

// ClientsWithProjectCounts returns per-client project counts.
func (r *FleetRepository) ClientsWithProjectCounts(ctx context.Context) ([]catalog.ClientProjectCount, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("fleet repo: nil db")
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT c.name, COUNT(p.project_id)
FROM clients c
LEFT JOIN projects p ON p.client_id = c.client_id
GROUP BY c.name
ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("fleet repo: client counts: %w", err)
	}
	defer rows.Close()

	var result []catalog.ClientProjectCount
	for rows.Next() {
		var cpc catalog.ClientProjectCount
		if err := rows.Scan(&cpc.ClientName, &cpc.ProjectCount); err != nil {
			return nil, fmt.Errorf("fleet repo: scan client count: %w", err)
		}
		result = append(result, cpc)
	}
	return result, rows.Err()
}
