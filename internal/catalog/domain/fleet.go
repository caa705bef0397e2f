package catalog

import "context"

// FleetRow is one line of the detailed client/project/asset listing.
type FleetRow struct {
	ClientName     string
	ProjectName    string
	ProjectAssetID int64
	AssetName      string
	AssetType      string
	PairedWithName string
	Latitude       string
	Longitude      string
	Elevation      string
}

// FleetCounts summarizes the fleet for the dashboard cards.
type FleetCounts struct {
	Clients       int
	Projects      int
	Assets        int
	MetTowers     int
	Lidars        int
	Sodars        int
}

// ClientProjectCount pairs a client with its project count.
type ClientProjectCount struct {
	ClientName   string
	ProjectCount int
}

// FleetRepository serves fleet-wide listings and counts.
type FleetRepository interface {
	ListFleet(ctx context.Context) ([]FleetRow, error)
	Counts(ctx context.Context) (FleetCounts, error)
	ClientsWithProjectCounts(ctx context.Context) ([]ClientProjectCount, error)
}
