package application

import (
	"context"
	"errors"
	"strings"

	catalog "windasset-cloud/internal/catalog/domain"
)

// Service exposes the reference-data reads the wizard and the fleet views
// depend on, plus the two writes that seed them.
type Service struct {
	lookup catalog.LookupRepository
	write  catalog.WriteRepository
	fleet  catalog.FleetRepository
}

// NewService constructs a catalog service. The write and fleet
// repositories are optional; methods needing an absent one fail.
func NewService(lookup catalog.LookupRepository, write catalog.WriteRepository, fleet catalog.FleetRepository) (*Service, error) {
	if lookup == nil {
		return nil, errors.New("catalog service: nil lookup repository")
	}
	return &Service{lookup: lookup, write: write, fleet: fleet}, nil
}

// Clients lists all clients ordered by name.
func (s *Service) Clients(ctx context.Context) ([]catalog.Client, error) {
	return s.lookup.ListClients(ctx)
}

// Projects lists a client's projects.
func (s *Service) Projects(ctx context.Context, clientID int64) ([]catalog.Project, error) {
	if clientID <= 0 {
		return nil, catalog.ErrEmptyClientID
	}
	return s.lookup.ListProjects(ctx, clientID)
}

// AssetTypes lists the selectable asset types.
func (s *Service) AssetTypes(ctx context.Context) ([]catalog.AssetType, error) {
	return s.lookup.ListAssetTypes(ctx)
}

// BaseSenders lists the distinct sender mailbox prefixes already
// configured, for the ingest step's autocomplete.
func (s *Service) BaseSenders(ctx context.Context) ([]string, error) {
	return s.lookup.DistinctBaseSenders(ctx)
}

// CreateClient registers a new client.
func (s *Service) CreateClient(ctx context.Context, name string) (int64, error) {
	if s.write == nil {
		return 0, errors.New("catalog service: writes not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, catalog.ErrEmptyClientName
	}
	return s.write.CreateClient(ctx, name)
}

// CreateProject registers a new project under a client.
func (s *Service) CreateProject(ctx context.Context, clientID int64, name string) (int64, error) {
	if s.write == nil {
		return 0, errors.New("catalog service: writes not configured")
	}
	if clientID <= 0 {
		return 0, catalog.ErrEmptyClientID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, catalog.ErrEmptyProjectName
	}
	return s.write.CreateProject(ctx, clientID, name)
}

// Fleet returns the full placed-asset register.
func (s *Service) Fleet(ctx context.Context) ([]catalog.FleetRow, error) {
	if s.fleet == nil {
		return nil, errors.New("catalog service: fleet reads not configured")
	}
	return s.fleet.ListFleet(ctx)
}

// FleetCounts returns per-type and per-client totals for the register.
func (s *Service) FleetCounts(ctx context.Context) (catalog.FleetCounts, error) {
	if s.fleet == nil {
		return catalog.FleetCounts{}, errors.New("catalog service: fleet reads not configured")
	}
	return s.fleet.Counts(ctx)
}

// ClientsWithProjectCounts returns each client with its project total.
func (s *Service) ClientsWithProjectCounts(ctx context.Context) ([]catalog.ClientProjectCount, error) {
	if s.fleet == nil {
		return nil, errors.New("catalog service: fleet reads not configured")
	}
	return s.fleet.ClientsWithProjectCounts(ctx)
}
