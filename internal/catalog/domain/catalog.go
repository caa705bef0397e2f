package catalog

import (
	"context"
	"strings"
)

// Client is a customer owning projects.
type Client struct {
	ID   int64
	Name string
}

// Validate checks client invariants.
func (c Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyClientName
	}
	return nil
}

// Project is a wind-energy site belonging to a client.
type Project struct {
	ID       int64
	ClientID int64
	Name     string
}

// Validate checks project invariants.
func (p Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyProjectName
	}
	if p.ClientID <= 0 {
		return ErrEmptyClientID
	}
	return nil
}

// AssetType is a row in the asset type lookup table.
type AssetType struct {
	ID   int
	Name string
}

// ProjectAssetRef is a lightweight reference to an existing project asset,
// used for pairing selection.
type ProjectAssetRef struct {
	ID   int64
	Name string
}

// LookupRepository serves the read-only queries the wizard and its
// presentation layer depend on.
type LookupRepository interface {
	ListClients(ctx context.Context) ([]Client, error)
	ListProjects(ctx context.Context, clientID int64) ([]Project, error)
	ListAssetTypes(ctx context.Context) ([]AssetType, error)
	// ResolveProject maps (client name, project name) to a project id.
	// Returns ErrProjectNotFound when the project does not exist under
	// that client.
	ResolveProject(ctx context.Context, clientName, projectName string) (int64, error)
	// AssetNameExists reports whether an asset with the given name is
	// already placed in the project. Check-then-act: two overlapping
	// sessions can both observe false before either commits.
	AssetNameExists(ctx context.Context, projectID int64, assetName string) (bool, error)
	// MetTowersByProject lists met-tower placements eligible as pairing
	// targets in the project.
	MetTowersByProject(ctx context.Context, projectID int64) ([]ProjectAssetRef, error)
	// DistinctBaseSenders lists distinct sender identifiers already used
	// in ingest configs, with any mailbox domain part stripped.
	DistinctBaseSenders(ctx context.Context) ([]string, error)
}

// WriteRepository persists new clients and projects.
type WriteRepository interface {
	CreateClient(ctx context.Context, name string) (int64, error)
	CreateProject(ctx context.Context, clientID int64, name string) (int64, error)
}
