package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	catalog "windasset-cloud/internal/catalog/domain"
)

// LookupRepository is an in-memory lookup implementation for demo/testing.
type LookupRepository struct {
	mu         sync.RWMutex
	clients    []catalog.Client
	projects   []catalog.Project
	assetTypes []catalog.AssetType
	// placed asset names per project id
	placedNames map[int64]map[string]struct{}
	metTowers   map[int64][]catalog.ProjectAssetRef
	senders     []string
}

// NewLookupRepository constructs a repository.
func NewLookupRepository() *LookupRepository {
	return &LookupRepository{
		placedNames: make(map[int64]map[string]struct{}),
		metTowers:   make(map[int64][]catalog.ProjectAssetRef),
	}
}

// SeedClient registers a client.
func (r *LookupRepository) SeedClient(c catalog.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients = append(r.clients, c)
}

// SeedProject registers a project.
func (r *LookupRepository) SeedProject(p catalog.Project) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects = append(r.projects, p)
}

// SeedAssetTypes registers the asset type lookup rows.
func (r *LookupRepository) SeedAssetTypes(types ...catalog.AssetType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assetTypes = append(r.assetTypes, types...)
}

// SeedPlacedAsset marks an asset name as already placed in a project.
func (r *LookupRepository) SeedPlacedAsset(projectID int64, assetName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.placedNames[projectID] == nil {
		r.placedNames[projectID] = make(map[string]struct{})
	}
	r.placedNames[projectID][assetName] = struct{}{}
}

// SeedMetTower registers a met-tower placement as a pairing target.
func (r *LookupRepository) SeedMetTower(projectID int64, ref catalog.ProjectAssetRef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metTowers[projectID] = append(r.metTowers[projectID], ref)
}

// SeedSenders registers known base senders.
func (r *LookupRepository) SeedSenders(senders ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.senders = append(r.senders, senders...)
}

// ListClients returns all clients ordered by name.
func (r *LookupRepository) ListClients(ctx context.Context) ([]catalog.Client, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	clients := append([]catalog.Client(nil), r.clients...)
	sort.Slice(clients, func(i, j int) bool { return clients[i].Name < clients[j].Name })
	return clients, nil
}

// ListProjects returns projects for a client, or all of them for zero.
func (r *LookupRepository) ListProjects(ctx context.Context, clientID int64) ([]catalog.Project, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var projects []catalog.Project
	for _, p := range r.projects {
		if clientID > 0 && p.ClientID != clientID {
			continue
		}
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

// ListAssetTypes returns the seeded asset types.
func (r *LookupRepository) ListAssetTypes(ctx context.Context) ([]catalog.AssetType, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]catalog.AssetType(nil), r.assetTypes...), nil
}

// ResolveProject maps (client name, project name) to a project id.
func (r *LookupRepository) ResolveProject(ctx context.Context, clientName, projectName string) (int64, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var clientID int64
	for _, c := range r.clients {
		if c.Name == clientName {
			clientID = c.ID
			break
		}
	}
	if clientID == 0 {
		return 0, catalog.ErrProjectNotFound
	}
	for _, p := range r.projects {
		if p.ClientID == clientID && p.Name == projectName {
			return p.ID, nil
		}
	}
	return 0, catalog.ErrProjectNotFound
}

// AssetNameExists reports whether the name is placed in the project.
func (r *LookupRepository) AssetNameExists(ctx context.Context, projectID int64, assetName string) (bool, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := r.placedNames[projectID]
	if names == nil {
		return false, nil
	}
	_, ok := names[assetName]
	return ok, nil
}

// MetTowersByProject lists met-tower pairing targets in the project.
func (r *LookupRepository) MetTowersByProject(ctx context.Context, projectID int64) ([]catalog.ProjectAssetRef, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]catalog.ProjectAssetRef(nil), r.metTowers[projectID]...), nil
}

// DistinctBaseSenders lists seeded base senders.
func (r *LookupRepository) DistinctBaseSenders(ctx context.Context) ([]string, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, s := range r.senders {
		base := s
		if i := strings.IndexByte(s, '@'); i >= 0 {
			base = s[:i]
		}
		if _, ok := seen[base]; ok {
			continue
		}
		seen[base] = struct{}{}
		out = append(out, base)
	}
	sort.Strings(out)
	return out, nil
}
