package memory

import (
	"context"
	"strings"
	"sync"

	assets "windasset-cloud/internal/assets/domain"
)

// Repository is an in-memory implementation of the asset, project asset and
// detail repositories for demo/testing.
type Repository struct {
	mu             sync.RWMutex
	nextAssetID    int64
	nextProjectAID int64
	assets         map[int64]assets.Asset
	projectAssets  map[int64]assets.ProjectAsset
	details        map[int64][]assets.Detail

	failCreateAsset error
	failLink        error
}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{
		assets:        make(map[int64]assets.Asset),
		projectAssets: make(map[int64]assets.ProjectAsset),
		details:       make(map[int64][]assets.Detail),
	}
}

// FailCreateAsset makes CreateAsset return err until cleared.
func (r *Repository) FailCreateAsset(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failCreateAsset = err
}

// FailLink makes LinkAssetToProject return err until cleared.
func (r *Repository) FailLink(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failLink = err
}

// CreateAsset inserts a base asset record.
func (r *Repository) CreateAsset(ctx context.Context, name string, typeID int) (int64, error) {
	_ = ctx
	asset := assets.Asset{Name: strings.TrimSpace(name), TypeID: typeID}
	if err := asset.Validate(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreateAsset != nil {
		return 0, r.failCreateAsset
	}
	r.nextAssetID++
	asset.ID = r.nextAssetID
	r.assets[asset.ID] = asset
	return asset.ID, nil
}

// LinkAssetToProject inserts a project asset row.
func (r *Repository) LinkAssetToProject(ctx context.Context, input assets.LinkInput) (int64, error) {
	_ = ctx
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

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failLink != nil {
		return 0, r.failLink
	}
	r.nextProjectAID++
	pa.ID = r.nextProjectAID
	r.projectAssets[pa.ID] = pa
	return pa.ID, nil
}

// Get loads a project asset by id.
func (r *Repository) Get(ctx context.Context, id int64) (*assets.ProjectAsset, error) {
	_ = ctx
	if id <= 0 {
		return nil, assets.ErrEmptyProjectAssetID
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	pa, ok := r.projectAssets[id]
	if !ok {
		return nil, assets.ErrProjectAssetNotFound
	}
	copied := pa
	return &copied, nil
}

// Seed inserts a project asset row directly, for test fixtures.
func (r *Repository) Seed(pa assets.ProjectAsset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pa.ID > r.nextProjectAID {
		r.nextProjectAID = pa.ID
	}
	r.projectAssets[pa.ID] = pa
}

// List returns all detail rows for a project asset.
func (r *Repository) List(ctx context.Context, projectAssetID int64) ([]assets.Detail, error) {
	_ = ctx
	if projectAssetID <= 0 {
		return nil, assets.ErrEmptyProjectAssetID
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]assets.Detail(nil), r.details[projectAssetID]...), nil
}

// Add appends a detail row without checking for an existing property.
func (r *Repository) Add(ctx context.Context, detail assets.Detail) error {
	_ = ctx
	if err := detail.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.details[detail.ProjectAssetID] = append(r.details[detail.ProjectAssetID], detail)
	return nil
}

// Update rewrites the value of every row matching the property.
func (r *Repository) Update(ctx context.Context, detail assets.Detail) error {
	_ = ctx
	if err := detail.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.details[detail.ProjectAssetID]
	for i := range rows {
		if rows[i].Property == detail.Property {
			rows[i].Value = detail.Value
		}
	}
	return nil
}

// AssetCount returns the number of stored base assets.
func (r *Repository) AssetCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.assets)
}

// ProjectAssetCount returns the number of stored project assets.
func (r *Repository) ProjectAssetCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.projectAssets)
}
