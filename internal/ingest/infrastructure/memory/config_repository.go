package memory

import (
	"context"
	"sync"

	ingest "windasset-cloud/internal/ingest/domain"
)

// ConfigRepository is an in-memory ingest config store for demo/testing.
type ConfigRepository struct {
	mu      sync.RWMutex
	configs map[int64]ingest.Config
	saves   int
}

// NewConfigRepository constructs a repository.
func NewConfigRepository() *ConfigRepository {
	return &ConfigRepository{configs: make(map[int64]ingest.Config)}
}

// Get loads the config for a project asset.
func (r *ConfigRepository) Get(ctx context.Context, projectAssetID int64) (*ingest.Config, error) {
	_ = ctx
	if projectAssetID <= 0 {
		return nil, ingest.ErrEmptyProjectAssetID
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[projectAssetID]
	if !ok {
		return nil, ingest.ErrConfigNotFound
	}
	copied := cfg
	return &copied, nil
}

// Save inserts or replaces the config for a project asset.
func (r *ConfigRepository) Save(ctx context.Context, config ingest.Config) error {
	_ = ctx
	if err := config.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[config.ProjectAssetID] = config
	r.saves++
	return nil
}

// SaveCount returns how many saves were issued.
func (r *ConfigRepository) SaveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}
