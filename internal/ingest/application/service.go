package application

import (
	"context"
	"errors"
	"strings"

	ingest "windasset-cloud/internal/ingest/domain"
)

// Service exposes ingest config reads and file map maintenance outside the
// wizard flow.
type Service struct {
	configs  ingest.ConfigRepository
	fileMaps ingest.FileMapRepository
}

// NewService constructs an ingest service. The file map repository is
// optional.
func NewService(configs ingest.ConfigRepository, fileMaps ingest.FileMapRepository) (*Service, error) {
	if configs == nil {
		return nil, errors.New("ingest service: nil config repository")
	}
	return &Service{configs: configs, fileMaps: fileMaps}, nil
}

// Config loads the ingest config for a project asset.
func (s *Service) Config(ctx context.Context, projectAssetID int64) (*ingest.Config, error) {
	return s.configs.Get(ctx, projectAssetID)
}

// AddFileMapEntry registers an inbound file key for a project asset.
func (s *Service) AddFileMapEntry(ctx context.Context, mapKey string, projectAssetID int64) error {
	if s.fileMaps == nil {
		return errors.New("ingest service: file maps not configured")
	}
	entry := ingest.FileMapEntry{
		MapKey:         strings.TrimSpace(mapKey),
		ProjectAssetID: projectAssetID,
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	return s.fileMaps.Add(ctx, entry)
}

// FileMapEntries lists the file map entries for a project asset.
func (s *Service) FileMapEntries(ctx context.Context, projectAssetID int64) ([]ingest.FileMapEntry, error) {
	if s.fileMaps == nil {
		return nil, errors.New("ingest service: file maps not configured")
	}
	if projectAssetID <= 0 {
		return nil, ingest.ErrEmptyProjectAssetID
	}
	return s.fileMaps.ListByProjectAsset(ctx, projectAssetID)
}
