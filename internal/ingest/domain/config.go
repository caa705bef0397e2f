package ingest

import (
	"context"
	"strings"
)

// Config governs how inbound data files and emails are attributed to a
// project asset. One config per project asset, enforced by Save's
// insert-or-update semantics rather than by the schema.
type Config struct {
	ProjectAssetID     int64
	Sender             string
	DropboxPath        string
	AltospherePath     string
	GmailFolderID      string
	EmailText          string
	LoggerSiteNumber   string
	ShowInLoggerViewer bool
	ShowInEmail        bool
}

// Validate checks config invariants. Sender is the only required field;
// an unresolved mailbox label saves as an empty GmailFolderID.
func (c Config) Validate() error {
	if c.ProjectAssetID <= 0 {
		return ErrEmptyProjectAssetID
	}
	if strings.TrimSpace(c.Sender) == "" {
		return ErrEmptySender
	}
	return nil
}

// ConfigRepository persists ingest configs. Save updates in place when a
// row exists for the project asset, inserts otherwise.
type ConfigRepository interface {
	Get(ctx context.Context, projectAssetID int64) (*Config, error)
	Save(ctx context.Context, config Config) error
}

// FileMapEntry maps an inbound file key to a project asset.
type FileMapEntry struct {
	MapKey         string
	ProjectAssetID int64
}

// Validate checks file map invariants.
func (e FileMapEntry) Validate() error {
	if e.MapKey == "" {
		return ErrEmptyMapKey
	}
	if e.ProjectAssetID <= 0 {
		return ErrEmptyProjectAssetID
	}
	return nil
}

// FileMapRepository persists file map entries.
type FileMapRepository interface {
	Add(ctx context.Context, entry FileMapEntry) error
	ListByProjectAsset(ctx context.Context, projectAssetID int64) ([]FileMapEntry, error)
}
