package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	ingest "windasset-cloud/internal/ingest/domain"
)

const defaultConfigsTable = "ingest_configs"

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ConfigRepository is a Postgres implementation for ingest configs.
type ConfigRepository struct {
	db    DBTX
	table string
}

// NewConfigRepository constructs a repository.
func NewConfigRepository(db DBTX, opts ...ConfigOption) *ConfigRepository {
	repo := &ConfigRepository{db: db, table: defaultConfigsTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// ConfigOption configures the repository.
type ConfigOption func(*ConfigRepository)

// WithConfigsTable overrides the default table name.
func WithConfigsTable(table string) ConfigOption {
	return func(repo *ConfigRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// Get loads the ingest config for a project asset.
func (r *ConfigRepository) Get(ctx context.Context, projectAssetID int64) (*ingest.Config, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("ingest config repo: nil db")
	}
	if projectAssetID <= 0 {
		return nil, ingest.ErrEmptyProjectAssetID
	}

	query := fmt.Sprintf(`
SELECT project_asset_id, sender, dropbox_path, altosphere_path, gmail_folder_id,
	email_text, logger_site_number, show_in_logger_viewer, show_in_email
FROM %s
WHERE project_asset_id = $1
LIMIT 1`, r.table)

	var cfg ingest.Config
	if err := r.db.QueryRowContext(ctx, query, projectAssetID).Scan(
		&cfg.ProjectAssetID,
		&cfg.Sender,
		&cfg.DropboxPath,
		&cfg.AltospherePath,
		&cfg.GmailFolderID,
		&cfg.EmailText,
		&cfg.LoggerSiteNumber,
		&cfg.ShowInLoggerViewer,
		&cfg.ShowInEmail,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ingest.ErrConfigNotFound
		}
		return nil, fmt.Errorf("ingest config repo: get: %w", err)
	}
	return &cfg, nil
}

// Save updates the config in place when a row exists for the project asset,
// inserts otherwise.
func (r *ConfigRepository) Save(ctx context.Context, config ingest.Config) error {
	if r == nil || r.db == nil {
		return errors.New("ingest config repo: nil db")
	}
	if err := config.Validate(); err != nil {
		return err
	}

	_, err := r.Get(ctx, config.ProjectAssetID)
	switch {
	case errors.Is(err, ingest.ErrConfigNotFound):
		query := fmt.Sprintf(`
INSERT INTO %s (
	project_asset_id, sender, dropbox_path, altosphere_path, gmail_folder_id,
	email_text, logger_site_number, show_in_logger_viewer, show_in_email
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9
)`, r.table)
		if _, err := r.db.ExecContext(ctx, query,
			config.ProjectAssetID,
			config.Sender,
			config.DropboxPath,
			config.AltospherePath,
			config.GmailFolderID,
			config.EmailText,
			config.LoggerSiteNumber,
			config.ShowInLoggerViewer,
			config.ShowInEmail,
		); err != nil {
			return fmt.Errorf("ingest config repo: insert: %w", err)
		}
		return nil
	case err != nil:
		return err
	default:
		query := fmt.Sprintf(`
UPDATE %s
SET sender = $1,
	dropbox_path = $2,
	altosphere_path = $3,
	gmail_folder_id = $4,
	email_text = $5,
	logger_site_number = $6,
	show_in_logger_viewer = $7,
	show_in_email = $8
WHERE project_asset_id = $9`, r.table)
		if _, err := r.db.ExecContext(ctx, query,
			config.Sender,
			config.DropboxPath,
			config.AltospherePath,
			config.GmailFolderID,
			config.EmailText,
			config.LoggerSiteNumber,
			config.ShowInLoggerViewer,
			config.ShowInEmail,
			config.ProjectAssetID,
		); err != nil {
			return fmt.Errorf("ingest config repo: update: %w", err)
		}
		return nil
	}
}
