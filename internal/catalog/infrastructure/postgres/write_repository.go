package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	catalog "windasset-cloud/internal/catalog/domain"
)

// WriteRepository is a Postgres implementation for creating clients and
// projects.
type WriteRepository struct {
	db DBTX
}

// NewWriteRepository constructs a repository.
func NewWriteRepository(db DBTX) *WriteRepository {
	return &WriteRepository{db: db}
}

// CreateClient inserts a client and returns the generated id.
func (r *WriteRepository) CreateClient(ctx context.Context, name string) (int64, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("catalog write repo: nil db")
	}
	client := catalog.Client{Name: strings.TrimSpace(name)}
	if err := client.Validate(); err != nil {
		return 0, err
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, `
INSERT INTO clients (name)
VALUES ($1)
RETURNING client_id`, client.Name).Scan(&id); err != nil {
		return 0, fmt.Errorf("catalog write repo: create client: %w", err)
	}
	return id, nil
}

// CreateProject inserts a project under a client and returns the generated
// id.
func (r *WriteRepository) CreateProject(ctx context.Context, clientID int64, name string) (int64, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("catalog write repo: nil db")
	}
	project := catalog.Project{ClientID: clientID, Name: strings.TrimSpace(name)}
	if err := project.Validate(); err != nil {
		return 0, err
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, `
INSERT INTO projects (client_id, name)
VALUES ($1, $2)
RETURNING project_id`, project.ClientID, project.Name).Scan(&id); err != nil {
		return 0, fmt.Errorf("catalog write repo: create project: %w", err)
	}
	return id, nil
}
