package catalog

import "errors"

var (
	// ErrEmptyClientName is returned when a client name is blank.
	ErrEmptyClientName = errors.New("catalog: empty client name")
	// ErrEmptyProjectName is returned when a project name is blank.
	ErrEmptyProjectName = errors.New("catalog: empty project name")
	// ErrEmptyClientID is returned when a client id is missing.
	ErrEmptyClientID = errors.New("catalog: empty client id")
	// ErrClientNotFound indicates a missing client record.
	ErrClientNotFound = errors.New("catalog: client not found")
	// ErrProjectNotFound indicates the project does not exist under the client.
	ErrProjectNotFound = errors.New("catalog: project not found for client")
)
