package wizard

import "time"

// IdentityResult is the committed outcome of the identity step.
type IdentityResult struct {
	ClientName  string
	ProjectName string
	ProjectID   int64
	AssetTypeID int
	AssetName   string
	AssetID     int64
}

// LinkResult is the committed outcome of the project link step.
type LinkResult struct {
	ProjectID      int64
	ProjectName    string
	PairedWith     *int64
	ProjectAssetID int64
}

// LocationResult is the committed outcome of the location step.
type LocationResult struct {
	Latitude  float64
	Longitude float64
	Elevation float64
}

// IngestResult is the committed outcome of the ingest step.
type IngestResult struct {
	Sender        string
	GmailFolderID string
}

// Session is the transient, in-memory accumulation of validated data and
// generated identifiers across the wizard's steps. It is never persisted;
// abandoning a session mid-flow leaves rows committed by earlier steps in
// storage as orphans.
//
// Each result pointer is nil until its step commits, so the data available
// at a given step is exactly what prior steps produced.
type Session struct {
	ID        string
	Step      Step
	Cancelled bool
	CreatedAt time.Time

	Identity *IdentityResult
	Link     *LinkResult
	Location *LocationResult
	Ingest   *IngestResult

	// LastError is the message surfaced on the current step, cleared on
	// the next successful transition.
	LastError string
}

// Active reports whether the session still accepts events.
func (s *Session) Active() bool {
	return s != nil && !s.Cancelled && s.Step != StepCompleted
}

// ApplyIdentity commits the identity step outcome and advances.
func (s *Session) ApplyIdentity(result IdentityResult) error {
	if err := s.ensureAt(StepIdentity); err != nil {
		return err
	}
	s.Identity = &result
	s.Step = StepProjectLink
	s.LastError = ""
	return nil
}

// ApplyLink commits the project link outcome and advances.
func (s *Session) ApplyLink(result LinkResult) error {
	if err := s.ensureAt(StepProjectLink); err != nil {
		return err
	}
	if s.Identity == nil {
		return ErrMissingPriorStep
	}
	s.Link = &result
	s.Step = StepLocation
	s.LastError = ""
	return nil
}

// ApplyLocation commits the location outcome and advances.
func (s *Session) ApplyLocation(result LocationResult) error {
	if err := s.ensureAt(StepLocation); err != nil {
		return err
	}
	if s.Link == nil {
		return ErrMissingPriorStep
	}
	s.Location = &result
	s.Step = StepIngest
	s.LastError = ""
	return nil
}

// ApplyIngest commits the ingest outcome and completes the wizard.
func (s *Session) ApplyIngest(result IngestResult) error {
	if err := s.ensureAt(StepIngest); err != nil {
		return err
	}
	if s.Link == nil {
		return ErrMissingPriorStep
	}
	s.Ingest = &result
	s.Step = StepCompleted
	s.LastError = ""
	return nil
}

// Back moves to the previous step. It never re-validates and never repeats
// a side effect; committed results stay in place so fields remain populated.
func (s *Session) Back() error {
	if !s.Active() {
		return ErrSessionClosed
	}
	if s.Step > StepIdentity {
		s.Step--
	}
	s.LastError = ""
	return nil
}

// Cancel discards the session unconditionally. Rows committed by earlier
// steps are not rolled back; cancellation only stops further writes.
func (s *Session) Cancel() error {
	if s == nil || s.Cancelled {
		return ErrSessionClosed
	}
	s.Cancelled = true
	return nil
}

func (s *Session) ensureAt(step Step) error {
	if !s.Active() {
		return ErrSessionClosed
	}
	if s.Step != step {
		return ErrStepOutOfOrder
	}
	return nil
}
