package wizard

import (
	"errors"
	"testing"
)

func activeSession() *Session {
	return &Session{ID: "s-1", Step: StepIdentity}
}

func identityResult() IdentityResult {
	return IdentityResult{
		ClientName: "Acme Wind", ProjectName: "Site 9", ProjectID: 10,
		AssetTypeID: 2, AssetName: "ZX300-0042", AssetID: 1,
	}
}

func TestSessionStepOrder(t *testing.T) {
	s := activeSession()

	if err := s.ApplyLink(LinkResult{ProjectID: 10, ProjectAssetID: 5}); !errors.Is(err, ErrStepOutOfOrder) {
		t.Fatalf("expected ErrStepOutOfOrder, got %v", err)
	}

	if err := s.ApplyIdentity(identityResult()); err != nil {
		t.Fatalf("ApplyIdentity error: %v", err)
	}
	if s.Step != StepProjectLink {
		t.Fatalf("expected project link step, got %s", s.Step)
	}

	if err := s.ApplyIdentity(identityResult()); !errors.Is(err, ErrStepOutOfOrder) {
		t.Fatalf("expected ErrStepOutOfOrder on repeat, got %v", err)
	}
}

func TestSessionApplyClearsLastError(t *testing.T) {
	s := activeSession()
	s.LastError = "asset name must be at least 2 characters"

	if err := s.ApplyIdentity(identityResult()); err != nil {
		t.Fatalf("ApplyIdentity error: %v", err)
	}
	if s.LastError != "" {
		t.Fatalf("expected last error cleared, got %q", s.LastError)
	}
}

func TestSessionBackStopsAtIdentity(t *testing.T) {
	s := activeSession()
	if err := s.ApplyIdentity(identityResult()); err != nil {
		t.Fatalf("ApplyIdentity error: %v", err)
	}

	if err := s.Back(); err != nil {
		t.Fatalf("Back error: %v", err)
	}
	if s.Step != StepIdentity {
		t.Fatalf("expected identity step, got %s", s.Step)
	}
	if s.Identity == nil {
		t.Fatal("expected identity data kept across back")
	}

	if err := s.Back(); err != nil {
		t.Fatalf("Back at first step error: %v", err)
	}
	if s.Step != StepIdentity {
		t.Fatalf("expected back to stay at identity, got %s", s.Step)
	}
}

func TestSessionClosedRejectsEvents(t *testing.T) {
	s := activeSession()
	if err := s.Cancel(); err != nil {
		t.Fatalf("Cancel error: %v", err)
	}

	if err := s.ApplyIdentity(identityResult()); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
	if err := s.Back(); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed on back, got %v", err)
	}
	if err := s.Cancel(); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed on repeat cancel, got %v", err)
	}
}

func TestSessionCompletion(t *testing.T) {
	s := activeSession()
	if err := s.ApplyIdentity(identityResult()); err != nil {
		t.Fatalf("ApplyIdentity error: %v", err)
	}
	if err := s.ApplyLink(LinkResult{ProjectID: 10, ProjectName: "Site 9", ProjectAssetID: 5}); err != nil {
		t.Fatalf("ApplyLink error: %v", err)
	}
	if err := s.ApplyLocation(LocationResult{Latitude: 40, Longitude: -105, Elevation: 1600}); err != nil {
		t.Fatalf("ApplyLocation error: %v", err)
	}
	if err := s.ApplyIngest(IngestResult{Sender: "data@acme.com"}); err != nil {
		t.Fatalf("ApplyIngest error: %v", err)
	}

	if s.Step != StepCompleted {
		t.Fatalf("expected completed, got %s", s.Step)
	}
	if s.Active() {
		t.Fatal("completed session must not accept events")
	}
}

func TestIsRecoverable(t *testing.T) {
	if !IsRecoverable(NewValidationError("sender is required")) {
		t.Fatal("validation errors are recoverable")
	}
	if !IsRecoverable(NewResolutionError("project not found")) {
		t.Fatal("resolution errors are recoverable")
	}
	if IsRecoverable(errors.New("connection reset")) {
		t.Fatal("repository errors are not recoverable")
	}
	if IsRecoverable(nil) {
		t.Fatal("nil is not recoverable")
	}
}
