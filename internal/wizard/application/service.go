package application

import (
	"context"
	"errors"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	assets "windasset-cloud/internal/assets/domain"
	catalog "windasset-cloud/internal/catalog/domain"
	"windasset-cloud/internal/eventbus"
	ingestapp "windasset-cloud/internal/ingest/application"
	ingest "windasset-cloud/internal/ingest/domain"
	"windasset-cloud/internal/maillabel"
	"windasset-cloud/internal/observability/metrics"
	"windasset-cloud/internal/wizard/application/events"
	wizard "windasset-cloud/internal/wizard/domain"
)

// LabelResolver resolves a display string to a mailbox label. A miss or an
// error is non-fatal to the ingest step.
type LabelResolver interface {
	Resolve(ctx context.Context, displayText string) (maillabel.Match, bool, error)
}

// Service owns the in-flight wizard sessions and drives each step:
// validate, run the step's single side-effecting repository call, merge the
// result, advance. Each step commits independently; there is no overarching
// transaction and no compensation on cancel.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*wizard.Session

	lookup        catalog.LookupRepository
	assetRepo     assets.AssetRepository
	projectAssets assets.ProjectAssetRepository
	details       assets.DetailRepository
	ingestConfigs ingest.ConfigRepository

	resolver LabelResolver
	defaults ingestapp.Config
	bus      eventbus.Bus
	logger   *log.Logger
}

// Option configures the service.
type Option func(*Service)

// WithLabelResolver enables mailbox label auto-resolution on the ingest
// step.
func WithLabelResolver(resolver LabelResolver) Option {
	return func(s *Service) { s.resolver = resolver }
}

// WithIngestDefaults applies configured path defaults to blank ingest
// fields.
func WithIngestDefaults(defaults ingestapp.Config) Option {
	return func(s *Service) { s.defaults = defaults }
}

// WithBus publishes wizard lifecycle events.
func WithBus(bus eventbus.Bus) Option {
	return func(s *Service) { s.bus = bus }
}

// WithLogger sets the service logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService constructs a wizard service.
func NewService(
	lookup catalog.LookupRepository,
	assetRepo assets.AssetRepository,
	projectAssets assets.ProjectAssetRepository,
	details assets.DetailRepository,
	ingestConfigs ingest.ConfigRepository,
	opts ...Option,
) (*Service, error) {
	if lookup == nil {
		return nil, errors.New("wizard service: nil lookup repository")
	}
	if assetRepo == nil {
		return nil, errors.New("wizard service: nil asset repository")
	}
	if projectAssets == nil {
		return nil, errors.New("wizard service: nil project asset repository")
	}
	if details == nil {
		return nil, errors.New("wizard service: nil detail repository")
	}
	if ingestConfigs == nil {
		return nil, errors.New("wizard service: nil ingest config repository")
	}

	s := &Service{
		sessions:      make(map[string]*wizard.Session),
		lookup:        lookup,
		assetRepo:     assetRepo,
		projectAssets: projectAssets,
		details:       details,
		ingestConfigs: ingestConfigs,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// StartSession opens a new wizard session at the identity step.
func (s *Service) StartSession(ctx context.Context) (wizard.Session, error) {
	_ = ctx
	session := &wizard.Session{
		ID:        uuid.NewString(),
		Step:      wizard.StepIdentity,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	metrics.SessionStarted()
	return *session, nil
}

// Session returns a snapshot of a session.
func (s *Service) Session(sessionID string) (wizard.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return wizard.Session{}, wizard.ErrSessionNotFound
	}
	return *session, nil
}

// Next advances the session one step with the given form. On a validation
// or resolution failure the session stays on its step with the error
// surfaced; on a repository failure the error is surfaced verbatim and no
// merge happens, though the write itself may have partially applied
// server-side. The returned snapshot reflects the session after the event.
func (s *Service) Next(ctx context.Context, sessionID string, input wizard.StepInput) (wizard.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return wizard.Session{}, wizard.ErrSessionNotFound
	}
	if !session.Active() {
		return *session, wizard.ErrSessionClosed
	}

	step := session.Step
	started := time.Now()
	err := s.advance(ctx, session, input)
	metrics.WizardStepObserve(step.String(), started)

	switch {
	case err == nil:
		metrics.WizardStep(step.String(), metrics.ResultSuccess)
	case wizard.IsRecoverable(err):
		metrics.WizardStep(step.String(), metrics.ResultValidation)
		session.LastError = err.Error()
	case errors.Is(err, wizard.ErrUnexpectedInput):
		// wrong payload for the step, not a step failure
	default:
		metrics.WizardStep(step.String(), metrics.ResultRepository)
		session.LastError = err.Error()
	}

	snapshot := *session
	if session.Step == wizard.StepCompleted {
		delete(s.sessions, sessionID)
		metrics.SessionEnded()
	}
	return snapshot, err
}

func (s *Service) advance(ctx context.Context, session *wizard.Session, input wizard.StepInput) error {
	switch session.Step {
	case wizard.StepIdentity:
		form, ok := input.(wizard.IdentityForm)
		if !ok {
			return wizard.ErrUnexpectedInput
		}
		return s.commitIdentity(ctx, session, form)
	case wizard.StepProjectLink:
		form, ok := input.(wizard.ProjectLinkForm)
		if !ok {
			return wizard.ErrUnexpectedInput
		}
		return s.commitLink(ctx, session, form)
	case wizard.StepLocation:
		form, ok := input.(wizard.LocationForm)
		if !ok {
			return wizard.ErrUnexpectedInput
		}
		return s.commitLocation(ctx, session, form)
	case wizard.StepIngest:
		form, ok := input.(wizard.IngestForm)
		if !ok {
			return wizard.ErrUnexpectedInput
		}
		return s.commitIngest(ctx, session, form)
	default:
		return wizard.ErrSessionClosed
	}
}

func (s *Service) commitIdentity(ctx context.Context, session *wizard.Session, form wizard.IdentityForm) error {
	result, err := ValidateIdentity(ctx, s.lookup, form)
	if err != nil {
		return err
	}

	assetID, err := s.assetRepo.CreateAsset(ctx, result.AssetName, result.AssetTypeID)
	if err != nil {
		return err
	}
	result.AssetID = assetID

	if err := session.ApplyIdentity(result); err != nil {
		return err
	}
	s.publish(ctx, events.AssetCreated{
		SessionID:   session.ID,
		AssetID:     assetID,
		AssetName:   result.AssetName,
		AssetTypeID: result.AssetTypeID,
		ProjectID:   result.ProjectID,
		ClientName:  result.ClientName,
	})
	return nil
}

func (s *Service) commitLink(ctx context.Context, session *wizard.Session, form wizard.ProjectLinkForm) error {
	result, err := ValidateProjectLink(ctx, s.lookup, session.Identity, form)
	if err != nil {
		return err
	}

	projectAssetID, err := s.projectAssets.LinkAssetToProject(ctx, assets.LinkInput{
		ProjectID:  result.ProjectID,
		AssetID:    session.Identity.AssetID,
		Name:       session.Identity.AssetName,
		TypeID:     session.Identity.AssetTypeID,
		PairedWith: result.PairedWith,
	})
	if err != nil {
		return err
	}
	result.ProjectAssetID = projectAssetID

	if err := session.ApplyLink(result); err != nil {
		return err
	}
	s.publish(ctx, events.AssetLinked{
		SessionID:      session.ID,
		ProjectAssetID: projectAssetID,
		ProjectID:      result.ProjectID,
		PairedWith:     result.PairedWith,
	})
	return nil
}

func (s *Service) commitLocation(ctx context.Context, session *wizard.Session, form wizard.LocationForm) error {
	result, err := ValidateLocation(form)
	if err != nil {
		return err
	}
	if session.Link == nil {
		return wizard.ErrMissingPriorStep
	}

	projectAssetID := session.Link.ProjectAssetID
	writes := []assets.Detail{
		{ProjectAssetID: projectAssetID, Property: assets.PropertyLatitude, Value: formatCoordinate(result.Latitude)},
		{ProjectAssetID: projectAssetID, Property: assets.PropertyLongitude, Value: formatCoordinate(result.Longitude)},
		{ProjectAssetID: projectAssetID, Property: assets.PropertyElevation, Value: formatCoordinate(result.Elevation)},
	}
	for _, detail := range writes {
		if err := UpsertDetail(ctx, s.details, detail); err != nil {
			return err
		}
	}

	return session.ApplyLocation(result)
}

func (s *Service) commitIngest(ctx context.Context, session *wizard.Session, form wizard.IngestForm) error {
	form, err := ValidateIngest(form)
	if err != nil {
		return err
	}
	if session.Link == nil || session.Identity == nil {
		return wizard.ErrMissingPriorStep
	}

	form = s.applyIngestDefaults(session, form)
	if form.GmailFolderID == "" {
		form.GmailFolderID = s.resolveLabel(ctx, session, form)
	}

	config := ingest.Config{
		ProjectAssetID:     session.Link.ProjectAssetID,
		Sender:             form.Sender,
		DropboxPath:        form.DropboxPath,
		AltospherePath:     form.AltospherePath,
		GmailFolderID:      form.GmailFolderID,
		EmailText:          form.EmailText,
		LoggerSiteNumber:   form.LoggerSiteNumber,
		ShowInLoggerViewer: form.ShowInLoggerViewer,
		ShowInEmail:        form.ShowInEmail,
	}
	if err := s.ingestConfigs.Save(ctx, config); err != nil {
		return err
	}

	if err := session.ApplyIngest(wizard.IngestResult{
		Sender:        form.Sender,
		GmailFolderID: form.GmailFolderID,
	}); err != nil {
		return err
	}
	s.publish(ctx, events.WizardCompleted{
		SessionID:      session.ID,
		ProjectAssetID: session.Link.ProjectAssetID,
		AssetName:      session.Identity.AssetName,
		ProjectName:    session.Link.ProjectName,
		ClientName:     session.Identity.ClientName,
	})
	return nil
}

func (s *Service) applyIngestDefaults(session *wizard.Session, form wizard.IngestForm) wizard.IngestForm {
	if form.DropboxPath == "" && s.defaults.DropboxRoot != "" {
		form.DropboxPath = s.defaults.DefaultDropboxPath(session.Identity.AssetName)
	}
	if form.AltospherePath == "" && s.defaults.AltosphereRoot != "" {
		form.AltospherePath = s.defaults.DefaultAltospherePath(session.Link.ProjectName, session.Identity.AssetName)
	}
	return form
}

// resolveLabel auto-populates the mailbox label, best-effort. A miss or an
// API failure leaves the field blank and the step proceeds regardless.
func (s *Service) resolveLabel(ctx context.Context, session *wizard.Session, form wizard.IngestForm) string {
	if s.resolver == nil {
		return ""
	}
	displayText := form.EmailText
	if displayText == "" {
		displayText = session.Identity.ClientName + " " + session.Identity.AssetName
	}

	match, found, err := s.resolver.Resolve(ctx, displayText)
	if err != nil {
		metrics.LabelResolution(metrics.LabelError)
		s.logf("label resolution failed for %q: %v", displayText, err)
		return ""
	}
	if !found {
		metrics.LabelResolution(metrics.LabelMiss)
		s.logf("no mailbox label found for %q", displayText)
		return ""
	}
	metrics.LabelResolution(metrics.LabelHit)
	return match.LabelID
}

// Back moves the session to the previous step without re-validating or
// repeating side effects.
func (s *Service) Back(ctx context.Context, sessionID string) (wizard.Session, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return wizard.Session{}, wizard.ErrSessionNotFound
	}
	if err := session.Back(); err != nil {
		return *session, err
	}
	return *session, nil
}

// Cancel discards the session. Rows committed by earlier steps stay in
// storage; cancellation only stops further writes.
func (s *Service) Cancel(ctx context.Context, sessionID string) (wizard.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return wizard.Session{}, wizard.ErrSessionNotFound
	}
	lastStep := session.Step
	if err := session.Cancel(); err != nil {
		return *session, err
	}
	delete(s.sessions, sessionID)
	metrics.SessionEnded()
	metrics.SessionCancelled()

	s.publish(ctx, events.WizardCancelled{SessionID: session.ID, LastStep: lastStep.String()})
	return *session, nil
}

// UpsertDetail keeps one current value per (project asset, property): it
// updates when the property is already present, adds otherwise. The store
// itself allows duplicates, so presence-by-property is the existence check.
func UpsertDetail(ctx context.Context, repo assets.DetailRepository, detail assets.Detail) error {
	if repo == nil {
		return errors.New("wizard service: nil detail repository")
	}
	existing, err := repo.List(ctx, detail.ProjectAssetID)
	if err != nil {
		return err
	}
	for _, row := range existing {
		if row.Property == detail.Property {
			return repo.Update(ctx, detail)
		}
	}
	return repo.Add(ctx, detail)
}

func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func (s *Service) publish(ctx context.Context, event any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logf("publish %s: %v", eventbus.TypeOf(event), err)
	}
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
