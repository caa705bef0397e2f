package application

import (
	"context"
	"errors"
	"testing"

	assetsmemory "windasset-cloud/internal/assets/infrastructure/memory"
	catalog "windasset-cloud/internal/catalog/domain"
	catalogmemory "windasset-cloud/internal/catalog/infrastructure/memory"
	"windasset-cloud/internal/eventbus"
	ingestmemory "windasset-cloud/internal/ingest/infrastructure/memory"
	"windasset-cloud/internal/maillabel"
	"windasset-cloud/internal/wizard/application/events"
	wizard "windasset-cloud/internal/wizard/domain"
)

type fixture struct {
	service *Service
	lookup  *catalogmemory.LookupRepository
	store   *assetsmemory.Repository
	configs *ingestmemory.ConfigRepository
}

type stubResolver struct {
	match maillabel.Match
	found bool
	err   error
	calls int
}

func (s *stubResolver) Resolve(ctx context.Context, displayText string) (maillabel.Match, bool, error) {
	s.calls++
	return s.match, s.found, s.err
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	lookup := catalogmemory.NewLookupRepository()
	lookup.SeedClient(catalog.Client{ID: 1, Name: "Acme Wind"})
	lookup.SeedProject(catalog.Project{ID: 10, ClientID: 1, Name: "Site 9"})
	lookup.SeedMetTower(10, catalog.ProjectAssetRef{ID: 7, Name: "MM42"})

	store := assetsmemory.NewRepository()
	configs := ingestmemory.NewConfigRepository()

	service, err := NewService(lookup, store, store, store, configs, opts...)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}
	return &fixture{service: service, lookup: lookup, store: store, configs: configs}
}

func identityForm() wizard.IdentityForm {
	return wizard.IdentityForm{
		ClientName:  "Acme Wind",
		ProjectName: "Site 9",
		AssetTypeID: 2,
		AssetName:   "ZX300-0042",
	}
}

func ptr(v float64) *float64 { return &v }

func (f *fixture) start(t *testing.T) string {
	t.Helper()
	session, err := f.service.StartSession(context.Background())
	if err != nil {
		t.Fatalf("StartSession error: %v", err)
	}
	return session.ID
}

func TestWizardFullFlow(t *testing.T) {
	resolver := &stubResolver{match: maillabel.Match{LabelID: "Label_207", LabelName: "Acme Wind/ZX300-0042"}, found: true}
	f := newFixture(t, WithLabelResolver(resolver))
	ctx := context.Background()
	id := f.start(t)

	session, err := f.service.Next(ctx, id, identityForm())
	if err != nil {
		t.Fatalf("identity step error: %v", err)
	}
	if session.Identity == nil || session.Identity.AssetID == 0 {
		t.Fatal("expected asset id recorded after identity step")
	}
	if session.Step != wizard.StepProjectLink {
		t.Fatalf("expected project link step, got %s", session.Step)
	}

	session, err = f.service.Next(ctx, id, wizard.ProjectLinkForm{ProjectName: "Site 9", Pairing: "7"})
	if err != nil {
		t.Fatalf("link step error: %v", err)
	}
	if session.Link == nil || session.Link.ProjectAssetID == 0 {
		t.Fatal("expected project asset id recorded after link step")
	}
	if session.Link.PairedWith == nil || *session.Link.PairedWith != 7 {
		t.Fatalf("expected paired-with 7, got %v", session.Link.PairedWith)
	}

	session, err = f.service.Next(ctx, id, wizard.LocationForm{Latitude: ptr(40), Longitude: ptr(-105), Elevation: ptr(1600)})
	if err != nil {
		t.Fatalf("location step error: %v", err)
	}
	details, err := f.store.List(ctx, session.Link.ProjectAssetID)
	if err != nil {
		t.Fatalf("List details error: %v", err)
	}
	if len(details) != 3 {
		t.Fatalf("expected 3 detail rows, got %d", len(details))
	}

	session, err = f.service.Next(ctx, id, wizard.IngestForm{Sender: "data@acme.com"})
	if err != nil {
		t.Fatalf("ingest step error: %v", err)
	}
	if session.Step != wizard.StepCompleted {
		t.Fatalf("expected completed, got %s", session.Step)
	}
	if session.Ingest.GmailFolderID != "Label_207" {
		t.Fatalf("expected resolved label id, got %q", session.Ingest.GmailFolderID)
	}

	saved, err := f.configs.Get(ctx, session.Link.ProjectAssetID)
	if err != nil {
		t.Fatalf("Get config error: %v", err)
	}
	if saved.Sender != "data@acme.com" || saved.GmailFolderID != "Label_207" {
		t.Fatalf("unexpected saved config: %+v", saved)
	}

	// completed sessions are gone
	if _, err := f.service.Session(id); !errors.Is(err, wizard.ErrSessionNotFound) {
		t.Fatalf("expected session removed after completion, got %v", err)
	}
}

func TestWizardIdentityCreatesSingleAsset(t *testing.T) {
	f := newFixture(t)
	id := f.start(t)

	if _, err := f.service.Next(context.Background(), id, identityForm()); err != nil {
		t.Fatalf("identity step error: %v", err)
	}
	if count := f.store.AssetCount(); count != 1 {
		t.Fatalf("expected one asset created, got %d", count)
	}
	if count := f.store.ProjectAssetCount(); count != 0 {
		t.Fatalf("expected no project assets before link step, got %d", count)
	}
}

func TestWizardRepositoryFailureKeepsStep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.start(t)

	storeErr := errors.New("insert failed")
	f.store.FailCreateAsset(storeErr)

	session, err := f.service.Next(ctx, id, identityForm())
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected repository error passed through, got %v", err)
	}
	if session.Step != wizard.StepIdentity {
		t.Fatalf("expected session still on identity, got %s", session.Step)
	}
	if session.Identity != nil {
		t.Fatal("expected no identity data merged on failure")
	}
	if session.LastError == "" {
		t.Fatal("expected last error recorded")
	}

	// retry succeeds once the store recovers
	f.store.FailCreateAsset(nil)
	session, err = f.service.Next(ctx, id, identityForm())
	if err != nil {
		t.Fatalf("retry error: %v", err)
	}
	if session.Step != wizard.StepProjectLink {
		t.Fatalf("expected advance on retry, got %s", session.Step)
	}
	if session.LastError != "" {
		t.Fatalf("expected last error cleared, got %q", session.LastError)
	}
}

func TestWizardValidationFailureKeepsStep(t *testing.T) {
	f := newFixture(t)
	id := f.start(t)

	session, err := f.service.Next(context.Background(), id, wizard.IdentityForm{
		ClientName:  "Acme Wind",
		ProjectName: "Site 9",
		AssetTypeID: 2,
		AssetName:   "Z",
	})
	if !wizard.IsRecoverable(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if session.Step != wizard.StepIdentity {
		t.Fatalf("expected session still on identity, got %s", session.Step)
	}
	if f.store.AssetCount() != 0 {
		t.Fatal("expected no asset created on validation failure")
	}
}

func TestWizardWrongFormForStep(t *testing.T) {
	f := newFixture(t)
	id := f.start(t)

	_, err := f.service.Next(context.Background(), id, wizard.IngestForm{Sender: "data@acme.com"})
	if !errors.Is(err, wizard.ErrUnexpectedInput) {
		t.Fatalf("expected ErrUnexpectedInput, got %v", err)
	}
}

func TestWizardBackKeepsCommittedData(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.start(t)

	if _, err := f.service.Next(ctx, id, identityForm()); err != nil {
		t.Fatalf("identity step error: %v", err)
	}
	session, err := f.service.Back(ctx, id)
	if err != nil {
		t.Fatalf("Back error: %v", err)
	}
	if session.Step != wizard.StepIdentity {
		t.Fatalf("expected identity step after back, got %s", session.Step)
	}
	if session.Identity == nil {
		t.Fatal("expected identity data kept after back")
	}
}

func TestWizardCancelKeepsCommittedRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.start(t)

	if _, err := f.service.Next(ctx, id, identityForm()); err != nil {
		t.Fatalf("identity step error: %v", err)
	}
	if _, err := f.service.Next(ctx, id, wizard.ProjectLinkForm{ProjectName: "Site 9"}); err != nil {
		t.Fatalf("link step error: %v", err)
	}

	session, err := f.service.Cancel(ctx, id)
	if err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if !session.Cancelled {
		t.Fatal("expected session marked cancelled")
	}

	// no compensation: rows written by completed steps stay
	if f.store.AssetCount() != 1 {
		t.Fatalf("expected asset row kept, got %d", f.store.AssetCount())
	}
	if f.store.ProjectAssetCount() != 1 {
		t.Fatalf("expected project asset row kept, got %d", f.store.ProjectAssetCount())
	}
	if _, err := f.service.Session(id); !errors.Is(err, wizard.ErrSessionNotFound) {
		t.Fatalf("expected session removed after cancel, got %v", err)
	}
}

func TestWizardLabelMissIsNonFatal(t *testing.T) {
	resolver := &stubResolver{found: false}
	f := newFixture(t, WithLabelResolver(resolver))
	ctx := context.Background()
	id := f.start(t)

	if _, err := f.service.Next(ctx, id, identityForm()); err != nil {
		t.Fatalf("identity step error: %v", err)
	}
	if _, err := f.service.Next(ctx, id, wizard.ProjectLinkForm{ProjectName: "Site 9"}); err != nil {
		t.Fatalf("link step error: %v", err)
	}
	if _, err := f.service.Next(ctx, id, wizard.LocationForm{Latitude: ptr(40), Longitude: ptr(-105), Elevation: ptr(1600)}); err != nil {
		t.Fatalf("location step error: %v", err)
	}

	session, err := f.service.Next(ctx, id, wizard.IngestForm{Sender: "data@acme.com"})
	if err != nil {
		t.Fatalf("ingest step error: %v", err)
	}
	if session.Step != wizard.StepCompleted {
		t.Fatalf("expected completion despite label miss, got %s", session.Step)
	}
	if session.Ingest.GmailFolderID != "" {
		t.Fatalf("expected blank label id on miss, got %q", session.Ingest.GmailFolderID)
	}
	if resolver.calls != 1 {
		t.Fatalf("expected one resolver call, got %d", resolver.calls)
	}
}

func TestWizardExplicitLabelSkipsResolver(t *testing.T) {
	resolver := &stubResolver{found: true, match: maillabel.Match{LabelID: "Label_999"}}
	f := newFixture(t, WithLabelResolver(resolver))
	ctx := context.Background()
	id := f.start(t)

	if _, err := f.service.Next(ctx, id, identityForm()); err != nil {
		t.Fatalf("identity step error: %v", err)
	}
	if _, err := f.service.Next(ctx, id, wizard.ProjectLinkForm{ProjectName: "Site 9"}); err != nil {
		t.Fatalf("link step error: %v", err)
	}
	if _, err := f.service.Next(ctx, id, wizard.LocationForm{Latitude: ptr(40), Longitude: ptr(-105), Elevation: ptr(1600)}); err != nil {
		t.Fatalf("location step error: %v", err)
	}

	session, err := f.service.Next(ctx, id, wizard.IngestForm{Sender: "data@acme.com", GmailFolderID: "Label_42"})
	if err != nil {
		t.Fatalf("ingest step error: %v", err)
	}
	if session.Ingest.GmailFolderID != "Label_42" {
		t.Fatalf("expected explicit label kept, got %q", session.Ingest.GmailFolderID)
	}
	if resolver.calls != 0 {
		t.Fatalf("expected resolver not called, got %d calls", resolver.calls)
	}
}

func TestWizardPublishesLifecycleEvents(t *testing.T) {
	bus := eventbus.NewInMemoryBus()
	var created []events.AssetCreated
	var completed []events.WizardCompleted
	bus.Subscribe(eventbus.For[events.AssetCreated](), func(ctx context.Context, event any) error {
		created = append(created, event.(events.AssetCreated))
		return nil
	})
	bus.Subscribe(eventbus.For[events.WizardCompleted](), func(ctx context.Context, event any) error {
		completed = append(completed, event.(events.WizardCompleted))
		return nil
	})

	f := newFixture(t, WithBus(bus))
	ctx := context.Background()
	id := f.start(t)

	if _, err := f.service.Next(ctx, id, identityForm()); err != nil {
		t.Fatalf("identity step error: %v", err)
	}
	if _, err := f.service.Next(ctx, id, wizard.ProjectLinkForm{ProjectName: "Site 9"}); err != nil {
		t.Fatalf("link step error: %v", err)
	}
	if _, err := f.service.Next(ctx, id, wizard.LocationForm{Latitude: ptr(40), Longitude: ptr(-105), Elevation: ptr(1600)}); err != nil {
		t.Fatalf("location step error: %v", err)
	}
	if _, err := f.service.Next(ctx, id, wizard.IngestForm{Sender: "data@acme.com"}); err != nil {
		t.Fatalf("ingest step error: %v", err)
	}

	if len(created) != 1 || created[0].AssetName != "ZX300-0042" {
		t.Fatalf("unexpected created events: %+v", created)
	}
	if len(completed) != 1 || completed[0].ProjectName != "Site 9" {
		t.Fatalf("unexpected completed events: %+v", completed)
	}
}

func TestUpsertDetailUpdatesExistingProperty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.start(t)

	if _, err := f.service.Next(ctx, id, identityForm()); err != nil {
		t.Fatalf("identity step error: %v", err)
	}
	session, err := f.service.Next(ctx, id, wizard.ProjectLinkForm{ProjectName: "Site 9"})
	if err != nil {
		t.Fatalf("link step error: %v", err)
	}
	projectAssetID := session.Link.ProjectAssetID

	if _, err := f.service.Next(ctx, id, wizard.LocationForm{Latitude: ptr(40), Longitude: ptr(-105), Elevation: ptr(1600)}); err != nil {
		t.Fatalf("location step error: %v", err)
	}

	// back to location and re-submit: still three rows, values replaced
	if _, err := f.service.Back(ctx, id); err != nil {
		t.Fatalf("Back error: %v", err)
	}
	if _, err := f.service.Next(ctx, id, wizard.LocationForm{Latitude: ptr(41), Longitude: ptr(-104), Elevation: ptr(1700)}); err != nil {
		t.Fatalf("location resubmit error: %v", err)
	}

	details, err := f.store.List(ctx, projectAssetID)
	if err != nil {
		t.Fatalf("List details error: %v", err)
	}
	if len(details) != 3 {
		t.Fatalf("expected 3 detail rows after resubmit, got %d", len(details))
	}
	values := make(map[string]string, len(details))
	for _, d := range details {
		values[d.Property] = d.Value
	}
	if values["Latitude"] != "41" || values["Longitude"] != "-104" || values["Elevation"] != "1700" {
		t.Fatalf("unexpected detail values: %v", values)
	}
}
