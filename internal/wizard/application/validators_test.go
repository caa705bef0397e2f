package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	catalog "windasset-cloud/internal/catalog/domain"
	catalogmemory "windasset-cloud/internal/catalog/infrastructure/memory"
	wizard "windasset-cloud/internal/wizard/domain"
)

func newLookupFixture(t *testing.T) *catalogmemory.LookupRepository {
	t.Helper()
	lookup := catalogmemory.NewLookupRepository()
	lookup.SeedClient(catalog.Client{ID: 1, Name: "Acme Wind"})
	lookup.SeedProject(catalog.Project{ID: 10, ClientID: 1, Name: "Site 9"})
	lookup.SeedAssetTypes(
		catalog.AssetType{ID: 1, Name: "Met Tower"},
		catalog.AssetType{ID: 2, Name: "Lidar"},
		catalog.AssetType{ID: 3, Name: "Sodar"},
	)
	lookup.SeedMetTower(10, catalog.ProjectAssetRef{ID: 7, Name: "MM42"})
	return lookup
}

func TestValidateIdentityResolvesProject(t *testing.T) {
	lookup := newLookupFixture(t)

	result, err := ValidateIdentity(context.Background(), lookup, wizard.IdentityForm{
		ClientName:  "Acme Wind",
		ProjectName: "Site 9",
		AssetTypeID: 2,
		AssetName:   "  ZX300-0042  ",
	})
	if err != nil {
		t.Fatalf("ValidateIdentity error: %v", err)
	}
	if result.ProjectID != 10 {
		t.Fatalf("expected project id 10, got %d", result.ProjectID)
	}
	if result.AssetName != "ZX300-0042" {
		t.Fatalf("expected trimmed asset name, got %q", result.AssetName)
	}
}

func TestValidateIdentityMissingFields(t *testing.T) {
	lookup := newLookupFixture(t)

	_, err := ValidateIdentity(context.Background(), lookup, wizard.IdentityForm{AssetName: "ZX300"})
	if !wizard.IsRecoverable(err) {
		t.Fatalf("expected recoverable validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "client") || !strings.Contains(err.Error(), "project") || !strings.Contains(err.Error(), "asset type") {
		t.Fatalf("expected all missing fields named, got %q", err.Error())
	}
}

func TestValidateIdentityShortName(t *testing.T) {
	lookup := newLookupFixture(t)

	_, err := ValidateIdentity(context.Background(), lookup, wizard.IdentityForm{
		ClientName:  "Acme Wind",
		ProjectName: "Site 9",
		AssetTypeID: 1,
		AssetName:   " X ",
	})
	if !wizard.IsRecoverable(err) {
		t.Fatalf("expected validation error for short name, got %v", err)
	}
}

func TestValidateIdentityUnknownProject(t *testing.T) {
	lookup := newLookupFixture(t)

	_, err := ValidateIdentity(context.Background(), lookup, wizard.IdentityForm{
		ClientName:  "Acme Wind",
		ProjectName: "Site 404",
		AssetTypeID: 1,
		AssetName:   "MM43",
	})
	var resolution *wizard.ResolutionError
	if !errors.As(err, &resolution) {
		t.Fatalf("expected resolution error, got %v", err)
	}
}

func TestValidateIdentityDuplicateName(t *testing.T) {
	lookup := newLookupFixture(t)
	lookup.SeedPlacedAsset(10, "MM42")

	_, err := ValidateIdentity(context.Background(), lookup, wizard.IdentityForm{
		ClientName:  "Acme Wind",
		ProjectName: "Site 9",
		AssetTypeID: 1,
		AssetName:   "MM42",
	})
	if !wizard.IsRecoverable(err) {
		t.Fatalf("expected duplicate-name validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestValidateProjectLinkStandalone(t *testing.T) {
	lookup := newLookupFixture(t)
	identity := &wizard.IdentityResult{
		ClientName: "Acme Wind", ProjectName: "Site 9", ProjectID: 10,
		AssetTypeID: 2, AssetName: "ZX300-0042", AssetID: 1,
	}

	for _, pairing := range []string{"", wizard.PairingStandalone} {
		result, err := ValidateProjectLink(context.Background(), lookup, identity, wizard.ProjectLinkForm{
			ProjectName: "Site 9",
			Pairing:     pairing,
		})
		if err != nil {
			t.Fatalf("pairing %q: unexpected error %v", pairing, err)
		}
		if result.PairedWith != nil {
			t.Fatalf("pairing %q: expected nil paired-with, got %d", pairing, *result.PairedWith)
		}
	}
}

func TestValidateProjectLinkPairsWithMetTower(t *testing.T) {
	lookup := newLookupFixture(t)
	identity := &wizard.IdentityResult{
		ClientName: "Acme Wind", ProjectName: "Site 9", ProjectID: 10,
		AssetTypeID: 2, AssetName: "ZX300-0042", AssetID: 1,
	}

	result, err := ValidateProjectLink(context.Background(), lookup, identity, wizard.ProjectLinkForm{
		ProjectName: "Site 9",
		Pairing:     "7",
	})
	if err != nil {
		t.Fatalf("ValidateProjectLink error: %v", err)
	}
	if result.PairedWith == nil || *result.PairedWith != 7 {
		t.Fatalf("expected paired-with 7, got %v", result.PairedWith)
	}
}

func TestValidateProjectLinkRejectsNonTowerTarget(t *testing.T) {
	lookup := newLookupFixture(t)
	identity := &wizard.IdentityResult{
		ClientName: "Acme Wind", ProjectName: "Site 9", ProjectID: 10,
		AssetTypeID: 2, AssetName: "ZX300-0042", AssetID: 1,
	}

	_, err := ValidateProjectLink(context.Background(), lookup, identity, wizard.ProjectLinkForm{
		ProjectName: "Site 9",
		Pairing:     "99",
	})
	var resolution *wizard.ResolutionError
	if !errors.As(err, &resolution) {
		t.Fatalf("expected resolution error for unknown tower, got %v", err)
	}
}

func TestValidateProjectLinkRejectsPairingForMetTower(t *testing.T) {
	lookup := newLookupFixture(t)
	identity := &wizard.IdentityResult{
		ClientName: "Acme Wind", ProjectName: "Site 9", ProjectID: 10,
		AssetTypeID: 1, AssetName: "MM43", AssetID: 1,
	}

	_, err := ValidateProjectLink(context.Background(), lookup, identity, wizard.ProjectLinkForm{
		ProjectName: "Site 9",
		Pairing:     "7",
	})
	if !wizard.IsRecoverable(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateProjectLinkMissingIdentity(t *testing.T) {
	lookup := newLookupFixture(t)

	_, err := ValidateProjectLink(context.Background(), lookup, nil, wizard.ProjectLinkForm{ProjectName: "Site 9"})
	if !wizard.IsRecoverable(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "restart") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestValidateLocationBounds(t *testing.T) {
	ptr := func(v float64) *float64 { return &v }

	cases := []struct {
		name    string
		lat     *float64
		lon     *float64
		elev    *float64
		wantErr bool
	}{
		{"all bounds min", ptr(-90), ptr(-180), ptr(-500), false},
		{"all bounds max", ptr(90), ptr(180), ptr(10000), false},
		{"typical", ptr(40.0), ptr(-105.0), ptr(1600.0), false},
		{"latitude too low", ptr(-90.1), ptr(0), ptr(0), true},
		{"latitude too high", ptr(90.1), ptr(0), ptr(0), true},
		{"longitude too low", ptr(0), ptr(-180.1), ptr(0), true},
		{"longitude too high", ptr(0), ptr(180.1), ptr(0), true},
		{"elevation too low", ptr(0), ptr(0), ptr(-500.1), true},
		{"elevation too high", ptr(0), ptr(0), ptr(10000.1), true},
		{"missing latitude", nil, ptr(0), ptr(0), true},
		{"missing longitude", ptr(0), nil, ptr(0), true},
		{"missing elevation", ptr(0), ptr(0), nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateLocation(wizard.LocationForm{Latitude: tc.lat, Longitude: tc.lon, Elevation: tc.elev})
			if tc.wantErr && !wizard.IsRecoverable(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateIngestRequiresSender(t *testing.T) {
	_, err := ValidateIngest(wizard.IngestForm{Sender: "   "})
	if !wizard.IsRecoverable(err) {
		t.Fatalf("expected validation error for blank sender, got %v", err)
	}

	form, err := ValidateIngest(wizard.IngestForm{Sender: " data@acme.com "})
	if err != nil {
		t.Fatalf("ValidateIngest error: %v", err)
	}
	if form.Sender != "data@acme.com" {
		t.Fatalf("expected trimmed sender, got %q", form.Sender)
	}
}
