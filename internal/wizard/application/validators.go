package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	assets "windasset-cloud/internal/assets/domain"
	catalog "windasset-cloud/internal/catalog/domain"
	wizard "windasset-cloud/internal/wizard/domain"
)

// Latitude, longitude and elevation bounds for the location step.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
	MinElevation = -500.0
	MaxElevation = 10000.0
)

// ValidateIdentity checks the identity step inputs. It is the only
// validator that touches storage, and only with reads: resolving the
// project and checking asset-name uniqueness within it. The uniqueness
// check is check-then-act; overlapping sessions can both pass it before
// either commits.
func ValidateIdentity(ctx context.Context, lookup catalog.LookupRepository, form wizard.IdentityForm) (wizard.IdentityResult, error) {
	var missing []string
	if form.ClientName == "" {
		missing = append(missing, "client")
	}
	if form.ProjectName == "" {
		missing = append(missing, "project")
	}
	if form.AssetTypeID <= 0 {
		missing = append(missing, "asset type")
	}
	if len(missing) > 0 {
		return wizard.IdentityResult{}, wizard.NewValidationError("required: " + strings.Join(missing, ", "))
	}

	name := strings.TrimSpace(form.AssetName)
	if len(name) < 2 {
		return wizard.IdentityResult{}, wizard.NewValidationError("asset name must be at least 2 characters")
	}

	projectID, err := lookup.ResolveProject(ctx, form.ClientName, form.ProjectName)
	if errors.Is(err, catalog.ErrProjectNotFound) {
		return wizard.IdentityResult{}, wizard.NewResolutionError(
			fmt.Sprintf("project %q not found for client %q", form.ProjectName, form.ClientName))
	}
	if err != nil {
		return wizard.IdentityResult{}, err
	}

	exists, err := lookup.AssetNameExists(ctx, projectID, name)
	if err != nil {
		return wizard.IdentityResult{}, err
	}
	if exists {
		return wizard.IdentityResult{}, wizard.NewValidationError(
			fmt.Sprintf("asset %q already exists in project %q", name, form.ProjectName))
	}

	return wizard.IdentityResult{
		ClientName:  form.ClientName,
		ProjectName: form.ProjectName,
		ProjectID:   projectID,
		AssetTypeID: form.AssetTypeID,
		AssetName:   name,
	}, nil
}

// ValidateProjectLink checks the project link inputs against the identity
// step's committed data. The sentinel "standalone" is an accepted explicit
// non-pairing choice; a concrete pairing id must resolve to a met-tower
// placement in the target project.
func ValidateProjectLink(ctx context.Context, lookup catalog.LookupRepository, identity *wizard.IdentityResult, form wizard.ProjectLinkForm) (wizard.LinkResult, error) {
	if form.ProjectName == "" {
		return wizard.LinkResult{}, wizard.NewValidationError("project selection is required")
	}
	if identity == nil {
		return wizard.LinkResult{}, wizard.NewValidationError("asset information is missing, restart the wizard")
	}

	projectID, err := lookup.ResolveProject(ctx, identity.ClientName, form.ProjectName)
	if errors.Is(err, catalog.ErrProjectNotFound) {
		return wizard.LinkResult{}, wizard.NewResolutionError(
			fmt.Sprintf("project %q not found for client %q", form.ProjectName, identity.ClientName))
	}
	if err != nil {
		return wizard.LinkResult{}, err
	}

	pairedWith, err := resolvePairing(ctx, lookup, projectID, identity.AssetTypeID, form.Pairing)
	if err != nil {
		return wizard.LinkResult{}, err
	}

	return wizard.LinkResult{
		ProjectID:   projectID,
		ProjectName: form.ProjectName,
		PairedWith:  pairedWith,
	}, nil
}

func resolvePairing(ctx context.Context, lookup catalog.LookupRepository, projectID int64, assetTypeID int, pairing string) (*int64, error) {
	if pairing == "" || pairing == wizard.PairingStandalone {
		return nil, nil
	}
	if !assets.IsRemoteSensing(assetTypeID) {
		return nil, wizard.NewValidationError("pairing is only available for lidar and sodar assets")
	}

	id, err := strconv.ParseInt(pairing, 10, 64)
	if err != nil {
		return nil, wizard.NewValidationError(fmt.Sprintf("invalid pairing selection %q", pairing))
	}

	towers, err := lookup.MetTowersByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, tower := range towers {
		if tower.ID == id {
			return &id, nil
		}
	}
	return nil, wizard.NewResolutionError(
		fmt.Sprintf("pairing target %d is not a met tower in the selected project", id))
}

// ValidateLocation checks the location inputs. All three values are
// required; bounds are inclusive.
func ValidateLocation(form wizard.LocationForm) (wizard.LocationResult, error) {
	if form.Latitude == nil || form.Longitude == nil || form.Elevation == nil {
		return wizard.LocationResult{}, wizard.NewValidationError("all location fields are required")
	}
	lat, lon, elev := *form.Latitude, *form.Longitude, *form.Elevation
	if lat < MinLatitude || lat > MaxLatitude {
		return wizard.LocationResult{}, wizard.NewValidationError("latitude must be between -90 and 90 degrees")
	}
	if lon < MinLongitude || lon > MaxLongitude {
		return wizard.LocationResult{}, wizard.NewValidationError("longitude must be between -180 and 180 degrees")
	}
	if elev < MinElevation || elev > MaxElevation {
		return wizard.LocationResult{}, wizard.NewValidationError("elevation must be between -500 and 10000 meters")
	}
	return wizard.LocationResult{Latitude: lat, Longitude: lon, Elevation: elev}, nil
}

// ValidateIngest checks the ingest inputs. Sender is the only required
// field; everything else, the mailbox label included, may be blank.
func ValidateIngest(form wizard.IngestForm) (wizard.IngestForm, error) {
	form.Sender = strings.TrimSpace(form.Sender)
	if form.Sender == "" {
		return wizard.IngestForm{}, wizard.NewValidationError("sender is required")
	}
	return form, nil
}
