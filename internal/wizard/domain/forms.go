package wizard

// PairingStandalone is the explicit "no pairing" choice for lidar/sodar
// placements. It is an accepted value, not a missing one.
const PairingStandalone = "standalone"

// StepInput is implemented by the per-step form payloads, so a Next event
// carries exactly the fields its step accepts.
type StepInput interface {
	isStepInput()
}

// IdentityForm holds the raw inputs of the identity step.
type IdentityForm struct {
	ClientName  string
	ProjectName string
	AssetTypeID int
	AssetName   string
}

func (IdentityForm) isStepInput() {}

// ProjectLinkForm holds the raw inputs of the project link step. Pairing is
// empty when not offered, PairingStandalone for an explicit non-pairing
// choice, or the decimal id of a met-tower placement.
type ProjectLinkForm struct {
	ProjectName string
	Pairing     string
}

func (ProjectLinkForm) isStepInput() {}

// LocationForm holds the raw inputs of the location step. Nil means the
// field was left empty.
type LocationForm struct {
	Latitude  *float64
	Longitude *float64
	Elevation *float64
}

func (LocationForm) isStepInput() {}

// IngestForm holds the raw inputs of the ingest step.
type IngestForm struct {
	Sender             string
	DropboxPath        string
	AltospherePath     string
	GmailFolderID      string
	EmailText          string
	LoggerSiteNumber   string
	ShowInLoggerViewer bool
	ShowInEmail        bool
}

func (IngestForm) isStepInput() {}
