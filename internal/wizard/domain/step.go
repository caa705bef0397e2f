package wizard

// Step identifies a stage of the asset-creation wizard.
type Step int

const (
	// StepIdentity collects client, project, asset type and asset name,
	// and commits the base asset record.
	StepIdentity Step = iota
	// StepProjectLink places the asset in a project, optionally paired
	// with a met tower.
	StepProjectLink
	// StepLocation records latitude, longitude and elevation.
	StepLocation
	// StepIngest configures data-ingestion parameters.
	StepIngest
	// StepCompleted is the terminal success state.
	StepCompleted
)

// String names the step.
func (s Step) String() string {
	switch s {
	case StepIdentity:
		return "identity"
	case StepProjectLink:
		return "project_link"
	case StepLocation:
		return "location"
	case StepIngest:
		return "ingest"
	case StepCompleted:
		return "completed"
	default:
		return "unknown"
	}
}
