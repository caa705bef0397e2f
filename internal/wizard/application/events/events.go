package events

// AssetCreated is published when the identity step commits a base asset
// record.
type AssetCreated struct {
	SessionID   string
	AssetID     int64
	AssetName   string
	AssetTypeID int
	ProjectID   int64
	ClientName  string
}

// AssetLinked is published when the project link step commits a placement.
type AssetLinked struct {
	SessionID      string
	ProjectAssetID int64
	ProjectID      int64
	PairedWith     *int64
}

// WizardCompleted is published when the ingest step completes a session.
type WizardCompleted struct {
	SessionID      string
	ProjectAssetID int64
	AssetName      string
	ProjectName    string
	ClientName     string
}

// WizardCancelled is published when a session is abandoned. Rows committed
// by earlier steps remain in storage.
type WizardCancelled struct {
	SessionID string
	LastStep  string
}
