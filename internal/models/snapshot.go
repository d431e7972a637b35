package models

// SnapshotVersion is the current backup format version.
const SnapshotVersion = 1

// Snapshot is the backup file format: the full catalog and session store
// with a version tag and export timestamp. Import only requires the
// Exercises and Sessions fields to be present; the version is informational.
type Snapshot struct {
	Version    int                 `json:"version"`
	ExportedAt string              `json:"exportedAt"`
	Exercises  map[string]BodyPart `json:"exercises"`
	Sessions   []Session           `json:"sessions"`
}
