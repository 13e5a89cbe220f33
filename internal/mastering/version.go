package mastering

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// SchemaVersion is the current on-disk settings snapshot version. It follows
// semver; bump the minor version for additive fields, the major version when
// an older snapshot can no longer be loaded as-is.
const SchemaVersion = "v1.0.0"

// Snapshot is a persisted record of one mastering run's settings, suitable
// for writing to disk as genre-preset material or for reproducing a run.
type Snapshot struct {
	SchemaVersion string    `json:"schema_version"`
	StampedAt     time.Time `json:"stamped_at"`
	Settings      Settings  `json:"settings"`
}

// StampSnapshot wraps a Settings value with the current schema version and
// timestamp for persistence.
func StampSnapshot(s Settings, now time.Time) Snapshot {
	return Snapshot{
		SchemaVersion: SchemaVersion,
		StampedAt:     now,
		Settings:      s,
	}
}

// CheckCompatible reports whether a snapshot written under schemaVersion can
// be loaded by this build. A snapshot is compatible when it shares the
// running SchemaVersion's major version and is not newer than it; a higher
// version, or a malformed one, is rejected rather than guessed at.
func CheckCompatible(schemaVersion string) bool {
	stored := canonicalSchemaVersion(schemaVersion)
	running := canonicalSchemaVersion(SchemaVersion)
	if !semver.IsValid(stored) || !semver.IsValid(running) {
		return false
	}
	return semver.Major(stored) == semver.Major(running) && semver.Compare(stored, running) <= 0
}

func canonicalSchemaVersion(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// SaveSnapshot writes a stamped settings snapshot to path as JSON.
func SaveSnapshot(path string, s Settings, now time.Time) error {
	snap := StampSnapshot(s, now)
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing settings snapshot %s: %w", path, err)
	}
	return nil
}

// LoadSnapshot reads a settings snapshot from path, rejecting one written
// under an incompatible schema version.
func LoadSnapshot(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings snapshot %s: %w", path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Settings{}, fmt.Errorf("decoding settings snapshot %s: %w", path, err)
	}

	if !CheckCompatible(snap.SchemaVersion) {
		return Settings{}, fmt.Errorf("settings snapshot %s has schema version %q, incompatible with running schema %q",
			path, snap.SchemaVersion, SchemaVersion)
	}

	return snap.Settings, nil
}
