package mastering

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCheckCompatibleAcceptsSameVersion(t *testing.T) {
	if !CheckCompatible(SchemaVersion) {
		t.Fatalf("expected %s to be compatible with itself", SchemaVersion)
	}
}

func TestCheckCompatibleAcceptsLiteralV1Version(t *testing.T) {
	if !CheckCompatible("v1.0.0") {
		t.Fatal("expected v1.0.0 to be compatible with current major version 1")
	}
}

func TestCheckCompatibleRejectsNewerMajor(t *testing.T) {
	if CheckCompatible("v2.0.0") {
		t.Fatal("expected v2.0.0 to be rejected as incompatible")
	}
}

func TestCheckCompatibleRejectsMalformedVersion(t *testing.T) {
	if CheckCompatible("not-a-version") {
		t.Fatal("expected malformed version string to be rejected")
	}
}

func TestCheckCompatibleAcceptsMissingVPrefix(t *testing.T) {
	if !CheckCompatible("1.0.0") {
		t.Fatal("expected a bare version without v-prefix to be normalized and accepted")
	}
}

func TestStampSnapshotRecordsCurrentSchemaVersion(t *testing.T) {
	snap := StampSnapshot(DefaultSettings(), time.Unix(0, 0))
	if snap.SchemaVersion != SchemaVersion {
		t.Errorf("got schema version %q, want %q", snap.SchemaVersion, SchemaVersion)
	}
}

func TestSaveLoadSnapshotRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	want := DefaultSettings()
	want.Limiter.CeilingDbTp = -1.4

	if err := SaveSnapshot(path, want, time.Unix(0, 0)); err != nil {
		t.Fatalf("SaveSnapshot returned error: %v", err)
	}

	got, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot returned error: %v", err)
	}
	if got != want {
		t.Errorf("round-tripped settings differ: got %+v, want %+v", got, want)
	}
}

func TestLoadSnapshotRejectsIncompatibleSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	raw, err := json.Marshal(Snapshot{SchemaVersion: "v9.0.0", Settings: DefaultSettings()})
	if err != nil {
		t.Fatalf("failed to build fixture: %v", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := LoadSnapshot(path); err == nil {
		t.Fatal("expected LoadSnapshot to reject a v9.0.0 snapshot against the current major version")
	}
}

func TestLoadSnapshotFailsOnMissingFile(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a nonexistent snapshot file")
	}
}
