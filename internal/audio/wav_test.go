package audio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteWAVThenReadWAVRoundTrips(t *testing.T) {
	left := []float32{0, 0.25, -0.25, 0.5, -0.5}
	right := []float32{0, -0.25, 0.25, -0.5, 0.5}
	buf, err := New(left, right, 48000)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "roundtrip.wav")
	if err := WriteWAV(path, buf); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}

	got, err := ReadWAV(path)
	if err != nil {
		t.Fatalf("ReadWAV: %v", err)
	}

	if got.SampleRate != buf.SampleRate {
		t.Errorf("sample rate: got %d want %d", got.SampleRate, buf.SampleRate)
	}
	if got.Len() != buf.Len() {
		t.Fatalf("length: got %d want %d", got.Len(), buf.Len())
	}
	for i := range buf.Left {
		if got.Left[i] != buf.Left[i] || got.Right[i] != buf.Right[i] {
			t.Errorf("sample %d: got (%v,%v) want (%v,%v)", i, got.Left[i], got.Right[i], buf.Left[i], buf.Right[i])
		}
	}
}

func TestReadWAVRejectsNonRIFFFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-a-wav.wav")
	if err := os.WriteFile(path, []byte("not a wav file at all"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadWAV(path); err == nil {
		t.Error("expected error reading non-RIFF file")
	}
}
