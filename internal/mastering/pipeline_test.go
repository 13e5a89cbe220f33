package mastering

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/gopodcaster/mastering/internal/audio"
)

// TestEndToEndAnalyzePresetProcessPipeline exercises the full
// analyze -> preset -> chain path against an in-memory buffer, with no real
// file I/O involved, mirroring how a caller wires the core together.
func TestEndToEndAnalyzePresetProcessPipeline(t *testing.T) {
	input := testTone(96000, 48000, 90, 0.1)

	metrics := Analyze(input)
	preset, ok := FindGenrePreset("auto")
	if !ok {
		t.Fatal("expected the auto preset to be registered")
	}

	settings := preset.Apply(metrics, 1.0)

	var updates []float64
	result := Process(input, settings, func(u ProgressUpdate) {
		updates = append(updates, u.Percent)
	})

	if result.Output == nil {
		t.Fatal("expected a non-nil output buffer")
	}
	if result.Output.Len() != input.Len() {
		t.Errorf("output length %d does not match input length %d", result.Output.Len(), input.Len())
	}
	if len(updates) == 0 {
		t.Fatal("expected at least one progress update")
	}
	if updates[len(updates)-1] < 80 {
		t.Errorf("expected the terminal progress update to reach at least 80%%, got %.1f", updates[len(updates)-1])
	}
	for i := 1; i < len(updates); i++ {
		if updates[i] < updates[i-1] {
			t.Fatalf("progress went backwards: %v", updates)
		}
	}

	outputMetrics := Analyze(result.Output)
	if math.IsNaN(outputMetrics.IntegratedLufs) || math.IsInf(outputMetrics.IntegratedLufs, 0) {
		t.Errorf("output integrated loudness is not finite: %v", outputMetrics.IntegratedLufs)
	}
}

// TestEndToEndWithWAVRoundTrip exercises the same pipeline through a real
// WAV write/read cycle, the boundary the CLI actually drives.
func TestEndToEndWithWAVRoundTrip(t *testing.T) {
	input := testTone(48000, 48000, 220, 0.3)

	path := filepath.Join(t.TempDir(), "fixture.wav")
	if err := audio.WriteWAV(path, input); err != nil {
		t.Fatalf("WriteWAV returned error: %v", err)
	}

	loaded, err := audio.ReadWAV(path)
	if err != nil {
		t.Fatalf("ReadWAV returned error: %v", err)
	}

	metrics := Analyze(loaded)
	settings := AdaptPreset(metrics, 1.0)

	result := Process(loaded, settings, nil)

	outPath := filepath.Join(t.TempDir(), "fixture-mastered.wav")
	if err := audio.WriteWAV(outPath, result.Output); err != nil {
		t.Fatalf("WriteWAV of mastered output returned error: %v", err)
	}

	mastered, err := audio.ReadWAV(outPath)
	if err != nil {
		t.Fatalf("ReadWAV of mastered output returned error: %v", err)
	}
	if mastered.Len() != loaded.Len() {
		t.Errorf("mastered length %d does not match input length %d", mastered.Len(), loaded.Len())
	}
}
