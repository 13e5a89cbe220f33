package dsp

import (
	"math"
	"testing"
)

func TestIntegratedLUFSOfSilenceReturnsAbsoluteFloor(t *testing.T) {
	n := 96000
	left := make([]float64, n)
	right := make([]float64, n)
	got := IntegratedLUFS(left, right, 48000)
	if got != absoluteGateLufs {
		t.Errorf("expected %.1f for silence, got %.4f", absoluteGateLufs, got)
	}
}

func TestIntegratedLUFSOfShortBufferReturnsAbsoluteFloor(t *testing.T) {
	got := IntegratedLUFS([]float64{0.1, 0.2}, []float64{0.1, 0.2}, 48000)
	if got != absoluteGateLufs {
		t.Errorf("expected %.1f for too-short buffer, got %.4f", absoluteGateLufs, got)
	}
}

func TestIntegratedLUFSOfFullScaleToneIsLouderThanQuietTone(t *testing.T) {
	n := 96000
	fs := 48000.0
	loud := make([]float64, n)
	quiet := make([]float64, n)
	for i := range loud {
		s := math.Sin(2 * math.Pi * 1000 * float64(i) / fs)
		loud[i] = s
		quiet[i] = s * 0.01
	}

	loudLufs := IntegratedLUFS(loud, loud, fs)
	quietLufs := IntegratedLUFS(quiet, quiet, fs)

	if loudLufs <= quietLufs {
		t.Errorf("expected loud tone (%.2f) to measure louder than quiet tone (%.2f)", loudLufs, quietLufs)
	}
}

func TestResampleLinearPreservesEndpoints(t *testing.T) {
	in := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	out := resampleLinear(in, 44100, 48000)
	if len(out) == 0 {
		t.Fatal("expected non-empty resampled output")
	}
	if out[0] != in[0] {
		t.Errorf("expected first sample preserved, got %.4f want %.4f", out[0], in[0])
	}
	if out[len(out)-1] != in[len(in)-1] {
		t.Errorf("expected last sample preserved, got %.4f want %.4f", out[len(out)-1], in[len(in)-1])
	}
}

func TestResampleLinearNoOpWhenRatesMatch(t *testing.T) {
	in := []float64{1, 2, 3}
	out := resampleLinear(in, 48000, 48000)
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("expected no-op resample, index %d: got %.4f want %.4f", i, out[i], in[i])
		}
	}
}
