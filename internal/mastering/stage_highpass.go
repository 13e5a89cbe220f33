package mastering

import (
	"github.com/gopodcaster/mastering/internal/audio"
	"github.com/gopodcaster/mastering/internal/dsp"
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// applyHighPass runs a 2nd-order RBJ high-pass over each channel in-place.
func applyHighPass(buf *audio.Buffer, s HighPassSettings) {
	if !s.Enabled {
		return
	}
	cutoff := clamp(s.CutoffHz, 20, 120)
	left := dsp.HighPass(float64(buf.SampleRate), cutoff, 0.707)
	right := dsp.HighPass(float64(buf.SampleRate), cutoff, 0.707)

	for i := range buf.Left {
		buf.Left[i] = float32(left.Process(float64(buf.Left[i])))
		buf.Right[i] = float32(right.Process(float64(buf.Right[i])))
	}
}
