package mastering

import (
	"math"

	"github.com/gopodcaster/mastering/internal/audio"
	"github.com/gopodcaster/mastering/internal/dsp"
)

// applyLoudnessNormalizer measures the buffer's current integrated loudness
// and applies a single uniform linear gain toward the target. Per the
// documented ordering constraint (spec design notes), the mastering chain
// always follows this stage with a mandatory limiter safety pass when the
// limiter is enabled — a quiet buffer with loud transients can otherwise be
// pushed back above the ceiling by this gain.
func applyLoudnessNormalizer(buf *audio.Buffer, s LoudnessNormalizerSettings) {
	if !s.Enabled {
		return
	}

	left := toFloat64(buf.Left)
	right := toFloat64(buf.Right)
	current := dsp.IntegratedLUFS(left, right, float64(buf.SampleRate))
	if current <= degenerateLufs {
		return
	}

	gainDb := s.TargetLufs - current
	gain := math.Pow(10, gainDb/20)

	for i := range buf.Left {
		buf.Left[i] = float32(float64(buf.Left[i]) * gain)
		buf.Right[i] = float32(float64(buf.Right[i]) * gain)
	}
}
