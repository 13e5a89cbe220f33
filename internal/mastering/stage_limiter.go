package mastering

import (
	"math"

	"github.com/gopodcaster/mastering/internal/audio"
)

// applyLimiter runs a lookahead peak-scanning brick-wall limiter: for every
// sample index it scans ahead for the loudest peak within the lookahead
// window, derives a desired gain, and smooths toward it with an
// attack-immediate / release-smoothed gain follower. A final true-peak
// safety pass corrects any residual inter-sample overshoot.
func applyLimiter(buf *audio.Buffer, s LimiterSettings) {
	if !s.Enabled {
		return
	}

	fs := float64(buf.SampleRate)
	// The stage itself accepts any ceiling; [-24, 0] dBTP is a generous
	// sanity bound against a caller-supplied value far outside what any
	// preset or manual setting would ever produce.
	ceiling := math.Pow(10, clamp(s.CeilingDbTp, -24, 0)/20)
	lookaheadMs := clamp(s.LookaheadMs, 0.5, 10)
	lookahead := int(math.Round(lookaheadMs * 1e-3 * fs))
	if lookahead < 1 {
		lookahead = 1
	}
	release := math.Exp(-1 / (0.05 * fs))

	n := len(buf.Left)
	gain := 1.0
	for i := 0; i < n; i++ {
		end := i + lookahead
		if end > n-1 {
			end = n - 1
		}
		peak := 0.0
		for j := i; j <= end; j++ {
			if v := math.Abs(float64(buf.Left[j])); v > peak {
				peak = v
			}
			if v := math.Abs(float64(buf.Right[j])); v > peak {
				peak = v
			}
		}

		desired := 1.0
		if peak > ceiling {
			desired = ceiling / peak
		}

		if desired < gain {
			gain = desired
		} else {
			gain = release*gain + (1-release)*desired
		}

		buf.Left[i] = float32(float64(buf.Left[i]) * gain)
		buf.Right[i] = float32(float64(buf.Right[i]) * gain)
	}

	left64 := toFloat64(buf.Left)
	right64 := toFloat64(buf.Right)
	truePeak := truePeakEstimate(left64, right64)
	if truePeak > ceiling && truePeak > 0 {
		safety := ceiling / truePeak
		for i := range buf.Left {
			buf.Left[i] = float32(float64(buf.Left[i]) * safety)
			buf.Right[i] = float32(float64(buf.Right[i]) * safety)
		}
	}
}
