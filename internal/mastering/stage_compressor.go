package mastering

import (
	"math"

	"github.com/gopodcaster/mastering/internal/audio"
	"github.com/gopodcaster/mastering/internal/dsp"
)

// BandCompressor is a per-sample envelope-follower/gain-smoother dynamics
// processor. State (envelope, gain) is per instance; new instances are
// constructed per Process call, never reused across runs.
type BandCompressor struct {
	thresholdDb float64
	ratio       float64
	attack      float64
	release     float64

	envelope         float64
	gain             float64
	gainReductionDb  float64
}

// NewBandCompressor builds a compressor for the given sample rate and band
// settings.
func NewBandCompressor(fs float64, s BandSettings) *BandCompressor {
	attackMs := math.Max(s.AttackMs, 0.1)
	releaseMs := math.Max(s.ReleaseMs, 1)
	return &BandCompressor{
		thresholdDb: s.ThresholdDb,
		ratio:       s.Ratio,
		attack:      math.Exp(-1 / (attackMs * 1e-3 * fs)),
		release:     math.Exp(-1 / (releaseMs * 1e-3 * fs)),
		gain:        1,
	}
}

// Process compresses a single sample, updating envelope/gain state and
// returning the gain-reduced output.
func (c *BandCompressor) Process(x float64) float64 {
	abs := math.Abs(x)
	if abs > c.envelope {
		c.envelope = c.attack*c.envelope + (1-c.attack)*abs
	} else {
		c.envelope = c.release*c.envelope + (1-c.release)*abs
	}

	inDb := 20 * math.Log10(math.Max(c.envelope, 1e-9))
	var outDb float64
	if inDb <= c.thresholdDb {
		outDb = inDb
	} else {
		outDb = c.thresholdDb + (inDb-c.thresholdDb)/math.Max(c.ratio, 1)
	}
	target := math.Pow(10, (outDb-inDb)/20)

	if target < c.gain {
		c.gain = c.attack*c.gain + (1-c.attack)*target
	} else {
		c.gain = c.release*c.gain + (1-c.release)*target
	}
	c.gainReductionDb = -20 * math.Log10(math.Max(c.gain, 1e-9))

	return x * c.gain
}

// GainReductionDb returns the most recent instantaneous gain reduction.
func (c *BandCompressor) GainReductionDb() float64 {
	return c.gainReductionDb
}

// MultibandResult carries the per-band gain-reduction readouts after a
// MultibandCompressor pass, for the report writer.
type MultibandResult struct {
	LowGainReductionDb  float64
	MidGainReductionDb  float64
	HighGainReductionDb float64
}

// applyMultibandCompressor splits the buffer into low/mid/high bands via a
// two-crossover one-pole split, compresses each band, and sums the result
// back into the buffer. Per the spec's documented open question, each band's
// BandCompressor instance is shared across the left and right channels
// rather than split per channel — this is a deliberate, faithful
// reproduction of that behavior, not an oversight.
func applyMultibandCompressor(buf *audio.Buffer, s MultibandSettings) MultibandResult {
	if !s.Enabled {
		return MultibandResult{}
	}

	fs := float64(buf.SampleRate)
	lowCut := clamp(s.LowCutHz, 80, 400)
	highCut := clamp(s.HighCutHz, 1500, 8000)

	lowSplitL := dsp.NewOnePole(fs, lowCut)
	lowSplitR := dsp.NewOnePole(fs, lowCut)
	highSplitL := dsp.NewOnePole(fs, highCut)
	highSplitR := dsp.NewOnePole(fs, highCut)

	lowComp := NewBandCompressor(fs, s.Low)
	midComp := NewBandCompressor(fs, s.Mid)
	highComp := NewBandCompressor(fs, s.High)

	for i := range buf.Left {
		for ch := 0; ch < 2; ch++ {
			var x float64
			var lowSplit, highSplit *dsp.OnePole
			if ch == 0 {
				x = float64(buf.Left[i])
				lowSplit, highSplit = lowSplitL, highSplitL
			} else {
				x = float64(buf.Right[i])
				lowSplit, highSplit = lowSplitR, highSplitR
			}

			lowBand := lowSplit.Process(x)
			highLP := highSplit.Process(x)
			highBand := x - highLP
			midBand := x - lowBand - highBand

			sum := lowComp.Process(lowBand) + midComp.Process(midBand) + highComp.Process(highBand)

			if ch == 0 {
				buf.Left[i] = float32(sum)
			} else {
				buf.Right[i] = float32(sum)
			}
		}
	}

	return MultibandResult{
		LowGainReductionDb:  lowComp.GainReductionDb(),
		MidGainReductionDb:  midComp.GainReductionDb(),
		HighGainReductionDb: highComp.GainReductionDb(),
	}
}
