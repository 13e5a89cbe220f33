package mastering

import (
	"math"

	"github.com/gopodcaster/mastering/internal/audio"
	"github.com/gopodcaster/mastering/internal/dsp"
)

// rebalanceBand names one fixed peaking-filter pair of the pseudo-stem
// rebalance stage: a center frequency and the fraction of the stage's gain
// that filter contributes.
type rebalanceBand struct {
	freqHz float64
	weight float64
	q      float64
}

var (
	vocalBands      = []rebalanceBand{{2800, 0.70, 1.2}, {1200, 0.35, 1.2}}
	drumBands       = []rebalanceBand{{95, 0.70, 1.0}, {4200, 0.35, 1.0}}
	instrumentBands = []rebalanceBand{{650, 0.60, 1.0}, {5200, 0.30, 1.0}}
)

const rebalanceNoOpThresholdDb = 0.01

// applyRebalance drives six fixed-frequency peaking filters per channel from
// three clamped stem gains. If all three gains are below the no-op
// threshold, the stage does nothing.
func applyRebalance(buf *audio.Buffer, s RebalanceSettings) {
	if !s.Enabled {
		return
	}

	vocalDb := clamp(s.VocalDb, -6, 6)
	drumDb := clamp(s.DrumDb, -6, 6)
	instrumentDb := clamp(s.InstrumentDb, -6, 6)

	if math.Abs(vocalDb) < rebalanceNoOpThresholdDb &&
		math.Abs(drumDb) < rebalanceNoOpThresholdDb &&
		math.Abs(instrumentDb) < rebalanceNoOpThresholdDb {
		return
	}

	fs := float64(buf.SampleRate)
	type channelFilters struct {
		filters []*dsp.Biquad
	}

	build := func() []*dsp.Biquad {
		var filters []*dsp.Biquad
		for _, b := range vocalBands {
			filters = append(filters, dsp.Peaking(fs, b.freqHz, vocalDb*b.weight, b.q))
		}
		for _, b := range drumBands {
			filters = append(filters, dsp.Peaking(fs, b.freqHz, drumDb*b.weight, b.q))
		}
		for _, b := range instrumentBands {
			filters = append(filters, dsp.Peaking(fs, b.freqHz, instrumentDb*b.weight, b.q))
		}
		return filters
	}

	left := channelFilters{build()}
	right := channelFilters{build()}

	for i := range buf.Left {
		l := float64(buf.Left[i])
		for _, f := range left.filters {
			l = f.Process(l)
		}
		r := float64(buf.Right[i])
		for _, f := range right.filters {
			r = f.Process(r)
		}
		buf.Left[i] = float32(l)
		buf.Right[i] = float32(r)
	}
}
