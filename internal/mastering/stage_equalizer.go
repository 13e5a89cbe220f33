package mastering

import (
	"github.com/gopodcaster/mastering/internal/audio"
	"github.com/gopodcaster/mastering/internal/dsp"
)

// applyEqualizer runs LowShelf -> Peaking(mid) -> HighShelf per channel.
func applyEqualizer(buf *audio.Buffer, s EqualizerSettings) {
	if !s.Enabled {
		return
	}
	fs := float64(buf.SampleRate)
	shelfQ := clamp(s.LowShelfQ, 0.3, 3)
	highShelfQ := clamp(s.HighShelfQ, 0.3, 3)
	bellQ := clamp(s.MidQ, 0.3, 6)

	lowL := dsp.LowShelf(fs, s.LowShelfHz, s.LowShelfDb, shelfQ)
	lowR := dsp.LowShelf(fs, s.LowShelfHz, s.LowShelfDb, shelfQ)
	midL := dsp.Peaking(fs, s.MidHz, s.MidDb, bellQ)
	midR := dsp.Peaking(fs, s.MidHz, s.MidDb, bellQ)
	highL := dsp.HighShelf(fs, s.HighShelfHz, s.HighShelfDb, highShelfQ)
	highR := dsp.HighShelf(fs, s.HighShelfHz, s.HighShelfDb, highShelfQ)

	for i := range buf.Left {
		l := midL.Process(lowL.Process(float64(buf.Left[i])))
		r := midR.Process(lowR.Process(float64(buf.Right[i])))
		buf.Left[i] = float32(highL.Process(l))
		buf.Right[i] = float32(highR.Process(r))
	}
}
