package mastering

import (
	"math"

	"github.com/gopodcaster/mastering/internal/audio"
)

// applySaturation runs a stateless tanh soft-clip over each channel
// independently.
func applySaturation(buf *audio.Buffer, s SaturationSettings) {
	if !s.Enabled {
		return
	}
	drive := 1 + clamp(s.Drive, 0, 1)*6
	norm := math.Tanh(drive)
	if norm == 0 {
		return
	}

	for i := range buf.Left {
		buf.Left[i] = float32(math.Tanh(float64(buf.Left[i])*drive) / norm)
		buf.Right[i] = float32(math.Tanh(float64(buf.Right[i])*drive) / norm)
	}
}
