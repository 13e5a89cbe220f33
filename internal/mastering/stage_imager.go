package mastering

import "github.com/gopodcaster/mastering/internal/audio"

const imagerNoOpTolerance = 1e-9

// applyStereoImager scales mid/side width. A width of 1.0 is a no-op and is
// skipped entirely.
func applyStereoImager(buf *audio.Buffer, s StereoImagerSettings) {
	if !s.Enabled {
		return
	}
	width := clamp(s.Width, 0.7, 1.3)
	if abs64(width-1.0) < imagerNoOpTolerance {
		return
	}

	for i := range buf.Left {
		l := float64(buf.Left[i])
		r := float64(buf.Right[i])
		mid := (l + r) / 2
		side := (l - r) / 2 * width
		buf.Left[i] = float32(mid + side)
		buf.Right[i] = float32(mid - side)
	}
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
