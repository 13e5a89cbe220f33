// Package audio provides the pure-Go AudioBuffer type and the IEEE-float WAV
// boundary the mastering core reads from and writes to. Decode of lossy
// formats (MP3) is a decoder concern noted for completeness but is not
// implemented here; only the WAV contract is.
package audio

import "fmt"

// SupportedSampleRates enumerates the sample rates the mastering core
// accepts. Anything else must be resampled by the loader before
// construction.
var SupportedSampleRates = map[int]bool{44100: true, 48000: true}

// Buffer is an immutable-after-construction stereo sample container.
// Left and Right always have equal length; a shorter side truncates both
// at construction time.
type Buffer struct {
	Left       []float32
	Right      []float32
	SampleRate int
}

// New builds a Buffer from deinterleaved stereo samples, truncating to the
// shorter channel and validating the sample rate.
func New(left, right []float32, sampleRate int) (*Buffer, error) {
	if !SupportedSampleRates[sampleRate] {
		return nil, fmt.Errorf("audio: unsupported sample rate %d, want 44100 or 48000", sampleRate)
	}

	n := len(left)
	if len(right) < n {
		n = len(right)
	}

	out := &Buffer{
		Left:       append([]float32(nil), left[:n]...),
		Right:      append([]float32(nil), right[:n]...),
		SampleRate: sampleRate,
	}
	return out, nil
}

// Len returns the number of sample frames in the buffer.
func (b *Buffer) Len() int {
	return len(b.Left)
}

// Clone returns a deep copy, suitable as the mastering chain's mutable
// working buffer — the chain never mutates its input.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{
		Left:       append([]float32(nil), b.Left...),
		Right:      append([]float32(nil), b.Right...),
		SampleRate: b.SampleRate,
	}
}

// FromMono duplicates a single channel into both Left and Right, matching
// the decoder contract that mono input is duplicated into stereo.
func FromMono(samples []float32, sampleRate int) (*Buffer, error) {
	return New(samples, samples, sampleRate)
}
