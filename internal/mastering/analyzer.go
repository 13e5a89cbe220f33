package mastering

import (
	"math"

	"github.com/gopodcaster/mastering/internal/audio"
	"github.com/gopodcaster/mastering/internal/dsp"
)

const (
	degenerateLufs  = -70.0
	degenerateDbTp  = -90.0
	degenerateDbFs  = -90.0
	spectrumWindow  = 2048
	spectrumOutBins = 128
)

// Analyze computes the full set of objective metrics the auto-preset engine
// and the report writer both consume. Buffers shorter than two samples
// return the degenerate sentinel metrics rather than signaling an error.
func Analyze(buf *audio.Buffer) AnalysisMetrics {
	n := buf.Len()
	if n < 2 {
		return AnalysisMetrics{
			IntegratedLufs: degenerateLufs,
			TruePeakDbTp:   degenerateDbTp,
			RmsDbFs:        degenerateDbFs,
			CrestFactorDb:  0,
		}
	}

	left := toFloat64(buf.Left)
	right := toFloat64(buf.Right)
	fs := float64(buf.SampleRate)

	lufs := dsp.IntegratedLUFS(left, right, fs)
	truePeak := truePeakDbTp(left, right)
	rms := rmsDbFs(left, right)
	crest := crestFactorDb(left, right)
	spectrum := computeSpectrum(left, right)

	return AnalysisMetrics{
		IntegratedLufs: lufs,
		TruePeakDbTp:   truePeak,
		RmsDbFs:        rms,
		CrestFactorDb:  crest,
		Spectrum:       spectrum,
	}
}

func toFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

// truePeakEstimate performs 4x linear-interpolation oversampling across both
// channels and returns the maximum absolute sample value found.
func truePeakEstimate(left, right []float64) float64 {
	const oversample = 4
	peak := 0.0
	for _, ch := range [][]float64{left, right} {
		for i := 0; i < len(ch)-1; i++ {
			a, b := ch[i], ch[i+1]
			for k := 0; k < oversample; k++ {
				frac := float64(k) / float64(oversample)
				v := math.Abs(a + (b-a)*frac)
				if v > peak {
					peak = v
				}
			}
		}
		if len(ch) > 0 {
			last := math.Abs(ch[len(ch)-1])
			if last > peak {
				peak = last
			}
		}
	}
	return peak
}

func truePeakDbTp(left, right []float64) float64 {
	peak := truePeakEstimate(left, right)
	if peak <= 0 {
		return degenerateDbTp
	}
	return 20 * math.Log10(peak)
}

func rmsDbFs(left, right []float64) float64 {
	var sum float64
	n := len(left)
	for i := 0; i < n; i++ {
		sum += (left[i]*left[i] + right[i]*right[i]) / 2
	}
	ms := sum / float64(n)
	if ms <= 0 {
		return degenerateDbFs
	}
	return 20 * math.Log10(math.Sqrt(ms))
}

func crestFactorDb(left, right []float64) float64 {
	peak := 0.0
	for i := range left {
		if v := math.Abs(left[i]); v > peak {
			peak = v
		}
		if v := math.Abs(right[i]); v > peak {
			peak = v
		}
	}
	rms := math.Sqrt(meanSquare(left, right))
	if peak <= 0 || rms <= 0 {
		return 0
	}
	return 20 * math.Log10(peak/rms)
}

func meanSquare(left, right []float64) float64 {
	var sum float64
	n := len(left)
	for i := 0; i < n; i++ {
		sum += (left[i]*left[i] + right[i]*right[i]) / 2
	}
	return sum / float64(n)
}

// computeSpectrum takes a center-aligned 2048-sample window of (L+R)/2,
// Hann-windows it, FFTs it, and downsamples the first 1024 magnitude bins to
// 128 values normalized by the maximum.
func computeSpectrum(left, right []float64) [spectrumOutBins]float64 {
	var out [spectrumOutBins]float64

	n := len(left)
	windowLen := spectrumWindow
	if n < windowLen {
		windowLen = n
	}
	start := (n - windowLen) / 2

	mono := make([]float64, windowLen)
	for i := 0; i < windowLen; i++ {
		mono[i] = (left[start+i] + right[start+i]) / 2
	}

	// Size the FFT to the next power of two no smaller than the window, so
	// the radix-2 FFT can run even on inputs shorter than spectrumWindow.
	fftLen := nextPowerOfTwo(windowLen)
	window := dsp.HannWindow(windowLen)
	data := make([]complex128, fftLen)
	for i := 0; i < windowLen; i++ {
		data[i] = complex(mono[i]*window[i], 0)
	}

	dsp.FFT(data)

	numBins := fftLen / 2
	mags := make([]float64, numBins)
	for i := 0; i < numBins; i++ {
		mags[i] = abs(data[i])
	}

	// Downsample by taking the max magnitude within each group of FFT bins,
	// not a single sampled bin, so a narrowband peak is never averaged away
	// or skipped by the decimation stride.
	groups := make([]float64, spectrumOutBins)
	maxGroup := 0.0
	for i := 0; i < spectrumOutBins; i++ {
		lo := i * numBins / spectrumOutBins
		hi := (i + 1) * numBins / spectrumOutBins
		if hi <= lo {
			hi = lo + 1
		}
		if hi > numBins {
			hi = numBins
		}
		groupMax := 0.0
		for j := lo; j < hi; j++ {
			if mags[j] > groupMax {
				groupMax = mags[j]
			}
		}
		groups[i] = groupMax
		if groupMax > maxGroup {
			maxGroup = groupMax
		}
	}

	if maxGroup > 0 {
		for i := range groups {
			out[i] = groups[i] / maxGroup
		}
	}
	return out
}

func abs(c complex128) float64 {
	re, im := real(c), imag(c)
	return math.Sqrt(re*re + im*im)
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
