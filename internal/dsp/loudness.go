package dsp

import "math"

// kWeightPrefilter and kWeightShelf are the two cascaded biquads of the
// broadcast "K" weighting curve: a high-pass around 38 Hz followed by a
// high-shelf boost above ~1.5 kHz, both designed at the caller's sample rate
// (IntegratedLUFS resamples to 48 kHz only after filtering).
func kWeightPrefilter(fs float64) *Biquad {
	return HighPass(fs, 38, 0.5)
}

func kWeightShelf(fs float64) *Biquad {
	return HighShelf(fs, 1500, 4, 0.7)
}

// applyKWeighting filters a single channel through the cascaded K-weighting
// pair, returning a new slice.
func applyKWeighting(samples []float64, fs float64) []float64 {
	pre := kWeightPrefilter(fs)
	shelf := kWeightShelf(fs)
	out := make([]float64, len(samples))
	for i, x := range samples {
		out[i] = shelf.Process(pre.Process(x))
	}
	return out
}

// resampleLinear linearly resamples samples from fsIn to fsOut, preserving
// the original time span. Edge indices are clamped.
func resampleLinear(samples []float64, fsIn, fsOut float64) []float64 {
	if fsIn == fsOut || len(samples) == 0 {
		return samples
	}
	n := len(samples)
	outLen := int(math.Round(float64(n) * fsOut / fsIn))
	if outLen < 1 {
		outLen = 1
	}
	out := make([]float64, outLen)
	ratio := fsIn / fsOut
	for i := range out {
		srcPos := float64(i) * ratio
		idx := int(srcPos)
		frac := srcPos - float64(idx)
		if idx >= n-1 {
			out[i] = samples[n-1]
			continue
		}
		out[i] = samples[idx]*(1-frac) + samples[idx+1]*frac
	}
	return out
}

const (
	absoluteGateLufs  = -70.0
	relativeGateDelta = -10.0
	blockMsFloor      = 1e-12
)

// IntegratedLUFS computes block-gated integrated loudness per the
// broadcast-standard algorithm: K-weight both channels, resample to 48 kHz if
// needed, measure 400ms/100ms-hop block power, apply an absolute then
// relative gate, and return the power-mean of the surviving blocks.
func IntegratedLUFS(left, right []float64, sampleRate float64) float64 {
	if len(left) == 0 {
		return absoluteGateLufs
	}

	kl := applyKWeighting(left, sampleRate)
	kr := applyKWeighting(right, sampleRate)
	if sampleRate != 48000 {
		kl = resampleLinear(kl, sampleRate, 48000)
		kr = resampleLinear(kr, sampleRate, 48000)
	}

	const (
		blockSamples = 19200 // 400ms @ 48kHz
		hopSamples   = 4800  // 100ms @ 48kHz
	)
	n := len(kl)
	if n < blockSamples {
		return absoluteGateLufs
	}

	var blockPowers []float64
	for start := 0; start+blockSamples <= n; start += hopSamples {
		var sum float64
		for i := start; i < start+blockSamples; i++ {
			sum += (kl[i]*kl[i] + kr[i]*kr[i]) / 2
		}
		ms := sum / float64(blockSamples)
		blockPowers = append(blockPowers, ms)
	}

	if len(blockPowers) == 0 {
		return absoluteGateLufs
	}

	gated := gateBlocks(blockPowers, absoluteGateLufs)
	if len(gated) == 0 {
		return absoluteGateLufs
	}

	absIntegrated := powerMeanToLufs(gated)

	relativeThreshold := absIntegrated + relativeGateDelta
	relGated := gateBlocks(gated, relativeThreshold)
	if len(relGated) == 0 {
		return absIntegrated
	}

	return powerMeanToLufs(relGated)
}

func powerToLufs(ms float64) float64 {
	return -0.691 + 10*math.Log10(math.Max(ms, blockMsFloor))
}

func powerMeanToLufs(blockPowers []float64) float64 {
	var sum float64
	for _, p := range blockPowers {
		sum += p
	}
	return powerToLufs(sum / float64(len(blockPowers)))
}

func gateBlocks(blockPowers []float64, thresholdLufs float64) []float64 {
	var out []float64
	for _, p := range blockPowers {
		if powerToLufs(p) > thresholdLufs {
			out = append(out, p)
		}
	}
	return out
}
