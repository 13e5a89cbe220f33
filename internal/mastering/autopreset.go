package mastering

import "math"

// Declared ranges for every field the auto-preset engine derives. These are
// the engine's own bounds, not the (wider) per-stage runtime clamps applied
// later in the chain itself.
const (
	highPassCutoffMinHz = 20.0
	highPassCutoffMaxHz = 40.0

	lowShelfHzMin  = 80.0
	lowShelfHzMax  = 180.0
	midBellHzMin   = 700.0
	midBellHzMax   = 2800.0
	highShelfHzMin = 6500.0
	highShelfHzMax = 12000.0

	lowShelfGainMinDb  = -2.8
	lowShelfGainMaxDb  = 2.8
	midBellGainMinDb   = -1.2
	midBellGainMaxDb   = 2.2
	highShelfGainMinDb = -2.4
	highShelfGainMaxDb = 2.6

	shelfQMin   = 0.55
	shelfQMax   = 1.20
	midBellQMin = 1.0
	midBellQMax = 2.2

	compBaseMinDb = -30.0
	compBaseMaxDb = -12.0

	lowRatioMin, lowRatioMax   = 1.2, 3.2
	midRatioMin, midRatioMax   = 1.2, 3.0
	highRatioMin, highRatioMax = 1.1, 2.8

	attackBaseMinMs, attackBaseMaxMs   = 4.0, 20.0
	releaseBaseMinMs, releaseBaseMaxMs = 60.0, 200.0

	saturationDriveMin = 0.0
	saturationDriveMax = 0.35

	stereoWidthMin = 0.90
	stereoWidthMax = 1.14

	limiterCeilingMinDb = -1.8
	limiterCeilingMaxDb = -0.8

	limiterLookaheadMinMs = 1.2
	limiterLookaheadMaxMs = 8.0
)

// targetLufsOptions are the only integrated-loudness targets the engine ever
// selects.
var targetLufsOptions = [4]float64{-16, -14, -12, -9}

// AdaptPreset derives a complete Settings tree from a single analysis pass,
// scaled by strength. Pseudo-rebalance is never derived — it keeps
// DefaultSettings' fixed (zero) weights — every other group is. The final
// pass reasserts every range bound defensively, so AdaptPreset is total over
// any finite AnalysisMetrics.
func AdaptPreset(metrics AnalysisMetrics, strength float64) Settings {
	strength = clamp(strength, 0.5, 2.0)

	lowToMid, highToMid, midToAvg := spectralRatios(metrics.Spectrum)

	dynamics := clamp01((metrics.CrestFactorDb - 8) / 8)
	loudnessLift := clamp01((-12 - metrics.IntegratedLufs) / 12)
	compressionIntensity := clamp01(0.35*dynamics+0.40*loudnessLift) * (0.8 + 0.35*(strength-1))
	bassHeavy := clamp01((lowToMid - 1.10) / 0.70)
	bassLight := clamp01((0.92 - lowToMid) / 0.50)
	bright := clamp01((highToMid - 1.08) / 0.55)
	dark := clamp01((0.90 - highToMid) / 0.45)
	midHole := clamp01((0.95 - midToAvg) / 0.35)
	peakRisk := clamp01((metrics.TruePeakDbTp + 0.5) / 0.8)

	s := DefaultSettings()
	s.HighPass.Enabled = true
	s.Equalizer.Enabled = true
	s.Rebalance.Enabled = true
	s.Multiband.Enabled = true
	s.Saturation.Enabled = true
	s.StereoImager.Enabled = true
	s.Limiter.Enabled = true
	s.LoudnessNormalizer.Enabled = true

	deriveHighPass(&s, bassHeavy, bassLight, peakRisk, strength)
	deriveEqualizer(&s, bassHeavy, bassLight, bright, dark, midHole, strength)
	deriveMultibandCompressor(&s, metrics.RmsDbFs, compressionIntensity, dynamics, strength)
	deriveSaturationAndWidth(&s, dynamics, bright, strength)
	deriveLimiter(&s, peakRisk, strength)
	deriveLoudnessNormalizer(&s, metrics.IntegratedLufs)

	clampSettings(&s)
	return s
}

// spectralRatios splits a normalized 128-bin spectrum into low/mid/high
// energy bands at 20%/70% and returns the three named ratios.
func spectralRatios(spectrum [128]float64) (lowToMid, highToMid, midToAvg float64) {
	n := len(spectrum)
	lowEnd := n * 20 / 100
	midEnd := n * 70 / 100

	mean := func(lo, hi int) float64 {
		if hi <= lo {
			return 0
		}
		var sum float64
		for i := lo; i < hi; i++ {
			sum += spectrum[i]
		}
		return sum / float64(hi-lo)
	}

	const floor = 1e-9
	low := math.Max(mean(0, lowEnd), floor)
	mid := math.Max(mean(lowEnd, midEnd), floor)
	high := math.Max(mean(midEnd, n), floor)
	avg := math.Max((low+mid+high)/3, floor)

	return low / mid, high / mid, mid / avg
}

func deriveHighPass(s *Settings, bassHeavy, bassLight, peakRisk, strength float64) {
	s.HighPass.CutoffHz = clamp(
		24+bassLight*9*strength+peakRisk*4*strength-bassHeavy*6,
		highPassCutoffMinHz, highPassCutoffMaxHz,
	)
}

// deriveEqualizer derives the low-shelf/mid-bell/high-shelf gains, centers,
// and Qs. Centers and Qs scale mildly with the same ratios the gains use;
// the spec leaves the exact interpolation to the implementer within its
// declared ranges.
func deriveEqualizer(s *Settings, bassHeavy, bassLight, bright, dark, midHole, strength float64) {
	s.Equalizer.LowShelfDb = clamp((bassLight*1.4-bassHeavy*1.0)*strength, lowShelfGainMinDb, lowShelfGainMaxDb)
	s.Equalizer.MidDb = clamp(midHole*1.2*strength, midBellGainMinDb, midBellGainMaxDb)
	s.Equalizer.HighShelfDb = clamp((dark*1.3-bright*0.9)*strength, highShelfGainMinDb, highShelfGainMaxDb)

	s.Equalizer.LowShelfHz = lerp(lowShelfHzMin, lowShelfHzMax, bassHeavy)
	s.Equalizer.MidHz = lerp(midBellHzMin, midBellHzMax, midHole)
	s.Equalizer.HighShelfHz = lerp(highShelfHzMin, highShelfHzMax, bright)

	s.Equalizer.LowShelfQ = lerp(shelfQMin, shelfQMax, bassHeavy)
	s.Equalizer.MidQ = lerp(midBellQMin, midBellQMax, midHole)
	s.Equalizer.HighShelfQ = lerp(shelfQMin, shelfQMax, bright)
}

func deriveMultibandCompressor(s *Settings, rmsDbFs, compressionIntensity, dynamics, strength float64) {
	base := clamp(rmsDbFs+8.5-compressionIntensity*2.3*strength, compBaseMinDb, compBaseMaxDb)

	s.Multiband.Low.ThresholdDb = base - 1.5
	s.Multiband.Mid.ThresholdDb = base
	s.Multiband.High.ThresholdDb = base + 1.5

	ramp := clamp01(compressionIntensity * strength)
	s.Multiband.Low.Ratio = lerp(lowRatioMin, lowRatioMax, ramp)
	s.Multiband.Mid.Ratio = lerp(midRatioMin, midRatioMax, ramp)
	s.Multiband.High.Ratio = lerp(highRatioMin, highRatioMax, ramp)

	attackBase := lerp(attackBaseMinMs, attackBaseMaxMs, dynamics)
	releaseBase := lerp(releaseBaseMinMs, releaseBaseMaxMs, dynamics)

	s.Multiband.Low.AttackMs = attackBase + 6
	s.Multiband.Mid.AttackMs = attackBase
	s.Multiband.High.AttackMs = attackBase - 4

	s.Multiband.Low.ReleaseMs = releaseBase + 35
	s.Multiband.Mid.ReleaseMs = releaseBase
	s.Multiband.High.ReleaseMs = releaseBase - 20
}

func deriveSaturationAndWidth(s *Settings, dynamics, bright, strength float64) {
	s.Saturation.Drive = clamp(dynamics*0.3*strength, saturationDriveMin, saturationDriveMax)
	s.StereoImager.Width = clamp(1.0+(bright-dynamics)*0.10*strength, stereoWidthMin, stereoWidthMax)
}

func deriveLimiter(s *Settings, peakRisk, strength float64) {
	s.Limiter.CeilingDbTp = clamp(limiterCeilingMaxDb-peakRisk*(limiterCeilingMaxDb-limiterCeilingMinDb), limiterCeilingMinDb, limiterCeilingMaxDb)
	s.Limiter.LookaheadMs = clamp(limiterLookaheadMinMs+peakRisk*(limiterLookaheadMaxMs-limiterLookaheadMinMs)*strength, limiterLookaheadMinMs, limiterLookaheadMaxMs)
}

func deriveLoudnessNormalizer(s *Settings, integratedLufs float64) {
	best := targetLufsOptions[0]
	bestDist := math.Abs(integratedLufs - best)
	for _, option := range targetLufsOptions[1:] {
		if d := math.Abs(integratedLufs - option); d < bestDist {
			best, bestDist = option, d
		}
	}
	s.LoudnessNormalizer.TargetLufs = best
}

// clampSettings re-asserts every derived range bound defensively, the final
// step named in the engine's design: a bug in any deriveXxx function can
// never hand the chain an out-of-range parameter.
func clampSettings(s *Settings) {
	s.HighPass.CutoffHz = clamp(s.HighPass.CutoffHz, highPassCutoffMinHz, highPassCutoffMaxHz)

	s.Equalizer.LowShelfHz = clamp(s.Equalizer.LowShelfHz, lowShelfHzMin, lowShelfHzMax)
	s.Equalizer.LowShelfDb = clamp(s.Equalizer.LowShelfDb, lowShelfGainMinDb, lowShelfGainMaxDb)
	s.Equalizer.LowShelfQ = clamp(s.Equalizer.LowShelfQ, shelfQMin, shelfQMax)
	s.Equalizer.MidHz = clamp(s.Equalizer.MidHz, midBellHzMin, midBellHzMax)
	s.Equalizer.MidDb = clamp(s.Equalizer.MidDb, midBellGainMinDb, midBellGainMaxDb)
	s.Equalizer.MidQ = clamp(s.Equalizer.MidQ, midBellQMin, midBellQMax)
	s.Equalizer.HighShelfHz = clamp(s.Equalizer.HighShelfHz, highShelfHzMin, highShelfHzMax)
	s.Equalizer.HighShelfDb = clamp(s.Equalizer.HighShelfDb, highShelfGainMinDb, highShelfGainMaxDb)
	s.Equalizer.HighShelfQ = clamp(s.Equalizer.HighShelfQ, shelfQMin, shelfQMax)

	s.Multiband.Low.ThresholdDb = clamp(s.Multiband.Low.ThresholdDb, compBaseMinDb-1.5, compBaseMaxDb-1.5)
	s.Multiband.Mid.ThresholdDb = clamp(s.Multiband.Mid.ThresholdDb, compBaseMinDb, compBaseMaxDb)
	s.Multiband.High.ThresholdDb = clamp(s.Multiband.High.ThresholdDb, compBaseMinDb+1.5, compBaseMaxDb+1.5)
	s.Multiband.Low.Ratio = clamp(s.Multiband.Low.Ratio, lowRatioMin, lowRatioMax)
	s.Multiband.Mid.Ratio = clamp(s.Multiband.Mid.Ratio, midRatioMin, midRatioMax)
	s.Multiband.High.Ratio = clamp(s.Multiband.High.Ratio, highRatioMin, highRatioMax)
	s.Multiband.Low.AttackMs = clamp(s.Multiband.Low.AttackMs, attackBaseMinMs+6, attackBaseMaxMs+6)
	s.Multiband.Mid.AttackMs = clamp(s.Multiband.Mid.AttackMs, attackBaseMinMs, attackBaseMaxMs)
	s.Multiband.High.AttackMs = clamp(s.Multiband.High.AttackMs, attackBaseMinMs-4, attackBaseMaxMs-4)
	s.Multiband.Low.ReleaseMs = clamp(s.Multiband.Low.ReleaseMs, releaseBaseMinMs+35, releaseBaseMaxMs+35)
	s.Multiband.Mid.ReleaseMs = clamp(s.Multiband.Mid.ReleaseMs, releaseBaseMinMs, releaseBaseMaxMs)
	s.Multiband.High.ReleaseMs = clamp(s.Multiband.High.ReleaseMs, releaseBaseMinMs-20, releaseBaseMaxMs-20)

	s.Saturation.Drive = clamp(s.Saturation.Drive, saturationDriveMin, saturationDriveMax)
	s.StereoImager.Width = clamp(s.StereoImager.Width, stereoWidthMin, stereoWidthMax)
	s.Limiter.CeilingDbTp = clamp(s.Limiter.CeilingDbTp, limiterCeilingMinDb, limiterCeilingMaxDb)
	s.Limiter.LookaheadMs = clamp(s.Limiter.LookaheadMs, limiterLookaheadMinMs, limiterLookaheadMaxMs)

	if !isTargetLufsOption(s.LoudnessNormalizer.TargetLufs) {
		deriveLoudnessNormalizer(s, s.LoudnessNormalizer.TargetLufs)
	}
}

func isTargetLufsOption(v float64) bool {
	for _, option := range targetLufsOptions {
		if v == option {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func lerp(lo, hi, t float64) float64 {
	return lo + clamp01(t)*(hi-lo)
}
