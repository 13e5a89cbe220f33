package mastering

import "testing"

func quietBalancedMetrics() AnalysisMetrics {
	m := AnalysisMetrics{
		IntegratedLufs: -24,
		TruePeakDbTp:   -6,
		RmsDbFs:        -20,
		CrestFactorDb:  12,
	}
	for i := range m.Spectrum {
		m.Spectrum[i] = 0.5
	}
	return m
}

func TestAdaptPresetIsDeterministic(t *testing.T) {
	metrics := quietBalancedMetrics()
	a := AdaptPreset(metrics, 1.0)
	b := AdaptPreset(metrics, 1.0)
	if a != b {
		t.Fatalf("AdaptPreset is not deterministic: %+v != %+v", a, b)
	}
}

func TestAdaptPresetClampsStrengthOutOfRange(t *testing.T) {
	metrics := quietBalancedMetrics()
	low := AdaptPreset(metrics, -5)
	clampedLow := AdaptPreset(metrics, 0.5)
	if low != clampedLow {
		t.Fatalf("out-of-range low strength not clamped: %+v != %+v", low, clampedLow)
	}

	high := AdaptPreset(metrics, 50)
	clampedHigh := AdaptPreset(metrics, 2.0)
	if high != clampedHigh {
		t.Fatalf("out-of-range high strength not clamped: %+v != %+v", high, clampedHigh)
	}
}

func TestAdaptPresetAlwaysReturnsInRangeSettings(t *testing.T) {
	metrics := AnalysisMetrics{
		IntegratedLufs: -3,
		TruePeakDbTp:   2,
		RmsDbFs:        -1,
		CrestFactorDb:  40,
	}
	for i := range metrics.Spectrum {
		if i%2 == 0 {
			metrics.Spectrum[i] = 1
		}
	}

	s := AdaptPreset(metrics, 2.0)

	if s.HighPass.CutoffHz < highPassCutoffMinHz || s.HighPass.CutoffHz > highPassCutoffMaxHz {
		t.Errorf("highpass cutoff out of range: %v", s.HighPass.CutoffHz)
	}
	if s.Saturation.Drive < saturationDriveMin || s.Saturation.Drive > saturationDriveMax {
		t.Errorf("saturation drive out of range: %v", s.Saturation.Drive)
	}
	if s.StereoImager.Width < stereoWidthMin || s.StereoImager.Width > stereoWidthMax {
		t.Errorf("stereo width out of range: %v", s.StereoImager.Width)
	}
	if s.Limiter.CeilingDbTp < limiterCeilingMinDb || s.Limiter.CeilingDbTp > limiterCeilingMaxDb {
		t.Errorf("limiter ceiling out of range: %v", s.Limiter.CeilingDbTp)
	}
	if s.Limiter.LookaheadMs < limiterLookaheadMinMs || s.Limiter.LookaheadMs > limiterLookaheadMaxMs {
		t.Errorf("limiter lookahead out of range: %v", s.Limiter.LookaheadMs)
	}
	if !isTargetLufsOption(s.LoudnessNormalizer.TargetLufs) {
		t.Errorf("target LUFS not one of the declared options: %v", s.LoudnessNormalizer.TargetLufs)
	}
	bands := []struct {
		name     string
		band     BandSettings
		min, max float64
	}{
		{"low", s.Multiband.Low, lowRatioMin, lowRatioMax},
		{"mid", s.Multiband.Mid, midRatioMin, midRatioMax},
		{"high", s.Multiband.High, highRatioMin, highRatioMax},
	}
	for _, b := range bands {
		if b.band.Ratio < b.min || b.band.Ratio > b.max {
			t.Errorf("%s band ratio out of range: %v", b.name, b.band.Ratio)
		}
		if b.band.ThresholdDb < compBaseMinDb-1.5 || b.band.ThresholdDb > compBaseMaxDb+1.5 {
			t.Errorf("%s band threshold out of range: %v", b.name, b.band.ThresholdDb)
		}
	}
}

func TestAdaptPresetBassHeavySpectrumLowersHighpassCutoff(t *testing.T) {
	bassHeavy := quietBalancedMetrics()
	for i := 0; i < 25; i++ {
		bassHeavy.Spectrum[i] = 1.0
	}
	for i := 25; i < 89; i++ {
		bassHeavy.Spectrum[i] = 0.2
	}
	for i := 89; i < len(bassHeavy.Spectrum); i++ {
		bassHeavy.Spectrum[i] = 0.2
	}

	s := AdaptPreset(bassHeavy, 1.0)
	if s.HighPass.CutoffHz > 30 {
		t.Errorf("bass-heavy spectrum got cutoff %v, want <= 30", s.HighPass.CutoffHz)
	}
	if s.Equalizer.LowShelfDb >= 0 {
		t.Errorf("bass-heavy spectrum got low-shelf gain %v, want < 0", s.Equalizer.LowShelfDb)
	}
}

func TestAdaptPresetHighTruePeakTightensLimiterCeiling(t *testing.T) {
	quiet := quietBalancedMetrics()
	quiet.TruePeakDbTp = -6

	peaky := quietBalancedMetrics()
	peaky.TruePeakDbTp = -0.1

	quietSettings := AdaptPreset(quiet, 1.0)
	peakySettings := AdaptPreset(peaky, 1.0)

	if peakySettings.Limiter.CeilingDbTp >= quietSettings.Limiter.CeilingDbTp {
		t.Errorf("peaky metrics got ceiling %v, want tighter than quiet ceiling %v",
			peakySettings.Limiter.CeilingDbTp, quietSettings.Limiter.CeilingDbTp)
	}
	if peakySettings.Limiter.CeilingDbTp < limiterCeilingMinDb || peakySettings.Limiter.CeilingDbTp > limiterCeilingMaxDb {
		t.Errorf("limiter ceiling out of range: %v", peakySettings.Limiter.CeilingDbTp)
	}
}
