// Package mastering implements the analysis and mastering-chain core: the
// audio analyzer, the eight ordered mastering stages, the auto-preset engine,
// and the genre presets that drive them.
package mastering

// AnalysisMetrics holds the output of a single Analyze call. It is produced
// fresh per call and never mutated afterward.
type AnalysisMetrics struct {
	IntegratedLufs float64
	TruePeakDbTp   float64
	RmsDbFs        float64
	CrestFactorDb  float64
	Spectrum       [128]float64
}

// HighPassSettings configures the high-pass cleanup stage.
type HighPassSettings struct {
	Enabled  bool
	CutoffHz float64
}

// EqualizerSettings configures the low-shelf/peaking/high-shelf cascade.
type EqualizerSettings struct {
	Enabled bool

	LowShelfHz  float64
	LowShelfDb  float64
	LowShelfQ   float64
	MidHz       float64
	MidDb       float64
	MidQ        float64
	HighShelfHz float64
	HighShelfDb float64
	HighShelfQ  float64
}

// RebalanceSettings configures the pseudo-stem rebalance stage.
type RebalanceSettings struct {
	Enabled      bool
	VocalDb      float64
	DrumDb       float64
	InstrumentDb float64
}

// BandSettings configures one band of the multiband compressor.
type BandSettings struct {
	ThresholdDb float64
	Ratio       float64
	AttackMs    float64
	ReleaseMs   float64
}

// MultibandSettings configures the three-band compressor.
type MultibandSettings struct {
	Enabled   bool
	LowCutHz  float64
	HighCutHz float64
	Low       BandSettings
	Mid       BandSettings
	High      BandSettings
}

// SaturationSettings configures the tanh soft-clip stage.
type SaturationSettings struct {
	Enabled bool
	Drive   float64
}

// StereoImagerSettings configures mid/side width scaling.
type StereoImagerSettings struct {
	Enabled bool
	Width   float64
}

// LimiterSettings configures the lookahead brick-wall limiter.
type LimiterSettings struct {
	Enabled     bool
	CeilingDbTp float64
	LookaheadMs float64
}

// LoudnessNormalizerSettings configures the global gain-to-target stage.
type LoudnessNormalizerSettings struct {
	Enabled    bool
	TargetLufs float64
}

// Settings is the full nested configuration tree for one run of the
// mastering chain, one sub-record per stage.
type Settings struct {
	HighPass           HighPassSettings
	Equalizer          EqualizerSettings
	Rebalance          RebalanceSettings
	Multiband          MultibandSettings
	Saturation         SaturationSettings
	StereoImager       StereoImagerSettings
	Limiter            LimiterSettings
	LoudnessNormalizer LoudnessNormalizerSettings
}

// DefaultSettings returns the conservative default configuration named in
// the data model: 0 dB EQ, moderate compression ratios, -1 dBTP ceiling,
// -14 LUFS target, unity stereo width, light saturation drive.
func DefaultSettings() Settings {
	return Settings{
		HighPass: HighPassSettings{Enabled: true, CutoffHz: 30},
		Equalizer: EqualizerSettings{
			Enabled:     true,
			LowShelfHz:  120, LowShelfDb: 0, LowShelfQ: 0.8,
			MidHz: 1200, MidDb: 0, MidQ: 1.4,
			HighShelfHz: 9000, HighShelfDb: 0, HighShelfQ: 0.8,
		},
		Rebalance: RebalanceSettings{Enabled: true, VocalDb: 0, DrumDb: 0, InstrumentDb: 0},
		Multiband: MultibandSettings{
			Enabled: true, LowCutHz: 200, HighCutHz: 4000,
			Low:  BandSettings{ThresholdDb: -20, Ratio: 1.6, AttackMs: 16, ReleaseMs: 150},
			Mid:  BandSettings{ThresholdDb: -18.5, Ratio: 1.8, AttackMs: 10, ReleaseMs: 115},
			High: BandSettings{ThresholdDb: -17, Ratio: 2.0, AttackMs: 6, ReleaseMs: 95},
		},
		Saturation:   SaturationSettings{Enabled: true, Drive: 0.15},
		StereoImager: StereoImagerSettings{Enabled: true, Width: 1.0},
		Limiter:      LimiterSettings{Enabled: true, CeilingDbTp: -1.0, LookaheadMs: 3},
		LoudnessNormalizer: LoudnessNormalizerSettings{Enabled: true, TargetLufs: -14},
	}
}
