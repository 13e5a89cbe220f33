package mastering

// GenrePreset names a built-in starting point for the mastering chain.
// Applying Auto runs AdaptPreset against the analyzed metrics and applies no
// nudge; every other preset starts from DefaultSettings, without consulting
// the metrics, and nudges it toward the genre's characteristic sound.
type GenrePreset struct {
	Name        string
	Description string
	apply       func(s *Settings)
}

var (
	PresetAuto = GenrePreset{
		Name:        "auto",
		Description: "Metrics-driven settings with no genre bias.",
		apply:       func(s *Settings) {},
	}

	PresetPop = GenrePreset{
		Name:        "pop",
		Description: "Forward vocals, controlled low end, bright top.",
		apply: func(s *Settings) {
			s.Rebalance.VocalDb = clamp(s.Rebalance.VocalDb+1.5, -6, 6)
			s.Equalizer.HighShelfDb = clamp(s.Equalizer.HighShelfDb+1.0, -12, 12)
		},
	}

	PresetHipHop = GenrePreset{
		Name:        "hip-hop",
		Description: "Heavier low end, firmer compression, narrower width.",
		apply: func(s *Settings) {
			s.Equalizer.LowShelfDb = clamp(s.Equalizer.LowShelfDb+1.5, -12, 12)
			s.Multiband.Low.Ratio = clamp(s.Multiband.Low.Ratio+0.6, 1, 8)
			s.StereoImager.Width = clamp(s.StereoImager.Width-0.05, 0.7, 1.3)
		},
	}

	PresetEDM = GenrePreset{
		Name:        "edm",
		Description: "Tight low end, wide stereo image, loud target.",
		apply: func(s *Settings) {
			s.HighPass.CutoffHz = clamp(s.HighPass.CutoffHz+10, 10, 200)
			s.StereoImager.Width = clamp(s.StereoImager.Width+0.1, 0.7, 1.3)
			s.LoudnessNormalizer.TargetLufs = clamp(s.LoudnessNormalizer.TargetLufs+1, -24, -6)
		},
	}

	PresetRock = GenrePreset{
		Name:        "rock",
		Description: "Present midrange, moderate saturation, firmer limiting.",
		apply: func(s *Settings) {
			s.Equalizer.MidDb = clamp(s.Equalizer.MidDb+1.0, -12, 12)
			s.Saturation.Drive = clamp(s.Saturation.Drive+0.1, 0, 1)
		},
	}

	PresetAcoustic = GenrePreset{
		Name:        "acoustic",
		Description: "Gentle dynamics, minimal saturation, natural width.",
		apply: func(s *Settings) {
			for _, band := range []*BandSettings{&s.Multiband.Low, &s.Multiband.Mid, &s.Multiband.High} {
				band.Ratio = clamp(band.Ratio-0.4, 1, 8)
			}
			s.Saturation.Drive = clamp(s.Saturation.Drive-0.1, 0, 1)
			s.StereoImager.Width = 1.0
		},
	}
)

// GenrePresets lists every built-in preset in display order, Auto first.
var GenrePresets = []GenrePreset{
	PresetAuto, PresetPop, PresetHipHop, PresetEDM, PresetRock, PresetAcoustic,
}

// FindGenrePreset looks up a preset by exact name match, returning Auto and
// false when name does not match a built-in preset. Preset names are
// lowercase, so callers matching user input case-insensitively lower it
// first (the CLI lowers its --preset flag before calling).
func FindGenrePreset(name string) (GenrePreset, bool) {
	for _, p := range GenrePresets {
		if p.Name == name {
			return p, true
		}
	}
	return PresetAuto, false
}

// Apply builds the settings for this preset and re-clamps the result. Auto
// runs AdaptPreset against the measured metrics and strength; every other
// preset ignores metrics and strength and applies its fixed nudge to
// DefaultSettings.
func (p GenrePreset) Apply(metrics AnalysisMetrics, strength float64) Settings {
	var s Settings
	if p.Name == PresetAuto.Name {
		s = AdaptPreset(metrics, strength)
	} else {
		s = DefaultSettings()
	}
	p.apply(&s)
	clampSettings(&s)
	return s
}
