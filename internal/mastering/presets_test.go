package mastering

import "testing"

func TestFindGenrePresetKnownName(t *testing.T) {
	p, ok := FindGenrePreset("hip-hop")
	if !ok {
		t.Fatal("expected hip-hop preset to be found")
	}
	if p.Name != "hip-hop" {
		t.Errorf("got preset %q, want hip-hop", p.Name)
	}
}

func TestFindGenrePresetUnknownNameFallsBackToAuto(t *testing.T) {
	p, ok := FindGenrePreset("dubstep-deluxe")
	if ok {
		t.Fatal("expected unknown preset name to report not found")
	}
	if p.Name != PresetAuto.Name {
		t.Errorf("got preset %q, want auto fallback", p.Name)
	}
}

func TestGenrePresetApplyReturnsClampedSettings(t *testing.T) {
	metrics := quietBalancedMetrics()
	for _, p := range GenrePresets {
		s := p.Apply(metrics, 1.5)
		if s.Limiter.CeilingDbTp < -24 || s.Limiter.CeilingDbTp > 0 {
			t.Errorf("preset %s produced out-of-range limiter ceiling: %v", p.Name, s.Limiter.CeilingDbTp)
		}
		if s.StereoImager.Width < 0.7 || s.StereoImager.Width > 1.3 {
			t.Errorf("preset %s produced out-of-range stereo width: %v", p.Name, s.StereoImager.Width)
		}
	}
}

func TestAutoPresetAppliesNoNudge(t *testing.T) {
	metrics := quietBalancedMetrics()
	base := AdaptPreset(metrics, 1.0)
	applied := PresetAuto.Apply(metrics, 1.0)
	if base != applied {
		t.Fatalf("auto preset changed settings: %+v != %+v", base, applied)
	}
}
