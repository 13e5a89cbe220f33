package mastering

import "testing"

func TestAnalyzeOfDigitalSilenceReturnsDegenerateMetrics(t *testing.T) {
	buf := testTone(4410, 44100, 1000, 0)
	m := Analyze(buf)

	if m.IntegratedLufs > degenerateLufs+0.01 {
		t.Errorf("expected silence to report near-degenerate LUFS, got %v", m.IntegratedLufs)
	}
	if m.TruePeakDbTp != degenerateDbTp {
		t.Errorf("got true peak %v, want degenerate sentinel %v", m.TruePeakDbTp, degenerateDbTp)
	}
}

func TestAnalyzeLouderToneReportsHigherTruePeak(t *testing.T) {
	quiet := Analyze(testTone(8820, 44100, 1000, 0.1))
	loud := Analyze(testTone(8820, 44100, 1000, 0.8))

	if loud.TruePeakDbTp <= quiet.TruePeakDbTp {
		t.Errorf("expected louder tone to report higher true peak, got %v <= %v", loud.TruePeakDbTp, quiet.TruePeakDbTp)
	}
}

func TestAnalyzeSpectrumIsNormalizedToUnity(t *testing.T) {
	m := Analyze(testTone(8820, 44100, 1000, 0.7))

	maxVal := 0.0
	for _, v := range m.Spectrum {
		if v > maxVal {
			maxVal = v
		}
		if v < 0 || v > 1.0001 {
			t.Fatalf("spectrum bin out of [0,1] range: %v", v)
		}
	}
	if maxVal < 0.99 {
		t.Errorf("expected spectrum to be normalized with a bin near 1.0, got max %v", maxVal)
	}
}

func TestAnalyzeVeryShortBufferReturnsDegenerateMetrics(t *testing.T) {
	buf := testTone(1, 44100, 1000, 0.5)
	m := Analyze(buf)
	if m.IntegratedLufs != degenerateLufs {
		t.Errorf("got %v, want degenerate LUFS %v for a 1-sample buffer", m.IntegratedLufs, degenerateLufs)
	}
}
