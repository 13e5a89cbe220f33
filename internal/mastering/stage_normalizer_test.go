package mastering

import "testing"

func TestApplyLoudnessNormalizerDisabledIsNoOp(t *testing.T) {
	buf := testTone(44100, 44100, 1000, 0.1)
	before := append([]float32(nil), buf.Left...)
	applyLoudnessNormalizer(buf, LoudnessNormalizerSettings{Enabled: false, TargetLufs: -14})
	for i := range before {
		if buf.Left[i] != before[i] {
			t.Fatalf("disabled normalizer mutated sample %d", i)
		}
	}
}

func TestApplyLoudnessNormalizerOnSilenceIsNoOp(t *testing.T) {
	buf := testTone(44100, 44100, 1000, 0)
	before := append([]float32(nil), buf.Left...)
	applyLoudnessNormalizer(buf, LoudnessNormalizerSettings{Enabled: true, TargetLufs: -14})
	for i := range before {
		if buf.Left[i] != before[i] {
			t.Fatalf("normalizer altered digital silence at sample %d", i)
		}
	}
}

func TestApplyLoudnessNormalizerRaisesQuietBufferLevel(t *testing.T) {
	buf := testTone(88200, 44100, 500, 0.05)
	beforePeak := peakAbs(buf.Left)

	applyLoudnessNormalizer(buf, LoudnessNormalizerSettings{Enabled: true, TargetLufs: -14})

	afterPeak := peakAbs(buf.Left)
	if afterPeak <= beforePeak {
		t.Fatalf("expected normalizer to raise level of a quiet buffer, got %v <= %v", afterPeak, beforePeak)
	}
}
