package mastering

import "testing"

func TestApplyRebalanceDisabledIsNoOp(t *testing.T) {
	buf := testTone(500, 44100, 2800, 0.5)
	before := append([]float32(nil), buf.Left...)
	applyRebalance(buf, RebalanceSettings{Enabled: false, VocalDb: 3})
	for i := range before {
		if buf.Left[i] != before[i] {
			t.Fatalf("disabled rebalance mutated sample %d", i)
		}
	}
}

func TestApplyRebalanceAllZeroGainsIsNoOp(t *testing.T) {
	buf := testTone(500, 44100, 2800, 0.5)
	before := append([]float32(nil), buf.Left...)
	applyRebalance(buf, RebalanceSettings{Enabled: true, VocalDb: 0, DrumDb: 0, InstrumentDb: 0})
	for i := range before {
		if buf.Left[i] != before[i] {
			t.Fatalf("zero-gain rebalance mutated sample %d", i)
		}
	}
}

func TestApplyRebalanceVocalBoostRaisesVocalBandLevel(t *testing.T) {
	flat := testTone(4410, 44100, 2800, 0.3)
	boosted := testTone(4410, 44100, 2800, 0.3)

	applyRebalance(boosted, RebalanceSettings{Enabled: true, VocalDb: 5})

	if peakAbs(boosted.Left) <= peakAbs(flat.Left) {
		t.Fatalf("expected vocal boost to raise 2.8kHz peak, got %v <= %v", peakAbs(boosted.Left), peakAbs(flat.Left))
	}
}

func TestApplyRebalanceClampsExtremeGains(t *testing.T) {
	buf := testTone(4410, 44100, 2800, 0.3)
	clamped := testTone(4410, 44100, 2800, 0.3)

	applyRebalance(buf, RebalanceSettings{Enabled: true, VocalDb: 1000})
	applyRebalance(clamped, RebalanceSettings{Enabled: true, VocalDb: 6})

	for i := range buf.Left {
		if buf.Left[i] != clamped.Left[i] {
			t.Fatalf("extreme gain not clamped at sample %d: %v != %v", i, buf.Left[i], clamped.Left[i])
		}
	}
}
