package mastering

import (
	"math"

	"github.com/gopodcaster/mastering/internal/audio"
)

// StageID names one stage of the mastering chain.
type StageID string

const (
	StageHighPass            StageID = "highpass"
	StageEqualizer           StageID = "equalizer"
	StagePseudoRebalance     StageID = "rebalance"
	StageMultibandCompressor StageID = "multiband"
	StageSaturation          StageID = "saturation"
	StageStereoImager        StageID = "imager"
	StageLimiter             StageID = "limiter"
	StageLoudnessNormalizer  StageID = "normalizer"
)

// StageOrder is the fixed dispatch order named in the component design.
var StageOrder = []StageID{
	StageHighPass,
	StageEqualizer,
	StagePseudoRebalance,
	StageMultibandCompressor,
	StageSaturation,
	StageStereoImager,
	StageLimiter,
	StageLoudnessNormalizer,
}

// stageLabels are the human-readable names sent to the progress observer.
var stageLabels = map[StageID]string{
	StageHighPass:            "High-pass",
	StageEqualizer:           "Equalizer",
	StagePseudoRebalance:     "Pseudo-rebalance",
	StageMultibandCompressor: "Multiband compressor",
	StageSaturation:          "Saturation",
	StageStereoImager:        "Stereo imager",
	StageLimiter:             "Limiter",
	StageLoudnessNormalizer:  "Loudness normalizer",
}

// stageApplyFunc runs one stage against buf. Only the multiband compressor's
// builder returns a non-zero MultibandResult.
type stageApplyFunc func(buf *audio.Buffer, settings Settings) MultibandResult

// stageBuilderFunc inspects settings and either hands back the stage's apply
// function, or reports that the stage should be skipped entirely — because
// it is disabled or because its configuration is a no-op.
type stageBuilderFunc func(settings Settings) (stageApplyFunc, bool)

var stageBuilders = map[StageID]stageBuilderFunc{
	StageHighPass: func(s Settings) (stageApplyFunc, bool) {
		if !s.HighPass.Enabled {
			return nil, false
		}
		return func(buf *audio.Buffer, s Settings) MultibandResult {
			applyHighPass(buf, s.HighPass)
			return MultibandResult{}
		}, true
	},

	StageEqualizer: func(s Settings) (stageApplyFunc, bool) {
		if !s.Equalizer.Enabled {
			return nil, false
		}
		return func(buf *audio.Buffer, s Settings) MultibandResult {
			applyEqualizer(buf, s.Equalizer)
			return MultibandResult{}
		}, true
	},

	StagePseudoRebalance: func(s Settings) (stageApplyFunc, bool) {
		if !s.Rebalance.Enabled || isRebalanceNoOp(s.Rebalance) {
			return nil, false
		}
		return func(buf *audio.Buffer, s Settings) MultibandResult {
			applyRebalance(buf, s.Rebalance)
			return MultibandResult{}
		}, true
	},

	StageMultibandCompressor: func(s Settings) (stageApplyFunc, bool) {
		if !s.Multiband.Enabled {
			return nil, false
		}
		return func(buf *audio.Buffer, s Settings) MultibandResult {
			return applyMultibandCompressor(buf, s.Multiband)
		}, true
	},

	StageSaturation: func(s Settings) (stageApplyFunc, bool) {
		if !s.Saturation.Enabled {
			return nil, false
		}
		return func(buf *audio.Buffer, s Settings) MultibandResult {
			applySaturation(buf, s.Saturation)
			return MultibandResult{}
		}, true
	},

	StageStereoImager: func(s Settings) (stageApplyFunc, bool) {
		if !s.StereoImager.Enabled || isStereoImagerNoOp(s.StereoImager) {
			return nil, false
		}
		return func(buf *audio.Buffer, s Settings) MultibandResult {
			applyStereoImager(buf, s.StereoImager)
			return MultibandResult{}
		}, true
	},

	StageLimiter: func(s Settings) (stageApplyFunc, bool) {
		if !s.Limiter.Enabled {
			return nil, false
		}
		return func(buf *audio.Buffer, s Settings) MultibandResult {
			applyLimiter(buf, s.Limiter)
			return MultibandResult{}
		}, true
	},

	StageLoudnessNormalizer: func(s Settings) (stageApplyFunc, bool) {
		if !s.LoudnessNormalizer.Enabled {
			return nil, false
		}
		return func(buf *audio.Buffer, s Settings) MultibandResult {
			applyLoudnessNormalizer(buf, s.LoudnessNormalizer)
			// The limiter pass is not optional in practice once loudness
			// normalization has run: a quiet buffer with loud transients can
			// be pushed back above the ceiling by the normalizer's uniform
			// gain. Run a mandatory limiter safety pass if the limiter is
			// enabled at all.
			if s.Limiter.Enabled {
				applyLimiter(buf, s.Limiter)
			}
			return MultibandResult{}
		}, true
	},
}

func isRebalanceNoOp(r RebalanceSettings) bool {
	return math.Abs(r.VocalDb) < 0.01 && math.Abs(r.DrumDb) < 0.01 && math.Abs(r.InstrumentDb) < 0.01
}

func isStereoImagerNoOp(s StereoImagerSettings) bool {
	return math.Abs(s.Width-1.0) < 1e-9
}

// Stage is one dispatched, already-filtered step of a mastering run.
type Stage struct {
	ID    StageID
	Apply stageApplyFunc
}

// BuildChain walks StageOrder and asks the builder registry for each
// stage's apply function, skipping any stage that is disabled or whose
// builder reports its configuration is a no-op.
func BuildChain(settings Settings) []Stage {
	chain := make([]Stage, 0, len(StageOrder))
	for _, id := range StageOrder {
		builder, ok := stageBuilders[id]
		if !ok {
			continue
		}
		apply, enabled := builder(settings)
		if !enabled {
			continue
		}
		chain = append(chain, Stage{ID: id, Apply: apply})
	}
	return chain
}

// ProgressUpdate is delivered to an optional observer between stages. Percent
// is monotonic non-decreasing within a single Process call.
type ProgressUpdate struct {
	Percent float64
	Message string
}

// ProgressObserver receives progress updates. It must never panic; the chain
// treats it as a plain notification sink.
type ProgressObserver func(ProgressUpdate)

// Result carries the mastering chain's output buffer plus the diagnostic
// readouts the report writer needs.
type Result struct {
	Output    *audio.Buffer
	Multiband MultibandResult
}

// Process clones the input buffer and runs every enabled, non-no-op stage
// built by BuildChain, in the fixed order named by StageOrder, against the
// clone. The input is never mutated. When progress is non-nil it receives
// one update per dispatched stage, the last of which is 100%; if no stage is
// dispatched it receives a single 100% update.
func Process(input *audio.Buffer, settings Settings, progress ProgressObserver) Result {
	out := input.Clone()
	var result Result

	chain := BuildChain(settings)

	for i, stage := range chain {
		mb := stage.Apply(out, settings)
		if stage.ID == StageMultibandCompressor {
			result.Multiband = mb
		}

		if progress != nil {
			progress(ProgressUpdate{
				Percent: stagePercent(i+1, len(chain)),
				Message: stageLabels[stage.ID],
			})
		}
	}

	if progress != nil && len(chain) == 0 {
		progress(ProgressUpdate{Percent: 100, Message: "no stages enabled"})
	}

	result.Output = out
	return result
}

func stagePercent(done, total int) float64 {
	if total == 0 {
		return 100
	}
	return 100.0 * float64(done) / float64(total)
}
