package solver

import (
	"io"
	"log/slog"
	"math"
	"time"
)

// Defaults. The numeric ones reproduce the constants of the reference
// MPLP tool.
const (
	DefaultMinRounds        = 16    // objective-change stop ignored while the 0-based round index is <= this
	DefaultDecodeRounds     = 10    // MPLP rounds after each provisional fix
	DefaultBatchDivisor     = 10.0  // largest-gap batch keeps gaps ≥ biggest/divisor
	DefaultGapThreshold     = 0.001 // smallest-gap decoding stops above this gap
	DefaultRoundBudget      = 1000  // inner MPLP rounds allowed to smallest-gap decoding
	DefaultRestartTrials    = 10    // restarts run trials 0..DefaultRestartTrials, the last one exhaustive
	DefaultRestartScale     = 0.1   // U[0,1) noise scale on singleton beliefs per trial
	DefaultDegenerateScale  = 0.01  // U[0,1) noise scale for degenerate zero-objective instances
	DefaultGlobalDecodingAt = 1.0 / 3
	DefaultMinEmitTime      = time.Second
)

const (
	panicNegativeDuration = "solver: duration must be non-negative"
	panicBadScale         = "solver: scale must be finite and non-negative"
	panicBadDivisor       = "solver: divisor must be finite and >= 1"
	panicBadFraction      = "solver: fraction must be in [0,1]"
	panicBadCount         = "solver: count must be non-negative"
)

// Options configures a Solver.
type Options struct {
	TimeLimit         time.Duration // 0 = no deadline
	MinRounds         int
	DecodeRounds      int
	BatchDivisor      float64
	GapThreshold      float64
	RoundBudget       int
	RestartTrials     int
	RestartScale      float64
	PerturbDegenerate bool
	DegenerateScale   float64
	GlobalDecodingAt  float64       // fraction of TimeLimit after which global decoding runs once
	MinEmitTime       time.Duration // no emission when less than this remains before the deadline
	Seed              int64
	Logger            *slog.Logger
	Sink              ResultSink
	Progress          ProgressSink
	Clock             func() time.Time
}

// Option mutates Options. Constructors panic only on nonsensical values.
type Option func(*Options)

// DefaultOptions returns the reference configuration: no deadline, no
// sinks, degenerate-instance perturbation off, a discard logger.
func DefaultOptions() Options {
	return Options{
		MinRounds:        DefaultMinRounds,
		DecodeRounds:     DefaultDecodeRounds,
		BatchDivisor:     DefaultBatchDivisor,
		GapThreshold:     DefaultGapThreshold,
		RoundBudget:      DefaultRoundBudget,
		RestartTrials:    DefaultRestartTrials,
		RestartScale:     DefaultRestartScale,
		DegenerateScale:  DefaultDegenerateScale,
		GlobalDecodingAt: DefaultGlobalDecodingAt,
		MinEmitTime:      DefaultMinEmitTime,
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:            time.Now,
	}
}

// WithTimeLimit sets the wall-clock budget measured from New.
func WithTimeLimit(d time.Duration) Option {
	if d < 0 {
		panic(panicNegativeDuration)
	}
	return func(o *Options) { o.TimeLimit = d }
}

// WithSeed seeds every randomized heuristic (0 selects the fixed default).
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithLogger routes solver diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithResultSink emits every new incumbent to sink.
func WithResultSink(sink ResultSink) Option {
	return func(o *Options) { o.Sink = sink }
}

// WithProgressSink reports every MPLP round to sink.
func WithProgressSink(sink ProgressSink) Option {
	return func(o *Options) { o.Progress = sink }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Clock = now
		}
	}
}

// WithDegeneratePerturbation enables the post-build check for instances
// without any field whose dual objective is identically zero, and sets
// the scale of the U[0,1) noise added to singleton beliefs in that case.
func WithDegeneratePerturbation(scale float64) Option {
	checkScale(scale)
	return func(o *Options) {
		o.PerturbDegenerate = true
		o.DegenerateScale = scale
	}
}

// WithMinRounds sets the 0-based round index RunMPLP must exceed before
// it may stop on a small objective change.
func WithMinRounds(n int) Option {
	checkCount(n)
	return func(o *Options) { o.MinRounds = n }
}

// WithDecodeRounds sets the MPLP rounds run after each provisional fix.
func WithDecodeRounds(n int) Option {
	checkCount(n)
	return func(o *Options) { o.DecodeRounds = n }
}

// WithBatchDivisor sets the largest-gap batch divisor.
func WithBatchDivisor(d float64) Option {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 1 {
		panic(panicBadDivisor)
	}
	return func(o *Options) { o.BatchDivisor = d }
}

// WithGapThreshold sets the early-exit gap of smallest-gap decoding.
func WithGapThreshold(g float64) Option {
	checkScale(g)
	return func(o *Options) { o.GapThreshold = g }
}

// WithRoundBudget caps the inner MPLP rounds of non-exhaustive
// smallest-gap decoding (0 = unlimited).
func WithRoundBudget(n int) Option {
	checkCount(n)
	return func(o *Options) { o.RoundBudget = n }
}

// WithRestarts sets the number of restart trials (plus one final
// exhaustive trial) and their perturbation scale.
func WithRestarts(trials int, scale float64) Option {
	checkCount(trials)
	checkScale(scale)
	return func(o *Options) {
		o.RestartTrials = trials
		o.RestartScale = scale
	}
}

// WithGlobalDecodingAt sets the fraction of the time limit after which
// RunMPLP invokes global decoding once.
func WithGlobalDecodingAt(frac float64) Option {
	if math.IsNaN(frac) || frac < 0 || frac > 1 {
		panic(panicBadFraction)
	}
	return func(o *Options) { o.GlobalDecodingAt = frac }
}

// WithMinEmitTime suppresses incumbent emission when less than d remains
// before the deadline, so a write is never cut short.
func WithMinEmitTime(d time.Duration) Option {
	if d < 0 {
		panic(panicNegativeDuration)
	}
	return func(o *Options) { o.MinEmitTime = d }
}

func checkScale(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		panic(panicBadScale)
	}
}

func checkCount(n int) {
	if n < 0 {
		panic(panicBadCount)
	}
}
