package solver

import "time"

// ResultSink receives every strictly better incumbent. Emissions are
// append-only; a sink must tolerate repeated calls. The assignment slice
// is owned by the sink after the call.
type ResultSink interface {
	Emit(assignment []int, score float64) error
}

// ProgressSink receives one report per MPLP round.
type ProgressSink interface {
	Progress(elapsed time.Duration, objective, best float64)
}

// Plan is the run schedule executed by Solve.
type Plan struct {
	Iterations       int     // MPLP rounds per phase
	ObjDelThreshold  float64 // stop a phase when the objective moves less than this
	IntGapThreshold  float64 // stop when dual objective - incumbent drops below this
	Tighten          bool    // add all pairwise intersections after the first phase
	Restarts         bool    // run randomized-restart decoding when a gap remains
	DecimationRounds int     // maximum decimation + MPLP phases
}

// DefaultPlan returns the stock schedule of the mplp command.
func DefaultPlan() Plan {
	return Plan{
		Iterations:       1000,
		ObjDelThreshold:  0.0002,
		IntGapThreshold:  0.0002,
		Tighten:          true,
		Restarts:         true,
		DecimationRounds: 0,
	}
}

// Result summarizes a Solve run.
type Result struct {
	Assignment    []int         // best decoded assignment
	Score         float64       // its value under the model potentials
	Objective     float64       // last dual objective (upper bound)
	Gap           float64       // Objective - Score
	Iterations    int           // MPLP rounds performed, heuristics included
	Intersections int           // catalogue size at the end of the run
	Regions       int           // number of regions
	Elapsed       time.Duration // wall-clock time since New
}
