package solver

// Solve executes plan:
//
//  1. RunMPLP.
//  2. If a gap remains and plan.Tighten: AddAllEdgeIntersections, RunMPLP.
//  3. If a gap remains and plan.Restarts: RunRestarts.
//  4. Up to plan.DecimationRounds times while a gap remains: RunDecimation
//     then RunMPLP; stops early when decimation fixes nothing.
//
// Every phase is skipped once the deadline has passed. The incumbent at
// the end is returned in the Result.
func (s *Solver) Solve(plan Plan) (Result, error) {
	mplp := func() error {
		return s.RunMPLP(plan.Iterations, plan.ObjDelThreshold, plan.IntGapThreshold)
	}
	open := func() bool {
		return !s.pastDeadline() && s.objective-s.bestVal >= plan.IntGapThreshold
	}

	if err := mplp(); err != nil {
		return s.result(), err
	}

	if plan.Tighten && open() {
		if err := s.AddAllEdgeIntersections(); err != nil {
			return s.result(), err
		}
		if err := mplp(); err != nil {
			return s.result(), err
		}
	}

	if plan.Restarts && open() {
		if err := s.RunRestarts(); err != nil {
			return s.result(), err
		}
	}

	for i := 0; i < plan.DecimationRounds && open(); i++ {
		fixed, err := s.RunDecimation()
		if err != nil {
			return s.result(), err
		}
		if !fixed {
			break
		}
		if err = mplp(); err != nil {
			return s.result(), err
		}
	}

	res := s.result()
	s.log.Info("solve finished",
		"score", res.Score,
		"objective", res.Objective,
		"gap", res.Gap,
		"iterations", res.Iterations,
		"elapsed", res.Elapsed)
	return res, s.emitErr
}

func (s *Solver) result() Result {
	best, val := s.Best()
	return Result{
		Assignment:    best,
		Score:         val,
		Objective:     s.objective,
		Gap:           s.objective - val,
		Iterations:    s.iterations,
		Intersections: len(s.intersects),
		Regions:       len(s.regions),
		Elapsed:       s.elapsed(),
	}
}
