package solver

import (
	"fmt"
	"time"
)

// RunMPLP runs up to niter rounds of message passing. Each round updates
// every region once, decodes locally and scores the decoding. It stops
// early when the objective moved less than objDelThr (only after
// MinRounds rounds), when the integrality gap drops below intGapThr, or
// when the deadline has passed.
//
// With a time limit set, global decoding runs once as soon as the
// elapsed time exceeds GlobalDecodingAt of the limit.
//
// The returned error is either a structural failure of an update or the
// first error reported by the result sink.
func (s *Solver) RunMPLP(niter int, objDelThr, intGapThr float64) error {
	for it := 0; it < niter; it++ {
		if err := s.round(); err != nil {
			return err
		}
		obj := s.objective
		s.objDel = s.lastObj - obj
		s.lastObj = obj

		if !s.globalDecoded && s.opts.TimeLimit > 0 && !s.pastDeadline() &&
			s.elapsed() > time.Duration(float64(s.opts.TimeLimit)*s.opts.GlobalDecodingAt) {
			s.log.Debug("running global decoding", "elapsed", s.elapsed())
			if err := s.RunGlobalDecoding(false); err != nil {
				return err
			}
		}

		gap := obj - s.bestVal
		s.log.Debug("mplp round",
			"iter", s.iterations,
			"objective", obj,
			"best", s.bestVal,
			"obj_del", s.objDel,
			"int_gap", gap)
		if s.opts.Progress != nil {
			s.opts.Progress.Progress(s.elapsed(), obj, s.bestVal)
		}

		if s.objDel < objDelThr && it > s.opts.MinRounds {
			break
		}
		if gap < intGapThr {
			break
		}
		if s.pastDeadline() {
			s.log.Debug("deadline reached", "elapsed", s.elapsed())
			break
		}
	}
	return s.emitErr
}

// round is one sweep of region updates followed by LocalDecode and
// UpdateResult.
func (s *Solver) round() error {
	for _, r := range s.regions {
		if err := r.UpdateMsgs(s.beliefs); err != nil {
			return fmt.Errorf("solver: update region %v: %w", r.Vars(), err)
		}
	}
	s.iterations++
	s.LocalDecode()
	s.UpdateResult()
	return nil
}

// LocalDecode returns the dual objective Σ_h max b_h and writes every
// free variable's singleton argmax into the decoded assignment (ties keep
// the lowest state). Fixed variables keep their state.
//
// Complexity: O(Σ_h |b_h|).
func (s *Solver) LocalDecode() float64 {
	var obj float64
	for h, b := range s.beliefs {
		val, at := b.Max()
		obj += val
		if len(s.intersects[h]) != 1 {
			continue
		}
		v := s.intersects[h][0]
		if _, fixed := s.evidence[v]; !fixed {
			s.decoded[v] = at
		}
	}
	s.objective = obj
	return obj
}

// dualObjective returns Σ_h max b_h without touching the decoded
// assignment.
func (s *Solver) dualObjective() float64 {
	var obj float64
	for _, b := range s.beliefs {
		val, _ := b.Max()
		obj += val
	}
	return obj
}

// UpdateResult scores the decoded assignment and, when it strictly beats
// the incumbent, makes it the incumbent and emits it to the result sink
// (unless fewer than MinEmitTime remain before the deadline). It returns
// the score of the decoded assignment.
func (s *Solver) UpdateResult() float64 {
	val := s.intVal(s.decoded)
	if val <= s.bestVal {
		return val
	}
	copy(s.best, s.decoded)
	s.bestVal = val
	s.log.Info("new incumbent", "score", val, "elapsed", s.elapsed())

	if s.opts.Sink == nil || !s.canEmit() {
		return val
	}
	if err := s.opts.Sink.Emit(append([]int(nil), s.best...), val); err != nil {
		s.log.Warn("result sink failed", "err", err)
		if s.emitErr == nil {
			s.emitErr = fmt.Errorf("solver: emit: %w", err)
		}
	}
	return val
}

func (s *Solver) canEmit() bool {
	if s.opts.TimeLimit <= 0 {
		return true
	}
	return s.opts.TimeLimit-s.elapsed() > s.opts.MinEmitTime
}

// IntVal returns the value of a full assignment under the model
// potentials: the sum of every region potential and every singleton field
// at the assignment. Structural regions contribute nothing.
func (s *Solver) IntVal(assign []int) (float64, error) {
	if len(assign) != len(s.domains) {
		return 0, fmt.Errorf("%w: %d values for %d variables", ErrBadAssignment, len(assign), len(s.domains))
	}
	for v, st := range assign {
		if st < 0 || st >= s.domains[v] {
			return 0, fmt.Errorf("%w: variable %d state %d", ErrBadAssignment, v, st)
		}
	}
	return s.intVal(assign), nil
}

// intVal assumes assign is valid.
func (s *Solver) intVal(assign []int) float64 {
	var (
		sum    float64
		states []int
	)
	for ri, r := range s.regions {
		pot := s.regionPots[ri]
		if pot == nil {
			continue
		}
		vars := s.intersects[r.Principal()]
		states = states[:0]
		for _, v := range vars {
			states = append(states, assign[v])
		}
		val, _ := pot.Value(states)
		sum += val
	}
	for v, field := range s.singlePots {
		sum += field.At(assign[v])
	}
	return sum
}
