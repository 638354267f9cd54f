// SPDX-License-Identifier: MIT

// Package solver - decoding heuristics.
//
// Global decoding (largest-gap batch and smallest-gap single), randomized
// restarts and decimation are all one procedure, fixAndReconverge,
// driven by a fixPolicy that picks which free variables to fix next:
//
//	pick ──► fix (evidence, decoded, clamp) ──► DecodeRounds MPLP rounds ──┐
//	  ▲                                                                    │
//	  └────────────────────────── until nothing is free ◄──────────────────┘
//
// Provisional runs snapshot the solver first and restore it afterwards,
// so only the incumbent survives. Decimation fixes once and keeps it.

package solver

import "github.com/katalvlaran/mplp/potential"

// candidate is a free variable with its singleton gap and argmax state.
type candidate struct {
	v     int
	state int
	gap   float64
}

// fixPolicy selects the candidates to fix in one outer round. stop ends
// the procedure without fixing anything.
type fixPolicy interface {
	pick(s *Solver, cands []candidate) (picked []candidate, stop bool)
}

// largestGap fixes every candidate whose gap is at least the largest gap
// divided by divisor, in ascending variable order. firstOnly keeps only
// the first of them.
type largestGap struct {
	divisor   float64
	firstOnly bool
}

func (p largestGap) pick(_ *Solver, cands []candidate) ([]candidate, bool) {
	biggest := -potential.Huge
	for _, c := range cands {
		if c.gap >= biggest {
			biggest = c.gap
		}
	}
	threshold := biggest / p.divisor

	var picked []candidate
	for _, c := range cands {
		if c.gap >= threshold {
			picked = append(picked, c)
			if p.firstOnly {
				break
			}
		}
	}
	return picked, false
}

// smallestGap fixes the single candidate with the smallest gap. Equal
// gaps replace the current pick with probability 1/2. When threshold is
// non-negative the procedure stops once the smallest gap exceeds it.
type smallestGap struct {
	threshold float64
}

func (p smallestGap) pick(s *Solver, cands []candidate) ([]candidate, bool) {
	smallest := potential.Huge
	idx := 0
	for i, c := range cands {
		switch {
		case c.gap < smallest:
			smallest = c.gap
			idx = i
		case c.gap == smallest:
			if s.rng.Intn(2) == 1 {
				idx = i
			}
		}
	}
	if p.threshold >= 0 && smallest > p.threshold {
		return nil, true
	}
	return cands[idx : idx+1], false
}

// fixMode tunes fixAndReconverge.
type fixMode struct {
	permanent bool // fix one batch, no reconvergence, no restore
	budget    int  // stop after this many inner rounds (0 = unlimited)
}

// fixAndReconverge repeatedly asks p which free variables to fix, fixes
// them and reconverges with DecodeRounds MPLP rounds, until no variable
// is free, the policy stops, the round budget is spent or the deadline
// passes. Unless permanent, the solver state is restored at the end. It
// returns the number of variables fixed.
func (s *Solver) fixAndReconverge(p fixPolicy, mode fixMode) (int, error) {
	var snap *snapshot
	if !mode.permanent {
		snap = s.snapshot()
	}

	fixed, err := s.fixLoop(p, mode)
	if snap != nil {
		if rerr := s.restore(snap); err == nil {
			err = rerr
		}
	}
	return fixed, err
}

func (s *Solver) fixLoop(p fixPolicy, mode fixMode) (fixed int, err error) {
	rounds := 0
	for {
		cands := s.candidates()
		if len(cands) == 0 {
			return fixed, nil
		}
		picked, stop := p.pick(s, cands)
		if stop || len(picked) == 0 {
			return fixed, nil
		}
		for _, c := range picked {
			s.fix(c.v, c.state)
			s.log.Debug("fixed variable", "var", c.v, "state", c.state, "gap", c.gap)
		}
		fixed += len(picked)
		if mode.permanent {
			return fixed, nil
		}

		for i := 0; i < s.opts.DecodeRounds; i++ {
			if err = s.round(); err != nil {
				return fixed, err
			}
			rounds++
		}
		if mode.budget > 0 && rounds >= mode.budget {
			return fixed, nil
		}
		if s.pastDeadline() {
			return fixed, nil
		}
	}
}

// candidates lists every free variable in ascending order with its gap.
func (s *Solver) candidates() []candidate {
	var cands []candidate
	for v := range s.domains {
		if _, fixed := s.evidence[v]; fixed {
			continue
		}
		gap, state := s.Gap(v)
		cands = append(cands, candidate{v: v, state: state, gap: gap})
	}
	return cands
}

// fix records v=st as evidence and in the decoded assignment and clamps
// the singleton belief.
func (s *Solver) fix(v, st int) {
	s.evidence[v] = st
	s.decoded[v] = st
	s.clamp(v, st)
}

// Gap returns the difference between the two largest entries of v's
// singleton belief and the state attaining the largest. Variables with
// fewer than two states report (potential.Huge, 0).
func (s *Solver) Gap(v int) (float64, int) {
	if s.domains[v] < 2 {
		return potential.Huge, 0
	}
	var (
		b      = s.beliefs[v]
		m1, m2 = -potential.Huge, -potential.Huge
		state  int
	)
	for i := 0; i < b.Len(); i++ {
		x := b.At(i)
		if x > m1 {
			m2 = m1
			m1 = x
			state = i
		} else if x > m2 {
			m2 = x
		}
	}
	return m1 - m2, state
}

// RunGlobalDecoding provisionally fixes, in batches, every free variable
// whose gap is within BatchDivisor of the largest, reconverging after each
// batch, and restores the solver afterwards. Exhaustive mode fixes one
// variable (the first with the largest gap) per step.
func (s *Solver) RunGlobalDecoding(exhaustive bool) error {
	p := largestGap{divisor: s.opts.BatchDivisor}
	if exhaustive {
		p = largestGap{divisor: 1, firstOnly: true}
	}
	s.globalDecoded = true
	fixed, err := s.fixAndReconverge(p, fixMode{})
	s.log.Debug("global decoding done", "policy", "largest-gap", "exhaustive", exhaustive, "fixed", fixed, "best", s.bestVal)
	return err
}

// RunGlobalDecoding2 provisionally fixes one variable at a time, the one
// with the smallest gap, and reconverges after each fix. Outside
// exhaustive mode it stops once the smallest gap exceeds GapThreshold or
// RoundBudget inner rounds were spent. The solver is restored afterwards.
// Like RunGlobalDecoding, it suppresses the one-time global decoding of
// RunMPLP.
func (s *Solver) RunGlobalDecoding2(exhaustive bool) error {
	p := smallestGap{threshold: -1}
	mode := fixMode{}
	if !exhaustive {
		p.threshold = s.opts.GapThreshold
		mode.budget = s.opts.RoundBudget
	}
	s.globalDecoded = true
	fixed, err := s.fixAndReconverge(p, mode)
	s.log.Debug("global decoding done", "policy", "smallest-gap", "exhaustive", exhaustive, "fixed", fixed, "best", s.bestVal)
	return err
}

// RunRestarts runs RestartTrials+1 trials. Each perturbs the singleton
// beliefs by RestartScale·U[0,1) noise from its own derived stream and
// runs both global decodings (exhaustively in the last trial); the solver
// is restored after every trial.
func (s *Solver) RunRestarts() error {
	snap := s.snapshot()
	for trial := 0; trial <= s.opts.RestartTrials; trial++ {
		if s.pastDeadline() {
			break
		}
		exhaustive := trial == s.opts.RestartTrials
		r := deriveRNG(s.rng, uint64(trial))
		for v := range s.domains {
			s.beliefs[v].Perturb(r, s.opts.RestartScale)
		}
		s.log.Debug("restart trial", "trial", trial, "exhaustive", exhaustive)

		if err := s.RunGlobalDecoding(exhaustive); err != nil {
			return err
		}
		if err := s.RunGlobalDecoding2(exhaustive); err != nil {
			return err
		}
		if err := s.restore(snap); err != nil {
			return err
		}
	}
	return nil
}

// RunDecimation permanently fixes every free variable whose gap equals
// the largest gap. It reports whether anything was fixed.
func (s *Solver) RunDecimation() (bool, error) {
	fixed, err := s.fixAndReconverge(largestGap{divisor: 1}, fixMode{permanent: true})
	if fixed > 0 {
		s.log.Debug("decimation", "fixed", fixed, "free", len(s.domains)-len(s.evidence))
	}
	return fixed > 0, err
}
