// SPDX-License-Identifier: MIT

// Package solver - Solver state, construction and accessors.
//
// Layout:
//   - intersects[h] lists the variables of intersection h; handles
//     0..n-1 are the singletons, so handle v is variable v.
//   - beliefs[h] is the aggregated belief of intersection h (the arena
//     every region reads and writes during UpdateMsgs).
//   - edges maps a sorted variable pair to its first registered handle.
//   - regionPots[r] is the original potential of region r (nil for a
//     structural region), singlePots[v] the original field of variable v.

package solver

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/katalvlaran/mplp/model"
	"github.com/katalvlaran/mplp/potential"
	"github.com/katalvlaran/mplp/region"
)

// Solver runs MPLP message passing and decoding over one model.
// A Solver is not safe for concurrent use.
type Solver struct {
	opts  Options
	log   *slog.Logger
	rng   *rand.Rand
	start time.Time

	domains    []int
	intersects [][]int
	edges      map[[2]int]int
	beliefs    []*potential.Table

	regions    []*region.Region
	regionPots []*potential.Table
	singlePots []*potential.Table

	evidence map[int]int
	decoded  []int
	best     []int
	bestVal  float64

	objective     float64 // last LocalDecode
	lastObj       float64
	objDel        float64
	iterations    int
	globalDecoded bool
	degenerate    bool
	emitErr       error
}

// New builds the solver state for m (which is validated first).
//
// Implementation:
//   - Stage 1: one singleton intersection per variable, zero belief.
//   - Stage 2: per scope, either absorb a size-1 potential into the
//     singleton field, or create a region with its own intersection whose
//     belief starts at the potential, sharing every member's singleton.
//   - Stage 3: apply evidence to decoded and best and clamp the evidence
//     singletons to their observed state.
//   - Stage 4 (optional): degenerate-instance perturbation.
func New(m *model.Model, opts ...Option) (*Solver, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	n := m.NumVars()
	s := &Solver{
		opts:       o,
		log:        o.Logger,
		rng:        rngFromSeed(o.Seed),
		start:      o.Clock(),
		domains:    append([]int(nil), m.Domains...),
		edges:      make(map[[2]int]int),
		singlePots: make([]*potential.Table, n),
		evidence:   make(map[int]int, len(m.Evidence)),
		decoded:    make([]int, n),
		best:       make([]int, n),
		bestVal:    -potential.Huge,
		lastObj:    potential.Huge,
		objDel:     potential.Huge,
	}

	// Stage 1
	for v := 0; v < n; v++ {
		if _, err := s.appendIntersection([]int{v}); err != nil {
			return nil, err
		}
		field, err := potential.New([]int{s.domains[v]})
		if err != nil {
			return nil, err
		}
		s.singlePots[v] = field
	}

	// Stage 2
	for i, scope := range m.Scopes {
		vals := m.Potential(i)
		if len(scope) == 1 && len(vals) != 0 {
			v := scope[0]
			if err := s.absorbField(v, vals); err != nil {
				return nil, fmt.Errorf("solver: scope %d: %w", i, err)
			}
			continue
		}
		if err := s.addScopeRegion(scope, vals); err != nil {
			return nil, fmt.Errorf("solver: scope %d: %w", i, err)
		}
	}

	// Stage 3
	for v, st := range m.Evidence {
		s.evidence[v] = st
		s.decoded[v] = st
		s.best[v] = st
		s.clamp(v, st)
	}

	s.log.Debug("solver built",
		"variables", n,
		"regions", len(s.regions),
		"intersections", len(s.intersects),
		"evidence", len(s.evidence))

	// Stage 4
	if o.PerturbDegenerate {
		s.perturbIfDegenerate()
	}

	return s, nil
}

func (s *Solver) absorbField(v int, vals []float64) error {
	field, err := potential.FromValues([]int{s.domains[v]}, vals)
	if err != nil {
		return err
	}
	if err = s.singlePots[v].Add(field); err != nil {
		return err
	}
	return s.beliefs[v].Add(field)
}

// addScopeRegion creates a region over scope with its own intersection
// and shares every member singleton.
func (s *Solver) addScopeRegion(scope []int, vals []float64) error {
	shared := make([]int, len(scope))
	copy(shared, scope)

	var pot *potential.Table
	if len(vals) != 0 {
		var err error
		if pot, err = potential.FromValues(s.sizes(scope), vals); err != nil {
			return err
		}
	}
	h, err := s.addRegion(scope, shared, pot)
	if err != nil {
		return err
	}
	if pot != nil {
		return s.beliefs[h].CopyFrom(pot)
	}
	return nil
}

// perturbIfDegenerate adds small noise to every singleton belief when the
// dual objective is exactly zero and no singleton carries any mass, the
// signature of a pure constraint-satisfaction instance.
func (s *Solver) perturbIfDegenerate() {
	s.UpdateResult()
	if s.LocalDecode() != 0 {
		return
	}
	for v := range s.domains {
		for _, x := range s.beliefs[v].Data() {
			if x != 0 {
				return
			}
		}
	}
	s.degenerate = true
	for v := range s.domains {
		s.beliefs[v].Perturb(s.rng, s.opts.DegenerateScale)
	}
	s.log.Debug("degenerate instance, singleton beliefs perturbed", "scale", s.opts.DegenerateScale)
}

// clamp forbids every state of v other than st in its singleton belief.
func (s *Solver) clamp(v, st int) {
	b := s.beliefs[v]
	for i := 0; i < b.Len(); i++ {
		if i != st {
			b.Set(i, -potential.Huge)
		}
	}
}

func (s *Solver) sizes(vars []int) []int {
	out := make([]int, len(vars))
	for i, v := range vars {
		out[i] = s.domains[v]
	}
	return out
}

func (s *Solver) elapsed() time.Duration { return s.opts.Clock().Sub(s.start) }

// pastDeadline reports whether a time limit is set and has been reached.
func (s *Solver) pastDeadline() bool {
	return s.opts.TimeLimit > 0 && s.elapsed() >= s.opts.TimeLimit
}

// Objective returns the dual objective computed by the last LocalDecode.
func (s *Solver) Objective() float64 { return s.objective }

// Best returns a copy of the incumbent assignment and its value.
func (s *Solver) Best() ([]int, float64) {
	return append([]int(nil), s.best...), s.bestVal
}

// Decoded returns a copy of the current locally decoded assignment.
func (s *Solver) Decoded() []int { return append([]int(nil), s.decoded...) }

// Evidence returns a copy of the fixed variables (evidence plus any
// decimated variables).
func (s *Solver) Evidence() map[int]int {
	out := make(map[int]int, len(s.evidence))
	for v, st := range s.evidence {
		out[v] = st
	}
	return out
}

// Iterations returns the number of MPLP rounds performed so far,
// including the rounds run inside decoding heuristics.
func (s *Solver) Iterations() int { return s.iterations }

// NumVars returns the number of model variables.
func (s *Solver) NumVars() int { return len(s.domains) }

// NumIntersections returns the size of the intersection catalogue.
func (s *Solver) NumIntersections() int { return len(s.intersects) }

// NumRegions returns the number of regions.
func (s *Solver) NumRegions() int { return len(s.regions) }

// Degenerate reports whether construction detected a zero-objective
// instance and perturbed it.
func (s *Solver) Degenerate() bool { return s.degenerate }

// Intersection returns a copy of the variables of handle h.
func (s *Solver) Intersection(h int) ([]int, error) {
	if h < 0 || h >= len(s.intersects) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownIntersection, h)
	}
	return append([]int(nil), s.intersects[h]...), nil
}

// Belief returns a copy of the aggregated belief of handle h.
func (s *Solver) Belief(h int) (*potential.Table, error) {
	if h < 0 || h >= len(s.beliefs) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownIntersection, h)
	}
	return s.beliefs[h].Clone(), nil
}

// Region returns the variables of region r.
func (s *Solver) Region(r int) []int { return s.regions[r].Vars() }
