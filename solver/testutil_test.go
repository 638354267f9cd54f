// Package solver_test - shared fixtures: small hand-made models, random
// models with a fixed seed, brute-force MAP and recording sinks.
package solver_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/katalvlaran/mplp/model"
	"github.com/stretchr/testify/require"
)

const (
	tol     = 1e-9
	seedDet = 7
)

// agreementPair is two binary variables preferring to agree.
func agreementPair() *model.Model {
	return &model.Model{
		Domains:    []int{2, 2},
		Scopes:     [][]int{{0, 1}},
		Potentials: [][]float64{{2, 0, 0, 2}},
	}
}

// randomModel builds a model over n variables of domain d: one potential
// per variable, a chain of pairs, and (when n ≥ 3) a triplet over the
// first three variables plus a pair closing the cycle.
func randomModel(n, d int, seed int64) *model.Model {
	r := rand.New(rand.NewSource(seed))
	m := &model.Model{Domains: make([]int, n)}
	for v := range m.Domains {
		m.Domains[v] = d
	}
	add := func(scope ...int) {
		size := 1
		for range scope {
			size *= d
		}
		vals := make([]float64, size)
		for i := range vals {
			vals[i] = r.Float64()*2 - 1
		}
		m.Scopes = append(m.Scopes, scope)
		m.Potentials = append(m.Potentials, vals)
	}
	for v := 0; v < n; v++ {
		add(v)
	}
	for v := 0; v+1 < n; v++ {
		add(v, v+1)
	}
	if n >= 3 {
		add(0, 1, 2)
		add(n-1, 0)
	}
	return m
}

// frustratedTriangle is three binary variables pairwise preferring to
// disagree, whose LP relaxation is loose without tightening.
func frustratedTriangle() *model.Model {
	dis := []float64{0, 1, 1, 0}
	return &model.Model{
		Domains:    []int{2, 2, 2},
		Scopes:     [][]int{{0, 1}, {1, 2}, {0, 2}, {0, 1, 2}, {0}},
		Potentials: [][]float64{dis, dis, dis, nil, {0.05, 0}},
	}
}

// bruteMAP enumerates every assignment of m (evidence respected).
func bruteMAP(t *testing.T, m *model.Model) ([]int, float64) {
	t.Helper()
	var (
		best    []int
		bestVal = -1e300
		x       = make([]int, len(m.Domains))
	)
	var walk func(v int)
	walk = func(v int) {
		if v == len(x) {
			val := score(t, m, x)
			if val > bestVal {
				bestVal = val
				best = append([]int(nil), x...)
			}
			return
		}
		if st, ok := m.Evidence[v]; ok {
			x[v] = st
			walk(v + 1)
			return
		}
		for s := 0; s < m.Domains[v]; s++ {
			x[v] = s
			walk(v + 1)
		}
	}
	walk(0)
	return best, bestVal
}

// score evaluates a full assignment directly on the model.
func score(t *testing.T, m *model.Model, x []int) float64 {
	t.Helper()
	var sum float64
	for i, scope := range m.Scopes {
		p := m.Potential(i)
		if len(p) == 0 {
			continue
		}
		off := 0
		for _, v := range scope {
			off = off*m.Domains[v] + x[v]
		}
		require.Less(t, off, len(p))
		sum += p[off]
	}
	return sum
}

// recorder collects emitted incumbents.
type recorder struct {
	assignments [][]int
	scores      []float64
	err         error
}

func (r *recorder) Emit(a []int, s float64) error {
	r.assignments = append(r.assignments, a)
	r.scores = append(r.scores, s)
	return r.err
}

// trace collects per-round progress.
type trace struct {
	objectives []float64
	best       []float64
}

func (p *trace) Progress(_ time.Duration, obj, best float64) {
	p.objectives = append(p.objectives, obj)
	p.best = append(p.best, best)
}

// fakeClock is a manually advanced clock.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
