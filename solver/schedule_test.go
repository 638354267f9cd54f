package solver_test

import (
	"testing"
	"time"

	"github.com/katalvlaran/mplp/model"
	"github.com/katalvlaran/mplp/solver"
	"github.com/stretchr/testify/require"
)

// TestSolveBounds brackets the MAP value between the incumbent and the
// dual objective on random models. Decimation is off: it changes the
// problem the bound refers to.
func TestSolveBounds(t *testing.T) {
	for seed := int64(1); seed <= 4; seed++ {
		m := randomModel(6, 3, seed)
		_, mapVal := bruteMAP(t, m)

		s, err := solver.New(m, solver.WithSeed(seed), solver.WithRestarts(2, 0.1))
		require.NoError(t, err)
		plan := solver.DefaultPlan()
		plan.Iterations = 200
		res, err := s.Solve(plan)
		require.NoError(t, err)

		require.LessOrEqual(t, res.Score, mapVal+tol, "seed %d", seed)
		require.GreaterOrEqual(t, res.Objective, mapVal-1e-6, "seed %d", seed)
		require.InDelta(t, score(t, m, res.Assignment), res.Score, tol)
		require.InDelta(t, res.Objective-res.Score, res.Gap, tol)
		require.Equal(t, s.NumIntersections(), res.Intersections)
		require.Equal(t, s.Iterations(), res.Iterations)
	}
}

// oddCycle is a 5-cycle of disagreement pairs with a small field on
// variable 0. No assignment satisfies every pair and no region covers the
// cycle, so the pairwise relaxation stays loose: MAP is 4.05 while the
// relaxation cannot go below 5.025.
func oddCycle() *model.Model {
	dis := []float64{0, 1, 1, 0}
	m := &model.Model{
		Domains:    []int{2, 2, 2, 2, 2},
		Scopes:     [][]int{{0}},
		Potentials: [][]float64{{0.05, 0}},
	}
	for v := 0; v < 5; v++ {
		a, b := v, (v+1)%5
		if a > b {
			a, b = b, a
		}
		m.Scopes = append(m.Scopes, []int{a, b})
		m.Potentials = append(m.Potentials, dis)
	}
	return m
}

// TestSolveObjectiveAfterRestarts reports the bound of the live beliefs
// once the provisional heuristics have rolled back.
func TestSolveObjectiveAfterRestarts(t *testing.T) {
	cases := []struct {
		name string
		m    *model.Model
		plan func(p *solver.Plan)
		open bool
	}{
		{"odd cycle", oddCycle(), func(*solver.Plan) {}, true},
		{"random no gap stop", randomModel(7, 3, 26), func(p *solver.Plan) { p.IntGapThreshold = -1 }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, mapVal := bruteMAP(t, tc.m)

			s, err := solver.New(tc.m, solver.WithSeed(seedDet), solver.WithRestarts(2, 0.1))
			require.NoError(t, err)
			plan := solver.DefaultPlan()
			plan.Iterations = 200
			tc.plan(&plan)
			res, err := s.Solve(plan)
			require.NoError(t, err)

			require.InDelta(t, s.LocalDecode(), res.Objective, tol)
			require.GreaterOrEqual(t, res.Objective, mapVal-1e-6)
			require.LessOrEqual(t, res.Score, mapVal+tol)
			require.InDelta(t, res.Objective-res.Score, res.Gap, tol)
			require.GreaterOrEqual(t, res.Gap, -tol)
			if tc.open {
				require.Greater(t, res.Gap, 0.5)
			}
		})
	}
}

// TestSolveDecimationStaysFeasible scores decimated runs against the model.
func TestSolveDecimationStaysFeasible(t *testing.T) {
	m := randomModel(6, 3, seedDet)
	_, mapVal := bruteMAP(t, m)

	s, err := solver.New(m, solver.WithRestarts(1, 0.1))
	require.NoError(t, err)
	plan := solver.DefaultPlan()
	plan.Iterations = 100
	plan.IntGapThreshold = -1
	plan.DecimationRounds = 3
	res, err := s.Solve(plan)
	require.NoError(t, err)

	require.LessOrEqual(t, res.Score, mapVal+tol)
	require.InDelta(t, score(t, m, res.Assignment), res.Score, tol)
	require.NotEmpty(t, s.Evidence())
}

// TestSolveFrustratedTriangle needs tightening and decoding to reach a
// non-constant assignment.
func TestSolveFrustratedTriangle(t *testing.T) {
	m := frustratedTriangle()
	_, mapVal := bruteMAP(t, m)
	require.InDelta(t, 2.05, mapVal, tol)

	s, err := solver.New(m, solver.WithSeed(seedDet))
	require.NoError(t, err)
	res, err := s.Solve(solver.DefaultPlan())
	require.NoError(t, err)

	require.GreaterOrEqual(t, res.Score, 2.0-tol)
	require.LessOrEqual(t, res.Score, mapVal+tol)
	require.GreaterOrEqual(t, res.Objective, mapVal-1e-6)
}

// TestSolveDeterministic repeats a seeded run and expects identical results.
func TestSolveDeterministic(t *testing.T) {
	run := func() solver.Result {
		clk := &fakeClock{now: time.Unix(0, 0)}
		s, err := solver.New(randomModel(7, 3, seedDet),
			solver.WithSeed(42),
			solver.WithClock(clk.Now),
			solver.WithRestarts(3, 0.1))
		require.NoError(t, err)
		plan := solver.DefaultPlan()
		plan.Iterations = 50
		plan.DecimationRounds = 2
		res, err := s.Solve(plan)
		require.NoError(t, err)
		return res
	}
	first := run()
	for i := 0; i < 2; i++ {
		require.Equal(t, first, run())
	}
}

// TestSolveClosedGapSkipsPhases stops after the first phase when the
// relaxation is already tight.
func TestSolveClosedGapSkipsPhases(t *testing.T) {
	s, err := solver.New(agreementPair())
	require.NoError(t, err)
	res, err := s.Solve(solver.DefaultPlan())
	require.NoError(t, err)

	require.Equal(t, 1, res.Iterations)
	require.Equal(t, 3, res.Intersections)
	require.InDelta(t, 2.0, res.Score, tol)
	require.InDelta(t, 0.0, res.Gap, tol)
}

// TestSolvePastDeadline runs a single round and skips every later phase.
func TestSolvePastDeadline(t *testing.T) {
	clk := &fakeClock{now: time.Unix(0, 0)}
	s, err := solver.New(randomModel(5, 3, seedDet),
		solver.WithClock(clk.Now),
		solver.WithTimeLimit(time.Second))
	require.NoError(t, err)
	inters := s.NumIntersections()

	clk.Advance(time.Minute)
	res, err := s.Solve(solver.DefaultPlan())
	require.NoError(t, err)
	require.Equal(t, 1, res.Iterations)
	require.Equal(t, inters, res.Intersections)
	require.Equal(t, time.Minute, res.Elapsed)
}
