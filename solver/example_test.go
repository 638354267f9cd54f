// Package solver_test - runnable examples with stable output.
package solver_test

import (
	"fmt"

	"github.com/katalvlaran/mplp/model"
	"github.com/katalvlaran/mplp/solver"
)

// ExampleSolver_RunMPLP solves two binary variables that prefer to agree.
func ExampleSolver_RunMPLP() {
	m := &model.Model{
		Domains:    []int{2, 2},
		Scopes:     [][]int{{0, 1}},
		Potentials: [][]float64{{2, 0, 0, 2}},
	}
	s, err := solver.New(m)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if err = s.RunMPLP(100, 0.0002, 0.0002); err != nil {
		fmt.Println("error:", err)
		return
	}
	best, score := s.Best()
	fmt.Printf("objective %.2f\n", s.Objective())
	fmt.Printf("assignment %v score %.2f\n", best, score)
	// Output:
	// objective 2.00
	// assignment [0 0] score 2.00
}

// ExampleSolver_Solve runs the full schedule with evidence on one variable.
func ExampleSolver_Solve() {
	m := &model.Model{
		Domains:    []int{2, 2, 2},
		Scopes:     [][]int{{0, 1}, {1, 2}},
		Potentials: [][]float64{{1, 0, 0, 1}, {1, 0, 0, 1}},
		Evidence:   map[int]int{2: 1},
	}
	s, err := solver.New(m, solver.WithSeed(1))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	res, err := s.Solve(solver.DefaultPlan())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("assignment %v score %.1f gap %.1f\n", res.Assignment, res.Score, res.Gap)
	// Output:
	// assignment [1 1 1] score 2.0 gap 0.0
}
