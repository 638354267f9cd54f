// Package model describes the input of the MAP solver: variable domains,
// region scopes with their (optional) potential tables, and evidence.
//
// Potentials are given in log space as flat row-major slices: for a scope
// (v0, …, vk) the last variable varies fastest. An empty potential marks a
// structural-only region that takes part in message passing without a
// local term. Scopes are never empty; a constant factor belongs in any
// single-variable table.
package model

import "fmt"

// Model is the loader-facing description of a discrete graphical model.
type Model struct {
	Domains    []int       // domain size per variable
	Scopes     [][]int     // region variable subsets
	Potentials [][]float64 // per scope, flat row-major log-potential (may be empty)
	Evidence   map[int]int // variable -> fixed state
}

// NumVars returns the number of variables.
func (m *Model) NumVars() int { return len(m.Domains) }

// ScopeSize returns the number of joint states of scope i.
func (m *Model) ScopeSize(i int) int {
	n := 1
	for _, v := range m.Scopes[i] {
		n *= m.Domains[v]
	}
	return n
}

// Potential returns the potential of scope i, or nil for a structural region.
func (m *Model) Potential(i int) []float64 {
	if i >= len(m.Potentials) {
		return nil
	}
	return m.Potentials[i]
}

// Validate checks every structural invariant the solver relies on.
func (m *Model) Validate() error {
	if len(m.Domains) == 0 {
		return ErrEmptyModel
	}
	for v, d := range m.Domains {
		if d < 1 {
			return fmt.Errorf("%w: variable %d has %d states", ErrBadDomain, v, d)
		}
	}
	if m.Potentials != nil && len(m.Potentials) != len(m.Scopes) {
		return fmt.Errorf("%w: %d potentials, %d scopes", ErrPotentialCount, len(m.Potentials), len(m.Scopes))
	}
	for i, scope := range m.Scopes {
		if err := m.validateScope(scope); err != nil {
			return fmt.Errorf("scope %d: %w", i, err)
		}
		if p := m.Potential(i); len(p) != 0 && len(p) != m.ScopeSize(i) {
			return fmt.Errorf("%w: scope %d has %d values, want %d", ErrPotentialSize, i, len(p), m.ScopeSize(i))
		}
	}
	for v, s := range m.Evidence {
		if v < 0 || v >= len(m.Domains) || s < 0 || s >= m.Domains[v] {
			return fmt.Errorf("%w: variable %d state %d", ErrBadEvidence, v, s)
		}
	}
	return nil
}

func (m *Model) validateScope(scope []int) error {
	if len(scope) == 0 {
		return fmt.Errorf("%w: empty", ErrBadScope)
	}
	seen := make(map[int]struct{}, len(scope))
	for _, v := range scope {
		if v < 0 || v >= len(m.Domains) {
			return fmt.Errorf("%w: unknown variable %d", ErrBadScope, v)
		}
		if _, dup := seen[v]; dup {
			return fmt.Errorf("%w: variable %d repeated", ErrBadScope, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy of m.
func (m *Model) Clone() *Model {
	c := &Model{
		Domains: append([]int(nil), m.Domains...),
		Scopes:  make([][]int, len(m.Scopes)),
	}
	for i, s := range m.Scopes {
		c.Scopes[i] = append([]int(nil), s...)
	}
	if m.Potentials != nil {
		c.Potentials = make([][]float64, len(m.Potentials))
		for i, p := range m.Potentials {
			c.Potentials[i] = append([]float64(nil), p...)
		}
	}
	if m.Evidence != nil {
		c.Evidence = make(map[int]int, len(m.Evidence))
		for v, s := range m.Evidence {
			c.Evidence[v] = s
		}
	}
	return c
}
