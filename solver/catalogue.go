package solver

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/mplp/potential"
	"github.com/katalvlaran/mplp/region"
)

// AddIntersection appends a new intersection over vars with an all-zero
// belief and returns its handle. Pairs are registered in the edge lookup
// unless that pair is already known.
func (s *Solver) AddIntersection(vars []int) (int, error) {
	if err := s.checkVars(vars); err != nil {
		return -1, err
	}
	return s.appendIntersection(vars)
}

// FindIntersection returns the handle of an intersection over exactly the
// variable set vars (order ignored). Pairs are answered from the edge
// lookup; other sizes scan the catalogue.
//
// Complexity: O(1) for pairs, O(H·k log k) otherwise.
func (s *Solver) FindIntersection(vars []int) (int, bool) {
	if len(vars) == 2 {
		h, ok := s.edges[edgeKey(vars[0], vars[1])]
		return h, ok
	}
	want := sortedCopy(vars)
	for h, iv := range s.intersects {
		if len(iv) == len(want) && equalSorted(sortedCopy(iv), want) {
			return h, true
		}
	}
	return -1, false
}

// AddRegion adds a structural region over vars (no potential of its own)
// that shares the intersections listed in shared. The region gets a new
// intersection with an all-zero belief; its handle is returned.
func (s *Solver) AddRegion(vars []int, shared []int) (int, error) {
	if err := s.checkVars(vars); err != nil {
		return -1, err
	}
	for _, h := range shared {
		if h < 0 || h >= len(s.intersects) {
			return -1, fmt.Errorf("%w: %d", ErrUnknownIntersection, h)
		}
	}
	return s.addRegion(vars, shared, nil)
}

// AddAllEdgeIntersections tightens the relaxation: for every region with
// more than two variables and every pair of its members (in member
// order), the pair intersection is found or created and shared by the
// region. Regions already sharing a pair are left as they are.
//
// Complexity: O(R·k²) map lookups plus the new message tables.
func (s *Solver) AddAllEdgeIntersections() error {
	added := 0
	for _, r := range s.regions {
		vars := r.Vars()
		if len(vars) <= 2 {
			continue
		}
		for i := 0; i < len(vars); i++ {
			for j := i + 1; j < len(vars); j++ {
				pair := []int{vars[i], vars[j]}
				h, ok := s.edges[edgeKey(pair[0], pair[1])]
				if !ok {
					var err error
					if h, err = s.appendIntersection(pair); err != nil {
						return err
					}
					added++
				}
				if r.Shares(h) {
					continue
				}
				if err := r.AddIntersection(h, s.intersects[h], s.domains); err != nil {
					return fmt.Errorf("solver: tighten region %v: %w", vars, err)
				}
			}
		}
	}
	s.log.Debug("edge intersections added", "new", added, "intersections", len(s.intersects))
	return nil
}

// appendIntersection registers vars (assumed valid) and its zero belief.
func (s *Solver) appendIntersection(vars []int) (int, error) {
	b, err := potential.New(s.sizes(vars))
	if err != nil {
		return -1, err
	}
	h := len(s.intersects)
	s.intersects = append(s.intersects, append([]int(nil), vars...))
	s.beliefs = append(s.beliefs, b)
	if len(vars) == 2 {
		key := edgeKey(vars[0], vars[1])
		if _, ok := s.edges[key]; !ok {
			s.edges[key] = h
		}
	}
	return h, nil
}

// addRegion builds the region first so that a failure leaves the
// catalogue untouched, then appends its intersection.
func (s *Solver) addRegion(vars []int, shared []int, pot *potential.Table) (int, error) {
	h := len(s.intersects)
	r, err := region.New(vars, s.domains, h)
	if err != nil {
		return -1, err
	}
	for _, sh := range shared {
		if err = r.AddIntersection(sh, s.intersects[sh], s.domains); err != nil {
			return -1, err
		}
	}
	if _, err = s.appendIntersection(vars); err != nil {
		return -1, err
	}
	s.regions = append(s.regions, r)
	s.regionPots = append(s.regionPots, pot)
	return h, nil
}

func (s *Solver) checkVars(vars []int) error {
	seen := make(map[int]struct{}, len(vars))
	for _, v := range vars {
		if v < 0 || v >= len(s.domains) {
			return fmt.Errorf("%w: %d", ErrUnknownVariable, v)
		}
		if _, dup := seen[v]; dup {
			return fmt.Errorf("%w: %d in %v", ErrDuplicateVariable, v, vars)
		}
		seen[v] = struct{}{}
	}
	return nil
}

func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func sortedCopy(vs []int) []int {
	out := append([]int(nil), vs...)
	sort.Ints(out)
	return out
}

func equalSorted(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
