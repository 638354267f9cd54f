package solver

import "github.com/katalvlaran/mplp/potential"

// snapshot holds everything a provisional heuristic may touch: messages,
// beliefs, fixed variables and the decoded assignment. The incumbent is
// deliberately outside it.
type snapshot struct {
	msgs     [][]*potential.Table
	beliefs  []*potential.Table
	evidence map[int]int
	decoded  []int
}

func (s *Solver) snapshot() *snapshot {
	snap := &snapshot{
		msgs:     make([][]*potential.Table, len(s.regions)),
		beliefs:  make([]*potential.Table, len(s.beliefs)),
		evidence: s.Evidence(),
		decoded:  s.Decoded(),
	}
	for ri, r := range s.regions {
		live := r.Messages()
		saved := make([]*potential.Table, len(live))
		for i, m := range live {
			saved[i] = m.Clone()
		}
		snap.msgs[ri] = saved
	}
	for h, b := range s.beliefs {
		snap.beliefs[h] = b.Clone()
	}
	return snap
}

// restore rolls the solver back to snap and recomputes the dual objective
// from the restored beliefs. The catalogue must not have grown since the
// snapshot was taken.
func (s *Solver) restore(snap *snapshot) error {
	for ri, r := range s.regions {
		if err := r.RestoreMessages(snap.msgs[ri]); err != nil {
			return err
		}
	}
	for h, b := range snap.beliefs {
		if err := s.beliefs[h].CopyFrom(b); err != nil {
			return err
		}
	}
	s.evidence = make(map[int]int, len(snap.evidence))
	for v, st := range snap.evidence {
		s.evidence[v] = st
	}
	copy(s.decoded, snap.decoded)
	s.objective = s.dualObjective()
	return nil
}
