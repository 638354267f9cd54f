package region

import (
	"fmt"

	"github.com/katalvlaran/mplp/potential"
)

// Region is a cluster of variables taking part in message passing.
type Region struct {
	vars      []int
	sizes     []int
	principal int

	shared    []int              // handles of shared intersections
	positions [][]int            // positions[si][k]: region position of the k-th variable of shared[si]
	identity  []bool             // shared[si] lists exactly the region's variables in region order
	msgs      []*potential.Table // outgoing message per shared intersection

	orig *potential.Table   // scratch: principal belief plus previous messages
	rest []*potential.Table // scratch: belief from everyone else, per shared intersection
}

// New creates a region over vars whose own belief lives at intersection
// handle principal. domains holds the domain size of every model variable.
// The region starts with no shared intersections.
func New(vars []int, domains []int, principal int) (*Region, error) {
	sizes, err := sizesOf(vars, domains)
	if err != nil {
		return nil, err
	}
	orig, err := potential.New(sizes)
	if err != nil {
		return nil, fmt.Errorf("region %v: %w", vars, err)
	}

	return &Region{
		vars:      append([]int(nil), vars...),
		sizes:     sizes,
		principal: principal,
		orig:      orig,
	}, nil
}

// AddIntersection registers the intersection at handle, whose variables
// are ivars, as shared by this region and creates its all-zero message.
// Every variable of ivars must be a member of the region.
func (r *Region) AddIntersection(handle int, ivars []int, domains []int) error {
	if handle == r.principal {
		return ErrSelfIntersection
	}
	if r.Shares(handle) {
		return fmt.Errorf("%w: handle %d", ErrAlreadyShared, handle)
	}
	sizes, err := sizesOf(ivars, domains)
	if err != nil {
		return err
	}

	pos := make([]int, len(ivars))
	same := len(ivars) == len(r.vars)
	for k, v := range ivars {
		at := r.position(v)
		if at < 0 {
			return fmt.Errorf("%w: variable %d, region %v", ErrForeignVariable, v, r.vars)
		}
		pos[k] = at
		same = same && at == k
	}

	msg, err := potential.New(sizes)
	if err != nil {
		return err
	}
	rest, err := potential.New(sizes)
	if err != nil {
		return err
	}

	r.shared = append(r.shared, handle)
	r.positions = append(r.positions, pos)
	r.identity = append(r.identity, same)
	r.msgs = append(r.msgs, msg)
	r.rest = append(r.rest, rest)

	return nil
}

// Vars returns a copy of the member variables.
func (r *Region) Vars() []int { return append([]int(nil), r.vars...) }

// NumVars returns the number of member variables.
func (r *Region) NumVars() int { return len(r.vars) }

// Sizes returns the domain size of each member variable.
func (r *Region) Sizes() []int { return append([]int(nil), r.sizes...) }

// Principal returns the handle of the region's own intersection.
func (r *Region) Principal() int { return r.principal }

// Intersections returns a copy of the shared intersection handles.
func (r *Region) Intersections() []int { return append([]int(nil), r.shared...) }

// Shares reports whether handle is one of the region's shared intersections.
func (r *Region) Shares(handle int) bool {
	for _, h := range r.shared {
		if h == handle {
			return true
		}
	}
	return false
}

// Messages exposes the outgoing message tables in shared-intersection
// order. The tables are live; callers that need a snapshot must Clone.
func (r *Region) Messages() []*potential.Table { return r.msgs }

// RestoreMessages overwrites the messages with saved copies taken from
// Messages (same order and shapes).
func (r *Region) RestoreMessages(saved []*potential.Table) error {
	if len(saved) != len(r.msgs) {
		return fmt.Errorf("region %v: %w", r.vars, potential.ErrDimensionMismatch)
	}
	for si := range saved {
		if err := r.msgs[si].CopyFrom(saved[si]); err != nil {
			return err
		}
	}
	return nil
}

// UpdateMsgs performs one MPLP update of the region against the belief
// arena beliefs (indexed by intersection handle).
//
// Implementation:
//   - Stage 1: orig = b[principal] + Σ expand(previous messages).
//   - Stage 2: for every shared s, rest[s] = b[s] - msg[s], and the
//     region's joint belief b[principal] absorbs b[s] (plain add when s is
//     the region's own variable list in order, broadcast otherwise).
//   - Stage 3: max-marginalize the joint belief onto all shared
//     intersections in one sweep, scale by 1/|shared|, write the result
//     into b[s], set msg[s] = new - rest[s], and subtract the new message
//     from orig.
//   - Stage 4: b[principal] = orig.
//
// A region without shared intersections is left untouched.
//
// Complexity: O(|region states| · |shared|).
func (r *Region) UpdateMsgs(beliefs []*potential.Table) error {
	if len(r.shared) == 0 {
		return nil
	}
	if r.principal < 0 || r.principal >= len(beliefs) {
		return ErrUnknownHandle
	}
	for _, h := range r.shared {
		if h < 0 || h >= len(beliefs) {
			return ErrUnknownHandle
		}
	}
	joint := beliefs[r.principal]

	// Stage 1: undo previously sent influence on a private copy.
	if err := r.orig.CopyFrom(joint); err != nil {
		return err
	}
	for si, msg := range r.msgs {
		if err := msg.ExpandAdd(r.orig, r.positions[si]); err != nil {
			return err
		}
	}

	// Stage 2: isolate what others send and build the full joint belief.
	for si, h := range r.shared {
		if err := r.rest[si].CopyFrom(beliefs[h]); err != nil {
			return err
		}
		if err := r.rest[si].Sub(r.msgs[si]); err != nil {
			return err
		}
		var err error
		if r.identity[si] {
			err = joint.Add(beliefs[h])
		} else {
			err = beliefs[h].ExpandAdd(joint, r.positions[si])
		}
		if err != nil {
			return err
		}
	}

	// Stage 3: new messages, averaged over the shared intersections.
	if err := joint.MaxInto(r.positions, r.msgs); err != nil {
		return err
	}
	scale := 1.0 / float64(len(r.shared))
	for si, h := range r.shared {
		msg := r.msgs[si]
		msg.Scale(scale)
		if err := beliefs[h].CopyFrom(msg); err != nil {
			return err
		}
		if err := msg.Sub(r.rest[si]); err != nil {
			return err
		}
		if err := msg.ExpandSub(r.orig, r.positions[si]); err != nil {
			return err
		}
	}

	// Stage 4
	return joint.CopyFrom(r.orig)
}

func (r *Region) position(v int) int {
	for i, u := range r.vars {
		if u == v {
			return i
		}
	}
	return -1
}

// sizesOf validates a variable list against the model domains and returns
// the domain size of each listed variable.
func sizesOf(vars []int, domains []int) ([]int, error) {
	sizes := make([]int, len(vars))
	seen := make(map[int]struct{}, len(vars))
	for i, v := range vars {
		if v < 0 || v >= len(domains) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownVariable, v)
		}
		if _, dup := seen[v]; dup {
			return nil, fmt.Errorf("%w: %d in %v", ErrDuplicateVariable, v, vars)
		}
		seen[v] = struct{}{}
		sizes[i] = domains[v]
	}
	return sizes, nil
}
