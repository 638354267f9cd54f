// SPDX-License-Identifier: MIT

// Package potential - max-marginalization and broadcast expansion.
//
// Both directions walk a table with an odometer over its joint states in
// flat order and keep, for every partner table, the partner's offset in
// sync through a per-dimension stride map (0 for dimensions the partner
// does not carry). No division or modulo happens inside the sweep.

package potential

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	ctxMaxInto     = "MaxInto"
	ctxMaxMarginal = "MaxMarginal"
	ctxExpandAdd   = "ExpandAdd"
	ctxExpandSub   = "ExpandSub"
)

// Max returns the largest entry and its flat offset. Ties keep the lowest
// offset. For a one-dimensional table the offset is the maximizing state.
//
// Complexity: O(Len).
func (t *Table) Max() (float64, int) {
	i := floats.MaxIdx(t.data)

	return t.data[i], i
}

// MaxInto max-marginalizes t onto several sub-combinations of its
// dimensions in a single sweep. subsets[k] lists dimensions of t; outs[k]
// receives, for every joint state of those dimensions (in the listed
// order), the maximum of t over all remaining dimensions. Previous
// contents of outs are discarded.
//
// Implementation:
//   - Stage 1 (Validate): len(subsets)==len(outs); each subset names
//     distinct, in-range dimensions; outs[k] has the matching size.
//   - Stage 2 (Prepare): build stride maps and reset outs to -Inf.
//   - Stage 3 (Execute): one flat sweep of t; strict '>' keeps the first
//     maximizer.
//
// Complexity: O(Len·k) for the comparisons plus amortized O(Len) for the
// odometer.
func (t *Table) MaxInto(subsets [][]int, outs []*Table) error {
	_, err := t.maxInto(subsets, outs, nil)
	if err != nil {
		return tableErrorf(ctxMaxInto, err)
	}

	return nil
}

// MaxMarginal max-marginalizes t onto one sub-combination of its
// dimensions and also returns, for every entry of the marginal, the flat
// offset in t of the first entry that attains it.
//
// When subset names a single dimension, States(argmax[s]) has s at that
// dimension, and the marginal's own Max() yields the maximizing state.
func (t *Table) MaxMarginal(subset []int) (*Table, []int, error) {
	sub, err := t.subShape(subset)
	if err != nil {
		return nil, nil, tableErrorf(ctxMaxMarginal, err)
	}
	out, err := New(sub)
	if err != nil {
		return nil, nil, tableErrorf(ctxMaxMarginal, err)
	}
	args, err := t.maxInto([][]int{subset}, []*Table{out}, make([][]int, 1))
	if err != nil {
		return nil, nil, tableErrorf(ctxMaxMarginal, err)
	}

	return out, args[0], nil
}

// maxInto is the shared sweep. When args is non-nil, args[k] is allocated
// and filled with the argmax offsets of outs[k].
func (t *Table) maxInto(subsets [][]int, outs []*Table, args [][]int) ([][]int, error) {
	if len(subsets) != len(outs) {
		return nil, ErrDimensionMismatch
	}
	var (
		k     int
		maps  = make([][]int, len(subsets))
		offs  = make([]int, len(subsets))
		ninf  = math.Inf(-1)
		err   error
		shape []int
	)
	for k = range subsets {
		if outs[k] == nil {
			return nil, ErrNilTable
		}
		if shape, err = t.subShape(subsets[k]); err != nil {
			return nil, err
		}
		if !equalInts(shape, outs[k].dims) {
			return nil, ErrDimensionMismatch
		}
		maps[k] = t.strideMap(subsets[k], outs[k].strides)
		outs[k].Fill(ninf)
		if args != nil {
			args[k] = make([]int, outs[k].Len())
		}
	}

	var (
		nd    = len(t.dims)
		coord = make([]int, nd)
		i, d  int
		v     float64
	)
	for i = 0; i < len(t.data); i++ {
		v = t.data[i]
		for k = range outs {
			if v > outs[k].data[offs[k]] {
				outs[k].data[offs[k]] = v
				if args != nil {
					args[k][offs[k]] = i
				}
			}
		}
		// Advance the odometer (last dimension fastest).
		for d = nd - 1; d >= 0; d-- {
			coord[d]++
			if coord[d] < t.dims[d] {
				for k = range offs {
					offs[k] += maps[k][d]
				}
				break
			}
			coord[d] = 0
			for k = range offs {
				offs[k] -= (t.dims[d] - 1) * maps[k][d]
			}
		}
	}

	return args, nil
}

// ExpandAdd broadcasts t into dst: for every joint state x of dst,
// dst[x] += t[x restricted to positions]. positions[k] is the dimension of
// dst that t's dimension k corresponds to; dst dimensions not listed are
// broadcast over.
//
// Complexity: amortized O(dst.Len()).
func (t *Table) ExpandAdd(dst *Table, positions []int) error {
	if err := t.expand(dst, positions, 1); err != nil {
		return tableErrorf(ctxExpandAdd, err)
	}

	return nil
}

// ExpandSub is ExpandAdd with subtraction: dst[x] -= t[x|positions].
func (t *Table) ExpandSub(dst *Table, positions []int) error {
	if err := t.expand(dst, positions, -1); err != nil {
		return tableErrorf(ctxExpandSub, err)
	}

	return nil
}

func (t *Table) expand(dst *Table, positions []int, sign float64) error {
	if dst == nil {
		return ErrNilTable
	}
	if len(positions) != len(t.dims) {
		return ErrDimensionMismatch
	}
	shape, err := dst.subShape(positions)
	if err != nil {
		return err
	}
	if !equalInts(shape, t.dims) {
		return ErrDimensionMismatch
	}

	var (
		m     = dst.strideMap(positions, t.strides)
		nd    = len(dst.dims)
		coord = make([]int, nd)
		off   int
		i, d  int
	)
	for i = 0; i < len(dst.data); i++ {
		dst.data[i] += sign * t.data[off]
		for d = nd - 1; d >= 0; d-- {
			coord[d]++
			if coord[d] < dst.dims[d] {
				off += m[d]
				break
			}
			coord[d] = 0
			off -= (dst.dims[d] - 1) * m[d]
		}
	}

	return nil
}

// subShape validates a list of t's dimensions and returns their sizes.
func (t *Table) subShape(subset []int) ([]int, error) {
	var (
		shape = make([]int, len(subset))
		seen  = make([]bool, len(t.dims))
	)
	for k, d := range subset {
		if d < 0 || d >= len(t.dims) {
			return nil, ErrOutOfRange
		}
		if seen[d] {
			return nil, ErrDuplicateDimension
		}
		seen[d] = true
		shape[k] = t.dims[d]
	}

	return shape, nil
}

// strideMap returns, for every dimension of t, the stride that dimension
// has in a partner table whose k-th dimension is t's dimension subset[k].
func (t *Table) strideMap(subset []int, partnerStrides []int) []int {
	m := make([]int, len(t.dims))
	for k, d := range subset {
		m[d] = partnerStrides[k]
	}

	return m
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
