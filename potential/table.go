// SPDX-License-Identifier: MIT

// Package potential - Table storage (row-major) & elementwise arithmetic.
//
// Purpose:
//   - Keep one flat buffer per table with the explicit offset formula Σ s[i]*stride[i].
//   - Guarantee safety at the public surface: shape violations return sentinels.
//   - Delegate tight elementwise loops to gonum/floats.
//
// Complexity quicksheet:
//   - New: O(Π dims) zero-init; Index/Value: O(#dims); Clone/Fill/Add/...: O(Len).

package potential

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Huge is the magnitude used to forbid states. A belief entry set to -Huge
// can never win a max against any finite potential of sane scale.
const Huge = 1e40

const (
	ctxNew        = "New"
	ctxFromValues = "FromValues"
	ctxCopyFrom   = "CopyFrom"
	ctxAdd        = "Add"
	ctxSub        = "Sub"
	ctxMul        = "Mul"
	ctxDiv        = "Div"
	ctxIndex      = "Index"
)

// Table is a dense table over the joint states of an ordered list of
// variables. dims[i] is the domain size of dimension i; data holds
// Π dims values in row-major order (last dimension fastest).
type Table struct {
	dims    []int
	strides []int
	data    []float64
}

// New allocates a zero-filled table over the given domain sizes.
// A table over zero dimensions is a scalar holding one value.
//
// Implementation:
//   - Stage 1 (Validate): every dimension must be ≥ 1.
//   - Stage 2 (Prepare): compute row-major strides and the total size.
//   - Stage 3 (Finalize): allocate the flat buffer.
//
// Complexity: O(Π dims) time and memory.
func New(dims []int) (*Table, error) {
	var (
		n = len(dims)
		d int
	)
	for d = 0; d < n; d++ {
		if dims[d] < 1 {
			return nil, tableErrorf(ctxNew, ErrBadShape)
		}
	}

	t := &Table{
		dims:    append([]int(nil), dims...),
		strides: make([]int, n),
	}
	size := 1
	for d = n - 1; d >= 0; d-- {
		t.strides[d] = size
		size *= dims[d]
	}
	t.data = make([]float64, size)

	return t, nil
}

// FromValues allocates a table over dims and copies vals into it in flat
// row-major order. len(vals) must equal the table size.
func FromValues(dims []int, vals []float64) (*Table, error) {
	t, err := New(dims)
	if err != nil {
		return nil, err
	}
	if len(vals) != len(t.data) {
		return nil, tableErrorf(ctxFromValues, ErrDimensionMismatch)
	}
	copy(t.data, vals)

	return t, nil
}

// Dims returns a copy of the domain sizes.
func (t *Table) Dims() []int { return append([]int(nil), t.dims...) }

// NumDims returns the number of dimensions.
func (t *Table) NumDims() int { return len(t.dims) }

// Len returns the number of entries (the product of the domain sizes).
func (t *Table) Len() int { return len(t.data) }

// Data exposes the flat backing buffer. Mutations are visible in t.
func (t *Table) Data() []float64 { return t.data }

// At returns the value at flat offset i. It panics on out-of-range i like
// a slice access; use Value for checked access by joint state.
func (t *Table) At(i int) float64 { return t.data[i] }

// Set writes the value at flat offset i.
func (t *Table) Set(i int, v float64) { t.data[i] = v }

// Index converts a joint state into a flat offset.
//
// Complexity: O(#dims).
func (t *Table) Index(states []int) (int, error) {
	if len(states) != len(t.dims) {
		return 0, tableErrorf(ctxIndex, ErrDimensionMismatch)
	}
	var off, d int
	for d = 0; d < len(states); d++ {
		if states[d] < 0 || states[d] >= t.dims[d] {
			return 0, tableErrorf(ctxIndex, ErrOutOfRange)
		}
		off += states[d] * t.strides[d]
	}

	return off, nil
}

// Value returns the entry of the joint state states.
func (t *Table) Value(states []int) (float64, error) {
	off, err := t.Index(states)
	if err != nil {
		return 0, err
	}

	return t.data[off], nil
}

// States decodes a flat offset back into a joint state (inverse of Index).
func (t *Table) States(off int) []int {
	states := make([]int, len(t.dims))
	for d := range t.dims {
		states[d] = (off / t.strides[d]) % t.dims[d]
	}

	return states
}

// Fill sets every entry to v.
func (t *Table) Fill(v float64) *Table {
	for i := range t.data {
		t.data[i] = v
	}

	return t
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	return &Table{
		dims:    append([]int(nil), t.dims...),
		strides: append([]int(nil), t.strides...),
		data:    append([]float64(nil), t.data...),
	}
}

// CopyFrom overwrites t's values with o's. Both must have the same number
// of entries; the shapes themselves are not compared.
func (t *Table) CopyFrom(o *Table) error {
	if err := sameLen(t, o); err != nil {
		return tableErrorf(ctxCopyFrom, err)
	}
	copy(t.data, o.data)

	return nil
}

// Add performs t += o elementwise.
func (t *Table) Add(o *Table) error {
	if err := sameLen(t, o); err != nil {
		return tableErrorf(ctxAdd, err)
	}
	floats.Add(t.data, o.data)

	return nil
}

// Sub performs t -= o elementwise.
func (t *Table) Sub(o *Table) error {
	if err := sameLen(t, o); err != nil {
		return tableErrorf(ctxSub, err)
	}
	floats.Sub(t.data, o.data)

	return nil
}

// Mul performs t *= o elementwise.
func (t *Table) Mul(o *Table) error {
	if err := sameLen(t, o); err != nil {
		return tableErrorf(ctxMul, err)
	}
	floats.Mul(t.data, o.data)

	return nil
}

// Div performs t /= o elementwise. Division by zero follows IEEE-754.
func (t *Table) Div(o *Table) error {
	if err := sameLen(t, o); err != nil {
		return tableErrorf(ctxDiv, err)
	}
	floats.Div(t.data, o.data)

	return nil
}

// AddScalar adds c to every entry.
func (t *Table) AddScalar(c float64) *Table {
	floats.AddConst(c, t.data)

	return t
}

// Scale multiplies every entry by c.
func (t *Table) Scale(c float64) *Table {
	floats.Scale(c, t.data)

	return t
}

// DivScalar divides every entry by c.
func (t *Table) DivScalar(c float64) *Table {
	for i := range t.data {
		t.data[i] /= c
	}

	return t
}

// Sum returns the sum of all entries.
func (t *Table) Sum() float64 { return floats.Sum(t.data) }

// String renders the flat buffer with its shape, e.g. "[2 2]{2, 0, 0, 2}".
func (t *Table) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v{", t.dims)
	for i, v := range t.data {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%g", v)
	}
	b.WriteString("}")

	return b.String()
}

// sameLen validates that both operands exist and have equal element counts.
func sameLen(t, o *Table) error {
	if t == nil || o == nil {
		return ErrNilTable
	}
	if len(t.data) != len(o.data) {
		return ErrDimensionMismatch
	}

	return nil
}
