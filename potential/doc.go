// Package potential provides dense multi-dimensional tables over the joint
// states of an ordered list of discrete variables.
//
// A Table stores one float64 per joint state in a flat row-major buffer:
// the LAST dimension varies fastest, so for dims (d0, d1, …, dk) the state
// (s0, s1, …, sk) lives at offset Σ si·stride(i) with
// stride(k) = 1 and stride(i) = stride(i+1)·d(i+1).
//
// What it offers:
//   - construction from domain sizes or from a flat value slice
//   - scalar fill, copy, elementwise arithmetic (gonum/floats kernels)
//   - Max with argmax, and simultaneous max-marginalization onto several
//     sub-combinations of dimensions in one sweep (MaxInto / MaxMarginal)
//   - broadcast expansion of a sub-table into a super-table (ExpandAdd /
//     ExpandSub), the inverse direction of max-marginalization
//   - uniform random fill for diagnostics
//
// Determinism:
//
//	Every sweep visits source entries in flat order 0..Len()-1 and keeps the
//	first entry that is strictly greater than the running maximum. Ties are
//	therefore resolved in favour of the lowest flat index.
//
// Complexity quicksheet:
//   - New: O(Π dims); Fill/Add/...: O(Len)
//   - MaxInto with k targets: O(Len·(k + #dims)) amortized
//   - ExpandAdd into dst: O(dst.Len()) amortized
//
// Example:
//
//	t, _ := potential.FromValues([]int{2, 2}, []float64{2, 0, 0, 2})
//	row, arg, _ := t.MaxMarginal([]int{0}) // row = [2 2], arg = [0 3]
package potential
