// SPDX-License-Identifier: MIT
// Package potential: sentinel error set.
// All table operations return these sentinels (optionally wrapped with
// fmt.Errorf("ctx: %w", ErrX)); callers match them with errors.Is.

package potential

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when a requested shape has a dimension < 1.
	ErrBadShape = errors.New("potential: invalid shape")

	// ErrDimensionMismatch indicates incompatible operands: element counts
	// differ, a value slice has the wrong length, or a projection maps a
	// dimension onto one of a different size.
	ErrDimensionMismatch = errors.New("potential: dimension mismatch")

	// ErrOutOfRange indicates a dimension position or a state that is
	// outside the table's shape.
	ErrOutOfRange = errors.New("potential: index out of range")

	// ErrDuplicateDimension indicates a subset or projection that names the
	// same dimension twice.
	ErrDuplicateDimension = errors.New("potential: duplicate dimension")

	// ErrNilTable indicates a nil *Table receiver or argument.
	ErrNilTable = errors.New("potential: nil table")
)

// tableErrorf attaches a method tag to a sentinel.
func tableErrorf(method string, err error) error {
	return fmt.Errorf("Table.%s: %w", method, err)
}
