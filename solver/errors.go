// SPDX-License-Identifier: MIT
// Package solver: sentinel error set.

package solver

import "errors"

var (
	// ErrNilModel indicates that New was called without a model.
	ErrNilModel = errors.New("solver: nil model")

	// ErrUnknownVariable indicates a variable index outside the model.
	ErrUnknownVariable = errors.New("solver: unknown variable")

	// ErrDuplicateVariable indicates a variable listed twice in one intersection.
	ErrDuplicateVariable = errors.New("solver: duplicate variable")

	// ErrUnknownIntersection indicates an intersection handle outside the catalogue.
	ErrUnknownIntersection = errors.New("solver: unknown intersection")

	// ErrBadAssignment indicates an assignment of the wrong length or with
	// an out-of-range state.
	ErrBadAssignment = errors.New("solver: invalid assignment")
)
