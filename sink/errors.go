// SPDX-License-Identifier: MIT
// Package sink: sentinel error set.

package sink

import "errors"

var (
	// ErrEmptyAssignment indicates an emission without variables.
	ErrEmptyAssignment = errors.New("sink: empty assignment")

	// ErrClosed indicates an emission after Close.
	ErrClosed = errors.New("sink: writer closed")
)
