// SPDX-License-Identifier: MIT
// Package uai: sentinel error set.

package uai

import "errors"

var (
	// ErrHeader indicates a missing or unknown network type line.
	ErrHeader = errors.New("uai: unknown network type")

	// ErrTruncated indicates that the input ended before the model did.
	ErrTruncated = errors.New("uai: unexpected end of input")

	// ErrSyntax indicates a token that is not a valid number.
	ErrSyntax = errors.New("uai: malformed number")

	// ErrTableSize indicates a function table whose length does not match
	// its scope.
	ErrTableSize = errors.New("uai: table size mismatch")

	// ErrNegative indicates a negative probability.
	ErrNegative = errors.New("uai: negative probability")

	// ErrEvidence indicates an evidence file that matches neither layout.
	ErrEvidence = errors.New("uai: malformed evidence")
)
