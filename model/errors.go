package model

import "errors"

var (
	// ErrEmptyModel indicates a model without variables.
	ErrEmptyModel = errors.New("model: no variables")

	// ErrBadDomain indicates a variable with domain size < 1.
	ErrBadDomain = errors.New("model: domain size must be >= 1")

	// ErrBadScope indicates a region scope that is empty, repeats a
	// variable, or names an unknown variable.
	ErrBadScope = errors.New("model: invalid region scope")

	// ErrPotentialCount indicates that the potentials list does not match
	// the scopes list one-to-one.
	ErrPotentialCount = errors.New("model: potentials and scopes differ in count")

	// ErrPotentialSize indicates a potential whose length is neither zero
	// nor the size of its scope's joint state space.
	ErrPotentialSize = errors.New("model: potential size does not match scope")

	// ErrBadEvidence indicates an evidence entry for an unknown variable or
	// an out-of-range state.
	ErrBadEvidence = errors.New("model: invalid evidence")
)
