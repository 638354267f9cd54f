// SPDX-License-Identifier: MIT
// Package config: sentinel error set.

package config

import "errors"

var (
	// ErrRead indicates a configuration file that could not be read.
	ErrRead = errors.New("config: read failed")

	// ErrParse indicates malformed YAML.
	ErrParse = errors.New("config: parse failed")

	// ErrWrite indicates a configuration file that could not be written.
	ErrWrite = errors.New("config: write failed")

	// ErrInvalid indicates a value outside its allowed range.
	ErrInvalid = errors.New("config: invalid value")
)
