// Package core defines sentinel errors.
package core

import "errors"

var (
	// Buffer pool errors
	ErrPoolExhausted = errors.New("qarb: buffer pool exhausted")

	// Capture errors
	ErrFrameTooShort = errors.New("qarb: frame too short")
	ErrRingClosed    = errors.New("qarb: receive ring closed")

	// Configuration errors
	ErrConfigInvalid = errors.New("qarb: invalid configuration")
)
