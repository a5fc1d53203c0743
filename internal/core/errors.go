// ABOUTME: Sentinel errors for the knowledge graph engine
// ABOUTME: Callers branch on these with errors.Is
package core

import "errors"

var (
	// ErrEmptyInput means the caller supplied no query text. Surfaced
	// immediately, never retried.
	ErrEmptyInput = errors.New("empty input")

	// ErrCancelled means a corpus sweep was abandoned before completion.
	// No partial results accompany it.
	ErrCancelled = errors.New("operation cancelled")
)
