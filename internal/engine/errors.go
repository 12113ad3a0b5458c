package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrEngineNotFound indicates no qalc executable was located.
	ErrEngineNotFound = errors.New("qalc executable not found")

	// ErrEngineUnavailable indicates Evaluate was called without an engine path.
	ErrEngineUnavailable = errors.New("qalc engine location is not configured")

	// ErrInvocationFailed indicates the engine process could not be run.
	ErrInvocationFailed = errors.New("qalc invocation failed")

	// ErrTimeout indicates the engine did not answer in time. It wraps ErrInvocationFailed.
	ErrTimeout = fmt.Errorf("%w: timed out", ErrInvocationFailed)
)
