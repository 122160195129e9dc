// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import (
	"errors"
	"fmt"
)

var (
	// ErrRestartNotFound is wrapped by a [*RestartError] when a handler
	// names a restart that is not visible at the signal point.
	ErrRestartNotFound = errors.New("cond: restart not found")

	// ErrRestartNotActive is wrapped by a [*RestartError] when a restart is
	// invoked after it was popped or its establishing scope exited.
	ErrRestartNotActive = errors.New("cond: restart not active")
)

// UnhandledError is returned by [Run] when a signaled condition was not
// claimed by any handler. It unwraps to the condition.
type UnhandledError struct {
	Err error
}

func (e *UnhandledError) Error() string {
	return "cond: unhandled condition: " + e.Err.Error()
}

func (e *UnhandledError) Unwrap() error { return e.Err }

// RestartError is the panic value raised when a restart cannot be invoked.
// Restart misuse is a programming error and fails closed.
type RestartError struct {
	Name string
	Err  error
}

func (e *RestartError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Name)
}

func (e *RestartError) Unwrap() error { return e.Err }

// DanglingTargetError is the panic value raised by [Run] when an addressed
// marker reaches it and the target scope has already exited. It indicates a
// defect in the caller, for example a marker retained past its scope.
type DanglingTargetError struct {
	Marker Marker
}

func (e *DanglingTargetError) Error() string {
	switch m := e.Marker.(type) {
	case *ResumeScope:
		return "cond: internal defect: marker addressed to exited " + m.scope.String()
	case *ResumeHandler:
		return "cond: internal defect: marker addressed to exited " + m.handler.String()
	}
	return "cond: internal defect: dangling marker " + e.Marker.String()
}

// danglingTarget panics with a DanglingTargetError.
// Kept out of line so that the boundary's recover path stays small.
//
//go:noinline
func danglingTarget(m Marker) {
	panic(&DanglingTargetError{Marker: m})
}

// resultAs converts a type-erased thunk result. A nil result is the zero
// value of T.
func resultAs[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		panic(fmt.Sprintf("cond: scope resumed with %T, want %T", v, zero))
	}
	return t
}
