// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import "errors"

// HandlerFunc is the body of a condition handler. It receives the
// signaled condition and returns the [Outcome] chosen for it.
// Returning nil declines the condition.
type HandlerFunc func(err error) Outcome

// Clause binds a condition predicate to a handler body.
// A nil Match accepts every condition.
type Clause struct {
	Match  func(error) bool
	Handle HandlerFunc
}

// On creates a clause from a predicate and a body.
func On(match func(error) bool, fn HandlerFunc) Clause {
	return Clause{Match: match, Handle: fn}
}

// OnError creates a clause matching conditions for which errors.Is(err, target) holds.
func OnError(target error, fn HandlerFunc) Clause {
	return Clause{
		Match:  func(err error) bool { return errors.Is(err, target) },
		Handle: fn,
	}
}

// OnType creates a clause matching conditions whose chain contains an E.
// The body receives that E.
//
// Example:
//
//	cond.OnType(func(e *ParseError) cond.Outcome {
//	    return cond.UseRestart("skip-line")
//	})
func OnType[E error](fn func(E) Outcome) Clause {
	return Clause{
		Match: func(err error) bool {
			var target E
			return errors.As(err, &target)
		},
		Handle: func(err error) Outcome {
			var target E
			errors.As(err, &target)
			return fn(target)
		},
	}
}

// OnAny creates a clause matching every condition.
func OnAny(fn HandlerFunc) Clause {
	return Clause{Handle: fn}
}

// Outcome is a handler's decision about a condition.
// Outcomes are created by [Decline], [UseValue], [UseRestart],
// [UseRestartEntry], [ReturnValue] and [Reraise].
type Outcome interface {
	outcome() // unexported marker method
}

type declineOutcome struct{}

func (declineOutcome) outcome() {}

// Decline passes the condition to the next outer handler.
func Decline() Outcome { return declineOutcome{} }

type valueOutcome struct{ v any }

func (valueOutcome) outcome() {}

// UseValue resumes the signal call, which returns v.
func UseValue(v any) Outcome { return valueOutcome{v: v} }

type restartOutcome struct {
	name  string
	entry *RestartEntry
	args  []any
}

func (restartOutcome) outcome() {}

// UseRestart invokes the innermost restart named name with args.
func UseRestart(name string, args ...any) Outcome {
	return restartOutcome{name: name, args: args}
}

// UseRestartEntry invokes the given restart with args.
func UseRestartEntry(e *RestartEntry, args ...any) Outcome {
	return restartOutcome{entry: e, args: args}
}

type returnOutcome struct{ v any }

func (returnOutcome) outcome() {}

// ReturnValue unwinds to the scope that established the handler and makes
// that scope return v.
func ReturnValue(v any) Outcome { return returnOutcome{v: v} }

type reraiseOutcome struct{}

func (reraiseOutcome) outcome() {}

// Reraise abandons condition handling; the enclosing [Run] returns the
// condition as an ordinary error.
func Reraise() Outcome { return reraiseOutcome{} }
