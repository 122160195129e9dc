// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

// Scope runners.
// Every scope that establishes handlers or restarts runs its body through
// trampoline. A marker addressed to the scope's token is claimed there and
// its thunk becomes the scope's result; any other panic value, marker or
// not, is re-panicked unchanged so it keeps travelling outward one scope
// at a time.

// trampoline runs body under tok. Entries established during body are
// popped and tok is closed on every exit path before a claimed thunk runs.
func (s *Session) trampoline(tok *token, body func() any) any {
	m := s.mark()
	result, claimed := s.runBody(tok, m, body)
	if claimed != nil {
		s.log.Debug("cond: resume", "target", tok)
		return claimed()
	}
	return result
}

func (s *Session) runBody(tok *token, m mark, body func() any) (result any, claimed func() any) {
	defer func() {
		s.unwindTo(m)
		tok.close()
		r := recover()
		if r == nil {
			return
		}
		if a, ok := r.(addressed); ok && a.target() == tok {
			claimed = a.thunk()
			return
		}
		panic(r)
	}()
	return body(), nil
}

// Scope runs body in a new scope and returns its result. Markers addressed
// to the scope's token resume here: the scope returns the marker thunk's
// result instead. Restarts established on the token are popped when the
// scope exits.
func (s *Session) Scope(body func(*ScopeToken) any) any {
	tok := newScopeToken()
	return s.trampoline(&tok.token, func() any { return body(tok) })
}

// HandlerScope is [Session.Scope] for handler establishment. Markers
// addressed to the handler token resume here.
func (s *Session) HandlerScope(body func(*HandlerToken) any) any {
	tok := newHandlerToken()
	return s.trampoline(&tok.token, func() any { return body(tok) })
}

// Restart describes a restart established by [WithRestarts].
type Restart[T any] struct {
	// Name identifies the restart for [UseRestart] and [Session.FindRestart].
	Name string

	// Description is shown by interactive handlers.
	Description string

	// Invoke computes the value returned by WithRestarts when the restart
	// is chosen. It runs after the restarts of its own scope were popped.
	Invoke func(args ...any) T

	// Prompt optionally reads Invoke's arguments interactively.
	Prompt PromptFunc
}

// WithRestarts runs body with restarts established and returns its result,
// or the result of a restart invoked during body.
// Earlier restarts in the list shadow later ones with the same name.
//
// Example:
//
//	n := cond.WithRestarts(s, []cond.Restart[int]{{
//	    Name:   "use-default",
//	    Invoke: func(...any) int { return 0 },
//	}}, func() int {
//	    return parse(s, input)
//	})
func WithRestarts[T any](s *Session, restarts []Restart[T], body func() T) T {
	return resultAs[T](s.Scope(func(tok *ScopeToken) any {
		for i := len(restarts) - 1; i >= 0; i-- {
			r := restarts[i]
			if r.Invoke == nil {
				panic("cond: restart " + r.Name + " has nil Invoke")
			}
			invoke := r.Invoke
			s.EstablishRestart(tok, r.Name, func(args ...any) any { return invoke(args...) },
				Describe(r.Description), Prompt(r.Prompt))
		}
		return body()
	}))
}

// WithRestart runs body with a single restart established.
func WithRestart[T any](s *Session, name string, fn func(args ...any) T, body func() T) T {
	return WithRestarts(s, []Restart[T]{{Name: name, Invoke: fn}}, body)
}

// Handle runs body with the clauses established as handlers and returns
// its result, or the value of a handler that chose [ReturnValue].
// Earlier clauses are tried before later ones.
func Handle[T any](s *Session, clauses []Clause, body func() T) T {
	return resultAs[T](s.HandlerScope(func(tok *HandlerToken) any {
		for i := len(clauses) - 1; i >= 0; i-- {
			c := clauses[i]
			s.EstablishHandler(tok, c.Match, c.Handle)
		}
		return body()
	}))
}
