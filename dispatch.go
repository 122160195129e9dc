// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import "fmt"

// Signal signals the condition err and returns the value chosen by a
// handler through [UseValue].
//
// Handlers are tried innermost first. Each handler body runs on the
// signaling goroutine's stack, so frames between the handler and the
// signal point keep their state, but it sees only the handlers that were
// established outside it. Any other outcome transfers control away from
// the signal point and Signal does not return. If every handler declines,
// the session default handler is consulted, and then an
// [UnhandledException] propagates to the enclosing [Run].
func (s *Session) Signal(err error) any {
	if err == nil {
		panic("cond: signal with nil condition")
	}
	return s.Scope(func(site *ScopeToken) any {
		s.dispatch(site, err)
		panic("cond: dispatch returned")
	})
}

// SignalAs is [Session.Signal] with the resumed value converted to T.
// A nil value yields the zero T.
func SignalAs[T any](s *Session, err error) T {
	return resultAs[T](s.Signal(err))
}

// dispatch walks the handlers for err and carries out the first
// non-declining outcome. It returns only by panicking a marker.
func (s *Session) dispatch(site *ScopeToken, err error) {
	saved := s.handlers
	defer func() { s.handlers = saved }()

	s.log.Debug("cond: signal", "condition", err, "site", site, "handlers", len(saved))
	for i, h := range matching(saved, err) {
		// Handler bodies see only the handlers outside their own.
		s.handlers = saved[:i:i]
		out := h.fn(err)
		s.handlers = saved
		if s.resolve(site, h.token, err, out) {
			return
		}
		s.log.Debug("cond: handler declined", "condition", err, "handler", h.token)
	}
	if s.fallback != nil {
		s.handlers = saved[:0:0]
		out := s.fallback(err)
		s.handlers = saved
		if _, ok := out.(returnOutcome); ok {
			panic("cond: default handler cannot return from a handler scope")
		}
		if s.resolve(site, nil, err, out) {
			return
		}
	}
	s.log.Debug("cond: unhandled", "condition", err)
	panic(NewUnhandledException(err))
}

// resolve translates a handler outcome into the marker that carries it.
// Returns false if the handler declined.
func (s *Session) resolve(site *ScopeToken, h *HandlerToken, err error, out Outcome) bool {
	switch o := out.(type) {
	case nil, declineOutcome:
		return false
	case valueOutcome:
		s.log.Debug("cond: use value", "condition", err, "site", site)
		v := o.v
		panic(NewResumeScope(site, func() any { return v }))
	case restartOutcome:
		e := o.entry
		if e == nil {
			var ok bool
			e, ok = s.FindRestart(o.name)
			if !ok {
				panic(&RestartError{Name: o.name, Err: ErrRestartNotFound})
			}
		}
		s.InvokeRestart(e, o.args...)
	case returnOutcome:
		s.log.Debug("cond: return from handler", "condition", err, "handler", h)
		v := o.v
		panic(NewResumeHandler(h, func() any { return v }))
	case reraiseOutcome:
		s.log.Debug("cond: reraise", "condition", err)
		panic(NewRethrow(err))
	default:
		panic(fmt.Sprintf("cond: unknown handler outcome %T", out))
	}
	return true
}
