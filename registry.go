// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import (
	"bufio"
	"io"
	"iter"

	"golang.org/x/exp/slices"
)

// Restart and handler registries.
// Both are stacks owned by a Session. Entries become visible when
// established and stay visible until popped; lookups scan from the most
// recently established entry outward.

// RestartFunc is the type-erased callback of a restart.
type RestartFunc func(args ...any) any

// PromptFunc reads restart arguments interactively.
type PromptFunc func(in *bufio.Reader, out io.Writer) ([]any, error)

// RestartEntry is an established restart. It is valid only while its
// establishing scope is on the stack and it has not been popped.
type RestartEntry struct {
	name   string
	desc   string
	fn     RestartFunc
	prompt PromptFunc
	scope  *ScopeToken
	seq    uint64
	popped bool
}

// Name returns the restart name.
func (e *RestartEntry) Name() string { return e.name }

// Description returns the human-readable description, if any.
func (e *RestartEntry) Description() string { return e.desc }

// Scope returns the token of the establishing scope.
func (e *RestartEntry) Scope() *ScopeToken { return e.scope }

// Live reports whether the restart can still be invoked.
func (e *RestartEntry) Live() bool { return !e.popped && e.scope.Live() }

// RestartOption configures an established restart.
type RestartOption func(*RestartEntry)

// Describe attaches a description shown by interactive handlers.
func Describe(text string) RestartOption {
	return func(e *RestartEntry) { e.desc = text }
}

// Prompt attaches an interactive argument reader.
func Prompt(fn PromptFunc) RestartOption {
	return func(e *RestartEntry) { e.prompt = fn }
}

// EstablishRestart pushes a restart owned by scope. The caller must pop it
// with [Session.PopRestart] before scope exits; scopes created by
// [Session.Scope] pop their restarts automatically.
func (s *Session) EstablishRestart(scope *ScopeToken, name string, fn RestartFunc, opts ...RestartOption) *RestartEntry {
	if scope == nil || !scope.Live() {
		panic("cond: restart established outside a live scope")
	}
	if fn == nil {
		panic("cond: restart with nil callback")
	}
	e := &RestartEntry{name: name, fn: fn, scope: scope, seq: s.next()}
	for _, opt := range opts {
		opt(e)
	}
	s.restarts = append(s.restarts, e)
	s.log.Debug("cond: establish restart", "name", name, "scope", scope)
	return e
}

// FindRestart returns the innermost visible restart named name.
func (s *Session) FindRestart(name string) (*RestartEntry, bool) {
	for i := len(s.restarts) - 1; i >= 0; i-- {
		if e := s.restarts[i]; e.name == name {
			return e, true
		}
	}
	return nil, false
}

// Restarts returns the visible restarts, innermost first.
func (s *Session) Restarts() []*RestartEntry {
	out := slices.Clone(s.restarts)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// InvokeRestart transfers control to the scope that established e and
// returns the result of the restart callback from that scope. It never
// returns normally.
//
// Panics with a [*RestartError] wrapping [ErrRestartNotActive] if e was
// popped or its scope exited.
func (s *Session) InvokeRestart(e *RestartEntry, args ...any) {
	if e == nil || !e.Live() {
		name := ""
		if e != nil {
			name = e.name
		}
		panic(&RestartError{Name: name, Err: ErrRestartNotActive})
	}
	s.log.Debug("cond: invoke restart", "name", e.name, "scope", e.scope)
	fn := e.fn
	panic(NewResumeScope(e.scope, func() any { return fn(args...) }))
}

// PopRestart removes e from the registry. Popping an entry that is not on
// the stack is a no-op.
func (s *Session) PopRestart(e *RestartEntry) {
	i := slices.Index(s.restarts, e)
	if i < 0 {
		return
	}
	e.popped = true
	if i == len(s.restarts)-1 {
		s.restarts = s.restarts[:i]
		return
	}
	s.restarts = slices.Delete(slices.Clone(s.restarts), i, i+1)
}

// HandlerEntry is an established condition handler.
type HandlerEntry struct {
	match  func(error) bool
	fn     HandlerFunc
	token  *HandlerToken
	seq    uint64
	popped bool
}

// Token returns the token of the establishing handler scope.
func (e *HandlerEntry) Token() *HandlerToken { return e.token }

// Matches reports whether the handler accepts err.
func (e *HandlerEntry) Matches(err error) bool {
	return e.match == nil || e.match(err)
}

// EstablishHandler pushes a handler owned by the handler scope h. A nil
// match accepts every condition.
func (s *Session) EstablishHandler(h *HandlerToken, match func(error) bool, fn HandlerFunc) *HandlerEntry {
	if h == nil || !h.Live() {
		panic("cond: handler established outside a live handler scope")
	}
	if fn == nil {
		panic("cond: handler with nil body")
	}
	e := &HandlerEntry{match: match, fn: fn, token: h, seq: s.next()}
	s.handlers = append(s.handlers, e)
	s.log.Debug("cond: establish handler", "scope", h)
	return e
}

// PopHandler removes e from the registry. Popping an entry that is not on
// the stack is a no-op.
func (s *Session) PopHandler(e *HandlerEntry) {
	i := slices.Index(s.handlers, e)
	if i < 0 {
		return
	}
	e.popped = true
	if i == len(s.handlers)-1 {
		s.handlers = s.handlers[:i]
		return
	}
	s.handlers = slices.Delete(slices.Clone(s.handlers), i, i+1)
}

// MatchingHandlers returns the handlers accepting err, innermost first.
// The sequence is evaluated lazily over the handlers visible at the time
// of the call and may be ranged over again from the start.
func (s *Session) MatchingHandlers(err error) iter.Seq[*HandlerEntry] {
	stack := slices.Clone(s.handlers)
	return func(yield func(*HandlerEntry) bool) {
		for _, e := range matching(stack, err) {
			if !yield(e) {
				return
			}
		}
	}
}

// matching yields candidate handlers of stack with their stack positions.
func matching(stack []*HandlerEntry, err error) iter.Seq2[int, *HandlerEntry] {
	return func(yield func(int, *HandlerEntry) bool) {
		for i := len(stack) - 1; i >= 0; i-- {
			e := stack[i]
			if !e.Matches(err) {
				continue
			}
			if !yield(i, e) {
				return
			}
		}
	}
}
