// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// token is the shared identity behind ScopeToken and HandlerToken.
// Tokens are compared by pointer, never by value; the uuid only names the
// token in diagnostics and is minted on first use.
//
// A token is live from the moment its scope is entered until the scope
// exits. Closing is one-shot: a closed token never becomes live again.
type token struct {
	once   sync.Once
	id     uuid.UUID
	closed atomic.Uintptr
}

func (t *token) ident() uuid.UUID {
	t.once.Do(func() { t.id = uuid.New() })
	return t.id
}

// LogValue names the token in log records. Discarded records never mint
// an id.
func (t *token) LogValue() slog.Value {
	return slog.StringValue(t.ident().String())
}

// close marks the token dead. Returns false if it was already closed.
func (t *token) close() bool {
	return t.closed.Add(1) == 1
}

func (t *token) live() bool {
	return t.closed.Load() == 0
}

// ScopeToken addresses exactly one live scope runner.
// Obtain one from [Session.Scope]; the token dies when the scope exits.
type ScopeToken struct {
	token
}

func newScopeToken() *ScopeToken {
	return new(ScopeToken)
}

// ID returns the diagnostic identifier of the scope.
func (t *ScopeToken) ID() uuid.UUID { return t.ident() }

// Live reports whether the owning scope is still on the stack.
func (t *ScopeToken) Live() bool { return t.live() }

func (t *ScopeToken) String() string { return "scope " + t.ident().String() }

// HandlerToken addresses the runner of a handler-establishing scope.
// Obtain one from [Session.HandlerScope].
type HandlerToken struct {
	token
}

func newHandlerToken() *HandlerToken {
	return new(HandlerToken)
}

// ID returns the diagnostic identifier of the handler scope.
func (t *HandlerToken) ID() uuid.UUID { return t.ident() }

// Live reports whether the owning handler scope is still on the stack.
func (t *HandlerToken) Live() bool { return t.live() }

func (t *HandlerToken) String() string { return "handler " + t.ident().String() }
