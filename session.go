// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import (
	"context"
	"log/slog"
)

// Session holds the dynamic handler and restart stacks of one logical
// execution. A Session belongs to a single goroutine; sharing one between
// goroutines breaks the stack discipline and is not supported. Start one
// Session per goroutine and pass it down explicitly or through a context.
// Wrap the goroutine's work in [Run]: it is the only place where an
// unhandled condition becomes an error and a dangling marker is reported.
type Session struct {
	handlers []*HandlerEntry
	restarts []*RestartEntry
	fallback HandlerFunc
	log      *slog.Logger

	// seq numbers entries in establishment order. Popping from the middle
	// keeps the order, so everything established after a mark sits above
	// every older entry.
	seq uint64
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger receiving debug records for establishment,
// signaling and resumption. The default discards all records.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithDefaultHandler sets a handler consulted after every established
// handler declined a condition. It runs with no handlers visible.
func WithDefaultHandler(h HandlerFunc) Option {
	return func(s *Session) {
		s.fallback = h
	}
}

// NewSession creates an empty Session.
func NewSession(opts ...Option) *Session {
	s := &Session{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Depth returns the number of active handlers and restarts.
func (s *Session) Depth() (handlers, restarts int) {
	return len(s.handlers), len(s.restarts)
}

// mark is the establishment sequence number at scope entry.
type mark uint64

func (s *Session) mark() mark {
	return mark(s.seq)
}

func (s *Session) next() uint64 {
	s.seq++
	return s.seq
}

// unwindTo pops every entry established after m, including entries that
// moved down because an older entry was popped out of order.
func (s *Session) unwindTo(m mark) {
	i := len(s.handlers)
	for i > 0 && s.handlers[i-1].seq > uint64(m) {
		i--
		s.handlers[i].popped = true
	}
	s.handlers = s.handlers[:i]

	j := len(s.restarts)
	for j > 0 && s.restarts[j-1].seq > uint64(m) {
		j--
		s.restarts[j].popped = true
	}
	s.restarts = s.restarts[:j]
}

type sessionKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the Session carried by ctx, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok
}
