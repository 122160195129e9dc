// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cond provides Common Lisp style conditions and restarts in Go.
//
// A condition is an error signaled from deep in a call stack. Handlers
// established by enclosing frames decide how to respond before the stack
// has unwound: resume the signal with a value, invoke a restart registered
// by an intermediate frame, return from the handler's own frame, or give
// up. Go's panic/recover only unwinds once, to the nearest recover, so the
// package encodes cross-frame intent as control markers that are relayed
// outward scope by scope until their addressee claims them.
//
// # Sessions
//
// A [Session] holds the dynamic handler and restart stacks of one
// goroutine. Pass it down explicitly, or with [NewContext] and
// [FromContext].
//
//   - [NewSession]: Create a session
//   - [WithLogger]: Debug records through log/slog
//   - [WithDefaultHandler]: Handler consulted after all others declined
//   - [WithInteractiveRestarts]: Default handler prompting for a restart
//
// # Establishing Restarts and Handlers
//
//   - [WithRestarts], [WithRestart]: Run a body with restarts established
//   - [Handle]: Run a body with handler clauses established
//   - [On], [OnError], [OnType], [OnAny]: Clause constructors
//
// Within one call the first listed restart or clause is the innermost.
// Across calls the most recently established entry wins.
//
// # Signaling
//
//   - [Session.Signal]: Signal a condition, returning the handler's value
//   - [SignalAs]: Typed variant of Signal
//
// Handler bodies return an [Outcome]:
//
//   - [Decline]: Let the next outer handler decide (nil also declines)
//   - [UseValue]: Resume the signal call with a value
//   - [UseRestart], [UseRestartEntry]: Invoke a restart
//   - [ReturnValue]: Return a value from the handler's own [Handle]
//   - [Reraise]: Abandon handling; [Run] returns the condition
//
// # Boundary
//
// [Run] is the top boundary. It returns an [*UnhandledError] for a
// condition nobody claimed, returns the condition itself after [Reraise],
// and panics with a [*DanglingTargetError] when a resume marker arrives
// for a scope that has already exited.
//
// # Markers and Registries
//
// The lower level is exposed for collaborators building their own
// establishing forms:
//
//   - [ResumeScope], [ResumeHandler], [Rethrow], [UnhandledException]:
//     The four control markers; [IsMarker] identifies them after recover
//   - [Session.Scope], [Session.HandlerScope]: Scope runners
//   - [Session.EstablishRestart], [Session.FindRestart],
//     [Session.InvokeRestart], [Session.PopRestart], [Session.Restarts]
//   - [Session.EstablishHandler], [Session.MatchingHandlers],
//     [Session.PopHandler]
//
// Code that recovers arbitrary panics inside a session must re-panic
// markers untouched:
//
//	defer func() {
//	    if r := recover(); r != nil {
//	        if cond.IsMarker(r) {
//	            panic(r)
//	        }
//	        log.Printf("recovered: %v", r)
//	    }
//	}()
//
// # Example
//
//	var ErrDivideByZero = errors.New("divide by zero")
//
//	s := cond.NewSession()
//	n, err := cond.Run(s, func() int {
//	    return cond.Handle(s, []cond.Clause{
//	        cond.OnError(ErrDivideByZero, func(error) cond.Outcome {
//	            return cond.UseRestart("use-default")
//	        }),
//	    }, func() int {
//	        return cond.WithRestart(s, "use-default", func(...any) int { return 0 }, func() int {
//	            if d == 0 {
//	                s.Signal(ErrDivideByZero)
//	            }
//	            return x / d
//	        })
//	    })
//	})
//	// n == 0, err == nil
//
//	// Interactive recovery when no handler claims a condition:
//	s = cond.NewSession(cond.WithInteractiveRestarts(os.Stdin, os.Stdout))
package cond
