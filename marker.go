// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

// Marker is the interface for the control values that travel through
// panic/recover between scopes. Implementations are immutable and carry no
// behavior; runners dispatch on them with type switches.
//
// Markers deliberately do not implement error, so code recovering panics
// with `if err, ok := r.(error)` never mistakes one for a failure. Code that
// recovers arbitrary panics must re-panic any value for which [IsMarker]
// reports true.
type Marker interface {
	marker() // unexported marker method
	String() string
}

// addressed is implemented by markers that target exactly one runner.
type addressed interface {
	Marker
	target() *token
	thunk() func() any
}

// IsMarker reports whether v, typically the result of recover(), is a
// control marker rather than an ordinary panic.
func IsMarker(v any) bool {
	_, ok := v.(Marker)
	return ok
}

// ResumeScope unwinds to the runner owning a [ScopeToken], runs the thunk
// there and makes its result the runner's result.
type ResumeScope struct {
	scope *ScopeToken
	fn    func() any
}

// NewResumeScope creates a ResumeScope marker. Panics if scope or thunk is nil.
func NewResumeScope(scope *ScopeToken, thunk func() any) *ResumeScope {
	if scope == nil {
		panic("cond: ResumeScope with nil scope token")
	}
	if thunk == nil {
		panic("cond: ResumeScope with nil thunk")
	}
	return &ResumeScope{scope: scope, fn: thunk}
}

func (*ResumeScope) marker() {}

// Scope returns the addressed scope token.
func (m *ResumeScope) Scope() *ScopeToken { return m.scope }

// Thunk returns the function run at the addressed scope.
func (m *ResumeScope) Thunk() func() any { return m.fn }

func (m *ResumeScope) target() *token    { return &m.scope.token }
func (m *ResumeScope) thunk() func() any { return m.fn }

func (m *ResumeScope) String() string {
	return "cond: resume " + m.scope.String() + " (internal control marker, should never be seen)"
}

// ResumeHandler unwinds to the runner owning a [HandlerToken], runs the
// thunk there and makes its result the handler scope's result.
type ResumeHandler struct {
	handler *HandlerToken
	fn      func() any
}

// NewResumeHandler creates a ResumeHandler marker. Panics if handler or thunk is nil.
func NewResumeHandler(handler *HandlerToken, thunk func() any) *ResumeHandler {
	if handler == nil {
		panic("cond: ResumeHandler with nil handler token")
	}
	if thunk == nil {
		panic("cond: ResumeHandler with nil thunk")
	}
	return &ResumeHandler{handler: handler, fn: thunk}
}

func (*ResumeHandler) marker() {}

// Handler returns the addressed handler token.
func (m *ResumeHandler) Handler() *HandlerToken { return m.handler }

// Thunk returns the function run at the addressed handler scope.
func (m *ResumeHandler) Thunk() func() any { return m.fn }

func (m *ResumeHandler) target() *token    { return &m.handler.token }
func (m *ResumeHandler) thunk() func() any { return m.fn }

func (m *ResumeHandler) String() string {
	return "cond: resume " + m.handler.String() + " (internal control marker, should never be seen)"
}

// Rethrow abandons condition handling. The [Run] boundary that catches it
// returns the carried error as an ordinary failure.
type Rethrow struct {
	err error
}

// NewRethrow creates a Rethrow marker. Panics if err is nil.
func NewRethrow(err error) *Rethrow {
	if err == nil {
		panic("cond: Rethrow with nil error")
	}
	return &Rethrow{err: err}
}

func (*Rethrow) marker() {}

// Err returns the error to re-raise.
func (m *Rethrow) Err() error { return m.err }

func (m *Rethrow) String() string {
	return "cond: rethrow " + m.err.Error() + " (internal control marker, should never be seen)"
}

// UnhandledException reports that no handler claimed a condition. The
// [Run] boundary that catches it returns an [*UnhandledError].
type UnhandledException struct {
	err error
}

// NewUnhandledException creates an UnhandledException marker. Panics if err is nil.
func NewUnhandledException(err error) *UnhandledException {
	if err == nil {
		panic("cond: UnhandledException with nil error")
	}
	return &UnhandledException{err: err}
}

func (*UnhandledException) marker() {}

// Err returns the unhandled condition.
func (m *UnhandledException) Err() error { return m.err }

func (m *UnhandledException) String() string {
	return "cond: unhandled condition: " + m.err.Error()
}
