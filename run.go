// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

// Run is the top boundary of condition handling. It runs body and converts
// the markers that end condition handling into ordinary errors:
//   - an unhandled condition is returned as an [*UnhandledError]
//   - a condition abandoned with [Reraise] is returned as itself
//
// Resume markers addressed to a scope that is still live outside Run are
// relayed outward, so boundaries may be nested. A resume marker whose
// target has exited reaches Run unclaimed; Run panics with a
// [*DanglingTargetError]. Ordinary panics pass through unchanged.
//
// Run must be the outermost frame of every goroutine that signals
// conditions. Without it, unhandled conditions and dangling resume markers
// escape as raw marker panics; see [IsMarker].
func Run[T any](s *Session, body func() T) (result T, err error) {
	m := s.mark()
	defer func() {
		s.unwindTo(m)
		r := recover()
		if r == nil {
			return
		}
		switch v := r.(type) {
		case *UnhandledException:
			s.log.Debug("cond: boundary reached by unhandled condition", "condition", v.err)
			var zero T
			result, err = zero, &UnhandledError{Err: v.err}
		case *Rethrow:
			var zero T
			result, err = zero, v.err
		case addressed:
			if v.target().live() {
				panic(r)
			}
			s.log.Error("cond: dangling marker", "marker", v.String())
			danglingTarget(v)
		default:
			panic(r)
		}
	}()
	return body(), nil
}
