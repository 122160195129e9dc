// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// InteractiveHandler returns a handler that lists the restarts visible at
// the signal point on out and reads the chosen restart number from in.
// Arguments are read with the restart's prompt, if it has one.
//
// Empty input, end of input, an invalid number or a failing prompt
// declines the condition. Install it with [WithDefaultHandler] or use
// [WithInteractiveRestarts].
func InteractiveHandler(s *Session, in io.Reader, out io.Writer) HandlerFunc {
	br := bufio.NewReader(in)
	return func(err error) Outcome {
		restarts := s.Restarts()
		fmt.Fprintf(out, "condition: %v\n", err)
		if len(restarts) == 0 {
			fmt.Fprintln(out, "no restarts available")
			return Decline()
		}
		fmt.Fprintln(out, "available restarts:")
		for i, r := range restarts {
			if r.Description() != "" {
				fmt.Fprintf(out, "  [%d] %s: %s\n", i, r.Name(), r.Description())
			} else {
				fmt.Fprintf(out, "  [%d] %s\n", i, r.Name())
			}
		}
		fmt.Fprint(out, "restart> ")
		line, rerr := br.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			if rerr != nil && rerr != io.EOF {
				fmt.Fprintf(out, "\nread error: %v\n", rerr)
			}
			return Decline()
		}
		n, perr := strconv.Atoi(line)
		if perr != nil || n < 0 || n >= len(restarts) {
			fmt.Fprintf(out, "invalid restart %q\n", line)
			return Decline()
		}
		chosen := restarts[n]
		var args []any
		if chosen.prompt != nil {
			args, perr = chosen.prompt(br, out)
			if perr != nil {
				fmt.Fprintf(out, "restart %s: %v\n", chosen.Name(), perr)
				return Decline()
			}
		}
		return UseRestartEntry(chosen, args...)
	}
}

// WithInteractiveRestarts installs [InteractiveHandler] as the session's
// default handler.
func WithInteractiveRestarts(in io.Reader, out io.Writer) Option {
	return func(s *Session) {
		s.fallback = InteractiveHandler(s, in, out)
	}
}
