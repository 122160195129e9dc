// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"code.hybscloud.com/cond"
)

// ErrProbe is the condition signaled by the nested program.
var ErrProbe = errors.New("probe")

func newNestedCmd(a *app) *cobra.Command {
	var declines, value int
	cmd := &cobra.Command{
		Use:   "nested",
		Short: "Signal through declining handler layers until one resumes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n := a.cfg.Nested
			if cmd.Flags().Changed("declines") {
				n.Declines = declines
			}
			if cmd.Flags().Changed("value") {
				n.Value = value
			}
			if n.Declines < 0 {
				return fmt.Errorf("declines must not be negative, got %d", n.Declines)
			}
			s := a.session(cmd)
			v, visits, err := runNested(s, n.Declines, n.Value)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d (visited %s)\n", v, strings.Join(visits, " "))
			return nil
		},
	}
	cmd.Flags().IntVar(&declines, "declines", 2, "number of declining handler layers")
	cmd.Flags().IntVar(&value, "value", 42, "value the outermost handler resumes with")
	return cmd
}

// runNested nests one resuming handler around declines declining handlers
// and signals ErrProbe at the bottom. It returns the resumed value and the
// handler layers in the order they were consulted.
func runNested(s *cond.Session, declines, value int) (int, []string, error) {
	var visits []string
	var layer func(depth int) int
	layer = func(depth int) int {
		if depth == declines {
			return cond.SignalAs[int](s, ErrProbe)
		}
		name := fmt.Sprintf("decline-%d", depth)
		return cond.Handle(s, []cond.Clause{
			cond.OnError(ErrProbe, func(error) cond.Outcome {
				visits = append(visits, name)
				return cond.Decline()
			}),
		}, func() int { return layer(depth + 1) })
	}
	v, err := cond.Run(s, func() int {
		return cond.Handle(s, []cond.Clause{
			cond.OnError(ErrProbe, func(error) cond.Outcome {
				visits = append(visits, "resume")
				return cond.UseValue(value)
			}),
		}, func() int { return layer(0) })
	})
	return v, visits, err
}
