// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"code.hybscloud.com/cond"
	"code.hybscloud.com/cond/internal/config"
)

// ErrDivideByZero is the condition signaled by divide.
var ErrDivideByZero = errors.New("divide by zero")

// quotient is the result of the divide program. ok is false when a
// handler aborted the division.
type quotient struct {
	n  int
	ok bool
}

func newDivideCmd(a *app) *cobra.Command {
	var strategy string
	var value, def int
	cmd := &cobra.Command{
		Use:   "divide <a> <b>",
		Short: "Divide two integers, recovering from division by zero",
		Long: `Divide two integers. Division by zero signals a condition inside a
frame offering the restarts use-default and use-value. The strategy
selects the handler installed around the division:

  use-default  invoke the use-default restart
  use-value    invoke the use-value restart with --value
  resume       resume the signal with --value
  abort        return from the handler scope without a result
  reraise      give up; the condition becomes an ordinary error
  prompt       choose a restart interactively
  none         install no handler`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("dividend: %w", err)
			}
			y, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("divisor: %w", err)
			}
			d := a.cfg.Divide
			if cmd.Flags().Changed("strategy") {
				d.Strategy = strategy
			}
			if cmd.Flags().Changed("value") {
				d.Value = value
			}
			if cmd.Flags().Changed("default") {
				d.Default = def
			}
			return runDivide(cmd, a, d, x, y)
		},
	}
	cmd.Flags().StringVar(&strategy, "strategy", config.StrategyUseDefault, "recovery strategy")
	cmd.Flags().IntVar(&value, "value", 0, "value for use-value and resume")
	cmd.Flags().IntVar(&def, "default", 0, "value returned by the use-default restart")
	return cmd
}

func runDivide(cmd *cobra.Command, a *app, d config.Divide, x, y int) error {
	var opts []cond.Option
	if d.Strategy == config.StrategyPrompt {
		opts = append(opts, cond.WithInteractiveRestarts(cmd.InOrStdin(), cmd.OutOrStdout()))
	}
	s := a.session(cmd, opts...)

	clauses, err := divideClauses(d)
	if err != nil {
		return err
	}
	q, err := cond.Run(s, func() quotient {
		return cond.Handle(s, clauses, func() quotient {
			return quotient{n: divide(s, x, y, d.Default), ok: true}
		})
	})
	if err != nil {
		return err
	}
	if !q.ok {
		fmt.Fprintln(cmd.OutOrStdout(), "aborted")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), q.n)
	return nil
}

func divideClauses(d config.Divide) ([]cond.Clause, error) {
	var out cond.Outcome
	switch d.Strategy {
	case config.StrategyUseDefault:
		out = cond.UseRestart("use-default")
	case config.StrategyUseValue:
		out = cond.UseRestart("use-value", d.Value)
	case config.StrategyResume:
		out = cond.UseValue(d.Value)
	case config.StrategyAbort:
		out = cond.ReturnValue(quotient{})
	case config.StrategyReraise:
		out = cond.Reraise()
	case config.StrategyPrompt, config.StrategyNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", d.Strategy)
	}
	return []cond.Clause{
		cond.OnError(ErrDivideByZero, func(error) cond.Outcome { return out }),
	}, nil
}

// divide returns x/y. A zero divisor signals ErrDivideByZero; the signal
// may be resumed with a quotient, or a restart may supply one.
func divide(s *cond.Session, x, y, def int) int {
	return cond.WithRestarts(s, []cond.Restart[int]{
		{
			Name:        "use-default",
			Description: fmt.Sprintf("return %d", def),
			Invoke:      func(...any) int { return def },
		},
		{
			Name:        "use-value",
			Description: "return a value of your choice",
			Invoke: func(args ...any) int {
				if len(args) == 0 {
					return def
				}
				return args[0].(int)
			},
			Prompt: promptInt,
		},
	}, func() int {
		if y == 0 {
			return cond.SignalAs[int](s, ErrDivideByZero)
		}
		return x / y
	})
}

func promptInt(in *bufio.Reader, out io.Writer) ([]any, error) {
	fmt.Fprint(out, "value> ")
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return nil, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, err
	}
	return []any{n}, nil
}
