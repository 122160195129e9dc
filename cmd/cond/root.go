// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"code.hybscloud.com/cond"
	"code.hybscloud.com/cond/internal/config"
)

// app carries state shared by subcommands.
type app struct {
	configPath string
	verbose    bool
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "cond",
		Short:         "Run condition and restart demonstrations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if a.verbose {
				cfg.Log.Level = "debug"
			}
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "cond.toml", "path to TOML configuration")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log dispatch at debug level to stderr")

	root.AddCommand(newDivideCmd(a), newNestedCmd(a))
	return root
}

// logger builds the session logger from the loaded configuration.
func (a *app) logger(w io.Writer) *slog.Logger {
	lvl, _ := a.cfg.Log.SlogLevel()
	opts := &slog.HandlerOptions{Level: lvl}
	if a.cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// session creates a session logging to the command's error stream.
func (a *app) session(cmd *cobra.Command, opts ...cond.Option) *cond.Session {
	opts = append([]cond.Option{cond.WithLogger(a.logger(cmd.ErrOrStderr()))}, opts...)
	return cond.NewSession(opts...)
}
