// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cond.toml")
	data := `
[log]
level = "debug"
format = "json"

[divide]
strategy = "use-value"
value = 7
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	want.Log = Log{Level: "debug", Format: "json"}
	want.Divide.Strategy = StrategyUseValue
	want.Divide.Value = 7
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	lvl, err := cfg.Log.SlogLevel()
	if err != nil {
		t.Fatal(err)
	}
	if lvl != slog.LevelDebug {
		t.Fatalf("got level %v, want %v", lvl, slog.LevelDebug)
	}
}

func TestLoadFromReaderRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"syntax", "[divide\nstrategy = 1", "parse error"},
		{"unknown key", "[divide]\nspeed = 3\n", "parse error"},
		{"bad strategy", "[divide]\nstrategy = \"retry\"\n", "unknown strategy"},
		{"bad level", "[log]\nlevel = \"loud\"\n", "log.level"},
		{"bad format", "[log]\nformat = \"xml\"\n", "unknown format"},
		{"negative declines", "[nested]\ndeclines = -1\n", "must not be negative"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFromReader(strings.NewReader(tc.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("got %q, want it to contain %q", err, tc.want)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("[log]\nlevel = = 1\n"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("got %v, want *ParseError", err)
	}
	if pe.Line != 2 {
		t.Fatalf("got line %d, want 2", pe.Line)
	}
	if pe.Unwrap() == nil {
		t.Fatal("ParseError should wrap the decoder error")
	}
}
