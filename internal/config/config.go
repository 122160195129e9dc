// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads the settings of the cond command from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Strategies understood by the divide command.
const (
	StrategyUseDefault = "use-default"
	StrategyUseValue   = "use-value"
	StrategyResume     = "resume"
	StrategyAbort      = "abort"
	StrategyReraise    = "reraise"
	StrategyPrompt     = "prompt"
	StrategyNone       = "none"
)

var strategies = map[string]bool{
	StrategyUseDefault: true,
	StrategyUseValue:   true,
	StrategyResume:     true,
	StrategyAbort:      true,
	StrategyReraise:    true,
	StrategyPrompt:     true,
	StrategyNone:       true,
}

// Config is the command configuration.
type Config struct {
	Log    Log    `toml:"log"`
	Divide Divide `toml:"divide"`
	Nested Nested `toml:"nested"`
}

// Log configures the session logger.
type Log struct {
	// Level is a slog level name: debug, info, warn or error.
	Level string `toml:"level"`

	// Format is "text" or "json".
	Format string `toml:"format"`
}

// Divide configures the divide command.
type Divide struct {
	Strategy string `toml:"strategy"`
	Default  int    `toml:"default"`
	Value    int    `toml:"value"`
}

// Nested configures the nested command.
type Nested struct {
	Declines int `toml:"declines"`
	Value    int `toml:"value"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:    Log{Level: "warn", Format: "text"},
		Divide: Divide{Strategy: StrategyUseDefault},
		Nested: Nested{Declines: 2, Value: 42},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, data)
}

// LoadFromReader reads configuration from r over the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse("<reader>", data)
}

func parse(source string, data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		return nil, pe
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if !strategies[c.Divide.Strategy] {
		return fmt.Errorf("divide.strategy: unknown strategy %q", c.Divide.Strategy)
	}
	if c.Nested.Declines < 0 {
		return fmt.Errorf("nested.declines: must not be negative, got %d", c.Nested.Declines)
	}
	return nil
}

// SlogLevel parses Level.
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
