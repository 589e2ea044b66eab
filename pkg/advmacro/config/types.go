// Package config loads advmacro settings from defaults, an optional YAML
// file, ADVMACRO_* environment variables and command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/advmacro-go/pkg/advmacro"
	"github.com/ukaji3/advmacro-go/pkg/advmacro/macro"
)

// StructuredConfig holds the %Arg.property settings.
type StructuredConfig struct {
	Enabled                 bool   `koanf:"enabled"`
	PairSeparator           string `koanf:"pair_separator"`
	KeyValueSeparator       string `koanf:"key_value_separator"`
	OutputErrorPropertyName bool   `koanf:"output_error_property_name"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // text, json
}

// Config is the full advmacro configuration.
type Config struct {
	MacroSheets      []string         `koanf:"macro_sheets"`
	MacroSheetPrefix string           `koanf:"macro_sheet_prefix"`
	Structured       StructuredConfig `koanf:"structured"`
	Log              LogConfig        `koanf:"log"`
}

// Validate checks separators and log settings.
func (c *Config) Validate() error {
	if c.Structured.Enabled {
		if _, err := singleRune("structured.pair_separator", c.Structured.PairSeparator); err != nil {
			return err
		}
		if _, err := singleRune("structured.key_value_separator", c.Structured.KeyValueSeparator); err != nil {
			return err
		}
		if c.Structured.PairSeparator == c.Structured.KeyValueSeparator {
			return fmt.Errorf("structured.pair_separator and structured.key_value_separator must differ, both are %q",
				c.Structured.PairSeparator)
		}
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format: %s (must be text or json)", c.Log.Format)
	}
	return nil
}

// MacroStructured converts the structured section, returning nil when disabled.
func (c *Config) MacroStructured() (*macro.StructuredConfig, error) {
	if !c.Structured.Enabled {
		return nil, nil
	}
	pair, err := singleRune("structured.pair_separator", c.Structured.PairSeparator)
	if err != nil {
		return nil, err
	}
	kv, err := singleRune("structured.key_value_separator", c.Structured.KeyValueSeparator)
	if err != nil {
		return nil, err
	}
	return &macro.StructuredConfig{
		PairSeparator:           pair,
		KeyValueSeparator:       kv,
		OutputErrorPropertyName: c.Structured.OutputErrorPropertyName,
	}, nil
}

// Options builds expansion options using logger.
func (c *Config) Options(logger *slog.Logger) (advmacro.Options, error) {
	structured, err := c.MacroStructured()
	if err != nil {
		return advmacro.Options{}, err
	}
	return advmacro.Options{
		MacroSheets:      c.MacroSheets,
		MacroSheetPrefix: c.MacroSheetPrefix,
		Structured:       structured,
		Logger:           logger,
	}, nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log.level: %s (must be debug, info, warn or error)", s)
	}
	return level, nil
}

func singleRune(key, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s must be exactly one character, got %q", key, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
