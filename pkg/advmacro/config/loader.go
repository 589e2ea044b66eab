package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/ukaji3/advmacro-go/pkg/advmacro"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "advmacro.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "advmacro.yml"

// EnvPrefix prefixes environment overrides. A double underscore separates
// nesting levels: ADVMACRO_STRUCTURED__PAIR_SEPARATOR.
const EnvPrefix = "ADVMACRO_"

// flagKeys maps command-line flag names to config keys. --no-structured
// is handled separately because it inverts structured.enabled.
var flagKeys = map[string]string{
	"macro-sheet":        "macro_sheets",
	"macro-sheet-prefix": "macro_sheet_prefix",
	"log-level":          "log.level",
	"log-format":         "log.format",
}

func defaults() map[string]any {
	return map[string]any{
		"macro_sheet_prefix":                    advmacro.DefaultMacroSheetPrefix,
		"structured.enabled":                    true,
		"structured.pair_separator":             ",",
		"structured.key_value_separator":        "=",
		"structured.output_error_property_name": true,
		"log.level":                             "info",
		"log.format":                            "text",
	}
}

// findConfigFile finds the config file to use.
// Priority: explicit path > advmacro.yaml > advmacro.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	if _, err := os.Stat(ConfigFileNameAlt); err == nil {
		return ConfigFileNameAlt
	}
	return ""
}

// Load loads configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			if f.Name == "no-structured" {
				off, _ := flags.GetBool(f.Name)
				return "structured.enabled", !off
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps ADVMACRO_STRUCTURED__PAIR_SEPARATOR to structured.pair_separator.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

// RegisterFlags defines the flags Load understands on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringSlice("macro-sheet", nil, "Sheet holding macro definitions (repeatable, default: sheets named Macro*)")
	fs.String("macro-sheet-prefix", advmacro.DefaultMacroSheetPrefix, "Name prefix of macro sheets when --macro-sheet is not given")
	fs.Bool("no-structured", false, "Disable %Arg.property references")
	fs.String("log-level", "info", "Log level: debug, info, warn, error")
	fs.String("log-format", "text", "Log format: text, json")
}
