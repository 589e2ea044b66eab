// Package advmacro expands scenario macros authored in Excel workbooks.
package advmacro

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/ukaji3/advmacro-go/pkg/advmacro/macro"
)

// DefaultMacroSheetPrefix marks macro sheets when no explicit list is given.
const DefaultMacroSheetPrefix = "Macro"

// Options configures expansion behavior.
type Options struct {
	// MacroSheets names the sheets holding macro definitions.
	// If empty, sheets whose name starts with MacroSheetPrefix are used.
	MacroSheets []string
	// MacroSheetPrefix selects macro sheets when MacroSheets is empty.
	MacroSheetPrefix string
	// Structured enables %Arg.property references. Nil disables them.
	Structured *macro.StructuredConfig
	// Logger receives diagnostics and progress. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default expansion options.
func DefaultOptions() Options {
	cfg := macro.DefaultStructuredConfig()
	return Options{
		MacroSheetPrefix: DefaultMacroSheetPrefix,
		Structured:       &cfg,
	}
}

// IsMacroSheet reports whether sheetName holds macro definitions.
func (o Options) IsMacroSheet(sheetName string) bool {
	if len(o.MacroSheets) > 0 {
		return slices.Contains(o.MacroSheets, sheetName)
	}
	return o.MacroSheetPrefix != "" && strings.HasPrefix(sheetName, o.MacroSheetPrefix)
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
