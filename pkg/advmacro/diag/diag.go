// Package diag carries non-fatal diagnostics produced while expanding macros.
package diag

import (
	"context"
	"log/slog"
)

// Kind classifies a diagnostic.
type Kind string

const (
	// DuplicatePropertyKey: a key appeared twice in one key=value list.
	DuplicatePropertyKey Kind = "duplicate_property_key"
	// DictionaryParseFailed: a cell's key=value list did not parse cleanly.
	DictionaryParseFailed Kind = "dictionary_parse_failed"
	// MisspelledPropertyName: a call site names a property the macro header does not declare.
	MisspelledPropertyName Kind = "misspelled_property_name"
	// UnknownStructuredProperty: %Arg.prop names a property found nowhere.
	UnknownStructuredProperty Kind = "unknown_structured_property"
)

// Diagnostic is one message for the author.
type Diagnostic struct {
	Kind     Kind   `json:"kind" yaml:"kind"`
	Message  string `json:"message" yaml:"message"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

// Reporter receives diagnostics. Implementations must not fail.
type Reporter interface {
	Report(d Diagnostic)
}

// Discard drops every diagnostic.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(Diagnostic) {}

// LogReporter writes diagnostics to a slog.Logger at error level.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a reporter for logger, or for slog.Default() when nil.
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger}
}

// Report implements Reporter.
func (r *LogReporter) Report(d Diagnostic) {
	attrs := []slog.Attr{slog.String("kind", string(d.Kind))}
	if d.Location != "" {
		attrs = append(attrs, slog.String("location", d.Location))
	}
	r.logger.LogAttrs(context.Background(), slog.LevelError, d.Message, attrs...)
}

// Collector keeps diagnostics in arrival order.
type Collector struct {
	Diagnostics []Diagnostic
}

// Report implements Reporter.
func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// Count returns the number of collected diagnostics of kind k.
func (c *Collector) Count(k Kind) int {
	n := 0
	for _, d := range c.Diagnostics {
		if d.Kind == k {
			n++
		}
	}
	return n
}

// Multi fans a diagnostic out to several reporters.
func Multi(reporters ...Reporter) Reporter {
	return multi(reporters)
}

type multi []Reporter

func (m multi) Report(d Diagnostic) {
	for _, r := range m {
		if r != nil {
			r.Report(d)
		}
	}
}

// OrDiscard returns r, or Discard when r is nil.
func OrDiscard(r Reporter) Reporter {
	if r == nil {
		return Discard
	}
	return r
}
