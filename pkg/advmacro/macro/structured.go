package macro

import (
	"fmt"
	"maps"
	"slices"
	"unicode/utf8"

	"github.com/ukaji3/advmacro-go/pkg/advmacro/diag"
	"github.com/ukaji3/advmacro-go/pkg/advmacro/grid"
	"github.com/ukaji3/advmacro-go/pkg/advmacro/parser"
)

// StructuredConfig enables %Arg.property references, where a single
// argument cell holds a key=value list.
type StructuredConfig struct {
	// PairSeparator separates key=value pairs.
	PairSeparator rune
	// KeyValueSeparator separates a key from its value.
	KeyValueSeparator rune
	// OutputErrorPropertyName reports references to properties that neither
	// the call site nor the macro header define.
	OutputErrorPropertyName bool
}

// DefaultStructuredConfig returns "," and "=" separators with reporting on.
func DefaultStructuredConfig() StructuredConfig {
	return StructuredConfig{
		PairSeparator:           ',',
		KeyValueSeparator:       '=',
		OutputErrorPropertyName: true,
	}
}

// properties maps argument column -> property name -> value.
type properties map[string]map[string]string

// PropertyResolver looks up %Arg.property values for one macro.
//
// Header dictionaries are parsed at most once per column and kept for the
// resolver's lifetime. Argument dictionaries belong to the current call
// site and are dropped by StartRowParse. A resolver is not safe for
// concurrent use.
type PropertyResolver struct {
	header   *grid.Row
	cfg      StructuredConfig
	reporter diag.Reporter

	headerProps properties
	argsProps   properties
}

// NewPropertyResolver creates a resolver reading defaults from header.
func NewPropertyResolver(header *grid.Row, cfg StructuredConfig, r diag.Reporter) *PropertyResolver {
	return &PropertyResolver{
		header:      header,
		cfg:         cfg,
		reporter:    diag.OrDiscard(r),
		headerProps: make(properties),
		argsProps:   make(properties),
	}
}

// StartRowParse forgets every argument dictionary. Call it once before
// expanding each call-site row.
func (p *PropertyResolver) StartRowParse() {
	clear(p.argsProps)
}

// TryGetValue returns propertyName for column key, preferring the call
// site over the macro header.
func (p *PropertyResolver) TryGetValue(key string, args *grid.Row, propertyName string) (string, bool) {
	if v, ok := p.argsProperties(args, key)[propertyName]; ok {
		return v, true
	}
	if v, ok := p.headerProperties(key)[propertyName]; ok {
		return v, true
	}
	return "", false
}

func (p *PropertyResolver) headerProperties(key string) map[string]string {
	if props, ok := p.headerProps[key]; ok {
		return props
	}
	props := p.parseRow(p.header, key)
	p.headerProps[key] = props
	return props
}

func (p *PropertyResolver) argsProperties(args *grid.Row, key string) map[string]string {
	if props, ok := p.argsProps[key]; ok {
		return props
	}
	props := p.parseRow(args, key)
	p.argsProps[key] = props
	p.detectMisspelled(props, p.headerProperties(key), args)
	return props
}

func (p *PropertyResolver) parseRow(row *grid.Row, key string) map[string]string {
	text := row.CellOptional(key, "")
	props, ok := parser.ParseKeyValueDictionary(text, p.cfg.PairSeparator, p.cfg.KeyValueSeparator, p.reporter)
	if !ok {
		p.reporter.Report(diag.Diagnostic{
			Kind:     diag.DictionaryParseFailed,
			Message:  row.ErrorString(fmt.Sprintf("Failed to parse property dictionary from '%s'", text)),
			Location: row.Location(),
		})
	}
	return props
}

// detectMisspelled reports call-site properties the header never declares.
func (p *PropertyResolver) detectMisspelled(props, headerProps map[string]string, args *grid.Row) {
	for _, name := range slices.Sorted(maps.Keys(props)) {
		if _, ok := headerProps[name]; ok {
			continue
		}
		p.reporter.Report(diag.Diagnostic{
			Kind:     diag.MisspelledPropertyName,
			Message:  args.ErrorString(fmt.Sprintf("Property '%s' not found in macro header.", name)),
			Location: args.Location(),
		})
	}
}

// Resolve expands a "%key.property" reference starting at the '%' at index.
// It returns Fail when no '.' and property name follow key, Unresolved
// when the property is unknown, and Ok otherwise.
func (p *PropertyResolver) Resolve(text string, index int, key string, args *grid.Row) Result {
	dot := index + 1 + len(key)
	if dot >= len(text) || text[dot] != '.' {
		return Fail(index)
	}

	start := dot + 1
	end := start
	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if !parser.IsNameRune(r) {
			break
		}
		end += size
	}
	if end == start {
		return Fail(index)
	}

	propertyName := text[start:end]
	if v, ok := p.TryGetValue(key, args, propertyName); ok {
		return Ok(v, end)
	}

	if p.cfg.OutputErrorPropertyName {
		p.reporter.Report(diag.Diagnostic{
			Kind:     diag.UnknownStructuredProperty,
			Message:  args.ErrorString(fmt.Sprintf("Property '%s' not found in macro arguments or header.", propertyName)),
			Location: args.Location(),
		})
	}
	return Unresolved(index)
}
