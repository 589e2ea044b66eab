// Package macro expands macro call rows into the rows of the macro body.
//
// A macro is declared on a macro sheet: a header row names the macro and
// holds the parameter defaults, and the body rows reference parameters as
// %Column. With structured support enabled a parameter cell may hold a
// key=value list whose entries are referenced as %Column.key.
package macro

import (
	"fmt"
	"strings"

	"github.com/ukaji3/advmacro-go/pkg/advmacro/diag"
	"github.com/ukaji3/advmacro-go/pkg/advmacro/grid"
)

// propertySupport is either noStructuredSupport or structuredSupport.
type propertySupport interface {
	isPropertySupport()
}

type noStructuredSupport struct{}

type structuredSupport struct {
	resolver *PropertyResolver
}

func (noStructuredSupport) isPropertySupport() {}
func (structuredSupport) isPropertySupport()   {}

// Definition is one macro. It is built once when its sheet is loaded and
// its header and body are never modified afterwards.
type Definition struct {
	// Name is the macro name, unique within a Manager.
	Name string
	// Header holds parameter defaults keyed by column name.
	Header *grid.Row
	// Body holds the unexpanded rows in order.
	Body []*grid.Row

	support propertySupport
}

// NewDefinition creates a macro. A nil structured config disables
// %Arg.property references. Diagnostics go to r, which may be nil.
func NewDefinition(name string, header *grid.Row, body []*grid.Row, structured *StructuredConfig, r diag.Reporter) *Definition {
	d := &Definition{
		Name:    name,
		Header:  header,
		Body:    body,
		support: noStructuredSupport{},
	}
	if structured != nil {
		d.support = structuredSupport{resolver: NewPropertyResolver(header, *structured, r)}
	}
	return d
}

// Structured reports whether %Arg.property references are enabled.
func (d *Definition) Structured() bool {
	_, ok := d.support.(structuredSupport)
	return ok
}

// Parameters returns the header column names in declaration order.
func (d *Definition) Parameters() []string {
	return d.Header.Grid().Columns()
}

// Expand produces one row per body row for the call site args.
// Output rows belong to args' grid and are as wide as it is. debugLabel
// is combined with each body row's sheet line to form the row's DebugInfo.
func (d *Definition) Expand(args *grid.Row, debugLabel string) []*grid.Row {
	var rows []*grid.Row
	if len(d.Body) == 0 {
		return rows
	}

	if s, ok := d.support.(structuredSupport); ok {
		s.resolver.StartRowParse()
	}

	target := args.Grid()
	width := target.Width()
	columns := target.Columns()

	for _, data := range d.Body {
		cells := make([]string, width)
		for _, col := range columns {
			i, _ := target.ColumnIndex(col)
			cells[i] = d.substitute(data.CellOptional(col, ""), args)
		}

		row := grid.NewRow(target, args.Index(), cells)
		row.DebugInfo = fmt.Sprintf("%s : %d ", debugLabel, data.Index()+1)
		rows = append(rows, row)
	}

	return rows
}

// substitute replaces every %Column reference in text.
func (d *Definition) substitute(text string, args *grid.Row) string {
	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for i < len(text) {
		if text[i] != '%' {
			b.WriteByte(text[i])
			i++
			continue
		}

		key, ok := d.matchColumn(text, i)
		if !ok {
			b.WriteByte('%')
			i++
			continue
		}

		res := d.expandArgument(text, i, key, args)
		if res.Unresolved {
			b.WriteByte('%')
			i++
			continue
		}
		b.WriteString(res.Expanded)
		i = res.NewIndex
	}

	return b.String()
}

// matchColumn finds the first header column whose name follows the '%' at
// index. Columns are tried in declaration order, so when one name is a
// prefix of another the earlier column wins.
func (d *Definition) matchColumn(text string, index int) (string, bool) {
	rest := text[index+1:]
	for _, key := range d.Parameters() {
		if strings.HasPrefix(rest, key) {
			return key, true
		}
	}
	return "", false
}

// expandArgument expands the reference to key at index, trying a
// structured property first when enabled.
func (d *Definition) expandArgument(text string, index int, key string, args *grid.Row) Result {
	switch s := d.support.(type) {
	case structuredSupport:
		res := s.resolver.Resolve(text, index, key, args)
		if res.Success || res.Unresolved {
			return res
		}
	case noStructuredSupport:
	}

	def := d.Header.CellOptional(key, "")
	return Ok(args.CellOptional(key, def), index+1+len(key))
}
