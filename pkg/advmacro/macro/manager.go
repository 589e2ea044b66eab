package macro

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ukaji3/advmacro-go/pkg/advmacro/diag"
	"github.com/ukaji3/advmacro-go/pkg/advmacro/grid"
)

// CommandColumn is the column that names a row's command.
const CommandColumn = "Command"

// EndMacroCommand closes a macro on a macro sheet.
const EndMacroCommand = "EndMacro"

var (
	// ErrDuplicateMacro indicates a macro name is already registered.
	ErrDuplicateMacro = errors.New("duplicate macro")
	// ErrUnterminatedMacro indicates a macro without EndMacro.
	ErrUnterminatedMacro = errors.New("missing " + EndMacroCommand)
	// ErrNestedMacro indicates a macro header inside another macro's body.
	ErrNestedMacro = errors.New("macro declared inside another macro")
	// ErrEmptyMacroName indicates a "[]" header.
	ErrEmptyMacroName = errors.New("empty macro name")
	// ErrStrayEndMacro indicates EndMacro outside any macro.
	ErrStrayEndMacro = errors.New(EndMacroCommand + " without macro")
)

// DefinitionError locates a macro sheet problem.
type DefinitionError struct {
	Location string
	Macro    string
	Err      error
}

func (e *DefinitionError) Error() string {
	if e.Macro != "" {
		return fmt.Sprintf("%s: macro %q: %v", e.Location, e.Macro, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Location, e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// Manager is a macro namespace.
type Manager struct {
	structured *StructuredConfig
	reporter   diag.Reporter
	macros     map[string]*Definition
}

// NewManager creates an empty namespace. Definitions created by AddSheet
// share structured and r.
func NewManager(structured *StructuredConfig, r diag.Reporter) *Manager {
	return &Manager{
		structured: structured,
		reporter:   diag.OrDiscard(r),
		macros:     make(map[string]*Definition),
	}
}

// Add registers d.
func (m *Manager) Add(d *Definition) error {
	if d.Name == "" {
		return ErrEmptyMacroName
	}
	if _, exists := m.macros[d.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateMacro, d.Name)
	}
	m.macros[d.Name] = d
	return nil
}

// Get returns the macro called name.
func (m *Manager) Get(name string) (*Definition, bool) {
	d, ok := m.macros[name]
	return d, ok
}

// Names returns the registered macro names sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.macros))
	for name := range m.macros {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered macros.
func (m *Manager) Len() int {
	return len(m.macros)
}

// parseMacroHeader returns the name in a "[Name]" command cell.
func parseMacroHeader(command string) (string, bool) {
	command = strings.TrimSpace(command)
	if len(command) < 2 || command[0] != '[' || command[len(command)-1] != ']' {
		return "", false
	}
	return strings.TrimSpace(command[1 : len(command)-1]), true
}

// AddSheet registers every macro declared on a macro sheet. Rows outside
// a [Name] ... EndMacro block are ignored. Nothing is registered when an
// error is returned.
func (m *Manager) AddSheet(g *grid.Grid) error {
	var (
		defs   []*Definition
		header *grid.Row
		name   string
		body   []*grid.Row
	)

	for _, row := range g.Rows {
		command := strings.TrimSpace(row.CellOptional(CommandColumn, ""))

		if n, ok := parseMacroHeader(command); ok {
			if header != nil {
				return &DefinitionError{Location: row.Location(), Macro: name, Err: ErrNestedMacro}
			}
			if n == "" {
				return &DefinitionError{Location: row.Location(), Err: ErrEmptyMacroName}
			}
			header, name, body = row, n, nil
			continue
		}

		if command == EndMacroCommand {
			if header == nil {
				return &DefinitionError{Location: row.Location(), Err: ErrStrayEndMacro}
			}
			defs = append(defs, NewDefinition(name, header, body, m.structured, m.reporter))
			header, name, body = nil, "", nil
			continue
		}

		if header != nil {
			body = append(body, row)
		}
	}

	if header != nil {
		return &DefinitionError{Location: header.Location(), Macro: name, Err: ErrUnterminatedMacro}
	}

	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		if _, exists := m.macros[d.Name]; exists || seen[d.Name] {
			return &DefinitionError{Location: d.Header.Location(), Macro: d.Name, Err: ErrDuplicateMacro}
		}
		seen[d.Name] = true
	}
	for _, d := range defs {
		m.macros[d.Name] = d
	}
	return nil
}

// TryExpand expands row when its command names a registered macro.
func (m *Manager) TryExpand(row *grid.Row, debugLabel string) ([]*grid.Row, bool) {
	d, ok := m.macros[strings.TrimSpace(row.CellOptional(CommandColumn, ""))]
	if !ok {
		return nil, false
	}
	return d.Expand(row, debugLabel), true
}

// ExpandGrid expands every macro call in g in a single pass. Rows produced
// by an expansion are not expanded again.
func (m *Manager) ExpandGrid(g *grid.Grid) []*grid.Row {
	out := make([]*grid.Row, 0, len(g.Rows))
	for _, row := range g.Rows {
		if expanded, ok := m.TryExpand(row, row.Location()); ok {
			out = append(out, expanded...)
			continue
		}
		out = append(out, row)
	}
	return out
}
