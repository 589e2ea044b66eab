package parser

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ukaji3/advmacro-go/pkg/advmacro/diag"
)

// kvCursor walks a key=value list one rune at a time.
type kvCursor struct {
	text []rune
	pos  int
}

func (c *kvCursor) done() bool { return c.pos >= len(c.text) }

func (c *kvCursor) peek() rune { return c.text[c.pos] }

func (c *kvCursor) skipSpace() {
	for !c.done() && unicode.IsSpace(c.peek()) {
		c.pos++
	}
}

// skipToNextPair moves past the next pair separator, or to the end.
func (c *kvCursor) skipToNextPair(sep rune) {
	for !c.done() && c.peek() != sep {
		c.pos++
	}
	if !c.done() {
		c.pos++
	}
}

func (c *kvCursor) readName() string {
	start := c.pos
	for !c.done() && IsNameRune(c.peek()) {
		c.pos++
	}
	return string(c.text[start:c.pos])
}

func (c *kvCursor) readValue(sep rune) string {
	start := c.pos
	for !c.done() && c.peek() != sep {
		c.pos++
	}
	return strings.TrimSpace(string(c.text[start:c.pos]))
}

// IsNameRune reports whether r may appear in a property or key name.
func IsNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// ParseKeyValueDictionary parses text such as "x=1, y=2" into a map.
//
// Keys are runs of letters, digits and underscores. Values run to the next
// pairSep and are trimmed; they are never unquoted or converted. A key with
// no keyValueSep is dropped silently. A repeated key keeps the later value,
// is reported to r, and makes the result false. The returned map is always
// usable.
func ParseKeyValueDictionary(text string, pairSep, keyValueSep rune, r diag.Reporter) (map[string]string, bool) {
	dict := make(map[string]string)
	if text == "" {
		return dict, true
	}
	r = diag.OrDiscard(r)

	ok := true
	c := &kvCursor{text: []rune(text)}
	for !c.done() {
		c.skipSpace()
		if c.done() {
			break
		}

		name := c.readName()
		if name == "" {
			c.pos++
			continue
		}

		c.skipSpace()
		if c.done() || c.peek() != keyValueSep {
			c.skipToNextPair(pairSep)
			continue
		}
		c.pos++

		c.skipSpace()
		value := c.readValue(pairSep)

		if prev, exists := dict[name]; exists {
			r.Report(diag.Diagnostic{
				Kind: diag.DuplicatePropertyKey,
				Message: fmt.Sprintf("Duplicate property key detected: '%s'. Previous value: '%s', New value: '%s'",
					name, prev, value),
			})
			ok = false
		}
		dict[name] = value

		if !c.done() && c.peek() == pairSep {
			c.pos++
		}
	}

	return dict, ok
}
