package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/advmacro-go/pkg/advmacro/diag"
)

func TestParseKeyValueDictionary(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		pairSep  rune
		kvSep    rune
		expected map[string]string
	}{
		{"empty", "", ',', '=', map[string]string{}},
		{"simple", "x=1,y=2", ',', '=', map[string]string{"x": "1", "y": "2"}},
		{"whitespace", "  x = 1 ,  y=  two words  ", ',', '=', map[string]string{"x": "1", "y": "two words"}},
		{"colon separator keeps quotes", `x:1,y:2,z:"foo"`, ',', ':', map[string]string{"x": "1", "y": "2", "z": `"foo"`}},
		{"semicolon pairs", "a=1;b=2", ';', '=', map[string]string{"a": "1", "b": "2"}},
		{"missing separator dropped", "x,y=2", ',', '=', map[string]string{"y": "2"}},
		{"key with space dropped", "a b=1,c=3", ',', '=', map[string]string{"c": "3"}},
		{"stray separators", ",,=,x=1,", ',', '=', map[string]string{"x": "1"}},
		{"empty value", "x=,y=2", ',', '=', map[string]string{"x": "", "y": "2"}},
		{"value keeps kv separator", "url=a=b,n=1", ',', '=', map[string]string{"url": "a=b", "n": "1"}},
		{"underscore and digits", "pos_x1=10", ',', '=', map[string]string{"pos_x1": "10"}},
		{"unicode key", "色=赤", ',', '=', map[string]string{"色": "赤"}},
		{"trailing key", "x=1,y", ',', '=', map[string]string{"x": "1"}},
		{"only spaces", "   ", ',', '=', map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &diag.Collector{}
			got, ok := ParseKeyValueDictionary(tt.text, tt.pairSep, tt.kvSep, c)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, got)
			assert.Empty(t, c.Diagnostics)
		})
	}
}

func TestParseKeyValueDictionary_Duplicate(t *testing.T) {
	c := &diag.Collector{}
	got, ok := ParseKeyValueDictionary("x=1,x=2", ',', '=', c)

	assert.False(t, ok)
	assert.Equal(t, map[string]string{"x": "2"}, got)
	require.Len(t, c.Diagnostics, 1)
	assert.Equal(t, diag.DuplicatePropertyKey, c.Diagnostics[0].Kind)
	assert.Contains(t, c.Diagnostics[0].Message, "'1'")
	assert.Contains(t, c.Diagnostics[0].Message, "'2'")
}

func TestParseKeyValueDictionary_NilReporter(t *testing.T) {
	got, ok := ParseKeyValueDictionary("a=1,a=3", ',', '=', nil)
	assert.False(t, ok)
	assert.Equal(t, "3", got["a"])
}

func TestIsNameRune(t *testing.T) {
	assert.True(t, IsNameRune('a'))
	assert.True(t, IsNameRune('9'))
	assert.True(t, IsNameRune('_'))
	assert.True(t, IsNameRune('あ'))
	assert.False(t, IsNameRune('.'))
	assert.False(t, IsNameRune('-'))
	assert.False(t, IsNameRune(' '))
}
