package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLines(t *testing.T) {
	assert.Equal(t, "a\nb", Lines([]string{"a", "b"}))
	assert.Equal(t, "  a,\n  b", Lines([]string{"a", "b"}, Depth(2), Separator(",")))
	assert.Equal(t, "    x: {\n      y\n    }", Lines([]string{"x: {\n  y\n}"}, Depth(4)))
	assert.Equal(t, "  a\n\n  b", Lines([]string{"a", Blank(), "b"}, Depth(2)))
	assert.Equal(t, "", Lines(nil))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n\n  b", Indent(2, "a\n\nb"))
	assert.Equal(t, "a", Indent(0, "a"))
}

func TestQuoteAndFilter(t *testing.T) {
	assert.Equal(t, `'it\'s'`, Quote("it's"))
	assert.Equal(t, []string{"a", "c"}, Filter("a", "", "c"))
}
