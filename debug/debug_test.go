package debug

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitWriter(t *testing.T) {
	t.Cleanup(func() { Init(false) })

	var buf bytes.Buffer
	InitWriter(true, &buf)
	assert.True(t, Enabled())
	Debug("loaded schema", "models", 4)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), `msg="loaded schema" models=4`)

	buf.Reset()
	InitWriter(false, &buf)
	assert.False(t, Enabled())
	Warn("dropped")
	assert.Empty(t, buf.String())
}
