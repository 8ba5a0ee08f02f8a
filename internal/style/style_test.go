package style

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaint_NonTerminalIsPlain(t *testing.T) {
	var buf bytes.Buffer

	p := For(&buf)

	for _, s := range []Style{Link, Command, WarningPrefix, ErrorPrefix, Success} {
		assert.Equal(t, "text", p.Paint(s, "text"))
	}
}

func TestPaint_NilPainter(t *testing.T) {
	var p *Painter

	assert.Equal(t, "WARN:", p.Paint(WarningPrefix, "WARN:"))
}

func TestIsNoColorSet(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.True(t, IsNoColorSet())
}
