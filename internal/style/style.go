// Package style paints terminal output. Styles are rendered against the
// writer they are destined for, so anything that is not a color-capable
// terminal receives the plain text unchanged.
package style

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Style names a kind of highlighted text.
type Style int

const (
	Link Style = iota
	Command
	WarningPrefix
	ErrorPrefix
	Success
)

var disabled atomic.Bool

// Disable turns painting off for the rest of the process (--no-color).
func Disable() {
	disabled.Store(true)
}

// IsNoColorSet reports whether NO_COLOR is set or painting was disabled.
func IsNoColorSet() bool {
	if disabled.Load() {
		return true
	}

	_, ok := os.LookupEnv("NO_COLOR")

	return ok
}

// Painter renders styles for a single writer.
type Painter struct {
	renderer *lipgloss.Renderer
}

// For returns a Painter bound to w.
func For(w io.Writer) *Painter {
	return &Painter{renderer: lipgloss.NewRenderer(w)}
}

// Paint renders text with the given style. Plain text is returned when color
// is off.
func (p *Painter) Paint(s Style, text string) string {
	if p == nil || IsNoColorSet() {
		return text
	}

	return p.style(s).Render(text)
}

func (p *Painter) style(s Style) lipgloss.Style {
	st := p.renderer.NewStyle()

	switch s {
	case Link:
		return st.Foreground(lipgloss.Color("86"))
	case Command:
		return st.Foreground(lipgloss.Color("220")).Bold(true)
	case WarningPrefix:
		return st.Foreground(lipgloss.Color("214")).Bold(true)
	case ErrorPrefix:
		return st.Foreground(lipgloss.Color("196")).Bold(true)
	case Success:
		return st.Foreground(lipgloss.Color("42"))
	default:
		return st
	}
}
