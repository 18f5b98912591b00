package style

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// hintColor is used for the key legend under interactive frames.
const hintColor = "#666688"

// Painter renders styled runes as ANSI SGR sequences for one output.
type Painter struct {
	r     *lipgloss.Renderer
	cache map[Option]lipgloss.Style
	hint  lipgloss.Style
}

// NewPainter returns a painter bound to w. With trueColor set the 24-bit
// profile is forced, otherwise it is detected from w.
func NewPainter(w io.Writer, trueColor bool) *Painter {
	r := lipgloss.NewRenderer(w)
	if trueColor {
		r.SetColorProfile(termenv.TrueColor)
	}
	return &Painter{
		r:     r,
		cache: make(map[Option]lipgloss.Style),
		hint:  r.NewStyle().Foreground(lipgloss.Color(hintColor)).Italic(true),
	}
}

// Paint wraps s in the SGR codes for opt. A nil opt returns s unchanged.
func (p *Painter) Paint(s string, opt *Option) string {
	if opt == nil {
		return s
	}
	st, ok := p.cache[*opt]
	if !ok {
		st = p.r.NewStyle().Foreground(lipgloss.Color(opt.Color.Hex())).Bold(opt.Bold)
		p.cache[*opt] = st
	}
	return st.Render(s)
}

// Hint renders s in the muted key-hint style.
func (p *Painter) Hint(s string) string {
	return p.hint.Render(s)
}
