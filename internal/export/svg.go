// Package export writes frames to vector formats.
package export

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/san-kum/aocviz/internal/frame"
	"github.com/san-kum/aocviz/internal/style"
)

const (
	background = "#000000"
	// unstyled is the color the rasterizer gives unstyled glyphs.
	unstyled = "#ffffff"
)

// FrameSVG writes f as an SVG document with one text element per visible
// character. cell is the cell height in pixels; cells are 0.6 as wide. When
// styles is nil the styles stored in the cells are used.
func FrameSVG(w io.Writer, f *frame.Frame, styles style.Resolver, cell float64) error {
	if cell <= 0 {
		cell = 16
	}
	cellW := cell * 0.6
	width := cellW * float64(f.Width())
	height := cell * float64(f.Height())

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g font-family="monospace" font-size="%.1f" text-anchor="middle">
`, width, height, width, height, background, cell*0.9)

	for row := 0; row < f.Height(); row++ {
		for col, c := range f.Line(row) {
			if c.Rune == ' ' {
				continue
			}
			fill, bold := unstyled, false
			if opt := resolve(c, styles); opt != nil {
				fill, bold = opt.Color.Hex(), opt.Bold
			}
			x := cellW*float64(col) + cellW/2
			y := cell*float64(row) + cell*0.8
			weight := ""
			if bold {
				weight = ` font-weight="bold"`
			}
			fmt.Fprintf(bw, `<text x="%.1f" y="%.1f" fill="%s"%s>%s</text>
`, x, y, fill, weight, html.EscapeString(string(c.Rune)))
		}
	}

	bw.WriteString("</g>\n</svg>\n")
	return bw.Flush()
}

func resolve(c frame.Cell, styles style.Resolver) *style.Option {
	if styles == nil {
		return c.Style
	}
	if opt, ok := styles.Resolve(c.Rune); ok {
		return &opt
	}
	return nil
}
