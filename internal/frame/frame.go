// Package frame holds the character grids produced between two end-of-frame
// calls.
package frame

import (
	"slices"
	"strings"

	"github.com/san-kum/aocviz/internal/style"
)

// Cell is one character with the style resolved when it was written.
type Cell struct {
	Rune  rune
	Style *style.Option
}

// Frame is a sealed, read-only grid of cells.
type Frame struct {
	lines [][]Cell
	width int
}

// Height returns the number of lines.
func (f *Frame) Height() int {
	if f == nil {
		return 0
	}
	return len(f.lines)
}

// Width returns the length of the longest line in cells.
func (f *Frame) Width() int {
	if f == nil {
		return 0
	}
	return f.width
}

// Empty reports whether the frame holds no characters.
func (f *Frame) Empty() bool {
	return f.Width() == 0
}

// Line returns a copy of line i.
func (f *Frame) Line(i int) []Cell {
	if i < 0 || i >= f.Height() {
		return nil
	}
	return slices.Clone(f.lines[i])
}

// At returns the cell at (row, col) and whether it exists.
func (f *Frame) At(row, col int) (Cell, bool) {
	if row < 0 || row >= f.Height() {
		return Cell{}, false
	}
	line := f.lines[row]
	if col < 0 || col >= len(line) {
		return Cell{}, false
	}
	return line[col], true
}

// String returns the frame's characters without styling, one line per row.
func (f *Frame) String() string {
	var b strings.Builder
	for _, line := range f.lines {
		for _, c := range line {
			b.WriteRune(c.Rune)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Normalize returns a copy of f resized to width x height: short lines are
// padded with unstyled spaces, missing lines are blank, extra lines and
// columns are dropped.
func (f *Frame) Normalize(width, height int) *Frame {
	lines := make([][]Cell, height)
	for i := range lines {
		line := make([]Cell, width)
		var n int
		if i < f.Height() {
			n = copy(line, f.lines[i])
		}
		for j := n; j < width; j++ {
			line[j] = Cell{Rune: ' '}
		}
		lines[i] = line
	}
	if height == 0 {
		width = 0
	}
	return &Frame{lines: lines, width: width}
}

// FromString builds an unstyled frame from text.
func FromString(s string) *Frame {
	var b Builder
	for _, r := range s {
		b.Write(r, nil)
	}
	return b.Seal()
}
