package frame

import "github.com/san-kum/aocviz/internal/style"

// Builder accumulates cells for the frame being written. The zero value is
// ready to use.
type Builder struct {
	lines [][]Cell
	cur   []Cell
	open  bool
	width int
}

// Write appends r with its resolved style. A '\n' terminates the current
// line; a trailing newline does not start an extra empty line.
func (b *Builder) Write(r rune, opt *style.Option) {
	if r == '\n' {
		b.closeLine()
		return
	}
	b.cur = append(b.cur, Cell{Rune: r, Style: opt})
	b.open = true
}

func (b *Builder) closeLine() {
	if len(b.cur) > b.width {
		b.width = len(b.cur)
	}
	b.lines = append(b.lines, b.cur)
	b.cur = nil
	b.open = false
}

// Len returns the number of cells written since the last Seal.
func (b *Builder) Len() int {
	n := len(b.cur)
	for _, l := range b.lines {
		n += len(l)
	}
	return n
}

// Seal returns the written frame and resets the builder.
func (b *Builder) Seal() *Frame {
	if b.open {
		b.closeLine()
	}
	f := &Frame{lines: b.lines, width: b.width}
	*b = Builder{}
	return f
}
