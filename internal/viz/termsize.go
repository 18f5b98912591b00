package viz

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// SizeFunc reports the terminal size in cells. ok is false when the output
// is not a terminal, in which case frames are not clipped.
type SizeFunc func() (cols, rows int, ok bool)

func fileSize(f *os.File) SizeFunc {
	return func() (int, int, bool) {
		fd := f.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			return 0, 0, false
		}
		cols, rows, err := term.GetSize(int(fd))
		if err != nil || cols <= 0 || rows <= 0 {
			return 0, 0, false
		}
		return cols, rows, true
	}
}

func noSize() (int, int, bool) { return 0, 0, false }

// FixedSize returns a SizeFunc for a terminal of cols x rows.
func FixedSize(cols, rows int) SizeFunc {
	return func() (int, int, bool) { return cols, rows, true }
}
