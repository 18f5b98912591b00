package viz

import (
	"github.com/san-kum/aocviz/internal/logging"
	"github.com/san-kum/aocviz/internal/style"
)

// Visualizer is the frame sink consumed by algorithms. Writes never fail
// from the caller's point of view; sinks treat I/O errors as fatal.
type Visualizer interface {
	WriteChar(ch rune)
	WriteString(s string)
	WriteLine(s string)
	WriteNewline()
	// EndFrame seals the frame written so far and starts an empty one.
	EndFrame()
	// Enabled reports whether writes are kept.
	Enabled() bool
	// RegisterStyle binds a style to a character for all later frames.
	RegisterStyle(opt style.Option)
	// Close releases the sink. The image sink finalizes its file here.
	Close() error
}

type charWriter interface {
	WriteChar(ch rune)
}

func writeString(w charWriter, s string) {
	for _, r := range s {
		w.WriteChar(r)
	}
}

func writeLine(w charWriter, s string) {
	writeString(w, s)
	w.WriteChar('\n')
}

// Disabled discards all output.
type Disabled struct{}

var _ Visualizer = Disabled{}

func (Disabled) WriteChar(rune)             {}
func (Disabled) WriteString(string)         {}
func (Disabled) WriteLine(string)           {}
func (Disabled) WriteNewline()              {}
func (Disabled) EndFrame()                  {}
func (Disabled) Enabled() bool              { return false }
func (Disabled) RegisterStyle(style.Option) {}
func (Disabled) Close() error               { return nil }

func defaultFatal(err error) {
	logging.Must(err, "visualization failed")
}
