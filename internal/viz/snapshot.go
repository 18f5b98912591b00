package viz

import (
	"github.com/san-kum/aocviz/internal/frame"
	"github.com/san-kum/aocviz/internal/style"
)

// Snapshot forwards to another Visualizer and keeps the last sealed frame
// with its styles. It always reports enabled so that algorithms draw even
// when the wrapped sink discards.
type Snapshot struct {
	Visualizer
	styles *style.Registry
	cur    frame.Builder
	last   *frame.Frame
	frames int
}

func NewSnapshot(v Visualizer) *Snapshot {
	return &Snapshot{Visualizer: v, styles: style.NewRegistry()}
}

func (s *Snapshot) WriteChar(ch rune) {
	if opt, ok := s.styles.Resolve(ch); ok {
		s.cur.Write(ch, &opt)
	} else {
		s.cur.Write(ch, nil)
	}
	s.Visualizer.WriteChar(ch)
}

func (s *Snapshot) WriteString(v string) { writeString(s, v) }
func (s *Snapshot) WriteLine(v string)   { writeLine(s, v) }
func (s *Snapshot) WriteNewline()        { s.WriteChar('\n') }
func (s *Snapshot) Enabled() bool        { return true }

func (s *Snapshot) RegisterStyle(opt style.Option) {
	s.styles.Register(opt)
	s.Visualizer.RegisterStyle(opt)
}

func (s *Snapshot) EndFrame() {
	s.last = s.cur.Seal()
	s.frames++
	s.Visualizer.EndFrame()
}

// Last returns the most recently sealed frame, or nil before the first.
func (s *Snapshot) Last() *frame.Frame { return s.last }

// Frames returns the number of frames sealed so far.
func (s *Snapshot) Frames() int { return s.frames }
