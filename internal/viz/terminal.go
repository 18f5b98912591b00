package viz

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"
	"github.com/san-kum/aocviz/internal/frame"
	"github.com/san-kum/aocviz/internal/history"
	"github.com/san-kum/aocviz/internal/logging"
	"github.com/san-kum/aocviz/internal/style"
)

const (
	// MaxHistoryDepth is the largest number of frames a terminal keeps.
	MaxHistoryDepth = 1000

	// eraseLine clears the current line, moves up one and clears that too.
	eraseLine = "\x1b[2K\x1b[1A\x1b[2K"
)

// Terminal prints frames in place on a terminal and keeps a bounded history
// for interactive browsing.
type Terminal struct {
	fps       float64
	depth     int
	trueColor bool

	out   io.Writer
	keys  KeySource
	sleep func(time.Duration)
	size  SizeFunc
	fatal func(error)
	log   zerolog.Logger

	styles  *style.Registry
	painter *style.Painter
	cur     frame.Builder
	history *history.Ring[*frame.Frame]
	nav     navigator

	// prevLines is the number of newlines in the last render, i.e. how many
	// lines the next render has to erase.
	prevLines int
	sealed    int
}

var _ Visualizer = (*Terminal)(nil)

type TerminalOption func(*Terminal)

// WithOutput sets where frames are printed. Defaults to stdout.
func WithOutput(w io.Writer) TerminalOption {
	return func(t *Terminal) { t.out = w }
}

// WithKeySource sets the interactive key source. Defaults to [Keyboard].
func WithKeySource(k KeySource) TerminalOption {
	return func(t *Terminal) { t.keys = k }
}

// WithSleep replaces time.Sleep for frame pacing.
func WithSleep(f func(time.Duration)) TerminalOption {
	return func(t *Terminal) { t.sleep = f }
}

// WithSize overrides terminal size detection.
func WithSize(f SizeFunc) TerminalOption {
	return func(t *Terminal) { t.size = f }
}

// WithHistoryDepth sets how many frames are retained, at most MaxHistoryDepth.
func WithHistoryDepth(n int) TerminalOption {
	return func(t *Terminal) { t.depth = n }
}

// WithTrueColor forces 24-bit color output regardless of the terminal.
func WithTrueColor() TerminalOption {
	return func(t *Terminal) { t.trueColor = true }
}

// WithTerminalFatal replaces the handler for unrecoverable I/O errors.
func WithTerminalFatal(f func(error)) TerminalOption {
	return func(t *Terminal) { t.fatal = f }
}

// WithTerminalLogger sets the logger.
func WithTerminalLogger(l zerolog.Logger) TerminalOption {
	return func(t *Terminal) { t.log = l }
}

// NewTerminal returns a terminal sink playing at fps frames per second.
// With interactive set it starts in browsing mode.
func NewTerminal(fps float64, interactive bool, opts ...TerminalOption) (*Terminal, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFPS, fps)
	}
	t := &Terminal{
		fps:    fps,
		depth:  MaxHistoryDepth,
		out:    os.Stdout,
		sleep:  time.Sleep,
		fatal:  defaultFatal,
		log:    logging.Component("terminal"),
		styles: style.NewRegistry(),
		nav:    navigator{interactive: interactive},
	}
	for _, o := range opts {
		o(t)
	}
	if t.depth < 1 || t.depth > MaxHistoryDepth {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrHistoryDepth, t.depth, MaxHistoryDepth)
	}
	if t.size == nil {
		t.size = noSize
		if f, ok := t.out.(*os.File); ok {
			t.size = fileSize(f)
		}
	}
	if interactive && t.keys == nil {
		t.keys = Keyboard{}
	}
	t.history = history.New[*frame.Frame](t.depth)
	t.painter = style.NewPainter(t.out, t.trueColor)
	return t, nil
}

func (t *Terminal) WriteChar(ch rune) {
	if opt, ok := t.styles.Resolve(ch); ok {
		t.cur.Write(ch, &opt)
		return
	}
	t.cur.Write(ch, nil)
}

func (t *Terminal) WriteString(s string) { writeString(t, s) }
func (t *Terminal) WriteLine(s string)   { writeLine(t, s) }
func (t *Terminal) WriteNewline()        { t.WriteChar('\n') }
func (t *Terminal) Enabled() bool        { return true }

func (t *Terminal) RegisterStyle(opt style.Option) {
	t.styles.Register(opt)
}

// EndFrame seals the current frame into the history and shows it. In
// interactive mode it blocks until the user advances past the newest frame
// or quits browsing.
func (t *Terminal) EndFrame() {
	f := t.cur.Seal()
	if t.history.Push(f) {
		t.log.Trace().Int("frame", t.sealed).Msg("evicted oldest frame")
	}
	t.sealed++
	t.nav.cursor = t.history.Last()

	if t.nav.interactive {
		t.browse()
	} else {
		t.display(false)
	}
	t.sleep(t.frameDelay())
}

// browse runs the key loop until the algorithm may continue.
func (t *Terminal) browse() {
	redraw := true
	for {
		if redraw {
			t.display(true)
		}
		k, err := t.keys.ReadKey()
		if err != nil {
			t.fatal(&FrameError{Frame: t.sealed - 1, Op: "read key for", Wrapped: err})
			return
		}
		switch t.nav.handle(k, t.history.Last()) {
		case actionAdvance:
			return
		case actionQuit:
			t.log.Debug().Int("frame", t.sealed-1).Msg("interactive mode off")
			return
		case actionRedraw:
			redraw = true
		default:
			redraw = false
		}
	}
}

// display erases the previous render and prints the frame under the cursor.
func (t *Terminal) display(banner bool) {
	out := t.render(banner)
	if _, err := io.WriteString(t.out, strings.Repeat(eraseLine, t.prevLines)+out); err != nil {
		t.fatal(&FrameError{Frame: t.sealed - 1, Op: "print", Wrapped: err})
		return
	}
	t.prevLines = strings.Count(out, "\n")
}

// render returns the frame under the cursor clipped to the viewport and the
// terminal, optionally followed by the key legend. Every line, including the
// last, ends in a newline.
func (t *Terminal) render(banner bool) string {
	f := t.history.At(t.nav.cursor)
	cols, rows, sized := t.size()

	var legend []string
	if banner {
		legend = t.legend()
	}
	height := f.Height()
	if sized {
		height = min(height, max(rows-len(legend)-1, 1))
	}

	var b strings.Builder
	for i := 0; i < height; i++ {
		t.writeClipped(&b, f.Line(t.nav.view.Row+i), cols, sized)
		b.WriteByte('\n')
	}
	for _, l := range legend {
		b.WriteString(t.painter.Hint(l))
		b.WriteByte('\n')
	}
	return b.String()
}

// writeClipped writes line starting at the viewport column, stopping before
// the first cell that would overflow cols display columns.
func (t *Terminal) writeClipped(b *strings.Builder, line []frame.Cell, cols int, sized bool) {
	used := 0
	for j := t.nav.view.Col; j < len(line); j++ {
		c := line[j]
		w := runewidth.RuneWidth(c.Rune)
		if sized && used+w > cols {
			return
		}
		used += w
		b.WriteString(t.painter.Paint(string(c.Rune), c.Style))
	}
}

func (t *Terminal) legend() []string {
	return []string{
		fmt.Sprintf("frame %d/%d (#%d)  view %+d,%+d",
			t.nav.cursor+1, t.history.Len(), t.sealed-t.history.Len()+t.nav.cursor+1,
			t.nav.view.Row, t.nav.view.Col),
		"h/l prev/next  space next  _/$ first/last  arrows pan  q stop browsing",
	}
}

func (t *Terminal) frameDelay() time.Duration {
	return time.Duration(float64(time.Second) / t.fps)
}

// Cursor returns the history index of the displayed frame.
func (t *Terminal) Cursor() int { return t.nav.cursor }

// HistoryLen returns the number of retained frames.
func (t *Terminal) HistoryLen() int { return t.history.Len() }

// Frame returns the i-th oldest retained frame.
func (t *Terminal) Frame(i int) *frame.Frame { return t.history.At(i) }

// Viewport returns the current pan offset.
func (t *Terminal) Viewport() Viewport { return t.nav.view }

// Interactive reports whether the terminal is still browsing interactively.
func (t *Terminal) Interactive() bool { return t.nav.interactive }

// Sealed returns the number of frames sealed so far, evicted ones included.
func (t *Terminal) Sealed() int { return t.sealed }

func (t *Terminal) Close() error {
	t.log.Debug().Int("frames", t.sealed).Int("retained", t.history.Len()).Msg("terminal closed")
	return nil
}
