package demo

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/aocviz/internal/style"
	"github.com/san-kum/aocviz/internal/viz"
)

// recorder keeps every sealed frame as text.
type recorder struct {
	cur    strings.Builder
	frames []string
	styles []style.Option
}

func (r *recorder) WriteChar(ch rune)              { r.cur.WriteRune(ch) }
func (r *recorder) WriteString(s string)           { r.cur.WriteString(s) }
func (r *recorder) WriteLine(s string)             { r.cur.WriteString(s + "\n") }
func (r *recorder) WriteNewline()                  { r.cur.WriteByte('\n') }
func (r *recorder) Enabled() bool                  { return true }
func (r *recorder) RegisterStyle(opt style.Option) { r.styles = append(r.styles, opt) }
func (r *recorder) Close() error                   { return nil }

func (r *recorder) EndFrame() {
	r.frames = append(r.frames, r.cur.String())
	r.cur.Reset()
}

func TestAnswers(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"rope", 36},
		{"sand", 24},
	}

	for _, tt := range tests {
		d, err := Get(tt.name)
		if err != nil {
			t.Fatalf("Get(%q): %v", tt.name, err)
		}
		got, err := Run(d, viz.Disabled{})
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestRopeShortExample(t *testing.T) {
	got, err := Rope{}.Solve("R 4\nU 4\nL 3\nD 1\nR 4\nD 1\nL 5\nR 2\n", viz.Disabled{})
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("expected 1 tail position, got %d", got)
	}
}

func TestRopeFrames(t *testing.T) {
	rec := &recorder{}
	if _, err := (Rope{}).Solve("R 3\nU 2\n", rec); err != nil {
		t.Fatal(err)
	}

	if len(rec.frames) != 5 {
		t.Fatalf("expected one frame per step, got %d", len(rec.frames))
	}
	for i, f := range rec.frames {
		lines := strings.Split(strings.TrimSuffix(f, "\n"), "\n")
		if len(lines) != 2*ropeHalfSide+1 {
			t.Fatalf("frame %d: %d lines", i, len(lines))
		}
		for _, l := range lines {
			if n := len([]rune(l)); n != 2*ropeHalfSide+1 {
				t.Fatalf("frame %d: line width %d", i, n)
			}
		}
	}
	// Tail stays at the origin, so the window is fixed: the head is three
	// cells right of the center after the first move.
	center := strings.Split(rec.frames[2], "\n")[ropeHalfSide]
	if got := []rune(center)[ropeHalfSide+3]; got != 'H' {
		t.Errorf("expected head right of center, got %q in %q", got, center)
	}
	if len(rec.styles) != 11 {
		t.Errorf("expected 11 styles, got %d", len(rec.styles))
	}
	if rec.styles[0].Char != 'H' || !rec.styles[0].Bold {
		t.Errorf("unexpected head style %+v", rec.styles[0])
	}
}

func TestRopeCellGrid(t *testing.T) {
	var rope [ropeKnots]point
	for i := range rope {
		rope[i] = point{100, 100}
	}
	tests := []struct {
		p    point
		want rune
	}{
		{point{0, 0}, '+'},
		{point{-10, 3}, '|'},
		{point{3, -20}, '-'},
		{point{3, 4}, ' '},
		{point{100, 100}, 'H'},
	}
	for _, tt := range tests {
		if got := ropeCell(&rope, tt.p); got != tt.want {
			t.Errorf("ropeCell(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}

	rope[0] = point{1, 1}
	rope[5] = point{2, 2}
	if got := ropeCell(&rope, point{2, 2}); got != '5' {
		t.Errorf("expected knot 5, got %q", got)
	}
	if got := ropeCell(&rope, point{100, 100}); got != '1' {
		t.Errorf("overlapping knots should show the lowest index, got %q", got)
	}
}

func TestSandFrames(t *testing.T) {
	rec := &recorder{}
	d, _ := Get("sand")
	if _, err := Run(d, rec); err != nil {
		t.Fatal(err)
	}
	if len(rec.frames) < 24 {
		t.Fatalf("expected at least one frame per resting unit, got %d", len(rec.frames))
	}

	first := strings.Split(strings.TrimSuffix(rec.frames[0], "\n"), "\n")
	if len(first) != 10 {
		t.Errorf("expected 10 rows, got %d", len(first))
	}
	last := rec.frames[len(rec.frames)-1]
	if !strings.Contains(last, "#") || !strings.Contains(last, "o") {
		t.Errorf("last frame lacks rock or sand:\n%s", last)
	}
	if len(rec.styles) != 2 {
		t.Errorf("expected 2 styles, got %d", len(rec.styles))
	}
}

func TestDisabledProducesNoFrames(t *testing.T) {
	for _, d := range List() {
		if _, err := Run(d, viz.Disabled{}); err != nil {
			t.Errorf("%s: %v", d.Name(), err)
		}
	}
}

func TestRunOnTerminal(t *testing.T) {
	var buf bytes.Buffer
	term, err := viz.NewTerminal(1000, false,
		viz.WithOutput(&buf),
		viz.WithSleep(func(time.Duration) {}),
		viz.WithHistoryDepth(10))
	if err != nil {
		t.Fatal(err)
	}

	d, _ := Get("sand")
	got, err := Run(d, term)
	if err != nil {
		t.Fatal(err)
	}
	if got != 24 {
		t.Errorf("expected 24, got %d", got)
	}
	if term.HistoryLen() != 10 {
		t.Errorf("expected a full history, got %d", term.HistoryLen())
	}
	if !strings.Contains(buf.String(), "\x1b[2K\x1b[1A\x1b[2K") {
		t.Error("expected frames to be erased between renders")
	}
}

func TestBadInput(t *testing.T) {
	inputs := map[Demo][]string{
		Rope{}: {"X 3", "R", "R -1", "R x"},
		Sand{}: {"", "1,2 -> 3", "1,2 -> 3,4", "a,b -> 1,1"},
	}
	for d, cases := range inputs {
		for _, in := range cases {
			if _, err := d.Solve(in, viz.Disabled{}); !errors.Is(err, ErrBadInput) {
				t.Errorf("%s: input %q: expected ErrBadInput, got %v", d.Name(), in, err)
			}
		}
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("nope"); !errors.Is(err, ErrUnknownDemo) {
		t.Errorf("expected ErrUnknownDemo, got %v", err)
	}
}

func TestList(t *testing.T) {
	demos := List()
	if len(demos) != 2 || demos[0].Name() != "rope" || demos[1].Name() != "sand" {
		t.Errorf("unexpected demos %v", demos)
	}
	for _, d := range demos {
		if d.Title() == "" {
			t.Errorf("%s has no title", d.Name())
		}
	}
}

func TestSandBlockedSource(t *testing.T) {
	got, err := (Sand{}).Solve("499,1 -> 501,1\n", viz.Disabled{})
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}
