package viz

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/aocviz/internal/style"
)

var _ = Describe("Terminal", func() {
	var (
		out    *chunkWriter
		sleeps *sleepRecorder
		fatals *fatalRecorder
	)

	BeforeEach(func() {
		out = &chunkWriter{}
		sleeps = &sleepRecorder{}
		fatals = &fatalRecorder{}
	})

	newTerminal := func(interactive bool, opts ...TerminalOption) *Terminal {
		base := []TerminalOption{
			WithOutput(out),
			WithSleep(sleeps.sleep),
			WithTerminalFatal(fatals.fatal),
		}
		t, err := NewTerminal(30, interactive, append(base, opts...)...)
		Expect(err).NotTo(HaveOccurred())
		return t
	}

	Describe("construction", func() {
		It("rejects a non-positive frame rate", func() {
			_, err := NewTerminal(0, false, WithOutput(io.Discard))
			Expect(err).To(MatchError(ErrInvalidFPS))
		})

		DescribeTable("validates the history depth",
			func(depth int, ok bool) {
				_, err := NewTerminal(30, false, WithOutput(io.Discard), WithHistoryDepth(depth))
				if ok {
					Expect(err).NotTo(HaveOccurred())
				} else {
					Expect(err).To(MatchError(ErrHistoryDepth))
				}
			},
			Entry("zero", 0, false),
			Entry("one", 1, true),
			Entry("maximum", MaxHistoryDepth, true),
			Entry("above maximum", MaxHistoryDepth+1, false),
		)

		It("is enabled", func() {
			Expect(newTerminal(false).Enabled()).To(BeTrue())
		})
	})

	Describe("live playback", func() {
		It("erases exactly the previous frame before each render", func() {
			t := newTerminal(false)
			writeFrame(t, "AB\n")
			writeFrame(t, "CD\n")

			Expect(out.chunks).To(Equal([]string{
				"AB\n",
				eraseLine + "CD\n",
			}))
			Expect(sleeps.slept).To(Equal([]time.Duration{time.Second / 30, time.Second / 30}))
			Expect(fatals.errs).To(BeEmpty())
		})

		It("terminates a last line written without a newline", func() {
			t := newTerminal(false)
			writeFrame(t, "AB\nC")
			writeFrame(t, "D")
			Expect(out.chunks).To(Equal([]string{
				"AB\nC\n",
				eraseLine + eraseLine + "D\n",
			}))
		})

		It("erases as many lines as the previous render printed", func() {
			r := rand.New(rand.NewPCG(7, 11))
			t := newTerminal(false)
			for i := 0; i < 60; i++ {
				var b strings.Builder
				for l := 0; l < r.IntN(7); l++ {
					b.WriteString(strings.Repeat("#", r.IntN(5)))
					b.WriteByte('\n')
				}
				writeFrame(t, b.String())
			}

			Expect(out.chunks).To(HaveLen(60))
			for i := 1; i < len(out.chunks); i++ {
				want := strings.Count(out.chunks[i-1], "\n")
				prefix := strings.Repeat(eraseLine, want)
				Expect(out.chunks[i]).To(HavePrefix(prefix), "chunk %d", i)
				Expect(strings.TrimPrefix(out.chunks[i], prefix)).NotTo(HavePrefix(eraseLine), "chunk %d", i)
			}
		})

		It("keeps only the newest frames once the history is full", func() {
			t := newTerminal(false, WithHistoryDepth(3))
			for i := 1; i <= 5; i++ {
				writeFrame(t, fmt.Sprintf("%d\n", i))
				Expect(t.HistoryLen()).To(BeNumerically("<=", 3))
			}

			Expect(t.HistoryLen()).To(Equal(3))
			Expect(t.Frame(0).String()).To(Equal("3\n"))
			Expect(t.Frame(1).String()).To(Equal("4\n"))
			Expect(t.Frame(2).String()).To(Equal("5\n"))
			Expect(t.Cursor()).To(Equal(2))
			Expect(t.Sealed()).To(Equal(5))
		})

		It("colors registered characters", func() {
			t := newTerminal(false, WithTrueColor())
			t.RegisterStyle(style.Option{Char: 'H', Bold: true, Color: style.RGB{R: 255}})
			writeFrame(t, "HT\n")

			Expect(out.last()).To(ContainSubstring("38;2;255;0;0"))
			Expect(out.last()).To(HaveSuffix("T\n"))
			Expect(strings.Count(out.last(), "\n")).To(Equal(1))
		})

		It("clips frames to the terminal", func() {
			t := newTerminal(false, WithSize(FixedSize(4, 3)))
			writeFrame(t, "abcdef\nghijkl\nmnopqr\nstuvwx\n")
			Expect(out.last()).To(Equal("abcd\nghij\n"))
		})

		It("never splits wide characters", func() {
			t := newTerminal(false, WithSize(FixedSize(3, 10)))
			writeFrame(t, "a世b\n")
			Expect(out.last()).To(Equal("a世\n"))

			t = newTerminal(false, WithSize(FixedSize(2, 10)))
			writeFrame(t, "a世b\n")
			Expect(out.last()).To(Equal("a\n"))
		})

		It("re-renders byte-identical output", func() {
			t := newTerminal(false, WithTrueColor())
			t.RegisterStyle(style.Option{Char: '#', Color: style.RGB{G: 200}})
			writeFrame(t, "#.#\n.#.\n")
			Expect(t.render(false)).To(Equal(t.render(false)))
			Expect(t.render(true)).To(Equal(t.render(true)))
			Expect(t.render(false)).To(Equal(out.last()))
		})
	})

	Describe("interactive browsing", func() {
		It("scrubs back through the history without creating frames", func() {
			type probe struct{ cursor, frames int }
			var seen []probe
			var t *Terminal
			keys := &probeKeys{
				src: ScriptKeys("llll" + "hh" + "hh" + "_" + "q"),
				before: func() {
					seen = append(seen, probe{t.Cursor(), t.HistoryLen()})
				},
			}
			t = newTerminal(true, WithKeySource(keys))
			for i := 1; i <= 5; i++ {
				writeFrame(t, fmt.Sprintf("frame %d\n", i))
			}

			Expect(seen).To(Equal([]probe{
				{0, 1}, {1, 2}, {2, 3}, {3, 4},
				{4, 5}, {3, 5}, {2, 5}, {1, 5}, {0, 5}, {0, 5},
			}))
			Expect(t.Cursor()).To(Equal(0))
			Expect(t.HistoryLen()).To(Equal(5))
			Expect(t.Interactive()).To(BeFalse())
			Expect(fatals.errs).To(BeEmpty())
		})

		It("plays live after q without reading keys", func() {
			keys := ScriptKeys("q")
			t := newTerminal(true, WithKeySource(keys))
			writeFrame(t, "one\n")
			writeFrame(t, "two\n")
			writeFrame(t, "three\n")

			Expect(t.Interactive()).To(BeFalse())
			Expect(t.Cursor()).To(Equal(2))
			Expect(out.last()).To(Equal(strings.Repeat(eraseLine, 1) + "three\n"))
			Expect(fatals.errs).To(BeEmpty())
		})

		It("shows the key legend under the frame", func() {
			t := newTerminal(true, WithKeySource(ScriptKeys("l")))
			writeFrame(t, "abc\n")

			Expect(out.chunks).To(HaveLen(1))
			lines := strings.Split(strings.TrimSuffix(out.chunks[0], "\n"), "\n")
			Expect(lines).To(HaveLen(3))
			Expect(lines[0]).To(Equal("abc"))
			Expect(lines[1]).To(ContainSubstring("frame 1/1"))
			Expect(lines[2]).To(ContainSubstring("q stop browsing"))
		})

		It("redraws with the legend counted in the erase", func() {
			t := newTerminal(true, WithKeySource(ScriptKeys("h l")))
			writeFrame(t, "abc\n")

			Expect(out.chunks).To(HaveLen(2))
			Expect(out.chunks[1]).To(HavePrefix(strings.Repeat(eraseLine, 3) + "abc\n"))
		})

		It("re-prompts on unknown keys without redrawing", func() {
			t := newTerminal(true, WithKeySource(ScriptKeys("xyzl")))
			writeFrame(t, "abc\n")
			Expect(out.chunks).To(HaveLen(1))
		})

		It("pans the viewport and keeps it across frames", func() {
			t := newTerminal(true, WithKeySource(ScriptKeys("<down><right>l<up><up>q")))
			writeFrame(t, "abc\ndef\n")
			Expect(t.Viewport()).To(Equal(Viewport{Row: 1, Col: 1}))
			Expect(out.last()).To(HavePrefix(strings.Repeat(eraseLine, 4) + "ef\n\n"))

			writeFrame(t, "ghi\njkl\n")
			Expect(t.Viewport()).To(Equal(Viewport{Row: 0, Col: 1}))
			Expect(out.last()).To(HavePrefix(strings.Repeat(eraseLine, 4) + "hi\nkl\n"))
		})

		It("shows blank lines when panned past the content", func() {
			t := newTerminal(true, WithKeySource(ScriptKeys("<down><down><down>q")))
			writeFrame(t, "ab\n")
			Expect(out.last()).To(HavePrefix(strings.Repeat(eraseLine, 3) + "\n"))
		})

		It("treats a failing key source as fatal", func() {
			t := newTerminal(true, WithKeySource(ScriptKeys("")))
			writeFrame(t, "abc\n")

			Expect(fatals.errs).To(HaveLen(1))
			var fe *FrameError
			Expect(errors.As(fatals.errs[0], &fe)).To(BeTrue())
			Expect(fe.Frame).To(Equal(0))
			Expect(fatals.errs[0]).To(MatchError(io.EOF))
		})

		It("treats Ctrl-C as fatal", func() {
			t := newTerminal(true, WithKeySource(ScriptKeys("<C-c>")))
			writeFrame(t, "abc\n")
			Expect(fatals.errs).To(HaveLen(1))
			Expect(fatals.errs[0]).To(MatchError(ErrInterrupted))
		})
	})

	It("reports print failures as fatal", func() {
		t, err := NewTerminal(30, false,
			WithOutput(failingWriter{}),
			WithSleep(sleeps.sleep),
			WithTerminalFatal(fatals.fatal))
		Expect(err).NotTo(HaveOccurred())
		writeFrame(t, "abc\n")
		Expect(fatals.errs).To(HaveLen(1))
		Expect(fatals.errs[0]).To(MatchError(io.ErrClosedPipe))
	})
})

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }
