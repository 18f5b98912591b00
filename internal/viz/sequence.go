package viz

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/aocviz/internal/encode"
	"github.com/san-kum/aocviz/internal/frame"
	"github.com/san-kum/aocviz/internal/logging"
	"github.com/san-kum/aocviz/internal/raster"
	"github.com/san-kum/aocviz/internal/style"
)

// ImageSequence rasterizes every frame and feeds it to an encoder. All
// images share the size fixed by the first non-empty frame.
type ImageSequence struct {
	path    string
	fps     float64
	delayMS int
	every   int

	enc      encode.Encoder
	gifOpts  []encode.GIFOption
	ropts    raster.Options
	raster   *raster.Rasterizer
	progress io.Writer
	fatal    func(error)
	log      zerolog.Logger

	styles *style.Registry
	cur    frame.Builder

	sized         bool
	width, height int
	frames        int
	sinceProgress int
	closed        bool
}

var _ Visualizer = (*ImageSequence)(nil)

type SequenceOption func(*ImageSequence)

// WithEncoder replaces the encoder otherwise chosen from the output path.
func WithEncoder(e encode.Encoder) SequenceOption {
	return func(s *ImageSequence) { s.enc = e }
}

// WithGIFOptions configures the GIF encoder chosen from a ".gif" path.
func WithGIFOptions(opts ...encode.GIFOption) SequenceOption {
	return func(s *ImageSequence) { s.gifOpts = append(s.gifOpts, opts...) }
}

// WithAspectRatio sets the character cell width / height ratio.
func WithAspectRatio(r float64) SequenceOption {
	return func(s *ImageSequence) { s.ropts.AspectRatio = r }
}

// WithJitter sets the random glyph offset range in pixels.
func WithJitter(px float64) SequenceOption {
	return func(s *ImageSequence) { s.ropts.Jitter = px }
}

// WithRand sets the jitter source.
func WithRand(r *rand.Rand) SequenceOption {
	return func(s *ImageSequence) { s.ropts.Rand = r }
}

// WithProgress sets where progress dots are written. Defaults to stdout.
func WithProgress(w io.Writer) SequenceOption {
	return func(s *ImageSequence) { s.progress = w }
}

// WithSequenceFatal replaces the handler for unrecoverable I/O errors.
func WithSequenceFatal(f func(error)) SequenceOption {
	return func(s *ImageSequence) { s.fatal = f }
}

// WithSequenceLogger sets the logger.
func WithSequenceLogger(l zerolog.Logger) SequenceOption {
	return func(s *ImageSequence) { s.log = l }
}

// NewImageSequence returns a sink writing an animation to path, width
// pixels wide, at fps frames per second.
func NewImageSequence(path string, fps float64, width int, opts ...SequenceOption) (*ImageSequence, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFPS, fps)
	}
	if width <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	s := &ImageSequence{
		path:     path,
		fps:      fps,
		delayMS:  int(math.Round(1000 / fps)),
		every:    max(int(math.Ceil(fps)), 1),
		ropts:    raster.Options{TargetWidth: width},
		progress: os.Stdout,
		fatal:    defaultFatal,
		log:      logging.Component("sequence"),
		styles:   style.NewRegistry(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.enc == nil {
		enc, err := encode.Open(path, s.gifOpts...)
		if err != nil {
			return nil, err
		}
		s.enc = enc
	}
	s.raster = raster.New(s.ropts)
	return s, nil
}

func (s *ImageSequence) WriteChar(ch rune)    { s.cur.Write(ch, nil) }
func (s *ImageSequence) WriteString(v string) { writeString(s, v) }
func (s *ImageSequence) WriteLine(v string)   { writeLine(s, v) }
func (s *ImageSequence) WriteNewline()        { s.WriteChar('\n') }
func (s *ImageSequence) Enabled() bool        { return true }

func (s *ImageSequence) RegisterStyle(opt style.Option) {
	s.styles.Register(opt)
}

// EndFrame rasterizes the sealed frame and hands it to the encoder. Empty
// frames seen before the size is fixed are dropped.
func (s *ImageSequence) EndFrame() {
	f := s.cur.Seal()
	if !s.sized {
		if f.Empty() {
			s.log.Debug().Msg("dropping empty leading frame")
			return
		}
		s.width, s.height, s.sized = f.Width(), f.Height(), true
		s.log.Debug().Int("cols", s.width).Int("rows", s.height).Msg("frame size fixed")
	} else {
		f = f.Normalize(s.width, s.height)
	}

	start := time.Now()
	img := s.raster.Rasterize(f, s.styles)
	if img == nil {
		return
	}
	if err := s.enc.Encode(img, s.delayMS); err != nil {
		s.fatal(&FrameError{Frame: s.frames, Op: "encode", Wrapped: err})
		return
	}
	s.log.Trace().Int("frame", s.frames).Dur("took", time.Since(start)).Msg("frame encoded")
	s.frames++

	s.sinceProgress++
	if s.sinceProgress >= s.every {
		fmt.Fprint(s.progress, ".")
		s.sinceProgress = 0
	}
}

// Frames returns the number of images handed to the encoder.
func (s *ImageSequence) Frames() int { return s.frames }

// Size returns the fixed grid size in characters, zero before the first
// non-empty frame.
func (s *ImageSequence) Size() (cols, rows int) { return s.width, s.height }

// Close finalizes the encoder. An animation without frames is reported
// with encode.ErrNoFrames.
func (s *ImageSequence) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.frames >= s.every {
		fmt.Fprintln(s.progress)
	}
	err := s.enc.Close()
	switch {
	case errors.Is(err, encode.ErrNoFrames):
		s.log.Warn().Str("path", s.path).Msg("no frames written")
		return err
	case err != nil:
		return &FrameError{Frame: s.frames, Op: "finalize", Wrapped: err}
	}
	s.log.Info().Str("path", s.path).Int("frames", s.frames).Msg("animation written")
	return nil
}
