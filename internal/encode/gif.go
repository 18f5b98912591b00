package encode

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
)

// DefaultMaxFrames caps a GIF unless WithMaxFrames says otherwise.
const DefaultMaxFrames = 10000

// GIF buffers paletted frames and writes the animation on Close. Nothing
// reaches w before Close, so memory grows by roughly width*height bytes per
// frame; Encode fails with ErrTooManyFrames past the frame cap.
type GIF struct {
	w         io.WriteCloser
	anim      gif.GIF
	palette   color.Palette
	dither    bool
	maxFrames int
}

type GIFOption func(*GIF)

// WithDither enables Floyd-Steinberg error diffusion when quantizing.
func WithDither() GIFOption {
	return func(g *GIF) { g.dither = true }
}

// WithPalette replaces the default Plan 9 palette.
func WithPalette(p color.Palette) GIFOption {
	return func(g *GIF) { g.palette = p }
}

// WithMaxFrames sets the frame cap. n <= 0 removes it.
func WithMaxFrames(n int) GIFOption {
	return func(g *GIF) { g.maxFrames = n }
}

func NewGIF(w io.WriteCloser, opts ...GIFOption) *GIF {
	g := &GIF{
		w:         w,
		anim:      gif.GIF{LoopCount: 0},
		palette:   palette.Plan9,
		maxFrames: DefaultMaxFrames,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

func (g *GIF) Encode(img image.Image, delayMS int) error {
	if g.maxFrames > 0 && len(g.anim.Image) >= g.maxFrames {
		return fmt.Errorf("%w (%d)", ErrTooManyFrames, g.maxFrames)
	}
	b := img.Bounds()
	p := image.NewPaletted(b, g.palette)
	if g.dither {
		draw.FloydSteinberg.Draw(p, b, img, b.Min)
	} else {
		draw.Draw(p, b, img, b.Min, draw.Src)
	}
	g.anim.Image = append(g.anim.Image, p)
	g.anim.Delay = append(g.anim.Delay, centiseconds(delayMS))
	return nil
}

// Frames returns the number of buffered frames.
func (g *GIF) Frames() int {
	return len(g.anim.Image)
}

func (g *GIF) Close() error {
	if len(g.anim.Image) == 0 {
		if err := g.w.Close(); err != nil {
			return err
		}
		return ErrNoFrames
	}
	if err := gif.EncodeAll(g.w, &g.anim); err != nil {
		g.w.Close()
		return err
	}
	return g.w.Close()
}

// centiseconds converts a millisecond delay to GIF units, at least 1.
func centiseconds(ms int) int {
	return max((ms+5)/10, 1)
}
