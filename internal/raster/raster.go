package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math/rand/v2"

	"github.com/san-kum/aocviz/internal/frame"
	"github.com/san-kum/aocviz/internal/style"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultAspectRatio = 1.0
	DefaultTargetWidth = 800
)

// Options controls cell geometry and jitter.
type Options struct {
	// TargetWidth is the requested image width in pixels. The actual width
	// is rounded down to a multiple of the frame width.
	TargetWidth int
	// AspectRatio is cell width / cell height.
	AspectRatio float64
	// Jitter is the full range in pixels of the random glyph offset.
	Jitter float64
	// Rand supplies jitter. Nil uses the global source.
	Rand *rand.Rand
}

// Rasterizer renders frames with a reusable glyph canvas. It is not safe
// for concurrent use.
type Rasterizer struct {
	opts   Options
	faces  faceCache
	canvas *image.Alpha
}

func New(opts Options) *Rasterizer {
	if opts.TargetWidth <= 0 {
		opts.TargetWidth = DefaultTargetWidth
	}
	if opts.AspectRatio <= 0 {
		opts.AspectRatio = DefaultAspectRatio
	}
	return &Rasterizer{opts: opts}
}

// CellSize returns the pixel size of one character cell for a frame that is
// width characters wide.
func (r *Rasterizer) CellSize(width int) (cellW, cellH int) {
	if width <= 0 {
		return 0, 0
	}
	cellW = max(r.opts.TargetWidth/width, 1)
	cellH = max(int(float64(cellW)/r.opts.AspectRatio), 1)
	return cellW, cellH
}

// Rasterize renders f. When styles is non-nil it decides bold and color for
// each character, otherwise the styles stored in the cells are used. It
// returns nil for an empty frame.
func (r *Rasterizer) Rasterize(f *frame.Frame, styles style.Resolver) *image.RGBA {
	if f.Empty() {
		return nil
	}
	cellW, cellH := r.CellSize(f.Width())
	w, h := cellW*f.Width(), cellH*f.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Rect, image.NewUniform(color.Black), image.Point{}, draw.Src)

	r.ensureCanvas(cellW, cellH)
	size := faceSize(cellW, cellH)

	for row := 0; row < f.Height(); row++ {
		for col, c := range f.Line(row) {
			opt := resolve(c, styles)
			bold := opt != nil && opt.Bold
			if !r.drawGlyph(c.Rune, bold, size, cellW) {
				continue
			}
			ox := clamp(col*cellW+r.jitter(), 0, w-cellW)
			oy := clamp(row*cellH+r.jitter(), 0, h-cellH)
			composite(img, r.canvas, ox, oy, opt)
		}
	}
	return img
}

func resolve(c frame.Cell, styles style.Resolver) *style.Option {
	if styles == nil {
		return c.Style
	}
	if o, ok := styles.Resolve(c.Rune); ok {
		return &o
	}
	return nil
}

// ensureCanvas sizes the scratch canvas to one cell with an extra cell of
// height for descenders.
func (r *Rasterizer) ensureCanvas(cellW, cellH int) {
	want := image.Rect(0, 0, cellW, 2*cellH)
	if r.canvas == nil || r.canvas.Rect != want {
		r.canvas = image.NewAlpha(want)
	}
}

// drawGlyph clears the canvas and draws ch into it. It reports false when
// nothing was drawn: spaces, runes missing from the font, or a face that
// could not be built all render blank.
func (r *Rasterizer) drawGlyph(ch rune, bold bool, size float64, cellW int) bool {
	clear(r.canvas.Pix)
	if ch == ' ' {
		return false
	}
	cf, err := r.faces.get(bold, size)
	if err != nil || !r.faces.hasGlyph(cf, ch) {
		return false
	}
	x := 0
	if adv, ok := cf.face.GlyphAdvance(ch); ok {
		x = max((cellW-adv.Round())/2, 0)
	}
	d := font.Drawer{
		Dst:  r.canvas,
		Src:  image.Opaque,
		Face: cf.face,
		Dot:  fixed.P(x, cf.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(string(ch))
	return true
}

func (r *Rasterizer) jitter() int {
	if r.opts.Jitter == 0 {
		return 0
	}
	v := rand.Float64
	if r.opts.Rand != nil {
		v = r.opts.Rand.Float64
	}
	return int(r.opts.Jitter * (v() - 0.5))
}

// composite copies non-zero canvas coverage into img at (ox, oy).
func composite(img *image.RGBA, canvas *image.Alpha, ox, oy int, opt *style.Option) {
	b := img.Bounds()
	cw, ch := canvas.Rect.Dx(), canvas.Rect.Dy()
	for y := 0; y < ch; y++ {
		dy := oy + y
		if dy >= b.Max.Y {
			break
		}
		for x := 0; x < cw; x++ {
			a := canvas.Pix[y*canvas.Stride+x]
			dx := ox + x
			if a == 0 || dx >= b.Max.X {
				continue
			}
			i := img.PixOffset(dx, dy)
			if opt != nil {
				img.Pix[i+0] = scale(opt.Color.R, a)
				img.Pix[i+1] = scale(opt.Color.G, a)
				img.Pix[i+2] = scale(opt.Color.B, a)
			} else {
				img.Pix[i+0], img.Pix[i+1], img.Pix[i+2] = a, a, a
			}
			img.Pix[i+3] = 255
		}
	}
}

func scale(c, coverage uint8) uint8 {
	return uint8(uint32(c) * uint32(coverage) / 255)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
