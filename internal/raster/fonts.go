package raster

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

const (
	// Go Mono metrics in em units, used to fit a glyph into a cell.
	emAdvance = 0.6
	emHeight  = 1.2
)

var (
	parseOnce sync.Once
	parsed    [2]*opentype.Font
	parseErr  error
)

func fonts() ([2]*opentype.Font, error) {
	parseOnce.Do(func() {
		for i, ttf := range [][]byte{gomono.TTF, gomonobold.TTF} {
			f, err := opentype.Parse(ttf)
			if err != nil {
				parseErr = fmt.Errorf("raster: parse go mono: %w", err)
				return
			}
			parsed[i] = f
		}
	})
	return parsed, parseErr
}

// cachedFace is a face sized for one cell geometry.
type cachedFace struct {
	font *opentype.Font
	face font.Face
	size float64
}

// faceCache holds at most one regular and one bold face.
type faceCache struct {
	faces [2]*cachedFace
	buf   sfnt.Buffer
}

func boldIndex(bold bool) int {
	if bold {
		return 1
	}
	return 0
}

func (c *faceCache) get(bold bool, size float64) (*cachedFace, error) {
	i := boldIndex(bold)
	if cf := c.faces[i]; cf != nil && cf.size == size {
		return cf, nil
	}
	fs, err := fonts()
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(fs[i], &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("raster: new face: %w", err)
	}
	if old := c.faces[i]; old != nil {
		old.face.Close()
	}
	c.faces[i] = &cachedFace{font: fs[i], face: face, size: size}
	return c.faces[i], nil
}

// hasGlyph reports whether the font maps r to a real glyph.
func (c *faceCache) hasGlyph(cf *cachedFace, r rune) bool {
	idx, err := cf.font.GlyphIndex(&c.buf, r)
	return err == nil && idx != 0
}

// faceSize returns the point size (at 72 DPI, so pixels) that fits a glyph
// into a cellW x cellH cell.
func faceSize(cellW, cellH int) float64 {
	return min(float64(cellH)/emHeight, float64(cellW)/emAdvance)
}
