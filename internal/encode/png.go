package encode

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNGDir writes every frame to its own numbered PNG file. Delays are not
// stored.
type PNGDir struct {
	dir string
	n   int
}

func NewPNGDir(dir string) (*PNGDir, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("encode: create %s: %w", dir, err)
	}
	return &PNGDir{dir: dir}, nil
}

func (p *PNGDir) Encode(img image.Image, _ int) error {
	path := filepath.Join(p.dir, fmt.Sprintf("frame_%05d.png", p.n))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	p.n++
	return f.Close()
}

func (p *PNGDir) Close() error {
	if p.n == 0 {
		return ErrNoFrames
	}
	return nil
}
