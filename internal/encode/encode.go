// Package encode writes rasterized frames to an animation container.
package encode

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned by Open for unknown file extensions.
	ErrUnsupportedFormat = errors.New("encode: unsupported output format")

	// ErrNoFrames is returned by Close when nothing was encoded.
	ErrNoFrames = errors.New("encode: no frames encoded")

	// ErrTooManyFrames is returned by GIF.Encode once the frame cap is reached.
	ErrTooManyFrames = errors.New("encode: gif frame limit reached")
)

// Encoder accepts equally sized images in display order.
type Encoder interface {
	// Encode appends img, shown for delayMS milliseconds.
	Encode(img image.Image, delayMS int) error
	// Close finalizes the output.
	Close() error
}

// Open picks an encoder from the path: ".gif" writes an animated GIF, a
// path without extension (or ending in a separator) a directory of PNGs.
// opts only apply to GIF output.
func Open(path string, opts ...GIFOption) (Encoder, error) {
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return NewPNGDir(path)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gif":
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("encode: create %s: %w", path, err)
		}
		return NewGIF(f, opts...), nil
	case "":
		return NewPNGDir(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
