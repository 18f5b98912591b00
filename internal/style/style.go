package style

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit per channel color.
type RGB struct {
	R, G, B uint8
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Option is the display style for every occurrence of Char.
type Option struct {
	Char  rune
	Bold  bool
	Color RGB
}

// Resolver looks up the style of a character.
type Resolver interface {
	Resolve(ch rune) (Option, bool)
}

// Registry is an ordered list of style options.
type Registry struct {
	opts []Option
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends opt. Earlier options for the same character shadow it.
func (r *Registry) Register(opt Option) {
	r.opts = append(r.opts, opt)
}

// Resolve returns the first option registered for ch.
func (r *Registry) Resolve(ch rune) (Option, bool) {
	if r == nil {
		return Option{}, false
	}
	for _, o := range r.opts {
		if o.Char == ch {
			return o, true
		}
	}
	return Option{}, false
}

// Len returns the number of registered options, duplicates included.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.opts)
}

// HSL converts hue in degrees and saturation/lightness in percent to RGB.
func HSL(h, s, l float64) RGB {
	r, g, b := colorful.Hsl(h, s/100, l/100).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// ParseHex parses a #rrggbb or #rgb color.
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("style: bad color %q: %w", s, err)
	}
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}, nil
}
