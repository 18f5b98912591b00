// Package raster turns character frames into pixel images.
//
// Glyphs come from the Go Mono faces bundled with golang.org/x/image, so no
// system font lookup is needed. Each character occupies a fixed cell; the
// cell width is derived from the requested image width and the cell height
// from the character aspect ratio. Characters with a registered color are
// tinted by their coverage, everything else is drawn as gray coverage on an
// opaque black background.
package raster
