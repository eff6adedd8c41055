// Package glyph loads and indexes the small tile images an emoji mosaic is
// assembled from. A Library is built once per run, is read-only afterwards
// and guarantees every glyph shares the same pixel dimensions.
package glyph

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrLoad reports that a glyph library could not be built: the directory is
// missing, unreadable, or contains zero usable images. The root package
// re-exports this value as emojimosaic.ErrLoad.
var ErrLoad = errors.New("glyph library load failed")

// Glyph is one emoji tile: its decoded pixels and representative color.
// Immutable once added to a Library.
type Glyph struct {
	Image *image.RGBA
	Color RGB
	// Name is the file the glyph was loaded from, empty for glyphs
	// produced by a rasterizer collaborator.
	Name string
}

// Library is an ordered collection of equally sized glyphs. Order is
// significant: nearest-color ties resolve to the earliest entry.
type Library struct {
	Width  int
	Height int
	glyphs []*Glyph
}

// New returns an empty library whose glyphs must all be width x height.
func New(width, height int) (*Library, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid glyph size %dx%d", ErrLoad, width, height)
	}
	return &Library{Width: width, Height: height}, nil
}

// Add appends a glyph to the library. The glyph image must match the
// library dimensions exactly; normalization is the loader's job.
func (l *Library) Add(g *Glyph) error {
	b := g.Image.Bounds()
	if b.Dx() != l.Width || b.Dy() != l.Height {
		return fmt.Errorf("%w: glyph %q is %dx%d, library is %dx%d",
			ErrLoad, g.Name, b.Dx(), b.Dy(), l.Width, l.Height)
	}
	l.glyphs = append(l.glyphs, g)
	return nil
}

// Len returns the number of glyphs in the library.
func (l *Library) Len() int { return len(l.glyphs) }

// At returns the i-th glyph in load order.
func (l *Library) At(i int) *Glyph { return l.glyphs[i] }

// Glyphs returns the glyphs in load order. The slice must not be mutated.
func (l *Library) Glyphs() []*Glyph { return l.glyphs }

// Nearest returns the glyph whose representative color minimizes the
// squared Euclidean distance to c. The scan uses a strict less-than
// comparison, so among equidistant glyphs the first-loaded one always wins.
// The library must be non-empty.
func (l *Library) Nearest(c RGB) *Glyph {
	best := l.glyphs[0]
	bestDist := best.Color.DistSq(c)
	for _, g := range l.glyphs[1:] {
		if d := g.Color.DistSq(c); d < bestDist {
			best = g
			bestDist = d
		}
	}
	return best
}

// Palette returns the representative colors in load order, for callers that
// dither or quantize a source image against the library.
func (l *Library) Palette() color.Palette {
	pal := make(color.Palette, len(l.glyphs))
	for i, g := range l.glyphs {
		pal[i] = color.RGBA{
			R: clamp255(g.Color.R),
			G: clamp255(g.Color.G),
			B: clamp255(g.Color.B),
			A: 0xff,
		}
	}
	return pal
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
