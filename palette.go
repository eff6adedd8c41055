package emojimosaic

import (
	"fmt"
	"image"
	"image/color"

	"github.com/Nykakin/quantize"
)

// DominantColors quantizes img down to at most n colors, giving a quick
// summary of what the glyph library will be asked to reproduce.
func DominantColors(img image.Image, n int) (color.Palette, error) {
	q := quantize.NewHierarhicalQuantizer()
	colors, err := q.Quantize(img, n)
	if err != nil {
		return nil, fmt.Errorf("%w: palette analysis: %v", ErrDecode, err)
	}
	pal := make(color.Palette, len(colors))
	for i, c := range colors {
		pal[i] = c
	}
	return pal, nil
}
