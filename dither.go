package emojimosaic

import (
	"image"
	"image/color"

	"github.com/esimov/colorquant"
)

// Error-diffusion kernels, keyed by the usual names.
var dithers = map[string]colorquant.Dither{
	"FloydSteinberg": {
		Filter: [][]float32{
			{0.0, 0.0, 0.0, 7.0 / 48.0, 5.0 / 48.0},
			{3.0 / 48.0, 5.0 / 48.0, 7.0 / 48.0, 5.0 / 48.0, 3.0 / 48.0},
			{1.0 / 48.0, 3.0 / 48.0, 5.0 / 48.0, 3.0 / 48.0, 1.0 / 48.0},
		},
	},
	"Burkes": {
		Filter: [][]float32{
			{0.0, 0.0, 0.0, 8.0 / 32.0, 4.0 / 32.0},
			{2.0 / 32.0, 4.0 / 32.0, 8.0 / 32.0, 4.0 / 32.0, 2.0 / 32.0},
			{0.0, 0.0, 0.0, 0.0, 0.0},
		},
	},
	"Atkinson": {
		Filter: [][]float32{
			{0.0, 0.0, 1.0 / 8.0, 1.0 / 8.0},
			{1.0 / 8.0, 1.0 / 8.0, 1.0 / 8.0, 0.0},
			{0.0, 1.0 / 8.0, 0.0, 0.0},
		},
	},
	"Sierra-3": {
		Filter: [][]float32{
			{0.0, 0.0, 0.0, 5.0 / 32.0, 3.0 / 32.0},
			{2.0 / 32.0, 4.0 / 32.0, 5.0 / 32.0, 4.0 / 32.0, 2.0 / 32.0},
			{0.0, 2.0 / 32.0, 3.0 / 32.0, 2.0 / 32.0, 0.0},
		},
	},
}

// DitherToPalette error-diffuses src onto pal (normally the glyph library's
// representative colors) with the Sierra-3 kernel. Spreading the
// quantization error across neighbouring cells keeps gradients smooth when
// the library palette is small.
func DitherToPalette(src image.Image, pal color.Palette) image.Image {
	b := src.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), pal)
	return dithers["Sierra-3"].Quantize(src, dst, len(pal), true, false)
}
