package glyph

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/steakknife/hamming"
)

// AverageHash returns a 64-bit perceptual hash of img: the image is
// downsampled to 8x8, converted to luma, and each bit records whether the
// pixel is brighter than the mean. Near-identical glyphs (skin-tone
// variants, re-encodes) land within a few bits of each other.
func AverageHash(img image.Image) uint64 {
	small := resize.Resize(8, 8, img, resize.Bilinear)
	b := small.Bounds()

	var luma [64]uint32
	var sum uint64
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := small.At(x, y).RGBA()
			// BT.601 integer luma weights.
			l := (299*r + 587*g + 114*bl) / 1000
			luma[i] = l
			sum += uint64(l)
			i++
		}
	}
	mean := uint32(sum / 64)

	var h uint64
	for i, l := range luma {
		if l > mean {
			h |= 1 << uint(i)
		}
	}
	return h
}

// Distance returns the Hamming distance between two average hashes.
func Distance(a, b uint64) int {
	return hamming.Uint64(a, b)
}
