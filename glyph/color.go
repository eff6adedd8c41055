package glyph

import (
	"image"
)

// RGB is the representative color of a glyph or of a source image region:
// the alpha-weighted arithmetic mean of each channel, on a 0..255 scale.
type RGB struct {
	R, G, B float64
}

// DistSq returns the squared Euclidean distance between two colors over
// all three channels. Matching never needs the root, so we skip it.
func (c RGB) DistSq(other RGB) float64 {
	dr := c.R - other.R
	dg := c.G - other.G
	db := c.B - other.B
	return dr*dr + dg*dg + db*db
}

// Average computes the representative color of the region r of img.
// The region is clipped to the image bounds first, so callers may pass
// grid cells that run past the right or bottom edge.
//
// Pixels are weighted by their alpha: a fully transparent pixel contributes
// nothing to the mean. The second return value is false when the clipped
// region is empty or carries zero total alpha, in which case no meaningful
// color exists for it.
func Average(img image.Image, r image.Rectangle) (RGB, bool) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return RGB{}, false
	}
	var sumR, sumG, sumB, sumA uint64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			// RGBA returns alpha-premultiplied channels, so summing them
			// and dividing by the summed alpha is exactly the
			// alpha-weighted mean of the straight colors.
			pr, pg, pb, pa := img.At(x, y).RGBA()
			sumR += uint64(pr)
			sumG += uint64(pg)
			sumB += uint64(pb)
			sumA += uint64(pa)
		}
	}
	if sumA == 0 {
		return RGB{}, false
	}
	return RGB{
		R: float64(sumR) / float64(sumA) * 255.0,
		G: float64(sumG) / float64(sumA) * 255.0,
		B: float64(sumB) / float64(sumA) * 255.0,
	}, true
}
