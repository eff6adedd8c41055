package glyph

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	log "github.com/sirupsen/logrus"
	_ "golang.org/x/image/webp"
)

// LoadOptions control how a glyph library is built.
type LoadOptions struct {
	// Size is the target edge length glyphs are normalized to. When zero
	// the first decoded glyph's dimensions become the library size.
	Size int
	// Flatten composites each glyph onto an opaque white background, so
	// pasted tiles are fully opaque. Off, the glyph alpha is kept.
	Flatten bool
	// Dedupe drops glyphs whose average hash is within DedupeDistance bits
	// of an already loaded glyph. Emoji sets are full of skin-tone and
	// presentation variants that tile identically.
	Dedupe         bool
	DedupeDistance int
}

// SupportedImage reports whether a file extension belongs to a decodable
// glyph format.
func SupportedImage(ext string) bool {
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return true
	default:
		return false
	}
}

// LoadDirectory builds a Library from every decodable image below dir.
// Files are visited in sorted name order so the library order, and with it
// the nearest-match tie-break, is deterministic across runs. Files that
// fail to decode are skipped with a warning; the whole load fails with an
// error wrapping ErrLoad when the directory cannot be read or not a single
// usable glyph remains.
func LoadDirectory(dir string, opts LoadOptions) (*Library, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	var lib *Library
	var hashes []uint64
	skipped := 0
	for _, entry := range entries {
		if entry.IsDir() || !SupportedImage(filepath.Ext(entry.Name())) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			log.Warnf("skipping glyph %s: %v", path, err)
			skipped++
			continue
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			log.Warnf("skipping undecodable glyph %s: %v", path, err)
			skipped++
			continue
		}
		if lib == nil {
			w, h := targetSize(img, opts.Size)
			lib, err = New(w, h)
			if err != nil {
				return nil, err
			}
		}
		g, ok := prepare(img, entry.Name(), lib.Width, lib.Height, opts.Flatten)
		if !ok {
			log.Warnf("skipping fully transparent glyph %s", path)
			skipped++
			continue
		}
		if opts.Dedupe {
			h := AverageHash(g.Image)
			if isDuplicate(h, hashes, opts.DedupeDistance) {
				log.Debugf("dropping near-duplicate glyph %s", path)
				continue
			}
			hashes = append(hashes, h)
		}
		if err := lib.Add(g); err != nil {
			return nil, err
		}
	}

	if lib == nil || lib.Len() == 0 {
		return nil, fmt.Errorf("%w: no usable glyph images in %s", ErrLoad, dir)
	}
	log.Infof("loaded %d glyphs (%dx%d) from %s, %d skipped",
		lib.Len(), lib.Width, lib.Height, dir, skipped)
	return lib, nil
}

// FromImages builds a Library from already decoded images, in slice order.
// This is the entry point for glyph sources that are not directories, such
// as the font extractor. Semantics match LoadDirectory.
func FromImages(imgs []image.Image, opts LoadOptions) (*Library, error) {
	var lib *Library
	var hashes []uint64
	for i, img := range imgs {
		if lib == nil {
			w, h := targetSize(img, opts.Size)
			var err error
			lib, err = New(w, h)
			if err != nil {
				return nil, err
			}
		}
		g, ok := prepare(img, fmt.Sprintf("#%d", i), lib.Width, lib.Height, opts.Flatten)
		if !ok {
			continue
		}
		if opts.Dedupe {
			h := AverageHash(g.Image)
			if isDuplicate(h, hashes, opts.DedupeDistance) {
				continue
			}
			hashes = append(hashes, h)
		}
		if err := lib.Add(g); err != nil {
			return nil, err
		}
	}
	if lib == nil || lib.Len() == 0 {
		return nil, fmt.Errorf("%w: no usable glyph images", ErrLoad)
	}
	return lib, nil
}

func targetSize(first image.Image, requested int) (int, int) {
	if requested > 0 {
		return requested, requested
	}
	b := first.Bounds()
	return b.Dx(), b.Dy()
}

// prepare normalizes a decoded image to the library dimensions and computes
// its representative color. Returns false for images carrying zero alpha,
// which have no color to match against.
func prepare(img image.Image, name string, width, height int, flatten bool) (*Glyph, bool) {
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		img = resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
	}

	avg, ok := Average(img, img.Bounds())
	if !ok {
		return nil, false
	}

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	if flatten {
		draw.Draw(rgba, rgba.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Over)
	} else {
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}

	return &Glyph{Image: rgba, Color: avg, Name: name}, true
}

func isDuplicate(h uint64, seen []uint64, maxDist int) bool {
	for _, other := range seen {
		if Distance(h, other) <= maxDist {
			return true
		}
	}
	return false
}
