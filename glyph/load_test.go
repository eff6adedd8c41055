package glyph

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a_black.png", solid(4, 4, color.RGBA{0, 0, 0, 255}))
	writePNG(t, dir, "b_white.png", solid(4, 4, color.RGBA{255, 255, 255, 255}))
	writePNG(t, dir, "notes.txt.bak", solid(4, 4, color.RGBA{1, 1, 1, 255})) // ignored ext

	lib, err := LoadDirectory(dir, LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if lib.Len() != 2 {
		t.Fatalf("loaded %d glyphs, want 2", lib.Len())
	}
	if lib.Width != 4 || lib.Height != 4 {
		t.Errorf("library size %dx%d, want 4x4 from the first glyph", lib.Width, lib.Height)
	}
	// Sorted name order: black before white.
	if lib.At(0).Name != "a_black.png" || lib.At(1).Name != "b_white.png" {
		t.Errorf("load order %q, %q; want sorted file names", lib.At(0).Name, lib.At(1).Name)
	}
	if !almostEqual(lib.At(0).Color.R, 0) || !almostEqual(lib.At(1).Color.R, 255) {
		t.Errorf("representative colors %+v, %+v", lib.At(0).Color, lib.At(1).Color)
	}
}

func TestLoadDirectoryNormalizesSizes(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "big.png", solid(8, 8, color.RGBA{10, 10, 10, 255}))
	writePNG(t, dir, "small.png", solid(2, 2, color.RGBA{200, 200, 200, 255}))

	lib, err := LoadDirectory(dir, LoadOptions{Size: 4})
	if err != nil {
		t.Fatal(err)
	}
	for _, g := range lib.Glyphs() {
		b := g.Image.Bounds()
		if b.Dx() != 4 || b.Dy() != 4 {
			t.Errorf("glyph %s is %dx%d after load, want 4x4", g.Name, b.Dx(), b.Dy())
		}
	}
}

func TestLoadDirectoryMissing(t *testing.T) {
	_, err := LoadDirectory(filepath.Join(t.TempDir(), "nope"), LoadOptions{})
	if !errors.Is(err, ErrLoad) {
		t.Errorf("missing directory: got %v, want ErrLoad", err)
	}
}

func TestLoadDirectoryEmpty(t *testing.T) {
	_, err := LoadDirectory(t.TempDir(), LoadOptions{})
	if !errors.Is(err, ErrLoad) {
		t.Errorf("empty directory: got %v, want ErrLoad", err)
	}
}

func TestLoadDirectorySkipsCorrupt(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "good.png", solid(4, 4, color.RGBA{9, 9, 9, 255}))
	if err := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	lib, err := LoadDirectory(dir, LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if lib.Len() != 1 {
		t.Errorf("loaded %d glyphs, want the corrupt one skipped", lib.Len())
	}
}

func TestLoadDirectoryOnlyCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDirectory(dir, LoadOptions{}); !errors.Is(err, ErrLoad) {
		t.Errorf("no usable glyphs: got %v, want ErrLoad", err)
	}
}

func TestLoadDirectoryDedupe(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png", solid(8, 8, color.RGBA{0, 0, 0, 255}))
	writePNG(t, dir, "b.png", solid(8, 8, color.RGBA{0, 0, 0, 255}))
	writePNG(t, dir, "c.png", checkerboard(8))

	lib, err := LoadDirectory(dir, LoadOptions{Dedupe: true})
	if err != nil {
		t.Fatal(err)
	}
	if lib.Len() != 2 {
		t.Errorf("dedupe kept %d glyphs, want 2 (one solid, one checker)", lib.Len())
	}
	if lib.At(0).Name != "a.png" {
		t.Error("dedupe must keep the first-loaded of a duplicate pair")
	}
}

func TestFromImages(t *testing.T) {
	imgs := []image.Image{
		solid(5, 5, color.RGBA{0, 0, 0, 255}),
		solid(9, 9, color.RGBA{255, 255, 255, 255}),
	}
	lib, err := FromImages(imgs, LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if lib.Width != 5 || lib.Height != 5 {
		t.Errorf("library size %dx%d, want 5x5 from the first image", lib.Width, lib.Height)
	}
	if lib.Len() != 2 {
		t.Errorf("loaded %d glyphs, want 2", lib.Len())
	}
}

func TestFromImagesEmpty(t *testing.T) {
	if _, err := FromImages(nil, LoadOptions{}); !errors.Is(err, ErrLoad) {
		t.Errorf("empty input: got %v, want ErrLoad", err)
	}
}

func checkerboard(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			} else {
				img.Set(x, y, color.RGBA{0, 0, 0, 255})
			}
		}
	}
	return img
}
