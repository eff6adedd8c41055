package fontextract

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/tilemancer/emojimosaic/glyph"
)

func encodePNG(t *testing.T, size int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// fakeFont interleaves PNG blobs with filler bytes, the way the emoji font
// embeds strikes between table data.
func fakeFont(blobs ...[]byte) []byte {
	font := []byte("ttcf\x00\x01\x00\x00 some sfnt tables ")
	for _, b := range blobs {
		font = append(font, b...)
		font = append(font, []byte("\x00\x00padding between glyphs\x00")...)
	}
	return font
}

func TestExtractBySize(t *testing.T) {
	small := encodePNG(t, 4, color.RGBA{255, 0, 0, 255})
	big := encodePNG(t, 8, color.RGBA{0, 255, 0, 255})
	font := fakeFont(small, big, small)

	got := Extract(font, 4)
	if len(got) != 2 {
		t.Fatalf("extracted %d glyphs of size 4, want 2", len(got))
	}
	for i, blob := range got {
		img, err := png.Decode(bytes.NewReader(blob))
		if err != nil {
			t.Fatalf("blob %d does not decode: %v", i, err)
		}
		if img.Bounds().Dx() != 4 {
			t.Errorf("blob %d is %dpx wide, want 4", i, img.Bounds().Dx())
		}
	}

	if got := Extract(font, 8); len(got) != 1 {
		t.Errorf("extracted %d glyphs of size 8, want 1", len(got))
	}
	if got := Extract(font, 16); len(got) != 0 {
		t.Errorf("extracted %d glyphs of size 16, want 0", len(got))
	}
}

func TestExtractTruncated(t *testing.T) {
	blob := encodePNG(t, 4, color.RGBA{1, 2, 3, 255})
	font := fakeFont(blob)
	// Chop the font mid-stream: the partial glyph must be dropped, not
	// returned corrupt.
	if got := Extract(font[:len(blob)/2], 4); len(got) != 0 {
		t.Errorf("extracted %d glyphs from a truncated font, want 0", len(got))
	}
}

func TestExtractFileMissing(t *testing.T) {
	_, err := ExtractFile(filepath.Join(t.TempDir(), "nope.ttc"), 4)
	if !errors.Is(err, glyph.ErrLoad) {
		t.Errorf("got %v, want glyph.ErrLoad", err)
	}
}

func TestExtractFileNoMatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.ttf")
	if err := os.WriteFile(path, []byte("no pngs in here"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ExtractFile(path, 4); !errors.Is(err, glyph.ErrLoad) {
		t.Errorf("got %v, want glyph.ErrLoad", err)
	}
}

func TestExtractToDir(t *testing.T) {
	fontPath := filepath.Join(t.TempDir(), "font.ttc")
	font := fakeFont(
		encodePNG(t, 4, color.RGBA{255, 0, 0, 255}),
		encodePNG(t, 4, color.RGBA{0, 0, 255, 255}),
	)
	if err := os.WriteFile(fontPath, font, 0o644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(t.TempDir(), "emoji")
	n, err := ExtractToDir(fontPath, outDir, 4)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("wrote %d files, want 2", n)
	}

	// The written directory feeds straight into the glyph loader.
	lib, err := glyph.LoadDirectory(outDir, glyph.LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if lib.Len() != 2 || lib.Width != 4 {
		t.Errorf("loaded %d glyphs at %dpx, want 2 at 4px", lib.Len(), lib.Width)
	}
}

func TestLibraryFromFont(t *testing.T) {
	fontPath := filepath.Join(t.TempDir(), "font.ttf")
	font := fakeFont(
		encodePNG(t, 6, color.RGBA{10, 10, 10, 255}),
		encodePNG(t, 6, color.RGBA{240, 240, 240, 255}),
	)
	if err := os.WriteFile(fontPath, font, 0o644); err != nil {
		t.Fatal(err)
	}
	lib, err := Library(fontPath, 6, glyph.LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if lib.Len() != 2 || lib.Width != 6 || lib.Height != 6 {
		t.Errorf("library %d glyphs %dx%d, want 2 of 6x6", lib.Len(), lib.Width, lib.Height)
	}
}
