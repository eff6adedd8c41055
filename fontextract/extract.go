// Package fontextract pulls emoji bitmaps out of a color emoji font.
// Apple Color Emoji stores its glyphs as plain PNG streams inside the font
// file, one copy per strike size, so a signature scan plus a chunk walk is
// enough to recover every glyph of one size. The result feeds the glyph
// loader the same (image bytes, known size) entries a directory would.
package fontextract

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/tilemancer/emojimosaic/glyph"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// Default install locations of the Apple color emoji font; the extension
// changed from .ttf to .ttc in OSX 10.12.
var fontCandidates = []string{
	"/System/Library/Fonts/Apple Color Emoji.ttc",
	"/System/Library/Fonts/Apple Color Emoji.ttf",
}

// DefaultFontPath returns the installed emoji font file, or an error
// wrapping glyph.ErrLoad when none of the known locations exist.
func DefaultFontPath() (string, error) {
	for _, path := range fontCandidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: no color emoji font found (only bundled on macOS)", glyph.ErrLoad)
}

// Extract returns every PNG stream in font whose IHDR width equals size.
// Malformed or truncated streams are skipped.
func Extract(font []byte, size int) [][]byte {
	var out [][]byte
	offset := 0
	for {
		i := bytes.Index(font[offset:], pngSignature)
		if i < 0 {
			return out
		}
		start := offset + i
		offset = start + len(pngSignature)

		// IHDR width sits 16 bytes past the signature start.
		if start+20 > len(font) {
			return out
		}
		if int(binary.BigEndian.Uint32(font[start+16:start+20])) != size {
			continue
		}
		if blob, end := readPNG(font, start); blob != nil {
			out = append(out, blob)
			offset = end
		}
	}
}

// readPNG walks the chunk list from the signature at start through IEND and
// returns the whole stream plus the offset just past it. Returns nil when
// the stream runs off the end of the buffer.
func readPNG(font []byte, start int) ([]byte, int) {
	// Signature (8) + IHDR: 4 length + 4 type + 13 data + 4 crc.
	pos := start + 8 + 25
	if pos > len(font) {
		return nil, 0
	}
	for {
		if pos+8 > len(font) {
			return nil, 0
		}
		chunkLen := int(binary.BigEndian.Uint32(font[pos:pos+4])) + 12
		if pos+chunkLen > len(font) {
			return nil, 0
		}
		isEnd := bytes.Equal(font[pos+4:pos+8], []byte("IEND"))
		pos += chunkLen
		if isEnd {
			return font[start:pos], pos
		}
	}
}

// ExtractFile reads the font at path and extracts all glyphs of the given
// size.
func ExtractFile(path string, size int) ([][]byte, error) {
	font, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", glyph.ErrLoad, err)
	}
	blobs := Extract(font, size)
	if len(blobs) == 0 {
		return nil, fmt.Errorf("%w: no %dpx glyphs in %s", glyph.ErrLoad, size, path)
	}
	return blobs, nil
}

// ExtractToDir writes every extracted glyph as <n>.png under dir, creating
// the directory if needed. Returns the number of files written.
func ExtractToDir(fontPath, dir string, size int) (int, error) {
	blobs, err := ExtractFile(fontPath, size)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("%w: %v", glyph.ErrLoad, err)
	}
	for i, blob := range blobs {
		name := filepath.Join(dir, fmt.Sprintf("%d.png", i))
		if err := os.WriteFile(name, blob, 0o644); err != nil {
			return i, fmt.Errorf("%w: %v", glyph.ErrLoad, err)
		}
	}
	log.Infof("extracted %d glyphs of %dpx from %s", len(blobs), size, fontPath)
	return len(blobs), nil
}

// Library decodes the extracted blobs straight into a glyph library,
// bypassing the filesystem.
func Library(fontPath string, size int, opts glyph.LoadOptions) (*glyph.Library, error) {
	blobs, err := ExtractFile(fontPath, size)
	if err != nil {
		return nil, err
	}
	imgs := make([]image.Image, 0, len(blobs))
	for _, blob := range blobs {
		img, err := png.Decode(bytes.NewReader(blob))
		if err != nil {
			log.Warnf("skipping undecodable embedded glyph: %v", err)
			continue
		}
		imgs = append(imgs, img)
	}
	return glyph.FromImages(imgs, opts)
}
