package emojimosaic

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/effect"
	"github.com/nfnt/resize"
	log "github.com/sirupsen/logrus"
	_ "golang.org/x/image/webp"

	"github.com/tilemancer/emojimosaic/glyph"
)

// Options configure one conversion run.
type Options struct {
	// Input is the source image path. Required.
	Input string
	// Output is the destination path; the extension selects the encoder.
	// Empty picks "<input> - Output.png" (counter-suffixed if taken).
	Output string
	// GlyphDir is the directory of emoji images. Required.
	GlyphDir string
	// GlyphSize is the edge length glyphs are normalized to; zero derives
	// the size from the first glyph.
	GlyphSize int

	// MaxSize, when non-zero, downscales the source so its longest edge
	// is at most MaxSize pixels before tiling.
	MaxSize int
	// KeepAlpha keeps glyph transparency and composes onto a transparent
	// canvas instead of flattening everything onto white.
	KeepAlpha bool
	// Grayscale converts the source to grayscale before matching.
	Grayscale bool
	// Dither error-diffuses the source onto the library palette before
	// cells are sampled.
	Dither bool
	// Dedupe drops near-duplicate glyphs at load time.
	Dedupe bool
	// SkipWhite and Workers are passed through to the Compositor.
	SkipWhite uint8
	Workers   int

	// Progress receives one call per composed cell; Cells is told the
	// total beforehand so a bar can be sized.
	Progress ProgressFunc
	Cells    func(total int)
}

// Result describes a finished conversion.
type Result struct {
	// Path is where the mosaic was written, after default naming.
	Path string
	// Image is the composed canvas.
	Image *image.RGBA
	// Grid is the cell layout the canvas was composed from.
	Grid Grid
}

// Convert runs the whole pipeline: load the glyph library, decode the
// source, compose the mosaic, encode the result. The library is loaded
// first so an unusable glyph directory fails before the source is touched.
func Convert(opts Options) (*Result, error) {
	lib, err := glyph.LoadDirectory(opts.GlyphDir, glyph.LoadOptions{
		Size:    opts.GlyphSize,
		Flatten: !opts.KeepAlpha,
		Dedupe:  opts.Dedupe,
	})
	if err != nil {
		return nil, err
	}

	src, format, err := decodeImage(opts.Input)
	if err != nil {
		return nil, err
	}
	src = preprocess(src, lib, opts)

	comp := &Compositor{
		Library:   lib,
		Workers:   opts.Workers,
		Progress:  opts.Progress,
		SkipWhite: opts.SkipWhite,
	}
	if opts.KeepAlpha {
		comp.Background = color.Transparent
	}
	grid := LayoutGrid(src.Bounds(), lib.Width, lib.Height)
	if opts.Cells != nil {
		opts.Cells(grid.NumCells())
	}
	out, err := comp.Compose(src)
	if err != nil {
		return nil, err
	}

	dest := opts.Output
	if dest == "" {
		dest = defaultOutputPath(opts.Input)
	}
	if err := encodeImage(dest, out, format); err != nil {
		return nil, err
	}
	return &Result{Path: dest, Image: out, Grid: grid}, nil
}

func decodeImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return img, format, nil
}

func preprocess(src image.Image, lib *glyph.Library, opts Options) image.Image {
	if opts.MaxSize > 0 {
		src = resize.Thumbnail(uint(opts.MaxSize), uint(opts.MaxSize), src, resize.Lanczos3)
	}
	if opts.Grayscale {
		src = effect.Grayscale(src)
	}
	if opts.Dither {
		src = DitherToPalette(src, lib.Palette())
	}
	return src
}

// encodeImage writes img to path with the encoder named by the extension.
// An extensionless path falls back to the source image's decoded format.
func encodeImage(path string, img image.Image, srcFormat string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		format = srcFormat
	}

	var encode func(w io.Writer, img image.Image) error
	switch format {
	case "png":
		encode = png.Encode
	case "jpg", "jpeg":
		encode = func(w io.Writer, img image.Image) error { return jpeg.Encode(w, img, nil) }
	case "gif":
		encode = func(w io.Writer, img image.Image) error { return gif.Encode(w, img, nil) }
	default:
		// Reject before touching the filesystem: a failed run leaves no
		// partial output behind.
		return fmt.Errorf("%w: unsupported output format %q", ErrEncode, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncode, path, err)
	}
	log.Infof("wrote %s (%v)", path, img.Bounds().Size())
	return nil
}

// defaultOutputPath names the output after the input, never clobbering an
// existing file.
func defaultOutputPath(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	path := base + " - Output.png"
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = fmt.Sprintf("%s - Output (%d).png", base, n)
	}
}
