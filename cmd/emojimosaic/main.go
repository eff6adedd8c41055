// Command emojimosaic converts an image into a mosaic of emoji tiles.
//
//	emojimosaic -e ./emoji -d 20 -o out.png photo.jpg
//
// Without -e it tries to extract glyphs from the platform emoji font into
// ./emoji first (macOS only).
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	pb "github.com/cheggaaa/pb/v3"
	"github.com/joshdk/preview"
	log "github.com/sirupsen/logrus"

	"github.com/tilemancer/emojimosaic"
	"github.com/tilemancer/emojimosaic/fontextract"
)

var (
	output    = flag.String("o", "", "Output image path (default \"<input> - Output.png\")")
	glyphDir  = flag.String("e", "", "Directory of emoji images (default ./emoji, auto-extracted on macOS)")
	glyphSize = flag.Int("d", 20, "Edge length emoji are normalized to")
	maxSize   = flag.Int("s", 0, "Downscale the source so its longest edge is at most this (0 = off)")
	keepAlpha = flag.Bool("t", false, "Keep transparency instead of flattening onto white")
	grayscale = flag.Bool("gray", false, "Match against a grayscale version of the source")
	dither    = flag.Bool("dither", false, "Dither the source onto the glyph palette before matching")
	dedupe    = flag.Bool("dedupe", false, "Drop near-duplicate glyphs at load time")
	skipWhite = flag.Bool("skip-white", false, "Leave near-white cells empty")
	workers   = flag.Int("workers", 1, "Number of cell-matching goroutines")
	ansiOut   = flag.Bool("ansi", false, "Print a terminal preview of the cell colors")
	analyze   = flag.Bool("analyze", false, "Log the dominant colors of the source image")
	show      = flag.Bool("preview", false, "Open the finished mosaic in a preview window")
	verbose   = flag.Bool("v", false, "Verbose logging")
)

func main() {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	input := flag.Arg(0)
	if input == "" {
		fmt.Fprintln(os.Stderr, "usage: emojimosaic [flags] <input image>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	dir := *glyphDir
	if dir == "" {
		dir = "emoji"
		ensureExtracted(dir, *glyphSize)
	}

	opts := emojimosaic.Options{
		Input:     input,
		Output:    *output,
		GlyphDir:  dir,
		GlyphSize: *glyphSize,
		MaxSize:   *maxSize,
		KeepAlpha: *keepAlpha,
		Grayscale: *grayscale,
		Dither:    *dither,
		Dedupe:    *dedupe,
		Workers:   *workers,
	}
	if *skipWhite {
		opts.SkipWhite = 252
	}

	var bar *pb.ProgressBar
	opts.Cells = func(total int) {
		bar = pb.StartNew(total)
	}
	opts.Progress = func() {
		if bar != nil {
			bar.Increment()
		}
	}

	if *analyze {
		logDominantColors(input)
	}

	res, err := emojimosaic.Convert(opts)
	if err != nil {
		log.Fatal(err)
	}
	if bar != nil {
		bar.Finish()
	}
	fmt.Printf("wrote %s\n", res.Path)

	if *ansiOut {
		grid := res.Grid
		if err := emojimosaic.WriteANSI(os.Stdout, res.Image, grid.CellWidth, grid.CellHeight); err != nil {
			log.Warnf("ansi preview: %v", err)
		}
	}
	if *show {
		preview.Image(res.Image)
	}
}

// ensureExtracted populates dir from the platform emoji font when it is
// missing or empty, matching the original tool's auto-extraction.
func ensureExtracted(dir string, size int) {
	if entries, err := os.ReadDir(dir); err == nil && len(entries) > 0 {
		return
	}
	log.Info("no glyph directory given, extracting from the platform emoji font")
	fontPath, err := fontextract.DefaultFontPath()
	if err != nil {
		log.Fatalf("%v; pass -e with a directory of emoji images", err)
	}
	if _, err := fontextract.ExtractToDir(fontPath, dir, size); err != nil {
		log.Fatalf("%v; pass -e with a directory of emoji images", err)
	}
}

func logDominantColors(input string) {
	f, err := os.Open(input)
	if err != nil {
		log.Warnf("analyze: %v", err)
		return
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		log.Warnf("analyze: %v", err)
		return
	}
	pal, err := emojimosaic.DominantColors(img, 8)
	if err != nil {
		log.Warnf("analyze: %v", err)
		return
	}
	for i, c := range pal {
		r, g, b, _ := c.RGBA()
		log.Infof("dominant color %d: #%02x%02x%02x", i, uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}
}
