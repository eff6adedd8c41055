// Command swatch renders a glyph library as a hue-sorted contact sheet,
// one numbered tile per glyph. Handy for eyeballing what a directory of
// emoji actually contributes to a mosaic.
//
//	swatch -e ./emoji -d 20 -o sheet.png
package main

import (
	"flag"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pbnjay/pixfont"
	log "github.com/sirupsen/logrus"

	"github.com/tilemancer/emojimosaic/glyph"
)

var (
	glyphDir  = flag.String("e", "emoji", "Directory of emoji images")
	glyphSize = flag.Int("d", 20, "Edge length emoji are normalized to")
	output    = flag.String("o", "sheet.png", "Sheet output path")
	dedupe    = flag.Bool("dedupe", false, "Drop near-duplicate glyphs")
	verbose   = flag.Bool("v", false, "Verbose logging")
)

const labelHeight = 10

func main() {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	lib, err := glyph.LoadDirectory(*glyphDir, glyph.LoadOptions{
		Size:    *glyphSize,
		Flatten: true,
		Dedupe:  *dedupe,
	})
	if err != nil {
		log.Fatal(err)
	}

	// Sort a copy by hue so related colors sit together on the sheet;
	// library order itself stays untouched.
	glyphs := append([]*glyph.Glyph(nil), lib.Glyphs()...)
	sort.SliceStable(glyphs, func(i, j int) bool {
		return hue(glyphs[i].Color) < hue(glyphs[j].Color)
	})

	cols := int(math.Ceil(math.Sqrt(float64(len(glyphs)))))
	rows := (len(glyphs) + cols - 1) / cols
	cellW := lib.Width
	cellH := lib.Height + labelHeight
	sheet := image.NewRGBA(image.Rect(0, 0, cols*cellW, rows*cellH))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for i, g := range glyphs {
		x := (i % cols) * cellW
		y := (i / cols) * cellH
		r := image.Rect(x, y, x+lib.Width, y+lib.Height)
		draw.Draw(sheet, r, g.Image, g.Image.Bounds().Min, draw.Src)
		pixfont.DrawString(sheet, x, y+lib.Height+1, strconv.Itoa(i), color.Black)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, sheet); err != nil {
		log.Fatal(err)
	}
	log.Infof("wrote %d glyph swatches to %s", len(glyphs), *output)
}

func hue(c glyph.RGB) float64 {
	cc, _ := colorful.MakeColor(color.RGBA{
		R: uint8(math.Min(255, math.Max(0, c.R))),
		G: uint8(math.Min(255, math.Max(0, c.G))),
		B: uint8(math.Min(255, math.Max(0, c.B))),
		A: 0xff,
	})
	h, _, _ := cc.Hsv()
	return h
}
