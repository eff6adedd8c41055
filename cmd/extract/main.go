// Command extract pulls emoji PNGs out of a color emoji font file and
// writes them into a directory usable as an emojimosaic glyph library.
//
//	extract -d 20 -out ./emoji
package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/tilemancer/emojimosaic/fontextract"
)

var (
	fontPath = flag.String("font", "", "Font file to scan (default: the platform emoji font)")
	size     = flag.Int("d", 20, "Glyph strike size to extract")
	outDir   = flag.String("out", "emoji", "Directory to write <n>.png files into")
	verbose  = flag.Bool("v", false, "Verbose logging")
)

func main() {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	path := *fontPath
	if path == "" {
		var err error
		path, err = fontextract.DefaultFontPath()
		if err != nil {
			log.Fatal(err)
		}
	}

	n, err := fontextract.ExtractToDir(path, *outDir, *size)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintf(os.Stdout, "extracted %d glyphs into %s\n", n, *outDir)
}
