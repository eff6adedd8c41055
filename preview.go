package emojimosaic

import (
	"fmt"
	"image"
	"io"

	ansi "github.com/gookit/color"

	"github.com/tilemancer/emojimosaic/glyph"
)

// WriteANSI renders the cell colors of src as truecolor blocks, two
// terminal columns per cell. It is a cheap preview of the mosaic geometry
// and palette before a full render; cells with nothing to sample print as
// plain spaces.
func WriteANSI(w io.Writer, src image.Image, cellWidth, cellHeight int) error {
	bounds := src.Bounds()
	grid := LayoutGrid(bounds, cellWidth, cellHeight)
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			avg, ok := glyph.Average(src, grid.SourceCell(col, row, bounds))
			if !ok {
				if _, err := fmt.Fprint(w, "  "); err != nil {
					return err
				}
				continue
			}
			block := ansi.RGB(uint8(avg.R), uint8(avg.G), uint8(avg.B), true)
			if _, err := fmt.Fprint(w, block.Sprint("  ")); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
