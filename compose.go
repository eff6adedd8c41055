package emojimosaic

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/tilemancer/emojimosaic/glyph"
)

// ProgressFunc is called once per finished cell so a caller can drive a
// progress indicator. It has no semantic role. When the compositor runs
// with more than one worker the function must be safe for concurrent use.
type ProgressFunc func()

// Compositor assembles a mosaic from a source image and a glyph library.
// The zero value is not usable; Library must be set.
type Compositor struct {
	Library *glyph.Library

	// Workers is the number of goroutines matching cells. Cells are
	// independent and write to disjoint canvas regions, so no locking is
	// needed; values below 2 select the sequential path. The output is
	// identical for any worker count.
	Workers int

	// Progress, when non-nil, is invoked after each composed cell.
	Progress ProgressFunc

	// Background fills the canvas before tiles are pasted and is the tile
	// color of record for cells with no sampleable pixels (fully
	// transparent regions). Nil means opaque white.
	Background color.Color

	// SkipWhite, when non-zero, leaves cells whose representative color
	// has every channel at or above the threshold as bare background.
	// Avoids fringing around subjects on white or transparent sources.
	SkipWhite uint8
}

// Compose builds the output canvas for src. The canvas measures
// (ceil(W/gw)*gw) x (ceil(H/gh)*gh) for a gw x gh glyph library. Each cell
// samples only its in-bounds source pixels but always receives a full-size
// glyph tile, pasted with no blending.
func (c *Compositor) Compose(src image.Image) (*image.RGBA, error) {
	if c.Library == nil || c.Library.Len() == 0 {
		return nil, fmt.Errorf("%w: compositor needs a non-empty glyph library", ErrLoad)
	}

	bounds := src.Bounds()
	grid := LayoutGrid(bounds, c.Library.Width, c.Library.Height)
	log.Debugf("composing %dx%d cells of %dx%d px from %v",
		grid.Cols, grid.Rows, grid.CellWidth, grid.CellHeight, bounds)

	bg := c.Background
	if bg == nil {
		bg = color.White
	}
	out := image.NewRGBA(grid.OutputBounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	if grid.NumCells() == 0 {
		return out, nil
	}

	if c.Workers > 1 {
		c.composeParallel(src, grid, out)
	} else {
		c.composeRows(src, grid, out, 0, grid.Rows, make(map[glyph.RGB]*glyph.Glyph))
	}
	return out, nil
}

// composeParallel fans rows out to Workers goroutines. Each worker owns a
// disjoint set of canvas rows and its own color memo.
func (c *Compositor) composeParallel(src image.Image, grid Grid, out *image.RGBA) {
	rows := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < c.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			memo := make(map[glyph.RGB]*glyph.Glyph)
			for row := range rows {
				c.composeRows(src, grid, out, row, row+1, memo)
			}
		}()
	}
	for row := 0; row < grid.Rows; row++ {
		rows <- row
	}
	close(rows)
	wg.Wait()
}

func (c *Compositor) composeRows(src image.Image, grid Grid, out *image.RGBA, fromRow, toRow int, memo map[glyph.RGB]*glyph.Glyph) {
	bounds := src.Bounds()
	for row := fromRow; row < toRow; row++ {
		for col := 0; col < grid.Cols; col++ {
			c.composeCell(src, grid, out, col, row, bounds, memo)
			if c.Progress != nil {
				c.Progress()
			}
		}
	}
}

func (c *Compositor) composeCell(src image.Image, grid Grid, out *image.RGBA, col, row int, bounds image.Rectangle, memo map[glyph.RGB]*glyph.Glyph) {
	avg, ok := glyph.Average(src, grid.SourceCell(col, row, bounds))
	if !ok {
		// Nothing to sample: the cell stays background.
		return
	}
	if c.skipAsWhite(avg) {
		return
	}
	g, seen := memo[avg]
	if !seen {
		g = c.Library.Nearest(avg)
		memo[avg] = g
	}
	dst := grid.Cell(col, row)
	draw.Draw(out, dst, g.Image, g.Image.Bounds().Min, draw.Src)
}

func (c *Compositor) skipAsWhite(avg glyph.RGB) bool {
	if c.SkipWhite == 0 {
		return false
	}
	t := float64(c.SkipWhite)
	return avg.R >= t && avg.G >= t && avg.B >= t
}
