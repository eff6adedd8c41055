// Package emojimosaic turns a raster image into a mosaic of emoji tiles by
// nearest-mean-color matching against a glyph library.
package emojimosaic

import (
	"image"
)

// Grid is the division of a source image into glyph-sized cells. Cells at
// the right and bottom edges may extend past the source; ceiling division
// guarantees every source pixel belongs to exactly one cell and every cell
// maps to one full glyph tile in the output.
type Grid struct {
	CellWidth  int
	CellHeight int
	Cols       int
	Rows       int
}

// LayoutGrid computes the grid covering bounds with cells of the given
// size. An empty bounds yields a zero grid.
func LayoutGrid(bounds image.Rectangle, cellWidth, cellHeight int) Grid {
	g := Grid{CellWidth: cellWidth, CellHeight: cellHeight}
	if bounds.Empty() || cellWidth <= 0 || cellHeight <= 0 {
		return g
	}
	g.Cols = (bounds.Dx() + cellWidth - 1) / cellWidth
	g.Rows = (bounds.Dy() + cellHeight - 1) / cellHeight
	return g
}

// NumCells returns the total cell count.
func (g Grid) NumCells() int { return g.Cols * g.Rows }

// Cell returns the full-size rectangle of the cell in column col and row
// row, in a coordinate space starting at (0, 0).
func (g Grid) Cell(col, row int) image.Rectangle {
	x0 := col * g.CellWidth
	y0 := row * g.CellHeight
	return image.Rect(x0, y0, x0+g.CellWidth, y0+g.CellHeight)
}

// SourceCell returns the cell rectangle translated into the coordinate
// space of bounds, for sampling the source image. Edge cells are not
// clipped here; Average clips against the image itself.
func (g Grid) SourceCell(col, row int, bounds image.Rectangle) image.Rectangle {
	return g.Cell(col, row).Add(bounds.Min)
}

// OutputBounds is the canvas size the grid composes into:
// (Cols*CellWidth) x (Rows*CellHeight).
func (g Grid) OutputBounds() image.Rectangle {
	return image.Rect(0, 0, g.Cols*g.CellWidth, g.Rows*g.CellHeight)
}
