package canvas

import (
	"github.com/example/rasterpaint/internal/fill"
	"github.com/example/rasterpaint/internal/raster"
	"github.com/example/rasterpaint/internal/surface"
)

// The primitives below do not checkpoint; callers that want them undoable
// call UndoSave first.

// Line draws a one pixel wide line with both ends included.
func (c *Canvas) Line(x0, y0, x1, y1 int, col surface.Color) {
	raster.Line(c, x0, y0, x1, y1, col)
}

// WuLine draws an antialiased line.
func (c *Canvas) WuLine(x0, y0, x1, y1 int, col surface.Color) {
	raster.WuLine(c, x0, y0, x1, y1, col)
}

// Circle draws an outline for a positive radius, a filled disc of radius
// -radius for a negative one, and a single pixel for zero.
func (c *Canvas) Circle(x0, y0, radius int, col surface.Color) {
	raster.Circle(c, x0, y0, radius, col)
}

// WuCircle draws an antialiased circle outline.
func (c *Canvas) WuCircle(x0, y0, radius int, col surface.Color) {
	raster.WuCircle(c, x0, y0, radius, col)
}

// Polygon draws a closed regular polygon inscribed in the circle of radius r
// around (cx, cy), with its first vertex at angle radians.
func (c *Canvas) Polygon(cx, cy, r, sides int, angle float64, col surface.Color, antialiased bool) error {
	if sides < 3 {
		Logger().Warn("polygon rejected", "sides", sides)
		return ErrDegeneratePolygon
	}
	raster.Polygon(c, cx, cy, r, sides, angle, col, antialiased)
	return nil
}

// PaintCircle checkpoints and stamps a filled disc, the brush used by
// interactive painting.
func (c *Canvas) PaintCircle(x, y, radius int, col surface.Color) {
	c.UndoSave()
	if radius > 0 {
		radius = -radius
	}
	raster.Circle(c, x, y, radius, col)
}

// FloodFill fills the region around (x, y) without checkpointing. It
// returns the number of pixel writes.
func (c *Canvas) FloodFill(x, y int, col surface.Color) int {
	return fill.Flood(c, x, y, col)
}

// Fill checkpoints and then flood fills from (x, y). A seed off the surface
// is ignored without a checkpoint.
func (c *Canvas) Fill(x, y int, col surface.Color) int {
	if !c.image.Contains(x, y) {
		return 0
	}
	c.UndoSave()
	return fill.Flood(c, x, y, col)
}
