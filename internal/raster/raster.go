// Package raster draws pixel-level primitives: lines, circles and regular
// polygons, plain or antialiased. Every pixel goes through a Plotter so the
// caller decides how writes land (masking, clipping).
package raster

import (
	"math"

	"github.com/example/rasterpaint/internal/surface"
)

// Plotter receives single-pixel writes. Implementations must tolerate
// coordinates outside their surface.
type Plotter interface {
	WritePixel(x, y int, c surface.Color)
}

// Line draws an integer Bresenham line from (x0, y0) to (x1, y1), both ends
// included. The error term starts at half the major axis, so exact diagonals
// step as a 4-connected staircase.
func Line(p Plotter, x0, y0, x1, y1 int, c surface.Color) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := -dy / 2
	if dx > dy {
		err = dx / 2
	}
	for {
		p.WritePixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dx {
			err -= dy
			x0 += sx
		}
		if e2 < dy {
			err += dx
			y0 += sy
		}
	}
}

// Circle draws a circle centred at (x0, y0). The sign of radius selects the
// mode: positive draws the outline with the midpoint algorithm, negative
// fills a disc of radius -radius with horizontal spans, zero plots the centre.
func Circle(p Plotter, x0, y0, radius int, c surface.Color) {
	switch {
	case radius > 0:
		outlineCircle(p, x0, y0, radius, c)
	case radius < 0:
		filledCircle(p, x0, y0, -radius, c)
	default:
		p.WritePixel(x0, y0, c)
	}
}

func outlineCircle(p Plotter, x0, y0, r int, c surface.Color) {
	x, y, err := r, 0, 0
	for x >= y {
		p.WritePixel(x0-x, y0+y, c)
		p.WritePixel(x0+x, y0+y, c)
		p.WritePixel(x0-y, y0+x, c)
		p.WritePixel(x0+y, y0+x, c)
		p.WritePixel(x0-x, y0-y, c)
		p.WritePixel(x0+x, y0-y, c)
		p.WritePixel(x0-y, y0-x, c)
		p.WritePixel(x0+y, y0-x, c)

		y++
		err += 1 + 2*y
		if 2*(err-x)+1 > 0 {
			x--
			err += 1 - 2*x
		}
	}
}

func filledCircle(p Plotter, x0, y0, r int, c surface.Color) {
	x, y, err := r, 0, -r
	for x >= y {
		lastY := y
		err += y
		y++
		err += y
		spans(p, x0, y0, x, lastY, c)
		if err >= 0 {
			if x != lastY {
				spans(p, x0, y0, lastY, x, c)
			}
			err -= x
			x--
			err -= x
		}
	}
}

// spans draws the two mirrored rows at y0±dy reaching dx either side of x0.
func spans(p Plotter, x0, y0, dx, dy int, c surface.Color) {
	Line(p, x0-dx, y0+dy, x0+dx, y0+dy, c)
	if dy != 0 {
		Line(p, x0-dx, y0-dy, x0+dx, y0-dy, c)
	}
}

// WuCircle draws an antialiased circle outline using Wu's algorithm. Each
// step splits the base alpha between the pixel on the ideal radius and its
// inward neighbour according to the fractional distance to the true circle.
func WuCircle(p Plotter, x0, y0, radius int, c surface.Color) {
	a := float64(c.A())
	x, y := radius, 0
	prev := 0.0

	p.WritePixel(x0+x, y0+y, c)
	p.WritePixel(x0-x, y0-y, c)
	p.WritePixel(x0+y, y0-x, c)
	p.WritePixel(x0-y, y0+x, c)

	for x > y {
		d := circleCoverage(radius, y)
		if d < prev {
			x--
		}
		outer := c.WithAlpha(uint8(a * (1 - d)))
		inner := c.WithAlpha(uint8(a * d))

		p.WritePixel(x0+x, y0+y, outer)
		p.WritePixel(x0+x-1, y0+y, inner)
		p.WritePixel(x0-x, y0+y, outer)
		p.WritePixel(x0-x+1, y0+y, inner)
		p.WritePixel(x0+x, y0-y, outer)
		p.WritePixel(x0+x-1, y0-y, inner)
		p.WritePixel(x0-x, y0-y, outer)
		p.WritePixel(x0-x+1, y0-y, inner)

		p.WritePixel(x0+y, y0+x, outer)
		p.WritePixel(x0+y, y0+x-1, inner)
		p.WritePixel(x0-y, y0+x, outer)
		p.WritePixel(x0-y, y0+x-1, inner)
		p.WritePixel(x0+y, y0-x, outer)
		p.WritePixel(x0+y, y0-x+1, inner)
		p.WritePixel(x0-y, y0-x, outer)
		p.WritePixel(x0-y, y0-x+1, inner)

		prev = d
		y++
	}
}

// circleCoverage is ceil(sqrt(r²-y²)) - sqrt(r²-y²).
func circleCoverage(r, y int) float64 {
	x := math.Sqrt(float64(r*r - y*y))
	return math.Ceil(x) - x
}

// WuLine draws an antialiased line using Wu's algorithm.
func WuLine(p Plotter, x0, y0, x1, y1 int, c surface.Color) {
	fx0, fy0, fx1, fy1 := float64(x0), float64(y0), float64(x1), float64(y1)
	a := float64(c.A())

	steep := math.Abs(fy1-fy0) > math.Abs(fx1-fx0)
	if steep {
		fx0, fy0 = fy0, fx0
		fx1, fy1 = fy1, fx1
	}
	if fx0 > fx1 {
		fx0, fx1 = fx1, fx0
		fy0, fy1 = fy1, fy0
	}
	dx := fx1 - fx0
	gradient := 1.0
	if dx != 0 {
		gradient = (fy1 - fy0) / dx
	}

	plot := func(x, y int, coverage float64) {
		col := c.WithAlpha(clampAlpha(coverage * a))
		if steep {
			p.WritePixel(y, x, col)
			return
		}
		p.WritePixel(x, y, col)
	}

	xend := math.Round(fx0)
	yend := fy0 + gradient*(xend-fx0)
	xgap := rfpart(fx0 + 0.5)
	xpx1 := int(xend)
	ypx1 := ipart(yend)
	plot(xpx1, ypx1, rfpart(yend)*xgap)
	plot(xpx1, ypx1+1, fpart(yend)*xgap)
	intery := yend + gradient

	xend = math.Round(fx1)
	yend = fy1 + gradient*(xend-fx1)
	xgap = fpart(fx1 + 0.5)
	xpx2 := int(xend)
	ypx2 := ipart(yend)
	plot(xpx2, ypx2, rfpart(yend)*xgap)
	plot(xpx2, ypx2+1, fpart(yend)*xgap)

	for x := xpx1 + 1; x < xpx2; x++ {
		plot(x, ipart(intery), rfpart(intery))
		plot(x, ipart(intery)+1, fpart(intery))
		intery += gradient
	}
}

func ipart(x float64) int { return int(math.Trunc(x)) }

func fpart(x float64) float64 {
	if x < 0 {
		return 1 - (x - math.Floor(x))
	}
	return x - math.Floor(x)
}

func rfpart(x float64) float64 { return 1 - fpart(x) }

func clampAlpha(v float64) uint8 {
	switch {
	case v > 255:
		return 255
	case v < 0:
		return 0
	}
	return uint8(v)
}

// Polygon draws a regular polygon with the given number of sides inscribed in
// a circle of radius r around (cx, cy), starting at angle radians. The outline
// is always closed.
func Polygon(p Plotter, cx, cy, r, sides int, angle float64, c surface.Color, antialiased bool) {
	if sides < 1 {
		return
	}
	xs := make([]int, sides+1)
	ys := make([]int, sides+1)
	for i := 0; i <= sides; i++ {
		t := angle + 2*math.Pi*float64(i)/float64(sides)
		xs[i] = int(float64(r)*math.Cos(t)) + cx
		ys[i] = int(float64(r)*math.Sin(t)) + cy
	}
	edge := Line
	if antialiased {
		edge = WuLine
	}
	for i := 0; i < sides; i++ {
		edge(p, xs[i], ys[i], xs[i+1], ys[i+1], c)
	}
	// The last vertex lands on the first up to rounding; join them explicitly.
	edge(p, xs[sides], ys[sides], xs[0], ys[0], c)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
