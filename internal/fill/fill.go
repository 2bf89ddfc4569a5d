// Package fill implements the scanline flood fill.
package fill

import "github.com/example/rasterpaint/internal/surface"

// Target is the surface a fill runs against. Pixel reads the current color;
// WritePixel is where fill writes land, so a masked writer may store a color
// different from the one requested.
type Target interface {
	Width() int
	Height() int
	Pixel(x, y int) surface.Color
	WritePixel(x, y int, c surface.Color)
}

type phase uint8

const (
	phaseRun phase = iota
	phaseAboveRight
	phaseAboveLeft
	phaseBelowRight
	phaseBelowLeft
)

// frame is one pending scanline: the seed column, the color the seed ended up
// with, and where the neighbour scans have got to.
type frame struct {
	x, y  int
	res   surface.Color
	phase phase
	x1    int
}

// Flood replaces the 4-connected region of exactly matching packed colors
// around (x, y) with c. Comparisons include alpha, so a pixel that differs
// only in alpha is a boundary.
//
// Each scanline is filled right then left from its seed. Neighbour rows are
// scanned along every column that holds the color actually written at the
// seed, which under masking may differ from c. The scans run above-right,
// above-left, below-right, below-left and descend into a matching neighbour
// as soon as it is found. Frames live on an explicit stack, so large
// regions do not grow the goroutine stack.
//
// A seed outside the target, or a fill with the color already there, does
// nothing. It returns the number of pixel writes made.
func Flood(t Target, x, y int, c surface.Color) int {
	w, h := t.Width(), t.Height()
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0
	}
	old := t.Pixel(x, y)
	if old == c {
		return 0
	}

	writes := 0
	stack := []frame{{x: x, y: y}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		switch f.phase {
		case phaseRun:
			if t.Pixel(f.x, f.y) != old {
				stack = stack[:len(stack)-1]
				continue
			}
			for x1 := f.x; x1 < w && t.Pixel(x1, f.y) == old; x1++ {
				t.WritePixel(x1, f.y, c)
				writes++
			}
			f.res = t.Pixel(f.x, f.y)
			if f.res == old {
				// The write was swallowed entirely; scanning neighbours
				// against old would revisit this row forever.
				stack = stack[:len(stack)-1]
				continue
			}
			for x1 := f.x - 1; x1 >= 0 && t.Pixel(x1, f.y) == old; x1-- {
				t.WritePixel(x1, f.y, c)
				writes++
			}
			f.phase, f.x1 = phaseAboveRight, f.x

		case phaseAboveRight, phaseAboveLeft, phaseBelowRight, phaseBelowLeft:
			ny, step := f.y-1, 1
			if f.phase == phaseBelowRight || f.phase == phaseBelowLeft {
				ny = f.y + 1
			}
			if f.phase == phaseAboveLeft || f.phase == phaseBelowLeft {
				step = -1
			}
			var child *frame
			for f.x1 >= 0 && f.x1 < w && t.Pixel(f.x1, f.y) == f.res {
				x1 := f.x1
				f.x1 += step
				if ny >= 0 && ny < h && t.Pixel(x1, ny) == old {
					child = &frame{x: x1, y: ny}
					break
				}
			}
			if child != nil {
				stack = append(stack, *child)
				continue
			}
			if f.phase == phaseBelowLeft {
				stack = stack[:len(stack)-1]
				continue
			}
			f.phase++
			f.x1 = f.x
			if f.phase == phaseAboveLeft || f.phase == phaseBelowLeft {
				f.x1 = f.x - 1
			}
		}
	}
	return writes
}
