// Package render draws the editor window's chrome: the transparency
// backdrop, the drop shadow under the picture and the status line.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Face is the font used for status text.
var Face font.Face = basicfont.Face7x13

// Checkerboard fills r of dst with squares of the given size, light at the
// origin.
func Checkerboard(dst *image.RGBA, r image.Rectangle, size int, light, dark color.Color) {
	if size < 1 {
		size = 1
	}
	r = r.Intersect(dst.Bounds())
	lu, du := image.NewUniform(light), image.NewUniform(dark)
	for y := r.Min.Y - r.Min.Y%size; y < r.Max.Y; y += size {
		for x := r.Min.X - r.Min.X%size; x < r.Max.X; x += size {
			cell := image.Rect(x, y, x+size, y+size).Intersect(r)
			src := lu
			if ((x/size)+(y/size))%2 != 0 {
				src = du
			}
			draw.Draw(dst, cell, src, image.Point{}, draw.Src)
		}
	}
}

// TextWidth returns the advance of s in Face.
func TextWidth(s string) int {
	return font.MeasureString(Face, s).Ceil()
}

// StatusBar fills r with bg and writes text left-aligned and vertically
// centred in fg, clipped to r.
func StatusBar(dst *image.RGBA, r image.Rectangle, text string, fg, bg color.Color) {
	draw.Draw(dst, r, image.NewUniform(bg), image.Point{}, draw.Src)
	if text == "" {
		return
	}
	clip, ok := dst.SubImage(r).(*image.RGBA)
	if !ok {
		return
	}
	m := Face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	d := &font.Drawer{Dst: clip, Src: image.NewUniform(fg), Face: Face}
	d.Dot = fixed.P(r.Min.X+4, r.Min.Y+(r.Dy()-ascent-descent)/2+ascent)
	d.DrawString(text)
}

// Frame draws a one pixel outline just outside r.
func Frame(dst *image.RGBA, r image.Rectangle, c color.Color) {
	u := image.NewUniform(c)
	o := r.Inset(-1)
	draw.Draw(dst, image.Rect(o.Min.X, o.Min.Y, o.Max.X, r.Min.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(o.Min.X, r.Max.Y, o.Max.X, o.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(o.Min.X, r.Min.Y, r.Min.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X, r.Min.Y, o.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}
