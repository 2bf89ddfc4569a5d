// Package surface provides the fixed-size RGBA raster that every drawing,
// fill and transform operation works on.
package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrBufferSize reports a pixel buffer whose length does not match the
// requested dimensions.
var ErrBufferSize = errors.New("pixel buffer size does not match dimensions")

// Surface is a width×height grid of colors stored row-major.
//
// Pixel and SetPixel do not check bounds. They are called in tight loops by
// the rasterizer and the flood fill, so callers clip before reaching them.
type Surface struct {
	width  int
	height int
	pix    []Color
}

// New returns a transparent surface. Negative dimensions are treated as zero.
func New(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Surface{width: width, height: height, pix: make([]Color, width*height)}
}

// NewFilled returns a surface with every pixel set to c.
func NewFilled(width, height int, c Color) *Surface {
	s := New(width, height)
	s.SetAll(c)
	return s
}

// FromRGBABytes builds a surface from a row-major buffer in R, G, B, A byte
// order, as produced by image decoders.
func FromRGBABytes(width, height int, pix []byte) (*Surface, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("dimensions %dx%d: %w", width, height, ErrBufferSize)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("%dx%d needs %d bytes, got %d: %w", width, height, width*height*4, len(pix), ErrBufferSize)
	}
	s := New(width, height)
	for i := range s.pix {
		o := i * 4
		s.pix[i] = RGBA(pix[o], pix[o+1], pix[o+2], pix[o+3])
	}
	return s, nil
}

// FromImage copies any image into a new surface anchored at (0, 0).
func FromImage(img image.Image) *Surface {
	b := img.Bounds()
	s := New(b.Dx(), b.Dy())
	if n, ok := img.(*image.NRGBA); ok {
		for y := 0; y < s.height; y++ {
			for x := 0; x < s.width; x++ {
				o := n.PixOffset(b.Min.X+x, b.Min.Y+y)
				s.pix[y*s.width+x] = RGBA(n.Pix[o], n.Pix[o+1], n.Pix[o+2], n.Pix[o+3])
			}
		}
		return s
	}
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			s.pix[y*s.width+x] = FromColor(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return s
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// Empty reports whether the surface has no pixels.
func (s *Surface) Empty() bool { return s.width == 0 || s.height == 0 }

// Pix exposes the row-major backing store for bulk reads and writes.
func (s *Surface) Pix() []Color { return s.pix }

// Contains reports whether (x, y) lies on the surface.
func (s *Surface) Contains(x, y int) bool {
	return uint(x) < uint(s.width) && uint(y) < uint(s.height)
}

// Pixel returns the color at (x, y) without bounds checking.
func (s *Surface) Pixel(x, y int) Color {
	return s.pix[y*s.width+x]
}

// SetPixel overwrites the color at (x, y) without bounds checking.
func (s *Surface) SetPixel(x, y int, c Color) {
	s.pix[y*s.width+x] = c
}

// SetAll sets every pixel to c.
func (s *Surface) SetAll(c Color) {
	if len(s.pix) == 0 {
		return
	}
	s.pix[0] = c
	for filled := 1; filled < len(s.pix); filled *= 2 {
		copy(s.pix[filled:], s.pix[:filled])
	}
}

// FillRect overwrites the part of r that lies on the surface with c.
func (s *Surface) FillRect(r image.Rectangle, c Color) {
	r = r.Intersect(s.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := s.pix[y*s.width+r.Min.X : y*s.width+r.Max.X]
		for i := range row {
			row[i] = c
		}
	}
}

// CopyRegion returns a new surface the size of r holding the pixels under it.
// Parts of r outside the surface are left transparent.
func (s *Surface) CopyRegion(r image.Rectangle) *Surface {
	r = r.Canon()
	out := New(r.Dx(), r.Dy())
	src := r.Intersect(s.Bounds())
	for y := src.Min.Y; y < src.Max.Y; y++ {
		dst := out.pix[(y-r.Min.Y)*out.width+(src.Min.X-r.Min.X):]
		copy(dst[:src.Dx()], s.pix[y*s.width+src.Min.X:y*s.width+src.Max.X])
	}
	return out
}

// Blit copies src onto s with its top-left corner at at, replacing whatever
// is underneath. Pixels falling outside s are dropped.
func (s *Surface) Blit(at image.Point, src *Surface) {
	dst := src.Bounds().Add(at).Intersect(s.Bounds())
	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		sy := y - at.Y
		sx := dst.Min.X - at.X
		copy(s.pix[y*s.width+dst.Min.X:y*s.width+dst.Max.X], src.pix[sy*src.width+sx:sy*src.width+sx+dst.Dx()])
	}
}

// AlphaBlit composites src over s at at. Each source alpha is first scaled by
// opacity/255, so the paste never fully erases what it covers unless both the
// source pixel and opacity are opaque.
func (s *Surface) AlphaBlit(at image.Point, opacity uint8, src *Surface) {
	dst := src.Bounds().Add(at).Intersect(s.Bounds())
	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		for x := dst.Min.X; x < dst.Max.X; x++ {
			c := src.pix[(y-at.Y)*src.width+(x-at.X)]
			a := uint8((uint32(c.A())*uint32(opacity) + 127) / 255)
			i := y*s.width + x
			s.pix[i] = blend(s.pix[i], c.WithAlpha(a))
		}
	}
}

// Clone returns a deep copy of s.
func (s *Surface) Clone() *Surface {
	out := &Surface{width: s.width, height: s.height, pix: make([]Color, len(s.pix))}
	copy(out.pix, s.pix)
	return out
}

// Swap exchanges the dimensions and contents of s and o. Pointers to either
// surface stay valid.
func (s *Surface) Swap(o *Surface) {
	s.width, o.width = o.width, s.width
	s.height, o.height = o.height, s.height
	s.pix, o.pix = o.pix, s.pix
}

// Replace makes s a copy of o, adopting its dimensions.
func (s *Surface) Replace(o *Surface) {
	if len(s.pix) != len(o.pix) {
		s.pix = make([]Color, len(o.pix))
	}
	s.width, s.height = o.width, o.height
	copy(s.pix, o.pix)
}

// Adopt takes ownership of o's backing store. o must not be used afterwards.
func (s *Surface) Adopt(o *Surface) {
	s.width, s.height, s.pix = o.width, o.height, o.pix
}

// Equal reports whether s and o have the same size and pixels.
func (s *Surface) Equal(o *Surface) bool {
	if s.width != o.width || s.height != o.height {
		return false
	}
	for i, c := range s.pix {
		if o.pix[i] != c {
			return false
		}
	}
	return true
}

// RGBABytes exports the pixels row-major in R, G, B, A byte order.
func (s *Surface) RGBABytes() []byte {
	out := make([]byte, len(s.pix)*4)
	for i, c := range s.pix {
		o := i * 4
		out[o] = c.R()
		out[o+1] = c.G()
		out[o+2] = c.B()
		out[o+3] = c.A()
	}
	return out
}

// NRGBA returns a standard library image sharing no memory with s.
func (s *Surface) NRGBA() *image.NRGBA {
	return &image.NRGBA{Pix: s.RGBABytes(), Stride: s.width * 4, Rect: s.Bounds()}
}

// ColorModel implements image.Image.
func (s *Surface) ColorModel() color.Model { return Model }

// Bounds implements image.Image.
func (s *Surface) Bounds() image.Rectangle { return image.Rect(0, 0, s.width, s.height) }

// At implements image.Image. Points outside the surface are transparent.
func (s *Surface) At(x, y int) color.Color {
	if !s.Contains(x, y) {
		return Transparent
	}
	return s.pix[y*s.width+x]
}

// Set implements draw.Image. Points outside the surface are ignored.
func (s *Surface) Set(x, y int, c color.Color) {
	if !s.Contains(x, y) {
		return
	}
	s.pix[y*s.width+x] = FromColor(c)
}
