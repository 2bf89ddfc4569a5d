package surface

import "image/color"

// Color is a straight-alpha pixel packed as a<<24 | r<<16 | g<<8 | b.
// Two colors are equal exactly when their packed values are equal, which lets
// fills and comparisons work on the raw number without splitting channels.
type Color uint32

// Common colors.
const (
	Transparent Color = 0
	Black       Color = 0xFF000000
	White       Color = 0xFFFFFFFF
)

// RGBA packs the four channels into a Color.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c) }

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c >> 24) }

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	return c&0x00FFFFFF | Color(a)<<24
}

// NRGBA converts c to the standard library's straight-alpha color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// FromColor converts any color.Color into a packed Color.
func FromColor(c color.Color) Color {
	if pc, ok := c.(Color); ok {
		return pc
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA(n.R, n.G, n.B, n.A)
}

// Model converts arbitrary colors to Color.
var Model = color.ModelFunc(func(c color.Color) color.Color { return FromColor(c) })

// blend composites src over dst using src's straight alpha.
func blend(dst, src Color) Color {
	sa := uint32(src.A())
	switch sa {
	case 0:
		return dst
	case 255:
		return src
	}
	inv := 255 - sa
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*sa + uint32(d)*inv + 127) / 255)
	}
	a := sa + (uint32(dst.A())*inv+127)/255
	return RGBA(mix(src.R(), dst.R()), mix(src.G(), dst.G()), mix(src.B(), dst.B()), uint8(a))
}
