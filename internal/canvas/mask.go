package canvas

import "github.com/example/rasterpaint/internal/surface"

// WritePixel is the single write path for drawing and fills. Points off the
// surface are dropped. With masking on, the stored alpha is the bitwise AND
// of the mask's red channel and col's alpha; RGB is kept as given.
func (c *Canvas) WritePixel(x, y int, col surface.Color) {
	if !c.image.Contains(x, y) {
		return
	}
	if c.maskEnabled {
		col = col.WithAlpha(c.mask.Pixel(x, y).R() & col.A())
	}
	c.image.SetPixel(x, y, col)
}

// TogglePaintOnMask swaps the contents of the image and mask slots so the
// mask can be painted like a picture. Going to the mask turns gating off;
// coming back turns it on, so later drawing is gated by what was painted.
func (c *Canvas) TogglePaintOnMask() {
	c.image.Swap(c.mask)
	if c.front == LayerMask {
		c.front = LayerImage
		c.maskEnabled = true
	} else {
		c.front = LayerMask
		c.maskEnabled = false
	}
	Logger().Debug("mask toggled", "front", c.front, "gated", c.maskEnabled)
}

// ClearMask refills the mask contents with the marker color, in whichever
// slot they currently sit. The picture is never touched.
func (c *Canvas) ClearMask() {
	if c.front == LayerMask {
		c.image.SetAll(c.maskColor)
		return
	}
	c.mask.SetAll(c.maskColor)
}

// EnableMask turns gating on or off.
func (c *Canvas) EnableMask(on bool) { c.maskEnabled = on }

// MaskEnabled reports whether writes are gated.
func (c *Canvas) MaskEnabled() bool { return c.maskEnabled }

// Front reports which layer is the editing target.
func (c *Canvas) Front() Layer { return c.front }

// PaintingOnMask reports whether the mask is in front.
func (c *Canvas) PaintingOnMask() bool { return c.front == LayerMask }
