package canvas

import (
	"image"

	"github.com/example/rasterpaint/internal/surface"
)

// CopySelection copies the part of r on the surface into the copy buffer
// and returns a copy of it.
func (c *Canvas) CopySelection(r image.Rectangle) (*surface.Surface, error) {
	r, err := c.clip(r)
	if err != nil {
		return nil, err
	}
	c.buffer = c.image.CopyRegion(r)
	return c.buffer.Clone(), nil
}

// CutSelection checkpoints, copies r into the copy buffer and paints it
// opaque white.
func (c *Canvas) CutSelection(r image.Rectangle) (*surface.Surface, error) {
	return c.cut(r, true)
}

// Cut is CutSelection without the checkpoint.
func (c *Canvas) Cut(r image.Rectangle) (*surface.Surface, error) {
	return c.cut(r, false)
}

func (c *Canvas) cut(r image.Rectangle, checkpoint bool) (*surface.Surface, error) {
	r, err := c.clip(r)
	if err != nil {
		return nil, err
	}
	if checkpoint {
		c.UndoSave()
	}
	c.buffer = c.image.CopyRegion(r)
	c.image.FillRect(r, surface.White)
	return c.buffer.Clone(), nil
}

// CopyBuffer returns the copy buffer. It is 0×0 until something is copied.
func (c *Canvas) CopyBuffer() *surface.Surface { return c.buffer }

// SetCopyBuffer replaces the copy buffer, for example with an image read
// from the system clipboard.
func (c *Canvas) SetCopyBuffer(s *surface.Surface) {
	if s == nil {
		s = surface.New(0, 0)
	}
	c.buffer = s
}

// PasteImage checkpoints and composites src at at, with its alpha scaled by
// opacity/255.
func (c *Canvas) PasteImage(at image.Point, opacity uint8, src *surface.Surface) {
	c.UndoSave()
	c.image.AlphaBlit(at, opacity, src)
}

// PasteBuffer composites the copy buffer at at without checkpointing.
func (c *Canvas) PasteBuffer(at image.Point, opacity uint8) {
	c.image.AlphaBlit(at, opacity, c.buffer)
}
