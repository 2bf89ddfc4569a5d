package canvas

import (
	"image"

	"github.com/example/rasterpaint/internal/surface"
	"github.com/example/rasterpaint/internal/transform"
)

// Transform checkpoints and applies op to the whole editing target. Rotate
// and resize change the canvas dimensions; the mask is rebuilt to match.
// An invalid op is rejected before the checkpoint.
func (c *Canvas) Transform(op transform.Op) error {
	if err := c.validate(op); err != nil {
		return err
	}
	c.UndoSave()
	return c.apply(op)
}

// ApplyTransform is Transform without the checkpoint.
func (c *Canvas) ApplyTransform(op transform.Op) error {
	if err := c.validate(op); err != nil {
		return err
	}
	return c.apply(op)
}

func (c *Canvas) validate(op transform.Op) error {
	if err := op.Validate(); err != nil {
		Logger().Warn("transform rejected", "op", op.Kind, "err", err)
		return err
	}
	return nil
}

func (c *Canvas) apply(op transform.Op) error {
	out, err := transform.Apply(c.image, op)
	if err != nil {
		return err
	}
	if op.Kind == transform.Resize {
		c.image.SetAll(surface.Transparent)
	}
	c.image.Adopt(out)
	c.syncMask()
	Logger().Debug("transform", "op", op.Kind, "size", c.image.Bounds().Size())
	return nil
}

// TransformKind applies the transform k using the canvas filter
// parameters. Width and height are only used by resize.
func (c *Canvas) TransformKind(k transform.Kind, width, height int) error {
	return c.Transform(c.params.Op(k, width, height))
}

// TransformSelection checkpoints and applies op to the part of r on the
// surface. The selection is painted opaque white and the result is pasted
// back at its top-left corner, clipped to the surface. The canvas keeps its
// size.
func (c *Canvas) TransformSelection(r image.Rectangle, op transform.Op) error {
	return c.transformSelection(r, op, true)
}

// ApplyTransformSelection is TransformSelection without the checkpoint.
func (c *Canvas) ApplyTransformSelection(r image.Rectangle, op transform.Op) error {
	return c.transformSelection(r, op, false)
}

func (c *Canvas) transformSelection(r image.Rectangle, op transform.Op, checkpoint bool) error {
	if err := c.validate(op); err != nil {
		return err
	}
	r, err := c.clip(r)
	if err != nil {
		return err
	}
	if checkpoint {
		c.UndoSave()
	}
	out, err := transform.Apply(c.image.CopyRegion(r), op)
	if err != nil {
		return err
	}
	c.image.FillRect(r, surface.White)
	c.image.Blit(r.Min, out)
	Logger().Debug("selection transform", "op", op.Kind, "rect", r)
	return nil
}
