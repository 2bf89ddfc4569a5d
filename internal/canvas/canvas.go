// Package canvas is the editing engine: a surface with a gating mask, an undo
// history, a copy buffer and event listeners. Every drawing primitive and
// fill writes through the mask compositor, and every mutating entry point
// that takes a checkpoint does so before it changes anything.
//
// A Canvas is owned by one goroutine. Nothing here is safe for concurrent
// use.
package canvas

import (
	"errors"
	"image"

	"golang.org/x/mobile/event/mouse"

	"github.com/example/rasterpaint/internal/history"
	"github.com/example/rasterpaint/internal/surface"
	"github.com/example/rasterpaint/internal/transform"
)

var (
	// ErrEmptySelection is returned when a selection has no pixels on the
	// surface.
	ErrEmptySelection = errors.New("selection is empty")
	// ErrDegeneratePolygon is returned for polygons with fewer than three
	// sides.
	ErrDegeneratePolygon = errors.New("polygon needs at least 3 sides")
	// ErrInvalidSize is returned when a resize targets a non-positive size.
	ErrInvalidSize = transform.ErrInvalidSize
)

// DefaultMaskColor is the translucent red a fresh mask is filled with.
var DefaultMaskColor = surface.RGBA(255, 0, 0, 50)

// Layer names which slot is currently the editing target.
type Layer int

const (
	// LayerImage means the picture is in front.
	LayerImage Layer = iota
	// LayerMask means the mask has been swapped in front for painting.
	LayerMask
)

func (l Layer) String() string {
	if l == LayerMask {
		return "mask"
	}
	return "image"
}

// Canvas holds the editing state for one picture.
type Canvas struct {
	image *surface.Surface // editing target, whichever layer is in front
	mask  *surface.Surface // the other slot

	front       Layer
	maskEnabled bool
	maskColor   surface.Color

	depth   int
	history *history.Stack
	buffer  *surface.Surface
	params  transform.Params

	listeners [numEventKinds]Listener
	origin    image.Point
	held      mouse.Button
}

// Option configures a Canvas at construction.
type Option func(*Canvas)

// WithUndoDepth sets how many checkpoints are retained.
func WithUndoDepth(n int) Option {
	return func(c *Canvas) { c.depth = n }
}

// WithMaskColor sets the color a fresh or cleared mask is filled with.
func WithMaskColor(col surface.Color) Option {
	return func(c *Canvas) { c.maskColor = col }
}

// WithFilters sets the parameters used by TransformKind.
func WithFilters(p transform.Params) Option {
	return func(c *Canvas) { c.params = p }
}

// New returns a transparent width×height canvas.
func New(width, height int, opts ...Option) *Canvas {
	return FromSurface(surface.New(width, height), opts...)
}

// NewFilled returns a canvas with every pixel set to col.
func NewFilled(width, height int, col surface.Color, opts ...Option) *Canvas {
	return FromSurface(surface.NewFilled(width, height, col), opts...)
}

// FromSurface returns a canvas editing s. The canvas takes ownership of s.
func FromSurface(s *surface.Surface, opts ...Option) *Canvas {
	c := &Canvas{
		image:     s,
		maskColor: DefaultMaskColor,
		depth:     history.DefaultDepth,
		buffer:    surface.New(0, 0),
		params:    transform.DefaultParams(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.mask = surface.NewFilled(s.Width(), s.Height(), c.maskColor)
	c.history = history.New(c.depth, surface.New(s.Width(), s.Height()))
	return c
}

// Width returns the width of the editing target.
func (c *Canvas) Width() int { return c.image.Width() }

// Height returns the height of the editing target.
func (c *Canvas) Height() int { return c.image.Height() }

// Bounds returns the rectangle covered by the editing target.
func (c *Canvas) Bounds() image.Rectangle { return c.image.Bounds() }

// Surface returns the editing target for rendering. Callers must not modify
// it.
func (c *Canvas) Surface() *surface.Surface { return c.image }

// MaskSurface returns the slot that is not in front.
func (c *Canvas) MaskSurface() *surface.Surface { return c.mask }

// Pixel returns the color at (x, y), or transparent outside the surface.
func (c *Canvas) Pixel(x, y int) surface.Color {
	if !c.image.Contains(x, y) {
		return surface.Transparent
	}
	return c.image.Pixel(x, y)
}

// Export returns the editing target as RGBA bytes with its dimensions.
func (c *Canvas) Export() (pix []byte, width, height int) {
	return c.image.RGBABytes(), c.image.Width(), c.image.Height()
}

// Params returns the filter parameters in use.
func (c *Canvas) Params() transform.Params { return c.params }

// Clear checkpoints and paints the whole surface opaque white.
func (c *Canvas) Clear() {
	c.UndoSave()
	c.Wipe()
}

// Wipe paints the whole surface opaque white without checkpointing.
func (c *Canvas) Wipe() {
	c.image.SetAll(surface.White)
}

// Rect fills r with col through the mask. It does not checkpoint.
func (c *Canvas) Rect(r image.Rectangle, col surface.Color) {
	r = r.Canon().Intersect(c.image.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.WritePixel(x, y, col)
		}
	}
}

// clip returns the part of r on the surface, or ErrEmptySelection.
func (c *Canvas) clip(r image.Rectangle) (image.Rectangle, error) {
	clipped := r.Canon().Intersect(c.image.Bounds())
	if clipped.Empty() {
		Logger().Warn("selection rejected", "rect", r, "bounds", c.image.Bounds())
		return image.Rectangle{}, ErrEmptySelection
	}
	return clipped, nil
}

// syncMask rebuilds the back slot when the front slot changed size.
func (c *Canvas) syncMask() {
	if c.mask.Width() == c.image.Width() && c.mask.Height() == c.image.Height() {
		return
	}
	c.mask = surface.NewFilled(c.image.Width(), c.image.Height(), c.maskColor)
}
