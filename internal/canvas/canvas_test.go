package canvas

import (
	"errors"
	"image"
	"testing"

	"github.com/example/rasterpaint/internal/surface"
	"github.com/example/rasterpaint/internal/transform"
)

func shade(v uint8) surface.Color { return surface.RGBA(v, v, v, 255) }

func TestNewSeedsHistoryAndMask(t *testing.T) {
	c := NewFilled(3, 2, surface.White)
	if c.UndoLen() != 1 {
		t.Fatalf("history len = %d, want the seed only", c.UndoLen())
	}
	m := c.MaskSurface()
	if m.Width() != 3 || m.Height() != 2 || m.Pixel(2, 1) != DefaultMaskColor {
		t.Fatalf("mask not initialised with the marker color")
	}
	if c.MaskEnabled() || c.PaintingOnMask() {
		t.Fatalf("fresh canvas should not gate writes")
	}
	if c.CopyBuffer().Width() != 0 || c.CopyBuffer().Height() != 0 {
		t.Fatalf("copy buffer should start empty")
	}
}

func TestUndoRestoresStateBeforeMutation(t *testing.T) {
	c := NewFilled(4, 4, surface.White)
	c.UndoSave()
	before := c.Surface().Clone()
	c.Line(0, 0, 3, 3, surface.Black)
	c.UndoSave()
	if !c.Undo() {
		t.Fatalf("undo refused")
	}
	if !c.Surface().Equal(before) {
		t.Fatalf("undo did not restore the pre-mutation state")
	}
}

func TestUndoFloor(t *testing.T) {
	c := NewFilled(2, 2, surface.White)
	if c.Undo() {
		t.Fatalf("undo on a fresh canvas should be a no-op")
	}
	c.UndoSave()
	c.Clear()
	for i := 0; i < 5; i++ {
		c.Undo()
	}
	if c.UndoLen() != 1 {
		t.Fatalf("history len = %d, want 1", c.UndoLen())
	}
	// The oldest retained snapshot is the blank seed.
	if c.Pixel(1, 1) != surface.Transparent {
		t.Fatalf("expected the seed snapshot, got %#x", uint32(c.Pixel(1, 1)))
	}
}

func TestUndoDepthEviction(t *testing.T) {
	const depth = 3
	c := New(1, 1, WithUndoDepth(depth))
	for v := 1; v <= depth+2; v++ {
		c.WritePixel(0, 0, shade(uint8(v)))
		c.UndoSave()
	}
	if c.UndoLen() != depth {
		t.Fatalf("history len = %d, want %d", c.UndoLen(), depth)
	}
	var seen []uint8
	for c.Undo() {
		seen = append(seen, c.Pixel(0, 0).R())
	}
	if len(seen) != 2 || seen[0] != 4 || seen[1] != 3 {
		t.Fatalf("reachable states %v, want [4 3]", seen)
	}
}

func TestMaskedWriteGatesAlpha(t *testing.T) {
	c := NewFilled(1, 1, surface.White)
	c.MaskSurface().SetPixel(0, 0, surface.RGBA(0xAA, 0, 0, 255))
	c.EnableMask(true)
	c.WritePixel(0, 0, surface.RGBA(1, 2, 3, 0xF0))
	if got := c.Pixel(0, 0); got != surface.RGBA(1, 2, 3, 0xA0) {
		t.Fatalf("masked write = %#x, want alpha 0xA0 with RGB kept", uint32(got))
	}
	c.EnableMask(false)
	c.WritePixel(0, 0, surface.RGBA(1, 2, 3, 0xF0))
	if got := c.Pixel(0, 0); got.A() != 0xF0 {
		t.Fatalf("unmasked write altered alpha: %#x", uint32(got))
	}
}

func TestWritePixelDropsOutOfBounds(t *testing.T) {
	c := NewFilled(2, 2, surface.White)
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		c.WritePixel(p.X, p.Y, surface.Black)
	}
	for _, col := range c.Surface().Pix() {
		if col != surface.White {
			t.Fatalf("out of range write landed on the surface")
		}
	}
}

func TestTogglePaintOnMask(t *testing.T) {
	c := NewFilled(2, 2, surface.White)
	c.TogglePaintOnMask()
	if !c.PaintingOnMask() || c.MaskEnabled() {
		t.Fatalf("painting on the mask must be ungated")
	}
	if c.Pixel(0, 0) != DefaultMaskColor || c.MaskSurface().Pixel(0, 0) != surface.White {
		t.Fatalf("toggle did not swap contents")
	}
	// Close the mask at (0,0).
	c.WritePixel(0, 0, surface.Black)

	c.TogglePaintOnMask()
	if c.PaintingOnMask() || !c.MaskEnabled() {
		t.Fatalf("returning to the image must turn gating on")
	}
	c.WritePixel(0, 0, surface.Black)
	c.WritePixel(1, 1, surface.Black)
	if got := c.Pixel(0, 0); got.A() != 0 {
		t.Fatalf("closed mask let alpha %d through", got.A())
	}
	if got := c.Pixel(1, 1); got != surface.Black {
		t.Fatalf("open mask blocked the write: %#x", uint32(got))
	}
}

func TestClearMaskNeverTouchesPicture(t *testing.T) {
	c := NewFilled(2, 2, surface.White)
	c.MaskSurface().SetAll(surface.Black)
	c.ClearMask()
	if c.MaskSurface().Pixel(0, 0) != DefaultMaskColor || c.Pixel(0, 0) != surface.White {
		t.Fatalf("ClearMask with the image in front")
	}

	c.TogglePaintOnMask()
	c.Surface().SetAll(surface.Black)
	c.ClearMask()
	if c.Pixel(0, 0) != DefaultMaskColor || c.MaskSurface().Pixel(0, 0) != surface.White {
		t.Fatalf("ClearMask with the mask in front")
	}
}

func TestWithMaskColor(t *testing.T) {
	marker := surface.RGBA(200, 0, 0, 80)
	c := New(2, 2, WithMaskColor(marker))
	if c.MaskSurface().Pixel(1, 1) != marker {
		t.Fatalf("mask color option ignored")
	}
}

func TestCircleThroughCanvas(t *testing.T) {
	c := NewFilled(4, 4, surface.White)
	c.Circle(2, 2, 1, surface.Black)
	for _, p := range []image.Point{{1, 2}, {3, 2}, {2, 1}, {2, 3}} {
		if c.Pixel(p.X, p.Y) != surface.Black {
			t.Errorf("%v not on the circle", p)
		}
	}
	for _, p := range []image.Point{{2, 2}, {0, 0}, {3, 3}, {0, 3}} {
		if c.Pixel(p.X, p.Y) != surface.White {
			t.Errorf("%v should be untouched", p)
		}
	}
}

func TestPolygonRejectsDegenerate(t *testing.T) {
	c := NewFilled(20, 20, surface.White)
	before := c.Surface().Clone()
	for _, sides := range []int{-1, 0, 1, 2} {
		if err := c.Polygon(10, 10, 5, sides, 0, surface.Black, false); !errors.Is(err, ErrDegeneratePolygon) {
			t.Fatalf("sides=%d: err = %v", sides, err)
		}
	}
	if !c.Surface().Equal(before) {
		t.Fatalf("rejected polygon drew pixels")
	}
	if err := c.Polygon(10, 10, 5, 5, 0, surface.Black, true); err != nil {
		t.Fatalf("pentagon: %v", err)
	}
}

func TestFillWholeSurfaceIsUndoable(t *testing.T) {
	c := NewFilled(10, 10, surface.White)
	c.UndoSave()
	if n := c.Fill(0, 0, surface.Black); n != 100 {
		t.Fatalf("fill wrote %d pixels, want 100", n)
	}
	for _, col := range c.Surface().Pix() {
		if col != surface.Black {
			t.Fatalf("pixel left unfilled")
		}
	}
	c.Undo()
	if c.Pixel(5, 5) != surface.White {
		t.Fatalf("undo after fill did not restore white")
	}
}

func TestFillOffSurfaceSkipsCheckpoint(t *testing.T) {
	c := NewFilled(3, 3, surface.White)
	c.Fill(-1, 5, surface.Black)
	if c.UndoLen() != 1 {
		t.Fatalf("ignored fill pushed a checkpoint")
	}
}

func TestMaskedFloodUsesWrittenColor(t *testing.T) {
	c := NewFilled(3, 3, surface.White)
	c.MaskSurface().SetAll(surface.RGBA(50, 0, 0, 255))
	c.EnableMask(true)
	c.FloodFill(1, 1, surface.Black)
	want := surface.RGBA(0, 0, 0, 50)
	for _, col := range c.Surface().Pix() {
		if col != want {
			t.Fatalf("pixel %#x, want %#x", uint32(col), uint32(want))
		}
	}
}

func TestPaintCircleCheckpoints(t *testing.T) {
	c := NewFilled(9, 9, surface.White)
	c.PaintCircle(4, 4, 2, surface.Black)
	if c.UndoLen() != 2 {
		t.Fatalf("paint did not checkpoint")
	}
	if c.Pixel(4, 4) != surface.Black {
		t.Fatalf("brush stamp should be filled")
	}
}

func TestTransformRotateResizesMask(t *testing.T) {
	c := NewFilled(3, 2, surface.White)
	if err := c.TransformKind(transform.Rotate90, 0, 0); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if c.Width() != 2 || c.Height() != 3 {
		t.Fatalf("size %dx%d, want 2x3", c.Width(), c.Height())
	}
	if c.MaskSurface().Width() != 2 || c.MaskSurface().Height() != 3 {
		t.Fatalf("mask not resized with the surface")
	}
	c.EnableMask(true)
	c.WritePixel(1, 2, surface.Black)

	c.Undo()
	if c.Width() != 3 || c.Height() != 2 {
		t.Fatalf("undo did not restore the original size")
	}
}

func TestTransformRejectsBadResize(t *testing.T) {
	c := NewFilled(3, 3, surface.White)
	err := c.Transform(transform.Op{Kind: transform.Resize, Width: -2, Height: 4})
	if !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("err = %v", err)
	}
	if c.UndoLen() != 1 {
		t.Fatalf("rejected transform pushed a checkpoint")
	}
}

func TestTransformResize(t *testing.T) {
	c := NewFilled(2, 2, surface.Black)
	if err := c.TransformKind(transform.Resize, 5, 3); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if c.Width() != 5 || c.Height() != 3 || c.Pixel(4, 2) != surface.Black {
		t.Fatalf("resize produced %dx%d", c.Width(), c.Height())
	}
}

func TestTransformSelection(t *testing.T) {
	c := NewFilled(6, 4, surface.White)
	c.WritePixel(1, 1, surface.Black)
	sel := image.Rect(1, 1, 4, 3)
	if err := c.TransformSelection(sel, transform.Op{Kind: transform.FlipHorizontal}); err != nil {
		t.Fatalf("flip selection: %v", err)
	}
	if c.Pixel(3, 1) != surface.Black || c.Pixel(1, 1) != surface.White {
		t.Fatalf("selection not flipped in place")
	}
	if c.Width() != 6 || c.Height() != 4 {
		t.Fatalf("selection transform resized the canvas")
	}
}

func TestTransformSelectionRotateIsDimensionSwapped(t *testing.T) {
	c := NewFilled(6, 6, shade(10))
	c.Rect(image.Rect(0, 0, 3, 1), surface.Black)
	if err := c.TransformSelection(image.Rect(0, 0, 3, 1), transform.Op{Kind: transform.Rotate90}); err != nil {
		t.Fatalf("rotate selection: %v", err)
	}
	// The 3×1 strip becomes 1×3 at the same corner; the rest of the old
	// strip is white.
	for y := 0; y < 3; y++ {
		if c.Pixel(0, y) != surface.Black {
			t.Fatalf("(0,%d) not part of the rotated strip", y)
		}
	}
	if c.Pixel(2, 0) != surface.White {
		t.Fatalf("vacated selection should be white")
	}
}

func TestEmptySelectionRejected(t *testing.T) {
	c := NewFilled(4, 4, surface.White)
	for _, r := range []image.Rectangle{image.Rect(2, 2, 2, 3), image.Rect(10, 10, 12, 12), image.Rect(-5, -5, 0, 0)} {
		if _, err := c.CopySelection(r); !errors.Is(err, ErrEmptySelection) {
			t.Fatalf("copy %v: %v", r, err)
		}
		if err := c.TransformSelection(r, transform.Op{Kind: transform.Invert}); !errors.Is(err, ErrEmptySelection) {
			t.Fatalf("transform %v: %v", r, err)
		}
	}
	if c.UndoLen() != 1 {
		t.Fatalf("rejected selection pushed a checkpoint")
	}
}

func TestCopyCutPaste(t *testing.T) {
	c := NewFilled(4, 4, surface.White)
	c.Rect(image.Rect(0, 0, 2, 2), surface.Black)

	got, err := c.CopySelection(image.Rect(0, 0, 2, 2))
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if got.Width() != 2 || got.Pixel(1, 1) != surface.Black {
		t.Fatalf("copied region wrong")
	}
	c.PasteBuffer(image.Pt(2, 2), 255)
	if c.Pixel(3, 3) != surface.Black {
		t.Fatalf("paste buffer did not land")
	}
	if c.UndoLen() != 1 {
		t.Fatalf("paste buffer should not checkpoint")
	}

	if _, err := c.CutSelection(image.Rect(2, 2, 4, 4)); err != nil {
		t.Fatalf("cut: %v", err)
	}
	if c.Pixel(3, 3) != surface.White {
		t.Fatalf("cut did not clear the selection")
	}
	c.PasteImage(image.Pt(0, 2), 255, c.CopyBuffer())
	if c.Pixel(1, 3) != surface.Black || c.UndoLen() != 3 {
		t.Fatalf("paste image: pixel %#x, history %d", uint32(c.Pixel(1, 3)), c.UndoLen())
	}
}

func TestClearAndExport(t *testing.T) {
	c := New(2, 1)
	c.WritePixel(0, 0, surface.RGBA(1, 2, 3, 4))
	pix, w, h := c.Export()
	if w != 2 || h != 1 || pix[0] != 1 || pix[1] != 2 || pix[2] != 3 || pix[3] != 4 {
		t.Fatalf("export = %v %dx%d", pix, w, h)
	}
	c.Clear()
	if c.Pixel(0, 0) != surface.White || c.UndoLen() != 2 {
		t.Fatalf("clear did not paint white behind a checkpoint")
	}
}

func TestPrimitivesDoNotCheckpoint(t *testing.T) {
	c := NewFilled(4, 4, surface.Black)
	c.UndoSave()
	if err := c.ApplyTransform(transform.Op{Kind: transform.Invert}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := c.ApplyTransformSelection(image.Rect(0, 0, 2, 2), transform.Op{Kind: transform.Invert}); err != nil {
		t.Fatalf("apply selection: %v", err)
	}
	if c.Pixel(0, 0) != surface.Black || c.Pixel(3, 3) != surface.White {
		t.Fatalf("transforms not applied")
	}
	if _, err := c.Cut(image.Rect(0, 0, 1, 1)); err != nil {
		t.Fatalf("cut: %v", err)
	}
	if c.Pixel(0, 0) != surface.White || c.CopyBuffer().Pixel(0, 0) != surface.Black {
		t.Fatalf("cut did not move the pixel into the buffer")
	}
	c.Wipe()
	if c.Pixel(1, 1) != surface.White {
		t.Fatalf("wipe left %#x", uint32(c.Pixel(1, 1)))
	}
	if c.UndoLen() != 2 {
		t.Fatalf("undo len %d, want 2", c.UndoLen())
	}
}
