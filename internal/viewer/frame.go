package viewer

import (
	"fmt"
	"image"
	"image/draw"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/example/rasterpaint/internal/config"
	"github.com/example/rasterpaint/internal/render"
	"github.com/example/rasterpaint/internal/surface"
)

// layout places the picture inside the window.
type layout struct {
	image  image.Rectangle // scaled picture, window coordinates
	status image.Rectangle
	zoom   int
}

func (v *Viewer) layout() layout {
	b := v.canvas.Bounds()
	origin := image.Pt(margin, margin)
	return layout{
		image:  image.Rectangle{Min: origin, Max: origin.Add(b.Size().Mul(v.zoom))},
		status: image.Rect(0, v.winSize.Y-statusHeight, v.winSize.X, v.winSize.Y),
		zoom:   v.zoom,
	}
}

// unzoom maps a window position to one whose offset from the picture's
// corner is in surface pixels.
func (l layout) unzoom(x, y float32) (float32, float32) {
	z := float32(l.zoom)
	ox, oy := float32(l.image.Min.X), float32(l.image.Min.Y)
	return ox + (x-ox)/z, oy + (y-oy)/z
}

// toWindow maps a surface rectangle to window coordinates.
func (l layout) toWindow(r image.Rectangle) image.Rectangle {
	return image.Rectangle{
		Min: l.image.Min.Add(r.Min.Mul(l.zoom)),
		Max: l.image.Min.Add(r.Max.Mul(l.zoom)),
	}
}

// picture returns the surface holding the picture, which is the back slot
// while the mask is being painted.
func (v *Viewer) picture() *surface.Surface {
	if v.canvas.PaintingOnMask() {
		return v.canvas.MaskSurface()
	}
	return v.canvas.Surface()
}

// frame composes the whole window into dst.
func (v *Viewer) frame(dst *image.RGBA) {
	theme := v.cfg.Viewer
	l := v.layout()
	draw.Draw(dst, dst.Bounds(), image.NewUniform(theme.Background), image.Point{}, draw.Src)

	render.DropShadow(dst, l.image, render.DefaultShadowOptions())
	render.Checkerboard(dst, l.image, 8, theme.CheckerLight, theme.CheckerDark)
	pic := v.picture()
	xdraw.NearestNeighbor.Scale(dst, l.image, pic.NRGBA(), pic.Bounds(), xdraw.Over, nil)
	if v.canvas.PaintingOnMask() {
		mask := v.canvas.Surface()
		xdraw.NearestNeighbor.Scale(dst, l.image, mask.NRGBA(), mask.Bounds(), xdraw.Over, nil)
	}
	if !v.selection.Empty() {
		render.Frame(dst, l.toWindow(v.selection), theme.Foreground)
	}
	render.StatusBar(dst, l.status, v.statusText(), theme.Foreground, theme.StatusBar)
}

func (v *Viewer) statusText() string {
	if v.message != "" && time.Now().Before(v.messageUntil) {
		return v.message
	}
	mask := "off"
	if v.canvas.MaskEnabled() {
		mask = "on"
	}
	return fmt.Sprintf("%s r%d %s | %s | mask %s | x%d | undo %d",
		v.tool, v.radius, config.FormatColor(v.color), v.canvas.Front(), mask, v.zoom, v.canvas.UndoLen())
}
