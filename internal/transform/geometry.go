package transform

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/example/rasterpaint/internal/surface"
)

func flipHorizontal(src *surface.Surface) *surface.Surface {
	w, h := src.Width(), src.Height()
	out := surface.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetPixel(w-1-x, y, src.Pixel(x, y))
		}
	}
	return out
}

func flipVertical(src *surface.Surface) *surface.Surface {
	w, h := src.Width(), src.Height()
	out := surface.New(w, h)
	for y := 0; y < h; y++ {
		copy(out.Pix()[(h-1-y)*w:(h-y)*w], src.Pix()[y*w:(y+1)*w])
	}
	return out
}

// rotate90 turns the surface a quarter turn clockwise. The result is
// height×width.
func rotate90(src *surface.Surface) *surface.Surface {
	w, h := src.Width(), src.Height()
	out := surface.New(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetPixel(h-1-y, x, src.Pixel(x, y))
		}
	}
	return out
}

// resize samples src with nearest-neighbour interpolation. Both buffers are
// handed to the scaler as raw RGBA bytes with the Src operator, so every
// destination pixel is an exact copy of one source pixel.
func resize(src *surface.Surface, width, height int) *surface.Surface {
	if src.Empty() {
		return surface.New(width, height)
	}
	in := &image.RGBA{Pix: src.RGBABytes(), Stride: src.Width() * 4, Rect: src.Bounds()}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), in, in.Bounds(), xdraw.Src, nil)
	out := surface.New(width, height)
	op := out.Pix()
	for i := range op {
		p := dst.Pix[i*4 : i*4+4 : i*4+4]
		op[i] = surface.RGBA(p[0], p[1], p[2], p[3])
	}
	return out
}
