package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow cast by the picture.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns a soft shadow offset down and right.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  6,
		Offset:  image.Pt(4, 4),
		Opacity: 0.4,
	}
}

// DropShadow composites onto dst the blurred shadow of an opaque rectangle
// r. It returns the area it touched.
func DropShadow(dst *image.RGBA, r image.Rectangle, opts ShadowOptions) image.Rectangle {
	if r.Empty() || opts.Opacity <= 0 {
		return image.Rectangle{}
	}
	opacity := opts.Opacity
	if opacity > 1 {
		opacity = 1
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}

	padded := r.Inset(-radius)
	mask := image.NewAlpha(padded.Sub(padded.Min))
	draw.Draw(mask, r.Sub(padded.Min), image.Opaque, image.Point{}, draw.Src)
	blurred := blurAlpha(mask, radius)

	area := padded.Add(opts.Offset)
	alpha := uint8(opacity*255 + 0.5)
	draw.DrawMask(dst, area, image.NewUniform(color.RGBA{A: alpha}), image.Point{}, blurred, image.Point{}, draw.Over)
	return area.Intersect(dst.Bounds())
}

// blurAlpha is a separable box blur of the given radius using running sums.
func blurAlpha(src *image.Alpha, radius int) *image.Alpha {
	b := src.Bounds()
	out := image.NewAlpha(b)
	if radius <= 0 {
		copy(out.Pix, src.Pix)
		return out
	}
	w, h := b.Dx(), b.Dy()
	tmp := image.NewAlpha(b)
	boxPass(src.Pix, tmp.Pix, w, h, 1, src.Stride, radius)
	boxPass(tmp.Pix, out.Pix, h, w, tmp.Stride, 1, radius)
	return out
}

// boxPass averages n samples along lines of length n, step apart, for each
// of count lines starting lineStep apart.
func boxPass(src, dst []uint8, n, count, step, lineStep, radius int) {
	prefix := make([]int, n+1)
	for line := 0; line < count; line++ {
		base := line * lineStep
		for i := 0; i < n; i++ {
			prefix[i+1] = prefix[i] + int(src[base+i*step])
		}
		for i := 0; i < n; i++ {
			lo, hi := i-radius, i+radius
			if lo < 0 {
				lo = 0
			}
			if hi >= n {
				hi = n - 1
			}
			dst[base+i*step] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
		}
	}
}
