package transform

import (
	"math"

	"github.com/example/rasterpaint/internal/surface"
)

// gaussianKernel returns normalised weights covering three standard
// deviations either side of the centre.
func gaussianKernel(sigma float64) []float64 {
	r := int(math.Ceil(3 * sigma))
	k := make([]float64, 2*r+1)
	sum := 0.0
	for i := -r; i <= r; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		k[i+r] = v
		sum += v
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// gaussian blurs all four channels with a separable kernel, clamping
// samples at the edges.
func gaussian(src *surface.Surface, sigma float64) *surface.Surface {
	w, h := src.Width(), src.Height()
	if sigma <= 0 || w == 0 || h == 0 {
		return src.Clone()
	}
	k := gaussianKernel(sigma)
	r := len(k) / 2
	pix := src.Pix()

	tmp := make([][4]float64, w*h)
	for y := 0; y < h; y++ {
		row := pix[y*w : y*w+w]
		for x := 0; x < w; x++ {
			var acc [4]float64
			for i, wt := range k {
				c := row[clampInt(x+i-r, 0, w-1)]
				acc[0] += wt * float64(c.R())
				acc[1] += wt * float64(c.G())
				acc[2] += wt * float64(c.B())
				acc[3] += wt * float64(c.A())
			}
			tmp[y*w+x] = acc
		}
	}

	out := surface.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc [4]float64
			for i, wt := range k {
				t := tmp[clampInt(y+i-r, 0, h-1)*w+x]
				acc[0] += wt * t[0]
				acc[1] += wt * t[1]
				acc[2] += wt * t[2]
				acc[3] += wt * t[3]
			}
			out.SetPixel(x, y, surface.RGBA(round8(acc[0]), round8(acc[1]), round8(acc[2]), round8(acc[3])))
		}
	}
	return out
}

// unsharpen adds back the difference between each color channel and its
// blurred value wherever that difference exceeds threshold. Alpha is kept.
func unsharpen(src *surface.Surface, sigma float64, threshold int) *surface.Surface {
	blurred := gaussian(src, sigma)
	out := surface.New(src.Width(), src.Height())
	sharpen := func(c, b uint8) uint8 {
		diff := int(c) - int(b)
		if abs(diff) <= threshold {
			return c
		}
		return clamp8(int(c) + diff)
	}
	bp := blurred.Pix()
	op := out.Pix()
	for i, c := range src.Pix() {
		b := bp[i]
		op[i] = surface.RGBA(sharpen(c.R(), b.R()), sharpen(c.G(), b.G()), sharpen(c.B(), b.B()), c.A())
	}
	return out
}

func brighten(src *surface.Surface, delta int) *surface.Surface {
	out := surface.New(src.Width(), src.Height())
	op := out.Pix()
	for i, c := range src.Pix() {
		op[i] = surface.RGBA(clamp8(int(c.R())+delta), clamp8(int(c.G())+delta), clamp8(int(c.B())+delta), c.A())
	}
	return out
}

func invert(src *surface.Surface) *surface.Surface {
	out := surface.New(src.Width(), src.Height())
	op := out.Pix()
	for i, c := range src.Pix() {
		op[i] = surface.RGBA(255-c.R(), 255-c.G(), 255-c.B(), c.A())
	}
	return out
}

// grayscale reduces each pixel to Rec. 709 luma and rebuilds an opaque color
// by dividing the luma by the tint factor of each channel. Full-intensity
// luma maps to white.
func grayscale(src *surface.Surface, t Tint) *surface.Surface {
	out := surface.New(src.Width(), src.Height())
	op := out.Pix()
	for i, c := range src.Pix() {
		l := (2126*int(c.R()) + 7152*int(c.G()) + 722*int(c.B())) / 10000
		if l == 255 {
			op[i] = surface.White
			continue
		}
		op[i] = surface.RGBA(scaleLuma(l, t.R), scaleLuma(l, t.G), scaleLuma(l, t.B), 255)
	}
	return out
}

func scaleLuma(l int, f float64) uint8 {
	if f <= 0 {
		f = 1
	}
	return clamp8(int(float64(l) / f))
}

func round8(v float64) uint8 { return clamp8(int(math.Round(v))) }

func clamp8(v int) uint8 {
	return uint8(clampInt(v, 0, 255))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
