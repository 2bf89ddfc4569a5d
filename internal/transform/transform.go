// Package transform implements the whole-image operations: convolution
// filters, color adjustments, flips, rotation and nearest-neighbour resize.
// Every operation reads a source surface and returns a new one.
package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/rasterpaint/internal/surface"
)

var (
	// ErrUnknownKind is returned by ParseKind for an unrecognised name.
	ErrUnknownKind = errors.New("unknown transform")
	// ErrInvalidSize is returned when a resize targets a non-positive size.
	ErrInvalidSize = errors.New("invalid target size")
)

// Kind names a transform.
type Kind int

const (
	Blur Kind = iota
	Unsharpen
	FlipVertical
	FlipHorizontal
	Rotate90
	Brighten
	Darken
	Invert
	Grayscale
	Resize
)

var kindNames = [...]string{
	Blur:           "blur",
	Unsharpen:      "unsharpen",
	FlipVertical:   "flip_vertical",
	FlipHorizontal: "flip_horizontal",
	Rotate90:       "rotate90",
	Brighten:       "brighten",
	Darken:         "darken",
	Invert:         "invert",
	Grayscale:      "grayscale",
	Resize:         "resize",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every transform in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind maps a name such as "flip_vertical" to its Kind. Hyphens are
// accepted in place of underscores.
func ParseKind(name string) (Kind, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for i, s := range kindNames {
		if s == n {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownKind)
}

// Tint holds the per-channel divisors used to rebuild color from luma.
type Tint struct {
	R, G, B float64
}

// Params are the tunable constants shared by every operation of a kind.
type Params struct {
	BlurSigma          float64
	UnsharpenSigma     float64
	UnsharpenThreshold int
	Brighten           int
	Tint               Tint
}

// DefaultParams returns the stock filter settings.
func DefaultParams() Params {
	return Params{
		BlurSigma:          5.1,
		UnsharpenSigma:     5.1,
		UnsharpenThreshold: 10,
		Brighten:           10,
		Tint:               Tint{R: 1.2, G: 1.2, B: 1.2},
	}
}

// Op is one fully specified transform.
type Op struct {
	Kind      Kind
	Sigma     float64
	Threshold int
	Delta     int
	Width     int
	Height    int
	Tint      Tint
}

// Op builds an operation of kind k from p. Width and height are only used
// by Resize.
func (p Params) Op(k Kind, width, height int) Op {
	op := Op{Kind: k, Width: width, Height: height}
	switch k {
	case Blur:
		op.Sigma = p.BlurSigma
	case Unsharpen:
		op.Sigma, op.Threshold = p.UnsharpenSigma, p.UnsharpenThreshold
	case Brighten, Darken:
		op.Delta = p.Brighten
	case Grayscale:
		op.Tint = p.Tint
	}
	return op
}

// Validate reports whether op can be applied.
func (op Op) Validate() error {
	if op.Kind < 0 || int(op.Kind) >= len(kindNames) {
		return fmt.Errorf("%v: %w", op.Kind, ErrUnknownKind)
	}
	if op.Kind == Resize && (op.Width <= 0 || op.Height <= 0) {
		return fmt.Errorf("resize to %dx%d: %w", op.Width, op.Height, ErrInvalidSize)
	}
	return nil
}

// Size returns the dimensions Apply produces for a w×h source.
func (op Op) Size(w, h int) (int, int) {
	switch op.Kind {
	case Rotate90:
		return h, w
	case Resize:
		return op.Width, op.Height
	}
	return w, h
}

// Apply runs op over src and returns the result. src is not modified.
func Apply(src *surface.Surface, op Op) (*surface.Surface, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	switch op.Kind {
	case Blur:
		return gaussian(src, op.Sigma), nil
	case Unsharpen:
		return unsharpen(src, op.Sigma, op.Threshold), nil
	case FlipVertical:
		return flipVertical(src), nil
	case FlipHorizontal:
		return flipHorizontal(src), nil
	case Rotate90:
		return rotate90(src), nil
	case Brighten:
		return brighten(src, op.Delta), nil
	case Darken:
		return brighten(src, -op.Delta), nil
	case Invert:
		return invert(src), nil
	case Grayscale:
		return grayscale(src, op.Tint), nil
	default:
		return resize(src, op.Width, op.Height), nil
	}
}
