package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/example/rasterpaint/internal/canvas"
	"github.com/example/rasterpaint/internal/history"
	"github.com/example/rasterpaint/internal/surface"
	"github.com/example/rasterpaint/internal/transform"
)

// Notify holds notification settings.
type Notify struct {
	Capture bool
	Save    bool
	Copy    bool
}

// Filters holds the transform constants.
type Filters struct {
	BlurSigma          float64
	UnsharpenSigma     float64
	UnsharpenThreshold int
	Brighten           int
	GrayR              float64
	GrayG              float64
	GrayB              float64
}

// Params converts the filter settings for the transform package.
func (f Filters) Params() transform.Params {
	return transform.Params{
		BlurSigma:          f.BlurSigma,
		UnsharpenSigma:     f.UnsharpenSigma,
		UnsharpenThreshold: f.UnsharpenThreshold,
		Brighten:           f.Brighten,
		Tint:               transform.Tint{R: f.GrayR, G: f.GrayG, B: f.GrayB},
	}
}

// Viewer holds the colors of the editor window.
type Viewer struct {
	Background   surface.Color // behind the canvas
	Foreground   surface.Color // status text
	StatusBar    surface.Color
	CheckerLight surface.Color // transparency checkerboard
	CheckerDark  surface.Color
}

// Config holds the application configuration.
type Config struct {
	UndoDepth int
	SaveDir   string
	MaskColor surface.Color
	Filters   Filters
	Notify    Notify
	Viewer    Viewer
	Palette   map[string]surface.Color
}

// New creates a new Config with defaults.
func New() *Config {
	p := transform.DefaultParams()
	return &Config{
		UndoDepth: history.DefaultDepth,
		MaskColor: canvas.DefaultMaskColor,
		Filters: Filters{
			BlurSigma:          p.BlurSigma,
			UnsharpenSigma:     p.UnsharpenSigma,
			UnsharpenThreshold: p.UnsharpenThreshold,
			Brighten:           p.Brighten,
			GrayR:              p.Tint.R,
			GrayG:              p.Tint.G,
			GrayB:              p.Tint.B,
		},
		Viewer: Viewer{
			Background:   surface.RGBA(220, 220, 220, 255),
			Foreground:   surface.Black,
			StatusBar:    surface.RGBA(200, 200, 200, 255),
			CheckerLight: surface.RGBA(220, 220, 220, 255),
			CheckerDark:  surface.RGBA(192, 192, 192, 255),
		},
		Palette: make(map[string]surface.Color),
	}
}

// CanvasOptions returns the canvas options implied by the configuration.
func (c *Config) CanvasOptions() []canvas.Option {
	return []canvas.Option{
		canvas.WithUndoDepth(c.UndoDepth),
		canvas.WithMaskColor(c.MaskColor),
		canvas.WithFilters(c.Filters.Params()),
	}
}

// Color resolves a palette entry, a color name or a hex value.
func (c *Config) Color(s string) (surface.Color, error) {
	if col, ok := c.Palette[strings.ToLower(strings.TrimSpace(s))]; ok {
		return col, nil
	}
	return ParseColor(s)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "undo_depth = %d\n", c.UndoDepth)
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[mask]\n")
	fmt.Fprintf(&sb, "color = %s\n", FormatColor(c.MaskColor))
	sb.WriteString("\n")

	sb.WriteString("[filters]\n")
	fmt.Fprintf(&sb, "blur_sigma = %g\n", c.Filters.BlurSigma)
	fmt.Fprintf(&sb, "unsharpen_sigma = %g\n", c.Filters.UnsharpenSigma)
	fmt.Fprintf(&sb, "unsharpen_threshold = %d\n", c.Filters.UnsharpenThreshold)
	fmt.Fprintf(&sb, "brighten = %d\n", c.Filters.Brighten)
	fmt.Fprintf(&sb, "gray_r = %g\n", c.Filters.GrayR)
	fmt.Fprintf(&sb, "gray_g = %g\n", c.Filters.GrayG)
	fmt.Fprintf(&sb, "gray_b = %g\n", c.Filters.GrayB)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	sb.WriteString("[viewer]\n")
	val := reflect.ValueOf(c.Viewer)
	for i := 0; i < val.NumField(); i++ {
		col := val.Field(i).Interface().(surface.Color)
		fmt.Fprintf(&sb, "%s: %s\n", val.Type().Field(i).Name, FormatColor(col))
	}

	if len(c.Palette) > 0 {
		sb.WriteString("\n[palette]\n")
		names := make([]string, 0, len(c.Palette))
		for name := range c.Palette {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&sb, "%s = %s\n", name, FormatColor(c.Palette[name]))
		}
	}

	return sb.String()
}

// FormatColor renders col as #RRGGBB, or #RRGGBBAA when not opaque.
func FormatColor(col surface.Color) string {
	if col.A() == 255 {
		return fmt.Sprintf("#%02X%02X%02X", col.R(), col.G(), col.B())
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", col.R(), col.G(), col.B(), col.A())
}
