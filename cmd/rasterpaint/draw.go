package main

import (
	"flag"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/example/rasterpaint/internal/surface"
)

// drawCmd applies one drawing primitive to an image file.
type drawCmd struct {
	in        source
	out       sink
	colorSpec string
	paint     surface.Color
	antialias bool
	shape     string
	coords    []int
	angle     float64
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) Program() string { return d.root.subcommand("draw") }

func (d *drawCmd) FlagSet() *flag.FlagSet { return d.fs }

// shapeArity is the number of integer arguments each shape takes.
var shapeArity = map[string]int{
	"line":    4,
	"circle":  3,
	"disc":    3,
	"brush":   3,
	"polygon": 4,
	"rect":    4,
	"fill":    2,
	"flood":   2,
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.in.file, "file", "", "input image file")
	fs.StringVar(&d.out.output, "output", "", "output file path (defaults to input file)")
	fs.BoolVar(&d.in.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&d.out.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.StringVar(&d.colorSpec, "color", "red", "color name, palette entry or hex value")
	fs.BoolVar(&d.antialias, "aa", false, "use anti-aliased lines and outlines")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: d}
	}
	d.shape = strings.ToLower(fs.Arg(0))
	remaining := fs.Args()[1:]
	n, ok := shapeArity[d.shape]
	if !ok {
		return nil, fmt.Errorf("unsupported shape %q", d.shape)
	}
	if d.shape == "polygon" && len(remaining) == n+1 {
		angle, err := strconv.ParseFloat(remaining[n], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid angle %q", remaining[n])
		}
		d.angle = angle
		remaining = remaining[:n]
	}
	coords, err := expectInts(remaining, n, d.shape)
	if err != nil {
		return nil, err
	}
	d.coords = coords
	if err := d.out.resolve(d.in); err != nil {
		return nil, err
	}
	col, err := d.root.color(d.colorSpec)
	if err != nil {
		return nil, err
	}
	d.paint = col
	return d, nil
}

func (d *drawCmd) Run() error {
	img, err := d.in.load()
	if err != nil {
		return err
	}
	c := d.root.canvasFor(img)
	p := d.coords
	switch d.shape {
	case "line":
		if d.antialias {
			c.WuLine(p[0], p[1], p[2], p[3], d.paint)
		} else {
			c.Line(p[0], p[1], p[2], p[3], d.paint)
		}
	case "circle":
		if d.antialias {
			c.WuCircle(p[0], p[1], p[2], d.paint)
		} else {
			c.Circle(p[0], p[1], p[2], d.paint)
		}
	case "disc":
		c.Circle(p[0], p[1], -p[2], d.paint)
	case "brush":
		c.PaintCircle(p[0], p[1], p[2], d.paint)
	case "polygon":
		if err := c.Polygon(p[0], p[1], p[2], p[3], d.angle, d.paint, d.antialias); err != nil {
			return err
		}
	case "rect":
		c.Rect(image.Rect(p[0], p[1], p[2], p[3]), d.paint)
	case "fill":
		c.Fill(p[0], p[1], d.paint)
	case "flood":
		c.FloodFill(p[0], p[1], d.paint)
	}
	return d.out.write(d.root, c.Surface())
}
