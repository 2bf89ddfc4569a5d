package main

import (
	"flag"
	"fmt"
	"image"
	"strings"

	"github.com/example/rasterpaint/internal/transform"
)

// filterCmd runs one transform over an image or a region of it.
type filterCmd struct {
	in        source
	out       sink
	region    string
	sigma     float64
	threshold int
	delta     int
	kind      transform.Kind
	size      []int
	*root
	fs *flag.FlagSet
}

func (f *filterCmd) Program() string { return f.root.subcommand("filter") }

func (f *filterCmd) FlagSet() *flag.FlagSet { return f.fs }

func parseFilterCmd(args []string, r *root) (*filterCmd, error) {
	fs := flag.NewFlagSet("filter", flag.ContinueOnError)
	f := &filterCmd{root: r, fs: fs}
	fs.Usage = usageFunc(f)
	fs.StringVar(&f.in.file, "file", "", "input image file")
	fs.StringVar(&f.out.output, "output", "", "output file path (defaults to input file)")
	fs.BoolVar(&f.in.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&f.out.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.StringVar(&f.region, "region", "", "only filter x0,y0,x1,y1")
	fs.Float64Var(&f.sigma, "sigma", 0, "blur radius for blur and unsharpen (0 uses the configured value)")
	fs.IntVar(&f.threshold, "threshold", -1, "unsharpen threshold (-1 uses the configured value)")
	fs.IntVar(&f.delta, "delta", 0, "brighten or darken step (0 uses the configured value)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: f}
	}
	kind, err := transform.ParseKind(strings.ToLower(fs.Arg(0)))
	if err != nil {
		return nil, err
	}
	f.kind = kind
	rest := fs.Args()[1:]
	if kind == transform.Resize {
		if f.size, err = expectInts(rest, 2, "resize"); err != nil {
			return nil, err
		}
		if f.region != "" {
			return nil, fmt.Errorf("resize cannot be limited to a region")
		}
	} else if len(rest) > 0 {
		return nil, fmt.Errorf("%s takes no arguments", kind)
	}
	if err := f.out.resolve(f.in); err != nil {
		return nil, err
	}
	return f, nil
}

// op builds the transform from the canvas parameters and any overrides.
func (f *filterCmd) op(p transform.Params) transform.Op {
	w, h := 0, 0
	if len(f.size) == 2 {
		w, h = f.size[0], f.size[1]
	}
	op := p.Op(f.kind, w, h)
	if f.sigma > 0 {
		op.Sigma = f.sigma
	}
	if f.threshold >= 0 && f.kind == transform.Unsharpen {
		op.Threshold = f.threshold
	}
	if f.delta > 0 {
		op.Delta = f.delta
	}
	return op
}

func (f *filterCmd) Run() error {
	img, err := f.in.load()
	if err != nil {
		return err
	}
	c := f.root.canvasFor(img)
	op := f.op(c.Params())
	if f.region != "" {
		var r image.Rectangle
		if r, err = parseRect(f.region); err != nil {
			return err
		}
		err = c.TransformSelection(r, op)
	} else {
		err = c.Transform(op)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", f.kind, err)
	}
	return f.out.write(f.root, c.Surface())
}
