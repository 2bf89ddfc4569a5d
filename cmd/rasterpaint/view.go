package main

import (
	"flag"

	"github.com/example/rasterpaint/internal/surface"
	"github.com/example/rasterpaint/internal/viewer"
)

// viewCmd opens an image, or a blank picture, in the interactive viewer.
type viewCmd struct {
	in        source
	output    string
	newSize   string
	colorSpec string
	*root
	fs *flag.FlagSet
}

func (v *viewCmd) Program() string { return v.root.subcommand("view") }

func (v *viewCmd) FlagSet() *flag.FlagSet { return v.fs }

func parseViewCmd(args []string, r *root) (*viewCmd, error) {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	v := &viewCmd{root: r, fs: fs}
	fs.Usage = usageFunc(v)
	fs.StringVar(&v.in.file, "file", "", "image file to open")
	fs.BoolVar(&v.in.fromClipboard, "from-clipboard", false, "open the clipboard image")
	fs.StringVar(&v.newSize, "new", "", "start from a blank WIDTHxHEIGHT picture")
	fs.StringVar(&v.output, "output", "", "where ctrl+s saves (defaults to the opened file)")
	fs.StringVar(&v.colorSpec, "color", "black", "initial drawing color")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 1 && v.in.file == "" {
		v.in.file = fs.Arg(0)
	} else if fs.NArg() > 0 {
		return nil, &UsageError{of: v}
	}
	if v.newSize == "" && v.in.file == "" && !v.in.fromClipboard {
		return nil, &UsageError{of: v}
	}
	if v.output == "" {
		v.output = v.in.file
	}
	return v, nil
}

func (v *viewCmd) load() (*surface.Surface, error) {
	if v.newSize == "" {
		return v.in.load()
	}
	w, h, err := parseSize(v.newSize)
	if err != nil {
		return nil, err
	}
	return surface.NewFilled(w, h, surface.White), nil
}

func (v *viewCmd) Run() error {
	img, err := v.load()
	if err != nil {
		return err
	}
	col, err := v.root.color(v.colorSpec)
	if err != nil {
		return err
	}
	opts := []viewer.Option{viewer.WithColor(col)}
	if v.output != "" {
		opts = append(opts, viewer.WithOutput(v.output))
	}
	if v.root != nil {
		opts = append(opts, viewer.WithNotifier(v.root.notifier), viewer.WithConfig(v.root.config))
	}
	viewer.New(v.root.canvasFor(img), opts...).Run()
	return nil
}
