package main

import (
	"flag"

	"github.com/example/rasterpaint/internal/surface"
)

// newCmd creates a blank picture.
type newCmd struct {
	colorSpec string
	width     int
	height    int
	out       sink
	*root
	fs *flag.FlagSet
}

func (c *newCmd) Program() string { return c.root.subcommand("new") }

func (c *newCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseNewCmd(args []string, r *root) (*newCmd, error) {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	c := &newCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.colorSpec, "color", "transparent", "background color name or hex value")
	fs.StringVar(&c.out.output, "output", "", "output file path")
	fs.BoolVar(&c.out.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 2 {
		return nil, &UsageError{of: c}
	}
	dims, err := expectInts(fs.Args(), 2, "new")
	if err != nil {
		return nil, err
	}
	c.width, c.height = dims[0], dims[1]
	if c.width <= 0 || c.height <= 0 {
		return nil, &UsageError{of: c}
	}
	if err := c.out.resolve(source{}); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *newCmd) Run() error {
	col, err := c.root.color(c.colorSpec)
	if err != nil {
		return err
	}
	return c.out.write(c.root, surface.NewFilled(c.width, c.height, col))
}
