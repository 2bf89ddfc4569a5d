package main

import (
	"flag"
	"fmt"
	"image"
	"strings"

	"github.com/example/rasterpaint/internal/capture"
	"github.com/example/rasterpaint/internal/surface"
	"github.com/example/rasterpaint/internal/viewer"
)

var (
	captureFn  = capture.Screenshot
	monitorsFn = capture.Monitors
)

// captureCmd grabs the screen, a monitor or a region of either.
type captureCmd struct {
	opts   capture.Options
	region string
	list   bool
	view   bool
	out    sink
	*root
	fs *flag.FlagSet
}

func (c *captureCmd) Program() string { return c.root.subcommand("capture") }

func (c *captureCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseCaptureCmd(args []string, r *root) (*captureCmd, error) {
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	c := &captureCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.opts.Monitor, "monitor", "", "monitor to capture: primary, an index or part of its name")
	fs.StringVar(&c.region, "region", "", "capture only x0,y0,x1,y1, relative to the monitor when one is chosen")
	fs.BoolVar(&c.opts.Interactive, "interactive", false, "let the desktop portal ask what to capture")
	fs.BoolVar(&c.opts.IncludeCursor, "cursor", false, "include the mouse cursor when the portal supports it")
	fs.BoolVar(&c.list, "list", false, "list monitors and exit")
	fs.BoolVar(&c.view, "view", false, "open the capture in the viewer")
	fs.StringVar(&c.out.output, "output", "", "output file path")
	fs.BoolVar(&c.out.toClipboard, "to-clipboard", false, "copy the capture to the clipboard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	if c.region != "" {
		r, err := parseRect(c.region)
		if err != nil {
			return nil, err
		}
		c.opts.Region = r
	}
	if !c.list && !c.view && c.out.output == "" && !c.out.toClipboard {
		return nil, fmt.Errorf("capture needs -output, -to-clipboard or -view")
	}
	return c, nil
}

func (c *captureCmd) Run() error {
	if c.list {
		return c.listMonitors()
	}
	shot, err := captureFn(c.opts)
	if err != nil {
		return fmt.Errorf("failed to capture %s: %w", c.target(), err)
	}
	c.root.notifyCapture(c.target(), shot)
	if err := c.out.write(c.root, shot); err != nil {
		return err
	}
	if c.view {
		c.openViewer(shot)
	}
	return nil
}

func (c *captureCmd) target() string {
	parts := []string{"screen"}
	if c.opts.Monitor != "" {
		parts = []string{"monitor " + c.opts.Monitor}
	}
	if !c.opts.Region.Empty() {
		parts = append(parts, "region "+rectString(c.opts.Region))
	}
	return strings.Join(parts, " ")
}

func (c *captureCmd) listMonitors() error {
	monitors, err := monitorsFn()
	if err != nil {
		return err
	}
	for _, m := range monitors {
		primary := ""
		if m.Primary {
			primary = " (primary)"
		}
		fmt.Fprintf(stdout, "%d\t%s\t%s%s\n", m.Index, m.Name, rectString(m.Rect), primary)
	}
	return nil
}

func (c *captureCmd) openViewer(shot *surface.Surface) {
	opts := []viewer.Option{}
	if c.out.output != "" {
		opts = append(opts, viewer.WithOutput(c.out.output))
	}
	if c.root != nil {
		opts = append(opts, viewer.WithNotifier(c.root.notifier), viewer.WithConfig(c.root.config))
	}
	viewer.New(c.root.canvasFor(shot), opts...).Run()
}

func rectString(r image.Rectangle) string {
	return fmt.Sprintf("%d,%d,%d,%d", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}
