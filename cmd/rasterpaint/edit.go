package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/example/rasterpaint/internal/canvas"
	"github.com/example/rasterpaint/internal/clipboard"
	"github.com/example/rasterpaint/internal/config"
	"github.com/example/rasterpaint/internal/surface"
	"github.com/example/rasterpaint/internal/transform"
	"github.com/example/rasterpaint/internal/viewer"
)

var errEndScript = errors.New("end of script")

// editCmd runs a script of editing commands against one canvas.
type editCmd struct {
	in      source
	out     sink
	newSize string
	script  string
	execs   commandList

	canvas    *canvas.Canvas
	paint     surface.Color
	selection image.Rectangle
	input     io.Reader
	*root
	fs *flag.FlagSet
}

func (e *editCmd) Program() string { return e.root.subcommand("edit") }

func (e *editCmd) FlagSet() *flag.FlagSet { return e.fs }

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	e := &editCmd{root: r, fs: fs, paint: surface.Black, input: os.Stdin}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.in.file, "file", "", "input image file")
	fs.BoolVar(&e.in.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.StringVar(&e.newSize, "new", "", "start from a blank WIDTHxHEIGHT picture instead of a file")
	fs.StringVar(&e.out.output, "output", "", "write the result here when the script ends (defaults to input file)")
	fs.BoolVar(&e.out.toClipboard, "to-clipboard", false, "copy the result to the clipboard when the script ends")
	fs.StringVar(&e.script, "script", "", "read commands from this file instead of stdin")
	fs.Var(&e.execs, "e", "execute a command (may be specified multiple times)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: e}
	}
	if e.newSize != "" && (e.in.file != "" || e.in.fromClipboard) {
		return nil, fmt.Errorf("-new cannot be combined with an input image")
	}
	if e.newSize == "" && e.in.file == "" && !e.in.fromClipboard {
		return nil, &UsageError{of: e}
	}
	if e.out.output == "" {
		e.out.output = e.in.file
	}
	return e, nil
}

func parseSize(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", s)
	}
	dims, err := expectInts([]string{w, h}, 2, "size")
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if dims[0] <= 0 || dims[1] <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q", s)
	}
	return dims[0], dims[1], nil
}

func (e *editCmd) open() error {
	if e.newSize != "" {
		w, h, err := parseSize(e.newSize)
		if err != nil {
			return err
		}
		e.canvas = e.root.canvasFor(surface.NewFilled(w, h, surface.White))
	} else {
		img, err := e.in.load()
		if err != nil {
			return err
		}
		e.canvas = e.root.canvasFor(img)
	}
	// The seed is blank; record the starting picture so undo can reach it.
	e.canvas.UndoSave()
	return nil
}

func (e *editCmd) Run() error {
	if err := e.open(); err != nil {
		return err
	}
	if err := e.runScript(); err != nil {
		return err
	}
	if e.out.output == "" && !e.out.toClipboard {
		return nil
	}
	return e.out.write(e.root, e.picture())
}

func (e *editCmd) runScript() error {
	if len(e.execs) > 0 {
		for n, line := range e.execs {
			if err := e.executeLine(line); err != nil {
				if errors.Is(err, errEndScript) {
					return nil
				}
				return fmt.Errorf("command %d: %w", n+1, err)
			}
		}
		return nil
	}
	in := e.input
	if e.script != "" {
		f, err := os.Open(e.script)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	scanner := bufio.NewScanner(in)
	for n := 1; scanner.Scan(); n++ {
		if err := e.executeLine(scanner.Text()); err != nil {
			if errors.Is(err, errEndScript) {
				return nil
			}
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return scanner.Err()
}

// executeLine runs one command. Blank lines and # comments are ignored.
// Pixel-changing commands use the canvas primitives that do not checkpoint
// and end with a single checkpoint, so the newest checkpoint always matches
// the picture and undo steps back one command at a time.
func (e *editCmd) executeLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	args := strings.Fields(line)
	name, args := strings.ToLower(args[0]), args[1:]
	changed, err := e.execute(name, args)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if changed {
		e.canvas.UndoSave()
	}
	return nil
}

func (e *editCmd) execute(name string, args []string) (bool, error) {
	c := e.canvas
	switch name {
	case "exit", "quit":
		return false, errEndScript
	case "color":
		if len(args) != 1 {
			return false, errors.New("color requires a color")
		}
		col, err := e.root.color(args[0])
		if err != nil {
			return false, err
		}
		e.paint = col
		return false, nil
	case "line", "wuline", "rect", "select":
		if name == "select" && len(args) == 1 && args[0] == "none" {
			e.selection = image.Rectangle{}
			return false, nil
		}
		p, err := expectInts(args, 4, name)
		if err != nil {
			return false, err
		}
		switch name {
		case "line":
			c.Line(p[0], p[1], p[2], p[3], e.paint)
		case "wuline":
			c.WuLine(p[0], p[1], p[2], p[3], e.paint)
		case "rect":
			c.Rect(image.Rect(p[0], p[1], p[2], p[3]), e.paint)
		case "select":
			e.selection = image.Rect(p[0], p[1], p[2], p[3])
			return false, nil
		}
		return true, nil
	case "circle", "wucircle", "disc", "brush":
		p, err := expectInts(args, 3, name)
		if err != nil {
			return false, err
		}
		switch name {
		case "circle":
			c.Circle(p[0], p[1], p[2], e.paint)
		case "wucircle":
			c.WuCircle(p[0], p[1], p[2], e.paint)
		case "disc":
			c.Circle(p[0], p[1], -p[2], e.paint)
		case "brush":
			r := p[2]
			if r > 0 {
				r = -r
			}
			c.Circle(p[0], p[1], r, e.paint)
		}
		return true, nil
	case "polygon":
		return true, e.polygon(args)
	case "fill", "flood":
		p, err := expectInts(args, 2, name)
		if err != nil {
			return false, err
		}
		return c.FloodFill(p[0], p[1], e.paint) > 0, nil
	case "clear":
		c.Wipe()
		return true, nil
	case "copy", "cut":
		return name == "cut", e.copy(name == "cut")
	case "paste":
		return true, e.paste(args)
	case "clipcopy":
		return false, clipboard.WriteSurface(e.picture().CopyRegion(e.region()))
	case "clippaste":
		return false, e.clipboardPaste()
	case "filter":
		return true, e.filter(args)
	case "mask":
		c.TogglePaintOnMask()
		return false, nil
	case "clearmask":
		c.ClearMask()
		return false, nil
	case "gate":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			return false, errors.New("gate requires on or off")
		}
		c.EnableMask(args[0] == "on")
		return false, nil
	case "undo":
		if !c.Undo() {
			fmt.Fprintln(stderr, "nothing to undo")
		}
		return false, nil
	case "save":
		path := e.out.output
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return false, errors.New("save requires a path")
		}
		return false, sink{output: path}.write(e.root, e.picture())
	case "info":
		e.info()
		return false, nil
	case "view":
		viewer.New(c, e.viewerOptions()...).Run()
		return true, nil
	}
	return false, fmt.Errorf("unknown command")
}

// polygon takes cx cy radius sides [angle] [aa].
func (e *editCmd) polygon(args []string) error {
	aa := false
	if n := len(args); n > 0 && args[n-1] == "aa" {
		aa = true
		args = args[:n-1]
	}
	angle := 0.0
	if len(args) == 5 {
		a, err := strconv.ParseFloat(args[4], 64)
		if err != nil {
			return fmt.Errorf("invalid angle %q", args[4])
		}
		angle = a
		args = args[:4]
	}
	p, err := expectInts(args, 4, "polygon")
	if err != nil {
		return err
	}
	return e.canvas.Polygon(p[0], p[1], p[2], p[3], angle, e.paint, aa)
}

// picture is the surface holding the picture, which sits in the back slot
// while the mask is being painted.
func (e *editCmd) picture() *surface.Surface {
	if e.canvas.PaintingOnMask() {
		return e.canvas.MaskSurface()
	}
	return e.canvas.Surface()
}

// region is the selection, or the whole canvas when nothing is selected.
func (e *editCmd) region() image.Rectangle {
	if e.selection.Empty() {
		return e.canvas.Bounds()
	}
	return e.selection
}

func (e *editCmd) copy(cut bool) error {
	var err error
	if cut {
		_, err = e.canvas.Cut(e.region())
	} else {
		_, err = e.canvas.CopySelection(e.region())
	}
	return err
}

// paste takes x y [opacity]. Without coordinates it pastes at the
// selection corner.
func (e *editCmd) paste(args []string) error {
	opacity := uint8(255)
	if len(args) == 3 {
		o, err := parseOpacity(args[2])
		if err != nil {
			return err
		}
		opacity = o
		args = args[:2]
	}
	at := e.selection.Min
	if len(args) > 0 {
		p, err := expectInts(args, 2, "paste")
		if err != nil {
			return err
		}
		at = image.Pt(p[0], p[1])
	}
	e.canvas.PasteBuffer(at, opacity)
	return nil
}

// filter takes a transform name and, for resize, the target size. It runs
// over the selection when there is one.
func (e *editCmd) filter(args []string) error {
	if len(args) == 0 {
		return errors.New("filter requires a transform name")
	}
	kind, err := transform.ParseKind(args[0])
	if err != nil {
		return err
	}
	w, h := 0, 0
	if kind == transform.Resize {
		p, err := expectInts(args[1:], 2, "resize")
		if err != nil {
			return err
		}
		w, h = p[0], p[1]
		e.selection = image.Rectangle{}
	}
	op := e.canvas.Params().Op(kind, w, h)
	if e.selection.Empty() {
		return e.canvas.ApplyTransform(op)
	}
	return e.canvas.ApplyTransformSelection(e.selection, op)
}

func (e *editCmd) info() {
	c := e.canvas
	gate := "off"
	if c.MaskEnabled() {
		gate = "on"
	}
	fmt.Fprintf(stdout, "size %dx%d\n", c.Width(), c.Height())
	fmt.Fprintf(stdout, "color %s\n", config.FormatColor(e.paint))
	fmt.Fprintf(stdout, "front %s\n", c.Front())
	fmt.Fprintf(stdout, "gate %s\n", gate)
	fmt.Fprintf(stdout, "undo %d/%d\n", c.UndoLen(), c.UndoDepth())
	if !e.selection.Empty() {
		fmt.Fprintf(stdout, "selection %s\n", rectString(e.selection))
	}
	if buf := c.CopyBuffer(); !buf.Empty() {
		fmt.Fprintf(stdout, "buffer %dx%d\n", buf.Width(), buf.Height())
	}
}

func (e *editCmd) viewerOptions() []viewer.Option {
	opts := []viewer.Option{viewer.WithColor(e.paint)}
	if e.out.output != "" {
		opts = append(opts, viewer.WithOutput(e.out.output))
	}
	if e.root != nil {
		opts = append(opts, viewer.WithNotifier(e.root.notifier), viewer.WithConfig(e.root.config))
	}
	return opts
}

// clipboardPaste loads the clipboard image into the copy buffer.
func (e *editCmd) clipboardPaste() error {
	img, err := clipboard.ReadSurface()
	if err != nil {
		return err
	}
	e.canvas.SetCopyBuffer(img)
	return nil
}
