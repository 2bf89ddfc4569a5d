package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/example/rasterpaint/internal/canvas"
	"github.com/example/rasterpaint/internal/config"
	"github.com/example/rasterpaint/internal/notify"
	"github.com/example/rasterpaint/internal/surface"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs         *flag.FlagSet
	program    string
	config     *config.Config
	notifier   *notify.Notifier
	configPath string
	verbose    bool

	captureAlerts bool
	saveAlerts    bool
	copyAlerts    bool
}

func (r *root) Program() string { return r.program }

func (r *root) FlagSet() *flag.FlagSet { return r.fs }

func newRoot() *root {
	r := &root{
		fs:      flag.NewFlagSet("rasterpaint", flag.ContinueOnError),
		program: "rasterpaint",
		config:  config.New(),
	}
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "path to the configuration file")
	r.fs.BoolVar(&r.verbose, "v", false, "log editing operations to stderr")
	r.fs.BoolVar(&r.captureAlerts, "notify-capture", false, "show a desktop notification after capturing the screen")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", false, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying to the clipboard")
	r.fs.Usage = usageFunc(r)
	return r
}

// loadConfig reads the configuration file. Notification flags given on the
// command line win over the [notify] section.
func (r *root) loadConfig() {
	cfg, err := config.NewLoader(version, r.configPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r.config = cfg
	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["notify-capture"] {
		r.captureAlerts = cfg.Notify.Capture
	}
	if !set["notify-save"] {
		r.saveAlerts = cfg.Notify.Save
	}
	if !set["notify-copy"] {
		r.copyAlerts = cfg.Notify.Copy
	}
	r.notifier = notify.FromConfig(config.Notify{Capture: r.captureAlerts, Save: r.saveAlerts, Copy: r.copyAlerts})
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.verbose {
		canvas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	r.loadConfig()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "new":
		cmd, err = parseNewCmd(subArgs, r)
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "filter":
		cmd, err = parseFilterCmd(subArgs, r)
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "capture":
		cmd, err = parseCaptureCmd(subArgs, r)
	case "view":
		cmd, err = parseViewCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) subcommand(name string) string {
	program := "rasterpaint"
	if r != nil && r.program != "" {
		program = r.program
	}
	return strings.TrimSpace(program + " " + name)
}

// color resolves a palette name, color name or hex value.
func (r *root) color(spec string) (surface.Color, error) {
	if r == nil || r.config == nil {
		return config.ParseColor(spec)
	}
	return r.config.Color(spec)
}

// canvasFor wraps s in a canvas configured from the loaded settings.
func (r *root) canvasFor(s *surface.Surface) *canvas.Canvas {
	if r == nil || r.config == nil {
		return canvas.FromSurface(s)
	}
	return canvas.FromSurface(s, r.config.CanvasOptions()...)
}

func (r *root) notifySave(path string) {
	if r == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil {
		return
	}
	r.notifier.Copy(detail)
}

func (r *root) notifyCapture(detail string, s *surface.Surface) {
	if r == nil {
		return
	}
	r.notifier.Capture(detail, s)
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		switch {
		case errors.As(err, &uerr):
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		case errors.Is(err, flag.ErrHelp):
			os.Exit(0)
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
