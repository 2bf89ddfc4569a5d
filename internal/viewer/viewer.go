// Package viewer hosts a canvas in a shiny window: it draws the picture and
// turns pointer and keyboard input into canvas operations.
package viewer

import (
	"fmt"
	"image"
	"log"
	"sort"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/rasterpaint/internal/canvas"
	"github.com/example/rasterpaint/internal/config"
	"github.com/example/rasterpaint/internal/notify"
	"github.com/example/rasterpaint/internal/surface"
)

// Tool is what a primary click does.
type Tool int

const (
	ToolBrush Tool = iota
	ToolFill
	ToolSelect
)

func (t Tool) String() string {
	switch t {
	case ToolBrush:
		return "brush"
	case ToolFill:
		return "fill"
	case ToolSelect:
		return "select"
	}
	return "unknown"
}

const (
	margin       = 16
	statusHeight = 20
	maxZoom      = 8
	messageTime  = 2 * time.Second
)

var defaultPalette = []surface.Color{
	surface.Black,
	surface.White,
	surface.RGBA(255, 0, 0, 255),
	surface.RGBA(0, 160, 0, 255),
	surface.RGBA(0, 0, 255, 255),
	surface.RGBA(255, 220, 0, 255),
	surface.RGBA(255, 128, 0, 255),
	surface.RGBA(128, 0, 160, 255),
	surface.Transparent,
}

// Viewer is the interactive editor window.
type Viewer struct {
	canvas   *canvas.Canvas
	cfg      *config.Config
	notifier *notify.Notifier
	output   string

	palette []surface.Color
	tool    Tool
	color   surface.Color
	radius  int
	zoom    int

	stroking  bool
	selStart  image.Point
	selection image.Rectangle

	message      string
	messageUntil time.Time
	quit         bool
	winSize      image.Point

	updateCh chan struct{}
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithOutput sets where the save shortcut writes the picture.
func WithOutput(path string) Option { return func(v *Viewer) { v.output = path } }

// WithNotifier sets the notifier used for save and copy events.
func WithNotifier(n *notify.Notifier) Option { return func(v *Viewer) { v.notifier = n } }

// WithConfig sets the colors and palette.
func WithConfig(cfg *config.Config) Option { return func(v *Viewer) { v.cfg = cfg } }

// WithColor sets the initial drawing color.
func WithColor(c surface.Color) Option { return func(v *Viewer) { v.color = c } }

// New creates a viewer for c and registers its listeners on it. A canvas
// that has never been checkpointed gets its current picture checkpointed.
func New(c *canvas.Canvas, opts ...Option) *Viewer {
	v := &Viewer{
		canvas:   c,
		cfg:      config.New(),
		color:    surface.Black,
		radius:   3,
		zoom:     1,
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(v)
	}
	v.palette = paletteFrom(v.cfg)
	// A fresh canvas holds only its blank seed; record the picture so the
	// first undo returns to it.
	if c.UndoLen() == 1 {
		c.UndoSave()
	}

	c.On(canvas.EventClick, func(_ *canvas.Canvas, e canvas.Event) { v.primary(e.Point) })
	c.On(canvas.EventRightClick, func(_ *canvas.Canvas, e canvas.Event) { v.pick(e.Point) })
	c.On(canvas.EventClearClick, func(*canvas.Canvas, canvas.Event) { v.stroking = false })
	c.On(canvas.EventShortcut, func(_ *canvas.Canvas, e canvas.Event) { v.shortcut(e.Rune) })
	return v
}

// paletteFrom returns the configured palette sorted by name, or the
// built-in one when none is configured.
func paletteFrom(cfg *config.Config) []surface.Color {
	if cfg == nil || len(cfg.Palette) == 0 {
		return defaultPalette
	}
	names := make([]string, 0, len(cfg.Palette))
	for name := range cfg.Palette {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]surface.Color, len(names))
	for i, name := range names {
		out[i] = cfg.Palette[name]
	}
	return out
}

// Changed asks the window to repaint after the canvas was edited from
// another goroutine.
func (v *Viewer) Changed() {
	select {
	case v.updateCh <- struct{}{}:
	default:
	}
}

func (v *Viewer) say(format string, args ...any) {
	v.message = fmt.Sprintf(format, args...)
	v.messageUntil = time.Now().Add(messageTime)
	log.Print(v.message)
}

// Run opens the window and blocks until it is closed.
func (v *Viewer) Run() { driver.Main(v.Main) }

// Main runs the event loop on s.
func (v *Viewer) Main(s screen.Screen) {
	b := v.canvas.Bounds()
	v.winSize = image.Pt(b.Dx()+2*margin, b.Dy()+2*margin+statusHeight)
	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  v.winSize.X,
		Height: v.winSize.Y,
		Title:  "rasterpaint",
	})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-v.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			v.winSize = image.Pt(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			v.paint(s, w)
		case mouse.Event:
			if v.handleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if v.handleKey(e) {
				w.Send(paint.Event{})
			}
		case error:
			log.Printf("window: %v", e)
		}
		if v.quit {
			return
		}
	}
}

func (v *Viewer) paint(s screen.Screen, w screen.Window) {
	buf, err := s.NewBuffer(v.winSize)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer buf.Release()
	v.frame(buf.RGBA())
	w.Upload(image.Point{}, buf, buf.Bounds())
	w.Publish()
}
