package canvas

import (
	"image"
	"strings"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

// EventKind identifies a notification raised by the canvas.
type EventKind int

const (
	// EventClick is a primary button press or drag on the surface.
	EventClick EventKind = iota
	// EventRightClick is a secondary button press or drag.
	EventRightClick
	// EventClearClick is pointer movement with no button held. Its point is
	// always the origin.
	EventClearClick
	// EventShortcut carries one of the shortcut runes.
	EventShortcut

	numEventKinds
)

func (k EventKind) String() string {
	switch k {
	case EventClick:
		return "click"
	case EventRightClick:
		return "right_click"
	case EventClearClick:
		return "clear_click"
	case EventShortcut:
		return "shortcut"
	}
	return "unknown"
}

// ShortcutRunes are the keys reported as EventShortcut: paste, copy, cut
// and quit.
const ShortcutRunes = "vcxQ"

// UndoRune is the key that triggers Undo directly.
const UndoRune = 'z'

// Event is a notification delivered to a Listener.
type Event struct {
	Kind  EventKind
	Point image.Point // surface coordinates
	Rune  rune        // set for EventShortcut
}

// Listener receives events from a canvas.
type Listener func(c *Canvas, e Event)

// On registers l for kind, replacing any earlier listener. A nil l removes
// it.
func (c *Canvas) On(kind EventKind, l Listener) {
	if kind < 0 || kind >= numEventKinds {
		return
	}
	c.listeners[kind] = l
}

// Emit delivers e to its listener and reports whether one was registered.
func (c *Canvas) Emit(e Event) bool {
	if e.Kind < 0 || e.Kind >= numEventKinds {
		return false
	}
	l := c.listeners[e.Kind]
	if l == nil {
		return false
	}
	l(c, e)
	return true
}

// SetOrigin sets where the surface's top-left corner sits in the coordinate
// space of incoming pointer events.
func (c *Canvas) SetOrigin(p image.Point) { c.origin = p }

// Origin returns the offset set by SetOrigin.
func (c *Canvas) Origin() image.Point { return c.origin }

// HandleMouse translates a pointer event into canvas events. Events outside
// the surface are ignored. A press or a drag with the left or right button
// held raises a click; movement with no button held raises a clear click.
// It reports whether the canvas needs redrawing.
func (c *Canvas) HandleMouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y)).Sub(c.origin)

	switch e.Direction {
	case mouse.DirPress:
		c.held = e.Button
	case mouse.DirRelease:
		if e.Button == c.held {
			c.held = mouse.ButtonNone
		}
		return false
	case mouse.DirStep:
		return false
	}
	if !p.In(c.image.Bounds()) {
		return false
	}

	switch c.held {
	case mouse.ButtonLeft:
		c.Emit(Event{Kind: EventClick, Point: p})
		return true
	case mouse.ButtonRight:
		c.Emit(Event{Kind: EventRightClick, Point: p})
		return true
	case mouse.ButtonNone:
		c.Emit(Event{Kind: EventClearClick})
	}
	return false
}

// HandleKey reacts to key presses: UndoRune undoes, ShortcutRunes are
// reported as EventShortcut. It reports whether the canvas needs redrawing.
func (c *Canvas) HandleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	if e.Rune == UndoRune {
		return c.Undo()
	}
	if e.Rune > 0 && strings.ContainsRune(ShortcutRunes, e.Rune) {
		c.Emit(Event{Kind: EventShortcut, Rune: e.Rune})
	}
	return false
}
