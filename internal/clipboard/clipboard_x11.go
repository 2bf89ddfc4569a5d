//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Without cgo the clipboard is served by owning the X11 CLIPBOARD selection
// from a hidden window and answering SelectionRequest events.

var (
	initOnce sync.Once
	initErr  error
	owner    *selectionOwner
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		o, err := newSelectionOwner()
		if err != nil {
			initErr = fmt.Errorf("x11 clipboard: %w", err)
			return
		}
		owner = o
	})
	return initErr
}

func writePNG(data []byte) error { return owner.publish(nil, data) }

func readPNG() ([]byte, error) { return owner.request(owner.atoms.png) }

func writeText(data []byte) error { return owner.publish(data, nil) }

func readText() ([]byte, error) {
	data, err := owner.request(owner.atoms.utf8)
	if err != nil {
		return owner.request(xproto.AtomString)
	}
	return data, nil
}

type atoms struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	utf8      xproto.Atom
	textPlain xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

type selectionOwner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atoms

	mu    sync.RWMutex
	text  []byte
	image []byte
}

func newSelectionOwner() (*selectionOwner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	mask := uint32(xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify)
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, []uint32{mask}).Check(); err != nil {
		conn.Close()
		return nil, err
	}
	a, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return nil, err
	}
	o := &selectionOwner{conn: conn, window: window, atoms: a}
	go o.serve()
	return o, nil
}

func internAtoms(conn *xgb.Conn) (atoms, error) {
	names := []string{"CLIPBOARD", "TARGETS", "UTF8_STRING", "text/plain;charset=utf-8", "image/png", "RASTERPAINT_CLIPBOARD"}
	ids := make([]xproto.Atom, len(names))
	for i, name := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return atoms{}, fmt.Errorf("intern %s: %w", name, err)
		}
		ids[i] = reply.Atom
	}
	return atoms{
		clipboard: ids[0],
		targets:   ids[1],
		utf8:      ids[2],
		textPlain: ids[3],
		png:       ids[4],
		property:  ids[5],
	}, nil
}

// publish replaces the offered contents and claims the selection.
func (o *selectionOwner) publish(text, image []byte) error {
	o.mu.Lock()
	o.text = append([]byte(nil), text...)
	o.image = append([]byte(nil), image...)
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

// errConnClosed reports that the X connection went away while waiting.
var errConnClosed = errors.New("x11 connection closed")

type eventSource interface {
	WaitForEvent() (xgb.Event, xgb.Error)
}

// nextEvent waits for the next event. xgb signals a closed connection by
// returning neither an event nor an error.
func nextEvent(src eventSource) (xgb.Event, error) {
	ev, xerr := src.WaitForEvent()
	if xerr != nil {
		return nil, xerr
	}
	if ev == nil {
		return nil, errConnClosed
	}
	return ev, nil
}

func (o *selectionOwner) serve() {
	for {
		ev, err := nextEvent(o.conn)
		if errors.Is(err, errConnClosed) {
			return
		}
		if err != nil {
			continue
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.text, o.image = nil, nil
			o.mu.Unlock()
		}
	}
}

// offer returns the payload for target, with its type atom and format.
func (o *selectionOwner) offer(target xproto.Atom) ([]byte, xproto.Atom, byte, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	switch target {
	case o.atoms.targets:
		list := []xproto.Atom{o.atoms.targets}
		if len(o.text) > 0 {
			list = append(list, o.atoms.utf8, xproto.AtomString, o.atoms.textPlain)
		}
		if len(o.image) > 0 {
			list = append(list, o.atoms.png)
		}
		buf := make([]byte, 4*len(list))
		for i, a := range list {
			xgb.Put32(buf[4*i:], uint32(a))
		}
		return buf, xproto.AtomAtom, 32, true
	case o.atoms.utf8, xproto.AtomString, o.atoms.textPlain:
		return o.text, o.atoms.utf8, 8, len(o.text) > 0
	case o.atoms.png:
		return o.image, o.atoms.png, 8, len(o.image) > 0
	}
	return nil, xproto.AtomNone, 0, false
}

func (o *selectionOwner) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}
	payload, typ, format, ok := o.offer(e.Target)
	if ok {
		length := uint32(len(payload)) / uint32(format/8)
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, typ, format, length, payload)
	} else {
		property = xproto.AtomNone
	}
	reply := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	xproto.SendEvent(o.conn, false, e.Requestor, 0, string(reply.Bytes()))
}

// request converts the selection to target on a private connection so the
// owner's event loop stays free to answer when we own it ourselves.
func (o *selectionOwner) request(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	if err := xproto.ConvertSelectionChecked(conn, window, o.atoms.clipboard, target, o.atoms.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	for {
		ev, err := nextEvent(conn)
		if err != nil {
			return nil, err
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, fmt.Errorf("clipboard target unavailable")
		}
		reply, err := xproto.GetProperty(conn, true, window, o.atoms.property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), reply.Value...), nil
	}
}
