package viewer

import (
	"image"
	"strings"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/rasterpaint/internal/canvas"
	"github.com/example/rasterpaint/internal/clipboard"
	"github.com/example/rasterpaint/internal/codec"
	"github.com/example/rasterpaint/internal/config"
	"github.com/example/rasterpaint/internal/transform"
)

// filterKeys maps keys to the transform they apply to the selection, or to
// the whole picture when nothing is selected.
var filterKeys = map[rune]transform.Kind{
	'B': transform.Blur,
	'U': transform.Unsharpen,
	'V': transform.FlipVertical,
	'H': transform.FlipHorizontal,
	'R': transform.Rotate90,
	'+': transform.Brighten,
	'-': transform.Darken,
	'I': transform.Invert,
	'G': transform.Grayscale,
}

// handleMouse maps window coordinates to surface coordinates at the
// current zoom and passes the event to the canvas.
func (v *Viewer) handleMouse(e mouse.Event) bool {
	l := v.layout()
	v.canvas.SetOrigin(l.image.Min)
	e.X, e.Y = l.unzoom(e.X, e.Y)
	if e.Direction == mouse.DirRelease {
		v.stroking = false
	}
	return v.canvas.HandleMouse(e)
}

// handleKey runs viewer shortcuts and hands the rest to the canvas.
func (v *Viewer) handleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	if e.Modifiers&key.ModControl != 0 {
		switch e.Code {
		case key.CodeS:
			v.save()
			return true
		case key.CodeZ:
			return v.canvas.Undo()
		}
		return false
	}
	if kind, ok := filterKeys[e.Rune]; ok {
		v.apply(kind)
		return true
	}
	switch e.Rune {
	case 'b':
		v.tool = ToolBrush
	case 'f':
		v.tool = ToolFill
	case 's':
		v.tool = ToolSelect
	case 'm':
		v.canvas.TogglePaintOnMask()
		v.say("painting on %s", v.canvas.Front())
	case 'M':
		v.canvas.ClearMask()
		v.say("mask cleared")
	case 'e':
		v.canvas.EnableMask(!v.canvas.MaskEnabled())
		v.say("mask gating %v", v.canvas.MaskEnabled())
	case '[':
		if v.radius > 1 {
			v.radius--
		}
	case ']':
		v.radius++
	case '>':
		if v.zoom < maxZoom {
			v.zoom++
		}
	case '<':
		if v.zoom > 1 {
			v.zoom--
		}
	default:
		if e.Rune >= '1' && e.Rune <= '9' {
			if i := int(e.Rune - '1'); i < len(v.palette) {
				v.color = v.palette[i]
				return true
			}
		}
		if e.Code == key.CodeEscape {
			v.selection = image.Rectangle{}
			return true
		}
		redraw := v.canvas.HandleKey(e)
		return redraw || strings.ContainsRune(canvas.ShortcutRunes, e.Rune)
	}
	return true
}

// primary handles a left click or drag at p.
func (v *Viewer) primary(p image.Point) {
	first := !v.stroking
	v.stroking = true
	switch v.tool {
	case ToolBrush:
		if first {
			v.canvas.PaintCircle(p.X, p.Y, v.radius, v.color)
		} else {
			v.canvas.Circle(p.X, p.Y, -v.radius, v.color)
		}
	case ToolFill:
		if first {
			v.canvas.Fill(p.X, p.Y, v.color)
		}
	case ToolSelect:
		if first {
			v.selStart = p
		}
		v.selection = image.Rectangle{Min: v.selStart, Max: p}.Canon()
		v.selection.Max = v.selection.Max.Add(image.Pt(1, 1))
	}
}

// pick takes the color under p as the drawing color.
func (v *Viewer) pick(p image.Point) {
	v.color = v.canvas.Pixel(p.X, p.Y)
	hex := config.FormatColor(v.color)
	if err := clipboard.WriteText(hex); err != nil {
		v.say("color %s", hex)
		return
	}
	v.say("color %s copied", hex)
}

// shortcut handles the keys the canvas reports as shortcuts.
func (v *Viewer) shortcut(r rune) {
	switch r {
	case 'c', 'x':
		sel := v.selection
		if sel.Empty() {
			sel = v.canvas.Bounds()
		}
		var err error
		if r == 'x' {
			_, err = v.canvas.CutSelection(sel)
		} else {
			_, err = v.canvas.CopySelection(sel)
		}
		if err != nil {
			v.say("copy: %v", err)
			return
		}
		if err := clipboard.WriteSurface(v.canvas.CopyBuffer()); err != nil {
			v.say("copied inside the editor only: %v", err)
			return
		}
		v.notifier.Copy("selection")
		v.say("copied %dx%d", sel.Dx(), sel.Dy())
	case 'v':
		if s, err := clipboard.ReadSurface(); err == nil {
			v.canvas.SetCopyBuffer(s)
		}
		buf := v.canvas.CopyBuffer()
		if buf == nil || buf.Empty() {
			v.say("nothing to paste")
			return
		}
		v.canvas.PasteImage(v.selection.Min, 255, buf)
	case 'Q':
		v.quit = true
	}
}

// apply runs a transform on the selection or the whole picture.
func (v *Viewer) apply(kind transform.Kind) {
	op := v.canvas.Params().Op(kind, 0, 0)
	var err error
	if v.selection.Empty() {
		err = v.canvas.Transform(op)
	} else {
		err = v.canvas.TransformSelection(v.selection, op)
	}
	if err != nil {
		v.say("%s: %v", kind, err)
		return
	}
	v.say("%s applied", kind)
}

func (v *Viewer) save() {
	if v.output == "" {
		v.say("no output file")
		return
	}
	if err := codec.EncodeFile(v.output, v.picture()); err != nil {
		v.say("save: %v", err)
		return
	}
	v.notifier.Save(v.output)
	v.say("saved %s", v.output)
}

// Canvas returns the canvas being edited.
func (v *Viewer) Canvas() *canvas.Canvas { return v.canvas }
