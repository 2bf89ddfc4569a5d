// Package capture grabs the desktop into a surface so it can be edited.
package capture

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/example/rasterpaint/internal/surface"
)

var (
	errNoMonitors  = errors.New("no monitors available")
	errOutside     = errors.New("requested region outside captured image")
	errUnsupported = errors.New("screen capture is not supported on this platform")
)

// MonitorInfo describes one monitor in the display layout.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// Options selects what part of the desktop to capture. Region is relative
// to the chosen monitor, or to the whole desktop when Monitor is empty.
type Options struct {
	Monitor       string
	Region        image.Rectangle
	IncludeCursor bool
	Interactive   bool
}

type backend interface {
	Monitors() ([]MonitorInfo, error)
	Root() (*surface.Surface, error)
}

var (
	active   backend = newBackend()
	portalFn         = portalScreenshot
)

// Monitors lists the connected monitors.
func Monitors() ([]MonitorInfo, error) {
	return active.Monitors()
}

// Screenshot captures the desktop per opts. The X server is asked first;
// the desktop portal is used when that fails or when the capture is
// interactive.
func Screenshot(opts Options) (*surface.Surface, error) {
	var shot *surface.Surface
	var err error
	if opts.Interactive {
		shot, err = portalFn(opts)
	} else if shot, err = active.Root(); err != nil {
		var perr error
		if shot, perr = portalFn(opts); perr != nil {
			return nil, fmt.Errorf("capture: %v; portal fallback: %w", err, perr)
		}
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}

	rect := opts.Region
	if opts.Monitor != "" {
		monitors, err := active.Monitors()
		if err != nil {
			return nil, fmt.Errorf("capture monitor %q: %w", opts.Monitor, err)
		}
		mon, err := FindMonitor(monitors, opts.Monitor)
		if err != nil {
			return nil, err
		}
		if rect.Empty() {
			rect = mon.Rect
		} else {
			rect = rect.Add(mon.Rect.Min).Intersect(mon.Rect)
		}
	}
	if rect.Empty() {
		return shot, nil
	}
	return crop(shot, rect)
}

func crop(s *surface.Surface, r image.Rectangle) (*surface.Surface, error) {
	r = r.Intersect(s.Bounds())
	if r.Empty() {
		return nil, errOutside
	}
	return s.CopyRegion(r), nil
}

// FindMonitor resolves a selector: "primary", an index (optionally "#"
// prefixed) or a substring of the output name.
func FindMonitor(monitors []MonitorInfo, selector string) (MonitorInfo, error) {
	if len(monitors) == 0 {
		return MonitorInfo{}, errNoMonitors
	}
	sel := strings.ToLower(strings.TrimSpace(selector))
	if sel == "" {
		return monitors[0], nil
	}
	if sel == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	if idx, err := strconv.Atoi(strings.TrimPrefix(sel, "#")); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return MonitorInfo{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), sel) {
			return mon, nil
		}
	}
	return MonitorInfo{}, fmt.Errorf("monitor %q not found", selector)
}

// fromXImage converts ZPixmap data in BGR(X) byte order to a surface. Only
// depth-32 visuals carry alpha; the pad byte of depth 24 is ignored.
func fromXImage(data []byte, depth, bitsPerPixel, width, height int) (*surface.Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image has empty geometry")
	}
	bpp := bitsPerPixel / 8
	if bpp < 3 {
		return nil, fmt.Errorf("unsupported pixel format %d bpp", bitsPerPixel)
	}
	stride := len(data) / height
	if stride*height != len(data) || stride < width*bpp {
		return nil, fmt.Errorf("unexpected stride for %dx%d image of %d bytes", width, height, len(data))
	}
	s := surface.New(width, height)
	for y := 0; y < height; y++ {
		row := data[y*stride:]
		for x := 0; x < width; x++ {
			p := row[x*bpp:]
			a := uint8(0xFF)
			if depth == 32 && bpp >= 4 {
				a = p[3]
			}
			s.SetPixel(x, y, surface.RGBA(p[2], p[1], p[0], a))
		}
	}
	return s, nil
}
