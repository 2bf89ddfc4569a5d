//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"

	"github.com/example/rasterpaint/internal/codec"
	"github.com/example/rasterpaint/internal/surface"
)

// portalTimeout bounds how long an interactive portal request may wait.
const portalTimeout = 2 * time.Minute

type x11Backend struct{}

func newBackend() backend { return x11Backend{} }

func (x11Backend) Monitors() ([]MonitorInfo, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()
	root := xproto.Setup(conn).DefaultScreen(conn).Root
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("init randr: %w", err)
	}
	res, err := randr.GetScreenResources(conn, root).Reply()
	if err != nil {
		return nil, fmt.Errorf("randr screen resources: %w", err)
	}
	primary := randr.Output(0)
	if reply, err := randr.GetOutputPrimary(conn, root).Reply(); err == nil {
		primary = reply.Output
	}
	var monitors []MonitorInfo
	for _, output := range res.Outputs {
		info, err := randr.GetOutputInfo(conn, output, res.ConfigTimestamp).Reply()
		if err != nil || info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(conn, info.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		monitors = append(monitors, MonitorInfo{
			Index:   len(monitors),
			Name:    string(info.Name),
			Rect:    image.Rect(int(crtc.X), int(crtc.Y), int(crtc.X)+int(crtc.Width), int(crtc.Y)+int(crtc.Height)),
			Primary: output == primary,
		})
	}
	if len(monitors) == 0 {
		return nil, errNoMonitors
	}
	return monitors, nil
}

func (x11Backend) Root() (*surface.Surface, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()
	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	w, h := int(screen.WidthInPixels), int(screen.HeightInPixels)
	reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(screen.Root),
		0, 0, uint16(w), uint16(h), 0xFFFFFFFF).Reply()
	if err != nil {
		return nil, fmt.Errorf("root window pixels: %w", err)
	}
	bits := 0
	for _, f := range setup.PixmapFormats {
		if f.Depth == reply.Depth {
			bits = int(f.BitsPerPixel)
			break
		}
	}
	if bits == 0 {
		return nil, fmt.Errorf("unsupported root depth %d", reply.Depth)
	}
	return fromXImage(reply.Data, int(reply.Depth), bits, w, h)
}

var portalHandleToken = func() string {
	return fmt.Sprintf("rasterpaint_%d", time.Now().UnixNano())
}

func portalOptions(opts Options) map[string]dbus.Variant {
	cursor := "hidden"
	if opts.IncludeCursor {
		cursor = "embedded"
	}
	return map[string]dbus.Variant{
		"interactive":  dbus.MakeVariant(opts.Interactive),
		"modal":        dbus.MakeVariant(opts.Interactive),
		"handle_token": dbus.MakeVariant(portalHandleToken()),
		"cursor_mode":  dbus.MakeVariant(cursor),
	}
}

// portalScreenshot asks org.freedesktop.portal.Screenshot for a picture and
// decodes the file it hands back.
func portalScreenshot(opts Options) (*surface.Surface, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	defer conn.Close()

	obj := conn.Object("org.freedesktop.portal.Desktop", "/org/freedesktop/portal/desktop")
	var handle dbus.ObjectPath
	if err := obj.Call("org.freedesktop.portal.Screenshot.Screenshot", 0, "", portalOptions(opts)).Store(&handle); err != nil {
		return nil, fmt.Errorf("portal screenshot call: %w", err)
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(handle),
		dbus.WithMatchInterface("org.freedesktop.portal.Request"),
		dbus.WithMatchMember("Response"),
	); err != nil {
		return nil, fmt.Errorf("portal screenshot subscribe: %w", err)
	}
	sigc := make(chan *dbus.Signal, 1)
	conn.Signal(sigc)
	defer conn.RemoveSignal(sigc)

	timeout := time.After(portalTimeout)
	for {
		select {
		case sig, ok := <-sigc:
			if !ok {
				return nil, fmt.Errorf("portal screenshot: connection closed")
			}
			if sig.Path != handle || len(sig.Body) < 2 {
				continue
			}
			return portalResult(sig.Body)
		case <-timeout:
			return nil, fmt.Errorf("portal screenshot: no response after %v", portalTimeout)
		}
	}
}

func portalResult(body []interface{}) (*surface.Surface, error) {
	if code, ok := body[0].(uint32); ok && code != 0 {
		return nil, fmt.Errorf("portal screenshot cancelled (response %d)", code)
	}
	results, ok := body[1].(map[string]dbus.Variant)
	if !ok {
		return nil, fmt.Errorf("portal screenshot: malformed response")
	}
	raw, ok := results["uri"].Value().(string)
	if !ok {
		return nil, fmt.Errorf("portal screenshot: response missing image uri")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("portal screenshot uri: %w", err)
	}
	defer func() {
		if err := os.Remove(u.Path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove portal screenshot: %v", err)
		}
	}()
	return codec.DecodeFile(u.Path)
}
