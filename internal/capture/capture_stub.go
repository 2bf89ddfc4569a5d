//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import "github.com/example/rasterpaint/internal/surface"

type unsupportedBackend struct{}

func newBackend() backend { return unsupportedBackend{} }

func (unsupportedBackend) Monitors() ([]MonitorInfo, error) { return nil, errUnsupported }

func (unsupportedBackend) Root() (*surface.Surface, error) { return nil, errUnsupported }

func portalScreenshot(Options) (*surface.Surface, error) { return nil, errUnsupported }
