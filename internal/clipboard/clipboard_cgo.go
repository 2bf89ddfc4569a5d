//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		initErr = clipboard.Init()
	})
	return initErr
}

func writePNG(data []byte) error {
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

func readPNG() ([]byte, error) {
	return clipboard.Read(clipboard.FmtImage), nil
}

func writeText(data []byte) error {
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

func readText() ([]byte, error) {
	return clipboard.Read(clipboard.FmtText), nil
}
