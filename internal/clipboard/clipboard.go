// Package clipboard moves surfaces and short text through the system
// clipboard. Images travel as PNG.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/example/rasterpaint/internal/codec"
	"github.com/example/rasterpaint/internal/surface"
)

var (
	errNoDisplay = errors.New("clipboard requires DISPLAY or WAYLAND_DISPLAY")
	errNoImage   = errors.New("clipboard does not contain image data")
	errNoText    = errors.New("clipboard does not contain text data")
)

// WriteSurface publishes s to the clipboard.
func WriteSurface(s *surface.Surface) error {
	data, err := encodePNG(s)
	if err != nil {
		return err
	}
	if err := ensureInit(); err != nil {
		return err
	}
	return writePNG(data)
}

// ReadSurface decodes the clipboard's image contents.
func ReadSurface() (*surface.Surface, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := readPNG()
	if err != nil {
		return nil, err
	}
	return decodePNG(data)
}

// WriteText publishes text to the clipboard.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return writeText([]byte(text))
}

// ReadText returns the clipboard's UTF-8 text.
func ReadText() (string, error) {
	if err := ensureInit(); err != nil {
		return "", err
	}
	data, err := readText()
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errNoText
	}
	// Some owners include a trailing NUL in STRING replies.
	return string(bytes.TrimRight(data, "\x00")), nil
}

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func encodePNG(s *surface.Surface) ([]byte, error) {
	var buf bytes.Buffer
	if err := codec.Encode(&buf, s, codec.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodePNG(data []byte) (*surface.Surface, error) {
	if len(data) == 0 {
		return nil, errNoImage
	}
	s, err := codec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("clipboard image: %w", err)
	}
	return s, nil
}
