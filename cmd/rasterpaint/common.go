package main

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/rasterpaint/internal/clipboard"
	"github.com/example/rasterpaint/internal/codec"
	"github.com/example/rasterpaint/internal/surface"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// source names where an input picture comes from.
type source struct {
	file          string
	fromClipboard bool
}

func (s source) load() (*surface.Surface, error) {
	if s.fromClipboard {
		img, err := clipboard.ReadSurface()
		if err != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		return img, nil
	}
	if s.file == "" {
		return nil, errors.New("input file is required")
	}
	img, err := codec.DecodeFile(s.file)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.file, err)
	}
	return img, nil
}

// sink names where a result picture goes.
type sink struct {
	output      string
	toClipboard bool
}

// resolve defaults the output to the input file and rejects a clipboard
// read with nowhere to write.
func (k *sink) resolve(src source) error {
	if k.output == "" {
		k.output = src.file
	}
	if k.output == "" && !k.toClipboard {
		if src.fromClipboard {
			return errors.New("output file is required when reading from the clipboard")
		}
		return errors.New("output file is required")
	}
	return nil
}

func (k sink) write(r *root, img *surface.Surface) error {
	if k.output != "" {
		if err := codec.EncodeFile(k.output, img); err != nil {
			return err
		}
		saved := k.output
		if abs, err := filepath.Abs(k.output); err == nil {
			saved = abs
		}
		fmt.Fprintf(stderr, "saved %s\n", saved)
		r.notifySave(saved)
	}
	if k.toClipboard {
		if err := clipboard.WriteSurface(img); err != nil {
			return fmt.Errorf("copy image to clipboard: %w", err)
		}
		detail := filepath.Base(k.output)
		if k.output == "" {
			detail = "image"
		}
		fmt.Fprintf(stderr, "copied %s to clipboard\n", detail)
		r.notifyCopy(detail)
	}
	return nil
}

func expectInts(args []string, n int, what string) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d integer arguments", what, n)
	}
	vals := make([]int, n)
	for i, raw := range args {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}

// parseRect reads "x0,y0,x1,y1" into a canonical rectangle.
func parseRect(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	vals, err := expectInts(parts, 4, "rectangle")
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("invalid rectangle %q: %w", s, err)
	}
	return image.Rect(vals[0], vals[1], vals[2], vals[3]), nil
}

func parseOpacity(s string) (uint8, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > 255 {
		return 0, fmt.Errorf("opacity must be between 0 and 255, got %q", s)
	}
	return uint8(v), nil
}

// Replaced by tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)
