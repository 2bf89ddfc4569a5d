// Package codec moves surfaces in and out of image files. The editing core
// never touches encoded bytes; hosts go through this package.
package codec

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/example/rasterpaint/internal/surface"
)

var (
	// ErrDecode wraps every failure to turn bytes into a surface.
	ErrDecode = errors.New("decode image")
	// ErrEncode wraps every failure to write a surface out.
	ErrEncode = errors.New("encode image")
	// ErrUnknownFormat is returned for a file extension with no encoder.
	ErrUnknownFormat = errors.New("unknown image format")
)

// Format is an output encoding.
type Format int

const (
	PNG Format = iota
	JPEG
	GIF
	BMP
	TIFF
	Raw // zstd-compressed RGBA with a small header
)

var formatExt = map[Format]string{
	PNG:  ".png",
	JPEG: ".jpg",
	GIF:  ".gif",
	BMP:  ".bmp",
	TIFF: ".tiff",
	Raw:  ".rgba.zst",
}

func (f Format) String() string {
	if ext, ok := formatExt[f]; ok {
		return strings.TrimPrefix(ext, ".")
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Ext returns the canonical file extension, including the dot.
func (f Format) Ext() string { return formatExt[f] }

// FormatFromPath picks a format from a file name's extension.
func FormatFromPath(path string) (Format, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".rgba.zst") || strings.HasSuffix(lower, ".rpz") {
		return Raw, nil
	}
	switch filepath.Ext(lower) {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".gif":
		return GIF, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	}
	return 0, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

// Decode reads any supported format, including the raw format, and returns
// its pixels as a surface.
func Decode(r io.Reader) (*surface.Surface, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(rawMagic)); err == nil && bytes.Equal(head, rawMagic) {
		return decodeRaw(br)
	}
	img, _, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return surface.FromImage(img), nil
}

// Encode writes s to w in format f.
func Encode(w io.Writer, s *surface.Surface, f Format) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, s.NRGBA())
	case JPEG:
		err = jpeg.Encode(w, s.NRGBA(), &jpeg.Options{Quality: 92})
	case GIF:
		err = gif.Encode(w, s.NRGBA(), nil)
	case BMP:
		err = bmp.Encode(w, s.NRGBA())
	case TIFF:
		err = tiff.Encode(w, s.NRGBA(), &tiff.Options{Compression: tiff.Deflate})
	case Raw:
		err = encodeRaw(w, s)
	default:
		err = ErrUnknownFormat
	}
	if err != nil {
		return fmt.Errorf("%w as %v: %w", ErrEncode, f, err)
	}
	return nil
}

// DecodeFile opens and decodes path.
func DecodeFile(path string) (*surface.Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// EncodeFile writes s to path in the format its extension names.
func EncodeFile(path string, s *surface.Surface) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := Encode(f, s, format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}
