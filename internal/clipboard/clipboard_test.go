package clipboard

import (
	"errors"
	"testing"

	"github.com/example/rasterpaint/internal/surface"
)

func TestPNGPayloadRoundTrip(t *testing.T) {
	src := surface.New(3, 2)
	src.SetPixel(0, 0, surface.RGBA(10, 20, 30, 255))
	src.SetPixel(2, 1, surface.RGBA(200, 100, 50, 128))
	data, err := encodePNG(src)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decodePNG(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Equal(src) {
		t.Fatalf("payload changed pixels")
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	if _, err := decodePNG(nil); !errors.Is(err, errNoImage) {
		t.Fatalf("expected errNoImage, got %v", err)
	}
	if _, err := decodePNG([]byte("nope")); err == nil {
		t.Fatalf("expected a decode error")
	}
}
