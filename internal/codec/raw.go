package codec

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/example/rasterpaint/internal/surface"
)

// The raw format is the magic, then width and height as big-endian uint32,
// then a zstd stream of the surface's RGBA bytes.
var rawMagic = []byte("RPZ1")

// maxRawPixels bounds the header dimensions accepted on decode.
const maxRawPixels = 1 << 26

func encodeRaw(w io.Writer, s *surface.Surface) error {
	if _, err := w.Write(rawMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(s.Width())); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(s.Height())); err != nil {
		return err
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if _, err := enc.Write(s.RGBABytes()); err != nil {
		_ = enc.Close()
		return fmt.Errorf("zstd encode: %w", err)
	}
	return enc.Close()
}

func decodeRaw(r io.Reader) (*surface.Surface, error) {
	var hdr struct {
		Magic  [4]byte
		Width  uint32
		Height uint32
	}
	if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrDecode, err)
	}
	if string(hdr.Magic[:]) != string(rawMagic) {
		return nil, fmt.Errorf("%w: bad magic %q", ErrDecode, hdr.Magic[:])
	}
	if uint64(hdr.Width)*uint64(hdr.Height) > maxRawPixels {
		return nil, fmt.Errorf("%w: %dx%d is too large", ErrDecode, hdr.Width, hdr.Height)
	}

	size := int64(hdr.Width) * int64(hdr.Height) * 4
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer dec.Close()

	// The buffer grows with the payload, so a header that overstates the
	// size costs no more than the data actually sent.
	pix, err := io.ReadAll(io.LimitReader(dec, size))
	if err != nil {
		return nil, fmt.Errorf("%w: zstd decode: %w", ErrDecode, err)
	}
	if int64(len(pix)) != size {
		return nil, fmt.Errorf("%w: zstd decode: %w", ErrDecode, io.ErrUnexpectedEOF)
	}
	s, err := surface.FromRGBABytes(int(hdr.Width), int(hdr.Height), pix)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return s, nil
}
