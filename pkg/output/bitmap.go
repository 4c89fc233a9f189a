package output

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/df07/go-tile-pathtracer/pkg/renderer"
)

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
	bitmapMagic    = 0x4d42 // "BM"
)

// fileHeader is BITMAPFILEHEADER. binary.Write emits it without padding.
type fileHeader struct {
	Type      uint16
	Size      uint32
	Reserved1 uint16
	Reserved2 uint16
	Offset    uint32
}

// infoHeader is BITMAPINFOHEADER
type infoHeader struct {
	Size          uint32
	Width         int32
	Height        int32 // positive: rows are stored bottom-up
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ColorsUsed    uint32
	ColorsImp     uint32
}

// WriteBMP writes buf as an uncompressed 32-bit bitmap. Buffer row 0 is
// written first, which the format reads as the bottom row.
func WriteBMP(w io.Writer, buf *renderer.PixelBuffer) error {
	if buf.Width <= 0 || buf.Height <= 0 || len(buf.Pix) != buf.Width*buf.Height {
		return fmt.Errorf("cannot encode %dx%d buffer with %d pixels", buf.Width, buf.Height, len(buf.Pix))
	}

	pixelBytes := uint32(4 * len(buf.Pix))
	fh := fileHeader{
		Type:   bitmapMagic,
		Size:   fileHeaderSize + infoHeaderSize + pixelBytes,
		Offset: fileHeaderSize + infoHeaderSize,
	}
	ih := infoHeader{
		Size:     infoHeaderSize,
		Width:    int32(buf.Width),
		Height:   int32(buf.Height),
		Planes:   1,
		BitCount: 32,
		// the resolution fields carry the pixel size rather than pixels per meter
		XPelsPerMeter: int32(buf.Width),
		YPelsPerMeter: int32(buf.Height),
	}

	if err := binary.Write(w, binary.LittleEndian, fh); err != nil {
		return fmt.Errorf("failed to write file header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, ih); err != nil {
		return fmt.Errorf("failed to write info header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, buf.Pix); err != nil {
		return fmt.Errorf("failed to write pixels: %w", err)
	}
	return nil
}

// SaveBMP writes buf to path, creating parent directories as needed
func SaveBMP(path string, buf *renderer.PixelBuffer) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := WriteBMP(w, buf); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}
