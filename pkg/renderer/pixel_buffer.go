package renderer

import "fmt"

// UnwrittenPixel is the opaque magenta every pixel starts as. A leftover
// sentinel in a finished frame means a tile was never rendered.
const UnwrittenPixel uint32 = 0xFFFF00FF

// PixelBuffer holds Width*Height packed BGRA8 pixels. Row 0 is the bottom of
// the image, matching the bottom-up row order of the bitmap writer.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint32
}

// NewPixelBuffer allocates a buffer filled with UnwrittenPixel
func NewPixelBuffer(width, height int) *PixelBuffer {
	pix := make([]uint32, width*height)
	for i := range pix {
		pix[i] = UnwrittenPixel
	}
	return &PixelBuffer{Width: width, Height: height, Pix: pix}
}

// Rows returns the sub-slice backing rows [start, end). Slices for disjoint
// row ranges never overlap, so each may be handed to a different worker.
func (pb *PixelBuffer) Rows(start, end int) ([]uint32, error) {
	if start < 0 || end > pb.Height || start > end {
		return nil, fmt.Errorf("row range [%d, %d) outside buffer of height %d", start, end, pb.Height)
	}
	return pb.Pix[start*pb.Width : end*pb.Width], nil
}

// At returns the pixel at column x of row y
func (pb *PixelBuffer) At(x, y int) uint32 {
	return pb.Pix[y*pb.Width+x]
}

// Unwritten counts pixels still holding the sentinel
func (pb *PixelBuffer) Unwritten() int {
	n := 0
	for _, p := range pb.Pix {
		if p == UnwrittenPixel {
			n++
		}
	}
	return n
}
