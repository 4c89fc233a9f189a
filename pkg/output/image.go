package output

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"

	"github.com/df07/go-tile-pathtracer/pkg/renderer"
)

// Image converts the bottom-up pixel buffer into a top-down image
func Image(buf *renderer.PixelBuffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	for i, p := range buf.Pix {
		r, g, b, a := renderer.UnpackBGRA8(p)
		img.Pix[4*i+0] = r
		img.Pix[4*i+1] = g
		img.Pix[4*i+2] = b
		img.Pix[4*i+3] = a
	}
	return imaging.FlipV(img)
}

// WritePreview writes a bilinear-downscaled copy of buf no wider than maxWidth.
// A non-positive maxWidth or a narrower buffer keeps the original size.
func WritePreview(w io.Writer, buf *renderer.PixelBuffer, maxWidth int) error {
	var img image.Image = Image(buf)
	if maxWidth > 0 && buf.Width > maxWidth {
		img = resize.Resize(uint(maxWidth), 0, img, resize.Bilinear)
	}
	return bmp.Encode(w, img)
}
