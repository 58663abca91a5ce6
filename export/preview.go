package export

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Thumbnail shrinks img to fit maxW x maxH keeping its aspect ratio. Pixel
// art is sampled nearest-neighbour. Images already small enough are
// returned unchanged.
func Thumbnail(img image.Image, maxW, maxH uint) image.Image {
	b := img.Bounds()
	if uint(b.Dx()) <= maxW && uint(b.Dy()) <= maxH {
		return img
	}
	return resize.Thumbnail(maxW, maxH, img, resize.NearestNeighbor)
}

// BurnGrid returns a copy of img with tile boundaries drawn in c. The input
// is not modified.
func BurnGrid(img *image.RGBA, tileSize int, c color.Color) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	if tileSize <= 0 {
		return out
	}

	dc := gg.NewContextForRGBA(out)
	dc.SetColor(c)
	dc.SetLineWidth(1)
	w := float64(b.Dx())
	h := float64(b.Dy())
	for x := 0; x <= b.Dx(); x += tileSize {
		fx := float64(x) + 0.5
		dc.DrawLine(fx, 0, fx, h)
	}
	for y := 0; y <= b.Dy(); y += tileSize {
		fy := float64(y) + 0.5
		dc.DrawLine(0, fy, w, fy)
	}
	dc.Stroke()
	return out
}
