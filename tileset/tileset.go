// Package tileset loads the source image that tiles are cut from. The
// decoded pixels are immutable once loaded; a reload builds a new Tileset.
package tileset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var ErrDecode = errors.New("tileset: decode failed")

// Tileset is a decoded tileset image and the path it came from.
type Tileset struct {
	Path   string
	Pixels *image.RGBA
}

func (t *Tileset) Width() int  { return t.Pixels.Bounds().Dx() }
func (t *Tileset) Height() int { return t.Pixels.Bounds().Dy() }

// Decode reads any registered image format into an RGBA buffer at origin.
func Decode(r io.Reader) (*image.RGBA, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	slog.Debug("decoded tileset", "format", format, "bounds", img.Bounds())
	return toRGBA(img), nil
}

// Load reads and decodes the image at path.
func Load(path string) (*Tileset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrDecode, path, err)
	}
	pix, err := Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("tileset: load %s: %w", path, err)
	}
	slog.Info("loaded tileset", "path", path, "width", pix.Bounds().Dx(), "height", pix.Bounds().Dy())
	return &Tileset{Path: path, Pixels: pix}, nil
}

// FromImage wraps an already decoded image, converting it to RGBA at origin
// when needed.
func FromImage(path string, img image.Image) *Tileset {
	return &Tileset{Path: path, Pixels: toRGBA(img)}
}

func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
