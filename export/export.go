// Package export flattens a tile map into a standalone image at native tile
// resolution. It never looks at the camera, so the output only depends on the
// map, the tileset pixels and the atlas config.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/milk9111/goob/atlas"
	"github.com/milk9111/goob/tilemap"
)

var (
	ErrInvalidConfiguration = errors.New("export: map size or tile size is zero")
	ErrNoTileset            = errors.New("export: no tileset loaded")
	ErrDegenerateAtlas      = errors.New("export: atlas has zero columns; check tile size, margin and spacing")
)

// Compose copies every painted cell's source tile into a new transparent
// image of (width*tile_size) x (height*tile_size) pixels. Cells whose id is
// outside the layout, or whose source rectangle leaves the tileset, are
// left transparent.
func Compose(src *image.RGBA, m *tilemap.Map, cfg atlas.Config, layout atlas.Layout) (*image.RGBA, error) {
	if m == nil || m.Width() == 0 || m.Height() == 0 || cfg.TileSize <= 0 {
		return nil, ErrInvalidConfiguration
	}
	if src == nil {
		return nil, ErrNoTileset
	}
	if layout.Columns == 0 {
		return nil, ErrDegenerateAtlas
	}

	t := cfg.TileSize
	out := image.NewRGBA(image.Rect(0, 0, m.Width()*t, m.Height()*t))
	bounds := src.Bounds()
	skipped := 0
	m.Each(func(x, y, id int) {
		if !layout.Valid(id) {
			skipped++
			return
		}
		r := atlas.TileRect(id, layout.Columns, cfg).Add(bounds.Min)
		if !r.In(bounds) {
			skipped++
			return
		}
		draw.Copy(out, image.Pt(x*t, y*t), src, r, draw.Src, nil)
	})
	if skipped > 0 {
		slog.Debug("export skipped cells", "count", skipped)
	}
	return out, nil
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// Save encodes img fully before touching the destination, then writes it via
// a temporary file in the same directory. On any error nothing is left at
// path.
func Save(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		return fmt.Errorf("export: encode %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".export-*.png")
	if err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	slog.Info("exported map", "path", path, "bytes", buf.Len())
	return nil
}
