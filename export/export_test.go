package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/goob/atlas"
	"github.com/milk9111/goob/tilemap"
)

// tileset builds a w x h image where each pixel encodes its own position, so
// any copied block can be traced back to its source.
func tileset(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	return img
}

func assertBlock(t *testing.T, out *image.RGBA, dx, dy int, src *image.RGBA, sx, sy, size int) {
	t.Helper()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			require.Equal(t, src.RGBAAt(sx+x, sy+y), out.RGBAAt(dx+x, dy+y), "pixel (%d,%d)", dx+x, dy+y)
		}
	}
}

func assertTransparent(t *testing.T, out *image.RGBA, dx, dy, size int) {
	t.Helper()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			require.Equal(t, color.RGBA{}, out.RGBAAt(dx+x, dy+y), "pixel (%d,%d)", dx+x, dy+y)
		}
	}
}

func TestComposeRoundTrip(t *testing.T) {
	src := tileset(64, 64)
	cfg := atlas.Config{TileSize: 16}
	layout := atlas.Compute(64, 64, cfg)

	m, err := tilemap.New(2, 1)
	require.NoError(t, err)
	m.Set(0, 0, 0)

	out, err := Compose(src, m, cfg, layout)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 16), out.Bounds())
	assertBlock(t, out, 0, 0, src, 0, 0, 16)
	assertTransparent(t, out, 16, 0, 16)
}

func TestComposeMarginSpacing(t *testing.T) {
	src := tileset(130, 130)
	cfg := atlas.Config{TileSize: 32, Margin: 1, Spacing: 2}
	layout := atlas.Compute(130, 130, cfg)

	m, _ := tilemap.New(2, 2)
	m.Set(0, 0, 4)
	m.Set(1, 1, 8)

	out, err := Compose(src, m, cfg, layout)
	require.NoError(t, err)
	assertBlock(t, out, 0, 0, src, 35, 35, 32)
	assertBlock(t, out, 32, 32, src, 69, 69, 32)
	assertTransparent(t, out, 32, 0, 32)
}

func TestComposeSkipsStaleIDs(t *testing.T) {
	src := tileset(32, 32)
	cfg := atlas.Config{TileSize: 16}
	layout := atlas.Compute(32, 32, cfg)

	m, _ := tilemap.New(2, 1)
	m.Set(0, 0, 4)
	m.Set(1, 0, 3)

	out, err := Compose(src, m, cfg, layout)
	require.NoError(t, err)
	assertTransparent(t, out, 0, 0, 16)
	assertBlock(t, out, 16, 0, src, 16, 16, 16)
}

func TestComposeSkipsRectOutsideTileset(t *testing.T) {
	// layout computed for a larger image than the pixels we hand in
	src := tileset(16, 16)
	cfg := atlas.Config{TileSize: 16}
	layout := atlas.Compute(32, 32, cfg)

	m, _ := tilemap.New(2, 1)
	m.Set(0, 0, 0)
	m.Set(1, 0, 3)

	out, err := Compose(src, m, cfg, layout)
	require.NoError(t, err)
	assertBlock(t, out, 0, 0, src, 0, 0, 16)
	assertTransparent(t, out, 16, 0, 16)
}

func TestComposeSubImageSource(t *testing.T) {
	full := tileset(48, 48)
	src := full.SubImage(image.Rect(16, 16, 48, 48)).(*image.RGBA)
	cfg := atlas.Config{TileSize: 16}
	layout := atlas.Compute(32, 32, cfg)

	m, _ := tilemap.New(1, 1)
	m.Set(0, 0, 1)

	out, err := Compose(src, m, cfg, layout)
	require.NoError(t, err)
	assertBlock(t, out, 0, 0, full, 32, 16, 16)
}

func TestComposeErrors(t *testing.T) {
	src := tileset(32, 32)
	m, _ := tilemap.New(2, 2)
	good := atlas.Config{TileSize: 16}

	cases := []struct {
		name   string
		src    *image.RGBA
		m      *tilemap.Map
		cfg    atlas.Config
		layout atlas.Layout
		want   error
	}{
		{"nil_map", src, nil, good, atlas.Layout{Columns: 2, Rows: 2}, ErrInvalidConfiguration},
		{"zero_tile_size", src, m, atlas.Config{}, atlas.Layout{Columns: 2, Rows: 2}, ErrInvalidConfiguration},
		{"no_tileset", nil, m, good, atlas.Layout{Columns: 2, Rows: 2}, ErrNoTileset},
		{"degenerate", src, m, good, atlas.Layout{}, ErrDegenerateAtlas},
		{"invalid_before_missing_tileset", nil, m, atlas.Config{}, atlas.Layout{}, ErrInvalidConfiguration},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := Compose(c.src, c.m, c.cfg, c.layout)
			assert.ErrorIs(t, err, c.want)
			assert.Nil(t, out)
		})
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.png")
	img := tileset(8, 4)

	require.NoError(t, Save(path, img))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	got, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), got.Bounds())
	r, g, _, a := got.At(5, 3).RGBA()
	assert.Equal(t, uint32(5*0x101), r)
	assert.Equal(t, uint32(3*0x101), g)
	assert.Equal(t, uint32(0xffff), a)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestSaveFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "map.png")
	err := Save(path, tileset(4, 4))
	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
