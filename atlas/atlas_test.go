package atlas

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	cases := []struct {
		name          string
		width, height int
		cfg           Config
		want          Layout
	}{
		{"margin_and_spacing", 130, 130, Config{TileSize: 32, Margin: 1, Spacing: 2}, Layout{3, 3}},
		{"single_tile", 64, 64, Config{TileSize: 64}, Layout{1, 1}},
		{"plain_grid", 256, 128, Config{TileSize: 16}, Layout{16, 8}},
		{"partial_tile_truncated", 70, 40, Config{TileSize: 32}, Layout{2, 1}},
		{"too_narrow_for_margin", 33, 64, Config{TileSize: 32, Margin: 1}, Layout{0, 1}},
		{"exactly_fits_margin", 34, 34, Config{TileSize: 32, Margin: 1}, Layout{1, 1}},
		{"zero_tile_size", 128, 128, Config{TileSize: 0}, Layout{}},
		{"negative_spacing", 128, 128, Config{TileSize: 16, Spacing: -1}, Layout{}},
		{"empty_image", 0, 0, Config{TileSize: 16}, Layout{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Compute(c.width, c.height, c.cfg))
		})
	}
}

func TestLayoutValid(t *testing.T) {
	l := Layout{Columns: 4, Rows: 2}
	assert.Equal(t, 8, l.Count())
	assert.False(t, l.Degenerate())
	assert.True(t, l.Valid(0))
	assert.True(t, l.Valid(7))
	assert.False(t, l.Valid(8))
	assert.False(t, l.Valid(-1))

	empty := Layout{Columns: 0, Rows: 5}
	assert.True(t, empty.Degenerate())
	for _, id := range []int{-1, 0, 1, 4} {
		assert.False(t, empty.Valid(id), "id %d", id)
	}
}

func TestTileRect(t *testing.T) {
	cfg := Config{TileSize: 16}
	assert.Equal(t, image.Rect(16, 16, 32, 32), TileRect(5, 4, cfg))
	assert.Equal(t, image.Rect(0, 0, 16, 16), TileRect(0, 4, cfg))

	spaced := Config{TileSize: 32, Margin: 1, Spacing: 2}
	// id 4 in a 3-column atlas is column 1, row 1.
	assert.Equal(t, image.Rect(35, 35, 67, 67), TileRect(4, 3, spaced))
}

func TestTileRectStaysInsideImage(t *testing.T) {
	cfg := Config{TileSize: 32, Margin: 1, Spacing: 2}
	w, h := 130, 100
	l := Compute(w, h, cfg)
	bounds := image.Rect(0, 0, w, h)
	for id := 0; id < l.Count(); id++ {
		r := TileRect(id, l.Columns, cfg)
		assert.True(t, r.In(bounds), "tile %d rect %v outside %v", id, r, bounds)
	}
}

func TestUV(t *testing.T) {
	u0, v0, u1, v1 := UV(image.Rect(16, 32, 32, 48), 64, 64)
	assert.Equal(t, float32(0.25), u0)
	assert.Equal(t, float32(0.5), v0)
	assert.Equal(t, float32(0.5), u1)
	assert.Equal(t, float32(0.75), v1)
}
