package palette

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/milk9111/goob/atlas"
	"github.com/milk9111/goob/common"
)

func indexer(w, h int, cfg atlas.Config) Indexer {
	return Indexer{Config: cfg, Layout: atlas.Compute(w, h, cfg)}
}

func TestTileAt(t *testing.T) {
	ix := indexer(64, 32, atlas.Config{TileSize: 16}) // 4x2
	dst := common.R(10, 20, 10+128, 20+64)            // drawn at scale 2

	cases := []struct {
		name string
		p    common.Vec2
		id   int
		ok   bool
	}{
		{"first_tile", common.V(10, 20), 0, true},
		{"second_row_last_col", common.V(10+127, 20+63), 7, true},
		{"row1_col1", common.V(10+40, 20+40), 5, true},
		{"left_of_image", common.V(9.5, 30), 0, false},
		{"above_image", common.V(30, 19), 0, false},
		{"right_of_grid", common.V(10+128, 30), 0, false},
		{"below_grid", common.V(30, 20+64), 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			id, ok := ix.TileAt(c.p, dst, 2)
			assert.Equal(t, c.ok, ok)
			if c.ok {
				assert.Equal(t, c.id, id)
			}
		})
	}
}

func TestTileAtMarginSpacing(t *testing.T) {
	cfg := atlas.Config{TileSize: 32, Margin: 1, Spacing: 2}
	ix := indexer(130, 130, cfg)
	dst := common.R(0, 0, 130, 130)

	_, ok := ix.TileAt(common.V(0.5, 10), dst, 1)
	assert.False(t, ok, "inside the margin")

	id, ok := ix.TileAt(common.V(1, 1), dst, 1)
	assert.True(t, ok)
	assert.Equal(t, 0, id)

	id, ok = ix.TileAt(common.V(35, 35), dst, 1)
	assert.True(t, ok)
	assert.Equal(t, 4, id)
}

func TestTileAtDegenerate(t *testing.T) {
	ix := indexer(20, 20, atlas.Config{TileSize: 32})
	assert.True(t, ix.Layout.Degenerate())
	_, ok := ix.TileAt(common.V(1, 1), common.R(0, 0, 20, 20), 1)
	assert.False(t, ok)
	assert.Nil(t, ix.GridLines(common.R(0, 0, 20, 20), 1))
	_, ok = ix.TileBounds(0, common.R(0, 0, 20, 20), 1)
	assert.False(t, ok)
}

func TestTileBoundsMatchesTileAt(t *testing.T) {
	cfg := atlas.Config{TileSize: 16, Margin: 2, Spacing: 1}
	ix := indexer(100, 60, cfg)
	dst := common.R(5, 7, 5+250, 7+150)
	scale := 2.5
	for id := 0; id < ix.Layout.Count(); id++ {
		r, ok := ix.TileBounds(id, dst, scale)
		assert.True(t, ok)
		center := r.Min.Add(r.Size().Scale(0.5))
		got, ok := ix.TileAt(center, dst, scale)
		assert.True(t, ok)
		assert.Equal(t, id, got)
	}
}

func TestGridLines(t *testing.T) {
	ix := indexer(32, 16, atlas.Config{TileSize: 16}) // 2x1
	got := ix.GridLines(common.R(0, 0, 32, 16), 1)
	want := []common.Segment{
		{A: common.V(0, 0), B: common.V(0, 16)},
		{A: common.V(16, 0), B: common.V(16, 16)},
		{A: common.V(32, 0), B: common.V(32, 16)},
		{A: common.V(0, 0), B: common.V(32, 0)},
		{A: common.V(0, 16), B: common.V(32, 16)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("GridLines mismatch (-want +got):\n%s", diff)
	}
}

func TestFitScale(t *testing.T) {
	assert.Equal(t, 2.0, FitScale(256, 128))
	assert.Equal(t, 0.1, FitScale(10, 1000))
	assert.Equal(t, 1.0, FitScale(10, 0))
}
