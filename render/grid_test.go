package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"github.com/milk9111/goob/common"
	"github.com/milk9111/goob/view"
)

func TestGridLinesCoverCanvas(t *testing.T) {
	cam := view.NewCamera(view.DefaultMinZoom, view.DefaultMaxZoom)
	canvas := common.R(0, 0, 64, 32)
	segs := GridLines(cam, canvas, 16)

	// x from -1 to 4+1, y from -1 to 2+1
	assert.Len(t, segs, 7+5)
	first := segs[0]
	assert.Equal(t, common.Segment{A: common.V(-16, 0), B: common.V(-16, 32)}, first)
	last := segs[len(segs)-1]
	assert.Equal(t, common.Segment{A: common.V(0, 48), B: common.V(64, 48)}, last)
}

func TestGridLinesFollowCamera(t *testing.T) {
	cam := view.NewCamera(view.DefaultMinZoom, view.DefaultMaxZoom)
	cam.Zoom = 2
	cam.Offset = common.V(5, 5)
	canvas := common.R(10, 10, 74, 42)

	for _, s := range GridLines(cam, canvas, 8) {
		// every vertical line sits on a world multiple of the tile size
		if s.A.X == s.B.X {
			w := cam.ScreenToWorld(s.A, canvas)
			assert.InDelta(t, 0, mod(w.X, 8), 1e-9)
		}
	}
}

func mod(v, m float64) float64 {
	r := v - m*float64(int(v/m))
	if r < 0 {
		r += m
	}
	if r > m-1e-9 {
		r -= m
	}
	return r
}

func TestGridLinesInvalidTileSize(t *testing.T) {
	assert.Nil(t, GridLines(view.NewCamera(0.25, 8), common.R(0, 0, 10, 10), 0))
}

func TestMapBorder(t *testing.T) {
	cam := view.NewCamera(view.DefaultMinZoom, view.DefaultMaxZoom)
	cam.Zoom = 0.5
	canvas := common.R(100, 0, 500, 400)
	got := MapBorder(cam, canvas, 4, 2, 32)
	want := []common.Segment{
		{A: common.V(100, 0), B: common.V(164, 0)},
		{A: common.V(164, 0), B: common.V(164, 32)},
		{A: common.V(164, 32), B: common.V(100, 32)},
		{A: common.V(100, 32), B: common.V(100, 0)},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("MapBorder mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, MapBorder(cam, canvas, 0, 2, 32))
}
