package mapgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/goob/tilemap"
)

const checker = `
cells := []
for y := 0; y < height; y++ {
	for x := 0; x < width; x++ {
		if (x + y) % 2 == 0 {
			cells = append(cells, (x + y * width) % tile_count)
		} else {
			cells = append(cells, -1)
		}
	}
}
`

func TestRun(t *testing.T) {
	m, err := tilemap.New(3, 2)
	require.NoError(t, err)

	require.NoError(t, Run([]byte(checker), m, 4))
	assert.Equal(t, []int{0, tilemap.Empty, 2, tilemap.Empty, 0, tilemap.Empty}, m.Cells())
}

func TestRunErrorsLeaveMapUntouched(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"syntax", "cells := ["},
		{"undefined", "x := 1"},
		{"not_array", `cells := "nope"`},
		{"wrong_length", "cells := [1, 2]"},
		{"non_int", `cells := [1, 2, 3, "a"]`},
		{"runtime_error", "cells := [1, 2, 3, 4]\nx := cells[10] + undefined_fn()"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, _ := tilemap.New(2, 2)
			m.Set(0, 0, 7)
			before := m.Cells()
			assert.Error(t, Run([]byte(c.src), m, 4))
			assert.Equal(t, before, m.Cells())
		})
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fill.tengo")
	require.NoError(t, os.WriteFile(path, []byte("cells := [3, 3]"), 0o644))

	m, _ := tilemap.New(2, 1)
	require.NoError(t, RunFile(path, m, 4))
	assert.Equal(t, 2, m.Painted())

	assert.Error(t, RunFile(filepath.Join(t.TempDir(), "missing.tengo"), m, 4))
}

func TestRunImmutableCells(t *testing.T) {
	m, _ := tilemap.New(2, 1)
	require.NoError(t, Run([]byte("cells := immutable([1, -1])"), m, 4))
	assert.Equal(t, []int{1, tilemap.Empty}, m.Cells())
}

func TestRunCellsTypeErrors(t *testing.T) {
	m, _ := tilemap.New(2, 1)

	err := Run([]byte(`cells := "nope"`), m, 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want array")

	err = Run([]byte("cells := []"), m, 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load 0 cells")

	err = Run([]byte(`cells := [1, "a"]`), m, 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cells[1]")
}
