// Package tilemap holds the single-layer grid of tile ids being edited.
package tilemap

import (
	"errors"
	"fmt"
)

// Empty marks a cell with no tile.
const Empty = -1

var ErrInvalidSize = errors.New("tilemap: invalid size")

// Map is a fixed-size, row-major grid of raw tile ids. Ids are not checked
// against any atlas; stale ids are skipped by whoever renders them.
type Map struct {
	width  int
	height int
	cells  []int
}

// New returns a width x height map with every cell empty.
func New(width, height int) (*Map, error) {
	m := &Map{}
	if err := m.Resize(width, height); err != nil {
		return nil, err
	}
	return m, nil
}

// Resize replaces the grid; prior contents are discarded.
func (m *Map) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	cells := make([]int, width*height)
	for i := range cells {
		cells[i] = Empty
	}
	m.width, m.height, m.cells = width, height, cells
	return nil
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }

// InBounds reports whether (x, y) is a cell of the map.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

// Set overwrites a cell. Out-of-bounds coordinates are ignored and reported
// as false. Any negative id is stored as Empty.
func (m *Map) Set(x, y, id int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	if id < 0 {
		id = Empty
	}
	m.cells[y*m.width+x] = id
	return true
}

// Erase empties a cell.
func (m *Map) Erase(x, y int) bool {
	return m.Set(x, y, Empty)
}

// Get returns the id at (x, y); ok is false for empty or out-of-bounds cells.
func (m *Map) Get(x, y int) (id int, ok bool) {
	if !m.InBounds(x, y) {
		return Empty, false
	}
	id = m.cells[y*m.width+x]
	return id, id != Empty
}

// Each calls fn for every painted cell in row-major order.
func (m *Map) Each(fn func(x, y, id int)) {
	for i, id := range m.cells {
		if id == Empty {
			continue
		}
		fn(i%m.width, i/m.width, id)
	}
}

// Painted counts non-empty cells.
func (m *Map) Painted() int {
	n := 0
	for _, id := range m.cells {
		if id != Empty {
			n++
		}
	}
	return n
}

// Clear empties every cell without changing the size.
func (m *Map) Clear() {
	for i := range m.cells {
		m.cells[i] = Empty
	}
}

// Cells returns a row-major copy of the grid.
func (m *Map) Cells() []int {
	out := make([]int, len(m.cells))
	copy(out, m.cells)
	return out
}

// Load replaces every cell from a row-major slice of the same size.
func (m *Map) Load(cells []int) error {
	if len(cells) != len(m.cells) {
		return fmt.Errorf("tilemap: load %d cells into %dx%d map", len(cells), m.width, m.height)
	}
	for i, id := range cells {
		if id < 0 {
			id = Empty
		}
		m.cells[i] = id
	}
	return nil
}
