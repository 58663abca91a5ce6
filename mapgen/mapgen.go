// Package mapgen fills a map from a tengo script.
//
// The script sees the globals width, height and tile_count and must leave a
// global array named cells holding width*height ints in row-major order,
// where -1 is an empty cell:
//
//	cells := []
//	for y := 0; y < height; y++ {
//		for x := 0; x < width; x++ {
//			cells = append(cells, (x + y) % tile_count)
//		}
//	}
package mapgen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/goob/tilemap"
)

const timeout = 5 * time.Second

// Run executes src and loads the resulting cells into m. On any error m is
// left unchanged.
func Run(src []byte, m *tilemap.Map, tileCount int) error {
	script := tengo.NewScript(src)
	globals := []struct {
		name  string
		value int
	}{
		{"width", m.Width()},
		{"height", m.Height()},
		{"tile_count", tileCount},
	}
	for _, g := range globals {
		if err := script.Add(g.name, g.value); err != nil {
			return fmt.Errorf("mapgen: global %s: %w", g.name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap("math", "rand", "times"))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("mapgen: compile: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := compiled.RunContext(ctx); err != nil {
		return fmt.Errorf("mapgen: run: %w", err)
	}
	if !compiled.IsDefined("cells") {
		return fmt.Errorf("mapgen: script did not define cells")
	}

	cells, err := toCells(compiled.Get("cells").Object())
	if err != nil {
		return err
	}
	if err := m.Load(cells); err != nil {
		return fmt.Errorf("mapgen: %w", err)
	}
	slog.Info("map filled by script", "cells", len(cells), "painted", m.Painted())
	return nil
}

// RunFile reads and runs the script at path.
func RunFile(path string, m *tilemap.Map, tileCount int) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("mapgen: read %s: %w", path, err)
	}
	return Run(src, m, tileCount)
}

// toCells accepts both mutable and immutable arrays of ints.
func toCells(obj tengo.Object) ([]int, error) {
	var elems []tengo.Object
	switch arr := obj.(type) {
	case *tengo.Array:
		elems = arr.Value
	case *tengo.ImmutableArray:
		elems = arr.Value
	default:
		return nil, fmt.Errorf("mapgen: cells is %s, want array", obj.TypeName())
	}
	cells := make([]int, len(elems))
	for i, e := range elems {
		n, ok := e.(*tengo.Int)
		if !ok {
			return nil, fmt.Errorf("mapgen: cells[%d] is %s, want int", i, e.TypeName())
		}
		cells[i] = int(n.Value)
	}
	return cells, nil
}
