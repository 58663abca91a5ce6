// Package assets embeds the demo tileset shown when the editor starts without
// one.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/milk9111/goob/atlas"
	"github.com/milk9111/goob/tileset"
)

//go:embed *.png
var assetsFS embed.FS

// DemoTileset is an 8x4 atlas of 16px tiles with no margin or spacing.
const DemoTileset = "demo_tiles.png"

// DemoConfig is the atlas config DemoTileset was cut for.
var DemoConfig = atlas.Config{TileSize: 16}

// LoadImage decodes an embedded image by assets-relative path.
func LoadImage(path string) (*image.RGBA, error) {
	b, err := assetsFS.ReadFile(cleanAssetPath(path))
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	return tileset.Decode(bytes.NewReader(b))
}

// LoadTileset returns an embedded image as a tileset. Its path is prefixed
// with "embed:" so it is never mistaken for a file on disk.
func LoadTileset(path string) (*tileset.Tileset, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return tileset.FromImage("embed:"+cleanAssetPath(path), img), nil
}

func cleanAssetPath(path string) string {
	s := filepath.ToSlash(path)
	if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
		return s[idx+len("/assets/"):]
	}
	return strings.TrimPrefix(s, "assets/")
}
