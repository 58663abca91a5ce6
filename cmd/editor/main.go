package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/goob/config"
	"github.com/milk9111/goob/editor"
)

const desc = `Paints tile ids from a tileset image onto a map and exports it as a PNG.`

var cli struct {
	Config string `short:"c" help:"settings file (YAML). Missing files fall back to defaults."`

	// tileset image and how it is cut; zero values keep the configured ones
	Tileset  string `short:"t" help:"tileset image to open on start"`
	TileSize int    `help:"tile size in px"`
	Margin   int    `default:"-1" help:"px around the tileset border"`
	Spacing  int    `default:"-1" help:"px between tiles"`

	Width  int `help:"map width in tiles"`
	Height int `help:"map height in tiles"`

	Script string `short:"s" help:"tengo script that fills the map on start (F re-runs it)"`
	Export string `short:"o" help:"where Ctrl+S writes the flattened map"`
	Watch  bool   `short:"w" help:"reload the tileset when it changes on disk"`
	Debug  bool   `help:"debug logging"`
}

func main() {
	kong.Parse(&cli, kong.Name("editor"), kong.Description(desc))

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	path := cli.Config
	if path == "" {
		path = config.DefaultPath()
	}
	settings, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	applyFlags(&settings)

	sess, err := editor.NewSession(settings)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	game := NewGame(sess, settings, cli.Script)
	if settings.TilesetPath != "" {
		if err := game.OpenTileset(settings.TilesetPath); err != nil {
			slog.Error("tileset load failed", "path", settings.TilesetPath, "err", err)
		}
	}
	if sess.Loaded() == nil {
		game.OpenDemoTileset(atlasExplicit(settings))
	}
	if cli.Script != "" {
		game.RunScript()
	}
	defer game.Close()

	ebiten.SetWindowSize(1280, 800)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Tile Map Editor")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// applyFlags layers command-line values over the loaded settings.
func applyFlags(s *config.Settings) {
	cfg := s.Atlas
	if cli.TileSize != 0 {
		cfg.TileSize = cli.TileSize
	}
	if cli.Margin >= 0 {
		cfg.Margin = cli.Margin
	}
	if cli.Spacing >= 0 {
		cfg.Spacing = cli.Spacing
	}
	s.Atlas = cfg
	if cli.Width > 0 {
		s.MapWidth = cli.Width
	}
	if cli.Height > 0 {
		s.MapHeight = cli.Height
	}
	if cli.Tileset != "" {
		s.TilesetPath = cli.Tileset
	}
	if cli.Export != "" {
		s.ExportPath = cli.Export
	}
	if cli.Watch {
		s.WatchTileset = true
	}
	s.Normalize()
}

// atlasExplicit reports whether the user chose an atlas config, by flag or
// in the settings file.
func atlasExplicit(s config.Settings) bool {
	return cli.TileSize != 0 || cli.Margin >= 0 || cli.Spacing >= 0 || s.Atlas != config.Default().Atlas
}
