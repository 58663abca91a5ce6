package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"log"
	"log/slog"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/goob/assets"
	"github.com/milk9111/goob/atlas"
	"github.com/milk9111/goob/common"
	"github.com/milk9111/goob/config"
	"github.com/milk9111/goob/editor"
	"github.com/milk9111/goob/palette"
	"github.com/milk9111/goob/render"
	"github.com/milk9111/goob/tileset"
)

const (
	barHeight    = 44
	statusHeight = 22
	palettePad   = 8
	minimapSize  = 160
	scrollStep   = 32
)

var (
	backgroundColor = color.RGBA{24, 24, 28, 255}
	panelColor      = color.RGBA{40, 40, 40, 255}
	gridColor       = color.RGBA{255, 255, 255, 48}
	borderColor     = color.RGBA{255, 200, 60, 200}
	hoverColor      = color.RGBA{255, 255, 255, 160}
	selectedColor   = color.RGBA{255, 220, 80, 255}
	exportGridColor = color.RGBA{0, 0, 0, 96}
)

// Game hosts a Session in an ebiten window. Layout: toolbar on top, palette
// on the left, map canvas filling the rest, status line at the bottom.
type Game struct {
	sess     *editor.Session
	settings config.Settings
	script   string

	ui      *ebitenui.UI
	bar     *toolBar
	face    text.Face
	painter render.Painter

	width, height int
	paletteScroll float64

	panning bool
	lastPan common.Vec2
	picking gesture

	showMinimap  bool
	minimap      *ebiten.Image
	minimapDirty bool

	watcher *tileset.Watcher
	status  string

	mesh *render.Mesh
	grid []common.Segment
}

func NewGame(sess *editor.Session, settings config.Settings, script string) *Game {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	face := &text.GoTextFace{Source: src, Size: 14}

	g := &Game{
		sess:     sess,
		settings: settings,
		script:   script,
		face:     face,
		width:    1280,
		height:   800,
	}
	g.ui, g.bar = buildUI(g, face)
	g.bar.sync(sess)
	return g
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.minimap != nil {
		g.minimap.Deallocate()
	}
}

func (g *Game) paletteRect() common.Rect {
	return common.R(0, barHeight, float64(g.settings.PaletteWidth), float64(g.height-statusHeight))
}

func (g *Game) canvasRect() common.Rect {
	return common.R(float64(g.settings.PaletteWidth), barHeight, float64(g.width), float64(g.height-statusHeight))
}

// paletteView is where the tileset image is drawn inside the palette panel
// and at what scale.
func (g *Game) paletteView() (common.Rect, float64, bool) {
	l := g.sess.Loaded()
	if l == nil {
		return common.Rect{}, 0, false
	}
	panel := g.paletteRect()
	tw, th := float64(l.Tileset.Width()), float64(l.Tileset.Height())
	scale := palette.FitScale(panel.Size().X-2*palettePad, tw)
	x0 := panel.Min.X + palettePad
	y0 := panel.Min.Y + palettePad - g.paletteScroll
	return common.R(x0, y0, x0+tw*scale, y0+th*scale), scale, true
}

func (g *Game) setStatus(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
}

func (g *Game) Update() error {
	g.ui.Update()
	if err := g.handleKeys(); err != nil {
		return err
	}
	g.pollWatcher()

	cx, cy := ebiten.CursorPosition()
	p := common.V(float64(cx), float64(cy))
	canvas := g.canvasRect()
	panel := g.paletteRect()

	leftDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if g.picking.update(inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft), leftDown, panel.Contains(p)) {
		if dst, scale, ok := g.paletteView(); ok && g.sess.PickPalette(p, dst, scale) {
			g.bar.sync(g.sess)
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		switch {
		case canvas.Contains(p):
			f := g.settings.WheelFactor
			if wy < 0 {
				f = 1 / f
			}
			g.sess.Camera.ZoomAround(p, canvas, f)
		case panel.Contains(p):
			g.scrollPalette(-wy * scrollStep)
		}
	}

	g.updatePan(p, canvas)

	if canvas.Contains(p) && !g.panning && !g.picking.active {
		changed := false
		switch {
		case leftDown:
			changed = g.sess.PaintAt(p, canvas)
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
			changed = g.sess.EraseAt(p, canvas)
		}
		if changed {
			g.minimapDirty = true
		}
	}

	g.mesh = g.sess.Mesh(canvas)
	g.grid = g.sess.Grid(canvas)
	return nil
}

func (g *Game) updatePan(p common.Vec2, canvas common.Rect) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) && canvas.Contains(p) {
		g.panning = true
		g.lastPan = p
	}
	if g.panning && ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		g.sess.Camera.Pan(p.Sub(g.lastPan))
		g.lastPan = p
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		g.panning = false
	}
}

func (g *Game) scrollPalette(dy float64) {
	dst, _, ok := g.paletteView()
	if !ok {
		g.paletteScroll = 0
		return
	}
	limit := dst.Size().Y + 2*palettePad - g.paletteRect().Size().Y
	g.paletteScroll = common.Clamp(g.paletteScroll+dy, 0, max(limit, 0))
}

func (g *Game) handleKeys() error {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	pressed := inpututil.IsKeyJustPressed

	if pressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	if ctrl {
		switch {
		case pressed(ebiten.KeyS) && ebiten.IsKeyPressed(ebiten.KeyShift):
			g.ExportWithGrid()
		case pressed(ebiten.KeyS):
			g.Export()
		case pressed(ebiten.KeyO):
			g.openDialog()
		case pressed(ebiten.KeyC):
			g.CopyToClipboard()
		}
		return nil
	}

	step := 1
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		step = 8
	}
	switch {
	case pressed(ebiten.KeyG):
		g.ToggleGrid()
	case pressed(ebiten.KeyE):
		g.SelectEraser()
	case pressed(ebiten.KeyN):
		g.NewMap()
	case pressed(ebiten.KeyEqual), pressed(ebiten.KeyNumpadAdd):
		g.ResizeTiles(step)
	case pressed(ebiten.KeyMinus), pressed(ebiten.KeyNumpadSubtract):
		g.ResizeTiles(-step)
	case pressed(ebiten.KeyM):
		g.showMinimap = !g.showMinimap
		g.minimapDirty = true
	case pressed(ebiten.KeyF):
		g.RunScript()
	case pressed(ebiten.KeyHome):
		g.sess.Camera.Reset()
	case pressed(ebiten.KeyDelete), pressed(ebiten.KeyBackspace):
		g.ClearMap()
	}
	return nil
}

func (g *Game) ToggleGrid() {
	g.sess.ShowGrid = !g.sess.ShowGrid
	g.bar.sync(g.sess)
}

func (g *Game) SelectEraser() {
	g.sess.Selection = editor.Eraser
	g.bar.sync(g.sess)
}

func (g *Game) NewMap() {
	if err := g.sess.NewMap(g.settings.MapWidth, g.settings.MapHeight); err != nil {
		g.setStatus("new map: %v", err)
		return
	}
	g.minimapDirty = true
	g.setStatus("new %dx%d map", g.settings.MapWidth, g.settings.MapHeight)
}

func (g *Game) ClearMap() {
	g.sess.ClearMap()
	g.minimapDirty = true
	g.setStatus("cleared map")
}

func (g *Game) ResizeTiles(delta int) {
	g.sess.SetTileSize(g.sess.Config().TileSize + delta)
	g.paletteScroll = 0
	g.minimapDirty = true
	g.bar.sync(g.sess)
	if g.sess.Layout().Degenerate() && g.sess.Loaded() != nil {
		g.setStatus("tile size %d leaves no whole tiles; painting disabled", g.sess.Config().TileSize)
	}
}

// OpenTileset loads path and makes it the active tileset. On failure the
// previous tileset stays active.
func (g *Game) OpenTileset(path string) error {
	ts, err := tileset.Load(path)
	if err != nil {
		g.setStatus("could not open %s", path)
		return err
	}
	g.activate(ts)
	g.watch(path)
	g.setStatus("opened %s", path)
	return nil
}

// OpenDemoTileset activates the embedded tileset. An atlas config the user
// asked for (explicit) is kept; otherwise the demo's own config is applied.
func (g *Game) OpenDemoTileset(explicit bool) {
	ts, err := assets.LoadTileset(assets.DemoTileset)
	if err != nil {
		slog.Error("demo tileset unavailable", "err", err)
		return
	}
	cfg, kept := demoAtlas(g.sess.Config(), explicit)
	g.sess.SetConfig(cfg)
	g.activate(ts)
	if kept {
		g.setStatus("demo tileset cut at your %dpx tiles; Ctrl+O opens your own", cfg.TileSize)
		return
	}
	g.setStatus("demo tileset; Ctrl+O opens your own")
}

// demoAtlas is the atlas config to cut the demo tileset with.
func demoAtlas(current atlas.Config, explicit bool) (atlas.Config, bool) {
	if explicit {
		return current, true
	}
	return assets.DemoConfig, false
}

func (g *Game) activate(ts *tileset.Tileset) {
	g.sess.SetTileset(ts, ebiten.NewImageFromImage(ts.Pixels))
	g.paletteScroll = 0
	g.minimapDirty = true
	g.bar.sync(g.sess)
}

func (g *Game) watch(path string) {
	if !g.settings.WatchTileset {
		return
	}
	if g.watcher != nil {
		_ = g.watcher.Close()
		g.watcher = nil
	}
	w, err := tileset.NewWatcher(path)
	if err != nil {
		slog.Error("tileset watch failed", "path", path, "err", err)
		return
	}
	g.watcher = w
}

// pollWatcher reloads the tileset between frames when its file changed.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case path := <-g.watcher.Events():
		ts, err := tileset.Load(path)
		if err != nil {
			slog.Warn("tileset reload failed", "path", path, "err", err)
			g.setStatus("reload failed; keeping previous tileset")
			return
		}
		g.activate(ts)
		g.setStatus("reloaded %s", path)
	case err := <-g.watcher.Errors():
		slog.Warn("tileset watch error", "err", err)
	default:
	}
}

func (g *Game) openDialog() {
	path, err := openTilesetDialog()
	if err != nil {
		if !errors.Is(err, errDialogCancelled) {
			slog.Warn("open dialog", "err", err)
			g.setStatus("%v", err)
		}
		return
	}
	if err := g.OpenTileset(path); err != nil {
		slog.Error("tileset load failed", "path", path, "err", err)
	}
}

// Export writes the flattened map to the configured path, asking for one
// when a native dialog is available.
func (g *Game) Export() {
	g.export(g.sess.Export, "exported %s")
}

// ExportWithGrid is Export with tile boundaries drawn into the image.
func (g *Game) ExportWithGrid() {
	g.export(func(path string) error {
		return g.sess.ExportGrid(path, exportGridColor)
	}, "exported %s with grid")
}

func (g *Game) export(write func(path string) error, done string) {
	path, ok := exportTarget(g.settings.ExportPath, saveExportDialog)
	if !ok {
		return
	}
	if err := write(path); err != nil {
		slog.Error("export failed", "path", path, "err", err)
		g.setStatus("export failed: %v", err)
		return
	}
	g.settings.ExportPath = path
	g.setStatus(done, path)
}

// exportTarget resolves where an export goes: the dialog's choice, or the
// configured path when no dialog is available. ok is false on cancel.
func exportTarget(configured string, ask func(current string) (string, error)) (string, bool) {
	chosen, err := ask(configured)
	switch {
	case err == nil:
		return chosen, true
	case errors.Is(err, errDialogCancelled):
		return "", false
	default:
		return configured, true
	}
}

func (g *Game) RunScript() {
	if g.script == "" {
		g.setStatus("no script; start with --script")
		return
	}
	if err := g.sess.RunScript(g.script); err != nil {
		slog.Error("script failed", "path", g.script, "err", err)
		g.setStatus("script failed: %v", err)
		return
	}
	g.minimapDirty = true
	g.setStatus("filled map from %s", g.script)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
