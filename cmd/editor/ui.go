package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/goob/editor"
)

// toolBar holds the widgets whose labels follow session state.
type toolBar struct {
	grid      *widget.Button
	selection *widget.Button
	size      *widget.Text
}

// sync refreshes labels from the session.
func (t *toolBar) sync(sess *editor.Session) {
	grid := "Grid: off"
	if sess.ShowGrid {
		grid = "Grid: on"
	}
	t.grid.SetText(grid)
	t.selection.SetText(capitalize(sess.Selection.String()))
	t.size.Label = fmt.Sprintf("%dpx", sess.Config().TileSize)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

func buildUI(g *Game, face text.Face) (*ebitenui.UI, *toolBar) {
	ui := &ebitenui.UI{}
	fontFace := face
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	bar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(0, barHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				StretchHorizontal:  true,
			}),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Bottom: 4, Left: 6, Right: 6}),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 240, 255})),
	)

	button := func(label string, minW int, onClick func()) *widget.Button {
		b := widget.NewButton(
			widget.ButtonOpts.Image(ui.PrimaryTheme.ButtonTheme.Image),
			widget.ButtonOpts.Text(label, &fontFace, buttonTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(minW, barHeight-8)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
		bar.AddChild(b)
		return b
	}

	tb := &toolBar{}
	button("Open Tileset", 110, g.openDialog)
	button("Export PNG", 100, g.Export)
	button("Export + Grid", 120, g.ExportWithGrid)
	button("-", 32, func() { g.ResizeTiles(-1) })
	tb.size = widget.NewText(
		widget.TextOpts.Text("", &fontFace, color.Black),
		widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.MinSize(56, barHeight-8)),
	)
	bar.AddChild(tb.size)
	button("+", 32, func() { g.ResizeTiles(1) })
	tb.grid = button("Grid", 90, g.ToggleGrid)
	button("New Map", 90, g.NewMap)
	button("Clear", 70, g.ClearMap)
	tb.selection = button("Eraser", 90, g.SelectEraser)
	button("Minimap", 90, func() {
		g.showMinimap = !g.showMinimap
		g.minimapDirty = true
	})

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(bar)
	ui.Container = root
	return ui, tb
}
