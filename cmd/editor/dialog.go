//go:build dialog

package main

import "github.com/sqweek/dialog"

var errDialogCancelled = dialog.ErrCancelled

// openTilesetDialog opens the native file dialog and returns the selected path.
func openTilesetDialog() (string, error) {
	return dialog.File().
		Filter("Image files", "png", "jpg", "jpeg", "gif", "bmp", "webp").
		Title("Open tileset").
		Load()
}

// saveExportDialog asks where to write the export, starting from current.
func saveExportDialog(current string) (string, error) {
	return dialog.File().Filter("PNG image", "png").Title("Export map").SetStartFile(current).Save()
}
