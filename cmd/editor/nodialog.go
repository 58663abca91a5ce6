//go:build !dialog

package main

import "errors"

var (
	errDialogCancelled = errors.New("dialog cancelled")
	errNoDialog        = errors.New("native file dialog unavailable; build with -tags dialog or pass --tileset")
)

// openTilesetDialog is a stub used when the native dialog build tag isn't set.
func openTilesetDialog() (string, error) {
	return "", errNoDialog
}

// saveExportDialog is a stub; callers fall back to the configured path.
func saveExportDialog(string) (string, error) {
	return "", errNoDialog
}
