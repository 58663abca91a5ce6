package main

import (
	"bytes"
	"log/slog"
	"sync"

	"golang.design/x/clipboard"

	"github.com/milk9111/goob/export"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// CopyToClipboard puts the flattened map on the system clipboard as PNG.
func (g *Game) CopyToClipboard() {
	clipboardOnce.Do(func() { clipboardErr = clipboard.Init() })
	if clipboardErr != nil {
		slog.Warn("clipboard unavailable", "err", clipboardErr)
		g.setStatus("clipboard unavailable")
		return
	}
	img, err := g.sess.Compose()
	if err != nil {
		g.setStatus("copy failed: %v", err)
		return
	}
	var buf bytes.Buffer
	if err := export.Encode(&buf, img); err != nil {
		slog.Error("clipboard encode", "err", err)
		return
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	b := img.Bounds()
	g.setStatus("copied %dx%d image", b.Dx(), b.Dy())
}
