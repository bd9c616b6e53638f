package assets

import (
	"embed"
	"io/fs"
)

// Web embeds the demo page served at / by colorsync serve.
//
//go:embed web
var Web embed.FS

// WebFS returns the demo files rooted at web/.
func WebFS() (fs.FS, error) {
	return fs.Sub(Web, "web")
}
