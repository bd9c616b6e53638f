package server

import (
	"bytes"
	"net/http"
	"path"
	"strings"

	"github.com/MeKo-Tech/colorsync/internal/colormodel"
	"github.com/MeKo-Tech/colorsync/internal/swatch"
)

func (s *Server) handleSwatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	hex, suffix, ok := parseSwatchPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	rgb, err := colormodel.HexToRGB(hex)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	opts := swatch.Options{
		Scale: scaleForSuffix(suffix),
		Label: r.URL.Query().Get("label") != "0",
	}
	img := swatch.Render(colormodel.FromRGB(rgb), opts)

	var buf bytes.Buffer
	if err := swatch.Encode(&buf, img, s.cfg.PNGCompression); err != nil {
		s.log().Error("failed to render swatch", "hex", hex, "error", err)
		http.Error(w, "failed to render swatch", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", s.cfg.CacheControl)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log().Error("failed to write response", "error", err)
	}
}

// parseSwatchPath accepts /swatch/1976d2.png and /swatch/1976d2@2x.png.
func parseSwatchPath(requestPath string) (string, string, bool) {
	if !strings.HasPrefix(requestPath, "/swatch/") {
		return "", "", false
	}
	base := path.Base(requestPath)
	if !strings.HasSuffix(base, ".png") {
		return "", "", false
	}
	name := strings.TrimSuffix(base, ".png")
	suffix := ""
	if strings.HasSuffix(name, "@2x") {
		suffix = "@2x"
		name = strings.TrimSuffix(name, "@2x")
	}
	if len(name) != 3 && len(name) != 6 {
		return "", "", false
	}
	return name, suffix, true
}

func scaleForSuffix(suffix string) int {
	if suffix == "@2x" {
		return 2
	}
	return 1
}
