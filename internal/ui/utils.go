package ui

import (
	"mime"
	"path/filepath"
	"strings"
)

// detectMime guesses a content type from the file extension. The server
// re-detects on its side, this is only for staging validation and display.
func detectMime(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if typ := mime.TypeByExtension(ext); typ != "" {
		if i := strings.IndexByte(typ, ';'); i >= 0 {
			typ = typ[:i]
		}
		return typ
	}
	return "application/octet-stream"
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
