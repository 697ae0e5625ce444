//go:build linux

package mpris

import (
	"os"
	"path/filepath"
	"strings"
)

// coverNames lists directory-wide art filenames in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

// FindAlbumArt looks for art next to path: first an image sharing the
// file's name, then the usual cover files. Returns "" when none exists.
func FindAlbumArt(path string) string {
	dir := filepath.Dir(path)
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	candidates := make([]string, 0, len(coverNames)+2)
	candidates = append(candidates, stem+".jpg", stem+".png")
	candidates = append(candidates, coverNames...)

	for _, name := range candidates {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
