package stream

import (
	"os"
	"path/filepath"

	"github.com/dhowden/tag"
)

// readTags fills the descriptive fields of Info. Files without readable tags
// fall back to the file name as title.
func readTags(path string) Info {
	info := Info{Title: filepath.Base(path)}

	f, err := os.Open(path)
	if err != nil {
		return info
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return info
	}
	if m.Title() != "" {
		info.Title = m.Title()
	}
	info.Artist = m.Artist()
	if info.Artist == "" {
		info.Artist = m.AlbumArtist()
	}
	info.Album = m.Album()
	return info
}
