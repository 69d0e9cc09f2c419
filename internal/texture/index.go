package texture

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Index maps lowercase map stems ("earth", "mars_topo") to file paths.
// When one stem exists in several formats the lossless one wins.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex scans mapsDir recursively for map images.
func BuildIndex(mapsDir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(mapsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !Supported(path) {
			return nil
		}
		idx.add(path)
		return nil
	})

	return idx
}

func (idx *Index) add(path string) {
	ext := strings.ToLower(filepath.Ext(path))
	stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

	existing, exists := idx.entries[stem]
	if !exists || extPriority[ext] < extPriority[strings.ToLower(filepath.Ext(existing))] {
		idx.entries[stem] = path
	}
}

// ResolvePath returns the file path for a map name, or ("", false). The
// name may carry a directory or an extension; only its stem is matched.
func (idx *Index) ResolvePath(name string) (string, bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed maps.
func (idx *Index) Len() int {
	return len(idx.entries)
}
