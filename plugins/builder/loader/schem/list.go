package schem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/cases"
)

// Extensions are the recognised schematic file extensions.
var Extensions = []string{".schem", ".schematic"}

// List returns the names of schematic files directly inside dir, sorted. A
// missing directory lists as empty.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	fold := cases.Fold()
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if HasExtension(fold.String(filepath.Ext(e.Name()))) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// HasExtension reports whether ext (already case-folded) is recognised.
func HasExtension(ext string) bool {
	for _, want := range Extensions {
		if ext == want {
			return true
		}
	}
	return false
}
