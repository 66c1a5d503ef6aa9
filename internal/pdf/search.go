package pdf

import (
	"fmt"
	"os"
	"path/filepath"
)

// ListPDFs returns the paths of all PDF files directly inside dir, sorted
// lexicographically by name. The listing is non-recursive; directories and
// non-PDF entries are skipped silently.
func ListPDFs(dir string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	// os.ReadDir returns entries sorted by filename.
	var pdfs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !IsPDFFile(entry.Name()) {
			continue
		}
		pdfs = append(pdfs, filepath.Join(dir, entry.Name()))
	}

	return pdfs, nil
}
