package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	// maxDisambiguation bounds the collision counter appended to filenames.
	maxDisambiguation = 9999

	// Directory and file permissions for created output.
	outputDirPerm  = 0o750
	outputFilePerm = 0o644
)

// Placer copies source files into an output directory under a chosen
// filename, appending a numeric suffix when the name is already taken.
//
// The existence check and the write are serialized by an internal mutex, so
// a single Placer shared across goroutines never hands the same candidate
// path to two files.
type Placer struct {
	mu sync.Mutex
}

// NewPlacer creates a new output placer.
func NewPlacer() *Placer {
	return &Placer{}
}

// Place copies the full content of sourcePath into outputDir under filename,
// or under the first free disambiguated variant {stem}(n){ext} for n 1..9999
// when the name collides. The output directory is created if absent. The
// source file is never modified. Returns the final destination path.
func (p *Placer) Place(outputDir, filename, sourcePath string) (string, error) {
	if outputDir == "" {
		return "", fmt.Errorf("output directory cannot be empty")
	}
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return "", fmt.Errorf("cannot read source file %s: %w", sourcePath, err)
	}

	if err := os.MkdirAll(outputDir, outputDirPerm); err != nil {
		return "", fmt.Errorf("cannot create output directory %s: %w", outputDir, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	dest, err := uniquePath(filepath.Join(outputDir, filename))
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(dest, data, outputFilePerm); err != nil {
		return "", fmt.Errorf("cannot write output file %s: %w", dest, err)
	}

	return dest, nil
}

// uniquePath returns path unchanged if nothing exists there, otherwise the
// first {stem}(n){ext} variant that is free. Counter exhaustion is an error
// rather than a silent overwrite.
func uniquePath(path string) (string, error) {
	if !exists(path) {
		return path, nil
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	for i := 1; i <= maxDisambiguation; i++ {
		candidate := fmt.Sprintf("%s(%d)%s", stem, i, ext)
		if !exists(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no free name for %s after %d attempts", path, maxDisambiguation)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
