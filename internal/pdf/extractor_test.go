package pdf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxFileSize = 10 * 1024 * 1024

func TestExtractor_ExtractTextErrors(t *testing.T) {
	tmp := t.TempDir()

	garbage := filepath.Join(tmp, "garbage.pdf")
	require.NoError(t, os.WriteFile(garbage, []byte("this is not a pdf document"), 0o644))

	empty := filepath.Join(tmp, "empty.pdf")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	notPDF := filepath.Join(tmp, "report.txt")
	require.NoError(t, os.WriteFile(notPDF, []byte("text"), 0o644))

	big := filepath.Join(tmp, "big.pdf")
	require.NoError(t, os.WriteFile(big, make([]byte, 128), 0o644))

	tests := []struct {
		name        string
		path        string
		maxFileSize int64
	}{
		{
			name:        "empty_path",
			path:        "",
			maxFileSize: testMaxFileSize,
		},
		{
			name:        "nonexistent_file",
			path:        filepath.Join(tmp, "missing.pdf"),
			maxFileSize: testMaxFileSize,
		},
		{
			name:        "directory",
			path:        tmp,
			maxFileSize: testMaxFileSize,
		},
		{
			name:        "wrong_extension",
			path:        notPDF,
			maxFileSize: testMaxFileSize,
		},
		{
			name:        "empty_file",
			path:        empty,
			maxFileSize: testMaxFileSize,
		},
		{
			name:        "file_too_large",
			path:        big,
			maxFileSize: 64,
		},
		{
			name:        "unparseable_content",
			path:        garbage,
			maxFileSize: testMaxFileSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := NewExtractor(tt.maxFileSize)
			_, err := extractor.ExtractText(tt.path)
			require.Error(t, err)

			var extractionErr *ExtractionError
			assert.True(t, errors.As(err, &extractionErr), "error must be typed ExtractionError, got %T", err)
		})
	}
}

func TestExtractionError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &ExtractionError{Path: "/tmp/x.pdf", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "/tmp/x.pdf")
}
