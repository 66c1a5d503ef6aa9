package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPDFFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected bool
	}{
		{"lowercase", "report.pdf", true},
		{"uppercase", "REPORT.PDF", true},
		{"mixed_case", "Report.Pdf", true},
		{"text_file", "report.txt", false},
		{"no_extension", "report", false},
		{"pdf_in_name_only", "report.pdf.bak", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsPDFFile(tt.filename))
		})
	}
}

func TestValidator_ValidateFile(t *testing.T) {
	tmp := t.TempDir()

	garbage := filepath.Join(tmp, "garbage.pdf")
	require.NoError(t, os.WriteFile(garbage, []byte("not a pdf"), 0o644))

	validator := NewValidator(testMaxFileSize)

	tests := []struct {
		name string
		path string
	}{
		{"empty_path", ""},
		{"missing_file", filepath.Join(tmp, "missing.pdf")},
		{"wrong_extension", filepath.Join(tmp, "missing.txt")},
		{"structurally_invalid", garbage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, validator.ValidateFile(tt.path))
			assert.False(t, validator.IsValidPDF(tt.path))
		})
	}
}
