package mcp

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/medqa/suncheck-renamer/internal/config"
	"github.com/medqa/suncheck-renamer/internal/pdf"
	"github.com/medqa/suncheck-renamer/internal/pipeline"
	"github.com/medqa/suncheck-renamer/internal/rename"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	tmp := t.TempDir()
	return &config.Config{
		Mode:        config.ModeStdio,
		InputDir:    filepath.Join(tmp, "Input"),
		OutputDir:   filepath.Join(tmp, "Output"),
		AppName:     "suncheck-renamer",
		Version:     "1.0.0",
		LogLevel:    "info",
		MaxFileSize: 1024 * 1024,
		Workers:     1,
	}
}

func testPipeline(t *testing.T, cfg *config.Config) *pipeline.Pipeline {
	t.Helper()
	pipe, err := pipeline.New(pdf.NewExtractor(cfg.MaxFileSize), rename.NewPlacer(), cfg.OutputDir, cfg.Workers)
	if err != nil {
		t.Fatalf("failed to create pipeline: %v", err)
	}
	return pipe
}

func TestNewServer(t *testing.T) {
	cfg := testConfig(t)
	pipe := testPipeline(t, cfg)

	tests := []struct {
		name        string
		config      *config.Config
		pipeline    *pipeline.Pipeline
		expectError bool
	}{
		{
			name:        "valid config and pipeline",
			config:      cfg,
			pipeline:    pipe,
			expectError: false,
		},
		{
			name:        "nil config",
			config:      nil,
			pipeline:    pipe,
			expectError: true,
		},
		{
			name:        "nil pipeline",
			config:      cfg,
			pipeline:    nil,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, err := NewServer(tt.config, tt.pipeline)

			if tt.expectError && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.expectError && server == nil {
				t.Error("expected server instance, got nil")
			}
		})
	}
}

func TestFormatBatchResult(t *testing.T) {
	cfg := testConfig(t)
	server, err := NewServer(cfg, testPipeline(t, cfg))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	t.Run("empty batch", func(t *testing.T) {
		text := server.formatBatchResult("/reports", nil)
		if !strings.Contains(text, "No PDF files found") {
			t.Errorf("expected empty-directory message, got: %s", text)
		}
	})

	t.Run("mixed outcomes", func(t *testing.T) {
		outcomes := []pipeline.Outcome{
			{Source: "/in/a.pdf", OutputPath: "/out/A_B_C_1%1mm.pdf"},
			{Source: "/in/b.txt", Kind: pipeline.KindNotAPDF, Message: "not a PDF file: b.txt"},
			{Source: "/in/c.pdf", Kind: pipeline.KindFieldMissing, Message: "required field not found"},
		}

		text := server.formatBatchResult("/in", outcomes)
		if !strings.Contains(text, "1 renamed, 1 failed, 1 skipped") {
			t.Errorf("expected summary line, got: %s", text)
		}
		if !strings.Contains(text, "/out/A_B_C_1%1mm.pdf") {
			t.Errorf("expected renamed path in output, got: %s", text)
		}
	})
}
