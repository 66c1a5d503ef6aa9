// Package mcp exposes the rename pipeline as Model Context Protocol tools
// over standard I/O, so agent tooling can drive the renamer directly.
package mcp

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/medqa/suncheck-renamer/internal/config"
	"github.com/medqa/suncheck-renamer/internal/pdf"
	"github.com/medqa/suncheck-renamer/internal/pipeline"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	pipeline  *pipeline.Pipeline
	validator *pdf.Validator
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, pipe *pipeline.Pipeline) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if pipe == nil {
		return nil, fmt.Errorf("pipeline cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.AppName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		pipeline:  pipe,
		validator: pdf.NewValidator(cfg.MaxFileSize),
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	renameFileTool := mcp.NewTool(
		"rename_pdf_file",
		mcp.WithDescription("Extract the patient, plan and gamma-criteria fields from a SunCHECK "+
			"report PDF and copy it into the output directory under the canonical filename"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the report PDF"),
		),
	)
	s.mcpServer.AddTool(renameFileTool, s.handleRenameFile)

	renameDirectoryTool := mcp.NewTool(
		"rename_pdf_directory",
		mcp.WithDescription("Rename every PDF directly inside a directory (non-recursive, "+
			"processed in filename order)"),
		mcp.WithString("directory",
			mcp.Description("Directory containing report PDFs (uses the configured input directory if empty)"),
		),
	)
	s.mcpServer.AddTool(renameDirectoryTool, s.handleRenameDirectory)

	validateFileTool := mcp.NewTool(
		"validate_pdf_file",
		mcp.WithDescription("Check whether a file is a structurally sound PDF before renaming it"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handleValidateFile)

	infoTool := mcp.NewTool(
		"renamer_info",
		mcp.WithDescription("Get renamer configuration, available tools, and the output filename grammar"),
	)
	s.mcpServer.AddTool(infoTool, s.handleInfo)
}

// Handler functions
func (s *Server) handleRenameFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !pdf.IsPDFFile(path) {
		return mcp.NewToolResultError(fmt.Sprintf("not a PDF file: %s", path)), nil
	}

	outcome := s.pipeline.ProcessFile(path)
	if !outcome.OK() {
		return mcp.NewToolResultError(outcome.Message), nil
	}

	responseText := fmt.Sprintf("Renamed %s\n", outcome.Source)
	responseText += fmt.Sprintf("Output: %s\n", outcome.OutputPath)

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleRenameDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := s.config.InputDir // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	outcomes, err := s.pipeline.ProcessDirectory(directory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatBatchResult(directory, outcomes)), nil
}

func (s *Server) handleValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.validator.ValidateFile(path); err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("PDF validation failed for %s: %v", path, err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("PDF file %s is valid and readable", path)), nil
}

func (s *Server) handleInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := fmt.Sprintf("%s v%s\n", s.config.AppName, s.config.Version)
	text += fmt.Sprintf("Input directory:  %s\n", s.config.InputDir)
	text += fmt.Sprintf("Output directory: %s\n", s.pipeline.OutputDir())
	text += fmt.Sprintf("Max file size: %d MB\n", s.config.MaxFileSize/(1024*1024))
	text += "\nOutput filename grammar:\n"
	text += "  {patientID}_{patientName}_{planName}_{diff}%{dist}mm.pdf\n"
	text += "Name collisions get a numeric suffix: name(1).pdf, name(2).pdf, ...\n"
	text += "\nAvailable Tools:\n"
	text += "• rename_pdf_file: rename a single report PDF (path required)\n"
	text += "• rename_pdf_directory: rename every PDF in a directory (directory optional)\n"
	text += "• validate_pdf_file: structural PDF check (path required)\n"
	text += "• renamer_info: this summary\n"

	return mcp.NewToolResultText(text), nil
}

// formatBatchResult renders per-file outcomes plus a summary line.
func (s *Server) formatBatchResult(directory string, outcomes []pipeline.Outcome) string {
	if len(outcomes) == 0 {
		return fmt.Sprintf("No PDF files found in directory: %s", directory)
	}

	var ok, skipped, failed int
	text := fmt.Sprintf("Processed %d file(s) in %s\n\n", len(outcomes), directory)
	for _, outcome := range outcomes {
		text += outcome.String() + "\n"
		switch {
		case outcome.OK():
			ok++
		case outcome.Kind == pipeline.KindNotAPDF:
			skipped++
		default:
			failed++
		}
	}
	text += fmt.Sprintf("\nSummary: %d renamed, %d failed, %d skipped\n", ok, failed, skipped)

	return text
}

// Run starts the MCP server over standard I/O and blocks until the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting %s MCP server in stdio mode", s.config.AppName)
		log.Printf("Output directory: %s", s.pipeline.OutputDir())
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
