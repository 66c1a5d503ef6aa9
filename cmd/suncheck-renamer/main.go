package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/medqa/suncheck-renamer/internal/config"
	"github.com/medqa/suncheck-renamer/internal/mcp"
	"github.com/medqa/suncheck-renamer/internal/pdf"
	"github.com/medqa/suncheck-renamer/internal/pipeline"
	"github.com/medqa/suncheck-renamer/internal/rename"
	"github.com/medqa/suncheck-renamer/internal/watcher"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the run mode
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// In stdio mode, redirect log output to stderr to avoid interfering
		// with the MCP protocol
		log.SetOutput(os.Stderr)
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
	} else {
		log.SetFlags(log.LstdFlags)
	}
}

// runOnce processes the path arguments (or the input directory when none are
// given) a single time and returns the number of hard failures.
func runOnce(pipe *pipeline.Pipeline, args []string, inputDir string) int {
	if len(args) == 0 {
		args = []string{inputDir}
	}

	failed := 0
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			log.Printf("ERR  %s: %v", arg, err)
			failed++
			continue
		}

		var outcomes []pipeline.Outcome
		if info.IsDir() {
			outcomes, err = pipe.ProcessDirectory(arg)
			if err != nil {
				log.Printf("ERR  %s: %v", arg, err)
				failed++
				continue
			}
		} else {
			outcomes = pipe.ProcessBatch([]string{arg})
		}

		for _, outcome := range outcomes {
			log.Print(outcome.String())
			if !outcome.OK() && outcome.Kind != pipeline.KindNotAPDF {
				failed++
			}
		}
	}

	return failed
}

// runWatchMode monitors the input directory until interrupted
func runWatchMode(ctx context.Context, cancel context.CancelFunc, w *watcher.Watcher, inputDir string) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	watcherErrCh := make(chan error, 1)
	go func() {
		watcherErrCh <- w.Run(ctx)
	}()

	log.Printf("Watching %s for report PDFs", inputDir)

	select {
	case sig := <-signalCh:
		log.Printf("Received signal: %s", sig)
		cancel()

		if err := <-watcherErrCh; err != nil {
			log.Printf("Watcher shutdown with error: %v", err)
			os.Exit(1)
		}

	case err := <-watcherErrCh:
		if err != nil {
			log.Printf("Watcher error: %v", err)
			os.Exit(1)
		}
	}

	log.Println("Watcher stopped")
}

// runStdioMode serves the rename tools over MCP standard I/O
func runStdioMode(ctx context.Context, server *mcp.Server) {
	// The parent process controls our lifecycle; exit cleanly when stdin
	// closes.
	if err := server.Run(ctx); err != nil {
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	if version != "dev" {
		cfg.Version = version
	}

	// Remember an explicitly chosen output directory across runs.
	if pflag.CommandLine.Changed("output") {
		if err := config.SavePersistedOutputDir(cfg.ConfigFile, cfg.OutputDir); err != nil {
			log.Printf("Warning: could not persist output directory: %v", err)
		}
	}

	if cfg.IsDebug() && !cfg.IsStdioMode() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	pipe, err := pipeline.New(pdf.NewExtractor(cfg.MaxFileSize), rename.NewPlacer(), cfg.OutputDir, cfg.Workers)
	if err != nil {
		log.Fatalf("Failed to create pipeline: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	switch {
	case cfg.IsStdioMode():
		server, err := mcp.NewServer(cfg, pipe)
		if err != nil {
			log.Fatalf("Failed to create MCP server: %v", err)
		}
		runStdioMode(ctx, server)

	case cfg.IsWatchMode():
		w, err := watcher.New(cfg.InputDir, watcher.DefaultDebounce, func(path string) {
			log.Print(pipe.ProcessFile(path).String())
		})
		if err != nil {
			log.Fatalf("Failed to create watcher: %v", err)
		}
		runWatchMode(ctx, cancel, w, cfg.InputDir)

	default:
		if failed := runOnce(pipe, pflag.Args(), cfg.InputDir); failed > 0 {
			os.Exit(1)
		}
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("SunCHECK Renamer\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
