// Package config carries runtime configuration for the renamer: flag and
// environment loading, validation, and the persisted output directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeRun   = "run"
	ModeWatch = "watch"
	ModeStdio = "stdio"

	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultWorkers     = 1

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the renamer.
type Config struct {
	// Mode selects the front end: "run" processes the given paths once,
	// "watch" monitors the input directory, "stdio" serves MCP tools.
	Mode string

	// Directories and persisted-config location
	InputDir   string
	OutputDir  string
	ConfigFile string

	// Application configuration
	AppName     string
	Version     string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
	Workers     int   // Batch fan-out; 1 means sequential
}

// DefaultConfig returns a configuration with sensible defaults, anchored at
// the current working directory like the original tool's program folder.
func DefaultConfig() *Config {
	baseDir, err := os.Getwd()
	if err != nil {
		baseDir = "."
	}

	return &Config{
		Mode:        ModeRun,
		InputDir:    filepath.Join(baseDir, "Input"),
		OutputDir:   filepath.Join(baseDir, "Output"),
		ConfigFile:  filepath.Join(baseDir, "config.json"),
		AppName:     "suncheck-renamer",
		Version:     "1.0.0",
		LogLevel:    DefaultLogLevel,
		MaxFileSize: DefaultMaxFileSize,
		Workers:     DefaultWorkers,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// An explicit --output wins over the persisted one and is written
	// back; otherwise the remembered output directory applies.
	if !pflag.CommandLine.Changed("output") {
		if dir, ok := LoadPersistedOutputDir(cfg.ConfigFile); ok {
			cfg.OutputDir = dir
		}
	}

	expandPaths(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("SUNCHECK")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("input", cfg.InputDir)
	viper.SetDefault("output", cfg.OutputDir)
	viper.SetDefault("config", cfg.ConfigFile)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("workers", cfg.Workers)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'run' (process arguments once), 'watch' (monitor input directory), 'stdio' (MCP standard I/O)")
	pflag.String("input", cfg.InputDir, "Input directory monitored in watch mode and used when run mode gets no arguments")
	pflag.String("output", cfg.OutputDir, "Output directory for renamed report copies")
	pflag.String("config", cfg.ConfigFile, "Path to the persisted configuration file")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.Int("workers", cfg.Workers, "Number of files processed concurrently in a batch")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("input", pflag.Lookup("input"))
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("config", pflag.Lookup("config"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("workers", pflag.Lookup("workers"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nSunCHECK Renamer - rename QA report PDFs from their extracted fields\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s report.pdf                       # rename one report\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s /path/to/reports                 # rename every PDF in a folder\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --output=/archive report.pdf     # remember a new output folder\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=watch                     # process PDFs dropped into Input/\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=stdio                     # serve rename tools over MCP\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  SUNCHECK_MODE        Run mode\n")
		fmt.Fprintf(os.Stderr, "  SUNCHECK_INPUT       Input directory\n")
		fmt.Fprintf(os.Stderr, "  SUNCHECK_OUTPUT      Output directory\n")
		fmt.Fprintf(os.Stderr, "  SUNCHECK_CONFIG      Persisted configuration file\n")
		fmt.Fprintf(os.Stderr, "  SUNCHECK_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  SUNCHECK_MAXFILESIZE Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  SUNCHECK_WORKERS     Batch concurrency\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.InputDir = viper.GetString("input")
	cfg.OutputDir = viper.GetString("output")
	cfg.ConfigFile = viper.GetString("config")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.Workers = viper.GetInt("workers")
}

// expandPaths resolves the configured directories to absolute paths.
func expandPaths(cfg *Config) {
	for _, p := range []*string{&cfg.InputDir, &cfg.OutputDir, &cfg.ConfigFile} {
		if *p == "" {
			continue
		}
		if expanded, err := filepath.Abs(*p); err == nil {
			*p = expanded
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Mode != ModeRun && c.Mode != ModeWatch && c.Mode != ModeStdio {
		return errors.New("mode must be one of 'run', 'watch' or 'stdio'")
	}

	if c.OutputDir == "" {
		return errors.New("output directory cannot be empty")
	}

	if c.InputDir == "" {
		return errors.New("input directory cannot be empty")
	}

	// Create the working folders if absent, like the original tool did
	// on startup. Idempotent.
	if err := os.MkdirAll(c.InputDir, DefaultDirPerm); err != nil {
		return fmt.Errorf("cannot create input directory %s: %w", c.InputDir, err)
	}
	if err := os.MkdirAll(c.OutputDir, DefaultDirPerm); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", c.OutputDir, err)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsStdioMode returns true when the renamer serves MCP tools over stdio
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

// IsWatchMode returns true when the renamer monitors the input directory
func (c *Config) IsWatchMode() bool {
	return c.Mode == ModeWatch
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, InputDir: %s, OutputDir: %s, ConfigFile: %s, LogLevel: %s, MaxFileSize: %d, Workers: %d}",
		c.Mode, c.InputDir, c.OutputDir, c.ConfigFile, c.LogLevel, c.MaxFileSize, c.Workers)
}
