package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// The persisted configuration is a small JSON object next to the program
// with one recognized key, output_dir. It remembers the output folder the
// user last chose.

// LoadPersistedOutputDir reads the remembered output directory from the
// given config file. A missing, malformed, or empty file is never an error:
// the second return value is simply false and the caller keeps its default.
func LoadPersistedOutputDir(path string) (string, bool) {
	if path == "" {
		return "", false
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return "", false
	}

	dir := v.GetString("output_dir")
	if dir == "" {
		return "", false
	}

	return dir, true
}

// SavePersistedOutputDir rewrites the config file so the chosen output
// directory is remembered across runs.
func SavePersistedOutputDir(path, outputDir string) error {
	if path == "" {
		return fmt.Errorf("config file path cannot be empty")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.Set("output_dir", outputDir)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("cannot save configuration to %s: %w", path, err)
	}

	return nil
}
