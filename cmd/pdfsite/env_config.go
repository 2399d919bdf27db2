package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-pdfsite/internal/config"
)

// dotEnvFile is read from the working directory when present.
const dotEnvFile = ".env"

// envPrefix marks the variables read by pdfsite.
const envPrefix = "PDFSITE_"

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath string // PDFSITE_CONFIG: config file name or path
	SourceDir  string // PDFSITE_SOURCE_DIR: folder holding logo, main and appendix
	OutputDir  string // PDFSITE_OUTPUT_DIR: site root
	Style      string // PDFSITE_STYLE: CSS style name or path
	AssetPath  string // PDFSITE_ASSET_PATH: custom asset directory
	LogLevel   string // LOG_LEVEL: debug, info, warn, error
}

// knownEnvVars lists valid PDFSITE_* environment variables.
var knownEnvVars = map[string]bool{
	"PDFSITE_CONFIG":     true,
	"PDFSITE_SOURCE_DIR": true,
	"PDFSITE_OUTPUT_DIR": true,
	"PDFSITE_STYLE":      true,
	"PDFSITE_ASSET_PATH": true,
}

// loadDotEnv loads path into the process environment when it exists.
// Variables already set are kept.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// loadEnvConfig reads the recognized variables from env.
func loadEnvConfig(env *Environment) *envConfig {
	return &envConfig{
		ConfigPath: env.getenv("PDFSITE_CONFIG"),
		SourceDir:  env.getenv("PDFSITE_SOURCE_DIR"),
		OutputDir:  env.getenv("PDFSITE_OUTPUT_DIR"),
		Style:      env.getenv("PDFSITE_STYLE"),
		AssetPath:  env.getenv("PDFSITE_ASSET_PATH"),
		LogLevel:   env.getenv("LOG_LEVEL"),
	}
}

// warnUnknownEnvVars reports PDFSITE_* variables that are not recognized.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with the variables that are set.
// Flags are applied afterwards, giving flags > environment > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.SourceDir != "" {
		cfg.Paths.SourceDir = env.SourceDir
	}
	if env.OutputDir != "" {
		cfg.Paths.OutputDir = env.OutputDir
	}
	if env.Style != "" {
		cfg.Site.Style = env.Style
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}
