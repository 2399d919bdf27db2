package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDefaultConfig - Built-in site values
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Site.Title != "Wolf Carports — Training Hub" {
		t.Errorf("Site.Title = %q", cfg.Site.Title)
	}
	if cfg.Site.Index != "index.html" {
		t.Errorf("Site.Index = %q, want index.html", cfg.Site.Index)
	}
	if cfg.Paths.SourceDir != "~/Downloads" {
		t.Errorf("Paths.SourceDir = %q, want ~/Downloads", cfg.Paths.SourceDir)
	}
	if cfg.Combined.Path != "download/concrete-recommendations-shareable.pdf" {
		t.Errorf("Combined.Path = %q", cfg.Combined.Path)
	}
	if len(cfg.Collections) != 2 {
		t.Fatalf("len(Collections) = %d, want 2", len(cfg.Collections))
	}
	if cfg.Collections[0].Output != "sentinels.html" || cfg.Collections[1].Output != "onboarding.html" {
		t.Errorf("Collections = %+v", cfg.Collections)
	}
	if !cfg.ShouldCreateCollectionDirs() {
		t.Error("ShouldCreateCollectionDirs() = false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestShouldCreateCollectionDirs_NilMeansTrue(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	if !cfg.ShouldCreateCollectionDirs() {
		t.Error("ShouldCreateCollectionDirs() = false for unset value, want true")
	}

	off := false
	cfg.CreateCollectionDirs = &off
	if cfg.ShouldCreateCollectionDirs() {
		t.Error("ShouldCreateCollectionDirs() = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestValidate - Field lengths and output names
// ---------------------------------------------------------------------------

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit returns error", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Fatalf("error = %v, want ErrFieldTooLong", err)
				}
				if !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "title too long",
			mutate:  func(c *Config) { c.Site.Title = strings.Repeat("x", MaxTitleLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "main heading too long",
			mutate:  func(c *Config) { c.Documents.Main.Heading = strings.Repeat("x", MaxTitleLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "collection output with directory",
			mutate:  func(c *Config) { c.Collections[0].Output = "sub/page.html" },
			wantErr: ErrInvalidOutputName,
		},
		{
			name:    "collection output with traversal",
			mutate:  func(c *Config) { c.Collections[0].Output = "../page.html" },
			wantErr: ErrInvalidOutputName,
		},
		{
			name:    "collection output without html extension",
			mutate:  func(c *Config) { c.Collections[0].Output = "page.pdf" },
			wantErr: ErrInvalidOutputName,
		},
		{
			name:    "collection output empty",
			mutate:  func(c *Config) { c.Collections[0].Output = "" },
			wantErr: ErrInvalidOutputName,
		},
		{
			name:    "hidden collection output",
			mutate:  func(c *Config) { c.Collections[0].Output = ".html" },
			wantErr: ErrInvalidOutputName,
		},
		{
			name:    "collection output collides with index",
			mutate:  func(c *Config) { c.Collections[1].Output = "INDEX.html" },
			wantErr: ErrDuplicateOutput,
		},
		{
			name:    "two collections write the same page",
			mutate:  func(c *Config) { c.Collections[1].Output = c.Collections[0].Output },
			wantErr: ErrDuplicateOutput,
		},
		{
			name:    "combined path absolute",
			mutate:  func(c *Config) { c.Combined.Path = "/tmp/out.pdf" },
			wantErr: ErrInvalidOutputName,
		},
		{
			name:    "combined path escapes output dir",
			mutate:  func(c *Config) { c.Combined.Path = "download/../../out.pdf" },
			wantErr: ErrInvalidOutputName,
		},
		{
			name:    "combined path not a pdf",
			mutate:  func(c *Config) { c.Combined.Path = "download/out.txt" },
			wantErr: ErrInvalidOutputName,
		},
		{
			name:   "no collections is valid",
			mutate: func(c *Config) { c.Collections = []CollectionConfig{} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_TooManyCollections(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Collections = nil
	for i := 0; i <= MaxCollections; i++ {
		cfg.Collections = append(cfg.Collections, CollectionConfig{
			Title:  "c",
			Dir:    "materials/c",
			Output: "c" + strings.Repeat("x", i) + ".html",
		})
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() error = nil, want error for too many collections")
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading and overlay
// ---------------------------------------------------------------------------

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return p
}

func TestLoadConfig_YAMLOverlaysDefaults(t *testing.T) {
	t.Parallel()

	p := writeConfig(t, t.TempDir(), "site.yaml", `
site:
  title: "Acme — Hub"
paths:
  outputDir: /srv/site
documents:
  main:
    file: guide.pdf
createCollectionDirs: false
`)

	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Site.Title != "Acme — Hub" {
		t.Errorf("Site.Title = %q, want overlay value", cfg.Site.Title)
	}
	if cfg.Site.Brand != "Wolf Carports" {
		t.Errorf("Site.Brand = %q, want default kept", cfg.Site.Brand)
	}
	if cfg.Paths.OutputDir != "/srv/site" {
		t.Errorf("Paths.OutputDir = %q", cfg.Paths.OutputDir)
	}
	if cfg.Paths.SourceDir != "~/Downloads" {
		t.Errorf("Paths.SourceDir = %q, want default kept", cfg.Paths.SourceDir)
	}
	if cfg.Documents.Main.File != "guide.pdf" {
		t.Errorf("Documents.Main.File = %q", cfg.Documents.Main.File)
	}
	if cfg.Documents.Main.Heading != "Main Document" {
		t.Errorf("Documents.Main.Heading = %q, want default kept", cfg.Documents.Main.Heading)
	}
	if cfg.ShouldCreateCollectionDirs() {
		t.Error("ShouldCreateCollectionDirs() = true, want false from file")
	}
	if len(cfg.Collections) != 2 {
		t.Errorf("len(Collections) = %d, want defaults kept", len(cfg.Collections))
	}
}

func TestLoadConfig_TOML(t *testing.T) {
	t.Parallel()

	p := writeConfig(t, t.TempDir(), "site.toml", `
[site]
brand = "Acme"

[[collections]]
title = "Safety"
dir = "materials/safety"
output = "safety.html"
`)

	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Site.Brand != "Acme" {
		t.Errorf("Site.Brand = %q, want Acme", cfg.Site.Brand)
	}
	if len(cfg.Collections) != 1 || cfg.Collections[0].Output != "safety.html" {
		t.Errorf("Collections = %+v, want the single configured collection", cfg.Collections)
	}
}

func TestLoadConfig_EmptyCollectionsDisablesPages(t *testing.T) {
	t.Parallel()

	p := writeConfig(t, t.TempDir(), "site.yaml", "collections: []\n")

	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(cfg.Collections) != 0 {
		t.Errorf("Collections = %+v, want none", cfg.Collections)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{
			name:    "empty name",
			path:    "",
			wantErr: ErrEmptyConfigName,
		},
		{
			name:    "missing file path",
			path:    filepath.Join(dir, "missing.yaml"),
			wantErr: ErrConfigNotFound,
		},
		{
			name:    "unknown yaml field",
			path:    writeConfig(t, dir, "unknown.yaml", "site:\n  colour: red\n"),
			wantErr: ErrConfigParse,
		},
		{
			name:    "unknown toml field",
			path:    writeConfig(t, dir, "unknown.toml", "[site]\ncolour = \"red\"\n"),
			wantErr: ErrConfigParse,
		},
		{
			name:    "malformed yaml",
			path:    writeConfig(t, dir, "bad.yaml", "site: [\n"),
			wantErr: ErrConfigParse,
		},
		{
			name:    "unsupported extension",
			path:    writeConfig(t, dir, "site.json", "{}"),
			wantErr: ErrConfigParse,
		},
		{
			name:    "invalid output name",
			path:    writeConfig(t, dir, "badout.yaml", "site:\n  index: ../index.html\n"),
			wantErr: ErrInvalidOutputName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfig(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig(%q) error = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

// Not parallel: changes the working directory.
func TestLoadConfig_ResolvesNameInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "hub.toml", "[site]\nbrand = \"From TOML\"\n")
	t.Chdir(dir)

	cfg, err := LoadConfig("hub")
	if err != nil {
		t.Fatalf("LoadConfig(hub) error = %v", err)
	}
	if cfg.Site.Brand != "From TOML" {
		t.Errorf("Site.Brand = %q", cfg.Site.Brand)
	}
}

func TestLoadConfig_NameNotFoundListsTriedPaths(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadConfig("nowhere")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
	for _, ext := range []string{"nowhere.yaml", "nowhere.yml", "nowhere.toml"} {
		if !strings.Contains(err.Error(), ext) {
			t.Errorf("error %q should list %s", err, ext)
		}
	}
}
