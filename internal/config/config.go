package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-pdfsite/internal/codec"
	"github.com/alnah/go-pdfsite/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound    = errors.New("config file not found")
	ErrEmptyConfigName   = errors.New("config name cannot be empty")
	ErrConfigParse       = errors.New("failed to parse config")
	ErrFieldTooLong      = errors.New("field exceeds maximum length")
	ErrInvalidOutputName = errors.New("invalid output name")
	ErrDuplicateOutput   = errors.New("duplicate output name")
)

// AppName is the directory name under the user config directory.
const AppName = "go-pdfsite"

// Field length limits.
const (
	MaxTitleLength    = 200
	MaxLabelLength    = 200
	MaxTextLength     = 500
	MaxPathLength     = 4096
	MaxFileNameLength = 255
	MaxLangLength     = 35 // BCP 47
	MaxNameLength     = 64 // style and template set names
	MaxCollections    = 50
)

// Config holds all configuration for a site build.
type Config struct {
	Site                 SiteConfig         `yaml:"site" toml:"site"`
	Paths                PathsConfig        `yaml:"paths" toml:"paths"`
	Documents            DocumentsConfig    `yaml:"documents" toml:"documents"`
	Combined             CombinedConfig     `yaml:"combined" toml:"combined"`
	Labels               LabelsConfig       `yaml:"labels" toml:"labels"`
	Collections          []CollectionConfig `yaml:"collections" toml:"collections"`
	CreateCollectionDirs *bool              `yaml:"createCollectionDirs" toml:"createCollectionDirs"`
	Assets               AssetsConfig       `yaml:"assets" toml:"assets"`
}

// SiteConfig defines branding and rendering options.
type SiteConfig struct {
	Brand       string `yaml:"brand" toml:"brand"`             // Logo alt text, collection title suffix
	Title       string `yaml:"title" toml:"title"`             // Hub page title and heading
	Lang        string `yaml:"lang" toml:"lang"`               // <html lang>
	Index       string `yaml:"index" toml:"index"`             // Hub page file name
	Style       string `yaml:"style" toml:"style"`             // Style name or CSS file path
	TemplateSet string `yaml:"templateSet" toml:"templateSet"` // Template set name
}

// PathsConfig defines where inputs are read and outputs written.
type PathsConfig struct {
	SourceDir string `yaml:"sourceDir" toml:"sourceDir"` // Base for relative document paths
	OutputDir string `yaml:"outputDir" toml:"outputDir"` // Site root
}

// DocumentsConfig defines the logo and the two hub documents.
type DocumentsConfig struct {
	Logo     string         `yaml:"logo" toml:"logo"`
	Main     DocumentConfig `yaml:"main" toml:"main"`
	Appendix DocumentConfig `yaml:"appendix" toml:"appendix"`
}

// DocumentConfig describes one embedded PDF.
type DocumentConfig struct {
	File         string `yaml:"file" toml:"file"`
	Heading      string `yaml:"heading" toml:"heading"`
	TOCLabel     string `yaml:"tocLabel" toml:"tocLabel"`
	DownloadName string `yaml:"downloadName" toml:"downloadName"`
}

// CombinedConfig defines the combined PDF and its download button.
type CombinedConfig struct {
	Path         string `yaml:"path" toml:"path"` // Relative to the output directory
	Label        string `yaml:"label" toml:"label"`
	DownloadName string `yaml:"downloadName" toml:"downloadName"`
	Note         string `yaml:"note" toml:"note"`
	SkipLabel    string `yaml:"skipLabel" toml:"skipLabel"`
}

// LabelsConfig holds fixed interface texts.
type LabelsConfig struct {
	Home            string `yaml:"home" toml:"home"`
	HubTOC          string `yaml:"hubTOC" toml:"hubTOC"`
	CollectionTOC   string `yaml:"collectionTOC" toml:"collectionTOC"`
	EmptyCollection string `yaml:"emptyCollection" toml:"emptyCollection"`
}

// CollectionConfig describes a directory rendered as its own page.
type CollectionConfig struct {
	Title  string `yaml:"title" toml:"title"`
	Dir    string `yaml:"dir" toml:"dir"`       // Relative to the output directory
	Output string `yaml:"output" toml:"output"` // Page file name
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath" toml:"basePath"` // Empty = use embedded assets
}

// ShouldCreateCollectionDirs reports the effective createCollectionDirs value.
func (c *Config) ShouldCreateCollectionDirs() bool {
	return c.CreateCollectionDirs == nil || *c.CreateCollectionDirs
}

// DefaultConfig returns the configuration of the Wolf Carports training hub.
func DefaultConfig() *Config {
	createDirs := true
	return &Config{
		Site: SiteConfig{
			Brand:       "Wolf Carports",
			Title:       "Wolf Carports — Training Hub",
			Lang:        "en",
			Index:       "index.html",
			Style:       "default",
			TemplateSet: "default",
		},
		Paths: PathsConfig{
			SourceDir: "~/Downloads",
			OutputDir: "~/Desktop/concrete-recommendations-shareable",
		},
		Documents: DocumentsConfig{
			Logo: "Wolf-Carports.png",
			Main: DocumentConfig{
				File:         "Concrete recommendations and leg types (2).pdf",
				Heading:      "Main Document",
				TOCLabel:     "Main Document: Concrete recommendations and leg types (2)",
				DownloadName: "Concrete-recommendations-and-leg-types.pdf",
			},
			Appendix: DocumentConfig{
				File:         "Some concrete aspects.pdf",
				Heading:      "Appendix — Some concrete aspects",
				TOCLabel:     "Appendix: Some concrete aspects",
				DownloadName: "Some-concrete-aspects.pdf",
			},
		},
		Combined: CombinedConfig{
			Path:         "download/concrete-recommendations-shareable.pdf",
			Label:        "Download Concrete Recommendations (Combined PDF)",
			DownloadName: "concrete-recommendations-shareable.pdf",
			Note:         "Includes all text, diagrams and images from both source PDFs.",
			SkipLabel:    "Skip to Appendix",
		},
		Labels: LabelsConfig{
			Home:            "Home",
			HubTOC:          "Sections in this page",
			CollectionTOC:   "Table of Contents",
			EmptyCollection: "No documents found in this section yet.",
		},
		Collections: []CollectionConfig{
			{Title: "Sentinels Training", Dir: "materials/sentinels", Output: "sentinels.html"},
			{Title: "Onboarding", Dir: "materials/onboarding", Output: "onboarding.html"},
		},
		CreateCollectionDirs: &createDirs,
		Assets:               AssetsConfig{BasePath: ""},
	}
}

// Validate checks field lengths and output names.
// Called automatically by LoadConfig, but available for configs built in code.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"site.brand", c.Site.Brand, MaxTitleLength},
		{"site.title", c.Site.Title, MaxTitleLength},
		{"site.lang", c.Site.Lang, MaxLangLength},
		{"site.index", c.Site.Index, MaxFileNameLength},
		{"site.style", c.Site.Style, MaxPathLength},
		{"site.templateSet", c.Site.TemplateSet, MaxNameLength},
		{"paths.sourceDir", c.Paths.SourceDir, MaxPathLength},
		{"paths.outputDir", c.Paths.OutputDir, MaxPathLength},
		{"documents.logo", c.Documents.Logo, MaxPathLength},
		{"combined.path", c.Combined.Path, MaxPathLength},
		{"combined.label", c.Combined.Label, MaxLabelLength},
		{"combined.downloadName", c.Combined.DownloadName, MaxFileNameLength},
		{"combined.note", c.Combined.Note, MaxTextLength},
		{"combined.skipLabel", c.Combined.SkipLabel, MaxLabelLength},
		{"labels.home", c.Labels.Home, MaxLabelLength},
		{"labels.hubTOC", c.Labels.HubTOC, MaxLabelLength},
		{"labels.collectionTOC", c.Labels.CollectionTOC, MaxLabelLength},
		{"labels.emptyCollection", c.Labels.EmptyCollection, MaxTextLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if err := validateDocument("documents.main", c.Documents.Main); err != nil {
		return err
	}
	if err := validateDocument("documents.appendix", c.Documents.Appendix); err != nil {
		return err
	}

	if c.Site.Index != "" {
		if err := validatePageName("site.index", c.Site.Index); err != nil {
			return err
		}
	}
	if c.Combined.Path != "" {
		if err := validateRelativeOutput("combined.path", c.Combined.Path, ".pdf"); err != nil {
			return err
		}
	}

	if len(c.Collections) > MaxCollections {
		return fmt.Errorf("collections: %d entries, max %d", len(c.Collections), MaxCollections)
	}
	seen := map[string]string{}
	if c.Site.Index != "" {
		seen[strings.ToLower(c.Site.Index)] = "site.index"
	}
	for i, col := range c.Collections {
		prefix := fmt.Sprintf("collections[%d]", i)
		if err := validateFieldLength(prefix+".title", col.Title, MaxTitleLength); err != nil {
			return err
		}
		if err := validateFieldLength(prefix+".dir", col.Dir, MaxPathLength); err != nil {
			return err
		}
		if err := validatePageName(prefix+".output", col.Output); err != nil {
			return err
		}
		key := strings.ToLower(col.Output)
		if other, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s and %s both write %q", ErrDuplicateOutput, other, prefix+".output", col.Output)
		}
		seen[key] = prefix + ".output"
	}

	return nil
}

func validateDocument(prefix string, d DocumentConfig) error {
	if err := validateFieldLength(prefix+".file", d.File, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength(prefix+".heading", d.Heading, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength(prefix+".tocLabel", d.TOCLabel, MaxLabelLength); err != nil {
		return err
	}
	return validateFieldLength(prefix+".downloadName", d.DownloadName, MaxFileNameLength)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validatePageName requires a bare .html file name.
func validatePageName(fieldName, name string) error {
	if len(name) > MaxFileNameLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(name), MaxFileNameLength)
	}
	if err := fileutil.CheckPlainName(name, ".html"); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidOutputName, fieldName, err)
	}
	return nil
}

// validateRelativeOutput requires a path that stays inside the output directory.
func validateRelativeOutput(fieldName, p, ext string) error {
	if err := fileutil.CheckRelativeOutput(p, ext); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidOutputName, fieldName, err)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched as <name>.yaml, .yml or .toml in standard locations.
// Values from the file overlay DefaultConfig. Returns error if the file is
// not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	format, err := codec.FormatForPath(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var loaded Config
	if err := codec.DecodeStrict(data, &loaded, format); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	cfg := DefaultConfig()
	cfg.overlay(&loaded)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// overlay copies every value set in src onto c.
// A collections list that is present but empty disables collection pages.
func (c *Config) overlay(src *Config) {
	setString(&c.Site.Brand, src.Site.Brand)
	setString(&c.Site.Title, src.Site.Title)
	setString(&c.Site.Lang, src.Site.Lang)
	setString(&c.Site.Index, src.Site.Index)
	setString(&c.Site.Style, src.Site.Style)
	setString(&c.Site.TemplateSet, src.Site.TemplateSet)

	setString(&c.Paths.SourceDir, src.Paths.SourceDir)
	setString(&c.Paths.OutputDir, src.Paths.OutputDir)

	setString(&c.Documents.Logo, src.Documents.Logo)
	overlayDocument(&c.Documents.Main, src.Documents.Main)
	overlayDocument(&c.Documents.Appendix, src.Documents.Appendix)

	setString(&c.Combined.Path, src.Combined.Path)
	setString(&c.Combined.Label, src.Combined.Label)
	setString(&c.Combined.DownloadName, src.Combined.DownloadName)
	setString(&c.Combined.Note, src.Combined.Note)
	setString(&c.Combined.SkipLabel, src.Combined.SkipLabel)

	setString(&c.Labels.Home, src.Labels.Home)
	setString(&c.Labels.HubTOC, src.Labels.HubTOC)
	setString(&c.Labels.CollectionTOC, src.Labels.CollectionTOC)
	setString(&c.Labels.EmptyCollection, src.Labels.EmptyCollection)

	if src.Collections != nil {
		c.Collections = src.Collections
	}
	if src.CreateCollectionDirs != nil {
		v := *src.CreateCollectionDirs
		c.CreateCollectionDirs = &v
	}
	setString(&c.Assets.BasePath, src.Assets.BasePath)
}

func overlayDocument(dst *DocumentConfig, src DocumentConfig) {
	setString(&dst.File, src.File)
	setString(&dst.Heading, src.Heading)
	setString(&dst.TOCLabel, src.TOCLabel)
	setString(&dst.DownloadName, src.DownloadName)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml, .toml
// Tries locations in order: current directory, <UserConfigDir>/go-pdfsite/
func resolveConfigPath(name string) (string, error) {
	extensions := codec.Extensions()
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
