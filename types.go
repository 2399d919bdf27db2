package pdfsite

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-pdfsite/internal/datauri"
	"github.com/alnah/go-pdfsite/internal/fileutil"
)

// DefaultIndex is the hub page file name.
const DefaultIndex = "index.html"

// Document is a source PDF shown on the hub page.
type Document struct {
	Path         string // Absolute, or relative to Site.SourceDir
	Heading      string // Section heading
	TOCLabel     string // Table of contents entry
	DownloadName string // Fallback download file name (default: base name of Path)
}

// Combined describes the combined PDF and its download button.
type Combined struct {
	Path         string // Relative to Site.OutputDir
	Label        string // Button text
	DownloadName string // Default: base name of Path
	Note         string // Text shown next to the buttons
	SkipLabel    string // "Skip to appendix" button text
}

// Collection is a directory of PDFs rendered as its own page.
type Collection struct {
	Title  string
	Dir    string // Absolute, or relative to Site.OutputDir
	Output string // Page file name, e.g. "sentinels.html"
}

// CollectionEntry is one PDF found in a collection directory.
type CollectionEntry struct {
	Path     string
	FileName string
	Anchor   string // doc1..docN, by sorted file name
	Label    string // File stem with "_" replaced by spaces
}

// Labels holds the fixed interface texts of the generated pages.
type Labels struct {
	Home            string // First navigation entry
	HubTOC          string // Hub table of contents heading
	CollectionTOC   string // Collection table of contents heading
	EmptyCollection string // Notice shown for a collection without PDFs
}

// DefaultLabels returns the English interface texts.
func DefaultLabels() Labels {
	return Labels{
		Home:            "Home",
		HubTOC:          "Sections in this page",
		CollectionTOC:   "Table of Contents",
		EmptyCollection: "No documents found in this section yet.",
	}
}

// Site describes everything one build reads and writes.
type Site struct {
	SourceDir string // Base for relative Logo and document paths
	OutputDir string // Site root; created if missing

	Brand string // Logo alt text and collection page title suffix
	Title string // Hub page title and heading
	Lang  string // <html lang>, default "en"
	Index string // Hub page file name, default "index.html"

	Logo     string // Absolute, or relative to SourceDir
	Main     Document
	Appendix Document
	Combined Combined
	Labels   Labels

	Collections []Collection

	// CreateCollectionDirs creates missing collection directories after the
	// required inputs are validated.
	CreateCollectionDirs bool
}

// Validate checks required fields and output names.
// Paths are not checked for existence here; Build does that.
func (s *Site) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"output directory", s.OutputDir},
		{"logo", s.Logo},
		{"main document", s.Main.Path},
		{"appendix document", s.Appendix.Path},
		{"combined PDF path", s.Combined.Path},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidSite, r.name)
		}
	}

	if err := fileutil.CheckRelativeOutput(s.Combined.Path, ".pdf"); err != nil {
		return fmt.Errorf("%w: combined PDF: %v", ErrInvalidOutputName, err)
	}

	index := s.indexName()
	if err := fileutil.CheckPlainName(index, ".html"); err != nil {
		return fmt.Errorf("%w: index: %v", ErrInvalidOutputName, err)
	}

	seen := map[string]bool{strings.ToLower(index): true}
	for i, c := range s.Collections {
		if strings.TrimSpace(c.Dir) == "" {
			return fmt.Errorf("%w: collection %d (%q) has no directory", ErrInvalidSite, i+1, c.Title)
		}
		if err := fileutil.CheckPlainName(c.Output, ".html"); err != nil {
			return fmt.Errorf("%w: collection %q: %v", ErrInvalidOutputName, c.Title, err)
		}
		key := strings.ToLower(c.Output)
		if seen[key] {
			return fmt.Errorf("%w: %q", ErrDuplicateOutput, c.Output)
		}
		seen[key] = true
	}

	return nil
}

// LogoPath returns the resolved logo path.
func (s *Site) LogoPath() string { return s.sourcePath(s.Logo) }

// MainPath returns the resolved main document path.
func (s *Site) MainPath() string { return s.sourcePath(s.Main.Path) }

// AppendixPath returns the resolved appendix document path.
func (s *Site) AppendixPath() string { return s.sourcePath(s.Appendix.Path) }

// CombinedPath returns where the combined PDF is written.
func (s *Site) CombinedPath() string {
	return filepath.Join(s.OutputDir, filepath.FromSlash(s.Combined.Path))
}

// IndexPath returns where the hub page is written.
func (s *Site) IndexPath() string {
	return filepath.Join(s.OutputDir, s.indexName())
}

// CollectionDir returns the resolved directory of c.
func (s *Site) CollectionDir(c Collection) string {
	if filepath.IsAbs(c.Dir) {
		return filepath.Clean(c.Dir)
	}
	return filepath.Join(s.OutputDir, filepath.FromSlash(c.Dir))
}

// RequiredInputs lists the files that must exist before anything is written,
// in the order they are checked.
func (s *Site) RequiredInputs() []string {
	return []string{s.MainPath(), s.AppendixPath(), s.LogoPath()}
}

// NavLinks returns the navigation shared by every page.
func (s *Site) NavLinks() []NavLink {
	labels := s.labels()
	links := make([]NavLink, 0, len(s.Collections)+1)
	links = append(links, NavLink{Href: s.indexName(), Label: labels.Home})
	for _, c := range s.Collections {
		links = append(links, NavLink{Href: c.Output, Label: c.Title})
	}
	return links
}

func (s *Site) sourcePath(p string) string {
	if filepath.IsAbs(p) || s.SourceDir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(s.SourceDir, p)
}

func (s *Site) indexName() string {
	if s.Index == "" {
		return DefaultIndex
	}
	return s.Index
}

func (s *Site) lang() string {
	if s.Lang == "" {
		return "en"
	}
	return s.Lang
}

// labels returns Labels with empty fields filled from DefaultLabels.
func (s *Site) labels() Labels {
	l := s.Labels
	def := DefaultLabels()
	if l.Home == "" {
		l.Home = def.Home
	}
	if l.HubTOC == "" {
		l.HubTOC = def.HubTOC
	}
	if l.CollectionTOC == "" {
		l.CollectionTOC = def.CollectionTOC
	}
	if l.EmptyCollection == "" {
		l.EmptyCollection = def.EmptyCollection
	}
	return l
}

// NavLink is one navigation entry.
type NavLink struct {
	Href  string
	Label string
}

// Asset is a file held as base64 text.
type Asset struct {
	Path string
	MIME string
	Data string // Standard base64, no line breaks
}

// URI returns the asset as a data: URI.
func (a *Asset) URI() string {
	return datauri.Format(a.MIME, a.Data)
}

// Page is a rendered HTML page.
type Page struct {
	Name string // File name relative to the output directory
	Path string // Full output path
	HTML []byte
}

// CombineResult describes a written combined PDF.
type CombineResult struct {
	Output     string
	Pages      int
	InputPages []int // Page count of each input, in order
}

// BuildResult describes the outputs of one build.
type BuildResult struct {
	Combined *CombineResult
	Pages    []Page // Hub page first, then collections in configured order
}

// IndexPage returns the hub page, or nil when the result holds no pages.
func (r *BuildResult) IndexPage() *Page {
	if r == nil || len(r.Pages) == 0 {
		return nil
	}
	return &r.Pages[0]
}
