package pdfsite

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/alnah/go-pdfsite/internal/pipeline"
)

// Template names executed by the Assembler.
const (
	hubTemplate        = "hub"
	collectionTemplate = "collection"
)

// MarkdownRenderer converts Markdown into an HTML fragment.
type MarkdownRenderer interface {
	RenderFragment(ctx context.Context, content string) (string, error)
}

// Assembler renders the hub and collection pages from a template set.
// Every asset is embedded as a data: URI; a rendered page that still
// references an external resource is rejected with ErrExternalResource.
type Assembler struct {
	tmpl        *template.Template
	css         string
	cssInjector pipeline.CSSInjector
	markdown    MarkdownRenderer
}

// NewAssembler parses ts and returns an Assembler that injects css into
// every page. A nil markdown renderer disables collection descriptions.
func NewAssembler(ts *TemplateSet, css string, markdown MarkdownRenderer) (*Assembler, error) {
	if ts == nil {
		return nil, fmt.Errorf("%w: nil template set", ErrIncompleteTemplateSet)
	}

	root, err := template.New(ts.Name).Parse(ts.Layout)
	if err != nil {
		return nil, fmt.Errorf("parsing layout template: %w", err)
	}
	if _, err := root.New(hubTemplate).Parse(ts.Hub); err != nil {
		return nil, fmt.Errorf("parsing hub template: %w", err)
	}
	if _, err := root.New(collectionTemplate).Parse(ts.Collection); err != nil {
		return nil, fmt.Errorf("parsing collection template: %w", err)
	}

	return &Assembler{
		tmpl:        root,
		css:         css,
		cssInjector: &pipeline.CSSInjection{},
		markdown:    markdown,
	}, nil
}

// HubAssets are the encoded files embedded in the hub page.
type HubAssets struct {
	Logo     *Asset
	Main     *Asset
	Appendix *Asset
	Combined *Asset
}

// AssembleHub renders the hub page: download actions, a two-entry table of
// contents and the main and appendix viewers.
func (a *Assembler) AssembleHub(ctx context.Context, site *Site, in HubAssets) (*Page, error) {
	if in.Logo == nil || in.Main == nil || in.Appendix == nil || in.Combined == nil {
		return nil, fmt.Errorf("%w: hub page needs logo, main, appendix and combined assets", ErrInvalidSite)
	}

	labels := site.labels()
	view := hubView{
		chromeView: newChromeView(site, in.Logo, site.Title, site.Title, site.indexName()),
		Combined: combinedView{
			URI:          template.URL(in.Combined.URI()), // #nosec G203 -- data: URI built from base64 text
			DownloadName: orBase(site.Combined.DownloadName, site.Combined.Path),
			Label:        site.Combined.Label,
		},
		SkipLabel:  site.Combined.SkipLabel,
		Note:       site.Combined.Note,
		TOCHeading: labels.HubTOC,
		Sections: []sectionView{
			newSectionView("main", site.Main.TOCLabel, site.Main.Heading, in.Main, orBase(site.Main.DownloadName, site.Main.Path)),
			newSectionView("appendix", site.Appendix.TOCLabel, site.Appendix.Heading, in.Appendix, orBase(site.Appendix.DownloadName, site.Appendix.Path)),
		},
	}

	return a.render(ctx, hubTemplate, site.indexName(), site.IndexPath(), view)
}

// AssembleCollection renders one collection page. Entries are read from the
// collection directory; zero entries render a single placeholder notice.
func (a *Assembler) AssembleCollection(ctx context.Context, site *Site, logo *Asset, c Collection) (*Page, error) {
	if logo == nil {
		return nil, fmt.Errorf("%w: collection page needs a logo asset", ErrInvalidSite)
	}

	dir := site.CollectionDir(c)
	entries, err := ScanCollection(dir)
	if err != nil {
		return nil, err
	}

	description, err := a.renderDescription(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("collection %q: %w", c.Title, err)
	}

	labels := site.labels()
	pageTitle := c.Title
	if site.Brand != "" {
		pageTitle = c.Title + " — " + site.Brand
	}

	view := collectionView{
		chromeView:  newChromeView(site, logo, pageTitle, c.Title, c.Output),
		Description: description,
		TOCHeading:  labels.CollectionTOC,
		EmptyNotice: labels.EmptyCollection,
	}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		asset, err := ReadAsset(e.Path, MIMEPDF)
		if err != nil {
			return nil, err
		}
		view.Sections = append(view.Sections, newSectionView(e.Anchor, e.Label, e.Label, asset, e.FileName))
	}

	return a.render(ctx, collectionTemplate, c.Output, filepath.Join(site.OutputDir, c.Output), view)
}

// renderDescription converts the collection README.md into trusted HTML.
// Relative images are inlined from dir.
func (a *Assembler) renderDescription(ctx context.Context, dir string) (template.HTML, error) {
	if a.markdown == nil {
		return "", nil
	}
	source, err := readDescription(dir)
	if err != nil || source == "" {
		return "", err
	}

	fragment, err := a.markdown.RenderFragment(ctx, source)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", DescriptionFile, err)
	}
	fragment, err = pipeline.InlineRelativeImages(fragment, dir)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", DescriptionFile, err)
	}
	// Renderer output is inserted unescaped.
	return template.HTML(fragment), nil // #nosec G203
}

// render executes a page template, injects the stylesheet and checks that
// the page is self-contained.
func (a *Assembler) render(ctx context.Context, name, fileName, path string, view any) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := a.tmpl.ExecuteTemplate(&buf, name, view); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateRender, fileName, err)
	}

	html := a.cssInjector.InjectCSS(ctx, buf.String(), a.css)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := pipeline.CheckSelfContained(html); err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}

	return &Page{Name: fileName, Path: path, HTML: []byte(html)}, nil
}

// chromeView holds the fields shared by every page: head and header.
type chromeView struct {
	Lang      string
	PageTitle string
	Brand     string
	Heading   string
	Logo      template.URL
	Nav       []navView
}

type navView struct {
	Href    string
	Label   string
	Current bool
}

type sectionView struct {
	ID           string
	TOCLabel     string
	Heading      string
	URI          template.URL
	DownloadName string
}

type combinedView struct {
	URI          template.URL
	DownloadName string
	Label        string
}

type hubView struct {
	chromeView
	Combined   combinedView
	SkipLabel  string
	Note       string
	TOCHeading string
	Sections   []sectionView
}

type collectionView struct {
	chromeView
	Description template.HTML
	TOCHeading  string
	EmptyNotice string
	Sections    []sectionView
}

func newChromeView(site *Site, logo *Asset, pageTitle, heading, current string) chromeView {
	links := site.NavLinks()
	nav := make([]navView, len(links))
	for i, l := range links {
		nav[i] = navView{Href: l.Href, Label: l.Label, Current: l.Href == current}
	}
	return chromeView{
		Lang:      site.lang(),
		PageTitle: pageTitle,
		Brand:     site.Brand,
		Heading:   heading,
		Logo:      template.URL(logo.URI()), // #nosec G203 -- data: URI built from base64 text
		Nav:       nav,
	}
}

func newSectionView(id, tocLabel, heading string, asset *Asset, downloadName string) sectionView {
	return sectionView{
		ID:           id,
		TOCLabel:     tocLabel,
		Heading:      heading,
		URI:          template.URL(asset.URI()), // #nosec G203 -- data: URI built from base64 text
		DownloadName: downloadName,
	}
}

// orBase returns name, or the base name of path when name is empty.
func orBase(name, path string) string {
	if name != "" {
		return name
	}
	return filepath.Base(path)
}
