package pdfsite

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/alnah/go-pdfsite/internal/pipeline"
)

// newTestAssembler returns an Assembler over the embedded default assets.
func newTestAssembler(t *testing.T, markdown MarkdownRenderer) *Assembler {
	t.Helper()
	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}
	ts, err := loader.LoadTemplateSet(DefaultTemplateSet)
	if err != nil {
		t.Fatalf("LoadTemplateSet() error = %v", err)
	}
	css, err := loader.LoadStyle(DefaultStyle)
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	a, err := NewAssembler(ts, css, markdown)
	if err != nil {
		t.Fatalf("NewAssembler() error = %v", err)
	}
	return a
}

func testAsset(mime, data string) *Asset {
	return &Asset{MIME: mime, Data: data}
}

func testHubAssets() HubAssets {
	return HubAssets{
		Logo:     testAsset(MIMEPNG, "TE9HTw=="),
		Main:     testAsset(MIMEPDF, "TUFJTg=="),
		Appendix: testAsset(MIMEPDF, "QVBQWA=="),
		Combined: testAsset(MIMEPDF, "Q09NQg=="),
	}
}

func parsePage(t *testing.T, p *Page) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(p.HTML))
	if err != nil {
		t.Fatalf("parsing page: %v", err)
	}
	return doc
}

// ---------------------------------------------------------------------------
// TestAssembleHub - Hub page structure
// ---------------------------------------------------------------------------

func TestAssembleHub(t *testing.T) {
	t.Parallel()

	site := newTestSite(t)
	a := newTestAssembler(t, nil)

	page, err := a.AssembleHub(context.Background(), &site, testHubAssets())
	if err != nil {
		t.Fatalf("AssembleHub() error = %v", err)
	}
	if page.Name != "index.html" || page.Path != site.IndexPath() {
		t.Errorf("page = %q at %q", page.Name, page.Path)
	}

	doc := parsePage(t, page)

	if got := doc.Find("title").Text(); got != site.Title {
		t.Errorf("title = %q, want %q", got, site.Title)
	}
	if got := doc.Find("header h1").Text(); got != site.Title {
		t.Errorf("h1 = %q, want %q", got, site.Title)
	}
	if got, _ := doc.Find("header img").Attr("src"); got != "data:image/png;base64,TE9HTw==" {
		t.Errorf("logo src = %q", got)
	}
	if got, _ := doc.Find("header img").Attr("alt"); got != "Wolf Carports" {
		t.Errorf("logo alt = %q", got)
	}

	download := doc.Find(".actions a.btn").First()
	if href, _ := download.Attr("href"); href != "data:application/pdf;base64,Q09NQg==" {
		t.Errorf("combined href = %q", href)
	}
	if name, _ := download.Attr("download"); name != "combined.pdf" {
		t.Errorf("combined download = %q, want base name of the combined path", name)
	}
	if href, _ := doc.Find(".actions a.secondary").Attr("href"); href != "#appendix" {
		t.Errorf("skip link href = %q, want #appendix", href)
	}

	var tocHrefs []string
	doc.Find(".toc li a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		tocHrefs = append(tocHrefs, href)
	})
	if strings.Join(tocHrefs, ",") != "#main,#appendix" {
		t.Errorf("toc hrefs = %v, want [#main #appendix]", tocHrefs)
	}

	mainObj := doc.Find("section#main object")
	if data, _ := mainObj.Attr("data"); data != "data:application/pdf;base64,TUFJTg==" {
		t.Errorf("main object data = %q", data)
	}
	if typ, _ := mainObj.Attr("type"); typ != "application/pdf" {
		t.Errorf("main object type = %q", typ)
	}
	if name, _ := mainObj.Find("a").Attr("download"); name != "Main.pdf" {
		t.Errorf("main fallback download = %q, want Main.pdf", name)
	}
	if name, _ := doc.Find("section#appendix object a").Attr("download"); name != "appendix.pdf" {
		t.Errorf("appendix fallback download = %q, want appendix.pdf", name)
	}
	if got := doc.Find("section#appendix h2").Text(); got != "Appendix — extras" {
		t.Errorf("appendix heading = %q", got)
	}

	if cur, _ := doc.Find(`nav a[aria-current="page"]`).Attr("href"); cur != "index.html" {
		t.Errorf("current nav = %q, want index.html", cur)
	}
	if n := doc.Find("nav a").Length(); n != 3 {
		t.Errorf("nav links = %d, want 3", n)
	}
	if doc.Find("head style").Length() != 1 {
		t.Error("stylesheet should be injected into <head>")
	}
}

func TestAssembleHub_EscapesText(t *testing.T) {
	t.Parallel()

	site := newTestSite(t)
	site.Title = `Tom & Jerry's <Hub>`
	site.Main.TOCLabel = `<script>alert("x")</script>`
	site.Main.DownloadName = `a"b.pdf`

	page, err := newTestAssembler(t, nil).AssembleHub(context.Background(), &site, testHubAssets())
	if err != nil {
		t.Fatalf("AssembleHub() error = %v", err)
	}

	html := string(page.HTML)
	if strings.Contains(html, "<script>") || strings.Contains(html, "<Hub>") {
		t.Error("labels must be HTML-escaped")
	}

	doc := parsePage(t, page)
	if got := doc.Find("header h1").Text(); got != site.Title {
		t.Errorf("h1 text = %q, want %q", got, site.Title)
	}
	if got := doc.Find(".toc li a").First().Text(); got != site.Main.TOCLabel {
		t.Errorf("toc text = %q, want %q", got, site.Main.TOCLabel)
	}
	if got, _ := doc.Find("section#main object a").Attr("download"); got != site.Main.DownloadName {
		t.Errorf("download attr = %q, want %q", got, site.Main.DownloadName)
	}
}

func TestAssembleHub_MissingAsset(t *testing.T) {
	t.Parallel()

	site := newTestSite(t)
	in := testHubAssets()
	in.Combined = nil

	if _, err := newTestAssembler(t, nil).AssembleHub(context.Background(), &site, in); !errors.Is(err, ErrInvalidSite) {
		t.Errorf("AssembleHub() error = %v, want ErrInvalidSite", err)
	}
}

// ---------------------------------------------------------------------------
// TestAssembleCollection - Collection page structure
// ---------------------------------------------------------------------------

func TestAssembleCollection_Entries(t *testing.T) {
	t.Parallel()

	site := newTestSite(t)
	col := site.Collections[0]
	dir := site.CollectionDir(col)
	writeTestPDF(t, filepath.Join(dir, "safety_brief.pdf"), 300)
	writeTestPDF(t, filepath.Join(dir, "intro.pdf"), 300)

	page, err := newTestAssembler(t, nil).AssembleCollection(context.Background(), &site, testHubAssets().Logo, col)
	if err != nil {
		t.Fatalf("AssembleCollection() error = %v", err)
	}
	if page.Name != "sentinels.html" {
		t.Errorf("page name = %q", page.Name)
	}

	doc := parsePage(t, page)

	if got := doc.Find("title").Text(); got != "Sentinels Training — Wolf Carports" {
		t.Errorf("title = %q", got)
	}
	if got := doc.Find("header h1").Text(); got != "Sentinels Training" {
		t.Errorf("h1 = %q", got)
	}
	if got := doc.Find(".toc strong").Text(); got != "Table of Contents" {
		t.Errorf("toc heading = %q", got)
	}

	var ids, headings, downloads []string
	doc.Find("main section[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		ids = append(ids, id)
		headings = append(headings, s.Find("h2").Text())
		dl, _ := s.Find("object a").Attr("download")
		downloads = append(downloads, dl)
	})

	if strings.Join(ids, ",") != "doc1,doc2" {
		t.Errorf("section ids = %v, want [doc1 doc2]", ids)
	}
	if strings.Join(headings, ",") != "intro,safety brief" {
		t.Errorf("headings = %v, want [intro safety brief]", headings)
	}
	if strings.Join(downloads, ",") != "intro.pdf,safety_brief.pdf" {
		t.Errorf("downloads = %v", downloads)
	}
	if n := doc.Find(".placeholder").Length(); n != 0 {
		t.Errorf("placeholder count = %d, want 0", n)
	}
	if cur, _ := doc.Find(`nav a[aria-current="page"]`).Attr("href"); cur != "sentinels.html" {
		t.Errorf("current nav = %q, want sentinels.html", cur)
	}
}

func TestAssembleCollection_EmptyShowsPlaceholder(t *testing.T) {
	t.Parallel()

	site := newTestSite(t)
	col := site.Collections[1]

	page, err := newTestAssembler(t, nil).AssembleCollection(context.Background(), &site, testHubAssets().Logo, col)
	if err != nil {
		t.Fatalf("AssembleCollection() error = %v", err)
	}

	doc := parsePage(t, page)
	placeholders := doc.Find(".placeholder")
	if placeholders.Length() != 1 {
		t.Fatalf("placeholder count = %d, want 1", placeholders.Length())
	}
	if got := strings.TrimSpace(placeholders.Text()); got != "No documents found in this section yet." {
		t.Errorf("placeholder = %q", got)
	}
	if n := doc.Find("main section[id]").Length(); n != 0 {
		t.Errorf("sections = %d, want 0", n)
	}
	if n := doc.Find(".toc li").Length(); n != 0 {
		t.Errorf("toc entries = %d, want 0", n)
	}
}

func TestAssembleCollection_EscapesFileNames(t *testing.T) {
	t.Parallel()

	site := newTestSite(t)
	col := site.Collections[0]
	name := `Q&A_<draft>.pdf`
	writeTestPDF(t, filepath.Join(site.CollectionDir(col), name), 300)

	page, err := newTestAssembler(t, nil).AssembleCollection(context.Background(), &site, testHubAssets().Logo, col)
	if err != nil {
		t.Fatalf("AssembleCollection() error = %v", err)
	}
	if strings.Contains(string(page.HTML), "<draft>") {
		t.Error("file name must be escaped")
	}

	doc := parsePage(t, page)
	if got := doc.Find("section#doc1 h2").Text(); got != "Q&A <draft>" {
		t.Errorf("heading = %q, want %q", got, "Q&A <draft>")
	}
}

// ---------------------------------------------------------------------------
// TestAssembleCollection_Description - README.md rendering
// ---------------------------------------------------------------------------

type stubMarkdown struct {
	html string
	err  error
}

func (s stubMarkdown) RenderFragment(context.Context, string) (string, error) {
	return s.html, s.err
}

func TestAssembleCollection_Description(t *testing.T) {
	t.Parallel()

	site := newTestSite(t)
	col := site.Collections[0]
	dir := site.CollectionDir(col)
	writeFile(t, filepath.Join(dir, DescriptionFile), []byte("# ignored by stub"))
	writeFile(t, filepath.Join(dir, "diagram.png"), []byte("\x89PNG\r\n\x1a\n"))

	md := stubMarkdown{html: `<p>Read <strong>first</strong>.</p><img src="diagram.png" alt="d">`}
	page, err := newTestAssembler(t, md).AssembleCollection(context.Background(), &site, testHubAssets().Logo, col)
	if err != nil {
		t.Fatalf("AssembleCollection() error = %v", err)
	}

	doc := parsePage(t, page)
	desc := doc.Find("section.description")
	if desc.Find("strong").Text() != "first" {
		t.Errorf("description not rendered as HTML: %q", desc.Text())
	}
	if src, _ := desc.Find("img").Attr("src"); !strings.HasPrefix(src, "data:image/png;base64,") {
		t.Errorf("description image src = %q, want inlined data URI", src)
	}
}

func TestAssembleCollection_DescriptionExternalImageRejected(t *testing.T) {
	t.Parallel()

	site := newTestSite(t)
	col := site.Collections[0]
	writeFile(t, filepath.Join(site.CollectionDir(col), DescriptionFile), []byte("x"))

	md := stubMarkdown{html: `<img src="https://example.com/a.png">`}
	_, err := newTestAssembler(t, md).AssembleCollection(context.Background(), &site, testHubAssets().Logo, col)
	if !errors.Is(err, ErrExternalResource) {
		t.Errorf("AssembleCollection() error = %v, want ErrExternalResource", err)
	}
}

func TestAssembleCollection_NoDescriptionWithoutReadme(t *testing.T) {
	t.Parallel()

	site := newTestSite(t)
	md := stubMarkdown{html: "<p>should not appear</p>"}

	page, err := newTestAssembler(t, md).AssembleCollection(context.Background(), &site, testHubAssets().Logo, site.Collections[0])
	if err != nil {
		t.Fatalf("AssembleCollection() error = %v", err)
	}
	if parsePage(t, page).Find("section.description").Length() != 0 {
		t.Error("description section rendered without README.md")
	}
}

// ---------------------------------------------------------------------------
// TestNewAssembler / TestRender - Template errors
// ---------------------------------------------------------------------------

func TestNewAssembler_InvalidTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ts   *TemplateSet
	}{
		{name: "nil set", ts: nil},
		{name: "bad layout", ts: NewTemplateSet("x", "{{define", "", "")},
		{name: "bad hub", ts: NewTemplateSet("x", "", "{{.Missing", "")},
		{name: "bad collection", ts: NewTemplateSet("x", "", "", "{{end}}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewAssembler(tt.ts, "", nil); err == nil {
				t.Error("NewAssembler() error = nil, want error")
			}
		})
	}
}

func TestAssembleHub_TemplateWithExternalResource(t *testing.T) {
	t.Parallel()

	ts := NewTemplateSet("ext", "",
		`<html><head></head><body><img src="https://cdn.example.com/logo.png"></body></html>`,
		`<html></html>`)
	a, err := NewAssembler(ts, "", nil)
	if err != nil {
		t.Fatalf("NewAssembler() error = %v", err)
	}

	site := newTestSite(t)
	_, err = a.AssembleHub(context.Background(), &site, testHubAssets())
	if !errors.Is(err, ErrExternalResource) {
		t.Fatalf("AssembleHub() error = %v, want ErrExternalResource", err)
	}
	if !errors.Is(err, pipeline.ErrExternalResource) {
		t.Errorf("AssembleHub() error = %v, want the pipeline sentinel in its chain", err)
	}
	if n := strings.Count(err.Error(), ErrExternalResource.Error()); n != 1 {
		t.Errorf("error %q repeats the sentinel text %d times", err, n)
	}
	if !strings.Contains(err.Error(), "https://cdn.example.com/logo.png") {
		t.Errorf("error %q should name the resource", err)
	}
}

func TestAssembleHub_TemplateExecutionError(t *testing.T) {
	t.Parallel()

	ts := NewTemplateSet("broken", "", `{{template "missing" .}}`, `<html></html>`)
	a, err := NewAssembler(ts, "", nil)
	if err != nil {
		t.Fatalf("NewAssembler() error = %v", err)
	}

	site := newTestSite(t)
	if _, err := a.AssembleHub(context.Background(), &site, testHubAssets()); !errors.Is(err, ErrTemplateRender) {
		t.Errorf("AssembleHub() error = %v, want ErrTemplateRender", err)
	}
}
