package pdfsite

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-pdfsite/internal/fileutil"
	"github.com/alnah/go-pdfsite/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ Combiner                  = (*PDFCombiner)(nil)
	_ MarkdownRenderer          = (*pipeline.GoldmarkRenderer)(nil)
	_ pipeline.MarkdownRenderer = MarkdownRenderer(nil)
	_ pipeline.CSSInjector      = (*pipeline.CSSInjection)(nil)
)

// Builder runs a complete site build: validate inputs, combine the hub PDFs,
// render every page and write the results.
// Create with NewBuilder; a Builder is safe to reuse for several sites.
type Builder struct {
	cfg         builderConfig
	combiner    Combiner
	assetLoader AssetLoader
	markdown    MarkdownRenderer
	markdownSet bool
	logger      Logger
	assembler   *Assembler
}

// NewBuilder creates a Builder with default configuration.
// Use options to customize behavior (e.g., WithStyle, WithAssetPath).
// Returns error if asset loading or template parsing fails.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		cfg:    builderConfig{templateSet: DefaultTemplateSet},
		logger: nopLogger{},
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.combiner == nil {
		b.combiner = NewPDFCombiner()
	}
	if !b.markdownSet {
		b.markdown = pipeline.NewGoldmarkRenderer()
	}

	if b.assetLoader == nil {
		loader, err := NewAssetLoader(b.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		b.assetLoader = loader
	}

	css, err := b.resolveStyle()
	if err != nil {
		return nil, err
	}

	templateSet := b.cfg.templateSet
	if templateSet == "" {
		templateSet = DefaultTemplateSet
	}
	ts, err := b.assetLoader.LoadTemplateSet(templateSet)
	if err != nil {
		return nil, fmt.Errorf("loading template set %q: %w", templateSet, err)
	}

	b.assembler, err = NewAssembler(ts, css, b.markdown)
	if err != nil {
		return nil, err
	}

	return b, nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
func (b *Builder) resolveStyle() (string, error) {
	input := b.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading style file %q: %w", input, err)
		}
		return string(content), nil
	}

	if strings.Contains(input, "{") {
		return input, nil
	}

	css, err := b.assetLoader.LoadStyle(input)
	if err != nil {
		return "", fmt.Errorf("loading style %q: %w", input, err)
	}
	return css, nil
}

// Build writes the combined PDF and every page of site.
//
// Required inputs are checked first: when one is missing, ErrMissingInput
// names it and nothing is written. The logo is read and every collection page
// is rendered before the combined PDF is written, so only the collection
// directories can exist after a failure in those steps. Pages are written
// after all of them passed the self-containment check. Existing outputs are
// overwritten; a failure part-way through leaves earlier outputs in place.
func (b *Builder) Build(ctx context.Context, site Site) (*BuildResult, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}

	for _, p := range site.RequiredInputs() {
		if !fileutil.FileExists(p) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, p)
		}
	}

	if site.CreateCollectionDirs {
		for _, c := range site.Collections {
			dir := site.CollectionDir(c)
			if err := os.MkdirAll(dir, fileutil.DirPermissions); err != nil {
				return nil, fmt.Errorf("%w: creating collection directory %s: %v", ErrWriteOutput, dir, err)
			}
		}
	}

	logo, err := ReadAsset(site.LogoPath(), LogoMIME(site.LogoPath()))
	if err != nil {
		return nil, err
	}

	collections, err := b.assembleCollections(ctx, &site, logo)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.logger.Debugf("combining %s and %s", site.MainPath(), site.AppendixPath())
	combined, err := b.combiner.Combine(ctx, []string{site.MainPath(), site.AppendixPath()}, site.CombinedPath())
	if err != nil {
		return nil, fmt.Errorf("combining PDFs: %w", err)
	}
	b.logger.Infof("combined PDF: %s (%d pages)", combined.Output, combined.Pages)

	hub, err := b.assembleHub(ctx, &site, logo, combined.Output)
	if err != nil {
		return nil, err
	}
	pages := append([]Page{*hub}, collections...)

	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := fileutil.WriteFile(p.Path, p.HTML); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		b.logger.Infof("wrote %s (%d bytes)", p.Path, len(p.HTML))
	}

	return &BuildResult{Combined: combined, Pages: pages}, nil
}

// assembleHub encodes the hub documents and renders the hub page.
func (b *Builder) assembleHub(ctx context.Context, site *Site, logo *Asset, combinedPath string) (*Page, error) {
	mainDoc, err := ReadAsset(site.MainPath(), MIMEPDF)
	if err != nil {
		return nil, err
	}
	appendix, err := ReadAsset(site.AppendixPath(), MIMEPDF)
	if err != nil {
		return nil, err
	}
	combined, err := ReadAsset(combinedPath, MIMEPDF)
	if err != nil {
		return nil, err
	}

	hub, err := b.assembler.AssembleHub(ctx, site, HubAssets{
		Logo:     logo,
		Main:     mainDoc,
		Appendix: appendix,
		Combined: combined,
	})
	if err != nil {
		return nil, fmt.Errorf("assembling %s: %w", site.indexName(), err)
	}
	return hub, nil
}

// assembleCollections renders one page per collection in site order.
func (b *Builder) assembleCollections(ctx context.Context, site *Site, logo *Asset) ([]Page, error) {
	pages := make([]Page, 0, len(site.Collections))
	for _, c := range site.Collections {
		b.logger.Debugf("scanning collection %q in %s", c.Title, site.CollectionDir(c))
		page, err := b.assembler.AssembleCollection(ctx, site, logo, c)
		if err != nil {
			return nil, fmt.Errorf("assembling %s: %w", c.Output, err)
		}
		pages = append(pages, *page)
	}
	return pages, nil
}
