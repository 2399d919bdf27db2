package pdfsite

// Option configures a Builder.
type Option func(*Builder)

// builderConfig holds option values resolved by NewBuilder.
type builderConfig struct {
	assetPath   string
	styleInput  string // name, file path, or CSS content
	templateSet string
}

// WithCombiner sets the PDF combiner. Default: NewPDFCombiner().
func WithCombiner(c Combiner) Option {
	return func(b *Builder) {
		b.combiner = c
	}
}

// WithAssetLoader sets a custom asset loader for styles and templates.
// Takes precedence over WithAssetPath.
func WithAssetLoader(l AssetLoader) Option {
	return func(b *Builder) {
		b.assetLoader = l
	}
}

// WithAssetPath loads styles and templates from a directory, falling back to
// the embedded assets for anything it does not provide.
func WithAssetPath(path string) Option {
	return func(b *Builder) {
		b.cfg.assetPath = path
	}
}

// WithStyle sets the page stylesheet.
// Accepts a style name ("default", "minimal"), a CSS file path, or CSS content.
func WithStyle(style string) Option {
	return func(b *Builder) {
		b.cfg.styleInput = style
	}
}

// WithTemplateSet selects the template set by name. Default: "default".
func WithTemplateSet(name string) Option {
	return func(b *Builder) {
		b.cfg.templateSet = name
	}
}

// WithMarkdownRenderer sets the renderer for collection descriptions.
// Passing nil disables descriptions.
func WithMarkdownRenderer(r MarkdownRenderer) Option {
	return func(b *Builder) {
		b.markdown = r
		b.markdownSet = true
	}
}

// WithLogger sets the progress logger. Default: discard.
func WithLogger(l Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}
