package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates Markdown conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HeadingIDPrefix starts every generated heading id, keeping them apart from
// the anchors of the page a fragment is inserted into.
const HeadingIDPrefix = "readme-"

// MarkdownRenderer converts Markdown into an HTML fragment.
type MarkdownRenderer interface {
	RenderFragment(ctx context.Context, content string) (string, error)
}

// GoldmarkRenderer renders Markdown fragments with goldmark.
// Raw HTML in the source is dropped.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkRenderer creates a GoldmarkRenderer with GFM extensions and
// inline-styled syntax highlighting.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &GoldmarkRenderer{md: md}
}

// RenderFragment converts Markdown to an HTML fragment without a document wrapper.
// Heading ids are prefixed with HeadingIDPrefix and unique within the fragment.
// Goldmark has no context support, so conversion runs in a goroutine and the
// call returns early on cancellation.
func (r *GoldmarkRenderer) RenderFragment(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		pctx := parser.NewContext(parser.WithIDs(newHeadingIDs(HeadingIDPrefix)))
		if err := r.md.Convert([]byte(content), &buf, parser.WithContext(pctx)); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}

// headingIDs implements parser.IDs with prefixed slugs.
type headingIDs struct {
	prefix string
	used   map[string]bool
}

func newHeadingIDs(prefix string) *headingIDs {
	return &headingIDs{prefix: prefix, used: map[string]bool{}}
}

// Generate slugs value to lowercase letters and digits joined by dashes.
// Repeated slugs get a numeric suffix.
func (s *headingIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(string(value)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "heading"
	}

	id := s.prefix + slug
	for i := 1; s.used[id]; i++ {
		id = fmt.Sprintf("%s%s-%d", s.prefix, slug, i)
	}
	s.used[id] = true
	return []byte(id)
}

// Put records an id set explicitly in the source.
func (s *headingIDs) Put(value []byte) {
	s.used[string(value)] = true
}
