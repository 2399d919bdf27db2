package pipeline

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-pdfsite/internal/datauri"
)

// ErrExternalResource indicates a page loads something that is not inlined.
var ErrExternalResource = errors.New("page references an external resource")

// Resource is a resource-loading attribute found in a page.
type Resource struct {
	Element string
	Attr    string
	Value   string
}

func (r Resource) String() string {
	return fmt.Sprintf("<%s %s=%q>", r.Element, r.Attr, r.Value)
}

// resourceAttrs maps elements to the attribute that makes the browser fetch something.
var resourceAttrs = map[atom.Atom]string{
	atom.Img:    "src",
	atom.Object: "data",
	atom.Embed:  "src",
	atom.Iframe: "src",
	atom.Script: "src",
	atom.Source: "src",
	atom.Audio:  "src",
	atom.Video:  "src",
	atom.Link:   "href",
	atom.Input:  "src",
}

// FindExternalResources returns every resource reference that is not a data: URI.
func FindExternalResources(content string) ([]Resource, error) {
	doc, _, err := parseHTML(content)
	if err != nil {
		return nil, err
	}

	var found []Resource
	walk(doc, func(n *html.Node) {
		attrName, ok := resourceAttrs[n.DataAtom]
		if !ok {
			return
		}
		if n.DataAtom == atom.Link && !isFetchingLink(n) {
			return
		}
		val, ok := attr(n, attrName)
		if !ok || strings.TrimSpace(val) == "" || datauri.IsDataURI(val) {
			return
		}
		found = append(found, Resource{Element: n.Data, Attr: attrName, Value: val})
	})
	return found, nil
}

// CheckSelfContained fails with ErrExternalResource listing the first offending reference.
func CheckSelfContained(content string) error {
	found, err := FindExternalResources(content)
	if err != nil {
		return fmt.Errorf("parsing page: %w", err)
	}
	if len(found) > 0 {
		return fmt.Errorf("%w: %s (%d total)", ErrExternalResource, found[0], len(found))
	}
	return nil
}

// InlineRelativeImages replaces relative img[src] paths with data URIs read
// from sourceDir. Paths escaping sourceDir, URLs and anchors are left as-is;
// a later self-containment check reports anything still external.
func InlineRelativeImages(fragment, sourceDir string) (string, error) {
	if sourceDir == "" {
		return fragment, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	doc, isFragment, err := parseHTML(fragment)
	if err != nil {
		return "", err
	}

	var inlineErr error
	walk(doc, func(n *html.Node) {
		if inlineErr != nil || n.DataAtom != atom.Img {
			return
		}
		for i, a := range n.Attr {
			if a.Key != "src" || !isRelativePath(a.Val) {
				continue
			}
			rel, err := localPath(a.Val)
			if err != nil {
				inlineErr = fmt.Errorf("inlining image %q: %w", a.Val, err)
				return
			}
			if rel == "" {
				continue
			}
			absPath := filepath.Join(absSourceDir, filepath.FromSlash(rel))
			if !isPathUnderDir(absPath, absSourceDir) {
				continue
			}
			uri, err := fileDataURI(absPath)
			if err != nil {
				inlineErr = fmt.Errorf("inlining image %q: %w", a.Val, err)
				return
			}
			n.Attr[i].Val = uri
		}
	})
	if inlineErr != nil {
		return "", inlineErr
	}

	return renderHTML(doc, isFragment)
}

// localPath strips the query and fragment from a relative URL and decodes
// its percent escapes.
func localPath(ref string) (string, error) {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	return url.PathUnescape(ref)
}

func fileDataURI(path string) (string, error) {
	mimeType, err := datauri.MIMEForPath(path)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(path); err != nil {
		return "", err
	} else if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file", path)
	}
	payload, err := datauri.EncodeFile(path)
	if err != nil {
		return "", err
	}
	return datauri.Format(mimeType, payload), nil
}

// parseHTML parses full documents and fragments alike.
// Fragments are wrapped in a document node for uniform traversal.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders a tree back to text. Fragments render their children only.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if !isFragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func walk(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// isFetchingLink reports whether a link rel makes the browser load its href.
func isFetchingLink(n *html.Node) bool {
	rel, _ := attr(n, "rel")
	for _, token := range strings.Fields(strings.ToLower(rel)) {
		if token == "stylesheet" || token == "icon" || token == "preload" {
			return true
		}
	}
	return false
}

// isRelativePath reports whether a reference points at a local relative file.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	if strings.Contains(path, "://") || datauri.IsDataURI(path) {
		return false
	}
	if strings.HasPrefix(strings.ToLower(path), "mailto:") {
		return false
	}
	return !filepath.IsAbs(path) && !strings.HasPrefix(path, "/")
}

// isPathUnderDir checks that absPath does not escape dir.
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}
