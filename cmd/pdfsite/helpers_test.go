package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testPDF returns a minimal valid PDF with the given number of letter pages.
func testPDF(pages int) []byte {
	var buf bytes.Buffer
	var offsets []int

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj("<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))
	for range pages {
		obj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

func writeTestFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// testSite holds the directories of a site fixture.
type testSite struct {
	sourceDir string
	outputDir string
	config    string
}

// newTestSiteFixture writes a logo, a 3-page main PDF and a 2-page appendix
// plus a YAML config pointing at them.
func newTestSiteFixture(t *testing.T) testSite {
	t.Helper()

	root := t.TempDir()
	ts := testSite{
		sourceDir: filepath.Join(root, "src"),
		outputDir: filepath.Join(root, "site"),
		config:    filepath.Join(root, "site.yaml"),
	}

	writeTestFile(t, filepath.Join(ts.sourceDir, "logo.png"), []byte("\x89PNG\r\n\x1a\nlogo"))
	writeTestFile(t, filepath.Join(ts.sourceDir, "main.pdf"), testPDF(3))
	writeTestFile(t, filepath.Join(ts.sourceDir, "appendix.pdf"), testPDF(2))

	cfg := fmt.Sprintf(`site:
  brand: Test Brand
  title: Test Hub
paths:
  sourceDir: %q
  outputDir: %q
documents:
  logo: logo.png
  main:
    file: main.pdf
  appendix:
    file: appendix.pdf
combined:
  path: download/combined.pdf
collections:
  - title: Sentinels
    dir: materials/sentinels
    output: sentinels.html
`, ts.sourceDir, ts.outputDir)
	writeTestFile(t, ts.config, []byte(cfg))

	return ts
}

// newTestEnv returns an Environment writing to buffers with an empty process environment.
func newTestEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return env, &stdout, &stderr
}
