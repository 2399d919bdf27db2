// Package pipeline holds the HTML post-processing stages of a site build.
//
// Stages:
//   - Markdown to HTML fragment conversion via Goldmark (collection descriptions)
//   - Inlining of relative images as data URIs
//   - CSS injection into rendered pages
//   - Self-containment checks over finished pages
//
// Template rendering and PDF handling live in the root pdfsite package.
package pipeline
