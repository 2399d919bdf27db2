// Package pdfsite builds a static, shareable website around a set of PDFs.
//
// # Quick Start
//
// Describe the site, create a builder, and build:
//
//	b, err := pdfsite.NewBuilder()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := b.Build(ctx, pdfsite.Site{
//	    SourceDir: "/path/to/sources",
//	    OutputDir: "/path/to/site",
//	    Brand:     "Acme",
//	    Title:     "Acme Training Hub",
//	    Logo:      "logo.png",
//	    Main:      pdfsite.Document{Path: "main.pdf", Heading: "Main Document"},
//	    Appendix:  pdfsite.Document{Path: "appendix.pdf", Heading: "Appendix"},
//	    Combined:  pdfsite.Combined{Path: "download/combined.pdf"},
//	    Collections: []pdfsite.Collection{
//	        {Title: "Onboarding", Dir: "materials/onboarding", Output: "onboarding.html"},
//	    },
//	    CreateCollectionDirs: true,
//	})
//
// Every generated page is self-contained: the logo and each PDF are embedded
// as base64 data: URIs, so the output directory works as a plain folder
// without a server.
//
// # Build Steps
//
//  1. Site validation (required fields, safe output names)
//  2. Required input check (main, appendix, logo); nothing is written on failure
//  3. Creation of missing collection directories (optional)
//  4. PDF combination via pdfcpu (main pages, then appendix pages)
//  5. Hub and collection page rendering via html/template
//  6. Self-containment check of every page, then writing
//
// # Collections
//
// A collection page lists the *.pdf files of its directory in file name
// order, with anchors doc1..docN and labels derived from the file names
// ("safety_brief.pdf" becomes "safety brief"). An optional README.md in the
// directory is rendered above the table of contents.
//
// # Configuration
//
// Use functional options to customize the builder:
//
//	b, err := pdfsite.NewBuilder(
//	    pdfsite.WithStyle("minimal"),
//	    pdfsite.WithAssetPath("/path/to/custom/assets"),
//	    pdfsite.WithLogger(logger),
//	)
//
// # Error Handling
//
// Errors wrap the sentinels in errors.go; test them with errors.Is:
//
//	if errors.Is(err, pdfsite.ErrMissingInput) {
//	    // a source file is missing; nothing was written
//	}
package pdfsite
