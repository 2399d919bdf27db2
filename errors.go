package pdfsite

import (
	"errors"

	"github.com/alnah/go-pdfsite/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Input errors. Nothing is written when one of these is returned.
	ErrMissingInput = errors.New("required input not found")
	ErrInvalidPDF   = errors.New("invalid PDF")
	ErrNoInputs     = errors.New("no input PDFs")

	// Combine errors.
	ErrMergeFailed       = errors.New("merging PDFs failed")
	ErrPageCountMismatch = errors.New("combined page count does not match inputs")

	// Output errors.
	ErrWriteOutput      = errors.New("writing output failed")
	ErrExternalResource = pipeline.ErrExternalResource
	ErrTemplateRender   = errors.New("page template rendering failed")

	// Site validation errors.
	ErrInvalidSite       = errors.New("invalid site")
	ErrInvalidOutputName = errors.New("invalid output name")
	ErrDuplicateOutput   = errors.New("duplicate output name")

	// Asset loading errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)
