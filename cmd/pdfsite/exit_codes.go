package main

import (
	"errors"
	"os"

	pdfsite "github.com/alnah/go-pdfsite"
	"github.com/alnah/go-pdfsite/internal/config"
)

// Exit codes for the pdfsite CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Site built
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Missing input, write failure
	ExitPDF     = 4 // Invalid PDF, merge failure
)

// ErrUsage marks invalid command lines.
var ErrUsage = errors.New("invalid usage")

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// PDF errors (exit 4)
	if errors.Is(err, pdfsite.ErrInvalidPDF) ||
		errors.Is(err, pdfsite.ErrMergeFailed) ||
		errors.Is(err, pdfsite.ErrPageCountMismatch) {
		return ExitPDF
	}

	// I/O errors (exit 3)
	if errors.Is(err, pdfsite.ErrMissingInput) ||
		errors.Is(err, pdfsite.ErrWriteOutput) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidOutputName) ||
		errors.Is(err, config.ErrDuplicateOutput) ||
		errors.Is(err, pdfsite.ErrInvalidSite) ||
		errors.Is(err, pdfsite.ErrInvalidOutputName) ||
		errors.Is(err, pdfsite.ErrDuplicateOutput) ||
		errors.Is(err, pdfsite.ErrStyleNotFound) ||
		errors.Is(err, pdfsite.ErrTemplateSetNotFound) ||
		errors.Is(err, pdfsite.ErrIncompleteTemplateSet) ||
		errors.Is(err, pdfsite.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
