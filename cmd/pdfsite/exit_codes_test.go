package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	pdfsite "github.com/alnah/go-pdfsite"
	"github.com/alnah/go-pdfsite/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "unknown error", err: errors.New("boom"), want: ExitGeneral},
		{name: "invalid pdf", err: fmt.Errorf("combining: %w", pdfsite.ErrInvalidPDF), want: ExitPDF},
		{name: "merge failed", err: pdfsite.ErrMergeFailed, want: ExitPDF},
		{name: "page count mismatch", err: pdfsite.ErrPageCountMismatch, want: ExitPDF},
		{name: "missing input", err: fmt.Errorf("%w: main.pdf", pdfsite.ErrMissingInput), want: ExitIO},
		{name: "write output", err: pdfsite.ErrWriteOutput, want: ExitIO},
		{name: "not exist", err: fmt.Errorf("open: %w", os.ErrNotExist), want: ExitIO},
		{name: "permission", err: os.ErrPermission, want: ExitIO},
		{name: "usage", err: fmt.Errorf("%w: bad flag", ErrUsage), want: ExitUsage},
		{name: "unsupported shell", err: ErrUnsupportedShell, want: ExitUsage},
		{name: "config not found", err: config.ErrConfigNotFound, want: ExitUsage},
		{name: "config parse", err: config.ErrConfigParse, want: ExitUsage},
		{name: "field too long", err: config.ErrFieldTooLong, want: ExitUsage},
		{name: "config output name", err: config.ErrInvalidOutputName, want: ExitUsage},
		{name: "config duplicate", err: config.ErrDuplicateOutput, want: ExitUsage},
		{name: "invalid site", err: pdfsite.ErrInvalidSite, want: ExitUsage},
		{name: "style not found", err: pdfsite.ErrStyleNotFound, want: ExitUsage},
		{name: "template set not found", err: pdfsite.ErrTemplateSetNotFound, want: ExitUsage},
		{name: "invalid asset path", err: pdfsite.ErrInvalidAssetPath, want: ExitUsage},
		{name: "wrapped in site error", err: withSite(pdfsite.ErrMissingInput, pdfsite.Site{}), want: ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
