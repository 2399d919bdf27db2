package pdfsite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/alnah/go-pdfsite/internal/fileutil"
)

// Combiner concatenates PDFs into one output file.
type Combiner interface {
	Combine(ctx context.Context, inputs []string, output string) (*CombineResult, error)
}

// PDFCombiner combines PDFs with pdfcpu.
// Every input is read and validated before the output is written.
type PDFCombiner struct{}

var disableConfigDir sync.Once

// NewPDFCombiner creates a PDFCombiner.
// The first call disables pdfcpu's user configuration directory for the process.
func NewPDFCombiner() *PDFCombiner {
	disableConfigDir.Do(api.DisableConfigDir)
	return &PDFCombiner{}
}

// newConfiguration returns a fresh pdfcpu configuration.
// pdfcpu mutates the configuration per command, so none is shared.
func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Combine writes the pages of inputs, in order, to output.
// Zero inputs returns ErrNoInputs. A single input is copied unchanged.
// Missing parent directories of output are created.
func (c *PDFCombiner) Combine(ctx context.Context, inputs []string, output string) (*CombineResult, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	contents := make([][]byte, len(inputs))
	counts := make([]int, len(inputs))
	total := 0

	for i, path := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, n, err := readPDF(path)
		if err != nil {
			return nil, err
		}
		contents[i] = data
		counts[i] = n
		total += n
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := contents[0]
	if len(inputs) > 1 {
		readers := make([]io.ReadSeeker, len(contents))
		for i, data := range contents {
			readers[i] = bytes.NewReader(data)
		}

		var buf bytes.Buffer
		if err := api.MergeRaw(readers, &buf, false, newConfiguration()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMergeFailed, err)
		}
		merged = buf.Bytes()

		got, err := api.PageCount(bytes.NewReader(merged), newConfiguration())
		if err != nil {
			return nil, fmt.Errorf("%w: reading merged output: %v", ErrMergeFailed, err)
		}
		if got != total {
			return nil, fmt.Errorf("%w: got %d pages, inputs have %d", ErrPageCountMismatch, got, total)
		}
	}

	if err := fileutil.WriteFile(output, merged); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	return &CombineResult{Output: output, Pages: total, InputPages: counts}, nil
}

// readPDF reads path and returns its content and page count.
func readPDF(path string) ([]byte, int, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- input paths come from the site definition
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, 0, fmt.Errorf("reading %s: %w", path, err)
	}

	n, err := PageCount(data)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", ErrInvalidPDF, path, err)
	}
	return data, n, nil
}

// PageCount parses data as a PDF and returns its number of pages.
func PageCount(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, errors.New("empty file")
	}
	n, err := api.PageCount(bytes.NewReader(data), newConfiguration())
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errors.New("document has no pages")
	}
	return n, nil
}

// ValidatePDFFile reports whether path is a readable PDF and returns its page count.
// A missing file returns ErrMissingInput and an unreadable one ErrInvalidPDF.
func ValidatePDFFile(path string) (int, error) {
	_, n, err := readPDF(path)
	return n, err
}
