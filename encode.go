package pdfsite

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/alnah/go-pdfsite/internal/datauri"
)

// MIME types of embedded assets.
const (
	MIMEPDF = datauri.MIMEPDF
	MIMEPNG = datauri.MIMEPNG
)

// EncodeBase64 streams r to w as standard base64 without line breaks.
// Returns the number of bytes read from r.
func EncodeBase64(w io.Writer, r io.Reader) (int64, error) {
	return datauri.Encode(w, r)
}

// LogoMIME returns the media type a logo is embedded with: the image type of
// its extension, or MIMEPNG when the extension is missing or not an image.
func LogoMIME(path string) string {
	t, err := datauri.MIMEForPath(path)
	if err != nil || !strings.HasPrefix(t, "image/") {
		return MIMEPNG
	}
	return t
}

// ReadAsset reads path and encodes it as base64.
// An empty mimeType is derived from the file extension.
// A missing file returns ErrMissingInput.
func ReadAsset(path, mimeType string) (*Asset, error) {
	if mimeType == "" {
		t, err := datauri.MIMEForPath(path)
		if err != nil {
			return nil, fmt.Errorf("reading asset %s: %w", path, err)
		}
		mimeType = t
	}

	data, err := datauri.EncodeFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, fmt.Errorf("reading asset %s: %w", path, err)
	}

	return &Asset{Path: path, MIME: mimeType, Data: data}, nil
}
