// Package datauri encodes binary content as RFC 2397 base64 data URIs.
package datauri

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// MIME types embedded by the site.
const (
	MIMEPDF = "application/pdf"
	MIMEPNG = "image/png"
)

// ErrUnknownMIME is returned when a file extension has no known media type.
var ErrUnknownMIME = errors.New("unknown media type")

// Encode streams r to w as standard base64 without line breaks.
// Returns the number of source bytes consumed.
func Encode(w io.Writer, r io.Reader) (int64, error) {
	enc := base64.NewEncoder(base64.StdEncoding, w)
	n, err := io.Copy(enc, r)
	if err != nil {
		_ = enc.Close()
		return n, err
	}
	// Close flushes the final partial block and its padding.
	if err := enc.Close(); err != nil {
		return n, err
	}
	return n, nil
}

// EncodeFile reads path and returns its base64 text.
func EncodeFile(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- caller-provided asset path
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	if info, err := f.Stat(); err == nil {
		sb.Grow(base64.StdEncoding.EncodedLen(int(info.Size())))
	}
	if _, err := Encode(&sb, f); err != nil {
		return "", fmt.Errorf("encoding %s: %w", path, err)
	}
	return sb.String(), nil
}

// Format builds "data:<mime>;base64,<payload>".
func Format(mimeType, payload string) string {
	return "data:" + mimeType + ";base64," + payload
}

// MIMEForPath returns the media type for a file extension, without parameters.
func MIMEForPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return MIMEPDF, nil
	case ".png":
		return MIMEPNG, nil
	}
	t := mime.TypeByExtension(ext)
	if t == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownMIME, ext)
	}
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t, nil
}

// IsDataURI reports whether s is a data: URI (case-insensitive scheme).
func IsDataURI(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) >= 5 && strings.EqualFold(s[:5], "data:")
}
