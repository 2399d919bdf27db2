package pdfsite

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DescriptionFile is the optional Markdown introduction of a collection.
const DescriptionFile = "README.md"

// ScanCollection lists the *.pdf regular files of dir, sorted by file name.
// The extension match is case-sensitive. A missing directory is an empty
// collection, not an error.
func ScanCollection(dir string) ([]CollectionEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading collection %s: %w", dir, err)
	}

	var names []string
	for _, de := range dirEntries {
		name := de.Name()
		if !strings.HasSuffix(name, ".pdf") {
			continue
		}
		// Stat follows symlinks, so a link to a regular file counts.
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]CollectionEntry, len(names))
	for i, name := range names {
		entries[i] = CollectionEntry{
			Path:     filepath.Join(dir, name),
			FileName: name,
			Anchor:   "doc" + strconv.Itoa(i+1),
			Label:    LabelFromFileName(name),
		}
	}
	return entries, nil
}

// LabelFromFileName derives a display label: the file stem with underscores
// replaced by spaces, in Unicode NFC.
func LabelFromFileName(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" {
		stem = name
	}
	return norm.NFC.String(strings.ReplaceAll(stem, "_", " "))
}

// readDescription returns the collection's README.md, or "" when absent.
func readDescription(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, DescriptionFile)) // #nosec G304 -- collection dir from site definition
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", DescriptionFile, err)
	}
	return string(data), nil
}
