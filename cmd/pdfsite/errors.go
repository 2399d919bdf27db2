package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	pdfsite "github.com/alnah/go-pdfsite"
	"github.com/alnah/go-pdfsite/internal/codec"
	"github.com/alnah/go-pdfsite/internal/config"
	"github.com/alnah/go-pdfsite/internal/fileutil"
	"github.com/alnah/go-pdfsite/internal/hints"
)

// configError keeps the requested config name for hints.
type configError struct {
	name string
	err  error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// siteError keeps the site that failed to build for hints.
type siteError struct {
	site pdfsite.Site
	err  error
}

func (e *siteError) Error() string { return e.err.Error() }
func (e *siteError) Unwrap() error { return e.err }

func withSite(err error, site pdfsite.Site) error {
	return &siteError{site: site, err: err}
}

// printError writes "error: <err>" in red, followed by hint.
func printError(w io.Writer, err error, hint string) {
	red := color.New(color.FgRed, color.Bold)
	_, _ = red.Fprint(w, "error:")
	fmt.Fprintf(w, " %v%s\n", err, hint)
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, cmd string) string {
	var ce *configError
	var se *siteError

	switch {
	case errors.Is(err, ErrUsage) && !isCommand(cmd):
		return unknownCommandHint(cmd)
	case errors.As(err, &ce) && errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(userConfigCandidates(ce.name))
	case errors.Is(err, pdfsite.ErrMissingInput) && errors.As(err, &se):
		return hints.ForMissingInput(firstMissingInput(se.site))
	case errors.Is(err, pdfsite.ErrInvalidPDF):
		return hints.ForInvalidPDF()
	case errors.Is(err, pdfsite.ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, pdfsite.ErrStyleNotFound):
		return styleHint(err)
	default:
		return ""
	}
}

// userConfigCandidates lists where a config named name may be created.
func userConfigCandidates(name string) []string {
	if fileutil.IsFilePath(name) {
		return nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, config.AppName, name+codec.Extensions()[0])}
}

// firstMissingInput returns the first required input of site that does not exist.
func firstMissingInput(site pdfsite.Site) string {
	for _, p := range site.RequiredInputs() {
		if !fileutil.FileExists(p) {
			return p
		}
	}
	return ""
}

// styleHint lists the built-in styles.
func styleHint(err error) string {
	loader, lerr := pdfsite.NewAssetLoader("")
	if lerr != nil {
		return ""
	}
	lister, ok := loader.(pdfsite.StyleLister)
	if !ok {
		return ""
	}
	return hints.ForStyleNotFound(styleName(err), lister.ListStyles())
}

// styleName extracts the quoted style name from a "loading style" error.
func styleName(err error) string {
	var name string
	if _, scanErr := fmt.Sscanf(err.Error(), "loading style %q", &name); scanErr != nil {
		return ""
	}
	return name
}
