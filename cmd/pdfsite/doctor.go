package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	pdfsite "github.com/alnah/go-pdfsite"
	"github.com/alnah/go-pdfsite/internal/fileutil"
)

// Doctor report statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// pngSignature starts every PNG file.
var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status      string           `json:"status"` // "ready", "warnings", "errors"
	Inputs      []inputInfo      `json:"inputs"`
	Collections []collectionInfo `json:"collections"`
	Output      outputInfo       `json:"output"`
	Warnings    []string         `json:"warnings,omitempty"`
	Errors      []string         `json:"errors,omitempty"`
}

// inputInfo describes one required input file.
type inputInfo struct {
	Role   string `json:"role"` // "main", "appendix", "logo"
	Path   string `json:"path"`
	Found  bool   `json:"found"`
	Valid  bool   `json:"valid"`
	Pages  int    `json:"pages,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// collectionInfo describes one collection directory.
type collectionInfo struct {
	Title   string   `json:"title"`
	Dir     string   `json:"dir"`
	Found   bool     `json:"found"`
	PDFs    int      `json:"pdfs"`
	Invalid []string `json:"invalid,omitempty"`
}

// outputInfo describes the output directory.
type outputInfo struct {
	Dir      string `json:"dir"`
	Exists   bool   `json:"exists"`
	Writable bool   `json:"writable"`
}

// runDoctorCmd checks the site inputs without writing anything and returns
// an exit code: 0 when the site can be built (warnings included), 1 otherwise.
func runDoctorCmd(args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		printError(env.Stderr, err, "")
		return exitCodeFor(err)
	}

	cfg, err := resolveConfig(flags.common, &flags.site, loadEnvConfig(env))
	if err != nil {
		printError(env.Stderr, err, hintFor(err, cmdDoctor))
		return exitCodeFor(err)
	}
	site, err := siteFromConfig(cfg)
	if err != nil {
		printError(env.Stderr, err, "")
		return exitCodeFor(err)
	}

	result := runDoctor(site)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks on site.
func runDoctor(site pdfsite.Site) *doctorResult {
	result := &doctorResult{Status: statusReady}

	if err := site.Validate(); err != nil {
		result.Errors = append(result.Errors, err.Error())
	}

	checkPDFInput(result, "main", site.MainPath())
	checkPDFInput(result, "appendix", site.AppendixPath())
	checkLogo(result, site.LogoPath())
	checkCollections(result, site)
	checkOutput(result, site.OutputDir)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkPDFInput validates a required PDF with pdfcpu and records its page count.
func checkPDFInput(result *doctorResult, role, path string) {
	info := inputInfo{Role: role, Path: path, Found: fileutil.FileExists(path)}
	defer func() { result.Inputs = append(result.Inputs, info) }()

	if !info.Found {
		info.Detail = "not found"
		result.Errors = append(result.Errors, fmt.Sprintf("%s PDF not found: %s", role, path))
		return
	}

	pages, err := pdfsite.ValidatePDFFile(path)
	if err != nil {
		info.Detail = err.Error()
		result.Errors = append(result.Errors, fmt.Sprintf("%s PDF is not readable: %v", role, err))
		return
	}
	info.Valid = true
	info.Pages = pages
}

// checkLogo requires the logo to exist. A logo embedded as PNG, including one
// without an image extension, must carry the PNG signature.
func checkLogo(result *doctorResult, path string) {
	info := inputInfo{Role: "logo", Path: path, Found: fileutil.FileExists(path)}
	defer func() { result.Inputs = append(result.Inputs, info) }()

	if !info.Found {
		info.Detail = "not found"
		result.Errors = append(result.Errors, "logo not found: "+path)
		return
	}

	if mimeType := pdfsite.LogoMIME(path); mimeType != pdfsite.MIMEPNG {
		info.Valid = true
		info.Detail = "embedded as " + mimeType
		result.Warnings = append(result.Warnings, "logo is not a PNG: "+path)
		return
	}

	head, err := readHead(path, len(pngSignature))
	if err != nil || !bytes.Equal(head, pngSignature) {
		info.Detail = "missing PNG signature"
		result.Errors = append(result.Errors, "logo is not a valid PNG: "+path)
		return
	}
	info.Valid = true
}

// checkCollections lists each collection and validates its PDFs.
// Problems here are warnings: a build still succeeds.
func checkCollections(result *doctorResult, site pdfsite.Site) {
	for _, c := range site.Collections {
		dir := site.CollectionDir(c)
		info := collectionInfo{Title: c.Title, Dir: dir, Found: fileutil.DirExists(dir)}

		if !info.Found {
			msg := fmt.Sprintf("collection %q: directory %s does not exist", c.Title, dir)
			if site.CreateCollectionDirs {
				msg += " (it will be created)"
			}
			result.Warnings = append(result.Warnings, msg)
			result.Collections = append(result.Collections, info)
			continue
		}

		entries, err := pdfsite.ScanCollection(dir)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("collection %q: %v", c.Title, err))
		}
		info.PDFs = len(entries)
		for _, e := range entries {
			if _, err := pdfsite.ValidatePDFFile(e.Path); err != nil {
				info.Invalid = append(info.Invalid, e.FileName)
			}
		}
		if len(info.Invalid) > 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("collection %q: unreadable PDFs: %s", c.Title, strings.Join(info.Invalid, ", ")))
		}
		result.Collections = append(result.Collections, info)
	}
}

// checkOutput verifies that the output directory can be written.
func checkOutput(result *doctorResult, dir string) {
	result.Output = outputInfo{Dir: dir, Exists: fileutil.DirExists(dir)}
	if err := fileutil.CheckWritableDir(dir); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("output directory %s: %v", dir, err))
		return
	}
	result.Output.Writable = true
}

func readHead(path string, n int) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 -- logo path from the site definition
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return buf[:read], nil
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "pdfsite doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Inputs")
	for _, in := range r.Inputs {
		switch {
		case !in.Found:
			fmt.Fprintf(w, "  [ERROR] %s: %s not found\n", in.Role, in.Path)
		case !in.Valid:
			fmt.Fprintf(w, "  [ERROR] %s: %s (%s)\n", in.Role, in.Path, in.Detail)
		case in.Pages > 0:
			fmt.Fprintf(w, "  [OK] %s: %s (%d pages)\n", in.Role, in.Path, in.Pages)
		default:
			fmt.Fprintf(w, "  [OK] %s: %s\n", in.Role, in.Path)
		}
	}
	fmt.Fprintln(w)

	if len(r.Collections) > 0 {
		fmt.Fprintln(w, "Collections")
		for _, c := range r.Collections {
			if !c.Found {
				fmt.Fprintf(w, "  [WARN] %s: %s missing\n", c.Title, c.Dir)
				continue
			}
			fmt.Fprintf(w, "  [OK] %s: %d PDF(s) in %s\n", c.Title, c.PDFs, c.Dir)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Output")
	if r.Output.Writable {
		fmt.Fprintf(w, "  [OK] %s: writable\n", r.Output.Dir)
	} else {
		fmt.Fprintf(w, "  [ERROR] %s: not writable\n", r.Output.Dir)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to build")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
