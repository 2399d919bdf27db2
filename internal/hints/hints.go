// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ForMissingInput returns hints for a required input file that does not exist.
// Suggests a close file name from the same directory when one exists.
func ForMissingInput(path string) string {
	var hints []string

	if suggestion := SimilarFile(path); suggestion != "" {
		hints = append(hints, "did you mean "+suggestion+"?")
	}
	hints = append(hints, "use --source-dir or PDFSITE_SOURCE_DIR to point at the folder holding the source files")

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/site.yaml"

	sep := string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, sep+"go-pdfsite"+sep) {
			hint += " or create " + p
			break
		}
	}
	hint += "; run 'pdfsite config' to print the defaults"

	return format(hint)
}

// ForOutputDirectory returns hints for output directory write errors.
func ForOutputDirectory() string {
	return format("check the output directory is writable, or use --output-dir")
}

// ForInvalidPDF returns hints for files pdfcpu cannot read.
func ForInvalidPDF() string {
	return format("re-export the file as PDF, then run 'pdfsite doctor' to validate all inputs")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(name string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	hint := "available: " + strings.Join(available, ", ")
	if suggestion := Suggest(name, available); suggestion != "" {
		hint = "did you mean " + suggestion + "? " + hint
	}
	return format(hint)
}

// ForUnknownCommand returns a "did you mean" hint for a mistyped command.
func ForUnknownCommand(name string, commands []string) string {
	if suggestion := Suggest(name, commands); suggestion != "" {
		return format("did you mean '" + suggestion + "'?")
	}
	return format("run 'pdfsite help' for usage")
}

// Suggest returns the candidate closest to input, or "" when nothing is close.
// Candidates containing input as a subsequence win; otherwise a candidate
// that is itself a subsequence of input (extra characters typed) is used.
func Suggest(input string, candidates []string) string {
	input = strings.TrimSpace(input)
	if input == "" || len(candidates) == 0 {
		return ""
	}

	if matches := fuzzy.Find(input, candidates); len(matches) > 0 {
		return matches[0].Str
	}

	best, bestScore := "", 0
	for _, c := range candidates {
		m := fuzzy.Find(c, []string{input})
		if len(m) == 0 {
			continue
		}
		if best == "" || m[0].Score > bestScore {
			best, bestScore = c, m[0].Score
		}
	}
	return best
}

// SimilarFile returns the name of a file in path's directory that closely
// matches path's base name, or "" when none is found.
func SimilarFile(path string) string {
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		return ""
	}

	names := make([]string, 0, len(entries))
	want := filepath.Ext(path)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if want != "" && !strings.EqualFold(filepath.Ext(e.Name()), want) {
			continue
		}
		names = append(names, e.Name())
	}

	base := filepath.Base(path)
	suggestion := Suggest(strings.TrimSuffix(base, want), names)
	if suggestion == base {
		return ""
	}
	return suggestion
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
