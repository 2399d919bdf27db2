package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-pdfsite/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags override the site paths and look.
type siteFlags struct {
	sourceDir    string
	outputDir    string
	style        string
	assetPath    string
	noCreateDirs bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common commonFlags
	site   siteFlags
}

// doctorFlags holds all flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	site   siteFlags
	json   bool
}

// configFlags holds flags for the config command.
type configFlags struct {
	format string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show build progress")
}

// addSiteFlags adds site override flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.sourceDir, "source-dir", "", "folder holding the logo and hub PDFs")
	fs.StringVar(&f.outputDir, "output-dir", "", "site output directory")
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noCreateDirs, "no-create-dirs", false, "do not create missing collection directories")
}

// newFlagSet creates a FlagSet that reports errors through the returned error only.
func newFlagSet(name string, usage func(io.Writer), w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(w) }
	return fs
}

// buildBuildFlagSet registers the build flags into f.
func buildBuildFlagSet(f *buildFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet(cmdBuild, printBuildUsage, w)
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	return fs
}

// buildDoctorFlagSet registers the doctor flags into f.
func buildDoctorFlagSet(f *doctorFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet(cmdDoctor, printDoctorUsage, w)
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	return fs
}

// buildConfigFlagSet registers the config flags into f.
func buildConfigFlagSet(f *configFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet(cmdConfig, printConfigUsage, w)
	fs.StringVarP(&f.format, "format", "f", "yaml", "output format: yaml, toml")
	return fs
}

// parseBuildFlags parses build command flags. Positional arguments are rejected.
func parseBuildFlags(args []string, w io.Writer) (*buildFlags, error) {
	f := &buildFlags{}
	fs := buildBuildFlagSet(f, w)
	if err := parseNoArgs(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, error) {
	f := &doctorFlags{}
	fs := buildDoctorFlagSet(f, w)
	if err := parseNoArgs(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, w io.Writer) (*configFlags, error) {
	f := &configFlags{}
	fs := buildConfigFlagSet(f, w)
	if err := parseNoArgs(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

func parseNoArgs(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return fmt.Errorf("%w: %s: %v", ErrUsage, fs.Name(), err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: %s takes no arguments, got %q", ErrUsage, fs.Name(), fs.Arg(0))
	}
	return nil
}

// applySiteFlags overrides config values with the flags that are set.
func applySiteFlags(f *siteFlags, cfg *config.Config) {
	if f.sourceDir != "" {
		cfg.Paths.SourceDir = f.sourceDir
	}
	if f.outputDir != "" {
		cfg.Paths.OutputDir = f.outputDir
	}
	if f.style != "" {
		cfg.Site.Style = f.style
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.noCreateDirs {
		createDirs := false
		cfg.CreateCollectionDirs = &createDirs
	}
}
