package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	pdfsite "github.com/alnah/go-pdfsite"
	"github.com/alnah/go-pdfsite/internal/config"
	"github.com/alnah/go-pdfsite/internal/fileutil"
)

// runBuild builds the site and prints the hub page and combined PDF paths.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig(env)
	logger := newLogger(env.Stderr, flags.common, envCfg.LogLevel)
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr, env.environ())
	}

	cfg, err := resolveConfig(flags.common, &flags.site, envCfg)
	if err != nil {
		return err
	}

	site, err := siteFromConfig(cfg)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"source": site.SourceDir,
		"output": site.OutputDir,
	}).Debug("building site")

	builder, err := newBuilder(cfg, logger)
	if err != nil {
		return err
	}

	result, err := builder.Build(ctx, site)
	if err != nil {
		return withSite(err, site)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Wrote %s\n", result.IndexPage().Path)
		fmt.Fprintf(env.Stdout, "Wrote %s\n", result.Combined.Output)
	}
	return nil
}

// resolveConfig loads the config named by --config or PDFSITE_CONFIG, or the
// defaults when neither is set, then applies environment and flag overrides.
func resolveConfig(common commonFlags, site *siteFlags, envCfg *envConfig) (*config.Config, error) {
	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, &configError{name: name, err: err}
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	applySiteFlags(site, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// siteFromConfig converts cfg into a Site, expanding "~" in every path.
func siteFromConfig(cfg *config.Config) (pdfsite.Site, error) {
	var err error
	expand := func(p string) string {
		if err != nil {
			return p
		}
		var out string
		out, err = fileutil.ExpandHome(p)
		return out
	}

	site := pdfsite.Site{
		SourceDir: expand(cfg.Paths.SourceDir),
		OutputDir: expand(cfg.Paths.OutputDir),
		Brand:     cfg.Site.Brand,
		Title:     cfg.Site.Title,
		Lang:      cfg.Site.Lang,
		Index:     cfg.Site.Index,
		Logo:      expand(cfg.Documents.Logo),
		Main:      documentFromConfig(cfg.Documents.Main, expand),
		Appendix:  documentFromConfig(cfg.Documents.Appendix, expand),
		Combined: pdfsite.Combined{
			Path:         filepath.ToSlash(cfg.Combined.Path),
			Label:        cfg.Combined.Label,
			DownloadName: cfg.Combined.DownloadName,
			Note:         cfg.Combined.Note,
			SkipLabel:    cfg.Combined.SkipLabel,
		},
		Labels: pdfsite.Labels{
			Home:            cfg.Labels.Home,
			HubTOC:          cfg.Labels.HubTOC,
			CollectionTOC:   cfg.Labels.CollectionTOC,
			EmptyCollection: cfg.Labels.EmptyCollection,
		},
		CreateCollectionDirs: cfg.ShouldCreateCollectionDirs(),
	}
	for _, c := range cfg.Collections {
		site.Collections = append(site.Collections, pdfsite.Collection{
			Title:  c.Title,
			Dir:    expand(c.Dir),
			Output: c.Output,
		})
	}

	if err != nil {
		return pdfsite.Site{}, err
	}
	return site, nil
}

func documentFromConfig(d config.DocumentConfig, expand func(string) string) pdfsite.Document {
	return pdfsite.Document{
		Path:         expand(d.File),
		Heading:      d.Heading,
		TOCLabel:     d.TOCLabel,
		DownloadName: d.DownloadName,
	}
}

// newBuilder creates a Builder from the config's look and asset settings.
func newBuilder(cfg *config.Config, logger *logrus.Logger) (*pdfsite.Builder, error) {
	assetPath, err := fileutil.ExpandHome(cfg.Assets.BasePath)
	if err != nil {
		return nil, err
	}
	style, err := fileutil.ExpandHome(cfg.Site.Style)
	if err != nil {
		return nil, err
	}

	return pdfsite.NewBuilder(
		pdfsite.WithAssetPath(assetPath),
		pdfsite.WithStyle(style),
		pdfsite.WithTemplateSet(cfg.Site.TemplateSet),
		pdfsite.WithLogger(logger),
	)
}
