package main

import (
	"fmt"

	"github.com/alnah/go-pdfsite/internal/codec"
	"github.com/alnah/go-pdfsite/internal/config"
)

// runConfigCmd prints the default configuration as a starting point for a
// config file.
func runConfigCmd(args []string, env *Environment) error {
	flags, err := parseConfigFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	format := codec.Format(flags.format)
	if format != codec.FormatYAML && format != codec.FormatTOML {
		return fmt.Errorf("%w: --format must be yaml or toml, got %q", ErrUsage, flags.format)
	}

	data, err := codec.Encode(config.DefaultConfig(), format)
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}
