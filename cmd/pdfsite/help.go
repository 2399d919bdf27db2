package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfsite [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Build the hub and collection pages (default)")
	fmt.Fprintln(w, "  doctor      Check inputs and output directory without writing")
	fmt.Fprintln(w, "  config      Print the default configuration")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pdfsite help <command>' for details on a specific command.")
}

// printSiteFlags prints the flags shared by build and doctor.
func printSiteFlags(w io.Writer) {
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (.yaml, .yml, .toml)")
	fmt.Fprintln(w, "      --source-dir <dir>    Folder holding the logo and hub PDFs")
	fmt.Fprintln(w, "      --output-dir <dir>    Site output directory")
	fmt.Fprintln(w, "      --no-create-dirs      Do not create missing collection directories")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name|path>   CSS style name or file path")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles and templates directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show build progress")
}

// printEnvHelp prints the environment variables.
func printEnvHelp(w io.Writer) {
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  PDFSITE_CONFIG, PDFSITE_SOURCE_DIR, PDFSITE_OUTPUT_DIR,")
	fmt.Fprintln(w, "  PDFSITE_STYLE, PDFSITE_ASSET_PATH, LOG_LEVEL")
	fmt.Fprintln(w, "  A .env file in the working directory is read first.")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfsite build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Combine the main and appendix PDFs, then write the hub page and one page")
	fmt.Fprintln(w, "per collection. Every page embeds its PDFs and logo and opens offline.")
	fmt.Fprintln(w)
	printSiteFlags(w)
	fmt.Fprintln(w)
	printEnvHelp(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfsite doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the inputs exist and are valid PDFs or PNGs, list the")
	fmt.Fprintln(w, "collections and verify the output directory is writable.")
	fmt.Fprintln(w)
	printSiteFlags(w)
	fmt.Fprintln(w, "      --json                Print the report as JSON")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfsite config [--format yaml|toml]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the default configuration.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -f, --format <s>          Output format: yaml, toml (default yaml)")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case cmdBuild:
		printBuildUsage(env.Stdout)
	case cmdDoctor:
		printDoctorUsage(env.Stdout)
	case cmdConfig:
		printConfigUsage(env.Stdout)
	case cmdCompletion:
		printCompletionUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: pdfsite version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: pdfsite help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s%s\n", args[0], unknownCommandHint(args[0]))
		printUsage(env.Stderr)
	}
}
