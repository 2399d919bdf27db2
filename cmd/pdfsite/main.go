package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-pdfsite/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdBuild      = "build"
	cmdDoctor     = "doctor"
	cmdConfig     = "config"
	cmdCompletion = "completion"
	cmdVersion    = "version"
	cmdHelp       = "help"
)

// commandNames lists the commands in help order.
var commandNames = []string{cmdBuild, cmdDoctor, cmdConfig, cmdCompletion, cmdVersion, cmdHelp}

func main() {
	// maxprocs.Set only fails on an invalid GOMAXPROCS value; runtime defaults apply then.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
	}

	if err := loadDotEnv(dotEnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args to a command and returns the process exit code.
// With no command, or when the first argument is a flag, it runs build.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := splitCommand(args[1:])

	var err error
	switch cmd {
	case cmdBuild:
		err = runBuild(ctx, rest, env)
	case cmdDoctor:
		return runDoctorCmd(rest, env)
	case cmdConfig:
		err = runConfigCmd(rest, env)
	case cmdCompletion:
		err = runCompletion(rest, env)
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "go-pdfsite %s\n", Version)
	case cmdHelp:
		runHelp(rest, env)
	default:
		err = fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}

	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}

	printError(env.Stderr, err, hintFor(err, cmd))
	return exitCodeFor(err)
}

// splitCommand separates the command name from its arguments.
func splitCommand(args []string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return cmdBuild, args
	}
	return args[0], args[1:]
}

// isCommand reports whether name is a known command.
func isCommand(name string) bool {
	for _, c := range commandNames {
		if c == name {
			return true
		}
	}
	return false
}

// unknownCommandHint suggests the closest command name.
func unknownCommandHint(name string) string {
	if isCommand(name) {
		return ""
	}
	return hints.ForUnknownCommand(name, commandNames)
}

// hasVerboseFlag scans raw arguments for -v or --verbose before parsing.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" || a == "--verbose=true" {
			return true
		}
	}
	return false
}
