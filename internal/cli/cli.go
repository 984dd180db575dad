// Package cli translates command-line arguments into an app.Config. Exit
// codes and user presentation decisions stop here; the compiler itself
// only returns errors.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Config carries everything the app needs to run one invocation.
type Config struct {
	SourcePath  string
	OptionsPath string
	LogFormat   string
	LogLevel    string
}

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := flag.NewFlagSet("arclangc", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
arclangc - compiler front end for .arc architecture descriptions.

Usage:
  arclangc [options] SOURCE_PATH

Arguments:
  SOURCE_PATH
    Path to a single .arc file or a directory containing .arc files.

Options:
`)
		flagSet.PrintDefaults()
	}

	// The log flags default to empty so an options file keeps precedence;
	// only an explicitly set flag overrides it.
	optionsFlag := flagSet.String("options", "", "Path to an HCL options file.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format: 'text' or 'json'. Overrides the options file.")
	logLevelFlag := flagSet.String("log-level", "", "Logging level: 'debug', 'info', 'warn', 'error'. Overrides the options file.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "expected exactly one SOURCE_PATH argument"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "" && logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "", "debug", "info", "warn", "error":
		// valid; empty means "not set on the command line"
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	return &Config{
		SourcePath:  flagSet.Arg(0),
		OptionsPath: *optionsFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	}, false, nil
}
