package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/texgrid/internal/app"
)

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
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("texgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
texgrid - node-based procedural texture generator.

Builds one node of every registered node type on an in-memory backend,
evaluates it once and reports the result.

Usage:
  texgrid [options] [TYPES_PATH]

Arguments:
  TYPES_PATH
    Directory of .hcl / .yaml node type manifests. Optional; the
    compiled-in node types are always available.

Options:
`)
		flagSet.PrintDefaults()
	}

	typesFlag := flagSet.String("types", "", "Directory of node type manifests.")
	tFlag := flagSet.String("t", "", "Directory of node type manifests (shorthand).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	widthFlag := flagSet.Int("width", app.DefaultWidth, "Surface width in pixels.")
	heightFlag := flagSet.Int("height", app.DefaultHeight, "Surface height in pixels.")
	seedFlag := flagSet.Float64("seed", 0, "Random seed passed to every node.")
	listFlag := flagSet.Bool("list", false, "List the registered node types and exit.")
	dumpFlag := flagSet.String("dump", "", "Print the assembled shader source of a node type and exit.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *typesFlag != "" {
		path = *typesFlag
	} else if *tFlag != "" {
		path = *tFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Types path determined.", "path", path)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		TypesPath: path,
		LogFormat: logFormat,
		LogLevel:  logLevel,
		Width:     *widthFlag,
		Height:    *heightFlag,
		Seed:      float32(*seedFlag),
		List:      *listFlag,
		Dump:      *dumpFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
