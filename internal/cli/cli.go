package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/specialistvlad/stimforge/internal/app"
)

// EnvPrefix prefixes every environment variable read by Parse.
const EnvPrefix = "STIMFORGE_"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// defaults holds the flag defaults that can be overridden from the
// environment, e.g. STIMFORGE_TARGET=web.
type defaults struct {
	Target    string `env:"TARGET" envDefault:"all"`
	Out       string `env:"OUT"`
	Locale    string `env:"LOCALE" envDefault:"en-US"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	Workers   int    `env:"WORKERS" envDefault:"0"`
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	return parse(args, output, nil)
}

// parse is Parse with an explicit environment. A nil environ reads the
// process environment.
func parse(args []string, output io.Writer, environ map[string]string) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var def defaults
	if err := env.ParseWithOptions(&def, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid environment: %v", err)}
	}

	flagSet := flag.NewFlagSet("stimforge", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Stimforge - generates runnable experiment scripts from declarative designs.

Usage:
  stimforge [options] [DESIGN_PATH...]
  stimforge -describe TYPE|all [-locale TAG]
  stimforge -init TYPE[,TYPE...] [-out FILE]

Arguments:
  DESIGN_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
		fmt.Fprintf(output, "\nDefaults can be set with %s* environment variables, e.g. %sTARGET=web.\n", EnvPrefix, EnvPrefix)
	}

	designFlag := flagSet.String("design", "", "Path to the design file or directory.")
	gFlag := flagSet.String("g", "", "Path to the design file or directory (shorthand).")
	targetFlag := flagSet.String("target", def.Target, "Runtime to generate for. Options: 'native', 'web' or 'all'.")
	outFlag := flagSet.String("out", def.Out, "Output directory for generated code, or output file for -init. Empty writes to stdout.")
	describeFlag := flagSet.String("describe", "", "Describe a component type, or 'all', instead of generating.")
	initFlag := flagSet.String("init", "", "Write a design skeleton holding the given comma separated component types.")
	localeFlag := flagSet.String("locale", def.Locale, "Language of -describe labels, e.g. 'de-DE'.")
	logFormatFlag := flagSet.String("log-format", def.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", def.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", def.Workers, "Number of concurrent component writers. 0 uses one per CPU.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var paths []string
	for _, p := range []string{*designFlag, *gFlag} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Design paths determined.", "paths", paths)

	if len(paths) == 0 && *describeFlag == "" && *initFlag == "" {
		slog.Debug("No design path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

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
		DesignPaths: paths,
		Target:      strings.ToLower(*targetFlag),
		OutPath:     *outFlag,
		Describe:    *describeFlag,
		Init:        *initFlag,
		Locale:      *localeFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		Workers:     *workersFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
