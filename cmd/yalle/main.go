// Command yalle compiles a Yalle source file.
//
// Usage:
//
//	yalle [-v] [-log-level level] [-log-format text|json] <filename> <outputType>
//
// The output type selects how far the pipeline runs:
// 1. parsed: check the syntax only
// 2. analyzed: print the annotated program
// 3. optimized: print the annotated program after optimization
// 4. js: print the JavaScript translation
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hassan/yalle/internal/compiler"
	"github.com/hassan/yalle/internal/logger"
)

const help = `Yalle compiler

Syntax: yalle <filename> <outputType>

Prints to stdout according to <outputType>, which must be one of:

  parsed     a message that the program was matched ok by the grammar
  analyzed   the statically analyzed representation
  optimized  the optimized semantically analyzed representation
  js         the translation to JavaScript
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit, returning the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("yalle", flag.ContinueOnError)
	flags.SetOutput(stderr)
	verbose := flags.Bool("v", false, "log every compiler phase and optimization pass")
	logLevel := flags.String("log-level", "warn", "log level: debug, info, warn or error")
	logFormat := flags.String("log-format", "text", "log format: text or json")
	flags.Usage = func() {
		fmt.Fprint(stdout, help)
		fmt.Fprintln(stdout, "Flags:")
		flags.SetOutput(stdout)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if flags.NArg() != 2 {
		fmt.Fprint(stdout, help)
		return 0
	}

	cfg := logger.DefaultConfig()
	cfg.Level = logger.ParseLevel(*logLevel)
	cfg.Format = *logFormat
	cfg.Output = stderr
	if *verbose {
		cfg.Level = logger.LevelDebug
	}
	logger.Init(cfg)

	filename, outputType := flags.Arg(0), flags.Arg(1)
	options := compiler.Options{Verbose: *verbose}
	if err := compileFile(filename, outputType, options, stdout); err != nil {
		fmt.Fprintf(stderr, "\x1b[31m%v\x1b[39m\n", err)
		return 1
	}
	return 0
}

func compileFile(filename, outputType string, options compiler.Options, stdout io.Writer) error {
	source, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	logger.Debug("Compiling", "file", filename, "output", outputType)
	out, err := compiler.CompileWithOptions(string(source), outputType, options)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, strings.TrimRight(out.Text, "\n"))
	return nil
}
