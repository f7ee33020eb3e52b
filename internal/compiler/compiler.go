// Package compiler runs the Yalle pipeline: parse, analyze, optimize and
// generate JavaScript, stopping at the stage the caller asks for.
package compiler

import (
	"github.com/pkg/errors"

	"github.com/hassan/yalle/internal/generator"
	"github.com/hassan/yalle/internal/ir"
	"github.com/hassan/yalle/internal/optimizer"
	"github.com/hassan/yalle/internal/parser"
	"github.com/hassan/yalle/internal/semantic"
)

// Output types accepted by Compile.
const (
	Parsed    = "parsed"
	Analyzed  = "analyzed"
	Optimized = "optimized"
	JS        = "js"
)

// OutputTypes lists the accepted output types in pipeline order.
var OutputTypes = []string{Parsed, Analyzed, Optimized, JS}

// Output is the result of a compilation.
type Output struct {
	// Text is what the CLI prints.
	Text string

	// Program is the annotated tree for the analyzed and optimized
	// outputs, and nil otherwise.
	Program *ir.Program
}

// Options tune a compilation.
type Options struct {
	// Verbose makes the optimizer report every pass at info level.
	Verbose bool
}

// Compile compiles source up to the stage named by outputType.
//
// Errors carry a stack trace; errors.Cause returns the underlying
// *parser.SyntaxError or *semantic.Error.
func Compile(source, outputType string) (*Output, error) {
	return CompileWithOptions(source, outputType, Options{})
}

// CompileWithOptions is Compile with explicit options.
func CompileWithOptions(source, outputType string, options Options) (*Output, error) {
	if !isOutputType(outputType) {
		return nil, errors.Errorf("Unknown output type: %s", outputType)
	}

	program, err := parser.Parse(source)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if outputType == Parsed {
		return &Output{Text: "Syntax is ok"}, nil
	}

	analyzed, err := semantic.Analyze(program)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if outputType == Analyzed {
		return &Output{Text: ir.Stringify(analyzed), Program: analyzed}, nil
	}

	opt := optimizer.NewOptimizer()
	opt.SetVerbose(options.Verbose)
	optimized := opt.Optimize(analyzed)
	if outputType == Optimized {
		return &Output{Text: ir.Stringify(optimized), Program: optimized}, nil
	}

	return &Output{Text: generator.Generate(optimized)}, nil
}

func isOutputType(name string) bool {
	for _, outputType := range OutputTypes {
		if name == outputType {
			return true
		}
	}
	return false
}
