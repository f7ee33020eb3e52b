// Package optimizer simplifies an analyzed program before code generation.
//
// Each optimization is a Pass over the annotated tree. Passes never modify
// the tree they are given: they return a new tree that shares whatever
// they did not change, and every surviving expression keeps its type.
package optimizer

import (
	"fmt"

	"github.com/hassan/yalle/internal/ir"
	"github.com/hassan/yalle/internal/logger"
)

// Pass is one optimization over a whole program.
type Pass interface {
	// Name returns a human-readable name for this pass
	Name() string

	// Run returns the rewritten program and the number of rewrites made.
	// A pass that finds nothing to do returns zero.
	Run(program *ir.Program) (*ir.Program, int)
}

// Optimizer runs its passes in order until a round makes no change.
type Optimizer struct {
	passes []Pass

	// maxIterations bounds the number of rounds.
	maxIterations int

	verbose bool

	stats *OptimizationStats
}

// NewOptimizer creates an optimizer with the default passes: constant
// folding, then dead code elimination. Folding turns tests into literals,
// which is what lets dead code elimination drop branches and loops.
func NewOptimizer() *Optimizer {
	return &Optimizer{
		passes: []Pass{
			&ConstantFoldingPass{},
			&DeadCodeEliminationPass{},
		},
		maxIterations: 10,
		stats:         NewOptimizationStats(),
	}
}

// AddPass appends a pass to the pipeline.
func (o *Optimizer) AddPass(pass Pass) {
	o.passes = append(o.passes, pass)
}

// SetVerbose makes every pass report its result at info level instead of
// debug.
func (o *Optimizer) SetVerbose(verbose bool) {
	o.verbose = verbose
}

// SetMaxIterations sets the maximum number of rounds.
func (o *Optimizer) SetMaxIterations(max int) {
	o.maxIterations = max
}

// Stats returns the statistics accumulated by Optimize.
func (o *Optimizer) Stats() *OptimizationStats {
	return o.stats
}

// Optimize runs the passes over program and returns the optimized tree.
// The result is a fixed point: optimizing it again changes nothing.
func (o *Optimizer) Optimize(program *ir.Program) *ir.Program {
	logger.LogPhase("optimize")

	for round := 0; round < o.maxIterations; round++ {
		o.stats.Rounds++
		changes := 0
		for _, pass := range o.passes {
			var n int
			program, n = pass.Run(program)
			o.record(pass, n)
			changes += n
		}
		if changes == 0 {
			break
		}
	}

	logger.LogPhaseComplete("optimize",
		"folded", o.stats.ConstantsFolded,
		"removed", o.stats.StatementsRemoved)
	return program
}

func (o *Optimizer) record(pass Pass, changes int) {
	o.stats.PassExecutions[pass.Name()]++
	switch pass.(type) {
	case *ConstantFoldingPass:
		o.stats.ConstantsFolded += changes
	case *DeadCodeEliminationPass:
		o.stats.StatementsRemoved += changes
	}

	if o.verbose {
		logger.Info("Optimization pass complete", "pass", pass.Name(), "changes", changes)
	} else {
		logger.LogOptimization(pass.Name(), changes)
	}
}

// Optimize runs the default passes over program.
func Optimize(program *ir.Program) *ir.Program {
	return NewOptimizer().Optimize(program)
}

// OptimizationStats tracks what the optimizer did.
type OptimizationStats struct {
	// ConstantsFolded counts expressions replaced by simpler ones.
	ConstantsFolded int

	// StatementsRemoved counts statements dropped or collapsed.
	StatementsRemoved int

	// Rounds is the number of times the pipeline ran.
	Rounds int

	// PassExecutions tracks how many times each pass ran
	PassExecutions map[string]int
}

// NewOptimizationStats creates a new stats tracker.
func NewOptimizationStats() *OptimizationStats {
	return &OptimizationStats{
		PassExecutions: make(map[string]int),
	}
}

// String returns a human-readable summary of optimization statistics.
func (s *OptimizationStats) String() string {
	return fmt.Sprintf("Optimization Stats:\n"+
		"  Constants folded: %d\n"+
		"  Statements removed: %d\n"+
		"  Rounds: %d\n",
		s.ConstantsFolded,
		s.StatementsRemoved,
		s.Rounds)
}
