package optimizer

import (
	"github.com/hassan/yalle/internal/ir"
)

// DeadCodeEliminationPass removes statements that can never run or that do
// nothing.
//
// EXAMPLE:
//
//	Before:  iffin true ~~{ holler(1); } otherwise ~~{ holler(2); }
//	         till false ~~{ holler(3); }
//	         x -= x;
//	After:   holler(1);
//
// The pass only looks at literal tests, so it relies on constant folding
// having run first.
type DeadCodeEliminationPass struct{}

// Name returns the name of this optimization pass.
func (d *DeadCodeEliminationPass) Name() string {
	return "DeadCodeElimination"
}

// Run removes dead statements from every statement list of program.
func (d *DeadCodeEliminationPass) Run(program *ir.Program) (*ir.Program, int) {
	r := &rewriter{stmt: d.eliminate}
	return r.program(program), r.changes
}

// eliminate returns the statements that replace s. An iffin with a literal
// test is replaced by the statements of the branch it always takes, spliced
// into the enclosing list.
func (d *DeadCodeEliminationPass) eliminate(s ir.Stmt) ([]ir.Stmt, bool) {
	switch s := s.(type) {
	case *ir.IfStatement:
		if ir.IsTrue(s.Test) {
			return s.Consequent, true
		}
		if ir.IsFalse(s.Test) {
			switch alternate := s.Alternate.(type) {
			case nil:
				return nil, true
			case *ir.Block:
				return alternate.Statements, true
			default:
				return []ir.Stmt{alternate}, true
			}
		}

	case *ir.WhileStatement:
		if ir.IsFalse(s.Test) {
			return nil, true
		}

	case *ir.RepeatStatement:
		if lit, ok := s.Count.(*ir.Literal); ok && lit.Value.(int64) <= 0 {
			return nil, true
		}

	case *ir.ForStatement:
		if _, ok := s.Collection.(*ir.EmptyArray); ok {
			return nil, true
		}

	case *ir.Assignment:
		if isSelfAssignment(s) {
			return nil, true
		}
	}

	return []ir.Stmt{s}, false
}

// isSelfAssignment reports whether s stores a variable or task into itself.
func isSelfAssignment(s *ir.Assignment) bool {
	switch s.Target.(type) {
	case *ir.Variable, *ir.Function:
		return s.Target == s.Source
	}
	return false
}
