package runtime

import (
	"pirate-speak/internal/ast"
	"pirate-speak/internal/span"
)

// ============================================================
// Control flow signals
// ============================================================

// ExecSignal tells the enclosing statement whether to keep going.
type ExecSignal int

const (
	SigNone   ExecSignal = iota
	SigReturn            // return from the method
)

// ExecResult carries a control flow signal and the returned value, if any.
type ExecResult struct {
	Signal ExecSignal
	Value  Value
}

var resultNone = ExecResult{Signal: SigNone}

// frame is the state of one invocation.
type frame struct {
	interp *Interpreter
	env    *Environment
	steps  int
}

// tick counts one step against the interpreter's limit.
func (f *frame) tick(s span.Span) error {
	f.steps++
	if limit := f.interp.maxSteps; limit > 0 && f.steps > limit {
		return runtimeErr(StepLimit, s, "", "step limit of %d exceeded", limit)
	}
	return nil
}

// ============================================================
// Statement execution
// ============================================================

func (f *frame) execStmt(stmt ast.Stmt) (ExecResult, error) {
	if err := f.tick(stmt.GetSpan()); err != nil {
		return resultNone, err
	}

	switch s := stmt.(type) {
	case *ast.VarDecl:
		f.env.Define(s.Name, Unset)
		return resultNone, nil

	case *ast.ExprStmt:
		_, err := f.evalExpr(s.Expr)
		return resultNone, err

	case *ast.Block:
		return f.execBlock(s)

	case *ast.If:
		return f.execIf(s)

	case *ast.For:
		return f.execFor(s)

	case *ast.While:
		return f.execWhile(s)

	case *ast.Return:
		if s.Value == nil {
			return ExecResult{Signal: SigReturn, Value: Unit}, nil
		}
		val, err := f.evalExpr(s.Value)
		if err != nil {
			return resultNone, err
		}
		return ExecResult{Signal: SigReturn, Value: val}, nil

	default:
		return resultNone, runtimeErr(TypeMismatch, stmt.GetSpan(), "", "unsupported statement %T", stmt)
	}
}

// execBlock runs statements in the current scope and stops at the first
// return.
func (f *frame) execBlock(block *ast.Block) (ExecResult, error) {
	for _, stmt := range block.Stmts {
		result, err := f.execStmt(stmt)
		if err != nil {
			return resultNone, err
		}
		if result.Signal != SigNone {
			return result, nil
		}
	}
	return resultNone, nil
}

func (f *frame) execIf(s *ast.If) (ExecResult, error) {
	cond, err := f.evalExpr(s.Cond)
	if err != nil {
		return resultNone, err
	}
	if IsTruthy(cond) {
		return f.execStmt(s.Then)
	}
	if s.Else != nil {
		return f.execStmt(s.Else)
	}
	return resultNone, nil
}

func (f *frame) execWhile(s *ast.While) (ExecResult, error) {
	for {
		cond, err := f.evalExpr(s.Cond)
		if err != nil {
			return resultNone, err
		}
		if !IsTruthy(cond) {
			return resultNone, nil
		}
		if err := f.tick(s.Span); err != nil {
			return resultNone, err
		}

		result, err := f.execStmt(s.Body)
		if err != nil {
			return resultNone, err
		}
		if result.Signal == SigReturn {
			return result, nil
		}
	}
}

func (f *frame) execFor(s *ast.For) (ExecResult, error) {
	if s.Init != nil {
		if _, err := f.evalExpr(s.Init); err != nil {
			return resultNone, err
		}
	}
	for {
		if s.Cond != nil {
			cond, err := f.evalExpr(s.Cond)
			if err != nil {
				return resultNone, err
			}
			if !IsTruthy(cond) {
				return resultNone, nil
			}
		}
		if err := f.tick(s.Span); err != nil {
			return resultNone, err
		}

		result, err := f.execStmt(s.Body)
		if err != nil {
			return resultNone, err
		}
		if result.Signal == SigReturn {
			return result, nil
		}

		if s.Update != nil {
			if _, err := f.evalExpr(s.Update); err != nil {
				return resultNone, err
			}
		}
	}
}
