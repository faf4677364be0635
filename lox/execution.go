package lox

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Execution is the state of one Execute call.
type Execution struct {
	engine *Engine
	ctx    context.Context
	out    io.Writer
	env    *Environment
	source string
	quota  int
	steps  int
}

var (
	errLoopBreak = errors.New("loop break")
	errLoopNext  = errors.New("loop next")
)

var runtimeErrorKinds = []error{
	ErrUndefinedVariable,
	ErrTypeMismatch,
	ErrDivisionByZero,
	ErrStepQuotaExceeded,
	ErrCancelled,
}

func (exec *Execution) run(program *Program) error {
	base := scopeHandle(exec.env.Depth())
	defer exec.env.popTo(base)

	for _, stmt := range program.Statements {
		if err := exec.execStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (exec *Execution) execStatement(stmt Statement) error {
	if err := exec.step(stmt.Line()); err != nil {
		return err
	}

	switch s := stmt.(type) {
	case *ExprStmt:
		_, err := exec.evalExpression(s.Expr)
		return err
	case *PrintStmt:
		val, err := exec.evalExpression(s.Expr)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(exec.out, val.String()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	case *VarStmt:
		val := NewNil()
		if s.Initializer != nil {
			var err error
			val, err = exec.evalExpression(s.Initializer)
			if err != nil {
				return err
			}
		}
		exec.env.Define(s.Name.Lexeme, val)
		return nil
	case *BlockStmt:
		return exec.execBlock(s.Statements)
	case *IfStmt:
		return exec.execIf(s)
	case *ForStmt:
		return exec.execFor(s)
	case *BreakStmt:
		return errLoopBreak
	case *ContinueStmt:
		return errLoopNext
	default:
		return exec.errorAt(ErrTypeMismatch, stmt.Line(), "unsupported statement %T", stmt)
	}
}

// execBlock runs statements in a fresh scope. The scope is released on every
// return path, including errors and loop control.
func (exec *Execution) execBlock(stmts []Statement) error {
	handle := exec.env.push()
	defer exec.env.popTo(handle)

	for _, stmt := range stmts {
		if err := exec.execStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (exec *Execution) step(line int) error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return exec.errorAt(ErrStepQuotaExceeded, line, "step quota exceeded (%d)", exec.quota)
	}
	select {
	case <-exec.ctx.Done():
		return exec.newRuntimeError(fmt.Errorf("%w: %w", ErrCancelled, exec.ctx.Err()), line, "execution cancelled: "+exec.ctx.Err().Error())
	default:
	}
	return nil
}

func (exec *Execution) errorAt(kind error, line int, format string, args ...any) error {
	return exec.newRuntimeError(kind, line, fmt.Sprintf(format, args...))
}

func (exec *Execution) newRuntimeError(kind error, line int, message string) error {
	codeFrame := formatCodeFrame(exec.source, line)
	return &RuntimeError{Kind: kind, Line: line, Message: message, CodeFrame: codeFrame}
}

// wrapError turns an operator failure into a RuntimeError at line, keeping
// the kind the failure was tagged with.
func (exec *Execution) wrapError(err error, line int) error {
	if err == nil {
		return nil
	}
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		return err
	}
	return exec.newRuntimeError(classifyRuntimeError(err), line, err.Error())
}

func classifyRuntimeError(err error) error {
	for _, kind := range runtimeErrorKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrTypeMismatch
}
