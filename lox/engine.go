package lox

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Config controls execution bounds and where printed output goes.
type Config struct {
	// StepQuota caps the number of statements and loop iterations one run
	// may execute. Zero means unlimited.
	StepQuota int
	// Stdout receives the output of print statements. Defaults to os.Stdout.
	Stdout io.Writer
}

// Engine compiles and runs source text. It holds no per-run state, so one
// Engine can serve every input of a REPL session.
type Engine struct {
	config Config
}

// NewEngine validates cfg and fills in defaults.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.StepQuota < 0 {
		return nil, fmt.Errorf("step quota must be >= 0, got %d", cfg.StepQuota)
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	return &Engine{config: cfg}, nil
}

// MustNewEngine is NewEngine for configurations known to be valid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

func (e *Engine) Config() Config {
	return e.config
}

// Compile scans and parses source. Scan problems are reported without
// parsing; otherwise every parse error is reported. Either way the error is a
// Diagnostics and nothing has run yet.
func (e *Engine) Compile(source string) (*Program, error) {
	tokens, err := Scan(source)
	if err != nil {
		attachCodeFrames(err, source)
		return nil, err
	}
	program, err := Parse(tokens)
	if err != nil {
		attachCodeFrames(err, source)
		return nil, err
	}
	program.source = source
	return program, nil
}

// Execute runs program against env, stopping at the first runtime error.
// Effects of statements that completed before the error are kept. Block
// scopes opened during the run are released before Execute returns.
func (e *Engine) Execute(ctx context.Context, env *Environment, program *Program) error {
	return e.newExecution(ctx, env, program.source).run(program)
}

// Evaluate parses source as a single expression and returns its value. The
// REPL uses it to echo the value of bare expressions.
func (e *Engine) Evaluate(ctx context.Context, env *Environment, source string) (Value, error) {
	tokens, err := Scan(source)
	if err != nil {
		attachCodeFrames(err, source)
		return NewNil(), err
	}
	expr, err := ParseExpression(tokens)
	if err != nil {
		attachCodeFrames(err, source)
		return NewNil(), err
	}
	exec := e.newExecution(ctx, env, source)
	base := scopeHandle(env.Depth())
	defer env.popTo(base)
	return exec.evalExpression(expr)
}

func (e *Engine) newExecution(ctx context.Context, env *Environment, source string) *Execution {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Execution{
		engine: e,
		ctx:    ctx,
		out:    e.config.Stdout,
		env:    env,
		source: source,
		quota:  e.config.StepQuota,
	}
}

// Run compiles source and executes it against env.
func (e *Engine) Run(ctx context.Context, env *Environment, source string) error {
	program, err := e.Compile(source)
	if err != nil {
		return err
	}
	return e.Execute(ctx, env, program)
}
