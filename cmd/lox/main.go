package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/lox/lox"
)

// Exit statuses follow the sysexits convention used by Lox tools.
const (
	exitFailure  = 1
	exitDataErr  = 65
	exitSoftware = 70
)

var diagnosticStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, diagnosticStyle.Render(err.Error()))
		os.Exit(exitCode(err))
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "tokens":
		return tokensCommand(args[2:])
	case "ast":
		return astCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

// exitCode maps compile problems to 65 and runtime failures to 70. Anything
// else is a usage or IO problem.
func exitCode(err error) int {
	var diags lox.Diagnostics
	var runtimeErr *lox.RuntimeError
	switch {
	case errors.As(err, &diags):
		return exitDataErr
	case errors.As(err, &runtimeErr):
		return exitSoftware
	default:
		return exitFailure
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configPath := fs.String("config", "", "YAML configuration file")
	stepQuota := fs.Int("step-quota", -1, "maximum statements and loop iterations (0 = unlimited)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("lox run: script path required")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *stepQuota >= 0 {
		cfg.StepQuota = *stepQuota
	}

	input, err := readScript(remaining[0])
	if err != nil {
		return err
	}
	engine, err := lox.NewEngine(cfg.EngineConfig(os.Stdout))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return engine.Run(ctx, lox.NewEnvironment(), input)
}

func replCommand(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configPath := fs.String("config", "", "YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	return runREPL(cfg)
}

func tokensCommand(args []string) error {
	if len(args) != 1 {
		return errors.New("lox tokens: script path required")
	}
	input, err := readScript(args[0])
	if err != nil {
		return err
	}
	tokens, scanErr := lox.Scan(input)
	if err := lox.DumpTokens(os.Stdout, tokens); err != nil {
		return fmt.Errorf("write tokens: %w", err)
	}
	return scanErr
}

func astCommand(args []string) error {
	if len(args) != 1 {
		return errors.New("lox ast: script path required")
	}
	input, err := readScript(args[0])
	if err != nil {
		return err
	}
	program, err := lox.MustNewEngine(lox.Config{Stdout: io.Discard}).Compile(input)
	if err != nil {
		return err
	}
	if err := lox.DumpProgram(os.Stdout, program); err != nil {
		return fmt.Errorf("write ast: %w", err)
	}
	return nil
}

func loadConfig(path string) (lox.FileConfig, error) {
	if path == "" {
		return lox.DefaultFileConfig(), nil
	}
	return lox.LoadConfigFile(path)
}

func readScript(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(input), nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [script]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [-config file] [-step-quota n] <script>")
	fmt.Fprintln(os.Stderr, "    run a script")
	fmt.Fprintln(os.Stderr, "  repl [-config file]")
	fmt.Fprintln(os.Stderr, "    start an interactive session")
	fmt.Fprintln(os.Stderr, "  tokens <script>")
	fmt.Fprintln(os.Stderr, "    print the token stream")
	fmt.Fprintln(os.Stderr, "  ast <script>")
	fmt.Fprintln(os.Stderr, "    print the syntax tree")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
