package lox

import (
	"errors"
	"fmt"
	"strings"
)

// Runtime error kinds. A *RuntimeError unwraps to exactly one of these, so
// callers can test with errors.Is.
var (
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrStepQuotaExceeded = errors.New("step quota exceeded")
	ErrCancelled         = errors.New("execution cancelled")
)

// ScanError reports input the scanner could not turn into a token.
type ScanError struct {
	Line      int
	Message   string
	CodeFrame string
}

func (e *ScanError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scan error at line %d: %s", e.Line, e.Message)
	if e.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(e.CodeFrame)
	}
	return b.String()
}

// ParseError reports a token that does not fit the grammar at its position.
type ParseError struct {
	Line      int
	Expected  []TokenType
	Found     Token
	Message   string
	CodeFrame string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error at line %d: %s", e.Line, e.Message)
	if e.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(e.CodeFrame)
	}
	return b.String()
}

// RuntimeError halts the current run. Statements executed before it keep
// their effects.
type RuntimeError struct {
	Kind      error
	Line      int
	Message   string
	CodeFrame string
}

func (re *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(re.Message)
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}
	if re.Line > 0 {
		fmt.Fprintf(&b, "\n  at <script> (line %d)", re.Line)
	} else {
		b.WriteString("\n  at <script>")
	}
	return b.String()
}

func (re *RuntimeError) Unwrap() error {
	return re.Kind
}

// Diagnostics is an ordered batch of scan or parse errors collected in one
// pass. It is never returned empty.
type Diagnostics []error

func (d Diagnostics) Error() string {
	if len(d) == 1 {
		return d[0].Error()
	}
	msg := ""
	for _, err := range d {
		if msg != "" {
			msg += "\n\n"
		}
		msg += err.Error()
	}
	return msg
}

func (d Diagnostics) Unwrap() []error {
	return d
}

// Lines returns the source line of every diagnostic in the batch, in order.
func (d Diagnostics) Lines() []int {
	lines := make([]int, 0, len(d))
	for _, err := range d {
		lines = append(lines, errorLine(err))
	}
	return lines
}

func errorLine(err error) int {
	var scanErr *ScanError
	var parseErr *ParseError
	var runtimeErr *RuntimeError
	switch {
	case errors.As(err, &scanErr):
		return scanErr.Line
	case errors.As(err, &parseErr):
		return parseErr.Line
	case errors.As(err, &runtimeErr):
		return runtimeErr.Line
	default:
		return 0
	}
}

// attachCodeFrames fills in the source excerpt on diagnostics produced
// without access to the source text.
func attachCodeFrames(err error, source string) {
	if err == nil || source == "" {
		return
	}
	var diags Diagnostics
	if errors.As(err, &diags) {
		for _, d := range diags {
			attachCodeFrames(d, source)
		}
		return
	}
	switch e := err.(type) {
	case *ScanError:
		if e.CodeFrame == "" {
			e.CodeFrame = formatCodeFrame(source, e.Line)
		}
	case *ParseError:
		if e.CodeFrame == "" {
			e.CodeFrame = formatCodeFrame(source, e.Line)
		}
	case *RuntimeError:
		if e.CodeFrame == "" {
			e.CodeFrame = formatCodeFrame(source, e.Line)
		}
	}
}
