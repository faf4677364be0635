package lox

import (
	"errors"
	"strings"
	"testing"
)

func parseSource(t *testing.T, source string) *Program {
	t.Helper()
	tokens, err := Scan(source)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	program, err := Parse(tokens)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return program
}

func parseDiagnostics(t *testing.T, source string) (*Program, Diagnostics) {
	t.Helper()
	tokens, err := Scan(source)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	program, err := Parse(tokens)
	if err == nil {
		t.Fatalf("expected parse errors for %q", source)
	}
	var diags Diagnostics
	if !errors.As(err, &diags) {
		t.Fatalf("expected Diagnostics, got %T", err)
	}
	return program, diags
}

// sexpr renders an expression fully parenthesized so tests can assert on
// grouping.
func sexpr(expr Expression) string {
	switch e := expr.(type) {
	case *LiteralExpr:
		if e.Value.Kind() == KindString {
			return `"` + e.Value.String() + `"`
		}
		return e.Value.String()
	case *GroupingExpr:
		return "(group " + sexpr(e.Expr) + ")"
	case *UnaryExpr:
		return "(" + e.Operator.Lexeme + " " + sexpr(e.Right) + ")"
	case *BinaryExpr:
		return "(" + e.Operator.Lexeme + " " + sexpr(e.Left) + " " + sexpr(e.Right) + ")"
	case *LogicalExpr:
		return "(" + e.Operator.Lexeme + " " + sexpr(e.Left) + " " + sexpr(e.Right) + ")"
	case *VariableExpr:
		return e.Name.Lexeme
	case *AssignExpr:
		return "(= " + e.Name.Lexeme + " " + sexpr(e.Value) + ")"
	default:
		return "?"
	}
}

func TestParseExpressionShapes(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"1 + 2 * 3;", "(+ 1 (* 2 3))"},
		{"1 - 2 - 3;", "(- (- 1 2) 3)"},
		{"8 / 4 / 2;", "(/ (/ 8 4) 2)"},
		{"(1 + 2) * 3;", "(* (group (+ 1 2)) 3)"},
		{"a = b = 3;", "(= a (= b 3))"},
		{"a or b and c;", "(or a (and b c))"},
		{"a and b or c and d;", "(or (and a b) (and c d))"},
		{"-!x;", "(- (! x))"},
		{"--1;", "(- (- 1))"},
		{"1 < 2 == 3 >= 4;", "(== (< 1 2) (>= 3 4))"},
		{"x = 1 + 2 < 4 and y;", "(= x (and (< (+ 1 2) 4) y))"},
		{`"a" + nil != true;`, `(!= (+ "a" nil) true)`},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			program := parseSource(t, tt.source)
			if len(program.Statements) != 1 {
				t.Fatalf("expected 1 statement, got %d", len(program.Statements))
			}
			stmt, ok := program.Statements[0].(*ExprStmt)
			if !ok {
				t.Fatalf("expected ExprStmt, got %T", program.Statements[0])
			}
			if got := sexpr(stmt.Expr); got != tt.want {
				t.Fatalf("got %s want %s", got, tt.want)
			}
		})
	}
}

func TestParseStatements(t *testing.T) {
	program := parseSource(t, `
var a = 1;
var b;
print a;
{ var c = 2; print c; }
if (a) print 1; else print 2;
while (a < 3) a = a + 1;
// trailing comment
`)
	if len(program.Statements) != 6 {
		t.Fatalf("expected 6 statements, got %d", len(program.Statements))
	}

	varA, ok := program.Statements[0].(*VarStmt)
	if !ok || varA.Name.Lexeme != "a" || varA.Initializer == nil {
		t.Fatalf("unexpected first statement: %#v", program.Statements[0])
	}
	varB := program.Statements[1].(*VarStmt)
	if varB.Initializer != nil {
		t.Fatalf("expected nil initializer for b")
	}
	if _, ok := program.Statements[2].(*PrintStmt); !ok {
		t.Fatalf("expected PrintStmt, got %T", program.Statements[2])
	}
	block, ok := program.Statements[3].(*BlockStmt)
	if !ok || len(block.Statements) != 2 {
		t.Fatalf("unexpected block: %#v", program.Statements[3])
	}
	ifStmt, ok := program.Statements[4].(*IfStmt)
	if !ok || ifStmt.Else == nil {
		t.Fatalf("expected if/else, got %#v", program.Statements[4])
	}
	if ifStmt.Line() != 6 {
		t.Fatalf("expected if on line 6, got %d", ifStmt.Line())
	}
	loop, ok := program.Statements[5].(*ForStmt)
	if !ok {
		t.Fatalf("expected while to parse as ForStmt, got %T", program.Statements[5])
	}
	if loop.Initializer != nil || loop.Increment != nil {
		t.Fatalf("while loop should have no initializer or increment")
	}
	if got := sexpr(loop.Condition); got != "(< a 3)" {
		t.Fatalf("unexpected while condition %s", got)
	}
}

func TestParseDanglingElseBindsToNearestIf(t *testing.T) {
	program := parseSource(t, "if (a) if (b) print 1; else print 2;")
	outer := program.Statements[0].(*IfStmt)
	if outer.Else != nil {
		t.Fatalf("else should belong to the inner if")
	}
	inner, ok := outer.Then.(*IfStmt)
	if !ok || inner.Else == nil {
		t.Fatalf("inner if should carry the else branch: %#v", outer.Then)
	}
}

func TestParseForLoopParts(t *testing.T) {
	program := parseSource(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	loop, ok := program.Statements[0].(*ForStmt)
	if !ok {
		t.Fatalf("expected ForStmt, got %T", program.Statements[0])
	}
	if init, ok := loop.Initializer.(*VarStmt); !ok || init.Name.Lexeme != "i" {
		t.Fatalf("unexpected initializer %#v", loop.Initializer)
	}
	if got := sexpr(loop.Condition); got != "(< i 3)" {
		t.Fatalf("unexpected condition %s", got)
	}
	inc, ok := loop.Increment.(*ExprStmt)
	if !ok {
		t.Fatalf("increment should be an expression statement, got %T", loop.Increment)
	}
	if got := sexpr(inc.Expr); got != "(= i (+ i 1))" {
		t.Fatalf("unexpected increment %s", got)
	}
	if _, ok := loop.Body.(*PrintStmt); !ok {
		t.Fatalf("unexpected body %T", loop.Body)
	}
}

func TestParseForLoopDefaults(t *testing.T) {
	program := parseSource(t, "for (;;) break;")
	loop := program.Statements[0].(*ForStmt)
	if loop.Initializer != nil || loop.Increment != nil {
		t.Fatalf("empty clauses should stay empty: %#v", loop)
	}
	lit, ok := loop.Condition.(*LiteralExpr)
	if !ok || !lit.Value.Equal(NewBool(true)) {
		t.Fatalf("missing condition should be literal true, got %#v", loop.Condition)
	}
	if _, ok := loop.Body.(*BreakStmt); !ok {
		t.Fatalf("expected break body, got %T", loop.Body)
	}

	program = parseSource(t, "for (x = 0; x < 2;) { continue; }")
	loop = program.Statements[0].(*ForStmt)
	if _, ok := loop.Initializer.(*ExprStmt); !ok {
		t.Fatalf("expression initializer should be an ExprStmt, got %T", loop.Initializer)
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	_, diags := parseDiagnostics(t, "var a = 1;\na + 1 = 2;")
	if len(diags) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(diags), diags)
	}
	var parseErr *ParseError
	if !errors.As(diags[0], &parseErr) {
		t.Fatalf("expected ParseError, got %T", diags[0])
	}
	if parseErr.Message != "invalid assignment target" || parseErr.Line != 2 {
		t.Fatalf("unexpected error: %+v", parseErr)
	}
}

func TestParseRecoversAndReportsEveryError(t *testing.T) {
	program, diags := parseDiagnostics(t, "print 1 +;\nvar = 2;\nprint 3;")
	if len(diags) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(diags), diags)
	}
	lines := diags.Lines()
	if lines[0] != 1 || lines[1] != 2 {
		t.Fatalf("unexpected error lines: %v", lines)
	}
	if !strings.Contains(diags[0].Error(), `got ";"`) {
		t.Fatalf("first error should name the found token: %v", diags[0])
	}
	if !strings.Contains(diags[1].Error(), "expected identifier") {
		t.Fatalf("second error should expect an identifier: %v", diags[1])
	}
	if len(program.Statements) != 1 {
		t.Fatalf("statement after the errors should still parse, got %d statements", len(program.Statements))
	}
}

func TestParseErrorInsideBlockKeepsBlock(t *testing.T) {
	program, diags := parseDiagnostics(t, "{ print 1 +; print 2; }")
	if len(diags) != 1 {
		t.Fatalf("expected 1 error, got %v", diags)
	}
	block, ok := program.Statements[0].(*BlockStmt)
	if !ok || len(block.Statements) != 1 {
		t.Fatalf("block should keep its valid statement: %#v", program.Statements)
	}
}

func TestParseReportsEndOfInput(t *testing.T) {
	_, diags := parseDiagnostics(t, "print 1")
	var parseErr *ParseError
	if !errors.As(diags[0], &parseErr) {
		t.Fatalf("expected ParseError, got %T", diags[0])
	}
	if parseErr.Found.Type != tokenEOF {
		t.Fatalf("expected EOF as found token, got %s", parseErr.Found)
	}
	if len(parseErr.Expected) != 1 || parseErr.Expected[0] != tokenSemicolon {
		t.Fatalf("unexpected expected set %v", parseErr.Expected)
	}
	if !strings.Contains(parseErr.Message, "end of input") {
		t.Fatalf("message should mention end of input: %s", parseErr.Message)
	}
}

func TestParseUnclosedBlock(t *testing.T) {
	_, diags := parseDiagnostics(t, "{ print 1;")
	if !strings.Contains(diags[0].Error(), `expected "}"`) {
		t.Fatalf("unexpected error: %v", diags[0])
	}
}

func TestParseLoopControlOutsideLoop(t *testing.T) {
	_, diags := parseDiagnostics(t, "break;\nif (true) { continue; }")
	if len(diags) != 2 {
		t.Fatalf("expected 2 errors, got %v", diags)
	}
	if !strings.Contains(diags[0].Error(), "'break' outside of a loop") {
		t.Fatalf("unexpected break error: %v", diags[0])
	}
	if !strings.Contains(diags[1].Error(), "'continue' outside of a loop") {
		t.Fatalf("unexpected continue error: %v", diags[1])
	}

	parseSource(t, "while (true) { if (x) break; else continue; }")
}

func TestParseExpressionRequiresEOF(t *testing.T) {
	tokens, _ := Scan("1 + 2")
	expr, err := ParseExpression(tokens)
	if err != nil {
		t.Fatalf("parse expression: %v", err)
	}
	if got := sexpr(expr); got != "(+ 1 2)" {
		t.Fatalf("unexpected expression %s", got)
	}

	tokens, _ = Scan("1 + 2;")
	if _, err := ParseExpression(tokens); err == nil {
		t.Fatalf("expected trailing semicolon to be rejected")
	}
}
