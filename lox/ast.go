package lox

type Node interface {
	Line() int
}

// Statement and Expression are closed: only the node types in this package
// implement them, and the evaluator switches over every variant.
type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

// Program is the statement sequence produced by one parse.
type Program struct {
	Statements []Statement
	source     string
}

func (p *Program) Line() int {
	if len(p.Statements) == 0 {
		return 0
	}
	return p.Statements[0].Line()
}

type LiteralExpr struct {
	Value Value
	line  int
}

func (e *LiteralExpr) exprNode() {}
func (e *LiteralExpr) Line() int { return e.line }

type GroupingExpr struct {
	Expr Expression
	line int
}

func (e *GroupingExpr) exprNode() {}
func (e *GroupingExpr) Line() int { return e.line }

type UnaryExpr struct {
	Operator Token
	Right    Expression
}

func (e *UnaryExpr) exprNode() {}
func (e *UnaryExpr) Line() int { return e.Operator.Line }

type BinaryExpr struct {
	Left     Expression
	Operator Token
	Right    Expression
}

func (e *BinaryExpr) exprNode() {}
func (e *BinaryExpr) Line() int { return e.Operator.Line }

// LogicalExpr is an `and`/`or` expression. Unlike BinaryExpr its right side
// is only evaluated when the left side does not decide the result.
type LogicalExpr struct {
	Left     Expression
	Operator Token
	Right    Expression
}

func (e *LogicalExpr) exprNode() {}
func (e *LogicalExpr) Line() int { return e.Operator.Line }

type VariableExpr struct {
	Name Token
}

func (e *VariableExpr) exprNode() {}
func (e *VariableExpr) Line() int { return e.Name.Line }

type AssignExpr struct {
	Name  Token
	Value Expression
}

func (e *AssignExpr) exprNode() {}
func (e *AssignExpr) Line() int { return e.Name.Line }
