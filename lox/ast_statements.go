package lox

type ExprStmt struct {
	Expr Expression
}

func (s *ExprStmt) stmtNode() {}
func (s *ExprStmt) Line() int { return s.Expr.Line() }

type PrintStmt struct {
	Expr Expression
	line int
}

func (s *PrintStmt) stmtNode() {}
func (s *PrintStmt) Line() int { return s.line }

// VarStmt declares Name in the current scope. A nil Initializer binds nil.
type VarStmt struct {
	Name        Token
	Initializer Expression
}

func (s *VarStmt) stmtNode() {}
func (s *VarStmt) Line() int { return s.Name.Line }

type BlockStmt struct {
	Statements []Statement
	line       int
}

func (s *BlockStmt) stmtNode() {}
func (s *BlockStmt) Line() int { return s.line }

type IfStmt struct {
	Condition Expression
	Then      Statement
	Else      Statement
	line      int
}

func (s *IfStmt) stmtNode() {}
func (s *IfStmt) Line() int { return s.line }

// ForStmt is the only loop construct. `while` loops parse into a ForStmt
// without Initializer and Increment; Condition is never nil.
type ForStmt struct {
	Initializer Statement
	Condition   Expression
	Increment   Statement
	Body        Statement
	line        int
}

func (s *ForStmt) stmtNode() {}
func (s *ForStmt) Line() int { return s.line }

type BreakStmt struct {
	line int
}

func (s *BreakStmt) stmtNode() {}
func (s *BreakStmt) Line() int { return s.line }

type ContinueStmt struct {
	line int
}

func (s *ContinueStmt) stmtNode() {}
func (s *ContinueStmt) Line() int { return s.line }
