package lox

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

// parser is a recursive-descent parser with precedence climbing for binary
// operators. Every parse method starts with curToken on the first token of
// its construct and returns with curToken on the last one. A nil result means
// an error was recorded.
type parser struct {
	tokens []Token
	next   int

	curToken  Token
	peekToken Token

	errors    Diagnostics
	loopDepth int

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn
}

// Parse builds a Program from a token sequence. COMMENT tokens are skipped.
// When the input has syntax errors the returned error is a Diagnostics
// holding one *ParseError per independent problem, and the Program holds the
// statements that did parse.
func Parse(tokens []Token) (*Program, error) {
	p := newParser(tokens)
	program := p.ParseProgram()
	if len(p.errors) > 0 {
		return program, p.errors
	}
	return program, nil
}

// ParseExpression parses tokens holding exactly one expression.
func ParseExpression(tokens []Token) (Expression, error) {
	p := newParser(tokens)
	expr := p.parseExpression(lowestPrec)
	if expr != nil && p.peekToken.Type != tokenEOF {
		p.errorExpected(p.peekToken, tokenEOF)
	}
	if len(p.errors) > 0 {
		return nil, p.errors
	}
	return expr, nil
}

func newParser(tokens []Token) *parser {
	p := &parser{tokens: tokens}

	p.prefixFns = make(map[TokenType]prefixParseFn)
	p.infixFns = make(map[TokenType]infixParseFn)

	p.registerPrefix(tokenIdent, p.parseIdentifier)
	p.registerPrefix(tokenNumber, p.parseLiteral)
	p.registerPrefix(tokenString, p.parseLiteral)
	p.registerPrefix(tokenTrue, p.parseLiteral)
	p.registerPrefix(tokenFalse, p.parseLiteral)
	p.registerPrefix(tokenNil, p.parseLiteral)
	p.registerPrefix(tokenLParen, p.parseGroupedExpression)
	p.registerPrefix(tokenBang, p.parsePrefixExpression)
	p.registerPrefix(tokenMinus, p.parsePrefixExpression)

	p.infixFns[tokenAssign] = p.parseAssignExpression
	p.infixFns[tokenOr] = p.parseLogicalExpression
	p.infixFns[tokenAnd] = p.parseLogicalExpression
	p.infixFns[tokenEQ] = p.parseInfixExpression
	p.infixFns[tokenNotEQ] = p.parseInfixExpression
	p.infixFns[tokenLT] = p.parseInfixExpression
	p.infixFns[tokenLTE] = p.parseInfixExpression
	p.infixFns[tokenGT] = p.parseInfixExpression
	p.infixFns[tokenGTE] = p.parseInfixExpression
	p.infixFns[tokenPlus] = p.parseInfixExpression
	p.infixFns[tokenMinus] = p.parseInfixExpression
	p.infixFns[tokenSlash] = p.parseInfixExpression
	p.infixFns[tokenAsterisk] = p.parseInfixExpression

	p.nextToken()
	p.nextToken()

	return p
}

func (p *parser) registerPrefix(tt TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.readToken()
}

func (p *parser) readToken() Token {
	for p.next < len(p.tokens) {
		tok := p.tokens[p.next]
		p.next++
		if tok.Type == tokenComment {
			continue
		}
		return tok
	}
	// A well-formed stream ends in EOF already; this keeps a truncated one
	// from running off the end.
	line := 1
	if len(p.tokens) > 0 {
		line = p.tokens[len(p.tokens)-1].Line
	}
	return simpleToken(tokenEOF, line)
}

func (p *parser) ParseProgram() *Program {
	program := &Program{}

	for p.curToken.Type != tokenEOF {
		stmt := p.parseDeclaration()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
			p.nextToken()
		}
	}

	return program
}

// parseDeclaration is the recovery point: when the declaration fails it
// discards tokens up to the next statement boundary.
func (p *parser) parseDeclaration() Statement {
	var stmt Statement
	if p.curToken.Type == tokenVar {
		stmt = p.parseVarDeclaration()
	} else {
		stmt = p.parseStatement()
	}
	if stmt == nil {
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *parser) synchronize() {
	for p.curToken.Type != tokenEOF {
		if p.curToken.Type == tokenSemicolon {
			p.nextToken()
			return
		}
		p.nextToken()
		switch p.curToken.Type {
		case tokenClass, tokenFun, tokenVar, tokenFor, tokenIf, tokenWhile, tokenPrint, tokenReturn:
			return
		}
	}
}

func (p *parser) parseStatement() Statement {
	switch p.curToken.Type {
	case tokenPrint:
		return p.parsePrintStatement()
	case tokenLBrace:
		return p.parseBlockStatement()
	case tokenIf:
		return p.parseIfStatement()
	case tokenFor:
		return p.parseForStatement()
	case tokenWhile:
		return p.parseWhileStatement()
	case tokenBreak, tokenContinue:
		return p.parseLoopControlStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseVarDeclaration() Statement {
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	name := p.curToken

	var initializer Expression
	if p.peekToken.Type == tokenAssign {
		p.nextToken()
		p.nextToken()
		initializer = p.parseExpression(lowestPrec)
		if initializer == nil {
			return nil
		}
	}

	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return &VarStmt{Name: name, Initializer: initializer}
}

func (p *parser) parsePrintStatement() Statement {
	line := p.curToken.Line
	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return &PrintStmt{Expr: expr, line: line}
}

func (p *parser) parseExpressionStatement() Statement {
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return &ExprStmt{Expr: expr}
}

func (p *parser) parseBlockStatement() Statement {
	line := p.curToken.Line
	stmts := []Statement{}

	p.nextToken()
	for p.curToken.Type != tokenRBrace && p.curToken.Type != tokenEOF {
		stmt := p.parseDeclaration()
		if stmt != nil {
			stmts = append(stmts, stmt)
			p.nextToken()
		}
	}

	if p.curToken.Type != tokenRBrace {
		p.errorExpected(p.curToken, tokenRBrace)
		return nil
	}
	return &BlockStmt{Statements: stmts, line: line}
}

func (p *parser) parseIfStatement() Statement {
	line := p.curToken.Line
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if condition == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}

	p.nextToken()
	thenBranch := p.parseStatement()
	if thenBranch == nil {
		return nil
	}

	var elseBranch Statement
	if p.peekToken.Type == tokenElse {
		p.nextToken()
		p.nextToken()
		elseBranch = p.parseStatement()
		if elseBranch == nil {
			return nil
		}
	}

	return &IfStmt{Condition: condition, Then: thenBranch, Else: elseBranch, line: line}
}

// parseForStatement handles the C-style header. A missing condition becomes
// the literal true and the increment becomes an expression statement run
// after the body.
func (p *parser) parseForStatement() Statement {
	line := p.curToken.Line
	if !p.expectPeek(tokenLParen) {
		return nil
	}

	p.nextToken()
	var initializer Statement
	switch p.curToken.Type {
	case tokenSemicolon:
	case tokenVar:
		initializer = p.parseVarDeclaration()
		if initializer == nil {
			return nil
		}
	default:
		initializer = p.parseExpressionStatement()
		if initializer == nil {
			return nil
		}
	}

	var condition Expression
	if p.peekToken.Type == tokenSemicolon {
		p.nextToken()
		condition = &LiteralExpr{Value: NewBool(true), line: p.curToken.Line}
	} else {
		p.nextToken()
		condition = p.parseExpression(lowestPrec)
		if condition == nil {
			return nil
		}
		if !p.expectPeek(tokenSemicolon) {
			return nil
		}
	}

	var increment Statement
	if p.peekToken.Type == tokenRParen {
		p.nextToken()
	} else {
		p.nextToken()
		expr := p.parseExpression(lowestPrec)
		if expr == nil {
			return nil
		}
		if !p.expectPeek(tokenRParen) {
			return nil
		}
		increment = &ExprStmt{Expr: expr}
	}

	p.nextToken()
	body := p.parseLoopBody()
	if body == nil {
		return nil
	}

	return &ForStmt{Initializer: initializer, Condition: condition, Increment: increment, Body: body, line: line}
}

func (p *parser) parseWhileStatement() Statement {
	line := p.curToken.Line
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if condition == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}

	p.nextToken()
	body := p.parseLoopBody()
	if body == nil {
		return nil
	}
	return &ForStmt{Condition: condition, Body: body, line: line}
}

func (p *parser) parseLoopBody() Statement {
	p.loopDepth++
	defer func() {
		p.loopDepth--
	}()
	return p.parseStatement()
}

func (p *parser) parseLoopControlStatement() Statement {
	tok := p.curToken
	if p.loopDepth == 0 {
		p.addParseError(tok, nil, tokenLabel(tok.Type)+" outside of a loop")
		return nil
	}
	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	if tok.Type == tokenBreak {
		return &BreakStmt{line: tok.Line}
	}
	return &ContinueStmt{line: tok.Line}
}
