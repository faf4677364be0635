package lox

const (
	lowestPrec = iota
	precAssign
	precOr
	precAnd
	precEquality
	precComparison
	precSum
	precProduct
	precPrefix
)

var precedences = map[TokenType]int{
	tokenAssign:   precAssign,
	tokenOr:       precOr,
	tokenAnd:      precAnd,
	tokenEQ:       precEquality,
	tokenNotEQ:    precEquality,
	tokenLT:       precComparison,
	tokenLTE:      precComparison,
	tokenGT:       precComparison,
	tokenGTE:      precComparison,
	tokenPlus:     precSum,
	tokenMinus:    precSum,
	tokenSlash:    precProduct,
	tokenAsterisk: precProduct,
}

// primaryTokens lists what may start an expression, for error messages.
var primaryTokens = []TokenType{
	tokenNumber,
	tokenString,
	tokenTrue,
	tokenFalse,
	tokenNil,
	tokenIdent,
	tokenLParen,
	tokenBang,
	tokenMinus,
}

// parseExpression parses operators binding tighter than precedence. Operators
// of equal precedence are folded into the left operand by the loop, which
// makes them left-associative without recursion on the right.
func (p *parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorExpected(p.curToken, primaryTokens...)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for p.peekToken.Type != tokenEOF && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *parser) parseIdentifier() Expression {
	return &VariableExpr{Name: p.curToken}
}

func (p *parser) parseLiteral() Expression {
	return &LiteralExpr{Value: p.curToken.Literal, line: p.curToken.Line}
}

func (p *parser) parseGroupedExpression() Expression {
	line := p.curToken.Line
	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return &GroupingExpr{Expr: expr, line: line}
}

func (p *parser) parsePrefixExpression() Expression {
	operator := p.curToken
	p.nextToken()
	right := p.parseExpression(precPrefix)
	if right == nil {
		return nil
	}
	return &UnaryExpr{Operator: operator, Right: right}
}

func (p *parser) parseInfixExpression(left Expression) Expression {
	operator := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &BinaryExpr{Left: left, Operator: operator, Right: right}
}

func (p *parser) parseLogicalExpression(left Expression) Expression {
	operator := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &LogicalExpr{Left: left, Operator: operator, Right: right}
}

// parseAssignExpression is right-associative: the value is parsed one level
// below assignment so a chained `a = b = c` nests to the right.
func (p *parser) parseAssignExpression(target Expression) Expression {
	equals := p.curToken
	p.nextToken()
	value := p.parseExpression(precAssign - 1)
	if value == nil {
		return nil
	}
	variable, ok := target.(*VariableExpr)
	if !ok {
		p.addParseError(equals, nil, "invalid assignment target")
		return nil
	}
	return &AssignExpr{Name: variable.Name, Value: value}
}

func (p *parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) expectPeek(tt TokenType) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.errorExpected(p.peekToken, tt)
	return false
}
