package lox

import (
	"fmt"
	"sort"
)

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenInvalid TokenType = "INVALID"
	tokenEOF     TokenType = "EOF"

	tokenIdent   TokenType = "IDENTIFIER"
	tokenNumber  TokenType = "NUMBER"
	tokenString  TokenType = "STRING"
	tokenComment TokenType = "COMMENT"

	tokenLParen    TokenType = "("
	tokenRParen    TokenType = ")"
	tokenLBrace    TokenType = "{"
	tokenRBrace    TokenType = "}"
	tokenComma     TokenType = ","
	tokenDot       TokenType = "."
	tokenMinus     TokenType = "-"
	tokenPlus      TokenType = "+"
	tokenSemicolon TokenType = ";"
	tokenSlash     TokenType = "/"
	tokenAsterisk  TokenType = "*"

	tokenBang   TokenType = "!"
	tokenNotEQ  TokenType = "!="
	tokenAssign TokenType = "="
	tokenEQ     TokenType = "=="
	tokenGT     TokenType = ">"
	tokenGTE    TokenType = ">="
	tokenLT     TokenType = "<"
	tokenLTE    TokenType = "<="

	tokenAnd      TokenType = "AND"
	tokenClass    TokenType = "CLASS"
	tokenElse     TokenType = "ELSE"
	tokenFalse    TokenType = "FALSE"
	tokenFor      TokenType = "FOR"
	tokenFun      TokenType = "FUN"
	tokenIf       TokenType = "IF"
	tokenNil      TokenType = "NIL"
	tokenOr       TokenType = "OR"
	tokenPrint    TokenType = "PRINT"
	tokenReturn   TokenType = "RETURN"
	tokenSuper    TokenType = "SUPER"
	tokenThis     TokenType = "THIS"
	tokenTrue     TokenType = "TRUE"
	tokenVar      TokenType = "VAR"
	tokenWhile    TokenType = "WHILE"
	tokenBreak    TokenType = "BREAK"
	tokenContinue TokenType = "CONTINUE"
)

var keywords = map[string]TokenType{
	"and":      tokenAnd,
	"break":    tokenBreak,
	"class":    tokenClass,
	"continue": tokenContinue,
	"else":     tokenElse,
	"false":    tokenFalse,
	"for":      tokenFor,
	"fun":      tokenFun,
	"if":       tokenIf,
	"nil":      tokenNil,
	"or":       tokenOr,
	"print":    tokenPrint,
	"return":   tokenReturn,
	"super":    tokenSuper,
	"this":     tokenThis,
	"true":     tokenTrue,
	"var":      tokenVar,
	"while":    tokenWhile,
}

// Keywords returns the reserved words in sorted order.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for word := range keywords {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

func lookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return tokenIdent
}

// Token captures lexical information for the parser. Literal is only
// meaningful when HasLiteral is set: strings, numbers and the constant
// keywords true, false and nil carry one.
type Token struct {
	Type       TokenType
	Lexeme     string
	Literal    Value
	HasLiteral bool
	Line       int
}

func (t Token) String() string {
	literal := "(none)"
	if t.HasLiteral {
		literal = t.Literal.String()
	}
	return fmt.Sprintf("<%s@%d (%s, %s)>", t.Type, t.Line, t.Lexeme, literal)
}

func simpleToken(tt TokenType, line int) Token {
	if tt == tokenEOF {
		return Token{Type: tt, Line: line}
	}
	return Token{Type: tt, Lexeme: string(tt), Line: line}
}

// wordToken builds an identifier or keyword token; the constant keywords
// carry their runtime value as the literal.
func wordToken(word string, line int) Token {
	tok := Token{Type: lookupIdent(word), Lexeme: word, Line: line}
	switch tok.Type {
	case tokenTrue:
		tok.Literal, tok.HasLiteral = NewBool(true), true
	case tokenFalse:
		tok.Literal, tok.HasLiteral = NewBool(false), true
	case tokenNil:
		tok.Literal, tok.HasLiteral = NewNil(), true
	}
	return tok
}
