package lox

import (
	"fmt"
	"strings"
)

func (p *parser) errorExpected(tok Token, expected ...TokenType) {
	p.addParseError(tok, expected, fmt.Sprintf("expected %s, got %s", expectedLabel(expected), foundLabel(tok)))
}

func (p *parser) addParseError(tok Token, expected []TokenType, msg string) {
	p.errors = append(p.errors, &ParseError{
		Line:     tok.Line,
		Expected: append([]TokenType(nil), expected...),
		Found:    tok,
		Message:  msg,
	})
}

func expectedLabel(expected []TokenType) string {
	labels := make([]string, len(expected))
	for i, tt := range expected {
		labels[i] = tokenLabel(tt)
	}
	switch len(labels) {
	case 0:
		return "nothing"
	case 1:
		return labels[0]
	default:
		return strings.Join(labels[:len(labels)-1], ", ") + " or " + labels[len(labels)-1]
	}
}

func foundLabel(tok Token) string {
	switch tok.Type {
	case tokenEOF:
		return "end of input"
	case tokenIdent, tokenNumber, tokenString:
		return fmt.Sprintf("%s %s", tokenLabel(tok.Type), tok.Lexeme)
	default:
		return tokenLabel(tok.Type)
	}
}

func tokenLabel(tt TokenType) string {
	switch tt {
	case tokenInvalid:
		return "invalid token"
	case tokenEOF:
		return "end of input"
	case tokenIdent:
		return "identifier"
	case tokenNumber:
		return "number"
	case tokenString:
		return "string"
	case tokenComment:
		return "comment"
	default:
		if len(tt) <= 2 {
			return fmt.Sprintf("%q", string(tt))
		}
		return fmt.Sprintf("'%s'", strings.ToLower(string(tt)))
	}
}
