package lox

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type scanner struct {
	input string

	start  int
	offset int
	line   int

	tokens []Token
	errors Diagnostics
}

// Scan converts source text into tokens terminated by an EOF token. Comments
// are kept as COMMENT tokens. Every problem found is reported in the returned
// Diagnostics; the tokens scanned around the problems are returned as well.
func Scan(source string) ([]Token, error) {
	s := &scanner{input: source, line: 1}
	s.scanTokens()
	if len(s.errors) > 0 {
		return s.tokens, s.errors
	}
	return s.tokens, nil
}

func (s *scanner) scanTokens() {
	for !s.atEnd() {
		s.start = s.offset
		s.scanToken()
	}
	s.tokens = append(s.tokens, simpleToken(tokenEOF, s.line))
}

func (s *scanner) atEnd() bool {
	return s.offset >= len(s.input)
}

func (s *scanner) advance() rune {
	r, w := utf8.DecodeRuneInString(s.input[s.offset:])
	s.offset += w
	return r
}

func (s *scanner) peek() rune {
	if s.atEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.offset:])
	return r
}

func (s *scanner) peekNext() rune {
	if s.atEnd() {
		return 0
	}
	_, w := utf8.DecodeRuneInString(s.input[s.offset:])
	if s.offset+w >= len(s.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.offset+w:])
	return r
}

func (s *scanner) match(expected rune) bool {
	if s.atEnd() || s.peek() != expected {
		return false
	}
	s.advance()
	return true
}

func (s *scanner) scanToken() {
	r := s.advance()
	switch r {
	case '(':
		s.addSimple(tokenLParen)
	case ')':
		s.addSimple(tokenRParen)
	case '{':
		s.addSimple(tokenLBrace)
	case '}':
		s.addSimple(tokenRBrace)
	case ',':
		s.addSimple(tokenComma)
	case '.':
		s.addSimple(tokenDot)
	case '-':
		s.addSimple(tokenMinus)
	case '+':
		s.addSimple(tokenPlus)
	case ';':
		s.addSimple(tokenSemicolon)
	case '*':
		s.addSimple(tokenAsterisk)
	case '!':
		s.addSimple(s.either('=', tokenNotEQ, tokenBang))
	case '=':
		s.addSimple(s.either('=', tokenEQ, tokenAssign))
	case '>':
		s.addSimple(s.either('=', tokenGTE, tokenGT))
	case '<':
		s.addSimple(s.either('=', tokenLTE, tokenLT))
	case '/':
		switch {
		case s.match('/'):
			s.lineComment()
		case s.match('*'):
			s.blockComment()
		default:
			s.addSimple(tokenSlash)
		}
	case '"':
		s.stringLiteral()
	case '\n':
		s.line++
	default:
		switch {
		case isDigit(r):
			s.number()
		case unicode.IsLetter(r):
			s.identifier()
		case unicode.IsSpace(r):
		default:
			s.addError(s.line, fmt.Sprintf("unexpected character %q", r))
		}
	}
}

func (s *scanner) either(next rune, matched, single TokenType) TokenType {
	if s.match(next) {
		return matched
	}
	return single
}

func (s *scanner) addSimple(tt TokenType) {
	s.tokens = append(s.tokens, simpleToken(tt, s.line))
}

func (s *scanner) addError(line int, msg string) {
	s.errors = append(s.errors, &ScanError{Line: line, Message: msg})
}

func (s *scanner) lexeme() string {
	return s.input[s.start:s.offset]
}

func (s *scanner) lineComment() {
	for !s.atEnd() && s.peek() != '\n' {
		s.advance()
	}
	s.tokens = append(s.tokens, Token{Type: tokenComment, Lexeme: s.lexeme(), Line: s.line})
}

// blockComment consumes a /* ... */ comment. Comments nest: every inner /*
// needs its own */.
func (s *scanner) blockComment() {
	startLine := s.line
	depth := 1
	for depth > 0 {
		if s.atEnd() {
			s.addError(startLine, "unterminated block comment")
			return
		}
		r := s.advance()
		switch {
		case r == '\n':
			s.line++
		case r == '/' && s.peek() == '*':
			s.advance()
			depth++
		case r == '*' && s.peek() == '/':
			s.advance()
			depth--
		}
	}
	s.tokens = append(s.tokens, Token{Type: tokenComment, Lexeme: s.lexeme(), Line: startLine})
}

func (s *scanner) stringLiteral() {
	startLine := s.line
	var sb strings.Builder
	for {
		if s.atEnd() {
			s.addError(startLine, "unterminated string")
			return
		}
		r := s.advance()
		switch r {
		case '"':
			s.tokens = append(s.tokens, Token{
				Type:       tokenString,
				Lexeme:     s.lexeme(),
				Literal:    NewString(sb.String()),
				HasLiteral: true,
				Line:       startLine,
			})
			return
		case '\n':
			s.line++
			sb.WriteRune(r)
		case '\\':
			if s.atEnd() {
				continue
			}
			next := s.advance()
			switch next {
			case '"', '\\':
				sb.WriteRune(next)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				if next == '\n' {
					s.line++
				}
				sb.WriteRune('\\')
				sb.WriteRune(next)
			}
		default:
			sb.WriteRune(r)
		}
	}
}

func (s *scanner) number() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	text := s.lexeme()
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		s.addError(s.line, fmt.Sprintf("invalid number literal %s", text))
		return
	}
	s.tokens = append(s.tokens, Token{
		Type:       tokenNumber,
		Lexeme:     text,
		Literal:    NewNumber(value),
		HasLiteral: true,
		Line:       s.line,
	})
}

func (s *scanner) identifier() {
	for isIdentifierRune(s.peek()) {
		s.advance()
	}
	s.tokens = append(s.tokens, wordToken(s.lexeme(), s.line))
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
