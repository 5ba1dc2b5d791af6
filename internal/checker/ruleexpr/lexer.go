package ruleexpr

// lexer splits rule expression text into tokens. Identifiers are bare
// symbol or function names; the only operators are "&&", "||", "!" and
// parentheses. There is no quoting or escaping.
type lexer struct {
	input string
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

// next returns the next token, or a SyntaxError for characters that cannot
// start any token.
func (l *lexer) next() (Token, error) {
	l.skipSpace()
	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Pos: l.pos}, nil
	}

	start := l.pos
	switch c := l.input[l.pos]; c {
	case '(':
		l.pos++
		return Token{Kind: TokenLParen, Text: "(", Pos: start}, nil
	case ')':
		l.pos++
		return Token{Kind: TokenRParen, Text: ")", Pos: start}, nil
	case '!':
		l.pos++
		return Token{Kind: TokenNot, Text: "!", Pos: start}, nil
	case '&':
		if l.pos+1 < len(l.input) && l.input[l.pos+1] == '&' {
			l.pos += 2
			return Token{Kind: TokenAnd, Text: "&&", Pos: start}, nil
		}
		return Token{}, &SyntaxError{Pos: start, Got: `"&"`, Want: `"&&"`}
	case '|':
		if l.pos+1 < len(l.input) && l.input[l.pos+1] == '|' {
			l.pos += 2
			return Token{Kind: TokenOr, Text: "||", Pos: start}, nil
		}
		return Token{}, &SyntaxError{Pos: start, Got: `"|"`, Want: `"||"`}
	default:
		if isIdentChar(c) {
			for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
				l.pos++
			}
			return Token{Kind: TokenIdent, Text: l.input[start:l.pos], Pos: start}, nil
		}
		return Token{}, &SyntaxError{Pos: start, Got: string(c), Want: "identifier or operator"}
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

// isIdentChar reports whether c may appear in a symbol or function name.
// The set covers versioned symbol names like "memcpy@GLIBC_2.14".
func isIdentChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_' || c == '.' || c == '@':
		return true
	default:
		return false
	}
}
