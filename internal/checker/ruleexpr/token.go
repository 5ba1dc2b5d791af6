package ruleexpr

import "fmt"

// TokenKind identifies the lexical class of a token.
type TokenKind int

// Token kinds produced by the lexer.
const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenOr     // ||
	TokenAnd    // &&
	TokenNot    // !
	TokenLParen // (
	TokenRParen // )
)

// String returns a human-readable name for the token kind, used in
// syntax-error messages.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of expression"
	case TokenIdent:
		return "identifier"
	case TokenOr:
		return `"||"`
	case TokenAnd:
		return `"&&"`
	case TokenNot:
		return `"!"`
	case TokenLParen:
		return `"("`
	case TokenRParen:
		return `")"`
	default:
		return "unknown token"
	}
}

// Token is one lexical unit of a rule expression. Pos is the byte offset of
// the token's first character within the expression text.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

func (t Token) String() string {
	if t.Kind == TokenIdent {
		return fmt.Sprintf("%q", t.Text)
	}
	return t.Kind.String()
}
