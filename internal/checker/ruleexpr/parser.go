// Package ruleexpr implements the rule expression language: a lexer and
// recursive-descent parser producing a small AST of fact-query calls joined
// by short-circuiting boolean operators.
//
// Grammar, lowest to highest precedence:
//
//	expr    := or
//	or      := and ( "||" and )*
//	and     := unary ( "&&" unary )*
//	unary   := "!" unary | primary
//	primary := "(" expr ")" | NAME "(" [ SYMBOL ] ")"
//
// NAME is one of AVAILABLE, USED, SIZE, TYPE (one symbol argument) or
// LARGEST (no argument). Parsing is purely syntactic; symbol names are never
// validated against any binary.
package ruleexpr

// keywords maps function spellings to their kinds. Recognized only in call
// position; the same spellings are ordinary symbol names as arguments.
var keywords = map[string]FuncKind{
	"AVAILABLE": FuncAvailable,
	"USED":      FuncUsed,
	"SIZE":      FuncSize,
	"TYPE":      FuncType,
	"LARGEST":   FuncLargest,
}

// parser holds one token of lookahead over the lexer.
type parser struct {
	lex *lexer
	tok Token
}

// Parse parses one rule expression into its AST. It fails with *SyntaxError
// for malformed input (including empty text and trailing garbage) and with
// *UnknownFunctionError for an unrecognized function name.
func Parse(input string) (Expr, error) {
	p := &parser{lex: newLexer(input)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.Kind == TokenEOF {
		return nil, &SyntaxError{Pos: p.tok.Pos, Got: p.tok.String(), Want: "expression"}
	}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != TokenEOF {
		return nil, &SyntaxError{Pos: p.tok.Pos, Got: p.tok.String(), Want: "end of expression"}
	}
	return expr, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// expect consumes the current token if it has the given kind and fails
// otherwise.
func (p *parser) expect(kind TokenKind) (Token, error) {
	if p.tok.Kind != kind {
		return Token{}, &SyntaxError{Pos: p.tok.Pos, Got: p.tok.String(), Want: kind.String()}
	}
	tok := p.tok
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == TokenOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == TokenAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.tok.Kind == TokenNot {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Not{Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	switch p.tok.Kind {
	case TokenLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return expr, nil
	case TokenIdent:
		return p.parseCall()
	default:
		return nil, &SyntaxError{Pos: p.tok.Pos, Got: p.tok.String(), Want: "function call or \"(\""}
	}
}

// parseCall parses NAME "(" [ SYMBOL ] ")". The name must be a recognized
// keyword; the argument is an opaque symbol name even when it spells a
// keyword.
func (p *parser) parseCall() (Expr, error) {
	name := p.tok
	fn, ok := keywords[name.Text]
	if !ok {
		return nil, &UnknownFunctionError{Pos: name.Pos, Name: name.Text}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	if fn == FuncLargest {
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return &Call{Fn: fn}, nil
	}

	sym, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return &Call{Fn: fn, Symbol: sym.Text}, nil
}
