package ruleexpr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ValidExpressions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // canonical String() rendering
	}{
		{
			name:  "single available call",
			input: "AVAILABLE(strcpy)",
			want:  "AVAILABLE(strcpy)",
		},
		{
			name:  "largest takes no argument",
			input: "LARGEST()",
			want:  "LARGEST()",
		},
		{
			name:  "and binds tighter than or",
			input: "AVAILABLE(a) || USED(b) && USED(c)",
			want:  "(AVAILABLE(a) || (USED(b) && USED(c)))",
		},
		{
			name:  "parentheses override precedence",
			input: "(AVAILABLE(a) || USED(b)) && USED(c)",
			want:  "((AVAILABLE(a) || USED(b)) && USED(c))",
		},
		{
			name:  "not binds tighter than and",
			input: "!AVAILABLE(a) && USED(b)",
			want:  "(!AVAILABLE(a) && USED(b))",
		},
		{
			name:  "double negation",
			input: "!!SIZE(x)",
			want:  "!!SIZE(x)",
		},
		{
			name:  "and is left associative",
			input: "USED(a) && USED(b) && USED(c)",
			want:  "((USED(a) && USED(b)) && USED(c))",
		},
		{
			name:  "keyword spelling as symbol argument",
			input: "AVAILABLE(SIZE)",
			want:  "AVAILABLE(SIZE)",
		},
		{
			name:  "versioned symbol name",
			input: "USED(memcpy@GLIBC_2.14)",
			want:  "USED(memcpy@GLIBC_2.14)",
		},
		{
			name:  "surrounding whitespace",
			input: "  TYPE( my_global )  ",
			want:  "TYPE(my_global)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr.String())
		})
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty expression", input: ""},
		{name: "whitespace only", input: "   "},
		{name: "unbalanced open paren", input: "(AVAILABLE(a)"},
		{name: "unbalanced close paren", input: "AVAILABLE(a))"},
		{name: "missing call parens", input: "AVAILABLE"},
		{name: "missing argument", input: "AVAILABLE()"},
		{name: "largest with argument", input: "LARGEST(foo)"},
		{name: "trailing operator", input: "AVAILABLE(a) &&"},
		{name: "leading operator", input: "|| AVAILABLE(a)"},
		{name: "single ampersand", input: "AVAILABLE(a) & USED(b)"},
		{name: "single pipe", input: "AVAILABLE(a) | USED(b)"},
		{name: "stray character", input: "AVAILABLE(a) # USED(b)"},
		{name: "two calls without operator", input: "AVAILABLE(a) USED(b)"},
		{name: "not without operand", input: "!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			var synErr *SyntaxError
			assert.ErrorAs(t, err, &synErr)
		})
	}
}

func TestParse_UnknownFunction(t *testing.T) {
	_, err := Parse("DEFINED(strcpy)")
	require.Error(t, err)

	var unknownErr *UnknownFunctionError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "DEFINED", unknownErr.Name)
	assert.Equal(t, 0, unknownErr.Pos)
}

func TestParse_SyntaxErrorPosition(t *testing.T) {
	_, err := Parse("AVAILABLE(a) && )")
	require.Error(t, err)

	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, 16, synErr.Pos)
}

func TestParse_ErrorMessageNamesToken(t *testing.T) {
	_, err := Parse("USED(a) ||")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end of expression")
}

func TestParse_DoesNotValidateSymbols(t *testing.T) {
	// Parsing is purely syntactic; names that exist nowhere still parse.
	expr, err := Parse("AVAILABLE(symbol_that_exists_nowhere_at_all)")
	require.NoError(t, err)
	require.IsType(t, &Call{}, expr)
	assert.Equal(t, "symbol_that_exists_nowhere_at_all", expr.(*Call).Symbol)
}

func TestParse_IsSyntaxErrorNotPanic(t *testing.T) {
	// Deeply nested but balanced input parses fine.
	input := "!(!(!(!(AVAILABLE(a)))))"
	expr, err := Parse(input)
	require.NoError(t, err)
	assert.NotNil(t, expr)
}

func TestLexer_TokenPositions(t *testing.T) {
	lex := newLexer("!( foo )")
	wantKinds := []TokenKind{TokenNot, TokenLParen, TokenIdent, TokenRParen, TokenEOF}
	wantPos := []int{0, 1, 3, 7, 8}

	for i, kind := range wantKinds {
		tok, err := lex.next()
		require.NoError(t, err)
		assert.Equal(t, kind, tok.Kind, "token %d kind", i)
		assert.Equal(t, wantPos[i], tok.Pos, "token %d position", i)
	}
}

func TestLexer_RejectsUnlexableInput(t *testing.T) {
	lex := newLexer(`"quoted"`)
	_, err := lex.next()
	require.Error(t, err)
	assert.True(t, errors.As(err, new(*SyntaxError)))
}
