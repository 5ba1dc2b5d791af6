package ruleexpr

import "fmt"

// SyntaxError reports a malformed rule expression. Pos is the byte offset of
// the offending token within the expression text.
type SyntaxError struct {
	Pos  int
	Got  string
	Want string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: got %s, want %s", e.Pos, e.Got, e.Want)
}

// UnknownFunctionError reports an identifier used in call position that is
// not one of the recognized fact-query functions.
type UnknownFunctionError struct {
	Pos  int
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function %q at offset %d", e.Name, e.Pos)
}
