package ruleexpr

import "fmt"

// FuncKind identifies one of the fixed fact-query functions the rule
// language provides. Function names are keywords only in call position;
// everywhere else the same spelling is an ordinary symbol name.
type FuncKind int

// Fact-query functions.
const (
	// FuncAvailable tests whether a symbol is defined anywhere in the
	// closure.
	FuncAvailable FuncKind = iota

	// FuncUsed tests whether a symbol is actually consumed by the
	// closure (imported by a member, or defined by the root itself).
	FuncUsed

	// FuncSize queries the size of the first definition of a symbol.
	FuncSize

	// FuncType queries the symbol type of the first definition.
	FuncType

	// FuncLargest queries the largest defined-symbol size in the
	// closure. It takes no argument.
	FuncLargest
)

// String returns the keyword spelling of the function.
func (k FuncKind) String() string {
	switch k {
	case FuncAvailable:
		return "AVAILABLE"
	case FuncUsed:
		return "USED"
	case FuncSize:
		return "SIZE"
	case FuncType:
		return "TYPE"
	case FuncLargest:
		return "LARGEST"
	default:
		return "UNKNOWN"
	}
}

// Expr is one node of a parsed rule expression. The concrete types form a
// closed set (Call, Binary, Not); the evaluator switches over them rather
// than dispatching behavior through the nodes themselves.
type Expr interface {
	fmt.Stringer

	// isExpr restricts implementations to this package.
	isExpr()
}

// Call is a fact-query function applied to a symbol name, e.g.
// AVAILABLE(strcpy). Symbol is empty for zero-argument functions.
type Call struct {
	Fn     FuncKind
	Symbol string
}

func (*Call) isExpr() {}

func (c *Call) String() string {
	return fmt.Sprintf("%s(%s)", c.Fn, c.Symbol)
}

// BinaryOp is a short-circuiting boolean connective.
type BinaryOp int

// Binary operators.
const (
	OpAnd BinaryOp = iota
	OpOr
)

func (op BinaryOp) String() string {
	if op == OpAnd {
		return "&&"
	}
	return "||"
}

// Binary combines two sub-expressions with && or ||.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*Binary) isExpr() {}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// Not negates a sub-expression.
type Not struct {
	Operand Expr
}

func (*Not) isExpr() {}

func (n *Not) String() string {
	return fmt.Sprintf("!%s", n.Operand)
}
