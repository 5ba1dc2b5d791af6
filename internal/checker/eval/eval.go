// Package eval walks parsed rule expressions against a resolved dependency
// closure. Evaluation is total: facts about symbols that exist nowhere in
// the closure resolve to "absent" (false / zero size / unknown type) rather
// than erroring, since rules legitimately test for absence.
package eval

import (
	"fmt"

	"github.com/isseis/go-symbol-audit/internal/checker/ruleexpr"
	"github.com/isseis/go-symbol-audit/internal/checker/symtab"
)

// FactSource answers symbol-fact queries for a fully-built closure.
// *symtab.Closure implements it; tests substitute instrumented fakes to
// observe short-circuiting.
type FactSource interface {
	Root() *symtab.Binary
	IsAvailable(name string) bool
	IsReferenced(name string) bool
	FirstDefinition(name string) (*symtab.Binary, bool)
	SizeOf(name string) (uint64, bool)
	TypeOf(name string) (symtab.SymbolType, bool)
	LargestSize() uint64
}

// TraceEntry records one fact query that was actually performed during
// evaluation, including where the deciding fact came from. Calls skipped by
// short-circuiting never appear.
type TraceEntry struct {
	Call   string `json:"call"`
	Value  string `json:"value"`
	Source string `json:"source,omitempty"`
}

// Evaluator evaluates expressions against one fact source, accumulating a
// trace of the fact queries performed. It is not safe for concurrent use;
// create one per rule evaluation.
type Evaluator struct {
	facts FactSource
	trace []TraceEntry
}

// New creates an Evaluator over the given fact source.
func New(facts FactSource) *Evaluator {
	return &Evaluator{facts: facts}
}

// Trace returns the fact queries performed so far, in evaluation order.
func (e *Evaluator) Trace() []TraceEntry {
	return e.trace
}

// Evaluate computes the boolean value of expr. && and || short-circuit:
// the right operand is not evaluated (and produces no trace entries) when
// the left operand decides the result.
func (e *Evaluator) Evaluate(expr ruleexpr.Expr) bool {
	switch n := expr.(type) {
	case *ruleexpr.Binary:
		left := e.Evaluate(n.Left)
		if n.Op == ruleexpr.OpAnd {
			if !left {
				return false
			}
		} else if left {
			return true
		}
		return e.Evaluate(n.Right)
	case *ruleexpr.Not:
		return !e.Evaluate(n.Operand)
	case *ruleexpr.Call:
		return e.evalCall(n)
	default:
		// The AST node set is closed; this is unreachable for parser
		// output.
		panic(fmt.Sprintf("eval: unexpected expression node %T", expr))
	}
}

// evalCall performs one fact query and coerces its result to a boolean.
// Coercion rules for the scalar-valued functions are deliberate and
// documented: SIZE is true for a defined, non-zero-sized symbol; TYPE is
// true for a defined symbol of known (non-NOTYPE) type; LARGEST is true
// when any defined symbol has non-zero size.
func (e *Evaluator) evalCall(call *ruleexpr.Call) bool {
	switch call.Fn {
	case ruleexpr.FuncAvailable:
		bin, ok := e.facts.FirstDefinition(call.Symbol)
		e.record(call, fmt.Sprintf("%t", ok), definedIn(bin))
		return ok

	case ruleexpr.FuncUsed:
		// A symbol is used when some closure member imports it, or
		// when the root binary defines it itself (the root's own
		// definitions count as in use, matching the reference tool).
		used := e.facts.IsReferenced(call.Symbol)
		source := ""
		if !used {
			if root := e.facts.Root(); root != nil {
				if sym, ok := root.Symbols[call.Symbol]; ok && sym.Defined {
					used = true
					source = root.Path
				}
			}
		}
		e.record(call, fmt.Sprintf("%t", used), source)
		return used

	case ruleexpr.FuncSize:
		size, ok := e.facts.SizeOf(call.Symbol)
		bin, _ := e.facts.FirstDefinition(call.Symbol)
		if !ok {
			e.record(call, "undefined", "")
			return false
		}
		e.record(call, fmt.Sprintf("%d", size), definedIn(bin))
		return size != 0

	case ruleexpr.FuncType:
		typ, ok := e.facts.TypeOf(call.Symbol)
		bin, _ := e.facts.FirstDefinition(call.Symbol)
		if !ok {
			e.record(call, "undefined", "")
			return false
		}
		e.record(call, typ.String(), definedIn(bin))
		return typ != symtab.TypeNoType

	case ruleexpr.FuncLargest:
		largest := e.facts.LargestSize()
		e.record(call, fmt.Sprintf("%d", largest), "")
		return largest != 0

	default:
		panic(fmt.Sprintf("eval: unexpected function kind %d", call.Fn))
	}
}

func (e *Evaluator) record(call *ruleexpr.Call, value, source string) {
	e.trace = append(e.trace, TraceEntry{
		Call:   call.String(),
		Value:  value,
		Source: source,
	})
}

func definedIn(bin *symtab.Binary) string {
	if bin == nil {
		return ""
	}
	return bin.Path
}
