package ruleset

import (
	"log/slog"

	"github.com/isseis/go-symbol-audit/internal/checker/eval"
)

// Result is the outcome of evaluating one rule against one closure. Never
// mutated after creation.
type Result struct {
	RuleID   string   `json:"id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"msg"`

	// Fired is true when the rule's expression evaluated true, meaning
	// the condition the rule flags is present in the audited closure.
	Fired bool `json:"fired"`

	// Trace lists the symbol facts that decided the outcome.
	Trace []eval.TraceEntry `json:"trace,omitempty"`
}

// Passed reports the inverse of Fired; a rule passes when the condition it
// flags is absent.
func (r Result) Passed() bool {
	return !r.Fired
}

// Run evaluates every rule independently against the same fact source,
// returning one result per rule in rule-file order. Evaluation is total;
// Run cannot fail.
func (rs *RuleSet) Run(facts eval.FactSource) []Result {
	results := make([]Result, 0, len(rs.Rules))
	for _, rule := range rs.Rules {
		ev := eval.New(facts)
		fired := ev.Evaluate(rule.Expr)
		if fired {
			slog.Debug("rule fired",
				slog.String("rule", rule.ID),
				slog.String("severity", rule.Severity.String()),
				slog.String("expression", rule.Source))
		}
		results = append(results, Result{
			RuleID:   rule.ID,
			Severity: rule.Severity,
			Message:  rule.Message,
			Fired:    fired,
			Trace:    ev.Trace(),
		})
	}
	return results
}

// HasFiredAtSeverity reports whether any result at exactly the given
// severity fired. The exit-code policy uses this for SeverityError.
func HasFiredAtSeverity(results []Result, severity Severity) bool {
	for _, res := range results {
		if res.Fired && res.Severity == severity {
			return true
		}
	}
	return false
}
