// Package ruleset loads policy rules from their JSON file representation,
// validates them, and runs them against a resolved dependency closure. All
// schema and expression errors surface at load time so no evaluation starts
// on a rule set that is not fully trustworthy.
package ruleset

import (
	"encoding/json"
	"fmt"

	"github.com/isseis/go-symbol-audit/internal/checker/ruleexpr"
)

// Rule is one loaded policy rule. Immutable after Load.
type Rule struct {
	ID       string
	Severity Severity
	Message  string

	// Source is the original expression text, kept for reporting.
	Source string

	// Expr is the parsed expression, ready for evaluation.
	Expr ruleexpr.Expr
}

// record mirrors one entry of the JSON rule file. Pointer fields distinguish
// absent fields from empty strings for MissingFieldError reporting.
type record struct {
	ID       *string `json:"id"`
	Severity *string `json:"severity"`
	Message  string  `json:"msg"`
	Rule     *string `json:"rule"`
}

// RuleSet is an ordered collection of rules with unique ids.
type RuleSet struct {
	Rules []Rule
}

// Load parses rule records from their JSON representation. Every record must
// carry id, severity, and rule fields; ids must be unique; expressions are
// parsed eagerly so malformed rules are reported before any evaluation
// begins. The first violation aborts the load.
func Load(data []byte) (*RuleSet, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode rule file: %w", err)
	}

	rs := &RuleSet{Rules: make([]Rule, 0, len(records))}
	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		if rec.ID == nil {
			return nil, &MissingFieldError{Index: i, Field: "id"}
		}
		if rec.Severity == nil {
			return nil, &MissingFieldError{Index: i, Field: "severity"}
		}
		if rec.Rule == nil {
			return nil, &MissingFieldError{Index: i, Field: "rule"}
		}
		if _, dup := seen[*rec.ID]; dup {
			return nil, &DuplicateRuleIDError{RuleID: *rec.ID}
		}
		seen[*rec.ID] = struct{}{}

		severity, err := ParseSeverity(*rec.Severity)
		if err != nil {
			return nil, &InvalidSeverityError{RuleID: *rec.ID, Value: *rec.Severity}
		}

		expr, err := ruleexpr.Parse(*rec.Rule)
		if err != nil {
			return nil, &RuleParseError{RuleID: *rec.ID, Err: err}
		}

		rs.Rules = append(rs.Rules, Rule{
			ID:       *rec.ID,
			Severity: severity,
			Message:  rec.Message,
			Source:   *rec.Rule,
			Expr:     expr,
		})
	}
	return rs, nil
}
