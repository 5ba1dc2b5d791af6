package ruleset

import "fmt"

// InvalidSeverityError reports an unrecognized severity string in a rule
// record.
type InvalidSeverityError struct {
	RuleID string
	Value  string
}

func (e *InvalidSeverityError) Error() string {
	if e.RuleID != "" {
		return fmt.Sprintf("rule %q: invalid severity %q (valid: info, warning, error)", e.RuleID, e.Value)
	}
	return fmt.Sprintf("invalid severity %q (valid: info, warning, error)", e.Value)
}

// MissingFieldError reports a rule record lacking a required field. Index is
// the zero-based position of the record in the rule file.
type MissingFieldError struct {
	Index int
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("rule record %d: missing required field %q", e.Index, e.Field)
}

// DuplicateRuleIDError reports two rule records sharing an id.
type DuplicateRuleIDError struct {
	RuleID string
}

func (e *DuplicateRuleIDError) Error() string {
	return fmt.Sprintf("duplicate rule id %q", e.RuleID)
}

// RuleParseError wraps a rule-expression parse failure with the id of the
// offending rule, so load-time diagnostics name the rule rather than just an
// offset.
type RuleParseError struct {
	RuleID string
	Err    error
}

func (e *RuleParseError) Error() string {
	return fmt.Sprintf("rule %q: %s", e.RuleID, e.Err)
}

func (e *RuleParseError) Unwrap() error {
	return e.Err
}
