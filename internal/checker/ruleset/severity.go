package ruleset

import "fmt"

// Severity classifies a rule for reporting and exit-code policy. It never
// influences evaluation.
type Severity int

// Recognized severities, in increasing order of weight.
const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the rule-file spelling of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalJSON emits the rule-file spelling so reports round-trip with the
// input format.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// ParseSeverity converts a rule-file severity string to its enum value.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "info":
		return SeverityInfo, nil
	case "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	default:
		return SeverityInfo, &InvalidSeverityError{Value: s}
	}
}
