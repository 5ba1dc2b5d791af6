// Package report renders rule evaluation results for humans (colored text)
// and machines (JSON), one record per rule.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/isseis/go-symbol-audit/internal/checker/ruleset"
	"github.com/isseis/go-symbol-audit/internal/color"
)

// Report is the complete outcome of one audit run.
type Report struct {
	RunID       string           `json:"run_id"`
	Root        string           `json:"root"`
	GeneratedAt time.Time        `json:"generated_at"`
	Results     []ruleset.Result `json:"results"`
}

// New creates a report for the given run over the root binary path.
func New(runID, root string, results []ruleset.Result) *Report {
	return &Report{
		RunID:       runID,
		Root:        root,
		GeneratedAt: time.Now().UTC(),
		Results:     results,
	}
}

// severityColor maps severities to the colors used for fired rules.
func severityColor(s ruleset.Severity) color.Color {
	switch s {
	case ruleset.SeverityError:
		return color.Red
	case ruleset.SeverityWarning:
		return color.Yellow
	default:
		return color.Cyan
	}
}

// WriteText writes one line per rule plus a summary line. When useColor is
// false all color functions degrade to plain text.
func (r *Report) WriteText(w io.Writer, useColor bool) error {
	colorize := func(c color.Color, text string) string {
		if !useColor {
			return text
		}
		return c(text)
	}

	fired := 0
	for _, res := range r.Results {
		status := colorize(color.Green, "PASS")
		if res.Fired {
			status = colorize(severityColor(res.Severity), "FAIL")
			fired++
		}
		if _, err := fmt.Fprintf(w, "%s: %s: %-7s %s: %s\n",
			r.Root, status, res.Severity, res.RuleID, res.Message); err != nil {
			return fmt.Errorf("failed to write report line: %w", err)
		}
	}

	summary := fmt.Sprintf("%d rules, %d fired", len(r.Results), fired)
	if _, err := fmt.Fprintf(w, "%s\n", colorize(color.Gray, summary)); err != nil {
		return fmt.Errorf("failed to write report summary: %w", err)
	}
	return nil
}

// WriteJSON writes the whole report as an indented JSON document.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
