// Package validation defines the severity-tagged finding types shared by
// circuit capacity validation and per-device mapping validation.  Whether a
// subject "passes" is a pure function of its findings: nothing at or above
// error severity means valid.
package validation

import (
	"github.com/turtacn/FireCircuit-Intelligence/pkg/types/common"
)

// Issue is a single validation finding.
type Issue struct {
	ID       string          `json:"id"`
	Severity common.Severity `json:"severity"`

	// Code is the machine-readable finding code, typically one of the
	// pkg/errors circuit codes ("CIR_001", ...).
	Code string `json:"code"`

	// Message is the human-readable description of the finding.
	Message string `json:"message"`

	// Context carries structured finding details (measured value, limit,
	// subject identifier) for report layers.
	Context map[string]string `json:"context,omitempty"`
}

// NewIssue constructs an Issue with a generated identifier.
func NewIssue(severity common.Severity, code, message string) Issue {
	return Issue{
		ID:       common.GenerateID("issue"),
		Severity: severity,
		Code:     code,
		Message:  message,
	}
}

// WithContext returns a copy of the issue with the given context entry
// added.  The receiver is not mutated.
func (i Issue) WithContext(key, value string) Issue {
	ctx := make(map[string]string, len(i.Context)+1)
	for k, v := range i.Context {
		ctx[k] = v
	}
	ctx[key] = value
	i.Context = ctx
	return i
}

// Result is an ordered collection of findings about one subject.
type Result struct {
	Issues []Issue `json:"issues"`
}

// Add appends findings to the result.
func (r *Result) Add(issues ...Issue) {
	r.Issues = append(r.Issues, issues...)
}

// Merge appends all findings of other into r.
func (r *Result) Merge(other Result) {
	r.Issues = append(r.Issues, other.Issues...)
}

// Valid reports whether the result contains no blocking findings: warnings
// and informational findings do not invalidate the subject.
func (r Result) Valid() bool {
	for _, issue := range r.Issues {
		if issue.Severity.Blocking() {
			return false
		}
	}
	return true
}

// CountAt returns the number of findings with exactly the given severity.
func (r Result) CountAt(severity common.Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}

// Worst returns the highest severity present, or SeverityInfo for an empty
// result.
func (r Result) Worst() common.Severity {
	worst := common.SeverityInfo
	for _, issue := range r.Issues {
		if issue.Severity > worst {
			worst = issue.Severity
		}
	}
	return worst
}
