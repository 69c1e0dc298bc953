// Package validation provides structured, severity-tagged validation
// results for planner configuration, collecting every issue found
// rather than failing fast on the first one.
package validation

import "github.com/schedcu/shiftplan/internal/entity"

// Severity levels for validation messages.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// Message is a single validation message.
type Message struct {
	Severity Severity
	Code     string
	Text     string
}

// Result collects validation messages from a planner configuration
// pass (setStaffingTarget).
type Result struct {
	Messages []Message
}

// NewResult creates a new empty result.
func NewResult() *Result {
	return &Result{}
}

// AddError adds an ERROR-severity message.
func (r *Result) AddError(code, text string) *Result {
	return r.add(SeverityError, code, text)
}

// AddWarning adds a WARNING-severity message.
func (r *Result) AddWarning(code, text string) *Result {
	return r.add(SeverityWarning, code, text)
}

func (r *Result) add(severity Severity, code, text string) *Result {
	r.Messages = append(r.Messages, Message{Severity: severity, Code: code, Text: text})
	return r
}

// IsValid reports whether the result contains no ERROR-severity message.
func (r *Result) IsValid() bool {
	for _, m := range r.Messages {
		if m.Severity == SeverityError {
			return false
		}
	}
	return true
}

// AsError returns a *entity.PlannerError of kind ConfigError summarising
// every ERROR-severity message, or nil if the result is valid.
func (r *Result) AsError() error {
	if r.IsValid() {
		return nil
	}
	msg := ""
	for _, m := range r.Messages {
		if m.Severity != SeverityError {
			continue
		}
		if msg != "" {
			msg += "; "
		}
		msg += m.Code + ": " + m.Text
	}
	return entity.NewError(entity.KindConfigError, "%s", msg)
}
