package diagnostic

//go:generate go tool stringer -type=Severity -linecomment -output=severity_string.go

import (
	"errors"
	"fmt"
	"strings"
)

// Severity ranks a diagnostic. Only errors stop compilation.
type Severity uint8

const (
	SeverityInfo    Severity = iota // info
	SeverityWarning                 // warning
	SeverityError                   // error
)

// Span is a byte range within the declaration text.
type Span struct {
	Offset int
	Len    int
}

// End returns the offset just past the span.
func (s Span) End() int {
	return s.Offset + s.Len
}

// IsZero reports whether the span carries no position.
func (s Span) IsZero() bool {
	return s.Offset == 0 && s.Len == 0
}

// Diagnostic is one finding about the declaration body.
type Diagnostic struct {
	Severity Severity
	// Code is the stable identifier listed in codes.go.
	Code    string
	Message string
	// View and Field name the offending view (or fragment) and field, when known.
	View  string
	Field string
	// Span locates the offending text.
	Span        Span
	Suggestions []string
}

// Diagnostics collects the findings of one compilation, split by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

func (d *Diagnostics) add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError records an error anchored at span.
func (d *Diagnostics) AddError(span Span, code, message, view, field string, suggestions ...string) {
	d.add(Diagnostic{
		Severity:    SeverityError,
		Code:        code,
		Message:     message,
		View:        view,
		Field:       field,
		Span:        span,
		Suggestions: suggestions,
	})
}

// Errorf is AddError with a formatted message.
func (d *Diagnostics) Errorf(span Span, code, view, field, format string, args ...any) {
	d.AddError(span, code, fmt.Sprintf(format, args...), view, field)
}

// AddWarning records a warning anchored at span.
func (d *Diagnostics) AddWarning(span Span, code, message, view, field string) {
	d.add(Diagnostic{Severity: SeverityWarning, Code: code, Message: message, View: view, Field: field, Span: span})
}

// AddInfo records an informational note without a position.
func (d *Diagnostics) AddInfo(code, message, view, field string) {
	d.add(Diagnostic{Severity: SeverityInfo, Code: code, Message: message, View: view, Field: field})
}

// HasErrors reports whether any error was recorded. A nil receiver has none.
func (d *Diagnostics) HasErrors() bool {
	return d != nil && len(d.Errors) > 0
}

// IsValid is the negation of HasErrors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Merge appends other's diagnostics to d.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}

	for _, group := range [][]Diagnostic{other.Errors, other.Warnings, other.Infos} {
		for _, diag := range group {
			d.add(diag)
		}
	}
}

// Codes returns the codes of all errors in report order.
func (d *Diagnostics) Codes() []string {
	if d == nil {
		return nil
	}

	codes := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		codes = append(codes, e.Code)
	}

	return codes
}

// Err folds every error into one, or returns nil when there are none.
func (d *Diagnostics) Err() error {
	if d.IsValid() {
		return nil
	}

	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, errors.New(e.String()))
	}

	return errors.Join(errs...)
}

// String renders d on one line without source context, e.g.
//
//	Keyword.Query: [unknown_field] field Qeury does not exist (did you mean Query?)
func (d Diagnostic) String() string {
	var b strings.Builder

	switch {
	case d.View != "" && d.Field != "":
		b.WriteString(d.View + "." + d.Field + ": ")
	case d.View != "":
		b.WriteString(d.View + ": ")
	case d.Field != "":
		b.WriteString(d.Field + ": ")
	}

	if d.Code != "" {
		b.WriteString("[" + d.Code + "] ")
	}

	b.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		b.WriteString(" (did you mean " + strings.Join(d.Suggestions, ", ") + "?)")
	}

	return b.String()
}
