package diag

import "glint/internal/source"

// Note attaches supplementary context to a preceding diagnostic, per
// spec.md §4.B ("Notes attach to a preceding diagnostic").
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single message-valued issue, per spec.md §4.B.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// New builds a Diagnostic without emitting it.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

// WithNote returns a copy of d with an additional note attached.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
