package diag

import "glint/internal/source"

// Reporter is the minimal contract sema/loader use to issue diagnostics,
// grounded on the teacher's internal/diag.Reporter. The concrete
// implementation is almost always a *Context.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter adapts a bare *Bag into a Reporter for tests that want to
// inspect accumulated diagnostics without a full Context (no error-flag,
// no termination), grounded on the teacher's BagReporter.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

var _ Reporter = (*Context)(nil)

// Error is a shorthand matching the Reporter interface's expectations for
// callers that only have a primary span and message.
func Error(r Reporter, code Code, primary source.Span, msg string) {
	r.Report(New(SevError, code, primary, msg))
}

// Warning is the Reporter-facing counterpart to Error.
func Warning(r Reporter, code Code, primary source.Span, msg string) {
	r.Report(New(SevWarning, code, primary, msg))
}
