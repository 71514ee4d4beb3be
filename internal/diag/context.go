package diag

import (
	"fmt"
	"os"

	"glint/internal/source"
)

// ColorMode controls how diagnostics are rendered downstream; the core
// only stores the mode (component A/B don't render), per spec.md §3.
type ColorMode uint8

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// Context is the process-wide state for one compilation, per spec.md §3:
// the file registry, the monotonic error flag, colour mode, and the
// diagnostic sink. Multiple Contexts may coexist (spec.md §9 — "No global
// mutable state").
type Context struct {
	Files     *source.FileSet
	Bag       *Bag
	ColorMode ColorMode

	// Exit terminates the process; defaults to os.Exit. Tests substitute a
	// non-terminating stub to observe ICE/Fatal without killing the test
	// binary, the same way the teacher's cmd/surge tests stub os.Exit-like
	// seams rather than calling the real thing.
	Exit func(code int)

	errored bool
}

// NewContext builds a Context bound to a fresh, unbounded Bag.
func NewContext(files *source.FileSet) *Context {
	if files == nil {
		files = source.NewFileSet()
	}
	return &Context{Files: files, Bag: NewBag(0), Exit: os.Exit}
}

// HasError reports whether an Error/Fatal/ICE diagnostic has been issued.
// The flag is monotonic: it is never cleared once set (spec.md §5).
func (c *Context) HasError() bool { return c.errored }

// Report accepts a diagnostic, updates the error flag for Error/Fatal/ICE,
// appends it to the Bag (every severity, ICE and Fatal included), and
// then terminates the process for SevFatal/SevICE.
//
// Unlike the teacher's Reporter, Context.Report owns process termination
// directly: spec.md §4.B requires ICE to exit 17 and host-fatal errors to
// exit 18, and that decision belongs with the severity, not a caller.
func (c *Context) Report(d Diagnostic) {
	switch d.Severity {
	case SevError, SevFatal, SevICE:
		c.errored = true
	}
	c.Bag.Add(d)
	switch d.Severity {
	case SevICE:
		c.terminate(d, 17)
	case SevFatal:
		c.terminate(d, 18)
	}
}

func (c *Context) terminate(d Diagnostic, code int) {
	loc := "<unknown>"
	if c.Files != nil && d.Primary.Len() > 0 {
		start, _ := c.Files.Resolve(d.Primary)
		if f := c.Files.Get(d.Primary.File); f != nil {
			loc = fmt.Sprintf("%s:%d:%d", f.Path, start.Line, start.Col)
		}
	}
	fmt.Fprintf(os.Stderr, "%s: %s: %s\n", loc, d.Severity, d.Message)
	exit := c.Exit
	if exit == nil {
		exit = os.Exit
	}
	exit(code)
}

// Error issues a SevError diagnostic.
func (c *Context) Error(code Code, primary source.Span, msg string) Diagnostic {
	d := New(SevError, code, primary, msg)
	c.Report(d)
	return d
}

// Warning issues a SevWarning diagnostic. Warnings never set the error flag.
func (c *Context) Warning(code Code, primary source.Span, msg string) Diagnostic {
	d := New(SevWarning, code, primary, msg)
	c.Report(d)
	return d
}

// ICE issues an internal-compiler-error and terminates the process.
func (c *Context) ICE(primary source.Span, format string, args ...any) {
	c.Report(New(SevICE, ICEInvariantViolated, primary, fmt.Sprintf(format, args...)))
}

// Fatal issues a host-system failure and terminates the process.
func (c *Context) Fatal(primary source.Span, format string, args ...any) {
	c.Report(New(SevFatal, HostIOError, primary, fmt.Sprintf(format, args...)))
}
