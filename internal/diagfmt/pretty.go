// Package diagfmt renders a diag.Bag for a human reading a terminal,
// grounded on the teacher's internal/diagfmt package shape (Options,
// Pretty, PathMode) but implementing Pretty for real — the teacher's own
// Pretty (internal/diagfmt/pretty.go) is left as a TODO stub in that
// repo, so this one is written fresh rather than adapted from a body
// that doesn't exist yet, following the surrounding helpers
// (preview.go's line-offset arithmetic) that do exist.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"glint/internal/diag"
	"glint/internal/source"
)

// Options configures Pretty's output.
type Options struct {
	Color    bool
	PathMode PathMode
	Context  int // not consulted by Pretty, which prints only the primary source line
}

// PathMode controls how a diagnostic's file path is displayed.
type PathMode uint8

const (
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	fatalColor   = color.New(color.FgRed, color.Bold, color.BgBlack)
	warningColor = color.New(color.FgYellow, color.Bold)
	noteColor    = color.New(color.FgCyan)
	locColor     = color.New(color.Faint)
	underline    = color.New(color.FgRed)
)

func severityPrinter(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevFatal, diag.SevICE:
		return fatalColor
	case diag.SevWarning:
		return warningColor
	default:
		return noteColor
	}
}

// ResolveColorMode turns a diag.ColorMode plus an "is the diagnostic
// output stream a terminal" probe into the plain bool Options.Color expects.
func ResolveColorMode(mode diag.ColorMode, isTerminal bool) bool {
	switch mode {
	case diag.ColorAlways:
		return true
	case diag.ColorNever:
		return false
	default:
		return isTerminal
	}
}

// Pretty writes one block per diagnostic in bag (call bag.Sort() first
// for a deterministic order): a "path:line:col: SEVERITY CODE: message"
// header, a line of source context underlined at the diagnostic's span,
// then any attached notes in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts Options) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		writeDiagnostic(w, d.Severity, d.Code, d.Message, d.Primary, fs, opts)
		for _, n := range d.Notes {
			writeDiagnostic(w, diag.SevNote, diag.UnknownCode, n.Msg, n.Span, fs, opts)
		}
	}
}

func writeDiagnostic(w io.Writer, sev diag.Severity, code diag.Code, msg string, sp source.Span, fs *source.FileSet, opts Options) {
	loc := "<unknown>"
	var file *source.File
	if fs != nil {
		file = fs.Get(sp.File)
	}
	if file != nil {
		start, _ := fs.Resolve(sp)
		loc = fmt.Sprintf("%s:%d:%d", displayPath(file.Path, opts.PathMode), start.Line, start.Col)
	}

	tag := sev.String()
	if code != diag.UnknownCode {
		tag = fmt.Sprintf("%s %s", sev.String(), code.ID())
	}

	if opts.Color {
		fmt.Fprintf(w, "%s: %s: %s\n", locColor.Sprint(loc), severityPrinter(sev).Sprint(tag), msg)
	} else {
		fmt.Fprintf(w, "%s: %s: %s\n", loc, tag, msg)
	}

	if file != nil {
		printSourceContext(w, file, sp, opts)
	}
}

func printSourceContext(w io.Writer, file *source.File, sp source.Span, opts Options) {
	start, end := fileSetLineBounds(file, sp)
	if start >= uint32(len(file.Content)) {
		return
	}
	line := string(file.Content[start:end])
	fmt.Fprintf(w, "    %s\n", line)

	col := sp.Start - start
	width := sp.End - sp.Start
	if width == 0 {
		width = 1
	}
	pad := make([]byte, col)
	for i := range pad {
		pad[i] = ' '
	}
	marker := make([]byte, width)
	for i := range marker {
		marker[i] = '~'
	}
	if len(marker) > 0 {
		marker[0] = '^'
	}
	if opts.Color {
		fmt.Fprintf(w, "    %s%s\n", pad, underline.Sprint(string(marker)))
	} else {
		fmt.Fprintf(w, "    %s%s\n", pad, marker)
	}
}

// fileSetLineBounds returns the [start,end) byte range of sp's first
// line within file, grounded on the teacher's preview.go line-offset
// arithmetic (lineStartOffset/lineEndOffsetInclusive) over File.LineIdx.
func fileSetLineBounds(file *source.File, sp source.Span) (uint32, uint32) {
	lineStart := uint32(0)
	for _, idx := range file.LineIdx {
		if idx >= sp.Start {
			break
		}
		lineStart = idx + 1
	}
	lineEnd := uint32(len(file.Content))
	for _, idx := range file.LineIdx {
		if idx >= sp.Start {
			lineEnd = idx
			break
		}
	}
	return lineStart, lineEnd
}

func displayPath(path string, mode PathMode) string {
	switch mode {
	case PathModeBasename:
		for i := len(path) - 1; i >= 0; i-- {
			if path[i] == '/' || path[i] == '\\' {
				return path[i+1:]
			}
		}
		return path
	default:
		return path
	}
}
