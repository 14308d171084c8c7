package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/source"
)

// Pretty renders diagnostics in a human-readable form: a
// path:line:col header, the source line with a caret underline, then
// notes and fixes. Call bag.Sort() first for positional order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pal := palette{enabled: opts.Color}
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts, pal)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	head := fmt.Sprintf("%s %s: %s", pal.severity(d.Severity, d.Severity.String()), pal.code(d.Code.ID()), d.Message)

	if fs == nil || isEmptySpan(d.Primary) {
		fmt.Fprintln(w, head)
		writeNotes(w, d, fs, opts)
		return
	}

	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s\n", formatPath(file, fs, opts.PathMode), start.Line, start.Col, head)
	writeExcerpt(w, file, d.Primary, start, opts, pal, d.Severity)
	writeNotes(w, d, fs, opts)
}

// writeExcerpt prints the primary line inside its context window with a
// numbered gutter and underlines the spanned columns.
func writeExcerpt(w io.Writer, file *source.File, span source.Span, start source.LineCol, opts PrettyOpts, pal palette, sev diag.Severity) {
	ctx := uint32(0)
	if opts.Context > 0 {
		ctx = uint32(opts.Context)
	}
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := start.Line + ctx

	gutter := len(fmt.Sprintf("%d", last))
	total := lineCount(file)
	for line := first; line <= last; line++ {
		if int(line) > total && line != start.Line {
			continue
		}
		text := file.GetLine(line)
		fmt.Fprintf(w, " %*d | %s\n", gutter, line, text)
		if line == start.Line {
			fmt.Fprintf(w, " %s | %s\n", strings.Repeat(" ", gutter), pal.severity(sev, underline(text, span, file, start)))
		}
	}
}

// underline builds the ^~~~ marker for the spanned part of one line.
// Tabs in the prefix stay tabs so the caret lines up in terminals.
func underline(text string, span source.Span, file *source.File, start source.LineCol) string {
	lineSpan := file.LineSpan(start.Line)

	prefixEnd := span.Start - lineSpan.Start
	if int(prefixEnd) > len(text) {
		prefixEnd = uint32(len(text))
	}
	spanEnd := span.End
	if spanEnd > lineSpan.End {
		spanEnd = lineSpan.End
	}

	var b strings.Builder
	for _, r := range text[:prefixEnd] {
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
	}

	width := 1
	if spanEnd > span.Start {
		spanned := text[prefixEnd:min(uint32(len(text)), prefixEnd+(spanEnd-span.Start))]
		if w := runewidth.StringWidth(spanned); w > width {
			width = w
		}
	}
	b.WriteByte('^')
	b.WriteString(strings.Repeat("~", width-1))
	return b.String()
}

func writeNotes(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	if opts.ShowNotes {
		for _, n := range d.Notes {
			if fs != nil && !isEmptySpan(n.Span) {
				file := fs.Get(n.Span.File)
				pos, _ := fs.Resolve(n.Span)
				fmt.Fprintf(w, "%s:%d:%d: note: %s\n", formatPath(file, fs, opts.PathMode), pos.Line, pos.Col, n.Msg)
			} else {
				fmt.Fprintf(w, "note: %s\n", n.Msg)
			}
		}
	}
	if opts.ShowFixes {
		for _, f := range d.Fixes {
			fmt.Fprintf(w, "fix: %s\n", f.Title)
		}
	}
}

func formatPath(file *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return file.FormatPath("absolute", "")
	case PathModeRelative:
		return file.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return file.FormatPath("basename", "")
	default:
		return file.FormatPath("auto", "")
	}
}

// isEmptySpan reports the zero span used by diagnostics with no
// source location (I/O failures, timing entries).
func isEmptySpan(s source.Span) bool {
	return s == source.Span{}
}

func lineCount(file *source.File) int {
	return len(file.LineIdx) + 1
}

type palette struct{ enabled bool }

func (p palette) severity(sev diag.Severity, s string) string {
	if !p.enabled {
		return s
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(s)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold).Sprint(s)
	default:
		return color.New(color.FgCyan).Sprint(s)
	}
}

func (p palette) code(s string) string {
	if !p.enabled {
		return s
	}
	return color.New(color.Faint).Sprint(s)
}
