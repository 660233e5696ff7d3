package diagnostic

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Position converts a byte offset in src into a 1-based line and column.
func Position(src []byte, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}

	if offset < 0 {
		offset = 0
	}

	line = 1 + bytes.Count(src[:offset], []byte{'\n'})
	col = offset - bytes.LastIndexByte(src[:offset], '\n')

	return line, col
}

// RenderOptions configures diagnostic rendering.
type RenderOptions struct {
	// File is the name printed in the location prefix.
	File string
	// Source is the declaration text spans refer to.
	Source []byte
	// NoColor disables ANSI colors.
	NoColor bool
}

// Render writes every diagnostic, errors first, as
//
//	file:line:col: error[code]: message
//	    | source line
//	    | ^^^^
func (d *Diagnostics) Render(w io.Writer, opts RenderOptions) {
	if d == nil {
		return
	}

	for _, group := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range group {
			fmt.Fprint(w, diag.Format(opts))
		}
	}
}

// Format renders one diagnostic.
func (d Diagnostic) Format(opts RenderOptions) string {
	var b strings.Builder

	var head *color.Color

	switch d.Severity {
	case SeverityError:
		head = color.New(color.FgRed, color.Bold)
	case SeverityWarning:
		head = color.New(color.FgYellow, color.Bold)
	default:
		head = color.New(color.FgCyan, color.Bold)
	}

	gutter := color.New(color.FgBlue)
	hint := color.New(color.FgGreen)

	if opts.NoColor {
		head.DisableColor()
		gutter.DisableColor()
		hint.DisableColor()
	}

	if opts.File != "" {
		if opts.Source != nil {
			line, col := Position(opts.Source, d.Span.Offset)
			fmt.Fprintf(&b, "%s:%d:%d: ", opts.File, line, col)
		} else {
			fmt.Fprintf(&b, "%s: ", opts.File)
		}
	}

	if d.Code != "" {
		head.Fprintf(&b, "%s[%s]", d.Severity, d.Code)
	} else {
		head.Fprint(&b, d.Severity.String())
	}

	fmt.Fprintf(&b, ": %s\n", d.Message)

	if opts.Source != nil && d.Span.Offset <= len(opts.Source) {
		text, col := lineAt(opts.Source, d.Span.Offset)
		width := max(d.Span.Len, 1)
		width = min(width, max(len(text)-col, 1))

		gutter.Fprint(&b, "    | ")
		fmt.Fprintf(&b, "%s\n", text)
		gutter.Fprint(&b, "    | ")
		head.Fprintf(&b, "%s%s\n", strings.Repeat(" ", col), strings.Repeat("^", width))
	}

	if len(d.Suggestions) > 0 {
		hint.Fprintf(&b, "    = did you mean: %s?\n", strings.Join(d.Suggestions, ", "))
	}

	return b.String()
}

// lineAt returns the line containing offset and the 0-based column of offset.
func lineAt(src []byte, offset int) (string, int) {
	start := bytes.LastIndexByte(src[:offset], '\n') + 1

	end := bytes.IndexByte(src[offset:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += offset
	}

	line := strings.ReplaceAll(string(src[start:end]), "\t", " ")

	return line, offset - start
}
