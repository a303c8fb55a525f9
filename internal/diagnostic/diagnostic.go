// Package diagnostic implements CTilde's diagnostic record and terminal
// renderer (spec §3.3, §6).
package diagnostic

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/width"
)

// Severity is a diagnostic's severity level (spec §6).
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "Warning"
	}
	return "Error"
}

// Diagnostic is `(path, message, line, column, severity)` (spec §3.3, §6).
type Diagnostic struct {
	Path     string
	Message  string
	Line     int
	Column   int
	Severity Severity
}

// Bag is an append-only diagnostics list (spec §5: insertion order is
// preserved; Sorted() returns a presentation-ordered copy).
type Bag struct {
	items []Diagnostic
}

// Add appends a diagnostic, preserving insertion order.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// Errorf appends an Error-severity diagnostic at (path,line,col).
func (b *Bag) Errorf(path string, line, col int, format string, args ...interface{}) {
	b.Add(Diagnostic{Path: path, Message: fmt.Sprintf(format, args...), Line: line, Column: col, Severity: Error})
}

// HasErrors reports whether any Error-severity diagnostic was recorded
// (spec §7: exit status and stage short-circuiting both key off this).
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Len reports the number of diagnostics recorded so far.
func (b *Bag) Len() int { return len(b.items) }

// Truncate drops every diagnostic recorded after position n, used to
// discard diagnostics emitted during a speculative parse that was later
// abandoned (spec §4.2's save/restore around speculative lookahead).
func (b *Bag) Truncate(n int) {
	if n < len(b.items) {
		b.items = b.items[:n]
	}
}

// All returns the diagnostics in insertion order.
func (b *Bag) All() []Diagnostic {
	return b.items
}

// Sorted returns the diagnostics ordered by (path, line, column), the
// order the printer uses for display (spec §5, §8's determinism property).
func (b *Bag) Sorted() []Diagnostic {
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)
	sort.SliceStable(out, func(i, j int) bool {
		a, c := out[i], out[j]
		if a.Path != c.Path {
			return a.Path < c.Path
		}
		if a.Line != c.Line {
			return a.Line < c.Line
		}
		return a.Column < c.Column
	})
	return out
}

// Render formats a single diagnostic in the caret-underline form, given the
// full source text it was reported against (for the "|\n<line> | ..." source
// snippet). When line < 1 (no usable position, e.g. a whole-unit error) it
// falls back to the compact "path(line,col): message" form (spec §6).
func Render(d Diagnostic, source string) string {
	if d.Line < 1 {
		return fmt.Sprintf("%s: %s(%d,%d): %s", d.Severity, d.Path, d.Line, d.Column, d.Message)
	}

	lines := strings.Split(source, "\n")
	var srcLine string
	if d.Line-1 < len(lines) {
		srcLine = lines[d.Line-1]
	}

	gutter := fmt.Sprintf("%d", d.Line)
	pad := strings.Repeat(" ", len(gutter))

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", d.Severity, d.Message)
	fmt.Fprintf(&b, "  --> %s:%d:%d\n", d.Path, d.Line, d.Column)
	fmt.Fprintf(&b, "%s |\n", pad)
	fmt.Fprintf(&b, "%s | %s\n", gutter, srcLine)
	fmt.Fprintf(&b, "%s |%s^\n", pad, caretPrefix(srcLine, d.Column))
	return b.String()
}

// caretPrefix returns the spacing that places the caret beneath column col
// (1-based), accounting for east-asian-wide runes so the caret still lines
// up under multi-byte-wide source characters (SPEC_FULL §3.1).
func caretPrefix(line string, col int) string {
	runes := []rune(line)
	n := col - 1
	if n > len(runes) {
		n = len(runes)
	}
	if n < 0 {
		n = 0
	}

	var b strings.Builder
	b.WriteByte(' ') // matches the single space after "N | "
	for i := 0; i < n; i++ {
		switch width.LookupRune(runes[i]).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			b.WriteString("  ")
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}
