// Package parse carries the failure model shared by the SPICE and LEF
// grammars. Every parse step has three outcomes: success, a recoverable
// mismatch ("this alternative does not apply, try the next one"), or a fatal
// failure ("this alternative was chosen and the rest of it is malformed").
// A mismatch becomes fatal the moment a production has committed to its
// branch, e.g. after a statement keyword or a type-prefix letter matched;
// from then on no sibling alternative may be tried and the failure travels
// to the document driver with its context trail intact.
package parse

import (
	"errors"
	"fmt"
	"strings"
)

// Frame is one context label together with the unconsumed input at the point
// the label was attached.
type Frame struct {
	Label string
	Rest  string
}

// Error is the failure value produced by every parser in this module.
// Trail holds frames innermost first.
type Error struct {
	fatal bool
	Trail []Frame
}

// NoMatch reports a recoverable mismatch at rest.
func NoMatch(rest, label string) *Error {
	return &Error{Trail: []Frame{{Label: label, Rest: rest}}}
}

// Fail reports a fatal failure at rest.
func Fail(rest, label string) *Error {
	return &Error{fatal: true, Trail: []Frame{{Label: label, Rest: rest}}}
}

// Promote turns a recoverable mismatch into a fatal failure. Fatal input
// passes through unchanged, so productions can promote unconditionally after
// their commit point.
func Promote(e *Error) *Error {
	if e == nil {
		return nil
	}
	e.fatal = true
	return e
}

// Push attaches an enclosing context frame, preserving fatality.
func (e *Error) Push(rest, label string) *Error {
	e.Trail = append(e.Trail, Frame{Label: label, Rest: rest})
	return e
}

// Fatal reports whether the failure may no longer be treated as a plain
// alternation miss.
func (e *Error) Fatal() bool { return e.fatal }

// Rest returns the unconsumed input at the innermost failure point.
func (e *Error) Rest() string {
	if len(e.Trail) == 0 {
		return ""
	}
	return e.Trail[0].Rest
}

func (e *Error) Error() string {
	if len(e.Trail) == 0 {
		return "parse error"
	}
	return fmt.Sprintf("expected %s at %q", e.Trail[0].Label, Preview(e.Trail[0].Rest))
}

// IsFatal reports whether err is (or wraps) a fatal parse failure.
func IsFatal(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.fatal
}

// Line computes the 1-based line number of rest within full. rest must be a
// suffix of full, which holds for every frame recorded during a parse since
// the grammars only ever advance through the one input string.
func Line(full, rest string) int {
	pos := len(full) - len(rest)
	if pos < 0 {
		pos = 0
	}
	return 1 + strings.Count(full[:pos], "\n")
}

// Preview returns the first line of rest, trimmed, for diagnostics.
func Preview(rest string) string {
	line, _, _ := strings.Cut(rest, "\n")
	return strings.TrimSpace(line)
}

// Render formats the full context trail against the original input, innermost
// frame first, one line per frame.
func Render(full string, e *Error) string {
	var b strings.Builder
	for i, f := range e.Trail {
		fmt.Fprintf(&b, "%d: in %s at line %d: %q\n", i, f.Label, Line(full, f.Rest), Preview(f.Rest))
	}
	return b.String()
}
