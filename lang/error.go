package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
//
// Errors returned by this package derive from one of these via [Error.With],
// [Error.Wrap], or [Error.WithPosition], and still satisfy errors.Is against
// the sentinel they came from.
var (
	ErrLex               = NewError("lex error")
	ErrParse             = NewError("parse error")
	ErrUndefinedVariable = NewError("undefined variable")
	ErrUndefinedFunction = NewError("undefined function")
	ErrTypeMismatch      = NewError("operation undefined for operand kinds")
	ErrDivisionByZero    = NewError("division by zero")
	ErrMissingReturn     = NewError("function did not return a value")
	ErrCallDepthExceeded = NewError("maximum call depth exceeded")
	ErrCanceled          = NewError("execution canceled")
	ErrReadInput         = NewError("failed to read input")
	ErrBuiltin           = NewError("builtin failed")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
	pos   Position    // Source location, if known
	kind  *Error      // Sentinel this error derives from
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.kind = e

	return e
}

// WrapError wraps a standard error into an Error.
// If err already is (or wraps) an *Error, that value is returned.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg> at <pos>: <err> (<attrs>)"
	//   2. "<msg>"
	//   3. "<err>"
	part := make([]string, 0, 2)

	if e.msg != "" {
		msg := e.msg
		if e.pos.IsValid() {
			msg += " at " + e.pos.String()
		}

		part = append(part, msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	s := strings.Join(part, ": ")

	if detail := e.detail(); detail != "" {
		s += " (" + detail + ")"
	}

	return s
}

// detail formats the attributes as key=value pairs.
func (e *Error) detail() string {
	if len(e.attrs) == 0 {
		return ""
	}

	kv := make([]string, 0, len(e.attrs))

	for _, a := range e.attrs {
		var v string

		switch a.Value.Kind() {
		case slog.KindString:
			v = strconv.Quote(a.Value.String())
		default:
			v = a.Value.String()
		}

		kv = append(kv, a.Key+"="+v)
	}

	return strings.Join(kv, " ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e derives from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}

	return e == t || (e.kind != nil && e.kind == t.kind)
}

// Position returns the source location attached to the error, if any.
func (e *Error) Position() Position { return e.pos }

// Attrs returns a copy of the structured attributes.
func (e *Error) Attrs() []slog.Attr {
	return append([]slog.Attr(nil), e.attrs...)
}

// Attr returns the value of the attribute named key.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}

	return slog.Value{}, false
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.pos.IsValid() {
		attrs = append(attrs, slog.Any("position", e.pos))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(c.attrs, e.attrs)
	copy(c.attrs[len(e.attrs):], attrs)

	return c
}

// WithPosition returns a copy of the error located at pos.
func (e *Error) WithPosition(pos Position) *Error {
	c := e.clone()
	c.pos = pos

	return c
}

func (e *Error) clone() *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: e.attrs, // Share attrs
		pos:   e.pos,
		kind:  e.kind,
	}
}

// Snippet renders the source line containing the error's position with a
// caret under the offending column. It returns "" when err carries no
// position or the position lies outside source.
func Snippet(err error, source string) string {
	ee := &Error{}
	if !errors.As(err, &ee) || !ee.pos.IsValid() {
		return ""
	}

	lines := strings.Split(source, "\n")
	if ee.pos.Line > len(lines) {
		return ""
	}

	line := ee.pos.Line
	lineText := lines[line-1]

	var buf strings.Builder

	// Print the line with line number
	buf.WriteString("  ")
	buf.WriteString(strconv.Itoa(line))
	buf.WriteString(" | ")
	buf.WriteString(lineText)
	buf.WriteRune('\n')

	// Print marker pointing to the column
	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(strconv.Itoa(line))+5)

	if ee.pos.Column > 0 {
		padding += strings.Repeat(" ", ee.pos.Column-1)
	}

	buf.WriteString(padding + "^\n")

	return buf.String()
}
