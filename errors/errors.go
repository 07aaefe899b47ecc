package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode   Phase = "encode"   // writing values to a stream
	PhaseDecode   Phase = "decode"   // reading values from a stream
	PhaseQuantize Phase = "quantize" // precision mapping
)

// Kind categorizes the error
type Kind string

const (
	KindOverflow         Kind = "overflow"          // value does not fit the declared width
	KindOutOfBounds      Kind = "out_of_bounds"     // read past the end of the buffer
	KindInvalidParameter Kind = "invalid_parameter" // bit count, width or prefix outside its domain
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any    // offending value, if any
	Cause  error  // underlying error, if any
	Phase  Phase  // encode, decode or quantize
	Kind   Kind   // error category
	Offset int    // byte offset of the cursor when the error occurred
	Bit    int    // bit offset within the byte at Offset
	Detail string // human-readable description
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Offset > 0 || e.Bit > 0 {
		fmt.Fprintf(&b, " at offset %d.%d", e.Offset, e.Bit)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Value != nil {
		fmt.Fprintf(&b, " (value %v)", e.Value)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Position sets the cursor position at the point of failure
func (b *Builder) Position(offset, bit int) *Builder {
	b.err.Offset = offset
	b.err.Bit = bit
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Overflow creates an overflow error for a value that does not fit its width
func Overflow(phase Phase, value any, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: detail,
		Value:  value,
	}
}

// OutOfBounds creates an out of bounds error at the given cursor position
func OutOfBounds(phase Phase, offset, bit int, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Offset: offset,
		Bit:    bit,
		Detail: detail,
	}
}

// InvalidParameter creates an error for a parameter outside its valid domain
func InvalidParameter(phase Phase, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidParameter,
		Detail: detail,
	}
}

// IsOverflow reports whether err is an overflow error
func IsOverflow(err error) bool {
	return isKind(err, KindOverflow)
}

// IsOutOfBounds reports whether err is an out of bounds error
func IsOutOfBounds(err error) bool {
	return isKind(err, KindOutOfBounds)
}

// IsInvalidParameter reports whether err is an invalid parameter error
func IsInvalidParameter(err error) bool {
	return isKind(err, KindInvalidParameter)
}

func isKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
