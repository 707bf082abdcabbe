package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseQuery     Phase = "query"     // native attribute queries
	PhaseDecode    Phase = "decode"    // raw bytes to typed values
	PhaseEncode    Phase = "encode"    // typed values to raw bytes
	PhaseEnumerate Phase = "enumerate" // platform/device listing
	PhaseCreate    Phase = "create"    // resource creation calls
	PhaseMutate    Phase = "mutate"    // calls that change native state
	PhaseLifecycle Phase = "lifecycle" // retain/release
	PhaseLoad      Phase = "load"      // fixtures and captures
	PhaseDriver    Phase = "driver"    // driver initialization
)

// Kind categorizes the error
type Kind string

const (
	KindStatus           Kind = "status"            // native entry point returned non-success
	KindBufferTooSmall   Kind = "buffer_too_small"  // fixed decode kind given too few bytes
	KindSizeMismatch     Kind = "size_mismatch"     // phase sizes disagree
	KindInvalidHandle    Kind = "invalid_handle"    // zero sentinel or wrong kind
	KindInvalidData      Kind = "invalid_data"      // malformed buffer or document
	KindTypeMismatch     Kind = "type_mismatch"     // Go value cannot encode as decode kind
	KindUnknownAttribute Kind = "unknown_attribute" // no descriptor registered
	KindUnsupported      Kind = "unsupported"       // operation not available
	KindNotBuilt         Kind = "not_built"         // driver compiled out
	KindInvalidInput     Kind = "invalid_input"     // caller supplied bad arguments
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Object string // target, e.g. "device(0x1000)"
	Param  string // attribute name
	Op     string // native entry point
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Object != "" || e.Param != "" {
		b.WriteString(" at ")
		b.WriteString(e.Object)
		if e.Object != "" && e.Param != "" {
			b.WriteByte('.')
		}
		b.WriteString(e.Param)
	}

	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}

	if e.Detail != "" {
		if e.Op != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
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

// Object sets the queried object
func (b *Builder) Object(o fmt.Stringer) *Builder {
	b.err.Object = o.String()
	return b
}

// Param sets the attribute name
func (b *Builder) Param(name string) *Builder {
	b.err.Param = name
	return b
}

// Op sets the native entry point name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
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

// Status wraps a non-success native status. status is kept as the cause so
// callers can recover the originating code.
func Status(phase Phase, op string, status error) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindStatus,
		Op:    op,
		Cause: status,
	}
}

// BufferTooSmall creates a decode error for a short buffer
func BufferTooSmall(param string, need, have int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindBufferTooSmall,
		Param:  param,
		Detail: fmt.Sprintf("need %d bytes, have %d", need, have),
		Value:  have,
	}
}

// SizeMismatch creates an error for a size that disagrees with the one reported earlier
func SizeMismatch(phase Phase, param string, reported, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSizeMismatch,
		Param:  param,
		Detail: fmt.Sprintf("reported %d bytes, got %d", reported, got),
		Value:  got,
	}
}

// InvalidHandle creates an error for the zero sentinel or a foreign handle
func InvalidHandle(phase Phase, object string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Object: object,
		Detail: "invalid handle",
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, param string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Param:  param,
		Detail: detail,
	}
}

// TypeMismatch creates an error for a Go value that does not fit a decode kind
func TypeMismatch(param string, value any, want string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindTypeMismatch,
		Param:  param,
		Detail: fmt.Sprintf("cannot encode %T as %s", value, want),
		Value:  value,
	}
}

// UnknownAttribute creates an error for a name or id missing from a registry
func UnknownAttribute(phase Phase, object, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownAttribute,
		Object: object,
		Detail: fmt.Sprintf("attribute %q not registered", name),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Load creates a fixture/capture loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// NotBuilt creates an error for a driver compiled out of the binary
func NotBuilt(detail string) *Error {
	return &Error{
		Phase:  PhaseDriver,
		Kind:   KindNotBuilt,
		Detail: detail,
	}
}
