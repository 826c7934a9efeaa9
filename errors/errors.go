package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRegistry Phase = "registry" // element function table construction
	PhaseEncode   Phase = "encode"   // Go value to buffer
	PhaseDecode   Phase = "decode"   // buffer to Go value
	PhaseBridge   Phase = "bridge"   // operator binding and dispatch
	PhaseInvoke   Phase = "invoke"   // method invocation
	PhaseLoad     Phase = "load"     // input loading (CLI)
	PhaseParse    Phase = "parse"    // type string / field list parsing
	PhaseResource Phase = "resource" // handle table operations
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupportedType       Kind = "unsupported_type"
	KindUnsupportedConversion Kind = "unsupported_conversion"
	KindUnsupportedOperation  Kind = "unsupported_operation"
	KindArityMismatch         Kind = "arity_mismatch"
	KindSizeMismatch          Kind = "size_mismatch"
	KindMultipleContexts      Kind = "multiple_contexts_unsupported"
	KindAlreadyInitialized    Kind = "already_initialized"
	KindNotInitialized        Kind = "not_initialized"
	KindInvalidHandle         Kind = "invalid_handle"
	KindOutOfBounds           Kind = "out_of_bounds"
	KindOperationFailed       Kind = "operation_failed"
	KindInvalidInput          Kind = "invalid_input"
)

// Sentinels match any error of the same Kind regardless of Phase:
//
//	if errors.Is(err, errors.ErrArityMismatch) { ... }
var (
	ErrUnsupportedType       = &Error{Kind: KindUnsupportedType}
	ErrUnsupportedConversion = &Error{Kind: KindUnsupportedConversion}
	ErrUnsupportedOperation  = &Error{Kind: KindUnsupportedOperation}
	ErrArityMismatch         = &Error{Kind: KindArityMismatch}
	ErrSizeMismatch          = &Error{Kind: KindSizeMismatch}
	ErrMultipleContexts      = &Error{Kind: KindMultipleContexts}
	ErrAlreadyInitialized    = &Error{Kind: KindAlreadyInitialized}
	ErrNotInitialized        = &Error{Kind: KindNotInitialized}
	ErrInvalidHandle         = &Error{Kind: KindInvalidHandle}
	ErrOutOfBounds           = &Error{Kind: KindOutOfBounds}
	ErrOperationFailed       = &Error{Kind: KindOperationFailed}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Tag    string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.Tag != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Tag != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", element type ")
			b.WriteString(e.Tag)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("element type ")
			b.WriteString(e.Tag)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Tag != "" {
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

// Is reports whether target matches this error.
// A target without a Phase matches on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
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

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Tag sets the element type name
func (b *Builder) Tag(t string) *Builder {
	b.err.Tag = t
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

// WithPath returns err with name prefixed to its field path.
// Errors that are not *Error are returned unchanged.
func WithPath(err error, name string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	cp := *e
	cp.Path = append([]string{name}, e.Path...)
	return &cp
}

// Convenience constructors for common error patterns

// UnsupportedType creates an error for a tag with no registered codec
func UnsupportedType(phase Phase, tag string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedType,
		Tag:    tag,
		Detail: "no codec registered",
	}
}

// UnsupportedConversion creates an error for a value that cannot be coerced
func UnsupportedConversion(phase Phase, goType, tag string, value any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedConversion,
		GoType: goType,
		Tag:    tag,
		Value:  value,
	}
}

// UnsupportedOperation creates an unsupported operation error
func UnsupportedOperation(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedOperation,
		Detail: what,
	}
}

// ArityMismatch creates an error for a tuple whose length differs from the field count
func ArityMismatch(phase Phase, want, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindArityMismatch,
		Detail: fmt.Sprintf("size of tuple must match number of fields: expected %d, got %d", want, got),
		Value:  got,
	}
}

// SizeMismatch creates an error for an unsupported native width
func SizeMismatch(phase Phase, what string, size int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSizeMismatch,
		Detail: fmt.Sprintf("%s of size %d is not supported", what, size),
		Value:  size,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, offset int64, length, size int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("access [%d, %d) out of bounds (size %d)", offset, offset+int64(length), size),
		Value:  offset,
	}
}

// InvalidHandle creates an error for a handle that does not reference a live value
func InvalidHandle(phase Phase, handle uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Detail: fmt.Sprintf("handle %d does not reference a live value", handle),
		Value:  handle,
	}
}

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
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

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidInput,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}
