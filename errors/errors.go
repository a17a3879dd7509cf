package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCompile Phase = "compile" // layout compilation
	PhaseEncode  Phase = "encode"  // Go value to buffer bytes
	PhaseDecode  Phase = "decode"  // buffer bytes to Go value
	PhaseParse   Phase = "parse"   // JSON/WIT layout parsing
	PhaseUpload  Phase = "upload"  // hand-off to a byte sink
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidLayout          Kind = "invalid_layout"
	KindUnknownType            Kind = "unknown_type"
	KindInvalidArrayLength     Kind = "invalid_array_length"
	KindFieldUnknown           Kind = "field_unknown"
	KindTypeMismatch           Kind = "type_mismatch"
	KindComponentCountMismatch Kind = "component_count_mismatch"
	KindInvalidData            Kind = "invalid_data"
	KindOutOfBounds            Kind = "out_of_bounds"
	KindUnsupported            Kind = "unsupported"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	WGSLType string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.WGSLType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.WGSLType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", WGSL type ")
			b.WriteString(e.WGSLType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("WGSL type ")
			b.WriteString(e.WGSLType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.WGSLType != "" {
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
// A target with an empty Phase matches on Kind alone.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase == "" {
			return e.Kind == t.Kind
		}
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether any error in err's chain is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
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

// WGSLType sets the WGSL type name
func (b *Builder) WGSLType(t string) *Builder {
	b.err.WGSLType = t
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

// InvalidLayout creates an error for a structurally invalid layout specification
func InvalidLayout(path []string, detail string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindInvalidLayout,
		Path:   path,
		Detail: detail,
	}
}

// UnknownType creates an error for an unrecognized primitive type tag
func UnknownType(path []string, tag string) *Error {
	return &Error{
		Phase:    PhaseCompile,
		Kind:     KindUnknownType,
		Path:     path,
		WGSLType: tag,
		Detail:   fmt.Sprintf("unknown type tag %q", tag),
		Value:    tag,
	}
}

// InvalidArrayLength creates an error for a non-positive array length
func InvalidArrayLength(path []string, length int) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindInvalidArrayLength,
		Path:   path,
		Detail: fmt.Sprintf("array length %d must be positive", length),
		Value:  length,
	}
}

// FieldUnknown creates an unknown field error
func FieldUnknown(phase Phase, path []string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldUnknown,
		Path:   path,
		Detail: fmt.Sprintf("unknown field %q", strings.Join(path, ".")),
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, wgslType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		GoType:   goType,
		WGSLType: wgslType,
	}
}

// ComponentCountMismatch creates an error for a vector or matrix value of the wrong length
func ComponentCountMismatch(phase Phase, path []string, wgslType string, got, want int) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindComponentCountMismatch,
		Path:     path,
		WGSLType: wgslType,
		Detail:   fmt.Sprintf("got %d components, want %d", got, want),
		Value:    got,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
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
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}
