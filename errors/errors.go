package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in generation the error occurred
type Phase string

const (
	PhaseDeclare   Phase = "declare"   // template declarations
	PhaseDerive    Phase = "derive"    // pointer-of, typedef, array-of
	PhaseSignature Phase = "signature" // signature code derivation
	PhaseRegistry  Phase = "registry"  // struct/callback/function stores
	PhaseLayout    Phase = "layout"    // struct memory layout
	PhaseEmit      Phase = "emit"      // source emission
	PhaseConfig    Phase = "config"    // CLI and environment
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupportedArrayElement Kind = "unsupported_array_element"
	KindUnresolvedReference     Kind = "unresolved_reference"
	KindInvalidPromotion        Kind = "invalid_promotion"
	KindInvalidMapping          Kind = "invalid_mapping"
	KindDuplicate               Kind = "duplicate"
	KindFrozen                  Kind = "frozen"
	KindUnsupported             Kind = "unsupported"
	KindInvalidInput            Kind = "invalid_input"
	KindNotFound                Kind = "not_found"
)

// Error is the structured error type used throughout the generator
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	NativeType string
	Mapping    string
	Detail     string
	Path       []string
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

	if e.NativeType != "" || e.Mapping != "" {
		b.WriteString(": ")
		if e.NativeType != "" && e.Mapping != "" {
			b.WriteString("native type ")
			b.WriteString(e.NativeType)
			b.WriteString(", mapping ")
			b.WriteString(e.Mapping)
		} else if e.NativeType != "" {
			b.WriteString("native type ")
			b.WriteString(e.NativeType)
		} else {
			b.WriteString("mapping ")
			b.WriteString(e.Mapping)
		}
	}

	if e.Detail != "" {
		if e.NativeType != "" || e.Mapping != "" {
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

// Path sets the declaration path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// NativeType sets the native type name
func (b *Builder) NativeType(t string) *Builder {
	b.err.NativeType = t
	return b
}

// Mapping sets the type mapping name
func (b *Builder) Mapping(m string) *Builder {
	b.err.Mapping = m
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

// UnsupportedArrayElement reports an array signature request for a mapping
// whose element is not one of double, float, int, long or short.
func UnsupportedArrayElement(mapping string) *Error {
	return &Error{
		Phase:   PhaseSignature,
		Kind:    KindUnsupportedArrayElement,
		Mapping: mapping,
		Detail:  "array overloads exist only for double, float, int, long and short elements",
	}
}

// UnresolvedReference creates an error for a registry key with no definition
func UnresolvedReference(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnresolvedReference,
		Detail: fmt.Sprintf("%s %q is not registered", what, name),
		Value:  name,
	}
}

// InvalidPromotion creates an error for a derivation with no defined rule
func InvalidPromotion(nativeType, mapping, detail string) *Error {
	return &Error{
		Phase:      PhaseDerive,
		Kind:       KindInvalidPromotion,
		NativeType: nativeType,
		Mapping:    mapping,
		Detail:     detail,
	}
}

// InvalidMapping creates an error for a mapping of the wrong variant
func InvalidMapping(phase Phase, nativeType, mapping, want string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindInvalidMapping,
		NativeType: nativeType,
		Mapping:    mapping,
		Detail:     fmt.Sprintf("expected a %s mapping", want),
	}
}

// Duplicate creates a duplicate registration error
func Duplicate(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicate,
		Detail: fmt.Sprintf("%s %q already registered", what, name),
		Value:  name,
	}
}

// Frozen creates an error for a registration after the build phase ended
func Frozen(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFrozen,
		Detail: fmt.Sprintf("cannot register %s %q: registry is frozen", what, name),
		Value:  name,
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

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
		Value:  name,
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
