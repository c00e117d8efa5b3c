package nativetype

import (
	"strings"

	"github.com/wippyai/bindgen/mapping"
)

// StructDefinition is the registry entry a struct type refers to.
type StructDefinition interface {
	QualifiedName() string
	NativeName() string
	JavaClassName() string
}

// StructLookup resolves struct definitions by qualified name.
type StructLookup interface {
	LookupStruct(name string) (StructDefinition, bool)
}

// CallbackDefinition is the registry entry a callback type refers to.
type CallbackDefinition interface {
	QualifiedName() string
	JavaClassName() string
}

// CallbackLookup resolves callback signatures by qualified name.
type CallbackLookup interface {
	LookupCallback(name string) (CallbackDefinition, bool)
}

// Type is a native type declaration. Types are immutable: every derivation
// returns a new Type and the receiver is never modified, so a built type
// graph can be shared by any number of goroutines.
type Type struct {
	elem        *Type
	definition  StructDefinition
	signature   CallbackDefinition
	name        string
	className   string
	mapping     mapping.Mapping
	charMapping mapping.Mapping
	kind        Kind

	includesPointer bool
	unsigned        bool
	nullTerminated  bool
}

// Kind returns the variant of t.
func (t *Type) Kind() Kind { return t.kind }

// Name returns the declared native name. For pointer kinds that do not
// include the pointer, this is the pointee spelling; see Spelling.
func (t *Type) Name() string { return t.name }

// Mapping returns the type mapping singleton of t.
func (t *Type) Mapping() mapping.Mapping { return t.mapping }

// IncludesPointer reports whether the declared name already denotes a
// pointer (a typedef such as HWND or LPPOINT).
func (t *Type) IncludesPointer() bool { return t.includesPointer }

// Elem returns the type t points to, if known.
func (t *Type) Elem() *Type { return t.elem }

// Unsigned reports whether an integer type is unsigned.
func (t *Type) Unsigned() bool { return t.unsigned }

// ClassName returns the wrapper class of object and callback types.
func (t *Type) ClassName() string { return t.className }

// Definition returns the struct registry entry of a struct type.
func (t *Type) Definition() StructDefinition { return t.definition }

// CallbackSignature returns the callback registry entry of a callback type.
func (t *Type) CallbackSignature() CallbackDefinition { return t.signature }

// CharMapping returns the char mapping of a char sequence.
func (t *Type) CharMapping() mapping.Mapping { return t.charMapping }

// NullTerminated reports whether a char sequence is null-terminated.
func (t *Type) NullTerminated() bool { return t.nullTerminated }

// NativeCallType returns the JNI argument type.
func (t *Type) NativeCallType() string { return t.mapping.NativeCallType() }

// IntermediateType returns the native method argument type.
func (t *Type) IntermediateType() string { return t.mapping.Intermediate().SimpleName() }

// UserFacingType returns the public method argument type.
func (t *Type) UserFacingType() string {
	switch t.kind {
	case KindObject:
		return t.className
	case KindCallback:
		return t.className + "I"
	case KindStruct:
		return t.definition.JavaClassName()
	}
	if t.mapping == mapping.Boolean4 {
		return "boolean"
	}
	return t.mapping.UserFacing().SimpleName()
}

// Signature returns the JNI signature code of t; see mapping.Signature.
func (t *Type) Signature(strict bool) string { return t.mapping.Signature(strict) }

// IsPointer reports whether t is any pointer kind, or an integer that
// stores a pointer.
func (t *Type) IsPointer() bool {
	return t.kind.IsPointer() || t.mapping == mapping.PointerInt
}

// IsPointerData reports whether t addresses buffer-backed memory rather
// than an opaque handle.
func (t *Type) IsPointerData() bool {
	return t.kind.IsPointer() && t.mapping != mapping.OpaquePointer
}

// IsStructValue reports whether t is a struct passed by value.
func (t *Type) IsStructValue() bool {
	return t.kind == KindStruct && !t.includesPointer
}

// StructLevel returns the struct indirection level: 0 by value, 1 pointer
// to packed values, 2 pointer to pointer. It returns -1 for types that are
// not structs or pointers to structs.
func (t *Type) StructLevel() int {
	switch t.kind {
	case KindStruct:
		if t.includesPointer {
			return 1
		}
		return 0
	case KindPointer:
		if t.elem != nil {
			if lvl := t.elem.StructLevel(); lvl >= 0 {
				return lvl + 1
			}
		}
	}
	return -1
}

// Indirection returns the number of pointer levels between t and its
// innermost element.
func (t *Type) Indirection() int {
	switch {
	case t.kind.IsPrimitive(), t.IsStructValue():
		return 0
	case t.kind == KindStruct:
		return 1
	case t.elem != nil:
		return t.elem.Indirection() + 1
	default:
		return 1
	}
}

// PointerName returns the name of a pointer to t: the declared name with a
// trailing '*' unless the name already includes the pointer.
func (t *Type) PointerName() string {
	var b strings.Builder
	b.WriteString(t.name)
	if !t.includesPointer {
		if !strings.HasSuffix(t.name, "*") {
			b.WriteByte(' ')
		}
		b.WriteByte('*')
	}
	return b.String()
}

// Spelling returns the full native spelling of t, e.g. "HWND *" for a
// pointer to HWND.
func (t *Type) Spelling() string {
	if !t.kind.IsPointer() || t.IsStructValue() {
		return t.name
	}
	return t.PointerName()
}

func (t *Type) String() string {
	var b strings.Builder
	b.WriteString(t.kind.String())
	b.WriteString(": ")
	b.WriteString(t.name)
	b.WriteString(" | ")
	b.WriteString(t.mapping.NativeCallType())
	b.WriteString(" | ")
	b.WriteString(t.IntermediateType())
	b.WriteString(" | ")
	b.WriteString(t.UserFacingType())
	return b.String()
}
