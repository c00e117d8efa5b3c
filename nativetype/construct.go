package nativetype

import (
	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/mapping"
)

// Pointer describes a pointer type declaration.
type Pointer struct {
	// Elem is the optional type pointed to.
	Elem *Type
	// Name is the type used in the native API.
	Name string
	// Mapping defaults to mapping.OpaquePointer.
	Mapping mapping.Mapping
	// IncludesPointer is set when Name is a typedef that includes the pointer.
	IncludesPointer bool
}

// Struct describes a struct type declaration.
type Struct struct {
	Elem *Type
	// Key is the qualified name of the registered struct definition.
	Key string
	// Name defaults to the definition's native name.
	Name string
	// Mapping defaults to mapping.DataByte.
	Mapping mapping.Mapping
	// IncludesPointer is false for pass-by-value structs.
	IncludesPointer bool
}

// CharSequence describes a string type declaration.
type CharSequence struct {
	Name string
	// Mapping defaults to mapping.DataByte.
	Mapping mapping.Mapping
	// Charset is a char mapping and defaults to mapping.CharASCII.
	Charset         mapping.Mapping
	IncludesPointer bool
	NullTerminated  bool
}

func checkName(name string) error {
	if name == "" {
		return errors.InvalidInput(errors.PhaseDeclare, "native type name is empty")
	}
	return nil
}

func checkPrimitive(name string, m mapping.Mapping) error {
	if err := checkName(name); err != nil {
		return err
	}
	if !m.IsPrimitive() {
		return errors.InvalidMapping(errors.PhaseDeclare, name, m.String(), "primitive")
	}
	return nil
}

func checkPointerMapping(name string, m mapping.Mapping) error {
	if !m.IsPointerMapping() {
		return errors.InvalidMapping(errors.PhaseDeclare, name, m.String(), "pointer")
	}
	return nil
}

// NewPrimitive declares a primitive type. Void is accepted for return types.
func NewPrimitive(name string, m mapping.Mapping) (*Type, error) {
	if m != mapping.Void {
		if err := checkPrimitive(name, m); err != nil {
			return nil, err
		}
	} else if err := checkName(name); err != nil {
		return nil, err
	}
	return &Type{kind: KindPrimitive, name: name, mapping: m}, nil
}

// NewInteger declares an integer type.
func NewInteger(name string, m mapping.Mapping, unsigned bool) (*Type, error) {
	if err := checkPrimitive(name, m); err != nil {
		return nil, err
	}
	return &Type{kind: KindInteger, name: name, mapping: m, unsigned: unsigned}, nil
}

// Enum declares an int-backed integer type used for enumerations.
func Enum(name string) (*Type, error) {
	return NewInteger(name, mapping.Int, false)
}

// NewChar declares a character type; m must be a char mapping.
func NewChar(name string, m mapping.Mapping) (*Type, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if !m.IsChar() {
		return nil, errors.InvalidMapping(errors.PhaseDeclare, name, m.String(), "char")
	}
	return &Type{kind: KindChar, name: name, mapping: m}, nil
}

// NewPointer declares a pointer type.
func NewPointer(p Pointer) (*Type, error) {
	if err := checkName(p.Name); err != nil {
		return nil, err
	}
	m := p.Mapping
	if m == mapping.None {
		m = mapping.OpaquePointer
	}
	if err := checkPointerMapping(p.Name, m); err != nil {
		return nil, err
	}
	return &Type{
		kind:            KindPointer,
		name:            p.Name,
		mapping:         m,
		includesPointer: p.IncludesPointer,
		elem:            p.Elem,
	}, nil
}

// PointerTo declares an opaque pointer to the named type, e.g. PointerTo("void").
func PointerTo(name string) (*Type, error) {
	return NewPointer(Pointer{Name: name})
}

// Opaque declares an opaque handle whose name includes the pointer, e.g. HWND.
func Opaque(name string) (*Type, error) {
	return NewPointer(Pointer{Name: name, IncludesPointer: true})
}

// NewObject declares a pointer exposed through a wrapper class. name
// defaults to className.
func NewObject(className, name string) (*Type, error) {
	if err := checkName(className); err != nil {
		return nil, err
	}
	if name == "" {
		name = className
	}
	return &Type{
		kind:            KindObject,
		name:            name,
		className:       className,
		mapping:         mapping.OpaquePointer,
		includesPointer: true,
	}, nil
}

// NewStruct declares a struct type bound to a registered definition. An
// unregistered key fails with an unresolved reference error.
func NewStruct(structs StructLookup, s Struct) (*Type, error) {
	def, ok := structs.LookupStruct(s.Key)
	if !ok {
		return nil, errors.UnresolvedReference(errors.PhaseDeclare, "struct", s.Key)
	}
	name := s.Name
	if name == "" {
		name = def.NativeName()
	}
	m := s.Mapping
	if m == mapping.None {
		m = mapping.DataByte
	}
	if err := checkPointerMapping(name, m); err != nil {
		return nil, err
	}
	return &Type{
		kind:            KindStruct,
		name:            name,
		mapping:         m,
		definition:      def,
		includesPointer: s.IncludesPointer,
		elem:            s.Elem,
	}, nil
}

// NewCharSequence declares a string type.
func NewCharSequence(cs CharSequence) (*Type, error) {
	if err := checkName(cs.Name); err != nil {
		return nil, err
	}
	m := cs.Mapping
	if m == mapping.None {
		m = mapping.DataByte
	}
	if err := checkPointerMapping(cs.Name, m); err != nil {
		return nil, err
	}
	charset := cs.Charset
	if charset == mapping.None {
		charset = mapping.CharASCII
	}
	if !charset.IsChar() {
		return nil, errors.InvalidMapping(errors.PhaseDeclare, cs.Name, charset.String(), "char")
	}
	return &Type{
		kind:            KindCharSequence,
		name:            cs.Name,
		mapping:         m,
		charMapping:     charset,
		includesPointer: cs.IncludesPointer,
		nullTerminated:  cs.NullTerminated,
	}, nil
}

// NewCallback declares a function pointer bound to a registered callback
// signature. name defaults to the callback's class name.
func NewCallback(callbacks CallbackLookup, key, name string) (*Type, error) {
	sig, ok := callbacks.LookupCallback(key)
	if !ok {
		return nil, errors.UnresolvedReference(errors.PhaseDeclare, "callback", key)
	}
	if name == "" {
		name = sig.JavaClassName()
	}
	return &Type{
		kind:            KindCallback,
		name:            name,
		className:       sig.JavaClassName(),
		mapping:         mapping.OpaquePointer,
		includesPointer: true,
		signature:       sig,
	}, nil
}

// NewArray marks a pointer type as also accepting a primitive array
// overload. The result carries the same name, mapping, flags and element.
func NewArray(p *Type) (*Type, error) {
	if !p.kind.IsPointer() {
		return nil, errors.InvalidPromotion(p.name, p.mapping.String(), "array conversion requires a pointer type, got "+p.kind.String())
	}
	return &Type{
		kind:            KindArray,
		name:            p.name,
		mapping:         p.mapping,
		includesPointer: p.includesPointer,
		elem:            p.elem,
	}, nil
}
