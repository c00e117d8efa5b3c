package nativetype

import (
	"fmt"

	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/mapping"
)

// MaxIndirection is the deepest pointer chain P will produce.
const MaxIndirection = 3

// P returns a pointer to t.
//
// Structs have three levels:
//
//  1. struct value: includesPointer is false, mapped to ByteBuffer.
//  2. pointer to struct value(s): a struct with includesPointer set, still
//     mapped to ByteBuffer. Struct arrays are packed, so no extra
//     indirection is needed.
//  3. pointer to pointer to struct value(s): a plain pointer mapped to
//     PointerBuffer.
//
// P on a level 1 struct therefore switches to a DataPointer pointer instead
// of nesting another struct.
func (t *Type) P() (*Type, error) {
	switch t.kind {
	case KindChar:
		return &Type{
			kind:        KindCharSequence,
			name:        t.name,
			mapping:     mapping.DataByte,
			charMapping: t.mapping,
		}, nil
	case KindPrimitive, KindInteger:
		return t.primitivePointer(t.name, false)
	case KindStruct:
		if t.includesPointer {
			return t.dataPointer(t.PointerName())
		}
		return &Type{
			kind:            KindStruct,
			name:            t.PointerName(),
			mapping:         t.mapping,
			definition:      t.definition,
			includesPointer: true,
			elem:            t,
		}, nil
	case KindArray:
		return nil, errors.InvalidPromotion(t.name, t.mapping.String(), "array overload types cannot be pointed to")
	default:
		return t.dataPointer(t.PointerName())
	}
}

// PNamed returns a pointer to t declared under a typedef name that
// includes the pointer, e.g. PNamed("LPDWORD") on DWORD. Only primitive
// and struct types have named pointers.
func (t *Type) PNamed(name string) (*Type, error) {
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseDerive, "pointer typedef name is empty")
	}
	switch t.kind {
	case KindPrimitive, KindInteger:
		return t.primitivePointer(name, true)
	case KindStruct:
		return &Type{
			kind:            KindStruct,
			name:            name,
			mapping:         t.mapping,
			definition:      t.definition,
			includesPointer: true,
			elem:            t,
		}, nil
	default:
		return nil, errors.InvalidPromotion(t.name, t.mapping.String(), "named pointers exist for primitive and struct types only, got "+t.kind.String())
	}
}

// PConstP returns a pointer to a const pointer to the pointee of t, e.g.
// "char * const *".
func (t *Type) PConstP() (*Type, error) {
	if !t.kind.IsPointer() || t.kind == KindArray {
		return nil, errors.InvalidPromotion(t.name, t.mapping.String(), "const pointer-of requires a pointer type, got "+t.kind.String())
	}
	return t.dataPointer(t.PointerName() + " const")
}

func (t *Type) primitivePointer(name string, includesPointer bool) (*Type, error) {
	m := t.mapping.ToPointer()
	if !m.IsPointerMapping() {
		return nil, errors.InvalidPromotion(t.name, t.mapping.String(), "mapping has no pointer form")
	}
	return &Type{
		kind:            KindPointer,
		name:            name,
		mapping:         m,
		includesPointer: includesPointer,
		elem:            t,
	}, nil
}

func (t *Type) dataPointer(name string) (*Type, error) {
	if depth := t.Indirection() + 1; depth > MaxIndirection {
		return nil, errors.New(errors.PhaseDerive, errors.KindInvalidPromotion).
			NativeType(t.Spelling()).
			Mapping(t.mapping.String()).
			Value(depth).
			Detail("indirection %d exceeds %d", depth, MaxIndirection).
			Build()
	}
	return &Type{
		kind:    KindPointer,
		name:    name,
		mapping: mapping.DataPointer,
		elem:    t,
	}, nil
}

// Typedef returns a copy of t declared under a new name. Kind, mapping,
// flags and element are unchanged.
func Typedef(t *Type, name string) (*Type, error) {
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseDerive, fmt.Sprintf("typedef of %s has an empty name", t.name))
	}
	c := *t
	c.name = name
	return &c, nil
}
