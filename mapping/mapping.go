package mapping

import (
	"strconv"
	"strings"

	"github.com/wippyai/bindgen/errors"
)

// Variant is the kind of a mapping.
type Variant uint8

const (
	VariantGeneric Variant = iota
	VariantPrimitive
	VariantChar
	VariantPointer
)

var variantNames = [...]string{
	VariantGeneric:   "generic",
	VariantPrimitive: "primitive",
	VariantChar:      "char",
	VariantPointer:   "pointer",
}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return "unknown"
}

// Mapping identifies one of the fixed type mapping singletons. Two
// mappings are the same only if they are the same constant, even when all
// of their fields agree (DataBoolean and DataByte, Int and Boolean4).
type Mapping uint8

const (
	// None is the zero value; constructors substitute their default.
	None Mapping = iota

	Void

	Boolean
	// Boolean4 is a 4-byte native boolean exposed as boolean.
	Boolean4
	Byte
	Short
	Int
	Long
	// PointerInt is an integer with enough precision to store a pointer.
	PointerInt
	Float
	Double

	CharASCII
	CharUTF8
	CharUTF16

	OpaquePointer
	// Data is an untyped void * auto-typed at the call site.
	Data
	DataPointer
	DataBoolean
	DataByte
	DataShort
	DataInt
	DataLong
	DataFloat
	DataDouble

	mappingCount
)

const (
	shiftNone    = -1
	shiftPointer = -2
)

// PointerShiftExpr is the symbolic byte shift of pointer-sized elements,
// resolved by the generated runtime.
const PointerShiftExpr = "POINTER_SHIFT"

type info struct {
	name         string
	nativeCall   string
	intermediate Class
	userFacing   Class
	variant      Variant
	bytes        int
	toPointer    Mapping
	charset      Charset
	shift        int
}

var table = [mappingCount]info{
	None: {name: "NONE", shift: shiftNone},
	Void: {name: "VOID", nativeCall: "void", intermediate: ClassVoid, userFacing: ClassVoid, variant: VariantGeneric, shift: shiftNone},

	Boolean:    {name: "BOOLEAN", nativeCall: "jboolean", intermediate: ClassBoolean, userFacing: ClassBoolean, variant: VariantPrimitive, bytes: 1, toPointer: DataBoolean, shift: shiftNone},
	Boolean4:   {name: "BOOLEAN4", nativeCall: "jint", intermediate: ClassInt, userFacing: ClassInt, variant: VariantPrimitive, bytes: 4, toPointer: DataInt, shift: shiftNone},
	Byte:       {name: "BYTE", nativeCall: "jbyte", intermediate: ClassByte, userFacing: ClassByte, variant: VariantPrimitive, bytes: 1, toPointer: DataByte, shift: shiftNone},
	Short:      {name: "SHORT", nativeCall: "jshort", intermediate: ClassShort, userFacing: ClassShort, variant: VariantPrimitive, bytes: 2, toPointer: DataShort, shift: shiftNone},
	Int:        {name: "INT", nativeCall: "jint", intermediate: ClassInt, userFacing: ClassInt, variant: VariantPrimitive, bytes: 4, toPointer: DataInt, shift: shiftNone},
	Long:       {name: "LONG", nativeCall: "jlong", intermediate: ClassLong, userFacing: ClassLong, variant: VariantPrimitive, bytes: 8, toPointer: DataLong, shift: shiftNone},
	PointerInt: {name: "POINTER", nativeCall: "jlong", intermediate: ClassLong, userFacing: ClassLong, variant: VariantPrimitive, toPointer: DataPointer, shift: shiftNone},
	Float:      {name: "FLOAT", nativeCall: "jfloat", intermediate: ClassFloat, userFacing: ClassFloat, variant: VariantPrimitive, bytes: 4, toPointer: DataFloat, shift: shiftNone},
	Double:     {name: "DOUBLE", nativeCall: "jdouble", intermediate: ClassDouble, userFacing: ClassDouble, variant: VariantPrimitive, bytes: 8, toPointer: DataDouble, shift: shiftNone},

	CharASCII: {name: "ASCII", nativeCall: "jbyte", intermediate: ClassByte, userFacing: ClassByte, variant: VariantChar, bytes: 1, toPointer: DataByte, charset: CharsetASCII, shift: shiftNone},
	CharUTF8:  {name: "UTF8", nativeCall: "jbyte", intermediate: ClassByte, userFacing: ClassByte, variant: VariantChar, bytes: 1, toPointer: DataByte, charset: CharsetUTF8, shift: shiftNone},
	CharUTF16: {name: "UTF16", nativeCall: "jchar", intermediate: ClassChar, userFacing: ClassChar, variant: VariantChar, bytes: 2, toPointer: DataShort, charset: CharsetUTF16, shift: shiftNone},

	OpaquePointer: {name: "OPAQUE_POINTER", nativeCall: "jlong", intermediate: ClassLong, userFacing: ClassLong, variant: VariantPointer, shift: shiftNone},
	Data:          {name: "DATA", nativeCall: "jlong", intermediate: ClassLong, userFacing: ClassByteBuffer, variant: VariantPointer, shift: shiftNone},
	DataPointer:   {name: "DATA_POINTER", nativeCall: "jlong", intermediate: ClassLong, userFacing: ClassPointerBuffer, variant: VariantPointer, shift: shiftPointer},
	DataBoolean:   {name: "DATA_BOOLEAN", nativeCall: "jlong", intermediate: ClassLong, userFacing: ClassByteBuffer, variant: VariantPointer, shift: 0},
	DataByte:      {name: "DATA_BYTE", nativeCall: "jlong", intermediate: ClassLong, userFacing: ClassByteBuffer, variant: VariantPointer, shift: 0},
	DataShort:     {name: "DATA_SHORT", nativeCall: "jlong", intermediate: ClassLong, userFacing: ClassShortBuffer, variant: VariantPointer, shift: 1},
	DataInt:       {name: "DATA_INT", nativeCall: "jlong", intermediate: ClassLong, userFacing: ClassIntBuffer, variant: VariantPointer, shift: 2},
	DataLong:      {name: "DATA_LONG", nativeCall: "jlong", intermediate: ClassLong, userFacing: ClassLongBuffer, variant: VariantPointer, shift: 3},
	DataFloat:     {name: "DATA_FLOAT", nativeCall: "jlong", intermediate: ClassLong, userFacing: ClassFloatBuffer, variant: VariantPointer, shift: 2},
	DataDouble:    {name: "DATA_DOUBLE", nativeCall: "jlong", intermediate: ClassLong, userFacing: ClassDoubleBuffer, variant: VariantPointer, shift: 3},
}

// All returns every mapping singleton in declaration order.
func All() []Mapping {
	out := make([]Mapping, 0, mappingCount-1)
	for m := Void; m < mappingCount; m++ {
		out = append(out, m)
	}
	return out
}

// Valid reports whether m is one of the declared singletons.
func (m Mapping) Valid() bool {
	return m > None && m < mappingCount
}

func (m Mapping) info() *info {
	if m < mappingCount {
		return &table[m]
	}
	return &table[None]
}

func (m Mapping) String() string {
	if m >= mappingCount {
		return "unknown"
	}
	return table[m].name
}

// NativeCallType is the type used when crossing into native code, e.g. "jint".
func (m Mapping) NativeCallType() string { return m.info().nativeCall }

// Intermediate is the type used by the generated native method.
func (m Mapping) Intermediate() Class { return m.info().intermediate }

// UserFacing is the type exposed to callers of the binding.
func (m Mapping) UserFacing() Class { return m.info().userFacing }

// Variant returns the kind of mapping.
func (m Mapping) Variant() Variant { return m.info().variant }

// IsPrimitive reports whether m is a primitive mapping. Char mappings are
// primitive mappings too.
func (m Mapping) IsPrimitive() bool {
	v := m.Variant()
	return m.Valid() && (v == VariantPrimitive || v == VariantChar)
}

// IsChar reports whether m is a char mapping.
func (m Mapping) IsChar() bool { return m.Valid() && m.Variant() == VariantChar }

// IsPointerMapping reports whether m is a pointer mapping.
func (m Mapping) IsPointerMapping() bool { return m.Valid() && m.Variant() == VariantPointer }

// Bytes returns the width of a primitive mapping. PointerInt has no fixed
// width and reports 0; use Size.
func (m Mapping) Bytes() int { return m.info().bytes }

// Size returns the native width of a primitive or pointer mapping on a
// target with the given pointer size.
func (m Mapping) Size(pointerSize int) int {
	if m == PointerInt || m.IsPointerMapping() {
		return pointerSize
	}
	return m.Bytes()
}

// ToPointer returns the buffer mapping used for a pointer to m.
func (m Mapping) ToPointer() Mapping { return m.info().toPointer }

// Charset returns the encoding of a char mapping.
func (m Mapping) Charset() Charset { return m.info().charset }

// ByteShift returns log2 of the element size of a pointer mapping. ok is
// false for mappings without addressable elements and for DataPointer,
// whose shift depends on the target; see ByteShiftExpr.
func (m Mapping) ByteShift() (shift int, ok bool) {
	s := m.info().shift
	if s < 0 {
		return 0, false
	}
	return s, true
}

// ByteShiftExpr returns the byte shift as it appears in generated code, or
// "" when m has no element.
func (m Mapping) ByteShiftExpr() string {
	switch s := m.info().shift; s {
	case shiftNone:
		return ""
	case shiftPointer:
		return PointerShiftExpr
	default:
		return strconv.Itoa(s)
	}
}

// IsMultiByte reports whether the element of a pointer mapping is wider
// than one byte.
func (m Mapping) IsMultiByte() bool {
	s := m.info().shift
	return s == shiftPointer || s > 0
}

// ElementSize returns the element width of a pointer mapping, or 0 when it
// has none.
func (m Mapping) ElementSize(pointerSize int) int {
	switch s := m.info().shift; s {
	case shiftNone:
		return 0
	case shiftPointer:
		return pointerSize
	default:
		return 1 << s
	}
}

// Box returns the user-facing class name without the Buffer suffix.
func (m Mapping) Box() string {
	name := m.UserFacing().SimpleName()
	box, _, _ := strings.Cut(name, "Buffer")
	return box
}

// Primitive returns the primitive element type name of a pointer mapping.
func (m Mapping) Primitive() string {
	switch m {
	case DataBoolean:
		return "boolean"
	case DataPointer:
		return "long"
	default:
		return strings.ToLower(m.Box())
	}
}

// MallocType returns the suffix of the allocation helper for the element.
func (m Mapping) MallocType() string {
	if box := m.Box(); box != "Byte" {
		return box
	}
	return ""
}

// Signature returns the JNI signature code of the intermediate type. When
// strict is false, a long that stores a pointer is reported as "P"; only
// the canonical Long mapping keeps "J".
func (m Mapping) Signature(strict bool) string {
	if !strict && m.Intermediate() == ClassLong && m != Long {
		return "P"
	}
	return m.Intermediate().Code()
}

// UserFacingSignature tells a genuine 64-bit integer ("J") apart from a
// pointer stored in a long ("P"). Other mappings return "".
func (m Mapping) UserFacingSignature() string {
	if m.Intermediate() != ClassLong {
		return ""
	}
	if m == Long {
		return "J"
	}
	return "P"
}

// ArraySignature returns the JNI array suffix used to mangle native array
// overloads.
func (m Mapping) ArraySignature() (string, error) {
	switch m {
	case DataDouble:
		return "_3D", nil
	case DataFloat:
		return "_3F", nil
	case DataInt:
		return "_3I", nil
	case DataLong:
		return "_3J", nil
	case DataShort:
		return "_3S", nil
	default:
		return "", errors.UnsupportedArrayElement(m.String())
	}
}

// IsPointerSize reports whether m may hold a native pointer depending on
// the target word size.
func (m Mapping) IsPointerSize() bool {
	return m == DataInt || m == DataPointer
}

// IsArrayEligible reports whether parameters with this mapping also get a
// primitive array overload.
func (m Mapping) IsArrayEligible() bool {
	return m.IsPointerMapping() && m.IsMultiByte() && m != DataPointer
}
