package nativetype

// Kind identifies the variant of a native type.
type Kind uint8

const (
	KindPrimitive Kind = iota
	KindInteger
	KindChar
	KindPointer
	KindObject
	KindStruct
	KindCharSequence
	KindCallback
	KindArray
)

var kindNames = [...]string{
	KindPrimitive:    "Primitive",
	KindInteger:      "Integer",
	KindChar:         "Char",
	KindPointer:      "Pointer",
	KindObject:       "Object",
	KindStruct:       "Struct",
	KindCharSequence: "CharSequence",
	KindCallback:     "Callback",
	KindArray:        "Array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether k wraps a primitive mapping.
func (k Kind) IsPrimitive() bool {
	return k <= KindChar
}

// IsPointer reports whether k is the pointer kind or one of its subkinds.
func (k Kind) IsPointer() bool {
	return k >= KindPointer && k <= KindArray
}

// IsObject reports whether k is exposed through a named wrapper class.
func (k Kind) IsObject() bool {
	return k == KindObject || k == KindCallback
}
