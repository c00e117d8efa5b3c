// Package nativetype defines native type declarations and the operators
// that derive new types from existing ones.
//
// A Type tags one semantic role onto a mapping.Mapping:
//
//	Kind          Adds                              Default mapping
//	──────────────────────────────────────────────────────────────────
//	Primitive     -                                 (required)
//	Integer       unsigned                          (required)
//	Char          -                                 char mapping
//	Pointer       includesPointer, elem             OPAQUE_POINTER
//	Object        wrapper class name                OPAQUE_POINTER
//	Struct        registry definition, level        DATA_BYTE
//	CharSequence  charset, null termination         DATA_BYTE
//	Callback      registry signature                OPAQUE_POINTER
//	Array         -                                 pointer's mapping
//
// Types never change after construction. P, PNamed, PConstP, Typedef and
// NewArray all return new values, which makes a fully declared type graph
// safe to read from many goroutines.
//
// Struct and callback types hold a reference into an external registry;
// constructing one with an unregistered key fails immediately.
package nativetype
