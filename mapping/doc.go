// Package mapping defines the fixed set of type mappings shared by every
// native type.
//
// A mapping records how one native representation corresponds to three
// slots:
//
//	Slot          Example (DATA_INT)   Used by
//	─────────────────────────────────────────────────────────
//	native call   jlong                JNI function arguments
//	intermediate  long                 generated native methods
//	user-facing   IntBuffer            public binding methods
//
// Mappings are singletons identified by their constant. Equality is
// identity: DataBoolean and DataByte describe the same bytes but drive
// different signature and overload rules, so they are never interchangeable.
//
// # Variants
//
//   - generic: VOID
//   - primitive: BOOLEAN, BOOLEAN4, BYTE, SHORT, INT, LONG, POINTER, FLOAT, DOUBLE
//   - char: ASCII, UTF8, UTF16
//   - pointer: OPAQUE_POINTER, DATA, DATA_POINTER and the DATA_<element> buffers
package mapping
