// Package errors provides structured error types for the binding generator.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending native type and mapping names, the
// declaration path and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDerive, errors.KindInvalidPromotion).
//		Path("WinUser", "GetMessage", "lpMsg").
//		NativeType("LPMSG").
//		Mapping("DATA_BYTE").
//		Detail("indirection exceeds %d", 3).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnsupportedArrayElement("DATA_BYTE")
//	err := errors.UnresolvedReference(errors.PhaseDeclare, "struct", "UNKNOWN_STRUCT")
//
// Every error in this module is a template-authoring mistake: callers are
// expected to stop the generation run at the first one.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
