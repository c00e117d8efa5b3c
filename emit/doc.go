// Package emit renders binding glue from a built declaration graph.
//
// For every registered function the emitter produces:
//   - the native method declaration, using intermediate types
//   - the public method, converting user-facing arguments
//   - primitive array overloads for array-eligible parameters
//   - the JNI implementation in C, with long symbol names when overloaded
//   - the name of the generic invoker for the signature
//
// Callbacks render as functional interfaces and structs as layout
// constant classes. Whole files are assembled with text/template.
//
// The graph is immutable, so Batch emits functions concurrently.
package emit
