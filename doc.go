// Package bindgen describes native C APIs so that Java/JNI bindings can be
// generated from them.
//
// Every native type carries a TypeMapping that decides how a value crosses
// the boundary: the JNI type used by the native method, the Java type
// exposed to users and the signature code used in mangled names.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	bindgen/
//	├── mapping/         TypeMapping enum, primitive classes and charsets
//	├── nativetype/      NativeType variants, derivation and predicates
//	├── registry/        Struct, callback and function definitions
//	├── declare/         Declaration builder producing an immutable graph
//	├── layout/          Struct size, alignment and member offsets
//	├── emit/            Java and JNI C source emission
//	├── witmap/          Component Model (WIT) projection
//	├── wasmabi/         Core wasm signatures and wazero host modules
//	├── errors/          Structured error types
//	├── templates/       Declared native APIs (windows)
//	└── cmd/bindgen/     Command line generator
//
// # Quick Start
//
// Declare types and functions, then emit the glue:
//
//	b := declare.NewBuilder(logger)
//	hwnd := b.Opaque("HWND")
//	BOOL := b.Primitive("BOOL", mapping.Int)
//	b.Func("User32", "IsWindow", BOOL, registry.Param{Type: hwnd, Name: "hWnd"})
//	graph, err := b.Build()
//	if err != nil {
//		return err
//	}
//
//	e, _ := emit.NewEmitter("org.lwjgl.system.windows", 8)
//	results, err := e.Batch(ctx, graph.Functions().All(), 0)
//
// # Error Handling
//
// Errors returned by the packages are *errors.Error values carrying the
// phase (declare, derive, signature, registry, layout, emit, config), a
// kind and the path to the failing declaration. Match them with
// errors.Is against an *errors.Error holding the phase and kind.
//
// # Thread Safety
//
// Types are immutable once created. Registries are safe for concurrent
// use and become read-only after the builder freezes them, so a built
// graph can be emitted from many goroutines.
package bindgen
