// Package declare provides the build phase for template declarations.
//
// A template declares its types, structs, callbacks and functions on a
// Builder. Errors are sticky: once a declaration fails, later calls are
// no-ops and Build reports the first error. Build freezes the registries,
// so the resulting Graph can be read from many goroutines.
//
//	b := declare.NewBuilder(logger)
//	dword := b.Integer("DWORD", mapping.Int, true)
//	lpdword := b.PNamed(dword, "LPDWORD")
//	graph, err := b.Build()
package declare
