// Package layout computes the memory layout of registered structs.
//
// Layouts follow natural C alignment on the target:
//   - Primitives: size equals alignment, from the member's mapping
//   - Pointers, handles and pointer-sized integers: the target pointer size
//   - Nested structs: laid out recursively and aligned to their largest member
//   - Fixed-size arrays: element layout repeated Count times
//
// # Usage
//
//	calc, _ := layout.NewCalculator(8)
//	info, err := calc.Calculate(def)
//	// info.Size, info.Align, info.Offsets["x"]
package layout
