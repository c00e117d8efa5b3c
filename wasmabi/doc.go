// Package wasmabi lowers native signatures to core WebAssembly value
// types and exposes registered functions as wazero host modules.
//
// Integers up to 32 bits, booleans and chars lower to i32, 64-bit
// integers to i64, and pointers to i32 or i64 depending on the target.
// Struct results are returned through a leading pointer parameter.
package wasmabi
