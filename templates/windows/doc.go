// Package windows declares the Windows API types used by the system
// bindings: handles, strings, the common structs and a subset of the
// user32, gdi32 and kernel32 functions.
package windows
