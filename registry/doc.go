// Package registry holds the named definitions that native types refer to:
// struct layouts, callback signatures and bound functions.
//
// Stores are append-only. Templates register definitions during the
// declaration phase, then Freeze makes the store read-only so the type
// graph can be shared by concurrent emitters.
//
//	structs := registry.NewStructs()
//	_ = structs.Register(&registry.Struct{Package: "windows", NativeName: "POINT", Members: ...})
//	point, _ := nativetype.NewStruct(structs, nativetype.Struct{Key: "windows.POINT"})
package registry
