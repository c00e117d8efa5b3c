package registry

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	bgerrors "github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/mapping"
	"github.com/wippyai/bindgen/nativetype"
)

func isKind(err error, phase bgerrors.Phase, kind bgerrors.Kind) bool {
	return errors.Is(err, &bgerrors.Error{Phase: phase, Kind: kind})
}

func longType(t *testing.T) *nativetype.Type {
	t.Helper()
	typ, err := nativetype.NewPrimitive("LONG", mapping.Int)
	if err != nil {
		t.Fatal(err)
	}
	return typ
}

func pointDef(t *testing.T) *Struct {
	long := longType(t)
	return &Struct{
		Package:    "windows",
		NativeName: "POINT",
		Members: []Member{
			{Type: long, NativeName: "x"},
			{Type: long, NativeName: "y"},
		},
	}
}

func TestStructsRegisterAndLookup(t *testing.T) {
	structs := NewStructs()
	def := pointDef(t)
	if err := structs.Register(def); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got, ok := structs.LookupStruct("windows.POINT")
	if !ok {
		t.Fatal("LookupStruct did not find windows.POINT")
	}
	if got.NativeName() != "POINT" || got.JavaClassName() != "POINT" {
		t.Errorf("got native %q class %q", got.NativeName(), got.JavaClassName())
	}
	back, ok := StructOf(got)
	if !ok || back != def {
		t.Error("StructOf should return the registered definition")
	}

	typ, err := nativetype.NewStruct(structs, nativetype.Struct{Key: "windows.POINT"})
	if err != nil {
		t.Fatalf("NewStruct failed: %v", err)
	}
	if typ.Name() != "POINT" {
		t.Errorf("Name() = %q, want POINT", typ.Name())
	}
	resolved, err := structs.Resolve(typ)
	if err != nil || resolved != def {
		t.Errorf("Resolve() = %v, %v", resolved, err)
	}
}

func TestStructClassName(t *testing.T) {
	def := &Struct{Package: "windows", NativeName: "tagMSG", ClassName: "MSG"}
	if def.QualifiedName() != "windows.MSG" {
		t.Errorf("QualifiedName() = %q", def.QualifiedName())
	}
	if (Member{NativeName: "hwnd"}).BindingName() != "hwnd" {
		t.Error("BindingName should default to NativeName")
	}
	if (Member{NativeName: "hwnd", Name: "window"}).BindingName() != "window" {
		t.Error("BindingName should prefer Name")
	}
}

func TestStructsDuplicate(t *testing.T) {
	structs := NewStructs()
	if err := structs.Register(pointDef(t)); err != nil {
		t.Fatal(err)
	}
	err := structs.Register(pointDef(t))
	if !isKind(err, bgerrors.PhaseRegistry, bgerrors.KindDuplicate) {
		t.Errorf("expected duplicate error, got %v", err)
	}
	if structs.Len() != 1 {
		t.Errorf("Len() = %d, want 1", structs.Len())
	}
}

func TestStructsFrozen(t *testing.T) {
	structs := NewStructs()
	structs.Freeze()
	err := structs.Register(pointDef(t))
	if !isKind(err, bgerrors.PhaseRegistry, bgerrors.KindFrozen) {
		t.Errorf("expected frozen error, got %v", err)
	}
}

func TestStructsInvalid(t *testing.T) {
	structs := NewStructs()
	tests := []*Struct{
		nil,
		{NativeName: "POINT"},
		{Package: "windows"},
	}
	for i, def := range tests {
		err := structs.Register(def)
		if !isKind(err, bgerrors.PhaseRegistry, bgerrors.KindInvalidInput) {
			t.Errorf("case %d: expected invalid input, got %v", i, err)
		}
	}
}

func TestResolveUnregistered(t *testing.T) {
	structs := NewStructs()
	if _, err := structs.Resolve(longType(t)); !isKind(err, bgerrors.PhaseRegistry, bgerrors.KindInvalidInput) {
		t.Errorf("expected invalid input for non-struct, got %v", err)
	}

	other := NewStructs()
	if err := other.Register(pointDef(t)); err != nil {
		t.Fatal(err)
	}
	typ, err := nativetype.NewStruct(other, nativetype.Struct{Key: "windows.POINT"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := structs.Resolve(typ); !isKind(err, bgerrors.PhaseRegistry, bgerrors.KindUnresolvedReference) {
		t.Errorf("expected unresolved reference, got %v", err)
	}
}

func TestStructsOrder(t *testing.T) {
	structs := NewStructs()
	names := []string{"RECT", "POINT", "SIZE"}
	for _, n := range names {
		if err := structs.Register(&Struct{Package: "windows", NativeName: n}); err != nil {
			t.Fatal(err)
		}
	}
	all := structs.All()
	for i, n := range names {
		if all[i].NativeName != n {
			t.Errorf("All()[%d] = %s, want %s", i, all[i].NativeName, n)
		}
	}
}

func TestStructsConcurrentRegister(t *testing.T) {
	structs := NewStructs()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = structs.Register(&Struct{Package: "p", NativeName: fmt.Sprintf("S%d", i)})
			structs.LookupStruct("p.S0")
		}(i)
	}
	wg.Wait()
	if structs.Len() != 32 {
		t.Errorf("Len() = %d, want 32", structs.Len())
	}
}

func TestCallbacks(t *testing.T) {
	callbacks := NewCallbacks()
	cb := &Callback{
		Package:    "windows",
		Name:       "GOBJENUMPROC",
		Convention: "CALLBACK",
		Return:     longType(t),
		Params: []Param{
			{Type: longType(t), Name: "lpLogObject"},
		},
	}
	if err := callbacks.Register(cb); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	typ, err := nativetype.NewCallback(callbacks, "windows.GOBJENUMPROC", "")
	if err != nil {
		t.Fatalf("NewCallback failed: %v", err)
	}
	if typ.UserFacingType() != "GOBJENUMPROCI" {
		t.Errorf("UserFacingType() = %q", typ.UserFacingType())
	}
	back, ok := CallbackOf(typ.CallbackSignature())
	if !ok || back != cb {
		t.Error("CallbackOf should return the registered callback")
	}

	if err := callbacks.Register(cb); !isKind(err, bgerrors.PhaseRegistry, bgerrors.KindDuplicate) {
		t.Errorf("expected duplicate, got %v", err)
	}
	callbacks.Freeze()
	late := &Callback{Package: "windows", Name: "WNDPROC", Return: longType(t)}
	if err := callbacks.Register(late); !isKind(err, bgerrors.PhaseRegistry, bgerrors.KindFrozen) {
		t.Errorf("expected frozen, got %v", err)
	}
	if callbacks.Len() != 1 || len(callbacks.All()) != 1 {
		t.Errorf("Len() = %d", callbacks.Len())
	}
}

func TestCallbackValidation(t *testing.T) {
	callbacks := NewCallbacks()
	tests := []struct {
		name string
		cb   *Callback
	}{
		{"nil", nil},
		{"no name", &Callback{Package: "windows", Return: longType(t)}},
		{"no return", &Callback{Package: "windows", Name: "PROC"}},
		{"bad param", &Callback{Package: "windows", Name: "PROC", Return: longType(t), Params: []Param{{Name: "x"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := callbacks.Register(tt.cb)
			if !isKind(err, bgerrors.PhaseRegistry, bgerrors.KindInvalidInput) {
				t.Errorf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestFunctions(t *testing.T) {
	functions := NewFunctions()
	hwnd, err := nativetype.Opaque("HWND")
	if err != nil {
		t.Fatal(err)
	}
	fns := []*Function{
		{Class: "User32", Name: "IsWindow", Return: longType(t), Params: []Param{{Type: hwnd, Name: "hWnd"}}},
		{Class: "User32", Name: "GetDesktopWindow", Return: hwnd},
		{Class: "Gdi32", Name: "GdiFlush", Return: longType(t)},
	}
	for _, fn := range fns {
		if err := functions.Register(fn); err != nil {
			t.Fatalf("Register(%s) failed: %v", fn.Name, err)
		}
	}
	if got := functions.ByClass("User32"); len(got) != 2 || got[0].Name != "IsWindow" {
		t.Errorf("ByClass(User32) = %v", got)
	}
	if fn, ok := functions.Get("Gdi32.GdiFlush"); !ok || fn != fns[2] {
		t.Error("Get(Gdi32.GdiFlush) failed")
	}
	if err := functions.Register(fns[0]); !isKind(err, bgerrors.PhaseRegistry, bgerrors.KindDuplicate) {
		t.Errorf("expected duplicate, got %v", err)
	}
	if err := functions.Register(&Function{Class: "User32", Name: "X"}); !isKind(err, bgerrors.PhaseRegistry, bgerrors.KindInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
	functions.Freeze()
	if err := functions.Register(&Function{Class: "User32", Name: "Y", Return: hwnd}); !isKind(err, bgerrors.PhaseRegistry, bgerrors.KindFrozen) {
		t.Errorf("expected frozen, got %v", err)
	}
	if functions.Len() != 3 || len(functions.All()) != 3 {
		t.Errorf("Len() = %d, want 3", functions.Len())
	}
}
