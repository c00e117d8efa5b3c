package witmap

import (
	"errors"
	"strings"
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/bindgen/declare"
	bgerrors "github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/mapping"
	"github.com/wippyai/bindgen/nativetype"
	"github.com/wippyai/bindgen/registry"
)

func newMapper(t *testing.T, ptr int) *Mapper {
	t.Helper()
	m, err := NewMapper(ptr)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestKebab(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"GetCursorPos", "get-cursor-pos"},
		{"tagMSG", "tag-msg"},
		{"HTTPServer", "http-server"},
		{"hWnd", "h-wnd"},
		{"lpdwProcessId", "lpdw-process-id"},
		{"DISPLAY_DEVICE", "display-device"},
		{"POINT", "point"},
		{"x", "x"},
		{"type", "%type"},
		{"Win32Thing", "win32-thing"},
	}
	for _, tt := range tests {
		if got := Kebab(tt.in); got != tt.want {
			t.Errorf("Kebab(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScalars(t *testing.T) {
	m := newMapper(t, 8)
	mk := func(typ *nativetype.Type, err error) *nativetype.Type {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return typ
	}

	tests := []struct {
		typ  *nativetype.Type
		want string
	}{
		{mk(nativetype.NewPrimitive("BOOL", mapping.Boolean4)), "bool"},
		{mk(nativetype.NewPrimitive("jboolean", mapping.Boolean)), "bool"},
		{mk(nativetype.NewInteger("BYTE", mapping.Byte, true)), "u8"},
		{mk(nativetype.NewPrimitive("char", mapping.Byte)), "s8"},
		{mk(nativetype.NewInteger("WORD", mapping.Short, true)), "u16"},
		{mk(nativetype.NewPrimitive("LONG", mapping.Int)), "s32"},
		{mk(nativetype.NewInteger("DWORD", mapping.Int, true)), "u32"},
		{mk(nativetype.NewPrimitive("LONGLONG", mapping.Long)), "s64"},
		{mk(nativetype.NewPrimitive("FLOAT", mapping.Float)), "f32"},
		{mk(nativetype.NewPrimitive("double", mapping.Double)), "f64"},
		{mk(nativetype.NewChar("WCHAR", mapping.CharUTF16)), "u16"},
		{mk(nativetype.NewChar("CHAR", mapping.CharASCII)), "u8"},
		{mk(nativetype.NewPrimitive("LPARAM", mapping.PointerInt)), "u64"},
		{mk(nativetype.Opaque("HWND")), "u64"},
		{mk(nativetype.NewCharSequence(nativetype.CharSequence{Name: "LPCSTR", IncludesPointer: true})), "string"},
	}
	for _, tt := range tests {
		t.Run(tt.typ.Name(), func(t *testing.T) {
			got, err := m.ToWIT(tt.typ)
			if err != nil {
				t.Fatal(err)
			}
			if s := TypeString(got); s != tt.want {
				t.Errorf("got %s, want %s", s, tt.want)
			}
		})
	}

	hwnd := mk(nativetype.Opaque("HWND"))
	got, _ := newMapper(t, 4).ToWIT(hwnd)
	if _, ok := got.(wit.U32); !ok {
		t.Errorf("32-bit address should be u32, got %s", TypeString(got))
	}
}

func TestVoidUnsupported(t *testing.T) {
	v, _ := nativetype.NewPrimitive("void", mapping.Void)
	_, err := newMapper(t, 8).ToWIT(v)
	if !errors.Is(err, &bgerrors.Error{Phase: bgerrors.PhaseEmit, Kind: bgerrors.KindUnsupported}) {
		t.Errorf("expected unsupported, got %v", err)
	}
	if _, err := NewMapper(2); err == nil {
		t.Error("expected error for pointer size 2")
	}
}

func TestArrayAndObject(t *testing.T) {
	m := newMapper(t, 8)
	dword, _ := nativetype.NewInteger("DWORD", mapping.Int, true)
	p, _ := dword.P()
	arr, _ := nativetype.NewArray(p)
	got, err := m.ToWIT(arr)
	if err != nil {
		t.Fatal(err)
	}
	if s := TypeString(got); s != "list<s32>" {
		t.Errorf("array: got %s, want list<s32>", s)
	}

	obj, _ := nativetype.NewObject("HGLRC", "")
	got, err = m.ToWIT(obj)
	if err != nil {
		t.Fatal(err)
	}
	if s := TypeString(got); s != "own<hglrc>" {
		t.Errorf("object: got %s, want own<hglrc>", s)
	}
	again, _ := m.ToWIT(obj)
	if again.(*wit.TypeDef).Kind.(*wit.Own).Type != got.(*wit.TypeDef).Kind.(*wit.Own).Type {
		t.Error("resource should be shared across uses")
	}
}

func graph(t *testing.T) *declare.Graph {
	t.Helper()
	b := declare.NewBuilder(nil)
	long := b.Primitive("LONG", mapping.Int)
	wchar := b.Char("WCHAR", mapping.CharUTF16)
	point := b.Struct(&registry.Struct{
		Package:    "windows",
		NativeName: "POINT",
		Members: []registry.Member{
			{Type: long, NativeName: "x"},
			{Type: long, NativeName: "y"},
		},
	})
	b.Struct(&registry.Struct{
		Package:    "windows",
		NativeName: "tagNAMED",
		ClassName:  "NAMED",
		Members: []registry.Member{
			{Type: point, NativeName: "ptOrigin"},
			{Type: wchar, NativeName: "szName", Count: 32, NullTerminated: true},
			{Type: long, NativeName: "values", Count: 4},
		},
	})
	named, _ := b.Structs().Get("windows.NAMED")
	namedType := b.StructType(nativetype.Struct{Key: named.QualifiedName(), Name: "NAMED"})
	b.Func("User32", "GetCursorPos", b.Primitive("BOOL", mapping.Boolean4),
		registry.Param{Type: b.PNamed(point, "LPPOINT"), Name: "lpPoint"})
	b.Func("User32", "UseNamed", b.Primitive("void", mapping.Void),
		registry.Param{Type: namedType, Name: "value"})
	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestRecords(t *testing.T) {
	g := graph(t)
	m := newMapper(t, 8)
	named, _ := g.Lookup("NAMED")

	got, err := m.ToWIT(named)
	if err != nil {
		t.Fatal(err)
	}
	td, ok := got.(*wit.TypeDef)
	if !ok || TypeString(td) != "named" {
		t.Fatalf("got %s, want record named", TypeString(got))
	}
	rec := td.Kind.(*wit.Record)
	want := []string{"pt-origin: point", "sz-name: string", "values: list<s32>"}
	if len(rec.Fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(rec.Fields), len(want))
	}
	for i, f := range rec.Fields {
		if s := f.Name + ": " + TypeString(f.Type); s != want[i] {
			t.Errorf("field %d: got %s, want %s", i, s, want[i])
		}
	}

	again, _ := m.ToWIT(named)
	if again != got {
		t.Error("record should be cached")
	}
}

func TestInterface(t *testing.T) {
	g := graph(t)
	m := newMapper(t, 8)

	got, err := m.Interface("User32", g.Functions().ByClass("User32"))
	if err != nil {
		t.Fatal(err)
	}
	want := "interface user32 {\n" +
		"    record point {\n" +
		"        x: s32,\n" +
		"        y: s32,\n" +
		"    }\n\n" +
		"    record named {\n" +
		"        pt-origin: point,\n" +
		"        sz-name: string,\n" +
		"        values: list<s32>,\n" +
		"    }\n\n" +
		"    get-cursor-pos: func(lp-point: u64) -> bool;\n" +
		"    use-named: func(value: named);\n" +
		"}\n"
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	if !strings.Contains(got, "use-named") {
		t.Error("missing function")
	}
}
