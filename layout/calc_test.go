package layout

import (
	"errors"
	"testing"

	bgerrors "github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/mapping"
	"github.com/wippyai/bindgen/nativetype"
	"github.com/wippyai/bindgen/registry"
)

type fixture struct {
	structs *registry.Structs
	types   map[string]*nativetype.Type
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{structs: registry.NewStructs(), types: make(map[string]*nativetype.Type)}
	mk := func(name string, typ *nativetype.Type, err error) {
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		f.types[name] = typ
	}
	typ, err := nativetype.NewPrimitive("BYTE", mapping.Byte)
	mk("BYTE", typ, err)
	typ, err = nativetype.NewPrimitive("WORD", mapping.Short)
	mk("WORD", typ, err)
	typ, err = nativetype.NewPrimitive("LONG", mapping.Int)
	mk("LONG", typ, err)
	typ, err = nativetype.NewPrimitive("ULONGLONG", mapping.Long)
	mk("ULONGLONG", typ, err)
	typ, err = nativetype.NewPrimitive("double", mapping.Double)
	mk("double", typ, err)
	typ, err = nativetype.NewPrimitive("ULONG_PTR", mapping.PointerInt)
	mk("ULONG_PTR", typ, err)
	typ, err = nativetype.NewPrimitive("void", mapping.Void)
	mk("void", typ, err)
	typ, err = nativetype.NewChar("WCHAR", mapping.CharUTF16)
	mk("WCHAR", typ, err)
	typ, err = nativetype.Opaque("HWND")
	mk("HWND", typ, err)
	return f
}

func (f *fixture) register(t *testing.T, def *registry.Struct) *nativetype.Type {
	t.Helper()
	if err := f.structs.Register(def); err != nil {
		t.Fatalf("Register(%s): %v", def.NativeName, err)
	}
	typ, err := nativetype.NewStruct(f.structs, nativetype.Struct{Key: def.QualifiedName()})
	if err != nil {
		t.Fatalf("NewStruct(%s): %v", def.NativeName, err)
	}
	return typ
}

func newCalc(t *testing.T, ptr int) *Calculator {
	t.Helper()
	c, err := NewCalculator(ptr)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestCalculateMembers(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		ptr   int
		size  uint32
		align uint32
	}{
		{"BYTE", 8, 1, 1},
		{"WORD", 8, 2, 2},
		{"LONG", 8, 4, 4},
		{"ULONGLONG", 8, 8, 8},
		{"double", 8, 8, 8},
		{"WCHAR", 8, 2, 2},
		{"ULONG_PTR", 8, 8, 8},
		{"ULONG_PTR", 4, 4, 4},
		{"HWND", 8, 8, 8},
		{"HWND", 4, 4, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info, err := newCalc(t, tc.ptr).Member(f.types[tc.name])
			if err != nil {
				t.Fatal(err)
			}
			if info.Size != tc.size {
				t.Errorf("size: got %d, want %d", info.Size, tc.size)
			}
			if info.Align != tc.align {
				t.Errorf("align: got %d, want %d", info.Align, tc.align)
			}
		})
	}
}

func TestCalculateStruct(t *testing.T) {
	f := newFixture(t)
	long := f.types["LONG"]

	point := &registry.Struct{
		Package:    "windows",
		NativeName: "POINT",
		Members: []registry.Member{
			{Type: long, NativeName: "x"},
			{Type: long, NativeName: "y"},
		},
	}
	pointType := f.register(t, point)
	pointPtr, err := pointType.P()
	if err != nil {
		t.Fatal(err)
	}

	msg := &registry.Struct{
		Package:    "windows",
		NativeName: "MSG",
		Members: []registry.Member{
			{Type: f.types["HWND"], NativeName: "hwnd"},
			{Type: long, NativeName: "message"},
			{Type: f.types["ULONG_PTR"], NativeName: "wParam"},
			{Type: f.types["ULONG_PTR"], NativeName: "lParam"},
			{Type: long, NativeName: "time"},
			{Type: pointType, NativeName: "pt"},
		},
	}
	f.register(t, msg)

	mixed := &registry.Struct{
		Package:    "windows",
		NativeName: "MIXED",
		Members: []registry.Member{
			{Type: f.types["BYTE"], NativeName: "a"},
			{Type: f.types["double"], NativeName: "b"},
			{Type: f.types["WORD"], NativeName: "c"},
			{Type: pointPtr, NativeName: "p"},
			{Type: f.types["WCHAR"], NativeName: "name", Count: 5},
		},
	}
	f.register(t, mixed)

	t.Run("POINT", func(t *testing.T) {
		info, err := newCalc(t, 8).Calculate(point)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size != 8 || info.Align != 4 {
			t.Errorf("got size %d align %d, want 8/4", info.Size, info.Align)
		}
		if info.Offsets["y"] != 4 {
			t.Errorf("y offset: got %d, want 4", info.Offsets["y"])
		}
	})

	t.Run("MSG_64", func(t *testing.T) {
		info, err := newCalc(t, 8).Calculate(msg)
		if err != nil {
			t.Fatal(err)
		}
		want := map[string]uint32{"hwnd": 0, "message": 8, "wParam": 16, "lParam": 24, "time": 32, "pt": 36}
		for name, off := range want {
			if info.Offsets[name] != off {
				t.Errorf("%s offset: got %d, want %d", name, info.Offsets[name], off)
			}
		}
		if info.Size != 48 || info.Align != 8 {
			t.Errorf("got size %d align %d, want 48/8", info.Size, info.Align)
		}
	})

	t.Run("MSG_32", func(t *testing.T) {
		info, err := newCalc(t, 4).Calculate(msg)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size != 28 || info.Align != 4 {
			t.Errorf("got size %d align %d, want 28/4", info.Size, info.Align)
		}
		if info.Offsets["pt"] != 20 {
			t.Errorf("pt offset: got %d, want 20", info.Offsets["pt"])
		}
	})

	t.Run("MIXED", func(t *testing.T) {
		info, err := newCalc(t, 8).Calculate(mixed)
		if err != nil {
			t.Fatal(err)
		}
		want := map[string]uint32{"a": 0, "b": 8, "c": 16, "p": 24, "name": 32}
		for name, off := range want {
			if info.Offsets[name] != off {
				t.Errorf("%s offset: got %d, want %d", name, info.Offsets[name], off)
			}
		}
		if info.Size != 48 {
			t.Errorf("size: got %d, want 48", info.Size)
		}
	})
}

func TestCalculateEmpty(t *testing.T) {
	info, err := newCalc(t, 8).Calculate(&registry.Struct{Package: "p", NativeName: "EMPTY"})
	if err != nil {
		t.Fatal(err)
	}
	if info.Size != 0 || info.Align != 1 {
		t.Errorf("got size %d align %d, want 0/1", info.Size, info.Align)
	}
}

func TestCalculateCache(t *testing.T) {
	f := newFixture(t)
	def := &registry.Struct{
		Package:    "p",
		NativeName: "ONE",
		Members:    []registry.Member{{Type: f.types["LONG"], NativeName: "v"}},
	}
	c := newCalc(t, 8)
	first, err := c.Calculate(def)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.cache[def]; !ok {
		t.Error("layout should be cached")
	}
	second, _ := c.Calculate(def)
	if first.Size != second.Size || first.Align != second.Align {
		t.Error("cached layout differs")
	}
}

func TestCalculateVoidMember(t *testing.T) {
	f := newFixture(t)
	def := &registry.Struct{
		Package:    "p",
		NativeName: "BAD",
		Members:    []registry.Member{{Type: f.types["void"], NativeName: "v"}},
	}
	_, err := newCalc(t, 8).Calculate(def)
	if !errors.Is(err, &bgerrors.Error{Phase: bgerrors.PhaseLayout, Kind: bgerrors.KindUnsupported}) {
		t.Fatalf("expected unsupported layout error, got %v", err)
	}
	var e *bgerrors.Error
	if errors.As(err, &e) && (len(e.Path) != 2 || e.Path[1] != "v") {
		t.Errorf("path: got %v, want [BAD v]", e.Path)
	}
}

func TestNewCalculatorPointerSize(t *testing.T) {
	if _, err := NewCalculator(2); err == nil {
		t.Error("expected error for pointer size 2")
	}
	c := newCalc(t, 4)
	if c.PointerSize() != 4 {
		t.Errorf("PointerSize() = %d", c.PointerSize())
	}
}

func TestAlignTo(t *testing.T) {
	tests := []struct {
		offset, align, want uint32
	}{
		{0, 4, 0},
		{1, 4, 4},
		{4, 4, 4},
		{5, 8, 8},
		{7, 1, 7},
		{3, 0, 3},
	}
	for _, tc := range tests {
		if got := AlignTo(tc.offset, tc.align); got != tc.want {
			t.Errorf("AlignTo(%d, %d) = %d, want %d", tc.offset, tc.align, got, tc.want)
		}
	}
}
