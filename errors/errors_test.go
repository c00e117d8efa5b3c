package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:      PhaseDerive,
				Kind:       KindInvalidPromotion,
				Path:       []string{"WinUser", "GetMessage", "lpMsg"},
				NativeType: "LPMSG",
				Mapping:    "DATA_BYTE",
				Detail:     "too deep",
			},
			contains: []string{"[derive]", "invalid_promotion", "WinUser.GetMessage.lpMsg", "native type LPMSG", "mapping DATA_BYTE", "too deep"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseRegistry,
				Kind:  KindDuplicate,
			},
			contains: []string{"[registry]", "duplicate"},
		},
		{
			name: "mapping only",
			err: &Error{
				Phase:   PhaseSignature,
				Kind:    KindUnsupportedArrayElement,
				Mapping: "DATA_BYTE",
				Detail:  "no array",
			},
			contains: []string{"[signature]", ": mapping DATA_BYTE - no array"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseEmit,
				Kind:   KindInvalidInput,
				Detail: "write failed",
				Cause:  errors.New("disk full"),
			},
			contains: []string{"[emit]", "invalid_input", "write failed", "caused by", "disk full"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseLayout,
		Kind:  KindUnsupported,
		Cause: cause,
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDeclare,
		Kind:  KindUnresolvedReference,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseDeclare, Kind: KindUnresolvedReference}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseDerive, Kind: KindUnresolvedReference}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseDeclare, Kind: KindDuplicate}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseDeclare, Kind: KindUnresolvedReference}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDerive, KindInvalidPromotion).
		Path("HWND", "p").
		NativeType("HWND").
		Mapping("OPAQUE_POINTER").
		Value(4).
		Cause(cause).
		Detail("indirection %d exceeds %d", 4, 3).
		Build()

	if err.Phase != PhaseDerive {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDerive)
	}
	if err.Kind != KindInvalidPromotion {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidPromotion)
	}
	if len(err.Path) != 2 || err.Path[0] != "HWND" {
		t.Errorf("Path = %v, want [HWND p]", err.Path)
	}
	if err.NativeType != "HWND" || err.Mapping != "OPAQUE_POINTER" {
		t.Errorf("NativeType=%v Mapping=%v", err.NativeType, err.Mapping)
	}
	if err.Value != 4 {
		t.Errorf("Value = %v, want 4", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "indirection 4 exceeds 3" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("UnsupportedArrayElement", func(t *testing.T) {
		err := UnsupportedArrayElement("DATA_BOOLEAN")
		if err.Kind != KindUnsupportedArrayElement || err.Phase != PhaseSignature {
			t.Errorf("got %s/%s", err.Phase, err.Kind)
		}
		if err.Mapping != "DATA_BOOLEAN" {
			t.Errorf("Mapping = %q", err.Mapping)
		}
	})

	t.Run("UnresolvedReference", func(t *testing.T) {
		err := UnresolvedReference(PhaseDeclare, "struct", "UNKNOWN_STRUCT")
		if err.Kind != KindUnresolvedReference {
			t.Errorf("Kind = %v", err.Kind)
		}
		if !strings.Contains(err.Detail, "UNKNOWN_STRUCT") {
			t.Errorf("Detail = %q, should name the key", err.Detail)
		}
	})

	t.Run("InvalidPromotion", func(t *testing.T) {
		err := InvalidPromotion("int[]", "DATA_INT", "array")
		if err.Phase != PhaseDerive || err.Kind != KindInvalidPromotion {
			t.Errorf("got %s/%s", err.Phase, err.Kind)
		}
	})

	t.Run("InvalidMapping", func(t *testing.T) {
		err := InvalidMapping(PhaseDeclare, "TCHAR", "INT", "char")
		if !strings.Contains(err.Error(), "expected a char mapping") {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("Duplicate", func(t *testing.T) {
		err := Duplicate(PhaseRegistry, "struct", "a.POINT")
		if err.Kind != KindDuplicate || err.Value != "a.POINT" {
			t.Errorf("got %v %v", err.Kind, err.Value)
		}
	})

	t.Run("Frozen", func(t *testing.T) {
		err := Frozen(PhaseRegistry, "callback", "X")
		if err.Kind != KindFrozen {
			t.Errorf("Kind = %v", err.Kind)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseLayout, "void member")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v", err.Kind)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseConfig, "template", "linux")
		if err.Kind != KindNotFound || !strings.Contains(err.Detail, "linux") {
			t.Errorf("got %v %q", err.Kind, err.Detail)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("boom")
		err := Wrap(PhaseEmit, KindInvalidInput, cause, "render")
		if !errors.Is(err, cause) {
			t.Error("Wrap should keep cause reachable")
		}
	})
}
