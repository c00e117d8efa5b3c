package wasmabi

import (
	"context"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/mapping"
	"github.com/wippyai/bindgen/nativetype"
	"github.com/wippyai/bindgen/registry"
)

// Signature is the core wasm signature of a native function.
type Signature struct {
	Params  []api.ValueType
	Results []api.ValueType
	// StructReturn is set when the struct result is written through a
	// leading pointer parameter.
	StructReturn bool
}

func (s Signature) String() string {
	names := func(ts []api.ValueType) string {
		parts := make([]string, len(ts))
		for i, t := range ts {
			parts[i] = api.ValueTypeName(t)
		}
		return strings.Join(parts, ", ")
	}
	return "(" + names(s.Params) + ") -> (" + names(s.Results) + ")"
}

func addressType(pointerSize int) (api.ValueType, error) {
	switch pointerSize {
	case 4:
		return api.ValueTypeI32, nil
	case 8:
		return api.ValueTypeI64, nil
	}
	return 0, errors.New(errors.PhaseEmit, errors.KindInvalidInput).
		Value(pointerSize).
		Detail("pointer size must be 4 or 8, got %d", pointerSize).
		Build()
}

// CoreType returns the core value type carrying m on a target with the
// given pointer size. Void has no value type.
func CoreType(m mapping.Mapping, pointerSize int) (api.ValueType, error) {
	switch {
	case m == mapping.PointerInt || m.IsPointerMapping():
		return addressType(pointerSize)
	case m == mapping.Long:
		return api.ValueTypeI64, nil
	case m == mapping.Float:
		return api.ValueTypeF32, nil
	case m == mapping.Double:
		return api.ValueTypeF64, nil
	case m.IsPrimitive():
		return api.ValueTypeI32, nil
	}
	return 0, errors.New(errors.PhaseEmit, errors.KindUnsupported).
		Mapping(m.String()).
		Detail("no core value type").
		Build()
}

// TypeOf returns the core value type of t. Structs passed by value travel
// as a pointer to a copy.
func TypeOf(t *nativetype.Type, pointerSize int) (api.ValueType, error) {
	if t.IsStructValue() {
		return addressType(pointerSize)
	}
	vt, err := CoreType(t.Mapping(), pointerSize)
	if e, ok := err.(*errors.Error); ok {
		e.NativeType = t.Name()
	}
	return vt, err
}

// FunctionSignature returns the core signature of fn.
func FunctionSignature(fn *registry.Function, pointerSize int) (Signature, error) {
	var sig Signature
	if fn.Return.IsStructValue() {
		addr, err := addressType(pointerSize)
		if err != nil {
			return Signature{}, err
		}
		sig.Params = append(sig.Params, addr)
		sig.StructReturn = true
	}
	for _, p := range fn.Params {
		vt, err := TypeOf(p.Type, pointerSize)
		if err != nil {
			if e, ok := err.(*errors.Error); ok {
				e.Path = []string{fn.Class, fn.Name, p.Name}
			}
			return Signature{}, err
		}
		sig.Params = append(sig.Params, vt)
	}
	if !sig.StructReturn && fn.Return.Mapping() != mapping.Void {
		vt, err := TypeOf(fn.Return, pointerSize)
		if err != nil {
			if e, ok := err.(*errors.Error); ok {
				e.Path = []string{fn.Class, fn.Name}
			}
			return Signature{}, err
		}
		sig.Results = []api.ValueType{vt}
	}
	return sig, nil
}

// Handler implements a native function imported by a guest module.
type Handler func(ctx context.Context, fn *registry.Function, mod api.Module, stack []uint64)

// HostModule instantiates a host module named name exporting every
// function in fns with its core signature. Calls are routed to h.
func HostModule(ctx context.Context, r wazero.Runtime, name string, fns []*registry.Function, pointerSize int, h Handler) (api.Module, error) {
	builder := r.NewHostModuleBuilder(name)
	for _, fn := range fns {
		sig, err := FunctionSignature(fn, pointerSize)
		if err != nil {
			return nil, err
		}
		builder.NewFunctionBuilder().
			WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
				h(ctx, fn, mod, stack)
			}), sig.Params, sig.Results).
			WithName(fn.Name).
			Export(fn.Name)
	}
	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEmit, errors.KindInvalidInput, err, "instantiate host module "+name)
	}
	return mod, nil
}
