package emit

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/layout"
	"github.com/wippyai/bindgen/mapping"
	"github.com/wippyai/bindgen/nativetype"
	"github.com/wippyai/bindgen/registry"
)

// Emitter renders managed and native glue for registered functions.
// An Emitter is safe for concurrent use once created.
type Emitter struct {
	layout      *layout.Calculator
	packageName string
	pointerSize int
}

// NewEmitter creates an emitter for the given Java package and target
// pointer size.
func NewEmitter(packageName string, pointerSize int) (*Emitter, error) {
	if packageName == "" {
		return nil, errors.InvalidInput(errors.PhaseEmit, "package name is empty")
	}
	calc, err := layout.NewCalculator(pointerSize)
	if err != nil {
		return nil, err
	}
	return &Emitter{
		layout:      calc,
		packageName: packageName,
		pointerSize: pointerSize,
	}, nil
}

func (e *Emitter) PackageName() string { return e.packageName }
func (e *Emitter) PointerSize() int    { return e.pointerSize }

// Layout returns the calculator used for struct constants.
func (e *Emitter) Layout() *layout.Calculator { return e.layout }

// withPath prefixes the path of a structured error.
func withPath(err error, path ...string) error {
	if e, ok := err.(*errors.Error); ok {
		e.Path = append(path, e.Path...)
	}
	return err
}

func nativeName(fn *registry.Function) string { return "n" + fn.Name }

func params(fn *registry.Function, render func(registry.Param) string) string {
	parts := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		parts[i] = render(p)
	}
	return strings.Join(parts, ", ")
}

// NativeMethod returns the declaration of the native method backing fn.
// Arguments use their intermediate types.
func (e *Emitter) NativeMethod(fn *registry.Function) string {
	return fmt.Sprintf("public static native %s %s(%s);",
		fn.Return.IntermediateType(),
		nativeName(fn),
		params(fn, func(p registry.Param) string {
			return p.Type.IntermediateType() + " " + p.Name
		}))
}

// argument returns the expression converting a user-facing argument to
// its intermediate form.
func argument(t *nativetype.Type, name string) string {
	switch {
	case t.Mapping() == mapping.Boolean4:
		return name + " ? 1 : 0"
	case t.Kind() == nativetype.KindStruct, t.Kind() == nativetype.KindObject:
		return name + ".address()"
	case t.Kind() == nativetype.KindCallback:
		return "memAddressSafe(" + name + ")"
	case t.Kind() == nativetype.KindCharSequence:
		return "memAddress(" + name + ")"
	case t.IsPointerData() && !t.Mapping().UserFacing().IsPrimitive():
		return "memAddressSafe(" + name + ")"
	default:
		return name
	}
}

// returnType returns the user-facing return type of fn and the expression
// wrapping the native call.
func returnType(fn *registry.Function) (string, func(call string) string, error) {
	t := fn.Return
	switch {
	case t.Mapping() == mapping.Void:
		return "void", func(call string) string { return call + ";" }, nil
	case t.Mapping() == mapping.Boolean4:
		return "boolean", func(call string) string { return "return " + call + " != 0;" }, nil
	case t.IsStructValue():
		return "", nil, errors.New(errors.PhaseEmit, errors.KindUnsupported).
			NativeType(t.Name()).
			Detail("struct return by value").
			Build()
	case t.Kind() == nativetype.KindObject:
		return t.ClassName(), func(call string) string {
			return "return " + t.ClassName() + ".createSafe(" + call + ");"
		}, nil
	case t.Kind().IsPointer():
		return "long", func(call string) string { return "return " + call + ";" }, nil
	default:
		return t.UserFacingType(), func(call string) string { return "return " + call + ";" }, nil
	}
}

// JavaMethod returns the public method of fn with user-facing types.
func (e *Emitter) JavaMethod(fn *registry.Function) (string, error) {
	ret, wrap, err := returnType(fn)
	if err != nil {
		return "", withPath(err, fn.Class, fn.Name)
	}
	var b bytes.Buffer
	if fn.Doc != "" {
		fmt.Fprintf(&b, "/** %s */\n", fn.Doc)
	}
	fmt.Fprintf(&b, "public static %s %s(%s) {\n", ret, fn.Name, params(fn, func(p registry.Param) string {
		return p.Type.UserFacingType() + " " + p.Name
	}))
	call := nativeName(fn) + "(" + params(fn, func(p registry.Param) string {
		return argument(p.Type, p.Name)
	}) + ")"
	fmt.Fprintf(&b, "    %s\n}", wrap(call))
	return b.String(), nil
}

// arrayParam reports whether a parameter gets a primitive array in the
// array overload of its function.
func arrayParam(t *nativetype.Type) (bool, error) {
	switch t.Kind() {
	case nativetype.KindArray:
		if _, err := t.Mapping().ArraySignature(); err != nil {
			return false, err
		}
		return true, nil
	case nativetype.KindPointer:
		return t.Mapping().IsArrayEligible(), nil
	}
	return false, nil
}

func arrayParams(fn *registry.Function) ([]bool, bool, error) {
	flags := make([]bool, len(fn.Params))
	has := false
	for i, p := range fn.Params {
		ok, err := arrayParam(p.Type)
		if err != nil {
			return nil, false, withPath(err, fn.Class, fn.Name, p.Name)
		}
		flags[i] = ok
		has = has || ok
	}
	return flags, has, nil
}

// ArrayOverloads returns the native and public array overloads of fn, or
// nil when no parameter is array-eligible.
func (e *Emitter) ArrayOverloads(fn *registry.Function) ([]string, error) {
	flags, has, err := arrayParams(fn)
	if err != nil || !has {
		return nil, err
	}
	ret, wrap, err := returnType(fn)
	if err != nil {
		return nil, withPath(err, fn.Class, fn.Name)
	}

	nativeParams := make([]string, len(fn.Params))
	publicParams := make([]string, len(fn.Params))
	args := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		if flags[i] {
			arr := p.Type.Mapping().Primitive() + "[] " + p.Name
			nativeParams[i] = arr
			publicParams[i] = arr
			args[i] = p.Name
			continue
		}
		nativeParams[i] = p.Type.IntermediateType() + " " + p.Name
		publicParams[i] = p.Type.UserFacingType() + " " + p.Name
		args[i] = argument(p.Type, p.Name)
	}

	native := fmt.Sprintf("public static native %s %s(%s);",
		fn.Return.IntermediateType(), nativeName(fn), strings.Join(nativeParams, ", "))
	wrapper := fmt.Sprintf("public static %s %s(%s) {\n    %s\n}",
		ret, fn.Name, strings.Join(publicParams, ", "),
		wrap(nativeName(fn)+"("+strings.Join(args, ", ")+")"))
	return []string{native, wrapper}, nil
}

// InvokeName returns the name of the generic invoker for the signature of
// fn: "invoke" followed by the non-strict codes of the parameters and the
// return type, e.g. invokePPI.
func (e *Emitter) InvokeName(fn *registry.Function) string {
	var b strings.Builder
	b.WriteString("invoke")
	for _, p := range fn.Params {
		b.WriteString(p.Type.Signature(false))
	}
	b.WriteString(fn.Return.Signature(false))
	return b.String()
}
