package emit

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/mapping"
	"github.com/wippyai/bindgen/nativetype"
	"github.com/wippyai/bindgen/registry"
)

// Mangle escapes s for use in a JNI symbol name.
func Mangle(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '.' || r == '/':
			b.WriteByte('_')
		case r == '_':
			b.WriteString("_1")
		case r == ';':
			b.WriteString("_2")
		case r == '[':
			b.WriteString("_3")
		case r < 0x80 && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			fmt.Fprintf(&b, "_0%04x", r)
		}
	}
	return b.String()
}

// JNIName returns the exported symbol of the native method of fn. When fn
// has array overloads both symbols use the long form: "__" followed by the
// mangled argument signature.
func (e *Emitter) JNIName(fn *registry.Function, array bool) (string, error) {
	flags, overloaded, err := arrayParams(fn)
	if err != nil {
		return "", err
	}
	if array && !overloaded {
		return "", errors.New(errors.PhaseEmit, errors.KindInvalidInput).
			Path(fn.Class, fn.Name).
			Detail("function has no array-eligible parameters").
			Build()
	}

	var b strings.Builder
	b.WriteString("Java_")
	b.WriteString(Mangle(e.packageName))
	b.WriteByte('_')
	b.WriteString(Mangle(fn.Class))
	b.WriteByte('_')
	b.WriteString(Mangle(nativeName(fn)))
	if !overloaded {
		return b.String(), nil
	}

	b.WriteString("__")
	for i, p := range fn.Params {
		if array && flags[i] {
			sig, err := p.Type.Mapping().ArraySignature()
			if err != nil {
				return "", withPath(err, fn.Class, fn.Name, p.Name)
			}
			b.WriteString(sig)
			continue
		}
		b.WriteString(Mangle(p.Type.Signature(true)))
	}
	return b.String(), nil
}

type jniParam struct {
	decl    string
	setup   string
	release string
	arg     string
}

func jniParamOf(p registry.Param, array bool) jniParam {
	t := p.Type
	switch {
	case array:
		elem := "j" + t.Mapping().Primitive()
		return jniParam{
			decl: fmt.Sprintf("%sArray %sArray", elem, p.Name),
			setup: fmt.Sprintf("%s *%s = %sArray == NULL ? NULL : (%s *)(*__env)->GetPrimitiveArrayCritical(__env, %sArray, 0);",
				elem, p.Name, p.Name, elem, p.Name),
			release: fmt.Sprintf("if (%s != NULL) { (*__env)->ReleasePrimitiveArrayCritical(__env, %sArray, %s, 0); }",
				p.Name, p.Name, p.Name),
			arg: fmt.Sprintf("(%s)%s", t.Spelling(), p.Name),
		}
	case t.IsStructValue():
		return jniParam{
			decl:  fmt.Sprintf("jlong %sAddress", p.Name),
			setup: fmt.Sprintf("%s *%s = (%s *)(intptr_t)%sAddress;", t.Name(), p.Name, t.Name(), p.Name),
			arg:   "*" + p.Name,
		}
	case t.IsPointer():
		return jniParam{
			decl:  fmt.Sprintf("jlong %sAddress", p.Name),
			setup: fmt.Sprintf("%s %s = (%s)(intptr_t)%sAddress;", t.Spelling(), p.Name, t.Spelling(), p.Name),
			arg:   p.Name,
		}
	default:
		return jniParam{
			decl: fmt.Sprintf("%s %s", t.NativeCallType(), p.Name),
			arg:  fmt.Sprintf("(%s)%s", t.Spelling(), p.Name),
		}
	}
}

// JNIFunction returns the C implementation of the native method of fn, or
// of its array overload when array is set.
func (e *Emitter) JNIFunction(fn *registry.Function, array bool) (string, error) {
	name, err := e.JNIName(fn, array)
	if err != nil {
		return "", err
	}
	ret := fn.Return
	if ret.IsStructValue() {
		return "", errors.New(errors.PhaseEmit, errors.KindUnsupported).
			Path(fn.Class, fn.Name).
			NativeType(ret.Name()).
			Detail("struct return by value").
			Build()
	}

	var flags []bool
	if array {
		if flags, _, err = arrayParams(fn); err != nil {
			return "", err
		}
	}

	decls := []string{"JNIEnv *__env", "jclass clazz"}
	var setup, release, args []string
	for i, p := range fn.Params {
		jp := jniParamOf(p, flags != nil && flags[i])
		decls = append(decls, jp.decl)
		if jp.setup != "" {
			setup = append(setup, jp.setup)
		}
		if jp.release != "" {
			release = append(release, jp.release)
		}
		args = append(args, jp.arg)
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "JNIEXPORT %s JNICALL %s(%s) {\n", ret.NativeCallType(), name, strings.Join(decls, ", "))
	for _, s := range setup {
		fmt.Fprintf(&b, "    %s\n", s)
	}
	if len(release) == 0 {
		b.WriteString("    UNUSED_PARAMS(__env, clazz)\n")
	} else {
		b.WriteString("    UNUSED_PARAM(clazz)\n")
	}

	call := fmt.Sprintf("%s(%s)", fn.Name, strings.Join(args, ", "))
	switch {
	case ret.Mapping() == mapping.Void:
		fmt.Fprintf(&b, "    %s;\n", call)
	case ret.IsPointer():
		call = "(jlong)(intptr_t)" + call
	default:
		call = fmt.Sprintf("(%s)%s", ret.NativeCallType(), call)
	}

	if ret.Mapping() != mapping.Void {
		if len(release) == 0 {
			fmt.Fprintf(&b, "    return %s;\n", call)
		} else {
			fmt.Fprintf(&b, "    %s __result = %s;\n", ret.NativeCallType(), call)
		}
	}
	for _, r := range release {
		fmt.Fprintf(&b, "    %s\n", r)
	}
	if ret.Mapping() != mapping.Void && len(release) > 0 {
		b.WriteString("    return __result;\n")
	}
	b.WriteString("}")
	return b.String(), nil
}

// dyncallCode returns the dyncall signature character of t.
func dyncallCode(t *nativetype.Type) string {
	if t.IsPointer() {
		return "p"
	}
	switch t.Mapping().Intermediate() {
	case mapping.ClassVoid:
		return "v"
	case mapping.ClassBoolean:
		return "B"
	case mapping.ClassByte:
		return "c"
	case mapping.ClassChar:
		return "S"
	case mapping.ClassShort:
		return "s"
	case mapping.ClassInt:
		return "i"
	case mapping.ClassLong:
		return "l"
	case mapping.ClassFloat:
		return "f"
	case mapping.ClassDouble:
		return "d"
	}
	return "p"
}

// CallbackTrampoline returns the managed interface of cb together with
// its native signature.
func (e *Emitter) CallbackTrampoline(cb *registry.Callback) (string, error) {
	if cb.Return.IsStructValue() {
		return "", errors.New(errors.PhaseEmit, errors.KindUnsupported).
			Path(cb.Name).
			NativeType(cb.Return.Name()).
			Detail("callback struct return by value").
			Build()
	}

	spellings := make([]string, len(cb.Params))
	var sig strings.Builder
	sig.WriteByte('(')
	for i, p := range cb.Params {
		if p.Type.IsStructValue() {
			return "", errors.New(errors.PhaseEmit, errors.KindUnsupported).
				Path(cb.Name, p.Name).
				NativeType(p.Type.Name()).
				Detail("callback struct parameter by value").
				Build()
		}
		spellings[i] = p.Type.Spelling()
		sig.WriteString(dyncallCode(p.Type))
	}
	sig.WriteByte(')')
	sig.WriteString(dyncallCode(cb.Return))

	signature := fmt.Sprintf("%q", sig.String())
	if cb.Convention != "" {
		signature = "Callback.__stdcall(" + signature + ")"
	}

	var b bytes.Buffer
	pointer := "*"
	if cb.Convention != "" {
		pointer = cb.Convention + " *"
	}
	fmt.Fprintf(&b, "// %s (%s) (%s)\n", cb.Return.Spelling(), pointer, strings.Join(spellings, ", "))
	if cb.Doc != "" {
		fmt.Fprintf(&b, "/** %s */\n", cb.Doc)
	}
	b.WriteString("@FunctionalInterface\n")
	fmt.Fprintf(&b, "@NativeType(%q)\n", cb.Name)
	fmt.Fprintf(&b, "public interface %sI extends CallbackI {\n\n", cb.JavaClassName())
	fmt.Fprintf(&b, "    String SIGNATURE = %s;\n\n", signature)
	args := make([]string, len(cb.Params))
	for i, p := range cb.Params {
		args[i] = fmt.Sprintf("@NativeType(%q) %s %s", p.Type.Spelling(), p.Type.IntermediateType(), p.Name)
	}
	fmt.Fprintf(&b, "    %s invoke(%s);\n\n}", cb.Return.IntermediateType(), strings.Join(args, ", "))
	return b.String(), nil
}

// ConstantString returns a byte array literal holding s encoded in the
// charset of t, which must be a char or char sequence type.
func (e *Emitter) ConstantString(t *nativetype.Type, s string) (string, error) {
	var charset mapping.Charset
	switch t.Kind() {
	case nativetype.KindCharSequence:
		charset = t.CharMapping().Charset()
	case nativetype.KindChar:
		charset = t.Mapping().Charset()
	default:
		return "", errors.InvalidMapping(errors.PhaseEmit, t.Name(), t.Mapping().String(), "char")
	}
	data, err := charset.Encode(s, t.NullTerminated())
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("new byte[] {")
	for i, c := range data {
		if i > 0 {
			b.WriteString(", ")
		}
		if c > 0x7F {
			fmt.Fprintf(&b, "(byte)0x%02X", c)
		} else {
			fmt.Fprintf(&b, "0x%02X", c)
		}
	}
	b.WriteByte('}')
	return b.String(), nil
}
