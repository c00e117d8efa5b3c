package emit

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/wippyai/bindgen/nativetype"
	"github.com/wippyai/bindgen/registry"
)

const javaTmpl = `// Generated by bindgen. Do not edit.
package {{.Package}};

import java.nio.*;

import org.lwjgl.*;
import org.lwjgl.system.*;

import static org.lwjgl.system.MemoryUtil.*;

public class {{.Class}} {

    protected {{.Class}}() {
        throw new UnsupportedOperationException();
    }
{{range .Results}}
    // --- [ {{.Function.Name}} ] ---

{{indent .Native}}

{{indent .Java}}
{{range .Overloads}}
{{indent .}}
{{end}}{{end}}
}
`

const nativeTmpl = `// Generated by bindgen. Do not edit.
#include "common_tools.h"
#include <windows.h>
{{range .Structs}}
_Static_assert(sizeof({{.Name}}) == {{.Size}}, "{{.Name}} size");{{end}}

EXTERN_C_ENTER
{{range .Results}}{{range .JNI}}
{{.}}
{{end}}{{end}}
EXTERN_C_EXIT
`

var templates = template.Must(template.New("java").Funcs(template.FuncMap{
	"indent": indent,
}).Parse(javaTmpl))

func init() {
	template.Must(templates.New("native").Parse(nativeTmpl))
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "    " + l
		}
	}
	return strings.Join(lines, "\n")
}

type structSize struct {
	Name string
	Size uint32
}

// JavaFile renders the Java class holding the methods in results.
func (e *Emitter) JavaFile(class string, results []Result) (string, error) {
	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, "java", map[string]any{
		"Package": e.packageName,
		"Class":   class,
		"Results": results,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// NativeFile renders the C source holding the JNI functions in results.
// It asserts the size of every struct passed by value or by pointer so a
// layout mismatch on the target fails the native build.
func (e *Emitter) NativeFile(results []Result) (string, error) {
	var structs []structSize
	seen := make(map[*registry.Struct]bool)
	for _, r := range results {
		types := []*nativetype.Type{r.Function.Return}
		for _, p := range r.Function.Params {
			types = append(types, p.Type)
		}
		for _, t := range types {
			def := structOf(t)
			if def == nil || seen[def] {
				continue
			}
			seen[def] = true
			info, err := e.layout.Calculate(def)
			if err != nil {
				return "", err
			}
			structs = append(structs, structSize{Name: def.NativeName, Size: info.Size})
		}
	}
	sort.Slice(structs, func(i, j int) bool { return structs[i].Name < structs[j].Name })

	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, "native", map[string]any{
		"Structs": structs,
		"Results": results,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// structOf returns the struct a type refers to through any number of
// pointers.
func structOf(t *nativetype.Type) *registry.Struct {
	for t != nil {
		if t.Kind() == nativetype.KindStruct {
			def, _ := registry.StructOf(t.Definition())
			return def
		}
		t = t.Elem()
	}
	return nil
}

// StructClass renders the layout constants of def: SIZEOF, ALIGNOF and
// one offset per member.
func (e *Emitter) StructClass(def *registry.Struct) (string, error) {
	info, err := e.layout.Calculate(def)
	if err != nil {
		return "", err
	}
	var b bytes.Buffer
	if def.Doc != "" {
		fmt.Fprintf(&b, "/** %s */\n", def.Doc)
	}
	fmt.Fprintf(&b, "@NativeType(\"struct %s\")\n", def.NativeName)
	fmt.Fprintf(&b, "public class %s extends Struct {\n\n", def.JavaClassName())
	fmt.Fprintf(&b, "    public static final int SIZEOF = %d;\n", info.Size)
	fmt.Fprintf(&b, "    public static final int ALIGNOF = %d;\n", info.Align)
	if len(def.Members) > 0 {
		b.WriteByte('\n')
	}
	for _, m := range def.Members {
		name := m.BindingName()
		fmt.Fprintf(&b, "    public static final int %s = %d;\n", strings.ToUpper(name), info.Offsets[name])
	}
	b.WriteString("\n}")
	return b.String(), nil
}
