package witmap

import (
	"fmt"
	"strings"
	"sync"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/mapping"
	"github.com/wippyai/bindgen/nativetype"
	"github.com/wippyai/bindgen/registry"
)

// Mapper projects native types onto Component Model types.
//
// Values map to the matching scalar, strings to string and structs to
// named records. Objects become owned resources. Other pointers have no
// component-level meaning and are passed as addresses sized to the
// target.
type Mapper struct {
	records   map[*registry.Struct]*wit.TypeDef
	resources map[string]*wit.TypeDef
	order     []*wit.TypeDef
	address   wit.Type
	mu        sync.Mutex
}

// NewMapper creates a mapper for a target with the given pointer size.
func NewMapper(pointerSize int) (*Mapper, error) {
	var address wit.Type
	switch pointerSize {
	case 4:
		address = wit.U32{}
	case 8:
		address = wit.U64{}
	default:
		return nil, errors.New(errors.PhaseEmit, errors.KindInvalidInput).
			Value(pointerSize).
			Detail("pointer size must be 4 or 8, got %d", pointerSize).
			Build()
	}
	return &Mapper{
		records:   make(map[*registry.Struct]*wit.TypeDef),
		resources: make(map[string]*wit.TypeDef),
		address:   address,
	}, nil
}

// ToWIT returns the component type of t. Void has no component type and
// fails; use Function for return values.
func (m *Mapper) ToWIT(t *nativetype.Type) (wit.Type, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.toWIT(t)
}

func (m *Mapper) toWIT(t *nativetype.Type) (wit.Type, error) {
	switch t.Kind() {
	case nativetype.KindCharSequence:
		return wit.String{}, nil
	case nativetype.KindStruct:
		if t.IsStructValue() {
			return m.record(t)
		}
		return m.address, nil
	case nativetype.KindObject:
		return m.own(t.ClassName()), nil
	case nativetype.KindArray:
		elem, err := scalar(t.Mapping().Primitive(), false)
		if err != nil {
			return nil, err
		}
		return &wit.TypeDef{Kind: &wit.List{Type: elem}}, nil
	}
	if t.IsPointer() {
		return m.address, nil
	}

	switch mp := t.Mapping(); mp {
	case mapping.Boolean, mapping.Boolean4:
		return wit.Bool{}, nil
	case mapping.CharASCII, mapping.CharUTF8:
		return wit.U8{}, nil
	case mapping.CharUTF16:
		return wit.U16{}, nil
	default:
		typ, err := scalar(mp.Primitive(), t.Unsigned())
		if err != nil {
			return nil, errors.New(errors.PhaseEmit, errors.KindUnsupported).
				NativeType(t.Name()).
				Mapping(mp.String()).
				Detail("no component type").
				Build()
		}
		return typ, nil
	}
}

func scalar(primitive string, unsigned bool) (wit.Type, error) {
	switch primitive {
	case "byte":
		if unsigned {
			return wit.U8{}, nil
		}
		return wit.S8{}, nil
	case "short":
		if unsigned {
			return wit.U16{}, nil
		}
		return wit.S16{}, nil
	case "int":
		if unsigned {
			return wit.U32{}, nil
		}
		return wit.S32{}, nil
	case "long":
		if unsigned {
			return wit.U64{}, nil
		}
		return wit.S64{}, nil
	case "float":
		return wit.F32{}, nil
	case "double":
		return wit.F64{}, nil
	}
	return nil, errors.Unsupported(errors.PhaseEmit, "no component type for "+primitive)
}

func (m *Mapper) record(t *nativetype.Type) (wit.Type, error) {
	def, ok := registry.StructOf(t.Definition())
	if !ok {
		return nil, errors.UnresolvedReference(errors.PhaseEmit, "struct", t.Definition().QualifiedName())
	}
	if td, ok := m.records[def]; ok {
		return td, nil
	}

	name := Kebab(def.JavaClassName())
	rec := &wit.Record{}
	td := &wit.TypeDef{Name: &name, Kind: rec}
	m.records[def] = td

	for _, member := range def.Members {
		typ, err := m.member(member)
		if err != nil {
			delete(m.records, def)
			if e, ok := err.(*errors.Error); ok {
				e.Path = append([]string{def.NativeName, member.BindingName()}, e.Path...)
			}
			return nil, err
		}
		rec.Fields = append(rec.Fields, wit.Field{Name: Kebab(member.BindingName()), Type: typ})
	}
	m.order = append(m.order, td)
	return td, nil
}

func (m *Mapper) member(member registry.Member) (wit.Type, error) {
	if member.Count > 0 && member.Type.Kind() == nativetype.KindChar && member.NullTerminated {
		return wit.String{}, nil
	}
	typ, err := m.toWIT(member.Type)
	if err != nil {
		return nil, err
	}
	if member.Count > 0 {
		return &wit.TypeDef{Kind: &wit.List{Type: typ}}, nil
	}
	return typ, nil
}

func (m *Mapper) own(class string) wit.Type {
	res, ok := m.resources[class]
	if !ok {
		name := Kebab(class)
		res = &wit.TypeDef{Name: &name, Kind: &wit.Resource{}}
		m.resources[class] = res
		m.order = append(m.order, res)
	}
	return &wit.TypeDef{Kind: &wit.Own{Type: res}}
}

// Function renders fn as a WIT function declaration.
func (m *Mapper) Function(fn *registry.Function) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		typ, err := m.toWIT(p.Type)
		if err != nil {
			return "", withPath(err, fn.Class, fn.Name, p.Name)
		}
		params[i] = Kebab(p.Name) + ": " + TypeString(typ)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: func(%s)", Kebab(fn.Name), strings.Join(params, ", "))
	if fn.Return.Mapping() != mapping.Void {
		typ, err := m.toWIT(fn.Return)
		if err != nil {
			return "", withPath(err, fn.Class, fn.Name)
		}
		b.WriteString(" -> ")
		b.WriteString(TypeString(typ))
	}
	b.WriteByte(';')
	return b.String(), nil
}

// Interface renders a WIT interface holding fns and every record and
// resource they refer to.
func (m *Mapper) Interface(name string, fns []*registry.Function) (string, error) {
	funcs := make([]string, len(fns))
	for i, fn := range fns {
		f, err := m.Function(fn)
		if err != nil {
			return "", err
		}
		funcs[i] = f
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "interface %s {\n", Kebab(name))
	for _, td := range m.order {
		switch kind := td.Kind.(type) {
		case *wit.Resource:
			fmt.Fprintf(&b, "    resource %s;\n\n", *td.Name)
		case *wit.Record:
			fmt.Fprintf(&b, "    record %s {\n", *td.Name)
			for _, f := range kind.Fields {
				fmt.Fprintf(&b, "        %s: %s,\n", f.Name, TypeString(f.Type))
			}
			b.WriteString("    }\n\n")
		}
	}
	for _, f := range funcs {
		fmt.Fprintf(&b, "    %s\n", f)
	}
	b.WriteString("}\n")
	return b.String(), nil
}

// TypeString returns the WIT spelling of t.
func TypeString(t wit.Type) string {
	switch typ := t.(type) {
	case wit.Bool:
		return "bool"
	case wit.S8:
		return "s8"
	case wit.U8:
		return "u8"
	case wit.S16:
		return "s16"
	case wit.U16:
		return "u16"
	case wit.S32:
		return "s32"
	case wit.U32:
		return "u32"
	case wit.S64:
		return "s64"
	case wit.U64:
		return "u64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if typ.Name != nil {
			return *typ.Name
		}
		switch kind := typ.Kind.(type) {
		case *wit.List:
			return "list<" + TypeString(kind.Type) + ">"
		case *wit.Option:
			return "option<" + TypeString(kind.Type) + ">"
		case *wit.Own:
			return "own<" + TypeString(kind.Type) + ">"
		case *wit.Borrow:
			return "borrow<" + TypeString(kind.Type) + ">"
		case *wit.Tuple:
			parts := make([]string, len(kind.Types))
			for i, e := range kind.Types {
				parts[i] = TypeString(e)
			}
			return "tuple<" + strings.Join(parts, ", ") + ">"
		case wit.Type:
			return TypeString(kind)
		}
	}
	return "unknown"
}

func withPath(err error, path ...string) error {
	if e, ok := err.(*errors.Error); ok {
		e.Path = append(path, e.Path...)
	}
	return err
}
