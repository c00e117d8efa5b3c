package registry

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/nativetype"
)

// Member is a field of a struct definition.
type Member struct {
	Type *nativetype.Type
	// NativeName is the field name in the native header.
	NativeName string
	// Name is the binding name and defaults to NativeName.
	Name string
	// Count is the length of a fixed-size array member, 0 for scalars.
	Count int
	// NullTerminated marks fixed-size char arrays holding a C string.
	NullTerminated bool
}

// BindingName returns Name, or NativeName when Name is empty.
func (m Member) BindingName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.NativeName
}

// Struct is a named struct definition.
type Struct struct {
	Package    string
	NativeName string
	// ClassName defaults to NativeName.
	ClassName string
	Doc       string
	Imports   []string
	Members   []Member
}

// QualifiedName returns the registry key: package and class name.
func (s *Struct) QualifiedName() string {
	return s.Package + "." + s.JavaClassName()
}

// JavaClassName returns the generated wrapper class name.
func (s *Struct) JavaClassName() string {
	if s.ClassName != "" {
		return s.ClassName
	}
	return s.NativeName
}

// structDef adapts *Struct to nativetype.StructDefinition. Struct keeps
// NativeName as a plain field for template literals.
type structDef struct{ *Struct }

func (d structDef) NativeName() string { return d.Struct.NativeName }

// StructOf returns the registry entry behind a definition returned by
// LookupStruct.
func StructOf(def nativetype.StructDefinition) (*Struct, bool) {
	d, ok := def.(structDef)
	if !ok {
		return nil, false
	}
	return d.Struct, true
}

// Structs is an append-only store of struct definitions keyed by
// qualified name.
type Structs struct {
	defs   map[string]*Struct
	order  []*Struct
	mu     sync.RWMutex
	frozen bool
}

// NewStructs creates an empty struct store.
func NewStructs() *Structs {
	return &Structs{defs: make(map[string]*Struct)}
}

// Register adds def. Duplicate keys and registrations after Freeze fail.
func (r *Structs) Register(def *Struct) error {
	if def == nil || def.NativeName == "" || def.Package == "" {
		return errors.InvalidInput(errors.PhaseRegistry, "struct definition needs a package and a native name")
	}
	key := def.QualifiedName()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.Frozen(errors.PhaseRegistry, "struct", key)
	}
	if _, exists := r.defs[key]; exists {
		return errors.Duplicate(errors.PhaseRegistry, "struct", key)
	}
	r.defs[key] = def
	r.order = append(r.order, def)

	Logger().Debug("registered struct",
		zap.String("key", key),
		zap.Int("members", len(def.Members)))
	return nil
}

// Get returns the definition registered under key.
func (r *Structs) Get(key string) (*Struct, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[key]
	return def, ok
}

// LookupStruct implements nativetype.StructLookup.
func (r *Structs) LookupStruct(key string) (nativetype.StructDefinition, bool) {
	def, ok := r.Get(key)
	if !ok {
		return nil, false
	}
	return structDef{def}, true
}

// Resolve returns the definition behind a struct type.
func (r *Structs) Resolve(t *nativetype.Type) (*Struct, error) {
	if t.Kind() != nativetype.KindStruct {
		return nil, errors.New(errors.PhaseRegistry, errors.KindInvalidInput).
			NativeType(t.Name()).
			Detail("not a struct type: %s", t.Kind()).
			Build()
	}
	key := t.Definition().QualifiedName()
	def, ok := r.Get(key)
	if !ok {
		return nil, errors.UnresolvedReference(errors.PhaseRegistry, "struct", key)
	}
	return def, nil
}

// All returns the definitions in registration order.
func (r *Structs) All() []*Struct {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Struct, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of definitions.
func (r *Structs) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Freeze ends the registration phase.
func (r *Structs) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}
