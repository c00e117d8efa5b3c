package declare

import (
	"go.uber.org/zap"

	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/mapping"
	"github.com/wippyai/bindgen/nativetype"
	"github.com/wippyai/bindgen/registry"
)

// Builder collects the declarations of a template.
//
// Declaration methods mirror the nativetype constructors and derivations
// but do not return errors: the first failure is recorded and every later
// call returns nil. Check Err or the result of Build once the template is
// complete.
type Builder struct {
	err       error
	logger    *zap.Logger
	structs   *registry.Structs
	callbacks *registry.Callbacks
	functions *registry.Functions
	types     map[string]*nativetype.Type
	order     []*nativetype.Type
	built     bool
}

// NewBuilder creates a builder with empty registries. A nil logger
// disables logging.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		logger:    logger.Named("declare"),
		structs:   registry.NewStructs(),
		callbacks: registry.NewCallbacks(),
		functions: registry.NewFunctions(),
		types:     make(map[string]*nativetype.Type),
	}
}

// Err returns the first declaration error, if any.
func (b *Builder) Err() error { return b.err }

// Structs returns the struct store, e.g. for nativetype.NewStruct.
func (b *Builder) Structs() *registry.Structs { return b.structs }

// Callbacks returns the callback store.
func (b *Builder) Callbacks() *registry.Callbacks { return b.callbacks }

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
		b.logger.Debug("declaration failed", zap.Error(err))
	}
}

func (b *Builder) ok() bool {
	if b.err != nil {
		return false
	}
	if b.built {
		b.fail(errors.Frozen(errors.PhaseDeclare, "builder", "graph"))
		return false
	}
	return true
}

func (b *Builder) need(ts ...*nativetype.Type) bool {
	if !b.ok() {
		return false
	}
	for _, t := range ts {
		if t == nil {
			b.fail(errors.InvalidInput(errors.PhaseDeclare, "nil type passed to declaration"))
			return false
		}
	}
	return true
}

// declare records an explicitly named type. Names must be unique.
func (b *Builder) declare(t *nativetype.Type, err error) *nativetype.Type {
	if err != nil {
		b.fail(err)
		return nil
	}
	name := t.Spelling()
	if _, exists := b.types[name]; exists {
		b.fail(errors.Duplicate(errors.PhaseDeclare, "type", name))
		return nil
	}
	b.types[name] = t
	b.order = append(b.order, t)
	b.logger.Debug("declared type",
		zap.String("name", name),
		zap.Stringer("kind", t.Kind()),
		zap.Stringer("mapping", t.Mapping()))
	return t
}

// derive records a derived type. Repeating a derivation returns the type
// recorded first; a different type under the same spelling is a duplicate.
func (b *Builder) derive(t *nativetype.Type, err error) *nativetype.Type {
	if err != nil {
		b.fail(err)
		return nil
	}
	name := t.Spelling()
	if prev, exists := b.types[name]; exists {
		if !sameType(prev, t) {
			b.fail(errors.New(errors.PhaseDeclare, errors.KindDuplicate).
				NativeType(name).
				Mapping(t.Mapping().String()).
				Value(name).
				Detail("derived %s conflicts with %s %q", t.Kind(), prev.Kind(), name).
				Build())
			return nil
		}
		return prev
	}
	b.types[name] = t
	b.order = append(b.order, t)
	return t
}

func sameType(a, b *nativetype.Type) bool {
	return a.Kind() == b.Kind() &&
		a.Mapping() == b.Mapping() &&
		a.IncludesPointer() == b.IncludesPointer() &&
		a.Elem() == b.Elem()
}

// Primitive declares a primitive type.
func (b *Builder) Primitive(name string, m mapping.Mapping) *nativetype.Type {
	if !b.ok() {
		return nil
	}
	return b.declare(nativetype.NewPrimitive(name, m))
}

// Integer declares an integer type.
func (b *Builder) Integer(name string, m mapping.Mapping, unsigned bool) *nativetype.Type {
	if !b.ok() {
		return nil
	}
	return b.declare(nativetype.NewInteger(name, m, unsigned))
}

// Enum declares an int-backed enumeration type.
func (b *Builder) Enum(name string) *nativetype.Type {
	if !b.ok() {
		return nil
	}
	return b.declare(nativetype.Enum(name))
}

// Char declares a character type.
func (b *Builder) Char(name string, m mapping.Mapping) *nativetype.Type {
	if !b.ok() {
		return nil
	}
	return b.declare(nativetype.NewChar(name, m))
}

// Pointer declares a pointer type.
func (b *Builder) Pointer(p nativetype.Pointer) *nativetype.Type {
	if !b.ok() {
		return nil
	}
	return b.declare(nativetype.NewPointer(p))
}

// Opaque declares an opaque handle such as HWND.
func (b *Builder) Opaque(name string) *nativetype.Type {
	if !b.ok() {
		return nil
	}
	return b.declare(nativetype.Opaque(name))
}

// Object declares a handle exposed through a wrapper class.
func (b *Builder) Object(className, name string) *nativetype.Type {
	if !b.ok() {
		return nil
	}
	return b.declare(nativetype.NewObject(className, name))
}

// CharSequence declares a string type.
func (b *Builder) CharSequence(cs nativetype.CharSequence) *nativetype.Type {
	if !b.ok() {
		return nil
	}
	return b.declare(nativetype.NewCharSequence(cs))
}

// Struct registers def and declares its by-value type.
func (b *Builder) Struct(def *registry.Struct) *nativetype.Type {
	if !b.ok() {
		return nil
	}
	if def == nil {
		b.fail(errors.InvalidInput(errors.PhaseDeclare, "nil struct definition"))
		return nil
	}
	for _, m := range def.Members {
		if m.Type == nil {
			b.fail(errors.New(errors.PhaseDeclare, errors.KindInvalidInput).
				Path(def.NativeName, m.BindingName()).
				Detail("member has no type").
				Build())
			return nil
		}
	}
	if err := b.structs.Register(def); err != nil {
		b.fail(err)
		return nil
	}
	return b.declare(nativetype.NewStruct(b.structs, nativetype.Struct{Key: def.QualifiedName()}))
}

// StructType declares an additional type over a registered struct, such
// as a pointer typedef with a custom mapping.
func (b *Builder) StructType(s nativetype.Struct) *nativetype.Type {
	if !b.ok() {
		return nil
	}
	return b.declare(nativetype.NewStruct(b.structs, s))
}

// Callback registers cb and declares its function pointer type.
func (b *Builder) Callback(cb *registry.Callback) *nativetype.Type {
	if !b.ok() {
		return nil
	}
	if err := b.callbacks.Register(cb); err != nil {
		b.fail(err)
		return nil
	}
	return b.declare(nativetype.NewCallback(b.callbacks, cb.QualifiedName(), cb.Name))
}

// Func registers a native function on class.
func (b *Builder) Func(class, name string, ret *nativetype.Type, params ...registry.Param) *registry.Function {
	if !b.need(ret) {
		return nil
	}
	fn := &registry.Function{Class: class, Name: name, Return: ret, Params: params}
	if err := b.functions.Register(fn); err != nil {
		b.fail(err)
		return nil
	}
	return fn
}

// P returns a pointer to t.
func (b *Builder) P(t *nativetype.Type) *nativetype.Type {
	if !b.need(t) {
		return nil
	}
	return b.derive(t.P())
}

// PNamed declares a pointer to t under a typedef name, e.g. LPDWORD.
func (b *Builder) PNamed(t *nativetype.Type, name string) *nativetype.Type {
	if !b.need(t) {
		return nil
	}
	return b.declare(t.PNamed(name))
}

// PConstP returns a pointer to a const pointer to the pointee of t.
func (b *Builder) PConstP(t *nativetype.Type) *nativetype.Type {
	if !b.need(t) {
		return nil
	}
	return b.derive(t.PConstP())
}

// Typedef declares t under another name.
func (b *Builder) Typedef(t *nativetype.Type, name string) *nativetype.Type {
	if !b.need(t) {
		return nil
	}
	return b.declare(nativetype.Typedef(t, name))
}

// Array returns the array overload form of pointer type t. Array types
// are not recorded in the graph; they share the spelling of t.
func (b *Builder) Array(t *nativetype.Type) *nativetype.Type {
	if !b.need(t) {
		return nil
	}
	a, err := nativetype.NewArray(t)
	if err != nil {
		b.fail(err)
		return nil
	}
	return a
}

// Build freezes the registries and returns the immutable graph. It
// returns the first declaration error instead if one occurred.
func (b *Builder) Build() (*Graph, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.built {
		return nil, errors.Frozen(errors.PhaseDeclare, "builder", "graph")
	}
	b.built = true
	b.structs.Freeze()
	b.callbacks.Freeze()
	b.functions.Freeze()

	g := &Graph{
		types:     b.types,
		order:     b.order,
		structs:   b.structs,
		callbacks: b.callbacks,
		functions: b.functions,
	}
	b.logger.Info("graph built",
		zap.Int("types", len(b.order)),
		zap.Int("structs", b.structs.Len()),
		zap.Int("callbacks", b.callbacks.Len()),
		zap.Int("functions", b.functions.Len()))
	return g, nil
}
