package registry

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/nativetype"
)

// Function is a native function bound on a generated class.
type Function struct {
	Return *nativetype.Type
	// Class is the binding class the function belongs to, e.g. "User32".
	Class  string
	Name   string
	Doc    string
	Params []Param
}

// QualifiedName returns the registry key: class and function name.
func (f *Function) QualifiedName() string {
	return f.Class + "." + f.Name
}

// Functions is an append-only store of native functions.
type Functions struct {
	defs   map[string]*Function
	order  []*Function
	mu     sync.RWMutex
	frozen bool
}

// NewFunctions creates an empty function store.
func NewFunctions() *Functions {
	return &Functions{defs: make(map[string]*Function)}
}

// Register adds fn. Duplicate keys and registrations after Freeze fail.
func (r *Functions) Register(fn *Function) error {
	if fn == nil || fn.Class == "" || fn.Name == "" {
		return errors.InvalidInput(errors.PhaseRegistry, "function needs a class and a name")
	}
	if fn.Return == nil {
		return errors.New(errors.PhaseRegistry, errors.KindInvalidInput).
			Path(fn.Class, fn.Name).
			Detail("function has no return type").
			Build()
	}
	for i, p := range fn.Params {
		if p.Type == nil || p.Name == "" {
			return errors.New(errors.PhaseRegistry, errors.KindInvalidInput).
				Path(fn.Class, fn.Name).
				Value(i).
				Detail("parameter %d needs a type and a name", i).
				Build()
		}
	}
	key := fn.QualifiedName()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.Frozen(errors.PhaseRegistry, "function", key)
	}
	if _, exists := r.defs[key]; exists {
		return errors.Duplicate(errors.PhaseRegistry, "function", key)
	}
	r.defs[key] = fn
	r.order = append(r.order, fn)

	Logger().Debug("registered function",
		zap.String("key", key),
		zap.Int("params", len(fn.Params)))
	return nil
}

// Get returns the function registered under key.
func (r *Functions) Get(key string) (*Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.defs[key]
	return fn, ok
}

// All returns the functions in registration order.
func (r *Functions) All() []*Function {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Function, len(r.order))
	copy(out, r.order)
	return out
}

// ByClass returns the functions of class in registration order.
func (r *Functions) ByClass(class string) []*Function {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Function
	for _, fn := range r.order {
		if fn.Class == class {
			out = append(out, fn)
		}
	}
	return out
}

// Len returns the number of functions.
func (r *Functions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Freeze ends the registration phase.
func (r *Functions) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}
