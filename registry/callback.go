package registry

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/nativetype"
)

// Param is a named parameter of a callback or function.
type Param struct {
	Type *nativetype.Type
	Name string
	Doc  string
}

// Callback is a function pointer signature.
type Callback struct {
	Return *nativetype.Type
	// Package and Name form the registry key.
	Package string
	Name    string
	// ClassName defaults to Name.
	ClassName  string
	Doc        string
	Convention string
	Params     []Param
	// Async callbacks may be invoked from threads other than the caller's.
	Async bool
}

// QualifiedName returns the registry key.
func (c *Callback) QualifiedName() string {
	return c.Package + "." + c.Name
}

// JavaClassName returns the generated callback class name.
func (c *Callback) JavaClassName() string {
	if c.ClassName != "" {
		return c.ClassName
	}
	return c.Name
}

// CallbackOf returns the registry entry behind a definition returned by
// LookupCallback.
func CallbackOf(def nativetype.CallbackDefinition) (*Callback, bool) {
	c, ok := def.(*Callback)
	return c, ok
}

// Callbacks is an append-only store of callback signatures.
type Callbacks struct {
	defs   map[string]*Callback
	order  []*Callback
	mu     sync.RWMutex
	frozen bool
}

// NewCallbacks creates an empty callback store.
func NewCallbacks() *Callbacks {
	return &Callbacks{defs: make(map[string]*Callback)}
}

// Register adds cb. Duplicate keys and registrations after Freeze fail.
func (r *Callbacks) Register(cb *Callback) error {
	if cb == nil || cb.Name == "" || cb.Package == "" {
		return errors.InvalidInput(errors.PhaseRegistry, "callback needs a package and a name")
	}
	if cb.Return == nil {
		return errors.New(errors.PhaseRegistry, errors.KindInvalidInput).
			Path(cb.Name).
			Detail("callback has no return type").
			Build()
	}
	for i, p := range cb.Params {
		if p.Type == nil || p.Name == "" {
			return errors.New(errors.PhaseRegistry, errors.KindInvalidInput).
				Path(cb.Name).
				Value(i).
				Detail("parameter %d needs a type and a name", i).
				Build()
		}
	}
	key := cb.QualifiedName()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.Frozen(errors.PhaseRegistry, "callback", key)
	}
	if _, exists := r.defs[key]; exists {
		return errors.Duplicate(errors.PhaseRegistry, "callback", key)
	}
	r.defs[key] = cb
	r.order = append(r.order, cb)

	Logger().Debug("registered callback",
		zap.String("key", key),
		zap.Int("params", len(cb.Params)))
	return nil
}

// Get returns the callback registered under key.
func (r *Callbacks) Get(key string) (*Callback, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cb, ok := r.defs[key]
	return cb, ok
}

// LookupCallback implements nativetype.CallbackLookup.
func (r *Callbacks) LookupCallback(key string) (nativetype.CallbackDefinition, bool) {
	cb, ok := r.Get(key)
	if !ok {
		return nil, false
	}
	return cb, true
}

// All returns the callbacks in registration order.
func (r *Callbacks) All() []*Callback {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Callback, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of callbacks.
func (r *Callbacks) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Freeze ends the registration phase.
func (r *Callbacks) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}
