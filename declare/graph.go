package declare

import (
	"github.com/wippyai/bindgen/nativetype"
	"github.com/wippyai/bindgen/registry"
)

// Graph is a built, read-only set of declarations. It is safe for
// concurrent use.
type Graph struct {
	types     map[string]*nativetype.Type
	structs   *registry.Structs
	callbacks *registry.Callbacks
	functions *registry.Functions
	order     []*nativetype.Type
}

// Types returns every recorded type in declaration order.
func (g *Graph) Types() []*nativetype.Type {
	out := make([]*nativetype.Type, len(g.order))
	copy(out, g.order)
	return out
}

// Lookup returns the type with the given native spelling, e.g. "HWND"
// or "DWORD *".
func (g *Graph) Lookup(spelling string) (*nativetype.Type, bool) {
	t, ok := g.types[spelling]
	return t, ok
}

func (g *Graph) Structs() *registry.Structs     { return g.structs }
func (g *Graph) Callbacks() *registry.Callbacks { return g.callbacks }
func (g *Graph) Functions() *registry.Functions { return g.functions }
