package layout

import (
	"sync"

	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/mapping"
	"github.com/wippyai/bindgen/nativetype"
	"github.com/wippyai/bindgen/registry"
)

// Info is the memory layout of a struct or member.
type Info struct {
	// Offsets maps member binding names to byte offsets.
	Offsets map[string]uint32
	Size    uint32
	Align   uint32
}

type Calculator struct {
	cache       map[*registry.Struct]Info
	active      map[*registry.Struct]bool
	pointerSize uint32
	mu          sync.Mutex
}

// NewCalculator creates a calculator for a target with the given pointer
// size in bytes (4 or 8).
func NewCalculator(pointerSize int) (*Calculator, error) {
	if pointerSize != 4 && pointerSize != 8 {
		return nil, errors.New(errors.PhaseLayout, errors.KindInvalidInput).
			Value(pointerSize).
			Detail("pointer size must be 4 or 8, got %d", pointerSize).
			Build()
	}
	return &Calculator{
		cache:       make(map[*registry.Struct]Info),
		active:      make(map[*registry.Struct]bool),
		pointerSize: uint32(pointerSize),
	}, nil
}

// PointerSize returns the target pointer size.
func (c *Calculator) PointerSize() int { return int(c.pointerSize) }

// Calculate returns the layout of def using natural C alignment.
func (c *Calculator) Calculate(def *registry.Struct) (Info, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calculateStruct(def)
}

// Member returns the layout of a single member of the given type.
func (c *Calculator) Member(t *nativetype.Type) (Info, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calculateType(t)
}

func (c *Calculator) calculateStruct(def *registry.Struct) (Info, error) {
	if cached, ok := c.cache[def]; ok {
		return cached, nil
	}
	if c.active[def] {
		return Info{}, errors.New(errors.PhaseLayout, errors.KindUnsupported).
			NativeType(def.NativeName).
			Detail("struct contains itself by value").
			Build()
	}
	c.active[def] = true
	defer delete(c.active, def)

	offsets := make(map[string]uint32, len(def.Members))
	maxAlign := uint32(1)
	offset := uint32(0)

	for _, m := range def.Members {
		info, err := c.calculateType(m.Type)
		if err != nil {
			if e, ok := err.(*errors.Error); ok {
				e.Path = append([]string{def.NativeName, m.BindingName()}, e.Path...)
			}
			return Info{}, err
		}
		if m.Count > 0 {
			info.Size *= uint32(m.Count)
		}

		offset = AlignTo(offset, info.Align)
		offsets[m.BindingName()] = offset

		if info.Align > maxAlign {
			maxAlign = info.Align
		}
		offset += info.Size
	}

	info := Info{
		Size:    AlignTo(offset, maxAlign),
		Align:   maxAlign,
		Offsets: offsets,
	}
	c.cache[def] = info
	return info, nil
}

func (c *Calculator) calculateType(t *nativetype.Type) (Info, error) {
	if t.IsStructValue() {
		def, ok := registry.StructOf(t.Definition())
		if !ok {
			return Info{}, errors.UnresolvedReference(errors.PhaseLayout, "struct", t.Definition().QualifiedName())
		}
		return c.calculateStruct(def)
	}
	if t.IsPointer() {
		return Info{Size: c.pointerSize, Align: c.pointerSize}, nil
	}
	if t.Mapping() == mapping.Void || t.Mapping() == mapping.None {
		return Info{}, errors.New(errors.PhaseLayout, errors.KindUnsupported).
			NativeType(t.Name()).
			Mapping(t.Mapping().String()).
			Detail("member has no storage").
			Build()
	}
	size := uint32(t.Mapping().Size(int(c.pointerSize)))
	return Info{Size: size, Align: size}, nil
}

// AlignTo rounds offset up to a multiple of align, which must be a power
// of two.
func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}
