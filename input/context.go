package input

import (
	"slices"
	"sort"

	"github.com/chewxy/math32"
)

// actionLevel is the analog magnitude at which an axis bound as an
// action counts as held.
const actionLevel = 0.5

// Context routes host events through a layered stack of mappings.
// The stack is ordered by layer, push order within a layer; events
// visit mappings from the top down until one consumes them.
//
// A context is fed and updated from one goroutine, conventionally the
// event loop. Cross-goroutine sharing happens through the bound refs.
type Context struct {
	mappings []mappingEntry
	nextID   MappingID
	text     Characters
}

type mappingEntry struct {
	id      MappingID
	mapping *Mapping
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{}
}

// PushMapping inserts a mapping above existing mappings of its layer
// and returns the id to remove it with.
func (c *Context) PushMapping(m *Mapping) MappingID {
	c.nextID++
	id := c.nextID
	index := sort.Search(len(c.mappings), func(i int) bool {
		return c.mappings[i].mapping.Layer > m.Layer
	})
	c.mappings = slices.Insert(c.mappings, index, mappingEntry{id: id, mapping: m})
	return id
}

// PopMapping removes and returns the top mapping, or nil when the
// stack is empty.
func (c *Context) PopMapping() *Mapping {
	if len(c.mappings) == 0 {
		return nil
	}
	entry := c.mappings[len(c.mappings)-1]
	c.mappings = c.mappings[:len(c.mappings)-1]
	return entry.mapping
}

// TopMapping returns the top mapping without removing it, or nil.
func (c *Context) TopMapping() *Mapping {
	if len(c.mappings) == 0 {
		return nil
	}
	return c.mappings[len(c.mappings)-1].mapping
}

// RemoveMapping removes the mapping with the given id anywhere in the
// stack and returns it, or nil when the id is not present.
func (c *Context) RemoveMapping(id MappingID) *Mapping {
	for i, entry := range c.mappings {
		if entry.id == id {
			c.mappings = slices.Delete(c.mappings, i, i+1)
			return entry.mapping
		}
	}
	return nil
}

// Mapping returns the mapping with the given id, or nil.
func (c *Context) Mapping(id MappingID) *Mapping {
	for _, entry := range c.mappings {
		if entry.id == id {
			return entry.mapping
		}
	}
	return nil
}

// Mappings returns the stack bottom-up.
func (c *Context) Mappings() []*Mapping {
	out := make([]*Mapping, len(c.mappings))
	for i, entry := range c.mappings {
		out[i] = entry.mapping
	}
	return out
}

// Characters returns the typed-text buffer.
func (c *Context) Characters() *Characters {
	return &c.text
}

// route walks the stack top-down until a mapping consumes the event.
// visit reports whether the mapping bound the event. A non-zero pad
// applies the per-mapping pad filter.
func (c *Context) route(pad int, visit func(*Mapping) bool) {
	for i := len(c.mappings) - 1; i >= 0; i-- {
		m := c.mappings[i].mapping
		if pad != 0 && !m.acceptsPad(pad) {
			continue
		}
		hit := visit(m)
		if m.Consume == ConsumeAll || (hit && m.Consume == ConsumeHit) {
			return
		}
	}
}

// applyButton feeds a digital edge into one mapping's bindings.
func applyButton(m *Mapping, control Control, pressed bool) bool {
	hit := false
	if ref, ok := m.Actions[control]; ok {
		ref.Edit(func(s *ActionState) { *s = s.Change(pressed) })
		hit = true
	}
	if ref, ok := m.Axes[control]; ok {
		if pressed {
			ref.Set(1)
		} else {
			ref.Set(0)
		}
		hit = true
	}
	return hit
}

// applyAnalog feeds an analog value into one mapping's bindings.
func applyAnalog(m *Mapping, control Control, value float32) bool {
	hit := false
	if ref, ok := m.Actions[control]; ok {
		down := math32.Abs(value) > actionLevel
		ref.Edit(func(s *ActionState) { *s = s.Change(down) })
		hit = true
	}
	if ref, ok := m.Axes[control]; ok {
		ref.Set(Axis(value))
		hit = true
	}
	return hit
}

// ButtonChanged feeds a key or button edge.
func (c *Context) ButtonChanged(control Control, pressed bool) {
	c.route(0, func(m *Mapping) bool {
		return applyButton(m, control, pressed)
	})
}

// AxisChanged feeds an analog control value.
func (c *Context) AxisChanged(control Control, value float32) {
	c.route(0, func(m *Mapping) bool {
		return applyAnalog(m, control, value)
	})
}

// PadButtonChanged feeds a controller button edge. Pads are 1-based;
// mappings with a pad filter only see their controller.
func (c *Context) PadButtonChanged(pad, code int, pressed bool) {
	c.route(pad, func(m *Mapping) bool {
		return applyButton(m, PadButton(code), pressed)
	})
}

// PadAxisChanged feeds a controller axis value.
func (c *Context) PadAxisChanged(pad, code int, value float32) {
	c.route(pad, func(m *Mapping) bool {
		return applyAnalog(m, PadAxis(code), value)
	})
}

// PointerMoved feeds the pointer position into MouseX and MouseY axis
// bindings.
func (c *Context) PointerMoved(x, y float32) {
	c.route(0, func(m *Mapping) bool {
		hit := false
		if ref, ok := m.Axes[MouseX()]; ok {
			ref.Set(Axis(x))
			hit = true
		}
		if ref, ok := m.Axes[MouseY()]; ok {
			ref.Set(Axis(y))
			hit = true
		}
		return hit
	})
}

// WheelMoved feeds scroll deltas into WheelX and WheelY axis bindings.
// The deltas persist until Update resets them.
func (c *Context) WheelMoved(x, y float32) {
	c.route(0, func(m *Mapping) bool {
		hit := false
		if ref, ok := m.Axes[WheelX()]; ok {
			ref.Set(Axis(x))
			hit = true
		}
		if ref, ok := m.Axes[WheelY()]; ok {
			ref.Set(Axis(y))
			hit = true
		}
		return hit
	})
}

// TextTyped appends typed text to the character buffer.
func (c *Context) TextTyped(s string) {
	c.text.Append(s)
}

// Update ages every bound action by one frame and resets wheel axes.
// Call it once per frame after feeding events.
func (c *Context) Update() {
	for _, entry := range c.mappings {
		for _, ref := range entry.mapping.Actions {
			ref.Edit(func(s *ActionState) { *s = s.Update() })
		}
		for control, ref := range entry.mapping.Axes {
			if control.Class == ClassWheelX || control.Class == ClassWheelY {
				ref.Set(0)
			}
		}
	}
}
