package input

// MappingID identifies a pushed mapping for later removal. The zero
// value is never assigned.
type MappingID uint64

// IsZero reports whether the id identifies nothing.
func (id MappingID) IsZero() bool {
	return id == 0
}

// Mapping binds controls to shared action and axis refs. A context
// routes events through its mapping stack from the highest layer down;
// Consume decides whether lower mappings still see the event.
//
// Mutating a pushed mapping's bindings concurrently with event feeding
// is a data race; the bound ref values themselves are safe to share.
type Mapping struct {
	// Name labels the mapping for debugging.
	Name string
	// Layer orders the stack; higher layers see events first.
	// Mappings on the same layer keep push order.
	Layer int
	// Consume is the propagation policy for events this mapping
	// receives.
	Consume Consume
	// Pad restricts pad events to one controller, 1-based. Zero
	// accepts every pad.
	Pad int

	// Actions and Axes are the bindings.
	Actions map[Control]*ActionRef
	Axes    map[Control]*AxisRef
}

// NewMapping creates an empty mapping.
func NewMapping(name string) *Mapping {
	return &Mapping{
		Name:    name,
		Actions: map[Control]*ActionRef{},
		Axes:    map[Control]*AxisRef{},
	}
}

// BindAction routes a control's edges into the ref.
func (m *Mapping) BindAction(control Control, ref *ActionRef) {
	m.Actions[control] = ref
}

// BindAxis routes a control's analog value into the ref.
func (m *Mapping) BindAxis(control Control, ref *AxisRef) {
	m.Axes[control] = ref
}

// acceptsPad reports whether pad events from the given controller
// apply to this mapping.
func (m *Mapping) acceptsPad(pad int) bool {
	return m.Pad == 0 || m.Pad == pad
}
