package input

// ActionState is the four-phase life cycle of a digital control.
// Change applies an edge from the device; Update ages the state by one
// frame, so Pressed and Released are observable for exactly one frame.
type ActionState uint8

const (
	Idle ActionState = iota
	Pressed
	Hold
	Released
)

// Change applies a device edge: hold reports whether the control is
// down after the event.
func (s ActionState) Change(hold bool) ActionState {
	switch {
	case hold && (s == Idle || s == Released):
		return Pressed
	case hold && s == Pressed:
		return Hold
	case !hold && (s == Pressed || s == Hold):
		return Released
	case !hold && s == Released:
		return Idle
	}
	return s
}

// Update ages the state at frame end: Pressed settles into Hold,
// Released settles into Idle.
func (s ActionState) Update() ActionState {
	switch s {
	case Pressed:
		return Hold
	case Released:
		return Idle
	}
	return s
}

func (s ActionState) IsIdle() bool     { return s == Idle }
func (s ActionState) IsPressed() bool  { return s == Pressed }
func (s ActionState) IsHold() bool     { return s == Hold }
func (s ActionState) IsReleased() bool { return s == Released }

// IsDown reports whether the control is currently held.
func (s ActionState) IsDown() bool {
	return s == Pressed || s == Hold
}

// IsUp reports whether the control is currently not held.
func (s ActionState) IsUp() bool {
	return s == Idle || s == Released
}

// IsChanging reports whether this frame carries an edge.
func (s ActionState) IsChanging() bool {
	return s == Pressed || s == Released
}

// IsContinuing reports whether the state is settled.
func (s ActionState) IsContinuing() bool {
	return s == Idle || s == Hold
}

// Scalar converts the state to an analog value: truthy while down,
// falsy while up.
func (s ActionState) Scalar(falsy, truthy float32) float32 {
	if s.IsDown() {
		return truthy
	}
	return falsy
}

func (s ActionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pressed:
		return "pressed"
	case Hold:
		return "hold"
	case Released:
		return "released"
	}
	return "unknown"
}

// Axis is an analog control value. Buttons bound as axes read 1 while
// down and 0 while up.
type Axis float32

// Threshold reports whether the value reached the given level.
func (a Axis) Threshold(value float32) bool {
	return float32(a) >= value
}

// Consume controls how far an event propagates down the mapping
// stack.
type Consume uint8

const (
	// ConsumeNone lets the event reach every mapping.
	ConsumeNone Consume = iota
	// ConsumeHit stops the event at the first mapping that binds it.
	ConsumeHit
	// ConsumeAll stops the event at this mapping, bound or not.
	ConsumeAll
)

func (c Consume) String() string {
	switch c {
	case ConsumeNone:
		return "none"
	case ConsumeHit:
		return "hit"
	case ConsumeAll:
		return "all"
	}
	return "unknown"
}
