package input

// Class partitions controls by the kind of device signal they carry.
// Button classes feed actions directly and axes as 0 or 1; analog
// classes feed axes directly and actions through a half-range
// threshold.
type Class uint8

const (
	// ClassKey is a keyboard key, coded by the host key code.
	ClassKey Class = iota
	// ClassMouseButton is a mouse button, coded by the host button
	// number.
	ClassMouseButton
	// ClassMouseX and ClassMouseY carry the pointer position fed by
	// PointerMoved.
	ClassMouseX
	ClassMouseY
	// ClassWheelX and ClassWheelY carry scroll deltas fed by
	// WheelMoved. Update resets them to zero.
	ClassWheelX
	ClassWheelY
	// ClassPadButton and ClassPadAxis are controller controls fed by
	// the pad variants, subject to per-mapping pad filters.
	ClassPadButton
	ClassPadAxis
	// ClassAxis is a numbered device axis outside the classes above.
	ClassAxis
)

func (c Class) String() string {
	switch c {
	case ClassKey:
		return "key"
	case ClassMouseButton:
		return "mouse-button"
	case ClassMouseX:
		return "mouse-x"
	case ClassMouseY:
		return "mouse-y"
	case ClassWheelX:
		return "wheel-x"
	case ClassWheelY:
		return "wheel-y"
	case ClassPadButton:
		return "pad-button"
	case ClassPadAxis:
		return "pad-axis"
	case ClassAxis:
		return "axis"
	}
	return "unknown"
}

// Control identifies one bindable host control. Codes are the host
// library's own values; the context only compares them.
type Control struct {
	Class Class
	Code  int
}

// Key binds a keyboard key by host key code.
func Key(code int) Control {
	return Control{Class: ClassKey, Code: code}
}

// MouseButton binds a mouse button by host button number.
func MouseButton(code int) Control {
	return Control{Class: ClassMouseButton, Code: code}
}

// MouseX binds the pointer x position.
func MouseX() Control {
	return Control{Class: ClassMouseX}
}

// MouseY binds the pointer y position.
func MouseY() Control {
	return Control{Class: ClassMouseY}
}

// WheelX binds the horizontal scroll delta.
func WheelX() Control {
	return Control{Class: ClassWheelX}
}

// WheelY binds the vertical scroll delta.
func WheelY() Control {
	return Control{Class: ClassWheelY}
}

// PadButton binds a controller button by host button code.
func PadButton(code int) Control {
	return Control{Class: ClassPadButton, Code: code}
}

// PadAxis binds a controller axis by host axis code.
func PadAxis(code int) Control {
	return Control{Class: ClassPadAxis, Code: code}
}

// DeviceAxis binds a numbered device axis.
func DeviceAxis(code int) Control {
	return Control{Class: ClassAxis, Code: code}
}
