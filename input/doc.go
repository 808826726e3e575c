// Package input maps host window and controller events onto shared
// action and axis values, decoupled from rendering.
//
// Hosts translate their window library's events into ButtonChanged,
// AxisChanged, PointerMoved, WheelMoved and TextTyped calls on a
// Context. The context routes each event through a layered stack of
// mappings into Ref values that game systems hold and poll. Update
// advances the per-frame action transitions (Pressed to Hold,
// Released to Idle) and resets wheel deltas.
//
// The package never imports a window or gamepad library; control
// codes are whatever the host feeds in.
package input
