// Package gui is a minimal immediate-mode widget layer over the draw
// package. Widgets are emitted every frame between Begin and End, lay
// out in screen space with explicit rectangles, and track hot and
// active state by hashed widget id against pointer and click values
// from the input package.
//
// The package draws through draw.Context alone; it never talks to a
// backend or engine directly, so anything the draw layer can target
// can host a UI.
package gui
