package draw

import "errors"

var (
	// ErrUnknownFont is returned when a text drawable names a font
	// that is not in the context's font store.
	ErrUnknownFont = errors.New("draw: unknown font")

	// ErrUnknownTexture is returned when a texture reference names a
	// texture that is not in the context registry.
	ErrUnknownTexture = errors.New("draw: unknown texture")

	// ErrUnknownMaterial is returned when a material reference names a
	// material that is not in the context registry.
	ErrUnknownMaterial = errors.New("draw: unknown material")

	// ErrNoFrame is returned by operations that need the dimensions of
	// an open frame when no frame has been begun.
	ErrNoFrame = errors.New("draw: no open frame")
)
