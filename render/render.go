// Package render holds the contracts between the simulation core and whatever
// turns component state into pixels.
package render

// Color is an 8-bit RGB triple.
type Color = [3]uint8

// Texture is an opaque drawable handle produced by a Loader.
type Texture interface {
	Name() string
}

// Loader resolves a path-like identifier to a drawable resource.
type Loader interface {
	Load(path string) (Texture, error)
}

// Canvas receives draw commands for one frame. Clear starts the frame and Present
// ends it. A nil texture means "fill the rectangle with color".
type Canvas interface {
	Clear()
	DrawSprite(x, y, width, height int, texture Texture, color Color)
	DrawText(x, y int, text string)
	Present()
}

// Discard is a Canvas that drops everything; used for headless runs.
var Discard Canvas = discard{}

type discard struct{}

func (discard) Clear()                                        {}
func (discard) DrawSprite(int, int, int, int, Texture, Color) {}
func (discard) DrawText(int, int, string)                     {}
func (discard) Present()                                      {}
