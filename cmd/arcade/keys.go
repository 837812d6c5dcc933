package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/arcade/input"
)

var keyMap = map[ebiten.Key]input.Key{
	ebiten.KeyA:          input.KeyA,
	ebiten.KeyD:          input.KeyD,
	ebiten.KeyW:          input.KeyW,
	ebiten.KeyS:          input.KeyS,
	ebiten.KeyArrowLeft:  input.KeyArrowLeft,
	ebiten.KeyArrowRight: input.KeyArrowRight,
	ebiten.KeyArrowUp:    input.KeyArrowUp,
	ebiten.KeyArrowDown:  input.KeyArrowDown,
	ebiten.KeySpace:      input.KeySpace,
	ebiten.KeyF1:         input.KeyF1,
}

func translateKey(k ebiten.Key) (input.Key, bool) {
	key, ok := keyMap[k]
	return key, ok
}

func isQuitKey(k ebiten.Key) bool {
	return k == ebiten.KeyEscape || k == ebiten.KeyQ
}
