package main

import (
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/plus3/arcade/render"
)

type texture struct {
	name  string
	image *ebiten.Image
}

func (t *texture) Name() string { return t.name }

// imageLoader decodes sprite files into GPU images.
type imageLoader struct{}

func (imageLoader) Load(path string) (render.Texture, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, err
	}
	return &texture{name: path, image: img}, nil
}
