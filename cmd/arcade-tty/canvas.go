package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/plus3/arcade/render"
)

var textStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

// canvas scales world pixels onto terminal cells. Sprites become blocks of their colour;
// textures are ignored.
type canvas struct {
	screen        tcell.Screen
	width, height int
	cols, rows    int
}

func newCanvas(screen tcell.Screen, width, height int) *canvas {
	return &canvas{screen: screen, width: width, height: height}
}

func (c *canvas) Clear() {
	c.cols, c.rows = c.screen.Size()
	c.screen.SetStyle(textStyle)
	c.screen.Clear()
}

func (c *canvas) cell(x, y int) (int, int) {
	return x * c.cols / c.width, y * c.rows / c.height
}

func (c *canvas) DrawSprite(x, y, width, height int, _ render.Texture, color render.Color) {
	x0, y0 := c.cell(x, y)
	x1, y1 := c.cell(x+width, y+height)
	// Small sprites still cover at least one cell.
	x1 = max(x1, x0+1)
	y1 = max(y1, y0+1)

	style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(color[0]), int32(color[1]), int32(color[2])))
	for row := max(y0, 0); row < min(y1, c.rows); row++ {
		for col := max(x0, 0); col < min(x1, c.cols); col++ {
			c.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

func (c *canvas) DrawText(x, y int, text string) {
	col, row := c.cell(x, y)
	if row < 0 || row >= c.rows {
		return
	}
	for _, r := range text {
		if col >= c.cols {
			return
		}
		if col >= 0 {
			c.screen.SetContent(col, row, r, nil, textStyle)
		}
		col++
	}
}

func (c *canvas) Present() {
	c.screen.Show()
}
