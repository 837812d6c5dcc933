package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simulationScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func cellAt(t *testing.T, screen tcell.SimulationScreen, col, row int) tcell.SimCell {
	t.Helper()
	cells, width, _ := screen.GetContents()
	return cells[row*width+col]
}

func TestCanvasScalesSprites(t *testing.T) {
	screen := simulationScreen(t, 64, 24)
	c := newCanvas(screen, 1024, 768)

	c.Clear()
	c.DrawSprite(512, 384, 32, 64, nil, [3]uint8{200, 10, 10})
	c.Present()

	_, bg, _ := cellAt(t, screen, 32, 12).Style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(200, 10, 10), bg)
	_, bg, _ = cellAt(t, screen, 33, 12).Style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(200, 10, 10), bg)
	_, bg, _ = cellAt(t, screen, 34, 12).Style.Decompose()
	assert.NotEqual(t, tcell.NewRGBColor(200, 10, 10), bg)
}

func TestCanvasSmallSpriteCoversOneCell(t *testing.T) {
	screen := simulationScreen(t, 64, 24)
	c := newCanvas(screen, 1024, 768)

	c.Clear()
	c.DrawSprite(100, 100, 2, 2, nil, [3]uint8{0, 255, 0})
	c.Present()

	_, bg, _ := cellAt(t, screen, 6, 3).Style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(0, 255, 0), bg)
}

func TestCanvasClipsOffscreen(t *testing.T) {
	screen := simulationScreen(t, 64, 24)
	c := newCanvas(screen, 1024, 768)

	c.Clear()
	assert.NotPanics(t, func() {
		c.DrawSprite(-200, -200, 100, 100, nil, [3]uint8{1, 2, 3})
		c.DrawSprite(1000, 760, 500, 500, nil, [3]uint8{1, 2, 3})
		c.DrawText(1000, 10, "overflowing text")
		c.DrawText(10, 900, "below")
	})
	c.Present()
}

func TestCanvasDrawsText(t *testing.T) {
	screen := simulationScreen(t, 64, 24)
	c := newCanvas(screen, 1024, 768)

	c.Clear()
	c.DrawText(160, 64, "FPS: 30")
	c.Present()

	var got []rune
	for col := 10; col < 17; col++ {
		got = append(got, cellAt(t, screen, col, 2).Runes...)
	}
	assert.Equal(t, "FPS: 30", string(got))
}
