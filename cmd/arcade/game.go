package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/ecs/debugui"
	debugui_ebiten "github.com/plus3/arcade/ecs/debugui/ebiten"
	"github.com/plus3/arcade/frame"
	"github.com/plus3/arcade/game"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/render"
)

var background = color.RGBA{16, 16, 24, 255}

// Game adapts the frame driver to ebiten. Ebiten owns pacing and the draw callback, so
// Update steps the driver once and Draw replays the last presented frame.
type Game struct {
	config   game.Config
	driver   *frame.Driver
	events   *input.Queue
	recorder *render.Recorder
	backend  *debugui_ebiten.ImguiBackend
	capture  *ecs.Singleton[debugui.ImguiInputState]

	pressed  []ebiten.Key
	released []ebiten.Key
}

func (g *Game) Update() error {
	quit := g.pollInput()
	if quit && g.driver.State() == frame.StateStopped {
		return ebiten.Termination
	}

	var err error
	step := func() { _, err = g.driver.Step() }
	if g.backend != nil {
		g.backend.Frame(step)
	} else {
		step()
	}
	if err != nil {
		return err
	}

	if g.driver.Status() == ecs.StatusQuit {
		return ebiten.Termination
	}
	return nil
}

// pollInput queues this tick's key transitions and reports whether a quit key was pressed.
// Keys ImGui wants for itself are not forwarded, except the overlay toggle.
func (g *Game) pollInput() bool {
	g.pressed = inpututil.AppendJustPressedKeys(g.pressed[:0])
	g.released = inpututil.AppendJustReleasedKeys(g.released[:0])
	captured := g.capture.Get().WantCaptureKeyboard

	quit := false
	for _, k := range g.pressed {
		if isQuitKey(k) && !captured {
			quit = true
			g.events.Push(input.Event{Kind: input.Quit})
			continue
		}
		if key, ok := translateKey(k); ok && (!captured || key == input.KeyF1) {
			g.events.Push(input.Pressed(key))
		}
	}
	for _, k := range g.released {
		if key, ok := translateKey(k); ok && !captured {
			g.events.Push(input.Released(key))
		}
	}
	return quit
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	for _, cmd := range g.recorder.Frame() {
		switch cmd.Kind {
		case render.CommandSprite:
			drawSprite(screen, cmd)
		case render.CommandText:
			ebitenutil.DebugPrintAt(screen, cmd.Text, cmd.X, cmd.Y)
		}
	}

	if g.backend != nil {
		g.backend.Draw(screen)
	}
}

func drawSprite(screen *ebiten.Image, cmd render.Command) {
	if tex, ok := cmd.Texture.(*texture); ok {
		bounds := tex.image.Bounds()
		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Scale(float64(cmd.Width)/float64(bounds.Dx()), float64(cmd.Height)/float64(bounds.Dy()))
		opts.GeoM.Translate(float64(cmd.X), float64(cmd.Y))
		screen.DrawImage(tex.image, opts)
		return
	}

	fill := color.RGBA{cmd.Color[0], cmd.Color[1], cmd.Color[2], 255}
	vector.DrawFilledRect(screen, float32(cmd.X), float32(cmd.Y), float32(cmd.Width), float32(cmd.Height), fill, false)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
	}
	return g.config.Width, g.config.Height
}
