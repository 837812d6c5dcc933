package game

import (
	"fmt"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/frame"
	"github.com/plus3/arcade/render"
)

// canvasOf returns the frame's draw target, or render.Discard when the scene was rendered
// into something that is not a render.Canvas.
func canvasOf(rf *ecs.RenderFrame) render.Canvas {
	if canvas, ok := rf.Canvas.(render.Canvas); ok {
		return canvas
	}
	return render.Discard
}

// SpriteRenderSystem draws every sprite with a non-zero extent.
type SpriteRenderSystem struct {
	Sprites ecs.Query[struct {
		*Position
		*Sprite
	}]
}

func (s *SpriteRenderSystem) Render(frame *ecs.RenderFrame) {
	canvas := canvasOf(frame)
	for e := range s.Sprites.Iter() {
		if e.Sprite.Width == 0 || e.Sprite.Height == 0 {
			continue
		}
		canvas.DrawSprite(e.Position.X, e.Position.Y, e.Sprite.Width, e.Sprite.Height, e.Sprite.Texture, e.Sprite.Color)
	}
}

const labelOffset = 12

// LabelRenderSystem draws names above visible sprites when labels are enabled.
type LabelRenderSystem struct {
	Settings ecs.Singleton[LabelSettings]
	Labels   ecs.Query[struct {
		*Position
		*Sprite
		*Name
	}]
}

func (s *LabelRenderSystem) Render(frame *ecs.RenderFrame) {
	if settings := s.Settings.Get(); settings == nil || !settings.Visible {
		return
	}
	canvas := canvasOf(frame)
	for e := range s.Labels.Iter() {
		if e.Sprite.Width == 0 || e.Sprite.Height == 0 {
			continue
		}
		canvas.DrawText(e.Position.X, e.Position.Y-labelOffset, e.Name.Value)
	}
}

// HUDRenderSystem draws the frame rate and, once the simulation ended, its outcome.
type HUDRenderSystem struct {
	Bounds  ecs.Singleton[Bounds]
	Outcome ecs.Singleton[Outcome]
	Stats   ecs.Singleton[frame.Stats]
}

func (s *HUDRenderSystem) Render(rf *ecs.RenderFrame) {
	canvas := canvasOf(rf)
	if stats := s.Stats.Get(); stats != nil && stats.FPS > 0 {
		canvas.DrawText(4, 4, fmt.Sprintf("FPS: %d", int(stats.FPS)))
	}

	outcome := s.Outcome.Get()
	if outcome == nil {
		return
	}

	var message string
	switch outcome.Status {
	case ecs.StatusWon:
		message = "YOU WIN"
	case ecs.StatusLost:
		message = "YOU LOST"
	default:
		return
	}
	bounds := s.Bounds.Get()
	canvas.DrawText(bounds.Width/2-len(message)*3, bounds.Height/2, message)
}
