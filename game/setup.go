package game

import (
	"fmt"
	"path"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/render"
)

const (
	hostileTop = 60
	hostileGap = 20
	paddleLift = 60
)

var (
	paddleColor  = render.Color{80, 200, 255}
	ballColor    = render.Color{250, 250, 250}
	hostileColor = [2]render.Color{{230, 60, 90}, {250, 120, 160}}
)

// DemoSetupSystem populates the world: a grid of hostiles, the bouncing balls and the
// player paddle, which doubles as a barrier.
type DemoSetupSystem struct {
	Config   Config
	Textures *render.TextureCache
}

func (s *DemoSetupSystem) Setup(frame *ecs.SetupFrame) error {
	cfg := s.Config
	if err := cfg.Validate(); err != nil {
		return err
	}

	hearts := [2]render.Texture{s.texture("heart1.png"), s.texture("heart2.png")}
	bomb := s.texture("bomb.png")

	spacing := 0
	if cfg.HostileColumns > 0 {
		spacing = (cfg.Width - cfg.HostileColumns*cfg.HostileSize) / (cfg.HostileColumns + 1)
	}
	for row := range cfg.HostileRows {
		for col := range cfg.HostileColumns {
			variant := (row + col) % 2
			frame.Storage.Spawn(
				Name{Value: fmt.Sprintf("hostile-%d-%d", row, col)},
				Position{
					X: spacing + col*(cfg.HostileSize+spacing),
					Y: hostileTop + row*(cfg.HostileSize+hostileGap),
				},
				HostileCollider{Width: cfg.HostileSize, Height: cfg.HostileSize},
				Sprite{Width: cfg.HostileSize, Height: cfg.HostileSize, Texture: hearts[variant], Color: hostileColor[variant]},
			)
		}
	}

	for i := range cfg.Balls {
		direction := 1
		if i%2 == 1 {
			direction = -1
		}
		frame.Storage.Spawn(
			Name{Value: fmt.Sprintf("ball-%d", i)},
			Position{X: (cfg.Width/2 + i*2*cfg.BallSize) % (cfg.Width - cfg.BallSize), Y: cfg.Height / 2},
			Velocity{X: direction * cfg.BallSpeed, Y: -cfg.BallSpeed},
			Collider{Width: cfg.BallSize, Height: cfg.BallSize, IsSolid: i%2 == 0},
			Sprite{Width: cfg.BallSize, Height: cfg.BallSize, Texture: bomb, Color: ballColor},
		)
	}

	frame.Storage.Spawn(
		Name{Value: "player"},
		Position{X: cfg.Width/2 - cfg.PaddleWidth/2, Y: cfg.Height - paddleLift},
		Velocity{},
		Actor{IsPlayer: true, SpeedX: cfg.PlayerSpeed},
		BarrierCollider{Width: cfg.PaddleWidth, Height: cfg.PaddleHeight},
		Sprite{Width: cfg.PaddleWidth, Height: cfg.PaddleHeight, Color: paddleColor},
	)
	return nil
}

func (s *DemoSetupSystem) texture(file string) render.Texture {
	return s.Textures.Resolve(path.Join(s.Config.AssetDir, file))
}
