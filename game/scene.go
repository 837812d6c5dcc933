package game

import (
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/render"
)

// NewRegistry returns a registry with every demo component registered.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	return registry
}

// NewDemoScene assembles the demo. textures and cues may be nil: sprites then fall back
// to colour fills and no cues are emitted.
//
// The update order is significant. Triggers are reset before any collision system runs,
// colliders bounce off barriers and are integrated before the loss check sees them, the
// player is clamped before hostiles are evaluated, and generic pairwise resolution runs
// last, followed by the movers without a collider and the win check.
func NewDemoScene(config Config, textures *render.TextureCache, cues Cues) *ecs.Scene {
	storage := ecs.NewStorage(NewRegistry())
	storage.AddSingleton(Bounds{Width: config.Width, Height: config.Height})
	storage.AddSingleton(LabelSettings{Visible: config.Labels})
	storage.AddSingleton(Outcome{})

	scene := ecs.NewScene("demo", storage)
	scene.AddSetupSystem(&DemoSetupSystem{Config: config, Textures: textures})

	scene.AddUpdateSystem(&ColliderResetSystem{})
	scene.AddUpdateSystem(&BarrierCollisionSystem{})
	scene.AddUpdateSystem(&LossCheckSystem{})
	scene.AddUpdateSystem(&PlayerWallClampSystem{})
	scene.AddUpdateSystem(&HostileCollisionSystem{})
	scene.AddUpdateSystem(&WallBounceSystem{})
	scene.AddEventSystem(&PlayerInputSystem{})
	scene.AddEventSystem(&LabelToggleSystem{})
	scene.AddUpdateSystem(&PairwiseCollisionSystem{})
	scene.AddUpdateSystem(&MovementSystem{})
	scene.AddUpdateSystem(&WinCheckSystem{})

	scene.AddRenderSystem(&SpriteRenderSystem{})
	scene.AddRenderSystem(&LabelRenderSystem{})
	scene.AddRenderSystem(&HUDRenderSystem{})
	if cues != nil {
		scene.AddRenderSystem(&CueSystem{Sink: cues})
	}
	return scene
}
