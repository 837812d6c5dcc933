// Command arcade runs the demo in a window.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/ecs/debugui"
	debugui_ebiten "github.com/plus3/arcade/ecs/debugui/ebiten"
	"github.com/plus3/arcade/frame"
	"github.com/plus3/arcade/game"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/render"
)

func main() {
	cfg := game.DefaultConfig()
	flag.StringVar(&cfg.AssetDir, "assets", cfg.AssetDir, "Directory holding the sprite images.")
	flag.IntVar(&cfg.Balls, "balls", cfg.Balls, "Number of balls.")
	flag.IntVar(&cfg.HostileRows, "rows", cfg.HostileRows, "Rows of hostiles.")
	flag.IntVar(&cfg.HostileColumns, "columns", cfg.HostileColumns, "Hostiles per row.")
	flag.BoolVar(&cfg.Labels, "labels", cfg.Labels, "Show entity names from the start (toggle with Space).")
	fps := flag.Int("fps", 60, "Target frames per second.")
	debug := flag.Bool("debug", false, "Enable the ImGui debug overlay (toggle with F1).")
	flag.Parse()

	logger := log.New(os.Stderr, "arcade: ", log.LstdFlags|log.Lmsgprefix)

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	const title = "Arcade"
	var backend *debugui_ebiten.ImguiBackend
	if *debug {
		backend = debugui_ebiten.NewImguiBackend(title, cfg.Width, cfg.Height)
	} else {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
		ebiten.SetWindowTitle(title)
	}
	ebiten.SetTPS(*fps)

	textures := render.NewTextureCache(imageLoader{}, logger)
	scene := game.NewDemoScene(cfg, textures, nil)
	if backend != nil {
		debugui.Install(scene, true)
	}

	events := input.NewQueue()
	recorder := render.NewRecorder()
	driver := frame.NewDriver(scene,
		frame.WithConfig(frame.Config{TargetFPS: *fps}),
		frame.WithSource(events),
		frame.WithCanvas(recorder),
		frame.WithLogger(logger),
	)
	if err := driver.Start(); err != nil {
		logger.Fatalf("setup: %v", err)
	}

	g := &Game{
		config:   cfg,
		driver:   driver,
		events:   events,
		recorder: recorder,
		backend:  backend,
		capture:  ecs.NewSingleton[debugui.ImguiInputState](scene.Storage()),
	}
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatalf("run: %v", err)
	}

	status, reason := scene.Status()
	logger.Printf("finished after %d frames: %s %s", driver.Frames(), status, reason)
}
