// Command arcade-tty runs the demo in a terminal, with sound effects.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/arcade/audio"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/frame"
	"github.com/plus3/arcade/game"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/render"
)

func main() {
	cfg := game.DefaultConfig()
	flag.IntVar(&cfg.Balls, "balls", cfg.Balls, "Number of balls.")
	flag.IntVar(&cfg.HostileRows, "rows", cfg.HostileRows, "Rows of hostiles.")
	flag.IntVar(&cfg.HostileColumns, "columns", cfg.HostileColumns, "Hostiles per row.")
	flag.BoolVar(&cfg.Labels, "labels", cfg.Labels, "Show entity names from the start (toggle with Space).")
	fps := flag.Int("fps", 30, "Target frames per second.")
	mute := flag.Bool("mute", false, "Disable sound effects.")
	volume := flag.Float64("volume", 0.5, "Sound volume between 0 and 1.")
	logPath := flag.String("log", "", "Write the log to this file instead of discarding it.")
	hold := flag.Duration("hold", 150*time.Millisecond, "How long a key counts as held after its last repeat.")
	flag.Parse()

	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			log.Fatalf("open log: %v", err)
		}
		defer f.Close()
		out = f
	}
	logger := log.New(out, "arcade-tty: ", log.LstdFlags|log.Lmsgprefix)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	var cues game.Cues
	if !*mute {
		player := audio.NewPlayer(audio.DefaultSampleRate, *volume, logger)
		if err := player.Init(); err != nil {
			logger.Printf("sound disabled: %v", err)
		} else {
			defer player.Close()
		}
		cues = player
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("terminal: %v", err)
	}

	status, reason, err := run(screen, cfg, cues, *fps, *hold, logger)
	screen.Fini()
	if err != nil {
		log.Fatalf("run: %v", err)
	}
	log.Printf("%s: %s", status, reason)
}

func run(screen tcell.Screen, cfg game.Config, cues game.Cues, fps int, hold time.Duration, logger *log.Logger) (ecs.Status, string, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// There is no texture loader in a terminal, so every sprite is a colour fill.
	scene := game.NewDemoScene(cfg, render.NewTextureCache(nil, logger), cues)

	keys := newKeyState(input.NewQueue(), frame.NewSystemClock(), hold)
	go pollScreen(screen, keys)

	driver := frame.NewDriver(scene,
		frame.WithConfig(frame.Config{TargetFPS: fps, Pace: true}),
		frame.WithSource(keys),
		frame.WithCanvas(newCanvas(screen, cfg.Width, cfg.Height)),
		frame.WithLogger(logger),
	)
	status, err := driver.Run(ctx)
	if err != nil {
		return status, "", err
	}

	// Keep the result banner up until the player leaves.
	if status != ecs.StatusQuit {
		select {
		case <-keys.Quit():
		case <-ctx.Done():
		}
	}
	_, reason := scene.Status()
	return status, reason, nil
}

// pollScreen forwards terminal events until the screen is finalized.
func pollScreen(screen tcell.Screen, keys *keyState) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			keys.Handle(ev)
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}
