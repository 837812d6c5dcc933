// Command arcade-stress runs the demo headless as fast as possible and reports frame
// timings, scene system timings and memory usage.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/frame"
	"github.com/plus3/arcade/game"
	"github.com/plus3/arcade/render"
)

func main() {
	cfg := game.DefaultConfig()
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	flag.IntVar(&cfg.Width, "width", 4096, "World width.")
	flag.IntVar(&cfg.Height, "height", 3072, "World height.")
	flag.IntVar(&cfg.Balls, "balls", 500, "Number of balls per round.")
	flag.IntVar(&cfg.HostileRows, "rows", 20, "Rows of hostiles.")
	flag.IntVar(&cfg.HostileColumns, "columns", 60, "Hostiles per row.")
	fps := flag.Int("fps", 60, "Simulated frames per second; each step advances the clock by one frame.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := flag.String("profile", "", "Write a profile to the working directory: cpu, mem or allocs.")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if *fps <= 0 {
		log.Fatalf("invalid configuration: fps must be positive, got %d", *fps)
	}

	if mode, ok := profileModes[*profileMode]; ok {
		defer profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	} else if *profileMode != "" {
		log.Fatalf("unknown profile mode %q", *profileMode)
	}

	log.Println("Starting arcade stress test...")

	report := &Report{
		Duration:       *duration,
		Config:         cfg,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	if err := run(ctx, cfg, *fps, report); err != nil {
		log.Fatalf("stress run: %v", err)
	}
	report.TotalTime = time.Since(start)
	report.StepTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

var profileModes = map[string]func(*profile.Profile){
	"cpu":    profile.CPUProfile,
	"mem":    profile.MemProfile,
	"allocs": profile.MemProfileAllocs,
}

// run plays rounds back to back until ctx expires. Every round is a fresh demo scene driven
// by a manual clock, so the simulation advances exactly one frame per step regardless of
// how long the step took.
func run(ctx context.Context, cfg game.Config, fps int, report *Report) error {
	quiet := log.New(io.Discard, "", 0)
	step := time.Second / time.Duration(fps)

	for ctx.Err() == nil {
		clock := frame.NewManualClock(time.Unix(0, 0))
		scene := game.NewDemoScene(cfg, render.NewTextureCache(nil, quiet), nil)
		driver := frame.NewDriver(scene,
			frame.WithConfig(frame.Config{TargetFPS: fps}),
			frame.WithClock(clock),
			frame.WithLogger(quiet),
		)
		if err := driver.Start(); err != nil {
			return err
		}

		status := ecs.StatusRunning
		for !status.Terminal() && ctx.Err() == nil {
			clock.Advance(step)
			stepStart := time.Now()
			var err error
			status, err = driver.Step()
			if err != nil {
				return err
			}
			report.StepTime.Samples = append(report.StepTime.Samples, time.Since(stepStart))
		}

		report.Record(status, driver.Frames(), scene.GetStats())
	}
	return nil
}
