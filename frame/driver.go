// Package frame drives a scene at a fixed cadence: each iteration polls input, runs the
// update pipeline, renders, then paces to the target frame duration.
package frame

import (
	"context"
	"log"
	"time"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/render"
)

// Phase is the step of the current iteration the driver is executing.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseInput
	PhaseSimulate
	PhasePresent
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInput:
		return "input"
	case PhaseSimulate:
		return "simulate"
	case PhasePresent:
		return "present"
	default:
		return "unknown"
	}
}

// State is the lifecycle of a driver.
type State uint8

const (
	StateReady State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Config controls frame cadence.
type Config struct {
	TargetFPS int
	// Pace sleeps the remainder of each frame. Launchers whose host loop already paces
	// (ebiten) turn it off.
	Pace bool
}

// DefaultConfig returns 60 frames per second with pacing enabled.
func DefaultConfig() Config {
	return Config{TargetFPS: 60, Pace: true}
}

// FrameDuration is the target duration of one iteration.
func (c Config) FrameDuration() time.Duration {
	if c.TargetFPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.TargetFPS)
}

// Stats is published as a scene singleton after every frame for diagnostics.
type Stats struct {
	FPS       float64
	DeltaTime float64
	FrameTime time.Duration
	Frame     int64
	Phase     Phase
}

const fpsWindow = time.Second

// Driver owns the loop around a single scene.
type Driver struct {
	config Config
	scene  *ecs.Scene
	source input.Source
	canvas render.Canvas
	clock  Clock
	logger *log.Logger

	// OnFPS is called whenever a new FPS measurement is available.
	OnFPS func(fps float64)

	phase Phase
	state State

	quitRequested bool
	hasFrame      bool
	frameStart    time.Time
	frames        int64

	windowStart  time.Time
	windowFrames int
	fps          float64

	stats *ecs.Singleton[Stats]
}

// Option configures a Driver.
type Option func(*Driver)

func WithConfig(config Config) Option {
	return func(d *Driver) { d.config = config }
}

func WithClock(clock Clock) Option {
	return func(d *Driver) { d.clock = clock }
}

func WithSource(source input.Source) Option {
	return func(d *Driver) { d.source = source }
}

func WithCanvas(canvas render.Canvas) Option {
	return func(d *Driver) { d.canvas = canvas }
}

func WithLogger(logger *log.Logger) Option {
	return func(d *Driver) { d.logger = logger }
}

// NewDriver creates a driver for scene. Without options it runs at 60 FPS on the system
// clock, with no input and a discarding canvas.
func NewDriver(scene *ecs.Scene, opts ...Option) *Driver {
	d := &Driver{
		config: DefaultConfig(),
		scene:  scene,
		source: input.NewQueue(),
		canvas: render.Discard,
		clock:  NewSystemClock(),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.stats = ecs.NewSingleton[Stats](scene.Storage())
	return d
}

func (d *Driver) Scene() *ecs.Scene { return d.scene }
func (d *Driver) Phase() Phase      { return d.phase }
func (d *Driver) State() State      { return d.state }
func (d *Driver) FPS() float64      { return d.fps }
func (d *Driver) Frames() int64     { return d.frames }

// Status returns the scene status.
func (d *Driver) Status() ecs.Status {
	status, _ := d.scene.Status()
	return status
}

// Start runs the scene setup pipeline and moves the driver to StateRunning. Calling it
// again is a no-op.
func (d *Driver) Start() error {
	if d.state != StateReady {
		return nil
	}
	if err := d.scene.Setup(); err != nil {
		d.state = StateStopped
		d.scene.Stop(ecs.StatusQuit, "setup failed")
		return err
	}
	d.state = StateRunning
	d.logger.Printf("scene %q started at %d fps", d.scene.Name(), d.config.TargetFPS)
	return nil
}

// Step runs one INPUT → SIMULATE → PRESENT iteration and returns the scene status.
// A stopped driver does nothing.
func (d *Driver) Step() (ecs.Status, error) {
	if err := d.Start(); err != nil {
		return d.Status(), err
	}
	if d.state == StateStopped {
		return d.Status(), nil
	}

	now := d.clock.Now()
	dt := 0.0
	if d.hasFrame {
		dt = now.Sub(d.frameStart).Seconds()
	} else {
		d.windowStart = now
	}
	d.frameStart = now
	d.hasFrame = true

	d.phase = PhaseInput
	for ev := range d.source.Poll() {
		if ev.Kind == input.Quit {
			d.quitRequested = true
		}
		d.scene.ProcessEvent(ev)
	}

	d.phase = PhaseSimulate
	status := d.scene.Update(dt)
	if d.quitRequested {
		d.scene.Stop(ecs.StatusQuit, "quit requested")
		status = d.Status()
	}

	d.phase = PhasePresent
	d.canvas.Clear()
	d.scene.Render(d.canvas)
	d.canvas.Present()

	if err := d.scene.Err(); err != nil {
		d.logger.Printf("deferred commands: %v", err)
	}

	elapsed := d.clock.Now().Sub(now)
	if target := d.config.FrameDuration(); d.config.Pace && elapsed < target {
		d.clock.Sleep(target - elapsed)
	}

	d.frames++
	d.updateFPS(d.clock.Now())
	d.stats.Set(Stats{
		FPS:       d.fps,
		DeltaTime: dt,
		FrameTime: elapsed,
		Frame:     d.frames,
		Phase:     d.phase,
	})
	d.phase = PhaseIdle

	if status.Terminal() {
		d.state = StateStopped
		_, reason := d.scene.Status()
		d.logger.Printf("scene %q stopped after %d frames: %s (%s)", d.scene.Name(), d.frames, status, reason)
	}
	return status, nil
}

func (d *Driver) updateFPS(now time.Time) {
	d.windowFrames++
	elapsed := now.Sub(d.windowStart)
	if elapsed < fpsWindow {
		return
	}
	d.fps = float64(d.windowFrames) / elapsed.Seconds()
	d.windowFrames = 0
	d.windowStart = now
	if d.OnFPS != nil {
		d.OnFPS(d.fps)
	}
}

// Run steps the scene until it reaches a terminal status or ctx is cancelled.
// Cancellation is treated as a quit request.
func (d *Driver) Run(ctx context.Context) (ecs.Status, error) {
	if err := d.Start(); err != nil {
		return d.Status(), err
	}

	for {
		if ctx.Err() != nil {
			d.scene.Stop(ecs.StatusQuit, "context cancelled")
			d.state = StateStopped
			return d.Status(), nil
		}

		status, err := d.Step()
		if err != nil {
			return status, err
		}
		if status.Terminal() {
			return status, nil
		}
	}
}
