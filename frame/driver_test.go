package frame_test

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/frame"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// deltaRecorder stores the delta time of every update.
type deltaRecorder struct {
	deltas []float64
}

func (s *deltaRecorder) Execute(frame *ecs.UpdateFrame) {
	s.deltas = append(s.deltas, frame.DeltaTime)
}

// busySystem simulates work by advancing the manual clock.
type busySystem struct {
	clock *frame.ManualClock
	cost  time.Duration
}

func (s *busySystem) Execute(*ecs.UpdateFrame) {
	s.clock.Advance(s.cost)
}

type eventRecorder struct {
	events []input.Event
}

func (s *eventRecorder) HandleEvent(frame *ecs.EventFrame) {
	if ev, ok := frame.Event.(input.Event); ok {
		s.events = append(s.events, ev)
	}
}

type stopAfter struct {
	frames int
	status ecs.Status
	calls  int
}

func (s *stopAfter) Execute(frame *ecs.UpdateFrame) {
	s.calls++
	if s.calls >= s.frames {
		frame.Terminate(s.status, "enough")
	}
}

type boxRenderer struct{}

func (boxRenderer) Render(frame *ecs.RenderFrame) {
	frame.Canvas.(render.Canvas).DrawSprite(1, 2, 3, 4, nil, render.Color{1, 2, 3})
}

type failingSetup struct{}

func (failingSetup) Setup(*ecs.SetupFrame) error { return errors.New("no assets") }

func newScene() *ecs.Scene {
	return ecs.NewScene("test", ecs.NewStorage(ecs.NewComponentRegistry()))
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestDeltaTimeIsElapsedBetweenFrameStarts(t *testing.T) {
	clock := frame.NewManualClock(epoch)
	scene := newScene()
	deltas := &deltaRecorder{}
	scene.AddUpdateSystem(deltas)

	driver := frame.NewDriver(scene,
		frame.WithClock(clock),
		frame.WithConfig(frame.Config{TargetFPS: 60, Pace: false}),
		frame.WithLogger(quietLogger()),
	)

	_, err := driver.Step()
	require.NoError(t, err)

	clock.Advance(20 * time.Millisecond)
	_, err = driver.Step()
	require.NoError(t, err)

	clock.Advance(500 * time.Millisecond)
	_, err = driver.Step()
	require.NoError(t, err)

	require.Len(t, deltas.deltas, 3)
	assert.Equal(t, 0.0, deltas.deltas[0], "first frame has no predecessor")
	assert.InDelta(t, 0.020, deltas.deltas[1], 1e-9)
	assert.InDelta(t, 0.500, deltas.deltas[2], 1e-9, "delta is not clamped")
}

func TestPacingSleepsRemainderOfFrame(t *testing.T) {
	clock := frame.NewManualClock(epoch)
	scene := newScene()
	scene.AddUpdateSystem(&busySystem{clock: clock, cost: 4 * time.Millisecond})
	deltas := &deltaRecorder{}
	scene.AddUpdateSystem(deltas)

	config := frame.DefaultConfig()
	driver := frame.NewDriver(scene, frame.WithClock(clock), frame.WithConfig(config), frame.WithLogger(quietLogger()))

	for range 3 {
		_, err := driver.Step()
		require.NoError(t, err)
	}

	target := config.FrameDuration()
	assert.Equal(t, 3*(target-4*time.Millisecond), clock.Slept())
	assert.InDelta(t, target.Seconds(), deltas.deltas[1], 1e-9)
	assert.InDelta(t, target.Seconds(), deltas.deltas[2], 1e-9)
}

func TestNoSleepWhenFrameOverruns(t *testing.T) {
	clock := frame.NewManualClock(epoch)
	scene := newScene()
	scene.AddUpdateSystem(&busySystem{clock: clock, cost: 25 * time.Millisecond})
	deltas := &deltaRecorder{}
	scene.AddUpdateSystem(deltas)

	driver := frame.NewDriver(scene, frame.WithClock(clock), frame.WithLogger(quietLogger()))
	for range 2 {
		_, err := driver.Step()
		require.NoError(t, err)
	}

	assert.Zero(t, clock.Slept())
	assert.InDelta(t, 0.025, deltas.deltas[1], 1e-9, "delta exceeds the target under load")
}

func TestFPSIsMeasuredOverOneSecondWindows(t *testing.T) {
	clock := frame.NewManualClock(epoch)
	driver := frame.NewDriver(newScene(), frame.WithClock(clock), frame.WithLogger(quietLogger()))

	var reports []float64
	driver.OnFPS = func(fps float64) { reports = append(reports, fps) }

	for range 60 {
		_, err := driver.Step()
		require.NoError(t, err)
	}
	assert.Zero(t, driver.FPS(), "no full window yet")
	assert.Empty(t, reports)

	_, err := driver.Step()
	require.NoError(t, err)

	require.Len(t, reports, 1)
	assert.InDelta(t, 60.0, driver.FPS(), 0.5)
	assert.Equal(t, int64(61), driver.Frames())

	var stats *frame.Stats
	require.True(t, driver.Scene().Storage().ReadSingleton(&stats))
	assert.Equal(t, driver.FPS(), stats.FPS)
	assert.Equal(t, int64(61), stats.Frame)
}

func TestQuitEventStopsDriver(t *testing.T) {
	clock := frame.NewManualClock(epoch)
	scene := newScene()
	events := &eventRecorder{}
	scene.AddEventSystem(events)
	deltas := &deltaRecorder{}
	scene.AddUpdateSystem(deltas)

	queue := input.NewQueue()
	driver := frame.NewDriver(scene, frame.WithClock(clock), frame.WithSource(queue), frame.WithLogger(quietLogger()))

	queue.Push(input.Pressed(input.KeyA), input.Event{Kind: input.Quit})
	status, err := driver.Step()
	require.NoError(t, err)

	assert.Equal(t, ecs.StatusQuit, status)
	assert.Equal(t, frame.StateStopped, driver.State())
	assert.Equal(t, []input.Event{input.Pressed(input.KeyA), {Kind: input.Quit}}, events.events)
	assert.Len(t, deltas.deltas, 1, "the frame carrying the quit still completes")

	status, err = driver.Step()
	require.NoError(t, err)
	assert.Equal(t, ecs.StatusQuit, status)
	assert.Len(t, deltas.deltas, 1, "a stopped driver does not step")
	assert.Equal(t, int64(1), driver.Frames())
}

func TestStepPhasesAndPresent(t *testing.T) {
	scene := newScene()
	scene.AddRenderSystem(boxRenderer{})
	canvas := render.NewRecorder()

	driver := frame.NewDriver(scene,
		frame.WithClock(frame.NewManualClock(epoch)),
		frame.WithCanvas(canvas),
		frame.WithLogger(quietLogger()),
	)
	assert.Equal(t, frame.StateReady, driver.State())

	_, err := driver.Step()
	require.NoError(t, err)

	assert.Equal(t, frame.StateRunning, driver.State())
	assert.Equal(t, frame.PhaseIdle, driver.Phase())
	assert.Equal(t, 1, canvas.Frames())
	assert.Equal(t, []render.Command{{
		Kind: render.CommandSprite, X: 1, Y: 2, Width: 3, Height: 4, Color: render.Color{1, 2, 3},
	}}, canvas.Frame())
}

func TestRunUntilTerminal(t *testing.T) {
	scene := newScene()
	stop := &stopAfter{frames: 5, status: ecs.StatusLost}
	scene.AddUpdateSystem(stop)

	driver := frame.NewDriver(scene, frame.WithClock(frame.NewManualClock(epoch)), frame.WithLogger(quietLogger()))
	status, err := driver.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ecs.StatusLost, status)
	assert.Equal(t, 5, stop.calls)
	assert.Equal(t, int64(5), driver.Frames())
	assert.Equal(t, frame.StateStopped, driver.State())
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	driver := frame.NewDriver(newScene(), frame.WithClock(frame.NewManualClock(epoch)), frame.WithLogger(quietLogger()))
	status, err := driver.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, ecs.StatusQuit, status)
	assert.Equal(t, int64(0), driver.Frames())
}

func TestRunReportsSetupFailure(t *testing.T) {
	scene := newScene()
	scene.AddSetupSystem(failingSetup{})

	driver := frame.NewDriver(scene, frame.WithClock(frame.NewManualClock(epoch)), frame.WithLogger(quietLogger()))
	_, err := driver.Run(context.Background())

	assert.EqualError(t, err, "no assets")
	assert.Equal(t, frame.StateStopped, driver.State())
}

func TestConfigFrameDuration(t *testing.T) {
	assert.Equal(t, time.Second/60, frame.DefaultConfig().FrameDuration())
	assert.Equal(t, time.Duration(0), frame.Config{}.FrameDuration())
}

// staleDestroyer queues the destruction of an entity that no longer exists every frame.
type staleDestroyer struct {
	stale ecs.EntityId
}

func (s *staleDestroyer) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Destroy(s.stale)
}

func TestDeferredCommandErrorsAreLoggedEveryFrame(t *testing.T) {
	scene := newScene()
	stale := scene.Storage().Create()
	require.NoError(t, scene.Storage().Destroy(stale))
	scene.AddUpdateSystem(&staleDestroyer{stale: stale})

	var out strings.Builder
	driver := frame.NewDriver(scene,
		frame.WithClock(frame.NewManualClock(epoch)),
		frame.WithConfig(frame.Config{TargetFPS: 60}),
		frame.WithLogger(log.New(&out, "", 0)),
	)

	for range 3 {
		_, err := driver.Step()
		require.NoError(t, err)
	}

	assert.Equal(t, 3, strings.Count(out.String(), "deferred commands:"))
	assert.NoError(t, scene.Err(), "the driver consumed the errors")
}
