package ecs

import (
	"errors"
	"reflect"
	"strings"
	"time"
)

// SystemKind identifies which pipeline a system is registered in.
type SystemKind uint8

const (
	KindSetup SystemKind = iota
	KindEvent
	KindUpdate
	KindRender
)

func (k SystemKind) String() string {
	switch k {
	case KindSetup:
		return "setup"
	case KindEvent:
		return "event"
	case KindUpdate:
		return "update"
	case KindRender:
		return "render"
	default:
		return "unknown"
	}
}

// SceneStats provides statistics about scene execution.
type SceneStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Kind           SystemKind
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (st *systemStatsInternal) record(duration time.Duration) {
	st.executionCount++
	st.lastDuration = duration
	st.totalDuration += duration

	if duration < st.minDuration {
		st.minDuration = duration
	}
	if duration > st.maxDuration {
		st.maxDuration = duration
	}
}

// queryExecutor is implemented by every *Query[T].
type queryExecutor interface {
	Execute()
}

type systemMeta struct {
	name    string
	kind    SystemKind
	queries []queryExecutor
	stats   systemStatsInternal
}

type entry[S any] struct {
	system S
	meta   *systemMeta
}

// Pipeline lists system names per capability in execution order.
type Pipeline struct {
	Setup  []string
	Event  []string
	Update []string
	Render []string
}

// Scene owns a Storage and the four ordered system pipelines that operate on it.
type Scene struct {
	name     string
	storage  *Storage
	commands *Commands

	setups  []entry[SetupSystem]
	events  []entry[EventSystem]
	updates []entry[UpdateSystem]
	renders []entry[RenderSystem]
	order   []*systemMeta

	setupDone bool
	frames    int64
	status    Status
	reason    string
	flushErrs []error
}

// NewScene creates a scene operating on storage.
func NewScene(name string, storage *Storage) *Scene {
	return &Scene{
		name:     name,
		storage:  storage,
		commands: newCommands(),
	}
}

func (s *Scene) Name() string        { return s.name }
func (s *Scene) Storage() *Storage   { return s.storage }
func (s *Scene) Commands() *Commands { return s.commands }

// AddSetupSystem appends a system to the setup pipeline.
func (s *Scene) AddSetupSystem(system SetupSystem) {
	s.setups = append(s.setups, entry[SetupSystem]{system, s.register(system, KindSetup)})
}

// AddEventSystem appends a system to the event pipeline.
func (s *Scene) AddEventSystem(system EventSystem) {
	s.events = append(s.events, entry[EventSystem]{system, s.register(system, KindEvent)})
}

// AddUpdateSystem appends a system to the update pipeline.
func (s *Scene) AddUpdateSystem(system UpdateSystem) {
	s.updates = append(s.updates, entry[UpdateSystem]{system, s.register(system, KindUpdate)})
}

// AddRenderSystem appends a system to the render pipeline.
func (s *Scene) AddRenderSystem(system RenderSystem) {
	s.renders = append(s.renders, entry[RenderSystem]{system, s.register(system, KindRender)})
}

func (s *Scene) register(system any, kind SystemKind) *systemMeta {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	meta := &systemMeta{
		name:    systemType.Name(),
		kind:    kind,
		queries: s.initializeFields(system),
		stats:   systemStatsInternal{minDuration: time.Duration(1<<63 - 1)},
	}
	s.order = append(s.order, meta)
	return meta
}

// initializeFields binds Query and Singleton fields of the system to the scene storage and
// returns the queries so they can be executed before each run.
func (s *Scene) initializeFields(system any) []queryExecutor {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() != reflect.Ptr {
		return nil
	}
	systemValue = systemValue.Elem()

	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	systemType := systemValue.Type()

	var queries []queryExecutor
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		fieldType := systemType.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()
		if !strings.HasPrefix(typeName, "Query[") && !strings.HasPrefix(typeName, "Singleton[") {
			continue
		}

		initMethod := field.Addr().MethodByName("Init")
		if !initMethod.IsValid() {
			panic("Init method not found on field: " + fieldType.Name)
		}
		initMethod.Call([]reflect.Value{
			reflect.ValueOf(s.storage),
		})

		if executor, ok := field.Addr().Interface().(queryExecutor); ok {
			queries = append(queries, executor)
		}
	}
	return queries
}

func (s *Scene) run(meta *systemMeta, fn func()) {
	for _, q := range meta.queries {
		q.Execute()
	}

	start := time.Now()
	fn()
	meta.stats.record(time.Since(start))
}

func (s *Scene) flush() {
	if err := s.commands.Flush(s.storage); err != nil {
		s.flushErrs = append(s.flushErrs, err)
	}
}

// Setup runs the setup pipeline once. Later calls are no-ops. The first error stops the
// pipeline and is returned.
func (s *Scene) Setup() error {
	if s.setupDone {
		return nil
	}
	s.setupDone = true

	frame := &SetupFrame{Commands: s.commands, Storage: s.storage}
	for _, e := range s.setups {
		var err error
		s.run(e.meta, func() { err = e.system.Setup(frame) })
		if err != nil {
			s.flush()
			return err
		}
	}
	s.flush()
	return nil
}

// ProcessEvent hands one input event to every event system in registration order.
// Events are ignored once the scene reached a terminal status.
func (s *Scene) ProcessEvent(ev any) {
	if s.status.Terminal() {
		return
	}

	frame := &EventFrame{Event: ev, Commands: s.commands, Storage: s.storage}
	for _, e := range s.events {
		s.run(e.meta, func() { e.system.HandleEvent(frame) })
	}
	s.flush()
}

// Update runs the update pipeline once with the given delta time, flushes queued commands
// and returns the scene status. The first terminal status reported is latched: subsequent
// calls run nothing and return it unchanged.
func (s *Scene) Update(dt float64) Status {
	if s.status.Terminal() {
		return s.status
	}

	frame := &UpdateFrame{DeltaTime: dt, Commands: s.commands, Storage: s.storage}
	for _, e := range s.updates {
		s.run(e.meta, func() { e.system.Execute(frame) })
	}
	s.flush()
	s.frames++

	if frame.status.Terminal() {
		s.status = frame.status
		s.reason = frame.reason
	}
	return s.status
}

// Render runs the render pipeline against canvas.
func (s *Scene) Render(canvas any) {
	frame := &RenderFrame{Canvas: canvas, Commands: s.commands, Storage: s.storage}
	for _, e := range s.renders {
		s.run(e.meta, func() { e.system.Render(frame) })
	}
	s.flush()
}

// Stop latches a terminal status from outside the update pipeline (e.g. a quit request).
// It has no effect if the scene already stopped.
func (s *Scene) Stop(status Status, reason string) {
	if s.status.Terminal() || !status.Terminal() {
		return
	}
	s.status = status
	s.reason = reason
}

// Status returns the latched status and the reason given by the system that reported it.
func (s *Scene) Status() (Status, string) {
	return s.status, s.reason
}

// Err returns every error produced while flushing deferred commands since the previous
// call, joined, and forgets them.
func (s *Scene) Err() error {
	err := errors.Join(s.flushErrs...)
	s.flushErrs = nil
	return err
}

// Pipeline returns the registered system names per capability, in execution order.
func (s *Scene) Pipeline() Pipeline {
	var p Pipeline
	for _, e := range s.setups {
		p.Setup = append(p.Setup, e.meta.name)
	}
	for _, e := range s.events {
		p.Event = append(p.Event, e.meta.name)
	}
	for _, e := range s.updates {
		p.Update = append(p.Update, e.meta.name)
	}
	for _, e := range s.renders {
		p.Render = append(p.Render, e.meta.name)
	}
	return p
}

// GetStats returns statistics about system execution in registration order.
func (s *Scene) GetStats() *SceneStats {
	stats := &SceneStats{
		SystemCount: len(s.order),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.order)),
	}

	var totalExecs int64
	for i, meta := range s.order {
		internal := meta.stats
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           meta.name,
			Kind:           meta.kind,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
