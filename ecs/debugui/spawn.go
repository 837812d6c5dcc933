package debugui

import (
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/frame"
)

// ToolWindowSystem renders the built-in debug windows while the overlay is visible.
// It must run inside an ImGui frame.
type ToolWindowSystem struct {
	Scene *ecs.Scene

	Overlay    ecs.Singleton[Overlay]
	Selection  ecs.Singleton[Selection]
	Stats      ecs.Singleton[frame.Stats]
	Browsers   ecs.Query[struct{ *EntityBrowser }]
	Inspectors ecs.Query[struct{ *ComponentInspector }]
	Tables     ecs.Query[struct{ *TableViewer }]
	Perf       ecs.Query[struct{ *PerformanceStats }]
	Queries    ecs.Query[struct{ *QueryDebugger }]
}

func (s *ToolWindowSystem) Render(rf *ecs.RenderFrame) {
	if overlay := s.Overlay.Get(); overlay == nil || !overlay.Visible {
		return
	}

	storage := rf.Storage
	selection := s.Selection.Get()

	for w := range s.Browsers.Iter() {
		w.EntityBrowser.Render(storage, selection)
	}
	for w := range s.Inspectors.Iter() {
		w.ComponentInspector.Render(storage, selection, rf.Commands)
	}
	for w := range s.Tables.Iter() {
		w.TableViewer.Render(storage, selection)
	}
	for w := range s.Perf.Iter() {
		w.PerformanceStats.Render(s.Scene, s.Stats.Get())
	}
	for w := range s.Queries.Iter() {
		w.QueryDebugger.Render(storage, selection)
	}
}

// RegisterDebugUIComponents registers the overlay's component types.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[EntityBrowser](registry)
	ecs.RegisterComponent[ComponentInspector](registry)
	ecs.RegisterComponent[TableViewer](registry)
	ecs.RegisterComponent[PerformanceStats](registry)
	ecs.RegisterComponent[QueryDebugger](registry)
}

// SpawnDebugUI creates one entity per built-in debug window.
func SpawnDebugUI(storage *ecs.Storage) {
	storage.Spawn(NewEntityBrowser(100))
	storage.Spawn(NewComponentInspector())
	storage.Spawn(NewTableViewer())
	storage.Spawn(NewPerformanceStats(120))
	storage.Spawn(NewQueryDebugger(50))
}

// Install adds the overlay to scene: its components and singletons, the debug windows,
// the F1 toggle and the two render systems, which draw after everything already registered.
func Install(scene *ecs.Scene, visible bool) {
	storage := scene.Storage()
	RegisterDebugUIComponents(storage.Registry())

	ecs.NewSingleton(storage, Overlay{Visible: visible})
	ecs.NewSingleton[Selection](storage)
	ecs.NewSingleton[ImguiInputState](storage)
	SpawnDebugUI(storage)

	scene.AddEventSystem(&OverlayToggleSystem{})
	scene.AddRenderSystem(&ImguiSystem{})
	scene.AddRenderSystem(&ToolWindowSystem{Scene: scene})
}
