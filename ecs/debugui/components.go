package debugui

// Each debug window is a component; Install spawns one entity per window and
// ToolWindowSystem renders them.

type EntityBrowser struct {
	cache              *entityBrowserCache
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspector struct {
	lastEdit string
}

type TableViewer struct {
	cache *tableViewerCache
}

type PerformanceStats struct {
	frameHistory *frameHistory
}

type QueryDebugger struct {
	selected map[string]bool
	maxRows  int
}
