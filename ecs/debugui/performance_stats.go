package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/frame"
)

// frameHistory is a ring of frame times in milliseconds.
type frameHistory struct {
	samples []float32
	next    int
	filled  int
}

func newFrameHistory(size int) *frameHistory {
	return &frameHistory{samples: make([]float32, size)}
}

func (h *frameHistory) record(ms float32) {
	h.samples[h.next] = ms
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

func (h *frameHistory) average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, s := range h.samples[:h.filled] {
		sum += s
	}
	return sum / float32(h.filled)
}

func NewPerformanceStats(historyFrames int) PerformanceStats {
	return PerformanceStats{frameHistory: newFrameHistory(historyFrames)}
}

// Render shows the driver's frame statistics, storage counts and per-system timings.
func (ps *PerformanceStats) Render(scene *ecs.Scene, stats *frame.Stats) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	storageStats := scene.Storage().CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", storageStats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Component Tables: %d", storageStats.TableCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", storageStats.SingletonCount))

	if stats != nil {
		ps.frameHistory.record(float32(stats.DeltaTime * 1000))
		imgui.Text(fmt.Sprintf("FPS: %.1f  frame %d", stats.FPS, stats.Frame))
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (work %.2f ms)", ps.frameHistory.average(), float64(stats.FrameTime.Microseconds())/1000))

		imgui.Separator()
		imgui.Text("Frame Time Graph (ms)")
		imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory.samples[0], int32(len(ps.frameHistory.samples)))
	}

	if imgui.TreeNodeStr("Systems") {
		sceneStats := scene.GetStats()
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStats", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Kind")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range sceneStats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(sys.Kind.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, singletonType := range storageStats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}
}
