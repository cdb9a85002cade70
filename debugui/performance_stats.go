package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stagehand/stage"
)

// PerformanceStats is an actor that shows frame timings and per-actor update costs.
type PerformanceStats struct {
	stage.BaseActor

	source        func() stage.Stats
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

// NewPerformanceStats keeps historyFrames frame times. source is called once
// per frame on the frame goroutine; it is usually Manager.Stats.
func NewPerformanceStats(source func() stage.Stats, historyFrames int) *PerformanceStats {
	if historyFrames <= 0 {
		historyFrames = 120
	}
	return &PerformanceStats{
		source:        source,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

func (ps *PerformanceStats) Update(delta float64) {
	ps.record(delta)
	ps.render()
}

func (ps *PerformanceStats) record(delta float64) {
	ps.frameHistory[ps.frameIndex] = float32(delta * 1000.0)
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// averageFrameTime returns the mean of the history in milliseconds.
func (ps *PerformanceStats) averageFrameTime() float32 {
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.historyFrames)
}

func (ps *PerformanceStats) render() {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	var stats stage.Stats
	if ps.source != nil {
		stats = ps.source()
	}

	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("Skipped Renders: %d", stats.SkippedRenders))
	imgui.Text(fmt.Sprintf("Elapsed: %s", stats.Elapsed.Truncate(1e6)))
	if s := ps.Scene(); s != nil {
		imgui.Text(fmt.Sprintf("Scene Objects: %d", s.Len()))
	}

	avgFrameTime := ps.averageFrameTime()
	fps := float32(0)
	if avgFrameTime > 0 {
		fps = 1000.0 / avgFrameTime
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, fps))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Actor Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ActorStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Actor")
			imgui.TableSetupColumn("Updates")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, actor := range stats.Actors {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(actor.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", actor.UpdateCount))
				imgui.TableNextColumn()
				imgui.Text(actor.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(actor.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
