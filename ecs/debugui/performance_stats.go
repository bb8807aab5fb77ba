package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stagecraft/ecs"
)

func NewPerformanceStatsComponent(historyFrames int) PerformanceStatsComponent {
	if historyFrames <= 0 {
		historyFrames = 120
	}
	return PerformanceStatsComponent{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		frameIndex:    0,
	}
}

// Record adds one frame time to the rolling history.
func (ps *PerformanceStatsComponent) Record(deltaTime float64) {
	ps.frameHistory[ps.frameIndex] = float32(deltaTime * 1000.0)
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// AverageFrameTime returns the mean frame time of the history in milliseconds.
func (ps *PerformanceStatsComponent) AverageFrameTime() float32 {
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.historyFrames)
}

func (ps *PerformanceStatsComponent) Render(frame *ecs.UpdateFrame) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.Record(frame.DeltaTime)

	tables := frame.Storage.Tables()
	componentCount := 0
	for _, table := range tables {
		componentCount += table.Count
	}

	imgui.Text(fmt.Sprintf("Frame: %d", frame.Frame))
	imgui.Text(fmt.Sprintf("Total Entities: %d", frame.Storage.Len()))
	imgui.Text(fmt.Sprintf("Components: %d in %d tables", componentCount, len(tables)))
	imgui.Text(fmt.Sprintf("Resources: %d", frame.Resources.Len()))
	imgui.Text(fmt.Sprintf("Pending Commands: %d", frame.Commands.Len()))

	avgFrameTime := ps.AverageFrameTime()
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	stats := frame.Scheduler.Stats()
	if imgui.TreeNodeStr(fmt.Sprintf("Systems (%d)", stats.SystemCount)) {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Stage")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Skips")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(string(sys.Stage))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.SkipCount))
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Stages") {
		for _, stage := range stats.Stages {
			imgui.BulletText(fmt.Sprintf("%s (priority %d, %d systems)", stage.Name, stage.Priority, stage.Systems))
		}
		if stats.StartupPending > 0 {
			imgui.BulletText(fmt.Sprintf("%d startup systems pending", stats.StartupPending))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Dependencies") {
		for _, sys := range stats.Systems {
			for _, dep := range sys.Dependencies {
				imgui.BulletText(sys.Name + ": " + dep.String())
			}
		}
		imgui.TreePop()
	}

	imgui.End()
}
