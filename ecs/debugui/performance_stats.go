package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bulletfall/ecs"
)

// Gauge is a labelled live value shown at the top of the stats window.
type Gauge struct {
	Label string
	Value func() string
}

// PerformanceStats shows frame timing, store statistics and per-system timings of every
// scheduler reported by the stats callback.
type PerformanceStats struct {
	frameHistory []float32
	frameIndex   int
	timer        FrameTimer
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		frameHistory: make([]float32, max(historyFrames, 1)),
		timer:        FrameTimer{lastFrameTime: time.Now()},
	}
}

// record stores one frame time in milliseconds and returns the rolling average.
func (ps *PerformanceStats) record(ms float32) float32 {
	ps.frameHistory[ps.frameIndex] = ms
	ps.frameIndex = (ps.frameIndex + 1) % len(ps.frameHistory)

	var sum float32
	for _, ft := range ps.frameHistory {
		sum += ft
	}
	return sum / float32(len(ps.frameHistory))
}

func (ps *PerformanceStats) Render(storage *ecs.Storage, schedulers []*ecs.SchedulerStats, gauges []Gauge) {
	avg := ps.record(ps.timer.GetDeltaTime() * 1000)

	if !imgui.BeginV("Simulation", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	for _, gauge := range gauges {
		imgui.Text(fmt.Sprintf("%s: %s", gauge.Label, gauge.Value()))
	}
	imgui.Separator()

	stats := storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d  Archetypes: %d  Singletons: %d",
		stats.TotalEntityCount, stats.ArchetypeCount, stats.SingletonCount))
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	for _, scheduler := range schedulers {
		if !imgui.TreeNodeStr(fmt.Sprintf("%s pass (%d runs)", scheduler.Name, scheduler.Passes)) {
			continue
		}
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV(scheduler.Name+"##systems", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, system := range scheduler.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(system.Name)
				imgui.TableNextColumn()
				imgui.Text(system.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(system.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(system.MaxDuration.String())
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetypes") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entities")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%08x", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%v", arch.ComponentTypes))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
