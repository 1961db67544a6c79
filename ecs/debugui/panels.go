package debugui

import "github.com/plus3/bulletfall/ecs"

// Panels are the debug windows for one inspected store. They are drawn through
// ImguiItem entities living in a separate overlay store, so the inspected store never
// sees debug entities.
type Panels struct {
	overlay *ecs.Storage
	items   []ecs.EntityId
	hidden  bool

	target *ecs.Storage
	stats  func() []*ecs.SchedulerStats
	gauges []Gauge

	browser   *EntityBrowser
	inspector *ComponentInspector
	perf      *PerformanceStats
}

// Install spawns the debug windows for target into overlay. stats may be nil.
func Install(overlay, target *ecs.Storage, stats func() []*ecs.SchedulerStats, gauges ...Gauge) *Panels {
	p := &Panels{
		overlay:   overlay,
		target:    target,
		stats:     stats,
		gauges:    gauges,
		browser:   NewEntityBrowser(50),
		inspector: NewComponentInspector(),
		perf:      NewPerformanceStats(120),
	}

	ecs.NewSingleton[ImguiInputState](overlay)
	p.items = []ecs.EntityId{
		overlay.Spawn(ImguiItem{Name: "Stats", Render: p.renderStats}),
		overlay.Spawn(ImguiItem{Name: "Entities", Render: p.renderEntities}),
		overlay.Spawn(ImguiItem{Name: "Inspector", Render: p.renderInspector}),
	}
	return p
}

// Visible reports whether the panels are drawn.
func (p *Panels) Visible() bool {
	return !p.hidden
}

// SetVisible shows or hides every panel.
func (p *Panels) SetVisible(visible bool) {
	p.hidden = !visible
	for _, id := range p.items {
		if item := ecs.ReadComponent[ImguiItem](p.overlay, id); item != nil {
			item.Hidden = p.hidden
		}
	}
}

func (p *Panels) renderStats() {
	var schedulers []*ecs.SchedulerStats
	if p.stats != nil {
		schedulers = p.stats()
	}
	p.perf.Render(p.target, schedulers, p.gauges)
}

func (p *Panels) renderEntities() {
	p.browser.Render(p.target)
}

func (p *Panels) renderInspector() {
	p.inspector.Render(p.target, p.browser.Selected())
}
