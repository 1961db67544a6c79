package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bulletfall/ecs"
)

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

// EntityBrowser lists live entities, filtered by a search string and paged.
type EntityBrowser struct {
	entities   []EntityInfo
	filterText string
	selected   ecs.EntityId
	pageSize   int
	page       int
}

func NewEntityBrowser(pageSize int) *EntityBrowser {
	return &EntityBrowser{pageSize: max(pageSize, 1)}
}

// Selected returns the entity last clicked in the browser, or 0.
func (eb *EntityBrowser) Selected() ecs.EntityId {
	return eb.selected
}

func (eb *EntityBrowser) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	// The simulation churns entities every tick, so the list is rebuilt each frame.
	eb.entities = collectEntities(storage, eb.entities[:0])
	filtered := filterEntities(eb.entities, eb.filterText)

	imgui.InputTextWithHint("##search", "component or id...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		eb.filterText = ""
	}

	pages := max((len(filtered)+eb.pageSize-1)/eb.pageSize, 1)
	eb.page = min(eb.page, pages-1)
	start := eb.page * eb.pageSize
	end := min(start+eb.pageSize, len(filtered))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 2, tableFlags, imgui.NewVec2(0, 300), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(entity.ID.String(), eb.selected == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = entity.ID
			}
			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))
		}
		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.page+1, pages, len(filtered)))
	imgui.SameLine()
	if imgui.Button("Prev") && eb.page > 0 {
		eb.page--
	}
	imgui.SameLine()
	if imgui.Button("Next") && eb.page < pages-1 {
		eb.page++
	}

	imgui.End()
}

// collectEntities appends every live entity to dst in store iteration order.
func collectEntities(storage *ecs.Storage, dst []EntityInfo) []EntityInfo {
	for _, archetype := range storage.GetArchetypes() {
		names := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			names[i] = t.String()
		}
		for id := range archetype.Iter() {
			dst = append(dst, EntityInfo{
				ID:             id,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: names,
			})
		}
	}
	return dst
}

// filterEntities keeps entities whose id or a component name contains text,
// case-insensitively. An empty text keeps everything.
func filterEntities(entities []EntityInfo, text string) []EntityInfo {
	if text == "" {
		return entities
	}

	needle := strings.ToLower(text)
	filtered := make([]EntityInfo, 0, len(entities))
	for _, entity := range entities {
		if strings.Contains(entity.ID.String(), needle) ||
			strings.Contains(strings.ToLower(strings.Join(entity.ComponentTypes, " ")), needle) {
			filtered = append(filtered, entity)
		}
	}
	return filtered
}
