package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/adventurer/anim"
	"github.com/plus3/adventurer/ecs"
	"github.com/plus3/adventurer/game"
	"github.com/plus3/adventurer/physics"
)

var (
	bodyHandleType = reflect.TypeFor[physics.BodyHandle]()
	animationType  = reflect.TypeFor[anim.Animation]()
)

// EntityRow is one line of the entity browser.
type EntityRow struct {
	ID         ecs.EntityId
	Components []string

	HasBody  bool
	Body     physics.BodyHandle
	Position physics.Vec2

	HasAnimation bool
	State        string
	Ticks        int
	Frames       int
}

// CollectEntityRows lists every entity with its body pose and animation
// state. world may be nil.
func CollectEntityRows(storage *ecs.Storage, world *physics.World) []EntityRow {
	var rows []EntityRow
	for archetype := range storage.Archetypes() {
		names := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			names[i] = t.String()
		}

		for id := range archetype.Iter() {
			row := EntityRow{ID: id, Components: names}
			if h := ecs.ReadComponent[physics.BodyHandle](storage, id); h != nil {
				row.HasBody = true
				row.Body = *h
				if world != nil && world.Contains(*h) {
					row.Position = world.Isometry(*h).Translation
				}
			}
			if a := ecs.ReadComponent[anim.Animation](storage, id); a != nil {
				row.HasAnimation = true
				row.State = game.StateName(a.State)
				row.Ticks = a.Ticks
				row.Frames = a.Frames()
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// EntityBrowser lists entities and inspects the selected one.
type EntityBrowser struct {
	storage            *ecs.Storage
	selectedEntityId   ecs.EntityId
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

// NewEntityBrowser creates a browser showing maxEntitiesPerPage rows per page.
func NewEntityBrowser(storage *ecs.Storage, maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{storage: storage, maxEntitiesPerPage: maxEntitiesPerPage}
}

// filter keeps rows whose id, components or state mention text.
func filterRows(rows []EntityRow, text string) []EntityRow {
	if text == "" {
		return rows
	}
	needle := strings.ToLower(text)
	out := make([]EntityRow, 0, len(rows))
	for _, r := range rows {
		haystack := strings.ToLower(fmt.Sprintf("%d %s %s", r.ID, strings.Join(r.Components, " "), r.State))
		if strings.Contains(haystack, needle) {
			out = append(out, r)
		}
	}
	return out
}

// Render draws the entity table and the inspector for the selected entity.
func (eb *EntityBrowser) Render() {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	var world *physics.World
	eb.storage.ReadSingleton(&world)
	rows := filterRows(CollectEntityRows(eb.storage, world), eb.filterText)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	startIdx := min(eb.currentPage*eb.maxEntitiesPerPage, len(rows))
	endIdx := min(startIdx+eb.maxEntitiesPerPage, len(rows))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Body")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Animation")
		imgui.TableHeadersRow()

		for _, row := range rows[startIdx:endIdx] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == row.ID
			if imgui.SelectableBoolV(row.ID.String(), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = row.ID
			}

			imgui.TableNextColumn()
			if row.HasBody {
				imgui.Text(fmt.Sprintf("%d", row.Body))
			}
			imgui.TableNextColumn()
			if row.HasBody {
				imgui.Text(row.Position.String())
			}
			imgui.TableNextColumn()
			if row.HasAnimation {
				imgui.Text(fmt.Sprintf("%s %d/%d", row.State, row.Ticks, row.Frames))
			}
		}
		imgui.EndTable()
	}

	if len(rows) > eb.maxEntitiesPerPage {
		totalPages := (len(rows) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(rows)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(rows)))
	}

	imgui.Separator()
	eb.renderInspector()
	imgui.End()
}

func (eb *EntityBrowser) renderInspector() {
	archetype := eb.storage.ArchetypeOf(eb.selectedEntityId)
	if archetype == nil {
		imgui.Text("No entity selected")
		return
	}

	imgui.Text(fmt.Sprintf("Entity %s", eb.selectedEntityId))
	for _, compType := range archetype.Types() {
		component := eb.storage.GetComponent(eb.selectedEntityId, compType)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(compType.String()) {
			for _, f := range DescribeComponent(component) {
				imgui.Text(strings.Repeat("  ", f.Depth) + f.Name + ": " + f.Value)
			}
			imgui.TreePop()
		}
	}
}
