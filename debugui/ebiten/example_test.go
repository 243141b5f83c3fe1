package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/adventurer/debugui"
	debugui_ebiten "github.com/plus3/adventurer/debugui/ebiten"
	"github.com/plus3/adventurer/game"
	"github.com/plus3/adventurer/render/ebiten"
	"github.com/plus3/adventurer/sprite"
)

func Example() {
	// Create the ImGui backend before the game so it owns the window
	backend := debugui_ebiten.NewImguiBackend("adventurer", 960, 540)

	sheet, err := sprite.FromConfig("res/assets/adventurer_sprite.yaml")
	if err != nil {
		panic(err)
	}

	g, err := game.New(game.Options{Sheet: sheet})
	if err != nil {
		panic(err)
	}
	defer g.Close()

	// Debug windows run after every game system of the frame
	debugui.Spawn(g.Scheduler)
	g.Storage.Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Hello")
			imgui.Text("Hello from the adventurer!")
			imgui.End()
		},
	})

	host := ebiten.NewHost(g, ebiten.NewCanvas(120, 0.5, 0.75), backend, nil)
	if err := ebiten.Run(host, ebiten.WindowOptions{Title: "adventurer", Width: 960, Height: 540}); err != nil {
		panic(err)
	}
}
