package main

import (
	"github.com/plus3/adventurer/debugui"
	debugui_ebiten "github.com/plus3/adventurer/debugui/ebiten"
	"github.com/plus3/adventurer/game"
	"github.com/plus3/adventurer/render/ebiten"
	"github.com/spf13/cobra"
)

var flagImgui bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the game window",
	Long:  `Opens the game window and runs until it is closed.`,
	RunE:  runGame,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagImgui, "imgui", false, "Show the Dear ImGui debug windows")
}

func runGame(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	win := e.cfg.Window

	// The ImGui backend owns the window, so it is created before the game.
	var overlay ebiten.Overlay
	if flagImgui || e.cfg.Debug.Imgui {
		overlay = debugui_ebiten.NewImguiBackend(win.Title, win.Width, win.Height)
	}

	g, err := e.newGame(game.Options{})
	if err != nil {
		return err
	}
	defer g.Close()

	if overlay != nil {
		debugui.Spawn(g.Scheduler)
	}

	canvas := ebiten.NewCanvas(win.PixelsPerUnit, win.OriginX, win.OriginY)
	host := ebiten.NewHost(g, canvas, overlay, e.logger)

	e.logger.Info("starting", "window", win.Title, "width", win.Width, "height", win.Height, "imgui", overlay != nil)
	return ebiten.Run(host, ebiten.WindowOptions{Title: win.Title, Width: win.Width, Height: win.Height})
}
