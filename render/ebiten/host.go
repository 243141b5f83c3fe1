package ebiten

import (
	"time"

	"github.com/charmbracelet/log"
	eb "github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/adventurer/game"
	"github.com/plus3/adventurer/input"
)

// Overlay is drawn over each frame, e.g. a Dear ImGui backend.
type Overlay interface {
	BeginFrame()
	EndFrame()
	Render(screen *eb.Image)
	Resize(width, height int)
	// WantsKeyboard reports whether the overlay consumes key events.
	WantsKeyboard() bool
}

// Host implements ebiten.Game. Key events are collected in Update; the game
// frame runs in Draw so that it follows the display refresh.
type Host struct {
	game    *game.Game
	canvas  *Canvas
	overlay Overlay
	logger  *log.Logger

	keys   KeyReader
	events []input.KeyEvent
	last   time.Time
}

// NewHost wraps g. overlay may be nil.
func NewHost(g *game.Game, canvas *Canvas, overlay Overlay, logger *log.Logger) *Host {
	if logger == nil {
		logger = log.Default()
	}
	return &Host{game: g, canvas: canvas, overlay: overlay, logger: logger}
}

// Update collects the key transitions of this tick and queues them for the
// game unless the overlay has keyboard focus.
func (h *Host) Update() error {
	h.events = h.keys.Append(h.events[:0])
	if len(h.events) == 0 {
		return nil
	}
	if h.overlay != nil && h.overlay.WantsKeyboard() {
		return nil
	}
	for _, ev := range h.events {
		h.logger.Debug("key", "event", ev)
	}
	h.game.PushKeys(h.events...)
	return nil
}

// Draw runs one game frame onto screen, with the overlay on top.
func (h *Host) Draw(screen *eb.Image) {
	now := time.Now()
	dt := 0.0
	if !h.last.IsZero() {
		dt = now.Sub(h.last).Seconds()
	}
	h.last = now

	h.canvas.SetTarget(screen)
	if h.overlay != nil {
		h.overlay.BeginFrame()
	}
	h.game.Frame(h.canvas, dt)
	if h.overlay != nil {
		h.overlay.EndFrame()
		h.overlay.Render(screen)
	}
}

// Layout keeps the screen the size of the window.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if h.overlay != nil {
		h.overlay.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// WindowOptions configures Run.
type WindowOptions struct {
	Title         string
	Width, Height int
}

// Run opens the window and blocks until it is closed.
func Run(h *Host, opts WindowOptions) error {
	eb.SetWindowTitle(opts.Title)
	eb.SetWindowSize(opts.Width, opts.Height)
	eb.SetWindowResizingMode(eb.WindowResizingModeEnabled)
	return eb.RunGame(h)
}
