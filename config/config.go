// Package config loads the game configuration.
package config

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/plus3/adventurer/physics"
)

// Config is the top-level game configuration.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Animation AnimationConfig `yaml:"animation"`
	Character CharacterConfig `yaml:"character"`
	Debug     DebugConfig     `yaml:"debug"`
	Log       LogConfig       `yaml:"log"`
}

// WindowConfig sizes the window and maps world units to pixels.
type WindowConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Title         string  `yaml:"title"`
	PixelsPerUnit float64 `yaml:"pixels_per_unit"`
	// OriginX and OriginY place the world origin as a fraction of the
	// window, from the top-left corner.
	OriginX float64 `yaml:"origin_x"`
	OriginY float64 `yaml:"origin_y"`
}

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PhysicsConfig sets the physics world: gravity, sub-steps per frame and sub-step length.
type PhysicsConfig struct {
	Gravity  Vec2    `yaml:"gravity"`
	NSteps   int     `yaml:"nsteps"`
	Timestep float64 `yaml:"timestep"`
}

// AnimationConfig sets how often animations tick, in Hz.
type AnimationConfig struct {
	RefreshRate float64 `yaml:"refresh_rate"`
}

// CharacterConfig configures the player character.
type CharacterConfig struct {
	Speed float64 `yaml:"speed"`
	// Sheet is the sprite-sheet description, relative to the resource root.
	Sheet string `yaml:"sheet"`
}

// DebugConfig toggles debug drawing and the ImGui overlay.
type DebugConfig struct {
	Bounds bool `yaml:"bounds"`
	Imgui  bool `yaml:"imgui"`
}

// LogConfig sets the logger level (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:         960,
			Height:        540,
			Title:         "adventurer",
			PixelsPerUnit: 120,
			OriginX:       0.5,
			OriginY:       0.75,
		},
		Physics: PhysicsConfig{
			Gravity:  Vec2{Y: -9.81},
			NSteps:   2,
			Timestep: 1.0 / 120.0,
		},
		Animation: AnimationConfig{RefreshRate: 7.5},
		Character: CharacterConfig{
			Speed: 2.0,
			Sheet: "res/assets/adventurer_sprite.yaml",
		},
		Log: LogConfig{Level: "info"},
	}
}

// PhysicsWorld converts the physics section for physics.NewWorld.
func (c Config) PhysicsWorld() physics.Config {
	return physics.Config{
		Gravity:  physics.Vec2{X: c.Physics.Gravity.X, Y: c.Physics.Gravity.Y},
		NSteps:   c.Physics.NSteps,
		Timestep: c.Physics.Timestep,
	}
}

// LogLevel parses Log.Level, defaulting to info when empty.
func (c Config) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(c.Log.Level)
}

// Validate reports values the game cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Window.PixelsPerUnit <= 0:
		return fmt.Errorf("window.pixels_per_unit must be positive, got %v", c.Window.PixelsPerUnit)
	case c.Physics.NSteps <= 0:
		return fmt.Errorf("physics.nsteps must be positive, got %d", c.Physics.NSteps)
	case c.Physics.Timestep <= 0:
		return fmt.Errorf("physics.timestep must be positive, got %v", c.Physics.Timestep)
	case c.Animation.RefreshRate <= 0:
		return fmt.Errorf("animation.refresh_rate must be positive, got %v", c.Animation.RefreshRate)
	case c.Character.Sheet == "":
		return fmt.Errorf("character.sheet is required")
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
