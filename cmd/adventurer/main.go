// adventurer is a small 2D side-scroller: a sprite-animated character runs
// left and right over a ground slab past a row of sensor balls.
//
// Usage:
//
//	adventurer [run]              - Open the game window (default)
//	adventurer sheet <path>       - Describe a sprite-sheet file
//	adventurer res sync           - Mirror res/ next to the binary
//	adventurer bench              - Run the game headless and print a report
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.adventurer, ./configs)
//	--res-dir <dir>     - Resource root (default: $OUT_DIR, then the binary's dir)
//	--log-level <lvl>   - debug, info, warn or error
//	--bounds            - Outline the character's sprite rectangle
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/plus3/adventurer/assets"
	"github.com/plus3/adventurer/config"
	"github.com/plus3/adventurer/game"
	"github.com/plus3/adventurer/sprite"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagResDir   string
	flagLogLevel string
	flagBounds   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportFatal(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "adventurer",
	Short: "A sprite-animated character on a physics stage",
	Long: `adventurer opens a window with a ground slab, a row of balls and a
character driven by the arrow keys. Left and Right run, releasing any key
stops.

Examples:
  adventurer
  adventurer --bounds --log-level debug
  adventurer sheet res/assets/adventurer_sprite.yaml
  adventurer res sync --dst ./bin
  adventurer bench --duration 5s`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:         runGame,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagResDir, "res-dir", "", "Resource root directory")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagBounds, "bounds", false, "Draw sprite bounds")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sheetCmd)
	rootCmd.AddCommand(resCmd)
	rootCmd.AddCommand(benchCmd)
}

// env is what every command needs: the merged config and a logger.
type env struct {
	cfg    config.Config
	logger *log.Logger
}

func setup(cmd *cobra.Command) (*env, error) {
	type skip struct {
		path string
		err  error
	}
	var skipped []skip
	cfg, source, err := config.Load(flagConfig, func(path string, err error) {
		skipped = append(skipped, skip{path, err})
	})
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("bounds") {
		cfg.Debug.Bounds = flagBounds
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config from %s: %w", source, err)
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	logger := newLogger(os.Stderr, level)
	for _, s := range skipped {
		logger.Warn("config file ignored", "path", s.path, "err", s.err)
	}
	logger.Debug("config loaded", "source", source)
	return &env{cfg: cfg, logger: logger}, nil
}

// reportFatal logs the error that ends the process.
func reportFatal(w io.Writer, err error) {
	newLogger(w, log.InfoLevel).Error("fatal", "err", err)
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "adventurer",
		Level:           level,
	})
}

func (e *env) loadSheet() (*sprite.Sheet, error) {
	path := assets.FromOutDir(flagResDir)(e.cfg.Character.Sheet)
	sheet, err := sprite.FromConfig(path)
	if err != nil {
		return nil, err
	}
	e.logger.Info("sprite sheet loaded", "path", path, "states", len(sheet.States()))
	return sheet, nil
}

func (e *env) newGame(opts game.Options) (*game.Game, error) {
	sheet, err := e.loadSheet()
	if err != nil {
		return nil, err
	}
	opts.Physics = e.cfg.PhysicsWorld()
	opts.RefreshRate = e.cfg.Animation.RefreshRate
	opts.Speed = e.cfg.Character.Speed
	opts.Sheet = sheet
	opts.Bounds = e.cfg.Debug.Bounds
	opts.Logger = e.logger
	return game.New(opts)
}
