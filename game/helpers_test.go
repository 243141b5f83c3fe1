package game_test

import (
	"image"
	"image/color"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/adventurer/anim"
	"github.com/plus3/adventurer/game"
	"github.com/plus3/adventurer/physics"
	"github.com/plus3/adventurer/sprite"
	"github.com/stretchr/testify/require"
)

// testSheet builds a sheet with the character's frame counts. Every frame
// of a state has a distinct width so tests can tell frames apart.
func testSheet(t *testing.T) *sprite.Sheet {
	t.Helper()
	clips := map[anim.StateKey][]*sprite.Clip{}
	for _, s := range game.CharacterStates {
		for i := range game.CharacterFrames(s) {
			img := image.NewNRGBA(image.Rect(0, 0, 20, 10))
			for y := 0; y < 10; y++ {
				for x := 0; x < 5+i; x++ {
					img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
				}
			}
			c, err := sprite.NewClip(img, img.Bounds(), false, true)
			require.NoError(t, err)
			clips[s] = append(clips[s], c)
		}
	}
	return sprite.NewSheet(clips)
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestGame(t *testing.T) (*game.Game, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	g, err := game.New(game.Options{
		Physics: physics.Config{NSteps: 2, Timestep: 1.0 / 120.0},
		Sheet:   testSheet(t),
		Logger:  quietLogger(),
		Clock:   clock.Now,
	})
	require.NoError(t, err)
	return g, clock
}

// tickPeriod is one animation period at the default refresh rate.
const tickPeriod = time.Second * 2 / 15
