package game

import (
	"github.com/plus3/adventurer/physics"
	"github.com/plus3/adventurer/render"
)

const (
	GroundThickness       = 0.2
	GroundHalfExtentWidth = 3.0
	BallRadius            = 0.5
	BallCount             = 5
)

// DrawBall paints a ball sensor.
func DrawBall(c render.Canvas, iso physics.Isometry) {
	c.Circle(iso.Translation, BallRadius, render.Fill(render.Green))
}

// GroundRect is the ground collider outline for a ground body at pos.
func GroundRect(pos physics.Vec2) render.Rect {
	return render.RectXYWH(
		pos.X-GroundHalfExtentWidth,
		pos.Y-2*GroundThickness,
		2*GroundHalfExtentWidth,
		2*GroundThickness,
	)
}

// DrawGround outlines the ground.
func DrawGround(c render.Canvas, iso physics.Isometry) {
	render.Outline(c, GroundRect(iso.Translation), render.Fill(render.White))
}

// BallPositions lays out n balls of radius r side by side, one margin apart.
func BallPositions(n int, r float64) []physics.Vec2 {
	shift := r + physics.DefaultColliderMargin
	centerX := shift * float64(n) / 2
	out := make([]physics.Vec2, n)
	for i := range out {
		out[i] = physics.Vec2{X: shift - centerX + 2*shift*float64(i), Y: shift}
	}
	return out
}
