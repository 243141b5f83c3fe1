// Package physics is the handle-based adapter between the game and the cp
// rigid-body engine. Callers hold BodyHandle and ColliderHandle values only;
// the World owns every body and shape.
package physics

import "fmt"

// Vec2 is a 2D vector in world units (y up).
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// String formats the vector with three decimals.
func (v Vec2) String() string { return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y) }

// Isometry is a rigid transform: translation plus rotation in radians.
type Isometry struct {
	Translation Vec2
	Rotation    float64
}

// BodyHandle identifies a body inside a World. The zero handle is never issued.
type BodyHandle uint32

// ColliderHandle identifies a collider inside a World. The zero handle is never issued.
type ColliderHandle uint32

// BodyStatus selects how the engine integrates a body.
type BodyStatus int

const (
	Dynamic BodyStatus = iota
	Static
	Kinematic
)

// String returns the lower-case status name.
func (s BodyStatus) String() string {
	switch s {
	case Dynamic:
		return "dynamic"
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	}
	return fmt.Sprintf("BodyStatus(%d)", int(s))
}

// BodyDesc describes a rigid body to insert.
type BodyDesc struct {
	Translation Vec2
	Status      BodyStatus
	// Mass of a dynamic body before collider densities are accounted for.
	// Zero means 1.
	Mass float64
	// FixedRotation keeps a dynamic body upright.
	FixedRotation bool
}

// Shape is a collider geometry: Cuboid or Ball.
type Shape interface {
	isShape()
}

// Cuboid is an axis-aligned box given by its half extents.
type Cuboid struct {
	HalfExtents Vec2
}

// Ball is a circle.
type Ball struct {
	Radius float64
}

func (Cuboid) isShape() {}
func (Ball) isShape()   {}

// ColliderDesc describes how a shape is attached to its body.
type ColliderDesc struct {
	// Translation offsets the shape from the body origin.
	Translation Vec2
	Density     float64
	Friction    float64
	// Sensor colliders report proximity but never push bodies apart.
	Sensor bool
}

// DefaultColliderMargin is the contact margin added around colliders when
// laying out touching shapes.
const DefaultColliderMargin = 0.01

// Proximity is the overlap status carried by a ProximityEvent.
type Proximity int

const (
	Disjoint Proximity = iota
	WithinMargin
	Intersecting
)

// String returns the status name.
func (p Proximity) String() string {
	switch p {
	case Disjoint:
		return "Disjoint"
	case WithinMargin:
		return "WithinMargin"
	case Intersecting:
		return "Intersecting"
	}
	return fmt.Sprintf("Proximity(%d)", int(p))
}

// ProximityEvent reports that a sensor collider changed overlap status with
// another collider.
type ProximityEvent struct {
	Collider1 ColliderHandle
	Collider2 ColliderHandle
	NewStatus Proximity
}
