package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/kamstrup/intmap"
)

// sensorCollisionType tags sensor shapes so a single wildcard handler can
// turn their overlaps into proximity events.
const sensorCollisionType cp.CollisionType = 1

// Config configures a World's stepper.
type Config struct {
	Gravity Vec2
	// NSteps is the number of sub-steps integrated per frame.
	NSteps int
	// Timestep is the duration of one sub-step, in seconds.
	Timestep float64
}

// DefaultConfig returns zero gravity, 2 sub-steps of 1/120 s.
func DefaultConfig() Config {
	return Config{NSteps: 2, Timestep: 1.0 / 120.0}
}

type bodyEntry struct {
	body      *cp.Body
	status    BodyStatus
	ground    bool
	colliders []ColliderHandle
}

type colliderEntry struct {
	shape  *cp.Shape
	body   BodyHandle
	sensor bool
}

// World owns every body and collider and the cp space that simulates them.
type World struct {
	space *cp.Space
	cfg   Config

	bodies    *intmap.Map[BodyHandle, *bodyEntry]
	colliders *intmap.Map[ColliderHandle, *colliderEntry]

	nextBody     BodyHandle
	nextCollider ColliderHandle

	events []ProximityEvent
	steps  uint64
}

// NewWorld creates an empty world. NSteps and Timestep fall back to
// DefaultConfig when not positive.
func NewWorld(cfg Config) *World {
	def := DefaultConfig()
	if cfg.NSteps <= 0 {
		cfg.NSteps = def.NSteps
	}
	if cfg.Timestep <= 0 {
		cfg.Timestep = def.Timestep
	}

	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: cfg.Gravity.X, Y: cfg.Gravity.Y})

	w := &World{
		space:     space,
		cfg:       cfg,
		bodies:    intmap.New[BodyHandle, *bodyEntry](16),
		colliders: intmap.New[ColliderHandle, *colliderEntry](16),
	}

	handler := space.NewWildcardCollisionHandler(sensorCollisionType)
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		w.pushProximity(arb, Intersecting)
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
		w.pushProximity(arb, Disjoint)
	}

	return w
}

// Config returns the stepper configuration in effect.
func (w *World) Config() Config {
	return w.cfg
}

// NSteps is the number of sub-steps to integrate per frame.
func (w *World) NSteps() int {
	return w.cfg.NSteps
}

// StepCount is the number of sub-steps integrated so far.
func (w *World) StepCount() uint64 {
	return w.steps
}

// BodyCount returns the number of live bodies, ground included.
func (w *World) BodyCount() int {
	return w.bodies.Len()
}

// ColliderCount returns the number of live colliders.
func (w *World) ColliderCount() int {
	return w.colliders.Len()
}

// InsertGround adds the static ground body at the origin.
func (w *World) InsertGround() BodyHandle {
	body := cp.NewStaticBody()
	w.space.AddBody(body)
	return w.addBody(&bodyEntry{body: body, status: Static, ground: true})
}

// InsertBody adds a rigid body described by desc.
func (w *World) InsertBody(desc BodyDesc) BodyHandle {
	var body *cp.Body
	switch desc.Status {
	case Static:
		body = cp.NewStaticBody()
	case Kinematic:
		body = cp.NewKinematicBody()
	case Dynamic:
		mass := desc.Mass
		if mass <= 0 {
			mass = 1
		}
		moment := cp.MomentForBox(mass, 1, 1)
		if desc.FixedRotation {
			moment = math.Inf(1)
		}
		body = cp.NewBody(mass, moment)
	default:
		panic(fmt.Sprintf("physics: unknown body status %v", desc.Status))
	}
	body.SetPosition(cp.Vector{X: desc.Translation.X, Y: desc.Translation.Y})
	w.space.AddBody(body)

	entry := &bodyEntry{body: body, status: desc.Status}
	if desc.Status == Dynamic && desc.FixedRotation {
		body.UserData = fixedRotation{}
	}
	return w.addBody(entry)
}

type fixedRotation struct{}

func (w *World) addBody(entry *bodyEntry) BodyHandle {
	w.nextBody++
	h := w.nextBody
	w.bodies.Put(h, entry)
	return h
}

// InsertCollider attaches shape to the body behind parent.
// It panics if parent is unknown.
func (w *World) InsertCollider(shape Shape, parent BodyHandle, desc ColliderDesc) ColliderHandle {
	entry := w.mustBody(parent)

	var s *cp.Shape
	switch sh := shape.(type) {
	case Cuboid:
		t := desc.Translation
		he := sh.HalfExtents
		s = cp.NewBox2(entry.body, cp.BB{
			L: t.X - he.X,
			B: t.Y - he.Y,
			R: t.X + he.X,
			T: t.Y + he.Y,
		}, 0)
	case Ball:
		s = cp.NewCircle(entry.body, sh.Radius, cp.Vector{X: desc.Translation.X, Y: desc.Translation.Y})
	default:
		panic(fmt.Sprintf("physics: unsupported shape %T", shape))
	}

	s.SetFriction(desc.Friction)
	if desc.Sensor {
		s.SetSensor(true)
		s.SetCollisionType(sensorCollisionType)
	}
	w.space.AddShape(s)
	if desc.Density > 0 {
		s.SetDensity(desc.Density)
	}
	// Density accumulation recomputes the moment; pin it again.
	if _, ok := entry.body.UserData.(fixedRotation); ok {
		entry.body.SetMoment(math.Inf(1))
	}

	w.nextCollider++
	h := w.nextCollider
	s.UserData = h
	w.colliders.Put(h, &colliderEntry{shape: s, body: parent, sensor: desc.Sensor})
	entry.colliders = append(entry.colliders, h)
	return h
}

// ColliderBody returns the body a collider is attached to.
func (w *World) ColliderBody(h ColliderHandle) (BodyHandle, bool) {
	c, ok := w.colliders.Get(h)
	if !ok {
		return 0, false
	}
	return c.body, true
}

// Colliders lists the colliders attached to a body.
func (w *World) Colliders(h BodyHandle) []ColliderHandle {
	entry, ok := w.bodies.Get(h)
	if !ok {
		return nil
	}
	out := make([]ColliderHandle, len(entry.colliders))
	copy(out, entry.colliders)
	return out
}

// Contains reports whether h names a live body.
func (w *World) Contains(h BodyHandle) bool {
	_, ok := w.bodies.Get(h)
	return ok
}

// Status returns the integration mode of a body.
func (w *World) Status(h BodyHandle) BodyStatus {
	return w.mustBody(h).status
}

// IsGround reports whether h is the ground body.
func (w *World) IsGround(h BodyHandle) bool {
	entry, ok := w.bodies.Get(h)
	return ok && entry.ground
}

// Isometry returns the pose of any body, ground included.
func (w *World) Isometry(h BodyHandle) Isometry {
	return isometryOf(w.mustBody(h).body)
}

// RigidBody returns a mutable view of a non-ground body. It panics when h is
// the ground or unknown.
func (w *World) RigidBody(h BodyHandle) *RigidBody {
	entry := w.mustBody(h)
	if entry.ground {
		panic(fmt.Sprintf("physics: body %d is the ground, not a rigid body", h))
	}
	return &RigidBody{handle: h, body: entry.body}
}

// Step integrates a single sub-step of Timestep seconds.
func (w *World) Step() {
	w.space.Step(w.cfg.Timestep)
	w.steps++
}

// DrainProximityEvents returns and clears the proximity events queued since
// the last drain, in the order they occurred.
func (w *World) DrainProximityEvents() []ProximityEvent {
	if len(w.events) == 0 {
		return nil
	}
	out := w.events
	w.events = nil
	return out
}

// RemoveBody destroys a body and its colliders. Unknown handles are ignored.
func (w *World) RemoveBody(h BodyHandle) {
	entry, ok := w.bodies.Get(h)
	if !ok {
		return
	}
	for _, ch := range entry.colliders {
		if c, ok := w.colliders.Get(ch); ok {
			w.space.RemoveShape(c.shape)
			w.colliders.Del(ch)
		}
	}
	w.space.RemoveBody(entry.body)
	w.bodies.Del(h)
}

// Bodies returns every live body handle in insertion order.
func (w *World) Bodies() []BodyHandle {
	out := make([]BodyHandle, 0, w.bodies.Len())
	for h := BodyHandle(1); h <= w.nextBody; h++ {
		if _, ok := w.bodies.Get(h); ok {
			out = append(out, h)
		}
	}
	return out
}

func (w *World) mustBody(h BodyHandle) *bodyEntry {
	entry, ok := w.bodies.Get(h)
	if !ok {
		panic(fmt.Sprintf("physics: unknown body handle %d", h))
	}
	return entry
}

func (w *World) pushProximity(arb *cp.Arbiter, status Proximity) {
	a, b := arb.Shapes()
	h1, ok1 := a.UserData.(ColliderHandle)
	h2, ok2 := b.UserData.(ColliderHandle)
	if !ok1 || !ok2 {
		return
	}
	w.events = append(w.events, ProximityEvent{Collider1: h1, Collider2: h2, NewStatus: status})
}

// RigidBody is a mutable view of one body, valid until the body is removed.
type RigidBody struct {
	handle BodyHandle
	body   *cp.Body
}

// Handle returns the handle the body was inserted under.
func (rb *RigidBody) Handle() BodyHandle {
	return rb.handle
}

// SetVelocity sets the linear velocity, waking the body.
func (rb *RigidBody) SetVelocity(v Vec2) {
	rb.body.SetVelocity(v.X, v.Y)
}

// Velocity returns the linear velocity in units per second.
func (rb *RigidBody) Velocity() Vec2 {
	v := rb.body.Velocity()
	return Vec2{X: v.X, Y: v.Y}
}

// Isometry returns the body's current pose.
func (rb *RigidBody) Isometry() Isometry {
	return isometryOf(rb.body)
}

func isometryOf(b *cp.Body) Isometry {
	p := b.Position()
	return Isometry{Translation: Vec2{X: p.X, Y: p.Y}, Rotation: b.Angle()}
}
