package gizmo

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/gekko3d/gizmo/rt/core"
	"github.com/gekko3d/gizmo/rt/geom"
	"github.com/gekko3d/gizmo/rt/handle"
)

type State int

const (
	Idle State = iota
	Hovering
	Dragging
)

func (s State) String() string {
	switch s {
	case Hovering:
		return "hovering"
	case Dragging:
		return "dragging"
	}
	return "idle"
}

// Session is one gizmo bound to one target. It owns the six handles
// (arrows X, Y, Z then rings X, Y, Z) and the auxiliary sphere.
type Session struct {
	ID     uuid.UUID
	Target Target

	// Position is the target's world position, the centre of every handle.
	Position mgl64.Vec3
	Radius   float64
	Frame    mgl64.Mat4

	Handles [6]*handle.Handle

	Sphere          core.Visual
	SphereTransform mgl64.Mat4
	sphereShown     bool

	active         int
	pressed        bool
	rotationLocked bool
	cancelInput    func()
}

func newSession(host Host, cfg Config, target Target) (*Session, error) {
	radius := target.BoundingRadius()
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidTarget, radius)
	}

	position := core.Translation(target.ModelMatrix())
	frame := host.localFrameAt(position)
	transform := core.WithTranslation(frame, position)
	east, north, up := core.FrameAxes(frame)
	directions := [3]mgl64.Vec3{east, north, up}
	colors := [3][4]float32{cfg.Colors.X, cfg.Colors.Y, cfg.Colors.Z}

	s := &Session{
		ID:              uuid.New(),
		Target:          target,
		Position:        position,
		Radius:          radius,
		Frame:           frame,
		SphereTransform: transform,
		active:          -1,
	}
	for i, axis := range handle.Axes {
		s.Handles[i] = handle.New(handle.Translation, axis, transform, directions[i], colors[i], cfg.Colors.Highlight)
		s.Handles[3+i] = handle.New(handle.Rotation, axis, transform, directions[i], colors[i], cfg.Colors.Highlight)
	}

	sizes := cfg.Sizes(radius)
	for _, h := range s.Handles {
		v, err := host.Scene.CreatePickableVisual(handleShape(h, sizes, cfg), h.ID)
		if err != nil {
			s.removeVisuals(host.Scene)
			return nil, fmt.Errorf("create %s handle %s: %w", h.Kind, h.ID, err)
		}
		h.Visual = v
		h.Sync()
	}

	sphere, err := host.Scene.CreatePickableVisual(core.NewSphereShape(sizes.SphereRadius, cfg.Colors.Sphere), handle.IDAuxiliarySphere)
	if err != nil {
		s.removeVisuals(host.Scene)
		return nil, fmt.Errorf("create auxiliary sphere: %w", err)
	}
	s.Sphere = sphere
	s.Sphere.SetModelMatrix(s.SphereTransform)
	s.Sphere.SetShow(false)
	return s, nil
}

func handleShape(h *handle.Handle, sizes Sizes, cfg Config) core.Shape {
	var shape core.Shape
	if h.Kind == handle.Translation {
		shape = core.NewArrowShape(sizes.ArrowLength, sizes.ShaftWidth, sizes.HeadLength, sizes.HeadWidth, h.RestColor)
	} else {
		shape = core.NewRingShape(sizes.RingRadius, cfg.RingStepDegrees, cfg.RingLineWidth, h.RestColor)
	}
	shape.Instance = h.Axis.BaseOrientation()
	return shape
}

func (s *Session) removeVisuals(scene Scene) {
	for _, h := range s.Handles {
		if h != nil && h.Visual != nil {
			scene.RemoveVisual(h.Visual)
			h.Visual = nil
		}
	}
	if s.Sphere != nil {
		scene.RemoveVisual(s.Sphere)
		s.Sphere = nil
	}
}

// Active returns the hovered or dragged handle, or nil.
func (s *Session) Active() *handle.Handle {
	if s.active < 0 {
		return nil
	}
	return s.Handles[s.active]
}

func (s *Session) State() State {
	switch {
	case s.active < 0:
		return Idle
	case s.pressed:
		return Dragging
	}
	return Hovering
}

func (s *Session) SphereShown() bool    { return s.sphereShown }
func (s *Session) RotationLocked() bool { return s.rotationLocked }

// handleIndex maps a pick id to a handle, arrows before rings.
func (s *Session) handleIndex(id string) int {
	for i, h := range s.Handles {
		if h.MatchesID(id) {
			return i
		}
	}
	return -1
}

// activate makes Handles[idx] the only selected handle. -1 clears the
// selection.
func (s *Session) activate(idx int) {
	if idx == s.active {
		return
	}
	if h := s.Active(); h != nil {
		h.Rest()
	}
	s.active = idx
	h := s.Active()
	if h != nil {
		h.Select()
	}
	s.showSphere(h != nil && h.Kind == handle.Rotation)
}

func (s *Session) restAll() {
	for _, h := range s.Handles {
		h.Rest()
	}
	s.active = -1
	s.showSphere(false)
}

func (s *Session) showSphere(show bool) {
	s.sphereShown = show
	if s.Sphere != nil {
		s.Sphere.SetShow(show)
	}
}

// translate moves the target along the unit axis of the active handle and
// carries every handle and the sphere with it.
func (s *Session) translate(unit mgl64.Vec3, length float64) {
	before := s.Target.ModelMatrix()
	d := unit.Mul(length)
	after := before.Mul4(mgl64.Translate3D(d.X(), d.Y(), d.Z()))
	s.Target.SetModelMatrix(after)

	for _, h := range s.Handles {
		h.Translate(unit, length)
	}

	diff := core.Translation(after).Sub(core.Translation(before))
	s.SphereTransform = mgl64.Translate3D(diff.X(), diff.Y(), diff.Z()).Mul4(s.SphereTransform)
	if s.Sphere != nil {
		s.Sphere.SetModelMatrix(s.SphereTransform)
	}
	s.Position = s.Position.Add(diff)
}

// rotate applies rotation to the target and every handle. The world
// directions are turned by the same angle about axis instead of being read
// back from the matrices.
func (s *Session) rotate(rotation mgl64.Mat4, axis mgl64.Vec3, angle float64) {
	for _, h := range s.Handles {
		h.RotateRigidly(rotation)
		h.Direction = geom.RotateVectorByAxisAngle(h.Direction, axis, angle)
	}
	s.Target.SetModelMatrix(s.Target.ModelMatrix().Mul4(rotation))
}
