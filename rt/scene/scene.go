// Package scene is an in-memory host for the gizmo: it keeps the registered
// visuals, picks them by screen point through a perspective camera, and owns
// the camera rotation switch.
package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/gekko3d/gizmo/rt/core"
)

var (
	ErrEmptyID      = errors.New("scene: visual id is empty")
	ErrDuplicateID  = errors.New("scene: visual id already registered")
	ErrInvalidShape = errors.New("scene: shape has no extent")
)

type FrameMode int

const (
	// FrameFlat places handles along world X/Y/Z.
	FrameFlat FrameMode = iota
	// FrameGlobe places handles along east/north/up of an Earth-centred world.
	FrameGlobe
)

func ParseFrameMode(s string) (FrameMode, error) {
	switch s {
	case "flat", "":
		return FrameFlat, nil
	case "globe", "enu":
		return FrameGlobe, nil
	}
	return FrameFlat, fmt.Errorf("scene: unknown frame mode %q", s)
}

// Visual is a registered shape.
type Visual struct {
	ID     uuid.UUID
	PickID string
	Shape  core.Shape
	Model  mgl64.Mat4
	Color  [4]float32
	Show   bool
}

func (v *Visual) SetModelMatrix(m mgl64.Mat4) { v.Model = m }
func (v *Visual) SetColor(c [4]float32)       { v.Color = c }
func (v *Visual) SetShow(show bool)           { v.Show = show }

// World returns the full local-to-world matrix of the shape geometry.
func (v *Visual) World() mgl64.Mat4 {
	return v.Model.Mul4(v.Shape.Instance)
}

type Scene struct {
	Camera    *core.CameraState
	FrameMode FrameMode

	// RingTolerance is the pick band around a ring as a fraction of its radius.
	RingTolerance float64

	rotationEnabled bool
	visuals         map[uuid.UUID]*Visual
	order           []uuid.UUID
}

func New(camera *core.CameraState, mode FrameMode) *Scene {
	return &Scene{
		Camera:          camera,
		FrameMode:       mode,
		RingTolerance:   0.08,
		rotationEnabled: true,
		visuals:         make(map[uuid.UUID]*Visual),
	}
}

func (s *Scene) CreatePickableVisual(shape core.Shape, id string) (core.Visual, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if !validShape(shape) {
		return nil, fmt.Errorf("%w: %s %q", ErrInvalidShape, shape.Type, id)
	}
	for _, v := range s.visuals {
		if v.PickID == id {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
	}
	if shape.Instance == (mgl64.Mat4{}) {
		shape.Instance = mgl64.Ident4()
	}

	v := &Visual{
		ID:     uuid.New(),
		PickID: id,
		Shape:  shape,
		Model:  mgl64.Ident4(),
		Color:  shape.Color,
		Show:   true,
	}
	s.visuals[v.ID] = v
	s.order = append(s.order, v.ID)
	return v, nil
}

func (s *Scene) RemoveVisual(cv core.Visual) {
	v, ok := cv.(*Visual)
	if !ok || v == nil {
		return
	}
	if _, ok := s.visuals[v.ID]; !ok {
		return
	}
	delete(s.visuals, v.ID)
	s.order = slices.DeleteFunc(s.order, func(id uuid.UUID) bool { return id == v.ID })
}

// Len returns the number of registered visuals.
func (s *Scene) Len() int {
	return len(s.visuals)
}

// Visuals returns the registered visuals in registration order.
func (s *Scene) Visuals() []*Visual {
	out := make([]*Visual, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.visuals[id])
	}
	return out
}

// Lookup returns the visual registered under a pick id.
func (s *Scene) Lookup(pickID string) (*Visual, bool) {
	for _, id := range s.order {
		if v := s.visuals[id]; v.PickID == pickID {
			return v, true
		}
	}
	return nil, false
}

func (s *Scene) SetRotationEnabled(enabled bool) {
	s.rotationEnabled = enabled
}

func (s *Scene) RotationEnabled() bool {
	return s.rotationEnabled
}

func (s *Scene) LocalFrameAt(p mgl64.Vec3) mgl64.Mat4 {
	if s.FrameMode == FrameGlobe {
		return core.EastNorthUpFrame(p)
	}
	return mgl64.Ident4()
}

func validShape(shape core.Shape) bool {
	switch shape.Type {
	case core.ShapeArrow:
		return shape.Length > 0 && shape.Width > 0
	case core.ShapeRing, core.ShapeSphere:
		return shape.Radius > 0
	}
	return false
}
