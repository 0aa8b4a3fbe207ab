package gizmo

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/gizmo/rt/core"
	"github.com/gekko3d/gizmo/rt/geom"
	"github.com/gekko3d/gizmo/rt/input"
)

var (
	ErrNoHost        = errors.New("gizmo: host needs a scene and a camera")
	ErrInvalidTarget = errors.New("gizmo: target must have a positive bounding radius")
)

// Scene registers handle geometry and picks it back by screen point.
type Scene interface {
	CreatePickableVisual(shape core.Shape, id string) (core.Visual, error)
	RemoveVisual(v core.Visual)
	PickAtScreenPoint(p mgl64.Vec2) (string, bool)
}

type Camera interface {
	CameraPosition() mgl64.Vec3
	RayThroughScreenPoint(p mgl64.Vec2) geom.Ray
}

// CameraController is switched off for the duration of a drag so the orbit
// gesture does not fight the handle.
type CameraController interface {
	SetRotationEnabled(enabled bool)
}

// FrameProvider orients new handles at a world position.
type FrameProvider interface {
	LocalFrameAt(p mgl64.Vec3) mgl64.Mat4
}

type InputSource interface {
	Subscribe(h input.Handler) (cancel func())
}

// Target is the object being manipulated.
type Target interface {
	ModelMatrix() mgl64.Mat4
	SetModelMatrix(m mgl64.Mat4)
	BoundingRadius() float64
}

// Host bundles what the controller needs from the application. Scene and
// Camera are required; the rest may be nil. Without an InputSource the
// application calls the controller's pointer methods itself.
type Host struct {
	Scene            Scene
	Camera           Camera
	CameraController CameraController
	Frames           FrameProvider
	Input            InputSource
}

func (h Host) localFrameAt(p mgl64.Vec3) mgl64.Mat4 {
	if h.Frames == nil {
		return mgl64.Ident4()
	}
	return h.Frames.LocalFrameAt(p)
}

func (h Host) setRotationEnabled(enabled bool) {
	if h.CameraController != nil {
		h.CameraController.SetRotationEnabled(enabled)
	}
}
