package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/gizmo/rt/core"
)

// Object is a plain manipulable scene object: a model matrix and a bounding
// radius.
type Object struct {
	Name   string
	Model  mgl64.Mat4
	Radius float64
}

func NewObject(name string, position mgl64.Vec3, radius float64) *Object {
	return &Object{
		Name:   name,
		Model:  mgl64.Translate3D(position.X(), position.Y(), position.Z()),
		Radius: radius,
	}
}

// NewObjectFromTransform builds an object from a position/rotation/scale
// triple.
func NewObjectFromTransform(name string, t *core.Transform, radius float64) *Object {
	return &Object{Name: name, Model: t.ObjectToWorld(), Radius: radius}
}

func (o *Object) ModelMatrix() mgl64.Mat4     { return o.Model }
func (o *Object) SetModelMatrix(m mgl64.Mat4) { o.Model = m }
func (o *Object) BoundingRadius() float64     { return o.Radius }

func (o *Object) Position() mgl64.Vec3 {
	return core.Translation(o.Model)
}
