package core

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a position/rotation/scale triple used to build model
// matrices for scene objects.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

func NewTransform() *Transform {
	return &Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

func (t *Transform) ObjectToWorld() mgl64.Mat4 {
	// M = T * R * S
	translate := mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl64.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

// Translation returns the translation column of m.
func Translation(m mgl64.Mat4) mgl64.Vec3 {
	return m.Col(3).Vec3()
}

// WithTranslation returns the rotation part of frame placed at p.
func WithTranslation(frame mgl64.Mat4, p mgl64.Vec3) mgl64.Mat4 {
	frame.SetCol(3, mgl64.Vec4{p.X(), p.Y(), p.Z(), 1})
	return frame
}

// FrameAxes returns the first three columns of m as world directions.
func FrameAxes(m mgl64.Mat4) (x, y, z mgl64.Vec3) {
	return m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3()
}

// EastNorthUpFrame returns the orientation of the local east/north/up frame
// at p for an Earth-centred, Z-up world. Up is the normalized position, east
// is Z × up. At the poles and the origin east falls back to +X.
func EastNorthUpFrame(p mgl64.Vec3) mgl64.Mat4 {
	up := mgl64.Vec3{0, 0, 1}
	if p.Len() > 1e-12 {
		up = p.Normalize()
	}
	east := mgl64.Vec3{0, 0, 1}.Cross(up)
	if east.Len() < 1e-12 {
		east = mgl64.Vec3{1, 0, 0}
	}
	east = east.Normalize()
	north := up.Cross(east).Normalize()

	return mgl64.Mat4{
		east.X(), east.Y(), east.Z(), 0,
		north.X(), north.Y(), north.Z(), 0,
		up.X(), up.Y(), up.Z(), 0,
		0, 0, 0, 1,
	}
}
