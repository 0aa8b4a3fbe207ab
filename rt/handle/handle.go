// Package handle models the draggable parts of a transform gizmo: three
// translation arrows and three rotation rings, one per local axis.
//
// Arrows and rings share one Handle type. Only the drag response differs,
// and that lives in the controller.
package handle

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/gizmo/rt/core"
)

type Kind int

const (
	Translation Kind = iota
	Rotation
)

func (k Kind) String() string {
	if k == Rotation {
		return "rotation"
	}
	return "translation"
}

type Axis int

const (
	X Axis = iota
	Y
	Z
)

// Axes in hit-test priority order.
var Axes = [3]Axis{X, Y, Z}

var units = [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

var rotations = [3]func(angle float64) mgl64.Mat4{
	mgl64.HomogRotate3DX,
	mgl64.HomogRotate3DY,
	mgl64.HomogRotate3DZ,
}

func (a Axis) String() string {
	return [3]string{"X", "Y", "Z"}[a]
}

// Unit returns the local unit vector of the axis.
func (a Axis) Unit() mgl64.Vec3 {
	return units[a]
}

// Rotation returns the local rotation of angle radians about the axis.
func (a Axis) Rotation(angle float64) mgl64.Mat4 {
	return rotations[a](angle)
}

// BaseOrientation turns geometry built along local +Z (arrows) or around
// it (rings) onto the axis.
func (a Axis) BaseOrientation() mgl64.Mat4 {
	switch a {
	case X:
		return mgl64.HomogRotate3DY(math.Pi / 2)
	case Y:
		return mgl64.HomogRotate3DX(-math.Pi / 2)
	}
	return mgl64.Ident4()
}

// Pick ids registered with the host scene.
const (
	IDAxisX           = "axisX"
	IDAxisY           = "axisY"
	IDAxisZ           = "axisZ"
	IDRingX           = "axisSphereX"
	IDRingY           = "axisSphereY"
	IDRingZ           = "axisSphereZ"
	IDAuxiliarySphere = "auxiliaryBall"
)

var ids = [2][3]string{
	{IDAxisX, IDAxisY, IDAxisZ},
	{IDRingX, IDRingY, IDRingZ},
}

// ID returns the pick id of the handle of kind on axis.
func ID(kind Kind, axis Axis) string {
	return ids[kind][axis]
}

// Handle is one arrow or ring. Transform is the model matrix pushed to the
// visual; Direction is the world direction of the handle's axis.
type Handle struct {
	Kind      Kind
	Axis      Axis
	ID        string
	Direction mgl64.Vec3
	Unit      mgl64.Vec3

	Color          [4]float32
	RestColor      [4]float32
	HighlightColor [4]float32
	Selected       bool

	// Angle is accumulated ring rotation in degrees, [0, 360).
	Angle float64

	Transform mgl64.Mat4
	Visual    core.Visual
}

func New(kind Kind, axis Axis, transform mgl64.Mat4, direction mgl64.Vec3, rest, highlight [4]float32) *Handle {
	return &Handle{
		Kind:           kind,
		Axis:           axis,
		ID:             ID(kind, axis),
		Direction:      direction,
		Unit:           axis.Unit(),
		Color:          rest,
		RestColor:      rest,
		HighlightColor: highlight,
		Transform:      transform,
	}
}

// Translate moves the handle by unit*length in its own frame.
func (h *Handle) Translate(unit mgl64.Vec3, length float64) {
	d := unit.Mul(length)
	h.Transform = h.Transform.Mul4(mgl64.Translate3D(d.X(), d.Y(), d.Z()))
	h.Sync()
}

// RotateRigidly applies rotation in the handle's own frame.
func (h *Handle) RotateRigidly(rotation mgl64.Mat4) {
	h.Transform = h.Transform.Mul4(rotation)
	h.Sync()
}

func (h *Handle) Select() {
	h.Selected = true
	h.setColor(h.HighlightColor)
}

func (h *Handle) Rest() {
	h.Selected = false
	h.setColor(h.RestColor)
}

// MatchesID reports whether id was produced by this handle's visual. Hosts
// that pick per geometry part report "<id>-line" and "<id>-arrow".
func (h *Handle) MatchesID(id string) bool {
	return slices.Contains(h.PickIDs(), id)
}

func (h *Handle) PickIDs() []string {
	if h.Kind == Translation {
		return []string{h.ID, h.ID + "-line", h.ID + "-arrow"}
	}
	return []string{h.ID}
}

// AccumulateAngle adds deltaDeg to Angle and wraps into [0, 360).
func (h *Handle) AccumulateAngle(deltaDeg float64) {
	a := math.Mod(h.Angle+deltaDeg, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	h.Angle = a
}

// Sync pushes Transform to the visual.
func (h *Handle) Sync() {
	if h.Visual != nil {
		h.Visual.SetModelMatrix(h.Transform)
	}
}

func (h *Handle) setColor(c [4]float32) {
	h.Color = c
	if h.Visual != nil {
		h.Visual.SetColor(c)
	}
}
