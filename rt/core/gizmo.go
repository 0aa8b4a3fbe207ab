package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type ShapeType int

const (
	ShapeArrow  ShapeType = iota // shaft + cone head along local +Z
	ShapeRing                    // closed polyline in the local XY plane
	ShapeSphere                  // translucent sphere centred on the local origin
)

func (t ShapeType) String() string {
	switch t {
	case ShapeArrow:
		return "arrow"
	case ShapeRing:
		return "ring"
	case ShapeSphere:
		return "sphere"
	}
	return "unknown"
}

// Shape describes a gizmo visual for the host renderer.
// Tessellation is left to the host; Points is the only pre-built geometry.
type Shape struct {
	Type  ShapeType
	Color [4]float32

	// Instance is the per-geometry orientation applied before the model
	// matrix (world = model * instance).
	Instance mgl64.Mat4

	// Arrow: shaft of Length centred on the origin, head of HeadLength
	// starting where the shaft ends.
	Length     float64
	Width      float64
	HeadLength float64
	HeadWidth  float64

	// Ring
	Points    []mgl64.Vec3
	LineWidth float64

	// Ring/Sphere
	Radius      float64
	Translucent bool
}

// Visual is the host-side handle of a registered Shape.
type Visual interface {
	SetModelMatrix(m mgl64.Mat4)
	SetColor(c [4]float32)
	SetShow(show bool)
}

func NewArrowShape(length, width, headLength, headWidth float64, color [4]float32) Shape {
	return Shape{
		Type:       ShapeArrow,
		Color:      color,
		Instance:   mgl64.Ident4(),
		Length:     length,
		Width:      width,
		HeadLength: headLength,
		HeadWidth:  headWidth,
	}
}

func NewRingShape(radius, stepDeg, lineWidth float64, color [4]float32) Shape {
	return Shape{
		Type:      ShapeRing,
		Color:     color,
		Instance:  mgl64.Ident4(),
		Points:    RingPoints(radius, stepDeg),
		LineWidth: lineWidth,
		Radius:    radius,
	}
}

func NewSphereShape(radius float64, color [4]float32) Shape {
	return Shape{
		Type:        ShapeSphere,
		Color:       color,
		Instance:    mgl64.Ident4(),
		Radius:      radius,
		Translucent: true,
	}
}

// HeadOffset is the distance from the origin to the base of the arrow head.
func (s Shape) HeadOffset() float64 {
	return s.Length / 2
}

// RingPoints samples a circle in the XY plane from 0 to 360 degrees
// inclusive, so the first and last points coincide.
func RingPoints(radius, stepDeg float64) []mgl64.Vec3 {
	if stepDeg <= 0 {
		stepDeg = 3
	}
	n := int(math.Floor(360/stepDeg)) + 1
	points := make([]mgl64.Vec3, 0, n)
	for i := 0; i < n; i++ {
		rad := mgl64.DegToRad(float64(i) * stepDeg)
		points = append(points, mgl64.Vec3{radius * math.Cos(rad), radius * math.Sin(rad), 0})
	}
	return points
}
