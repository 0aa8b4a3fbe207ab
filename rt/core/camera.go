package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/gizmo/rt/geom"
)

// CameraState is a Z-up perspective camera looking along yaw/pitch.
// Screen coordinates have their origin at the top-left corner.
type CameraState struct {
	Position mgl64.Vec3
	Yaw      float64
	Pitch    float64
	FovY     float64 // degrees
	Near     float64
	Far      float64
	Width    int
	Height   int

	Sensitivity float64
}

func NewCameraState(width, height int) *CameraState {
	return &CameraState{
		Position:    mgl64.Vec3{0, -20, 2},
		Yaw:         0,
		Pitch:       0,
		FovY:        60,
		Near:        0.1,
		Far:         1e7,
		Width:       width,
		Height:      height,
		Sensitivity: 0.003,
	}
}

func (c *CameraState) GetForward() mgl64.Vec3 {
	// Z-up: yaw 0 looks down +Y, pitch lifts toward +Z
	return mgl64.Vec3{
		math.Cos(c.Pitch) * math.Sin(c.Yaw),
		math.Cos(c.Pitch) * math.Cos(c.Yaw),
		math.Sin(c.Pitch),
	}
}

func (c *CameraState) GetRight() mgl64.Vec3 {
	return mgl64.Vec3{
		math.Cos(c.Yaw),
		-math.Sin(c.Yaw),
		0,
	}
}

func (c *CameraState) GetViewMatrix() mgl64.Mat4 {
	eye := c.Position
	target := eye.Add(c.GetForward())
	up := mgl64.Vec3{0, 0, 1}
	return mgl64.LookAtV(eye, target, up)
}

func (c *CameraState) GetProjectionMatrix() mgl64.Mat4 {
	aspect := 1.0
	if c.Height > 0 {
		aspect = float64(c.Width) / float64(c.Height)
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// LookAt points the camera at target.
func (c *CameraState) LookAt(target mgl64.Vec3) {
	d := target.Sub(c.Position)
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()
	c.Pitch = math.Asin(mgl64.Clamp(d.Z(), -1, 1))
	c.Yaw = math.Atan2(d.X(), d.Y())
}

// Orbit rotates the camera around pivot by screen-space deltas in pixels.
func (c *CameraState) Orbit(pivot mgl64.Vec3, dx, dy float64) {
	offset := c.Position.Sub(pivot)
	offset = mgl64.HomogRotate3DZ(-dx * c.Sensitivity).Mul4x1(offset.Vec4(0)).Vec3()
	right := c.GetRight()
	offset = mgl64.HomogRotate3D(-dy*c.Sensitivity, right).Mul4x1(offset.Vec4(0)).Vec3()
	c.Position = pivot.Add(offset)
	c.LookAt(pivot)
}

func (c *CameraState) CameraPosition() mgl64.Vec3 {
	return c.Position
}

// RayThroughScreenPoint returns the world-space pick ray through p.
func (c *CameraState) RayThroughScreenPoint(p mgl64.Vec2) geom.Ray {
	view := c.GetViewMatrix()
	proj := c.GetProjectionMatrix()
	win := mgl64.Vec3{p.X(), float64(c.Height) - p.Y(), 0}
	near, err := mgl64.UnProject(win, view, proj, 0, 0, c.Width, c.Height)
	if err != nil {
		return geom.Ray{Origin: c.Position, Direction: c.GetForward()}
	}
	return geom.Ray{Origin: c.Position, Direction: near.Sub(c.Position).Normalize()}
}

// ScreenPoint projects a world position to screen coordinates. ok is false
// for points behind the camera.
func (c *CameraState) ScreenPoint(world mgl64.Vec3) (p mgl64.Vec2, ok bool) {
	if world.Sub(c.Position).Dot(c.GetForward()) <= 0 {
		return mgl64.Vec2{}, false
	}
	win := mgl64.Project(world, c.GetViewMatrix(), c.GetProjectionMatrix(), 0, 0, c.Width, c.Height)
	return mgl64.Vec2{win.X(), float64(c.Height) - win.Y()}, true
}
