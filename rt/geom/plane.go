package geom

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the smallest |normal·direction| accepted before a ray is
// treated as parallel to a plane.
const Epsilon = 1e-6

var (
	// ErrDegenerateRay is returned when a ray runs (nearly) parallel to the
	// constraint plane, or the plane itself cannot be built.
	ErrDegenerateRay = errors.New("geom: ray is parallel to the constraint plane")

	// ErrMissingPickPoint is the panic value raised when a plane
	// intersection is requested without a point on the plane.
	ErrMissingPickPoint = errors.New("geom: plane intersection without a reference point")
)

// Ray is a half line starting at Origin.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns Origin + Direction*t.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ProjectOntoPlane removes the normal component from v.
// normal must not be the zero vector.
func ProjectOntoPlane(v, normal mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(normal.Mul(v.Dot(normal) / normal.Dot(normal)))
}

// IntersectRayWithPlane solves normal·(origin + t*dir) = normal·point.
// A nil point is a caller bug and panics with ErrMissingPickPoint.
func IntersectRayWithPlane(ray Ray, normal mgl64.Vec3, point *mgl64.Vec3) (mgl64.Vec3, error) {
	if point == nil {
		panic(ErrMissingPickPoint)
	}
	denom := normal.Dot(ray.Direction)
	if math.Abs(denom) < Epsilon {
		return mgl64.Vec3{}, ErrDegenerateRay
	}
	t := (normal.Dot(*point) - normal.Dot(ray.Origin)) / denom
	return ray.At(t), nil
}

// PlanePositionForTranslation intersects ray with the plane through target
// that contains axis and faces the camera as much as the axis allows.
//
// The returned point is absolute; translation drags only use the difference
// of two such points.
func PlanePositionForTranslation(target, camera mgl64.Vec3, ray Ray, axis mgl64.Vec3) (mgl64.Vec3, error) {
	facing := ProjectOntoPlane(camera.Sub(target), axis)
	if facing.Len() < Epsilon {
		// camera sits on the axis line
		return mgl64.Vec3{}, ErrDegenerateRay
	}
	return IntersectRayWithPlane(ray, facing.Normalize(), &target)
}

// PlanePositionForRotation intersects ray with the ring plane (normal axis,
// through target) and returns the hit relative to target.
func PlanePositionForRotation(target mgl64.Vec3, ray Ray, axis mgl64.Vec3) (mgl64.Vec3, error) {
	p, err := IntersectRayWithPlane(ray, axis, &target)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return p.Sub(target), nil
}

// AngleBetween returns the unsigned angle in radians between a and b.
// Zero vectors yield 0.
func AngleBetween(a, b mgl64.Vec3) float64 {
	return math.Atan2(a.Cross(b).Len(), a.Dot(b))
}

// SignedRingAngle returns the rotation from start to end about axis.
// The sign is negative when start×end points away from axis by more than
// thresholdDeg degrees.
func SignedRingAngle(start, end, axis mgl64.Vec3, thresholdDeg float64) float64 {
	angle := AngleBetween(end, start)
	if mgl64.RadToDeg(AngleBetween(start.Cross(end), axis)) > thresholdDeg {
		angle = -angle
	}
	return angle
}
