package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/quat"
)

// QuaternionNorm returns x*x + y*y + z*z + w*w.
func QuaternionNorm(q quat.Number) float64 {
	return q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag
}

// NormalizeQuaternion divides every component of q by its squared norm.
//
// This is not unit normalization. RotateVectorByAxisAngle pairs it with the
// true inverse, so rotated vectors do not depend on the scale of q.
func NormalizeQuaternion(q quat.Number) quat.Number {
	n := QuaternionNorm(q)
	if n == 0 {
		return q
	}
	return quat.Scale(1/n, q)
}

// QuaternionFromAxisAngle builds the rotation quaternion for angle radians
// about axis. The axis is normalized first.
func QuaternionFromAxisAngle(axis mgl64.Vec3, angle float64) quat.Number {
	a := axis.Normalize()
	s := math.Sin(angle / 2)
	return quat.Number{
		Real: math.Cos(angle / 2),
		Imag: a.X() * s,
		Jmag: a.Y() * s,
		Kmag: a.Z() * s,
	}
}

// VectorToQuaternion lifts v into a pure quaternion (w = 0).
func VectorToQuaternion(v mgl64.Vec3) quat.Number {
	return quat.Number{Imag: v.X(), Jmag: v.Y(), Kmag: v.Z()}
}

// RotateVectorByAxisAngle rotates v by angle radians about axis using q*v*q^-1.
func RotateVectorByAxisAngle(v, axis mgl64.Vec3, angle float64) mgl64.Vec3 {
	q := NormalizeQuaternion(QuaternionFromAxisAngle(axis, angle))
	r := quat.Mul(quat.Mul(q, VectorToQuaternion(v)), quat.Inv(q))
	return mgl64.Vec3{r.Imag, r.Jmag, r.Kmag}
}
