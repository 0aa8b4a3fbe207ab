package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/quat"
)

const tol = 1e-9

func randomUnit(r *rand.Rand) mgl64.Vec3 {
	for {
		v := mgl64.Vec3{r.Float64()*2 - 1, r.Float64()*2 - 1, r.Float64()*2 - 1}
		if v.Len() > 0.1 {
			return v.Normalize()
		}
	}
}

func TestNormalizeQuaternionDividesBySquaredNorm(t *testing.T) {
	q := NormalizeQuaternion(quat.Number{Real: 2})
	assert.InDelta(t, 0.5, q.Real, tol)

	q = NormalizeQuaternion(quat.Number{Real: 1, Imag: 1, Jmag: 1, Kmag: 1})
	assert.InDelta(t, 0.25, q.Real, tol)
	assert.InDelta(t, 0.25, q.Kmag, tol)

	zero := NormalizeQuaternion(quat.Number{})
	assert.Equal(t, quat.Number{}, zero)
}

func TestRotateVectorByZeroAngleIsIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		axis := randomUnit(r)
		v := ProjectOntoPlane(randomUnit(r), axis).Normalize()
		got := RotateVectorByAxisAngle(v, axis, 0)
		assert.True(t, got.ApproxEqualThreshold(v, tol), "axis %v v %v got %v", axis, v, got)
	}
}

func TestRotateVectorPreservesMagnitude(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		axis := randomUnit(r)
		v := randomUnit(r).Mul(r.Float64() * 10)
		angle := (r.Float64()*2 - 1) * 2 * math.Pi
		got := RotateVectorByAxisAngle(v, axis, angle)
		assert.InDelta(t, v.Len(), got.Len(), 1e-9)
	}
}

func TestRotateVectorQuarterTurn(t *testing.T) {
	got := RotateVectorByAxisAngle(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1}, math.Pi/2)
	assert.True(t, got.ApproxEqualThreshold(mgl64.Vec3{0, 1, 0}, tol), "got %v", got)

	// axis does not need to be unit length
	got = RotateVectorByAxisAngle(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{3, 0, 0}, math.Pi/2)
	assert.True(t, got.ApproxEqualThreshold(mgl64.Vec3{0, 0, 1}, tol), "got %v", got)
}

func TestRotateVectorMatchesMatrixRotation(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		axis := randomUnit(r)
		v := randomUnit(r)
		angle := r.Float64() * math.Pi
		want := mgl64.HomogRotate3D(angle, axis).Mul4x1(v.Vec4(0)).Vec3()
		got := RotateVectorByAxisAngle(v, axis, angle)
		assert.True(t, got.ApproxEqualThreshold(want, 1e-9), "want %v got %v", want, got)
	}
}

func TestProjectOntoPlaneIsOrthogonal(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		n := randomUnit(r).Mul(0.5 + r.Float64()*4)
		v := randomUnit(r).Mul(r.Float64() * 20)
		assert.InDelta(t, 0, ProjectOntoPlane(v, n).Dot(n), 1e-9)
	}
}

func TestIntersectRayWithPlaneRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	for i := 0; i < 100; i++ {
		normal := randomUnit(r)
		planePoint := randomUnit(r).Mul(5)
		// any point on the plane
		p := planePoint.Add(ProjectOntoPlane(randomUnit(r).Mul(3), normal))
		origin := p.Add(normal.Mul(4)).Add(ProjectOntoPlane(randomUnit(r), normal))
		ray := Ray{Origin: origin, Direction: p.Sub(origin).Normalize()}

		got, err := IntersectRayWithPlane(ray, normal, &planePoint)
		require.NoError(t, err)
		assert.True(t, got.ApproxEqualThreshold(p, 1e-9), "want %v got %v", p, got)
	}
}

func TestIntersectRayWithPlaneParallel(t *testing.T) {
	point := mgl64.Vec3{0, 0, 0}
	ray := Ray{Origin: mgl64.Vec3{0, 0, 1}, Direction: mgl64.Vec3{1, 0, 0}}
	_, err := IntersectRayWithPlane(ray, mgl64.Vec3{0, 0, 1}, &point)
	assert.ErrorIs(t, err, ErrDegenerateRay)
}

func TestIntersectRayWithPlaneMissingPoint(t *testing.T) {
	ray := Ray{Origin: mgl64.Vec3{0, 0, 1}, Direction: mgl64.Vec3{0, 0, -1}}
	require.PanicsWithValue(t, ErrMissingPickPoint, func() {
		_, _ = IntersectRayWithPlane(ray, mgl64.Vec3{0, 0, 1}, nil)
	})
}

func TestPlanePositionForTranslation(t *testing.T) {
	target := mgl64.Vec3{0, 0, 0}
	camera := mgl64.Vec3{0, -10, 5}
	ray := Ray{Origin: camera, Direction: mgl64.Vec3{3, 10, -5}.Normalize()}

	got, err := PlanePositionForTranslation(target, camera, ray, mgl64.Vec3{1, 0, 0})
	require.NoError(t, err)
	assert.True(t, got.ApproxEqualThreshold(mgl64.Vec3{3, 0, 0}, 1e-9), "got %v", got)
}

func TestPlanePositionForTranslationCameraOnAxis(t *testing.T) {
	camera := mgl64.Vec3{10, 0, 0}
	ray := Ray{Origin: camera, Direction: mgl64.Vec3{-1, 0, 0}}
	_, err := PlanePositionForTranslation(mgl64.Vec3{}, camera, ray, mgl64.Vec3{1, 0, 0})
	assert.ErrorIs(t, err, ErrDegenerateRay)
}

func TestPlanePositionForRotation(t *testing.T) {
	target := mgl64.Vec3{1, 2, 3}
	ray := Ray{Origin: mgl64.Vec3{3, 2, 8}, Direction: mgl64.Vec3{0, 0, -1}}

	got, err := PlanePositionForRotation(target, ray, mgl64.Vec3{0, 0, 1})
	require.NoError(t, err)
	assert.True(t, got.ApproxEqualThreshold(mgl64.Vec3{2, 0, 0}, 1e-9), "got %v", got)

	edgeOn := Ray{Origin: mgl64.Vec3{3, 2, 8}, Direction: mgl64.Vec3{1, 0, 0}}
	_, err = PlanePositionForRotation(target, edgeOn, mgl64.Vec3{0, 0, 1})
	assert.ErrorIs(t, err, ErrDegenerateRay)
}

func TestSignedRingAngle(t *testing.T) {
	x := mgl64.Vec3{1, 0, 0}
	y := mgl64.Vec3{0, 1, 0}
	z := mgl64.Vec3{0, 0, 1}

	assert.InDelta(t, math.Pi/2, SignedRingAngle(x, y, z, 1), tol)
	assert.InDelta(t, -math.Pi/2, SignedRingAngle(y, x, z, 1), tol)
	assert.InDelta(t, 0, SignedRingAngle(x, x, z, 1), tol)
}

func TestAngleBetween(t *testing.T) {
	assert.InDelta(t, math.Pi, AngleBetween(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{-2, 0, 0}), tol)
	assert.InDelta(t, math.Pi/4, AngleBetween(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 1, 0}), tol)
	assert.Equal(t, 0.0, AngleBetween(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}))
}
