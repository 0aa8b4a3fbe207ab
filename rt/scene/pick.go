package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/gizmo/rt/core"
	"github.com/gekko3d/gizmo/rt/geom"
)

// PickAtScreenPoint returns the pick id of the nearest visible visual under
// the screen point p.
func (s *Scene) PickAtScreenPoint(p mgl64.Vec2) (string, bool) {
	if s.Camera == nil {
		return "", false
	}
	return s.PickRay(s.Camera.RayThroughScreenPoint(p))
}

// PickRay returns the pick id of the nearest visible visual hit by ray.
func (s *Scene) PickRay(ray geom.Ray) (string, bool) {
	best := ""
	minT := math.Inf(1)
	for _, id := range s.order {
		v := s.visuals[id]
		if !v.Show {
			continue
		}
		if t, ok := s.hit(v, ray); ok && t < minT {
			minT = t
			best = v.PickID
		}
	}
	return best, best != ""
}

// hit tests ray against v in the visual's local space. The local direction
// is left unnormalized so t stays comparable between visuals.
func (s *Scene) hit(v *Visual, ray geom.Ray) (float64, bool) {
	world := v.World()
	if math.Abs(world.Det()) < 1e-12 {
		return 0, false
	}
	inv := world.Inv()
	o := inv.Mul4x1(ray.Origin.Vec4(1)).Vec3()
	d := inv.Mul4x1(ray.Direction.Vec4(0)).Vec3()

	switch v.Shape.Type {
	case core.ShapeArrow:
		return hitArrow(v.Shape, o, d)
	case core.ShapeRing:
		return hitRing(v.Shape, o, d, s.RingTolerance)
	case core.ShapeSphere:
		return hitSphere(v.Shape.Radius, o, d)
	}
	return 0, false
}

func hitArrow(shape core.Shape, o, d mgl64.Vec3) (float64, bool) {
	half := shape.Length / 2
	shaftA := mgl64.Vec3{0, 0, -half}
	shaftB := mgl64.Vec3{0, 0, half}
	tipB := mgl64.Vec3{0, 0, half + shape.HeadLength}

	best := math.Inf(1)
	// thin shafts are hard to hit, so they get twice their width
	if t, dist := closestOnSegment(o, d, shaftA, shaftB); dist <= 2*shape.Width && t < best {
		best = t
	}
	if shape.HeadLength > 0 {
		if t, dist := closestOnSegment(o, d, shaftB, tipB); dist <= math.Max(shape.HeadWidth, shape.Width) && t < best {
			best = t
		}
	}
	return best, !math.IsInf(best, 1)
}

func hitRing(shape core.Shape, o, d mgl64.Vec3, tolerance float64) (float64, bool) {
	if math.Abs(d.Z()) < 1e-12 {
		return 0, false
	}
	t := -o.Z() / d.Z()
	if t < 0 {
		return 0, false
	}
	p := o.Add(d.Mul(t))
	r := math.Hypot(p.X(), p.Y())
	if math.Abs(r-shape.Radius) > tolerance*shape.Radius {
		return 0, false
	}
	return t, true
}

func hitSphere(radius float64, o, d mgl64.Vec3) (float64, bool) {
	a := d.Dot(d)
	b := 2 * o.Dot(d)
	c := o.Dot(o) - radius*radius
	disc := b*b - 4*a*c
	if a == 0 || disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)
	if t0 >= 0 {
		return t0, true
	}
	if t1 >= 0 {
		return t1, true
	}
	return 0, false
}

// closestPoints returns the ray parameter t, the line parameter s along
// ad and the distance between the two closest points.
func closestPoints(ro, rd, ao, ad mgl64.Vec3) (float64, float64, float64) {
	r := ro.Sub(ao)
	a := rd.Dot(rd)
	b := rd.Dot(ad)
	e := ad.Dot(ad)
	f := ad.Dot(r)

	det := a*e - b*b
	if det < 1e-12 {
		return 0, f / e, r.Sub(ad.Mul(f / e)).Len()
	}

	c := rd.Dot(r)
	t := (b*f - c*e) / det
	s := (a*f - b*c) / det

	p1 := ro.Add(rd.Mul(t))
	p2 := ao.Add(ad.Mul(s))
	return t, s, p1.Sub(p2).Len()
}

// closestOnSegment clamps the closest approach to segment a-b and to t >= 0.
func closestOnSegment(o, d, a, b mgl64.Vec3) (float64, float64) {
	_, s, _ := closestPoints(o, d, a, b.Sub(a))
	s = mgl64.Clamp(s, 0, 1)
	p := a.Add(b.Sub(a).Mul(s))
	t := math.Max(p.Sub(o).Dot(d)/d.Dot(d), 0)
	return t, o.Add(d.Mul(t)).Sub(p).Len()
}
