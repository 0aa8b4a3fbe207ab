package core

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WGS84 ellipsoid, metres.
const (
	WGS84SemiMajor  = 6378137.0
	WGS84Flattening = 1 / 298.257223563
)

var wgs84E2 = WGS84Flattening * (2 - WGS84Flattening)

// Cartographic is a geodetic position in degrees and metres.
type Cartographic struct {
	Longitude float64
	Latitude  float64
	Height    float64
}

func (c Cartographic) String() string {
	return fmt.Sprintf("%.8f %.8f %.3f", c.Longitude, c.Latitude, c.Height)
}

// CartographicFromCartesian converts an Earth-centred position. ok is false
// near the centre of the Earth where latitude is undefined.
func CartographicFromCartesian(p mgl64.Vec3) (Cartographic, bool) {
	if p.Len() < 1 {
		return Cartographic{}, false
	}
	x, y, z := p.X(), p.Y(), p.Z()
	lon := math.Atan2(y, x)
	r := math.Hypot(x, y)

	if r < 1e-9 {
		b := WGS84SemiMajor * (1 - WGS84Flattening)
		lat := math.Copysign(math.Pi/2, z)
		return Cartographic{Longitude: mgl64.RadToDeg(lon), Latitude: mgl64.RadToDeg(lat), Height: math.Abs(z) - b}, true
	}

	lat := math.Atan2(z, r*(1-wgs84E2))
	var h float64
	for i := 0; i < 8; i++ {
		sin := math.Sin(lat)
		n := WGS84SemiMajor / math.Sqrt(1-wgs84E2*sin*sin)
		h = r/math.Cos(lat) - n
		lat = math.Atan2(z, r*(1-wgs84E2*n/(n+h)))
	}
	return Cartographic{Longitude: mgl64.RadToDeg(lon), Latitude: mgl64.RadToDeg(lat), Height: h}, true
}

// CartesianFromCartographic is the inverse of CartographicFromCartesian.
func CartesianFromCartographic(c Cartographic) mgl64.Vec3 {
	lat := mgl64.DegToRad(c.Latitude)
	lon := mgl64.DegToRad(c.Longitude)
	sin := math.Sin(lat)
	n := WGS84SemiMajor / math.Sqrt(1-wgs84E2*sin*sin)
	return mgl64.Vec3{
		(n + c.Height) * math.Cos(lat) * math.Cos(lon),
		(n + c.Height) * math.Cos(lat) * math.Sin(lon),
		(n*(1-wgs84E2) + c.Height) * sin,
	}
}
