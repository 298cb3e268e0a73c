package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// planeEpsilon is the minimum facing factor for a ray to be considered as hitting a plane.
const planeEpsilon = 1e-6

// Plane represents a plane in 3D space as a unit normal and a signed offset along it.
// Every point p on the plane satisfies dot(Normal, p) == Offset, so Normal*Offset lies on the plane.
type Plane struct {
	Normal mgl32.Vec3
	Offset float32
}

// PlaneFromVec4 unpacks a plane equation stored as (nx, ny, nz, offset).
//
// Parameters:
//   - v: plane equation with the normal in xyz and the offset in w
//
// Returns:
//   - Plane: the unpacked plane
func PlaneFromVec4(v mgl32.Vec4) Plane {
	return Plane{Normal: v.Vec3(), Offset: v.W()}
}

// Vec4 packs the plane back into a (nx, ny, nz, offset) equation.
//
// Returns:
//   - mgl32.Vec4: the packed plane equation
func (p Plane) Vec4() mgl32.Vec4 {
	return p.Normal.Vec4(p.Offset)
}

// Point returns the point on the plane closest to the origin.
//
// Returns:
//   - mgl32.Vec3: Normal * Offset
func (p Plane) Point() mgl32.Vec3 {
	return p.Normal.Mul(p.Offset)
}

// Intersect tests a ray against the plane.
// Only rays facing the plane's front side (against the normal) can hit; rays that are
// parallel or point away by less than a small epsilon miss. Hits behind the origin miss.
//
// Parameters:
//   - origin: ray origin
//   - dir: ray direction (need not be unit length; t is measured in units of dir)
//
// Returns:
//   - float32: the ray parameter t of the hit, origin + dir*t
//   - bool: true if the ray hits the plane at t >= 0
func (p Plane) Intersect(origin, dir mgl32.Vec3) (float32, bool) {
	denom := -p.Normal.Dot(dir)
	if denom <= planeEpsilon {
		return 0, false
	}
	t := p.Point().Sub(origin).Dot(p.Normal) / -denom
	return t, t >= 0
}

// SignedDistance returns how far point lies in front of the plane along its normal.
// Negative values are behind the plane.
//
// Parameters:
//   - point: the point to test
//
// Returns:
//   - float32: dot(Normal, point) - Offset
func (p Plane) SignedDistance(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) - p.Offset
}
