package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Frustum represents the six planes of a view frustum.
// Plane normals point inward, so the positive half-space of every plane is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustumFromMatrix extracts frustum planes from a view-projection matrix.
// The matrix should be the combined Projection * View matrix.
// Uses the Gribb/Hartmann method for plane extraction.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the column-major view-projection matrix
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj mgl32.Mat4) Frustum {
	var f Frustum
	row3 := viewProj.Row(3)

	f.Planes[FrustumLeft] = planeFromRow(row3.Add(viewProj.Row(0)))
	f.Planes[FrustumRight] = planeFromRow(row3.Sub(viewProj.Row(0)))
	f.Planes[FrustumBottom] = planeFromRow(row3.Add(viewProj.Row(1)))
	f.Planes[FrustumTop] = planeFromRow(row3.Sub(viewProj.Row(1)))
	f.Planes[FrustumNear] = planeFromRow(row3.Add(viewProj.Row(2)))
	f.Planes[FrustumFar] = planeFromRow(row3.Sub(viewProj.Row(2)))

	return f
}

// ContainsPoint reports whether p lies inside or on the frustum.
//
// Parameters:
//   - p: world-space point
//
// Returns:
//   - bool: true if p is on the positive side of all six planes
func (f *Frustum) ContainsPoint(p mgl32.Vec3) bool {
	return f.IntersectsSphere(p, 0)
}

// IntersectsSphere reports whether a sphere overlaps the frustum.
// Conservative: spheres near a frustum corner may report true while lying just outside.
//
// Parameters:
//   - center: world-space sphere center
//   - radius: sphere radius
//
// Returns:
//   - bool: false if the sphere is entirely behind any plane
func (f *Frustum) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for _, plane := range f.Planes {
		if plane.SignedDistance(center) < -radius {
			return false
		}
	}
	return true
}

// planeFromRow converts a plane equation ax + by + cz + d = 0 into a normalized Plane.
func planeFromRow(row mgl32.Vec4) Plane {
	normal := row.Vec3()
	length := normal.Len()
	if length == 0 {
		return Plane{}
	}
	return Plane{Normal: normal.Mul(1 / length), Offset: -row.W() / length}
}
