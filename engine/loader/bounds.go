// Package loader reads scene geometry extents so a manipulator's home view can frame a model.
package loader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-manip/common"
	"github.com/Carmen-Shannon/oxy-manip/engine/manipulator"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// ErrNoGeometry is returned when a document has no positioned mesh primitives.
var ErrNoGeometry = errors.New("no geometry")

// Bounds is an axis-aligned box in world space. The zero value is empty.
type Bounds struct {
	Min   mgl32.Vec3
	Max   mgl32.Vec3
	valid bool
}

// Empty reports whether no point has been added.
func (b Bounds) Empty() bool {
	return !b.valid
}

// Extend grows the box to contain p.
//
// Parameters:
//   - p: the point to include
func (b *Bounds) Extend(p mgl32.Vec3) {
	if !b.valid {
		b.Min, b.Max, b.valid = p, p, true
		return
	}
	for i := range 3 {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Radius returns half the box diagonal, the radius of the bounding sphere around Center.
func (b Bounds) Radius() float32 {
	return b.Max.Sub(b.Min).Len() / 2
}

// LoadBounds opens a glTF or GLB file and returns the world-space bounds of its default scene.
//
// Parameters:
//   - path: the .gltf or .glb file
//
// Returns:
//   - Bounds: the scene bounds
//   - error: error if the file cannot be read or holds no geometry
func LoadBounds(path string) (Bounds, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return Bounds{}, fmt.Errorf("failed to open model %s: %w", path, err)
	}
	b, err := DocumentBounds(doc)
	if err != nil {
		return Bounds{}, fmt.Errorf("failed to measure model %s: %w", path, err)
	}
	return b, nil
}

// DocumentBounds returns the world-space bounds of the document's default scene, or of every
// root node when the document declares no scenes. Each POSITION accessor's min/max box is
// carried through its node's world transform.
//
// Parameters:
//   - doc: the parsed document
//
// Returns:
//   - Bounds: the scene bounds
//   - error: ErrNoGeometry if nothing positioned was found
func DocumentBounds(doc *gltf.Document) (Bounds, error) {
	var b Bounds
	for _, root := range rootNodes(doc) {
		visitNode(doc, root, mgl32.Ident4(), &b, 0)
	}
	if b.Empty() {
		return Bounds{}, ErrNoGeometry
	}
	return b, nil
}

// FrameBounds returns cfg with its home view aimed at b: the home target moves to the box
// center and the home vector keeps its direction but is scaled so the bounding sphere fits the
// narrower field of view. The map extent is set to the sphere's diameter and the far plane is
// pushed out if it would clip the sphere from home.
//
// Parameters:
//   - cfg: the configuration to adjust; its fov and viewport are used
//   - b: the bounds to frame
//
// Returns:
//   - manipulator.Config: the adjusted configuration
func FrameBounds(cfg manipulator.Config, b Bounds) manipulator.Config {
	if b.Empty() {
		return cfg
	}
	cfg = cfg.WithDefaults()
	radius := max(b.Radius(), 1e-3)

	half := mgl32.DegToRad(cfg.FovDegrees) / 2
	if cfg.Viewport[0] > 0 && cfg.Viewport[1] > 0 {
		aspect := float32(cfg.Viewport[0]) / float32(cfg.Viewport[1])
		if cfg.FovDirection == manipulator.FovHorizontal && aspect > 1 {
			half = math32.Atan(math32.Tan(half) / aspect)
		} else if cfg.FovDirection == manipulator.FovVertical && aspect < 1 {
			half = math32.Atan(math32.Tan(half) * aspect)
		}
	}

	distance := radius / math32.Sin(half)
	cfg.HomeTarget = b.Center()
	cfg.HomeVector = common.SafeNormalize(cfg.HomeVector).Mul(distance)
	cfg.MapExtent = mgl32.Vec2{2 * radius, 2 * radius}
	cfg.FarPlane = max(cfg.FarPlane, distance+2*radius)
	return cfg
}

// maxNodeDepth guards against cyclic node hierarchies in malformed files.
const maxNodeDepth = 64

// rootNodes returns the nodes of the default scene, falling back to every node that is not
// some other node's child.
func rootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		scene := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			scene = *doc.Scene
		}
		return doc.Scenes[scene].Nodes
	}

	isChild := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// visitNode extends b with the geometry of node idx and its descendants.
func visitNode(doc *gltf.Document, idx int, parent mgl32.Mat4, b *Bounds, depth int) {
	if idx < 0 || idx >= len(doc.Nodes) || depth > maxNodeDepth {
		return
	}
	node := doc.Nodes[idx]
	world := parent.Mul4(localMatrix(node))

	if node.Mesh != nil && *node.Mesh < len(doc.Meshes) {
		for _, prim := range doc.Meshes[*node.Mesh].Primitives {
			acc, ok := prim.Attributes[gltf.POSITION]
			if !ok || acc >= len(doc.Accessors) {
				continue
			}
			extendAccessorBox(doc.Accessors[acc], world, b)
		}
	}
	for _, child := range node.Children {
		visitNode(doc, child, world, b, depth+1)
	}
}

// extendAccessorBox transforms the eight corners of an accessor's min/max box into b.
func extendAccessorBox(acc *gltf.Accessor, world mgl32.Mat4, b *Bounds) {
	if len(acc.Min) < 3 || len(acc.Max) < 3 {
		return
	}
	lo := mgl32.Vec3{float32(acc.Min[0]), float32(acc.Min[1]), float32(acc.Min[2])}
	hi := mgl32.Vec3{float32(acc.Max[0]), float32(acc.Max[1]), float32(acc.Max[2])}
	for corner := range 8 {
		p := lo
		for axis := range 3 {
			if corner&(1<<axis) != 0 {
				p[axis] = hi[axis]
			}
		}
		b.Extend(mgl32.TransformCoordinate(p, world))
	}
}

// localMatrix returns the node's local transform, either its explicit matrix or T * R * S.
func localMatrix(node *gltf.Node) mgl32.Mat4 {
	m := node.MatrixOrDefault()
	if m != identity64 {
		var out mgl32.Mat4
		for i, v := range m {
			out[i] = float32(v)
		}
		return out
	}

	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()
	rotation := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(rotation.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

var identity64 = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
