package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-manip/common"
	"github.com/Carmen-Shannon/oxy-manip/engine/manipulator"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	near  float32
	manip manipulator.Manipulator

	eye                     mgl32.Vec3
	viewport                [2]int
	viewMatrix              mgl32.Mat4
	projectionMatrix        mgl32.Mat4
	viewProjectionMatrix    mgl32.Mat4
	inverseProjectionMatrix mgl32.Mat4
}

// Camera turns a Manipulator's look-at frame and field of view into view and projection
// matrices for a renderer. The manipulator is read once per frame via Update; the
// matrices can then be read from any goroutine.
type Camera interface {
	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// Manipulator returns the manipulator the camera follows.
	//
	// Returns:
	//   - manipulator.Manipulator: the attached manipulator or nil
	Manipulator() manipulator.Manipulator

	// SetManipulator attaches a manipulator and recomputes matrices.
	//
	// Parameters:
	//   - m: the manipulator to follow
	SetManipulator(m manipulator.Manipulator)

	// Update reads the manipulator's look-at frame and configuration and recomputes matrices.
	// Should be called once per frame. If no manipulator is attached, this method does nothing.
	Update()

	// Position returns the eye position captured by the last Update.
	//
	// Returns:
	//   - mgl32.Vec3: world-space eye position
	Position() mgl32.Vec3

	// ViewMatrix returns the current view matrix (column-major).
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current perspective projection matrix (column-major).
	// A horizontal field of view is converted to the equivalent vertical one.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// InverseProjectionMatrix returns the inverse of the projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the inverse projection matrix
	InverseProjectionMatrix() mgl32.Mat4

	// Project maps a world-space point to viewport pixel coordinates, with the origin at
	// the bottom-left corner as used by Manipulator.Raycast. Pixel (x, y) covers
	// [x, x+1) x [y, y+1).
	//
	// Parameters:
	//   - world: the point to project
	//
	// Returns:
	//   - mgl32.Vec2: pixel coordinates
	//   - bool: false if the point is behind the eye
	Project(world mgl32.Vec3) (mgl32.Vec2, bool)

	// Frustum returns the view frustum of the current view-projection matrix.
	//
	// Returns:
	//   - common.Frustum: the six inward-facing frustum planes
	Frustum() common.Frustum

	// Uniform packs the current view-projection matrix and eye position for GPU upload.
	//
	// Returns:
	//   - GPUCameraUniform: the uniform block
	Uniform() GPUCameraUniform
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera.
// A manipulator must be attached via SetManipulator or WithManipulator before matrices
// reflect a view.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                      &sync.Mutex{},
		near:                    0.1,
		viewMatrix:              mgl32.Ident4(),
		projectionMatrix:        mgl32.Ident4(),
		viewProjectionMatrix:    mgl32.Ident4(),
		inverseProjectionMatrix: mgl32.Ident4(),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) Manipulator() manipulator.Manipulator {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.manip
}

func (c *cameraImpl) SetManipulator(m manipulator.Manipulator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.manip = m
	c.updateMatrices()
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eye
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseProjectionMatrix
}

func (c *cameraImpl) Project(world mgl32.Vec3) (mgl32.Vec2, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	clip := c.viewProjectionMatrix.Mul4x1(world.Vec4(1))
	if clip.W() <= 0 {
		return mgl32.Vec2{}, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	width := float32(c.viewport[0])
	height := float32(c.viewport[1])
	return mgl32.Vec2{(ndcX + 1) * width / 2, (ndcY + 1) * height / 2}, true
}

func (c *cameraImpl) Frustum() common.Frustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.ExtractFrustumFromMatrix(c.viewProjectionMatrix)
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{
		ViewProj:       c.viewProjectionMatrix,
		CameraPosition: c.eye,
	}
}

// updateMatrices recalculates the view, projection, view-projection, and inverse projection matrices.
// It reads the look-at frame and configuration from the attached manipulator. This is a no-op
// when the manipulator is nil or the viewport is empty.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.manip == nil {
		return
	}
	cfg := c.manip.Config()
	if cfg.Viewport[0] <= 0 || cfg.Viewport[1] <= 0 {
		return
	}

	eye, target, up := c.manip.LookAt()
	aspect := float32(cfg.Viewport[0]) / float32(cfg.Viewport[1])

	c.eye = eye
	c.viewport = cfg.Viewport
	c.viewMatrix = mgl32.LookAtV(eye, target, up)
	c.projectionMatrix = mgl32.Perspective(verticalFov(cfg, aspect), aspect, c.near, cfg.FarPlane)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseProjectionMatrix = c.projectionMatrix.Inv()
}

// verticalFov returns the full vertical field of view in radians for the configured fov axis.
func verticalFov(cfg manipulator.Config, aspect float32) float32 {
	fov := mgl32.DegToRad(cfg.FovDegrees)
	if cfg.FovDirection == manipulator.FovHorizontal {
		return 2 * math32.Atan(math32.Tan(fov/2)/aspect)
	}
	return fov
}
