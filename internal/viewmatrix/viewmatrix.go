package viewmatrix

import (
	"math"

	"smartcourt/internal/mathutil"
)

// Up is the world up axis.
var Up = mathutil.Vec3{0, 1, 0}

// LookAt builds a right-handed view matrix placing eye at the origin and
// looking down -Z towards target.
func LookAt(eye, target, up mathutil.Vec3) mathutil.Mat4 {
	f := target.Sub(eye).Normalize()
	if f.Len() == 0 {
		f = mathutil.Vec3{0, 0, -1}
	}
	s := f.Cross(up).Normalize()
	if s.Len() == 0 {
		// Looking straight along up: pick any perpendicular side axis.
		s = f.Cross(mathutil.Vec3{0, 0, -1}).Normalize()
	}
	u := s.Cross(f)

	return mathutil.Mat4{
		s[0], s[1], s[2], -s.Dot(eye),
		u[0], u[1], u[2], -u.Dot(eye),
		-f[0], -f[1], -f[2], f.Dot(eye),
		0, 0, 0, 1,
	}
}

// Perspective builds an OpenGL-style projection matrix. fovY in degrees.
// Clip w equals the view-space distance in front of the camera.
func Perspective(fovY, aspect, near, far float64) mathutil.Mat4 {
	f := 1.0 / math.Tan(mathutil.Deg2Rad(fovY)/2)
	if aspect <= 0 {
		aspect = 1
	}
	nf := 1.0 / (near - far)
	return mathutil.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, 2 * far * near * nf,
		0, 0, -1, 0,
	}
}

// Viewport maps normalized device coordinates to pixel coordinates
// (origin top-left, y down).
func Viewport(ndcX, ndcY float64, width, height int) (float64, float64) {
	return (ndcX + 1) * 0.5 * float64(width), (1 - ndcY) * 0.5 * float64(height)
}

// ProjectPoint transforms a world point through viewProj and returns pixel
// coordinates plus clip w. ok is false for points at or behind the near plane.
func ProjectPoint(viewProj mathutil.Mat4, p mathutil.Vec3, width, height int, near float64) (x, y, w float64, ok bool) {
	c := viewProj.MulVec4(p)
	if c[3] < near {
		return 0, 0, c[3], false
	}
	x, y = Viewport(c[0]/c[3], c[1]/c[3], width, height)
	return x, y, c[3], true
}
