// Package camera holds the virtual camera and the director that cuts
// between framings around the court.
package camera

import (
	"smartcourt/internal/mathutil"
	"smartcourt/internal/viewmatrix"
)

// Lens defaults.
const (
	DefaultFOV  = 55.0 // vertical, degrees
	DefaultNear = 0.1
	DefaultFar  = 1000.0
)

// Camera is a perspective camera looking at Target.
type Camera struct {
	Position mathutil.Vec3
	Target   mathutil.Vec3

	FOV, Near, Far float64

	Width, Height int
	Aspect        float64
	Projection    mathutil.Mat4
}

// New returns the opening shot: high over one corner looking at the net.
func New(width, height int) *Camera {
	c := &Camera{
		Position: mathutil.Vec3{12, 7, 18},
		Target:   mathutil.Vec3{0, 1, 0},
		FOV:      DefaultFOV,
		Near:     DefaultNear,
		Far:      DefaultFar,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport records the output size and recomputes aspect and
// projection. Calling it again with the same size changes nothing.
// Sizes below one pixel are raised to one.
func (c *Camera) SetViewport(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.Width, c.Height = width, height
	c.Aspect = float64(width) / float64(height)
	c.Projection = viewmatrix.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// View returns the world→view matrix.
func (c *Camera) View() mathutil.Mat4 {
	return viewmatrix.LookAt(c.Position, c.Target, viewmatrix.Up)
}

// ViewProj returns Projection × View.
func (c *Camera) ViewProj() mathutil.Mat4 {
	return mathutil.Mat4Mul(c.Projection, c.View())
}

// Project maps a world point to pixel coordinates. ok is false when the
// point is behind the near plane.
func (c *Camera) Project(p mathutil.Vec3) (x, y float64, ok bool) {
	x, y, _, ok = viewmatrix.ProjectPoint(c.ViewProj(), p, c.Width, c.Height, c.Near)
	return x, y, ok
}
