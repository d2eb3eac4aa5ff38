// Package court holds the fixed court geometry and the procedurally
// painted surface texture.
package court

// Court dimensions in court units (feet); Scale converts them to world units.
type Court struct {
	Length       float64
	Width        float64 // doubles width
	SinglesWidth float64
	ServiceLine  float64 // distance from the net to each service line
	NetHeight    float64
	Scale        float64

	// RunOff is the world-space margin of surface painted beyond each baseline.
	RunOff float64
}

// Default returns the tennis court used by the rally animation.
func Default() Court {
	return Court{
		Length:       78,
		Width:        36,
		SinglesWidth: 27,
		ServiceLine:  21,
		NetHeight:    3.5,
		Scale:        0.3,
		RunOff:       0.9,
	}
}

// L is the world length between baselines.
func (c Court) L() float64 { return c.Length * c.Scale }

// W is the world singles width; rallies are played inside it.
func (c Court) W() float64 { return c.SinglesWidth * c.Scale }

// DoublesW is the world doubles width.
func (c Court) DoublesW() float64 { return c.Width * c.Scale }

// ServiceZ is the world distance from the net to a service line.
func (c Court) ServiceZ() float64 { return c.ServiceLine * c.Scale }

// NetH is the world net height.
func (c Court) NetH() float64 { return c.NetHeight * c.Scale }

// SurfaceSize returns the world extent (width along X, length along Z) of
// the painted surface mesh and its texture.
func (c Court) SurfaceSize() (w, l float64) {
	return c.DoublesW(), c.L() + 2*c.RunOff
}

// SurfaceUV maps a world (x, z) on the surface to texture coordinates in
// [0,1]; u grows with X and v with Z.
func (c Court) SurfaceUV(x, z float64) (u, v float64) {
	sw, sl := c.SurfaceSize()
	return (x + sw/2) / sw, (z + sl/2) / sl
}
