package mesh

import (
	"image/color"

	"smartcourt/internal/mathutil"
)

// Material describes how a mesh is shaded. Colors are sRGB.
type Material struct {
	Color    color.NRGBA
	Emissive color.NRGBA
	Texture  string // texture name resolved at render time; "" = flat color
}

// Mesh holds triangle geometry in its own local space.
type Mesh struct {
	Verts    []mathutil.Vec3
	UVs      [][2]float64 // parallel to Verts; nil when untextured
	Tris     [][3]int
	Material Material
}

// Hex converts 0xRRGGBB to an opaque color.
func Hex(rgb uint32) color.NRGBA {
	return color.NRGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 255}
}

// WithMaterial returns m after setting its material, for construction chains.
func (m *Mesh) WithMaterial(mat Material) *Mesh {
	m.Material = mat
	return m
}

// Bounds returns the axis-aligned extent of the local vertices.
func (m *Mesh) Bounds() (min, max mathutil.Vec3) {
	if len(m.Verts) == 0 {
		return
	}
	min, max = m.Verts[0], m.Verts[0]
	for _, v := range m.Verts[1:] {
		for k := 0; k < 3; k++ {
			if v[k] < min[k] {
				min[k] = v[k]
			}
			if v[k] > max[k] {
				max[k] = v[k]
			}
		}
	}
	return min, max
}
