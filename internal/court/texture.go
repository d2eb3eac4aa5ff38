package court

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

var (
	// SurfaceColor is the hard-court paint.
	SurfaceColor = color.NRGBA{R: 0x19, G: 0xc8, B: 0xf4, A: 0xff}
	// LineColor is the painted line white.
	LineColor = color.NRGBA{R: 0xf8, G: 0xfb, B: 0xff, A: 0xff}
)

// DefaultTextureSize is the fixed raster resolution of the surface texture.
const (
	DefaultTextureWidth  = 512
	DefaultTextureHeight = 1024
)

// ToPixel maps a world (x, z) to continuous pixel coordinates on a
// texture of the given size. It is the same mapping the surface mesh UVs use.
func (c Court) ToPixel(x, z float64, w, h int) (px, py float64) {
	u, v := c.SurfaceUV(x, z)
	return u * float64(w), v * float64(h)
}

// Texture rasterizes the court lines onto a w×h canvas. Lines use square
// caps: each stroke extends half its width past both endpoints.
func (c Court) Texture(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(SurfaceColor), image.Point{}, draw.Src)

	src := image.NewUniform(LineColor)
	for _, ln := range c.Lines() {
		r := vector.NewRasterizer(w, h)
		c.strokeLine(r, ln, w, h)
		r.Draw(img, img.Bounds(), src, image.Point{})
	}
	return img
}

// strokeLine adds the square-capped quad of ln to the rasterizer path.
func (c Court) strokeLine(r *vector.Rasterizer, ln Line, w, h int) {
	dx, dz := ln.X1-ln.X0, ln.Z1-ln.Z0
	l := math.Hypot(dx, dz)
	if l == 0 {
		return
	}
	ux, uz := dx/l, dz/l
	hw := ln.Width / 2
	// along-axis cap extension and perpendicular half width
	ax, az := ux*hw, uz*hw
	nx, nz := -uz*hw, ux*hw

	corners := [4][2]float64{
		{ln.X0 - ax + nx, ln.Z0 - az + nz},
		{ln.X1 + ax + nx, ln.Z1 + az + nz},
		{ln.X1 + ax - nx, ln.Z1 + az - nz},
		{ln.X0 - ax - nx, ln.Z0 - az - nz},
	}
	for i, p := range corners {
		px, py := c.ToPixel(p[0], p[1], w, h)
		if i == 0 {
			r.MoveTo(float32(px), float32(py))
		} else {
			r.LineTo(float32(px), float32(py))
		}
	}
	r.ClosePath()
}
