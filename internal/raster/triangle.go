package raster

import (
	"image"
	"math"
)

// Vertex is a projected vertex: pixel position, clip w (view distance)
// and texture coordinates.
type Vertex struct {
	X, Y float64
	W    float64
	U, V float64
}

// Face holds the flat-shading inputs shared by every pixel of a triangle.
type Face struct {
	Base     [3]float64 // linear albedo, used when Tex is nil
	Tint     [3]float64 // linear multiplier applied to texels
	Shade    [3]float64
	Emissive [3]float64
	Tex      *image.NRGBA
}

// RasterizeTriangle fills one projected triangle with depth testing,
// perspective-correct texture mapping, flat lighting, ACES tone mapping
// and distance fog.
//
// This is the HOT PATH: no allocation in the pixel loop.
func RasterizeTriangle(fb *FrameBuffer, v [3]Vertex, f *Face, lc *LightConfig) {
	x0, y0 := v[0].X, v[0].Y
	x1, y1 := v[1].X, v[1].Y
	x2, y2 := v[2].X, v[2].Y
	if v[0].W <= 0 || v[1].W <= 0 || v[2].W <= 0 {
		return
	}
	iw0, iw1, iw2 := 1/v[0].W, 1/v[1].W, 1/v[2].W

	// Bounding box
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	// Precompute edge deltas
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	// u/w and v/w at each vertex
	uw0, uw1, uw2 := v[0].U*iw0, v[1].U*iw1, v[2].U*iw2
	vw0, vw1, vw2 := v[0].V*iw0, v[1].V*iw1, v[2].V*iw2

	exposure := lc.Exposure
	invGamma := lc.InvGamma
	tex := f.Tex

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			depth := w0*iw0 + w1*iw1 + w2*iw2
			zIdx := rowOff + sx
			if depth <= fb.ZBuf[zIdx] {
				continue
			}

			lr, lg, lb := f.Base[0], f.Base[1], f.Base[2]
			if tex != nil {
				u := (w0*uw0 + w1*uw1 + w2*uw2) / depth
				vv := (w0*vw0 + w1*vw1 + w2*vw2) / depth
				cr, cg, cb, ca := SampleTexture(tex, u, vv)
				// Skip transparent texels
				if ca < 8 {
					continue
				}
				lr = srgbToLinear[cr] * f.Tint[0]
				lg = srgbToLinear[cg] * f.Tint[1]
				lb = srgbToLinear[cb] * f.Tint[2]
			}
			fb.ZBuf[zIdx] = depth

			// Apply shading + ACES tone mapping
			tr := ACESTonemap((lr*f.Shade[0] + f.Emissive[0]) * exposure)
			tg := ACESTonemap((lg*f.Shade[1] + f.Emissive[1]) * exposure)
			tb := ACESTonemap((lb*f.Shade[2] + f.Emissive[2]) * exposure)

			// Linear fog on view distance
			if fog := lc.FogFactor(1 / depth); fog > 0 {
				tr += (lc.FogColor[0] - tr) * fog
				tg += (lc.FogColor[1] - tg) * fog
				tb += (lc.FogColor[2] - tb) * fog
			}

			// Linear → sRGB encode
			pxIdx := zIdx * 4
			fb.Color[pxIdx] = clamp255(math.Pow(tr, invGamma) * 255)
			fb.Color[pxIdx+1] = clamp255(math.Pow(tg, invGamma) * 255)
			fb.Color[pxIdx+2] = clamp255(math.Pow(tb, invGamma) * 255)
			fb.Color[pxIdx+3] = 255
		}
	}
}
