package raster

import (
	"image/color"
	"math"

	"smartcourt/internal/mathutil"
	"smartcourt/internal/scene"
)

// LightConfig holds precomputed lighting parameters in linear space.
type LightConfig struct {
	Sky, Ground [3]float64 // hemisphere colors × intensity
	SunDir      mathutil.Vec3
	Sun         [3]float64 // sun color × intensity

	Exposure float64
	InvGamma float64

	FogColor        [3]float64 // linear, post-tonemap
	FogNear, FogFar float64
}

// NewLightConfig converts scene lights and fog into shading parameters.
func NewLightConfig(l scene.Lights, f scene.Fog) LightConfig {
	sky, ground := linear(l.Sky), linear(l.Ground)
	for k := 0; k < 3; k++ {
		sky[k] *= l.Hemisphere
		ground[k] *= l.Hemisphere
	}
	return LightConfig{
		Sky:      sky,
		Ground:   ground,
		SunDir:   l.SunDir.Normalize(),
		Sun:      [3]float64{l.SunIntensity, l.SunIntensity, l.SunIntensity},
		Exposure: 1.0,
		InvGamma: 1.0 / 2.2,
		FogColor: linear(f.Color),
		FogNear:  f.Near,
		FogFar:   f.Far,
	}
}

// ComputeShade returns the per-channel light reaching a face with the
// given unit normal. Faces are lit from both sides.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) [3]float64 {
	// Lambertian (abs for double-sided)
	ndl := math.Abs(normal.Dot(lc.SunDir))

	// Hemisphere fill
	t := math.Abs(normal[1])*0.5 + 0.5
	var out [3]float64
	for k := 0; k < 3; k++ {
		out[k] = lc.Ground[k] + (lc.Sky[k]-lc.Ground[k])*t + lc.Sun[k]*ndl
	}
	return out
}

// FogFactor returns how much of the fog color replaces a fragment at
// view distance d.
func (lc *LightConfig) FogFactor(d float64) float64 {
	if lc.FogFar <= lc.FogNear {
		return 0
	}
	return mathutil.Clamp01((d - lc.FogNear) / (lc.FogFar - lc.FogNear))
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

func linear(c color.NRGBA) [3]float64 {
	return [3]float64{srgbToLinear[c.R], srgbToLinear[c.G], srgbToLinear[c.B]}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
