package raster

import (
	"image"
	"image/color"
	"math"
	"testing"

	"smartcourt/internal/camera"
	"smartcourt/internal/court"
	"smartcourt/internal/mathutil"
	"smartcourt/internal/scene"
	"smartcourt/internal/texture"
	"smartcourt/internal/trajectory"
)

func flatLights() LightConfig {
	return LightConfig{
		Sky:      [3]float64{1, 1, 1},
		Ground:   [3]float64{1, 1, 1},
		Exposure: 1,
		InvGamma: 1 / 2.2,
	}
}

func TestDepthTestKeepsNearest(t *testing.T) {
	lc := flatLights()
	near := &Face{Base: [3]float64{1, 0, 0}, Shade: [3]float64{1, 1, 1}}
	far := &Face{Base: [3]float64{0, 0, 1}, Shade: [3]float64{1, 1, 1}}
	tri := func(w float64) [3]Vertex {
		return [3]Vertex{{X: 0, Y: 0, W: w}, {X: 16, Y: 0, W: w}, {X: 0, Y: 16, W: w}}
	}

	orders := []struct {
		name  string
		faces []*Face
		ws    []float64
	}{
		{"near first", []*Face{near, far}, []float64{2, 5}},
		{"far first", []*Face{far, near}, []float64{5, 2}},
	}
	for _, tt := range orders {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFrameBuffer(16, 16)
			fb.Clear(color.NRGBA{A: 255})
			for i, f := range tt.faces {
				RasterizeTriangle(fb, tri(tt.ws[i]), f, &lc)
			}
			c := fb.At(2, 2)
			if c.R <= c.B {
				t.Errorf("pixel = %v, want the red near face", c)
			}
		})
	}
}

func TestClipNear(t *testing.T) {
	in := []clipVert{
		{P: [4]float64{0, 0, 0, -1}},
		{P: [4]float64{1, 0, 0, 3}},
		{P: [4]float64{0, 1, 0, 3}},
	}
	out := clipNear(in, 0.1, nil)
	if len(out) != 4 {
		t.Fatalf("clipped to %d vertices, want 4", len(out))
	}
	for _, v := range out {
		if v.P[3] < 0.1-1e-12 {
			t.Errorf("vertex %v behind near plane", v.P)
		}
	}
	if got := clipNear(in[:1], 0.1, nil); len(got) != 0 {
		t.Errorf("single hidden vertex produced %d", len(got))
	}
}

func TestSampleTextureClamps(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	tex.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	tex.SetNRGBA(1, 0, color.NRGBA{B: 255, A: 255})

	tests := []struct {
		name string
		u    float64
		r, b uint8
	}{
		{"left of range", -3, 255, 0},
		{"right of range", 4, 0, 255},
		{"left texel centre", 0.25, 255, 0},
		{"midway", 0.5, 128, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, b, _ := SampleTexture(tex, tt.u, 0.5)
			if r != tt.r || b != tt.b {
				t.Errorf("SampleTexture(%v) r=%d b=%d, want r=%d b=%d", tt.u, r, b, tt.r, tt.b)
			}
		})
	}
}

func TestSpriteRespectsDepth(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	fb.Clear(color.NRGBA{A: 255})
	for i := range fb.ZBuf[:8*4] {
		fb.ZBuf[i] = 1 // rows 0-3 hold geometry at w=1
	}
	DrawSprite(fb, 4, 4, 4, 0.5, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, 1)
	if c := fb.At(4, 2); c.R != 0 {
		t.Errorf("sprite drew over nearer geometry: %v", c)
	}
	if c := fb.At(4, 5); c.R == 0 {
		t.Errorf("sprite missing in front of empty depth: %v", c)
	}
}

func TestFogFactor(t *testing.T) {
	lc := NewLightConfig(scene.Lights{}, scene.Fog{Near: 90, Far: 220})
	tests := []struct{ d, want float64 }{
		{10, 0}, {90, 0}, {155, 0.5}, {220, 1}, {500, 1},
	}
	for _, tt := range tests {
		if got := lc.FogFactor(tt.d); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("FogFactor(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestRenderScene(t *testing.T) {
	c := court.Default()
	script := trajectory.DefaultScript(c)
	sc := scene.Build(scene.Options{Court: c, Script: script})
	sc.Trail.Leave(sc.Ball)
	cam := camera.New(96, 54)
	tex := texture.CourtCache(scene.CourtTexture, c, 64, 128, "")

	fb := NewFrameBuffer(96, 54)
	NewRenderer(tex).Render(fb, sc, cam)

	bg := sc.Background
	covered := 0
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if p := fb.At(x, y); p.R != bg.R || p.G != bg.G || p.B != bg.B {
				covered++
			}
		}
	}
	if covered < fb.Width*fb.Height/4 {
		t.Errorf("only %d of %d pixels drawn", covered, fb.Width*fb.Height)
	}

	// a service-box point with nothing in front of it shows the blue surface
	x, y, ok := cam.Project(mathutil.Vec3{2, 0, 4})
	if !ok {
		t.Fatal("service box behind the camera")
	}
	if p := fb.At(int(x), int(y)); p.B <= p.R {
		t.Errorf("court pixel at (%d,%d) = %v, want blue surface", int(x), int(y), p)
	}
}
