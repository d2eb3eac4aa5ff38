package court

import (
	"image/color"
	"math"
	"testing"
)

func TestDerivedDimensions(t *testing.T) {
	c := Default()
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"length", c.L(), 23.4},
		{"singles width", c.W(), 8.1},
		{"doubles width", c.DoublesW(), 10.8},
		{"service line", c.ServiceZ(), 6.3},
		{"net height", c.NetH(), 1.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestSurfaceUVEdges(t *testing.T) {
	c := Default()
	sw, sl := c.SurfaceSize()
	tests := []struct {
		name   string
		x, z   float64
		wu, wv float64
	}{
		{"centre", 0, 0, 0.5, 0.5},
		{"min corner", -sw / 2, -sl / 2, 0, 0},
		{"max corner", sw / 2, sl / 2, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := c.SurfaceUV(tt.x, tt.z)
			if math.Abs(u-tt.wu) > 1e-9 || math.Abs(v-tt.wv) > 1e-9 {
				t.Errorf("SurfaceUV(%v,%v) = (%v,%v), want (%v,%v)", tt.x, tt.z, u, v, tt.wu, tt.wv)
			}
		})
	}
}

func TestTextureLinePlacement(t *testing.T) {
	c := Default()
	img := c.Texture(DefaultTextureWidth, DefaultTextureHeight)

	at := func(x, z float64) color.NRGBA {
		px, py := c.ToPixel(x, z, DefaultTextureWidth, DefaultTextureHeight)
		return img.NRGBAAt(int(px), int(py))
	}

	hw, hl, s := c.W()/2, c.L()/2, c.ServiceZ()
	lines := []struct {
		name string
		x, z float64
	}{
		{"near baseline", hw / 2, hl},
		{"far baseline", -hw / 2, -hl},
		{"left sideline", -hw, 1.5},
		{"right sideline", hw, -1.5},
		{"near service line", -hw / 2, s},
		{"far service line", hw / 2, -s},
		{"centre service line", 0, 2},
		{"centre mark", 0, hl - MarkLength/2},
	}
	for _, tt := range lines {
		t.Run(tt.name, func(t *testing.T) {
			if got := at(tt.x, tt.z); !near(got, LineColor) {
				t.Errorf("pixel at (%v,%v) = %v, want line color", tt.x, tt.z, got)
			}
		})
	}

	surface := []struct {
		name string
		x, z float64
	}{
		{"service box centre", hw / 2, s / 2},
		{"back court", -hw / 2, (hl + s) / 2},
		{"doubles alley", (hw + c.DoublesW()/2) / 2, 0},
		{"run-off", hw / 2, hl + c.RunOff/2},
	}
	for _, tt := range surface {
		t.Run(tt.name, func(t *testing.T) {
			if got := at(tt.x, tt.z); !near(got, SurfaceColor) {
				t.Errorf("pixel at (%v,%v) = %v, want surface color", tt.x, tt.z, got)
			}
		})
	}
}

func TestLinesInsideSurface(t *testing.T) {
	c := Default()
	sw, sl := c.SurfaceSize()
	for _, ln := range c.Lines() {
		for _, p := range [][2]float64{{ln.X0, ln.Z0}, {ln.X1, ln.Z1}} {
			if math.Abs(p[0]) > sw/2 || math.Abs(p[1]) > sl/2 {
				t.Errorf("line %s endpoint %v outside surface %vx%v", ln.Name, p, sw, sl)
			}
		}
	}
}

func near(a, b color.NRGBA) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= 2 && d(a.G, b.G) <= 2 && d(a.B, b.B) <= 2
}
