package camera

import (
	"math"
	"testing"

	"smartcourt/internal/court"
)

func TestSetViewportIdempotent(t *testing.T) {
	sizes := []struct{ w, h int }{{1280, 720}, {640, 480}, {1, 1}, {0, 300}}
	for _, sz := range sizes {
		once := New(100, 100)
		once.SetViewport(sz.w, sz.h)

		twice := New(100, 100)
		twice.SetViewport(sz.w, sz.h)
		twice.SetViewport(sz.w, sz.h)

		if once.Projection != twice.Projection || once.Aspect != twice.Aspect ||
			once.Width != twice.Width || once.Height != twice.Height {
			t.Errorf("%dx%d: repeated SetViewport changed the projection", sz.w, sz.h)
		}
	}
}

func TestSetViewportUpdatesAspect(t *testing.T) {
	c := New(800, 600)
	before := c.Projection
	c.SetViewport(1600, 600)
	if c.Aspect != 1600.0/600 {
		t.Errorf("aspect = %v", c.Aspect)
	}
	if c.Projection == before {
		t.Error("projection unchanged after resize")
	}
}

func TestProjectFocusToCentre(t *testing.T) {
	c := New(640, 480)
	x, y, ok := c.Project(c.Target)
	if !ok || math.Abs(x-320) > 1e-6 || math.Abs(y-240) > 1e-6 {
		t.Errorf("focus projects to (%v,%v) ok=%v, want centre", x, y, ok)
	}
	// behind the camera
	behind := c.Position.Add(c.Position.Sub(c.Target))
	if _, _, ok := c.Project(behind); ok {
		t.Error("point behind the camera reported visible")
	}
}

func TestModeAt(t *testing.T) {
	tests := []struct {
		cut  float64
		want Mode
	}{
		{0, Orbit},
		{8.49, Orbit},
		{8.5, Sideline},
		{10.49, Sideline},
		{10.5, Orbit},
		{19.0, Baseline},
		{29.5, Overhead},
		{31.5, Orbit},
		{40.0, Sideline},
	}
	for _, tt := range tests {
		if got := ModeAt(tt.cut); got != tt.want {
			t.Errorf("ModeAt(%v) = %v, want %v", tt.cut, got, tt.want)
		}
	}
}

func TestLabels(t *testing.T) {
	want := map[Mode]string{
		Orbit:    "Primary Orbit",
		Sideline: "Sideline Dolly",
		Baseline: "Baseline Cam",
		Overhead: "Overhead",
	}
	for m, w := range want {
		if m.Label() != w {
			t.Errorf("%d.Label() = %q, want %q", m, m.Label(), w)
		}
	}
}

// A stationary target is the Overhead framing, which ignores elapsed.
func TestSmoothingIsConvex(t *testing.T) {
	c := court.Default()
	cam := New(640, 360)
	d := NewDirector(c, cam)
	d.cut = CutInterval + 2*CycleTime // overhead window

	target := Framing(Overhead, 0, c).Position
	prevDist := cam.Position.Dist(target)
	for i := 0; i < 50; i++ {
		before := cam.Position
		d.Tick(0, float64(i))
		if d.Mode() != Overhead {
			t.Fatalf("mode = %v, want Overhead", d.Mode())
		}
		// after = before + 0.1 (target - before)
		want := before.Scale(0.9).Add(target.Scale(0.1))
		if !cam.Position.ApproxEqual(want, 1e-9) {
			t.Fatalf("tick %d: position %v is not the 0.9/0.1 blend %v", i, cam.Position, want)
		}
		dist := cam.Position.Dist(target)
		if dist >= prevDist {
			t.Fatalf("tick %d: distance %v did not decrease from %v", i, dist, prevDist)
		}
		prevDist = dist
	}
}

func TestDirectorReportsCuts(t *testing.T) {
	d := NewDirector(court.Default(), New(320, 240))
	var labels []string
	elapsed := 0.0
	for i := 0; i < int(2*CycleTime*60)+5; i++ {
		elapsed += 1.0 / 60
		if d.Tick(1.0/60, elapsed) {
			labels = append(labels, d.Label())
		}
	}
	want := []string{"Sideline Dolly", "Primary Orbit", "Baseline Cam", "Primary Orbit"}
	if len(labels) != len(want) {
		t.Fatalf("cuts = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("cut %d = %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestOrbitTargetRadius(t *testing.T) {
	for _, e := range []float64{0, 1, 7.3, 100} {
		p := Framing(Orbit, e, court.Default()).Position
		if r := math.Hypot(p.X(), p.Z()); math.Abs(r-22) > 1e-9 || p.Y() != 8.5 {
			t.Errorf("elapsed %v: orbit at %v", e, p)
		}
	}
}
