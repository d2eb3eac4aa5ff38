package camera

import (
	"math"

	"smartcourt/internal/court"
	"smartcourt/internal/mathutil"
)

// Mode is a named framing.
type Mode int

const (
	Orbit Mode = iota
	Sideline
	Baseline
	Overhead
)

var modeLabels = [...]string{
	Orbit:    "Primary Orbit",
	Sideline: "Sideline Dolly",
	Baseline: "Baseline Cam",
	Overhead: "Overhead",
}

// Label is the on-air name shown in the HUD.
func (m Mode) Label() string {
	if m < 0 || int(m) >= len(modeLabels) {
		return ""
	}
	return modeLabels[m]
}

func (m Mode) String() string { return m.Label() }

// Cut timing, in seconds of simulated time.
const (
	CutInterval = 8.5
	HoldTime    = 2.0
	CycleTime   = CutInterval + HoldTime
)

var alternates = [...]Mode{Sideline, Baseline, Overhead}

// ModeAt returns the framing scheduled cut seconds into the programme:
// Orbit for the first CutInterval of every cycle, then one alternate
// framing held for HoldTime, rotating through the alternates.
func ModeAt(cut float64) Mode {
	if cut < 0 {
		cut = 0
	}
	cycle := math.Floor(cut / CycleTime)
	if cut-cycle*CycleTime < CutInterval {
		return Orbit
	}
	return alternates[int(cycle)%len(alternates)]
}

// Shot is where a framing wants the camera this tick.
type Shot struct {
	Position mathutil.Vec3
	Focus    mathutil.Vec3
	Blend    float64 // fraction of the remaining distance covered per tick
}

// Framing returns the shot for mode at elapsed seconds on court c.
func Framing(mode Mode, elapsed float64, c court.Court) Shot {
	switch mode {
	case Sideline:
		return Shot{
			Position: mathutil.Vec3{math.Sin(elapsed*0.25) * c.W() * 0.6, 6.2, 14.5},
			Focus:    mathutil.Vec3{0, 1.2, 0},
			Blend:    0.1,
		}
	case Baseline:
		return Shot{
			Position: mathutil.Vec3{0, 4.5, c.L()/2 + 5 + math.Sin(elapsed*0.5)*1.2},
			Focus:    mathutil.Vec3{0, 1.1, 0},
			Blend:    0.08,
		}
	case Overhead:
		return Shot{
			Position: mathutil.Vec3{0, 25, 0.01},
			Focus:    mathutil.Vec3{0, 0, 0},
			Blend:    0.1,
		}
	}
	a := elapsed * 0.12
	return Shot{
		Position: mathutil.Vec3{math.Cos(a) * 22, 8.5, math.Sin(a) * 22},
		Focus:    mathutil.Vec3{0, 1.0, 0},
		Blend:    0.04,
	}
}

// Director eases a camera toward the scheduled framing every tick.
type Director struct {
	court court.Court
	cam   *Camera
	cut   float64
	mode  Mode
}

// NewDirector returns a director starting on Orbit.
func NewDirector(c court.Court, cam *Camera) *Director {
	return &Director{court: c, cam: cam, mode: Orbit}
}

// Tick advances the cut timer by dt and moves the camera. The position
// moves a fixed fraction toward the framing target and is never snapped;
// the camera always looks at the framing's focus. It reports whether
// the framing changed.
func (d *Director) Tick(dt, elapsed float64) bool {
	if dt > 0 {
		d.cut += dt
	}
	mode := ModeAt(d.cut)
	changed := mode != d.mode
	d.mode = mode

	shot := Framing(mode, elapsed, d.court)
	d.cam.Position = d.cam.Position.Lerp(shot.Position, shot.Blend)
	d.cam.Target = shot.Focus
	return changed
}

// Mode returns the active framing.
func (d *Director) Mode() Mode { return d.mode }

// Label returns the active framing's display name.
func (d *Director) Label() string { return d.mode.Label() }

// Camera returns the directed camera.
func (d *Director) Camera() *Camera { return d.cam }

// Reset rewinds the cut timer to the start of an Orbit segment.
func (d *Director) Reset() {
	d.cut = 0
	d.mode = Orbit
}
