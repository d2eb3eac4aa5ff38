// Package trail keeps the fixed pool of fading ghost markers that follow
// the ball.
package trail

import (
	"math"

	"smartcourt/internal/mathutil"
)

const (
	// DefaultSize is the number of pooled markers.
	DefaultSize = 24

	InitialOpacity = 0.7
	FadeRate       = 1.8 // opacity lost per second
	InitialScale   = 0.16
	ShrinkPerFrame = 0.995 // scale factor per 1/60 s
)

// Marker is one pooled ghost.
type Marker struct {
	Pos     mathutil.Vec3
	Opacity float64
	Scale   float64
	Life    float64 // seconds since emitted
	Active  bool
}

// Pool is a ring of markers reused round-robin. The zero value is unusable;
// call New.
type Pool struct {
	markers []Marker
	next    int
}

// New returns a pool of n markers, all inactive. n < 1 selects DefaultSize.
func New(n int) *Pool {
	if n < 1 {
		n = DefaultSize
	}
	return &Pool{markers: make([]Marker, n)}
}

// Size returns the pool capacity.
func (p *Pool) Size() int { return len(p.markers) }

// Next returns the slot the following Leave will overwrite.
func (p *Pool) Next() int { return p.next }

// Leave emits a marker at pos into the next slot, overwriting whatever
// was there.
func (p *Pool) Leave(pos mathutil.Vec3) {
	p.markers[p.next] = Marker{
		Pos:     pos,
		Opacity: InitialOpacity,
		Scale:   InitialScale,
		Active:  true,
	}
	p.next = (p.next + 1) % len(p.markers)
}

// Update ages every active marker by dt: opacity fades linearly, scale
// shrinks geometrically, and markers reaching zero opacity go inactive.
func (p *Pool) Update(dt float64) {
	if dt <= 0 {
		return
	}
	shrink := math.Pow(ShrinkPerFrame, dt*60)
	for i := range p.markers {
		m := &p.markers[i]
		if !m.Active {
			continue
		}
		m.Life += dt
		m.Opacity -= FadeRate * dt
		m.Scale *= shrink
		if m.Opacity <= 0 {
			*m = Marker{}
		}
	}
}

// Clear deactivates every marker and rewinds the ring.
func (p *Pool) Clear() {
	for i := range p.markers {
		p.markers[i] = Marker{}
	}
	p.next = 0
}

// ActiveCount returns the number of visible markers.
func (p *Pool) ActiveCount() int {
	n := 0
	for i := range p.markers {
		if p.markers[i].Active {
			n++
		}
	}
	return n
}

// Markers returns the active markers, oldest slot order not guaranteed.
func (p *Pool) Markers() []Marker {
	out := make([]Marker, 0, len(p.markers))
	for _, m := range p.markers {
		if m.Active {
			out = append(out, m)
		}
	}
	return out
}
