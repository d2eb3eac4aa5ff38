// Package trajectory samples the ball along scripted rally shots. Each shot
// is a quadratic Bézier arc whose control point sits above the midpoint of
// its endpoints at the shot's apex height.
package trajectory

import (
	"errors"
	"fmt"

	"smartcourt/internal/mathutil"
)

// SegmentDuration is the simulated time, in seconds, one shot takes.
const SegmentDuration = 0.95

// ContinuityTolerance is the largest gap allowed between consecutive shots.
const ContinuityTolerance = 1e-6

// ErrDiscontinuous reports a script in which a shot does not start where
// the previous one ended.
var ErrDiscontinuous = errors.New("trajectory: discontinuous script")

// Segment is one shot.
type Segment struct {
	Start mathutil.Vec3
	End   mathutil.Vec3
	Apex  float64 // control point height
}

// Control returns the Bézier control point of the arc.
func (s Segment) Control() mathutil.Vec3 {
	c := s.Start.Lerp(s.End, 0.5)
	c[1] = s.Apex
	return c
}

// PositionAt evaluates the arc at t, clamped to [0,1].
func PositionAt(s Segment, t float64) mathutil.Vec3 {
	t = mathutil.Clamp01(t)
	u := 1 - t
	c := s.Control()
	return s.Start.Scale(u * u).
		Add(c.Scale(2 * u * t)).
		Add(s.End.Scale(t * t))
}

// Advance returns progress moved forward by dt at the fixed shot duration.
// Negative dt leaves progress unchanged.
func Advance(progress, dt float64) float64 {
	if dt <= 0 {
		return progress
	}
	return progress + dt/SegmentDuration
}

// Script is an ordered rally.
type Script []Segment

// Validate checks that every shot starts where the previous one ended.
func (s Script) Validate() error {
	for i := 0; i+1 < len(s); i++ {
		if gap := s[i].End.Dist(s[i+1].Start); gap > ContinuityTolerance {
			return fmt.Errorf("%w: shot %d ends %.4f from shot %d", ErrDiscontinuous, i, gap, i+1)
		}
	}
	return nil
}

// Start returns where the rally begins, or the origin for an empty script.
func (s Script) Start() mathutil.Vec3 {
	if len(s) == 0 {
		return mathutil.Vec3{}
	}
	return s[0].Start
}

// Landing returns where the last shot ends.
func (s Script) Landing() mathutil.Vec3 {
	if len(s) == 0 {
		return mathutil.Vec3{}
	}
	return s[len(s)-1].End
}

// Duration returns the simulated length of the whole rally.
func (s Script) Duration() float64 {
	return float64(len(s)) * SegmentDuration
}
