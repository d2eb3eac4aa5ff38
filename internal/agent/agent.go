// Package agent animates player rigs: locomotion toward a ground target,
// an always-on gait cycle and the racket swing gesture.
package agent

import (
	"math"

	"smartcourt/internal/mathutil"
	"smartcourt/internal/skeleton"
)

const (
	// Speed is the planar run speed in world units per second.
	Speed = 1.8
	// Epsilon is the distance below which a rig counts as arrived.
	Epsilon = 0.02
	// GaitRate converts elapsed seconds into gait phase.
	GaitRate = 6
)

// MoveToward steps r toward the ground point target at Speed without
// overshooting and turns it to face its direction of travel. It reports
// whether the rig moved. Yaw is left alone once the rig has arrived.
func MoveToward(r *skeleton.Rig, target mathutil.Vec3, dt float64) bool {
	dx := target.X() - r.Position.X()
	dz := target.Z() - r.Position.Z()
	dist := math.Hypot(dx, dz)
	if dist <= Epsilon || dt <= 0 {
		return false
	}
	step := math.Min(Speed*dt, dist)
	r.Position[0] += dx / dist * step
	r.Position[2] += dz / dist * step
	r.Yaw = math.Atan2(dx, dz)
	return true
}

// Gait drives the periodic leg and arm swing from total elapsed time.
func Gait(r *skeleton.Rig, elapsed float64) {
	t := elapsed * GaitRate
	h := r.Handles
	r.Nodes[h.LegL].Rot[0] = math.Sin(t) * 0.3
	r.Nodes[h.LegR].Rot[0] = math.Cos(t) * 0.3
	r.Nodes[h.ArmLead].Rot[0] = math.Cos(t+math.Pi) * 0.25
	r.Nodes[h.ArmTrail].Rot[0] = math.Sin(t+math.Pi) * 0.25
}

// Swing poses the stroke for phase in [0,1]: wind-up at 0 and 1,
// follow-through at 0.5.
func Swing(r *skeleton.Rig, phase float64) {
	a := math.Sin(mathutil.Clamp01(phase) * math.Pi)
	h := r.Handles
	r.Nodes[h.Shoulder].Rot[1] = mathutil.Lerp(-0.8, 1.0, a)
	r.Nodes[h.ArmLead].Rot[2] = mathutil.Lerp(-0.4, 0.6, a)
	r.Nodes[h.Torso].Rot[1] = mathutil.Lerp(-0.2, 0.2, a)
	r.Nodes[h.Head].Rot[1] = mathutil.Lerp(-0.3, 0.3, a)
}

// SwingWindow maps shot progress to swing phase: the gesture plays
// between progress 0.1 and 0.35.
func SwingWindow(progress float64) float64 {
	return mathutil.Clamp01((progress - 0.1) / 0.25)
}
