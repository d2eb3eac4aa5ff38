// Package sim is the headless rally simulation: one explicit state struct
// advanced by Tick and observed through Snapshot. It has no display
// dependency and is driven entirely by the delta times it is fed.
package sim

import (
	"fmt"
	"math"
	"time"

	"smartcourt/internal/camera"
	"smartcourt/internal/court"
	"smartcourt/internal/events"
	"smartcourt/internal/rally"
	"smartcourt/internal/scene"
	"smartcourt/internal/timer"
	"smartcourt/internal/trajectory"
)

const (
	// MaxDelta caps one tick so a stalled host does not teleport the ball.
	MaxDelta = 0.033
	// DefaultDelta replaces missing or non-positive deltas.
	DefaultDelta = 1.0 / 60
)

// Options configures New. Zero values select the reference rally.
type Options struct {
	Court     court.Court
	Script    trajectory.Script
	TrailSize int
	Rally     rally.Config
	Width     int
	Height    int
}

// World is the complete simulation state.
type World struct {
	Scene    *scene.Scene
	Camera   *camera.Camera
	Director *camera.Director
	Rally    *rally.Machine
	Timers   *timer.Queue

	events  events.Queue
	elapsed float64
	ticks   uint64
	torn    bool
}

// New builds the scene and wires the rally, timers and camera director.
// It fails only when the script is discontinuous.
func New(opts Options) (*World, error) {
	if opts.Court == (court.Court{}) {
		opts.Court = court.Default()
	}
	if opts.Script == nil {
		opts.Script = trajectory.DefaultScript(opts.Court)
	}
	if err := opts.Script.Validate(); err != nil {
		return nil, fmt.Errorf("sim: new: %w", err)
	}

	w := &World{Timers: timer.New()}
	w.Scene = scene.Build(scene.Options{
		Court:     opts.Court,
		Script:    opts.Script,
		TrailSize: opts.TrailSize,
	})
	w.Camera = camera.New(opts.Width, opts.Height)
	w.Director = camera.NewDirector(opts.Court, w.Camera)
	w.Rally = rally.New(w.Scene, opts.Script, w.Timers, &w.events, opts.Rally)
	return w, nil
}

// ClampDelta sanitizes a raw frame delta in seconds.
func ClampDelta(dt float64) float64 {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		return DefaultDelta
	}
	return math.Min(dt, MaxDelta)
}

// Tick advances the world by one frame of dt seconds: timers first, then
// the rally, the trail and the camera.
func (w *World) Tick(dt float64) {
	if w.torn {
		return
	}
	dt = ClampDelta(dt)
	w.elapsed += dt
	w.ticks++

	w.Timers.Advance(timer.Seconds(dt))
	w.Rally.Tick(dt, w.elapsed)
	w.Scene.Trail.Update(dt)
	if w.Director.Tick(dt, w.elapsed) {
		w.events.Push(events.Event{
			Type:    events.EventAngleChange,
			Label:   w.Director.Label(),
			Elapsed: w.elapsed,
		})
	}
}

// Resize updates the camera projection for a new output size.
func (w *World) Resize(width, height int) {
	w.Camera.SetViewport(width, height)
}

// Events drains the notifications produced since the last call.
func (w *World) Events() []events.Event {
	return w.events.Consume()
}

// Elapsed returns total simulated seconds.
func (w *World) Elapsed() float64 { return w.elapsed }

// Ticks returns how many ticks have run.
func (w *World) Ticks() uint64 { return w.ticks }

// Teardown drops all pending timers and freezes the world. No timer
// callback runs after Teardown returns.
func (w *World) Teardown() {
	w.torn = true
	w.Timers.Clear()
	w.events.Consume()
}

// TornDown reports whether Teardown has run.
func (w *World) TornDown() bool { return w.torn }

// Snapshot captures the HUD-facing state. now supplies the wall clock.
func (w *World) Snapshot(now time.Time) Snapshot {
	s := w.Rally.Score()
	return Snapshot{
		ScoreA:      s.A,
		ScoreB:      s.B,
		LabelA:      rally.Label(s.A),
		LabelB:      rally.Label(s.B),
		PointsToWin: w.Rally.PointsToWin(),
		Camera:      w.Director.Label(),
		Clock:       Clock(now),
		Elapsed:     w.elapsed,
		State:       w.Rally.State().String(),
		Segment:     w.Rally.Index(),
		Progress:    w.Rally.Progress(),
		Ball:        w.Scene.Ball,
		Trail:       w.Scene.Trail.ActiveCount(),
		Rallies:     w.Rally.Rallies(),
		Frame:       w.ticks,
	}
}
