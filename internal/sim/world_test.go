package sim

import (
	"errors"
	"math"
	"testing"
	"time"

	"smartcourt/internal/court"
	"smartcourt/internal/events"
	"smartcourt/internal/rally"
	"smartcourt/internal/trajectory"
)

func newWorld(t *testing.T, opts Options) *World {
	t.Helper()
	w, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestClampDelta(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"normal frame", 0.016, 0.016},
		{"stall", 0.5, MaxDelta},
		{"zero", 0, DefaultDelta},
		{"negative", -0.01, DefaultDelta},
		{"nan", math.NaN(), DefaultDelta},
		{"inf", math.Inf(1), DefaultDelta},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampDelta(tt.in); got != tt.want {
				t.Errorf("ClampDelta(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewRejectsDiscontinuousScript(t *testing.T) {
	script := trajectory.DefaultScript(court.Default())
	script[2].End[2] += 1
	_, err := New(Options{Script: script})
	if !errors.Is(err, trajectory.ErrDiscontinuous) {
		t.Errorf("New() error = %v, want ErrDiscontinuous", err)
	}
}

func TestTickAccumulatesClampedTime(t *testing.T) {
	w := newWorld(t, Options{Width: 320, Height: 180})
	w.Tick(1)
	w.Tick(0.01)
	if got := w.Elapsed(); math.Abs(got-(MaxDelta+0.01)) > 1e-12 {
		t.Errorf("Elapsed() = %v", got)
	}
	if w.Ticks() != 2 {
		t.Errorf("Ticks() = %d", w.Ticks())
	}
}

func TestFullRallyAndReset(t *testing.T) {
	w := newWorld(t, Options{Rally: rally.Config{Outcome: rally.Always(rally.PlayerB)}})
	var seen []events.EventType
	for i := 0; i < 60*8; i++ {
		w.Tick(1.0 / 60)
		for _, e := range w.Events() {
			if e.Type != events.EventContact && e.Type != events.EventAngleChange {
				seen = append(seen, e.Type)
			}
		}
	}
	want := []events.EventType{events.EventPoint, events.EventRallyReset}
	if len(seen) != len(want) || seen[0] != want[0] || seen[1] != want[1] {
		t.Fatalf("events = %v, want %v", seen, want)
	}
	snap := w.Snapshot(time.Now())
	if snap.ScoreB != 1 || snap.LabelB != "15" || snap.Rallies != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.State == rally.RallyEnded.String() {
		t.Error("still in rally_ended after reset delay")
	}
}

func TestAngleChangeEvent(t *testing.T) {
	w := newWorld(t, Options{})
	var labels []string
	for i := 0; i < 60*9; i++ {
		w.Tick(1.0 / 60)
		for _, e := range w.Events() {
			if e.Type == events.EventAngleChange {
				labels = append(labels, e.Label)
			}
		}
	}
	if len(labels) != 1 || labels[0] != "Sideline Dolly" {
		t.Errorf("angle changes = %v", labels)
	}
}

func TestTeardownStopsTimers(t *testing.T) {
	w := newWorld(t, Options{Rally: rally.Config{Outcome: rally.Always(rally.PlayerA)}})
	for w.Rally.State() != rally.RallyEnded {
		w.Tick(1.0 / 60)
	}
	if w.Timers.Pending() == 0 {
		t.Fatal("no reset scheduled after the rally ended")
	}
	w.Teardown()
	if w.Timers.Pending() != 0 {
		t.Errorf("%d timers survived teardown", w.Timers.Pending())
	}
	before := w.Snapshot(time.Time{})
	for i := 0; i < 300; i++ {
		w.Tick(1.0 / 60)
	}
	after := w.Snapshot(time.Time{})
	if before != after {
		t.Errorf("world changed after teardown: %+v -> %+v", before, after)
	}
}

func TestSnapshotClock(t *testing.T) {
	w := newWorld(t, Options{})
	now := time.Date(2024, 5, 1, 9, 7, 3, 0, time.UTC)
	if got := w.Snapshot(now).Clock; got != "09:07:03" {
		t.Errorf("Clock = %q", got)
	}
	if got := w.Snapshot(now).Camera; got != "Primary Orbit" {
		t.Errorf("Camera = %q", got)
	}
}

func TestResizeIsIdempotent(t *testing.T) {
	w := newWorld(t, Options{Width: 640, Height: 480})
	w.Resize(1024, 576)
	p := w.Camera.Projection
	w.Resize(1024, 576)
	if w.Camera.Projection != p {
		t.Error("second identical resize changed the projection")
	}
}
