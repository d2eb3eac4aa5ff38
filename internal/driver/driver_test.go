package driver

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"smartcourt/internal/events"
	"smartcourt/internal/rally"
	"smartcourt/internal/sim"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 14, 3, 9, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Add(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeSurface struct {
	w, h int
	err  error

	mu     sync.Mutex
	frames int
	last   *image.NRGBA
	snap   sim.Snapshot
}

func (s *fakeSurface) Size() (int, int) { return s.w, s.h }

func (s *fakeSurface) Present(frame *image.NRGBA, snap sim.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames++
	s.last = frame
	s.snap = snap
	return s.err
}

func (s *fakeSurface) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

func mounted(t *testing.T, opts ...Option) (*Driver, *fakeSurface, *fakeClock) {
	t.Helper()
	clk := newFakeClock()
	surf := &fakeSurface{w: 96, h: 54}
	d := New(sim.Options{Rally: rally.Config{Outcome: rally.Always(rally.PlayerA)}},
		append([]Option{WithClock(clk)}, opts...)...)
	if err := d.Mount(surf); err != nil {
		t.Fatal(err)
	}
	return d, surf, clk
}

func TestMountRejectsMissingSurface(t *testing.T) {
	tests := []struct {
		name string
		s    Surface
	}{
		{"nil", nil},
		{"zero width", &fakeSurface{w: 0, h: 10}},
		{"zero height", &fakeSurface{w: 10, h: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(sim.Options{})
			if err := d.Mount(tt.s); !errors.Is(err, ErrNoSurface) {
				t.Errorf("Mount() = %v, want ErrNoSurface", err)
			}
			if err := d.Step(); !errors.Is(err, ErrNotMounted) {
				t.Errorf("Step() after failed mount = %v, want ErrNotMounted", err)
			}
			if err := d.Start(context.Background()); !errors.Is(err, ErrNotMounted) {
				t.Errorf("Start() after failed mount = %v, want ErrNotMounted", err)
			}
		})
	}
}

func TestMountTwice(t *testing.T) {
	d, surf, _ := mounted(t)
	if err := d.Mount(surf); !errors.Is(err, ErrMounted) {
		t.Errorf("second Mount() = %v, want ErrMounted", err)
	}
}

func TestStepPresentsFrame(t *testing.T) {
	d, surf, clk := mounted(t)
	if err := d.Step(); err != nil {
		t.Fatal(err)
	}
	clk.Add(16 * time.Millisecond)
	if err := d.Step(); err != nil {
		t.Fatal(err)
	}
	if surf.count() != 2 {
		t.Fatalf("frames presented = %d, want 2", surf.count())
	}
	if b := surf.last.Bounds(); b.Dx() != 96 || b.Dy() != 54 {
		t.Errorf("frame size = %v, want 96x54", b)
	}
	if surf.snap.Clock != "14:03:09" {
		t.Errorf("snapshot clock = %q", surf.snap.Clock)
	}
	if surf.snap.Frame != 2 {
		t.Errorf("snapshot frame = %d, want 2", surf.snap.Frame)
	}
	if d.LastFrame() == nil {
		t.Error("LastFrame() = nil after Step")
	}
}

func TestSupersampleOutputSize(t *testing.T) {
	d, surf, _ := mounted(t, WithSupersample(2), WithOverlay(false))
	if err := d.Step(); err != nil {
		t.Fatal(err)
	}
	if b := surf.last.Bounds(); b.Dx() != 96 || b.Dy() != 54 {
		t.Errorf("frame size = %v, want 96x54", b)
	}
}

func TestStepClampsLongGap(t *testing.T) {
	d, _, clk := mounted(t)
	d.Step()
	clk.Add(3 * time.Second)
	d.Step()
	snap, ok := d.Snapshot()
	if !ok {
		t.Fatal("Snapshot() not ok while mounted")
	}
	want := sim.DefaultDelta + sim.MaxDelta
	if diff := snap.Elapsed - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("elapsed = %v, want %v", snap.Elapsed, want)
	}
}

func TestPresentErrorIsReturned(t *testing.T) {
	d, surf, _ := mounted(t)
	surf.err = errors.New("gone")
	if err := d.Step(); err == nil {
		t.Error("Step() = nil, want present error")
	}
}

func TestWatchdogForcesStalledFrame(t *testing.T) {
	d, surf, clk := mounted(t)
	if !d.Watchdog() {
		t.Fatal("Watchdog() with no frame yet did not step")
	}
	clk.Add(100 * time.Millisecond)
	if d.Watchdog() {
		t.Error("Watchdog() stepped on a healthy loop")
	}
	clk.Add(DefaultStallAfter + time.Millisecond)
	if !d.Watchdog() {
		t.Error("Watchdog() did not step after a stall")
	}
	frames, forced := d.Stats()
	if frames != 2 || forced != 2 || surf.count() != 2 {
		t.Errorf("Stats() = %d, %d; presented %d", frames, forced, surf.count())
	}
}

func TestResize(t *testing.T) {
	d, surf, _ := mounted(t, WithOverlay(false))
	if err := d.Resize(0, 10); err == nil {
		t.Error("Resize(0, 10) = nil")
	}
	if err := d.Resize(64, 64); err != nil {
		t.Fatal(err)
	}
	if err := d.Resize(64, 64); err != nil {
		t.Fatal(err)
	}
	d.Step()
	if b := surf.last.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("frame size = %v, want 64x64", b)
	}
}

func TestEventsReachListeners(t *testing.T) {
	d, _, clk := mounted(t, WithOverlay(false))
	var got []events.Event
	d.OnEvent(func(e events.Event) { got = append(got, e) })
	d.Step()
	for i := 0; i < 10; i++ {
		clk.Add(16 * time.Millisecond)
		d.Step()
	}
	if len(got) == 0 || got[0].Type != events.EventContact {
		t.Fatalf("events = %v, want leading contact", got)
	}
}

func TestUnmountStopsEverything(t *testing.T) {
	d, surf, _ := mounted(t, WithFrameRate(200), WithWatchdog(5*time.Millisecond, time.Millisecond))
	if err := d.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for surf.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if surf.count() == 0 {
		t.Fatal("loop presented no frames")
	}
	if err := d.Unmount(); err != nil {
		t.Fatal(err)
	}
	n := surf.count()
	time.Sleep(30 * time.Millisecond)
	if surf.count() != n {
		t.Errorf("frames presented after Unmount: %d -> %d", n, surf.count())
	}
	if _, ok := d.Snapshot(); ok {
		t.Error("Snapshot() ok after Unmount")
	}
	if err := d.Unmount(); !errors.Is(err, ErrNotMounted) {
		t.Errorf("second Unmount() = %v, want ErrNotMounted", err)
	}
	if err := d.Mount(surf); err != nil {
		t.Errorf("remount: %v", err)
	}
}

func TestStartStopsWithContext(t *testing.T) {
	d, _, _ := mounted(t)
	ctx, cancel := context.WithCancel(context.Background())
	if err := d.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()
	if err := d.Unmount(); err != nil {
		t.Fatal(err)
	}
}
