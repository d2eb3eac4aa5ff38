// Package driver owns the frame loop: it mounts the simulation on a
// display surface, steps and renders it at a fixed rate, and runs a
// watchdog that forces a frame when the loop stalls.
package driver

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"smartcourt/internal/court"
	"smartcourt/internal/events"
	"smartcourt/internal/overlay"
	"smartcourt/internal/postprocess"
	"smartcourt/internal/raster"
	"smartcourt/internal/scene"
	"smartcourt/internal/sim"
	"smartcourt/internal/texture"
)

// Defaults.
const (
	DefaultFrameRate     = 60
	DefaultWatchInterval = 500 * time.Millisecond
	DefaultStallAfter    = 400 * time.Millisecond
)

var (
	// ErrNoSurface is returned by Mount when there is nothing to draw on.
	ErrNoSurface = errors.New("driver: no display surface")
	// ErrNotMounted is returned by operations that need a mounted surface.
	ErrNotMounted = errors.New("driver: not mounted")
	// ErrMounted is returned by Mount when a surface is already attached.
	ErrMounted = errors.New("driver: already mounted")
)

// Surface receives finished frames.
type Surface interface {
	// Size returns the output size in pixels.
	Size() (width, height int)
	// Present shows one frame. frame is owned by the callee.
	Present(frame *image.NRGBA, snap sim.Snapshot) error
}

// Clock provides wall-clock time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// loop holds the goroutines started by Start.
type loop struct {
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// Driver mounts a simulation on a surface. All state changes happen
// under one mutex, so Step, Resize and the watchdog never overlap.
type Driver struct {
	simOpts       sim.Options
	clock         Clock
	textures      texture.Resolver
	frameInterval time.Duration
	watchInterval time.Duration
	stallAfter    time.Duration
	supersample   int
	overlay       bool

	mu        sync.Mutex
	surface   Surface
	world     *sim.World
	renderer  *raster.Renderer
	fb        *raster.FrameBuffer
	width     int
	height    int
	last      time.Time
	lastFrame *image.NRGBA
	frames    uint64
	forced    uint64
	closing   bool
	loop      *loop

	listenMu  sync.Mutex
	listeners []func(events.Event)
}

// New returns an unmounted driver.
func New(simOpts sim.Options, opts ...Option) *Driver {
	d := &Driver{
		simOpts:       simOpts,
		clock:         systemClock{},
		frameInterval: time.Second / DefaultFrameRate,
		watchInterval: DefaultWatchInterval,
		stallAfter:    DefaultStallAfter,
		supersample:   1,
		overlay:       true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Mount builds the world sized to s. A nil surface, or one reporting a
// zero size, is ErrNoSurface and nothing is set up.
func (d *Driver) Mount(s Surface) error {
	if s == nil {
		return ErrNoSurface
	}
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return ErrNoSurface
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.world != nil {
		return ErrMounted
	}

	opts := d.simOpts
	opts.Width, opts.Height = w, h
	world, err := sim.New(opts)
	if err != nil {
		return fmt.Errorf("driver: mount: %w", err)
	}
	if d.textures == nil {
		c := world.Scene.Court
		d.textures = texture.CourtCache(scene.CourtTexture, c, court.DefaultTextureWidth, court.DefaultTextureHeight, "")
	}

	d.surface = s
	d.world = world
	d.renderer = raster.NewRenderer(d.textures)
	d.width, d.height = w, h
	d.fb = raster.NewFrameBuffer(w*d.supersample, h*d.supersample)
	d.last = time.Time{}
	d.lastFrame = nil
	d.frames = 0
	d.forced = 0
	d.closing = false
	return nil
}

// Start launches the primary loop and the watchdog. They stop on
// Unmount or when ctx is done.
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.world == nil || d.closing {
		return ErrNotMounted
	}
	if d.loop != nil {
		return nil
	}
	l := &loop{stop: make(chan struct{})}
	d.loop = l

	l.wg.Add(2)
	go d.runPrimary(ctx, l)
	go d.runWatchdog(ctx, l)
	return nil
}

func (d *Driver) runPrimary(ctx context.Context, l *loop) {
	defer l.wg.Done()
	ticker := time.NewTicker(d.frameInterval)
	defer ticker.Stop()

	var lastErr string
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.stop:
			return
		case <-ticker.C:
			if err := d.Step(); err != nil {
				if errors.Is(err, ErrNotMounted) {
					return
				}
				// log each distinct failure once
				if err.Error() != lastErr {
					log.Printf("driver: step: %v", err)
					lastErr = err.Error()
				}
			}
		}
	}
}

func (d *Driver) runWatchdog(ctx context.Context, l *loop) {
	defer l.wg.Done()
	ticker := time.NewTicker(d.watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.stop:
			return
		case <-ticker.C:
			d.Watchdog()
		}
	}
}

// Watchdog forces a frame when the last one is older than the stall
// threshold. It reports whether it stepped.
func (d *Driver) Watchdog() bool {
	d.mu.Lock()
	stalled := d.world != nil && !d.closing &&
		(d.last.IsZero() || d.clock.Now().Sub(d.last) > d.stallAfter)
	d.mu.Unlock()
	if !stalled {
		return false
	}
	if err := d.step(true); err != nil {
		return false
	}
	return true
}

// Step advances the simulation by the wall time since the previous
// frame, renders, draws the HUD and presents.
func (d *Driver) Step() error {
	return d.step(false)
}

func (d *Driver) step(forced bool) error {
	d.mu.Lock()
	if d.world == nil || d.closing {
		d.mu.Unlock()
		return ErrNotMounted
	}

	now := d.clock.Now()
	dt := sim.DefaultDelta
	if !d.last.IsZero() {
		dt = now.Sub(d.last).Seconds()
	}
	d.world.Tick(dt)
	evs := d.world.Events()
	snap := d.world.Snapshot(now)

	d.renderer.Render(d.fb, d.world.Scene, d.world.Camera)
	frame := d.fb.Image()
	if d.supersample > 1 {
		frame = postprocess.Downsample(frame, d.width, d.height)
	}
	if d.overlay {
		overlay.Draw(frame, snap)
	}
	d.last = now
	d.frames++
	if forced {
		d.forced++
	}
	d.lastFrame = frame
	surface := d.surface
	err := surface.Present(cloneImage(frame), snap)
	d.mu.Unlock()

	d.dispatch(evs)
	if err != nil {
		return fmt.Errorf("driver: present: %w", err)
	}
	return nil
}

// Resize recomputes the projection and output buffers for a new size.
// Repeating a size is a no-op.
func (d *Driver) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("driver: resize %dx%d: invalid size", width, height)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.world == nil || d.closing {
		return ErrNotMounted
	}
	d.world.Resize(width, height)
	d.width, d.height = width, height
	d.fb.Resize(width*d.supersample, height*d.supersample)
	return nil
}

// Unmount stops the loops, drops pending timers and releases the world.
// No simulation timer fires once Unmount has begun.
func (d *Driver) Unmount() error {
	d.mu.Lock()
	if d.world == nil || d.closing {
		d.mu.Unlock()
		return ErrNotMounted
	}
	d.closing = true
	d.world.Teardown()
	l := d.loop
	d.loop = nil
	d.mu.Unlock()

	if l != nil {
		l.stopOnce.Do(func() { close(l.stop) })
		l.wg.Wait()
	}

	d.mu.Lock()
	d.world = nil
	d.surface = nil
	d.renderer = nil
	d.fb = nil
	d.lastFrame = nil
	d.closing = false
	d.mu.Unlock()
	return nil
}

// Snapshot returns the current HUD state; ok is false when unmounted.
func (d *Driver) Snapshot() (snap sim.Snapshot, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.world == nil || d.closing {
		return sim.Snapshot{}, false
	}
	return d.world.Snapshot(d.clock.Now()), true
}

// LastFrame returns a copy of the most recent frame, or nil.
func (d *Driver) LastFrame() *image.NRGBA {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.lastFrame == nil {
		return nil
	}
	return cloneImage(d.lastFrame)
}

// Stats returns the number of frames presented and how many of them the
// watchdog forced.
func (d *Driver) Stats() (frames, forced uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames, d.forced
}

// OnEvent registers fn for simulation events. Listeners run on the
// stepping goroutine after the frame is presented, outside the driver
// lock.
func (d *Driver) OnEvent(fn func(events.Event)) {
	d.listenMu.Lock()
	d.listeners = append(d.listeners, fn)
	d.listenMu.Unlock()
}

func (d *Driver) dispatch(evs []events.Event) {
	if len(evs) == 0 {
		return
	}
	d.listenMu.Lock()
	ls := append([]func(events.Event){}, d.listeners...)
	d.listenMu.Unlock()
	for _, e := range evs {
		for _, fn := range ls {
			fn(e)
		}
	}
}

func cloneImage(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}
