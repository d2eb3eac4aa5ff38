package driver

import (
	"time"

	"smartcourt/internal/texture"
)

// Option configures a Driver.
type Option func(*Driver)

// WithFrameRate sets the primary loop rate. Values <= 0 select 60.
func WithFrameRate(fps int) Option {
	return func(d *Driver) {
		if fps <= 0 {
			fps = DefaultFrameRate
		}
		d.frameInterval = time.Second / time.Duration(fps)
	}
}

// WithClock injects the wall clock used for frame deltas, the HUD clock
// and stall detection.
func WithClock(c Clock) Option {
	return func(d *Driver) {
		if c != nil {
			d.clock = c
		}
	}
}

// WithWatchdog sets how often the watchdog checks and how old the last
// frame must be before it forces one. Zero values keep the defaults.
func WithWatchdog(interval, stall time.Duration) Option {
	return func(d *Driver) {
		if interval > 0 {
			d.watchInterval = interval
		}
		if stall > 0 {
			d.stallAfter = stall
		}
	}
}

// WithSupersample renders n×n samples per output pixel.
func WithSupersample(n int) Option {
	return func(d *Driver) {
		if n < 1 {
			n = 1
		}
		d.supersample = n
	}
}

// WithOverlay turns the HUD on or off.
func WithOverlay(enabled bool) Option {
	return func(d *Driver) {
		d.overlay = enabled
	}
}

// WithTextures supplies the texture resolver. Without it the court
// texture is painted procedurally at mount.
func WithTextures(r texture.Resolver) Option {
	return func(d *Driver) {
		d.textures = r
	}
}
