// Package audio plays short tones for rally events: a tick on every
// racket contact and a chime when a point or game is won.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"smartcourt/internal/events"
)

const sampleRate = beep.SampleRate(44100)

// Cue tones.
const (
	ContactFreq = 880.0
	PointFreq   = 660.0
	GameFreq    = 990.0

	ContactLength = 50 * time.Millisecond
	PointLength   = 140 * time.Millisecond
	Volume        = 0.25
)

// Cues routes simulation events to the speaker. Without Initialize, or
// when the audio device could not be opened, every call is a no-op.
type Cues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewCues returns an uninitialized cue player.
func NewCues() *Cues {
	return &Cues{mixer: &beep.Mixer{}}
}

// Initialize opens the default audio device.
func (c *Cues) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Cleanup silences pending cues and closes the device.
func (c *Cues) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	speaker.Clear()
	c.mixer.Clear()
	speaker.Close()
	c.initialized = false
}

// Handle plays the cue for e, if it has one.
func (c *Cues) Handle(e events.Event) {
	var s beep.Streamer
	switch e.Type {
	case events.EventContact:
		s = Tone(ContactFreq, ContactLength)
	case events.EventPoint:
		s = Tone(PointFreq, PointLength)
	case events.EventGameWon:
		s = beep.Seq(Tone(PointFreq, PointLength), Tone(GameFreq, 2*PointLength))
	default:
		return
	}
	if s == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// Tone returns a sine of freq Hz lasting d, with a linear fade out. It
// returns nil when the generator rejects the frequency.
func Tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil
	}
	n := sampleRate.N(d)
	return &fade{s: beep.Take(n, sine), total: n}
}

// fade scales samples by Volume and ramps them down to silence over the
// stream length.
type fade struct {
	s     beep.Streamer
	total int
	pos   int
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.s.Stream(samples)
	for i := 0; i < n; i++ {
		g := Volume * math.Max(0, 1-float64(f.pos)/float64(f.total))
		samples[i][0] *= g
		samples[i][1] *= g
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }
