package server

import (
	"image"
	"sync"
	"time"

	"smartcourt/internal/sim"
)

// Surface is an off-screen display: it keeps the latest frame for
// /api/v1/frame.webp and pushes every snapshot to the hub.
type Surface struct {
	mu     sync.RWMutex
	width  int
	height int
	frame  *image.NRGBA
	snap   sim.Snapshot
	hub    *Hub
}

// NewSurface returns a surface of the given pixel size that broadcasts
// through hub. hub may be nil.
func NewSurface(width, height int, hub *Hub) *Surface {
	return &Surface{width: width, height: height, hub: hub}
}

// Size implements driver.Surface.
func (s *Surface) Size() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

// SetSize changes the size reported to the driver.
func (s *Surface) SetSize(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
}

// Present implements driver.Surface.
func (s *Surface) Present(frame *image.NRGBA, snap sim.Snapshot) error {
	s.mu.Lock()
	s.frame = frame
	s.snap = snap
	s.mu.Unlock()

	if s.hub != nil {
		s.hub.Broadcast(Message{Type: MessageTypeSnapshot, Payload: snap, Timestamp: time.Now()})
	}
	return nil
}

// Latest returns the last presented frame and its snapshot. frame is nil
// until the first Present.
func (s *Surface) Latest() (*image.NRGBA, sim.Snapshot) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame, s.snap
}
