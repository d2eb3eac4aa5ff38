package terminal

import (
	"context"
	"log"

	"github.com/gdamore/tcell/v2"
)

// Resizer is told about new pixel sizes.
type Resizer interface {
	Resize(width, height int) error
}

// Run handles terminal input until the user quits or ctx is done.
// Resize events are forwarded to r in pixels. Esc, Ctrl-C and q quit.
func Run(ctx context.Context, s *Surface, r Resizer) {
	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-eventChan:
			if !ok || !handle(ev, s, r) {
				return
			}
		}
	}
}

func handle(ev tcell.Event, s *Surface, r Resizer) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q') {
			return false
		}
	case *tcell.EventResize:
		s.mu.Lock()
		s.screen.Sync()
		s.mu.Unlock()
		w, h := s.Size()
		if w > 0 && h > 0 {
			if err := r.Resize(w, h); err != nil {
				log.Printf("terminal: resize: %v", err)
			}
		}
	}
	return true
}
