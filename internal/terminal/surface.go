// Package terminal presents frames in a text terminal. Each cell shows
// two vertically stacked pixels with an upper half block, and the last
// row carries the HUD as plain text.
package terminal

import (
	"fmt"
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"

	"smartcourt/internal/overlay"
	"smartcourt/internal/postprocess"
	"smartcourt/internal/sim"
)

// HUDRows is the number of text rows reserved below the picture.
const HUDRows = 1

const halfBlock = '▀'

var hudStyle = tcell.StyleDefault.
	Foreground(tcell.NewRGBColor(0xf4, 0xf7, 0xfb)).
	Background(tcell.NewRGBColor(0x06, 0x0b, 0x14))

// Surface draws onto a tcell screen.
type Surface struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// NewSurface wraps an initialized screen.
func NewSurface(screen tcell.Screen) *Surface {
	return &Surface{screen: screen}
}

// Size returns the pixel size: one column per cell, two rows per cell.
func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pixelSize(s.screen.Size())
}

func pixelSize(cols, rows int) (int, int) {
	rows -= HUDRows
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	return cols, rows * 2
}

// Present paints frame and the HUD line, then flushes the screen. A frame
// that no longer matches the screen size is rescaled.
func (s *Surface) Present(frame *image.NRGBA, snap sim.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cols, rows := s.screen.Size()
	w, h := pixelSize(cols, rows)
	if w == 0 {
		return nil
	}
	if b := frame.Bounds(); b.Dx() != w || b.Dy() != h {
		frame = postprocess.Scale(frame, w, h)
	}

	for cy := 0; cy < h/2; cy++ {
		for x := 0; x < w; x++ {
			top := frame.NRGBAAt(x, cy*2)
			bot := frame.NRGBAAt(x, cy*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			s.screen.SetContent(x, cy, halfBlock, nil, style)
		}
	}
	drawText(s.screen, 0, rows-1, cols, HUDLine(snap), hudStyle)
	s.screen.Show()
	return nil
}

// HUDLine condenses the overlay labels into one row.
func HUDLine(snap sim.Snapshot) string {
	l := overlay.Text(snap)
	return fmt.Sprintf(" %s | %s | A %s  B %s | rally %d", l.Clock, l.Angle, snap.LabelA, snap.LabelB, snap.Rallies+1)
}

func drawText(screen tcell.Screen, x, y, width int, s string, style tcell.Style) {
	col := x
	for _, r := range s {
		if col >= x+width {
			return
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < x+width; col++ {
		screen.SetContent(col, y, ' ', nil, style)
	}
}
