// Package overlay renders the broadcast-style HUD over a frame: clock
// chip, camera-angle chip, rally score board and angle ticker.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"smartcourt/internal/sim"
)

// Brand is the channel tag shown in the clock chip.
const Brand = "ONTV • Tennis"

// Frames smaller than this get no HUD.
const (
	MinWidth  = 200
	MinHeight = 120
)

var (
	chipBG    = color.NRGBA{R: 0x06, G: 0x0b, B: 0x14, A: 0xc8}
	accentBG  = color.NRGBA{R: 0x19, G: 0xc8, B: 0xf4, A: 0xe0}
	textColor = color.NRGBA{R: 0xf4, G: 0xf7, B: 0xfb, A: 0xff}
	dimText   = color.NRGBA{R: 0x9f, G: 0xb3, B: 0xc8, A: 0xff}
)

// Labels is the HUD text derived from a snapshot.
type Labels struct {
	Clock  string
	Angle  string
	Title  string
	RowA   string
	RowB   string
	Ticker string
}

// Text returns the HUD strings for s.
func Text(s sim.Snapshot) Labels {
	return Labels{
		Clock:  fmt.Sprintf("%s  %s", Brand, s.Clock),
		Angle:  s.Camera,
		Title:  "Rally Score",
		RowA:   fmt.Sprintf("Player A  %4s", s.LabelA),
		RowB:   fmt.Sprintf("Player B  %4s", s.LabelB),
		Ticker: fmt.Sprintf("ANGLE > %s   RALLY %d   SHOT %d", s.Camera, s.Rallies+1, s.Segment+1),
	}
}

const (
	pad     = 6
	lineH   = 15
	margin  = 8
	ascent  = 11
	padText = 4
)

// Draw paints the HUD for s onto dst. Frames below MinWidth×MinHeight
// are left untouched.
func Draw(dst *image.NRGBA, s sim.Snapshot) {
	b := dst.Bounds()
	if b.Dx() < MinWidth || b.Dy() < MinHeight {
		return
	}
	l := Text(s)
	face := basicfont.Face7x13

	// clock chip, top left
	chip(dst, face, b.Min.X+margin, b.Min.Y+margin, l.Clock, chipBG, textColor)

	// angle chip, top right
	w := font.MeasureString(face, l.Angle).Ceil() + 2*pad
	chip(dst, face, b.Max.X-margin-w, b.Min.Y+margin, l.Angle, accentBG, color.NRGBA{A: 0xff})

	// score board, bottom left
	rows := []string{l.Title, l.RowA, l.RowB}
	boardW := 0
	for _, r := range rows {
		boardW = max(boardW, font.MeasureString(face, r).Ceil())
	}
	boardW += 2 * pad
	boardH := len(rows)*lineH + padText
	x0, y0 := b.Min.X+margin, b.Max.Y-margin-lineH-padText-margin-boardH
	fill(dst, image.Rect(x0, y0, x0+boardW, y0+boardH), chipBG)
	for i, r := range rows {
		c := textColor
		if i == 0 {
			c = dimText
		}
		text(dst, face, x0+pad, y0+padText+i*lineH+ascent, r, c)
	}

	// ticker, full-width bottom strip
	ty := b.Max.Y - margin - lineH - padText
	fill(dst, image.Rect(b.Min.X, ty, b.Max.X, ty+lineH+padText), chipBG)
	text(dst, face, b.Min.X+margin, ty+padText/2+ascent, l.Ticker, dimText)
}

func chip(dst *image.NRGBA, face font.Face, x, y int, s string, bg, fg color.NRGBA) {
	w := font.MeasureString(face, s).Ceil() + 2*pad
	fill(dst, image.Rect(x, y, x+w, y+lineH+padText), bg)
	text(dst, face, x+pad, y+padText/2+ascent, s, fg)
}

func fill(dst *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

func text(dst *image.NRGBA, face font.Face, x, y int, s string, c color.NRGBA) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
