package overlay

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"smartcourt/internal/sim"
)

func snapshot() sim.Snapshot {
	return sim.Snapshot{
		ScoreA:  2,
		ScoreB:  3,
		LabelA:  "30",
		LabelB:  "40",
		Camera:  "Baseline Cam",
		Clock:   "21:04:59",
		Segment: 4,
		Rallies: 5,
	}
}

func TestText(t *testing.T) {
	l := Text(snapshot())
	tests := []struct {
		name, got, want string
	}{
		{"clock", l.Clock, "21:04:59"},
		{"brand", l.Clock, Brand},
		{"angle", l.Angle, "Baseline Cam"},
		{"row A", l.RowA, "30"},
		{"row B", l.RowB, "40"},
		{"ticker angle", l.Ticker, "Baseline Cam"},
		{"ticker rally", l.Ticker, "RALLY 6"},
		{"ticker shot", l.Ticker, "SHOT 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.got, tt.want) {
				t.Errorf("%q does not contain %q", tt.got, tt.want)
			}
		})
	}
}

func blank(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}

func TestDrawMarksCornersOnly(t *testing.T) {
	img := blank(320, 180)
	Draw(img, snapshot())

	black := color.NRGBA{A: 0xff}
	if img.NRGBAAt(160, 90) != black {
		t.Error("HUD drew over the middle of the frame")
	}
	changed := func(r image.Rectangle) bool {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				if img.NRGBAAt(x, y) != black {
					return true
				}
			}
		}
		return false
	}
	regions := map[string]image.Rectangle{
		"clock chip":  image.Rect(0, 0, 100, 30),
		"angle chip":  image.Rect(220, 0, 320, 30),
		"score board": image.Rect(0, 100, 120, 150),
		"ticker":      image.Rect(0, 150, 320, 180),
	}
	for name, r := range regions {
		if !changed(r) {
			t.Errorf("%s not drawn", name)
		}
	}
}

func TestDrawSkipsTinyFrames(t *testing.T) {
	img := blank(80, 40)
	Draw(img, snapshot())
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 {
			t.Fatal("HUD drawn on a frame below the minimum size")
		}
	}
}
