package postprocess

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestDownsampleSize(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		w, h       int
		wantW      int
		wantH      int
	}{
		{"2x", 128, 72, 64, 36, 64, 36},
		{"3x", 96, 48, 32, 16, 32, 16},
		{"already small", 32, 18, 64, 36, 32, 18},
		{"invalid target", 32, 18, 0, 0, 32, 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Downsample(solid(tt.srcW, tt.srcH, color.NRGBA{A: 255}), tt.w, tt.h)
			if out.Bounds().Dx() != tt.wantW || out.Bounds().Dy() != tt.wantH {
				t.Errorf("size = %v", out.Bounds())
			}
		})
	}
}

func TestDownsampleKeepsFlatColor(t *testing.T) {
	c := color.NRGBA{R: 25, G: 200, B: 244, A: 255}
	out := Downsample(solid(64, 64, c), 16, 16)
	if got := out.NRGBAAt(8, 8); got != c {
		t.Errorf("centre = %v, want %v", got, c)
	}
}

func TestScale(t *testing.T) {
	out := Scale(solid(10, 10, color.NRGBA{R: 9, A: 255}), 3, 7)
	if out.Bounds().Dx() != 3 || out.Bounds().Dy() != 7 {
		t.Errorf("size = %v", out.Bounds())
	}
}
