package raster

import (
	"image/color"
	"math"
)

// DrawSprite blends a soft-edged disc centred at (cx, cy) with the given
// pixel radius. Pixels behind existing geometry (depth = 1/w) are left
// alone; the sprite never writes depth.
func DrawSprite(fb *FrameBuffer, cx, cy, radius, depth float64, c color.NRGBA, opacity float64) {
	if radius <= 0 || opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	minX := max(int(math.Floor(cx-radius)), 0)
	maxX := min(int(math.Ceil(cx+radius)), fb.Width-1)
	minY := max(int(math.Floor(cy-radius)), 0)
	maxY := min(int(math.Ceil(cy+radius)), fb.Height-1)

	r2 := radius * radius
	for sy := minY; sy <= maxY; sy++ {
		dy := float64(sy) + 0.5 - cy
		for sx := minX; sx <= maxX; sx++ {
			dx := float64(sx) + 0.5 - cx
			d2 := dx*dx + dy*dy
			if d2 > r2 {
				continue
			}
			zIdx := sy*fb.Width + sx
			if depth <= fb.ZBuf[zIdx] {
				continue
			}
			// fade the outer quarter of the disc
			a := opacity
			if edge := 1 - math.Sqrt(d2)/radius; edge < 0.25 {
				a *= edge / 0.25
			}
			i := zIdx * 4
			fb.Color[i] = blend(fb.Color[i], c.R, a)
			fb.Color[i+1] = blend(fb.Color[i+1], c.G, a)
			fb.Color[i+2] = blend(fb.Color[i+2], c.B, a)
		}
	}
}

func blend(dst, src uint8, a float64) uint8 {
	return clamp255(float64(dst)*(1-a) + float64(src)*a)
}
