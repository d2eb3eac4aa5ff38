package raster

// clipVert is a vertex in homogeneous clip space.
type clipVert struct {
	P    [4]float64
	U, V float64
}

// clipNear clips a convex polygon to the half-space w >= near, appending
// the result to out.
func clipNear(in []clipVert, near float64, out []clipVert) []clipVert {
	n := len(in)
	for i := 0; i < n; i++ {
		a, b := in[i], in[(i+1)%n]
		aIn, bIn := a.P[3] >= near, b.P[3] >= near
		if aIn {
			out = append(out, a)
		}
		if aIn != bIn {
			t := (near - a.P[3]) / (b.P[3] - a.P[3])
			out = append(out, lerpClip(a, b, t))
		}
	}
	return out
}

func lerpClip(a, b clipVert, t float64) clipVert {
	var c clipVert
	for k := 0; k < 4; k++ {
		c.P[k] = a.P[k] + (b.P[k]-a.P[k])*t
	}
	c.U = a.U + (b.U-a.U)*t
	c.V = a.V + (b.V-a.V)*t
	return c
}
