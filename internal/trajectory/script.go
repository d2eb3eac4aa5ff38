package trajectory

import (
	"math/rand/v2"

	"smartcourt/internal/court"
	"smartcourt/internal/mathutil"
)

// ContactHeight is the height at which players strike the ball.
const ContactHeight = 1.0

var (
	referenceApexes  = []float64{1.6, 1.8, 1.5, 1.7, 1.55, 1.75}
	referenceOffsets = []float64{-1.2, 1.4, 0.6, -0.8, 0.2, -0.3}
)

// contactZ is the depth at which the players make contact, just inside
// their baselines.
func contactZ(c court.Court) float64 {
	return c.L()/2 - 2.8
}

// DefaultScript returns the six-shot reference rally. Shots alternate
// between the two ends; each ends at a lateral offset and the last one
// lands on the court.
func DefaultScript(c court.Court) Script {
	baseZ := contactZ(c)
	start := mathutil.Vec3{0.2, ContactHeight, baseZ - 0.6}
	return build(start, baseZ, referenceApexes, referenceOffsets)
}

// Generate returns an n-shot rally with random apexes and lateral
// offsets, continuous by construction. rng must not be nil.
func Generate(rng *rand.Rand, c court.Court, n int) Script {
	if n <= 0 {
		return nil
	}
	halfW := c.W()/2 - 0.6
	apexes := make([]float64, n)
	offsets := make([]float64, n)
	for i := range apexes {
		apexes[i] = 1.45 + rng.Float64()*0.45
		offsets[i] = (rng.Float64()*2 - 1) * halfW
	}
	baseZ := contactZ(c)
	start := mathutil.Vec3{(rng.Float64()*2 - 1) * 0.4, ContactHeight, baseZ - 0.6}
	return build(start, baseZ, apexes, offsets)
}

func build(start mathutil.Vec3, baseZ float64, apexes, offsets []float64) Script {
	s := make(Script, len(apexes))
	from := start
	for i := range apexes {
		// odd shots travel back toward +Z
		z := -(baseZ - 0.5)
		if i%2 == 1 {
			z = baseZ - 0.5
		}
		y := ContactHeight
		if i == len(apexes)-1 {
			y = 0
		}
		to := mathutil.Vec3{offsets[i], y, z}
		s[i] = Segment{Start: from, End: to, Apex: apexes[i]}
		from = to
	}
	return s
}
