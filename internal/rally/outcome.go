package rally

import (
	"math/rand/v2"

	"smartcourt/internal/mathutil"
)

// Result describes how a rally finished, for deciding who won it.
type Result struct {
	LastHitter  Player
	Landing     mathutil.Vec3
	ReceiverPos mathutil.Vec3
}

// OutcomeFunc picks the winner of a finished rally.
type OutcomeFunc func(Result) Player

// CoinFlip picks either player with equal probability.
func CoinFlip(rng *rand.Rand) OutcomeFunc {
	return func(Result) Player {
		if rng.IntN(2) == 0 {
			return PlayerA
		}
		return PlayerB
	}
}

// Reach awards the point to the receiver when they are within radius of
// where the ball landed, and to the last hitter otherwise.
func Reach(radius float64) OutcomeFunc {
	return func(r Result) Player {
		if r.ReceiverPos.PlanarDist(r.Landing) <= radius {
			return r.LastHitter.Other()
		}
		return r.LastHitter
	}
}

// Always returns an outcome that always picks p.
func Always(p Player) OutcomeFunc {
	return func(Result) Player { return p }
}
