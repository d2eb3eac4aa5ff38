package config

import (
	"math/rand/v2"

	"smartcourt/internal/court"
	"smartcourt/internal/rally"
	"smartcourt/internal/sim"
	"smartcourt/internal/trajectory"
)

// SimOptions builds the simulation options described by c. Shots > 0
// selects a generated rally seeded by Seed; otherwise the reference
// six-shot rally is used.
func (c *Config) SimOptions() sim.Options {
	ct := court.Default()
	rng := rand.New(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15))

	var script trajectory.Script
	if c.Shots > 0 {
		script = trajectory.Generate(rng, ct, c.Shots)
	}

	outcome := rally.CoinFlip(rng)
	if c.Outcome == OutcomeReach {
		outcome = rally.Reach(c.ReachRadius)
	}

	return sim.Options{
		Court:     ct,
		Script:    script,
		TrailSize: c.TrailSize,
		Rally: rally.Config{
			PointsToWin: c.PointsToWin,
			Outcome:     outcome,
		},
		Width:  c.Width,
		Height: c.Height,
	}
}
