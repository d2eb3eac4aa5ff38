package rally

// PointsToWin is the reference game threshold.
const PointsToWin = 4

var pointLabels = [...]string{"0", "15", "30", "40", "Game"}

// Player names one side of the court.
type Player int

const (
	PlayerA Player = iota
	PlayerB
)

func (p Player) String() string {
	if p == PlayerB {
		return "B"
	}
	return "A"
}

// Other returns the opponent.
func (p Player) Other() Player {
	if p == PlayerA {
		return PlayerB
	}
	return PlayerA
}

// Score is the current game score.
type Score struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Award gives p one point without exceeding limit and reports whether p
// is now at the limit.
func (s *Score) Award(p Player, limit int) bool {
	pts := &s.A
	if p == PlayerB {
		pts = &s.B
	}
	if *pts < limit {
		*pts++
	}
	return *pts >= limit
}

// Get returns p's points.
func (s Score) Get(p Player) int {
	if p == PlayerB {
		return s.B
	}
	return s.A
}

// Label renders points in tennis style. Values past "Game" stay "Game";
// negative values render as "0".
func Label(points int) string {
	switch {
	case points < 0:
		return pointLabels[0]
	case points >= len(pointLabels):
		return pointLabels[len(pointLabels)-1]
	}
	return pointLabels[points]
}
