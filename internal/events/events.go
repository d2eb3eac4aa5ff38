// Package events carries notifications out of the simulation tick to
// presentation layers (HUD, sound cue, WebSocket stream).
package events

import "smartcourt/internal/mathutil"

// EventType identifies what happened.
type EventType int

const (
	// EventContact: a player struck the ball at the start of a shot.
	// Player is the hitter, Segment the shot index, Pos the ball.
	EventContact EventType = iota

	// EventPoint: the rally ended and Player won it. ScoreA/ScoreB hold
	// the score after the award.
	EventPoint

	// EventGameWon: Player reached the points-to-win threshold.
	EventGameWon

	// EventScoreReset: both scores returned to zero after a won game.
	EventScoreReset

	// EventRallyReset: players and ball are back on their marks.
	EventRallyReset

	// EventAngleChange: the camera director switched framing. Label holds
	// the new framing's display name.
	EventAngleChange
)

var typeNames = [...]string{
	EventContact:     "contact",
	EventPoint:       "point",
	EventGameWon:     "game_won",
	EventScoreReset:  "score_reset",
	EventRallyReset:  "rally_reset",
	EventAngleChange: "angle_change",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// MarshalText encodes the type by name in JSON payloads.
func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Event is one notification. Fields not meaningful for Type are zero.
type Event struct {
	Type    EventType     `json:"type"`
	Player  string        `json:"player,omitempty"`
	Segment int           `json:"segment"`
	ScoreA  int           `json:"score_a"`
	ScoreB  int           `json:"score_b"`
	Label   string        `json:"label,omitempty"`
	Pos     mathutil.Vec3 `json:"pos"`
	Elapsed float64       `json:"elapsed"`
}

// Queue buffers events between ticks. It is owned by the single
// simulation mutator and is not safe for concurrent use.
type Queue struct {
	events []Event
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Consume returns all pending events in FIFO order and empties the queue.
func (q *Queue) Consume() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of pending events.
func (q *Queue) Len() int { return len(q.events) }
