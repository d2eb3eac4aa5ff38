package events

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestQueueConsumeIsFIFO(t *testing.T) {
	var q Queue
	if got := q.Consume(); got != nil {
		t.Errorf("Consume() on empty queue = %v", got)
	}
	q.Push(Event{Type: EventContact, Segment: 0})
	q.Push(Event{Type: EventContact, Segment: 1})
	q.Push(Event{Type: EventPoint})
	if q.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", q.Len())
	}
	got := q.Consume()
	if len(got) != 3 || got[0].Segment != 0 || got[1].Segment != 1 || got[2].Type != EventPoint {
		t.Errorf("Consume() = %v", got)
	}
	if q.Len() != 0 {
		t.Errorf("Len() after Consume = %d", q.Len())
	}
}

func TestEventTypeNames(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{EventContact, "contact"},
		{EventPoint, "point"},
		{EventGameWon, "game_won"},
		{EventScoreReset, "score_reset"},
		{EventRallyReset, "rally_reset"},
		{EventAngleChange, "angle_change"},
		{EventType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("EventType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestEventJSONUsesTypeName(t *testing.T) {
	b, err := json.Marshal(Event{Type: EventGameWon, Player: "A", ScoreA: 4})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"type":"game_won"`) {
		t.Errorf("json = %s", b)
	}
}
