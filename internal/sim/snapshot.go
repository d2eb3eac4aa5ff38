package sim

import (
	"time"

	"smartcourt/internal/mathutil"
)

// Snapshot is a read-only copy of the state the overlay and remote
// viewers display.
type Snapshot struct {
	ScoreA      int           `json:"score_a"`
	ScoreB      int           `json:"score_b"`
	LabelA      string        `json:"label_a"`
	LabelB      string        `json:"label_b"`
	PointsToWin int           `json:"points_to_win"`
	Camera      string        `json:"camera"`
	Clock       string        `json:"clock"`
	Elapsed     float64       `json:"elapsed"`
	State       string        `json:"state"`
	Segment     int           `json:"segment"`
	Progress    float64       `json:"progress"`
	Ball        mathutil.Vec3 `json:"ball"`
	Trail       int           `json:"trail"`
	Rallies     int           `json:"rallies"`
	Frame       uint64        `json:"frame"`
}

// Clock formats wall-clock time as HH:MM:SS.
func Clock(t time.Time) string {
	return t.Format("15:04:05")
}
