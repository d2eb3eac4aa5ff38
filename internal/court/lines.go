package court

// Line is one painted stroke on the surface, in world XZ coordinates.
type Line struct {
	Name   string
	X0, Z0 float64
	X1, Z1 float64
	Width  float64
}

const (
	// LineWidth is the world width of boundary and service lines.
	LineWidth = 0.095
	// MarkWidth is the world width of the centre marks.
	MarkWidth = 0.074
	// MarkLength is how far a centre mark reaches into the court.
	MarkLength = 0.24
)

// Lines returns the singles box, both service lines, the centre service
// line and the two centre marks.
func (c Court) Lines() []Line {
	hw, hl, s := c.W()/2, c.L()/2, c.ServiceZ()
	return []Line{
		{Name: "baseline_far", X0: -hw, Z0: -hl, X1: hw, Z1: -hl, Width: LineWidth},
		{Name: "baseline_near", X0: -hw, Z0: hl, X1: hw, Z1: hl, Width: LineWidth},
		{Name: "sideline_left", X0: -hw, Z0: -hl, X1: -hw, Z1: hl, Width: LineWidth},
		{Name: "sideline_right", X0: hw, Z0: -hl, X1: hw, Z1: hl, Width: LineWidth},
		{Name: "service_far", X0: -hw, Z0: -s, X1: hw, Z1: -s, Width: LineWidth},
		{Name: "service_near", X0: -hw, Z0: s, X1: hw, Z1: s, Width: LineWidth},
		{Name: "centre_service", X0: 0, Z0: -s, X1: 0, Z1: s, Width: LineWidth},
		{Name: "centre_mark_far", X0: 0, Z0: -hl, X1: 0, Z1: -hl + MarkLength, Width: MarkWidth},
		{Name: "centre_mark_near", X0: 0, Z0: hl, X1: 0, Z1: hl - MarkLength, Width: MarkWidth},
	}
}
