package layout

// TextRole classifies a text span so styles can pick fonts and weights.
type TextRole string

const (
	RoleLabel      TextRole = "label"       // left-hand variable label column
	RoleRightLabel TextRole = "right_label" // right-hand annotation column
	RoleGroup      TextRole = "group"       // group header row
	RoleHeader     TextRole = "header"      // table header row
	RoleTick       TextRole = "tick"        // x-axis tick label
	RoleAxisTitle  TextRole = "axis_title"  // x/y axis titles
)

// Marker is one estimate point.
type Marker struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Row int     `json:"row"`
}

// Segment is one horizontal confidence-interval line.
type Segment struct {
	X1  float64 `json:"x1"`
	X2  float64 `json:"x2"`
	Y   float64 `json:"y"`
	Row int     `json:"row"`
}

// Band is one alternate-row background stripe, spanning the full canvas.
type Band struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	W   float64 `json:"w"`
	H   float64 `json:"h"`
	Row int     `json:"row"`
}

// Line is a straight guide: reference line, axis spine, or table rule.
type Line struct {
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
	Dashed bool    `json:"dashed,omitempty"`
}

// Text is one positioned text span.
type Text struct {
	Value  string   `json:"value"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Role   TextRole `json:"role"`
	Anchor string   `json:"anchor"` // "start", "middle", or "end"
	Mono   bool     `json:"mono,omitempty"`
}

// Tick is one x-axis tick: the data value and its canvas position.
type Tick struct {
	Value float64 `json:"value"`
	X     float64 `json:"x"`
	Label string  `json:"label"`
}
