package cutpath

// Chain is an ordered sequence of shapes meant to be cut as one continuous
// path.
type Chain struct {
	ID     string
	Shapes []Shape

	// Clockwise is an optional orientation hint. A nil hint resolves to
	// true, see ClockwiseOrDefault.
	Clockwise *bool

	// OriginID names the chain this one was derived from, for example by a
	// kerf offset. Derived chains inherit the part role of their origin.
	OriginID string
}

// Orientation is the winding direction of a closed chain.
type Orientation int

const (
	// OrientationUnknown is reported for open or degenerate chains.
	OrientationUnknown Orientation = iota
	// OrientationClockwise is a clockwise ring (Y up).
	OrientationClockwise
	// OrientationCounterclockwise is a counterclockwise ring (Y up).
	OrientationCounterclockwise
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case OrientationClockwise:
		return "clockwise"
	case OrientationCounterclockwise:
		return "counterclockwise"
	default:
		return "unknown"
	}
}

// Bool returns a pointer to b, for filling optional fields such as
// Chain.Clockwise.
func Bool(b bool) *bool { return &b }

// ClockwiseOrDefault resolves the orientation hint. Chains without a hint
// are treated as clockwise.
func (c Chain) ClockwiseOrDefault() bool {
	if c.Clockwise == nil {
		return true
	}
	return *c.Clockwise
}

// IsEmpty reports whether the chain has no shapes.
func (c Chain) IsEmpty() bool {
	return len(c.Shapes) == 0
}

// StartPoint returns the start point of the first shape.
func (c Chain) StartPoint() Point {
	if c.IsEmpty() {
		return Point{}
	}
	return StartPoint(c.Shapes[0])
}

// EndPoint returns the end point of the last shape.
func (c Chain) EndPoint() Point {
	if c.IsEmpty() {
		return Point{}
	}
	return EndPoint(c.Shapes[len(c.Shapes)-1])
}

// IsClosed reports whether the chain forms a loop: a single closed shape,
// or a sequence whose end returns to its start within tol.
func (c Chain) IsClosed(tol float64) bool {
	switch len(c.Shapes) {
	case 0:
		return false
	case 1:
		if IsClosedShape(c.Shapes[0], tol) {
			return true
		}
		if _, ok := c.Shapes[0].(Line); ok {
			return false
		}
	}
	return c.StartPoint().Near(c.EndPoint(), tol)
}

// Tessellate returns the polyline approximation of the whole chain, in
// traversal order without duplicated joints.
func (c Chain) Tessellate() []Point {
	var pts []Point
	for _, s := range c.Shapes {
		sp := Tessellate(s)
		if len(pts) > 0 && len(sp) > 0 && pts[len(pts)-1] == sp[0] {
			sp = sp[1:]
		}
		pts = append(pts, sp...)
	}
	return pts
}

// Polygon returns the tessellated chain as a ring.
func (c Chain) Polygon() Polygon {
	return Polygon(c.Tessellate())
}

// BoundingBox returns the union of the bounding boxes of all shapes.
func (c Chain) BoundingBox() Rect {
	if c.IsEmpty() {
		return Rect{}
	}
	r := emptyRect
	for _, s := range c.Shapes {
		r = r.Union(BoundingBox(s))
	}
	return r
}

// Length returns the total path length of the chain.
func (c Chain) Length() float64 {
	var total float64
	for _, s := range c.Shapes {
		total += Length(s)
	}
	return total
}

// Orientation computes the winding of a closed chain from the sign of its
// tessellated area. Open chains report OrientationUnknown.
func (c Chain) Orientation(tol float64) Orientation {
	if !c.IsClosed(tol) {
		return OrientationUnknown
	}
	area := c.Polygon().SignedArea()
	switch {
	case area > 0:
		return OrientationCounterclockwise
	case area < 0:
		return OrientationClockwise
	default:
		return OrientationUnknown
	}
}

// Reversed returns the chain traversed backwards: shapes in reverse order,
// each shape reversed, and the orientation hint flipped when present.
func (c Chain) Reversed() Chain {
	out := c
	out.Shapes = make([]Shape, len(c.Shapes))
	for i, s := range c.Shapes {
		out.Shapes[len(c.Shapes)-1-i] = Reverse(s)
	}
	if c.Clockwise != nil {
		out.Clockwise = Bool(!*c.Clockwise)
	}
	return out
}

// StartTangent returns the direction of travel at the chain's start point.
func (c Chain) StartTangent() (Point, bool) {
	if c.IsEmpty() {
		return Point{}, false
	}
	return StartTangent(c.Shapes[0])
}

// EndTangent returns the direction of travel at the chain's end point.
func (c Chain) EndTangent() (Point, bool) {
	if c.IsEmpty() {
		return Point{}, false
	}
	return EndTangent(c.Shapes[len(c.Shapes)-1])
}
