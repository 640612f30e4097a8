package cutpath

import (
	"fmt"
	"math"
)

// Shape is one drawing primitive: Line, Arc, Circle, Polyline or Ellipse.
//
// The set of variants is closed; every function in this package that takes
// a Shape switches over all five and panics on anything else. Shapes are
// values: Reverse and SplitMidpoint return new shapes and never modify their
// input.
type Shape interface {
	// Info returns the identifier and source layer of the shape.
	Info() Meta
	isShape()
}

// Meta carries the identity of a shape inside its drawing.
type Meta struct {
	ID    string
	Layer string
}

// Info returns m.
func (m Meta) Info() Meta { return m }

// Line is a straight segment from Start to End.
type Line struct {
	Meta
	Start, End Point
}

// Arc is a circular arc around Center. The arc runs from StartAngle to
// EndAngle (radians), counterclockwise unless Clockwise is set.
type Arc struct {
	Meta
	Center     Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
	Clockwise  bool
}

// Circle is a full circle traversed counterclockwise from angle 0.
type Circle struct {
	Meta
	Center Point
	Radius float64
}

// Polyline is a sequence of vertices joined by straight or circular
// segments. Bulges[i] describes the segment that leaves Points[i]: it is the
// tangent of a quarter of the segment's sweep angle, positive for a
// counterclockwise arc and zero for a straight segment. Bulges may be
// shorter than Points; missing entries are zero. For a closed polyline the
// last bulge describes the closing segment back to Points[0].
type Polyline struct {
	Meta
	Points []Point
	Bulges []float64
	Closed bool
}

// Ellipse is an ellipse or elliptical arc. MajorAxis is the vector from the
// center to the end of the major axis and Ratio the minor/major length
// ratio. The parametric angle runs from StartParam to EndParam,
// counterclockwise unless Clockwise is set; a span of zero or a full turn
// is a complete ellipse.
type Ellipse struct {
	Meta
	Center     Point
	MajorAxis  Point
	Ratio      float64
	StartParam float64
	EndParam   float64
	Clockwise  bool
}

func (Line) isShape()     {}
func (Arc) isShape()      {}
func (Circle) isShape()   {}
func (Polyline) isShape() {}
func (Ellipse) isShape()  {}

const twoPi = 2 * math.Pi

// fullTurnEpsilon absorbs rounding when deciding whether a sweep is a full turn.
const fullTurnEpsilon = 1e-9

// normalizeAngle maps a into [0, 2*pi).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}

// signedSweep returns the signed angular span from start to end travelling
// in the given direction. Equal angles denote a full turn.
func signedSweep(start, end float64, clockwise bool) float64 {
	if clockwise {
		d := normalizeAngle(start - end)
		if d < fullTurnEpsilon {
			d = twoPi
		}
		return -d
	}
	d := normalizeAngle(end - start)
	if d < fullTurnEpsilon {
		d = twoPi
	}
	return d
}

// Sweep returns the signed sweep angle of the arc: positive when
// counterclockwise, negative when clockwise.
func (a Arc) Sweep() float64 {
	return signedSweep(a.StartAngle, a.EndAngle, a.Clockwise)
}

// StartPoint returns the point at StartAngle.
func (a Arc) StartPoint() Point {
	return polar(a.Center, a.Radius, a.StartAngle)
}

// EndPoint returns the point at EndAngle.
func (a Arc) EndPoint() Point {
	return polar(a.Center, a.Radius, a.EndAngle)
}

// PointAt returns the point at fraction t in [0, 1] of the sweep.
func (a Arc) PointAt(t float64) Point {
	return polar(a.Center, a.Radius, a.StartAngle+a.Sweep()*t)
}

// ArcLength returns the length of the arc.
func (a Arc) ArcLength() float64 {
	return a.Radius * math.Abs(a.Sweep())
}

// tangentAtAngle returns the unit direction of travel at angle phi.
func (a Arc) tangentAtAngle(phi float64) Point {
	t := Point{X: -math.Sin(phi), Y: math.Cos(phi)}
	if a.Clockwise {
		return t.Neg()
	}
	return t
}

// Span returns the signed parametric span of the ellipse.
func (e Ellipse) Span() float64 {
	if e.StartParam == e.EndParam {
		if e.Clockwise {
			return -twoPi
		}
		return twoPi
	}
	return signedSweep(e.StartParam, e.EndParam, e.Clockwise)
}

// IsFull reports whether the ellipse is closed.
func (e Ellipse) IsFull() bool {
	return math.Abs(e.Span()) >= twoPi-fullTurnEpsilon
}

// MinorAxis returns the vector from the center to the end of the minor axis.
func (e Ellipse) MinorAxis() Point {
	return e.MajorAxis.LeftNormal().Mul(e.Ratio)
}

// PointAtParam returns the point at parametric angle t.
func (e Ellipse) PointAtParam(t float64) Point {
	sin, cos := math.Sincos(t)
	return e.Center.Add(e.MajorAxis.Mul(cos)).Add(e.MinorAxis().Mul(sin))
}

// paramOf returns the parametric angle of the ellipse point closest in
// direction to p.
func (e Ellipse) paramOf(p Point) float64 {
	d := p.Sub(e.Center)
	major, minor := e.MajorAxis, e.MinorAxis()
	return math.Atan2(d.Dot(minor)/minor.Dot(minor), d.Dot(major)/major.Dot(major))
}

// tangentAtParam returns the unit direction of travel at parametric angle t.
func (e Ellipse) tangentAtParam(t float64) Point {
	sin, cos := math.Sincos(t)
	d := e.MajorAxis.Mul(-sin).Add(e.MinorAxis().Mul(cos)).Normalize()
	if e.Clockwise {
		return d.Neg()
	}
	return d
}

func (e Ellipse) degenerate() bool {
	return e.MajorAxis.Length() == 0 || e.Ratio <= 0
}

// segmentCount returns the number of drawable segments.
func (pl Polyline) segmentCount() int {
	n := len(pl.Points)
	switch {
	case n < 2:
		return 0
	case pl.Closed:
		return n
	default:
		return n - 1
	}
}

// bulge returns the bulge of segment i, treating missing entries as zero.
func (pl Polyline) bulge(i int) float64 {
	if i < len(pl.Bulges) {
		return pl.Bulges[i]
	}
	return 0
}

// segment returns the endpoints and bulge of segment i.
func (pl Polyline) segment(i int) (p0, p1 Point, b float64) {
	return pl.Points[i], pl.Points[(i+1)%len(pl.Points)], pl.bulge(i)
}

// bulgeArc converts a bulge segment into its circle. The returned sweep is
// signed: positive for counterclockwise.
func bulgeArc(p0, p1 Point, b float64) (center Point, radius, startAngle, sweep float64) {
	chord := p1.Sub(p0)
	c := chord.Length()
	sweep = 4 * math.Atan(b)
	mid := p0.Lerp(p1, 0.5)
	offset := (c / 2) * (1 - b*b) / (2 * b)
	center = mid.Add(chord.Normalize().LeftNormal().Mul(offset))
	radius = center.Distance(p0)
	startAngle = p0.Sub(center).Angle()
	return center, radius, startAngle, sweep
}

// segmentTangents returns the travel direction at both ends of segment i.
func (pl Polyline) segmentTangents(i int) (start, end Point, ok bool) {
	p0, p1, b := pl.segment(i)
	chord := p1.Sub(p0)
	if chord.Length() == 0 {
		return Point{}, Point{}, false
	}
	dir := chord.Normalize()
	if b == 0 {
		return dir, dir, true
	}
	half := 2 * math.Atan(b)
	return dir.Rotate(-half), dir.Rotate(half), true
}

func unknownShape(s Shape) string {
	return fmt.Sprintf("cutpath: unknown shape type %T", s)
}
