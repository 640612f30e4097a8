package cutpath

import "math"

// Shape operations: endpoints, tangents, key points, bounds, tessellation,
// length, closure, reversal and splitting.

// arcStep is the angular resolution used when tessellating curved shapes.
const arcStep = math.Pi / 36 // 5 degrees

// StartPoint returns the first point of the shape in traversal order.
func StartPoint(s Shape) Point {
	switch v := s.(type) {
	case Line:
		return v.Start
	case Arc:
		return v.StartPoint()
	case Circle:
		return polar(v.Center, v.Radius, 0)
	case Polyline:
		if len(v.Points) == 0 {
			return Point{}
		}
		return v.Points[0]
	case Ellipse:
		return v.PointAtParam(v.StartParam)
	default:
		panic(unknownShape(s))
	}
}

// EndPoint returns the last point of the shape in traversal order.
func EndPoint(s Shape) Point {
	switch v := s.(type) {
	case Line:
		return v.End
	case Arc:
		return v.EndPoint()
	case Circle:
		return polar(v.Center, v.Radius, 0)
	case Polyline:
		if len(v.Points) == 0 {
			return Point{}
		}
		if v.Closed {
			return v.Points[0]
		}
		return v.Points[len(v.Points)-1]
	case Ellipse:
		if v.IsFull() {
			return v.PointAtParam(v.StartParam)
		}
		return v.PointAtParam(v.EndParam)
	default:
		panic(unknownShape(s))
	}
}

// StartTangent returns the unit direction of travel at the start of the
// shape. ok is false for degenerate shapes.
func StartTangent(s Shape) (Point, bool) {
	switch v := s.(type) {
	case Line:
		d := v.End.Sub(v.Start)
		if d.Length() == 0 {
			return Point{}, false
		}
		return d.Normalize(), true
	case Arc:
		if v.Radius <= 0 {
			return Point{}, false
		}
		return v.tangentAtAngle(v.StartAngle), true
	case Circle:
		if v.Radius <= 0 {
			return Point{}, false
		}
		return Point{X: 0, Y: 1}, true
	case Polyline:
		if v.segmentCount() == 0 {
			return Point{}, false
		}
		t, _, ok := v.segmentTangents(0)
		return t, ok
	case Ellipse:
		if v.degenerate() {
			return Point{}, false
		}
		return v.tangentAtParam(v.StartParam), true
	default:
		panic(unknownShape(s))
	}
}

// EndTangent returns the unit direction of travel at the end of the shape.
// ok is false for degenerate shapes.
func EndTangent(s Shape) (Point, bool) {
	switch v := s.(type) {
	case Line:
		return StartTangent(v)
	case Arc:
		if v.Radius <= 0 {
			return Point{}, false
		}
		return v.tangentAtAngle(v.EndAngle), true
	case Circle:
		return StartTangent(v)
	case Polyline:
		n := v.segmentCount()
		if n == 0 {
			return Point{}, false
		}
		_, t, ok := v.segmentTangents(n - 1)
		return t, ok
	case Ellipse:
		if v.degenerate() {
			return Point{}, false
		}
		if v.IsFull() {
			return v.tangentAtParam(v.StartParam), true
		}
		return v.tangentAtParam(v.EndParam), true
	default:
		panic(unknownShape(s))
	}
}

// TangentAt returns the unit direction of travel at the point of s nearest
// to p. ok is false for degenerate shapes.
func TangentAt(s Shape, p Point) (Point, bool) {
	switch v := s.(type) {
	case Line:
		return StartTangent(v)
	case Arc:
		if v.Radius <= 0 {
			return Point{}, false
		}
		return v.tangentAtAngle(p.Sub(v.Center).Angle()), true
	case Circle:
		if v.Radius <= 0 {
			return Point{}, false
		}
		return Arc{Center: v.Center, Radius: v.Radius}.tangentAtAngle(p.Sub(v.Center).Angle()), true
	case Polyline:
		return v.tangentNear(p)
	case Ellipse:
		if v.degenerate() {
			return Point{}, false
		}
		return v.tangentAtParam(v.paramOf(p)), true
	default:
		panic(unknownShape(s))
	}
}

// tangentNear finds the segment closest to p and returns its direction there.
func (pl Polyline) tangentNear(p Point) (Point, bool) {
	best, bestDist := -1, math.MaxFloat64
	for i := range pl.segmentCount() {
		pts := pl.segmentPoints(i)
		for j := 1; j < len(pts); j++ {
			if d := distanceToSegment(p, pts[j-1], pts[j]); d < bestDist {
				best, bestDist = i, d
			}
		}
	}
	if best < 0 {
		return Point{}, false
	}
	p0, p1, b := pl.segment(best)
	if p0.Distance(p1) == 0 {
		return Point{}, false
	}
	if b == 0 {
		return p1.Sub(p0).Normalize(), true
	}
	center, _, _, sweep := bulgeArc(p0, p1, b)
	arc := Arc{Center: center, Radius: 1, Clockwise: sweep < 0}
	return arc.tangentAtAngle(p.Sub(center).Angle()), true
}

// KeyPoints returns the points used to decide whether two shapes touch.
// Degenerate shapes have no key points.
func KeyPoints(s Shape) []Point {
	switch v := s.(type) {
	case Line:
		if v.Start == v.End {
			return nil
		}
		return []Point{v.Start, v.End}
	case Arc:
		if v.Radius <= 0 {
			return nil
		}
		return []Point{v.StartPoint(), v.EndPoint(), v.Center}
	case Circle:
		if v.Radius <= 0 {
			return nil
		}
		return []Point{
			polar(v.Center, v.Radius, 0),
			polar(v.Center, v.Radius, math.Pi/2),
			polar(v.Center, v.Radius, math.Pi),
			polar(v.Center, v.Radius, 3*math.Pi/2),
			v.Center,
		}
	case Polyline:
		if len(v.Points) == 0 {
			return nil
		}
		return append([]Point(nil), v.Points...)
	case Ellipse:
		if v.degenerate() {
			return nil
		}
		if v.IsFull() {
			return []Point{
				v.PointAtParam(0),
				v.PointAtParam(math.Pi / 2),
				v.PointAtParam(math.Pi),
				v.PointAtParam(3 * math.Pi / 2),
				v.Center,
			}
		}
		return []Point{v.PointAtParam(v.StartParam), v.PointAtParam(v.EndParam), v.Center}
	default:
		panic(unknownShape(s))
	}
}

// Tessellate approximates the shape by a polyline running from its start
// point to its end point. Curves are sampled every 5 degrees.
func Tessellate(s Shape) []Point {
	switch v := s.(type) {
	case Line:
		return []Point{v.Start, v.End}
	case Arc:
		return sampleAngles(v.Center, v.Radius, v.StartAngle, v.Sweep())
	case Circle:
		return sampleAngles(v.Center, v.Radius, 0, twoPi)
	case Polyline:
		if len(v.Points) < 2 {
			return append([]Point(nil), v.Points...)
		}
		pts := []Point{v.Points[0]}
		for i := range v.segmentCount() {
			pts = append(pts, v.segmentPoints(i)[1:]...)
		}
		return pts
	case Ellipse:
		span := v.Span()
		n := stepsFor(span)
		pts := make([]Point, n+1)
		for i := range pts {
			pts[i] = v.PointAtParam(v.StartParam + span*float64(i)/float64(n))
		}
		return pts
	default:
		panic(unknownShape(s))
	}
}

// segmentPoints tessellates segment i including both endpoints.
func (pl Polyline) segmentPoints(i int) []Point {
	p0, p1, b := pl.segment(i)
	if b == 0 || p0 == p1 {
		return []Point{p0, p1}
	}
	center, radius, start, sweep := bulgeArc(p0, p1, b)
	pts := sampleAngles(center, radius, start, sweep)
	pts[0], pts[len(pts)-1] = p0, p1
	return pts
}

// stepsFor returns the number of segments needed to sample sweep at arcStep.
func stepsFor(sweep float64) int {
	return max(1, int(math.Ceil(math.Abs(sweep)/arcStep-1e-9)))
}

// sampleAngles samples a circular arc from start through the signed sweep.
func sampleAngles(center Point, radius, start, sweep float64) []Point {
	n := stepsFor(sweep)
	pts := make([]Point, n+1)
	for i := range pts {
		pts[i] = polar(center, radius, start+sweep*float64(i)/float64(n))
	}
	return pts
}

// BoundingBox returns the axis-aligned bounding box of the shape.
func BoundingBox(s Shape) Rect {
	switch v := s.(type) {
	case Line:
		return NewRect(v.Start, v.End)
	case Arc:
		r := NewRect(v.StartPoint(), v.EndPoint())
		sweep := v.Sweep()
		for k := range 4 {
			a := float64(k) * math.Pi / 2
			if angleInSweep(a, v.StartAngle, sweep) {
				r = r.Extend(polar(v.Center, v.Radius, a))
			}
		}
		return r
	case Circle:
		d := Point{X: v.Radius, Y: v.Radius}
		return Rect{Min: v.Center.Sub(d), Max: v.Center.Add(d)}
	case Polyline, Ellipse:
		return BoundsOf(Tessellate(v))
	default:
		panic(unknownShape(s))
	}
}

// angleInSweep reports whether angle a lies on the arc starting at start
// with the given signed sweep.
func angleInSweep(a, start, sweep float64) bool {
	if sweep >= 0 {
		return normalizeAngle(a-start) <= sweep
	}
	return normalizeAngle(start-a) <= -sweep
}

// Length returns the length of the shape's path.
func Length(s Shape) float64 {
	switch v := s.(type) {
	case Line:
		return v.Start.Distance(v.End)
	case Arc:
		return v.ArcLength()
	case Circle:
		return twoPi * v.Radius
	case Polyline:
		var total float64
		for i := range v.segmentCount() {
			p0, p1, b := v.segment(i)
			if b == 0 {
				total += p0.Distance(p1)
				continue
			}
			_, radius, _, sweep := bulgeArc(p0, p1, b)
			total += radius * math.Abs(sweep)
		}
		return total
	case Ellipse:
		return polylineLength(Tessellate(v))
	default:
		panic(unknownShape(s))
	}
}

func polylineLength(pts []Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].Distance(pts[i])
	}
	return total
}

// IsClosedShape reports whether the shape closes on itself: a circle, a
// full arc or ellipse, or a polyline that is flagged closed or whose ends
// meet within tol.
func IsClosedShape(s Shape, tol float64) bool {
	switch v := s.(type) {
	case Line:
		return false
	case Arc:
		return v.Radius > 0 && math.Abs(v.Sweep()) >= twoPi-fullTurnEpsilon
	case Circle:
		return v.Radius > 0
	case Polyline:
		if v.Closed {
			return len(v.Points) >= 2
		}
		return len(v.Points) >= 3 && v.Points[0].Near(v.Points[len(v.Points)-1], tol)
	case Ellipse:
		return !v.degenerate() && v.IsFull()
	default:
		panic(unknownShape(s))
	}
}

// Reverse returns the shape traversed in the opposite direction.
func Reverse(s Shape) Shape {
	switch v := s.(type) {
	case Line:
		v.Start, v.End = v.End, v.Start
		return v
	case Arc:
		v.StartAngle, v.EndAngle = v.EndAngle, v.StartAngle
		v.Clockwise = !v.Clockwise
		return v
	case Circle:
		return v
	case Polyline:
		return v.reversed()
	case Ellipse:
		v.StartParam, v.EndParam = v.EndParam, v.StartParam
		v.Clockwise = !v.Clockwise
		return v
	default:
		panic(unknownShape(s))
	}
}

// reversed reverses the vertex order. Bulges are reversed and negated, then
// rotated left by one so that each bulge again describes the segment that
// follows its vertex.
func (pl Polyline) reversed() Polyline {
	n := len(pl.Points)
	out := Polyline{Meta: pl.Meta, Closed: pl.Closed, Points: make([]Point, n)}
	for i, p := range pl.Points {
		out.Points[n-1-i] = p
	}
	if len(pl.Bulges) == 0 || n == 0 {
		return out
	}
	flipped := make([]float64, n)
	for i := range n {
		flipped[n-1-i] = -pl.bulge(i)
	}
	out.Bulges = make([]float64, n)
	for i := range n {
		out.Bulges[i] = flipped[(i+1)%n]
	}
	return out
}

// SplitMidpoint splits a line or arc into two halves at the middle of its
// path. ok is false for shapes that cannot be split.
func SplitMidpoint(s Shape) (first, second Shape, ok bool) {
	switch v := s.(type) {
	case Line:
		mid := v.Start.Lerp(v.End, 0.5)
		a, b := v, v
		a.ID, b.ID = v.ID+":1", v.ID+":2"
		a.End, b.Start = mid, mid
		return a, b, true
	case Arc:
		if v.Radius <= 0 {
			return nil, nil, false
		}
		mid := v.StartAngle + v.Sweep()/2
		a, b := v, v
		a.ID, b.ID = v.ID+":1", v.ID+":2"
		a.EndAngle, b.StartAngle = mid, mid
		return a, b, true
	case Circle, Polyline, Ellipse:
		return nil, nil, false
	default:
		panic(unknownShape(s))
	}
}
