package cutpath

import "math"

// Polygon operations for area calculation, containment testing and
// boundary distance on tessellated chains.

// Polygon is a closed ring of points. The closing edge from the last point
// back to the first is implicit; a repeated first point is harmless.
type Polygon []Point

// SignedArea returns the signed area enclosed by the ring using the
// shoelace formula. Positive for counterclockwise rings (Y up), negative for
// clockwise.
func (pg Polygon) SignedArea() float64 {
	if len(pg) < 3 {
		return 0
	}
	var area float64
	prev := pg[len(pg)-1]
	for _, p := range pg {
		area += lineArea(prev, p)
		prev = p
	}
	return area
}

// Area returns the unsigned area of the ring.
func (pg Polygon) Area() float64 {
	return math.Abs(pg.SignedArea())
}

// lineArea computes the contribution of a line segment to the signed area.
// Uses the shoelace formula: 0.5 * (x0*y1 - x1*y0)
func lineArea(p0, p1 Point) float64 {
	return 0.5 * (p0.X*p1.Y - p1.X*p0.Y)
}

// Contains tests whether pt is inside the ring with the crossing-number
// (even-odd) rule: a horizontal ray to the right is cast from pt and the
// edges it crosses are counted.
func (pg Polygon) Contains(pt Point) bool {
	if len(pg) < 3 {
		return false
	}
	inside := false
	prev := pg[len(pg)-1]
	for _, p := range pg {
		if crosses(prev, p, pt) {
			inside = !inside
		}
		prev = p
	}
	return inside
}

// crosses reports whether the edge p0-p1 crosses the ray going right from
// pt. The half-open test on Y counts shared vertices once.
func crosses(p0, p1, pt Point) bool {
	if (p0.Y > pt.Y) == (p1.Y > pt.Y) {
		return false
	}
	x := p0.X + (pt.Y-p0.Y)*(p1.X-p0.X)/(p1.Y-p0.Y)
	return pt.X < x
}

// BoundaryDistance returns the distance from pt to the nearest edge of the
// ring.
func (pg Polygon) BoundaryDistance(pt Point) float64 {
	if len(pg) == 0 {
		return math.Inf(1)
	}
	if len(pg) == 1 {
		return pt.Distance(pg[0])
	}
	best := math.Inf(1)
	prev := pg[len(pg)-1]
	for _, p := range pg {
		best = math.Min(best, distanceToSegment(pt, prev, p))
		prev = p
	}
	return best
}

// Bounds returns the bounding box of the ring.
func (pg Polygon) Bounds() Rect {
	return BoundsOf(pg)
}

// distanceToSegment returns the distance from p to the segment a-b.
func distanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/lenSq))
	return p.Distance(a.Add(ab.Mul(t)))
}
