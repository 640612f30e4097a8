package cutpath

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func assertPointNear(t *testing.T, want, got Point, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, delta, msgAndArgs...)
}

func TestStartEndPoint(t *testing.T) {
	tests := []struct {
		name      string
		shape     Shape
		wantStart Point
		wantEnd   Point
	}{
		{
			name:      "line",
			shape:     Line{Start: Pt(1, 2), End: Pt(3, 4)},
			wantStart: Pt(1, 2),
			wantEnd:   Pt(3, 4),
		},
		{
			name:      "arc counterclockwise",
			shape:     Arc{Center: Pt(0, 0), Radius: 1, StartAngle: 0, EndAngle: math.Pi / 2},
			wantStart: Pt(1, 0),
			wantEnd:   Pt(0, 1),
		},
		{
			name:      "arc clockwise",
			shape:     Arc{Center: Pt(1, 1), Radius: 2, StartAngle: math.Pi, EndAngle: math.Pi / 2, Clockwise: true},
			wantStart: Pt(-1, 1),
			wantEnd:   Pt(1, 3),
		},
		{
			name:      "circle",
			shape:     Circle{Center: Pt(5, 5), Radius: 2},
			wantStart: Pt(7, 5),
			wantEnd:   Pt(7, 5),
		},
		{
			name:      "open polyline",
			shape:     Polyline{Points: []Point{Pt(0, 0), Pt(1, 0), Pt(1, 1)}},
			wantStart: Pt(0, 0),
			wantEnd:   Pt(1, 1),
		},
		{
			name:      "closed polyline",
			shape:     Polyline{Points: []Point{Pt(0, 0), Pt(1, 0), Pt(1, 1)}, Closed: true},
			wantStart: Pt(0, 0),
			wantEnd:   Pt(0, 0),
		},
		{
			name:      "elliptical arc",
			shape:     Ellipse{Center: Pt(0, 0), MajorAxis: Pt(2, 0), Ratio: 0.5, StartParam: 0, EndParam: math.Pi / 2},
			wantStart: Pt(2, 0),
			wantEnd:   Pt(0, 1),
		},
		{
			name:      "full ellipse",
			shape:     Ellipse{Center: Pt(0, 0), MajorAxis: Pt(0, 3), Ratio: 0.5},
			wantStart: Pt(0, 3),
			wantEnd:   Pt(0, 3),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertPointNear(t, tt.wantStart, StartPoint(tt.shape), eps, "start")
			assertPointNear(t, tt.wantEnd, EndPoint(tt.shape), eps, "end")
		})
	}
}

func TestTangents(t *testing.T) {
	tests := []struct {
		name      string
		shape     Shape
		wantStart Point
		wantEnd   Point
	}{
		{"line", Line{Start: Pt(0, 0), End: Pt(3, 4)}, Pt(0.6, 0.8), Pt(0.6, 0.8)},
		{"arc ccw", Arc{Radius: 1, StartAngle: 0, EndAngle: math.Pi / 2}, Pt(0, 1), Pt(-1, 0)},
		{"arc cw", Arc{Radius: 1, StartAngle: 0, EndAngle: -math.Pi / 2, Clockwise: true}, Pt(0, -1), Pt(-1, 0)},
		{"circle", Circle{Radius: 3}, Pt(0, 1), Pt(0, 1)},
		{
			"bulged polyline",
			Polyline{Points: []Point{Pt(0, 0), Pt(2, 0), Pt(2, 5)}, Bulges: []float64{1, 0}},
			Pt(0, -1), Pt(0, 1),
		},
		{"ellipse", Ellipse{MajorAxis: Pt(2, 0), Ratio: 0.5, EndParam: math.Pi}, Pt(0, 1), Pt(0, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, ok := StartTangent(tt.shape)
			require.True(t, ok)
			assertPointNear(t, tt.wantStart, start, 1e-9, "start tangent")
			end, ok := EndTangent(tt.shape)
			require.True(t, ok)
			assertPointNear(t, tt.wantEnd, end, 1e-9, "end tangent")
		})
	}
}

func TestTangentAt(t *testing.T) {
	arc := Arc{Center: Pt(0, 0), Radius: 2, StartAngle: 0, EndAngle: math.Pi}
	got, ok := TangentAt(arc, Pt(0, 2))
	require.True(t, ok)
	assertPointNear(t, Pt(-1, 0), got, 1e-9)

	pl := Polyline{Points: []Point{Pt(0, 0), Pt(4, 0), Pt(4, 4)}}
	got, ok = TangentAt(pl, Pt(4, 3))
	require.True(t, ok)
	assertPointNear(t, Pt(0, 1), got, 1e-9)

	circle := Circle{Center: Pt(1, 1), Radius: 1}
	got, ok = TangentAt(circle, Pt(0, 1))
	require.True(t, ok)
	assertPointNear(t, Pt(0, -1), got, 1e-9)
}

func TestDegenerateShapes(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
	}{
		{"zero-length line", Line{Start: Pt(1, 1), End: Pt(1, 1)}},
		{"zero-radius arc", Arc{Center: Pt(1, 1), EndAngle: 1}},
		{"zero-radius circle", Circle{Center: Pt(1, 1)}},
		{"empty polyline", Polyline{}},
		{"flat ellipse", Ellipse{MajorAxis: Pt(1, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, KeyPoints(tt.shape))
			_, ok := StartTangent(tt.shape)
			assert.False(t, ok)
			_, ok = TangentAt(tt.shape, Pt(0, 0))
			assert.False(t, ok)
		})
	}
}

func TestKeyPoints(t *testing.T) {
	circle := KeyPoints(Circle{Center: Pt(0, 0), Radius: 1})
	require.Len(t, circle, 5)
	assertPointNear(t, Pt(1, 0), circle[0], eps)
	assertPointNear(t, Pt(0, 1), circle[1], eps)
	assertPointNear(t, Pt(-1, 0), circle[2], eps)
	assertPointNear(t, Pt(0, -1), circle[3], eps)
	assert.Equal(t, Pt(0, 0), circle[4])

	arc := KeyPoints(Arc{Center: Pt(2, 2), Radius: 1, EndAngle: math.Pi})
	require.Len(t, arc, 3)
	assert.Equal(t, Pt(2, 2), arc[2])

	pl := Polyline{Points: []Point{Pt(0, 0), Pt(1, 0), Pt(1, 1)}}
	assert.Equal(t, pl.Points, KeyPoints(pl))

	assert.Len(t, KeyPoints(Ellipse{MajorAxis: Pt(2, 0), Ratio: 0.5}), 5, "full ellipse")
	assert.Len(t, KeyPoints(Ellipse{MajorAxis: Pt(2, 0), Ratio: 0.5, EndParam: 1}), 3, "elliptical arc")
}

func TestReverseRoundTrip(t *testing.T) {
	shapes := []Shape{
		Line{Meta: Meta{ID: "l"}, Start: Pt(0, 0), End: Pt(3, 1)},
		Arc{Meta: Meta{ID: "a"}, Center: Pt(1, 1), Radius: 2, StartAngle: 0.3, EndAngle: 2.1},
		Arc{Meta: Meta{ID: "acw"}, Center: Pt(1, 1), Radius: 2, StartAngle: 0.3, EndAngle: 2.1, Clockwise: true},
		Circle{Meta: Meta{ID: "c"}, Center: Pt(4, 4), Radius: 1},
		Polyline{
			Meta:   Meta{ID: "p"},
			Points: []Point{Pt(0, 0), Pt(2, 0), Pt(4, 1), Pt(5, 3)},
			Bulges: []float64{0.5, 0, -0.25, 0},
		},
		Polyline{
			Meta:   Meta{ID: "pc"},
			Points: []Point{Pt(0, 0), Pt(2, 0), Pt(2, 2)},
			Bulges: []float64{0.3, -0.7, 0.2},
			Closed: true,
		},
		Ellipse{Meta: Meta{ID: "e"}, MajorAxis: Pt(3, 0), Ratio: 0.4, StartParam: 0.5, EndParam: 2},
	}
	for _, s := range shapes {
		t.Run(s.Info().ID, func(t *testing.T) {
			assert.Equal(t, s, Reverse(Reverse(s)))
		})
	}
}

func TestReverseSwapsEnds(t *testing.T) {
	shapes := []Shape{
		Line{Start: Pt(0, 0), End: Pt(3, 1)},
		Arc{Center: Pt(1, 1), Radius: 2, StartAngle: 0.3, EndAngle: 2.1},
		Polyline{Points: []Point{Pt(0, 0), Pt(2, 0), Pt(4, 1)}, Bulges: []float64{0.5, -0.2}},
		Ellipse{MajorAxis: Pt(3, 0), Ratio: 0.4, StartParam: 0.5, EndParam: 2},
	}
	for _, s := range shapes {
		r := Reverse(s)
		assertPointNear(t, StartPoint(s), EndPoint(r), 1e-9)
		assertPointNear(t, EndPoint(s), StartPoint(r), 1e-9)
		assert.InDelta(t, Length(s), Length(r), 1e-9)
	}
}

func TestReversePolylineFollowsSamePath(t *testing.T) {
	pl := Polyline{
		Points: []Point{Pt(0, 0), Pt(2, 0), Pt(4, 0)},
		Bulges: []float64{1, 0, 0},
	}
	rev := Reverse(pl).(Polyline)
	assert.Equal(t, []Point{Pt(4, 0), Pt(2, 0), Pt(0, 0)}, rev.Points)
	assert.Equal(t, []float64{0, -1, 0}, rev.Bulges)

	forward := Tessellate(pl)
	backward := Tessellate(rev)
	slices.Reverse(backward)
	require.Len(t, backward, len(forward))
	for i := range forward {
		assertPointNear(t, forward[i], backward[i], 1e-9, "point %d", i)
	}
}

func TestBoundingBox(t *testing.T) {
	quarter := Arc{Radius: 2, StartAngle: math.Pi / 4, EndAngle: 3 * math.Pi / 4}
	bb := BoundingBox(quarter)
	assert.InDelta(t, -math.Sqrt2, bb.Min.X, eps)
	assert.InDelta(t, math.Sqrt2, bb.Max.X, eps)
	assert.InDelta(t, math.Sqrt2, bb.Min.Y, eps)
	assert.InDelta(t, 2, bb.Max.Y, eps)

	circle := BoundingBox(Circle{Center: Pt(1, 1), Radius: 1})
	assert.Equal(t, Rect{Min: Pt(0, 0), Max: Pt(2, 2)}, circle)

	semi := BoundingBox(Polyline{Points: []Point{Pt(0, 0), Pt(2, 0)}, Bulges: []float64{1}})
	assert.InDelta(t, -1, semi.Min.Y, 1e-9)
	assert.InDelta(t, 0, semi.Max.Y, 1e-9)
}

func TestLength(t *testing.T) {
	assert.InDelta(t, 5, Length(Line{End: Pt(3, 4)}), eps)
	assert.InDelta(t, math.Pi, Length(Arc{Radius: 2, EndAngle: math.Pi / 2}), eps)
	assert.InDelta(t, 2*math.Pi, Length(Circle{Radius: 1}), eps)
	assert.InDelta(t, math.Pi+3,
		Length(Polyline{Points: []Point{Pt(0, 0), Pt(2, 0), Pt(2, 3)}, Bulges: []float64{1}}), 1e-9)
	// Perimeter of a circle of radius 1 given as an ellipse, tessellated.
	assert.InDelta(t, 2*math.Pi, Length(Ellipse{MajorAxis: Pt(1, 0), Ratio: 1}), 0.01)
}

func TestIsClosedShape(t *testing.T) {
	const tol = 0.01
	assert.False(t, IsClosedShape(Line{End: Pt(1, 0)}, tol))
	assert.True(t, IsClosedShape(Circle{Radius: 1}, tol))
	assert.False(t, IsClosedShape(Circle{}, tol))
	assert.True(t, IsClosedShape(Arc{Radius: 1, StartAngle: 1, EndAngle: 1}, tol))
	assert.False(t, IsClosedShape(Arc{Radius: 1, EndAngle: 1}, tol))
	assert.True(t, IsClosedShape(Polyline{Points: []Point{Pt(0, 0), Pt(1, 0), Pt(1, 1)}, Closed: true}, tol))
	assert.True(t, IsClosedShape(Polyline{Points: []Point{Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 0.005)}}, tol))
	assert.False(t, IsClosedShape(Polyline{Points: []Point{Pt(0, 0), Pt(1, 0), Pt(1, 1)}}, tol))
	assert.True(t, IsClosedShape(Ellipse{MajorAxis: Pt(1, 0), Ratio: 0.5}, tol))
	assert.False(t, IsClosedShape(Ellipse{MajorAxis: Pt(1, 0), Ratio: 0.5, EndParam: 1}, tol))
}

func TestSplitMidpoint(t *testing.T) {
	a, b, ok := SplitMidpoint(Line{Meta: Meta{ID: "d"}, Start: Pt(0, 0), End: Pt(10, 10)})
	require.True(t, ok)
	assert.Equal(t, "d:1", a.Info().ID)
	assert.Equal(t, "d:2", b.Info().ID)
	assert.Equal(t, Pt(5, 5), EndPoint(a))
	assert.Equal(t, Pt(5, 5), StartPoint(b))

	arc := Arc{Radius: 1, StartAngle: 0, EndAngle: math.Pi, Clockwise: true}
	a, b, ok = SplitMidpoint(arc)
	require.True(t, ok)
	assertPointNear(t, Pt(0, -1), EndPoint(a), eps)
	assertPointNear(t, Pt(0, -1), StartPoint(b), eps)
	assert.InDelta(t, Length(arc), Length(a)+Length(b), eps)

	_, _, ok = SplitMidpoint(Circle{Radius: 1})
	assert.False(t, ok)
}

func TestTessellateArcResolution(t *testing.T) {
	pts := Tessellate(Circle{Radius: 1})
	require.Len(t, pts, 73, "5 degree steps around a full circle")
	assertPointNear(t, pts[0], pts[len(pts)-1], 1e-9)
	for _, p := range pts {
		assert.InDelta(t, 1, p.Length(), 1e-9)
	}
}

func TestUnknownShapePanics(t *testing.T) {
	s := bogusShape{}
	assert.Panics(t, func() { StartPoint(s) })
	assert.Panics(t, func() { KeyPoints(s) })
	assert.Panics(t, func() { Reverse(s) })
	assert.Panics(t, func() { Tessellate(s) })
}
