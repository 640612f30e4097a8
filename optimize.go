package cutpath

// OptimizeStartPoint moves the start of a closed chain to the middle of its
// preferred shape: the longest line, or the longest arc when the chain has
// no lines. The preferred shape is split in two and the chain is rotated so
// it begins with the second half and ends with the first.
//
// Open chains and chains without a line or arc are returned unchanged.
func OptimizeStartPoint(c Chain, tol float64) Chain {
	if len(c.Shapes) == 0 || !c.IsClosed(tol) {
		return c
	}
	idx := preferredSplit(c.Shapes)
	if idx < 0 {
		return c
	}
	first, second, ok := SplitMidpoint(c.Shapes[idx])
	if !ok {
		return c
	}
	out := c
	out.Shapes = make([]Shape, 0, len(c.Shapes)+1)
	out.Shapes = append(out.Shapes, second)
	out.Shapes = append(out.Shapes, c.Shapes[idx+1:]...)
	out.Shapes = append(out.Shapes, c.Shapes[:idx]...)
	out.Shapes = append(out.Shapes, first)
	return out
}

// preferredSplit returns the index of the longest line, else of the longest
// arc, else -1. Ties keep the earliest shape.
func preferredSplit(shapes []Shape) int {
	best, bestLen := -1, 0.0
	for i, s := range shapes {
		if l, ok := s.(Line); ok && Length(l) > bestLen {
			best, bestLen = i, Length(l)
		}
	}
	if best >= 0 {
		return best
	}
	for i, s := range shapes {
		if a, ok := s.(Arc); ok && a.Radius > 0 && a.ArcLength() > bestLen {
			best, bestLen = i, a.ArcLength()
		}
	}
	return best
}

// OrientChain reverses a closed chain whose winding disagrees with the cut
// direction. A lone circle cannot be reversed and becomes a full clockwise
// arc instead. Open chains, CutNone and chains of undetermined orientation
// are returned unchanged.
func OrientChain(c Chain, dir CutDirection, tol float64) Chain {
	want := OrientationUnknown
	switch dir {
	case CutClockwise:
		want = OrientationClockwise
	case CutCounterclockwise:
		want = OrientationCounterclockwise
	default:
		return c
	}
	got := c.Orientation(tol)
	if got == OrientationUnknown || got == want {
		return c
	}
	if len(c.Shapes) == 1 {
		if circle, ok := c.Shapes[0].(Circle); ok {
			out := c
			out.Shapes = []Shape{Arc{Meta: circle.Meta, Center: circle.Center, Radius: circle.Radius, Clockwise: true}}
			return out
		}
	}
	return c.Reversed()
}
