package cutpath

import "math"

// NormalizeChain reorders and reverses the shapes of c so that the end of
// each shape meets the start of the next within tol.
//
// Every shape is tried as the first one, forwards and then reversed. From
// there the path grows greedily: an unused shape whose start meets the
// running end is preferred; failing that, a shape whose end meets it is
// reversed and appended. The first path that uses every shape wins.
//
// When no complete traversal exists, c is returned unchanged and ok is
// false. Chains with at most one shape are always returned unchanged.
func NormalizeChain(c Chain, tol float64) (normalized Chain, ok bool) {
	if len(c.Shapes) <= 1 {
		return c, true
	}
	for start := range c.Shapes {
		for _, reversed := range [2]bool{false, true} {
			if path, found := growTraversal(c.Shapes, start, reversed, tol); found {
				normalized = c
				normalized.Shapes = path
				return normalized, true
			}
		}
	}
	stageLogger(stageNormalize).Warn("chain cannot be traversed", "chain", c.ID, "shapes", len(c.Shapes))
	return c, false
}

// growTraversal builds a path starting at shapes[start].
func growTraversal(shapes []Shape, start int, reversed bool, tol float64) ([]Shape, bool) {
	used := make([]bool, len(shapes))
	first := shapes[start]
	if reversed {
		first = Reverse(first)
	}
	used[start] = true
	path := make([]Shape, 1, len(shapes))
	path[0] = first
	end := EndPoint(first)

	for len(path) < len(shapes) {
		next, flip := nextShape(shapes, used, end, tol)
		if next < 0 {
			return nil, false
		}
		s := shapes[next]
		if flip {
			s = Reverse(s)
		}
		used[next] = true
		path = append(path, s)
		end = EndPoint(s)
	}
	return path, true
}

// nextShape returns the unused shape continuing from end, and whether it
// has to be reversed. A matching start point beats a matching end point;
// among equals the nearest wins. It returns -1 when nothing connects.
func nextShape(shapes []Shape, used []bool, end Point, tol float64) (int, bool) {
	best, bestDist := -1, math.Inf(1)
	for i, s := range shapes {
		if used[i] {
			continue
		}
		if d := StartPoint(s).Distance(end); d <= tol && d < bestDist {
			best, bestDist = i, d
		}
	}
	if best >= 0 {
		return best, false
	}
	for i, s := range shapes {
		if used[i] {
			continue
		}
		if d := EndPoint(s).Distance(end); d <= tol && d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

// NormalizeChains normalizes every chain. The IDs of chains that could not
// be traversed are returned alongside; those chains are passed through
// unchanged.
func NormalizeChains(chains []Chain, tol float64) (normalized []Chain, untraversable []string) {
	normalized = make([]Chain, len(chains))
	for i, c := range chains {
		n, ok := NormalizeChain(c, tol)
		if !ok {
			untraversable = append(untraversable, c.ID)
		}
		normalized[i] = n
	}
	return normalized, untraversable
}

// IsTraversal reports whether consecutive shapes of c meet within tol.
func IsTraversal(c Chain, tol float64) bool {
	for i := 1; i < len(c.Shapes); i++ {
		if !EndPoint(c.Shapes[i-1]).Near(StartPoint(c.Shapes[i]), tol) {
			return false
		}
	}
	return true
}
