package cutpath

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/gogpu/cutpath/internal/unionfind"
)

// chainNamespace seeds the name-based UUIDs given to detected chains, so the
// same drawing always yields the same chain IDs.
var chainNamespace = uuid.MustParse("6f1c2a52-8f0e-4c57-9a55-3b1e0c9d7a41")

// DetectChains groups shapes into connected chains. Two shapes are connected
// when any key point of one lies within tol of any key point of the other;
// chains are the transitive closure of that relation.
//
// Every group becomes a chain, including single shapes. Shapes keep their
// input order inside a chain and chains are ordered by their first shape.
// The returned chains are not yet in traversal order; see NormalizeChain.
func DetectChains(shapes []Shape, tol float64) []Chain {
	if len(shapes) == 0 {
		return nil
	}

	keys := make([][]Point, len(shapes))
	bounds := make([]Rect, len(shapes))
	for i, s := range shapes {
		keys[i] = KeyPoints(s)
		bounds[i] = BoundsOf(keys[i])
	}

	set := unionfind.New(len(shapes))
	for i := range shapes {
		for j := i + 1; j < len(shapes); j++ {
			if set.Connected(i, j) {
				continue
			}
			if len(keys[i]) == 0 || len(keys[j]) == 0 {
				continue
			}
			if !overlaps(bounds[i], bounds[j], tol) {
				continue
			}
			if keyPointsTouch(keys[i], keys[j], tol) {
				set.Union(i, j)
			}
		}
	}

	groups := set.Groups()
	chains := make([]Chain, len(groups))
	for g, members := range groups {
		chain := Chain{Shapes: make([]Shape, len(members))}
		for k, idx := range members {
			chain.Shapes[k] = shapes[idx]
		}
		chain.ID = chainID(members, chain.Shapes)
		chains[g] = chain
	}

	stageLogger(stageDetect).Debug("chains detected", "shapes", len(shapes), "chains", len(chains))
	return chains
}

// keyPointsTouch reports whether any pair of points is within tol.
func keyPointsTouch(a, b []Point, tol float64) bool {
	for _, p := range a {
		for _, q := range b {
			if p.Near(q, tol) {
				return true
			}
		}
	}
	return false
}

// overlaps reports whether the rectangles intersect after growing by tol.
func overlaps(a, b Rect, tol float64) bool {
	return a.Min.X <= b.Max.X+tol && b.Min.X <= a.Max.X+tol &&
		a.Min.Y <= b.Max.Y+tol && b.Min.Y <= a.Max.Y+tol
}

// chainID derives a stable identifier from the member indices and IDs.
func chainID(members []int, shapes []Shape) string {
	var b strings.Builder
	for k, s := range shapes {
		b.WriteString(strconv.Itoa(members[k]))
		b.WriteByte(':')
		b.WriteString(s.Info().ID)
		b.WriteByte(0)
	}
	return uuid.NewSHA1(chainNamespace, []byte(b.String())).String()
}
