package cutpath

import (
	"fmt"
	"slices"
)

// Role is the function of a closed chain inside its part.
type Role int

const (
	// RoleShell marks the outer boundary of a part.
	RoleShell Role = iota
	// RoleHole marks a void directly inside the shell.
	RoleHole
)

// String returns the role name.
func (r Role) String() string {
	if r == RoleHole {
		return "hole"
	}
	return "shell"
}

// PartChain is a closed chain together with its bounding box.
type PartChain struct {
	Chain       Chain
	BoundingBox Rect
}

// Part is one piece of material: a shell and the holes nested directly
// inside it.
type Part struct {
	ID    string
	Shell PartChain
	Holes []PartChain
}

// WarningKind classifies a PartWarning.
type WarningKind string

const (
	// WarningOpenChain is reported for chains that do not close and so can
	// be neither shell nor hole.
	WarningOpenChain WarningKind = "open_chain"
	// WarningNotTraversable is reported for chains whose shapes could not be
	// ordered into a single path.
	WarningNotTraversable WarningKind = "not_traversable"
)

// PartWarning explains why a chain was left out of part detection or needs
// inspection.
type PartWarning struct {
	ChainID string
	Kind    WarningKind
	Message string
}

// PartResult is the outcome of DetectParts.
type PartResult struct {
	Parts    []Part
	Warnings []PartWarning
}

// RoleOf returns the role of the chain with the given ID in the part. A
// chain derived from a part member (see Chain.OriginID) shares its role.
func (p Part) RoleOf(c Chain) (Role, bool) {
	if matchesChain(p.Shell.Chain, c) {
		return RoleShell, true
	}
	for _, h := range p.Holes {
		if matchesChain(h.Chain, c) {
			return RoleHole, true
		}
	}
	return RoleShell, false
}

// holeIndex returns the index of the hole matching c.
func (p Part) holeIndex(c Chain) (int, bool) {
	for i, h := range p.Holes {
		if matchesChain(h.Chain, c) {
			return i, true
		}
	}
	return -1, false
}

func matchesChain(member, c Chain) bool {
	if c.ID != "" && member.ID == c.ID {
		return true
	}
	return c.OriginID != "" && member.ID == c.OriginID
}

// FindPart returns the part that owns c, directly or through its origin.
func FindPart(parts []Part, c Chain) (*Part, bool) {
	for i := range parts {
		if _, ok := parts[i].RoleOf(c); ok {
			return &parts[i], true
		}
	}
	return nil, false
}

// PartChains returns the shell followed by the holes.
func (p Part) PartChains() []PartChain {
	return append([]PartChain{p.Shell}, p.Holes...)
}

// ring is a closed chain prepared for containment tests.
type ring struct {
	chain  Chain
	poly   Polygon
	area   float64
	bounds Rect
	parent int
	depth  int
}

// DetectParts classifies closed chains into shells and holes.
//
// Chain A lies inside chain B when B is strictly larger, B's bounding box
// covers A's, and a point of A away from B's boundary is inside B by ray
// casting. Each chain's direct parent is its smallest container, so the
// containment relation becomes a forest. Chains at even depth start a new
// part; chains at odd depth are holes of their parent's part. An island
// inside a hole is therefore a part of its own.
//
// Open chains are reported as warnings and take no part in nesting.
func DetectParts(chains []Chain, tol float64) PartResult {
	var (
		result PartResult
		rings  []*ring
	)
	for _, c := range chains {
		if !c.IsClosed(tol) {
			result.Warnings = append(result.Warnings, PartWarning{
				ChainID: c.ID,
				Kind:    WarningOpenChain,
				Message: fmt.Sprintf("chain %s is open and cannot be a shell or hole", c.ID),
			})
			continue
		}
		poly := c.Polygon()
		rings = append(rings, &ring{
			chain:  c,
			poly:   poly,
			area:   poly.Area(),
			bounds: poly.Bounds(),
			parent: -1,
			depth:  -1,
		})
	}

	for i, inner := range rings {
		for j, outer := range rings {
			if i == j || !ringContains(outer, inner, tol) {
				continue
			}
			if inner.parent < 0 || outer.area < rings[inner.parent].area {
				inner.parent = j
			}
		}
	}

	partOf := make([]int, len(rings))
	for i, r := range rings {
		if ringDepth(rings, i)%2 == 1 {
			continue
		}
		partOf[i] = len(result.Parts)
		result.Parts = append(result.Parts, Part{
			ID:    fmt.Sprintf("part-%d", len(result.Parts)+1),
			Shell: PartChain{Chain: r.chain, BoundingBox: r.bounds},
		})
	}
	for _, r := range rings {
		if r.depth%2 == 0 {
			continue
		}
		p := &result.Parts[partOf[r.parent]]
		p.Holes = append(p.Holes, PartChain{Chain: r.chain, BoundingBox: r.bounds})
	}

	stageLogger(stageParts).Debug("parts detected",
		"chains", len(chains), "closed", len(rings),
		"parts", len(result.Parts), "warnings", len(result.Warnings))
	return result
}

// ringDepth returns the number of ancestors of rings[i]. Parents are always
// strictly larger than their children, so the walk terminates.
func ringDepth(rings []*ring, i int) int {
	r := rings[i]
	if r.depth >= 0 {
		return r.depth
	}
	if r.parent < 0 {
		r.depth = 0
	} else {
		r.depth = ringDepth(rings, r.parent) + 1
	}
	return r.depth
}

// ringContains reports whether inner lies inside outer.
func ringContains(outer, inner *ring, tol float64) bool {
	if outer.area <= inner.area {
		return false
	}
	if !outer.bounds.ContainsRect(inner.bounds, tol) {
		return false
	}
	pt, ok := representativePoint(inner.poly, outer.poly, tol)
	if !ok {
		return false
	}
	return outer.poly.Contains(pt)
}

// representativePoint picks a point of inner that is not on the boundary of
// outer, trying vertices first and then edge midpoints.
func representativePoint(inner, outer Polygon, tol float64) (Point, bool) {
	for _, p := range inner {
		if outer.BoundaryDistance(p) > tol {
			return p, true
		}
	}
	for i := range inner {
		mid := inner[i].Lerp(inner[(i+1)%len(inner)], 0.5)
		if outer.BoundaryDistance(mid) > tol {
			return mid, true
		}
	}
	return Point{}, false
}

// region is the material of a part, prepared for point queries.
type region struct {
	shell Polygon
	holes []Polygon
}

func newRegion(p Part) region {
	r := region{shell: p.Shell.Chain.Polygon()}
	for _, h := range p.Holes {
		r.holes = append(r.holes, h.Chain.Polygon())
	}
	return r
}

// solid reports whether pt is in material: inside the shell and outside
// every hole.
func (r region) solid(pt Point) bool {
	if !r.shell.Contains(pt) {
		return false
	}
	return !slices.ContainsFunc(r.holes, func(h Polygon) bool { return h.Contains(pt) })
}
