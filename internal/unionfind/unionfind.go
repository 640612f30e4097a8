// Package unionfind implements a disjoint-set forest over integer indices
// with path compression and union by rank.
package unionfind

// Set partitions the integers [0, n) into disjoint groups.
type Set struct {
	parent []int
	rank   []uint8
}

// New creates a Set of n singleton groups.
func New(n int) *Set {
	s := &Set{
		parent: make([]int, n),
		rank:   make([]uint8, n),
	}
	for i := range s.parent {
		s.parent[i] = i
	}
	return s
}

// Len returns the number of elements.
func (s *Set) Len() int {
	return len(s.parent)
}

// Find returns the representative of the group containing x.
func (s *Set) Find(x int) int {
	root := x
	for s.parent[root] != root {
		root = s.parent[root]
	}
	// Path compression: point every node on the walk at the root.
	for s.parent[x] != root {
		next := s.parent[x]
		s.parent[x] = root
		x = next
	}
	return root
}

// Union merges the groups containing a and b. It reports whether they were
// separate before the call.
func (s *Set) Union(a, b int) bool {
	ra, rb := s.Find(a), s.Find(b)
	if ra == rb {
		return false
	}
	switch {
	case s.rank[ra] < s.rank[rb]:
		s.parent[ra] = rb
	case s.rank[ra] > s.rank[rb]:
		s.parent[rb] = ra
	default:
		s.parent[rb] = ra
		s.rank[ra]++
	}
	return true
}

// Connected reports whether a and b belong to the same group.
func (s *Set) Connected(a, b int) bool {
	return s.Find(a) == s.Find(b)
}

// Groups returns the members of every group, each in ascending order.
// Groups are ordered by their smallest member.
func (s *Set) Groups() [][]int {
	index := make(map[int]int)
	var groups [][]int
	for i := range s.parent {
		root := s.Find(i)
		g, ok := index[root]
		if !ok {
			g = len(groups)
			index[root] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}
