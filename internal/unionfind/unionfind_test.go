package unionfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_Singletons(t *testing.T) {
	s := New(4)
	require.Equal(t, 4, s.Len())
	for i := range 4 {
		assert.Equal(t, i, s.Find(i))
	}
	assert.Len(t, s.Groups(), 4)
}

func TestSet_UnionTransitive(t *testing.T) {
	s := New(6)
	assert.True(t, s.Union(0, 3))
	assert.True(t, s.Union(3, 5))
	assert.False(t, s.Union(5, 0), "already connected")
	assert.True(t, s.Union(1, 2))

	assert.True(t, s.Connected(0, 5))
	assert.False(t, s.Connected(0, 1))

	assert.Equal(t, [][]int{{0, 3, 5}, {1, 2}, {4}}, s.Groups())
}

func TestSet_LongChainCompresses(t *testing.T) {
	const n = 1000
	s := New(n)
	for i := 1; i < n; i++ {
		s.Union(i-1, i)
	}
	root := s.Find(n - 1)
	for i := range n {
		assert.Equal(t, root, s.Find(i))
		assert.Equal(t, root, s.parent[i], "path compression should flatten the tree")
	}
}

func TestSet_Empty(t *testing.T) {
	s := New(0)
	assert.Empty(t, s.Groups())
}
