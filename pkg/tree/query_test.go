package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAncestors(t *testing.T) {
	tr, nodes := newSampleTree(t)

	assert.Equal(t, []string{"3", "2", "1"}, ids(tr.Ancestors(nodes["4"])))
	assert.Empty(t, tr.Ancestors(tr.Root()))

	for id, n := range nodes {
		assert.Len(t, tr.Ancestors(n), tr.Depth(n), "ancestors of %s", id)
	}

	assert.True(t, tr.IsAncestorOf(nodes["1"], nodes["2"]))
	assert.True(t, tr.IsAncestorOf(nodes["3"], nodes["3_2_1"]))
	assert.False(t, tr.IsAncestorOf(nodes["3_1"], nodes["3_2"]))
	assert.False(t, tr.IsAncestorOf(nodes["4"], nodes["4"]))
}

func TestDescendants(t *testing.T) {
	tr, nodes := newSampleTree(t)

	assert.Equal(t,
		[]string{"1_1", "1_2", "2", "3", "3_1", "3_2", "4", "3_2_1"},
		ids(tr.Descendants(nodes["1"])))
	assert.Empty(t, tr.Descendants(nodes["4"]))

	assert.True(t, tr.IsDescendantOf(nodes["2"], nodes["1"]))
	assert.True(t, tr.IsDescendantOf(nodes["3_2_1"], nodes["2"]))
	assert.False(t, tr.IsDescendantOf(nodes["3_1"], nodes["3_2"]))
	assert.False(t, tr.IsDescendantOf(tr.Root(), nodes["3"]), "root is never a descendant")
	assert.False(t, tr.IsDescendantOf(tr.Root(), tr.Root()))
}

func TestSiblings(t *testing.T) {
	tr, nodes := newSampleTree(t)

	siblings, ok := tr.Siblings(nodes["4"])
	assert.True(t, ok)
	assert.Equal(t, []string{"3_1", "3_2"}, ids(siblings))

	siblings, ok = tr.Siblings(nodes["3"])
	assert.True(t, ok)
	assert.Empty(t, siblings)

	siblings, ok = tr.Siblings(tr.Root())
	assert.False(t, ok)
	assert.Nil(t, siblings)

	assert.False(t, tr.IsSiblingOf(nodes["1"], nodes["2"]))
	assert.True(t, tr.IsSiblingOf(nodes["3_1"], nodes["3_2"]))
	assert.False(t, tr.IsSiblingOf(nodes["3_1"], nodes["3_1"]))
	assert.False(t, tr.IsSiblingOf(nodes["2"], nodes["3_1"]))

	pairs := [][2]string{{"3_1", "3_2"}, {"3_2", "4"}, {"1_1", "2"}, {"1_2", "3"}, {"4", "3_2_1"}}
	for _, p := range pairs {
		a, b := nodes[p[0]], nodes[p[1]]
		assert.Equal(t, tr.IsSiblingOf(a, b), tr.IsSiblingOf(b, a), "symmetry of %s/%s", p[0], p[1])
	}
}

func TestIsLeaf(t *testing.T) {
	tr, nodes := newSampleTree(t)

	assert.False(t, tr.IsLeaf(nodes["1"]))
	assert.True(t, tr.IsLeaf(nodes["4"]))
	assert.True(t, tr.IsLeaf(nodes["3_2_1"]))
}

func TestDepthAndHeight(t *testing.T) {
	tr, nodes := newSampleTree(t)

	tests := []struct {
		id     string
		depth  int
		height int
	}{
		{"1", 0, 4},
		{"2", 1, 3},
		{"3", 2, 2},
		{"3_2", 3, 1},
		{"4", 3, 0},
		{"3_2_1", 4, 0},
		{"1_1", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.depth, tr.Depth(nodes[tt.id]), "depth")
			assert.Equal(t, tt.height, tr.Height(nodes[tt.id]), "height")
		})
	}
}

func TestHeightMatchesDescendantDepths(t *testing.T) {
	tr, nodes := newSampleTree(t)

	for id, n := range nodes {
		want := 0
		base := tr.Depth(n)
		for _, d := range tr.Descendants(n) {
			want = max(want, tr.Depth(d)-base)
		}
		assert.Equal(t, want, tr.Height(n), "height of %s", id)
	}
}

func TestSmallTreeScenario(t *testing.T) {
	tr, err := New(Config{})
	require.NoError(t, err)

	_, err = tr.Insert(Record{"id": 1})
	require.NoError(t, err)
	node2, err := tr.Insert(Record{"id": 2, "parentId": 1})
	require.NoError(t, err)
	node3, err := tr.Insert(Record{"id": 3, "parentId": 1})
	require.NoError(t, err)

	siblings, ok := tr.Siblings(node2)
	require.True(t, ok)
	assert.Equal(t, []*Node{node3}, siblings)
	assert.Equal(t, 1, tr.Height(tr.Root()))
	assert.Equal(t, 1, tr.Depth(node3))
}

func TestQueriesOnRemovedNode(t *testing.T) {
	tr, nodes := newSampleTree(t)
	_, err := tr.Remove(nodes["3"], RemoveOptions{})
	require.NoError(t, err)

	n := nodes["4"]
	assert.Empty(t, tr.Ancestors(n))
	assert.Empty(t, tr.Descendants(n))
	assert.Zero(t, tr.Depth(n))
	assert.Zero(t, tr.Height(n))
	_, ok := tr.Siblings(n)
	assert.False(t, ok)
	assert.False(t, tr.IsLeaf(n))
	assert.False(t, tr.IsLeaf(nodes["3"]))
}
