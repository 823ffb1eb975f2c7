package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMove(t *testing.T) {
	t.Run("relinks under the new parent", func(t *testing.T) {
		tr, nodes := newSampleTree(t)
		n4, n2, n3 := nodes["4"], nodes["2"], nodes["3"]
		require.Equal(t, n3.ID(), n4.ParentID())

		moved, err := tr.Move(n4, n2)
		require.NoError(t, err)

		assert.Same(t, n4, moved)
		assert.Equal(t, n2.ID(), n4.ParentID())
		assert.Contains(t, n2.Children(), n4)
		assert.NotContains(t, n3.Children(), n4)
		assert.Equal(t, []string{"3", "4"}, ids(n2.Children()))
		assert.Equal(t, 2, tr.Depth(n4))
	})

	t.Run("subtree follows the moved node", func(t *testing.T) {
		tr, nodes := newSampleTree(t)

		_, err := tr.Move(nodes["3_2"], nodes["1_1"])
		require.NoError(t, err)

		assert.Equal(t, []string{"3_2", "1_1", "1"}, ids(tr.Ancestors(nodes["3_2_1"])))
		assert.Equal(t, 9, tr.Len())
	})

	t.Run("root cannot be moved", func(t *testing.T) {
		tr, nodes := newSampleTree(t)
		_, err := tr.Move(tr.Root(), nodes["4"])
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("moving under a descendant is allowed by default", func(t *testing.T) {
		tr, nodes := newSampleTree(t)

		_, err := tr.Move(nodes["3"], nodes["3_2_1"])
		require.NoError(t, err)

		assert.NotContains(t, nodes["2"].Children(), nodes["3"])
		assert.Nil(t, tr.FindByID("3"), "subtree is unreachable from the root")
	})

	t.Run("cycles rejected when configured", func(t *testing.T) {
		tr, err := NewFromRecords(sampleRecords, Config{RejectCycles: true})
		require.NoError(t, err)
		n3, n321 := tr.FindByID("3"), tr.FindByID("3_2_1")

		_, err = tr.Move(n3, n321)
		assert.ErrorIs(t, err, ErrCycle)
		_, err = tr.Move(n3, n3)
		assert.ErrorIs(t, err, ErrCycle)

		assert.Equal(t, "2", n3.ParentID(), "failed move leaves the node in place")
		assert.Contains(t, tr.FindByID("2").Children(), n3)
	})

	t.Run("removed or foreign handles are rejected", func(t *testing.T) {
		tr, nodes := newSampleTree(t)
		_, otherNodes := newSampleTree(t)

		_, err := tr.Move(nodes["4"], otherNodes["2"])
		assert.ErrorIs(t, err, ErrForeignNode)

		_, err = tr.Remove(nodes["1_1"], RemoveOptions{})
		require.NoError(t, err)
		_, err = tr.Move(nodes["1_1"], nodes["2"])
		assert.ErrorIs(t, err, ErrNodeRemoved)
		_, err = tr.Move(nodes["4"], nodes["1_1"])
		assert.ErrorIs(t, err, ErrNodeRemoved)

		_, err = tr.Move(nil, nodes["2"])
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestRemove(t *testing.T) {
	t.Run("clears the node and its whole subtree", func(t *testing.T) {
		tr, nodes := newSampleTree(t)

		removed, err := tr.Remove(nodes["3"], RemoveOptions{})
		require.NoError(t, err)

		assert.Same(t, nodes["3"], removed)
		for _, id := range []string{"3", "3_1", "3_2", "3_2_1", "4"} {
			assert.True(t, nodes[id].Removed(), "%s removed", id)
			assert.Empty(t, nodes[id].Fields(), "%s cleared", id)
			assert.Nil(t, nodes[id].ID())
		}

		descendants := tr.Descendants(nodes["1"])
		assert.Equal(t, []string{"1_1", "1_2", "2"}, ids(descendants))
		assert.NotContains(t, nodes["2"].Children(), nodes["3"])
		assert.Equal(t, 4, tr.Len())
		assert.Nil(t, tr.FindByID("3_2_1"))
	})

	t.Run("retained children are promoted to the parent", func(t *testing.T) {
		tr, nodes := newSampleTree(t)
		retained := tr.Descendants(nodes["3"])

		_, err := tr.Remove(nodes["3"], RemoveOptions{RetainDescendants: true})
		require.NoError(t, err)

		assert.True(t, nodes["3"].Removed())
		assert.Equal(t, []string{"3_1", "3_2", "4"}, ids(nodes["2"].Children()))
		for _, id := range []string{"3_1", "3_2", "4"} {
			assert.Equal(t, "2", nodes[id].ParentID())
		}
		assert.Equal(t, "3_2", nodes["3_2_1"].ParentID(), "grandchildren keep their parent")

		d2 := tr.Descendants(nodes["2"])
		for _, n := range retained {
			assert.Contains(t, d2, n)
		}
		assert.NotContains(t, tr.Descendants(nodes["1"]), nodes["3"])
		assert.Equal(t, 8, tr.Len())
	})

	t.Run("retain scenario from a two child node", func(t *testing.T) {
		tr, err := New(Config{})
		require.NoError(t, err)
		p, _ := tr.Insert(Record{"id": "p"})
		n, _ := tr.Insert(Record{"id": "n", "parentId": "p"})
		c1, _ := tr.Insert(Record{"id": "c1", "parentId": "n"})
		c2, _ := tr.Insert(Record{"id": "c2", "parentId": "n"})

		_, err = tr.Remove(n, RemoveOptions{RetainDescendants: true})
		require.NoError(t, err)

		assert.Equal(t, []*Node{c1, c2}, p.Children())
		assert.Equal(t, p.ID(), c1.ParentID())
	})

	t.Run("removing the root empties the tree", func(t *testing.T) {
		tr, nodes := newSampleTree(t)

		_, err := tr.Remove(tr.Root(), RemoveOptions{})
		require.NoError(t, err)

		assert.Nil(t, tr.Root())
		assert.Zero(t, tr.Len())
		for id, n := range nodes {
			assert.True(t, n.Removed(), "%s removed", id)
		}

		_, err = tr.Insert(Record{"id": "fresh"})
		require.NoError(t, err)
		assert.Equal(t, "fresh", tr.Root().ID())
	})

	t.Run("retaining under the root promotes a single child", func(t *testing.T) {
		tr, err := New(Config{})
		require.NoError(t, err)
		root, _ := tr.Insert(Record{"id": 1})
		heir, _ := tr.Insert(Record{"id": 2, "parentId": 1})
		_, _ = tr.Insert(Record{"id": 3, "parentId": 2})

		_, err = tr.Remove(root, RemoveOptions{RetainDescendants: true})
		require.NoError(t, err)

		assert.Same(t, heir, tr.Root())
		assert.Nil(t, heir.ParentID())
		assert.Equal(t, 2, tr.Len())
	})

	t.Run("retaining under a root with several children fails", func(t *testing.T) {
		tr, nodes := newSampleTree(t)

		_, err := tr.Remove(tr.Root(), RemoveOptions{RetainDescendants: true})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.False(t, nodes["1"].Removed())
		assert.Equal(t, 9, tr.Len())
	})

	t.Run("removing twice", func(t *testing.T) {
		tr, nodes := newSampleTree(t)
		_, err := tr.Remove(nodes["4"], RemoveOptions{})
		require.NoError(t, err)

		_, err = tr.Remove(nodes["4"], RemoveOptions{})
		assert.ErrorIs(t, err, ErrNodeRemoved)
	})
}

func TestRemoveDescendants(t *testing.T) {
	tr, nodes := newSampleTree(t)

	n, err := tr.RemoveDescendants(nodes["3"])
	require.NoError(t, err)

	assert.Same(t, nodes["3"], n)
	name, _ := n.Get("name")
	assert.Equal(t, "Node 3", name)
	assert.False(t, n.Removed())
	assert.Empty(t, n.Children())
	assert.Empty(t, tr.Descendants(n))
	assert.True(t, tr.IsLeaf(n))
	for _, id := range []string{"3_1", "3_2", "3_2_1", "4"} {
		assert.Empty(t, nodes[id].Fields(), "%s cleared", id)
	}
	assert.Equal(t, []string{"1_1", "1_2", "2", "3"}, ids(tr.Descendants(nodes["1"])))
	assert.Equal(t, 5, tr.Len())
}

func TestNodeSet(t *testing.T) {
	tr, nodes := newSampleTree(t)
	n := nodes["2"]

	require.NoError(t, n.Set("name", "renamed"))
	name, _ := n.Get("name")
	assert.Equal(t, "renamed", name)

	assert.ErrorIs(t, n.Set("id", "x"), ErrInvalidInput)
	assert.ErrorIs(t, n.Set("parentId", "x"), ErrInvalidInput)
	assert.ErrorIs(t, n.Set("children", nil), ErrInvalidInput)

	_, err := tr.Remove(nodes["4"], RemoveOptions{})
	require.NoError(t, err)
	assert.ErrorIs(t, nodes["4"].Set("name", "x"), ErrNodeRemoved)
	_, ok := nodes["4"].Get("name")
	assert.False(t, ok)
}
