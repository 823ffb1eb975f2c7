package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadpixelstudio/treemendous/pkg/tree"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tree.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	in := []tree.Record{
		{"id": "root", "parentId": nil, "name": "users"},
		{"id": float64(7), "parentId": "root", "tags": []any{"a", "b"}},
		{"id": "leaf", "parentId": float64(7), "nested": map[string]any{"k": true}},
	}

	require.NoError(t, s.Save(DefaultTable, tree.Config{}, in))

	out, err := s.Load(DefaultTable, tree.Config{})
	require.NoError(t, err)
	assert.Equal(t, in, out)

	tr, err := tree.FromFlat(out, tree.Config{})
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Depth(tr.FindByID("leaf")))
}

func TestSaveReplacesContents(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save("org", tree.Config{}, []tree.Record{{"id": "a"}, {"id": "b", "parentId": "a"}}))
	require.NoError(t, s.Save("org", tree.Config{}, []tree.Record{{"id": "z"}}))

	out, err := s.Load("org", tree.Config{})
	require.NoError(t, err)
	assert.Equal(t, []tree.Record{{"id": "z", "parentId": nil}}, out)
}

func TestCustomFieldNames(t *testing.T) {
	s := openTestStore(t)
	cfg := tree.Config{IDField: "key", ParentIDField: "up"}

	require.NoError(t, s.Save(DefaultTable, cfg, []tree.Record{{"key": "a"}, {"key": "b", "up": "a"}}))

	out, err := s.Load(DefaultTable, cfg)
	require.NoError(t, err)
	assert.Equal(t, []tree.Record{{"key": "a", "up": nil}, {"key": "b", "up": "a"}}, out)
}

func TestStoreErrors(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Load("missing", tree.Config{})
	assert.ErrorIs(t, err, ErrTableNotFound)

	_, err = s.Load("nodes; DROP TABLE x", tree.Config{})
	assert.ErrorIs(t, err, ErrInvalidTable)

	err = s.Save(DefaultTable, tree.Config{}, []tree.Record{{"name": "no id"}})
	assert.ErrorIs(t, err, tree.ErrInvalidInput)
	_, err = s.Load(DefaultTable, tree.Config{})
	assert.ErrorIs(t, err, ErrTableNotFound, "failed save rolls back table creation")
}
