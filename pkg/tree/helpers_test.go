package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleRecords is the hierarchy used across tests:
//
//	1
//	├── 1_1
//	├── 1_2
//	└── 2
//	    └── 3
//	        ├── 3_1
//	        ├── 3_2
//	        │   └── 3_2_1
//	        └── 4
var sampleRecords = []Record{
	{"id": "1", "name": "Node 1"},
	{"id": "1_1", "name": "Node 1_1", "parentId": "1"},
	{"id": "1_2", "name": "Node 1_2", "parentId": "1"},
	{"id": "2", "name": "Node 2", "parentId": "1"},
	{"id": "3", "name": "Node 3", "parentId": "2"},
	{"id": "3_1", "name": "Node 3_1", "parentId": "3"},
	{"id": "3_2", "name": "Node 3_2", "parentId": "3"},
	{"id": "3_2_1", "name": "Node 3_2_1", "parentId": "3_2"},
	{"id": "4", "name": "Node 4", "parentId": "3"},
}

// newSampleTree inserts sampleRecords in order and returns the tree plus
// the inserted handles keyed by identifier.
func newSampleTree(t *testing.T) (*Tree, map[string]*Node) {
	t.Helper()

	tr, err := New(Config{})
	require.NoError(t, err)

	nodes := make(map[string]*Node, len(sampleRecords))
	for _, rec := range sampleRecords {
		n, err := tr.Insert(rec)
		require.NoError(t, err, "insert %v", rec["id"])
		nodes[rec["id"].(string)] = n
	}
	return tr, nodes
}

// ids returns the string identifiers of nodes, in order.
func ids(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i], _ = n.ID().(string)
	}
	return out
}
