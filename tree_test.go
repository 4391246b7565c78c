package gocrdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_AddFindRmChild(t *testing.T) {
	tr := NewTree[string, string]()

	tr.AddNode("a", TreeNode[string, string]{ParentID: "root", Metadata: "alpha"})
	n, ok := tr.Find("a")
	require.True(t, ok)
	assert.Equal(t, "root", n.ParentID)
	assert.Equal(t, "alpha", n.Metadata)

	assert.ElementsMatch(t, []string{"a"}, tr.Children("root"))

	tr.RmChild("a")
	_, ok = tr.Find("a")
	assert.False(t, ok)
	assert.Nil(t, tr.Children("root"), "parent entry should be pruned once empty")
}

func TestTree_AddNodeOverwritesAndMovesChildrenIndex(t *testing.T) {
	tr := NewTree[string, string]()
	tr.AddNode("a", TreeNode[string, string]{ParentID: "root", Metadata: "alpha"})
	tr.AddNode("a", TreeNode[string, string]{ParentID: "other", Metadata: "alpha2"})

	assert.Nil(t, tr.Children("root"))
	assert.ElementsMatch(t, []string{"a"}, tr.Children("other"))
}

func TestTree_IsAncestor(t *testing.T) {
	tr := NewTree[string, string]()
	// root -> a -> c, root -> b
	tr.AddNode("a", TreeNode[string, string]{ParentID: "root"})
	tr.AddNode("c", TreeNode[string, string]{ParentID: "a"})
	tr.AddNode("b", TreeNode[string, string]{ParentID: "root"})

	assert.True(t, tr.IsAncestor("c", "a"))
	assert.True(t, tr.IsAncestor("c", "root"))
	assert.False(t, tr.IsAncestor("b", "a"))
	assert.False(t, tr.IsAncestor("c", "c"), "a node is not its own ancestor via parent-walk unless a cycle exists")
}

func TestTree_Walk_IsIterativeAndVisitsEveryNode(t *testing.T) {
	tr := NewTree[string, string]()
	tr.AddNode("a", TreeNode[string, string]{ParentID: "root"})
	tr.AddNode("b", TreeNode[string, string]{ParentID: "root"})
	tr.AddNode("c", TreeNode[string, string]{ParentID: "a"})

	visited := map[string]int{}
	tr.Walk("root", func(id string, depth int) {
		visited[id] = depth
	})

	assert.Equal(t, 0, visited["root"])
	assert.Equal(t, 1, visited["a"])
	assert.Equal(t, 1, visited["b"])
	assert.Equal(t, 2, visited["c"])
	assert.Len(t, visited, 4)
}

func TestTree_Walk_DeepChainDoesNotRecurse(t *testing.T) {
	tr := NewTree[int, string]()
	const depth = 50000
	parent := 0
	for i := 1; i <= depth; i++ {
		tr.AddNode(i, TreeNode[int, string]{ParentID: parent})
		parent = i
	}

	count := 0
	assert.NotPanics(t, func() {
		tr.Walk(0, func(id int, d int) { count++ })
	})
	assert.Equal(t, depth+1, count)
}

func TestTree_RmSubtree(t *testing.T) {
	tr := NewTree[string, string]()
	tr.AddNode("project", TreeNode[string, string]{ParentID: "root"})
	tr.AddNode("readme", TreeNode[string, string]{ParentID: "project"})
	tr.AddNode("src", TreeNode[string, string]{ParentID: "project"})
	tr.AddNode("main", TreeNode[string, string]{ParentID: "src"})

	tr.RmSubtree("project", false)
	_, ok := tr.Find("project")
	assert.True(t, ok, "includeParent=false keeps the parent itself")
	for _, id := range []string{"readme", "src", "main"} {
		_, ok := tr.Find(id)
		assert.False(t, ok, "descendant %s should be gone", id)
	}

	tr.RmSubtree("root", true)
	_, ok = tr.Find("project")
	assert.False(t, ok)
}

func TestTree_Equal(t *testing.T) {
	a := NewTree[string, string]()
	b := NewTree[string, string]()
	assert.True(t, a.Equal(b))

	a.AddNode("x", TreeNode[string, string]{ParentID: "root", Metadata: "m"})
	assert.False(t, a.Equal(b))

	b.AddNode("x", TreeNode[string, string]{ParentID: "root", Metadata: "m"})
	assert.True(t, a.Equal(b))
}
