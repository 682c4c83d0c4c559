package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallace/localsub/internal/node"
)

func nodes() []node.Node {
	return []node.Node{
		&node.VlessNode{NodeName: "a", ServerHost: "1.1.1.1", ServerPort: 443, UUID: "u"},
		&node.VlessNode{NodeName: "b", ServerHost: "1.1.1.1", ServerPort: 443, UUID: "u"},
		&node.VlessNode{NodeName: "us-node", ServerHost: "2.2.2.2", ServerPort: 443, UUID: "v"},
	}
}

func TestApply_DedupFirstSeenWins(t *testing.T) {
	result, warnings, err := Apply(nodes(), Options{})
	require.NoError(t, err)
	require.Len(t, result.Nodes, 2)
	assert.Equal(t, "a", result.Nodes[0].Name())
	assert.Equal(t, "Removed 1 duplicate nodes", warnings[0])
}

func TestApply_Include(t *testing.T) {
	result, _, err := Apply(nodes(), Options{Include: "^us-"})
	require.NoError(t, err)
	require.Len(t, result.Nodes, 1)
	assert.Equal(t, "us-node", result.Nodes[0].Name())
}

func TestApply_InvalidRegexFails(t *testing.T) {
	_, _, err := Apply(nodes(), Options{Include: "("})
	assert.Error(t, err)
}

func TestApply_RenameMutatesInPlace(t *testing.T) {
	result, _, err := Apply(nodes(), Options{RenamePattern: "^us-", RenameReplace: "US-"})
	require.NoError(t, err)
	var renamed bool
	for _, n := range result.Nodes {
		if n.Name() == "US-node" {
			renamed = true
		}
	}
	assert.True(t, renamed)
}

func TestApply_OrderingGuarantee(t *testing.T) {
	result, _, err := Apply(nodes(), Options{})
	require.NoError(t, err)
	names := []string{result.Nodes[0].Name(), result.Nodes[1].Name()}
	assert.Equal(t, []string{"a", "us-node"}, names)
}
