package ajex

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

func TestAddChildContract(t *testing.T) {
	tests := []struct {
		name    string
		parent  *Node
		child   *Node
		wantErr bool
	}{
		{"root takes block", NewRoot(), NewFunctionContent("A"), false},
		{"block takes literal", NewFunctionContent("A"), NewLiteral("x"), false},
		{"literal takes metadata", NewLiteral("x"), NewMetadata("k", "v"), false},
		{"literal rejects literal", NewLiteral("x"), NewLiteral("y"), true},
		{"literal rejects container", NewLiteral("x"), NewFunctionContent("A"), true},
		{"metadata rejects metadata", NewMetadata("k", "v"), NewMetadata("a", "b"), true},
		{"nil child", NewRoot(), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parent.AddChild(tt.child)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrContractViolation)
				assert.False(t, tt.parent.HasChildren())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, tt.parent.Len())
		})
	}
}

func TestNewContainer(t *testing.T) {
	open := Token{Kind: TokenOpen, Text: "AT"}
	entry := Token{Kind: TokenEntry, Text: "x"}

	block, err := NewContainer(ContainerFunctionContent, &open)
	require.NoError(t, err)
	assert.Equal(t, "AT", block.Name)

	_, err = NewContainer(ContainerFunctionContent, nil)
	assert.ErrorIs(t, err, ErrContractViolation)

	_, err = NewContainer(ContainerFunctionContent, &entry)
	assert.ErrorIs(t, err, ErrContractViolation)

	_, err = NewContainer(ContainerMetadata, &open)
	assert.ErrorIs(t, err, ErrContractViolation)

	root, err := NewContainer(ContainerRoot, nil)
	require.NoError(t, err)
	assert.True(t, root.Equal(NewRoot()))
}

func TestNodesFromWrongTokens(t *testing.T) {
	_, err := LiteralFromToken(Token{Kind: TokenMeta, Text: "a: b"})
	assert.ErrorIs(t, err, ErrContractViolation)

	_, err = MetadataFromToken(Token{Kind: TokenEntry, Text: "a: b"})
	assert.ErrorIs(t, err, ErrContractViolation)
}

func TestReplaceAndRemoveChild(t *testing.T) {
	block := NewFunctionContent("A")
	first := NewLiteral("first")
	second := NewLiteral("second")
	require.NoError(t, block.AddChild(first))
	require.NoError(t, block.AddChild(second))

	replacement := NewLiteral("replaced")
	ok, err := block.ReplaceChild(first, replacement)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Same(t, replacement, block.Children()[0])

	ok, err = block.ReplaceChild(first, NewLiteral("gone"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = first.ReplaceChild(nil, NewLiteral("bad"))
	assert.ErrorIs(t, err, ErrContractViolation)

	assert.True(t, block.RemoveChild(second))
	assert.False(t, block.RemoveChild(second))
	assert.Equal(t, 1, block.Len())
}

func TestChildrenReturnsCopy(t *testing.T) {
	block := NewFunctionContent("A")
	require.NoError(t, block.AddChild(NewLiteral("x")))

	children := block.Children()
	children[0] = NewLiteral("mutated")
	assert.Equal(t, "x", block.Children()[0].Literal)
}

func TestContains(t *testing.T) {
	root := mustParse(t, "~A\n@k: v\nx\n~\n")
	assert.True(t, root.Contains(VariantLiteral))
	assert.True(t, root.Contains(VariantMetadata))

	empty := mustParse(t, "")
	assert.False(t, empty.Contains(VariantLiteral))
	assert.True(t, empty.Contains(VariantContainer))
	assert.True(t, empty.IsContainer())
}

func TestEqual(t *testing.T) {
	a := mustParse(t, "@v: 1\n~A\nx\n~\n")
	b := mustParse(t, "@v: 1\n# comment\n~A\nx\n~other\n")
	c := mustParse(t, "@v: 2\n~A\nx\n~\n")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
	assert.False(t, NewFunctionContent("A").Equal(NewFunctionContent("B")))

	var nilNode *Node
	assert.True(t, nilNode.Equal(nil))
}
