package yamltree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"segview.dev/segview/tree"
	"segview.dev/segview/tree/yamltree"
)

const document = `
store:
  data00000a.tar:
    name: data00000a.tar
    size: 1024
    seg0:
      id: 11111111-1111-1111-1111-111111111111
      isDataSegment: true
      data: !!binary AAECAw==
      info: '{"t":"1"}'
      tags: !stringmap {a: b}
    seg1:
      id: 22222222-2222-2222-2222-222222222222
      length: !!int notanumber
      quoted: "42"
      empty: ~
journal: {}
`

func TestParse_ChildrenAndProperties(t *testing.T) {
	root, err := yamltree.Parse([]byte(document))
	require.NoError(t, err)

	store, ok := root.Child("store")
	require.True(t, ok)
	tar, ok := store.Child("data00000a.tar")
	require.True(t, ok)

	var segments []string
	for name := range tar.Children() {
		segments = append(segments, name)
	}
	assert.Equal(t, []string{"seg0", "seg1"}, segments, "scalars are not children and order is kept")

	size, ok := tar.Property("size")
	require.True(t, ok)
	n, ok := size.AsLong()
	assert.True(t, ok)
	assert.Equal(t, int64(1024), n)

	_, ok = tar.Child("name")
	assert.False(t, ok, "a scalar is not a child")

	journal, ok := root.Child("journal")
	require.True(t, ok, "an empty mapping is a child")
	assert.Equal(t, 0, tree.ChildCount(journal))
}

func TestParse_ScalarKinds(t *testing.T) {
	root, err := yamltree.Parse([]byte(document))
	require.NoError(t, err)
	seg0 := child(t, root, "store", "data00000a.tar", "seg0")
	seg1 := child(t, root, "store", "data00000a.tar", "seg1")

	v, _ := seg0.Property("isDataSegment")
	b, ok := v.AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	v, _ = seg0.Property("data")
	data, ok := v.AsBinary()
	assert.True(t, ok)
	assert.Equal(t, []byte{0, 1, 2, 3}, data)

	v, _ = seg0.Property("info")
	assert.Equal(t, tree.KindString, v.Kind())

	v, _ = seg0.Property("tags")
	m, ok := v.AsStringMap()
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"a": "b"}, m)
	_, ok = seg0.Child("tags")
	assert.False(t, ok, "a !stringmap mapping is a property")

	v, ok = seg1.Property("length")
	require.True(t, ok)
	assert.Equal(t, tree.KindString, v.Kind(), "malformed ints read as strings")

	v, _ = seg1.Property("quoted")
	assert.Equal(t, tree.KindString, v.Kind(), "quoted numbers stay strings")

	_, ok = seg1.Property("empty")
	assert.False(t, ok, "null is absent")
}

func TestParse_JSON(t *testing.T) {
	root, err := yamltree.Parse([]byte(`{"store": {"t": {"name": "t", "size": 3}}, "journal": {}}`))
	require.NoError(t, err)

	tar := child(t, root, "store", "t")
	v, ok := tar.Property("size")
	require.True(t, ok)
	n, _ := v.AsLong()
	assert.Equal(t, int64(3), n)
}

func TestParse_Equal(t *testing.T) {
	a, err := yamltree.Parse([]byte(document))
	require.NoError(t, err)
	b, err := yamltree.Parse([]byte(document))
	require.NoError(t, err)
	assert.True(t, tree.Equal(a, b))
}

func TestParse_Errors(t *testing.T) {
	_, err := yamltree.Parse([]byte(""))
	assert.ErrorIs(t, err, yamltree.ErrNotAMapping)

	_, err = yamltree.Parse([]byte("- a\n- b\n"))
	assert.ErrorIs(t, err, yamltree.ErrNotAMapping)

	_, err = yamltree.Parse([]byte("a: [unclosed"))
	assert.Error(t, err)
}

func child(t *testing.T, n tree.Node, path ...string) tree.Node {
	t.Helper()
	for _, name := range path {
		c, ok := n.Child(name)
		require.True(t, ok, "missing child %s", name)
		n = c
	}
	return n
}
