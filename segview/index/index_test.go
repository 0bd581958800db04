package index_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"segview.dev/segview/segview"
	"segview.dev/segview/segview/index"
	"segview.dev/segview/segview/segviewtest"
	"segview.dev/segview/tree"
)

func TestBuild(t *testing.T) {
	store := segview.New(segviewtest.Scenario().Node())

	idx, err := index.Build(t.Context(), store, index.WithConcurrency(2))
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, 0, idx.Duplicates())

	for _, id := range []uuid.UUID{segviewtest.DataSegmentID, segviewtest.BulkSegmentID} {
		seg, ok := idx.Lookup(id)
		require.True(t, ok)
		got, err := seg.ID()
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}

	_, ok := idx.Lookup(segviewtest.MissingSegmentID)
	assert.False(t, ok)
}

func TestBuild_FirstTarWins(t *testing.T) {
	root := tree.NewBuilder()
	store := root.Child("store")
	for _, tc := range []struct {
		tar    string
		length int
	}{{"data00002a.tar", 1}, {"data00001a.tar", 2}, {"data00000a.tar", 3}} {
		tar := store.Child(tc.tar).SetString("name", tc.tar).SetLong("size", int64(tc.length))
		segviewtest.AddSegment(tar, "s", segviewtest.Segment{
			ID:   segviewtest.DataSegmentID,
			Data: make([]byte, tc.length),
		})
	}

	idx, err := index.Build(t.Context(), segview.New(root.Node()), index.WithConcurrency(3))
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())
	assert.Equal(t, 2, idx.Duplicates())

	seg, ok := idx.Lookup(segviewtest.DataSegmentID)
	require.True(t, ok)
	length, err := seg.Length()
	require.NoError(t, err)
	assert.Equal(t, int64(1), length)
}

func TestBuild_Ascend(t *testing.T) {
	idx, err := index.Build(t.Context(), segview.New(segviewtest.Scenario().Node()))
	require.NoError(t, err)

	var ids []uuid.UUID
	idx.Ascend(func(id uuid.UUID, _ *segview.Segment) bool {
		ids = append(ids, id)
		return true
	})
	assert.Equal(t, []uuid.UUID{segviewtest.DataSegmentID, segviewtest.BulkSegmentID}, ids)

	count := 0
	idx.Ascend(func(uuid.UUID, *segview.Segment) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestBuild_DecodeFailure(t *testing.T) {
	root := tree.NewBuilder()
	tar := root.Child("store").Child("t.tar")
	segviewtest.AddSegment(tar, "s", segviewtest.Segment{ID: segviewtest.DataSegmentID}).Remove("id")

	_, err := index.Build(t.Context(), segview.New(root.Node()))
	assert.ErrorIs(t, err, segview.ErrDecode)
}

func TestBuild_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := index.Build(ctx, segview.New(segviewtest.Scenario().Node()))
	assert.ErrorIs(t, err, context.Canceled)
}
