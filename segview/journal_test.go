package segview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"segview.dev/segview/recordid"
	"segview.dev/segview/segview"
	"segview.dev/segview/segview/segviewtest"
	"segview.dev/segview/tree"
	"segview.dev/segview/util/iteru"
)

func TestJournalEntry_DecodesRevision(t *testing.T) {
	store := scenarioStore()

	entries, err := iteru.CollectErr(store.JournalEntries())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	entry := entries[0]

	revision, err := entry.Revision()
	require.NoError(t, err)
	assert.Equal(t, "abcdabcd-0000-0000-0000-000000000000:0", revision)

	segmentID, err := entry.SegmentID()
	require.NoError(t, err)
	assert.Equal(t, segviewtest.DataSegmentID, segmentID)

	offset, err := entry.Offset()
	require.NoError(t, err)
	assert.Equal(t, 0, offset)

	timestamp, err := entry.Timestamp()
	require.NoError(t, err)
	assert.Equal(t, int64(segviewtest.JournalStamp), timestamp)
}

func TestJournalEntry_RootIsUnmodified(t *testing.T) {
	store := scenarioStore()
	entry, _, err := iteru.FindErr(store.JournalEntries(), func(*segview.JournalEntry) (bool, error) { return true, nil })
	require.NoError(t, err)

	root, ok := entry.Root()
	require.True(t, ok)
	head, _ := store.Head()
	assert.Same(t, head, root, "the root child is returned as is")
	assert.True(t, tree.Equal(segviewtest.HeadRoot(), root))
}

func TestJournalEntry_MissingRoot(t *testing.T) {
	journal := tree.NewBuilder()
	entry := segview.NewJournalEntry(segviewtest.AddJournalEntry(journal, "0", "abcdabcd-0000-0000-0000-000000000000:0", 1, nil).Node())

	root, ok := entry.Root()
	assert.False(t, ok)
	require.NotNil(t, root, "a missing root is still navigable")
	assert.Equal(t, 0, tree.ChildCount(root))
	_, ok = root.Property("jcr:primaryType")
	assert.False(t, ok)
}

func TestJournalEntry_MalformedRevision(t *testing.T) {
	journal := tree.NewBuilder()
	entry := segview.NewJournalEntry(segviewtest.AddJournalEntry(journal, "0", "abcdabcd-0000-0000-0000-000000000000:01", 1, nil).Node())

	_, err := entry.RecordID()
	assert.ErrorIs(t, err, segview.ErrDecode)
	assert.ErrorIs(t, err, recordid.ErrMalformed)

	_, err = entry.Offset()
	assert.ErrorIs(t, err, segview.ErrDecode)

	ts, err := entry.Timestamp()
	require.NoError(t, err, "other fields still decode")
	assert.Equal(t, int64(1), ts)
}
