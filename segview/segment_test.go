package segview_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"segview.dev/segview/segview"
	"segview.dev/segview/segview/segviewtest"
	"segview.dev/segview/tree"
	"segview.dev/segview/util/iteru"
)

func scenarioSegment(t *testing.T, id uuid.UUID) *segview.Segment {
	t.Helper()
	seg, ok, err := scenarioStore().Segment(id)
	require.NoError(t, err)
	require.True(t, ok)
	return seg
}

func TestSegment_LengthMatchesData(t *testing.T) {
	for _, id := range []uuid.UUID{segviewtest.DataSegmentID, segviewtest.BulkSegmentID} {
		seg := scenarioSegment(t, id)
		length, err := seg.Length()
		require.NoError(t, err)
		data, err := seg.Data()
		require.NoError(t, err)
		assert.Equal(t, length, int64(len(data)))
		assert.NoError(t, seg.Validate())
	}
}

func TestSegment_DataSegment(t *testing.T) {
	seg := scenarioSegment(t, segviewtest.DataSegmentID)

	typ, err := seg.Type()
	require.NoError(t, err)
	assert.Equal(t, segview.DataSegment, typ)
	assert.Equal(t, "DATA", typ.String())

	exists, err := seg.Exists()
	require.NoError(t, err)
	assert.True(t, exists)

	refs, err := iteru.CollectErr(seg.References())
	require.NoError(t, err)
	require.Len(t, refs, 3)
	var refIDs []uuid.UUID
	for _, ref := range refs {
		id, err := ref.ID()
		require.NoError(t, err)
		refIDs = append(refIDs, id)
	}
	assert.Equal(t, []uuid.UUID{segviewtest.DataSegmentID, segviewtest.BulkSegmentID, segviewtest.MissingSegmentID}, refIDs)

	assert.Equal(t, 3, iteru.Count2(seg.Records()))

	rec, ok, err := seg.Record(2)
	require.NoError(t, err)
	require.True(t, ok)
	recType, err := rec.Type()
	require.NoError(t, err)
	assert.Equal(t, segview.TemplateRecord, recType)

	_, ok, err = seg.Record(3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSegment_BulkSegmentHasNoReferencesOrRecords(t *testing.T) {
	root := tree.NewBuilder()
	seg := segviewtest.AddSegment(root, "bulk", segviewtest.Segment{
		ID:         segviewtest.BulkSegmentID,
		Data:       []byte{1, 2, 3},
		Bulk:       true,
		References: []uuid.UUID{segviewtest.DataSegmentID},
		Records:    []segviewtest.Record{{Type: "VALUE"}},
	}).Node()

	bulk := segview.NewSegment(seg)
	assert.Equal(t, 0, iteru.Count2(bulk.References()), "children of a bulk segment are ignored")
	assert.Equal(t, 0, iteru.Count2(bulk.Records()))

	err := bulk.Validate()
	assert.ErrorIs(t, err, segview.ErrInvariant)
	var invariantErr *segview.InvariantError
	require.True(t, errors.As(err, &invariantErr))
	assert.Equal(t, []string{"bulk segment has references", "bulk segment has records"}, invariantErr.Problems)
}

func TestSegment_ValidateLengthMismatch(t *testing.T) {
	b := segviewtest.AddSegment(tree.NewBuilder(), "s", segviewtest.Segment{
		ID:   segviewtest.DataSegmentID,
		Data: []byte{1, 2, 3},
	})
	b.SetLong("length", 4)

	err := segview.NewSegment(b.Node()).Validate()
	assert.ErrorIs(t, err, segview.ErrInvariant)
	assert.ErrorContains(t, err, "length 4 does not match 3 data bytes")
}

func TestSegment_MetaData(t *testing.T) {
	seg := scenarioSegment(t, segviewtest.DataSegmentID)

	first, err := seg.MetaData()
	require.NoError(t, err)
	second, err := seg.MetaData()
	require.NoError(t, err)

	want := segview.MetaData{
		Version:        12,
		Generation:     3,
		FullGeneration: 2,
		Info:           map[string]string{"wid": "sys", "sno": "1", "t": "1700000000000"},
	}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Errorf("MetaData() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("MetaData() not stable (-first +second):\n%s", diff)
	}
}

func TestSegment_MetaDataStringMapInfo(t *testing.T) {
	b := segviewtest.AddSegment(tree.NewBuilder(), "s", segviewtest.Segment{ID: segviewtest.DataSegmentID})
	b.SetStringMap("info", map[string]string{"a": "b"})

	md, err := segview.NewSegment(b.Node()).MetaData()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "b"}, md.Info)
}

func TestSegment_DecodeFailures(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(b *tree.Builder)
		property string
		access   func(s *segview.Segment) error
	}{{
		name:     "missing id",
		modify:   func(b *tree.Builder) { b.Remove("id") },
		property: "id",
		access:   func(s *segview.Segment) error { _, err := s.ID(); return err },
	}, {
		name:     "malformed id",
		modify:   func(b *tree.Builder) { b.SetString("id", "not-a-uuid") },
		property: "id",
		access:   func(s *segview.Segment) error { _, err := s.ID(); return err },
	}, {
		name:     "negative length",
		modify:   func(b *tree.Builder) { b.SetLong("length", -1) },
		property: "length",
		access:   func(s *segview.Segment) error { _, err := s.Length(); return err },
	}, {
		name:     "length of wrong kind",
		modify:   func(b *tree.Builder) { b.SetString("length", "200") },
		property: "length",
		access:   func(s *segview.Segment) error { _, err := s.Length(); return err },
	}, {
		name:     "missing type",
		modify:   func(b *tree.Builder) { b.Remove("isDataSegment") },
		property: "isDataSegment",
		access:   func(s *segview.Segment) error { _, err := iteru.CollectErr(s.Records()); return err },
	}, {
		name:     "info is not json",
		modify:   func(b *tree.Builder) { b.SetString("info", "{") },
		property: "info",
		access:   func(s *segview.Segment) error { _, err := s.MetaData(); return err },
	}, {
		name:     "info is json null",
		modify:   func(b *tree.Builder) { b.SetString("info", "null") },
		property: "info",
		access:   func(s *segview.Segment) error { _, err := s.MetaData(); return err },
	}, {
		name:     "negative generation",
		modify:   func(b *tree.Builder) { b.SetLong("generation", -3) },
		property: "generation",
		access:   func(s *segview.Segment) error { _, err := s.MetaData(); return err },
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := segviewtest.AddSegment(tree.NewBuilder(), "s", segviewtest.Segment{ID: segviewtest.DataSegmentID})
			tt.modify(b)

			err := tt.access(segview.NewSegment(b.Node()))
			assert.ErrorIs(t, err, segview.ErrDecode)
			var decodeErr *segview.DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, tt.property, decodeErr.Property)
		})
	}
}
