// Package queries holds aggregate queries over a segment store: the sizes of
// tars and segments, reference counts and checkpoint counts per journal
// revision.
package queries

import (
	"iter"
	"strings"

	"segview.dev/segview/segview"
	"segview.dev/segview/tree"
	"segview.dev/segview/util/iteru"
)

// TarFilter selects tars. A nil TarFilter selects every tar.
type TarFilter func(*segview.Tar) (bool, error)

// TarHasSuffix selects tars whose name ends with suffix.
func TarHasSuffix(suffix string) TarFilter {
	return func(t *segview.Tar) (bool, error) {
		name, err := t.Name()
		if err != nil {
			return false, err
		}
		return strings.HasSuffix(name, suffix), nil
	}
}

func tars(store *segview.Store, filter TarFilter) iter.Seq2[*segview.Tar, error] {
	if filter == nil {
		return store.Tars()
	}
	return iteru.FilterErr(store.Tars(), filter)
}

// TarSizeSum sums the sizes of the selected tars.
func TarSizeSum(store *segview.Store, filter TarFilter) (int64, error) {
	var sum int64
	for tar, err := range tars(store, filter) {
		if err != nil {
			return 0, err
		}
		size, err := tar.Size()
		if err != nil {
			return 0, err
		}
		sum += size
	}
	return sum, nil
}

// SegmentSizeSum sums the lengths of the segments in the selected tars.
func SegmentSizeSum(store *segview.Store, filter TarFilter) (int64, error) {
	var sum int64
	for seg, err := range iteru.FlatMapErr(tars(store, filter), (*segview.Tar).Segments) {
		if err != nil {
			return 0, err
		}
		length, err := seg.Length()
		if err != nil {
			return 0, err
		}
		sum += length
	}
	return sum, nil
}

// ReferenceCount counts the references of the segments in the selected tars.
func ReferenceCount(store *segview.Store, filter TarFilter) (int, error) {
	segments := iteru.FlatMapErr(tars(store, filter), (*segview.Tar).Segments)
	count := 0
	for _, err := range iteru.FlatMapErr(segments, (*segview.Segment).References) {
		if err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}

// CheckpointCounts returns the number of checkpoints of the root of each of
// the latest limit journal entries, most recent first. Entries without a
// root count zero.
func CheckpointCounts(store *segview.Store, limit int) ([]int, error) {
	var counts []int
	for entry, err := range iteru.Take2(store.JournalEntries(), limit) {
		if err != nil {
			return nil, err
		}
		root, _ := entry.Root()
		checkpoints, ok := root.Child("checkpoints")
		if !ok {
			counts = append(counts, 0)
			continue
		}
		counts = append(counts, tree.ChildCount(checkpoints))
	}
	return counts, nil
}
