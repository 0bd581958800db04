// Package segview projects the generic tree an append-only segment store
// exposes into typed, read-only views of its tar files, segments, records
// and journal.
//
// Views wrap a tree.Node and decode on every access. A required field that
// is missing or malformed is reported as an error matching ErrDecode at the
// first accessor that needs it. Lookups that find nothing return false,
// never an error.
package segview

import (
	"iter"

	"github.com/google/uuid"
	"segview.dev/segview/recordid"
	"segview.dev/segview/tree"
	"segview.dev/segview/util/iteru"
)

// Store is the root view of a segment store tree. It keeps no state besides
// the tree root.
type Store struct {
	root tree.Node
}

func New(root tree.Node) *Store {
	return &Store{root: root}
}

// Tars iterates the tar files in tree order, which the engine reports most
// recent first.
func (s *Store) Tars() iter.Seq2[*Tar, error] {
	return childViews(s.root, "store", NewTar)
}

// JournalEntries iterates the journal in tree order, most recent first.
func (s *Store) JournalEntries() iter.Seq2[*JournalEntry, error] {
	return childViews(s.root, "journal", NewJournalEntry)
}

func childViews[T any](root tree.Node, name string, newView func(tree.Node) T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		parent, ok := root.Child(name)
		if !ok {
			return
		}
		for v, err := range iteru.MapErr(parent.Children(), func(_ string, n tree.Node) (T, error) {
			return newView(n), nil
		}) {
			if !yield(v, err) {
				return
			}
		}
	}
}

// Segments iterates the segments of all tars.
func (s *Store) Segments() iter.Seq2[*Segment, error] {
	return iteru.FlatMapErr(s.Tars(), (*Tar).Segments)
}

// Segment returns the first segment in tar order with the given id. The scan
// is linear in the number of segments; see the index package for repeated
// lookups.
func (s *Store) Segment(id uuid.UUID) (*Segment, bool, error) {
	segmentLookups.Inc()
	return iteru.FindErr(s.Segments(), func(seg *Segment) (bool, error) {
		segmentsScanned.Inc()
		segID, err := seg.ID()
		return segID == id, err
	})
}

// Record returns the record with the given id from the first segment
// holding a record at that offset.
func (s *Store) Record(id recordid.ID) (*Record, bool, error) {
	for seg, err := range s.Segments() {
		if err != nil {
			return nil, false, err
		}
		segmentsScanned.Inc()
		segID, err := seg.ID()
		if err != nil {
			return nil, false, err
		}
		if segID != id.SegmentID {
			continue
		}
		rec, ok, err := iteru.FindErr(seg.Records(), func(r *Record) (bool, error) {
			offset, err := r.Offset()
			return offset == id.Offset, err
		})
		if err != nil || ok {
			return rec, ok, err
		}
	}
	return nil, false, nil
}

// Node returns the node tree of the NODE record with the given number in the
// given segment. Segments are scanned in tar order until a match is found.
func (s *Store) Node(segmentID uuid.UUID, recordNumber int) (tree.Node, bool, error) {
	nodeLookups.Inc()
	for seg, err := range s.Segments() {
		if err != nil {
			return nil, false, err
		}
		segmentsScanned.Inc()
		segID, err := seg.ID()
		if err != nil {
			return nil, false, err
		}
		if segID != segmentID {
			continue
		}
		rec, ok, err := seg.Record(recordNumber)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}
		t, err := rec.Type()
		if err != nil {
			return nil, false, err
		}
		if t != NodeRecord {
			continue
		}
		if root, ok := rec.Root(); ok {
			return root, true, nil
		}
	}
	return nil, false, nil
}

// Head returns the current root node of the store.
func (s *Store) Head() (tree.Node, bool) {
	return s.root.Child("head")
}

// Root returns the underlying tree node.
func (s *Store) Root() tree.Node {
	return s.root
}
