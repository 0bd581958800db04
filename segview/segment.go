package segview

import (
	"fmt"
	"iter"

	"github.com/google/uuid"
	"segview.dev/segview/tree"
	"segview.dev/segview/util/iteru"
)

// Segment is a view of a segment node. Nothing is decoded until an accessor
// needs it, and nothing is cached.
type Segment struct {
	node tree.Node
}

func NewSegment(node tree.Node) *Segment {
	return &Segment{node: node}
}

func (s *Segment) ID() (uuid.UUID, error) {
	return uuidProperty(s.node, "id")
}

// Exists is true if the segment is present in the store. Referenced
// segments may have been collected.
func (s *Segment) Exists() (bool, error) {
	return boolProperty(s.node, "exists")
}

// Length is the size of the segment in bytes.
func (s *Segment) Length() (int64, error) {
	return nonNegativeLongProperty(s.node, "length")
}

func (s *Segment) Type() (SegmentType, error) {
	isData, err := boolProperty(s.node, "isDataSegment")
	if err != nil {
		return 0, err
	}
	if isData {
		return DataSegment, nil
	}
	return BulkSegment, nil
}

// References iterates the segments referenced by this segment. Bulk
// segments have no references.
func (s *Segment) References() iter.Seq2[*Segment, error] {
	return dataChildren(s, "references", func(_ string, n tree.Node) (*Segment, error) {
		return NewSegment(n), nil
	})
}

// Records iterates the records of this segment. Bulk segments have no
// records.
func (s *Segment) Records() iter.Seq2[*Record, error] {
	return dataChildren(s, "records", func(_ string, n tree.Node) (*Record, error) {
		return NewRecord(n), nil
	})
}

func dataChildren[T any](s *Segment, name string, f func(string, tree.Node) (T, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		t, err := s.Type()
		if err != nil {
			var zero T
			yield(zero, err)
			return
		}
		if t == BulkSegment {
			return
		}
		parent, ok := s.node.Child(name)
		if !ok {
			return
		}
		for v, err := range iteru.MapErr(parent.Children(), f) {
			if !yield(v, err) {
				return
			}
		}
	}
}

// Record returns the record with the given number.
func (s *Segment) Record(number int) (*Record, bool, error) {
	return iteru.FindErr(s.Records(), func(r *Record) (bool, error) {
		n, err := r.Number()
		return n == number, err
	})
}

// Data returns the raw bytes of the segment. The returned slice must not be
// modified.
func (s *Segment) Data() ([]byte, error) {
	return binaryProperty(s.node, "data")
}

func (s *Segment) MetaData() (MetaData, error) {
	return DecodeMetaData(s.node)
}

// Validate checks that the length matches the data and that bulk segments
// carry neither references nor records.
func (s *Segment) Validate() error {
	id, err := s.ID()
	if err != nil {
		return err
	}
	length, err := s.Length()
	if err != nil {
		return err
	}
	data, err := s.Data()
	if err != nil {
		return err
	}
	t, err := s.Type()
	if err != nil {
		return err
	}

	var problems []string
	if length != int64(len(data)) {
		problems = append(problems, fmt.Sprintf("length %d does not match %d data bytes", length, len(data)))
	}
	if t == BulkSegment {
		for _, name := range []string{"references", "records"} {
			if c, ok := s.node.Child(name); ok && tree.ChildCount(c) > 0 {
				problems = append(problems, fmt.Sprintf("bulk segment has %s", name))
			}
		}
	}
	if len(problems) > 0 {
		return &InvariantError{SegmentID: id, Problems: problems}
	}
	return nil
}

// Node returns the underlying tree node.
func (s *Segment) Node() tree.Node {
	return s.node
}

func (s *Segment) String() string {
	return fmt.Sprintf("Segment%v", s.node)
}
