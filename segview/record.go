package segview

import (
	"fmt"

	"github.com/google/uuid"
	"segview.dev/segview/recordid"
	"segview.dev/segview/tree"
)

// Record is a view of a record node. It refers to its segment by id only;
// use Segment to resolve it through a Store.
type Record struct {
	node tree.Node
}

func NewRecord(node tree.Node) *Record {
	return &Record{node: node}
}

func (r *Record) SegmentID() (uuid.UUID, error) {
	return uuidProperty(r.node, "segmentId")
}

func (r *Record) Offset() (int, error) {
	return intProperty(r.node, "offset")
}

func (r *Record) Number() (int, error) {
	return intProperty(r.node, "number")
}

func (r *Record) Address() (int, error) {
	return intProperty(r.node, "address")
}

func (r *Record) Type() (RecordType, error) {
	s, err := stringProperty(r.node, "type")
	if err != nil {
		return 0, err
	}
	t, ok := ParseRecordType(s)
	if !ok {
		return 0, newDecodeError("type", fmt.Sprintf("unknown record type %q", s), nil)
	}
	return t, nil
}

// ID returns the record id formed by the segment id and offset.
func (r *Record) ID() (recordid.ID, error) {
	segmentID, err := r.SegmentID()
	if err != nil {
		return recordid.ID{}, err
	}
	offset, err := r.Offset()
	if err != nil {
		return recordid.ID{}, err
	}
	return recordid.ID{SegmentID: segmentID, Offset: offset}, nil
}

// Root returns the node tree of a NODE record.
func (r *Record) Root() (tree.Node, bool) {
	return r.node.Child("root")
}

// Value returns the string of a VALUE record.
func (r *Record) Value() (string, bool, error) {
	v, ok := r.node.Property("value")
	if !ok {
		return "", false, nil
	}
	s, ok := v.AsString()
	if !ok {
		return "", false, newDecodeError("value", fmt.Sprintf("expected %s but found %s", tree.KindString, v.Kind()), nil)
	}
	return s, true, nil
}

// Segment resolves the segment containing this record.
func (r *Record) Segment(s *Store) (*Segment, bool, error) {
	id, err := r.SegmentID()
	if err != nil {
		return nil, false, err
	}
	return s.Segment(id)
}

// Node returns the underlying tree node.
func (r *Record) Node() tree.Node {
	return r.node
}

func (r *Record) String() string {
	return fmt.Sprintf("Record%v", r.node)
}
