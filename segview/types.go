package segview

import "fmt"

// SegmentType distinguishes segments holding records from segments holding
// raw bytes only.
type SegmentType int

const (
	DataSegment SegmentType = iota + 1
	BulkSegment
)

func (t SegmentType) String() string {
	switch t {
	case DataSegment:
		return "DATA"
	case BulkSegment:
		return "BULK"
	default:
		return fmt.Sprintf("SegmentType(%d)", int(t))
	}
}

// RecordType is the kind of a record within a data segment.
type RecordType int

const (
	// LeafRecord is a leaf of a map (a HAMT): its size followed by hash, key
	// and value per entry.
	LeafRecord RecordType = iota + 1
	// BranchRecord is an inner map node, or a diff record when only one entry
	// of the base map changed.
	BranchRecord
	// BucketRecord is a list of 2 to 255 record ids.
	BucketRecord
	// ListRecord is a size followed by a value or a bucket of values.
	ListRecord
	// ValueRecord is a length prefixed string, long or inlined binary.
	ValueRecord
	// BlockRecord is a block of raw bytes of a large value.
	BlockRecord
	// TemplateRecord describes the shape shared by nodes: primary type,
	// mixins, child node layout and property names and types.
	TemplateRecord
	// NodeRecord is a node: its template, child map and property values.
	NodeRecord
	// BlobIDRecord references an external binary.
	BlobIDRecord
)

var recordTypeNames = map[RecordType]string{
	LeafRecord:     "LEAF",
	BranchRecord:   "BRANCH",
	BucketRecord:   "BUCKET",
	ListRecord:     "LIST",
	ValueRecord:    "VALUE",
	BlockRecord:    "BLOCK",
	TemplateRecord: "TEMPLATE",
	NodeRecord:     "NODE",
	BlobIDRecord:   "BLOB_ID",
}

var recordTypesByName = func() map[string]RecordType {
	m := make(map[string]RecordType, len(recordTypeNames))
	for t, name := range recordTypeNames {
		m[name] = t
	}
	return m
}()

// ParseRecordType parses the tag of a record type, e.g. "NODE".
func ParseRecordType(s string) (RecordType, bool) {
	t, ok := recordTypesByName[s]
	return t, ok
}

func (t RecordType) String() string {
	if name, ok := recordTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("RecordType(%d)", int(t))
}
