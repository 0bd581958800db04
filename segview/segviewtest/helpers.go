// A package of test helpers that build segment store trees.
package segviewtest

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
	"segview.dev/segview/tree"
)

var (
	DataSegmentID    = uuid.MustParse("abcdabcd-0000-0000-0000-000000000000")
	BulkSegmentID    = uuid.MustParse("abcdabcd-0000-0000-0000-000000000001")
	MissingSegmentID = uuid.MustParse("abcdabcd-0000-0000-0000-0000000000ff")
)

const (
	TarName      = "data00000a.tar"
	TarSize      = 1024
	DataLength   = 200
	BulkLength   = 824
	JournalStamp = 1700000000000
)

// Segment describes a well formed segment node.
type Segment struct {
	ID             uuid.UUID
	Data           []byte
	Bulk           bool
	Version        int
	Generation     int
	FullGeneration int
	Compacted      bool
	Info           string
	References     []uuid.UUID
	Records        []Record
}

type Record struct {
	Type    string
	Number  int
	Offset  int
	Address int
	// Root is attached as the root child of NODE records when set.
	Root tree.Node
	// Value is set as the value property of VALUE records when non-empty.
	Value string
}

// AddSegment writes seg as the named child of parent and returns the
// builder of the segment node.
func AddSegment(parent *tree.Builder, name string, seg Segment) *tree.Builder {
	info := seg.Info
	if info == "" {
		info = "{}"
	}
	b := parent.Child(name).
		SetString("id", seg.ID.String()).
		SetBool("exists", true).
		SetLong("length", int64(len(seg.Data))).
		SetBool("isDataSegment", !seg.Bulk).
		SetBinary("data", seg.Data).
		SetLong("version", int64(seg.Version)).
		SetLong("generation", int64(seg.Generation)).
		SetLong("fullGeneration", int64(seg.FullGeneration)).
		SetBool("compacted", seg.Compacted).
		SetString("info", info)

	if len(seg.References) > 0 {
		refs := b.Child("references")
		for i, id := range seg.References {
			refs.Child(fmt.Sprintf("%d", i)).SetString("id", id.String())
		}
	}
	if len(seg.Records) > 0 {
		records := b.Child("records")
		for _, r := range seg.Records {
			rb := records.Child(fmt.Sprintf("%d", r.Number)).
				SetString("segmentId", seg.ID.String()).
				SetString("type", r.Type).
				SetLong("number", int64(r.Number)).
				SetLong("offset", int64(r.Offset)).
				SetLong("address", int64(r.Address))
			if r.Root != nil {
				rb.Attach("root", r.Root)
			}
			if r.Value != "" {
				rb.SetString("value", r.Value)
			}
		}
	}
	return b
}

// AddJournalEntry writes a journal entry whose root child is root, unless
// root is nil.
func AddJournalEntry(journal *tree.Builder, name, revision string, timestamp int64, root tree.Node) *tree.Builder {
	b := journal.Child(name).
		SetString("revision", revision).
		SetLong("timestamp", timestamp)
	if root != nil {
		b.Attach("root", root)
	}
	return b
}

// HeadRoot is the content root shared by the scenario's head, journal entry
// and NODE record.
func HeadRoot() *tree.MemNode {
	b := tree.NewBuilder()
	b.SetString("jcr:primaryType", "rep:root")
	b.Child("content").SetString("title", "hello")
	return b.Node()
}

// Scenario returns a builder for a store with one tar holding one DATA
// segment of DataLength bytes and one BULK segment of BulkLength bytes,
// together TarSize bytes, and a journal with a single entry pointing at the
// first record of the data segment.
func Scenario() *tree.Builder {
	root := tree.NewBuilder()
	head := HeadRoot()

	tar := root.Child("store").Child(TarName).
		SetString("name", TarName).
		SetLong("size", TarSize)

	AddSegment(tar, DataSegmentID.String(), Segment{
		ID:             DataSegmentID,
		Data:           bytes.Repeat([]byte("segment!"), DataLength/8),
		Version:        12,
		Generation:     3,
		FullGeneration: 2,
		Info:           `{"wid":"sys","sno":"1","t":"1700000000000"}`,
		References:     []uuid.UUID{DataSegmentID, BulkSegmentID, MissingSegmentID},
		Records: []Record{
			{Type: "NODE", Number: 0, Offset: 0, Address: 0x3ff00, Root: head},
			{Type: "VALUE", Number: 1, Offset: 0x40, Address: 0x3ff40, Value: "hello"},
			{Type: "TEMPLATE", Number: 2, Offset: 0x80, Address: 0x3ff80},
		},
	})
	AddSegment(tar, BulkSegmentID.String(), Segment{
		ID:             BulkSegmentID,
		Data:           make([]byte, BulkLength),
		Bulk:           true,
		Version:        12,
		Generation:     3,
		FullGeneration: 2,
	})

	AddJournalEntry(root.Child("journal"), "0", DataSegmentID.String()+":0", JournalStamp, head)
	root.Attach("head", head)
	return root
}
