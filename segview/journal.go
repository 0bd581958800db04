package segview

import (
	"fmt"

	"github.com/google/uuid"
	"segview.dev/segview/recordid"
	"segview.dev/segview/tree"
)

// JournalEntry is a view of one journal entry: a root record id written at
// a point in time together with the node tree it points to.
type JournalEntry struct {
	node tree.Node
}

func NewJournalEntry(node tree.Node) *JournalEntry {
	return &JournalEntry{node: node}
}

func (e *JournalEntry) Timestamp() (int64, error) {
	return longProperty(e.node, "timestamp")
}

// Revision returns the raw revision string of the entry.
func (e *JournalEntry) Revision() (string, error) {
	return stringProperty(e.node, "revision")
}

// RecordID decodes the revision.
func (e *JournalEntry) RecordID() (recordid.ID, error) {
	revision, err := e.Revision()
	if err != nil {
		return recordid.ID{}, err
	}
	id, ok := recordid.Parse(revision)
	if !ok {
		return recordid.ID{}, newDecodeError("revision", fmt.Sprintf("malformed revision %q", revision), recordid.ErrMalformed)
	}
	return id, nil
}

func (e *JournalEntry) SegmentID() (uuid.UUID, error) {
	id, err := e.RecordID()
	return id.SegmentID, err
}

func (e *JournalEntry) Offset() (int, error) {
	id, err := e.RecordID()
	return id.Offset, err
}

// Root returns the root node of the entry. A truncated entry without a root
// yields an empty node and false, so callers can navigate it regardless.
func (e *JournalEntry) Root() (tree.Node, bool) {
	if root, ok := e.node.Child("root"); ok {
		return root, true
	}
	return tree.Empty(), false
}

// Node returns the underlying tree node.
func (e *JournalEntry) Node() tree.Node {
	return e.node
}

func (e *JournalEntry) String() string {
	return fmt.Sprintf("JournalEntry%v", e.node)
}
