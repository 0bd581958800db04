package segview

import (
	"fmt"
	"iter"

	"github.com/google/uuid"
	"segview.dev/segview/tree"
	"segview.dev/segview/util/iteru"
)

// Tar is a view of a tar file node: a named container of segments.
type Tar struct {
	node tree.Node
}

func NewTar(node tree.Node) *Tar {
	return &Tar{node: node}
}

func (t *Tar) Name() (string, error) {
	name, err := stringProperty(t.node, "name")
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", newDecodeError("name", "empty tar name", nil)
	}
	return name, nil
}

// Size is the size of the tar file in bytes.
func (t *Tar) Size() (int64, error) {
	return nonNegativeLongProperty(t.node, "size")
}

// Segments iterates every child of the tar in tree order.
func (t *Tar) Segments() iter.Seq2[*Segment, error] {
	return iteru.MapErr(t.node.Children(), func(_ string, n tree.Node) (*Segment, error) {
		return NewSegment(n), nil
	})
}

// Segment returns the first segment of this tar with the given id.
func (t *Tar) Segment(id uuid.UUID) (*Segment, bool, error) {
	return iteru.FindErr(t.Segments(), func(s *Segment) (bool, error) {
		segmentsScanned.Inc()
		segID, err := s.ID()
		return segID == id, err
	})
}

// Node returns the underlying tree node.
func (t *Tar) Node() tree.Node {
	return t.node
}

func (t *Tar) String() string {
	return fmt.Sprintf("Tar%v", t.node)
}
