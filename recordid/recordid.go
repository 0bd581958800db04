// Package recordid encodes and decodes record identifiers: a segment id and
// the offset of a record within that segment.
//
// Two textual forms are accepted:
//
//	11111111-1111-1111-1111-111111111111:42        decimal offset
//	11111111-1111-1111-1111-111111111111.0000002a  8 hex digit offset
package recordid

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/uuid"
)

var ErrMalformed = errors.New("malformed record id")

const uuidPattern = `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`

var (
	decimalForm = regexp.MustCompile(`^(` + uuidPattern + `):(0|[1-9][0-9]*)$`)
	compactForm = regexp.MustCompile(`^(` + uuidPattern + `)\.([0-9a-f]{8})$`)
)

// ID identifies a record by segment and offset.
type ID struct {
	SegmentID uuid.UUID
	Offset    int
}

// Parse decodes either accepted form. Any other shape, a non canonical uuid
// or an offset that does not fit a signed 32 bit integer yields false.
func Parse(revision string) (ID, bool) {
	if m := decimalForm.FindStringSubmatch(revision); m != nil {
		offset, err := strconv.ParseUint(m[2], 10, 31)
		if err != nil {
			return ID{}, false
		}
		return newID(m[1], offset)
	}
	if m := compactForm.FindStringSubmatch(revision); m != nil {
		offset, err := strconv.ParseUint(m[2], 16, 31)
		if err != nil {
			return ID{}, false
		}
		return newID(m[1], offset)
	}
	return ID{}, false
}

// ParseStrict is Parse for callers that treat a malformed revision as an
// error.
func ParseStrict(revision string) (ID, error) {
	id, ok := Parse(revision)
	if !ok {
		return ID{}, fmt.Errorf("%q: %w", revision, ErrMalformed)
	}
	return id, nil
}

func newID(segmentID string, offset uint64) (ID, bool) {
	u, err := uuid.Parse(segmentID)
	if err != nil {
		return ID{}, false
	}
	return ID{SegmentID: u, Offset: int(offset)}, true
}

// String renders the decimal form.
func (id ID) String() string {
	return fmt.Sprintf("%s:%d", id.SegmentID, id.Offset)
}

// Compact renders the 8 hex digit form.
func (id ID) Compact() string {
	return fmt.Sprintf("%s.%08x", id.SegmentID, id.Offset)
}
