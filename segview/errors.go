package segview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrDecode is matched by every failure to decode a required field: a
// missing property, a property of the wrong kind or a value that does not
// parse.
var ErrDecode = errors.New("decode failure")

// ErrInvariant is matched by errors from Segment.Validate.
var ErrInvariant = errors.New("segment invariant violated")

type DecodeError struct {
	Property string
	Reason   string
	Err      error
}

func newDecodeError(property, reason string, err error) *DecodeError {
	decodeFailures.Inc()
	return &DecodeError{Property: property, Reason: reason, Err: err}
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decoding %q: %s: %v", e.Property, e.Reason, e.Err)
	}
	return fmt.Sprintf("decoding %q: %s", e.Property, e.Reason)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDecode}
	}
	return []error{ErrDecode, e.Err}
}

type InvariantError struct {
	SegmentID uuid.UUID
	Problems  []string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("segment %s: %s", e.SegmentID, strings.Join(e.Problems, "; "))
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}
