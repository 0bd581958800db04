package segview

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"segview.dev/segview/tree"
)

func requireProperty(n tree.Node, name string, kind tree.Kind) (tree.Value, error) {
	v, ok := n.Property(name)
	if !ok {
		return tree.Value{}, newDecodeError(name, "missing property", nil)
	}
	if v.Kind() != kind {
		return tree.Value{}, newDecodeError(name, fmt.Sprintf("expected %s but found %s", kind, v.Kind()), nil)
	}
	return v, nil
}

func stringProperty(n tree.Node, name string) (string, error) {
	v, err := requireProperty(n, name, tree.KindString)
	if err != nil {
		return "", err
	}
	s, _ := v.AsString()
	return s, nil
}

func longProperty(n tree.Node, name string) (int64, error) {
	v, err := requireProperty(n, name, tree.KindLong)
	if err != nil {
		return 0, err
	}
	l, _ := v.AsLong()
	return l, nil
}

func nonNegativeLongProperty(n tree.Node, name string) (int64, error) {
	l, err := longProperty(n, name)
	if err != nil {
		return 0, err
	}
	if l < 0 {
		return 0, newDecodeError(name, fmt.Sprintf("negative value %d", l), nil)
	}
	return l, nil
}

// intProperty reads a long that must fit a 32 bit signed integer, the width
// of offsets, numbers and versions in the segment format.
func intProperty(n tree.Node, name string) (int, error) {
	l, err := longProperty(n, name)
	if err != nil {
		return 0, err
	}
	if l < math.MinInt32 || l > math.MaxInt32 {
		return 0, newDecodeError(name, fmt.Sprintf("value %d out of range", l), nil)
	}
	return int(l), nil
}

func nonNegativeIntProperty(n tree.Node, name string) (int, error) {
	i, err := intProperty(n, name)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, newDecodeError(name, fmt.Sprintf("negative value %d", i), nil)
	}
	return i, nil
}

func boolProperty(n tree.Node, name string) (bool, error) {
	v, err := requireProperty(n, name, tree.KindBool)
	if err != nil {
		return false, err
	}
	b, _ := v.AsBool()
	return b, nil
}

func binaryProperty(n tree.Node, name string) ([]byte, error) {
	v, err := requireProperty(n, name, tree.KindBinary)
	if err != nil {
		return nil, err
	}
	b, _ := v.AsBinary()
	return b, nil
}

func uuidProperty(n tree.Node, name string) (uuid.UUID, error) {
	s, err := stringProperty(n, name)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, newDecodeError(name, "invalid uuid", err)
	}
	return id, nil
}
