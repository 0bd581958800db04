package tree

import (
	"bytes"
	"fmt"
	"maps"
)

// Kind is the tag of a Value.
type Kind int

const (
	KindString Kind = iota + 1
	KindLong
	KindBool
	KindBinary
	KindStringMap
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "STRING"
	case KindLong:
		return "LONG"
	case KindBool:
		return "BOOLEAN"
	case KindBinary:
		return "BINARY"
	case KindStringMap:
		return "STRINGMAP"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a property value. Exactly one of the payload fields is meaningful,
// selected by the kind. The zero Value has no kind and is never returned by a
// Node.
type Value struct {
	kind Kind
	str  string
	num  int64
	b    bool
	bin  []byte
	m    map[string]string
}

func String(s string) Value { return Value{kind: KindString, str: s} }

func Long(n int64) Value { return Value{kind: KindLong, num: n} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Binary wraps b without copying. Callers must not modify b afterwards.
func Binary(b []byte) Value { return Value{kind: KindBinary, bin: b} }

// StringMap copies m.
func StringMap(m map[string]string) Value { return Value{kind: KindStringMap, m: maps.Clone(m)} }

func (v Value) Kind() Kind { return v.kind }

// AsString returns the payload of a KindString value.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsLong returns the payload of a KindLong value.
func (v Value) AsLong() (int64, bool) {
	return v.num, v.kind == KindLong
}

// AsBool returns the payload of a KindBool value.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsBinary returns the payload of a KindBinary value. The returned slice is
// shared and must not be modified.
func (v Value) AsBinary() ([]byte, bool) {
	return v.bin, v.kind == KindBinary
}

// AsStringMap returns a copy of the payload of a KindStringMap value.
func (v Value) AsStringMap() (map[string]string, bool) {
	if v.kind != KindStringMap {
		return nil, false
	}
	return maps.Clone(v.m), true
}

// Equal reports whether v and o have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindLong:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindBinary:
		return bytes.Equal(v.bin, o.bin)
	case KindStringMap:
		return maps.Equal(v.m, o.m)
	default:
		return true
	}
}

// Format renders the value for logs and debugging output.
func (v Value) Format(f fmt.State, verb rune) {
	switch v.kind {
	case KindString:
		fmt.Fprintf(f, "%q", v.str)
	case KindLong:
		fmt.Fprintf(f, "%d", v.num)
	case KindBool:
		fmt.Fprintf(f, "%t", v.b)
	case KindBinary:
		fmt.Fprintf(f, "<%d bytes>", len(v.bin))
	case KindStringMap:
		fmt.Fprintf(f, "%v", v.m)
	default:
		fmt.Fprint(f, "<none>")
	}
}
