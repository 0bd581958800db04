// Package yamltree exposes a parsed YAML (or JSON) document as a tree.Node.
//
// Mapping values that are themselves mappings are children; scalar values are
// properties. Scalars are converted to typed values only when a property is
// read:
//
//	!!int     -> tree.KindLong
//	!!bool    -> tree.KindBool
//	!!binary  -> tree.KindBinary (base64)
//	!!null    -> absent
//	otherwise -> tree.KindString
//
// A mapping tagged !stringmap is a tree.KindStringMap property. A scalar whose
// tag does not match its text (for example `!!int abc`) reads as its raw
// string so that consumers see a kind mismatch rather than a default.
package yamltree

import (
	"encoding/base64"
	"errors"
	"fmt"
	"iter"
	"strings"

	"gopkg.in/yaml.v3"
	"segview.dev/segview/tree"
)

const StringMapTag = "!stringmap"

var ErrNotAMapping = errors.New("document root is not a mapping")

// Parse parses data into a tree. Only the document structure is validated
// here; property values are decoded lazily.
func Parse(data []byte) (tree.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing tree document: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("parsing tree document: empty document: %w", ErrNotAMapping)
	}
	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing tree document: found %s: %w", kindName(root.Kind), ErrNotAMapping)
	}
	return &node{m: root}, nil
}

type node struct {
	m *yaml.Node
}

// entries iterates the key/value pairs of the mapping, skipping repeated
// keys so that the first occurrence wins.
func (n *node) entries() iter.Seq2[string, *yaml.Node] {
	return func(yield func(string, *yaml.Node) bool) {
		seen := make(map[string]struct{}, len(n.m.Content)/2)
		for i := 0; i+1 < len(n.m.Content); i += 2 {
			key := n.m.Content[i].Value
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if !yield(key, resolve(n.m.Content[i+1])) {
				return
			}
		}
	}
}

func (n *node) lookup(name string) (*yaml.Node, bool) {
	for key, v := range n.entries() {
		if key == name {
			return v, true
		}
	}
	return nil, false
}

func (n *node) Child(name string) (tree.Node, bool) {
	v, ok := n.lookup(name)
	if !ok || !isChild(v) {
		return nil, false
	}
	return &node{m: v}, true
}

func (n *node) Children() iter.Seq2[string, tree.Node] {
	return func(yield func(string, tree.Node) bool) {
		for key, v := range n.entries() {
			if !isChild(v) {
				continue
			}
			if !yield(key, &node{m: v}) {
				return
			}
		}
	}
}

func (n *node) Property(name string) (tree.Value, bool) {
	v, ok := n.lookup(name)
	if !ok {
		return tree.Value{}, false
	}
	return toValue(v)
}

func (n *node) Properties() iter.Seq2[string, tree.Value] {
	return func(yield func(string, tree.Value) bool) {
		for key, v := range n.entries() {
			value, ok := toValue(v)
			if !ok {
				continue
			}
			if !yield(key, value) {
				return
			}
		}
	}
}

func (n *node) String() string {
	return fmt.Sprintf("yamltree.node{line: %d}", n.m.Line)
}

var (
	_ tree.Node           = (*node)(nil)
	_ tree.PropertyLister = (*node)(nil)
)

func isChild(v *yaml.Node) bool {
	return v.Kind == yaml.MappingNode && v.Tag != StringMapTag
}

func toValue(v *yaml.Node) (tree.Value, bool) {
	switch v.Kind {
	case yaml.MappingNode:
		if v.Tag != StringMapTag {
			return tree.Value{}, false
		}
		var m map[string]string
		if err := v.Decode(&m); err != nil {
			return tree.String(""), true
		}
		return tree.StringMap(m), true
	case yaml.ScalarNode:
		return scalarValue(v)
	default:
		return tree.Value{}, false
	}
}

func scalarValue(v *yaml.Node) (tree.Value, bool) {
	switch v.ShortTag() {
	case "!!null":
		return tree.Value{}, false
	case "!!int":
		var n int64
		if err := v.Decode(&n); err != nil {
			return tree.String(v.Value), true
		}
		return tree.Long(n), true
	case "!!bool":
		var b bool
		if err := v.Decode(&b); err != nil {
			return tree.String(v.Value), true
		}
		return tree.Bool(b), true
	case "!!binary":
		data, err := base64.StdEncoding.DecodeString(stripSpace(v.Value))
		if err != nil {
			return tree.String(v.Value), true
		}
		return tree.Binary(data), true
	default:
		return tree.String(v.Value), true
	}
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}

func resolve(v *yaml.Node) *yaml.Node {
	for v != nil && v.Kind == yaml.AliasNode {
		v = v.Alias
	}
	return v
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
