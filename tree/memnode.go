package tree

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// MemNode is an in-memory Node. Build one with a Builder.
type MemNode struct {
	childNames []string
	children   map[string]Node
	propNames  []string
	props      map[string]Value
}

func (n *MemNode) Child(name string) (Node, bool) {
	c, ok := n.children[name]
	return c, ok
}

func (n *MemNode) Children() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		for _, name := range n.childNames {
			if !yield(name, n.children[name]) {
				return
			}
		}
	}
}

func (n *MemNode) Property(name string) (Value, bool) {
	v, ok := n.props[name]
	return v, ok
}

func (n *MemNode) Properties() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, name := range n.propNames {
			if !yield(name, n.props[name]) {
				return
			}
		}
	}
}

func (n *MemNode) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, name := range n.propNames {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s = %v", name, n.props[name])
	}
	for i, name := range n.childNames {
		if i > 0 || len(n.propNames) > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s = {...}", name)
	}
	sb.WriteString("}")
	return sb.String()
}

var (
	_ Node           = (*MemNode)(nil)
	_ PropertyLister = (*MemNode)(nil)
)

// Builder assembles a MemNode. Builders are not safe for concurrent use; the
// nodes they build are immutable.
type Builder struct {
	childNames []string
	children   map[string]*Builder
	attached   map[string]Node
	propNames  []string
	props      map[string]Value
}

func NewBuilder() *Builder {
	return &Builder{
		children: make(map[string]*Builder),
		attached: make(map[string]Node),
		props:    make(map[string]Value),
	}
}

// Child returns the builder of the named child, adding the child after the
// existing ones if it does not exist yet.
func (b *Builder) Child(name string) *Builder {
	if c, ok := b.children[name]; ok {
		return c
	}
	b.removeChild(name)
	c := NewBuilder()
	b.children[name] = c
	b.childNames = append(b.childNames, name)
	return c
}

// Attach adds an already built node as the named child, replacing any child
// with the same name.
func (b *Builder) Attach(name string, n Node) *Builder {
	b.removeChild(name)
	b.attached[name] = n
	b.childNames = append(b.childNames, name)
	return b
}

// Remove deletes the named child or property.
func (b *Builder) Remove(name string) *Builder {
	b.removeChild(name)
	if _, ok := b.props[name]; ok {
		delete(b.props, name)
		b.propNames = slices.DeleteFunc(b.propNames, func(n string) bool { return n == name })
	}
	return b
}

func (b *Builder) removeChild(name string) {
	_, isChild := b.children[name]
	_, isAttached := b.attached[name]
	if !isChild && !isAttached {
		return
	}
	delete(b.children, name)
	delete(b.attached, name)
	b.childNames = slices.DeleteFunc(b.childNames, func(n string) bool { return n == name })
}

// Set sets a property.
func (b *Builder) Set(name string, v Value) *Builder {
	if _, ok := b.props[name]; !ok {
		b.propNames = append(b.propNames, name)
	}
	b.props[name] = v
	return b
}

func (b *Builder) SetString(name, s string) *Builder { return b.Set(name, String(s)) }

func (b *Builder) SetLong(name string, n int64) *Builder { return b.Set(name, Long(n)) }

func (b *Builder) SetBool(name string, v bool) *Builder { return b.Set(name, Bool(v)) }

func (b *Builder) SetBinary(name string, data []byte) *Builder {
	return b.Set(name, Binary(slices.Clone(data)))
}

func (b *Builder) SetStringMap(name string, m map[string]string) *Builder {
	return b.Set(name, StringMap(m))
}

// Node builds an immutable snapshot of the builder. Later changes to the
// builder do not affect the returned node.
func (b *Builder) Node() *MemNode {
	n := &MemNode{
		childNames: slices.Clone(b.childNames),
		children:   make(map[string]Node, len(b.childNames)),
		propNames:  slices.Clone(b.propNames),
		props:      make(map[string]Value, len(b.propNames)),
	}
	for _, name := range b.childNames {
		if c, ok := b.children[name]; ok {
			n.children[name] = c.Node()
		} else {
			n.children[name] = b.attached[name]
		}
	}
	for _, name := range b.propNames {
		n.props[name] = b.props[name]
	}
	return n
}
