// Package tree defines the generic hierarchical read interface a storage
// engine uses to expose its structures, together with an in-memory
// implementation.
package tree

import (
	"iter"
)

// Node is an immutable tree node with ordered, uniquely named children and
// named properties.
type Node interface {
	// Child returns the child with the given name.
	Child(name string) (Node, bool)
	// Children iterates the children in order. Every call starts a new
	// iteration.
	Children() iter.Seq2[string, Node]
	// Property returns the property with the given name.
	Property(name string) (Value, bool)
}

// PropertyLister is implemented by nodes that can enumerate their
// properties.
type PropertyLister interface {
	Properties() iter.Seq2[string, Value]
}

// Empty returns a node without children or properties.
func Empty() Node {
	return &MemNode{}
}

// ChildCount counts the children of n.
func ChildCount(n Node) int {
	count := 0
	for range n.Children() {
		count++
	}
	return count
}

// Equal reports whether a and b are structurally equal: the same children
// in the same order, recursively equal, and equal properties. Properties are
// only compared when both nodes implement PropertyLister.
func Equal(a, b Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	if !propertiesEqual(a, b) {
		return false
	}

	nextB, stop := iter.Pull2(b.Children())
	defer stop()
	for nameA, childA := range a.Children() {
		nameB, childB, ok := nextB()
		if !ok || nameA != nameB || !Equal(childA, childB) {
			return false
		}
	}
	_, _, more := nextB()
	return !more
}

func propertiesEqual(a, b Node) bool {
	la, okA := a.(PropertyLister)
	lb, okB := b.(PropertyLister)
	if !okA || !okB {
		return true
	}

	countA := 0
	for name, va := range la.Properties() {
		vb, ok := b.Property(name)
		if !ok || !va.Equal(vb) {
			return false
		}
		countA++
	}
	countB := 0
	for range lb.Properties() {
		countB++
	}
	return countA == countB
}
