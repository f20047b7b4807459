// Package scope derives the chain of declarations that enclose a node of a
// syntax tree and describes each of them with a kind name.
//
// Resolution is a pure function of an immutable tree: it never logs, keeps
// no state between calls and may run concurrently on any number of trees.
package scope

import (
	"fmt"

	"github.com/arjunmahishi/jscope/syntax"
)

// Chain lists enclosing declarations, innermost first.
type Chain []Entry

// Depth is the number of class, interface, annotation and method entries.
func (c Chain) Depth() int {
	if len(c) == 1 && c[0].KindName == PackageKindName {
		return 0
	}
	return len(c)
}

// Resolve returns the scope chain of id.
//
// A package declaration, or any node inside one, resolves to a single
// package entry. Any other node resolves to the entries of its enclosing
// declarations; a node outside every declaration has an empty chain.
func Resolve(t *syntax.Tree, id syntax.NodeID) (Chain, error) {
	if !t.Valid(id) {
		return nil, fmt.Errorf("resolve node %d: %w", id, ErrInvalidNode)
	}

	if pkg, ok := enclosingPackage(t, id); ok {
		e, err := packageEntry(t, pkg)
		if err != nil {
			return nil, err
		}
		return Chain{e}, nil
	}

	ancestors := Ancestors(t, id)
	chain := make(Chain, 0, len(ancestors))
	for _, a := range ancestors {
		e, err := NewEntry(t, a)
		if err != nil {
			return nil, err
		}
		chain = append(chain, e)
	}
	return chain, nil
}

func enclosingPackage(t *syntax.Tree, id syntax.NodeID) (syntax.NodeID, bool) {
	if t.Category(id) == syntax.Package {
		return id, true
	}
	if first, ok := t.Child(id, 0); ok && t.Text(first) == "package" {
		return id, true
	}
	for cur := t.Parent(id); cur != syntax.NoNode; cur = t.Parent(cur) {
		if t.Category(cur) == syntax.Package {
			return cur, true
		}
	}
	return syntax.NoNode, false
}
