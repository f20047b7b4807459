// Package syntax defines the arena syntax tree that scope resolution runs
// over, together with the Java front end that produces it.
package syntax

// NodeID indexes a node in its Tree. Parent links are IDs, not pointers.
type NodeID int

// NoNode is the parent of the root.
const NoNode NodeID = -1

// Point is a 1-based line and column.
type Point struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Point) before(o Point) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

// Span is the source extent of a node.
type Span struct {
	StartByte uint32 `json:"-"`
	EndByte   uint32 `json:"-"`
	Start     Point  `json:"start"`
	End       Point  `json:"end"`
}

// Contains reports whether p falls inside the span (end exclusive).
func (s Span) Contains(p Point) bool {
	return !p.before(s.Start) && p.before(s.End)
}

// Node is a single tree node. Text holds the node's source text; synthetic
// nodes carry the text of the construct they stand for.
type Node struct {
	Category Category
	Type     string
	Text     string
	Parent   NodeID
	Children []NodeID
	Span     Span
}

// Tree is an immutable arena of nodes. It is safe for concurrent reads.
type Tree struct {
	nodes []Node
	Root  NodeID
	Path  string
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Valid reports whether id names a node of t.
func (t *Tree) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Node returns the node for id. It panics on an invalid ID, like a slice
// index would.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// Parent returns the parent of id, or NoNode at the root.
func (t *Tree) Parent(id NodeID) NodeID {
	return t.nodes[id].Parent
}

// Children returns the ordered children of id.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.nodes[id].Children
}

// Child returns the i-th child of id and whether it exists.
func (t *Tree) Child(id NodeID, i int) (NodeID, bool) {
	children := t.nodes[id].Children
	if i < 0 || i >= len(children) {
		return NoNode, false
	}
	return children[i], true
}

// Text returns the source text of id.
func (t *Tree) Text(id NodeID) string {
	return t.nodes[id].Text
}

// Category returns the category of id.
func (t *Tree) Category(id NodeID) Category {
	return t.nodes[id].Category
}

// Walk visits id and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	if !fn(id) {
		return
	}
	for _, c := range t.nodes[id].Children {
		t.Walk(c, fn)
	}
}

// NodeAt returns the deepest node whose span contains p, or NoNode when p
// lies outside the root.
func (t *Tree) NodeAt(p Point) NodeID {
	if len(t.nodes) == 0 || !t.nodes[t.Root].Span.Contains(p) {
		return NoNode
	}
	cur := t.Root
	for {
		next := NoNode
		for _, c := range t.nodes[cur].Children {
			if t.nodes[c].Span.Contains(p) {
				next = c
				break
			}
		}
		if next == NoNode {
			return cur
		}
		cur = next
	}
}

// Builder assembles a Tree node by node. The first node added without a
// parent becomes the root.
type Builder struct {
	t *Tree
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{t: &Tree{Root: NoNode}}
}

// Add appends a node under parent and returns its ID.
func (b *Builder) Add(parent NodeID, cat Category, typ, text string) NodeID {
	return b.AddSpan(parent, cat, typ, text, Span{})
}

// AddSpan is Add with a source span.
func (b *Builder) AddSpan(parent NodeID, cat Category, typ, text string, span Span) NodeID {
	id := NodeID(len(b.t.nodes))
	b.t.nodes = append(b.t.nodes, Node{
		Category: cat,
		Type:     typ,
		Text:     text,
		Parent:   parent,
		Span:     span,
	})
	if parent == NoNode {
		if b.t.Root == NoNode {
			b.t.Root = id
		}
		return id
	}
	b.t.nodes[parent].Children = append(b.t.nodes[parent].Children, id)
	return id
}

// Token appends a leaf whose type and text are the same keyword.
func (b *Builder) Token(parent NodeID, cat Category, text string) NodeID {
	return b.Add(parent, cat, text, text)
}

// Tree returns the built tree. The builder must not be used afterwards.
func (b *Builder) Tree() *Tree {
	t := b.t
	b.t = nil
	return t
}
