package syntax

import (
	"context"
	"errors"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// JavaLanguage returns the tree-sitter grammar for Java.
func JavaLanguage() *sitter.Language {
	return java.GetLanguage()
}

// ParseError reports source text the Java grammar could not parse cleanly.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Near   string
}

func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "<source>"
	}
	if e.Near == "" {
		return fmt.Sprintf("%s:%d:%d: syntax error", where, e.Line, e.Column)
	}
	return fmt.Sprintf("%s:%d:%d: syntax error near %q", where, e.Line, e.Column, e.Near)
}

var declCategories = map[string]Category{
	"class_declaration":           Class,
	"interface_declaration":       Interface,
	"annotation_type_declaration": Annotation,
	"method_declaration":          Method,
}

type nodeKey struct {
	start, end uint32
	typ        string
}

func keyOf(n *sitter.Node) nodeKey {
	return nodeKey{start: n.StartByte(), end: n.EndByte(), typ: n.Type()}
}

// Parsed is a lowered tree together with the concrete syntax tree it was
// built from.
type Parsed struct {
	Tree   *Tree
	CST    *sitter.Tree
	Source []byte
	index  map[nodeKey]NodeID
}

// Lookup maps a concrete syntax node to the arena node that represents it.
// Nodes folded into a leaf during lowering map to that leaf.
func (p *Parsed) Lookup(n *sitter.Node) NodeID {
	for cur := n; cur != nil; cur = cur.Parent() {
		if id, ok := p.index[keyOf(cur)]; ok {
			return id
		}
	}
	return p.Tree.Root
}

// ParseJava parses Java source into an arena tree.
func ParseJava(ctx context.Context, source []byte) (*Parsed, error) {
	p := sitter.NewParser()
	p.SetLanguage(JavaLanguage())
	cst, err := p.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return Lower(cst, source, "")
}

// ParseJavaFile reads and parses a Java file.
func ParseJavaFile(ctx context.Context, path string) (*Parsed, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	parsed, err := ParseJava(ctx, source)
	if err != nil {
		return nil, withPath(err, path)
	}
	parsed.Tree.Path = path
	return parsed, nil
}

func withPath(err error, path string) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Path = path
	}
	return err
}

// Lower converts a Java concrete syntax tree into the arena form.
//
// Class, interface, annotation type and method declarations are wrapped in a
// Member node holding their modifier tokens followed by the declaration. The
// declaration's own children start with its head (the keyword, or the return
// type for methods) and its name. Package declarations start with the
// package keyword and the package path.
func Lower(cst *sitter.Tree, source []byte, path string) (*Parsed, error) {
	root := cst.RootNode()
	if root.HasError() {
		return nil, newParseError(root, source, path)
	}

	l := &lowerer{
		b:     NewBuilder(),
		src:   source,
		index: make(map[nodeKey]NodeID),
	}
	l.lower(NoNode, root, false)

	tree := l.b.Tree()
	tree.Path = path
	return &Parsed{
		Tree:   tree,
		CST:    cst,
		Source: source,
		index:  l.index,
	}, nil
}

type lowerer struct {
	b     *Builder
	src   []byte
	index map[nodeKey]NodeID
}

func (l *lowerer) span(n *sitter.Node) Span {
	sp, ep := n.StartPoint(), n.EndPoint()
	return Span{
		StartByte: n.StartByte(),
		EndByte:   n.EndByte(),
		Start:     Point{Line: int(sp.Row) + 1, Column: int(sp.Column) + 1},
		End:       Point{Line: int(ep.Row) + 1, Column: int(ep.Column) + 1},
	}
}

func (l *lowerer) leaf(parent NodeID, cat Category, n *sitter.Node) NodeID {
	id := l.b.AddSpan(parent, cat, n.Type(), n.Content(l.src), l.span(n))
	l.index[keyOf(n)] = id
	return id
}

func (l *lowerer) lower(parent NodeID, n *sitter.Node, inModifiers bool) {
	typ := n.Type()
	if cat, ok := declCategories[typ]; ok {
		l.lowerDeclaration(parent, n, cat)
		return
	}
	if typ == "package_declaration" {
		l.lowerPackage(parent, n)
		return
	}
	if inModifiers {
		l.leaf(parent, Modifier, n)
		return
	}

	id := l.leaf(parent, Other, n)
	for i := 0; i < int(n.ChildCount()); i++ {
		l.lower(id, n.Child(i), typ == "modifiers")
	}
}

func (l *lowerer) lowerDeclaration(parent NodeID, n *sitter.Node, cat Category) {
	member := l.b.AddSpan(parent, Member, "member", n.Content(l.src), l.span(n))

	name := n.ChildByFieldName("name")
	var head *sitter.Node
	if cat == Method {
		head = n.ChildByFieldName("type")
	}

	var rest []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch {
		case c.Type() == "modifiers":
			for j := 0; j < int(c.ChildCount()); j++ {
				l.leaf(member, Modifier, c.Child(j))
			}
			l.index[keyOf(c)] = member
		case cat != Method && head == nil && !c.IsNamed():
			head = c
		case sameNode(c, head), sameNode(c, name):
		default:
			rest = append(rest, c)
		}
	}

	decl := l.leaf(member, cat, n)
	if head != nil {
		headCat := Other
		if cat == Method {
			headCat = TypeOrVoid
		}
		l.leaf(decl, headCat, head)
	}
	if name != nil {
		l.lower(decl, name, false)
	}
	for _, c := range rest {
		l.lower(decl, c, false)
	}
}

func (l *lowerer) lowerPackage(parent NodeID, n *sitter.Node) {
	pkg := l.leaf(parent, Package, n)

	var keyword *sitter.Node
	var rest []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if keyword == nil && c.Type() == "package" {
			keyword = c
			continue
		}
		rest = append(rest, c)
	}
	if keyword != nil {
		l.leaf(pkg, Other, keyword)
	}
	for _, c := range rest {
		l.lower(pkg, c, false)
	}
}

func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return keyOf(a) == keyOf(b)
}

func newParseError(root *sitter.Node, source []byte, path string) *ParseError {
	pe := &ParseError{Path: path, Line: 1, Column: 1}
	bad := firstError(root)
	if bad == nil {
		return pe
	}
	sp := bad.StartPoint()
	pe.Line = int(sp.Row) + 1
	pe.Column = int(sp.Column) + 1
	near := bad.Content(source)
	if len(near) > 40 {
		near = near[:40]
	}
	pe.Near = near
	return pe
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.HasError() || c.IsMissing() {
			if bad := firstError(c); bad != nil {
				return bad
			}
		}
	}
	return nil
}
