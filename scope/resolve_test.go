package scope

import (
	"errors"
	"testing"

	"github.com/arjunmahishi/jscope/syntax"
	"github.com/stretchr/testify/require"
)

// decl adds a member node with the given modifiers and a declaration whose
// first two children are head and name.
func decl(
	b *syntax.Builder, parent syntax.NodeID, cat syntax.Category, head, name string, mods ...string,
) syntax.NodeID {
	member := b.Add(parent, syntax.Member, "member", "")
	for _, m := range mods {
		b.Token(member, syntax.Modifier, m)
	}
	d := b.Add(member, cat, cat.String()+"_declaration", "")
	headCat := syntax.Other
	if cat == syntax.Method {
		headCat = syntax.TypeOrVoid
	}
	b.Add(d, headCat, head, head)
	b.Add(d, syntax.Other, "identifier", name)
	return d
}

type calcTree struct {
	tree    *syntax.Tree
	pkgPath syntax.NodeID
	imp     syntax.NodeID
	class   syntax.NodeID
	method  syntax.NodeID
	stmt    syntax.NodeID
	expr    syntax.NodeID
	inner   syntax.NodeID
	run     syntax.NodeID
	runBody syntax.NodeID
}

// buildCalc builds:
//
//	package com.acme;
//	import java.util.List;
//	public class Calc {
//	    public static int compute() { return a + b; }
//	    private class Inner { protected void run() { } }
//	}
func buildCalc() calcTree {
	var c calcTree
	b := syntax.NewBuilder()
	root := b.Add(syntax.NoNode, syntax.Other, "program", "")

	pkg := b.Add(root, syntax.Package, "package_declaration", "package com.acme;")
	b.Token(pkg, syntax.Other, "package")
	c.pkgPath = b.Add(pkg, syntax.Other, "scoped_identifier", "com.acme")
	b.Token(pkg, syntax.Other, ";")

	c.imp = b.Add(root, syntax.Other, "import_declaration", "import java.util.List;")

	c.class = decl(b, root, syntax.Class, "class", "Calc", "public")
	body := b.Add(c.class, syntax.Other, "class_body", "")

	c.method = decl(b, body, syntax.Method, "int", "compute", "public", "static")
	block := b.Add(c.method, syntax.Other, "block", "")
	c.stmt = b.Add(block, syntax.Other, "return_statement", "return a + b;")
	c.expr = b.Add(c.stmt, syntax.Other, "binary_expression", "a + b")

	c.inner = decl(b, body, syntax.Class, "class", "Inner", "private")
	innerBody := b.Add(c.inner, syntax.Other, "class_body", "")
	c.run = decl(b, innerBody, syntax.Method, "void", "run", "protected")
	c.runBody = b.Add(c.run, syntax.Other, "block", "{ }")

	c.tree = b.Tree()
	return c
}

func TestAncestors(t *testing.T) {
	c := buildCalc()

	require.Equal(t, []syntax.NodeID{c.method, c.class}, Ancestors(c.tree, c.expr))
	require.Equal(t, []syntax.NodeID{c.run, c.inner, c.class}, Ancestors(c.tree, c.runBody))
	require.Equal(t, []syntax.NodeID{c.class}, Ancestors(c.tree, c.method), "start node is excluded")
	require.Empty(t, Ancestors(c.tree, c.tree.Root))
	require.Empty(t, Ancestors(c.tree, c.imp))
}

func TestResolve(t *testing.T) {
	c := buildCalc()

	calcEntry := Entry{
		KindName:   "Java Class Type Public Member",
		MemberName: "Calc",
		ReturnType: "class",
		AccessType: "public",
	}
	computeEntry := Entry{
		KindName:   "Java Static Method Public Member",
		MemberName: "compute",
		ReturnType: "int",
		AccessType: "public",
		StaticType: "static",
	}

	t.Run("method_body", func(t *testing.T) {
		chain, err := Resolve(c.tree, c.expr)
		require.NoError(t, err)
		require.Equal(t, Chain{computeEntry, calcEntry}, chain)
		require.Equal(t, 2, chain.Depth())
	})

	t.Run("same_scope_for_nodes_of_one_body", func(t *testing.T) {
		a, err := Resolve(c.tree, c.expr)
		require.NoError(t, err)
		b, err := Resolve(c.tree, c.stmt)
		require.NoError(t, err)
		require.Equal(t, a, b)
	})

	t.Run("nested_private_class", func(t *testing.T) {
		chain, err := Resolve(c.tree, c.runBody)
		require.NoError(t, err)
		require.Len(t, chain, 3)
		require.Equal(t, Entry{
			KindName:   "Java Method Protected Member",
			MemberName: "run",
			ReturnType: "void",
			AccessType: "protected",
		}, chain[0])
		require.Equal(t, Entry{
			KindName:   "Java Class Type Private Member",
			MemberName: "Inner",
			ReturnType: "class",
			AccessType: "private",
		}, chain[1])
		require.Equal(t, calcEntry, chain[2])
	})

	t.Run("package_declaration", func(t *testing.T) {
		pkg := c.tree.Parent(c.pkgPath)
		chain, err := Resolve(c.tree, pkg)
		require.NoError(t, err)
		require.Equal(t, Chain{{KindName: "Java Package", MemberName: "com.acme"}}, chain)
		require.Equal(t, 0, chain.Depth())
	})

	t.Run("inside_package_declaration", func(t *testing.T) {
		chain, err := Resolve(c.tree, c.pkgPath)
		require.NoError(t, err)
		require.Equal(t, Chain{{KindName: "Java Package", MemberName: "com.acme"}}, chain)
	})

	t.Run("top_level_outside_declarations", func(t *testing.T) {
		chain, err := Resolve(c.tree, c.imp)
		require.NoError(t, err)
		require.NotNil(t, chain)
		require.Empty(t, chain)
	})

	t.Run("root", func(t *testing.T) {
		chain, err := Resolve(c.tree, c.tree.Root)
		require.NoError(t, err)
		require.Empty(t, chain)
	})

	t.Run("invalid_node", func(t *testing.T) {
		_, err := Resolve(c.tree, syntax.NodeID(c.tree.Len()))
		require.ErrorIs(t, err, ErrInvalidNode)
	})
}

func TestResolvePackageByKeyword(t *testing.T) {
	// A front end that does not categorize package declarations is still
	// recognized by the leading keyword.
	b := syntax.NewBuilder()
	root := b.Add(syntax.NoNode, syntax.Other, "program", "")
	pkg := b.Add(root, syntax.Other, "package_declaration", "package a.b;")
	b.Token(pkg, syntax.Other, "package")
	b.Add(pkg, syntax.Other, "scoped_identifier", "a.b")
	tree := b.Tree()

	chain, err := Resolve(tree, pkg)
	require.NoError(t, err)
	require.Equal(t, Chain{{KindName: PackageKindName, MemberName: "a.b"}}, chain)
}

func TestResolveDefaultVisibility(t *testing.T) {
	b := syntax.NewBuilder()
	root := b.Add(syntax.NoNode, syntax.Other, "program", "")
	cls := decl(b, root, syntax.Class, "class", "Helper")
	body := b.Add(cls, syntax.Other, "class_body", "")
	m := decl(b, body, syntax.Method, "void", "help", "static")
	block := b.Add(m, syntax.Other, "block", "{}")
	tree := b.Tree()

	chain, err := Resolve(tree, block)
	require.NoError(t, err)
	require.Equal(t, Chain{
		{KindName: "Java Static Method Default Member", MemberName: "help", ReturnType: "void", AccessType: "static"},
		{KindName: "Java Class Type Default Member", MemberName: "Helper", ReturnType: "class"},
	}, chain)
}

func TestResolveInterfaceAndAnnotation(t *testing.T) {
	b := syntax.NewBuilder()
	root := b.Add(syntax.NoNode, syntax.Other, "program", "")
	iface := decl(b, root, syntax.Interface, "interface", "Shape", "public")
	ibody := b.Add(iface, syntax.Other, "interface_body", "")
	area := decl(b, ibody, syntax.Method, "double", "area")
	params := b.Add(area, syntax.Other, "formal_parameters", "()")

	ann := decl(b, root, syntax.Annotation, "@interface", "Marker", "public", "final")
	abody := b.Add(ann, syntax.Other, "annotation_type_body", "{}")
	tree := b.Tree()

	chain, err := Resolve(tree, params)
	require.NoError(t, err)
	require.Equal(t, Chain{
		{KindName: "Java Method Default Member", MemberName: "area", ReturnType: "double"},
		{KindName: "Java Interface Type Public", MemberName: "Shape", ReturnType: "interface", AccessType: "public"},
	}, chain)

	chain, err = Resolve(tree, abody)
	require.NoError(t, err)
	require.Equal(t, Chain{
		{KindName: "Java Final Class Type Public Member", MemberName: "Marker", ReturnType: "@interface", AccessType: "public"},
	}, chain)
}

func TestResolveShapeErrors(t *testing.T) {
	t.Run("declaration_without_member", func(t *testing.T) {
		b := syntax.NewBuilder()
		root := b.Add(syntax.NoNode, syntax.Other, "program", "")
		cls := b.Add(root, syntax.Class, "class_declaration", "")
		b.Token(cls, syntax.Other, "class")
		b.Add(cls, syntax.Other, "identifier", "Loose")
		body := b.Add(cls, syntax.Other, "class_body", "{}")
		tree := b.Tree()

		_, err := Resolve(tree, body)
		require.ErrorIs(t, err, ErrShape)

		var se *ShapeError
		require.True(t, errors.As(err, &se))
		require.Equal(t, cls, se.Node)
		require.Equal(t, syntax.Class, se.Category)
		require.Contains(t, se.Error(), "member node")
	})

	t.Run("missing_name", func(t *testing.T) {
		b := syntax.NewBuilder()
		root := b.Add(syntax.NoNode, syntax.Other, "program", "")
		member := b.Add(root, syntax.Member, "member", "")
		m := b.Add(member, syntax.Method, "method_declaration", "")
		block := b.Add(m, syntax.TypeOrVoid, "void_type", "void")
		tree := b.Tree()

		_, err := Resolve(tree, block)
		var se *ShapeError
		require.ErrorAs(t, err, &se)
		require.Equal(t, "a name child", se.Expected)
	})

	t.Run("package_without_path", func(t *testing.T) {
		b := syntax.NewBuilder()
		root := b.Add(syntax.NoNode, syntax.Other, "program", "")
		pkg := b.Add(root, syntax.Package, "package_declaration", "package")
		kw := b.Token(pkg, syntax.Other, "package")
		tree := b.Tree()

		_, err := Resolve(tree, kw)
		require.ErrorIs(t, err, ErrShape)
	})

	t.Run("entry_for_non_declaration", func(t *testing.T) {
		c := buildCalc()
		_, err := NewEntry(c.tree, c.stmt)
		require.ErrorIs(t, err, ErrShape)
	})
}

func TestMethodModifiers(t *testing.T) {
	c := buildCalc()

	tokens, err := MethodModifiers(c.tree, c.method)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"public", "static", "int"}, tokens)

	_, err = MethodModifiers(c.tree, c.tree.Root)
	require.ErrorIs(t, err, ErrShape)
}
