package scope

import (
	"strings"

	"github.com/arjunmahishi/jscope/syntax"
)

// modifierList returns the Member node that holds the modifier list of
// declaration id.
func modifierList(t *syntax.Tree, id syntax.NodeID) (syntax.NodeID, error) {
	p := t.Parent(id)
	if p == syntax.NoNode || t.Category(p) != syntax.Member {
		return syntax.NoNode, newShapeError(t, id, "declaration inside a member node")
	}
	return p, nil
}

// MethodModifiers collects the modifier tokens of method id together with
// its return type token.
func MethodModifiers(t *syntax.Tree, id syntax.NodeID) ([]string, error) {
	list, err := modifierList(t, id)
	if err != nil {
		return nil, err
	}

	var tokens []string
	for _, c := range t.Children(list) {
		if t.Category(c) == syntax.Modifier {
			tokens = append(tokens, t.Text(c))
		}
	}
	for _, c := range t.Children(id) {
		if t.Category(c) == syntax.TypeOrVoid {
			tokens = append(tokens, t.Text(c))
		}
	}
	return tokens, nil
}

// typeModifiers returns the tokens written before type declaration id:
// the text of every sibling that precedes it in its member node.
func typeModifiers(t *syntax.Tree, id syntax.NodeID) ([]string, error) {
	list, err := modifierList(t, id)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	for _, c := range t.Children(list) {
		if c == id {
			break
		}
		sb.WriteString(t.Text(c))
		sb.WriteByte(' ')
	}
	return strings.Fields(sb.String()), nil
}

// accessAndStatic reads the access and static fields of a modifier list by
// position: access is the text of the first child when it is a modifier
// token, and static is set only when the second child is the static token.
// Whatever token comes first is reported as the access, so "static void m()"
// has access "static" and no static field.
func accessAndStatic(t *syntax.Tree, list syntax.NodeID) (access, static string) {
	if first, ok := t.Child(list, 0); ok && t.Category(first) == syntax.Modifier {
		access = t.Text(first)
	}
	if second, ok := t.Child(list, 1); ok && t.Category(second) == syntax.Modifier && t.Text(second) == "static" {
		static = "static"
	}
	return access, static
}
