package scope

import "github.com/arjunmahishi/jscope/syntax"

// Ancestors returns the strict ancestors of id that introduce a scope,
// nearest first. The walk always continues to the root.
func Ancestors(t *syntax.Tree, id syntax.NodeID) []syntax.NodeID {
	var out []syntax.NodeID
	for cur := t.Parent(id); cur != syntax.NoNode; cur = t.Parent(cur) {
		if t.Category(cur).IsDeclaration() {
			out = append(out, cur)
		}
	}
	return out
}
