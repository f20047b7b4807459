package scope

import "github.com/arjunmahishi/jscope/syntax"

// Entry describes one enclosing declaration.
type Entry struct {
	KindName   string `json:"kind_name"`
	MemberName string `json:"member_name"`
	ReturnType string `json:"return_type"`
	AccessType string `json:"access_type"`
	StaticType string `json:"static_type"`
}

// PackageKindName is the kind name of package entries.
const PackageKindName = "Java Package"

// NewEntry builds the entry for declaration id.
func NewEntry(t *syntax.Tree, id syntax.NodeID) (Entry, error) {
	switch c := t.Category(id); c {
	case syntax.Class, syntax.Interface, syntax.Annotation:
		return typeEntry(t, id, c)
	case syntax.Method:
		return methodEntry(t, id)
	case syntax.Package:
		return packageEntry(t, id)
	default:
		return Entry{}, newShapeError(t, id, "a declaration")
	}
}

func typeEntry(t *syntax.Tree, id syntax.NodeID, c syntax.Category) (Entry, error) {
	tokens, err := typeModifiers(t, id)
	if err != nil {
		return Entry{}, err
	}
	kind, _ := kindOf(c)
	return declEntry(t, id, KindName(tokens, kind))
}

func methodEntry(t *syntax.Tree, id syntax.NodeID) (Entry, error) {
	tokens, err := MethodModifiers(t, id)
	if err != nil {
		return Entry{}, err
	}
	return declEntry(t, id, KindName(tokens, KindMethod))
}

// declEntry fills in the parts shared by every declaration: the head
// (keyword or return type) is child 0 and the name is child 1.
func declEntry(t *syntax.Tree, id syntax.NodeID, kindName string) (Entry, error) {
	head, ok := t.Child(id, 0)
	if !ok {
		return Entry{}, newShapeError(t, id, "a head child")
	}
	name, ok := t.Child(id, 1)
	if !ok {
		return Entry{}, newShapeError(t, id, "a name child")
	}

	list, err := modifierList(t, id)
	if err != nil {
		return Entry{}, err
	}
	access, static := accessAndStatic(t, list)

	return Entry{
		KindName:   kindName,
		MemberName: t.Text(name),
		ReturnType: t.Text(head),
		AccessType: access,
		StaticType: static,
	}, nil
}

func packageEntry(t *syntax.Tree, id syntax.NodeID) (Entry, error) {
	path, ok := t.Child(id, 1)
	if !ok {
		return Entry{}, newShapeError(t, id, "a package path child")
	}
	return Entry{
		KindName:   PackageKindName,
		MemberName: t.Text(path),
	}, nil
}
