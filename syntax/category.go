package syntax

import "strconv"

// Category identifies the grammatical role of a node as far as scope
// resolution is concerned. The set is closed: front ends map every node of
// their own grammar onto one of these values.
type Category uint8

// Categories. Other covers every node the resolver does not look at.
const (
	Other Category = iota
	Package
	Class
	Interface
	Annotation
	Method
	Modifier
	TypeOrVoid
	// Member holds a declaration's modifier list followed by the declaration.
	Member
)

var categoryNames = [...]string{
	Other:      "other",
	Package:    "package",
	Class:      "class",
	Interface:  "interface",
	Annotation: "annotation",
	Method:     "method",
	Modifier:   "modifier",
	TypeOrVoid: "type_or_void",
	Member:     "member",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "category(" + strconv.Itoa(int(c)) + ")"
}

// IsDeclaration reports whether nodes of this category introduce a scope
// that can enclose other nodes.
func (c Category) IsDeclaration() bool {
	switch c {
	case Class, Interface, Annotation, Method:
		return true
	}
	return false
}

// ParseCategory maps a category name back to its value.
func ParseCategory(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return Other, false
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
