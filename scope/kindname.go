package scope

import (
	"strings"

	"github.com/arjunmahishi/jscope/syntax"
)

// Kind is the category word used in a kind name.
type Kind uint8

// Kinds of declarations. Annotation types are described as KindClass.
const (
	KindClass Kind = iota
	KindMethod
	KindInterface
)

func (k Kind) String() string {
	switch k {
	case KindMethod:
		return "Method"
	case KindInterface:
		return "Interface"
	default:
		return "Class"
	}
}

// kindOf maps a declaration category to its kind. Annotation types are
// described as classes.
func kindOf(c syntax.Category) (Kind, bool) {
	switch c {
	case syntax.Class, syntax.Annotation:
		return KindClass, true
	case syntax.Interface:
		return KindInterface, true
	case syntax.Method:
		return KindMethod, true
	}
	return 0, false
}

// KindName builds the descriptor for a declaration from its modifier tokens,
// e.g. "Java Static Method Public Member" or "Java Abstract Class Type Default Member".
//
// Only membership of a token matters. Conflicting tokens resolve by fixed
// precedence: abstract over final, then private over public over protected.
// "Generic" is emitted only for a literal generic token, which no extractor
// produces today.
func KindName(tokens []string, kind Kind) string {
	has := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		has[tok] = true
	}

	parts := make([]string, 0, 8)
	parts = append(parts, "Java")
	if has["static"] {
		parts = append(parts, "Static")
	}
	switch {
	case has["abstract"]:
		parts = append(parts, "Abstract")
	case has["final"]:
		parts = append(parts, "Final")
	}
	if has["generic"] {
		parts = append(parts, "Generic")
	}

	parts = append(parts, kind.String())
	if kind != KindMethod {
		parts = append(parts, "Type")
	}

	switch {
	case has["private"]:
		parts = append(parts, "Private")
	case has["public"]:
		parts = append(parts, "Public")
	case has["protected"]:
		parts = append(parts, "Protected")
	default:
		parts = append(parts, "Default")
	}

	if kind != KindInterface {
		parts = append(parts, "Member")
	}
	return strings.Join(parts, " ")
}
