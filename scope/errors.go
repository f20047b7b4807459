package scope

import (
	"errors"
	"fmt"

	"github.com/arjunmahishi/jscope/syntax"
)

var (
	// ErrShape is wrapped by every ShapeError.
	ErrShape = errors.New("unexpected tree shape")

	// ErrInvalidNode is returned when a node ID does not belong to the tree.
	ErrInvalidNode = errors.New("invalid node")
)

// ShapeError reports a node whose surroundings do not have the structure
// scope resolution relies on.
type ShapeError struct {
	Node     syntax.NodeID
	Category syntax.Category
	Type     string
	Expected string
}

func newShapeError(t *syntax.Tree, id syntax.NodeID, expected string) *ShapeError {
	n := t.Node(id)
	return &ShapeError{
		Node:     id,
		Category: n.Category,
		Type:     n.Type,
		Expected: expected,
	}
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: node %d (%s %s): expected %s", ErrShape, e.Node, e.Category, e.Type, e.Expected)
}

func (e *ShapeError) Unwrap() error {
	return ErrShape
}
