package solution

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/vancomm/pcview/internal/pc"
)

var ErrInvalidPath = errors.New("invalid path")

// Path selects a node by the shapes chosen at each branch from the root.
type Path []pc.Shape

// ParsePath parses letters of "IJLOSTZ". The empty string is the root.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, nil
	}
	p := make(Path, 0, len(s))
	for _, r := range s {
		shape, err := pc.ParseShape(r)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidPath, s, err)
		}
		p = append(p, shape)
	}
	return p, nil
}

func (p Path) String() string {
	return strings.Join(lo.Map(p, func(s pc.Shape, _ int) string {
		return s.String()
	}), "")
}

// Child returns a new path that extends p with s. p is not modified.
func (p Path) Child(s pc.Shape) Path {
	return append(p[:len(p):len(p)], s)
}

// Walk follows path from the root. It returns the node reached and the hash
// of the field the node starts from.
func (t *Tree) Walk(path Path) (pc.Hash, Node, error) {
	prev, node := t.InitHash, t.Root
	for i, s := range path {
		b, ok := node.(Branch)
		if !ok && node == nil {
			return 0, nil, fmt.Errorf("%w: step %d (%v) leaves an unreachable node", ErrInvalidPath, i, s)
		}
		if !ok {
			return 0, nil, fmt.Errorf("%w: step %d (%v) leaves a %s node",
				ErrInvalidPath, i, s, node.Kind())
		}
		if !s.Valid() {
			return 0, nil, fmt.Errorf("%w: step %d: %w", ErrInvalidPath, i, pc.ErrInvalidShape)
		}
		prev, node = b.Hash, b.Options[s]
	}
	if node == nil {
		node = Unreachable{}
	}
	return prev, node, nil
}
