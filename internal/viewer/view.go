// Package viewer turns solution tree nodes into HTML boards.
package viewer

import (
	"fmt"
	"html/template"
	"strconv"

	"github.com/vancomm/pcview/internal/pc"
	"github.com/vancomm/pcview/internal/solution"
)

// LinkFunc builds the click target that displays the node at path.
type LinkFunc func(path solution.Path) string

type Viewer struct {
	link LinkFunc
}

func New(link LinkFunc) *Viewer {
	return &Viewer{link: link}
}

// Option is one cell of a branch's piece selection grid.
type Option struct {
	Shape     pc.Shape
	Available bool
	Selector  template.HTML
	Preview   template.HTML
	Score     string
}

// View is everything shown for one node.
type View struct {
	Path    solution.Path
	Kind    string
	Board   template.HTML
	Message string
	Score   string
	Options []Option
	Steps   []template.HTML
}

const (
	unreachableMessage = "How Did We Get Here?"
	noSolutionMessage  = "No solution :("
)

// Display renders the node of tree selected by path.
func (v *Viewer) Display(tree *solution.Tree, path solution.Path) (*View, error) {
	prev, node, err := tree.Walk(path)
	if err != nil {
		return nil, err
	}
	return v.Node(prev, node, path)
}

// Node renders node, reached at path, whose field before its first placement
// is prev.
func (v *Viewer) Node(prev pc.Hash, node solution.Node, path solution.Path) (*View, error) {
	if node == nil {
		node = solution.Unreachable{}
	}
	view := &View{Path: path, Kind: node.Kind()}

	switch n := node.(type) {
	case solution.Unreachable:
		view.Message = unreachableMessage

	case solution.NoSolution:
		view.Board = pc.FieldFromHash(prev).Render("")
		view.Message = noSolutionMessage

	case solution.Move:
		f, _, err := pc.Apply(prev, n.Hash, n.Shape)
		if err != nil {
			return nil, fmt.Errorf("move at %q: %w", path, err)
		}
		view.Board = f.Render("")

	case solution.Branch:
		f, _, err := pc.Apply(prev, n.Hash, n.Shape)
		if err != nil {
			return nil, fmt.Errorf("branch at %q: %w", path, err)
		}
		view.Board = f.Render("")
		view.Score = formatScore(n)

		view.Options = make([]Option, 0, pc.NumShapes)
		for _, s := range pc.Shapes {
			opt, err := v.option(n, s, path)
			if err != nil {
				return nil, err
			}
			view.Options = append(view.Options, opt)
		}

	case solution.Line:
		f := pc.FieldFromHash(prev)
		f.ClearLines()
		view.Board = f.Render("")
		view.Score = formatScore(n)

		view.Steps = make([]template.HTML, 0, len(n.Steps))
		from := prev
		for i, step := range n.Steps {
			g, _, err := pc.Apply(from, step.Hash, step.Shape)
			if err != nil {
				return nil, fmt.Errorf("line at %q, step %d: %w", path, i, err)
			}
			view.Steps = append(view.Steps, g.Render(""))
			from = step.Hash
		}

	default:
		return nil, fmt.Errorf("unknown node type %T", node)
	}

	return view, nil
}

func (v *Viewer) option(b solution.Branch, s pc.Shape, path solution.Path) (Option, error) {
	node := b.Options[s]
	if !solution.Available(node) {
		return Option{
			Shape:    s,
			Selector: pc.DisabledSelectionBoard(s).Render(""),
		}, nil
	}

	child := path.Child(s)
	preview, err := Preview(b.Hash, node)
	if err != nil {
		return Option{}, fmt.Errorf("preview at %q: %w", child, err)
	}
	opt := Option{
		Shape:     s,
		Available: true,
		Selector:  pc.SelectionBoard(s).Render(v.link(child)),
		Preview:   preview,
	}
	opt.Score = formatScore(node)
	return opt, nil
}

// Preview draws the first placement of node from the field prev. A node
// without a placement shows prev itself.
func Preview(prev pc.Hash, node solution.Node) (template.HTML, error) {
	var (
		hash  pc.Hash
		shape pc.Shape
	)
	switch n := node.(type) {
	case solution.NoSolution:
		return pc.FieldFromHash(prev).Render(""), nil
	case solution.Move:
		hash, shape = n.Hash, n.Shape
	case solution.Branch:
		hash, shape = n.Hash, n.Shape
	case solution.Line:
		if len(n.Steps) == 0 {
			return "?", nil
		}
		hash, shape = n.Steps[0].Hash, n.Steps[0].Shape
	default:
		return "?", nil
	}

	f, _, err := pc.Apply(prev, hash, shape)
	if err != nil {
		return "", err
	}
	return f.Render(""), nil
}

func formatScore(n solution.Node) string {
	score, ok := solution.DisplayScore(n)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(score, 'f', -1, 64)
}
