// Package solution models the decision trees written by the PC solver.
//
// A tree is decoded once, when it enters the system, into one of the Node
// types below. Nothing downstream inspects raw JSON.
package solution

import (
	"github.com/vancomm/pcview/internal/pc"
)

// Node is one of Unreachable, NoSolution, Move, Branch or Line.
type Node interface {
	node()
	Kind() string
}

// Unreachable is a state the solver never expected to reach (JSON null).
type Unreachable struct{}

// NoSolution marks a state with no perfect clear. Score is the solver's
// cutoff for the state.
type NoSolution struct {
	Score float64
}

// Move is a single forced placement leading to Hash.
type Move struct {
	Hash  pc.Hash
	Shape pc.Shape
}

// Branch is a decision point: Shape is placed to reach Hash, and the next
// piece picks one of Options, indexed by shape.
type Branch struct {
	Hash    pc.Hash
	Shape   pc.Shape
	Score   float64
	Options [pc.NumShapes]Node
}

// Step is one placement of a Line.
type Step struct {
	Hash  pc.Hash
	Shape pc.Shape
}

// Line is a fixed sequence of placements ending in a perfect clear.
type Line struct {
	Score float64
	Steps []Step
}

func (Unreachable) node() {}
func (NoSolution) node()  {}
func (Move) node()        {}
func (Branch) node()      {}
func (Line) node()        {}

func (Unreachable) Kind() string { return "unreachable" }
func (NoSolution) Kind() string  { return "no-solution" }
func (Move) Kind() string        { return "move" }
func (Branch) Kind() string      { return "branch" }
func (Line) Kind() string        { return "line" }

// Available reports whether the node is anything but Unreachable.
func Available(n Node) bool {
	_, unreachable := n.(Unreachable)
	return n != nil && !unreachable
}

// Score returns the solver score stored on the node, if it has one.
func Score(n Node) (float64, bool) {
	switch n := n.(type) {
	case NoSolution:
		return n.Score, true
	case Branch:
		return n.Score, true
	case Line:
		return n.Score, true
	}
	return 0, false
}

// DisplayScore is the score as players read it: the solver minimizes, so the
// sign is flipped. Zero is never negative.
func DisplayScore(n Node) (float64, bool) {
	score, ok := Score(n)
	if !ok || score == 0 {
		return 0, ok
	}
	return -score, true
}

// Tree is a decoded solution tree rooted at the field InitHash.
type Tree struct {
	InitHash pc.Hash
	Root     Node
}
