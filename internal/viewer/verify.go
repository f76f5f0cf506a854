package viewer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/pcview/internal/pc"
	"github.com/vancomm/pcview/internal/solution"
)

// Report summarizes a successful Verify run.
type Report struct {
	Nodes       int `json:"nodes"`
	Transitions int `json:"transitions"`
}

type transition struct {
	before, after pc.Hash
	shape         pc.Shape
}

// Verify reconstructs the placement behind every distinct transition of tree
// using at most workers goroutines. The first transition that cannot be
// reconstructed is returned as an error naming the path it was found at.
func Verify(ctx context.Context, tree *solution.Tree, workers int) (Report, error) {
	var report Report
	paths := make(map[transition]solution.Path)
	collect(tree.InitHash, tree.Root, nil, paths, &report)
	report.Transitions = len(paths)

	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for tr, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, _, err := pc.Apply(tr.before, tr.after, tr.shape); err != nil {
				return fmt.Errorf("at %q: %w", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return report, ctx.Err()
}

func collect(prev pc.Hash, node solution.Node, path solution.Path, out map[transition]solution.Path, report *Report) {
	if !solution.Available(node) {
		return
	}
	report.Nodes++
	add := func(tr transition) {
		if _, ok := out[tr]; !ok {
			out[tr] = path
		}
	}

	switch n := node.(type) {
	case solution.Move:
		add(transition{prev, n.Hash, n.Shape})
	case solution.Branch:
		add(transition{prev, n.Hash, n.Shape})
		for _, s := range pc.Shapes {
			collect(n.Hash, n.Options[s], path.Child(s), out, report)
		}
	case solution.Line:
		from := prev
		for _, step := range n.Steps {
			add(transition{from, step.Hash, step.Shape})
			from = step.Hash
		}
	}
}
