package viewer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/pcview/internal/pc"
	"github.com/vancomm/pcview/internal/solution"
)

func TestVerify(t *testing.T) {
	tree := loadTree(t)
	for _, workers := range []int{0, 1, 4} {
		report, err := Verify(context.Background(), tree, workers)
		require.NoError(t, err)
		assert.Equal(t, Report{Nodes: 5, Transitions: 4}, report)
	}
}

func TestVerifyBrokenTransition(t *testing.T) {
	tree := &solution.Tree{
		InitHash: 0,
		Root: solution.Branch{
			Hash:  960,
			Shape: pc.I,
			Options: [pc.NumShapes]solution.Node{
				pc.O: solution.Move{Hash: 4095, Shape: pc.O},
			},
		},
	}
	_, err := Verify(context.Background(), tree, 2)
	require.ErrorIs(t, err, pc.ErrNoPlacement)
	assert.Contains(t, err.Error(), `at "O"`)
}

func TestVerifyCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Verify(ctx, loadTree(t), 2)
	assert.ErrorIs(t, err, context.Canceled)
}
