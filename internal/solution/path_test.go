package solution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/pcview/internal/pc"
)

func TestParsePath(t *testing.T) {
	p, err := ParsePath("TIZ")
	require.NoError(t, err)
	assert.Equal(t, Path{pc.T, pc.I, pc.Z}, p)
	assert.Equal(t, "TIZ", p.String())

	p, err = ParsePath("")
	require.NoError(t, err)
	assert.Empty(t, p)
	assert.Equal(t, "", p.String())

	_, err = ParsePath("TX")
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.ErrorIs(t, err, pc.ErrInvalidShape)
}

func TestPathChild(t *testing.T) {
	base := make(Path, 1, 4)
	base[0] = pc.T
	a := base.Child(pc.I)
	b := base.Child(pc.O)
	assert.Equal(t, "TI", a.String())
	assert.Equal(t, "TO", b.String())
	assert.Equal(t, "T", base.String())
}

func TestWalk(t *testing.T) {
	tree := loadTestTree(t)

	tests := []struct {
		path     string
		wantPrev pc.Hash
		wantKind string
	}{
		{"", 0, "branch"},
		{"I", 960, "line"},
		{"O", 960, "no-solution"},
		{"J", 960, "unreachable"},
		{"T", 960, "branch"},
		{"TT", 58320, "no-solution"},
		{"TZ", 58320, "unreachable"},
	}
	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			path, err := ParsePath(test.path)
			require.NoError(t, err)
			prev, node, err := tree.Walk(path)
			require.NoError(t, err)
			assert.Equal(t, test.wantPrev, prev)
			assert.Equal(t, test.wantKind, node.Kind())
		})
	}
}

func TestWalkInvalid(t *testing.T) {
	tree := loadTestTree(t)
	for _, path := range []string{"II", "OI", "JI", "TTT"} {
		p, err := ParsePath(path)
		require.NoError(t, err)
		_, _, err = tree.Walk(p)
		assert.ErrorIs(t, err, ErrInvalidPath, path)
	}

	_, _, err := tree.Walk(Path{pc.Shape(9)})
	assert.ErrorIs(t, err, pc.ErrInvalidShape)
}
