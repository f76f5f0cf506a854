package pc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeString(t *testing.T) {
	got := ""
	for _, s := range Shapes {
		got += s.String()
	}
	assert.Equal(t, "IJLOSTZ", got)
	assert.Equal(t, "Shape(9)", Shape(9).String())
}

func TestParseShape(t *testing.T) {
	for _, s := range Shapes {
		parsed, err := ParseShape(rune(s.String()[0]))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := ParseShape('X')
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestOffsetsAreConnected(t *testing.T) {
	for _, s := range Shapes {
		for rot := range NumRotations {
			offs := Offsets(s, rot)
			seen := map[Offset]bool{}
			for _, o := range offs {
				seen[o] = true
			}
			require.Len(t, seen, PieceSize, "%v rotation %d repeats a mino", s, rot)

			for _, o := range offs {
				adjacent := false
				for _, d := range []Offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
					if seen[Offset{o.Row + d.Row, o.Col + d.Col}] {
						adjacent = true
					}
				}
				assert.True(t, adjacent, "%v rotation %d: %v is detached", s, rot, o)
			}
		}
	}
}

func TestPieceMinos(t *testing.T) {
	p := Piece{Shape: J, Rotation: 0, Row: 6, Col: 4}
	assert.Equal(t, [PieceSize]Cell{{5, 3}, {6, 3}, {6, 4}, {6, 5}}, p.Minos())
	assert.Equal(t, "J@(6,4)r0", p.String())
}
