package pc

import "fmt"

// Shape identifies one of the seven tetrominoes, in the solver's piece order.
type Shape uint8

const (
	I Shape = iota
	J
	L
	O
	S
	T
	Z
)

const (
	NumShapes    = 7
	NumRotations = 4
	PieceSize    = 4
)

// Shapes is an ordered array of all shapes.
var Shapes = [NumShapes]Shape{I, J, L, O, S, T, Z}

const shapeLetters = "IJLOSTZ"

func (s Shape) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
	return shapeLetters[s : s+1]
}

func (s Shape) Valid() bool {
	return s < NumShapes
}

// ParseShape returns the shape named by a letter of "IJLOSTZ".
func ParseShape(r rune) (Shape, error) {
	for i, l := range shapeLetters {
		if l == r {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidShape, r)
}

// Offset is a (row, col) displacement from a piece anchor.
type Offset struct {
	Row, Col int
}

// minoTable[shape][rotation] lists the mino offsets. Rotation 0 is the spawn
// orientation. Changing any value breaks compatibility with solver hashes.
var minoTable = [NumShapes][NumRotations][PieceSize]Offset{
	I: {
		{{0, -1}, {0, 0}, {0, 1}, {0, 2}},
		{{-1, 1}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 2}, {1, 1}, {1, 0}, {1, -1}},
		{{2, 0}, {1, 0}, {0, 0}, {-1, 0}},
	},
	J: {
		{{-1, -1}, {0, -1}, {0, 0}, {0, 1}},
		{{-1, 1}, {-1, 0}, {0, 0}, {1, 0}},
		{{1, 1}, {0, 1}, {0, 0}, {0, -1}},
		{{1, -1}, {1, 0}, {0, 0}, {-1, 0}},
	},
	L: {
		{{0, -1}, {0, 0}, {0, 1}, {-1, 1}},
		{{-1, 0}, {0, 0}, {1, 0}, {1, 1}},
		{{0, 1}, {0, 0}, {0, -1}, {1, -1}},
		{{1, 0}, {0, 0}, {-1, 0}, {-1, -1}},
	},
	O: {
		{{0, 0}, {-1, 0}, {-1, 1}, {0, 1}},
		{{0, 0}, {-1, 0}, {-1, 1}, {0, 1}},
		{{0, 0}, {-1, 0}, {-1, 1}, {0, 1}},
		{{0, 0}, {-1, 0}, {-1, 1}, {0, 1}},
	},
	S: {
		{{0, -1}, {0, 0}, {-1, 0}, {-1, 1}},
		{{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
		{{0, 1}, {0, 0}, {1, 0}, {1, -1}},
		{{1, 0}, {0, 0}, {0, -1}, {-1, -1}},
	},
	T: {
		{{0, -1}, {0, 0}, {-1, 0}, {0, 1}},
		{{-1, 0}, {0, 0}, {0, 1}, {1, 0}},
		{{0, 1}, {0, 0}, {1, 0}, {0, -1}},
		{{1, 0}, {0, 0}, {0, -1}, {-1, 0}},
	},
	Z: {
		{{-1, -1}, {-1, 0}, {0, 0}, {0, 1}},
		{{-1, 1}, {0, 1}, {0, 0}, {1, 0}},
		{{1, 1}, {1, 0}, {0, 0}, {0, -1}},
		{{1, -1}, {0, -1}, {0, 0}, {-1, 0}},
	},
}

// Offsets returns the four mino offsets of a shape in a rotation state.
func Offsets(s Shape, rotation int) [PieceSize]Offset {
	return minoTable[s][rotation]
}

// extent is the bounding box of one rotation's offsets.
type extent struct {
	minRow, maxRow, minCol, maxCol int
}

func rotationExtent(s Shape, rotation int) extent {
	offs := minoTable[s][rotation]
	e := extent{offs[0].Row, offs[0].Row, offs[0].Col, offs[0].Col}
	for _, o := range offs[1:] {
		e.minRow = min(e.minRow, o.Row)
		e.maxRow = max(e.maxRow, o.Row)
		e.minCol = min(e.minCol, o.Col)
		e.maxCol = max(e.maxCol, o.Col)
	}
	return e
}
