package pc

import "fmt"

// Cell is a (row, col) position on a field.
type Cell struct {
	Row, Col int
}

// Piece is a shape in a rotation state anchored at a field position.
type Piece struct {
	Shape    Shape
	Rotation int
	Row, Col int
}

// Minos returns the four cells the piece occupies.
func (p Piece) Minos() [PieceSize]Cell {
	var minos [PieceSize]Cell
	for i, o := range Offsets(p.Shape, p.Rotation) {
		minos[i] = Cell{p.Row + o.Row, p.Col + o.Col}
	}
	return minos
}

func (p Piece) String() string {
	return fmt.Sprintf("%v@(%d,%d)r%d", p.Shape, p.Row, p.Col, p.Rotation)
}
