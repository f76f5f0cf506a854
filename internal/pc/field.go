package pc

import "strings"

const (
	Width      = 10
	PlayHeight = 4
	// Margin is the number of rows above the playable area where pieces may
	// spawn and rotate.
	Margin = PieceSize
	Height = Margin + PlayHeight
)

// CellValue is the content of a field cell. Values below Garbage are shape
// identifiers of a just-placed piece.
type CellValue uint8

const (
	Garbage CellValue = NumShapes
	Empty   CellValue = NumShapes + 1
)

func (v CellValue) String() string {
	switch {
	case v == Empty:
		return "."
	case v == Garbage:
		return "#"
	case v < Garbage:
		return Shape(v).String()
	default:
		return "?"
	}
}

type row [Width]CellValue

var emptyRow = func() (r row) {
	for c := range r {
		r[c] = Empty
	}
	return
}()

// Field is a Width x Height grid plus the number of rows cleared since it was
// decoded. The zero value is not usable; use NewField.
type Field struct {
	grid  [Height]row
	lines int
}

// NewField decodes a hash. Every set bit becomes fill, starting from the
// bottom-right cell and moving left, then up. Cells past the last set bit are
// Empty.
func NewField(h Hash, fill CellValue) *Field {
	f := &Field{}
	for r := Height - 1; r >= 0; r-- {
		for c := Width - 1; c >= 0; c-- {
			if h&1 != 0 {
				f.grid[r][c] = fill
			} else {
				f.grid[r][c] = Empty
			}
			h >>= 1
		}
	}
	return f
}

// FieldFromHash decodes a hash with Garbage as the fill value.
func FieldFromHash(h Hash) *Field {
	return NewField(h, Garbage)
}

// Lines returns the number of rows cleared since the field was decoded.
func (f *Field) Lines() int {
	return f.lines
}

// At returns the value of a cell. Out of bounds cells read as Garbage.
func (f *Field) At(row, col int) CellValue {
	if !inBounds(row, col) {
		return Garbage
	}
	return f.grid[row][col]
}

func (f *Field) Clone() *Field {
	c := *f
	return &c
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Height && col >= 0 && col < Width
}

// CanPlace reports whether every mino of p is inside the field and on an
// empty cell.
func (f *Field) CanPlace(p Piece) bool {
	for _, m := range p.Minos() {
		if !inBounds(m.Row, m.Col) || f.grid[m.Row][m.Col] != Empty {
			return false
		}
	}
	return true
}

// Place writes the piece shape into its cells. The caller must check
// CanPlace first.
func (f *Field) Place(p Piece) {
	for _, m := range p.Minos() {
		f.grid[m.Row][m.Col] = CellValue(p.Shape)
	}
}

func (f *Field) rowFull(r int) bool {
	for _, v := range f.grid[r] {
		if v == Empty {
			return false
		}
	}
	return true
}

// ClearLines removes full playable rows, drops the rows above them and turns
// every remaining occupied cell into Garbage. It returns the number of rows
// cleared by this call.
func (f *Field) ClearLines() int {
	cleared := 0
	for r := Height - 1; r >= 0; r-- {
		if r >= Margin && f.rowFull(r) {
			cleared++
			continue
		}
		if cleared > 0 {
			f.grid[r+cleared] = f.grid[r]
		}
	}
	for r := 0; r < cleared; r++ {
		f.grid[r] = emptyRow
	}

	for r := range f.grid {
		for c, v := range f.grid[r] {
			if v != Empty {
				f.grid[r][c] = Garbage
			}
		}
	}
	f.lines += cleared
	return cleared
}

// Hash encodes the rows below the margin that have not been cleared, then
// appends one full row of set bits per cleared line.
func (f *Field) Hash() Hash {
	var h Hash
	for r := Margin + f.lines; r < Height; r++ {
		for _, v := range f.grid[r] {
			h <<= 1
			if v != Empty {
				h |= 1
			}
		}
	}
	shift := uint(Width * f.lines)
	return h<<shift + (1<<shift - 1)
}

// String draws the playable rows, one line per row.
func (f *Field) String() string {
	var b strings.Builder
	for r := Margin; r < Height; r++ {
		for _, v := range f.grid[r] {
			b.WriteString(v.String())
		}
		if r < Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
