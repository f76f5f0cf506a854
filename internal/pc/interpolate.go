package pc

import "github.com/sirupsen/logrus"

// Placement is a reconstructed move: the piece and the number of rows its
// placement cleared.
type Placement struct {
	Piece Piece
	Lines int
}

// searchWindow bounds the anchors Interpolate tries. Rows run from rowHi down
// to rowLo, columns from colLo up to colHi.
type searchWindow struct {
	rowLo, rowHi, colLo, colHi int
}

var window = newSearchWindow()

// newSearchWindow derives the anchor window from the mino table: an anchor
// is worth trying only if some rotation keeps every mino inside the field
// with at least one mino in the playable rows.
func newSearchWindow() searchWindow {
	w := searchWindow{rowLo: Height, rowHi: -1, colLo: Width, colHi: -1}
	for _, s := range Shapes {
		for rot := range NumRotations {
			e := rotationExtent(s, rot)
			w.rowLo = min(w.rowLo, max(Margin-e.maxRow, -e.minRow))
			w.rowHi = max(w.rowHi, Height-1-e.maxRow)
			w.colLo = min(w.colLo, -e.minCol)
			w.colHi = max(w.colHi, Width-1-e.maxCol)
		}
	}
	return w
}

// Interpolate finds the placement of shape that turns before into after.
// Both fields are expected to be cleared already. Candidates are tried from
// the lowest row up, then left to right, then by rotation, and the first
// match wins, so equivalent placements resolve the same way every time.
//
// If no candidate matches, the returned error is a [PlacementError].
func Interpolate(before, after *Field, shape Shape) (Placement, error) {
	target := after.Hash()
	start := before.Hash()
	tried := 0
	for r := window.rowHi; r >= window.rowLo; r-- {
		for c := window.colLo; c <= window.colHi; c++ {
			for rot := range NumRotations {
				p := Piece{Shape: shape, Rotation: rot, Row: r, Col: c}
				if !before.CanPlace(p) {
					continue
				}
				tried++
				scratch := FieldFromHash(start)
				scratch.ClearLines()
				scratch.Place(p)
				n := scratch.ClearLines()
				if scratch.Hash() == target {
					Log.WithFields(logrus.Fields{
						"piece": p,
						"tried": tried,
					}).Debug("placement found")
					return Placement{Piece: p, Lines: n}, nil
				}
			}
		}
	}
	Log.WithFields(logrus.Fields{
		"before": start,
		"after":  target,
		"shape":  shape,
		"tried":  tried,
	}).Debug("no placement found")
	return Placement{}, PlacementError{Before: start, After: target, Shape: shape}
}

// Apply decodes both hashes, reconstructs the move between them and returns
// the before field with the piece drawn on it (not cleared, so the piece
// keeps its shape colour).
func Apply(before, after Hash, shape Shape) (*Field, Placement, error) {
	f := FieldFromHash(before)
	f.ClearLines()
	g := FieldFromHash(after)
	g.ClearLines()
	p, err := Interpolate(f, g, shape)
	if err != nil {
		return nil, Placement{}, err
	}
	f.Place(p.Piece)
	return f, p, nil
}
