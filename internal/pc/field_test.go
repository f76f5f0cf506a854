package pc

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Log.SetLevel(logrus.DebugLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	os.Exit(m.Run())
}

// cleared decodes a hash and clears it, the way every field read from
// solution data is prepared.
func cleared(h Hash) *Field {
	f := FieldFromHash(h)
	f.ClearLines()
	return f
}

func TestNewFieldZero(t *testing.T) {
	f := NewField(0, CellValue(J))
	for r := range Height {
		for c := range Width {
			require.Equal(t, Empty, f.At(r, c), "cell %d:%d", r, c)
		}
	}

	before := f.Clone()
	assert.Equal(t, 0, f.ClearLines())
	assert.Equal(t, 0, f.Lines())
	assert.Equal(t, before.grid, f.grid)
	assert.Equal(t, Hash(0), f.Hash())
}

func TestNewFieldFill(t *testing.T) {
	f := NewField(787200, CellValue(O))
	want := "" +
		"..........\n" +
		"..........\n" +
		"OO........\n" +
		"OO........"
	if diff := cmp.Diff(want, f.String()); diff != "" {
		t.Errorf("String() mismatch(-want +got):\n%s", diff)
	}
	assert.Equal(t, Empty, f.At(0, 0))
	assert.Equal(t, Garbage, f.At(-1, 0), "out of bounds reads as garbage")
}

func TestClearBottomRow(t *testing.T) {
	f := FieldFromHash(1<<Width - 1)
	require.Equal(t, "##########", f.String()[3*(Width+1):])

	assert.Equal(t, 1, f.ClearLines())
	assert.Equal(t, 1, f.Lines())
	for c := range Width {
		assert.Equal(t, Empty, f.At(Height-1, c))
	}
	assert.Equal(t, Hash(1<<Width-1), f.Hash())
}

func TestClearLinesCompacts(t *testing.T) {
	// Bottom row full except the right column, one garbage cell above it.
	f := cleared(525310)
	require.Equal(t, 0, f.Lines())

	f.Place(Piece{Shape: I, Rotation: 3, Row: 5, Col: 9})
	want := "" +
		".........I\n" +
		".........I\n" +
		"#........I\n" +
		"#########I"
	if diff := cmp.Diff(want, f.String()); diff != "" {
		t.Fatalf("String() after Place mismatch(-want +got):\n%s", diff)
	}

	assert.Equal(t, 1, f.ClearLines())
	want = "" +
		"..........\n" +
		".........#\n" +
		".........#\n" +
		"#........#"
	if diff := cmp.Diff(want, f.String()); diff != "" {
		t.Errorf("String() after ClearLines mismatch(-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, f.Lines())
	assert.Equal(t, Hash(1075316735), f.Hash())
}

func TestClearLinesNormalizesShapes(t *testing.T) {
	f := cleared(0)
	f.Place(Piece{Shape: T, Rotation: 2, Row: 6, Col: 1})
	assert.Equal(t, CellValue(T), f.At(7, 1))

	assert.Equal(t, 0, f.ClearLines())
	for r := range Height {
		for c := range Width {
			v := f.At(r, c)
			assert.True(t, v == Empty || v == Garbage, "cell %d:%d holds %v", r, c, v)
		}
	}
	assert.Equal(t, Hash(917760), f.Hash())
}

func TestClearLinesIdempotent(t *testing.T) {
	for _, h := range []Hash{0, 1023, 525310, 1<<20 - 1, 1098436836350, MaxHash} {
		f := FieldFromHash(h)
		f.ClearLines()
		grid, lines := f.grid, f.Lines()

		assert.Equal(t, 0, f.ClearLines(), "hash %d", h)
		assert.Equal(t, grid, f.grid, "hash %d", h)
		assert.Equal(t, lines, f.Lines(), "hash %d", h)
	}
}

func TestHashRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		hash  Hash
		lines int
	}{
		{"empty", 0, 0},
		{"one row", 1<<Width - 1, 1},
		{"two rows", 1<<(2*Width) - 1, 2},
		{"perfect clear", MaxHash, 4},
		{"O bottom left", 787200, 0},
		{"I slot", 1098436836350, 0},
		{"after I clear", 1075316735, 1},
		{"selection T", 51590197500, 0},
		{"selection Z", 257949757500, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := cleared(test.hash)
			require.Equal(t, test.lines, f.Lines())
			assert.Equal(t, test.hash, f.Hash())

			g := cleared(f.Hash())
			if diff := cmp.Diff(f.String(), g.String()); diff != "" {
				t.Errorf("decoded grid mismatch(-want +got):\n%s", diff)
			}
			assert.Equal(t, f.grid, g.grid)
			assert.Equal(t, f.Lines(), g.Lines())
		})
	}
}

func TestHashLayout(t *testing.T) {
	f := cleared(0)
	f.Place(Piece{Shape: O, Rotation: 0, Row: 7, Col: 0})
	assert.Equal(t, Hash(1<<19|1<<18|1<<9|1<<8), f.Hash())
}

func TestCanPlace(t *testing.T) {
	f := cleared(525310)
	tests := []struct {
		name  string
		piece Piece
		want  bool
	}{
		{"vertical I in the well", Piece{I, 3, 5, 9}, true},
		{"flat I on the stack", Piece{I, 0, 6, 2}, true},
		{"overlaps garbage", Piece{I, 0, 6, 1}, false},
		{"below the floor", Piece{I, 3, 6, 9}, false},
		{"past the right wall", Piece{I, 0, 5, 8}, false},
		{"past the left wall", Piece{J, 0, 5, 0}, false},
		{"above the ceiling", Piece{I, 1, 0, 4}, false},
		{"inside the margin", Piece{T, 0, 2, 4}, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			before := f.Clone()
			assert.Equal(t, test.want, f.CanPlace(test.piece))
			assert.Equal(t, before.grid, f.grid, "CanPlace must not mutate")
		})
	}
}
