package pc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	f := cleared(0)
	f.Place(Piece{Shape: O, Rotation: 0, Row: 7, Col: 0})
	html := string(f.Render(""))

	assert.True(t, strings.HasPrefix(html, `<table class="field" cellspacing="0">`))
	assert.Equal(t, PlayHeight, strings.Count(html, "<tr>"))
	assert.Equal(t, PlayHeight*Width, strings.Count(html, "<td"))
	assert.Equal(t, 4, strings.Count(html, "background:#ffff00"))
	assert.Equal(t, PlayHeight*Width-4, strings.Count(html, "background:#000000"))
	assert.NotContains(t, html, "<a ")
}

func TestRenderLink(t *testing.T) {
	html := string(SelectionBoard(T).Render("/trees/1?path=T"))
	assert.True(t, strings.HasPrefix(html, `<a class="field-link" href="/trees/1?path=T">`))
	assert.True(t, strings.HasSuffix(html, "</table></a>"))
	assert.Equal(t, 16, strings.Count(html, "background:#ff00ff"))
}

func TestSelectionBoards(t *testing.T) {
	for _, s := range Shapes {
		b := SelectionBoard(s)
		assert.NoError(t, b.Hash().Validate(), "%v", s)
		assert.Equal(t, 16, b.Hash().Minos(), "%v", s)
		assert.Equal(t, 0, b.Clone().ClearLines(), "%v", s)

		d := DisabledSelectionBoard(s)
		assert.Equal(t, b.Hash(), d.Hash(), "%v", s)
		for r := Margin; r < Height; r++ {
			for c := range Width {
				if b.At(r, c) != Empty {
					assert.Equal(t, CellValue(s), b.At(r, c))
					assert.Equal(t, Garbage, d.At(r, c))
				}
			}
		}
	}
}
