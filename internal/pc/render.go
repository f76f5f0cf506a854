package pc

import (
	"bytes"
	"html/template"
)

var cellStyles = [...]template.CSS{
	I:       "background:#00ffff",
	J:       "background:#3040ff",
	L:       "background:#ffa500",
	O:       "background:#ffff00",
	S:       "background:#00ee00",
	T:       "background:#ff00ff",
	Z:       "background:#ff0000",
	Garbage: "background:#d3d3d3",
	Empty:   "background:#000000",
}

func (v CellValue) Style() template.CSS {
	if int(v) >= len(cellStyles) {
		return cellStyles[Garbage]
	}
	return cellStyles[v]
}

var fieldTemplate = template.Must(template.New("field").Parse(
	`{{if .Href}}<a class="field-link" href="{{.Href}}">{{end}}` +
		`<table class="field" cellspacing="0">` +
		`{{range .Rows}}<tr>{{range .}}<td style="{{.Style}}"></td>{{end}}</tr>{{end}}` +
		`</table>` +
		`{{if .Href}}</a>{{end}}`,
))

// Render draws the playable rows as an HTML table. A non-empty clickAction is
// the link target of the board.
func (f *Field) Render(clickAction string) template.HTML {
	data := struct {
		Href string
		Rows []row
	}{
		Href: clickAction,
		Rows: f.grid[Margin:],
	}
	var buf bytes.Buffer
	if err := fieldTemplate.Execute(&buf, data); err != nil {
		// The template only ranges over fixed-size arrays.
		panic(err)
	}
	return template.HTML(buf.String())
}

var selectionHashes = [NumShapes]Hash{
	I: 535296000,
	J: 206360015100,
	L: 12897743100,
	O: 128974971000,
	S: 64487670000,
	T: 51590197500,
	Z: 257949757500,
}

// SelectionBoard returns the board that depicts a shape on the piece
// selection grid, filled with the shape's colour.
func SelectionBoard(s Shape) *Field {
	return NewField(selectionHashes[s], CellValue(s))
}

// DisabledSelectionBoard is the selection board of a shape that has no
// option, drawn as garbage.
func DisabledSelectionBoard(s Shape) *Field {
	return FieldFromHash(SelectionBoard(s).Hash())
}
