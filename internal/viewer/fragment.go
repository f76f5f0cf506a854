package viewer

import (
	"bytes"
	"html/template"
	"io"
)

var fragmentTemplate = template.Must(template.New("fragment").Parse(`
{{- define "options" -}}
<div class="grid">
{{- range .Options -}}
{{- if .Available -}}
<div class="option">{{.Selector}}<br>{{.Preview}}<p>{{.Score}}</p></div>
{{- else -}}
<div class="option disabled">{{.Selector}}<p>&nbsp;</p></div>
{{- end -}}
{{- end -}}
</div>
{{- end -}}

{{- define "steps" -}}
<div class="grid">{{range .Steps}}<div class="step">{{.}}</div>{{end}}</div>
{{- end -}}

<div class="node node-{{.Kind}}" data-path="{{.Path}}">
{{- if eq .Kind "unreachable" -}}
<p class="message">{{.Message}}</p>
{{- else if eq .Kind "no-solution" -}}
{{.Board}}<p class="message">{{.Message}}</p>
{{- else if eq .Kind "branch" -}}
{{.Board}}<p class="score">{{.Score}}</p><br>{{template "options" .}}
{{- else if eq .Kind "line" -}}
{{.Board}}<p class="score">{{.Score}}</p><br>{{template "steps" .}}
{{- else -}}
{{.Board}}
{{- end -}}
</div>`))

// WriteFragment writes the markup of v without any surrounding page.
func (v *View) WriteFragment(w io.Writer) error {
	return fragmentTemplate.Execute(w, v)
}

func (v *View) Fragment() (template.HTML, error) {
	var buf bytes.Buffer
	if err := v.WriteFragment(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
