package viewer

import (
	"html/template"
	"io"

	"github.com/vancomm/pcview/internal/solution"
)

type Crumb struct {
	Label string
	Href  string
}

// Crumbs links every prefix of path, the root first.
func (v *Viewer) Crumbs(path solution.Path) []Crumb {
	crumbs := make([]Crumb, 0, len(path)+1)
	crumbs = append(crumbs, Crumb{Label: "root", Href: v.link(nil)})
	for i := range path {
		prefix := path[: i+1 : i+1]
		crumbs = append(crumbs, Crumb{Label: path[i].String(), Href: v.link(prefix)})
	}
	return crumbs
}

type PageData struct {
	Title    string
	Path     solution.Path
	Fragment template.HTML
	Crumbs   []Crumb
	// SocketPath enables live navigation over a websocket when set.
	SocketPath string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { background: #202020; color: #e0e0e0; font-family: sans-serif; margin: 2em; }
a { color: #80c0ff; }
.crumbs { margin-bottom: 1em; }
.field { border: 1px solid #606060; }
.field td { width: 12px; height: 12px; padding: 0; }
.field-link { display: inline-block; }
.grid { display: flex; flex-wrap: wrap; gap: 1em; }
.option, .step { text-align: center; }
.option.disabled { opacity: 0.5; }
.score { font-weight: bold; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<nav class="crumbs">
{{- range $i, $c := .Crumbs}}{{if $i}} / {{end}}<a href="{{$c.Href}}">{{$c.Label}}</a>{{end -}}
</nav>
<div id="results">{{.Fragment}}</div>
{{- if .SocketPath}}
<script>
(function () {
  const results = document.getElementById("results");
  const proto = location.protocol === "https:" ? "wss:" : "ws:";
  const socket = new WebSocket(proto + "//" + location.host + {{.SocketPath}});
  socket.onmessage = function (event) {
    const msg = JSON.parse(event.data);
    if (msg.error) {
      results.textContent = msg.error;
      return;
    }
    results.innerHTML = msg.html;
  };
  results.addEventListener("click", function (event) {
    const link = event.target.closest(".field-link");
    if (!link || socket.readyState !== WebSocket.OPEN) {
      return;
    }
    event.preventDefault();
    const path = new URL(link.href).searchParams.get("path") || "";
    socket.send(path);
    history.pushState({ path: path }, "", link.href);
  });
  window.addEventListener("popstate", function () {
    socket.send(new URL(location.href).searchParams.get("path") || "");
  });
})();
</script>
{{- end}}
</body>
</html>
`))

func RenderPage(w io.Writer, data PageData) error {
	return pageTemplate.Execute(w, data)
}
