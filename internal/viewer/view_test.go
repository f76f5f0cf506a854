package viewer

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/pcview/internal/pc"
	"github.com/vancomm/pcview/internal/solution"
)

func loadTree(t *testing.T) *solution.Tree {
	t.Helper()
	in, err := os.Open("testdata/tree_data.js")
	require.NoError(t, err)
	defer in.Close()

	f, err := solution.ParseFile(in)
	require.NoError(t, err)
	tree, err := f.Tree()
	require.NoError(t, err)
	return tree
}

func testLink(path solution.Path) string {
	return "/trees/1?path=" + path.String()
}

func display(t *testing.T, path string) *View {
	t.Helper()
	p, err := solution.ParsePath(path)
	require.NoError(t, err)
	view, err := New(testLink).Display(loadTree(t), p)
	require.NoError(t, err)
	return view
}

func TestDisplayBranch(t *testing.T) {
	view := display(t, "")
	assert.Equal(t, "branch", view.Kind)
	assert.Equal(t, "3", view.Score)
	assert.Contains(t, string(view.Board), "#00ffff")
	require.Len(t, view.Options, pc.NumShapes)

	type summary struct {
		Shape     pc.Shape
		Available bool
		Score     string
	}
	var got []summary
	for _, opt := range view.Options {
		got = append(got, summary{opt.Shape, opt.Available, opt.Score})
	}
	want := []summary{
		{pc.I, true, "2"},
		{pc.J, false, ""},
		{pc.L, false, ""},
		{pc.O, true, "-7"},
		{pc.S, false, ""},
		{pc.T, true, "4"},
		{pc.Z, false, ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("options mismatch(-want +got):\n%s", diff)
	}

	assert.Contains(t, string(view.Options[pc.I].Selector), `href="/trees/1?path=I"`)
	assert.NotContains(t, string(view.Options[pc.J].Selector), "href")
	assert.Empty(t, view.Options[pc.J].Preview)
}

func TestDisplayLine(t *testing.T) {
	view := display(t, "I")
	assert.Equal(t, "line", view.Kind)
	assert.Equal(t, "2", view.Score)
	require.Len(t, view.Steps, 2)
	assert.Contains(t, string(view.Steps[1]), "#ffff00")
	// The starting board is cleared, so nothing keeps its piece colour.
	assert.NotContains(t, string(view.Board), "#00ffff")
}

func TestDisplayTerminal(t *testing.T) {
	view := display(t, "J")
	assert.Equal(t, "unreachable", view.Kind)
	assert.Equal(t, "How Did We Get Here?", view.Message)
	assert.Empty(t, view.Board)

	view = display(t, "TT")
	assert.Equal(t, "no-solution", view.Kind)
	assert.Equal(t, "No solution :(", view.Message)
	assert.Equal(t, pc.FieldFromHash(58320).Render(""), view.Board)
}

func TestDisplayInvalidPath(t *testing.T) {
	_, err := New(testLink).Display(loadTree(t), solution.Path{pc.J, pc.I})
	assert.ErrorIs(t, err, solution.ErrInvalidPath)
}

func TestNodeMove(t *testing.T) {
	v := New(testLink)
	view, err := v.Node(0, solution.Move{Hash: 960, Shape: pc.I}, nil)
	require.NoError(t, err)
	assert.Equal(t, "move", view.Kind)
	assert.Equal(t, 4, strings.Count(string(view.Board), "#00ffff"))

	_, err = v.Node(0, solution.Move{Hash: 4095, Shape: pc.I}, nil)
	assert.ErrorIs(t, err, pc.ErrNoPlacement)
}

func TestPreview(t *testing.T) {
	got, err := Preview(0, solution.Unreachable{})
	require.NoError(t, err)
	assert.Equal(t, "?", string(got))

	got, err = Preview(960, solution.NoSolution{Score: 1})
	require.NoError(t, err)
	assert.Equal(t, pc.FieldFromHash(960).Render(""), got)

	got, err = Preview(960, solution.Line{Steps: []solution.Step{{Hash: 1020, Shape: pc.I}}})
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(got), "#00ffff"))
}

func TestFragment(t *testing.T) {
	frag, err := display(t, "").Fragment()
	require.NoError(t, err)
	s := string(frag)
	assert.Contains(t, s, `class="node node-branch"`)
	assert.Equal(t, pc.NumShapes, strings.Count(s, `class="option`))
	assert.Equal(t, 4, strings.Count(s, `class="option disabled"`))

	frag, err = display(t, "J").Fragment()
	require.NoError(t, err)
	assert.Contains(t, string(frag), "How Did We Get Here?")

	frag, err = display(t, "I").Fragment()
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(frag), `class="step"`))
}

func TestCrumbs(t *testing.T) {
	got := New(testLink).Crumbs(solution.Path{pc.T, pc.I})
	want := []Crumb{
		{"root", "/trees/1?path="},
		{"T", "/trees/1?path=T"},
		{"I", "/trees/1?path=TI"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Crumbs() mismatch(-want +got):\n%s", diff)
	}
}

func TestRenderPage(t *testing.T) {
	view := display(t, "")
	frag, err := view.Fragment()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = RenderPage(&buf, PageData{
		Title:    "demo",
		Fragment: frag,
		Crumbs:   New(testLink).Crumbs(nil),
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<title>demo</title>")
	assert.Contains(t, buf.String(), string(frag))
	assert.NotContains(t, buf.String(), "WebSocket")

	buf.Reset()
	err = RenderPage(&buf, PageData{Title: "demo", Fragment: frag, SocketPath: "/trees/1/connect"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "WebSocket")
}
