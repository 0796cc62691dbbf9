package mcts

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/awalterschulze/gographviz"
)

// ToDot renders the tree of the most recent Search as a graphviz digraph,
// one table-shaped node per tree node. Returns "" before the first search.
func (t *MCTS) ToDot() string {
	if t.last == nil {
		return ""
	}
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	g.SetDir(true)

	var buf bytes.Buffer
	for i := range t.last.nodes {
		id := ID(i)
		n := t.last.Node(id)
		if err := tmpl.Execute(&buf, dotNode{
			ID:       int(id),
			Move:     fmt.Sprintf("%s", n.move),
			Visits:   n.visits,
			Expected: n.ExpectedValue(t.OutcomeIndices),
		}); err != nil {
			panic(err)
		}
		attrs := map[string]string{
			"fontname": "Monaco",
			"shape":    "none",
			"label":    buf.String(),
		}
		g.AddNode("G", fmt.Sprintf("n%d", id), attrs)
		buf.Reset()

		for _, kid := range t.last.Children(id) {
			g.AddEdge(fmt.Sprintf("n%d", id), fmt.Sprintf("n%d", kid), true, nil)
		}
	}
	return g.String()
}

type dotNode struct {
	ID       int
	Move     string
	Visits   uint32
	Expected float32
}

const tmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
<TR><TD>Node</TD><TD>{{.ID}}</TD></TR>
<TR><TD>Move</TD><TD>{{.Move}}</TD></TR>
<TR><TD>Visits</TD><TD>{{.Visits}}</TD></TR>
<TR><TD>Expected</TD><TD>{{.Expected}}</TD></TR>
</TABLE>
>
`

var tmpl = template.Must(template.New("node").Parse(tmplRaw))
