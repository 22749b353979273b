/*
Package docdbg dumps document trees for debugging.

ToGraphViz writes a tree in the DOT format of Graphviz, ToJSON writes a
tree as nested JSON objects.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package docdbg

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/goccy/go-json"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/thot/engine/doc"
)

// tracer traces to tracing key 'thot.docdbg'.
func tracer() tracing.Trace {
	return tracing.Select("thot.docdbg")
}

// maxNodes guards against erroneous cycles.
const maxNodes = 100000

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
	cnt      int
}

// ToGraphViz creates a graphical representation of a document tree.
// It produces a DOT file format suitable as input for Graphviz, given a Writer.
func ToGraphViz(root doc.Node, w io.Writer) error {
	header, err := template.New("docTree").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("node").Funcs(
		template.FuncMap{
			"shortstring": shortText,
			"istext":      isText,
			"label":       label,
		}).Parse(nodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("edge").Parse(edgeTmpl))
	if err = header.Execute(w, gparams); err != nil {
		return err
	}
	dict := make(map[doc.Node]string, 1024)
	if err = nodes(root, w, dict, &gparams); err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

func nodes(n doc.Node, w io.Writer, dict map[doc.Node]string, gparams *graphParamsType) error {
	gparams.cnt++
	if gparams.cnt > maxNodes {
		return fmt.Errorf("document tree exceeds %d nodes", maxNodes)
	}
	if err := node(n, w, dict, gparams); err != nil {
		return err
	}
	for i, child := range children(n) {
		tracer().Debugf("  child[%d] = %s", i, doc.Describe(child))
		if err := nodes(child, w, dict, gparams); err != nil {
			return err
		}
		e := cedge{dict[n], dict[child]}
		if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
			return err
		}
	}
	return nil
}

// children includes header titles and definition terms, which are not
// part of a node's content.
func children(n doc.Node) []doc.Node {
	var kids []doc.Node
	switch x := n.(type) {
	case *doc.Header:
		kids = append(kids, x.Title())
	case *doc.DefinitionItem:
		kids = append(kids, x.Term())
	}
	return append(kids, n.Content()...)
}

func node(n doc.Node, w io.Writer, dict map[doc.Node]string, gparams *graphParamsType) error {
	name := dict[n]
	if name == "" {
		name = fmt.Sprintf("node%05d", len(dict)+1)
		dict[n] = name
	}
	return gparams.NodeTmpl.Execute(w, &cnode{n, name})
}

// Helper structs
type cnode struct {
	N    doc.Node
	Name string
}

type cedge struct {
	N1, N2 string
}

func shortText(c *cnode) string {
	var txt string
	switch x := c.N.(type) {
	case *doc.Word:
		txt = x.Text
	case *doc.Glyph:
		txt = string(x.Code)
	}
	if r := []rune(txt); len(r) > 10 {
		txt = string(r[:10]) + "…"
	}
	txt = strings.Replace(txt, `"`, `\"`, -1)
	txt = strings.Replace(txt, "\t", `\\t`, -1)
	txt = strings.Replace(txt, " ", "␣", -1)
	return "\"" + txt + "\""
}

func isText(n doc.Node) bool {
	switch n.(type) {
	case *doc.Word, *doc.Glyph:
		return true
	}
	return false
}

func label(n doc.Node) string {
	s := doc.Describe(n)
	if l := n.Label(); l != "" {
		s += " @" + l
	}
	return fmt.Sprintf("%q", s)
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=12] ;
   node [fontname = "{{ .Fontname }}" fontsize=12] ;
   edge [fontname = "{{ .Fontname }}" fontsize=12] ;
`
const nodeTmpl = `{{ if istext .N }}
{{ .Name }}	[ label={{ shortstring . }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ label .N }} shape=box style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const edgeTmpl = `{{ .N1 }} -> {{ .N2 }} [weight=1] ;
`

// --- JSON ------------------------------------------------------------------

// jsonNode is the serialized form of a node.
type jsonNode struct {
	Kind     string      `json:"kind"`
	Text     string      `json:"text,omitempty"`
	Detail   string      `json:"detail,omitempty"`
	Label    string      `json:"label,omitempty"`
	Caption  string      `json:"caption,omitempty"`
	Pos      string      `json:"pos,omitempty"`
	Lines    []string    `json:"lines,omitempty"`
	Title    *jsonNode   `json:"title,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

func toJSONNode(n doc.Node) *jsonNode {
	jn := &jsonNode{Kind: n.Kind().String(), Label: n.Label()}
	if d := doc.Describe(n); d != jn.Kind {
		jn.Detail = d
	}
	switch x := n.(type) {
	case *doc.Word:
		jn.Text, jn.Detail = x.Text, ""
	case *doc.Glyph:
		jn.Text = string(x.Code)
	case *doc.Block:
		jn.Lines = x.Lines()
	case *doc.Header:
		jn.Title = toJSONNode(x.Title())
	case *doc.DefinitionItem:
		jn.Title = toJSONNode(x.Term())
	}
	if c := n.Caption(); c != nil {
		jn.Caption = doc.TextOf(c)
	}
	if p := n.Pos(); p.File != "" {
		jn.Pos = p.String()
	}
	for _, ch := range n.Content() {
		jn.Children = append(jn.Children, toJSONNode(ch))
	}
	return jn
}

// ToJSON writes a document tree as indented JSON.
func ToJSON(root doc.Node, w io.Writer) error {
	b, err := json.MarshalIndent(toJSONNode(root), "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
