/*
Package xpathadapter implements an xpath.NodeNavigator.

We use this library for XPath queries:

	github.com/antchfx/xpath

Package xpathadapter implements an adapter to enable antchfx/xpath to
access a document tree, where nodes are of type doc.Node. Element names are
the names of node kinds ("header", "par", "table", …). Words and glyphs are
text nodes. Node properties are offered as attributes, e.g.

	//header[@level=1]
	//list[@kind='ol']/item
	//*[@label='fig:arch']

For a description of the various methods of interface xpath.NodeNavigator
please refer to the documentation of antchfx/xpath. It is not replicated here.

BSD License

Copyright (c) 2017–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of Norbert Pillmayer nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package xpathadapter

import (
	"strconv"

	"github.com/antchfx/xpath"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/engine/doc"
)

// tracer traces to tracing key 'thot.xpath'.
func tracer() tracing.Trace {
	return tracing.Select("thot.xpath")
}

// step is a node on the path from the root to the current node, together
// with its index in its parent's content.
type step struct {
	node  doc.Node
	index int
}

// NodeNavigator navigates a document tree. Document nodes do not know their
// parents, so the navigator keeps the path to the current node.
type NodeNavigator struct {
	path  []step
	attr  int // attributes index
	attrs []attribute
}

// NewNavigator creates a new xpath.NodeNavigator for a document tree.
func NewNavigator(root doc.Node) *NodeNavigator {
	return &NodeNavigator{
		path: []step{{node: root, index: -1}},
		attr: -1,
	}
}

// Current returns the node the navigator is positioned on. For attributes,
// it is the element carrying the attribute.
func (nav *NodeNavigator) Current() doc.Node {
	return nav.path[len(nav.path)-1].node
}

func (nav *NodeNavigator) root() doc.Node {
	return nav.path[0].node
}

func (nav *NodeNavigator) NodeType() xpath.NodeType {
	if nav.attr != -1 {
		return xpath.AttributeNode
	}
	switch nav.Current().Kind() {
	case doc.KindDocument:
		if len(nav.path) == 1 {
			return xpath.RootNode
		}
	case doc.KindWord, doc.KindGlyph:
		return xpath.TextNode
	}
	return xpath.ElementNode
}

func (nav *NodeNavigator) LocalName() string {
	if nav.attr != -1 {
		return nav.attrs[nav.attr].key
	}
	return nav.Current().Kind().String()
}

func (*NodeNavigator) Prefix() string {
	return ""
}

func (nav *NodeNavigator) Value() string {
	if nav.attr != -1 {
		return nav.attrs[nav.attr].value
	}
	switch n := nav.Current().(type) {
	case *doc.Word:
		return n.Text
	case *doc.Glyph:
		return string(n.Code)
	case *doc.Header:
		return doc.TextOf(n.Title())
	}
	return doc.TextOf(nav.Current())
}

func (nav *NodeNavigator) Copy() xpath.NodeNavigator {
	n := *nav
	n.path = append([]step(nil), nav.path...)
	return &n
}

func (nav *NodeNavigator) MoveToRoot() {
	nav.path = nav.path[:1]
	nav.attr = -1
}

func (nav *NodeNavigator) MoveToParent() bool {
	if nav.attr != -1 {
		nav.attr = -1 // move from attributes to element
		return true
	}
	if len(nav.path) == 1 {
		return false
	}
	nav.path = nav.path[:len(nav.path)-1]
	return true
}

func (nav *NodeNavigator) MoveToNextAttribute() bool {
	if nav.attr == -1 {
		nav.attrs = attributes(nav.Current())
	}
	if nav.attr >= len(nav.attrs)-1 {
		return false
	}
	nav.attr++
	return true
}

func (nav *NodeNavigator) MoveToChild() bool {
	if nav.attr != -1 {
		return false
	}
	children := nav.Current().Content()
	if len(children) == 0 {
		return false
	}
	nav.path = append(nav.path, step{node: children[0], index: 0})
	return true
}

// siblings returns the content of the current node's parent.
func (nav *NodeNavigator) siblings() []doc.Node {
	if len(nav.path) < 2 {
		return nil
	}
	return nav.path[len(nav.path)-2].node.Content()
}

func (nav *NodeNavigator) moveToSibling(i int) bool {
	sibs := nav.siblings()
	if nav.attr != -1 || i < 0 || i >= len(sibs) {
		return false
	}
	nav.path[len(nav.path)-1] = step{node: sibs[i], index: i}
	return true
}

func (nav *NodeNavigator) MoveToFirst() bool {
	if nav.path[len(nav.path)-1].index == 0 {
		return false
	}
	return nav.moveToSibling(0)
}

func (nav *NodeNavigator) MoveToNext() bool {
	return nav.moveToSibling(nav.path[len(nav.path)-1].index + 1)
}

func (nav *NodeNavigator) MoveToPrevious() bool {
	return nav.moveToSibling(nav.path[len(nav.path)-1].index - 1)
}

func (nav *NodeNavigator) MoveTo(other xpath.NodeNavigator) bool {
	n, ok := other.(*NodeNavigator)
	if !ok || n.root() != nav.root() {
		return false
	}
	nav.path = append(nav.path[:0], n.path...)
	nav.attr = n.attr
	nav.attrs = n.attrs
	return true
}

func (nav *NodeNavigator) String() string {
	return nav.Value()
}

var _ xpath.NodeNavigator = &NodeNavigator{}

// --- Attributes ------------------------------------------------------------

type attribute struct {
	key, value string
}

type styled interface {
	Style() string
}

// attributes lists the properties of a node which are visible to queries.
func attributes(n doc.Node) []attribute {
	var attrs []attribute
	add := func(k, v string) {
		if v != "" {
			attrs = append(attrs, attribute{k, v})
		}
	}
	switch x := n.(type) {
	case *doc.Header:
		add("level", strconv.Itoa(x.HeaderLevel()))
	case *doc.List:
		add("kind", x.ListKind().String())
		add("depth", strconv.Itoa(x.Depth()))
	case *doc.Quote:
		add("depth", strconv.Itoa(x.Depth()))
	case *doc.DefinitionList:
		add("depth", strconv.Itoa(x.Depth()))
	case *doc.DefinitionItem:
		add("term", doc.TextOf(x.Term()))
	case *doc.Link:
		add("url", x.URL)
	case *doc.Image:
		add("url", x.URL)
		add("title", x.Title)
		add("align", x.Align.String())
	case *doc.Block:
		add("class", x.Class)
		add("lang", x.Lang)
	case *doc.Cell:
		add("kind", x.CellKind().String())
		add("align", x.Align().String())
		h, v := x.Span()
		add("hspan", strconv.Itoa(h))
		add("vspan", strconv.Itoa(v))
	case styled:
		add("style", x.Style())
	}
	add("label", n.Label())
	if c := n.Caption(); c != nil {
		add("caption", doc.TextOf(c))
	}
	if g := n.Numbering(); g != "" {
		add("numbering", g)
	}
	return attrs
}

// --- Queries ---------------------------------------------------------------

// Select returns the nodes below root matching an XPath expression, in
// document order. Attribute matches yield the element carrying the
// attribute.
func Select(root doc.Node, expr string) ([]doc.Node, error) {
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid xpath %q: %v", expr, err)
	}
	var nodes []doc.Node
	it := e.Select(NewNavigator(root))
	for it.MoveNext() {
		nav, ok := it.Current().(*NodeNavigator)
		if !ok {
			continue
		}
		nodes = append(nodes, nav.Current())
	}
	tracer().Debugf("xpath %s: %d nodes", expr, len(nodes))
	return nodes, nil
}

// Find returns the first node matching an XPath expression.
func Find(root doc.Node, expr string) (doc.Node, error) {
	nodes, err := Select(root, expr)
	if err != nil || len(nodes) == 0 {
		return nil, err
	}
	return nodes[0], nil
}

// Evaluate evaluates an XPath expression yielding a number, a string or a
// boolean, e.g. `count(//table)`.
func Evaluate(root doc.Node, expr string) (interface{}, error) {
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid xpath %q: %v", expr, err)
	}
	return e.Evaluate(NewNavigator(root)), nil
}
