package backend

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/thot/engine/doc"
	"github.com/npillmayer/thot/engine/doc/xpathadapter"
)

// Numbering groups of captioned nodes.
const (
	GroupTable   = "table"
	GroupFigure  = "figure"
	GroupListing = "listing"
)

// Prep holds everything computed from a document before rendering.
type Prep struct {
	Doc     *doc.Document
	Trans   Translator
	headers map[doc.Node]string
	numbers map[doc.Node]int
	anchors map[doc.Node]string
}

// Prepare numbers headers and captioned nodes of a document. Headers are
// numbered hierarchically ("2.1.3"), tables, figures and listings carrying
// a caption or a label are counted per group in document order.
func Prepare(d *doc.Document) *Prep {
	p := &Prep{
		Doc:     d,
		Trans:   TranslatorFor(d.Env().Get("LANG")),
		headers: make(map[doc.Node]string),
		numbers: make(map[doc.Node]int),
		anchors: make(map[doc.Node]string),
	}
	var counters []int
	groups := make(map[string]int)
	doc.Walk(d, func(n doc.Node) bool {
		if h, ok := n.(*doc.Header); ok {
			level := h.HeaderLevel()
			for len(counters) <= level {
				counters = append(counters, 0)
			}
			counters[level]++
			for i := level + 1; i < len(counters); i++ {
				counters[i] = 0
			}
			p.headers[n] = joinNumbers(counters[:level+1])
		}
		if g := n.Numbering(); g != "" && g != "header" {
			if n.Caption() != nil || n.Label() != "" {
				groups[g]++
				p.numbers[n] = groups[g]
			}
		}
		if l := n.Label(); l != "" {
			p.anchors[n] = Anchor(l)
		}
		return true
	})
	tracer().Debugf("prepared %d headers, %d numbered nodes, %d anchors",
		len(p.headers), len(p.numbers), len(p.anchors))
	return p
}

func joinNumbers(ns []int) string {
	s := make([]string, len(ns))
	for i, n := range ns {
		s[i] = strconv.Itoa(n)
	}
	return strings.Join(s, ".")
}

// HeaderNumber returns the number of a header, e.g. "1.2".
func (p *Prep) HeaderNumber(h *doc.Header) string {
	return p.headers[h]
}

// Number returns the number of a node within its numbering group, or 0.
func (p *Prep) Number(n doc.Node) int {
	return p.numbers[n]
}

// CaptionPrefix returns the text preceding a caption, e.g. "Table 2: ".
// Nodes without a number get no prefix.
func (p *Prep) CaptionPrefix(n doc.Node) string {
	num := p.numbers[n]
	if num == 0 {
		return ""
	}
	return p.Trans.Caption(n.Numbering(), num)
}

var nonAnchor = regexp.MustCompile(`[^A-Za-z0-9_.:-]+`)

// Anchor turns a label into an identifier usable in all output formats.
func Anchor(label string) string {
	return nonAnchor.ReplaceAllString(label, "-")
}

// AnchorOf returns the anchor of a node. Labeled nodes use their label,
// headers get "sec-" plus their number. Other nodes have no anchor.
func (p *Prep) AnchorOf(n doc.Node) string {
	if a, ok := p.anchors[n]; ok {
		return a
	}
	if h, ok := n.(*doc.Header); ok {
		return "sec-" + p.headers[h]
	}
	return ""
}

// Resolve finds the node a label refers to and its anchor.
func (p *Prep) Resolve(label string) (doc.Node, string, bool) {
	n, ok := p.Doc.Lookup(label)
	if !ok {
		return nil, "", false
	}
	return n, p.AnchorOf(n), true
}

// --- Table of contents -----------------------------------------------------

// TOCEntry is a line of the table of contents.
type TOCEntry struct {
	Header *doc.Header
	Level  int
	Number string
	Anchor string
	Title  string
}

// TOC lists all headers of the document in document order, up to a
// maximum level (inclusive). A negative maximum means all levels.
func (p *Prep) TOC(maxLevel int) []TOCEntry {
	nodes, err := xpathadapter.Select(p.Doc, "//header")
	if err != nil {
		tracer().Errorf("toc: %v", err)
		return nil
	}
	var toc []TOCEntry
	for _, n := range nodes {
		h := n.(*doc.Header)
		if maxLevel >= 0 && h.HeaderLevel() > maxLevel {
			continue
		}
		toc = append(toc, TOCEntry{
			Header: h,
			Level:  h.HeaderLevel(),
			Number: p.headers[h],
			Anchor: p.AnchorOf(h),
			Title:  strings.TrimSpace(doc.TextOf(h.Title())),
		})
	}
	return toc
}

// TOCDepth reads the TOC variable: "" or "no" disables the table of
// contents, a number limits its depth, anything else means all levels.
func TOCDepth(d *doc.Document) (int, bool) {
	v := strings.TrimSpace(d.Env().Get("TOC"))
	switch strings.ToLower(v) {
	case "", "no", "false", "0":
		return 0, false
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n - 1, true
	}
	return -1, true
}
