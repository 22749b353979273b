package lexicon

import (
	"regexp"

	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/core/parameters"
	"github.com/npillmayer/thot/engine/assembly"
	"github.com/npillmayer/thot/engine/doc"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Name is the name the module is registered under.
const Name = "lexicon"

// LabelPrefix prefixes a term to form the label of its definition.
const LabelPrefix = "lex:"

func init() {
	assembly.Register(&assembly.Dialect{
		Name: Name,
		Kind: assembly.Extension,
		Lines: []assembly.LineRule{
			{Name: "term", Pattern: regexp.MustCompile(`^@term\s+(?P<term>\S+)\s+(?P<def>.*?)\s*$`), Action: defineTerm},
			{Name: "lexicon", Pattern: regexp.MustCompile(`^@lexicon(?:\s+(?P<garbage>.*?))?\s*$`), Action: placeLexicon},
		},
		Words: []assembly.WordRule{
			{Name: "sharp", Pattern: `##`, Action: sharp},
			{Name: "pterm", Pattern: `#\((?P<term>[^)\s]+)\)`, Action: reference},
			{Name: "term", Pattern: `#(?P<term>[^#\s]+)`, Action: reference},
		},
		Init: func(m *assembly.Manager) error {
			m.SetValue(glossaryKey{}, newGlossary())
			return nil
		},
	})
}

type glossaryKey struct{}

// Glossary collects the terms defined in a document.
type Glossary struct {
	terms  map[string]*doc.DefinitionItem
	placed bool
}

func newGlossary() *Glossary {
	return &Glossary{terms: make(map[string]*doc.DefinitionItem)}
}

// GlossaryOf returns the terms collected by m so far. It returns nil if the
// module is not loaded.
func GlossaryOf(m *assembly.Manager) *Glossary {
	g, _ := m.Value(glossaryKey{}).(*Glossary)
	return g
}

// Definition returns the definition of a term.
func (g *Glossary) Definition(term string) (*doc.DefinitionItem, bool) {
	di, ok := g.terms[term]
	return di, ok
}

// Terms returns the defined terms, sorted by the collation of a language.
func (g *Glossary) Terms(lang language.Tag) []string {
	terms := make([]string, 0, len(g.terms))
	for t := range g.terms {
		terms = append(terms, t)
	}
	collate.New(lang).SortStrings(terms)
	return terms
}

func defineTerm(m *assembly.Manager, match assembly.Match) error {
	g := GlossaryOf(m)
	term := match.Named("term")
	if _, dup := g.terms[term]; dup {
		m.Warnf(core.EINVALID, "term %q already defined", term)
		return nil
	}
	def, err := m.ParseInline(match.Named("def"))
	if err != nil {
		return err
	}
	title := doc.NewPar()
	title.Add(doc.NewWord(term))
	di := doc.NewDefinition(1, title, def)
	di.SetPos(m.Pos())
	if err := m.Document().BindLabel(LabelPrefix+term, di); err != nil {
		m.Warn(err)
	}
	g.terms[term] = di
	tracer().Debugf("term %q defined", term)
	return nil
}

func placeLexicon(m *assembly.Manager, match assembly.Match) error {
	if garbage := match.Named("garbage"); garbage != "" {
		m.Warnf(core.EINVALID, "garbage after @lexicon: %q", garbage)
	}
	g := GlossaryOf(m)
	if g.placed {
		m.Warnf(core.EINVALID, "lexicon placed twice")
		return nil
	}
	g.placed = true
	return m.Send(doc.BlockEvent(&Lexicon{
		DefinitionList: doc.NewDefinitionList(1),
		glossary:       g,
		document:       m.Document(),
	}))
}

func reference(m *assembly.Manager, match assembly.Match) error {
	term := match.Named("term")
	if _, ok := GlossaryOf(m).Definition(term); !ok {
		m.Warnf(core.EUNKNOWN, "unknown term %q", term)
		return m.Send(doc.WordEvent(term))
	}
	for _, ev := range []doc.Event{
		doc.LinkEvent("#" + LabelPrefix + term), doc.WordEvent(term), doc.CloseLinkEvent(),
	} {
		if err := m.Send(ev); err != nil {
			return err
		}
	}
	return nil
}

func sharp(m *assembly.Manager, match assembly.Match) error {
	return m.Send(doc.WordEvent("#"))
}

// --- Lexicon node ----------------------------------------------------------

// Lexicon is the place of the glossary in the document. It is a definition
// list, filled with the definitions of all terms of the document when the
// document is cleaned up.
type Lexicon struct {
	*doc.DefinitionList
	glossary *Glossary
	document *doc.Document
	filled   bool
}

// Clean fills in the definitions, then cleans the list.
func (lx *Lexicon) Clean() {
	if !lx.filled {
		lx.filled = true
		lang, err := language.Parse(lx.document.Env().Get(parameters.LANG))
		if err != nil {
			lang = language.Und
		}
		for _, t := range lx.glossary.Terms(lang) {
			lx.Add(lx.glossary.terms[t])
		}
	}
	lx.DefinitionList.Clean()
}
