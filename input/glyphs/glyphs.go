package glyphs

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/engine/assembly"
	"github.com/npillmayer/thot/engine/doc"
)

// Name is the name the module is registered under.
const Name = "unicode"

func init() {
	assembly.Register(&assembly.Dialect{
		Name: Name,
		Kind: assembly.Extension,
		Lines: []assembly.LineRule{
			{Name: "unicode", Pattern: regexp.MustCompile(`^\s*<unicode>\s*$`), Action: begin},
		},
	})
}

func begin(m *assembly.Manager, match assembly.Match) error {
	m.PushParser(&Parser{})
	return nil
}

// Escape is a piece of text standing for a character or a string.
type Escape struct {
	Text string // the escape as written in running text
	Code rune   // character replacing Text, or 0
	Word string // string replacing Text if Code is 0
}

func (e Escape) action() assembly.Action {
	return func(m *assembly.Manager, match assembly.Match) error {
		if e.Code != 0 {
			return m.Send(doc.InlineEvent(doc.NewGlyph(e.Code)))
		}
		return m.Send(doc.WordEvent(e.Word))
	}
}

var definition = regexp.MustCompile(`^\s*(?:(?P<end></unicode>)|` +
	`0x(?P<hex>[0-9a-fA-F]+)\s*:\s*(?P<hexval>.+?)|` +
	`(?P<dec>[0-9]+)\s*:\s*(?P<decval>.+?)|` +
	`(?P<chr>\S+?)\s*:\s*(?P<chrval>.+?))\s*$`)

// Parser collects the escape definitions of a <unicode> block. At the end
// of the block the escapes become word rules of the document.
type Parser struct {
	Escapes []Escape
}

// ParseLine implements assembly.LineParser.
func (p *Parser) ParseLine(m *assembly.Manager, line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	match := definition.FindStringSubmatch(line)
	if match == nil {
		m.Warnf(core.EINVALID, "unsupported escape definition %q", line)
		return nil
	}
	group := func(name string) string {
		return match[definition.SubexpIndex(name)]
	}
	switch {
	case group("end") != "":
		m.PopParser()
		return m.AddWords(p.rules()...)
	case group("hex") != "":
		p.addCode(m, group("hex"), 16, group("hexval"))
	case group("dec") != "":
		p.addCode(m, group("dec"), 10, group("decval"))
	default:
		p.Escapes = append(p.Escapes, Escape{Text: group("chrval"), Word: group("chr")})
	}
	return nil
}

func (p *Parser) addCode(m *assembly.Manager, digits string, base int, text string) {
	code, err := strconv.ParseInt(digits, base, 32)
	if err != nil || code == 0 || !utf8.ValidRune(rune(code)) {
		m.Warnf(core.EINVALID, "invalid code point %s for escape %q", digits, text)
		return
	}
	p.Escapes = append(p.Escapes, Escape{Text: text, Code: rune(code)})
}

// Flush implements assembly.Flusher for blocks open at end of input.
func (p *Parser) Flush(m *assembly.Manager) error {
	m.Warnf(core.EINVALID, "input ends inside <unicode> block")
	return nil
}

// rules turns the escapes into word rules, longest escapes first.
func (p *Parser) rules() []assembly.WordRule {
	escapes := append([]Escape(nil), p.Escapes...)
	sort.SliceStable(escapes, func(i, j int) bool {
		return len(escapes[i].Text) > len(escapes[j].Text)
	})
	rules := make([]assembly.WordRule, len(escapes))
	for i, e := range escapes {
		rules[i] = assembly.WordRule{
			Name:    "unicode " + e.Text,
			Pattern: regexp.QuoteMeta(e.Text),
			Action:  e.action(),
		}
	}
	tracer().Debugf("%d unicode escapes defined", len(rules))
	return rules
}
