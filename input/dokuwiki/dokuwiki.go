package dokuwiki

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/core/dimen"
	"github.com/npillmayer/thot/engine/assembly"
	"github.com/npillmayer/thot/engine/doc"
)

// Name is the name the dialect is registered under.
const Name = "dokuwiki"

func init() {
	assembly.Register(&assembly.Dialect{
		Name:  Name,
		Kind:  assembly.Syntax,
		Lines: lineRules(),
		Words: wordRules(),
	})
}

func lineRules() []assembly.LineRule {
	return []assembly.LineRule{
		{Name: "header", Pattern: regexp.MustCompile(`^\s*(={1,6})([^=].*?)(={1,6})\s*$`), Action: header},
		{Name: "ul", Pattern: regexp.MustCompile(`^((?:  |\t)\s*)\*\s(.*)$`), Action: listItem(doc.Unordered)},
		{Name: "ol", Pattern: regexp.MustCompile(`^((?:  |\t)\s*)-\s(.*)$`), Action: listItem(doc.Ordered)},
		{Name: "code", Pattern: regexp.MustCompile(`^\s*<code(?:\s+(?P<lang>[\w+#-]+))?[^>]*>\s*$`), Action: code},
		{Name: "file", Pattern: regexp.MustCompile(`^\s*<file(?:\s+(?P<lang>[\w+#-]+))?[^>]*>\s*$`), Action: file},
		{Name: "nowiki", Pattern: regexp.MustCompile(`^\s*<nowiki>\s*$`), Action: nowiki},
		{Name: "row", Pattern: regexp.MustCompile(`^\s*([\^|].*[\^|])\s*$`), Action: row},
		{Name: "hline", Pattern: regexp.MustCompile(`^-----*\s*$`), Action: hline},
		{Name: "indent", Pattern: regexp.MustCompile(`^(?:  |\t)\s*(\S.*)$`), Action: indent},
		{Name: "quote", Pattern: regexp.MustCompile(`^(>+)\s?(.*)$`), Action: quote},
	}
}

// depthOf measures indentation. Tabs count as 8 blanks.
func depthOf(indent string) int {
	depth := 0
	for _, c := range indent {
		switch c {
		case ' ':
			depth++
		case '\t':
			depth += 8
		}
	}
	return depth
}

// header handles `====== Title ======`. Six equal signs are the outermost
// level.
func header(m *assembly.Manager, match assembly.Match) error {
	n, closing := len(match.Group(1)), len(match.Group(3))
	if n != closing {
		tracer().Debugf("header with unbalanced markers %d/%d", n, closing)
	}
	if err := m.Send(doc.HeaderEvent(6 - n)); err != nil {
		return err
	}
	if err := m.ParseText(strings.TrimSpace(match.Group(2))); err != nil {
		return err
	}
	return m.Send(doc.TitleEndEvent())
}

func listItem(kind doc.ListKind) assembly.Action {
	return func(m *assembly.Manager, match assembly.Match) error {
		if err := m.Send(doc.ItemEvent(kind, depthOf(match.Group(1)))); err != nil {
			return err
		}
		return m.ParseLineText(strings.TrimSpace(match.Group(2)))
	}
}

func closingTag(tag string) func(string) bool {
	return func(line string) bool {
		return strings.TrimSpace(line) == tag
	}
}

func code(m *assembly.Manager, match assembly.Match) error {
	return m.BeginBlock(doc.NewBlock("code", match.Named("lang")), closingTag("</code>"))
}

func file(m *assembly.Manager, match assembly.Match) error {
	return m.BeginBlock(doc.NewBlock("file", match.Named("lang")), closingTag("</file>"))
}

func nowiki(m *assembly.Manager, match assembly.Match) error {
	return m.BeginBlock(doc.NewBlock("nowiki", ""), closingTag("</nowiki>"))
}

func hline(m *assembly.Manager, match assembly.Match) error {
	return m.Send(doc.BlockEvent(doc.NewHorizontalLine()))
}

func quote(m *assembly.Manager, match assembly.Match) error {
	if err := m.Send(doc.QuoteEvent(len(match.Group(1)))); err != nil {
		return err
	}
	if strings.TrimSpace(match.Group(2)) == "" {
		return nil
	}
	return m.ParseRules(match.Group(2))
}

// --- Indented blocks -------------------------------------------------------

// indentParser collects indented lines into a literal block. The first line
// which is not indented ends the block and is parsed again by the previous
// parser.
type indentParser struct {
	block *doc.Block
}

var indented = regexp.MustCompile(`^(?:  |\t)\s*(.*)$`)

func (ip *indentParser) ParseLine(m *assembly.Manager, line string) error {
	if groups := indented.FindStringSubmatch(line); groups != nil {
		ip.block.Add(groups[1])
		return nil
	}
	m.PopParser()
	return m.ParseLine(line)
}

// Flush implements assembly.Flusher: an indented block may end the input.
func (ip *indentParser) Flush(m *assembly.Manager) error {
	return nil
}

func indent(m *assembly.Manager, match assembly.Match) error {
	blk := doc.NewBlock("pre", "")
	blk.Add(match.Group(1))
	if err := m.Send(doc.BlockEvent(blk)); err != nil {
		return err
	}
	m.PushParser(&indentParser{block: blk})
	return nil
}

// --- Word rules ------------------------------------------------------------

func wordRules() []assembly.WordRule {
	return []assembly.WordRule{
		{Name: "nonparsed", Pattern: `%%(?P<nonparsed>.*?)%%`, Action: nonparsed},
		{Name: "bold", Pattern: `\*\*`, Action: toggle(doc.Bold)},
		{Name: "underline", Pattern: `__`, Action: toggle(doc.Underline)},
		{Name: "monospace", Pattern: `''`, Action: toggle(doc.Monospace)},
		{Name: "open", Pattern: `<(?P<open>sub|sup|del)>`, Action: openStyle},
		{Name: "close", Pattern: `</(?P<close>sub|sup|del)>`, Action: closeStyle},
		{Name: "footnote", Pattern: `\(\(`, Action: footnote},
		{Name: "endfootnote", Pattern: `\)\)`, Action: endFootnote},
		{Name: "link", Pattern: `\[\[(?P<target>[^\]|]*)(?:\|(?P<label>[^\]]*))?\]\]`, Action: link},
		{Name: "image", Pattern: `\{\{(?P<image>[^}?|]+)(?:\?(?P<width>[0-9]+)?(?:x(?P<height>[0-9]+))?)?\s*(?:\|(?P<title>[^}]*))?\}\}`, Action: image},
		{Name: "url", Pattern: `(?:https?|ftp|sftp|mailto):[^\s\]|]+`, Action: url},
		{Name: "italic", Pattern: `//`, Action: toggle(doc.Italic)},
		{Name: "email", Pattern: "<(?P<email>[a-zA-Z0-9!#$%&'*+/=?^_`{|}~.-]+@[-a-zA-Z0-9]+(?:\\.[-a-zA-Z0-9]+)+)>", Action: email},
		{Name: "linebreak", Pattern: `\\\\(?:\s|$)`, Action: linebreak},
		{Name: "smiley", Pattern: smileys.pattern(), Action: smiley},
		{Name: "entity", Pattern: entities.pattern(), Action: entity},
	}
}

func toggle(style string) assembly.Action {
	return func(m *assembly.Manager, match assembly.Match) error {
		return m.Send(doc.StyleEvent(style))
	}
}

var styleNames = map[string]string{
	"sub": doc.Subscript,
	"sup": doc.Superscript,
	"del": doc.Deleted,
}

func openStyle(m *assembly.Manager, match assembly.Match) error {
	return m.Send(doc.OpenStyleEvent(styleNames[match.Named("open")]))
}

func closeStyle(m *assembly.Manager, match assembly.Match) error {
	return m.Send(doc.CloseStyleEvent(styleNames[match.Named("close")]))
}

func footnote(m *assembly.Manager, match assembly.Match) error {
	return m.Send(doc.FootNoteEvent())
}

func endFootnote(m *assembly.Manager, match assembly.Match) error {
	return m.Send(doc.CloseFootNoteEvent())
}

func nonparsed(m *assembly.Manager, match assembly.Match) error {
	return m.Send(doc.WordEvent(match.Named("nonparsed")))
}

func linebreak(m *assembly.Manager, match assembly.Match) error {
	return m.Send(doc.InlineEvent(doc.NewLineBreak()))
}

// link handles `[[target|label]]`. The label is parsed for markup, e.g. an
// image; without a label the target is shown verbatim.
func link(m *assembly.Manager, match assembly.Match) error {
	target := strings.TrimSpace(match.Named("target"))
	text := strings.TrimSpace(match.Named("label"))
	if target == "" {
		m.Warnf(core.EUNKNOWN, "link without target: %s", match.Text())
		return m.Send(doc.WordEvent(match.Text()))
	}
	if text == "" {
		return linkTo(m, target, target)
	}
	if err := m.Send(doc.LinkEvent(target)); err != nil {
		return err
	}
	if err := m.ParseText(text); err != nil {
		return err
	}
	return m.Send(doc.CloseLinkEvent())
}

func url(m *assembly.Manager, match assembly.Match) error {
	return linkTo(m, match.Text(), match.Text())
}

func email(m *assembly.Manager, match assembly.Match) error {
	addr := match.Named("email")
	return linkTo(m, "mailto:"+addr, addr)
}

func linkTo(m *assembly.Manager, target, text string) error {
	if err := m.Send(doc.LinkEvent(target)); err != nil {
		return err
	}
	if err := m.Send(doc.WordEvent(text)); err != nil {
		return err
	}
	return m.Send(doc.CloseLinkEvent())
}

// image handles `{{name?WxH|title}}`. Blanks around the name align the
// image: a blank on the left aligns it right, on the right aligns it left,
// on both sides centers it.
func image(m *assembly.Manager, match assembly.Match) error {
	raw := match.Named("image")
	img := doc.NewImage(strings.TrimSpace(raw))
	left := strings.HasPrefix(raw, " ")
	right := strings.HasSuffix(raw, " ")
	switch {
	case left && right:
		img.Align = doc.AlignCenter
	case left:
		img.Align = doc.AlignRight
	case right:
		img.Align = doc.AlignLeft
	}
	img.Size = dimen.Size{W: pixels(match.Named("width")), H: pixels(match.Named("height"))}
	img.Title = strings.TrimSpace(match.Named("title"))
	return m.Send(doc.InlineEvent(img))
}

func pixels(s string) dimen.Dimen {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return dimen.Dimen(n) * dimen.PX
}

func smiley(m *assembly.Manager, match assembly.Match) error {
	name, ok := smileys.lookup(match.Text())
	if !ok {
		return m.Send(doc.WordEvent(match.Text()))
	}
	img := doc.NewImage(smileyPath(m, name))
	img.Title = match.Text()
	return m.Send(doc.InlineEvent(img))
}

func entity(m *assembly.Manager, match assembly.Match) error {
	code, ok := entities.lookup(match.Text())
	if !ok {
		return m.Send(doc.WordEvent(match.Text()))
	}
	return m.Send(doc.InlineEvent(doc.NewGlyph(code)))
}
