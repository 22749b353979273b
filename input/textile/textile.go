package textile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/core/dimen"
	"github.com/npillmayer/thot/core/percent"
	"github.com/npillmayer/thot/engine/assembly"
	"github.com/npillmayer/thot/engine/doc"
)

// Name is the name the dialect is registered under.
const Name = "textile"

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
		{Name: "header", Pattern: regexp.MustCompile(`^h([1-6])\.\s+(.*)$`), Action: header},
		{Name: "par", Pattern: regexp.MustCompile(`^p\.\s+(.*)$`), Action: par},
		{Name: "quote", Pattern: regexp.MustCompile(`^bq\.\.?\s+(.*)$`), Action: quote},
		{Name: "extcode", Pattern: regexp.MustCompile(`^bc\.\.\s+(.*)$`), Action: extendedCode},
		{Name: "code", Pattern: regexp.MustCompile(`^bc\.\s+(.*)$`), Action: code},
		{Name: "list", Pattern: regexp.MustCompile(`^([*#]+)\s+(.*)$`), Action: list},
		{Name: "term", Pattern: regexp.MustCompile(`^;\s+(.*)$`), Action: term},
		{Name: "definition", Pattern: regexp.MustCompile(`^:\s+(.*)$`), Action: definition},
		{Name: "defline", Pattern: regexp.MustCompile(`^-\s+(.*?)\s*:=\s*(.*)$`), Action: defline},
		{Name: "table", Pattern: regexp.MustCompile(`^table(?:\([^)]*\))?\.\s*$`), Action: endPar},
		{Name: "row", Pattern: regexp.MustCompile(`^\|(.*)\|\s*$`), Action: row},
	}
}

// header handles `hN. title`; h1 is the outermost level.
func header(m *assembly.Manager, match assembly.Match) error {
	n, _ := strconv.Atoi(match.Group(1))
	if err := m.Send(doc.HeaderEvent(n - 1)); err != nil {
		return err
	}
	if err := m.ParseText(strings.TrimSpace(match.Group(2))); err != nil {
		return err
	}
	return m.Send(doc.TitleEndEvent())
}

func endPar(m *assembly.Manager, match assembly.Match) error {
	return m.Send(doc.ParEndEvent())
}

func par(m *assembly.Manager, match assembly.Match) error {
	if err := m.Send(doc.ParEndEvent()); err != nil {
		return err
	}
	return m.ParseRules(match.Group(1))
}

func quote(m *assembly.Manager, match assembly.Match) error {
	if err := m.Send(doc.ParEndEvent()); err != nil {
		return err
	}
	if err := m.Send(doc.QuoteEvent(1)); err != nil {
		return err
	}
	return m.ParseRules(match.Group(1))
}

func code(m *assembly.Manager, match assembly.Match) error {
	blk := doc.NewBlock("code", "")
	blk.Add(match.Group(1))
	return m.Send(doc.BlockEvent(blk))
}

// extendedCode starts a code block spanning several lines, up to the next
// paragraph signature.
func extendedCode(m *assembly.Manager, match assembly.Match) error {
	blk := doc.NewBlock("code", "")
	blk.Add(match.Group(1))
	if err := m.Send(doc.BlockEvent(blk)); err != nil {
		return err
	}
	m.PushParser(&extendedParser{block: blk})
	return nil
}

var paragraphSignature = regexp.MustCompile(`^(?:p|h[1-6]|bq|bc)\.`)

// extendedParser collects lines into a literal block until a line with a
// block signature arrives, which is parsed again by the previous parser.
type extendedParser struct {
	block *doc.Block
}

func (ep *extendedParser) ParseLine(m *assembly.Manager, line string) error {
	if paragraphSignature.MatchString(line) {
		m.PopParser()
		return m.ParseLine(line)
	}
	ep.block.Add(line)
	return nil
}

// Flush implements assembly.Flusher.
func (ep *extendedParser) Flush(m *assembly.Manager) error {
	return nil
}

// list handles items like `** text` or `#* text`. The last marker decides
// the kind of list, the number of markers the depth.
func list(m *assembly.Manager, match assembly.Match) error {
	markers := match.Group(1)
	kind := doc.Unordered
	if markers[len(markers)-1] == '#' {
		kind = doc.Ordered
	}
	if err := m.Send(doc.ItemEvent(kind, len(markers))); err != nil {
		return err
	}
	return m.ParseLineText(match.Group(2))
}

func term(m *assembly.Manager, match assembly.Match) error {
	if err := m.Send(doc.DefEvent(1)); err != nil {
		return err
	}
	return m.ParseText(strings.TrimSpace(match.Group(1)))
}

func definition(m *assembly.Manager, match assembly.Match) error {
	if err := m.Send(doc.DefEvent(1)); err != nil {
		return err
	}
	return m.ParseLineText(match.Group(1))
}

func defline(m *assembly.Manager, match assembly.Match) error {
	if err := m.Send(doc.DefEvent(1)); err != nil {
		return err
	}
	if err := m.ParseText(match.Group(1)); err != nil {
		return err
	}
	if err := m.Send(doc.DefEvent(1)); err != nil {
		return err
	}
	return m.ParseLineText(match.Group(2))
}

// --- Tables ----------------------------------------------------------------

var cellModifiers = regexp.MustCompile(`^((?:_|\\\d+|/\d+|<>|<|>|=|\^|~)+)\.(?:\s|$)`)
var spanModifier = regexp.MustCompile(`([\\/])(\d+)`)

func row(m *assembly.Manager, match assembly.Match) error {
	if err := m.Send(doc.RowEvent()); err != nil {
		return err
	}
	for _, text := range strings.Split(match.Group(1), "|") {
		kind, align, hspan, vspan := doc.DataCell, doc.AlignDefault, 1, 1
		text = strings.TrimSpace(text)
		if mods := cellModifiers.FindStringSubmatch(text); mods != nil {
			text = text[len(mods[0]):]
			spec := mods[1]
			for _, sp := range spanModifier.FindAllStringSubmatch(spec, -1) {
				n, _ := strconv.Atoi(sp[2])
				if sp[1] == `\` {
					hspan = n
				} else {
					vspan = n
				}
			}
			spec = spanModifier.ReplaceAllString(spec, "")
			if strings.Contains(spec, "_") {
				kind = doc.HeadCell
			}
			switch {
			case strings.Contains(spec, "<>"):
			case strings.Contains(spec, "<"):
				align = doc.AlignLeft
			case strings.Contains(spec, ">"):
				align = doc.AlignRight
			case strings.Contains(spec, "="):
				align = doc.AlignCenter
			}
		}
		if err := m.Send(doc.CellEvent(kind, align, hspan, vspan)); err != nil {
			return err
		}
		if text = strings.TrimSpace(text); text != "" {
			if err := m.ParseText(text); err != nil {
				return err
			}
		}
	}
	return nil
}

// --- Phrases ---------------------------------------------------------------

func wordRules() []assembly.WordRule {
	return []assembly.WordRule{
		{Name: "escape", Pattern: `==(?P<raw>.+?)==`, Action: escaped},
		{Name: "code", Pattern: `@(?P<code>[^@\s][^@]*)@`, Action: inlineCode},
		{Name: "image", Pattern: `!(?P<align>[<>=])?(?P<url>[^\s!(]+)(?:\s+(?P<w>\d+)x(?P<h>\d+)|\s+(?P<scale>\d+%))?\s*(?:\((?P<alt>[^)]*)\))?!(?::(?P<href>[^\s"<>]*[^\s"<>.,;:!?)]))?`, Action: image},
		{Name: "link", Pattern: `"(?P<text>[^"]+)":(?P<url>[^\s"<>]*[^\s"<>.,;:!?)])`, Action: link},
		{Name: "strong", Pattern: `\B\*\*?\b|\b\*\*?\B`, Action: toggle(doc.Bold)},
		{Name: "emphasis", Pattern: `\b__?|__?\b`, Action: toggle(doc.Italic)},
		{Name: "citation", Pattern: `\B\?\?\b|\b\?\?\B`, Action: toggle(doc.Citation)},
		{Name: "deleted", Pattern: `\B-\b|\b-\B`, Action: toggle(doc.Deleted)},
		{Name: "inserted", Pattern: `\B\+\b|\b\+\B`, Action: toggle(doc.Inserted)},
		{Name: "superscript", Pattern: `\B\^\b|\b\^\B`, Action: toggle(doc.Superscript)},
		{Name: "subscript", Pattern: `\B~\b|\b~\B`, Action: toggle(doc.Subscript)},
		{Name: "glyph", Pattern: `\((?:c|r|tm)\)|\{(?:c\||\|c|L-|-L|Y=|=Y)\}`, Action: glyph},
	}
}

func toggle(style string) assembly.Action {
	return func(m *assembly.Manager, match assembly.Match) error {
		return m.Send(doc.StyleEvent(style))
	}
}

func escaped(m *assembly.Manager, match assembly.Match) error {
	return m.Send(doc.WordEvent(match.Named("raw")))
}

func inlineCode(m *assembly.Manager, match assembly.Match) error {
	if err := m.Send(doc.StyleEvent(doc.Monospace)); err != nil {
		return err
	}
	if err := m.Send(doc.WordEvent(match.Named("code"))); err != nil {
		return err
	}
	return m.Send(doc.StyleEvent(doc.Monospace))
}

func link(m *assembly.Manager, match assembly.Match) error {
	if err := m.Send(doc.LinkEvent(match.Named("url"))); err != nil {
		return err
	}
	if err := m.ParseText(match.Named("text")); err != nil {
		return err
	}
	return m.Send(doc.CloseLinkEvent())
}

func image(m *assembly.Manager, match assembly.Match) error {
	img := doc.NewImage(match.Named("url"))
	switch match.Named("align") {
	case "<":
		img.Align = doc.AlignLeft
	case "=":
		img.Align = doc.AlignCenter
	case ">":
		img.Align = doc.AlignRight
	}
	if w := match.Named("w"); w != "" {
		width, _ := strconv.Atoi(w)
		height, _ := strconv.Atoi(match.Named("h"))
		img.Size = dimen.Size{W: dimen.Dimen(width) * dimen.PX, H: dimen.Dimen(height) * dimen.PX}
	}
	if s := match.Named("scale"); s != "" {
		scale, err := percent.FromString(s)
		if err != nil {
			m.Warn(core.WrapError(err, core.EUNKNOWN, "image scale %q ignored", s))
		} else {
			img.Scale = scale
		}
	}
	img.Title = match.Named("alt")
	href := match.Named("href")
	if href == "" {
		return m.Send(doc.InlineEvent(img))
	}
	if err := m.Send(doc.LinkEvent(href)); err != nil {
		return err
	}
	if err := m.Send(doc.InlineEvent(img)); err != nil {
		return err
	}
	return m.Send(doc.CloseLinkEvent())
}

var glyphs = map[string]rune{
	"(c)":  '©',
	"(r)":  '®',
	"(tm)": '™',
	"{c|}": '¢',
	"{|c}": '¢',
	"{L-}": '£',
	"{-L}": '£',
	"{Y=}": '¥',
	"{=Y}": '¥',
}

func glyph(m *assembly.Manager, match assembly.Match) error {
	code, ok := glyphs[match.Text()]
	if !ok {
		tracer().Errorf("no glyph for %q", match.Text())
		return m.Send(doc.WordEvent(match.Text()))
	}
	return m.Send(doc.InlineEvent(doc.NewGlyph(code)))
}
