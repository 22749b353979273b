package markdown

import (
	"regexp"
	"strings"

	"github.com/npillmayer/thot/engine/assembly"
	"github.com/npillmayer/thot/engine/doc"
)

// Name is the name the dialect is registered under.
const Name = "markdown"

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
		{Name: "fence", Pattern: regexp.MustCompile("^\\s{0,3}(?P<fence>```|~~~)\\s*(?P<lang>[\\w+#.-]*)"), Action: fence},
		{Name: "header", Pattern: regexp.MustCompile(`^\s{0,3}(#{1,6})(?:\s+(.*?))?(?:\s+#+)?\s*$`), Action: header},
		{Name: "break", Pattern: regexp.MustCompile(`^\s{0,3}(?:(?:\*\s*){3,}|(?:-\s*){3,}|(?:_\s*){3,})$`), Action: thematicBreak},
		{Name: "quote", Pattern: regexp.MustCompile(`^\s{0,3}((?:>\s?)+)(.*)$`), Action: quote},
		{Name: "ul", Pattern: regexp.MustCompile(`^(\s*)[*+-]\s+(.*)$`), Action: listItem(doc.Unordered)},
		{Name: "ol", Pattern: regexp.MustCompile(`^(\s*)\d{1,9}[.)]\s+(.*)$`), Action: listItem(doc.Ordered)},
		{Name: "table", Pattern: tableRow, Action: table},
		{Name: "continuation", Pattern: regexp.MustCompile(`^\s+(\S.*)$`), Action: continuation},
	}
}

// width measures indentation. Tabs count as 4 blanks.
func width(indent string) int {
	w := 0
	for _, c := range indent {
		if c == '\t' {
			w += 4
		} else {
			w++
		}
	}
	return w
}

func fence(m *assembly.Manager, match assembly.Match) error {
	marker := match.Named("fence")
	blk := doc.NewBlock("code", match.Named("lang"))
	return m.BeginBlock(blk, func(line string) bool {
		return strings.HasPrefix(strings.TrimSpace(line), marker)
	})
}

// header handles `## Title ##`; a single # is the outermost level.
func header(m *assembly.Manager, match assembly.Match) error {
	if err := m.Send(doc.HeaderEvent(len(match.Group(1)) - 1)); err != nil {
		return err
	}
	if err := m.ParseText(strings.TrimSpace(match.Group(2))); err != nil {
		return err
	}
	return m.Send(doc.TitleEndEvent())
}

func thematicBreak(m *assembly.Manager, match assembly.Match) error {
	return m.Send(doc.BlockEvent(doc.NewHorizontalLine()))
}

func quote(m *assembly.Manager, match assembly.Match) error {
	depth := strings.Count(match.Group(1), ">")
	if err := m.Send(doc.QuoteEvent(depth)); err != nil {
		return err
	}
	if strings.TrimSpace(match.Group(2)) == "" {
		return nil
	}
	return m.ParseRules(match.Group(2))
}

func listItem(kind doc.ListKind) assembly.Action {
	return func(m *assembly.Manager, match assembly.Match) error {
		if err := m.Send(doc.ItemEvent(kind, width(match.Group(1))+1)); err != nil {
			return err
		}
		if strings.TrimSpace(match.Group(2)) == "" {
			return nil
		}
		return m.ParseRules(match.Group(2))
	}
}

// continuation handles indented lines continuing a list item's paragraph.
func continuation(m *assembly.Manager, match assembly.Match) error {
	return m.ParseRules(match.Group(1))
}

// --- Inline ----------------------------------------------------------------

func wordRules() []assembly.WordRule {
	return []assembly.WordRule{
		{Name: "escape", Pattern: "\\\\(?P<esc>[\\\\`*_{}\\[\\]()#+\\-.!|~<>])", Action: escape},
		{Name: "code", Pattern: "`(?P<code>[^`]+)`", Action: codeSpan},
		{Name: "image", Pattern: `!\[(?P<alt>[^\]]*)\]\((?P<src>[^\s)]+)(?:\s+"(?P<title>[^"]*)")?\)`, Action: image},
		{Name: "link", Pattern: `\[(?P<text>[^\]]+)\]\((?P<href>[^\s)]*)(?:\s+"(?P<title>[^"]*)")?\)`, Action: link},
		{Name: "autolink", Pattern: `<(?P<auto>(?:https?|ftp|mailto):[^>\s]+)>`, Action: autolink},
		{Name: "strong", Pattern: `\*\*|\b__|__\b`, Action: toggle(doc.Bold)},
		{Name: "emphasis", Pattern: `\B\*\b|\b\*\B|\b_|_\b`, Action: toggle(doc.Italic)},
		{Name: "strike", Pattern: `~~`, Action: toggle(doc.Deleted)},
		{Name: "break", Pattern: `(?: {2,}|\\)$`, Action: hardBreak},
	}
}

func toggle(style string) assembly.Action {
	return func(m *assembly.Manager, match assembly.Match) error {
		return m.Send(doc.StyleEvent(style))
	}
}

func escape(m *assembly.Manager, match assembly.Match) error {
	return m.Send(doc.WordEvent(match.Named("esc")))
}

func codeSpan(m *assembly.Manager, match assembly.Match) error {
	if err := m.Send(doc.StyleEvent(doc.Monospace)); err != nil {
		return err
	}
	if err := m.Send(doc.WordEvent(strings.TrimSpace(match.Named("code")))); err != nil {
		return err
	}
	return m.Send(doc.StyleEvent(doc.Monospace))
}

func image(m *assembly.Manager, match assembly.Match) error {
	img := doc.NewImage(match.Named("src"))
	img.Title = match.Named("alt")
	if title := match.Named("title"); title != "" {
		img.Title = title
	}
	return m.Send(doc.InlineEvent(img))
}

func link(m *assembly.Manager, match assembly.Match) error {
	if err := m.Send(doc.LinkEvent(match.Named("href"))); err != nil {
		return err
	}
	if err := m.ParseText(match.Named("text")); err != nil {
		return err
	}
	return m.Send(doc.CloseLinkEvent())
}

func autolink(m *assembly.Manager, match assembly.Match) error {
	url := match.Named("auto")
	if err := m.Send(doc.LinkEvent(url)); err != nil {
		return err
	}
	if err := m.Send(doc.WordEvent(strings.TrimPrefix(url, "mailto:"))); err != nil {
		return err
	}
	return m.Send(doc.CloseLinkEvent())
}

func hardBreak(m *assembly.Manager, match assembly.Match) error {
	tracer().Debugf("hard line break")
	return m.Send(doc.InlineEvent(doc.NewLineBreak()))
}
