package doc

import (
	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/core/dimen"
	"github.com/npillmayer/thot/core/percent"
)

// Word is a run of text. Words keep their trailing blanks.
type Word struct {
	NodeBase
	Text string
}

// NewWord creates a word node.
func NewWord(text string) *Word {
	return &Word{Text: text}
}

func (w *Word) Kind() Kind          { return KindWord }
func (w *Word) IsEmpty() bool       { return w.Text == "" }
func (w *Word) Generate(r Renderer) { r.Word(w) }

// Glyph is a single character given by its code point, e.g. from an entity.
type Glyph struct {
	NodeBase
	Code rune
}

// NewGlyph creates a glyph node.
func NewGlyph(code rune) *Glyph {
	return &Glyph{Code: code}
}

func (g *Glyph) Kind() Kind          { return KindGlyph }
func (g *Glyph) Generate(r Renderer) { r.Glyph(g) }

// LineBreak is a forced line break.
type LineBreak struct {
	NodeBase
}

// NewLineBreak creates a line break node.
func NewLineBreak() *LineBreak {
	return &LineBreak{}
}

func (br *LineBreak) Kind() Kind          { return KindLineBreak }
func (br *LineBreak) Generate(r Renderer) { r.LineBreak(br) }

// Image is an inline picture. A zero size means natural size; Scale, if
// set, is relative to the available width.
type Image struct {
	NodeBase
	URL   string
	Size  dimen.Size
	Scale percent.Percent
	Align Alignment
	Title string
}

// NewImage creates an image node.
func NewImage(url string) *Image {
	return &Image{URL: url}
}

func (img *Image) Kind() Kind           { return KindImage }
func (img *Image) Generate(r Renderer)  { r.Image(img) }
func (img *Image) Numbering() string    { return "figure" }
func (img *Image) AcceptsLabel() bool   { return true }
func (img *Image) AcceptsCaption() bool { return true }
func (img *Image) Feature() string      { return "image" }

// --- Styles ----------------------------------------------------------------

// Well-known style names. Dialects may use others; renderers warn about
// styles they do not know and render their content plain.
const (
	Bold          = "bold"
	Italic        = "italic"
	Underline     = "underline"
	Monospace     = "code"
	Subscript     = "sub"
	Superscript   = "sup"
	Deleted       = "deleted"
	Inserted      = "inserted"
	Citation      = "cite"
	FootNoteStyle = "footnote"
)

// Style is a toggling style: the same style event which opens it closes it.
type Style struct {
	Container
	style string
}

// NewStyle creates a style node.
func NewStyle(style string) *Style {
	return &Style{style: style}
}

// Style returns the style's name.
func (s *Style) Style() string { return s.style }
func (s *Style) Kind() Kind    { return KindStyle }

func (s *Style) Handle(ev Event, ctx Context) (Disposition, error) {
	if ev.Level() == LevelInline {
		switch ev.ID() {
		case IDNewStyle:
			if t, ok := ev.Tag().(StyleTag); ok && t.Style == s.style {
				return Close, nil
			}
		case IDEndStyle:
			if t, ok := ev.Tag().(StyleTag); ok && t.Style == s.style {
				return Close, nil
			}
			return Forward, nil // implicitly closes the toggle
		case IDEndLink:
			return Forward, nil
		}
	}
	d, _ := handleInline(&s.Container, ev, ctx)
	return d, nil
}

func (s *Style) Generate(r Renderer) {
	r.StyleBegin(s.style)
	s.generateContent(r)
	r.StyleEnd(s.style)
}

// OpenStyle is a style opened and closed by distinct events. Closing
// another style while it is open is a structural error.
type OpenStyle struct {
	Container
	style string
}

// NewOpenStyle creates an explicitly closed style node.
func NewOpenStyle(style string) *OpenStyle {
	return &OpenStyle{style: style}
}

// Style returns the style's name.
func (s *OpenStyle) Style() string { return s.style }
func (s *OpenStyle) Kind() Kind    { return KindOpenStyle }

func (s *OpenStyle) Handle(ev Event, ctx Context) (Disposition, error) {
	if ev.Level() == LevelInline {
		switch ev.ID() {
		case IDEndStyle:
			if t, ok := ev.Tag().(StyleTag); ok && t.Style == s.style {
				return Close, nil
			}
			return Consumed, structural("closing style %q while %q is open", closedStyle(ev), s.style)
		case IDEndLink:
			return Consumed, structural("closing link while style %q is open", s.style)
		}
	}
	d, _ := handleInline(&s.Container, ev, ctx)
	return d, nil
}

func (s *OpenStyle) Generate(r Renderer) {
	r.StyleBegin(s.style)
	s.generateContent(r)
	r.StyleEnd(s.style)
}

func closedStyle(ev Event) string {
	if t, ok := ev.Tag().(StyleTag); ok {
		return t.Style
	}
	return "?"
}

// FootNote is an explicitly closed style holding the footnote's text.
type FootNote struct {
	OpenStyle
}

// NewFootNote creates a footnote node.
func NewFootNote() *FootNote {
	return &FootNote{OpenStyle{style: FootNoteStyle}}
}

func (fn *FootNote) Kind() Kind      { return KindFootNote }
func (fn *FootNote) Feature() string { return "footnote" }

func (fn *FootNote) Handle(ev Event, ctx Context) (Disposition, error) {
	if ev.Is(LevelInline, IDEndStyle) {
		if t, ok := ev.Tag().(StyleTag); ok && t.Style == FootNoteStyle {
			return Close, nil
		}
		return Consumed, structural("closing style %q inside a footnote", closedStyle(ev))
	}
	return fn.OpenStyle.Handle(ev, ctx)
}

// Generate uses FootNoteRenderer if the renderer supports it. Otherwise the
// footnote's text is inlined in parentheses.
func (fn *FootNote) Generate(r Renderer) {
	if fr, ok := r.(FootNoteRenderer); ok {
		fr.FootNoteBegin(fn)
		fn.generateContent(r)
		fr.FootNoteEnd(fn)
		return
	}
	r.Warn(core.At(fn.pos.File, fn.pos.Line,
		core.Error(core.EUNKNOWN, "%s renderer cannot render footnotes", r.Name())))
	r.Word(NewWord(" ("))
	fn.generateContent(r)
	r.Word(NewWord(")"))
}

// Link is a hyperlink. A link without content is rendered showing its URL.
type Link struct {
	Container
	URL string
}

// NewLink creates a link node.
func NewLink(url string) *Link {
	return &Link{URL: url}
}

func (l *Link) Kind() Kind      { return KindLink }
func (l *Link) IsEmpty() bool   { return false }
func (l *Link) Feature() string { return "link" }

func (l *Link) Handle(ev Event, ctx Context) (Disposition, error) {
	if ev.Level() == LevelInline {
		switch ev.ID() {
		case IDEndLink:
			return Close, nil
		case IDEndStyle:
			return Consumed, structural("closing style %q inside a link", closedStyle(ev))
		case IDNewLink:
			return Consumed, structural("link to %s nested inside a link", Describe(ev.Make()))
		}
	}
	d, _ := handleInline(&l.Container, ev, ctx)
	return d, nil
}

func (l *Link) Generate(r Renderer) {
	r.LinkBegin(l)
	l.generateContent(r)
	r.LinkEnd(l)
}

// --- Paragraphs ------------------------------------------------------------

// Par is a paragraph. Paragraphs are created implicitly by the first inline
// event arriving at a block container and end with the first event of a
// higher level.
type Par struct {
	Container
}

// NewPar creates a paragraph node.
func NewPar() *Par {
	return &Par{}
}

func (p *Par) Kind() Kind { return KindPar }

func (p *Par) Handle(ev Event, ctx Context) (Disposition, error) {
	if ev.Level() == LevelInline {
		switch ev.ID() {
		case IDEndStyle:
			return Consumed, structural("closing style %q without opening", closedStyle(ev))
		case IDEndLink:
			return Consumed, structural("closing link without opening")
		}
	}
	d, _ := handleInline(&p.Container, ev, ctx)
	return d, nil
}

func (p *Par) Generate(r Renderer) {
	r.ParBegin(p)
	p.generateContent(r)
	r.ParEnd(p)
}

// GenerateInline generates the paragraph's content without paragraph
// boundaries, as needed for titles, terms and captions.
func (p *Par) GenerateInline(r Renderer) {
	if p != nil {
		p.generateContent(r)
	}
}
