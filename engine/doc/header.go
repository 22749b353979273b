package doc

// Header is a section heading together with the section's body. Level 0
// is the outermost level. A header first collects its title from inline
// events until a title-end event arrives; afterwards inline and paragraph
// events go to the body. Headers of a deeper level nest into the body,
// headers of the same or a higher level end the section.
type Header struct {
	NodeBase
	level   int
	title   *Par
	body    Container
	inTitle bool
}

// NewHeader creates a header node of the given level.
func NewHeader(level int) *Header {
	return &Header{level: level, title: NewPar(), inTitle: true}
}

func (h *Header) Kind() Kind         { return KindHeader }
func (h *Header) HeaderLevel() int   { return h.level }
func (h *Header) Numbering() string  { return "header" }
func (h *Header) AcceptsLabel() bool { return true }
func (h *Header) Content() []Node    { return h.body.Content() }
func (h *Header) Title() *Par        { return h.title }

// Clean cleans title and body. A header is never empty.
func (h *Header) Clean() {
	h.title.Clean()
	h.body.Clean()
}

func headerLevel(ev Event) (int, bool) {
	if t, ok := ev.Tag().(HeaderTag); ok {
		return t.Level, true
	}
	if hh, ok := ev.Node().(*Header); ok {
		return hh.level, true
	}
	return 0, false
}

func (h *Header) Handle(ev Event, ctx Context) (Disposition, error) {
	switch ev.Level() {
	case LevelSection:
		switch ev.ID() {
		case IDNew:
			if lvl, ok := headerLevel(ev); ok && lvl > h.level {
				h.inTitle = false
				sub := ev.Make()
				attach(ctx, &h.body, sub)
				ctx.Push(sub)
				return Consumed, nil
			}
			return Forward, nil
		case IDTitle:
			h.inTitle = false
			return Consumed, nil
		}
	case LevelInline:
		if h.inTitle {
			ctx.Push(h.title)
			return Replay, nil
		}
		d, _ := handleBlocks(&h.body, ev, ctx)
		return d, nil
	case LevelParagraph:
		h.inTitle = false
		if ev.ID() == IDEnd {
			return Consumed, nil
		}
		if d, ok := handleBlocks(&h.body, ev, ctx); ok {
			return d, nil
		}
	}
	return Forward, nil
}

func (h *Header) Generate(r Renderer) {
	r.HeaderBegin(h)
	h.title.GenerateInline(r)
	r.HeaderTitleEnd(h)
	h.body.generateContent(r)
	r.HeaderEnd(h)
}
