package doc

// ListKind distinguishes bulleted from numbered lists.
type ListKind uint8

// List kinds
const (
	Unordered ListKind = iota
	Ordered
)

func (k ListKind) String() string {
	if k == Ordered {
		return "ol"
	}
	return "ul"
}

// List is a list of a given kind at a given depth. Items of the same kind
// and depth are merged into the list, deeper items open a nested list
// inside the last item, everything else ends the list.
type List struct {
	Container
	kind  ListKind
	depth int
}

// NewList creates a list node.
func NewList(kind ListKind, depth int) *List {
	return &List{kind: kind, depth: depth}
}

func (l *List) Kind() Kind { return KindList }

// listShape extracts kind and depth of a list event, from either a tag or a
// ready-made list.
func listShape(ev Event) (ListKind, int, bool) {
	if t, ok := ev.Tag().(ListTag); ok {
		return t.Kind, t.Depth, true
	}
	if l, ok := ev.Node().(*List); ok {
		return l.kind, l.depth, true
	}
	return Unordered, 0, false
}

// ListKind returns whether the list is ordered.
func (l *List) ListKind() ListKind { return l.kind }

// Depth returns the list's nesting depth as given by the markup.
func (l *List) Depth() int { return l.depth }

func (l *List) Handle(ev Event, ctx Context) (Disposition, error) {
	switch {
	case ev.Is(LevelParagraph, IDNewItem):
		kind, depth, ok := listShape(ev)
		if !ok {
			return Forward, nil
		}
		switch {
		case depth == l.depth && kind == l.kind:
			item := NewListItem(l.depth)
			attach(ctx, &l.Container, item)
			ctx.Push(item)
			return Consumed, nil
		case depth > l.depth:
			ctx.Push(l.lastItem(ctx))
			return Replay, nil
		}
	case ev.Level() == LevelInline:
		ctx.Push(l.lastItem(ctx))
		return Replay, nil
	}
	return Forward, nil
}

func (l *List) lastItem(ctx Context) *ListItem {
	if item, ok := l.Last().(*ListItem); ok {
		return item
	}
	item := NewListItem(l.depth)
	attach(ctx, &l.Container, item)
	return item
}

func (l *List) Generate(r Renderer) {
	r.ListBegin(l)
	l.generateContent(r)
	r.ListEnd(l)
}

// ListItem is an entry of a list, holding paragraphs and nested lists.
type ListItem struct {
	Container
	depth int
}

// NewListItem creates an item for a list of the given depth.
func NewListItem(depth int) *ListItem {
	return &ListItem{depth: depth}
}

func (it *ListItem) Kind() Kind { return KindItem }

func (it *ListItem) Handle(ev Event, ctx Context) (Disposition, error) {
	switch ev.Level() {
	case LevelInline:
		d, _ := handleBlocks(&it.Container, ev, ctx)
		return d, nil
	case LevelParagraph:
		switch ev.ID() {
		case IDNewItem:
			if _, depth, ok := listShape(ev); ok && depth > it.depth {
				d, _ := handleBlocks(&it.Container, ev, ctx)
				return d, nil
			}
		case IDNew:
			d, _ := handleBlocks(&it.Container, ev, ctx)
			return d, nil
		}
	}
	return Forward, nil
}

func (it *ListItem) Generate(r Renderer) {
	r.ItemBegin(it)
	it.generateContent(r)
	r.ItemEnd(it)
}

// --- Definition lists ------------------------------------------------------

// DefinitionList is a list of terms and their definitions. Successive
// definition events of the list's depth alternate between starting a term
// and starting its definition. Deeper events are delegated into the
// definition of the active item.
type DefinitionList struct {
	Container
	depth int
}

// NewDefinitionList creates a definition list node.
func NewDefinitionList(depth int) *DefinitionList {
	return &DefinitionList{depth: depth}
}

func (dl *DefinitionList) Kind() Kind { return KindDefList }

func defDepth(ev Event) (int, bool) {
	if t, ok := ev.Tag().(DefTag); ok {
		return t.Depth, true
	}
	if dl, ok := ev.Node().(*DefinitionList); ok {
		return dl.depth, true
	}
	return 0, false
}

// Depth returns the list's nesting depth.
func (dl *DefinitionList) Depth() int { return dl.depth }

func (dl *DefinitionList) Handle(ev Event, ctx Context) (Disposition, error) {
	switch {
	case ev.Is(LevelParagraph, IDNewDef):
		depth, ok := defDepth(ev)
		if !ok {
			return Forward, nil
		}
		last, _ := dl.Last().(*DefinitionItem)
		switch {
		case depth == dl.depth:
			if last != nil && !last.inDef {
				last.inDef = true
				ctx.Push(last)
				return Consumed, nil
			}
			item := NewDefinitionItem(dl.depth)
			attach(ctx, &dl.Container, item)
			ctx.Push(item)
			return Consumed, nil
		case depth > dl.depth:
			if last == nil {
				last = NewDefinitionItem(dl.depth)
				attach(ctx, &dl.Container, last)
			}
			last.inDef = true
			ctx.Push(last)
			return Replay, nil
		}
	case ev.Level() == LevelInline:
		item, _ := dl.Last().(*DefinitionItem)
		if item == nil {
			item = NewDefinitionItem(dl.depth)
			attach(ctx, &dl.Container, item)
		}
		ctx.Push(item)
		return Replay, nil
	}
	return Forward, nil
}

func (dl *DefinitionList) Generate(r Renderer) {
	if dr, ok := r.(DefinitionRenderer); ok {
		dr.DefListBegin(dl)
		dl.generateContent(r)
		dr.DefListEnd(dl)
		return
	}
	dl.generateContent(r)
}

// DefinitionItem holds a term and its definition.
type DefinitionItem struct {
	NodeBase
	depth int
	term  *Par
	def   Container
	inDef bool
}

// NewDefinitionItem creates a definition item, collecting its term first.
func NewDefinitionItem(depth int) *DefinitionItem {
	return &DefinitionItem{depth: depth, term: NewPar()}
}

// NewDefinition creates a complete definition item of a term, e.g. for
// generated glossaries.
func NewDefinition(depth int, term *Par, def ...Node) *DefinitionItem {
	di := &DefinitionItem{depth: depth, term: term, inDef: true}
	for _, n := range def {
		di.def.Add(n)
	}
	return di
}

func (di *DefinitionItem) Kind() Kind { return KindDefItem }

// AcceptsLabel is true: definitions may be the target of links.
func (di *DefinitionItem) AcceptsLabel() bool { return true }

// Term returns the defined term.
func (di *DefinitionItem) Term() *Par { return di.term }

// Content returns the definition.
func (di *DefinitionItem) Content() []Node { return di.def.Content() }

func (di *DefinitionItem) IsEmpty() bool {
	return di.term.IsEmpty() && di.def.IsEmpty()
}

func (di *DefinitionItem) Clean() {
	di.term.Clean()
	di.def.Clean()
}

func (di *DefinitionItem) Handle(ev Event, ctx Context) (Disposition, error) {
	switch ev.Level() {
	case LevelInline:
		if !di.inDef {
			ctx.Push(di.term)
			return Replay, nil
		}
		d, _ := handleBlocks(&di.def, ev, ctx)
		return d, nil
	case LevelParagraph:
		switch ev.ID() {
		case IDNewDef:
			if depth, ok := defDepth(ev); ok && depth > di.depth {
				di.inDef = true
				d, _ := handleBlocks(&di.def, ev, ctx)
				return d, nil
			}
		case IDNew:
			if di.inDef {
				d, _ := handleBlocks(&di.def, ev, ctx)
				return d, nil
			}
		}
	}
	return Forward, nil
}

// Generate renders the item with a DefinitionRenderer, or else as a
// paragraph with a bold term followed by the definition.
func (di *DefinitionItem) Generate(r Renderer) {
	if dr, ok := r.(DefinitionRenderer); ok {
		dr.DefTermBegin(di)
		di.term.GenerateInline(r)
		dr.DefTermEnd(di)
		dr.DefBodyBegin(di)
		di.def.generateContent(r)
		dr.DefBodyEnd(di)
		return
	}
	r.ParBegin(di.term)
	r.StyleBegin(Bold)
	di.term.GenerateInline(r)
	r.StyleEnd(Bold)
	r.ParEnd(di.term)
	di.def.generateContent(r)
}
