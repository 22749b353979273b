package doc

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/core/parameters"
)

// Document is the root of the tree. It never declines an event, so it stays
// at the base of the context stack for the whole assembly.
type Document struct {
	Container
	env      *parameters.Env
	labels   *treemap.Map
	features *treeset.Set
}

// NewDocument creates an empty document with a variable environment.
// env may be nil.
func NewDocument(env *parameters.Env) *Document {
	if env == nil {
		env = parameters.NewEnv(nil)
	}
	return &Document{
		env:      env,
		labels:   treemap.NewWithStringComparator(),
		features: treeset.NewWithStringComparator(),
	}
}

func (d *Document) Kind() Kind    { return KindDocument }
func (d *Document) IsEmpty() bool { return false }

// Env returns the document's variables.
func (d *Document) Env() *parameters.Env { return d.env }

// Handle implements the document rule: headers open top-level sections,
// end of document and stray terminators are swallowed, everything else is
// handled like in any block container.
func (d *Document) Handle(ev Event, ctx Context) (Disposition, error) {
	switch ev.Level() {
	case LevelDocument:
		return Consumed, nil
	case LevelSection:
		if ev.ID() == IDNew {
			h := ev.Make()
			attach(ctx, &d.Container, h)
			ctx.Push(h)
		}
		return Consumed, nil
	case LevelParagraph:
		if ev.ID() == IDEnd {
			return Consumed, nil
		}
	}
	if disp, ok := handleBlocks(&d.Container, ev, ctx); ok && disp != Forward {
		return disp, nil
	}
	tracer().Debugf("document ignores event %s", ev)
	return Consumed, nil
}

func (d *Document) Generate(r Renderer) {
	r.DocumentBegin(d)
	d.generateContent(r)
	r.DocumentEnd(d)
}

// --- Features --------------------------------------------------------------

// Require records a feature (e.g. "image", "footnote", "highlight") used
// by the document. Back ends consult the feature set once when preparing
// their output, for example to load packages or scripts.
func (d *Document) Require(feature string) {
	d.features.Add(feature)
}

// Has is true if a feature has been required.
func (d *Document) Has(feature string) bool {
	return d.features.Contains(feature)
}

// Features returns all required features, sorted.
func (d *Document) Features() []string {
	fs := make([]string, 0, d.features.Size())
	for _, f := range d.features.Values() {
		fs = append(fs, f.(string))
	}
	return fs
}

// --- Labels ----------------------------------------------------------------

// BindLabel binds a label to a node. A label may be bound only once; binding
// it again is reported as an EINVALID warning and ignored.
func (d *Document) BindLabel(label string, n Node) error {
	if !n.AcceptsLabel() {
		return core.Error(core.EINVALID, "%s does not accept label %q", Describe(n), label)
	}
	if _, found := d.labels.Get(label); found {
		return core.Error(core.EINVALID, "label %q already defined", label)
	}
	d.labels.Put(label, n)
	n.SetLabel(label)
	return nil
}

// Lookup finds the node bound to a label.
func (d *Document) Lookup(label string) (Node, bool) {
	n, found := d.labels.Get(label)
	if !found {
		return nil, false
	}
	return n.(Node), true
}

// Labels returns all labels, sorted.
func (d *Document) Labels() []string {
	keys := d.labels.Keys()
	ls := make([]string, len(keys))
	for i, k := range keys {
		ls[i] = k.(string)
	}
	return ls
}

func (d *Document) String() string {
	return fmt.Sprintf("document(%d blocks, %d labels)", len(d.children), d.labels.Size())
}
