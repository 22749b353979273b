package assembly

import (
	"fmt"
	"strconv"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/core/parameters"
	"github.com/npillmayer/thot/engine/doc"
)

// DefaultIncludeDepth is the nesting limit for included files if neither
// Options nor the configuration key `thot.include-depth` set one.
const DefaultIncludeDepth = 16

// maxReplays guards against node rules handing an event back and forth.
const maxReplays = 64

// Options configure a Manager. Zero values select defaults from the
// global configuration.
type Options struct {
	Dialect      string            // syntax dialect to start with
	Modules      []string          // extension modules to load
	IncludeDepth int               // maximum nesting of included files
	IncludePath  []string          // folders searched for included files
	Encoding     string            // input encoding, e.g. "latin1"
	Vars         map[string]string // initial variables
}

// Manager assembles a document from events. It keeps the context stack:
// the chain of open nodes from the document down to the active node.
// Nodes live in an arena; the stack holds arena indices.
type Manager struct {
	document   *doc.Document
	arena      []doc.Node
	index      map[doc.Node]int
	stack      *arraystack.Stack
	rules      *Ruleset
	syntax     *Dialect
	extensions []*Dialect
	local      []WordRule
	used       map[string]bool
	values     map[interface{}]interface{}
	parsers    []LineParser
	opts       Options
	file       string
	line       int
	includes   int
	diag       core.Diagnostics
}

// New creates a Manager with a fresh document at the base of its stack.
func New(opts Options) (*Manager, error) {
	if opts.IncludeDepth <= 0 {
		opts.IncludeDepth = configuredInt("thot.include-depth", DefaultIncludeDepth)
	}
	if opts.Encoding == "" {
		opts.Encoding = gconf.GetString("thot.encoding")
	}
	if opts.Dialect == "" {
		opts.Dialect = gconf.GetString("thot.dialect")
	}
	env := parameters.NewEnv(opts.Vars)
	m := &Manager{
		document: doc.NewDocument(env),
		index:    make(map[doc.Node]int),
		stack:    arraystack.New(),
		used:     make(map[string]bool),
		values:   make(map[interface{}]interface{}),
		opts:     opts,
		file:     "<input>",
	}
	m.Push(m.document)
	if err := m.rebuildRules(); err != nil {
		return nil, err
	}
	if opts.Dialect != "" {
		if err := m.load(opts.Dialect); err != nil {
			return nil, err
		}
	}
	for _, mod := range opts.Modules {
		if err := m.load(mod); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func configuredInt(key string, deflt int) int {
	if s := gconf.GetString(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
		tracer().Errorf("configuration %s=%q is not a positive number", key, s)
	}
	return deflt
}

// Document returns the document under construction.
func (m *Manager) Document() *doc.Document {
	return m.document
}

// Env returns the document's variables.
func (m *Manager) Env() *parameters.Env {
	return m.document.Env()
}

// Diagnostics returns the warnings collected so far.
func (m *Manager) Diagnostics() *core.Diagnostics {
	return &m.diag
}

// Value returns the state an extension module stored under key, or nil.
// Keys should be of an unexported type of the module, as with
// context.Context.
func (m *Manager) Value(key interface{}) interface{} {
	return m.values[key]
}

// SetValue stores extension module state for the document under
// construction.
func (m *Manager) SetValue(key, v interface{}) {
	m.values[key] = v
}

// Pos returns the current input position.
func (m *Manager) Pos() doc.Pos {
	return doc.Pos{File: m.file, Line: m.line}
}

// --- Context stack ---------------------------------------------------------

// Push makes n the active node. Nodes get the current input position the
// first time they are pushed.
func (m *Manager) Push(n doc.Node) {
	id, ok := m.index[n]
	if !ok {
		id = len(m.arena)
		m.arena = append(m.arena, n)
		m.index[n] = id
		if n.Pos().File == "" {
			n.SetPos(m.Pos())
		}
	}
	m.stack.Push(id)
	tracer().Debugf("push %s (depth %d)", doc.Describe(n), m.stack.Size())
}

// Pop removes the active node from the stack. The document is never
// popped; Pop returns false if asked to.
func (m *Manager) Pop() bool {
	if m.stack.Size() <= 1 {
		return false
	}
	id, _ := m.stack.Pop()
	tracer().Debugf("pop %s", doc.Describe(m.arena[id.(int)]))
	return true
}

// Top returns the active node.
func (m *Manager) Top() doc.Node {
	id, ok := m.stack.Peek()
	if !ok {
		return m.document
	}
	return m.arena[id.(int)]
}

// Depth returns the number of open nodes, including the document.
func (m *Manager) Depth() int {
	return m.stack.Size()
}

func (m *Manager) isOpen(n doc.Node) bool {
	id, ok := m.index[n]
	if !ok {
		return false
	}
	for _, v := range m.stack.Values() {
		if v.(int) == id {
			return true
		}
	}
	return false
}

// Send delivers an event to the active node. Nodes declining the event are
// popped and the event is delivered to the new top, until some node
// consumes it. Structural errors are returned with the current input
// position; warnings never cross Send.
func (m *Manager) Send(ev doc.Event) error {
	tracer().Debugf("send %s to %s", ev, doc.Describe(m.Top()))
	for replays := 0; ; {
		top := m.Top()
		disp, err := top.Handle(ev, m)
		if err != nil {
			return m.fail(err)
		}
		switch disp {
		case doc.Consumed:
			return nil
		case doc.Close:
			m.Pop()
			return nil
		case doc.Forward:
			if !m.Pop() {
				return m.fail(core.Error(core.EINTERNAL, "document declined event %s", ev))
			}
		case doc.Replay:
			if replays++; replays > maxReplays {
				return m.fail(core.Error(core.EINTERNAL, "event %s replayed too often", ev))
			}
		}
	}
}

// Forward pops the active node and sends ev to its parent.
func (m *Manager) Forward(ev doc.Event) error {
	m.Pop()
	return m.Send(ev)
}

// Warn records a warning at the current input position.
func (m *Manager) Warn(err error) {
	err = core.At(m.file, m.line, err)
	tracer().Errorf("%v", err)
	m.diag.Add(err)
}

// Warnf records a warning with an error code at the current input position.
func (m *Manager) Warnf(code int, format string, args ...interface{}) {
	m.Warn(core.Error(code, format, args...))
}

func (m *Manager) fail(err error) error {
	if !core.IsFatal(err) {
		m.Warn(err)
		return nil
	}
	return core.At(m.file, m.line, err)
}

// Finish terminates the assembly: it sends the end-of-document event,
// empties the context stack and prunes empty nodes from the tree.
// Calling Finish more than once is harmless.
func (m *Manager) Finish() (*doc.Document, error) {
	for len(m.parsers) > 0 {
		p := m.parsers[len(m.parsers)-1]
		m.parsers = m.parsers[:len(m.parsers)-1]
		if f, ok := p.(Flusher); ok {
			if err := f.Flush(m); err != nil {
				return m.document, err
			}
			continue
		}
		m.Warnf(core.EUNKNOWN, "input ends inside a literal block")
	}
	if err := m.Send(doc.DocEndEvent()); err != nil {
		return m.document, err
	}
	for m.Pop() {
	}
	m.document.Clean()
	return m.document, nil
}

// --- Labels and captions ---------------------------------------------------

// Label binds a label to the most recently completed node accepting labels.
func (m *Manager) Label(id string) error {
	n := m.lastCompleted(doc.Node.AcceptsLabel)
	if n == nil {
		m.Warnf(core.EUNKNOWN, "no element to attach label %q to", id)
		return nil
	}
	if err := m.document.BindLabel(id, n); err != nil {
		m.Warn(err)
	}
	return nil
}

// Caption parses text and attaches it as caption to the most recently
// completed node accepting captions.
func (m *Manager) Caption(text string) error {
	n := m.lastCompleted(doc.Node.AcceptsCaption)
	if n == nil {
		m.Warnf(core.EUNKNOWN, "no element to attach caption to")
		return nil
	}
	p, err := m.ParseInline(text)
	if err != nil {
		return err
	}
	n.SetCaption(p)
	return nil
}

// lastCompleted searches the tree in reverse document order. Closed nodes
// are considered before their children, open nodes after them.
func (m *Manager) lastCompleted(accepts func(doc.Node) bool) doc.Node {
	var visit func(n doc.Node) doc.Node
	visit = func(n doc.Node) doc.Node {
		open := m.isOpen(n)
		if !open && accepts(n) {
			return n
		}
		children := n.Content()
		for i := len(children) - 1; i >= 0; i-- {
			if found := visit(children[i]); found != nil {
				return found
			}
		}
		if open && accepts(n) {
			return n
		}
		return nil
	}
	return visit(m.document)
}

func (m *Manager) String() string {
	return fmt.Sprintf("manager(%s:%d, depth %d)", m.file, m.line, m.stack.Size())
}
