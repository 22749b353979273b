package backend

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/core/exttool"
	"github.com/npillmayer/thot/core/locate/resources"
	"github.com/npillmayer/thot/engine/doc"
)

// Base implements the non-visual part of doc.Renderer. Back ends embed it.
type Base struct {
	name  string
	diags *core.Diagnostics
}

// NewBase creates a base for a back end with the given name.
func NewBase(name string) Base {
	return Base{name: name, diags: &core.Diagnostics{}}
}

// Name returns the back end's name.
func (b *Base) Name() string { return b.name }

// Warn records a warning.
func (b *Base) Warn(err error) {
	if err == nil {
		return
	}
	tracer().Errorf("%s: %v", b.name, err)
	b.diags.Add(err)
}

// Warnf records a warning with an error code.
func (b *Base) Warnf(code int, format string, args ...interface{}) {
	b.Warn(core.Error(code, format, args...))
}

// Diagnostics returns the warnings collected so far.
func (b *Base) Diagnostics() *core.Diagnostics { return b.diags }

// UnknownStyle reports a style the back end cannot render.
func (b *Base) UnknownStyle(style string) {
	b.Warnf(core.EUNKNOWN, "%s renderer does not know style %q", b.name, style)
}

// --- Options and registry --------------------------------------------------

// Options control the generation of an output document.
type Options struct {
	Output     string             // path of the output file; "" for none
	Friends    *resources.Friends // friend files to copy next to Output, may be nil
	Highlight  *exttool.Tool      // syntax highlighter, may be nil
	Stylesheet string             // style sheet to embed (HTML)
	Width      int                // line width for text formats
	Check      bool               // resolve referenced images
}

// Generator renders a document to w and returns the warnings collected.
type Generator func(d *doc.Document, w io.Writer, opts Options) (*core.Diagnostics, error)

var registry = struct {
	sync.RWMutex
	gens map[string]Generator
}{gens: make(map[string]Generator)}

// Register makes an output format available under a name. It is meant to
// be called from init functions of back end packages.
func Register(name string, gen Generator) {
	registry.Lock()
	defer registry.Unlock()
	if _, dup := registry.gens[name]; dup {
		panic(fmt.Sprintf("backend %q registered twice", name))
	}
	registry.gens[name] = gen
}

// Lookup finds a registered output format.
func Lookup(name string) (Generator, error) {
	registry.RLock()
	defer registry.RUnlock()
	gen, ok := registry.gens[name]
	if !ok {
		return nil, core.Error(core.EINVALID, "no back end for output type %q", name)
	}
	return gen, nil
}

// Names lists the registered output formats, sorted.
func Names() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.gens))
	for n := range registry.gens {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
