package assembly

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/core/parameters"
	"github.com/npillmayer/thot/engine/doc"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// LineParser consumes input lines. The active line parser is the top of the
// Manager's parser stack; the bottom is the rule-driven parser.
type LineParser interface {
	ParseLine(m *Manager, line string) error
}

// Flusher is implemented by line parsers which may legitimately be active
// at end of input, e.g. parsers collecting lines up to the first line not
// belonging to them. Finish pops such a parser and calls Flush instead of
// warning about an unterminated block.
type Flusher interface {
	Flush(m *Manager) error
}

// PushParser makes p the active line parser.
func (m *Manager) PushParser(p LineParser) {
	m.parsers = append(m.parsers, p)
}

// PopParser restores the previous line parser.
func (m *Manager) PopParser() {
	if len(m.parsers) > 0 {
		m.parsers = m.parsers[:len(m.parsers)-1]
	}
}

// ParseLine hands one line to the active line parser.
func (m *Manager) ParseLine(line string) error {
	if n := len(m.parsers); n > 0 {
		return m.parsers[n-1].ParseLine(m, line)
	}
	return m.ParseRules(line)
}

// ParseRules parses a line with the rules of the loaded dialects, bypassing
// any pushed line parser.
func (m *Manager) ParseRules(line string) error {
	if r, match, ok := m.rules.matchLine(line); ok {
		tracer().Debugf("line rule %s", r.Name)
		return r.Action(m, match)
	}
	return m.scan(line, " ")
}

// ParseText scans a fragment of text for word rules, e.g. a title or the
// text of a link.
func (m *Manager) ParseText(text string) error {
	return m.scan(text, "")
}

// ParseLineText scans the text part of a line, e.g. of a list item, for
// word rules only. Line rules are not tried, so item text can never end
// the item's list. Blank text sends nothing.
func (m *Manager) ParseLineText(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return m.scan(text, " ")
}

// scan sends text between word rule matches as words. suffix is appended
// to the final word; lines get a blank to separate them from the next line.
func (m *Manager) scan(text string, suffix string) error {
	for text != "" {
		r, match, start, end := m.rules.nextWord(text)
		if r == nil {
			break
		}
		if start > 0 {
			if err := m.Send(doc.WordEvent(text[:start])); err != nil {
				return err
			}
		}
		text = text[end:]
		tracer().Debugf("word rule %s", r.Name)
		if err := r.Action(m, match); err != nil {
			return err
		}
	}
	if text+suffix == "" {
		return nil
	}
	return m.Send(doc.WordEvent(text + suffix))
}

// ParseInline parses text into a detached paragraph, as needed for
// captions.
func (m *Manager) ParseInline(text string) (*doc.Par, error) {
	p := doc.NewPar()
	base := m.stack.Size()
	m.Push(p)
	err := m.ParseText(text)
	for m.stack.Size() > base {
		m.Pop()
	}
	return p, err
}

// Parse reads markup from r. name is used in diagnostics and as base for
// relative includes. File name and line number are restored afterwards,
// so Parse may be called recursively.
func (m *Manager) Parse(r io.Reader, name string) error {
	in, err := m.decode(r)
	if err != nil {
		return err
	}
	savedFile, savedLine := m.file, m.line
	m.file, m.line = name, 0
	defer func() {
		m.file, m.line = savedFile, savedLine
	}()
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		m.line++
		line := strings.TrimRight(scanner.Text(), "\r")
		if err := m.ParseLine(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return core.At(m.file, m.line, core.WrapError(err, core.EINVALID, "cannot read %s", name))
	}
	return nil
}

// ParseString parses markup held in a string.
func (m *Manager) ParseString(text, name string) error {
	return m.Parse(strings.NewReader(text), name)
}

// ParseFile parses a file.
func (m *Manager) ParseFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return core.WrapError(err, core.EMISSING, "cannot open %s", path)
	}
	defer f.Close()
	m.Env().Set(parameters.THOT_FILE, path)
	return m.Parse(f, path)
}

// decode converts input to NFC normalized UTF-8.
func (m *Manager) decode(r io.Reader) (io.Reader, error) {
	encName := m.Env().GetOr(parameters.ENCODING, m.opts.Encoding)
	switch strings.ToLower(encName) {
	case "", "utf-8", "utf8":
	default:
		enc, err := htmlindex.Get(encName)
		if err != nil {
			return nil, core.WrapError(err, core.EINVALID, "unknown input encoding %q", encName)
		}
		r = transform.NewReader(r, enc.NewDecoder())
	}
	return norm.NFC.Reader(r), nil
}

// Include parses another file in place. Relative paths are resolved
// against the including file's folder, then against the include path.
// A missing file is a warning; exceeding the include depth is fatal.
func (m *Manager) Include(path string) error {
	if m.includes >= m.opts.IncludeDepth {
		return core.At(m.file, m.line, core.Error(core.ESTRUCTURE,
			"include of %s exceeds nesting depth %d", path, m.opts.IncludeDepth))
	}
	resolved, ok := m.resolve(path)
	if !ok {
		m.Warnf(core.EMISSING, "cannot include %s: file not found", path)
		return nil
	}
	f, err := os.Open(resolved)
	if err != nil {
		m.Warn(core.WrapError(err, core.EMISSING, "cannot include %s", path))
		return nil
	}
	defer f.Close()
	tracer().Infof("including %s", resolved)
	m.includes++
	env := m.Env()
	env.Begingroup()
	env.Push(parameters.THOT_FILE, resolved)
	err = m.Parse(f, resolved)
	env.Endgroup()
	m.includes--
	return err
}

func (m *Manager) resolve(path string) (string, bool) {
	candidates := []string{path}
	if !filepath.IsAbs(path) {
		candidates = candidates[:0]
		if m.file != "" && !strings.HasPrefix(m.file, "<") {
			candidates = append(candidates, filepath.Join(filepath.Dir(m.file), path))
		}
		for _, dir := range m.opts.IncludePath {
			candidates = append(candidates, filepath.Join(dir, path))
		}
		candidates = append(candidates, path)
	}
	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return c, true
		}
	}
	return "", false
}

// --- Dialects --------------------------------------------------------------

// Use loads a dialect. Syntax dialects replace the current syntax,
// extension modules are added. Loading a dialect twice has no effect; an
// unknown dialect is a warning.
func (m *Manager) Use(name string) error {
	if _, ok := Lookup(name); !ok {
		m.Warnf(core.EUNKNOWN, "cannot load module %q", name)
		return nil
	}
	return m.load(name)
}

func (m *Manager) load(name string) error {
	if m.used[name] {
		return nil
	}
	d, ok := Lookup(name)
	if !ok {
		return core.Error(core.EINVALID, "unknown dialect %q", name)
	}
	m.used[name] = true
	if d.Kind == Syntax {
		m.syntax = d
	} else {
		m.extensions = append(m.extensions, d)
	}
	if err := m.rebuildRules(); err != nil {
		return core.WrapError(err, core.EINTERNAL, "dialect %s: %v", name, err)
	}
	tracer().Infof("loaded dialect %s", name)
	if d.Init != nil {
		return d.Init(m)
	}
	return nil
}

// AddWords adds word rules for the rest of the document, e.g. from
// definitions found in the input. They take precedence over the rules of
// loaded dialects.
func (m *Manager) AddWords(rules ...WordRule) error {
	m.local = append(m.local, rules...)
	if err := m.rebuildRules(); err != nil {
		m.local = m.local[:len(m.local)-len(rules)]
		return core.WrapError(err, core.EINVALID, "word rules: %v", err)
	}
	return nil
}

func (m *Manager) rebuildRules() error {
	dialects := []*Dialect{builtins}
	if len(m.local) > 0 {
		dialects = append(dialects, &Dialect{Name: "local", Kind: Extension, Words: m.local})
	}
	dialects = append(dialects, m.extensions...)
	if m.syntax != nil {
		dialects = append(dialects, m.syntax)
	}
	rs, err := NewRuleset(dialects...)
	if err != nil {
		return err
	}
	m.rules = rs
	return nil
}

// Loaded returns the names of the loaded dialects: syntax first.
func (m *Manager) Loaded() []string {
	var names []string
	if m.syntax != nil {
		names = append(names, m.syntax.Name)
	}
	for _, d := range m.extensions {
		names = append(names, d.Name)
	}
	return names
}

// --- Literal blocks --------------------------------------------------------

// BlockParser collects lines verbatim into a literal block until a line
// matches its terminator.
type BlockParser struct {
	Block *doc.Block
	End   func(line string) bool
}

// ParseLine implements LineParser.
func (bp *BlockParser) ParseLine(m *Manager, line string) error {
	if bp.End(line) {
		m.PopParser()
		return nil
	}
	bp.Block.Add(line)
	return nil
}

// BeginBlock adds blk to the document and collects the following lines
// into it, up to a line for which end returns true.
func (m *Manager) BeginBlock(blk *doc.Block, end func(line string) bool) error {
	if err := m.Send(doc.BlockEvent(blk)); err != nil {
		return err
	}
	m.PushParser(&BlockParser{Block: blk, End: end})
	return nil
}
