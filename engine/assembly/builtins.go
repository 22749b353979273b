package assembly

import (
	"regexp"
	"strings"

	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/engine/doc"
)

// builtins are the directives every dialect understands. They always take
// precedence over dialect rules.
var builtins *Dialect

func init() {
	builtins = &Dialect{
		Name: "thot",
		Kind: Extension,
		Lines: []LineRule{
			{Name: "comment", Pattern: regexp.MustCompile(`^@@`), Action: ignore},
			{Name: "use", Pattern: regexp.MustCompile(`^@use\s+(?P<module>\S+)\s*$`), Action: useModule},
			{Name: "include", Pattern: regexp.MustCompile(`^@include\s+(?P<path>.*?)\s*$`), Action: include},
			{Name: "label", Pattern: regexp.MustCompile(`^@label\s+(?P<label>\S+)\s*$`), Action: label},
			{Name: "caption", Pattern: regexp.MustCompile(`^@caption\s+(?P<text>.*?)\s*$`), Action: caption},
			{Name: "assign", Pattern: regexp.MustCompile(`^@(?P<name>[A-Za-z_][A-Za-z0-9_]*)\s*=\s*(?P<value>.*?)\s*$`), Action: assign},
			{Name: "blank", Pattern: regexp.MustCompile(`^\s*$`), Action: endPar},
		},
		Words: []WordRule{
			{Name: "variable", Pattern: `\$\((?P<varid>[A-Za-z0-9_]+)\)`, Action: variable},
		},
	}
}

func ignore(m *Manager, match Match) error {
	return nil
}

func useModule(m *Manager, match Match) error {
	return m.Use(match.Named("module"))
}

func include(m *Manager, match Match) error {
	return m.Include(m.Expand(match.Named("path")))
}

func label(m *Manager, match Match) error {
	return m.Label(match.Named("label"))
}

func caption(m *Manager, match Match) error {
	return m.Caption(match.Named("text"))
}

func assign(m *Manager, match Match) error {
	m.Env().Set(match.Named("name"), m.Expand(match.Named("value")))
	return nil
}

func endPar(m *Manager, match Match) error {
	return m.Send(doc.ParEndEvent())
}

func variable(m *Manager, match Match) error {
	name := match.Named("varid")
	value, ok := m.Env().Lookup(name)
	if !ok {
		m.Warnf(core.EUNKNOWN, "variable %s is not defined", name)
		value = match.Text()
	}
	return m.Send(doc.WordEvent(value))
}

var varPattern = regexp.MustCompile(`\$\(([A-Za-z0-9_]+)\)`)

// Expand replaces references `$(NAME)` in s by variable values. Undefined
// variables are left as they are.
func (m *Manager) Expand(s string) string {
	if !strings.Contains(s, "$(") {
		return s
	}
	return varPattern.ReplaceAllStringFunc(s, func(ref string) string {
		name := ref[2 : len(ref)-1]
		if v, ok := m.Env().Lookup(name); ok {
			return v
		}
		return ref
	})
}
