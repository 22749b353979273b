package assembly

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Match is the result of a rule's pattern matching a line or a part of it.
type Match struct {
	groups []string
	names  []string
}

func newMatch(re *regexp.Regexp, groups []string) Match {
	return Match{groups: groups, names: re.SubexpNames()}
}

// Text returns the complete matched text.
func (m Match) Text() string {
	return m.Group(0)
}

// Group returns the i-th parenthesized group, 0 being the whole match.
// Groups which did not participate in the match are "".
func (m Match) Group(i int) string {
	if i < 0 || i >= len(m.groups) {
		return ""
	}
	return m.groups[i]
}

// Named returns the group with the given name.
func (m Match) Named(name string) string {
	for i, n := range m.names {
		if n == name && i < len(m.groups) && m.groups[i] != "" {
			return m.groups[i]
		}
	}
	return ""
}

// Action is called for a matching rule. It usually sends events to the
// Manager. Returning an error aborts the assembly.
type Action func(m *Manager, match Match) error

// LineRule matches complete lines.
type LineRule struct {
	Name    string
	Pattern *regexp.Regexp
	Action  Action
}

// WordRule matches inside lines. Word rule patterns must not match the
// empty string.
type WordRule struct {
	Name    string
	Pattern string
	Action  Action
}

// DialectKind tells syntax dialects from extension modules.
type DialectKind uint8

const (
	// Syntax dialects replace the previously active syntax.
	Syntax DialectKind = iota
	// Extension modules accumulate.
	Extension
)

// Dialect is a named set of rules. Rule lists must not be modified after
// registration.
type Dialect struct {
	Name  string
	Kind  DialectKind
	Lines []LineRule
	Words []WordRule
	Init  func(m *Manager) error // called once when the dialect is loaded
}

var registry = struct {
	sync.RWMutex
	dialects map[string]*Dialect
}{dialects: make(map[string]*Dialect)}

// Register makes a dialect available under its name. It panics if a dialect
// of the same name is already registered.
func Register(d *Dialect) {
	registry.Lock()
	defer registry.Unlock()
	if d == nil || d.Name == "" {
		panic("assembly: registering unnamed dialect")
	}
	if _, dup := registry.dialects[d.Name]; dup {
		panic("assembly: dialect registered twice: " + d.Name)
	}
	registry.dialects[d.Name] = d
}

// Lookup finds a registered dialect.
func Lookup(name string) (*Dialect, bool) {
	registry.RLock()
	defer registry.RUnlock()
	d, ok := registry.dialects[name]
	return d, ok
}

// Dialects returns the names of all registered dialects, sorted.
func Dialects() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.dialects))
	for n := range registry.dialects {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// --- Rulesets --------------------------------------------------------------

// Ruleset is the immutable merge of the rules of several dialects.
type Ruleset struct {
	lines  []LineRule
	words  []WordRule
	wordRE *regexp.Regexp
	wordAt []wordSlot
}

// wordSlot locates a word rule's groups inside the combined expression.
type wordSlot struct {
	group int // index of the group wrapping the rule's pattern
	n     int // number of groups inside the rule's pattern
	re    *regexp.Regexp
}

// NewRuleset merges the rules of dialects, in order.
func NewRuleset(dialects ...*Dialect) (*Ruleset, error) {
	rs := &Ruleset{}
	for _, d := range dialects {
		rs.lines = append(rs.lines, d.Lines...)
		rs.words = append(rs.words, d.Words...)
	}
	if len(rs.words) == 0 {
		return rs, nil
	}
	alternatives := make([]string, len(rs.words))
	group := 1
	for i, w := range rs.words {
		re, err := regexp.Compile(w.Pattern)
		if err != nil {
			return nil, fmt.Errorf("word rule %q: %w", w.Name, err)
		}
		if re.MatchString("") {
			return nil, fmt.Errorf("word rule %q matches the empty string", w.Name)
		}
		rs.wordAt = append(rs.wordAt, wordSlot{group: group, n: re.NumSubexp(), re: re})
		group += 1 + re.NumSubexp()
		alternatives[i] = "(" + w.Pattern + ")"
	}
	var err error
	rs.wordRE, err = regexp.Compile(strings.Join(alternatives, "|"))
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// matchLine returns the first line rule matching line.
func (rs *Ruleset) matchLine(line string) (*LineRule, Match, bool) {
	for i := range rs.lines {
		r := &rs.lines[i]
		if groups := r.Pattern.FindStringSubmatch(line); groups != nil {
			return r, newMatch(r.Pattern, groups), true
		}
	}
	return nil, Match{}, false
}

// nextWord finds the leftmost word rule match in text. It returns the rule,
// the match, and the start and end offsets of the match.
func (rs *Ruleset) nextWord(text string) (*WordRule, Match, int, int) {
	if rs.wordRE == nil {
		return nil, Match{}, -1, -1
	}
	loc := rs.wordRE.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, Match{}, -1, -1
	}
	for i, slot := range rs.wordAt {
		if loc[2*slot.group] < 0 {
			continue
		}
		groups := make([]string, slot.n+1)
		for g := 0; g <= slot.n; g++ {
			s, e := loc[2*(slot.group+g)], loc[2*(slot.group+g)+1]
			if s >= 0 {
				groups[g] = text[s:e]
			}
		}
		return &rs.words[i], newMatch(slot.re, groups), loc[0], loc[1]
	}
	return nil, Match{}, -1, -1
}
