package dokuwiki

import (
	"regexp"
	"sort"
	"strings"

	"github.com/derekparker/trie"
	"github.com/npillmayer/thot/core/parameters"
	"github.com/npillmayer/thot/engine/assembly"
)

// symbols maps literal character sequences to replacements.
type symbols struct {
	t *trie.Trie
}

func newSymbols(m map[string]interface{}) symbols {
	t := trie.New()
	for k, v := range m {
		t.Add(k, v)
	}
	return symbols{t: t}
}

// pattern returns a regular expression matching any of the sequences.
// Longer sequences come first, so that `<->` wins over `<-`.
func (s symbols) pattern() string {
	keys := s.t.Keys()
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return strings.Join(quoted, "|")
}

func (s symbols) find(key string) (interface{}, bool) {
	node, ok := s.t.Find(key)
	if !ok {
		return nil, false
	}
	return node.Meta(), true
}

var entities = entitySymbols{newSymbols(map[string]interface{}{
	"<->":  '↔',
	"->":   '→',
	"<-":   '←',
	"<=>":  '⇔',
	"=>":   '⇒',
	"<=":   '⇐',
	">>":   '»',
	"<<":   '«',
	"---":  '—',
	"--":   '–',
	"(c)":  '©',
	"(tm)": '™',
	"(r)":  '®',
	"...":  '…',
})}

type entitySymbols struct{ symbols }

func (e entitySymbols) lookup(key string) (rune, bool) {
	v, ok := e.find(key)
	if !ok {
		return 0, false
	}
	r, ok := v.(rune)
	return r, ok
}

var smileys = smileySymbols{newSymbols(map[string]interface{}{
	"8-)":      "icon_cool.gif",
	"8-O":      "icon_eek.gif",
	"8-o":      "icon_eek.gif",
	":-(":      "icon_sad.gif",
	":-)":      "icon_smile.gif",
	"=)":       "icon_smile2.gif",
	":-/":      "icon_doubt.gif",
	":-\\":     "icon_doubt2.gif",
	":-?":      "icon_confused.gif",
	":-D":      "icon_biggrin.gif",
	":-P":      "icon_razz.gif",
	":-o":      "icon_surprised.gif",
	":-O":      "icon_surprised.gif",
	":-x":      "icon_silenced.gif",
	":-X":      "icon_silenced.gif",
	":-|":      "icon_neutral.gif",
	";-)":      "icon_wink.gif",
	"^_^":      "icon_fun.gif",
	":?:":      "icon_question.gif",
	":!:":      "icon_exclaim.gif",
	"LOL":      "icon_lol.gif",
	"FIXME":    "fixme.gif",
	"DELETEME": "delete.gif",
})}

type smileySymbols struct{ symbols }

func (s smileySymbols) lookup(key string) (string, bool) {
	v, ok := s.find(key)
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}

// smileyPath locates a smiley image below the installation's base folder.
func smileyPath(m *assembly.Manager, name string) string {
	base := m.Env().Get(parameters.THOT_BASE)
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + "smileys/" + name
}
