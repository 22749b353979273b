package glyphs

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/thot/engine/assembly"
	"github.com/npillmayer/thot/engine/doc"
	"github.com/npillmayer/thot/input/dokuwiki"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assemble(t *testing.T, input string) (*doc.Document, *assembly.Manager) {
	m, err := assembly.New(assembly.Options{Dialect: dokuwiki.Name, Modules: []string{Name}})
	require.NoError(t, err)
	require.NoError(t, m.ParseString(input, "glyphs.txt"))
	d, err := m.Finish()
	require.NoError(t, err)
	return d, m
}

func TestEscapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.glyphs")
	defer teardown()
	//
	d, m := assemble(t, "TM before\n"+
		"<unicode>\n"+
		"0x2192: -->\n"+
		"8656: <==\n"+
		"™: TM\n"+
		"a: xx\n"+
		"b: xxx\n"+
		"\n"+
		"bogus\n"+
		"0x110000: bad\n"+
		"</unicode>\n"+
		"A --> B <== C TM xxx\n")
	assert.Equal(t, 2, m.Diagnostics().Len())
	var codes []rune
	doc.Walk(d, func(n doc.Node) bool {
		if g, ok := n.(*doc.Glyph); ok {
			codes = append(codes, g.Code)
		}
		return true
	})
	assert.Equal(t, []rune{0x2192, 8656}, codes)
	assert.Equal(t, "TM before A → B ⇐ C ™ b ", doc.TextOf(d))
}

func TestParserOrdersEscapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.glyphs")
	defer teardown()
	//
	p := &Parser{Escapes: []Escape{{Text: "<", Word: "lt"}, {Text: "<==", Code: 0x21D0}, {Text: "<=", Word: "le"}}}
	rules := p.rules()
	require.Len(t, rules, 3)
	assert.Equal(t, `<==`, rules[0].Pattern)
	assert.Equal(t, `<=`, rules[1].Pattern)
	assert.Equal(t, `<`, rules[2].Pattern)
	assert.Len(t, p.Escapes, 3, "ordering must not change the definitions")
}

func TestUnterminatedBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.glyphs")
	defer teardown()
	//
	d, m := assemble(t, "<unicode>\n0x41: AA\n")
	require.Equal(t, 1, m.Diagnostics().Len())
	assert.Empty(t, d.Content())
}
