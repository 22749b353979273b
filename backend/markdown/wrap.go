package markdown

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax29"
)

// DefaultWidth is the line width used if the options do not set one.
const DefaultWidth = 72

// minWidth keeps deeply nested paragraphs readable.
const minWidth = 20

// Filler breaks text into lines of limited width.
type Filler struct {
	words *segment.Segmenter
}

// NewFiller creates a filler with a UAX #29 word segmenter.
func NewFiller() *Filler {
	seg := segment.NewSegmenter(uax29.NewWordBreaker(1))
	seg.BreakOnZero(true, false)
	return &Filler{words: seg}
}

// blockStart matches words which would be read as a block marker at the
// start of a line.
var blockStart = regexp.MustCompile(`^(?:#{1,6}|[-+*>]|\d+[.)]|=+|-{2,}|\||` + "```" + `|~~~)$`)

// Fill breaks a line of text into lines of at most width runes. Lines are
// broken at white space only; words longer than width get a line of their
// own. Runs of white space collapse into a single blank.
func (f *Filler) Fill(text string, width int) []string {
	if width < minWidth {
		width = minWidth
	}
	words := f.split(text)
	var lines []string
	var line strings.Builder
	n := 0
	for _, w := range words {
		l := utf8.RuneCountInString(w)
		switch {
		case n == 0:
			line.WriteString(w)
			n = l
		case n+1+l <= width || blockStart.MatchString(w):
			line.WriteByte(' ')
			line.WriteString(w)
			n += 1 + l
		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(w)
			n = l
		}
	}
	if n > 0 || len(lines) == 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// split returns the words of text, where a word is everything between
// white space segments.
func (f *Filler) split(text string) []string {
	var words []string
	var word strings.Builder
	f.words.Init(strings.NewReader(text))
	for f.words.Next() {
		seg := f.words.Text()
		if strings.TrimSpace(seg) == "" {
			if word.Len() > 0 {
				words = append(words, word.String())
				word.Reset()
			}
			continue
		}
		word.WriteString(seg)
	}
	if word.Len() > 0 {
		words = append(words, word.String())
	}
	return words
}
