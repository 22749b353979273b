package backend

import (
	"fmt"

	"golang.org/x/text/language"
)

// Translator provides the words back ends generate on their own.
type Translator struct {
	Tag      language.Tag
	captions map[string]string
	words    map[string]string
}

// Message ids
const (
	MsgContents = "Contents"
	MsgNotes    = "Notes"
)

var supported = []language.Tag{language.English, language.French, language.German}

var translations = []Translator{
	{
		Tag:      language.English,
		captions: map[string]string{GroupTable: "Table %d: ", GroupFigure: "Figure %d: ", GroupListing: "Listing %d: "},
		words:    map[string]string{MsgContents: "Contents", MsgNotes: "Notes"},
	},
	{
		Tag:      language.French,
		captions: map[string]string{GroupTable: "Tableau %d : ", GroupFigure: "Figure %d : ", GroupListing: "Listing %d : "},
		words:    map[string]string{MsgContents: "Sommaire", MsgNotes: "Notes"},
	},
	{
		Tag:      language.German,
		captions: map[string]string{GroupTable: "Tabelle %d: ", GroupFigure: "Abbildung %d: ", GroupListing: "Listing %d: "},
		words:    map[string]string{MsgContents: "Inhalt", MsgNotes: "Anmerkungen"},
	},
}

var matcher = language.NewMatcher(supported)

// TranslatorFor returns the translator best matching a language
// identifier like "fr", "de-AT" or "en_US". English is the default.
func TranslatorFor(lang string) Translator {
	if lang == "" {
		return translations[0]
	}
	_, index := language.MatchStrings(matcher, lang)
	tracer().Debugf("language %q matched to %s", lang, supported[index])
	return translations[index]
}

// Get translates a message id. Unknown ids are returned unchanged.
func (t Translator) Get(id string) string {
	if s, ok := t.words[id]; ok {
		return s
	}
	return id
}

// Caption returns the caption prefix for a node numbered within a group.
func (t Translator) Caption(group string, number int) string {
	if f, ok := t.captions[group]; ok {
		return fmt.Sprintf(f, number)
	}
	return fmt.Sprintf("%s %d: ", group, number)
}
