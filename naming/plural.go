package naming

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"

	"github.com/ridoystarlord/modelgen/database"
)

func init() {
	inflection.AddIrregular("criterion", "criteria")
	inflection.AddIrregular("datum", "data")
	inflection.AddIrregular("cactus", "cacti")
	inflection.AddUncountable("metadata", "feedback", "software")
}

// Plural returns the plural form of noun. Only the last word of a
// multi-word noun is inflected and its capitalization is preserved.
func Plural(noun string) string {
	return inflectLast(noun, inflection.Plural)
}

// Singular returns the singular form of noun.
func Singular(noun string) string {
	return inflectLast(noun, inflection.Singular)
}

// ToNounForm renders noun as singular or plural.
func ToNounForm(form database.NounForm, noun string) string {
	if form == database.Singular {
		return Singular(noun)
	}
	return Plural(noun)
}

func inflectLast(noun string, inflect func(string) string) string {
	start, end := lastWordSpan(noun)
	if start == end {
		return noun
	}
	word := noun[start:end]
	inflected := inflect(strings.ToLower(word))
	if inflected == "" {
		inflected = strings.ToLower(word)
	}
	return noun[:start] + matchCapitalization(word, inflected) + noun[end:]
}

// lastWordSpan returns the byte range of the last word of s, using the
// same boundaries as Words.
func lastWordSpan(s string) (int, int) {
	words := Words(s)
	if len(words) == 0 {
		return 0, 0
	}
	last := words[len(words)-1]
	start := strings.LastIndex(s, last)
	return start, start + len(last)
}

func matchCapitalization(original, inflected string) string {
	switch {
	case !hasLower(original) && hasUpper(original):
		return strings.ToUpper(inflected)
	case unicode.IsUpper([]rune(original)[0]):
		runes := []rune(inflected)
		runes[0] = unicode.ToUpper(runes[0])
		return string(runes)
	}
	return inflected
}

func hasUpper(w string) bool {
	for _, r := range w {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
