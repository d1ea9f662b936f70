// Package naming derives identifiers (table, column, file and accessor
// names) from user-entered model names.
package naming

import (
	"strings"
	"unicode"

	"github.com/ridoystarlord/modelgen/database"
)

// Words splits s into words. Any rune that is not a letter or digit
// separates words; inside a run of letters and digits a new word starts
// at a lower-to-upper transition, at the last capital of an acronym
// followed by lower case ("HTTPServer" is HTTP, Server) and wherever
// digits meet letters.
func Words(s string) []string {
	var words []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(current) > 0 {
			prev := current[len(current)-1]
			switch {
			case unicode.IsDigit(r) != unicode.IsDigit(prev):
				flush()
			case unicode.IsUpper(r) && !unicode.IsUpper(prev):
				flush()
			case unicode.IsUpper(r) && unicode.IsUpper(prev) &&
				i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				flush()
			}
		}
		current = append(current, r)
	}
	flush()
	return words
}

// ToCase renders s in the given style. Applying the same style twice
// yields the same result as applying it once.
func ToCase(style database.CaseStyle, s string) string {
	switch style {
	case database.Snake:
		return SnakeCase(s)
	case database.Pascal:
		return PascalCase(s)
	default:
		return CamelCase(s)
	}
}

// CamelCase renders "blog post" as "blogPost".
func CamelCase(s string) string {
	words := Words(s)
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(strings.ToLower(w))
			continue
		}
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// PascalCase renders "blog post" as "BlogPost".
func PascalCase(s string) string {
	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// SnakeCase renders "blogPost" as "blog_post".
func SnakeCase(s string) string {
	return joinLower(Words(s), "_")
}

// KebabCase renders "BlogPost" as "blog-post".
func KebabCase(s string) string {
	return joinLower(Words(s), "-")
}

// NoCase renders "blogPost" as "blog post", for display.
func NoCase(s string) string {
	return joinLower(Words(s), " ")
}

func joinLower(words []string, sep string) string {
	lowered := make([]string, len(words))
	for i, w := range words {
		lowered[i] = strings.ToLower(w)
	}
	return strings.Join(lowered, sep)
}

// capitalize upper-cases the first rune and lower-cases the rest. Words
// without any lower-case letter (acronyms, numbers) are kept as they are,
// so "ID" stays "ID" in "userID".
func capitalize(w string) string {
	if !hasLower(w) {
		return w
	}
	runes := []rune(strings.ToLower(w))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func hasLower(w string) bool {
	for _, r := range w {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}

// Normalize folds a name to a comparison key that ignores case and
// separators: "First Name", "firstName" and "first_name" are all equal.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(Words(s), ""))
}
