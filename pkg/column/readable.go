package column

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ReadableName turns an identifier into a header label:
//
//	firstName   -> First Name
//	order_total -> Order Total
//	userID      -> User ID
//	AGE         -> Age
func ReadableName(name string) string {
	words := splitWords(name)
	if len(words) == 0 {
		return name
	}
	// Casers keep state, so each call gets its own.
	if len(words) == 1 && isUpper(words[0]) {
		return cases.Title(language.Und).String(words[0])
	}
	titleWord := cases.Title(language.Und, cases.NoLower)
	for i, w := range words {
		words[i] = titleWord.String(w)
	}
	return strings.Join(words, " ")
}

// splitWords breaks on '_', '-', whitespace, lower-to-upper transitions and
// the end of an acronym ("HTTPServer" -> "HTTP", "Server").
func splitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := cur[len(cur)-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
