package model

import (
	"strings"
	"unicode"
)

// DefaultLabeler turns a field name such as "full_name" or "startDate" into a
// display label ("Full name", "Start date").
func DefaultLabeler(name string) string {
	words := splitWords(name)
	if len(words) == 0 {
		return ""
	}
	for i, word := range words {
		word = strings.ToLower(word)
		if i == 0 {
			runes := []rune(word)
			runes[0] = unicode.ToUpper(runes[0])
			word = string(runes)
		}
		words[i] = word
	}
	return strings.Join(words, " ")
}

func splitWords(name string) []string {
	var (
		words   []string
		current []rune
		prev    rune
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		case len(current) > 0 && unicode.IsUpper(r) && unicode.IsLower(prev):
			flush()
			current = append(current, r)
		case len(current) > 0 && unicode.IsDigit(r) != unicode.IsDigit(prev):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
		prev = r
	}
	flush()
	return words
}
