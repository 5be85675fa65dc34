// Package wordlist provides word list filtering helpers.
package wordlist

import (
	"strings"
	"unicode"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForKeys keeps words typed entirely with the given keys. Matching is
// case-insensitive. An empty key set keeps everything.
func FilterForKeys(keys string) FilterFunc {
	if strings.TrimSpace(keys) == "" {
		return func(string) bool { return true }
	}
	allowed := KeySet(keys)
	return func(word string) bool {
		if word == "" {
			return false
		}
		for _, r := range word {
			if _, ok := allowed[unicode.ToLower(r)]; !ok {
				return false
			}
		}
		return true
	}
}

// KeySet returns the lowercase runes of keys, ignoring whitespace.
func KeySet(keys string) map[rune]struct{} {
	set := map[rune]struct{}{}
	for _, r := range keys {
		if unicode.IsSpace(r) {
			continue
		}
		set[unicode.ToLower(r)] = struct{}{}
	}
	return set
}

// Filter returns the words accepted by keep.
func Filter(words []string, keep FilterFunc) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}
