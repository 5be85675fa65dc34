package wordlist

import "testing"

func TestFilterForKeys(t *testing.T) {
	filter := FilterForKeys("asdf jkl")
	if !filter("salad") {
		t.Fatalf("expected salad to pass home-row filter")
	}
	if !filter("Flask") {
		t.Fatalf("expected capitalized word to pass")
	}
	for _, word := range []string{"", "hello", "sad!", "desk"} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestFilterEmptyKeysKeepsAll(t *testing.T) {
	words := Filter([]string{"one", "two"}, FilterForKeys(""))
	if len(words) != 2 {
		t.Fatalf("expected all words kept, got %v", words)
	}
}

func TestDefaultWordsLoaded(t *testing.T) {
	words := DefaultWords()
	if len(words) < 100 {
		t.Fatalf("expected embedded word list, got %d words", len(words))
	}
}
