// Package lexicon holds the compiled-in word lists used by the address
// extractor: noise words, street-type suffixes and city names.
//
// Every list is built once at package initialisation and never mutated.
// Extending a list means editing this package and redeploying.
package lexicon

import (
	"fmt"
	"strings"
	"unicode"
)

// Set is an ordered, immutable collection of lowercase words.
type Set struct {
	words []string
	index map[string]struct{}
}

// NewSet builds a Set from words, lowercasing and trimming each entry.
// Blank entries and repeats are dropped; first-seen order is kept.
func NewSet(words ...string) *Set {
	s := &Set{index: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := s.index[w]; ok {
			continue
		}
		s.index[w] = struct{}{}
		s.words = append(s.words, w)
	}
	return s
}

// Words returns a copy of the entries in their original order.
func (s *Set) Words() []string {
	return append([]string(nil), s.words...)
}

// Contains reports whether word (compared case-insensitively) is in the set.
func (s *Set) Contains(word string) bool {
	_, ok := s.index[strings.ToLower(word)]
	return ok
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.words)
}

// IsWord reports whether w is a single run of letters and digits.
func IsWord(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// mustWordSet panics when an entry is not a single word. Only used for the
// static lists below, so a bad entry fails at start-up rather than silently
// never matching.
func mustWordSet(words ...string) *Set {
	s := NewSet(words...)
	for _, w := range s.words {
		if !IsWord(w) {
			panic(fmt.Sprintf("lexicon: %q is not a single word", w))
		}
	}
	return s
}
